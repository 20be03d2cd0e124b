// Command vidgrab-cli submits a link to the processing service, follows the
// task and saves the produced file into the Downloads directory.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	flag "github.com/spf13/pflag"

	"github.com/ytget/vidgrab/internal/api"
	"github.com/ytget/vidgrab/internal/config"
	"github.com/ytget/vidgrab/internal/connection"
	"github.com/ytget/vidgrab/internal/download"
	"github.com/ytget/vidgrab/internal/history"
	"github.com/ytget/vidgrab/internal/logger"
	"github.com/ytget/vidgrab/internal/model"
	"github.com/ytget/vidgrab/internal/platform"
	"github.com/ytget/vidgrab/internal/store"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

type options struct {
	configPath    string
	audio         bool
	quality       string
	output        string
	showHistory   bool
	clearHistory  bool
	notifications bool
	reveal        bool
	showVersion   bool

	notificationsSet bool
	url              string
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "vidgrab-cli: %v\n", err)
		os.Exit(2)
	}
	if opts.showVersion {
		fmt.Println("vidgrab-cli", version)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, opts, os.Stdout))
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}
	fs := flag.NewFlagSet("vidgrab-cli", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: vidgrab-cli [flags] URL")
		fs.PrintDefaults()
	}

	fs.StringVarP(&opts.configPath, "config", "c", os.Getenv("VIDGRAB_CONFIG"), "config file (yaml, toml or json)")
	fs.BoolVarP(&opts.audio, "audio", "a", false, "download audio only")
	fs.StringVarP(&opts.quality, "quality", "q", string(model.QualityBest), "video quality: best, 1080, 720, 480")
	fs.StringVarP(&opts.output, "output", "o", "", "directory to save into (default: Downloads)")
	fs.BoolVar(&opts.showHistory, "history", false, "print recent downloads")
	fs.BoolVar(&opts.clearHistory, "clear-history", false, "forget recent downloads")
	fs.BoolVar(&opts.notifications, "notifications", true, "ring the terminal bell when a download is ready (saved)")
	fs.BoolVar(&opts.reveal, "reveal", false, "show the saved file in the file manager")
	fs.BoolVarP(&opts.showVersion, "version", "v", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	opts.notificationsSet = fs.Changed("notifications")
	opts.url = fs.Arg(0)

	if !validQuality(model.Quality(opts.quality)) {
		return nil, fmt.Errorf("unknown quality %q", opts.quality)
	}
	if opts.url == "" && !opts.showHistory && !opts.clearHistory && !opts.notificationsSet && !opts.showVersion {
		fs.Usage()
		return nil, fmt.Errorf("missing URL")
	}
	return opts, nil
}

func validQuality(q model.Quality) bool {
	for _, option := range model.QualityOptions() {
		if q == option {
			return true
		}
	}
	return false
}

func run(ctx context.Context, opts *options, stdout io.Writer) int {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "vidgrab-cli: %v\n", err)
		return 1
	}
	log := logger.Setup(cfg.Log.Level, os.Stderr)

	dataDir, err := dataDirectory(cfg.Storage.DataDir)
	if err != nil {
		log.Error("no data directory", "err", err)
		return 1
	}
	st, err := store.OpenSQLite(dataDir, log)
	if err != nil {
		log.Error("open store", "err", err)
		return 1
	}
	defer st.Close()

	settings := config.NewSettings(st)
	recorder := history.NewRecorder(st, log)

	if opts.notificationsSet {
		settings.SetNotificationsEnabled(opts.notifications)
	}
	if opts.clearHistory {
		recorder.Clear()
		fmt.Fprintln(stdout, "History cleared.")
	}
	if opts.showHistory {
		printHistory(stdout, recorder.Entries(), time.Now())
	}
	if opts.url == "" {
		return 0
	}

	return fetch(ctx, cfg, opts, settings, recorder, log, stdout)
}

func fetch(ctx context.Context, cfg *config.Config, opts *options, settings *config.Settings, recorder *history.Recorder, log *slog.Logger, stdout io.Writer) int {
	client, err := api.NewClient(cfg.Backend.URL,
		api.WithHTTPClient(&http.Client{Timeout: cfg.Backend.RequestTimeout}),
		api.WithProbeTimeout(cfg.Backend.ProbeTimeout),
		api.WithLogger(log),
	)
	if err != nil {
		log.Error("invalid backend url", "err", err)
		return 1
	}

	outDir := opts.output
	if outDir == "" {
		if outDir, err = platform.GetHomeDownloadsDir(); err != nil {
			log.Error("no downloads directory", "err", err)
			return 1
		}
	}

	saved := make(chan platform.SavedFile, 1)
	failed := make(chan error, 1)
	saver := platform.NewDiskSaver(client, outDir, log)
	saver.SetSavedCallback(func(f platform.SavedFile) { saved <- f })
	saver.SetFailedCallback(func(taskID string, err error) { failed <- err })

	monitor := connection.NewMonitor(client, log)
	monitor.Probe(ctx)

	poller := download.NewPoller(client,
		download.WithInterval(cfg.Poll.Interval),
		download.WithPollerLogger(log),
	)
	manager := download.NewManager(client, monitor, poller,
		download.WithHistory(recorder),
		download.WithNotifier(platform.NewTerminalNotifier(stdout, log)),
		download.WithFileTrigger(saver),
		download.WithSettings(settings),
		download.WithResetDelay(cfg.Poll.ResetDelay),
		download.WithLogger(log),
	)
	defer manager.Close()

	printer := newProgressPrinter(stdout)
	manager.SetUpdateCallback(printer.Update)

	format := model.FormatVideo
	if opts.audio {
		format = model.FormatAudio
	}
	if err := manager.Submit(ctx, opts.url, format, model.Quality(opts.quality)); err != nil {
		log.Debug("submit failed", "err", err)
		return 1
	}

	select {
	case task := <-printer.Done():
		if task.State != model.TaskStateReady {
			return 1
		}
	case <-ctx.Done():
		fmt.Fprintln(stdout, "Interrupted.")
		return 130
	}

	var file platform.SavedFile
	select {
	case file = <-saved:
		fmt.Fprintf(stdout, "Saved %s (%s)\n", file.Path, humanize.Bytes(uint64(file.Size)))
	case err := <-failed:
		log.Warn("save failed", "err", err)
		fmt.Fprintln(stdout, "The file could not be saved; see the log for details.")
		return 1
	case <-ctx.Done():
		fmt.Fprintln(stdout, "Interrupted.")
		return 130
	}

	if opts.reveal {
		if err := platform.OpenFileInManager(file.Path); err != nil {
			log.Warn("reveal failed", "err", err)
		}
	}
	return 0
}

func dataDirectory(configured string) (string, error) {
	if configured != "" {
		return configured, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "vidgrab"), nil
}

func printHistory(w io.Writer, entries []model.HistoryEntry, now time.Time) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No downloads yet.")
		return
	}
	for _, e := range entries {
		when := humanize.RelTime(e.Timestamp, now, "ago", "from now")
		fmt.Fprintf(w, "%-5s  %-14s  %s\n      %s\n", e.Format, when, e.Filename, e.Link)
	}
}
