package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/ytget/vidgrab/internal/api"
	"github.com/ytget/vidgrab/internal/config"
	"github.com/ytget/vidgrab/internal/connection"
	"github.com/ytget/vidgrab/internal/download"
	"github.com/ytget/vidgrab/internal/history"
	"github.com/ytget/vidgrab/internal/logger"
	"github.com/ytget/vidgrab/internal/platform"
	"github.com/ytget/vidgrab/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.vidgrab"
	AppName = "VidGrab"

	// ConfigEnv names the optional config file
	ConfigEnv = "VIDGRAB_CONFIG"
)

func main() {
	cfg, err := config.Load(os.Getenv(ConfigEnv))
	if err != nil {
		fmt.Fprintf(os.Stderr, "vidgrab: %v\n", err)
		os.Exit(1)
	}
	log := logger.Setup(cfg.Log.Level, os.Stderr)
	log.Info("starting", "app", AppName, "version", version, "backend", cfg.Backend.URL)

	myApp := app.NewWithID(AppID)
	prefs := myApp.Preferences()
	settings := config.NewSettings(prefs)

	myApp.Settings().SetTheme(ui.NewCompactTheme(settings.GetAccent()))

	myWindow := myApp.NewWindow(fmt.Sprintf("%s v%s", AppName, version))
	myWindow.Resize(fyne.NewSize(ui.WindowWidth, ui.WindowHeight))

	client, err := api.NewClient(cfg.Backend.URL,
		api.WithHTTPClient(&http.Client{Timeout: cfg.Backend.RequestTimeout}),
		api.WithProbeTimeout(cfg.Backend.ProbeTimeout),
		api.WithLogger(log),
	)
	if err != nil {
		log.Error("invalid backend url", "err", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	monitor := connection.NewMonitor(client, log)
	recorder := history.NewRecorder(prefs, log)
	poller := download.NewPoller(client,
		download.WithInterval(cfg.Poll.Interval),
		download.WithPollerLogger(log),
	)

	manager := download.NewManager(client, monitor, poller,
		download.WithHistory(recorder),
		download.WithNotifier(platform.NewDesktopNotifier(myApp)),
		download.WithFileTrigger(fileTrigger(myApp, client)),
		download.WithSettings(settings),
		download.WithResetDelay(cfg.Poll.ResetDelay),
		download.WithLogger(log),
	)

	ui.NewRootUI(ctx, myWindow, myApp, ui.Deps{
		Manager:  manager,
		Monitor:  monitor,
		History:  recorder,
		Settings: settings,
		Logger:   log,
	})

	go monitor.Watch(ctx, cfg.Backend.ProbeInterval)

	myWindow.SetOnClosed(func() {
		cancel()
		manager.Close()
	})

	myWindow.ShowAndRun()
}

// fileTrigger saves straight into Downloads on Android and lets the OS
// browser fetch the file elsewhere
func fileTrigger(myApp fyne.App, client *api.Client) download.FileTrigger {
	if !platform.IsAndroid() {
		return platform.NewBrowserTrigger(myApp, client, nil)
	}
	dir, err := platform.GetHomeDownloadsDir()
	if err != nil {
		return platform.NewBrowserTrigger(myApp, client, nil)
	}
	return platform.NewDiskSaver(client, dir, nil)
}
