package platform

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"

	"github.com/dustin/go-humanize"
)

// URLOpener is satisfied by fyne.App
type URLOpener interface {
	OpenURL(*url.URL) error
}

// FileLocator builds the retrieval URL of a finished task
type FileLocator interface {
	FileURL(taskID string) *url.URL
}

// FileOpener streams a finished task's file
type FileOpener interface {
	OpenFile(ctx context.Context, taskID string) (io.ReadCloser, string, error)
}

// BrowserTrigger hands the file URL to the OS, which downloads it with the
// default browser or download manager
type BrowserTrigger struct {
	opener  URLOpener
	locator FileLocator
	logger  *slog.Logger
}

// NewBrowserTrigger creates a trigger that opens file URLs through opener
func NewBrowserTrigger(opener URLOpener, locator FileLocator, logger *slog.Logger) *BrowserTrigger {
	if logger == nil {
		logger = slog.Default()
	}
	return &BrowserTrigger{opener: opener, locator: locator, logger: logger}
}

// Retrieve opens the file URL of taskID. The browser owns the transfer, so
// ctx is not consulted.
func (b *BrowserTrigger) Retrieve(_ context.Context, taskID, filename string) error {
	u := b.locator.FileURL(taskID)
	b.logger.Info("opening file url", "task_id", taskID, "filename", filename, "url", u.String())
	if err := b.opener.OpenURL(u); err != nil {
		return fmt.Errorf("open %s: %w", u, err)
	}
	return nil
}

// SavedFile describes a file written by DiskSaver
type SavedFile struct {
	TaskID string
	Path   string
	Size   int64
}

// DiskSaver downloads finished files into a directory
type DiskSaver struct {
	opener   FileOpener
	dir      string
	logger   *slog.Logger
	onSaved  func(SavedFile)
	onFailed func(taskID string, err error)
}

// NewDiskSaver creates a saver writing into dir
func NewDiskSaver(opener FileOpener, dir string, logger *slog.Logger) *DiskSaver {
	if logger == nil {
		logger = slog.Default()
	}
	return &DiskSaver{opener: opener, dir: dir, logger: logger}
}

// SetSavedCallback sets the callback invoked after a file is written
func (d *DiskSaver) SetSavedCallback(callback func(SavedFile)) {
	d.onSaved = callback
}

// SetFailedCallback sets the callback invoked when a transfer fails
func (d *DiskSaver) SetFailedCallback(callback func(taskID string, err error)) {
	d.onFailed = callback
}

// Retrieve downloads the file of taskID. The name reported by the service
// wins over filename; neither may escape the target directory. ctx bounds
// the transfer.
func (d *DiskSaver) Retrieve(ctx context.Context, taskID, filename string) error {
	saved, err := d.save(ctx, taskID, filename)
	if err != nil {
		if d.onFailed != nil {
			d.onFailed(taskID, err)
		}
		return err
	}
	if d.onSaved != nil {
		d.onSaved(saved)
	}
	return nil
}

func (d *DiskSaver) save(ctx context.Context, taskID, filename string) (SavedFile, error) {
	body, served, err := d.opener.OpenFile(ctx, taskID)
	if err != nil {
		return SavedFile{}, err
	}
	defer body.Close()

	name := served
	if name == "" {
		name = filename
	}
	name = SanitizeFilename(name)

	if err := CreateDirectoryIfNotExists(d.dir); err != nil {
		return SavedFile{}, fmt.Errorf("create %s: %w", d.dir, err)
	}
	path := UniquePath(d.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return SavedFile{}, fmt.Errorf("create file: %w", err)
	}
	size, err := io.Copy(f, body)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return SavedFile{}, fmt.Errorf("write %s: %w", path, err)
	}

	d.logger.Info("file saved", "task_id", taskID, "path", path, "size", humanize.Bytes(uint64(size)))
	NotifyMediaScanner(path, d.logger)
	return SavedFile{TaskID: taskID, Path: path, Size: size}, nil
}
