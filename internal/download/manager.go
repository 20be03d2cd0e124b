package download

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/ytget/vidgrab/internal/api"
	"github.com/ytget/vidgrab/internal/model"
)

// DefaultResetDelay is how long a ready task stays visible before the
// manager returns to idle
const DefaultResetDelay = 4 * time.Second

// User facing messages
const (
	MsgInitiating     = "Initiating download..."
	MsgDisconnected   = "Backend disconnected. Please check your internet."
	MsgSubmitFailed   = "Failed to start download."
	MsgDownloadFailed = "Download failed."
	MsgReady          = "Download started!"
	NotificationTitle = "Download Ready!"
	DefaultFilename   = "Download"
)

var (
	// ErrEmptyURL is returned by Submit for a blank link; nothing changes
	ErrEmptyURL = errors.New("url is empty")
	// ErrDisconnected is returned by Submit when the service is unreachable
	ErrDisconnected = errors.New("service unreachable")
	// ErrNothingToSave is returned by RetrySave when no task has finished
	ErrNothingToSave = errors.New("no finished download to save")
	// ErrClosed is returned after Close
	ErrClosed = errors.New("manager closed")
)

// Manager owns the lifecycle of the single active task
type Manager struct {
	client   TaskClient
	monitor  ConnectionProber
	poller   *Poller
	history  Recorder
	notifier Notifier
	trigger  FileTrigger
	settings NotificationSettings
	logger   *slog.Logger

	resetDelay time.Duration
	now        func() time.Time

	// pollMu orders generation checks with poller Start/Stop
	pollMu sync.Mutex

	mu         sync.Mutex
	task       model.Task
	gen        uint64
	resetTimer *time.Timer
	lastReady  model.Task
	closed     bool
	onUpdate   func(model.Task)

	// retrievals run off the poller goroutine; Close cancels and waits for them
	retrieveCtx  context.Context
	stopRetrieve context.CancelFunc
	retrievals   sync.WaitGroup
}

// Option configures a Manager
type Option func(*Manager)

// WithHistory sets the recorder for completed downloads
func WithHistory(r Recorder) Option {
	return func(m *Manager) { m.history = r }
}

// WithNotifier sets the notifier fired on completion
func WithNotifier(n Notifier) Option {
	return func(m *Manager) { m.notifier = n }
}

// WithFileTrigger sets how finished files are retrieved
func WithFileTrigger(t FileTrigger) Option {
	return func(m *Manager) { m.trigger = t }
}

// WithSettings sets the source of the notification toggle
func WithSettings(s NotificationSettings) Option {
	return func(m *Manager) { m.settings = s }
}

// WithResetDelay sets how long a ready task is shown
func WithResetDelay(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.resetDelay = d
		}
	}
}

// WithLogger sets the logger
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewManager creates an idle manager
func NewManager(client TaskClient, monitor ConnectionProber, poller *Poller, opts ...Option) *Manager {
	m := &Manager{
		client:     client,
		monitor:    monitor,
		poller:     poller,
		logger:     slog.Default(),
		resetDelay: DefaultResetDelay,
		now:        time.Now,
		task:       model.NewTask(),
	}
	m.retrieveCtx, m.stopRetrieve = context.WithCancel(context.Background())
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SetUpdateCallback sets the callback invoked after every state change.
// The callback runs with the manager locked, in order, and must not call
// back into the manager.
func (m *Manager) SetUpdateCallback(callback func(model.Task)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onUpdate = callback
}

// Snapshot returns a copy of the current task
func (m *Manager) Snapshot() model.Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.task
}

// Submit starts a new task for rawURL. Any task in progress is superseded.
func (m *Manager) Submit(ctx context.Context, rawURL string, format model.Format, quality model.Quality) error {
	link := strings.TrimSpace(rawURL)
	if link == "" {
		return ErrEmptyURL
	}
	if !format.Valid() {
		format = model.FormatVideo
	}
	if format == model.FormatAudio || quality == "" {
		quality = model.QualityBest
	}

	if m.isClosed() {
		return ErrClosed
	}

	if m.monitor != nil && m.monitor.State() == model.ConnectionError {
		if m.monitor.Probe(ctx) == model.ConnectionError {
			m.supersede(model.Task{
				SourceURL:   link,
				Format:      format,
				Quality:     quality,
				State:       model.TaskStateError,
				Message:     MsgDisconnected,
				SubmittedAt: m.now(),
			})
			m.logger.Warn("submit rejected, service unreachable", "url", link)
			return ErrDisconnected
		}
	}

	gen, ok := m.supersede(model.Task{
		SourceURL:   link,
		Format:      format,
		Quality:     quality,
		State:       model.TaskStateSubmitting,
		Message:     MsgInitiating,
		SubmittedAt: m.now(),
	})
	if !ok {
		return ErrClosed
	}

	taskID, err := m.client.CreateTask(ctx, api.CreateTaskRequest{
		URL:     link,
		Format:  string(format),
		Quality: string(quality),
	})

	m.mu.Lock()
	if m.closed || m.gen != gen {
		m.mu.Unlock()
		m.logger.Debug("submission superseded", "url", link, "task_id", taskID)
		return nil
	}
	if err != nil {
		msg := api.ServiceMessage(err)
		if msg == "" {
			msg = MsgSubmitFailed
		}
		m.task.State = model.TaskStateError
		m.task.Message = msg
		m.notifyLocked()
		m.mu.Unlock()

		m.logger.Warn("create task failed", "url", link, "err", err)
		return fmt.Errorf("create task: %w", err)
	}
	m.task.ID = taskID
	m.task.State = model.TaskStateQueued
	m.notifyLocked()
	m.mu.Unlock()

	m.logger.Info("task queued", "task_id", taskID, "format", format, "quality", quality)

	m.pollMu.Lock()
	defer m.pollMu.Unlock()
	m.mu.Lock()
	current := !m.closed && m.gen == gen
	m.mu.Unlock()
	if current {
		m.poller.Start(taskID, m.handler(taskID, gen))
	}
	return nil
}

// Clear returns to idle immediately, dropping the active task
func (m *Manager) Clear() {
	if _, ok := m.supersede(model.NewTask()); ok {
		m.logger.Debug("task cleared")
	}
}

// RetrySave asks the file trigger again for the last ready task. The
// retrieval runs in the background.
func (m *Manager) RetrySave() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrClosed
	}
	last := m.lastReady
	m.mu.Unlock()

	if last.ID == "" {
		return ErrNothingToSave
	}
	return m.retrieve(last.ID, last.ResultFilename)
}

// retrieve starts the file trigger in its own goroutine
func (m *Manager) retrieve(taskID, filename string) error {
	if m.trigger == nil {
		return nil
	}
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrClosed
	}
	m.retrievals.Add(1)
	m.mu.Unlock()

	go func() {
		defer m.retrievals.Done()
		if err := m.trigger.Retrieve(m.retrieveCtx, taskID, filename); err != nil {
			m.logger.Warn("file retrieval failed", "task_id", taskID, "err", err)
		}
	}()
	return nil
}

// Close stops polling and pending timers, cancels running retrievals and
// waits for them. Later calls return ErrClosed.
func (m *Manager) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	m.gen++
	m.stopResetLocked()
	m.mu.Unlock()

	m.pollMu.Lock()
	m.poller.Stop()
	m.pollMu.Unlock()

	m.stopRetrieve()
	m.retrievals.Wait()
}

func (m *Manager) isClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// supersede installs next as the active task under a new generation and
// retires the poller and reset timer of the previous one
func (m *Manager) supersede(next model.Task) (uint64, bool) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return 0, false
	}
	m.gen++
	gen := m.gen
	m.stopResetLocked()
	m.task = next
	m.notifyLocked()
	m.mu.Unlock()

	m.pollMu.Lock()
	m.poller.Stop()
	m.pollMu.Unlock()
	return gen, true
}

func (m *Manager) handler(taskID string, gen uint64) Handler {
	return func(u Update) {
		m.apply(taskID, gen, u)
	}
}

// current reports whether an update for taskID from generation gen may
// still change state. Must be called with m.mu held.
func (m *Manager) current(taskID string, gen uint64) bool {
	return !m.closed && m.gen == gen && m.task.ID == taskID && !m.task.State.IsTerminal()
}

func (m *Manager) apply(taskID string, gen uint64, u Update) {
	m.mu.Lock()
	if !m.current(taskID, gen) {
		m.mu.Unlock()
		m.logger.Debug("stale status discarded", "task_id", taskID, "state", u.State)
		return
	}

	if u.State == model.TaskStateReady {
		ready := m.task
		ready.State = model.TaskStateReady
		ready.Progress = 100
		ready.ResultFilename = u.Filename
		ready.ResultSize = u.FileSize
		ready.Message = readyMessage(u.FileSize)
		m.lastReady = ready
		m.mu.Unlock()

		m.complete(ready)

		m.mu.Lock()
		defer m.mu.Unlock()
		if !m.current(taskID, gen) {
			return
		}
		m.task = ready
		m.scheduleResetLocked(gen)
		m.notifyLocked()
		return
	}
	defer m.mu.Unlock()

	if u.State == model.TaskStateError {
		m.task.State = model.TaskStateError
		m.task.Message = u.Message
		if m.task.Message == "" {
			m.task.Message = MsgDownloadFailed
		}
		m.logger.Warn("task failed", "task_id", taskID, "message", m.task.Message)
	} else {
		m.task.State = u.State
		m.task.Progress = u.Progress
		if u.Message != "" {
			m.task.Message = u.Message
		}
	}
	m.notifyLocked()
}

// complete runs the side effects of a ready task outside the lock. File
// retrieval only starts here so the poller session ends right away.
func (m *Manager) complete(task model.Task) {
	filename := task.ResultFilename
	if filename == "" {
		filename = DefaultFilename
	}
	m.logger.Info("task ready", "task_id", task.ID, "filename", filename, "size", task.ResultSize)

	if m.history != nil {
		m.history.Append(model.HistoryEntry{
			Link:      task.SourceURL,
			Filename:  filename,
			Timestamp: m.now(),
			Format:    task.Format,
		})
	}

	if m.notifier != nil && (m.settings == nil || m.settings.GetNotificationsEnabled()) && m.notifier.Permitted() {
		if err := m.notifier.Notify(NotificationTitle, filename); err != nil {
			m.logger.Debug("notification failed", "task_id", task.ID, "err", err)
		}
	}

	if err := m.retrieve(task.ID, task.ResultFilename); err != nil {
		m.logger.Debug("file retrieval skipped", "task_id", task.ID, "err", err)
	}
}

func (m *Manager) scheduleResetLocked(gen uint64) {
	m.stopResetLocked()
	m.resetTimer = time.AfterFunc(m.resetDelay, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if m.closed || m.gen != gen || m.task.State != model.TaskStateReady {
			return
		}
		m.gen++
		m.resetTimer = nil
		m.task = model.NewTask()
		m.notifyLocked()
		m.logger.Debug("ready task reset")
	})
}

func (m *Manager) stopResetLocked() {
	if m.resetTimer != nil {
		m.resetTimer.Stop()
		m.resetTimer = nil
	}
}

func readyMessage(size string) string {
	if size == "" {
		return MsgReady
	}
	return fmt.Sprintf("%s (%s)", MsgReady, size)
}

// notifyLocked must be called with m.mu held
func (m *Manager) notifyLocked() {
	if m.onUpdate != nil {
		m.onUpdate(m.task)
	}
}
