package download

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ytget/vidgrab/internal/api"
	"github.com/ytget/vidgrab/internal/model"
)

// DefaultPollInterval is the cadence of status requests
const DefaultPollInterval = time.Second

// SessionExpiredMessage is reported when the service no longer knows the task
const SessionExpiredMessage = "Session expired. The server may have restarted, please try again."

// Update is one status observation for a task
type Update struct {
	TaskID   string
	State    model.TaskState
	Progress float64
	Message  string
	Filename string
	FileSize string
}

// Handler receives updates from a poll session. It runs on the session
// goroutine and must not call Start, Cancel or Stop on the same poller.
type Handler func(Update)

type session struct {
	token  string
	taskID string
	cancel context.CancelFunc
	done   chan struct{}
}

// Poller polls the status of at most one task at a time
type Poller struct {
	client   StatusClient
	interval time.Duration
	logger   *slog.Logger

	mu      sync.Mutex
	current *session
}

// PollerOption configures a Poller
type PollerOption func(*Poller)

// WithInterval sets the polling cadence
func WithInterval(d time.Duration) PollerOption {
	return func(p *Poller) {
		if d > 0 {
			p.interval = d
		}
	}
}

// WithPollerLogger sets the logger
func WithPollerLogger(l *slog.Logger) PollerOption {
	return func(p *Poller) {
		if l != nil {
			p.logger = l
		}
	}
}

// NewPoller creates an idle poller
func NewPoller(client StatusClient, opts ...PollerOption) *Poller {
	p := &Poller{
		client:   client,
		interval: DefaultPollInterval,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start retires any running session and begins polling taskID. The returned
// token identifies the new session for Cancel.
func (p *Poller) Start(taskID string, handler Handler) string {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.retire()

	ctx, cancel := context.WithCancel(context.Background())
	s := &session{
		token:  uuid.NewString(),
		taskID: taskID,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	p.current = s
	go p.run(ctx, s, handler)

	p.logger.Debug("polling started", "task_id", taskID, "session", s.token)
	return s.token
}

// Cancel stops the session identified by token. Unknown or already retired
// tokens are ignored. When Cancel returns the session goroutine has exited.
func (p *Poller) Cancel(token string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current == nil || p.current.token != token {
		return
	}
	p.retire()
}

// Stop stops whatever session is running
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.retire()
}

// Active reports whether a session is still polling
func (p *Poller) Active() bool {
	p.mu.Lock()
	s := p.current
	p.mu.Unlock()

	if s == nil {
		return false
	}
	select {
	case <-s.done:
		return false
	default:
		return true
	}
}

// retire must be called with p.mu held
func (p *Poller) retire() {
	s := p.current
	if s == nil {
		return
	}
	p.current = nil
	s.cancel()
	<-s.done
	p.logger.Debug("polling stopped", "task_id", s.taskID, "session", s.token)
}

func (p *Poller) run(ctx context.Context, s *session, handler Handler) {
	defer close(s.done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		update, ok := p.poll(ctx, s.taskID)
		if !ok {
			continue
		}
		if ctx.Err() != nil {
			return
		}
		handler(update)
		if update.State.IsTerminal() {
			return
		}
	}
}

func (p *Poller) poll(ctx context.Context, taskID string) (Update, bool) {
	status, err := p.client.TaskStatus(ctx, taskID)
	if errors.Is(err, api.ErrTaskNotFound) {
		return Update{
			TaskID:  taskID,
			State:   model.TaskStateError,
			Message: SessionExpiredMessage,
		}, true
	}
	if err != nil {
		if ctx.Err() == nil {
			p.logger.Debug("status request failed", "task_id", taskID, "err", err)
		}
		return Update{}, false
	}

	state, ok := model.ParseRemoteState(status.Status)
	if !ok {
		p.logger.Debug("unknown remote status", "task_id", taskID, "status", status.Status)
		return Update{}, false
	}

	return Update{
		TaskID:   taskID,
		State:    state,
		Progress: clampProgress(status.Progress),
		Message:  status.Message,
		Filename: status.Filename,
		FileSize: status.FileSizeStr,
	}, true
}

func clampProgress(p float64) float64 {
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	default:
		return p
	}
}
