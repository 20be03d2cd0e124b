package download

import (
	"context"

	"github.com/ytget/vidgrab/internal/api"
	"github.com/ytget/vidgrab/internal/model"
)

// StatusClient fetches the remote status of a task
type StatusClient interface {
	TaskStatus(ctx context.Context, taskID string) (*api.TaskStatus, error)
}

// TaskClient creates tasks on the remote service
type TaskClient interface {
	CreateTask(ctx context.Context, in api.CreateTaskRequest) (string, error)
}

// ConnectionProber is the part of the connection monitor the manager needs
type ConnectionProber interface {
	State() model.ConnectionState
	Probe(ctx context.Context) model.ConnectionState
}

// Recorder stores completed downloads
type Recorder interface {
	Append(entry model.HistoryEntry)
}

// Notifier posts a user-visible notification. Failures are ignored.
type Notifier interface {
	Permitted() bool
	Notify(title, body string) error
}

// FileTrigger retrieves a finished task's file. Success is not observable
// by the manager; ctx is cancelled when the manager closes.
type FileTrigger interface {
	Retrieve(ctx context.Context, taskID, filename string) error
}

// NotificationSettings reports whether the user enabled notifications
type NotificationSettings interface {
	GetNotificationsEnabled() bool
}

// Lifecycle is the interface consumed by the UI and the CLI
type Lifecycle interface {
	SetUpdateCallback(func(model.Task))
	Submit(ctx context.Context, url string, format model.Format, quality model.Quality) error
	Clear()
	RetrySave() error
	Snapshot() model.Task
	Close()
}
