package model

// TaskState represents the lifecycle state of a download task
type TaskState string

const (
	// TaskStateIdle means nothing has been submitted yet, or the last task was reset
	TaskStateIdle TaskState = "idle"

	// TaskStateSubmitting means the create request is in flight
	TaskStateSubmitting TaskState = "submitting"

	// TaskStateQueued means the remote service accepted the task
	TaskStateQueued TaskState = "queued"

	// TaskStateDownloading means the remote service reports progress
	TaskStateDownloading TaskState = "downloading"

	// TaskStateReady means the file was produced and retrieval was triggered
	TaskStateReady TaskState = "ready"

	// TaskStateError means the task failed or could not be created
	TaskStateError TaskState = "error"
)

// String returns the string representation of TaskState
func (ts TaskState) String() string {
	return string(ts)
}

// IsActive returns true while the task is waiting on the remote service
func (ts TaskState) IsActive() bool {
	return ts == TaskStateSubmitting || ts == TaskStateQueued || ts == TaskStateDownloading
}

// IsTerminal returns true for ready and error; no polling happens in these states
func (ts TaskState) IsTerminal() bool {
	return ts == TaskStateReady || ts == TaskStateError
}

// ParseRemoteState maps a status string reported by the remote service.
// Unknown values are reported as not ok.
func ParseRemoteState(s string) (TaskState, bool) {
	switch TaskState(s) {
	case TaskStateQueued, TaskStateDownloading, TaskStateReady, TaskStateError:
		return TaskState(s), true
	}
	return "", false
}

// ConnectionState is the reachability of the remote service
type ConnectionState string

const (
	ConnectionChecking  ConnectionState = "checking"
	ConnectionConnected ConnectionState = "connected"
	ConnectionError     ConnectionState = "error"
)

// String returns the string representation of ConnectionState
func (cs ConnectionState) String() string {
	return string(cs)
}
