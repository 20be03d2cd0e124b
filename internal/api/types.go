package api

import (
	"errors"
	"fmt"
)

// CreateTaskRequest is the body of POST /download
type CreateTaskRequest struct {
	URL     string `json:"url" validate:"required"`
	Format  string `json:"format" validate:"required,oneof=video audio"`
	Quality string `json:"quality" validate:"required"`
}

type createTaskResponse struct {
	TaskID string `json:"task_id"`
}

// TaskStatus is the body of GET /status/{task_id}
type TaskStatus struct {
	Status      string  `json:"status"`
	Progress    float64 `json:"progress,omitempty"`
	Message     string  `json:"message,omitempty"`
	Filename    string  `json:"filename,omitempty"`
	FileSizeStr string  `json:"file_size_str,omitempty"`
}

type errorResponse struct {
	Message string `json:"message"`
	Detail  string `json:"detail"`
}

// ErrTaskNotFound is returned when the service does not know the task id,
// typically after a server restart.
var ErrTaskNotFound = errors.New("task not found")

// Error is a non-2xx response from the service
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("service returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("service returned status %d: %s", e.StatusCode, e.Message)
}

// ServiceMessage returns the message carried by an *Error in err's chain,
// or "" when there is none.
func ServiceMessage(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}
