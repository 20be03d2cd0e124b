package model

import (
	"fmt"
	"strings"
	"time"
)

// Format is the kind of media requested from the remote service
type Format string

const (
	FormatVideo Format = "video"
	FormatAudio Format = "audio"
)

// Valid reports whether f is a known format
func (f Format) Valid() bool {
	return f == FormatVideo || f == FormatAudio
}

// Quality is a rendition hint, only meaningful for video
type Quality string

const (
	QualityBest  Quality = "best"
	Quality1080p Quality = "1080"
	Quality720p  Quality = "720"
	Quality480p  Quality = "480"
)

// QualityOptions returns the renditions offered for video downloads
func QualityOptions() []Quality {
	return []Quality{QualityBest, Quality1080p, Quality720p, Quality480p}
}

// Label returns the short label shown next to the quality picker
func (q Quality) Label() string {
	if q == QualityBest || q == "" {
		return "Max"
	}
	return string(q) + "p"
}

// Task represents one extraction job tracked end-to-end
type Task struct {
	ID             string    // assigned by the remote service, empty before acceptance
	SourceURL      string    // user supplied link
	Format         Format    // video or audio
	Quality        Quality   // rendition hint for video
	State          TaskState // lifecycle state
	Progress       float64   // 0 to 100, meaningful while downloading
	Message        string    // human readable status text
	ResultFilename string    // set when ready
	ResultSize     string    // human readable size reported by the service, set when ready
	SubmittedAt    time.Time // when submit was called
}

// NewTask returns an idle task
func NewTask() Task {
	return Task{State: TaskStateIdle}
}

// GetProgressLabel returns the progress formatted as a whole percentage
func (t *Task) GetProgressLabel() string {
	if t.State != TaskStateDownloading {
		return ""
	}
	return fmt.Sprintf("%.0f%%", t.Progress)
}

// GetStatusLabel returns the short header shown above the status message
func (t *Task) GetStatusLabel() string {
	switch t.State {
	case TaskStateSubmitting, TaskStateQueued:
		return "Queued..."
	case TaskStateDownloading:
		return "Downloading..."
	case TaskStateReady:
		return "Complete"
	case TaskStateError:
		return "Failed"
	default:
		return ""
	}
}

// GetDisplayTitle returns the result filename without its extension, or
// the source URL when the service named no file
func (t *Task) GetDisplayTitle() string {
	if t.ResultFilename != "" {
		name := t.ResultFilename
		if idx := strings.LastIndex(name, "."); idx > 0 {
			name = name[:idx]
		}
		return name
	}
	return t.SourceURL
}

// HistoryEntry records one completed download
type HistoryEntry struct {
	Link      string    `json:"link"`
	Filename  string    `json:"filename"`
	Timestamp time.Time `json:"date"`
	Format    Format    `json:"type"`
}

// AccentColor is the user selected theme accent
type AccentColor string

const (
	AccentRed    AccentColor = "red"
	AccentBlue   AccentColor = "blue"
	AccentGreen  AccentColor = "green"
	AccentPurple AccentColor = "purple"
)

// AccentOptions returns the selectable accents in display order
func AccentOptions() []AccentColor {
	return []AccentColor{AccentRed, AccentBlue, AccentPurple, AccentGreen}
}

// Valid reports whether a is a known accent
func (a AccentColor) Valid() bool {
	switch a {
	case AccentRed, AccentBlue, AccentGreen, AccentPurple:
		return true
	}
	return false
}
