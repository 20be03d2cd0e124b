package ui

import (
	"fmt"
	"image/color"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/ytget/vidgrab/internal/model"
)

// badgeText returns the connection badge label
func badgeText(state model.ConnectionState, l *Localization) string {
	switch state {
	case model.ConnectionConnected:
		return l.GetText(KeyConnected)
	case model.ConnectionError:
		return l.GetText(KeyOffline)
	default:
		return l.GetText(KeyConnecting)
	}
}

func badgeColor(state model.ConnectionState) color.Color {
	switch state {
	case model.ConnectionConnected:
		return BadgeConnected
	case model.ConnectionError:
		return BadgeOffline
	default:
		return BadgeChecking
	}
}

// statusTitle returns the localized header above the status message
func statusTitle(state model.TaskState, l *Localization) string {
	switch state {
	case model.TaskStateSubmitting, model.TaskStateQueued:
		return l.GetText(KeyStatusQueued)
	case model.TaskStateDownloading:
		return l.GetText(KeyStatusDownloading)
	case model.TaskStateReady:
		return l.GetText(KeyStatusComplete)
	case model.TaskStateError:
		return l.GetText(KeyStatusFailed)
	default:
		return ""
	}
}

func progressText(task model.Task) string {
	if task.State != model.TaskStateDownloading {
		return ""
	}
	return fmt.Sprintf(ProgressLabelFormat, task.Progress)
}

func formatIcon(format model.Format) string {
	if format == model.FormatAudio {
		return IconMusic
	}
	return IconVideo
}

// historyTitle is the first line of a history row
func historyTitle(entry model.HistoryEntry) string {
	return formatIcon(entry.Format) + " " + entry.Filename
}

// historyDetail is the second line of a history row: when and from where
func historyDetail(entry model.HistoryEntry, now time.Time) string {
	when := humanize.RelTime(entry.Timestamp, now, "ago", "from now")
	return when + MiddleDotSeparator + entry.Link
}
