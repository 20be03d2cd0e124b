package ui

import (
	"testing"
	"time"

	"github.com/ytget/vidgrab/internal/model"
)

func TestBadgeText(t *testing.T) {
	l := NewLocalization()
	testCases := []struct {
		state    model.ConnectionState
		expected string
	}{
		{model.ConnectionConnected, "System Operational"},
		{model.ConnectionChecking, "Connecting..."},
		{model.ConnectionError, "Backend Offline"},
	}

	for _, tc := range testCases {
		if got := badgeText(tc.state, l); got != tc.expected {
			t.Errorf("badgeText(%s) = %q, want %q", tc.state, got, tc.expected)
		}
	}
}

func TestBadgeColor(t *testing.T) {
	if badgeColor(model.ConnectionConnected) != BadgeConnected {
		t.Error("connected badge should be green")
	}
	if badgeColor(model.ConnectionError) != BadgeOffline {
		t.Error("offline badge should be red")
	}
	if badgeColor(model.ConnectionChecking) != BadgeChecking {
		t.Error("checking badge should be amber")
	}
}

func TestStatusTitle(t *testing.T) {
	l := NewLocalization()
	testCases := []struct {
		state    model.TaskState
		expected string
	}{
		{model.TaskStateIdle, ""},
		{model.TaskStateSubmitting, "Queued..."},
		{model.TaskStateQueued, "Queued..."},
		{model.TaskStateDownloading, "Downloading..."},
		{model.TaskStateReady, "Complete"},
		{model.TaskStateError, "Failed"},
	}

	for _, tc := range testCases {
		if got := statusTitle(tc.state, l); got != tc.expected {
			t.Errorf("statusTitle(%s) = %q, want %q", tc.state, got, tc.expected)
		}
	}
}

func TestProgressText(t *testing.T) {
	if got := progressText(model.Task{State: model.TaskStateDownloading, Progress: 42.6}); got != "43%" {
		t.Errorf("Expected 43%%, got %q", got)
	}
	if got := progressText(model.Task{State: model.TaskStateQueued, Progress: 42}); got != "" {
		t.Errorf("Expected no progress outside downloading, got %q", got)
	}
}

func TestHistoryRowText(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	entry := model.HistoryEntry{
		Link:      "https://example.com/v/1",
		Filename:  "clip.mp4",
		Timestamp: now.Add(-3 * time.Minute),
		Format:    model.FormatVideo,
	}

	if got := historyTitle(entry); got != IconVideo+" clip.mp4" {
		t.Errorf("Unexpected title %q", got)
	}
	if got := historyDetail(entry, now); got != "3 minutes ago · https://example.com/v/1" {
		t.Errorf("Unexpected detail %q", got)
	}

	entry.Format = model.FormatAudio
	if got := historyTitle(entry); got != IconMusic+" clip.mp4" {
		t.Errorf("Unexpected audio title %q", got)
	}
}
