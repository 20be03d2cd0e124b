package model

import (
	"testing"
)

func TestTask_GetProgressLabel(t *testing.T) {
	tests := []struct {
		state    TaskState
		progress float64
		expected string
	}{
		{TaskStateQueued, 0, ""},
		{TaskStateDownloading, 0, "0%"},
		{TaskStateDownloading, 29.6, "30%"},
		{TaskStateDownloading, 100, "100%"},
		{TaskStateReady, 100, ""},
	}

	for _, test := range tests {
		task := &Task{State: test.state, Progress: test.progress}
		result := task.GetProgressLabel()
		if result != test.expected {
			t.Errorf("GetProgressLabel() with state=%s progress=%.1f = %q, expected %q", test.state, test.progress, result, test.expected)
		}
	}
}

func TestTask_GetDisplayTitle(t *testing.T) {
	tests := []struct {
		filename string
		url      string
		expected string
	}{
		{"Video Title.mp4", "https://youtube.com/watch?v=123", "Video Title"},
		{"", "https://youtube.com/watch?v=123", "https://youtube.com/watch?v=123"},
		{".hidden", "https://youtube.com/watch?v=456", ".hidden"},
	}

	for _, test := range tests {
		task := &Task{
			ResultFilename: test.filename,
			SourceURL:      test.url,
		}
		result := task.GetDisplayTitle()
		if result != test.expected {
			t.Errorf("GetDisplayTitle() with filename='%s', url='%s' = '%s', expected '%s'",
				test.filename, test.url, result, test.expected)
		}
	}
}

func TestTask_GetStatusLabel(t *testing.T) {
	tests := []struct {
		state    TaskState
		expected string
	}{
		{TaskStateIdle, ""},
		{TaskStateSubmitting, "Queued..."},
		{TaskStateQueued, "Queued..."},
		{TaskStateDownloading, "Downloading..."},
		{TaskStateReady, "Complete"},
		{TaskStateError, "Failed"},
	}

	for _, test := range tests {
		task := &Task{State: test.state}
		if got := task.GetStatusLabel(); got != test.expected {
			t.Errorf("GetStatusLabel() with state=%s = %q, expected %q", test.state, got, test.expected)
		}
	}
}

func TestNewTask(t *testing.T) {
	task := NewTask()

	if task.State != TaskStateIdle {
		t.Errorf("Expected state to be TaskStateIdle, got %s", task.State)
	}

	if task.ID != "" {
		t.Errorf("Expected empty ID, got '%s'", task.ID)
	}
}

func TestQuality_Label(t *testing.T) {
	tests := []struct {
		quality  Quality
		expected string
	}{
		{QualityBest, "Max"},
		{"", "Max"},
		{Quality1080p, "1080p"},
		{Quality480p, "480p"},
	}

	for _, test := range tests {
		if got := test.quality.Label(); got != test.expected {
			t.Errorf("Quality(%q).Label() = %q, expected %q", test.quality, got, test.expected)
		}
	}
}

func TestAccentColor_Valid(t *testing.T) {
	for _, a := range AccentOptions() {
		if !a.Valid() {
			t.Errorf("Expected accent %s to be valid", a)
		}
	}
	if AccentColor("orange").Valid() {
		t.Error("Expected orange to be invalid")
	}
}
