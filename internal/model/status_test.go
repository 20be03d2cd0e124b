package model

import "testing"

func TestTaskState_IsActive(t *testing.T) {
	tests := []struct {
		state    TaskState
		expected bool
	}{
		{TaskStateIdle, false},
		{TaskStateSubmitting, true},
		{TaskStateQueued, true},
		{TaskStateDownloading, true},
		{TaskStateReady, false},
		{TaskStateError, false},
	}

	for _, test := range tests {
		result := test.state.IsActive()
		if result != test.expected {
			t.Errorf("TaskState(%s).IsActive() = %v, expected %v", test.state, result, test.expected)
		}
	}
}

func TestTaskState_IsTerminal(t *testing.T) {
	tests := []struct {
		state    TaskState
		expected bool
	}{
		{TaskStateIdle, false},
		{TaskStateSubmitting, false},
		{TaskStateQueued, false},
		{TaskStateDownloading, false},
		{TaskStateReady, true},
		{TaskStateError, true},
	}

	for _, test := range tests {
		result := test.state.IsTerminal()
		if result != test.expected {
			t.Errorf("TaskState(%s).IsTerminal() = %v, expected %v", test.state, result, test.expected)
		}
	}
}

func TestParseRemoteState(t *testing.T) {
	tests := []struct {
		in     string
		state  TaskState
		wantOK bool
	}{
		{"queued", TaskStateQueued, true},
		{"downloading", TaskStateDownloading, true},
		{"ready", TaskStateReady, true},
		{"error", TaskStateError, true},
		{"idle", "", false},
		{"submitting", "", false},
		{"", "", false},
		{"READY", "", false},
	}

	for _, test := range tests {
		state, ok := ParseRemoteState(test.in)
		if ok != test.wantOK || state != test.state {
			t.Errorf("ParseRemoteState(%q) = (%s, %v), expected (%s, %v)", test.in, state, ok, test.state, test.wantOK)
		}
	}
}

func TestTaskState_String(t *testing.T) {
	state := TaskStateDownloading
	expected := "downloading"
	result := state.String()

	if result != expected {
		t.Errorf("TaskState.String() = %s, expected %s", result, expected)
	}
}
