package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in     string
		level  slog.Level
		wantOK bool
	}{
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{" warn ", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"fatal", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
	}

	for _, tt := range tests {
		level, ok := ParseLevel(tt.in)
		assert.Equal(t, tt.level, level, "level for %q", tt.in)
		assert.Equal(t, tt.wantOK, ok, "ok for %q", tt.in)
	}
}

func TestSetup_WritesJSONAtLevel(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	logger := Setup("warn", &buf)

	logger.Info("hidden")
	logger.Warn("shown", "task_id", "abc")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "shown", entry["msg"])
	assert.Equal(t, "abc", entry["task_id"])
}

func TestSetup_InvalidLevelWarns(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	Setup("loud", &buf)

	assert.Contains(t, buf.String(), "invalid log level configured")
	assert.Contains(t, buf.String(), `"configured_level":"loud"`)
}
