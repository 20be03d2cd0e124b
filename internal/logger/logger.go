// Package logger provides structured logging for the application.
//
// It configures log/slog with a JSON handler and a level taken from the
// runtime configuration.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// ParseLevel maps a configured level name to a slog level (case-insensitive).
// The second result is false when the name is unknown.
func ParseLevel(name string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}

// Setup creates a JSON logger writing to w (stdout when nil) at the given
// level, installs it as the slog default and returns it. An unknown level
// falls back to info with a warning.
func Setup(level string, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stdout
	}

	lvl, ok := ParseLevel(level)

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})
	logger := slog.New(handler)
	slog.SetDefault(logger)

	if !ok {
		logger.Warn("invalid log level configured, using default level",
			"configured_level", level,
			"default_level", "info")
	}

	return logger
}
