// Package logging configures the process-wide slog logger.
//
// Output is JSON on stderr. The level comes from LOG_LEVEL (debug, info,
// warn, error) and defaults to info.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// ParseLevel converts a LOG_LEVEL value. Unknown values map to info.
func ParseLevel(value string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(value))); err != nil {
		return slog.LevelInfo
	}
	return level
}

// New returns a JSON logger writing to w, tagged with the service name
func New(w io.Writer, service string, level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With("service", service)
}

// Setup installs the default logger for service and returns it
func Setup(service string) *slog.Logger {
	logger := New(os.Stderr, service, ParseLevel(os.Getenv("LOG_LEVEL")))
	slog.SetDefault(logger)
	return logger
}
