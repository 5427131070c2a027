// Package logger configures JSON structured logging via log/slog.
package logger

import (
	"io"
	"log/slog"
	"os"
)

// Setup returns a slog.Logger that writes JSON records to w.
func Setup(w io.Writer) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	return slog.New(handler)
}

// SetupDefault installs a JSON logger as the process-wide default.
// Pass nil to log to stdout.
func SetupDefault(w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stdout
	}
	logger := Setup(w)
	slog.SetDefault(logger)
	return logger
}
