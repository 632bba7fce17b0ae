// Package logger wraps slog with the small surface the engine needs.
package logger

import (
	"io"
	"log/slog"
	"os"
)

// Logger is the engine's structured logger.
type Logger struct {
	*slog.Logger
}

// New creates a Logger writing text records to stdout at the given level.
func New(level int) *Logger {
	return &Logger{
		Logger: slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.Level(level)})),
	}
}

// FromSlog wraps a caller-supplied slog.Logger.
func FromSlog(l *slog.Logger) *Logger {
	return &Logger{Logger: l}
}

// Discard creates a Logger that drops everything. Used when no logger is
// injected.
func Discard() *Logger {
	return &Logger{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// Fatal is equivalent to Error followed by os.Exit(1).
func (l *Logger) Fatal(msg string, args ...any) {
	l.Logger.Error(msg, args...)
	os.Exit(1)
}
