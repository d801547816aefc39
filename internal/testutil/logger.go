// Package testutil provides shared test helpers.
package testutil

import (
	"log/slog"
	"testing"
)

// NewLogger returns a debug-level slog logger that routes records through
// t.Log, so server output only shows up for failing or verbose runs.
func NewLogger(t testing.TB) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(logWriter{t}, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

type logWriter struct {
	tb testing.TB
}

func (w logWriter) Write(p []byte) (int, error) {
	w.tb.Helper()
	w.tb.Log(string(p))
	return len(p), nil
}
