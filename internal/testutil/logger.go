// Package testutil holds helpers shared by package tests.
package testutil

import (
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// NewTestLogger returns a debug-level logger whose records go to t.Log, so
// they show for failing tests or under -v. Records written after the test
// has finished, typically by goroutines it started, are dropped.
func NewTestLogger(t testing.TB) *slog.Logger {
	t.Helper()
	w := &logWriter{tb: t}
	t.Cleanup(w.close)
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

type logWriter struct {
	mu     sync.Mutex
	tb     testing.TB
	closed bool
}

func (w *logWriter) close() {
	w.mu.Lock()
	w.closed = true
	w.mu.Unlock()
}

func (w *logWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.closed {
		w.tb.Helper()
		w.tb.Log(strings.TrimSuffix(string(p), "\n"))
	}
	return len(p), nil
}
