// Package testutil provides shared test helpers, mainly a buffered slog
// handler so tests can assert on structured log output.
package testutil

import (
	"context"
	"log/slog"
	"sync"
	"testing"
)

// LogRecord is one captured log record.
type LogRecord struct {
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

// BufferedHandler captures log records for assertions. It is safe for
// concurrent use.
type BufferedHandler struct {
	mu      sync.Mutex
	records []LogRecord
	attrs   []slog.Attr
	t       *testing.T
}

// NewBufferedHandler creates a capturing handler that also echoes records to
// the test log for debugging.
func NewBufferedHandler(t *testing.T) *BufferedHandler {
	return &BufferedHandler{t: t}
}

// NewTestLogger returns a logger backed by a fresh buffered handler.
func NewTestLogger(t *testing.T) *slog.Logger {
	return slog.New(NewBufferedHandler(t))
}

// LoggerFor wraps an existing buffered handler so the test can keep a
// reference for assertions.
func LoggerFor(h *BufferedHandler) *slog.Logger {
	return slog.New(h)
}

func (h *BufferedHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	attrs := make(map[string]any)
	for _, a := range h.attrs {
		attrs[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.Any()
		return true
	})

	h.records = append(h.records, LogRecord{
		Level:   r.Level,
		Message: r.Message,
		Attrs:   attrs,
	})

	if h.t != nil {
		h.t.Logf("[%s] %s %v", r.Level, r.Message, attrs)
	}
	return nil
}

func (h *BufferedHandler) Enabled(_ context.Context, _ slog.Level) bool {
	return true
}

func (h *BufferedHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h.mu.Lock()
	defer h.mu.Unlock()
	// Keep the same handler so captures survive logger.With chains; the
	// accumulated attrs are merged into every later record.
	h.attrs = append(h.attrs, attrs...)
	return h
}

func (h *BufferedHandler) WithGroup(string) slog.Handler {
	return h
}

// Records returns a copy of everything captured so far.
func (h *BufferedHandler) Records() []LogRecord {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]LogRecord, len(h.records))
	copy(out, h.records)
	return out
}

// HasMessage reports whether any captured record carries the message.
func (h *BufferedHandler) HasMessage(msg string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, r := range h.records {
		if r.Message == msg {
			return true
		}
	}
	return false
}
