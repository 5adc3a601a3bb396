package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
)

// BufferedHandler is a slog.Handler that keeps records in memory as JSON
// lines. Tests use it to assert on what a render logged.
//
//	h := logging.NewBufferedHandler(slog.LevelDebug)
//	policypdf.RenderPolicy(p, mode, policypdf.WithLogger(slog.New(h)))
//	if !h.Contains("section truncated") { ... }
type BufferedHandler struct {
	level slog.Leveler
	attrs []slog.Attr
	group string
	state *bufferState
}

type bufferState struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

type bufferedEntry struct {
	Level   string   `json:"level"`
	Message string   `json:"message"`
	Attrs   []string `json:"attrs,omitempty"`
}

// NewBufferedHandler returns a handler that records messages at or above level.
func NewBufferedHandler(level slog.Leveler) *BufferedHandler {
	if level == nil {
		level = slog.LevelDebug
	}
	return &BufferedHandler{level: level, state: &bufferState{}}
}

// Enabled implements slog.Handler.
func (h *BufferedHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle implements slog.Handler.
func (h *BufferedHandler) Handle(_ context.Context, r slog.Record) error {
	e := bufferedEntry{Level: r.Level.String(), Message: r.Message}
	for _, a := range h.attrs {
		e.Attrs = append(e.Attrs, h.prefix(a))
	}
	r.Attrs(func(a slog.Attr) bool {
		e.Attrs = append(e.Attrs, h.prefix(a))
		return true
	})
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}

	h.state.mu.Lock()
	defer h.state.mu.Unlock()
	h.state.buf.Write(data)
	h.state.buf.WriteByte('\n')
	return nil
}

func (h *BufferedHandler) prefix(a slog.Attr) string {
	if h.group == "" {
		return a.String()
	}
	return h.group + "." + a.String()
}

// WithAttrs implements slog.Handler. The derived handler shares the buffer.
func (h *BufferedHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &next
}

// WithGroup implements slog.Handler. The derived handler shares the buffer.
func (h *BufferedHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	if next.group != "" {
		next.group += "." + name
	} else {
		next.group = name
	}
	return &next
}

// String returns everything recorded so far.
func (h *BufferedHandler) String() string {
	h.state.mu.Lock()
	defer h.state.mu.Unlock()
	return h.state.buf.String()
}

// Contains reports whether the recorded output contains s.
func (h *BufferedHandler) Contains(s string) bool {
	return strings.Contains(h.String(), s)
}

// Reset discards everything recorded so far.
func (h *BufferedHandler) Reset() {
	h.state.mu.Lock()
	defer h.state.mu.Unlock()
	h.state.buf.Reset()
}
