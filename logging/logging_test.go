package logging_test

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/Jontyellis1212/policysprint-ai-sub000/logging"
)

func TestLoggerDefaultsToDiscard(t *testing.T) {
	logging.SetLogger(nil)
	if logging.Logger() == nil {
		t.Fatal("expected a non-nil default logger")
	}
	if logging.Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("expected the default logger to discard everything")
	}
}

func TestSetLogger(t *testing.T) {
	h := logging.NewBufferedHandler(slog.LevelInfo)
	logging.SetLogger(slog.New(h))
	t.Cleanup(func() { logging.SetLogger(nil) })

	logging.Logger().Info("page added", slog.Int("page", 2))
	logging.Logger().Debug("filtered out")

	if !h.Contains("page added") || !h.Contains("page=2") {
		t.Errorf("expected info record, got %q", h.String())
	}
	if h.Contains("filtered out") {
		t.Error("expected debug record to be filtered at info level")
	}
}

func TestOr(t *testing.T) {
	own := slog.New(logging.NewBufferedHandler(nil))
	if logging.Or(own) != own {
		t.Error("expected Or to prefer the explicit logger")
	}
	if logging.Or(nil) != logging.Logger() {
		t.Error("expected Or(nil) to fall back to the package logger")
	}
}

func TestBufferedHandlerAttrsAndGroups(t *testing.T) {
	h := logging.NewBufferedHandler(nil)
	l := slog.New(h).With(slog.String("doc", "policy")).WithGroup("section")
	l.Warn("section truncated", slog.String("name", "Policy"))

	out := h.String()
	if !strings.Contains(out, "doc=policy") {
		t.Errorf("expected pre-set attr, got %q", out)
	}
	if !strings.Contains(out, "section.name=Policy") {
		t.Errorf("expected grouped attr, got %q", out)
	}
	if lines := strings.Count(out, "\n"); lines != 1 {
		t.Errorf("expected 1 record, got %d", lines)
	}

	h.Reset()
	if h.String() != "" {
		t.Error("expected empty buffer after Reset")
	}
}
