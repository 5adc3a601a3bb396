// Package logging holds the package-level *slog.Logger used by the renderer.
package logging

import (
	"log/slog"
	"sync/atomic"
)

var logger atomic.Pointer[slog.Logger]

func discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// SetLogger replaces the package-level logger. Passing nil restores the
// discard logger. Safe for concurrent use.
//
//	logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = discard()
	}
	logger.Store(l)
}

// Logger returns the package-level logger, or a logger that discards
// everything if none was set.
func Logger() *slog.Logger {
	l := logger.Load()
	if l == nil {
		l = discard()
		logger.Store(l)
	}
	return l
}

// Or returns l when it is non-nil and the package-level logger otherwise.
func Or(l *slog.Logger) *slog.Logger {
	if l != nil {
		return l
	}
	return Logger()
}
