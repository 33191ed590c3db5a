package main

import (
	"io"
	"log/slog"
)

// newLogger returns a text logger on w.
// Default level is Warn; --verbose shows Debug, --quiet only Error.
func newLogger(w io.Writer, quiet, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case quiet:
		level = slog.LevelError
	case verbose:
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
