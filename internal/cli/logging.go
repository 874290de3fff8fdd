package cli

import (
	"io"
	"log/slog"
)

// newLogger returns a text logger writing to w at level. Diagnostics never go
// to stdout, which carries only results.
func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
