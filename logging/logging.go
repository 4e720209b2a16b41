// Package logging sets up the process logger.
package logging

import (
	"log/slog"
	"os"
	"strings"
)

// New returns a slog logger: readable text in development, JSON
// otherwise. env comes from YAMAPVIEW_ENV.
func New(env string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if strings.EqualFold(env, "development") {
		opts.Level = slog.LevelDebug
		return slog.New(slog.NewTextHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, opts))
}
