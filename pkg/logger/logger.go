// Package logger provides opinionated logging for the conduit system.
//
// CLI commands use the pretty charmbracelet/log handler; the API server uses
// slog's JSON handler for structured service logs. Both sit behind a
// *slog.Logger so components never care which handler is wired.
package logger

import (
	"io"
	"log/slog"

	charmlog "github.com/charmbracelet/log"
)

// New builds a *slog.Logger from the given options. The default is a pretty
// handler at Info level writing to stdout.
func New(opts ...Option) *slog.Logger {
	c := newConfig()
	for _, opt := range opts {
		opt(c)
	}

	var w io.Writer
	if len(c.writers) == 1 {
		w = c.writers[0]
	} else {
		w = io.MultiWriter(c.writers...)
	}

	if c.json {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:     c.level,
			AddSource: c.source,
		}))
	}

	h := charmlog.NewWithOptions(w, charmlog.Options{
		Level:           charmLevel(c.level),
		ReportCaller:    c.source,
		ReportTimestamp: true,
	})

	return slog.New(h)
}

// Nop returns a logger that discards everything. Handy for tests and for
// components that treat logging as optional.
func Nop() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func charmLevel(level slog.Level) charmlog.Level {
	switch {
	case level <= slog.LevelDebug:
		return charmlog.DebugLevel
	case level <= slog.LevelInfo:
		return charmlog.InfoLevel
	case level <= slog.LevelWarn:
		return charmlog.WarnLevel
	default:
		return charmlog.ErrorLevel
	}
}
