// Package logging configures zerolog for commutree.
//
// All commands log through a single root logger built here; packages derive
// component loggers via ComponentLogger so every event carries a component
// field.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Config controls logger construction.
type Config struct {
	// Level is a zerolog level string (trace, debug, info, warn, error).
	// Unparseable values fall back to info.
	Level string

	// Format selects "console" (human-readable, default) or "json".
	Format string

	// File is an optional path; when set, logs are appended there instead
	// of stderr so TUI output stays clean.
	File string
}

// New builds a zerolog.Logger from cfg.
//
// When cfg.File is set but cannot be opened, New falls back to stderr and
// reports the fallback through the returned logger rather than failing the
// command; logging must never block the calculator itself.
func New(cfg Config) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		lvl = zerolog.InfoLevel
	}

	var out io.Writer = zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
	if cfg.Format == "json" {
		out = os.Stderr
	}

	fallbackErr := error(nil)
	if cfg.File != "" {
		f, openErr := os.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
		if openErr != nil {
			fallbackErr = openErr
		} else {
			out = f
		}
	}

	logger := zerolog.New(out).Level(lvl).With().Timestamp().Logger()
	if fallbackErr != nil {
		logger.Warn().Err(fallbackErr).Str("file", cfg.File).
			Msg("could not open log file, logging to stderr")
	}
	return logger
}

// ComponentLogger returns a child logger tagged with the given component name.
func ComponentLogger(logger zerolog.Logger, component string) zerolog.Logger {
	return logger.With().Str("component", component).Logger()
}
