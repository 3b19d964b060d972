package cliconfig

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

var logger = NewLogger(os.Stderr, zerolog.InfoLevel)

// NewLogger returns a console logger writing to w at level.
func NewLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// Logger returns the CLI logger.
func Logger() zerolog.Logger {
	return logger
}
