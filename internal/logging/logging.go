// Package logging configures the diagnostic logger.
//
// Logging is diagnostics only; user-facing output goes through the command
// writers. The default level is info, raised to debug by --verbose.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns a console logger writing to w at the given level.
func New(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	writer := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.Kitchen,
		NoColor:    os.Getenv("NO_COLOR") != "",
	}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}

// Discard returns a logger that drops everything, for tests and library callers.
func Discard() zerolog.Logger {
	return zerolog.New(io.Discard).Level(zerolog.Disabled)
}
