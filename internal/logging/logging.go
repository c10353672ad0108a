// Package logging builds the zerolog handle that is threaded through the
// scanner, executors and audit logger for one run. There is no global
// logger: each run constructs its own and passes it down explicitly.
package logging

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// New creates a run logger writing to w at a level derived from verbosity.
// Verbosity 0 shows warnings and errors only, 1 adds info, 2 and above
// enables debug output with caller information.
func New(w io.Writer, verbosity int) zerolog.Logger {
	var level zerolog.Level
	switch verbosity {
	case 0:
		level = zerolog.WarnLevel
	case 1:
		level = zerolog.InfoLevel
	default:
		level = zerolog.DebugLevel
	}

	console := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.Kitchen,
	}

	logger := zerolog.New(console).Level(level).With().Timestamp().Logger()
	if verbosity >= 2 {
		logger = logger.With().Caller().Logger()
	}
	return logger
}

// Component returns a child logger tagged with a component name.
func Component(logger zerolog.Logger, name string) zerolog.Logger {
	return logger.With().Str("component", name).Logger()
}
