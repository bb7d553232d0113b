// Package logger is the platform packages' shared zerolog setup.
//
// Each package constructs its own logger with a "component" field so
// warnings emitted during configuration merging and module loading can be
// filtered by origin.
package logger

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Logger wraps an embedded zerolog.Logger, so callers get zerolog's
// fluent API directly alongside the platform's own helpers.
type Logger struct {
	zerolog.Logger
}

// New constructs a *Logger for the given component label (e.g. "config",
// "module"). Output is JSON on stderr so CLI stdout stays machine-readable.
//
// The level is read from ALTIS_LOG_LEVEL (debug, info, warn, error) and
// defaults to warn: the platform layer is quiet unless something degrades.
func New(component string) *Logger {
	logger := zerolog.New(os.Stderr).
		Level(levelFromEnv()).
		With().
		Str("component", component).
		Timestamp().
		Logger()

	return &Logger{logger}
}

// Nop returns a *Logger that discards all log output. Intended for tests.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// Child returns a new *Logger inheriting all fields of the receiver.
// The child can be enriched with additional context fields without
// affecting the parent.
func (l *Logger) Child() *Logger {
	return &Logger{l.With().Logger()}
}

func levelFromEnv() zerolog.Level {
	switch strings.ToLower(os.Getenv("ALTIS_LOG_LEVEL")) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "error":
		return zerolog.ErrorLevel
	case "warn", "":
		return zerolog.WarnLevel
	default:
		return zerolog.WarnLevel
	}
}
