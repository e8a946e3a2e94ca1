/*
Package simlog provides the structured logger every other package in
this module logs through: a thin zerolog wrapper with one
With<Noun> helper per domain concept, adapted from the teacher
orchestrator's pkg/log.
*/
package simlog

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the global logger instance. Init must be called once at
// process startup (the CLI does this before running any command); packages that
// are also usable as a pure library default to a sane logger even
// without Init, so tests never need to call it.
var Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

// Level names a logging verbosity.
type Level string

const (
	DebugLevel Level = "debug"
	InfoLevel  Level = "info"
	WarnLevel  Level = "warn"
	ErrorLevel Level = "error"
)

// Config controls Init.
type Config struct {
	Level      Level
	JSONOutput bool
	Output     io.Writer
}

// Init (re)configures the global logger.
func Init(cfg Config) {
	var level zerolog.Level
	switch cfg.Level {
	case DebugLevel:
		level = zerolog.DebugLevel
	case WarnLevel:
		level = zerolog.WarnLevel
	case ErrorLevel:
		level = zerolog.ErrorLevel
	default:
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	if cfg.JSONOutput {
		Logger = zerolog.New(output).With().Timestamp().Logger()
	} else {
		Logger = zerolog.New(zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.RFC3339,
		}).With().Timestamp().Logger()
	}
}

// WithComponent returns a child logger tagged with a component name.
func WithComponent(component string) zerolog.Logger {
	return Logger.With().Str("component", component).Logger()
}

// WithEngineID returns a child logger tagged with an engine/run id.
func WithEngineID(engineID string) zerolog.Logger {
	return Logger.With().Str("engine_id", engineID).Logger()
}

// WithActivityID returns a child logger tagged with an activity id.
func WithActivityID(activityID string) zerolog.Logger {
	return Logger.With().Str("activity_id", activityID).Logger()
}

// WithEntityID returns a child logger tagged with a flow entity id.
func WithEntityID(entityID string) zerolog.Logger {
	return Logger.With().Str("entity_id", entityID).Logger()
}

// WithResourceID returns a child logger tagged with a resource id.
func WithResourceID(resourceID string) zerolog.Logger {
	return Logger.With().Str("resource_id", resourceID).Logger()
}
