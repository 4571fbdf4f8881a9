// Package logging configures the process-wide zerolog logger the rest
// of the evolution core logs through.
package logging

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init configures the global zerolog logger. In development mode it
// writes a human-readable console form to stdout; otherwise it emits
// structured JSON, suited to a production log pipeline.
func Init(development bool, level zerolog.Level) {
	zerolog.SetGlobalLevel(level)
	if development {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"})
		return
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Caller().Logger()
}

// LevelFromString parses a level name, defaulting to info on failure.
func LevelFromString(s string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}
