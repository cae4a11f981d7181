// Package logging provides structured logging for routemap using zerolog.
// Console output is used when writing to a terminal and JSON otherwise.
//
// Example usage:
//
//	log := logging.Default()
//	log.Info().Str("router", "users").Int("endpoints", 2).Msg("extracted")
//
//	ctx := logging.WithRouter(context.Background(), "users")
//	logging.FromContext(ctx).Debug().Msg("walking tree")
package logging

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// defaultLogger backs Default and the package-level event helpers.
var defaultLogger = NewLoggerFromConfig(&Config{
	Level:      getEnvOrDefault("LOG_LEVEL", "info"),
	Format:     getEnvOrDefault("LOG_FORMAT", "auto"),
	Output:     "stderr",
	TimeFormat: "kitchen",
	NoColor:    os.Getenv("NO_COLOR") != "",
})

// Default returns the default global logger.
func Default() *zerolog.Logger {
	return &defaultLogger
}

// SetDefault sets the default global logger.
func SetDefault(logger zerolog.Logger) {
	defaultLogger = logger
	log.Logger = logger
}

// New creates a new JSON logger writing to w.
func New(w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	return zerolog.New(w).
		Level(zerolog.GlobalLevel()).
		With().
		Timestamp().
		Logger()
}

// Debug starts a new debug level log event.
func Debug() *zerolog.Event {
	return defaultLogger.Debug()
}

// Info starts a new info level log event.
func Info() *zerolog.Event {
	return defaultLogger.Info()
}

// Warn starts a new warning level log event.
func Warn() *zerolog.Event {
	return defaultLogger.Warn()
}

// Err creates a new error log event with the given error.
func Err(err error) *zerolog.Event {
	return defaultLogger.Err(err)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
