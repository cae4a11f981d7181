package app

import (
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/rs/zerolog"

	"github.com/agentstation/routemap/pkg/logging"
)

var logLevels = []string{"trace", "debug", "info", "warn", "error"}

// NewLogger builds the CLI logger. The level is chosen in this order:
// --log-level, -q, -v, LOG_LEVEL, then info.
func NewLogger(config *Config) zerolog.Logger {
	level := logLevel(config, os.Stderr)
	return logging.NewLoggerFromConfig(&logging.Config{
		Level:     level,
		Format:    config.LogFormat,
		Output:    config.LogOutput,
		NoColor:   config.NoColor,
		AddCaller: level == "trace" || level == "debug",
	})
}

// logLevel resolves the level for config, writing warnings for rejected
// input to warn.
func logLevel(config *Config, warn io.Writer) string {
	switch {
	case config.LogLevel != "":
		level := validateLogLevel(config.LogLevel)
		if level != config.LogLevel {
			fmt.Fprintf(warn, "Warning: invalid log level %q, using %q\n", config.LogLevel, level)
		}
		return level
	case config.Quiet:
		if config.Verbose {
			fmt.Fprintln(warn, "Warning: both --verbose and --quiet specified, using --quiet")
		}
		return "warn"
	case config.Verbose:
		return "debug"
	case config.EnvLogLevel != "":
		return validateLogLevel(config.EnvLogLevel)
	}
	return "info"
}

// validateLogLevel returns level when it is known and info otherwise.
func validateLogLevel(level string) string {
	if slices.Contains(logLevels, level) {
		return level
	}
	return "info"
}
