package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/routemap/pkg/constants"
)

// Config describes how the CLI logger is built.
type Config struct {
	Level      string         // trace, debug, info, warn, error, off
	Format     string         // json, console (alias pretty) or auto
	Output     string         // stderr, stdout, discard or a file path
	TimeFormat string         // kitchen, rfc3339, rfc3339nano, unix or a Go layout
	NoColor    bool           // console only
	AddCaller  bool           // adds file:line; always on at debug and below
	Fields     map[string]any // attached to every entry
}

// DefaultConfig returns the configuration the CLI starts from. LOG_FIELDS
// holds comma-separated key=value pairs.
func DefaultConfig() *Config {
	return &Config{
		Level:      "info",
		Format:     "auto",
		Output:     "stderr",
		TimeFormat: "kitchen",
		NoColor:    os.Getenv("NO_COLOR") != "",
		Fields:     parseFields(os.Getenv("LOG_FIELDS")),
	}
}

// NewLoggerFromConfig builds a logger from cfg. A nil cfg means DefaultConfig.
// The zerolog global level is set to match.
func NewLoggerFromConfig(cfg *Config) zerolog.Logger {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	level := parseLevel(cfg.Level)
	zerolog.SetGlobalLevel(level)

	lctx := zerolog.New(formatWriter(cfg, openOutput(cfg.Output))).Level(level).With().Timestamp()
	if cfg.AddCaller || level <= zerolog.DebugLevel {
		lctx = lctx.Caller()
	}
	if len(cfg.Fields) > 0 {
		lctx = lctx.Fields(cfg.Fields)
	}
	return lctx.Logger()
}

// openOutput resolves an output name. A file that cannot be opened falls
// back to stderr.
func openOutput(name string) io.Writer {
	switch strings.ToLower(name) {
	case "", "stderr":
		return os.Stderr
	case "stdout":
		return os.Stdout
	case "discard", "none":
		return io.Discard
	}
	f, err := os.OpenFile(name, os.O_CREATE|os.O_APPEND|os.O_WRONLY, constants.FilePermissions)
	if err != nil {
		return os.Stderr
	}
	return f
}

// formatWriter wraps out in a console writer when asked to, or in auto
// mode when out is a terminal.
func formatWriter(cfg *Config, out io.Writer) io.Writer {
	format := strings.ToLower(cfg.Format)
	if format == "" || format == "auto" {
		format = "json"
		if f, ok := out.(*os.File); ok && isTerminal(f) {
			format = "console"
		}
	}
	if format != "console" && format != "pretty" {
		return out
	}
	return zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: parseTimeFormat(cfg.TimeFormat),
		NoColor:    cfg.NoColor,
	}
}

// parseLevel maps a level name to zerolog. Unknown names mean info.
func parseLevel(level string) zerolog.Level {
	switch l := strings.ToLower(level); l {
	case "":
		return zerolog.InfoLevel
	case "warning":
		return zerolog.WarnLevel
	case "off", "none":
		return zerolog.Disabled
	default:
		if parsed, err := zerolog.ParseLevel(l); err == nil {
			return parsed
		}
		return zerolog.InfoLevel
	}
}

func parseTimeFormat(format string) string {
	switch strings.ToLower(format) {
	case "", "kitchen":
		return time.Kitchen
	case "rfc3339":
		return time.RFC3339
	case "rfc3339nano":
		return time.RFC3339Nano
	case "unix", "epoch":
		return ""
	}
	if strings.Contains(format, "2006") || strings.Contains(format, "15:04") {
		return format
	}
	return time.Kitchen
}

// parseFields reads "k=v,k2=v2". Pairs without '=' are dropped.
func parseFields(s string) map[string]any {
	fields := map[string]any{}
	for _, pair := range strings.Split(s, ",") {
		if k, v, ok := strings.Cut(pair, "="); ok {
			fields[strings.TrimSpace(k)] = strings.TrimSpace(v)
		}
	}
	return fields
}

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
