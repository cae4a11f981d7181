package app

import (
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/routemap/internal/appcontext"
	"github.com/agentstation/routemap/pkg/constants"
	pkgerrors "github.com/agentstation/routemap/pkg/errors"
)

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Extraction defaults
	Router         string
	Manifest       string
	Out            string
	Key            string
	Shape          string
	Collection     string
	RefMode        string
	MergeInputs    bool
	QualifiedNames bool
	Encoding       string

	// OpenAPI export defaults
	OpenAPITitle   string
	OpenAPIVersion string

	// Logging configuration. LogLevel is the --log-level flag; EnvLogLevel
	// comes from LOG_LEVEL.
	LogLevel    string
	EnvLogLevel string
	LogFormat   string
	LogOutput   string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables (ROUTEMAP_*)
// 3. .env files
// 4. Config file (configFile, or .routemap.yaml in $HOME or the working directory)
// 5. Defaults
//
// A missing default config file is not an error; a missing explicit one is.
func LoadConfig(configFile string) (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	v := newViper()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		// Search for config in standard locations
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName("." + constants.AppName)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, pkgerrors.NewConfigError("config", err.Error(), err)
		}
	}

	// Build config from viper
	config := &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no-color"),
		Format:  v.GetString("format"),

		ConfigFile: v.ConfigFileUsed(),

		Router:         v.GetString("router"),
		Manifest:       v.GetString("manifest"),
		Out:            v.GetString("out"),
		Key:            v.GetString("key"),
		Shape:          v.GetString("shape"),
		Collection:     v.GetString("collection"),
		RefMode:        v.GetString("ref_mode"),
		MergeInputs:    v.GetBool("merge_inputs"),
		QualifiedNames: v.GetBool("qualified_names"),
		Encoding:       v.GetString("encoding"),

		OpenAPITitle:   v.GetString("openapi_title"),
		OpenAPIVersion: v.GetString("openapi_version"),

		// Logging configuration
		EnvLogLevel: getEnvOrDefault("LOG_LEVEL", ""),
		LogFormat:   getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput:   getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}

	return config, nil
}

// newViper returns a viper instance with defaults and ROUTEMAP_ environment
// binding. ROUTEMAP_REF_MODE sets ref_mode, ROUTEMAP_NO_COLOR sets no-color.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("shape", "wrapped")
	v.SetDefault("collection", "map")
	v.SetDefault("ref_mode", "first-inline")
	v.SetDefault("encoding", "json")
	v.SetDefault("openapi_title", constants.DefaultOpenAPITitle)
	v.SetDefault("openapi_version", constants.DefaultOpenAPIVersion)
	return v
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = c.Verbose || verbose
	c.Quiet = c.Quiet || quiet
	c.NoColor = c.NoColor || noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// Defaults returns the extraction and export defaults for commands.
func (c *Config) Defaults() appcontext.Defaults {
	return appcontext.Defaults{
		Router:         c.Router,
		Manifest:       c.Manifest,
		Out:            c.Out,
		Key:            c.Key,
		Shape:          c.Shape,
		Collection:     c.Collection,
		RefMode:        c.RefMode,
		MergeInputs:    c.MergeInputs,
		QualifiedNames: c.QualifiedNames,
		Encoding:       c.Encoding,
		OpenAPITitle:   c.OpenAPITitle,
		OpenAPIVersion: c.OpenAPIVersion,
	}
}

// loadEnvFiles loads environment variables from .env files.
// Variables already set in the environment are not overridden.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
