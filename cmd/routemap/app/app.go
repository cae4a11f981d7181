// Package app provides the application context and dependency management
// for the routemap CLI. It centralizes configuration, logging and router
// resolution so commands only see appcontext.Interface.
package app

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/routemap/internal/appcontext"
	"github.com/agentstation/routemap/pkg/errors"
	"github.com/agentstation/routemap/pkg/logging"
	"github.com/agentstation/routemap/pkg/router"
)

// App represents the routemap application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Configuration
	config *Config

	// Logger
	logger *zerolog.Logger
}

// New creates a new App instance with the given version information.
// The app is initialized with configuration from the environment and the
// default config file, which can be customized using functional options.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	// Load configuration
	config, err := LoadConfig("")
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	// Initialize logger
	logger := NewLogger(config)
	app.logger = &logger

	// Apply any custom options
	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// Verbose reports whether verbose output was requested.
func (a *App) Verbose() bool {
	return a.config.Verbose
}

// Defaults returns the configured command defaults.
func (a *App) Defaults() appcontext.Defaults {
	return a.config.Defaults()
}

// LoadRouter returns the router to extract: the manifest at manifest when
// it is set, otherwise the router registered under name.
func (a *App) LoadRouter(ctx context.Context, name, manifest string) (*router.Group, error) {
	ctx = logging.WithLogger(ctx, a.logger)
	if manifest != "" {
		a.logger.Debug().Str("manifest", manifest).Msg("loading manifest router")
		return router.LoadManifest(ctx, manifest)
	}
	if name == "" {
		return nil, errors.NewValidationError("router", name, "a router name or manifest is required")
	}
	a.logger.Debug().Str("router", name).Msg("looking up registered router")
	return router.Lookup(name)
}

// Shutdown performs graceful shutdown of the application.
func (a *App) Shutdown(_ context.Context) error {
	a.logger.Debug().Msg("shutting down")
	return nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}
