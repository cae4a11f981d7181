// Package appcontext provides the shared application context interface
// used by all commands. This eliminates interface duplication across
// command packages and provides a single source of truth for app dependencies.
package appcontext

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/routemap/pkg/router"
)

// Interface defines the application context interface that commands need.
// The App struct from cmd/routemap/app automatically implements this interface,
// providing dependency injection for commands while maintaining testability.
//
// Commands should accept this interface rather than the concrete App type,
// allowing for easier testing with mock implementations.
type Interface interface {
	// LoadRouter returns the endpoint tree to extract. A non-empty manifest
	// path wins over a registered router name.
	LoadRouter(ctx context.Context, name, manifest string) (*router.Group, error)

	// Defaults returns the configured values commands fall back to when a
	// flag is not set.
	Defaults() Defaults

	// Logger returns the configured logger instance.
	// Commands should use this for all logging operations.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (json, yaml, table, etc).
	// Commands that support different output formats should use this.
	OutputFormat() string

	// Verbose reports whether verbose output was requested.
	Verbose() bool

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}

// Defaults are configuration values for command flags.
type Defaults struct {
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
	OpenAPITitle   string
	OpenAPIVersion string
}
