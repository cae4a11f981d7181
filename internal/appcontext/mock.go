package appcontext

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/routemap/pkg/router"
)

// Mock provides a mock implementation of Interface for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default/zero value.
type Mock struct {
	LoadRouterFunc   func(ctx context.Context, name, manifest string) (*router.Group, error)
	DefaultsFunc     func() Defaults
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
	VerboseFunc      func() bool
	VersionFunc      func() string
	CommitFunc       func() string
	DateFunc         func() string
	BuiltByFunc      func() string
}

// LoadRouter loads a router using the mock function, or from a manifest
// when one is given, or from the router registry.
func (m *Mock) LoadRouter(ctx context.Context, name, manifest string) (*router.Group, error) {
	if m.LoadRouterFunc != nil {
		return m.LoadRouterFunc(ctx, name, manifest)
	}
	if manifest != "" {
		return router.LoadManifest(ctx, manifest)
	}
	return router.Lookup(name)
}

// Defaults returns defaults using the mock function or the zero value.
func (m *Mock) Defaults() Defaults {
	if m.DefaultsFunc != nil {
		return m.DefaultsFunc()
	}
	return Defaults{}
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns the format using the mock function or "table".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// Verbose returns verbosity using the mock function or false.
func (m *Mock) Verbose() bool {
	if m.VerboseFunc != nil {
		return m.VerboseFunc()
	}
	return false
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns commit using the mock function or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns builtBy using the mock function or "test".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "test"
}

// Ensure Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
