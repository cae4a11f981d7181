package extract

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/routemap/pkg/logging"
	"github.com/agentstation/routemap/pkg/schema"
)

// Option configures an extraction.
type Option func(*options)

type options struct {
	logger         *zerolog.Logger
	renderer       *schema.Renderer
	refMode        schema.RefMode
	mergeInputs    bool
	qualifiedNames bool
}

func defaultOptions() *options {
	return &options{
		logger:  logging.Default(),
		refMode: schema.FirstInline,
	}
}

func (o *options) apply(opts ...Option) *options {
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets the logger for debug output. Nil means the default logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithRenderer sets the renderer used for Go type descriptors.
func WithRenderer(r *schema.Renderer) Option {
	return func(o *options) {
		o.renderer = r
	}
}

// WithRefMode sets how first uses of a definition are emitted.
func WithRefMode(mode schema.RefMode) Option {
	return func(o *options) {
		o.refMode = mode
	}
}

// WithMergedInputs merges the inputs of multi-input procedures into one
// object schema when all of them render to objects.
func WithMergedInputs() Option {
	return func(o *options) {
		o.mergeInputs = true
	}
}

// WithQualifiedNames derives definition names from the full endpoint path
// in lower camel case instead of the endpoint's own name, so endpoints with
// the same name in different groups get separate definitions. When two
// paths camel-case to the same stem, the later one is suffixed "_2", "_3"
// and so on in traversal order.
func WithQualifiedNames() Option {
	return func(o *options) {
		o.qualifiedNames = true
	}
}
