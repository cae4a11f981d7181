// Package cmdutil provides shared flags and configuration utilities for routemap commands.
package cmdutil

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/agentstation/routemap/internal/appcontext"
	"github.com/agentstation/routemap/pkg/document"
	"github.com/agentstation/routemap/pkg/extract"
	"github.com/agentstation/routemap/pkg/schema"
)

// RouterFlags select the endpoint tree a command works on.
type RouterFlags struct {
	Router   string
	Manifest string
}

// AddRouterFlags adds --router and --manifest to a command.
func AddRouterFlags(cmd *cobra.Command) *RouterFlags {
	flags := &RouterFlags{}

	cmd.Flags().StringVarP(&flags.Router, "router", "r", "",
		"Name of a registered router")
	cmd.Flags().StringVarP(&flags.Manifest, "manifest", "m", "",
		"Router manifest file (YAML or JSON); wins over --router")

	return flags
}

// ApplyDefaults fills flags the user did not set from configuration. The
// two flags name one source, so setting either on the command line drops
// the configured value of the other.
func (f *RouterFlags) ApplyDefaults(cmd *cobra.Command, d appcontext.Defaults) {
	routerSet := cmd.Flags().Changed("router")
	manifestSet := cmd.Flags().Changed("manifest")
	if !manifestSet || routerSet {
		f.Router = StringOr(cmd, "router", f.Router, d.Router)
	}
	if !routerSet || manifestSet {
		f.Manifest = StringOr(cmd, "manifest", f.Manifest, d.Manifest)
	}
}

// IsSet reports whether a router source was given.
func (f *RouterFlags) IsSet() bool {
	return f.Router != "" || f.Manifest != ""
}

// ExtractFlags control schema naming and reference emission.
type ExtractFlags struct {
	RefMode        string
	MergeInputs    bool
	QualifiedNames bool
}

// AddExtractFlags adds the extraction flags to a command.
func AddExtractFlags(cmd *cobra.Command) *ExtractFlags {
	flags := &ExtractFlags{}

	cmd.Flags().StringVar(&flags.RefMode, "ref-mode", "",
		"Schema reuse: first-inline (default) or always-ref")
	cmd.Flags().BoolVar(&flags.MergeInputs, "merge-inputs", false,
		"Merge several object inputs into one input schema")
	cmd.Flags().BoolVar(&flags.QualifiedNames, "qualified-names", false,
		"Derive schema names from the full endpoint path")

	return flags
}

// ApplyDefaults fills flags the user did not set from configuration.
func (f *ExtractFlags) ApplyDefaults(cmd *cobra.Command, d appcontext.Defaults) {
	f.RefMode = StringOr(cmd, "ref-mode", f.RefMode, d.RefMode)
	f.MergeInputs = BoolOr(cmd, "merge-inputs", f.MergeInputs, d.MergeInputs)
	f.QualifiedNames = BoolOr(cmd, "qualified-names", f.QualifiedNames, d.QualifiedNames)
}

// Options converts the flags to extraction options.
func (f *ExtractFlags) Options(logger *zerolog.Logger) ([]extract.Option, error) {
	mode, err := schema.ParseRefMode(f.RefMode)
	if err != nil {
		return nil, err
	}

	opts := []extract.Option{extract.WithRefMode(mode)}
	if logger != nil {
		opts = append(opts, extract.WithLogger(logger))
	}
	if f.MergeInputs {
		opts = append(opts, extract.WithMergedInputs())
	}
	if f.QualifiedNames {
		opts = append(opts, extract.WithQualifiedNames())
	}
	return opts, nil
}

// LayoutFlags select the document layout.
type LayoutFlags struct {
	Key        string
	Shape      string
	Collection string
}

// AddLayoutFlags adds --key, --shape and --collection to a command.
func AddLayoutFlags(cmd *cobra.Command) *LayoutFlags {
	flags := &LayoutFlags{}

	cmd.Flags().StringVarP(&flags.Key, "key", "k", "",
		"Top-level key holding the endpoints in a wrapped document")
	cmd.Flags().StringVar(&flags.Shape, "shape", "",
		"Document shape: wrapped (default), map or array")
	cmd.Flags().StringVar(&flags.Collection, "collection", "",
		"Endpoint collection in a wrapped document: map (default) or array")

	return flags
}

// ApplyDefaults fills flags the user did not set from configuration.
func (f *LayoutFlags) ApplyDefaults(cmd *cobra.Command, d appcontext.Defaults) {
	f.Key = StringOr(cmd, "key", f.Key, d.Key)
	f.Shape = StringOr(cmd, "shape", f.Shape, d.Shape)
	f.Collection = StringOr(cmd, "collection", f.Collection, d.Collection)
}

// Layout parses the flags into a document layout. The key is not checked
// here so a missing key can still be prompted for.
func (f *LayoutFlags) Layout() (document.Layout, error) {
	shape, err := document.ParseShape(f.Shape)
	if err != nil {
		return document.Layout{}, err
	}
	collection, err := document.ParseCollection(f.Collection)
	if err != nil {
		return document.Layout{}, err
	}
	return document.Layout{Shape: shape, Key: f.Key, Collection: collection}, nil
}

// StringOr returns value when the flag was set on the command line and
// fallback otherwise. An empty fallback keeps value.
func StringOr(cmd *cobra.Command, name, value, fallback string) string {
	if cmd.Flags().Changed(name) || fallback == "" {
		return value
	}
	return fallback
}

// BoolOr returns value when the flag was set on the command line and
// fallback otherwise.
func BoolOr(cmd *cobra.Command, name string, value, fallback bool) bool {
	if cmd.Flags().Changed(name) {
		return value
	}
	return fallback
}
