// Package extract flattens an endpoint tree into endpoint descriptors and a
// deduplicated JSON Schema definitions table.
//
// The walk is depth-first and pre-order: a group's procedures come first in
// registration order, then its child groups. Paths join group names and the
// procedure name with ".". Definition names are derived from the endpoint
// name ("getUserInputSchema", "getUserOutputSchema", and
// "chargeInputSchema_0", "chargeInputSchema_1" for several inputs), so two
// endpoints with the same name in different groups share definitions unless
// WithQualifiedNames is used.
package extract

import (
	"github.com/invopop/jsonschema"
	"github.com/rs/zerolog"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/agentstation/routemap/pkg/constants"
	"github.com/agentstation/routemap/pkg/errors"
	"github.com/agentstation/routemap/pkg/router"
	"github.com/agentstation/routemap/pkg/save"
	"github.com/agentstation/routemap/pkg/schema"
)

// Endpoint describes one procedure of the tree.
type Endpoint struct {
	// Path is the dot-joined group names followed by the procedure name.
	Path string
	// Name is the procedure's own name.
	Name string
	Kind router.Kind
	// Inputs holds one entry per input schema. Merged inputs produce one.
	Inputs []schema.Ref
	// InputList is set when Inputs is serialized as an array.
	InputList bool
	Output    *schema.Ref

	Description string
	InputTypes  []string
	OutputType  string
}

type endpointJSON struct {
	Path   string      `json:"path"`
	Type   router.Kind `json:"type"`
	Input  any         `json:"input,omitempty"`
	Output *schema.Ref `json:"output,omitempty"`
}

// MarshalJSON writes {"path","type","input","output"} in that order. input
// is an array when the endpoint has several unmerged inputs and is omitted
// when it has none.
func (e *Endpoint) MarshalJSON() ([]byte, error) {
	out := endpointJSON{Path: e.Path, Type: e.Kind, Output: e.Output}
	switch {
	case e.InputList:
		out.Input = e.Inputs
	case len(e.Inputs) == 1:
		out.Input = e.Inputs[0]
	}
	return save.JSON(out)
}

// Result is the outcome of one extraction.
type Result struct {
	// Endpoints in depth-first pre-order.
	Endpoints []*Endpoint
	// ByPath indexes Endpoints by path.
	ByPath *orderedmap.OrderedMap[string, *Endpoint]
	// Definitions is the definitions table in insertion order.
	Definitions *orderedmap.OrderedMap[string, *jsonschema.Schema]
}

// Count returns the number of endpoints.
func (r *Result) Count() int {
	if r == nil {
		return 0
	}
	return len(r.Endpoints)
}

// Lookup returns the endpoint at path.
func (r *Result) Lookup(path string) (*Endpoint, bool) {
	if r == nil || r.ByPath == nil {
		return nil, false
	}
	return r.ByPath.Get(path)
}

// Paths returns ByPath, or an empty map when r or ByPath is nil.
func (r *Result) Paths() *orderedmap.OrderedMap[string, *Endpoint] {
	if r == nil || r.ByPath == nil {
		return orderedmap.New[string, *Endpoint]()
	}
	return r.ByPath
}

// Schemas returns Definitions, or an empty table when r or Definitions is
// nil.
func (r *Result) Schemas() *orderedmap.OrderedMap[string, *jsonschema.Schema] {
	if r == nil || r.Definitions == nil {
		return orderedmap.New[string, *jsonschema.Schema]()
	}
	return r.Definitions
}

// Extract walks root and returns its endpoints and definitions. A nil root
// yields an empty result. Entries without a node are skipped. A schema that
// cannot be rendered aborts the extraction.
func Extract(root *router.Group, opts ...Option) (*Result, error) {
	o := defaultOptions().apply(opts...)
	w := &walker{
		opts:     o,
		logger:   o.logger,
		registry: schema.NewRegistry(o.renderer, o.refMode),
		stems:    stems{},
	}
	w.result = &Result{
		ByPath:      orderedmap.New[string, *Endpoint](),
		Definitions: w.registry.Definitions(),
	}

	if root != nil {
		if err := w.walk(root, ""); err != nil {
			return nil, err
		}
	}

	w.logger.Debug().
		Int("endpoints", w.result.Count()).
		Int("definitions", w.registry.Len()).
		Msg("extraction complete")
	return w.result, nil
}

type walker struct {
	opts     *options
	logger   *zerolog.Logger
	registry *schema.Registry
	result   *Result
	stems    stems
}

func (w *walker) walk(g *router.Group, prefix string) error {
	entries := g.Entries()

	for _, e := range entries {
		switch n := e.Node.(type) {
		case *router.Procedure:
			if err := w.endpoint(e.Name, prefix+e.Name, n); err != nil {
				return err
			}
		case *router.Group:
		default:
			w.logger.Debug().Str("path", prefix+e.Name).Msg("skipping entry without a node")
		}
	}

	for _, e := range entries {
		if child, ok := e.Node.(*router.Group); ok {
			if err := w.walk(child, prefix+e.Name+constants.PathSeparator); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *walker) endpoint(name, path string, p *router.Procedure) error {
	ep := &Endpoint{
		Path:        path,
		Name:        name,
		Kind:        p.Kind,
		Description: p.Description,
	}
	base := baseName(name, path, w.opts.qualifiedNames)
	if w.opts.qualifiedNames {
		if stem := w.stems.claim(base, path); stem != base {
			w.logger.Debug().Str("path", path).Str("stem", stem).Msg("qualified name taken, using suffixed stem")
			base = stem
		}
	}

	var inputs []schema.Descriptor
	for _, d := range p.Inputs {
		if d != nil {
			inputs = append(inputs, d)
			ep.InputTypes = append(ep.InputTypes, d.Name())
		}
	}
	if err := w.inputs(ep, base, inputs); err != nil {
		return errors.WrapResource("extract", "endpoint", path, err)
	}

	if p.Output != nil {
		ep.OutputType = p.Output.Name()
		ref, err := w.resolve(path, outputName(base), func() (*jsonschema.Schema, error) {
			return schema.RenderNamed(w.registry.Renderer(), p.Output, outputName(base))
		})
		if err != nil {
			return errors.WrapResource("extract", "endpoint", path, err)
		}
		ep.Output = &ref
	}

	w.logger.Debug().
		Str("path", path).
		Str("type", p.Kind.String()).
		Int("inputs", len(ep.Inputs)).
		Bool("output", ep.Output != nil).
		Msg("endpoint")

	w.result.Endpoints = append(w.result.Endpoints, ep)
	w.result.ByPath.Set(path, ep)
	return nil
}

func (w *walker) inputs(ep *Endpoint, base string, inputs []schema.Descriptor) error {
	switch {
	case len(inputs) == 0:
		return nil
	case len(inputs) == 1:
		ref, err := w.resolveDescriptor(ep.Path, inputName(base), inputs[0])
		if err != nil {
			return err
		}
		ep.Inputs = []schema.Ref{ref}
		return nil
	case w.opts.mergeInputs:
		return w.mergedInputs(ep, base, inputs)
	default:
		ep.InputList = true
		for i, d := range inputs {
			ref, err := w.resolveDescriptor(ep.Path, indexedInputName(base, i), d)
			if err != nil {
				return err
			}
			ep.Inputs = append(ep.Inputs, ref)
		}
		return nil
	}
}

// mergedInputs stores one object schema combining all inputs. When any
// input is not an object the inputs are stored per index instead.
func (w *walker) mergedInputs(ep *Endpoint, base string, inputs []schema.Descriptor) error {
	name := inputName(base)
	if w.registry.Has(name) {
		ref, err := w.resolve(ep.Path, name, nil)
		if err != nil {
			return err
		}
		ep.Inputs = []schema.Ref{ref}
		return nil
	}

	rendered := make([]*jsonschema.Schema, len(inputs))
	for i, d := range inputs {
		s, err := schema.RenderNamed(w.registry.Renderer(), d, indexedInputName(base, i))
		if err != nil {
			return err
		}
		rendered[i] = s
	}

	if merged, ok := schema.MergeObjects(rendered...); ok {
		ref, err := w.resolve(ep.Path, name, func() (*jsonschema.Schema, error) {
			return merged, nil
		})
		if err != nil {
			return err
		}
		ep.Inputs = []schema.Ref{ref}
		return nil
	}

	w.logger.Debug().Str("path", ep.Path).Msg("inputs are not all objects, keeping them separate")
	ep.InputList = true
	for i, s := range rendered {
		ref, err := w.resolve(ep.Path, indexedInputName(base, i), func() (*jsonschema.Schema, error) {
			return s, nil
		})
		if err != nil {
			return err
		}
		ep.Inputs = append(ep.Inputs, ref)
	}
	return nil
}

func (w *walker) resolveDescriptor(path, name string, d schema.Descriptor) (schema.Ref, error) {
	return w.resolve(path, name, func() (*jsonschema.Schema, error) {
		return schema.RenderNamed(w.registry.Renderer(), d, name)
	})
}

func (w *walker) resolve(path, name string, render func() (*jsonschema.Schema, error)) (schema.Ref, error) {
	if w.registry.Has(name) {
		w.logger.Debug().Str("path", path).Str("schema", name).Msg("reusing existing definition")
	}
	return w.registry.ResolveFunc(name, render)
}
