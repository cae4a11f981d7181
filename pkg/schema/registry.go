package schema

import (
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/agentstation/routemap/pkg/constants"
	"github.com/agentstation/routemap/pkg/errors"
	"github.com/agentstation/routemap/pkg/save"
)

// RefMode controls how the first use of a definition is emitted.
type RefMode int

const (
	// FirstInline emits the body on first use and a reference afterwards.
	FirstInline RefMode = iota
	// AlwaysRef emits a reference on every use, including the first.
	AlwaysRef
)

// String returns the flag spelling of the mode.
func (m RefMode) String() string {
	switch m {
	case FirstInline:
		return "first-inline"
	case AlwaysRef:
		return "always-ref"
	default:
		return fmt.Sprintf("RefMode(%d)", int(m))
	}
}

// ParseRefMode parses "first-inline" or "always-ref".
func ParseRefMode(s string) (RefMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "first-inline", "inline":
		return FirstInline, nil
	case "always-ref", "ref":
		return AlwaysRef, nil
	default:
		return FirstInline, errors.NewValidationError("ref_mode", s, "must be first-inline or always-ref")
	}
}

// Ref is a schema entry on an endpoint: the definition body inline, or a
// reference into the definitions table.
type Ref struct {
	// Name is the definitions table key.
	Name string
	// Schema is the stored definition. It is set for inline entries and for
	// the first reference in AlwaysRef mode.
	Schema *jsonschema.Schema
	// Ref is the JSON pointer, set when the entry is a reference.
	Ref string
}

// IsRef reports whether the entry serializes as a reference.
func (r Ref) IsRef() bool {
	return r.Ref != ""
}

// MarshalJSON writes {"$ref": ...} for references and the body otherwise.
func (r Ref) MarshalJSON() ([]byte, error) {
	if r.IsRef() {
		return save.JSON(struct {
			Ref string `json:"$ref"`
		}{r.Ref})
	}
	if r.Schema == nil {
		return []byte("null"), nil
	}
	return save.JSON(r.Schema)
}

// RefTo returns the JSON pointer for a definition name.
func RefTo(name string) string {
	return constants.DefinitionsRefPrefix + name
}

// Registry is the definitions table for one extraction. Entries are only
// ever added; the first body stored under a name wins.
type Registry struct {
	renderer *Renderer
	mode     RefMode
	defs     *orderedmap.OrderedMap[string, *jsonschema.Schema]
}

// NewRegistry creates an empty registry. A nil renderer means NewRenderer().
func NewRegistry(renderer *Renderer, mode RefMode) *Registry {
	if renderer == nil {
		renderer = NewRenderer()
	}
	return &Registry{
		renderer: renderer,
		mode:     mode,
		defs:     orderedmap.New[string, *jsonschema.Schema](),
	}
}

// Renderer returns the renderer descriptors are rendered with.
func (r *Registry) Renderer() *Renderer {
	return r.renderer
}

// Mode returns the registry's ref mode.
func (r *Registry) Mode() RefMode {
	return r.mode
}

// Resolve returns the entry for d under name. If name is already defined the
// result is a reference and d is neither rendered nor compared with the
// stored body.
func (r *Registry) Resolve(d Descriptor, name string) (Ref, error) {
	return r.ResolveFunc(name, func() (*jsonschema.Schema, error) {
		return RenderNamed(r.renderer, d, name)
	})
}

// ResolveFunc is Resolve with a caller supplied render step. render is only
// called when name is not yet defined.
func (r *Registry) ResolveFunc(name string, render func() (*jsonschema.Schema, error)) (Ref, error) {
	if name == "" {
		return Ref{}, errors.NewValidationError("name", name, "schema name must not be empty")
	}
	if _, ok := r.defs.Get(name); ok {
		return Ref{Name: name, Ref: RefTo(name)}, nil
	}

	s, err := render()
	if err != nil {
		return Ref{}, err
	}
	if s == nil {
		s = &jsonschema.Schema{}
	}
	r.defs.Set(name, s)

	if r.mode == AlwaysRef {
		return Ref{Name: name, Schema: s, Ref: RefTo(name)}, nil
	}
	return Ref{Name: name, Schema: s}, nil
}

// Has reports whether name is defined.
func (r *Registry) Has(name string) bool {
	_, ok := r.defs.Get(name)
	return ok
}

// Get returns the body stored under name.
func (r *Registry) Get(name string) (*jsonschema.Schema, bool) {
	return r.defs.Get(name)
}

// Len returns the number of definitions.
func (r *Registry) Len() int {
	return r.defs.Len()
}

// Names returns definition names in insertion order.
func (r *Registry) Names() []string {
	names := make([]string, 0, r.defs.Len())
	for pair := r.defs.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// Definitions returns the definitions table in insertion order. The map is
// owned by the registry.
func (r *Registry) Definitions() *orderedmap.OrderedMap[string, *jsonschema.Schema] {
	return r.defs
}

// RenderNamed renders d and tags a failure with the definition name it was
// rendered for.
func RenderNamed(r *Renderer, d Descriptor, name string) (*jsonschema.Schema, error) {
	s, err := d.Render(r)
	if err != nil {
		return nil, withSchemaName(err, name, d.Name())
	}
	return s, nil
}

func withSchemaName(err error, name, typ string) error {
	var schemaErr *errors.SchemaError
	if errors.As(err, &schemaErr) {
		named := *schemaErr
		named.Name = name
		if named.Type == "" {
			named.Type = typ
		}
		return &named
	}
	return errors.NewSchemaError(name, typ, err.Error(), err)
}
