package schema

import (
	"encoding/json"
	"reflect"

	"github.com/invopop/jsonschema"
)

// Descriptor describes the shape of an endpoint input or output.
type Descriptor interface {
	// Name is a human readable name for the described type.
	Name() string
	// Render produces the JSON Schema body for the type.
	Render(r *Renderer) (*jsonschema.Schema, error)
}

type typeDescriptor struct {
	typ reflect.Type
}

// TypeOf describes the Go type T.
func TypeOf[T any]() Descriptor {
	return typeDescriptor{typ: reflect.TypeFor[T]()}
}

// For describes the dynamic type of v. A nil v describes any value.
func For(v any) Descriptor {
	return typeDescriptor{typ: reflect.TypeOf(v)}
}

func (d typeDescriptor) Name() string {
	if d.typ == nil {
		return "any"
	}
	return d.typ.String()
}

func (d typeDescriptor) Render(r *Renderer) (*jsonschema.Schema, error) {
	if d.typ == nil {
		return &jsonschema.Schema{Version: jsonschema.Version}, nil
	}
	return r.Render(d.typ)
}

// Type returns the reflected type, or nil for an untyped descriptor.
func (d typeDescriptor) Type() reflect.Type {
	return d.typ
}

type rawDescriptor struct {
	name   string
	schema *jsonschema.Schema
}

// Raw wraps a ready-made schema. Render returns a copy so callers can never
// mutate the wrapped value through the definitions table.
func Raw(name string, s *jsonschema.Schema) Descriptor {
	if s == nil {
		s = &jsonschema.Schema{}
	}
	return rawDescriptor{name: name, schema: s}
}

func (d rawDescriptor) Name() string {
	if d.name == "" {
		return "schema"
	}
	return d.name
}

func (d rawDescriptor) Render(*Renderer) (*jsonschema.Schema, error) {
	return Clone(d.schema)
}

// Clone deep-copies a schema through its JSON form.
func Clone(s *jsonschema.Schema) (*jsonschema.Schema, error) {
	if s == nil {
		return nil, nil
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	out := new(jsonschema.Schema)
	if err := json.Unmarshal(data, out); err != nil {
		return nil, err
	}
	return out, nil
}
