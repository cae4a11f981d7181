package schema

import (
	"encoding/json"
	"fmt"
	"net"
	"net/url"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/invopop/jsonschema"

	"github.com/agentstation/routemap/pkg/errors"
)

// Renderer converts Go types into self-contained JSON Schema bodies.
// Nested types are always inlined so every rendered body can stand alone in
// the definitions table.
type Renderer struct {
	reflector *jsonschema.Reflector
}

// RendererOption configures the underlying reflector.
type RendererOption func(*jsonschema.Reflector)

// WithAdditionalProperties stops struct schemas from setting
// additionalProperties to false.
func WithAdditionalProperties() RendererOption {
	return func(r *jsonschema.Reflector) {
		r.AllowAdditionalProperties = true
	}
}

// WithRequiredFromTags marks only fields tagged `jsonschema:"required"` as
// required, instead of every field without omitempty.
func WithRequiredFromTags() RendererOption {
	return func(r *jsonschema.Reflector) {
		r.RequiredFromJSONSchemaTags = true
	}
}

// WithKeyNamer rewrites property names, for example to snake_case.
func WithKeyNamer(fn func(string) string) RendererOption {
	return func(r *jsonschema.Reflector) {
		r.KeyNamer = fn
	}
}

// NewRenderer creates a renderer producing anonymous, fully inlined schemas.
func NewRenderer(opts ...RendererOption) *Renderer {
	reflector := &jsonschema.Reflector{
		Anonymous:      true,
		DoNotReference: true,
	}
	for _, opt := range opts {
		opt(reflector)
	}
	return &Renderer{reflector: reflector}
}

// Render reflects t into a schema. Types the reflector cannot express, and
// self-referencing structs that cannot be inlined, fail with a
// *errors.SchemaError.
func (r *Renderer) Render(t reflect.Type) (s *jsonschema.Schema, err error) {
	if t == nil {
		return &jsonschema.Schema{Version: jsonschema.Version}, nil
	}
	if err := checkRenderable(t, nil); err != nil {
		return nil, errors.NewSchemaError("", t.String(), err.Error(), err)
	}

	defer func() {
		if p := recover(); p != nil {
			s = nil
			err = errors.NewSchemaError("", t.String(), fmt.Sprint(p), nil)
		}
	}()

	return r.reflector.ReflectFromType(t), nil
}

var (
	timeType       = reflect.TypeFor[time.Time]()
	urlType        = reflect.TypeFor[url.URL]()
	ipType         = reflect.TypeFor[net.IP]()
	rawMessageType = reflect.TypeFor[json.RawMessage]()
	customType     = reflect.TypeFor[interface{ JSONSchema() *jsonschema.Schema }]()
)

// checkRenderable walks t and rejects kinds without a JSON form. visiting
// holds the named types on the current path; meeting one again is a cycle.
func checkRenderable(t reflect.Type, visiting []reflect.Type) error {
	if t.Name() != "" {
		if slices.Contains(visiting, t) {
			return fmt.Errorf("type %s refers to itself and cannot be inlined", t)
		}
		visiting = append(visiting, t)
	}

	switch t {
	case timeType, urlType, ipType, rawMessageType:
		return nil
	}
	if t.Kind() != reflect.Pointer && (t.Implements(customType) || reflect.PointerTo(t).Implements(customType)) {
		return nil
	}

	switch t.Kind() {
	case reflect.Chan, reflect.Func, reflect.Complex64, reflect.Complex128,
		reflect.UnsafePointer, reflect.Uintptr, reflect.Invalid:
		return fmt.Errorf("kind %s has no JSON representation", t.Kind())

	case reflect.Pointer, reflect.Slice, reflect.Array, reflect.Map:
		return checkRenderable(t.Elem(), visiting)

	case reflect.Struct:
		for i := range t.NumField() {
			f := t.Field(i)
			if skippedField(f) {
				continue
			}
			if err := checkRenderable(f.Type, visiting); err != nil {
				return fmt.Errorf("field %s.%s: %w", t.Name(), f.Name, err)
			}
		}
	}
	return nil
}

func skippedField(f reflect.StructField) bool {
	if !f.IsExported() && !f.Anonymous {
		return true
	}
	if name, _, _ := strings.Cut(f.Tag.Get("json"), ","); name == "-" {
		return true
	}
	name, _, _ := strings.Cut(f.Tag.Get("jsonschema"), ",")
	return name == "-"
}
