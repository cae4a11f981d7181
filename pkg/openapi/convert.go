package openapi

import (
	"encoding/json"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/invopop/jsonschema"

	"github.com/agentstation/routemap/pkg/constants"
)

// keywords that carry over to an OpenAPI 3.0 schema object unchanged.
var keptKeywords = map[string]bool{
	"title": true, "description": true, "format": true, "default": true,
	"type": true, "enum": true, "required": true, "nullable": true,
	"multipleOf": true, "maximum": true, "minimum": true,
	"maxLength": true, "minLength": true, "pattern": true,
	"maxItems": true, "minItems": true, "uniqueItems": true,
	"maxProperties": true, "minProperties": true,
	"readOnly": true, "writeOnly": true, "deprecated": true, "example": true,
}

// ConvertSchema turns a JSON Schema body into an OpenAPI 3.0 schema.
// Keywords without a 3.0 equivalent are dropped, type arrays with "null"
// become nullable, numeric exclusive bounds become boolean flags, examples
// become example, const becomes a one-value enum and definition references
// point into components.schemas.
func ConvertSchema(s *jsonschema.Schema) (*openapi3.SchemaRef, error) {
	if s == nil {
		return openapi3.NewSchemaRef("", openapi3.NewSchema()), nil
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return nil, err
	}

	data, err = json.Marshal(convertNode(generic))
	if err != nil {
		return nil, err
	}
	ref := new(openapi3.SchemaRef)
	if err := ref.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return ref, nil
}

func convertNode(v any) map[string]any {
	switch n := v.(type) {
	case bool:
		if n {
			return map[string]any{}
		}
		return map[string]any{"not": map[string]any{}}
	case map[string]any:
		return convertObject(n)
	default:
		return map[string]any{}
	}
}

func convertObject(in map[string]any) map[string]any {
	if ref, ok := in["$ref"].(string); ok {
		return map[string]any{"$ref": componentRef(ref)}
	}

	out := make(map[string]any, len(in))
	for key, value := range in {
		switch {
		case keptKeywords[key]:
			out[key] = value
		case strings.HasPrefix(key, "x-"):
			out[key] = value
		}
	}

	if types, ok := in["type"].([]any); ok {
		var kept []string
		for _, t := range types {
			if s, _ := t.(string); s == "null" {
				out["nullable"] = true
			} else if s != "" {
				kept = append(kept, s)
			}
		}
		delete(out, "type")
		if len(kept) == 1 {
			out["type"] = kept[0]
		}
	}

	if examples, ok := in["examples"].([]any); ok && len(examples) > 0 {
		if _, has := out["example"]; !has {
			out["example"] = examples[0]
		}
	}
	if c, ok := in["const"]; ok {
		out["enum"] = []any{c}
	}
	if v, ok := in["exclusiveMinimum"]; ok {
		exclusiveBound(out, "minimum", "exclusiveMinimum", v)
	}
	if v, ok := in["exclusiveMaximum"]; ok {
		exclusiveBound(out, "maximum", "exclusiveMaximum", v)
	}

	if props, ok := in["properties"].(map[string]any); ok {
		converted := make(map[string]any, len(props))
		for name, p := range props {
			converted[name] = convertNode(p)
		}
		out["properties"] = converted
	}
	if items, ok := in["items"]; ok {
		out["items"] = convertNode(items)
	}
	if ap, ok := in["additionalProperties"]; ok {
		if b, isBool := ap.(bool); isBool {
			out["additionalProperties"] = b
		} else {
			out["additionalProperties"] = convertNode(ap)
		}
	}
	if not, ok := in["not"]; ok {
		out["not"] = convertNode(not)
	}
	for _, key := range []string{"allOf", "anyOf", "oneOf"} {
		if list, ok := in[key].([]any); ok {
			converted := make([]any, len(list))
			for i, item := range list {
				converted[i] = convertNode(item)
			}
			out[key] = converted
		}
	}
	return out
}

// exclusiveBound rewrites a 2020-12 numeric exclusive bound. A boolean
// bound is already in 3.0 form.
func exclusiveBound(out map[string]any, bound, flag string, v any) {
	switch b := v.(type) {
	case bool:
		out[flag] = b
	case float64:
		out[bound] = b
		out[flag] = true
	}
}

func componentRef(ref string) string {
	for _, prefix := range []string{constants.DefinitionsRefPrefix, "#/$defs/"} {
		if name, ok := strings.CutPrefix(ref, prefix); ok {
			return constants.OpenAPIComponentsRefPrefix + name
		}
	}
	return ref
}
