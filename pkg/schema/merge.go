package schema

import (
	"encoding/json"
	"slices"

	"github.com/invopop/jsonschema"
)

// MergeObjects combines object schemas into one. Properties keep the order
// they first appear in; a later schema's property replaces an earlier one of
// the same name. Required is the ordered union. It reports false when any
// input is not an object schema.
func MergeObjects(schemas ...*jsonschema.Schema) (*jsonschema.Schema, bool) {
	if len(schemas) == 0 {
		return nil, false
	}
	for _, s := range schemas {
		if s == nil || s.Type != "object" {
			return nil, false
		}
	}

	merged := &jsonschema.Schema{
		Version:    schemas[0].Version,
		Type:       "object",
		Properties: jsonschema.NewProperties(),
	}
	closed := true
	for _, s := range schemas {
		if s.Properties != nil {
			for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
				merged.Properties.Set(pair.Key, pair.Value)
			}
		}
		for _, name := range s.Required {
			if !slices.Contains(merged.Required, name) {
				merged.Required = append(merged.Required, name)
			}
		}
		if !isFalse(s.AdditionalProperties) {
			closed = false
		}
	}
	if closed {
		merged.AdditionalProperties = jsonschema.FalseSchema
	}
	return merged, true
}

func isFalse(s *jsonschema.Schema) bool {
	if s == nil {
		return false
	}
	data, err := json.Marshal(s)
	return err == nil && string(data) == "false"
}
