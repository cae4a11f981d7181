package router

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/invopop/jsonschema"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/agentstation/routemap/pkg/constants"
	"github.com/agentstation/routemap/pkg/errors"
	"github.com/agentstation/routemap/pkg/logging"
	"github.com/agentstation/routemap/pkg/schema"
)

// A manifest describes a router in YAML or JSON:
//
//	procedures:
//	  getUser:
//	    type: query
//	    description: Fetch a user by id
//	    input: {type: object, properties: {id: {type: string}}, required: [id]}
//	    output: {type: object}
//	routers:
//	  billing:
//	    procedures:
//	      charge:
//	        type: mutation
//	        input:
//	          - {type: object}
//	          - {type: string}
//
// Key order in the document is the registration order of the group.
type manifestGroup struct {
	Procedures *orderedmap.OrderedMap[string, *manifestProcedure] `json:"procedures,omitempty"`
	Routers    *orderedmap.OrderedMap[string, *manifestGroup]     `json:"routers,omitempty"`
}

type manifestProcedure struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Input       json.RawMessage    `json:"input,omitempty"`
	Output      *jsonschema.Schema `json:"output,omitempty"`
}

// LoadManifest reads and parses a manifest file.
func LoadManifest(ctx context.Context, path string) (*Group, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the user
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	g, err := ParseManifest(ctx, data)
	if err != nil {
		return nil, errors.WrapResource("load", "manifest", filepath.Base(path), err)
	}
	return g, nil
}

// ParseManifest parses a YAML or JSON manifest. Procedures with an unknown
// type are skipped with a warning.
func ParseManifest(ctx context.Context, data []byte) (*Group, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return NewGroup(), nil
	}

	jsonData, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, errors.WrapParse("yaml", "", err)
	}

	var doc manifestGroup
	if err := json.Unmarshal(jsonData, &doc); err != nil {
		return nil, errors.WrapParse("json", "", err)
	}

	return buildGroup(ctx, &doc, "")
}

func buildGroup(ctx context.Context, m *manifestGroup, prefix string) (*Group, error) {
	logger := logging.FromContext(ctx)
	g := NewGroup()
	if m == nil {
		return g, nil
	}

	if m.Procedures != nil {
		for pair := m.Procedures.Oldest(); pair != nil; pair = pair.Next() {
			path := prefix + pair.Key
			if err := checkName(pair.Key, path); err != nil {
				return nil, err
			}
			mp := pair.Value
			if mp == nil {
				logger.Warn().Str("path", path).Msg("skipping empty procedure")
				continue
			}
			kind, err := ParseKind(mp.Type)
			if err != nil {
				logger.Warn().Str("path", path).Str("type", mp.Type).Msg("skipping procedure with unknown type")
				continue
			}
			p, err := buildProcedure(kind, mp, path)
			if err != nil {
				return nil, err
			}
			g.Handle(pair.Key, p)
		}
	}

	if m.Routers != nil {
		for pair := m.Routers.Oldest(); pair != nil; pair = pair.Next() {
			path := prefix + pair.Key
			if err := checkName(pair.Key, path); err != nil {
				return nil, err
			}
			if g.has(pair.Key) {
				return nil, errors.NewValidationError("routers", path, "name is already used by a procedure")
			}
			child, err := buildGroup(ctx, pair.Value, path+".")
			if err != nil {
				return nil, err
			}
			g.Mount(pair.Key, child)
		}
	}
	return g, nil
}

func buildProcedure(kind Kind, mp *manifestProcedure, path string) (*Procedure, error) {
	p := &Procedure{Kind: kind, Description: mp.Description}

	raw := bytes.TrimSpace(mp.Input)
	switch {
	case len(raw) == 0 || bytes.Equal(raw, []byte("null")):
	case raw[0] == '[':
		var inputs []*jsonschema.Schema
		if err := json.Unmarshal(raw, &inputs); err != nil {
			return nil, errors.NewParseError("json", "", "input of "+path, err)
		}
		for _, s := range inputs {
			p.Inputs = append(p.Inputs, schema.Raw(path+".input", s))
		}
	default:
		s := new(jsonschema.Schema)
		if err := json.Unmarshal(raw, s); err != nil {
			return nil, errors.NewParseError("json", "", "input of "+path, err)
		}
		p.Inputs = append(p.Inputs, schema.Raw(path+".input", s))
	}

	if mp.Output != nil {
		p.Output = schema.Raw(path+".output", mp.Output)
	}
	return p, nil
}

func checkName(name, path string) error {
	if name == "" || strings.Contains(name, constants.PathSeparator) {
		return errors.NewValidationError("name", path, "entry names must be non-empty and must not contain the path separator")
	}
	return nil
}

func (g *Group) has(name string) bool {
	_, ok := g.names[name]
	return ok
}
