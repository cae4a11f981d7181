// Package document lays out an extraction result as a serializable document:
// a bare array of endpoints, a map keyed by path, or an object that wraps
// the endpoints under a caller supplied key next to the definitions table.
package document

import (
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/agentstation/routemap/pkg/constants"
	"github.com/agentstation/routemap/pkg/errors"
	"github.com/agentstation/routemap/pkg/extract"
	"github.com/agentstation/routemap/pkg/save"
)

// Shape is the top-level layout of a document.
type Shape string

const (
	// ShapeArray is a bare array of endpoint descriptors.
	ShapeArray Shape = "array"
	// ShapeMap is a bare object of endpoint descriptors keyed by path.
	ShapeMap Shape = "map"
	// ShapeWrapped is {<key>: <collection>, "definitions": {...}}.
	ShapeWrapped Shape = "wrapped"
)

// Collection is how a wrapped document holds its endpoints.
type Collection string

const (
	// CollectionMap keys endpoints by path.
	CollectionMap Collection = "map"
	// CollectionArray lists endpoints in traversal order.
	CollectionArray Collection = "array"
)

// Layout selects the document layout.
type Layout struct {
	Shape      Shape
	Key        string
	Collection Collection
}

// DefaultLayout wraps a path-keyed map under "routes".
func DefaultLayout() Layout {
	return Layout{Shape: ShapeWrapped, Key: "routes", Collection: CollectionMap}
}

// ParseShape parses a shape name. "map-by-path" and "wrapped-with-key" are
// accepted as aliases.
func ParseShape(s string) (Shape, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "array":
		return ShapeArray, nil
	case "map", "map-by-path":
		return ShapeMap, nil
	case "", "wrapped", "wrapped-with-key":
		return ShapeWrapped, nil
	default:
		return "", errors.NewValidationError("shape", s, "must be array, map or wrapped")
	}
}

// ParseCollection parses a collection name.
func ParseCollection(s string) (Collection, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "map":
		return CollectionMap, nil
	case "array":
		return CollectionArray, nil
	default:
		return "", errors.NewValidationError("collection", s, "must be map or array")
	}
}

// Validate checks the layout. Wrapped documents need a key that does not
// clash with the definitions field.
func (l Layout) Validate() error {
	switch l.Shape {
	case ShapeArray, ShapeMap:
		return nil
	case ShapeWrapped:
	default:
		return errors.NewValidationError("shape", string(l.Shape), "must be array, map or wrapped")
	}
	switch l.Collection {
	case "", CollectionMap, CollectionArray:
	default:
		return errors.NewValidationError("collection", string(l.Collection), "must be map or array")
	}
	if l.Key == "" {
		return errors.NewValidationError("key", l.Key, "a wrapped document needs a top-level key")
	}
	if l.Key == constants.DefinitionsKey {
		return errors.NewValidationError("key", l.Key, "collides with the definitions field")
	}
	return nil
}

// Build returns the document value for res. The value marshals to JSON with
// keys in traversal order.
func Build(res *extract.Result, l Layout) (any, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}
	if res == nil {
		res = emptyResult()
	}

	endpoints := res.Endpoints
	if endpoints == nil {
		endpoints = []*extract.Endpoint{}
	}

	switch l.Shape {
	case ShapeArray:
		return endpoints, nil
	case ShapeMap:
		return res.Paths(), nil
	}

	doc := orderedmap.New[string, any]()
	if l.Collection == CollectionArray {
		doc.Set(l.Key, endpoints)
	} else {
		doc.Set(l.Key, res.Paths())
	}
	doc.Set(constants.DefinitionsKey, res.Schemas())
	return doc, nil
}

// Render builds the document and encodes it.
func Render(res *extract.Result, l Layout, f save.Format) ([]byte, error) {
	doc, err := Build(res, l)
	if err != nil {
		return nil, err
	}
	return save.Marshal(doc, f)
}

func emptyResult() *extract.Result {
	res, _ := extract.Extract(nil)
	return res
}
