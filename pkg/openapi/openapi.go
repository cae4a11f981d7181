// Package openapi exports an extraction result as an OpenAPI 3.0 document.
//
// Queries become GET operations taking their input as a JSON-encoded "input"
// query parameter. Mutations become POST operations with a JSON request
// body. Every operation answers 200 with the output schema, and the
// definitions table becomes components.schemas.
package openapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/agentstation/routemap/pkg/constants"
	"github.com/agentstation/routemap/pkg/errors"
	"github.com/agentstation/routemap/pkg/extract"
	"github.com/agentstation/routemap/pkg/router"
	"github.com/agentstation/routemap/pkg/schema"
)

// InputParameter is the query parameter carrying a query's input.
const InputParameter = "input"

// Option configures the exported document.
type Option func(*options)

type options struct {
	title       string
	version     string
	description string
}

// WithTitle sets info.title.
func WithTitle(title string) Option {
	return func(o *options) {
		if title != "" {
			o.title = title
		}
	}
}

// WithVersion sets info.version.
func WithVersion(version string) Option {
	return func(o *options) {
		if version != "" {
			o.version = version
		}
	}
}

// WithDescription sets info.description.
func WithDescription(description string) Option {
	return func(o *options) {
		o.description = description
	}
}

// Build creates the OpenAPI document for res.
func Build(res *extract.Result, opts ...Option) (*openapi3.T, error) {
	o := &options{
		title:   constants.DefaultOpenAPITitle,
		version: constants.DefaultOpenAPIVersion,
	}
	for _, opt := range opts {
		opt(o)
	}

	doc := &openapi3.T{
		OpenAPI: constants.OpenAPIVersion,
		Info: &openapi3.Info{
			Title:       o.title,
			Version:     o.version,
			Description: o.description,
		},
		Paths: openapi3.NewPaths(),
	}
	if res == nil {
		return doc, nil
	}

	components := openapi3.NewComponents()
	defs := res.Schemas()
	components.Schemas = make(openapi3.Schemas, defs.Len())
	for pair := defs.Oldest(); pair != nil; pair = pair.Next() {
		converted, err := ConvertSchema(pair.Value)
		if err != nil {
			return nil, errors.NewSchemaError(pair.Key, "openapi", err.Error(), err)
		}
		components.Schemas[pair.Key] = converted
	}
	if len(components.Schemas) > 0 {
		doc.Components = &components
	}

	for _, ep := range res.Endpoints {
		method, op := operation(ep)
		doc.AddOperation("/"+ep.Path, method, op)
	}
	return doc, nil
}

// Validate checks doc against the OpenAPI 3.0 rules. The document is
// round-tripped through the loader so references are resolved first.
func Validate(ctx context.Context, doc *openapi3.T) error {
	data, err := doc.MarshalJSON()
	if err != nil {
		return errors.WrapParse("json", "", err)
	}
	loaded, err := openapi3.NewLoader().LoadFromData(data)
	if err != nil {
		return errors.WrapResource("load", "openapi", "", err)
	}
	if err := loaded.Validate(ctx); err != nil {
		return &errors.ValidationError{Field: "openapi", Message: err.Error()}
	}
	return nil
}

// Generate builds and validates the document for res.
func Generate(ctx context.Context, res *extract.Result, opts ...Option) (*openapi3.T, error) {
	doc, err := Build(res, opts...)
	if err != nil {
		return nil, err
	}
	if err := Validate(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func operation(ep *extract.Endpoint) (string, *openapi3.Operation) {
	op := openapi3.NewOperation()
	op.OperationID = ep.Path
	op.Summary = ep.Description
	if group, _, nested := strings.Cut(ep.Path, constants.PathSeparator); nested {
		op.Tags = []string{group}
	}

	response := openapi3.NewResponse().WithDescription("Successful response")
	if ep.Output != nil {
		response.Content = openapi3.NewContentWithJSONSchemaRef(componentSchema(*ep.Output))
	}
	op.Responses = openapi3.NewResponses(openapi3.WithStatus(http.StatusOK, &openapi3.ResponseRef{Value: response}))

	input := inputSchema(ep)
	if ep.Kind == router.KindMutation {
		if input != nil {
			op.RequestBody = &openapi3.RequestBodyRef{
				Value: openapi3.NewRequestBody().WithRequired(true).WithJSONSchemaRef(input),
			}
		}
		return http.MethodPost, op
	}

	if input != nil {
		param := openapi3.NewQueryParameter(InputParameter)
		param.Required = true
		param.Description = "JSON-encoded procedure input"
		param.Content = openapi3.NewContentWithJSONSchemaRef(input)
		op.Parameters = openapi3.Parameters{{Value: param}}
	}
	return http.MethodGet, op
}

// inputSchema returns the schema of an endpoint's input. Several positional
// inputs are described as a fixed-length array.
func inputSchema(ep *extract.Endpoint) *openapi3.SchemaRef {
	switch {
	case len(ep.Inputs) == 0:
		return nil
	case !ep.InputList:
		return componentSchema(ep.Inputs[0])
	}

	items := make(openapi3.SchemaRefs, 0, len(ep.Inputs))
	for _, in := range ep.Inputs {
		items = append(items, componentSchema(in))
	}
	n := uint64(len(items))
	arr := openapi3.NewArraySchema()
	arr.Items = openapi3.NewSchemaRef("", &openapi3.Schema{OneOf: items})
	arr.MinItems = n
	arr.MaxItems = &n
	arr.Description = "Positional procedure inputs"
	return openapi3.NewSchemaRef("", arr)
}

func componentSchema(ref schema.Ref) *openapi3.SchemaRef {
	return openapi3.NewSchemaRef(constants.OpenAPIComponentsRefPrefix+ref.Name, nil)
}
