// Package schema turns type descriptors into JSON Schema and keeps the
// definitions table that deduplicates them by name.
//
// A Descriptor describes the shape of a value. TypeOf and For describe Go
// types through reflection; Raw wraps a schema that was written by hand or
// decoded from a manifest. A Registry renders each proposed name once and
// hands out references for every later use of the same name:
//
//	reg := schema.NewRegistry(nil, schema.FirstInline)
//	first, _ := reg.Resolve(schema.TypeOf[GetUserInput](), "getUserInputSchema")
//	again, _ := reg.Resolve(schema.TypeOf[GetUserInput](), "getUserInputSchema")
//	// first carries the schema body, again is {"$ref":"#/definitions/getUserInputSchema"}
//
// The registry never compares bodies. A second descriptor registered under a
// name that is already taken resolves to the first one.
package schema
