// Package constants provides shared constants used throughout the routemap
// codebase: file permissions, document keys, schema naming suffixes and
// the defaults the CLI falls back to.
package constants

import "time"

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Document constants shape the extracted route document.
const (
	// PathSeparator joins ancestor group names and the endpoint name.
	PathSeparator = "."

	// DefinitionsKey is the top-level key holding the definitions table
	// in the wrapped document shape.
	DefinitionsKey = "definitions"

	// DefinitionsRefPrefix prefixes every reference into the definitions table.
	DefinitionsRefPrefix = "#/" + DefinitionsKey + "/"

	// InputSchemaSuffix is appended to an endpoint name to name its input schema.
	InputSchemaSuffix = "InputSchema"

	// OutputSchemaSuffix is appended to an endpoint name to name its output schema.
	OutputSchemaSuffix = "OutputSchema"

	// JSONIndent is the indentation used for every JSON document we write.
	JSONIndent = "  "
)

// OpenAPI constants
const (
	// OpenAPIVersion is the OpenAPI specification version of exported documents.
	OpenAPIVersion = "3.0.3"

	// OpenAPIComponentsRefPrefix prefixes references into components.schemas.
	OpenAPIComponentsRefPrefix = "#/components/schemas/"

	// DefaultOpenAPITitle is the info.title used when none is configured.
	DefaultOpenAPITitle = "routemap API"

	// DefaultOpenAPIVersion is the info.version used when none is configured.
	DefaultOpenAPIVersion = "1.0.0"
)

// CLI defaults
const (
	// AppName is the binary and config file base name.
	AppName = "routemap"

	// EnvPrefix prefixes environment variables read through viper.
	EnvPrefix = "ROUTEMAP"

	// WatchDebounce coalesces bursts of file events into one re-extraction.
	WatchDebounce = 200 * time.Millisecond
)
