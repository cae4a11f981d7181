// Package emoji provides symbol constants for CLI output.
// These symbols create a consistent visual language across all command-line commands.
package emoji

// Symbol constants for CLI output provide a consistent visual language across commands.
const (
	// Success represents successful completion of an operation.
	// Used for: written documents, validated OpenAPI output.
	Success = "✓"

	// Error represents failures.
	// Used for: failed extractions while watching.
	Error = "✗"

	// Warning represents warnings or non-critical issues.
	// Used for: skipped manifest entries, empty routers.
	Warning = "!"

	// Info represents informational messages.
	// Used for: watch status lines.
	Info = "i"
)
