// Package emoji provides symbol constants for CLI output.
// These symbols create a consistent visual language across all commands.
package emoji

// Symbol constants for CLI output.
const (
	// Success represents successful completion of an operation.
	// Used for: saved catalogs, matched sources.
	Success = "✓"

	// Error represents failures or missing required inputs.
	// Used for: failed runs, missing source documents.
	Error = "✗"

	// Warning represents non-critical issues.
	// Used for: skipped images, unmatched source records.
	Warning = "!"

	// Optional represents skipped steps.
	// Used for: unconfigured sources, dry runs.
	Optional = "-"

	// Info represents informational messages.
	Info = "i"
)
