// Package emoji provides symbol constants for CLI output.
// These symbols create a consistent visual language across all command-line commands.
package emoji

const (
	// Success represents successful completion of an operation.
	// Used for: passing checks, completed exports, verified round-trips.
	Success = "✓"

	// Error represents failures or missing required data.
	// Used for: failed coverage checks, schema mismatches.
	Error = "✗"

	// Warning represents warnings or non-critical issues.
	// Used for: data anomalies, header fallback notices.
	Warning = "!"

	// Unknown represents unknown or indeterminate states.
	// Used for: unrecognized rear-type codes.
	Unknown = "?"
)
