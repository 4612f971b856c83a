// Package emoji provides symbol constants for CLI output.
package emoji

// Symbol constants give command output a consistent visual language.
const (
	// Success marks a file that was written.
	Success = "✓"

	// Error marks a failed operation.
	Error = "✗"

	// Warning marks a non-fatal problem.
	Warning = "!"

	// Unchanged marks a file whose content did not change.
	Unchanged = "="

	// Preview marks a file rendered by a dry run.
	Preview = "~"
)

// Status returns the symbol for a file result.
func Status(changed, written, dryRun bool) string {
	switch {
	case !changed:
		return Unchanged
	case dryRun:
		return Preview
	case written:
		return Success
	default:
		return Warning
	}
}
