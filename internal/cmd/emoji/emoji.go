// Package emoji provides the status symbols printed by CLI commands.
package emoji

const (
	// Success marks a completed operation.
	Success = "✓"

	// Stop marks a shutdown.
	Stop = "✗"

	// Warning marks a non-fatal problem, such as a store that failed to load.
	Warning = "!"

	// Server marks a listening server.
	Server = "🚀"
)
