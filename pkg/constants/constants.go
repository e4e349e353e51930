// Package constants provides shared constants used throughout stockmatch.
package constants

import "time"

// Timeouts.
const (
	// DefaultHTTPTimeout bounds a single request to the POS or spreadsheet API.
	DefaultHTTPTimeout = 30 * time.Second

	// CredentialsTimeout bounds service-account credential detection.
	CredentialsTimeout = 10 * time.Second

	// CommandTimeout is the default timeout for CLI commands.
	CommandTimeout = 5 * time.Minute

	// ShutdownTimeout is how long the server waits for in-flight requests.
	ShutdownTimeout = 5 * time.Second

	// DefaultInventoryCacheTTL is how long the server reuses a production report.
	DefaultInventoryCacheTTL = 5 * time.Minute
)

// File permissions.
const (
	DirPermissions  = 0755
	FilePermissions = 0644
)

// Limits.
const (
	// MaxUploadBytes caps a CSV upload body.
	MaxUploadBytes = 10 << 20

	// MaxRequestBytes caps a JSON request body.
	MaxRequestBytes = 5 << 20
)

// Defaults.
const (
	DefaultServerHost = "localhost"
	DefaultServerPort = 8080
	DefaultFlowhubURL = "https://api.flowhub.co"
)
