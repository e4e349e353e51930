// Package appcontext defines what CLI commands need from the application,
// so commands depend on an interface rather than on the app package.
package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/stockmatch/stockmatch"
	"github.com/stockmatch/stockmatch/internal/server"
)

// Interface is implemented by the CLI's App.
type Interface interface {
	// Stockmatch returns the shared instance, creating it on first use.
	// Sources are built from configuration; a missing source only fails the
	// operations that need it.
	Stockmatch() (stockmatch.Stockmatch, error)

	// Logger returns the configured logger.
	Logger() *zerolog.Logger

	// OutputFormat returns the requested output format, possibly empty.
	OutputFormat() string

	// ServerConfig returns the HTTP server settings.
	ServerConfig() server.Config

	// AutoRefresh reports whether the server rescans production in the
	// background.
	AutoRefresh() bool

	Version() string
	Commit() string
	Date() string
	BuiltBy() string
}
