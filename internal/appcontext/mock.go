package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/stockmatch/stockmatch"
	"github.com/stockmatch/stockmatch/internal/server"
)

// Mock implements Interface for command tests. Nil function fields fall
// back to zero values.
type Mock struct {
	StockmatchFunc     func() (stockmatch.Stockmatch, error)
	LoggerFunc         func() *zerolog.Logger
	Format             string
	Server             *server.Config
	AutoRefreshEnabled bool
	VersionString      string
}

var _ Interface = (*Mock)(nil)

// Stockmatch returns the mock instance or nil.
func (m *Mock) Stockmatch() (stockmatch.Stockmatch, error) {
	if m.StockmatchFunc != nil {
		return m.StockmatchFunc()
	}
	return nil, nil
}

// Logger returns the mock logger or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns Format.
func (m *Mock) OutputFormat() string {
	return m.Format
}

// ServerConfig returns Server or the defaults.
func (m *Mock) ServerConfig() server.Config {
	if m.Server != nil {
		return *m.Server
	}
	return server.DefaultConfig()
}

// AutoRefresh returns AutoRefreshEnabled.
func (m *Mock) AutoRefresh() bool {
	return m.AutoRefreshEnabled
}

// Version returns VersionString or "dev".
func (m *Mock) Version() string {
	if m.VersionString != "" {
		return m.VersionString
	}
	return "dev"
}

// Commit returns "unknown".
func (m *Mock) Commit() string { return "unknown" }

// Date returns "unknown".
func (m *Mock) Date() string { return "unknown" }

// BuiltBy returns "unknown".
func (m *Mock) BuiltBy() string { return "unknown" }
