package server

import (
	"time"

	"github.com/stockmatch/stockmatch/pkg/constants"
)

// Config holds server configuration.
type Config struct {
	Host string `mapstructure:"host" yaml:"host"`
	Port int    `mapstructure:"port" yaml:"port"`

	// PathPrefix is prepended to every API route except /health.
	PathPrefix string `mapstructure:"path_prefix" yaml:"path_prefix"`

	// CORSOrigins lists allowed origins; empty allows any origin.
	CORSOrigins []string `mapstructure:"cors_origins" yaml:"cors_origins"`

	// CacheTTL is how long inventory responses are reused.
	CacheTTL time.Duration `mapstructure:"cache_ttl" yaml:"cache_ttl"`

	MaxRequestBytes int64 `mapstructure:"max_request_bytes" yaml:"max_request_bytes"`
	MaxUploadBytes  int64 `mapstructure:"max_upload_bytes" yaml:"max_upload_bytes"`

	ReadTimeout  time.Duration `mapstructure:"read_timeout" yaml:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout" yaml:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout" yaml:"idle_timeout"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Host:            constants.DefaultServerHost,
		Port:            constants.DefaultServerPort,
		PathPrefix:      "/api",
		CORSOrigins:     []string{},
		CacheTTL:        constants.DefaultInventoryCacheTTL,
		MaxRequestBytes: constants.MaxRequestBytes,
		MaxUploadBytes:  constants.MaxUploadBytes,
		ReadTimeout:     30 * time.Second,
		WriteTimeout:    constants.CommandTimeout,
		IdleTimeout:     120 * time.Second,
	}
}
