// Package app provides the application context and dependency management
// for the stockmatch CLI: configuration, logging and the lazily built
// stockmatch instance with its sources.
package app

import (
	"context"
	"io"
	"sync"

	"github.com/rs/zerolog"

	"github.com/stockmatch/stockmatch"
	"github.com/stockmatch/stockmatch/internal/appcontext"
	"github.com/stockmatch/stockmatch/internal/overrides"
	"github.com/stockmatch/stockmatch/internal/server"
	"github.com/stockmatch/stockmatch/internal/sources/flowhub"
	"github.com/stockmatch/stockmatch/internal/sources/googlesheets"
	"github.com/stockmatch/stockmatch/internal/sources/workbook"
	"github.com/stockmatch/stockmatch/pkg/errors"
	"github.com/stockmatch/stockmatch/pkg/sheets"
)

// App holds the CLI's configuration and dependencies.
type App struct {
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	mu         sync.Mutex
	stockmatch stockmatch.Stockmatch
	closers    []io.Closer
}

var _ appcontext.Interface = (*App)(nil)

// New creates an App with configuration loaded from the environment and
// the default config file.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig("")
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}
	return app, nil
}

// Version returns the version information.
func (a *App) Version() string { return a.version }

// Commit returns the git commit hash.
func (a *App) Commit() string { return a.commit }

// Date returns the build date.
func (a *App) Date() string { return a.date }

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string { return a.builtBy }

// Config returns the application configuration.
func (a *App) Config() *Config { return a.config }

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger { return a.logger }

// OutputFormat returns the --format value.
func (a *App) OutputFormat() string { return a.config.Format }

// ServerConfig returns the HTTP server settings.
func (a *App) ServerConfig() server.Config { return a.config.Server }

// AutoRefresh reports whether the server rescans production in the
// background.
func (a *App) AutoRefresh() bool { return a.config.AutoRefresh }

// Stockmatch returns the shared instance, building it on first use.
func (a *App) Stockmatch() (stockmatch.Stockmatch, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stockmatch != nil {
		return a.stockmatch, nil
	}

	opts, err := a.buildOptions(context.Background())
	if err != nil {
		return nil, err
	}
	sm, err := stockmatch.New(opts...)
	if err != nil {
		return nil, errors.WrapResource("create", "stockmatch", "", err)
	}
	a.stockmatch = sm
	return sm, nil
}

// buildOptions turns configuration into facade options. A source that is
// not configured at all is left out; a partially configured one fails.
func (a *App) buildOptions(ctx context.Context) ([]stockmatch.Option, error) {
	cfg := a.config
	opts := []stockmatch.Option{
		stockmatch.WithLogger(a.logger),
		stockmatch.WithCompany(cfg.Company),
		stockmatch.WithOrderPrefix(cfg.OrderPrefix),
		stockmatch.WithOrderPolicy(cfg.OrderPolicy),
		stockmatch.WithPOSRules(cfg.POSRules.API),
		stockmatch.WithCSVRules(cfg.POSRules.CSV),
	}

	tabs, err := a.tabSource(ctx)
	if err != nil {
		return nil, err
	}
	if tabs != nil {
		opts = append(opts, stockmatch.WithTabSource(tabs))
	}

	if cfg.Flowhub.ClientID != "" || cfg.Flowhub.APIKey != "" {
		client, err := flowhub.New(cfg.Flowhub, flowhub.WithLogger(a.logger))
		if err != nil {
			return nil, err
		}
		opts = append(opts, stockmatch.WithPOSSource(client))
	}

	file, err := overrides.Load(cfg.OverridesFile)
	if err != nil {
		return nil, err
	}
	if file.Len() > 0 || file.Thresholds != nil {
		a.logger.Debug().Int("overrides", file.Len()).Str("file", cfg.OverridesFile).Msg("loaded match overrides")
		opts = append(opts, stockmatch.WithMatchOptions(file.Options()...))
	}

	if cfg.AutoRefreshInterval > 0 {
		opts = append(opts, stockmatch.WithAutoRefreshInterval(cfg.AutoRefreshInterval))
	}
	return opts, nil
}

// tabSource prefers a local workbook over Google Sheets.
func (a *App) tabSource(ctx context.Context) (sheets.TabSource, error) {
	cfg := a.config
	switch {
	case cfg.Workbook != "":
		src, err := workbook.Open(cfg.Workbook)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, src)
		return src, nil
	case cfg.Sheets.SpreadsheetID != "" || cfg.Sheets.ClientEmail != "" || cfg.Sheets.PrivateKey != "":
		return googlesheets.New(ctx, cfg.Sheets)
	}
	return nil, nil
}

// Shutdown stops background work and releases open sources.
func (a *App) Shutdown(_ context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	var errs []error
	if a.stockmatch != nil {
		if err := a.stockmatch.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

// Option configures an App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithStockmatch sets the stockmatch instance, for tests.
func WithStockmatch(sm stockmatch.Stockmatch) Option {
	return func(a *App) error {
		a.stockmatch = sm
		return nil
	}
}
