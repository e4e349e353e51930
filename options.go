package stockmatch

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/stockmatch/stockmatch/pkg/constants"
	"github.com/stockmatch/stockmatch/pkg/errors"
	"github.com/stockmatch/stockmatch/pkg/match"
	"github.com/stockmatch/stockmatch/pkg/orders"
	"github.com/stockmatch/stockmatch/pkg/pos"
	"github.com/stockmatch/stockmatch/pkg/sheets"
)

type options struct {
	tabSource sheets.TabSource
	posSource POSSource

	engine       *match.Engine
	matchOptions []match.Option
	posRules     pos.Rules
	csvRules     pos.Rules

	orderPolicy orders.Policy
	orderPrefix string
	company     string

	autoRefresh         bool
	autoRefreshInterval time.Duration

	logger *zerolog.Logger
}

func defaultOptions() *options {
	return &options{
		posRules:            pos.APIRules(),
		csvRules:            pos.CSVRules(),
		orderPolicy:         orders.DefaultPolicy(),
		orderPrefix:         orders.DefaultPrefix,
		autoRefreshInterval: constants.DefaultInventoryCacheTTL,
	}
}

// Option configures a Stockmatch instance.
type Option func(*options) error

func (o *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// WithTabSource sets the production spreadsheet.
func WithTabSource(src sheets.TabSource) Option {
	return func(o *options) error {
		o.tabSource = src
		return nil
	}
}

// WithPOSSource sets the POS inventory source.
func WithPOSSource(src POSSource) Option {
	return func(o *options) error {
		o.posSource = src
		return nil
	}
}

// WithEngine uses a prebuilt matching engine. It takes precedence over
// WithMatchOptions.
func WithEngine(e *match.Engine) Option {
	return func(o *options) error {
		o.engine = e
		return nil
	}
}

// WithMatchOptions configures the default matching engine.
func WithMatchOptions(opts ...match.Option) Option {
	return func(o *options) error {
		o.matchOptions = append(o.matchOptions, opts...)
		return nil
	}
}

// WithPOSRules replaces the house-product filter rules for live POS inventory.
func WithPOSRules(rules pos.Rules) Option {
	return func(o *options) error {
		o.posRules = rules
		return nil
	}
}

// WithCSVRules replaces the house-product filter rules for POS exports.
func WithCSVRules(rules pos.Rules) Option {
	return func(o *options) error {
		o.csvRules = rules
		return nil
	}
}

// WithOrderPolicy sets restock thresholds and order sizes.
func WithOrderPolicy(p orders.Policy) Option {
	return func(o *options) error {
		o.orderPolicy = p
		return nil
	}
}

// WithOrderPrefix sets the order number prefix.
func WithOrderPrefix(prefix string) Option {
	return func(o *options) error {
		o.orderPrefix = prefix
		return nil
	}
}

// WithCompany sets the heading of rendered order sheets.
func WithCompany(name string) Option {
	return func(o *options) error {
		o.company = name
		return nil
	}
}

// WithAutoRefresh starts refreshing the production inventory in the
// background as soon as the instance is created.
func WithAutoRefresh(enabled bool) Option {
	return func(o *options) error {
		o.autoRefresh = enabled
		return nil
	}
}

// WithAutoRefreshInterval sets how often the production inventory is
// rescanned.
func WithAutoRefreshInterval(interval time.Duration) Option {
	return func(o *options) error {
		if interval <= 0 {
			return errors.NewValidationError("autoRefreshInterval", interval, "refresh interval must be positive")
		}
		o.autoRefreshInterval = interval
		return nil
	}
}

// WithLogger sets the logger. By default the logger is taken from the
// context of each call.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) error {
		o.logger = logger
		return nil
	}
}
