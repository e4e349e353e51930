package sheets

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/stockmatch/stockmatch/pkg/errors"
	"github.com/stockmatch/stockmatch/pkg/inventory"
	"github.com/stockmatch/stockmatch/pkg/logging"
)

// Range is a cell range within a tab, in A1 notation.
type Range string

// Ranges read by the scanner.
const (
	SampleRange Range = "A1:C50"
	FullRange   Range = "A:C"
)

// A1 builds a fully qualified A1 range such as 'Live Resin'!A:C.
func A1(tab string, rng Range) string {
	return "'" + strings.ReplaceAll(tab, "'", "''") + "'!" + string(rng)
}

// TabSource is a spreadsheet the scanner can read.
type TabSource interface {
	// Tabs lists every tab in spreadsheet order.
	Tabs(ctx context.Context) ([]TabInfo, error)
	// Rows returns the cell values of rng within tab as trimmed strings.
	// Trailing empty cells and rows may be omitted.
	Rows(ctx context.Context, tab string, rng Range) ([][]string, error)
}

// Scanner discovers and parses every inventory tab of a TabSource.
type Scanner struct {
	src    TabSource
	logger *zerolog.Logger
}

// ScannerOption configures a Scanner.
type ScannerOption func(*Scanner)

// WithLogger sets the logger used for per-tab failures. By default the
// logger is taken from the context.
func WithLogger(logger *zerolog.Logger) ScannerOption {
	return func(s *Scanner) { s.logger = logger }
}

// NewScanner creates a Scanner over src.
func NewScanner(src TabSource, opts ...ScannerOption) *Scanner {
	s := &Scanner{src: src}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Scanner) log(ctx context.Context) *zerolog.Logger {
	if s.logger != nil {
		return s.logger
	}
	return logging.FromContext(ctx)
}

// Discover lists the tabs and detects the format of each one. A tab whose
// sample cannot be read is reported with FormatUnknown and its error.
func (s *Scanner) Discover(ctx context.Context) ([]TabConfig, []*errors.TabError, error) {
	infos, err := s.src.Tabs(ctx)
	if err != nil {
		return nil, nil, errors.WrapResource("list", "tabs", "", err)
	}

	tabs := make([]TabConfig, 0, len(infos))
	var tabErrs []*errors.TabError
	for _, info := range infos {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		detection := Detection{Format: FormatUnknown}
		sample, err := s.src.Rows(ctx, info.Name, SampleRange)
		if err != nil {
			tabErr := &errors.TabError{Tab: info.Name, Stage: "detect", Err: err}
			tabErrs = append(tabErrs, tabErr)
			s.log(ctx).Warn().Err(err).Str("tab", info.Name).Msg("format detection failed")
		} else {
			detection = Detect(sample)
		}
		tabs = append(tabs, NewTabConfig(info, detection))
	}
	return tabs, tabErrs, nil
}

// Scan discovers every tab and parses the inventory tabs. A tab that cannot
// be read contributes no products and is listed in Report.Errors; only a
// failure to list the tabs, or cancellation, is returned as an error.
func (s *Scanner) Scan(ctx context.Context) (*Report, error) {
	tabs, tabErrs, err := s.Discover(ctx)
	if err != nil {
		return nil, err
	}

	report := newReport(tabs)
	report.Errors = append(report.Errors, tabErrs...)

	for _, tab := range tabs {
		if !tab.IsInventory {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var products []inventory.ProductionProduct
		rows, err := s.src.Rows(ctx, tab.Name, FullRange)
		if err != nil {
			report.Errors = append(report.Errors, &errors.TabError{Tab: tab.Name, Stage: "read", Err: err})
			s.log(ctx).Warn().Err(err).Str("tab", tab.Name).Msg("tab read failed")
		} else {
			products = ParseTab(tab, rows)
		}

		report.add(tab, products)
		s.log(ctx).Debug().
			Str("tab", tab.Name).
			Stringer("format", tab.Format).
			Int("products", len(products)).
			Msg("parsed tab")
	}
	return report, nil
}
