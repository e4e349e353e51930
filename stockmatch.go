// Package stockmatch reconciles point-of-sale inventory against the
// production spreadsheet and turns the result into restock orders.
//
// It ties together the spreadsheet scanner, the POS client and the matching
// engine behind one interface, with optional background refresh of the
// production inventory and hooks that fire after each reconciliation.
//
// Example usage:
//
//	sm, err := stockmatch.New(
//	    stockmatch.WithTabSource(sheetsSource),
//	    stockmatch.WithPOSSource(flowhubClient),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer sm.Close()
//
//	products, err := sm.POSInventory(ctx, "downtown", true)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	rec, err := sm.Reconcile(ctx, "downtown", pos.Records(products))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(rec.Summary.AutoMatched, "auto matched")
package stockmatch

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/stockmatch/stockmatch/internal/sources/flowhub"
	"github.com/stockmatch/stockmatch/pkg/errors"
	"github.com/stockmatch/stockmatch/pkg/inventory"
	"github.com/stockmatch/stockmatch/pkg/logging"
	"github.com/stockmatch/stockmatch/pkg/match"
	"github.com/stockmatch/stockmatch/pkg/pos"
	"github.com/stockmatch/stockmatch/pkg/sheets"
)

// Stockmatch reconciles store inventory against production.
type Stockmatch interface {
	// ProductionInventory scans the production spreadsheet.
	ProductionInventory(ctx context.Context) (*sheets.Report, error)

	// POSInventory fetches one store's POS inventory, optionally reduced to
	// house products.
	POSInventory(ctx context.Context, location string, house bool) ([]pos.Product, error)

	// AllPOSInventory fetches every configured store.
	AllPOSInventory(ctx context.Context, house bool) []flowhub.LocationInventory

	// HouseRecords keeps the house products of a POS export.
	HouseRecords(records []inventory.POSProduct) []inventory.POSProduct

	// Reconcile matches POS products against the production inventory.
	Reconcile(ctx context.Context, location string, products []inventory.POSProduct) (*Reconciliation, error)

	// Orders reconciles and builds the restock order for location.
	Orders(ctx context.Context, location string, products []inventory.POSProduct, date time.Time) (*OrderSheet, error)

	// OnReconciled registers a callback run after every reconciliation.
	OnReconciled(ReconciledHook)

	// OnProductionRefreshed registers a callback run after every scan.
	OnProductionRefreshed(ProductionRefreshedHook)

	AutoRefresher

	// Close stops background work.
	Close() error
}

// POSSource provides store inventory. *flowhub.Client implements it.
type POSSource interface {
	Inventory(ctx context.Context, location string) ([]pos.Product, error)
	AllLocations(ctx context.Context) []flowhub.LocationInventory
}

var _ POSSource = (*flowhub.Client)(nil)

type stockmatch struct {
	options *options
	engine    *match.Engine
	filter    *pos.Filter
	csvFilter *pos.Filter
	hooks     *hooks

	mu     sync.RWMutex
	latest *sheets.Report

	refreshTicker *time.Ticker
	refreshCancel context.CancelFunc
	stopCh        chan struct{}
}

var _ Stockmatch = (*stockmatch)(nil)

// New creates a Stockmatch. Sources are optional at construction; an
// operation that needs a missing source returns a ConfigError.
func New(opts ...Option) (Stockmatch, error) {
	o, err := defaultOptions().apply(opts...)
	if err != nil {
		return nil, err
	}

	engine := o.engine
	if engine == nil {
		if engine, err = match.New(o.matchOptions...); err != nil {
			return nil, err
		}
	}

	s := &stockmatch{
		options:   o,
		engine:    engine,
		filter:    pos.NewFilter(o.posRules),
		csvFilter: pos.NewFilter(o.csvRules),
		hooks:     newHooks(),
		stopCh:    make(chan struct{}),
	}

	if o.autoRefresh {
		if err := s.AutoRefreshOn(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *stockmatch) log(ctx context.Context) *zerolog.Logger {
	if s.options.logger != nil {
		return s.options.logger
	}
	return logging.FromContext(ctx)
}

// ProductionInventory scans the spreadsheet and keeps the report as the
// latest known production inventory.
func (s *stockmatch) ProductionInventory(ctx context.Context) (*sheets.Report, error) {
	if s.options.tabSource == nil {
		return nil, errors.NewConfigError("stockmatch", "no production spreadsheet configured", errors.ErrCredentialsRequired)
	}

	report, err := sheets.NewScanner(s.options.tabSource, sheets.WithLogger(s.log(ctx))).Scan(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.latest = report
	s.mu.Unlock()

	s.log(ctx).Info().
		Int("tabs", len(report.InventoryTabs())).
		Int("products", len(report.Products)).
		Int("errors", len(report.Errors)).
		Msg("production inventory scanned")
	s.hooks.triggerProductionRefreshed(report)
	return report, nil
}

// production returns the latest report while auto-refresh keeps it current,
// and scans otherwise.
func (s *stockmatch) production(ctx context.Context) (*sheets.Report, error) {
	s.mu.RLock()
	latest, refreshing := s.latest, s.refreshTicker != nil
	s.mu.RUnlock()

	if refreshing && latest != nil {
		return latest, nil
	}
	return s.ProductionInventory(ctx)
}

func (s *stockmatch) posSource() (POSSource, error) {
	if s.options.posSource == nil {
		return nil, errors.NewConfigError("stockmatch", "no POS source configured", errors.ErrCredentialsRequired)
	}
	return s.options.posSource, nil
}

// POSInventory fetches one store's inventory.
func (s *stockmatch) POSInventory(ctx context.Context, location string, house bool) ([]pos.Product, error) {
	src, err := s.posSource()
	if err != nil {
		return nil, err
	}
	products, err := src.Inventory(ctx, location)
	if err != nil {
		return nil, err
	}
	if house {
		products = s.filter.Products(products)
	}
	return products, nil
}

// AllPOSInventory fetches every configured store. Store failures are
// reported per store.
func (s *stockmatch) AllPOSInventory(ctx context.Context, house bool) []flowhub.LocationInventory {
	src, err := s.posSource()
	if err != nil {
		return []flowhub.LocationInventory{{Err: err}}
	}
	all := src.AllLocations(ctx)
	if house {
		for i := range all {
			if all[i].Err == nil {
				all[i].Products = s.filter.Products(all[i].Products)
			}
		}
	}
	return all
}

// HouseRecords applies the export rules, which work on the POS's
// fine-grained product types rather than its categories.
func (s *stockmatch) HouseRecords(records []inventory.POSProduct) []inventory.POSProduct {
	return s.csvFilter.Records(records)
}

// Close stops auto-refresh.
func (s *stockmatch) Close() error {
	return s.AutoRefreshOff()
}
