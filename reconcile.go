package stockmatch

import (
	"context"
	"strings"
	"time"

	"github.com/stockmatch/stockmatch/pkg/errors"
	"github.com/stockmatch/stockmatch/pkg/inventory"
	"github.com/stockmatch/stockmatch/pkg/match"
	"github.com/stockmatch/stockmatch/pkg/orders"
	"github.com/stockmatch/stockmatch/pkg/sheets"
)

// UnknownLocation labels reconciliations run without a store name.
const UnknownLocation = "unknown"

// Summary counts a reconciliation.
type Summary struct {
	Location               string `json:"location" yaml:"location"`
	POSProductCount        int    `json:"pos_product_count" yaml:"pos_product_count"`
	ProductionProductCount int    `json:"production_product_count" yaml:"production_product_count"`
	match.Counts           `yaml:",inline"`
}

// Reconciliation is a match result with its summary and the per-tab
// production totals it was computed against.
type Reconciliation struct {
	match.Result      `yaml:",inline"`
	Summary           Summary                  `json:"summary" yaml:"summary"`
	ProductionSummary map[string]sheets.Totals `json:"production_summary" yaml:"production_summary"`
}

// OrderSheet is a restock order and its rendered HTML.
type OrderSheet struct {
	Order   *orders.Order  `json:"order" yaml:"order"`
	Summary orders.Summary `json:"summary" yaml:"summary"`
	HTML    string         `json:"html" yaml:"-"`
}

// Reconcile matches products against the production inventory.
func (s *stockmatch) Reconcile(ctx context.Context, location string, products []inventory.POSProduct) (*Reconciliation, error) {
	if len(products) == 0 {
		return nil, errors.NewValidationError("pos_products", nil, "pos_products is required")
	}
	if location = strings.TrimSpace(location); location == "" {
		location = UnknownLocation
	}

	report, err := s.production(ctx)
	if err != nil {
		return nil, err
	}

	result := s.engine.MatchInventory(products, report.Products)
	rec := &Reconciliation{
		Result: result,
		Summary: Summary{
			Location:               location,
			POSProductCount:        len(products),
			ProductionProductCount: len(report.Products),
			Counts:                 result.Counts(),
		},
		ProductionSummary: report.Summary,
	}

	s.log(ctx).Info().
		Str("location", location).
		Int("auto_matched", rec.Summary.AutoMatched).
		Int("needs_review", rec.Summary.NeedsReview).
		Int("unmatched", rec.Summary.Unmatched).
		Int("production_only", rec.Summary.ProductionOnly).
		Msg("reconciled")
	s.hooks.triggerReconciled(rec)
	return rec, nil
}

// Orders reconciles products and builds the restock order dated date.
func (s *stockmatch) Orders(ctx context.Context, location string, products []inventory.POSProduct, date time.Time) (*OrderSheet, error) {
	rec, err := s.Reconcile(ctx, location, products)
	if err != nil {
		return nil, err
	}

	order := orders.NewOrder(s.options.orderPrefix, rec.Summary.Location, date,
		orders.Generate(rec.Result, s.options.orderPolicy))
	html, err := orders.RenderHTMLString(order, s.options.company)
	if err != nil {
		return nil, errors.WrapResource("render", "order", order.Number, err)
	}
	return &OrderSheet{Order: order, Summary: order.Summary(), HTML: html}, nil
}
