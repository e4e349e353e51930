package sheets

import (
	"github.com/stockmatch/stockmatch/pkg/errors"
	"github.com/stockmatch/stockmatch/pkg/inventory"
)

// TabSummary describes a discovered tab.
type TabSummary struct {
	Name        string `json:"name" yaml:"name"`
	GID         int64  `json:"gid" yaml:"gid"`
	Format      Format `json:"format" yaml:"format"`
	IsInventory bool   `json:"is_inventory" yaml:"is_inventory"`
}

// Line is a product name and quantity within a tab.
type Line struct {
	Name     string  `json:"name" yaml:"name"`
	Quantity float64 `json:"quantity" yaml:"quantity"`
}

// Totals summarises a tab's parsed products.
type Totals struct {
	Count int     `json:"count" yaml:"count"`
	Total float64 `json:"total" yaml:"total"`
	Unit  string  `json:"unit" yaml:"unit"`
}

// Report is the production inventory of a whole spreadsheet.
type Report struct {
	Tabs     []TabSummary                  `json:"tabs" yaml:"tabs"`
	Products []inventory.ProductionProduct `json:"products" yaml:"products"`

	// ByCategory and Summary are keyed by tab name.
	ByCategory map[string][]Line  `json:"by_category" yaml:"by_category"`
	Summary    map[string]Totals  `json:"summary" yaml:"summary"`
	Errors     []*errors.TabError `json:"errors,omitempty" yaml:"errors,omitempty"`
}

func newReport(tabs []TabConfig) *Report {
	r := &Report{
		Tabs:       make([]TabSummary, 0, len(tabs)),
		Products:   []inventory.ProductionProduct{},
		ByCategory: map[string][]Line{},
		Summary:    map[string]Totals{},
	}
	for _, t := range tabs {
		r.Tabs = append(r.Tabs, TabSummary{Name: t.Name, GID: t.GID, Format: t.Format, IsInventory: t.IsInventory})
	}
	return r
}

func (r *Report) add(tab TabConfig, products []inventory.ProductionProduct) {
	r.Products = append(r.Products, products...)

	lines := make([]Line, 0, len(products))
	totals := Totals{Count: len(products), Unit: tab.Unit}
	for _, p := range products {
		lines = append(lines, Line{Name: p.Name, Quantity: p.Quantity})
		totals.Total += p.Quantity
	}
	r.ByCategory[tab.Name] = lines
	r.Summary[tab.Name] = totals
}

// InventoryTabs returns the names of the tabs that were parsed.
func (r *Report) InventoryTabs() []string {
	var names []string
	for _, t := range r.Tabs {
		if t.IsInventory {
			names = append(names, t.Name)
		}
	}
	return names
}
