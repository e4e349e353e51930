// Package pos shapes point-of-sale inventory before reconciliation: it
// filters out third-party and non-cannabis lines, folds variants together and
// reads the POS CSV export.
package pos

import "github.com/stockmatch/stockmatch/pkg/inventory"

// Product is a full POS inventory line.
type Product struct {
	ID           string   `json:"id,omitempty" yaml:"id,omitempty"`
	Name         string   `json:"name" yaml:"name"`
	ParentName   string   `json:"parent_name" yaml:"parent_name"`
	Category     string   `json:"category" yaml:"category"`
	Quantity     float64  `json:"quantity" yaml:"quantity"`
	Unit         string   `json:"unit" yaml:"unit"`
	SKU          string   `json:"sku,omitempty" yaml:"sku,omitempty"`
	StrainName   string   `json:"strain_name,omitempty" yaml:"strain_name,omitempty"`
	SupplierName string   `json:"supplier_name,omitempty" yaml:"supplier_name,omitempty"`
	THC          *float64 `json:"thc_percentage,omitempty" yaml:"thc_percentage,omitempty"`
	CBD          *float64 `json:"cbd_percentage,omitempty" yaml:"cbd_percentage,omitempty"`
	PriceCents   *int64   `json:"price_cents,omitempty" yaml:"price_cents,omitempty"`
	Weight       *float64 `json:"product_weight,omitempty" yaml:"product_weight,omitempty"`
}

// Record reduces a product to what the matcher consumes.
func (p Product) Record() inventory.POSProduct {
	return inventory.POSProduct{Name: p.Name, Type: p.Category, Quantity: p.Quantity}
}

// Records converts products to match records, preserving order.
func Records(products []Product) []inventory.POSProduct {
	out := make([]inventory.POSProduct, 0, len(products))
	for _, p := range products {
		out = append(out, p.Record())
	}
	return out
}
