// Package inventory defines the records exchanged between the POS side,
// the production spreadsheet side and the reconciliation engine.
package inventory

import "strings"

// Category is a coarse product grouping used to restrict match candidates.
type Category string

// Categories recognised by the classifier.
const (
	Badder      Category = "Badder"
	Shatter     Category = "Shatter"
	Sugar       Category = "Sugar"
	LiveResin   Category = "Live Resin"
	Rosin       Category = "Rosin"
	Diamonds    Category = "Diamonds"
	Prerolls    Category = "Prerolls"
	FullSpecOil Category = "Full Spec Oil"
	Flower      Category = "Flower"
)

// Categories lists every category in classifier order.
var Categories = []Category{Badder, Shatter, Sugar, LiveResin, Rosin, Diamonds, Prerolls, FullSpecOil, Flower}

func (c Category) String() string { return string(c) }

// ParseCategory finds the category named s, ignoring case and treating
// underscores and hyphens as spaces ("full_spec_oil" is FullSpecOil).
func ParseCategory(s string) (Category, bool) {
	name := strings.Join(strings.Fields(strings.NewReplacer("_", " ", "-", " ").Replace(s)), " ")
	for _, c := range Categories {
		if strings.EqualFold(name, string(c)) {
			return c, true
		}
	}
	return "", false
}

// POSProduct is one line of point-of-sale inventory.
type POSProduct struct {
	Name     string  `json:"name" yaml:"name" validate:"required"`
	Type     string  `json:"type,omitempty" yaml:"type,omitempty"`
	Quantity float64 `json:"quantity" yaml:"quantity"`
}

// ProductionProduct is one line of production inventory parsed from a
// spreadsheet tab. Quantity is always positive.
type ProductionProduct struct {
	Name      string   `json:"name" yaml:"name"`
	Quantity  float64  `json:"quantity" yaml:"quantity"`
	Category  Category `json:"category" yaml:"category"`
	Unit      string   `json:"unit" yaml:"unit"`
	SourceTab string   `json:"source_tab,omitempty" yaml:"source_tab,omitempty"`
	RowIndex  int      `json:"row_index,omitempty" yaml:"row_index,omitempty"`
}
