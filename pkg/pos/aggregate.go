package pos

import "github.com/stockmatch/stockmatch/pkg/inventory"

// Variant is one size or package of a parent product.
type Variant struct {
	Name     string   `json:"name" yaml:"name"`
	Quantity float64  `json:"quantity" yaml:"quantity"`
	Weight   *float64 `json:"weight,omitempty" yaml:"weight,omitempty"`
}

// ParentGroup is the total of every variant of a parent product.
type ParentGroup struct {
	Name          string    `json:"name" yaml:"name"`
	Category      string    `json:"category" yaml:"category"`
	TotalQuantity float64   `json:"total_quantity" yaml:"total_quantity"`
	Unit          string    `json:"unit" yaml:"unit"`
	Variants      []Variant `json:"variants" yaml:"variants"`
}

// AggregateByParent folds variants ("Strain - 1g", "Strain - 3.5g") into
// their parent product. Groups appear in order of first occurrence and take
// category and unit from their first variant.
func AggregateByParent(products []Product) []ParentGroup {
	index := make(map[string]int)
	var groups []ParentGroup

	for _, p := range products {
		key := p.ParentName
		if key == "" {
			key = p.Name
		}
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, ParentGroup{Name: key, Category: p.Category, Unit: p.Unit})
		}
		groups[i].TotalQuantity += p.Quantity
		groups[i].Variants = append(groups[i].Variants, Variant{Name: p.Name, Quantity: p.Quantity, Weight: p.Weight})
	}
	return groups
}

// AggregateRecords sums the quantity of records sharing name and type, such
// as the same product exported once per location.
func AggregateRecords(records []inventory.POSProduct) []inventory.POSProduct {
	type key struct{ name, typ string }
	index := make(map[key]int)
	out := make([]inventory.POSProduct, 0, len(records))

	for _, r := range records {
		k := key{r.Name, r.Type}
		if i, ok := index[k]; ok {
			out[i].Quantity += r.Quantity
			continue
		}
		index[k] = len(out)
		out = append(out, r)
	}
	return out
}
