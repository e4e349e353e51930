// Package orders turns a reconciliation into a weekly restock order for a
// store: out-of-stock and low-stock house products, plus production items the
// store does not carry yet.
package orders

import (
	"fmt"
	"sort"
	"strings"

	"github.com/stockmatch/stockmatch/internal/utils/ptr"
	"github.com/stockmatch/stockmatch/pkg/inventory"
	"github.com/stockmatch/stockmatch/pkg/match"
)

// Reason explains why a line is on the order.
type Reason string

// Order reasons.
const (
	ReasonOutOfStock Reason = "out_of_stock"
	ReasonLowStock   Reason = "low_stock"
	ReasonNewProduct Reason = "new_product"
)

// Priority orders lines on the order sheet; lower sorts first.
type Priority int

// Priorities.
const (
	PriorityCritical Priority = iota
	PriorityHigh
	PriorityNormal
)

func (p Priority) String() string {
	switch p {
	case PriorityCritical:
		return "critical"
	case PriorityHigh:
		return "high"
	case PriorityNormal:
		return "normal"
	}
	return fmt.Sprintf("Priority(%d)", int(p))
}

// MarshalText implements encoding.TextMarshaler.
func (p Priority) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Priority) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "critical":
		*p = PriorityCritical
	case "high":
		*p = PriorityHigh
	case "normal":
		*p = PriorityNormal
	default:
		return fmt.Errorf("unknown priority %q", text)
	}
	return nil
}

// Policy holds per-category restock thresholds and order sizes.
type Policy struct {
	// Thresholds: a store below this quantity is low on stock.
	Thresholds map[inventory.Category]float64 `yaml:"thresholds" mapstructure:"thresholds"`
	// Quantities: how much to request per line.
	Quantities map[inventory.Category]float64 `yaml:"quantities" mapstructure:"quantities"`

	DefaultThreshold float64 `yaml:"default_threshold" mapstructure:"default_threshold"`
	DefaultQuantity  float64 `yaml:"default_quantity" mapstructure:"default_quantity"`
}

// DefaultPolicy returns the standard thresholds: grams for concentrates and
// flower, units for prerolls.
func DefaultPolicy() Policy {
	return Policy{
		Thresholds: map[inventory.Category]float64{
			inventory.Shatter:     10,
			inventory.Badder:      10,
			inventory.Sugar:       10,
			inventory.LiveResin:   10,
			inventory.FullSpecOil: 20,
			inventory.Prerolls:    50,
			inventory.Flower:      100,
		},
		Quantities: map[inventory.Category]float64{
			inventory.Shatter:     28,
			inventory.Badder:      28,
			inventory.Sugar:       28,
			inventory.LiveResin:   28,
			inventory.FullSpecOil: 50,
			inventory.Prerolls:    100,
			inventory.Flower:      448,
		},
		DefaultThreshold: 10,
		DefaultQuantity:  28,
	}
}

func (p Policy) threshold(c inventory.Category) float64 {
	if v, ok := p.Thresholds[c]; ok {
		return v
	}
	return p.DefaultThreshold
}

func (p Policy) quantity(c inventory.Category) float64 {
	if v, ok := p.Quantities[c]; ok {
		return v
	}
	return p.DefaultQuantity
}

// Item is one order line.
type Item struct {
	ProductName         string             `json:"product_name" yaml:"product_name"`
	Category            inventory.Category `json:"category" yaml:"category"`
	POSQuantity         float64            `json:"pos_quantity" yaml:"pos_quantity"`
	ProductionAvailable float64            `json:"production_available" yaml:"production_available"`
	RequestedQuantity   float64            `json:"requested_quantity" yaml:"requested_quantity"`
	Reason              Reason             `json:"reason" yaml:"reason"`
	Priority            Priority           `json:"priority" yaml:"priority"`
}

// Generate builds order lines from a reconciliation. Auto-matched products
// at or below zero are critical, those under the category threshold are
// high, and production-only items are offered as new products. Lines are
// sorted by priority, then category.
func Generate(result match.Result, policy Policy) []Item {
	var items []Item

	for _, m := range result.AutoMatched {
		category := ptr.Deref(m.ProductionCategory, m.POSCategory)
		available := ptr.Deref(m.ProductionQuantity, 0)

		item := Item{
			ProductName:         m.POSName,
			Category:            category,
			POSQuantity:         m.POSQuantity,
			ProductionAvailable: available,
			RequestedQuantity:   request(policy.quantity(category), available),
		}
		switch {
		case m.POSQuantity <= 0:
			item.Reason, item.Priority = ReasonOutOfStock, PriorityCritical
		case m.POSQuantity < policy.threshold(category):
			item.Reason, item.Priority = ReasonLowStock, PriorityHigh
		default:
			continue
		}
		items = append(items, item)
	}

	for _, p := range result.ProductionOnly {
		if p.ProductionQuantity <= 0 {
			continue
		}
		items = append(items, Item{
			ProductName:         p.ProductionName,
			Category:            p.ProductionCategory,
			ProductionAvailable: p.ProductionQuantity,
			RequestedQuantity:   min(policy.quantity(p.ProductionCategory), p.ProductionQuantity),
			Reason:              ReasonNewProduct,
			Priority:            PriorityNormal,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Priority != items[j].Priority {
			return items[i].Priority < items[j].Priority
		}
		return items[i].Category < items[j].Category
	})
	return items
}

// request caps the order size at what production has, unless production
// reports nothing, in which case the full size is requested.
func request(size, available float64) float64 {
	if available > 0 {
		return min(size, available)
	}
	return size
}
