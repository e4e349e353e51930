package orders

import (
	"fmt"
	"strings"
	"time"
)

// LeadTime is the gap between the order date and its due date.
const LeadTime = 4 * 24 * time.Hour

// DefaultPrefix starts every order number.
const DefaultPrefix = "PO"

// Order is a dated restock order for one store.
type Order struct {
	Number   string    `json:"order_number" yaml:"order_number"`
	Location string    `json:"location" yaml:"location"`
	Date     time.Time `json:"order_date" yaml:"order_date"`
	DueDate  time.Time `json:"due_date" yaml:"due_date"`
	Items    []Item    `json:"order_items" yaml:"order_items"`
}

// Summary counts order lines by kind.
type Summary struct {
	Critical    int `json:"critical" yaml:"critical"`
	High        int `json:"high" yaml:"high"`
	NewProducts int `json:"new_products" yaml:"new_products"`
	Total       int `json:"total" yaml:"total"`
}

// NewOrder dates an order and assigns its number, {prefix}-{year}-W{week}-{LOC},
// using the ISO week of date and the first three letters of the location.
func NewOrder(prefix, location string, date time.Time, items []Item) *Order {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	if items == nil {
		items = []Item{}
	}
	year, week := date.ISOWeek()
	return &Order{
		Number:   fmt.Sprintf("%s-%d-W%02d-%s", prefix, year, week, locationCode(location)),
		Location: location,
		Date:     date,
		DueDate:  date.Add(LeadTime),
		Items:    items,
	}
}

func locationCode(location string) string {
	r := []rune(strings.ToUpper(strings.TrimSpace(location)))
	if len(r) > 3 {
		r = r[:3]
	}
	return string(r)
}

// Summary counts the order's lines.
func (o *Order) Summary() Summary {
	s := Summary{Total: len(o.Items)}
	for _, item := range o.Items {
		switch item.Priority {
		case PriorityCritical:
			s.Critical++
		case PriorityHigh:
			s.High++
		}
		if item.Reason == ReasonNewProduct {
			s.NewProducts++
		}
	}
	return s
}

// Filter returns the lines with the given reason.
func (o *Order) Filter(reason Reason) []Item {
	var out []Item
	for _, item := range o.Items {
		if item.Reason == reason {
			out = append(out, item)
		}
	}
	return out
}
