// Package table turns stockmatch results into rows for the CLI's table
// output.
package table

import (
	"strconv"

	"github.com/stockmatch/stockmatch"
	"github.com/stockmatch/stockmatch/internal/sources/flowhub"
	"github.com/stockmatch/stockmatch/pkg/match"
	"github.com/stockmatch/stockmatch/pkg/orders"
	"github.com/stockmatch/stockmatch/pkg/pos"
	"github.com/stockmatch/stockmatch/pkg/sheets"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data is a table ready for rendering.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align
}

// None marks an empty cell.
const None = "-"

// Quantity formats q without trailing zeros.
func Quantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}

func optional(s *string) string {
	if s == nil || *s == "" {
		return None
	}
	return *s
}

func optionalQuantity(q *float64) string {
	if q == nil {
		return None
	}
	return Quantity(*q)
}

// ProductionToTableData lists the products of a production report.
func ProductionToTableData(report *sheets.Report, wide bool) Data {
	headers := []string{"Tab", "Product", "Quantity", "Unit"}
	align := []Align{AlignLeft, AlignLeft, AlignRight, AlignLeft}
	if wide {
		headers = append(headers, "Category", "Row")
		align = append(align, AlignLeft, AlignRight)
	}

	rows := make([][]string, 0, len(report.Products))
	for _, p := range report.Products {
		row := []string{p.SourceTab, p.Name, Quantity(p.Quantity), p.Unit}
		if wide {
			row = append(row, p.Category.String(), strconv.Itoa(p.RowIndex))
		}
		rows = append(rows, row)
	}
	return Data{Headers: headers, Rows: rows, ColumnAlignment: align}
}

// TabTotalsToTableData summarises a report per inventory tab.
func TabTotalsToTableData(report *sheets.Report) Data {
	rows := make([][]string, 0, len(report.Summary))
	for _, name := range report.InventoryTabs() {
		totals := report.Summary[name]
		rows = append(rows, []string{name, strconv.Itoa(totals.Count), Quantity(totals.Total), totals.Unit})
	}
	return Data{
		Headers:         []string{"Tab", "Products", "Total", "Unit"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignRight, AlignRight, AlignLeft},
	}
}

// POSToTableData lists store products.
func POSToTableData(products []pos.Product, wide bool) Data {
	headers := []string{"Product", "Category", "Quantity", "Unit"}
	align := []Align{AlignLeft, AlignLeft, AlignRight, AlignLeft}
	if wide {
		headers = append(headers, "Parent", "Supplier", "SKU")
		align = append(align, AlignLeft, AlignLeft, AlignLeft)
	}

	rows := make([][]string, 0, len(products))
	for _, p := range products {
		row := []string{p.Name, p.Category, Quantity(p.Quantity), p.Unit}
		if wide {
			row = append(row, orNone(p.ParentName), orNone(p.SupplierName), orNone(p.SKU))
		}
		rows = append(rows, row)
	}
	return Data{Headers: headers, Rows: rows, ColumnAlignment: align}
}

// LocationsToTableData summarises a fetch across stores.
func LocationsToTableData(all []flowhub.LocationInventory) Data {
	rows := make([][]string, 0, len(all))
	for _, l := range all {
		status := "ok"
		if l.Err != nil {
			status = l.Err.Error()
		}
		rows = append(rows, []string{orNone(l.Location), strconv.Itoa(len(l.Products)), status})
	}
	return Data{
		Headers:         []string{"Location", "Products", "Status"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignRight, AlignLeft},
	}
}

// ReconciliationToTableData lists every match result followed by the
// production-only items.
func ReconciliationToTableData(rec *stockmatch.Reconciliation, wide bool) Data {
	headers := []string{"Status", "POS Product", "POS Qty", "Production Product", "Prod Qty", "Score"}
	align := []Align{AlignLeft, AlignLeft, AlignRight, AlignLeft, AlignRight, AlignRight}
	if wide {
		headers = append(headers, "POS Category", "Prod Category")
		align = append(align, AlignLeft, AlignLeft)
	}

	var rows [][]string
	addMatches := func(results []match.MatchResult) {
		for _, m := range results {
			row := []string{
				m.Confidence.String(),
				m.POSName,
				Quantity(m.POSQuantity),
				optional(m.ProductionName),
				optionalQuantity(m.ProductionQuantity),
				strconv.Itoa(m.SimilarityScore),
			}
			if wide {
				category := None
				if m.ProductionCategory != nil {
					category = m.ProductionCategory.String()
				}
				row = append(row, m.POSCategory.String(), category)
			}
			rows = append(rows, row)
		}
	}
	addMatches(rec.AutoMatched)
	addMatches(rec.NeedsReview)
	addMatches(rec.Unmatched)

	for _, p := range rec.ProductionOnly {
		row := []string{"production_only", None, None, p.ProductionName, Quantity(p.ProductionQuantity), None}
		if wide {
			row = append(row, None, p.ProductionCategory.String())
		}
		rows = append(rows, row)
	}
	return Data{Headers: headers, Rows: rows, ColumnAlignment: align}
}

// SummaryToTableData shows reconciliation counts.
func SummaryToTableData(s stockmatch.Summary) Data {
	return Data{
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Location", s.Location},
			{"POS products", strconv.Itoa(s.POSProductCount)},
			{"Production products", strconv.Itoa(s.ProductionProductCount)},
			{"Auto matched", strconv.Itoa(s.AutoMatched)},
			{"Needs review", strconv.Itoa(s.NeedsReview)},
			{"Unmatched", strconv.Itoa(s.Unmatched)},
			{"Production only", strconv.Itoa(s.ProductionOnly)},
		},
		ColumnAlignment: []Align{AlignLeft, AlignRight},
	}
}

// OrderToTableData lists the lines of a restock order.
func OrderToTableData(o *orders.Order) Data {
	rows := make([][]string, 0, len(o.Items))
	for _, item := range o.Items {
		rows = append(rows, []string{
			item.Priority.String(),
			item.ProductName,
			item.Category.String(),
			Quantity(item.POSQuantity),
			Quantity(item.ProductionAvailable),
			Quantity(item.RequestedQuantity),
			string(item.Reason),
		})
	}
	return Data{
		Headers:         []string{"Priority", "Product", "Category", "POS Qty", "Available", "Requested", "Reason"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignLeft, AlignLeft, AlignRight, AlignRight, AlignRight, AlignLeft},
	}
}

func orNone(s string) string {
	if s == "" {
		return None
	}
	return s
}
