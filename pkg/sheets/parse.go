package sheets

import (
	"math"
	"strconv"
	"strings"

	"github.com/stockmatch/stockmatch/internal/matcher"
	"github.com/stockmatch/stockmatch/pkg/inventory"
)

// skipPatterns are column A values that are never product names: location
// headers, column headers, summary labels and dates.
var skipPatterns = matcher.MustMultiMatcher([]string{
	`lewiston`,
	`greene`,
	`ws`,
	`wholesale`,
	`total remaining`,
	`total`,
	`quantity on hand`,
	`average cost.*`,
	`updated`,
	`product name`,
	`strain`,
	`type`,
	`audit`,
	`amount available`,
	`quantity available.*`,
	`\d+/\d+/\d+`,
	``,
}, matcher.Regex, &matcher.Options{CaseInsensitive: true, Anchored: true})

// IsProductName reports whether a column A value names a product.
func IsProductName(cell string) bool {
	value := strings.ToLower(strings.TrimSpace(cell))
	if value == "" || skipPatterns.Match(value) {
		return false
	}
	if len([]rune(value)) < 2 {
		return false
	}
	if _, err := strconv.ParseFloat(strings.ReplaceAll(value, ",", ""), 64); err == nil {
		return false
	}
	return true
}

// ParseNumber parses a quantity cell, ignoring thousands separators.
func ParseNumber(cell string) (float64, bool) {
	cleaned := strings.TrimSpace(strings.ReplaceAll(cell, ",", ""))
	if cleaned == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// ParseTab extracts production products from a tab's rows (columns A:C).
// Non-inventory and unknown-format tabs yield nothing. Quantities that do
// not parse or are not positive are dropped.
func ParseTab(cfg TabConfig, rows [][]string) []inventory.ProductionProduct {
	if !cfg.IsInventory || cfg.Format == FormatUnknown {
		return nil
	}

	category := CategoryForTab(cfg.Name)
	emit := func(products []inventory.ProductionProduct, name, qtyCell string, row int) []inventory.ProductionProduct {
		qty, ok := ParseNumber(qtyCell)
		if !ok || qty <= 0 {
			return products
		}
		return append(products, inventory.ProductionProduct{
			Name:      name,
			Quantity:  qty,
			Category:  category,
			Unit:      cfg.Unit,
			SourceTab: cfg.Name,
			RowIndex:  row,
		})
	}

	var products []inventory.ProductionProduct
	var pending string

	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cellA := strings.TrimSpace(row[0])
		cellB := ""
		if len(row) > 1 {
			cellB = strings.TrimSpace(row[1])
		}

		if cfg.SummaryLabel != "" && strings.ToLower(cellA) == cfg.SummaryLabel {
			if pending != "" {
				products = emit(products, pending, cellB, i+1)
			}
			pending = ""
			continue
		}

		if cfg.Format == FormatSimple {
			if IsProductName(cellA) {
				products = emit(products, cellA, cellB, i+1)
			}
			continue
		}

		// A name with no summary row before the next name is dropped.
		if IsProductName(cellA) {
			pending = cellA
		}
	}
	return products
}
