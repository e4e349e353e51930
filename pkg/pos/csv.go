package pos

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/stockmatch/stockmatch/pkg/errors"
	"github.com/stockmatch/stockmatch/pkg/inventory"
)

// Column headers of the POS inventory export.
const (
	ColumnName     = "Product Name"
	ColumnType     = "Product Type"
	ColumnQuantity = "Quantity"
)

// totalsMarker names the export's trailing totals row.
const totalsMarker = "---TOTALS---"

// ParseCSV reads a POS inventory export. Rows without a product name and the
// totals row are skipped; an unreadable quantity counts as 0.
func ParseCSV(r io.Reader) ([]inventory.POSProduct, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return []inventory.POSProduct{}, nil
	}
	if err != nil {
		return nil, errors.WrapParse("csv", "header", err)
	}

	columns := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := columns[h]; !dup {
			columns[h] = i
		}
	}
	if _, ok := columns[ColumnName]; !ok {
		return nil, errors.NewParseError("csv", "header", "missing "+strconv.Quote(ColumnName)+" column", nil)
	}

	field := func(record []string, column string) string {
		i, ok := columns[column]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	products := []inventory.POSProduct{}
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &errors.ParseError{Format: "csv", Source: "upload", Line: line, Message: err.Error(), Err: err}
		}

		name := field(record, ColumnName)
		if name == "" || name == totalsMarker {
			continue
		}
		qty, err := strconv.ParseFloat(field(record, ColumnQuantity), 64)
		if err != nil {
			qty = 0
		}
		products = append(products, inventory.POSProduct{
			Name:     name,
			Type:     field(record, ColumnType),
			Quantity: qty,
		})
	}
	return products, nil
}
