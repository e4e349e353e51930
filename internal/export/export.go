// Package export writes reconciliation results to an .xlsx workbook, one
// sheet per match group.
package export

import (
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/stockmatch/stockmatch/pkg/errors"
	"github.com/stockmatch/stockmatch/pkg/match"
)

// Sheet names, in workbook order.
const (
	SheetAutoMatched    = "Auto Matched"
	SheetNeedsReview    = "Needs Review"
	SheetUnmatched      = "Unmatched"
	SheetProductionOnly = "Production Only"
)

var (
	matchHeader = []any{
		"POS Name", "POS Type", "POS Quantity", "POS Category",
		"Production Name", "Production Quantity", "Production Category",
		"Score", "Confidence", "Confirmed",
	}
	productionOnlyHeader = []any{"Production Name", "Production Quantity", "Production Category", "Reason"}
)

// Workbook builds the reconciliation workbook. The caller must Close it.
func Workbook(result match.Result) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetAutoMatched); err != nil {
		_ = f.Close()
		return nil, err
	}
	for _, name := range []string{SheetNeedsReview, SheetUnmatched, SheetProductionOnly} {
		if _, err := f.NewSheet(name); err != nil {
			_ = f.Close()
			return nil, err
		}
	}

	w := &writer{f: f}
	w.matches(SheetAutoMatched, result.AutoMatched)
	w.matches(SheetNeedsReview, result.NeedsReview)
	w.matches(SheetUnmatched, result.Unmatched)
	w.productionOnly(result.ProductionOnly)
	if w.err != nil {
		_ = f.Close()
		return nil, w.err
	}
	return f, nil
}

// Reconciliation writes the workbook to path.
func Reconciliation(result match.Result, path string) error {
	f, err := Workbook(result)
	if err != nil {
		return errors.WrapResource("build", "workbook", path, err)
	}
	defer func() { _ = f.Close() }()

	if err := f.SaveAs(path); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}

// Write streams the workbook to w.
func Write(w io.Writer, result match.Result) error {
	f, err := Workbook(result)
	if err != nil {
		return errors.WrapResource("build", "workbook", "", err)
	}
	defer func() { _ = f.Close() }()

	_, err = f.WriteTo(w)
	return err
}

// writer keeps the first error so rows can be written without checking each.
type writer struct {
	f   *excelize.File
	err error
}

func (w *writer) row(sheet string, n int, values []any) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetSheetRow(sheet, cell, &values)
}

func (w *writer) matches(sheet string, results []match.MatchResult) {
	w.row(sheet, 1, matchHeader)
	for i, r := range results {
		values := []any{r.POSName, r.POSType, r.POSQuantity, string(r.POSCategory), "", "", "",
			r.SimilarityScore, r.Confidence.String(), r.Confirmed}
		if r.ProductionName != nil {
			values[4] = *r.ProductionName
		}
		if r.ProductionQuantity != nil {
			values[5] = *r.ProductionQuantity
		}
		if r.ProductionCategory != nil {
			values[6] = string(*r.ProductionCategory)
		}
		w.row(sheet, i+2, values)
	}
}

func (w *writer) productionOnly(items []match.ProductionOnly) {
	w.row(SheetProductionOnly, 1, productionOnlyHeader)
	for i, p := range items {
		w.row(SheetProductionOnly, i+2,
			[]any{p.ProductionName, p.ProductionQuantity, string(p.ProductionCategory), p.Reason})
	}
}
