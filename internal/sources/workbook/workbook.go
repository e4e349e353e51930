// Package workbook reads production inventory from an exported .xlsx copy of
// the production spreadsheet, for offline runs.
package workbook

import (
	"context"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/stockmatch/stockmatch/pkg/errors"
	"github.com/stockmatch/stockmatch/pkg/sheets"
)

// Source is a sheets.TabSource over an open workbook.
type Source struct {
	file *excelize.File
	path string
}

var _ sheets.TabSource = (*Source)(nil)

// Open opens the workbook at path.
func Open(path string) (*Source, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	return &Source{file: f, path: path}, nil
}

// New wraps an already open workbook.
func New(f *excelize.File) *Source {
	return &Source{file: f, path: f.Path}
}

// Close releases the workbook.
func (s *Source) Close() error {
	return s.file.Close()
}

// Tabs lists the worksheets. GID is the sheet's position in the workbook.
func (s *Source) Tabs(ctx context.Context) ([]sheets.TabInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	names := s.file.GetSheetList()
	tabs := make([]sheets.TabInfo, 0, len(names))
	for i, name := range names {
		tabs = append(tabs, sheets.TabInfo{Name: name, GID: int64(i)})
	}
	return tabs, nil
}

// Rows reads rng from tab as trimmed strings.
func (s *Source) Rows(ctx context.Context, tab string, rng sheets.Range) ([][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := parseBounds(rng)
	if err != nil {
		return nil, err
	}
	all, err := s.file.GetRows(tab)
	if err != nil {
		return nil, errors.WrapResource("read", "worksheet", tab, err)
	}

	var rows [][]string
	for i, row := range all {
		rowNum := i + 1
		if rowNum < b.firstRow {
			continue
		}
		if b.lastRow > 0 && rowNum > b.lastRow {
			break
		}
		cells := []string{}
		for j, cell := range row {
			col := j + 1
			if col < b.firstCol || col > b.lastCol {
				continue
			}
			cells = append(cells, strings.TrimSpace(cell))
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

type bounds struct {
	firstCol, lastCol int
	firstRow, lastRow int // lastRow 0 means unbounded
}

// parseBounds understands "A1:C50" and whole-column "A:C" ranges.
func parseBounds(rng sheets.Range) (bounds, error) {
	start, end, ok := strings.Cut(string(rng), ":")
	if !ok {
		end = start
	}
	firstCol, firstRow, err := parseRef(start)
	if err != nil {
		return bounds{}, err
	}
	lastCol, lastRow, err := parseRef(end)
	if err != nil {
		return bounds{}, err
	}
	if firstRow == 0 {
		firstRow = 1
	}
	return bounds{firstCol: firstCol, lastCol: lastCol, firstRow: firstRow, lastRow: lastRow}, nil
}

func parseRef(ref string) (col, row int, err error) {
	ref = strings.TrimSpace(ref)
	if strings.IndexAny(ref, "0123456789") < 0 {
		col, err = excelize.ColumnNameToNumber(ref)
	} else {
		col, row, err = excelize.CellNameToCoordinates(ref)
	}
	if err != nil {
		return 0, 0, errors.NewValidationError("range", ref, err.Error())
	}
	return col, row, nil
}
