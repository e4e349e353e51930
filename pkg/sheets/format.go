// Package sheets turns production spreadsheet tabs into production inventory.
//
// Each tab follows one of three layouts. Ledger and flower tabs list a
// product name on one row and its quantity on a later summary row ("total
// remaining" or "quantity on hand"); simple tabs carry name and quantity on
// the same row. Detect picks the layout from a sample of column A and
// ParseTab walks the rows once. Scanner drives both over every tab of a
// TabSource, isolating failures per tab.
package sheets

import (
	"fmt"
	"strings"
)

// Format is the layout convention of a tab.
type Format int

// Tab formats. FormatUnknown marks a tab whose sample could not be read.
const (
	FormatUnknown Format = iota
	FormatLedger
	FormatFlower
	FormatSimple
)

// Summary row labels, compared against trimmed lower-cased column A.
const (
	LabelQuantityOnHand  = "quantity on hand"
	LabelTotalRemaining  = "total remaining"
	LabelAmountAvailable = "amount available"
)

// SampleRows is how many leading rows Detect inspects.
const SampleRows = 50

func (f Format) String() string {
	switch f {
	case FormatLedger:
		return "ledger"
	case FormatFlower:
		return "flower"
	case FormatSimple:
		return "simple"
	case FormatUnknown:
		return "unknown"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// MarshalText implements encoding.TextMarshaler.
func (f Format) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Format) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "ledger":
		*f = FormatLedger
	case "flower":
		*f = FormatFlower
	case "simple":
		*f = FormatSimple
	case "unknown", "":
		*f = FormatUnknown
	default:
		return fmt.Errorf("unknown tab format %q", text)
	}
	return nil
}

// Detection is the outcome of Detect.
type Detection struct {
	Format Format
	// SummaryLabel is empty for simple tabs.
	SummaryLabel string
}

// Detect inspects column A of the first SampleRows rows. A "quantity on hand"
// row makes a flower tab and wins over a "total remaining" row (ledger)
// wherever each appears; anything else is simple.
func Detect(rows [][]string) Detection {
	var ledger bool
	for i, row := range rows {
		if i >= SampleRows {
			break
		}
		if len(row) == 0 {
			continue
		}
		switch strings.ToLower(strings.TrimSpace(row[0])) {
		case LabelQuantityOnHand:
			return Detection{Format: FormatFlower, SummaryLabel: LabelQuantityOnHand}
		case LabelTotalRemaining:
			ledger = true
		}
	}
	if ledger {
		return Detection{Format: FormatLedger, SummaryLabel: LabelTotalRemaining}
	}
	return Detection{Format: FormatSimple}
}
