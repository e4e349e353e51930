package output

import (
	"io"

	"github.com/stockmatch/stockmatch/internal/cmd/table"
)

// IsTable reports whether format renders tables.
func IsTable(format Format) bool {
	return format == FormatTable || format == FormatWide || format == ""
}

// Print writes data as a table for table formats and raw otherwise.
func Print(w io.Writer, format Format, raw any, data table.Data) error {
	if IsTable(format) {
		return NewFormatter(format).Format(w, data)
	}
	return NewFormatter(format).Format(w, raw)
}

// Resolve picks the output format for an explicit --format value, falling
// back to table on a terminal and JSON otherwise.
func Resolve(explicit string) (Format, error) {
	return ParseFormat(string(DetectFormat(explicit)))
}
