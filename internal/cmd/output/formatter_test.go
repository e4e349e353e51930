package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockmatch/stockmatch/internal/cmd/table"
)

type line struct {
	Name     string  `json:"product_name"`
	Quantity float64 `json:"quantity"`
	secret   string
	Skipped  string `json:"-"`
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{"YAML", FormatYAML, false},
		{"wide", FormatWide, false},
		{"", "", false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectFormatExplicit(t *testing.T) {
	assert.Equal(t, FormatYAML, DetectFormat("YAML"))
}

func TestJSONAndYAML(t *testing.T) {
	data := []line{{Name: "Afghani Badder", Quantity: 12}}

	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatJSON).Format(&buf, data))
	assert.Contains(t, buf.String(), `"product_name": "Afghani Badder"`)

	buf.Reset()
	require.NoError(t, NewFormatter(FormatYAML).Format(&buf, data))
	assert.Contains(t, buf.String(), "product_name: Afghani Badder")
}

func TestTableFromData(t *testing.T) {
	var buf bytes.Buffer
	err := NewFormatter(FormatTable).Format(&buf, table.Data{
		Headers:         []string{"Product", "Quantity"},
		Rows:            [][]string{{"Afghani Badder", "12"}},
		ColumnAlignment: []table.Align{table.AlignLeft, table.AlignRight},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, strings.ToLower(out), "product")
	assert.Contains(t, out, "Afghani Badder")
}

func TestTableFromStructs(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatTable).Format(&buf, []line{{Name: "Lemon Shatter", Quantity: 40, secret: "x", Skipped: "hidden"}}))

	out := buf.String()
	assert.Contains(t, strings.ToLower(out), "product name")
	assert.Contains(t, out, "Lemon Shatter")
	assert.NotContains(t, out, "hidden")
}

func TestPrint(t *testing.T) {
	raw := map[string]int{"auto_matched": 2}
	data := table.Data{Headers: []string{"Metric", "Value"}, Rows: [][]string{{"Auto matched", "2"}}}

	var buf bytes.Buffer
	require.NoError(t, Print(&buf, FormatJSON, raw, data))
	assert.Contains(t, buf.String(), `"auto_matched": 2`)

	buf.Reset()
	require.NoError(t, Print(&buf, FormatTable, raw, data))
	assert.Contains(t, buf.String(), "Auto matched")
}
