package sheets

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/stockmatch/stockmatch/pkg/errors"
	"github.com/stockmatch/stockmatch/pkg/inventory"
)

func col(values ...string) [][]string {
	rows := make([][]string, 0, len(values))
	for _, v := range values {
		rows = append(rows, []string{v})
	}
	return rows
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		rows [][]string
		want Detection
	}{
		{"ledger", col("Afghani", "Total Remaining"), Detection{FormatLedger, LabelTotalRemaining}},
		{"flower", col("OG", "  QUANTITY ON HAND "), Detection{FormatFlower, LabelQuantityOnHand}},
		{"flower wins over earlier ledger label", col("total remaining", "quantity on hand"), Detection{FormatFlower, LabelQuantityOnHand}},
		{"amount available", col("Strain", "Amount Available"), Detection{Format: FormatSimple}},
		{"nothing", col("Blue Dream"), Detection{Format: FormatSimple}},
		{"empty", nil, Detection{Format: FormatSimple}},
		{"blank rows", [][]string{{}, {}, {"total remaining"}}, Detection{FormatLedger, LabelTotalRemaining}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect(tt.rows))
		})
	}
}

func TestDetectOnlySamplesLeadingRows(t *testing.T) {
	rows := make([][]string, SampleRows)
	for i := range rows {
		rows[i] = []string{"Blue Dream"}
	}
	rows = append(rows, []string{"total remaining"})
	assert.Equal(t, FormatSimple, Detect(rows).Format)
}

func TestFormatString(t *testing.T) {
	assert.Equal(t, "ledger", FormatLedger.String())
	assert.Equal(t, "unknown", FormatUnknown.String())
	text, err := FormatFlower.MarshalText()
	assert.NoError(t, err)
	assert.Equal(t, "flower", string(text))
}

func TestFormatUnmarshalText(t *testing.T) {
	for _, f := range []Format{FormatUnknown, FormatLedger, FormatFlower, FormatSimple} {
		text, err := f.MarshalText()
		require.NoError(t, err)

		var got Format
		require.NoError(t, got.UnmarshalText(text))
		assert.Equal(t, f, got)
	}

	var got Format
	require.NoError(t, got.UnmarshalText([]byte("FLOWER")))
	assert.Equal(t, FormatFlower, got)
	assert.Error(t, got.UnmarshalText([]byte("grid")))
}

func TestReportJSONRoundTrip(t *testing.T) {
	report := newReport([]TabConfig{
		{TabInfo: TabInfo{Name: "Badder", GID: 1}, Format: FormatLedger, IsInventory: true, Unit: UnitGrams},
		{TabInfo: TabInfo{Name: "Flower", GID: 2}, Format: FormatFlower, IsInventory: true, Unit: UnitGrams},
		{TabInfo: TabInfo{Name: "Orders", GID: 3}, Format: FormatUnknown},
	})
	report.add(TabConfig{TabInfo: TabInfo{Name: "Badder"}, Unit: UnitGrams}, []inventory.ProductionProduct{
		{Name: "Afghani Badder", Quantity: 12, Category: inventory.Badder, Unit: UnitGrams, SourceTab: "Badder", RowIndex: 4},
	})
	report.Errors = []*pkgerrors.TabError{
		{Tab: "Shatter", Stage: "read", Err: errors.New("quota exceeded")},
	}

	data, err := json.Marshal(report)
	require.NoError(t, err)

	var decoded Report
	require.NoError(t, json.Unmarshal(data, &decoded))

	if diff := cmp.Diff(report.Tabs, decoded.Tabs); diff != "" {
		t.Errorf("tabs mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(report.Products, decoded.Products); diff != "" {
		t.Errorf("products mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, report.Summary, decoded.Summary)
	assert.Equal(t, report.ByCategory, decoded.ByCategory)

	require.Len(t, decoded.Errors, 1)
	assert.Equal(t, "Shatter", decoded.Errors[0].Tab)
	assert.Equal(t, "read", decoded.Errors[0].Stage)
	assert.EqualError(t, decoded.Errors[0], report.Errors[0].Error())
}
