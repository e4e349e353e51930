package sheets

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/stockmatch/stockmatch/pkg/errors"
	"github.com/stockmatch/stockmatch/pkg/logging"
)

type fakeSource struct {
	tabs     []TabInfo
	rows     map[string][][]string
	failRead map[string]error
	failList error
}

func (f *fakeSource) Tabs(context.Context) ([]TabInfo, error) {
	return f.tabs, f.failList
}

func (f *fakeSource) Rows(_ context.Context, tab string, rng Range) ([][]string, error) {
	if err := f.failRead[tab+"!"+string(rng)]; err != nil {
		return nil, err
	}
	rows := f.rows[tab]
	if rng == SampleRange && len(rows) > SampleRows {
		rows = rows[:SampleRows]
	}
	return rows, nil
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		tabs: []TabInfo{
			{Name: "Badder", GID: 1},
			{Name: "Flower", GID: 2},
			{Name: "Shatter", GID: 3},
			{Name: "Orders", GID: 4},
			{Name: "Prerolls", GID: 5},
		},
		rows: map[string][][]string{
			"Badder": {
				{"Afghani Kush"},
				{"total remaining", "30"},
				{"OG Cookies"},
				{"total remaining", "20"},
			},
			"Flower": {
				{"Blue Dream"},
				{"quantity on hand", "448"},
			},
			"Shatter": {
				{"Lemon", "5"},
			},
			"Orders": {
				{"Blue Dream", "99"},
			},
			"Prerolls": {
				{"Gelato", "100"},
			},
		},
		failRead: map[string]error{},
	}
}

func TestScan(t *testing.T) {
	src := newFakeSource()
	src.failRead["Shatter!A:C"] = errors.New("quota exceeded")
	src.failRead["Prerolls!A1:C50"] = errors.New("permission denied")

	tl := logging.NewTestLogger(t)
	report, err := NewScanner(src, WithLogger(tl.Logger)).Scan(context.Background())
	require.NoError(t, err)

	require.Len(t, report.Tabs, 5)
	assert.Equal(t, TabSummary{Name: "Badder", GID: 1, Format: FormatLedger, IsInventory: true}, report.Tabs[0])
	assert.Equal(t, FormatFlower, report.Tabs[1].Format)
	assert.Equal(t, FormatSimple, report.Tabs[2].Format)
	assert.False(t, report.Tabs[3].IsInventory)
	assert.Equal(t, FormatUnknown, report.Tabs[4].Format)

	names := make([]string, 0, len(report.Products))
	for _, p := range report.Products {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"Afghani Kush", "OG Cookies", "Blue Dream"}, names)

	assert.Equal(t, Totals{Count: 2, Total: 50, Unit: UnitGrams}, report.Summary["Badder"])
	assert.Equal(t, Totals{Count: 0, Total: 0, Unit: UnitGrams}, report.Summary["Shatter"])
	assert.Equal(t, Totals{Count: 0, Total: 0, Unit: UnitUnits}, report.Summary["Prerolls"])
	assert.NotContains(t, report.Summary, "Orders")
	assert.Equal(t, []Line{{Name: "Blue Dream", Quantity: 448}}, report.ByCategory["Flower"])
	assert.Empty(t, report.ByCategory["Shatter"])

	require.Len(t, report.Errors, 2)
	assert.Equal(t, "Prerolls", report.Errors[0].Tab)
	assert.Equal(t, "detect", report.Errors[0].Stage)
	assert.Equal(t, "Shatter", report.Errors[1].Tab)
	assert.Equal(t, "read", report.Errors[1].Stage)

	assert.True(t, tl.Contains("tab read failed"))
	assert.True(t, tl.Contains("quota exceeded"))

	assert.Equal(t, []string{"Badder", "Flower", "Shatter", "Prerolls"}, report.InventoryTabs())
}

func TestScanListFailure(t *testing.T) {
	src := newFakeSource()
	src.failList = errors.New("spreadsheet not shared")

	_, err := NewScanner(src, WithLogger(logging.NewNopLogger())).Scan(context.Background())
	require.Error(t, err)

	var resErr *pkgerrors.ResourceError
	assert.ErrorAs(t, err, &resErr)
}

func TestScanCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewScanner(newFakeSource()).Scan(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
