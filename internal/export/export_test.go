package export

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/stockmatch/stockmatch/pkg/inventory"
	"github.com/stockmatch/stockmatch/pkg/match"
)

func sampleResult(t *testing.T) match.Result {
	t.Helper()
	e, err := match.New()
	require.NoError(t, err)

	return e.MatchInventory(
		[]inventory.POSProduct{
			{Name: "Afghani Badder", Type: "Badder", Quantity: 3},
			{Name: "Unique Blend X", Type: "Flower", Quantity: 1},
		},
		[]inventory.ProductionProduct{
			{Name: "Afghani Badder", Quantity: 28, Category: inventory.Badder},
			{Name: "Lemon Shatter", Quantity: 12, Category: inventory.Shatter},
		},
	)
}

func TestReconciliation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reconcile.xlsx")
	require.NoError(t, Reconciliation(sampleResult(t), path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{SheetAutoMatched, SheetNeedsReview, SheetUnmatched, SheetProductionOnly}, f.GetSheetList())

	auto, err := f.GetRows(SheetAutoMatched)
	require.NoError(t, err)
	require.Len(t, auto, 2)
	assert.Equal(t, "POS Name", auto[0][0])
	assert.Equal(t, []string{"Afghani Badder", "Badder", "3", "Badder", "Afghani Badder", "28", "Badder", "100", "auto", "FALSE"}, auto[1])

	unmatched, err := f.GetRows(SheetUnmatched)
	require.NoError(t, err)
	require.Len(t, unmatched, 2)
	assert.Equal(t, "Unique Blend X", unmatched[1][0])
	assert.Equal(t, "", unmatched[1][4])
	assert.Equal(t, "none", unmatched[1][8])

	review, err := f.GetRows(SheetNeedsReview)
	require.NoError(t, err)
	assert.Len(t, review, 1, "header only")

	only, err := f.GetRows(SheetProductionOnly)
	require.NoError(t, err)
	require.Len(t, only, 2)
	assert.Equal(t, []string{"Lemon Shatter", "12", "Shatter", match.ProductionOnlyReason}, only[1])
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleResult(t)))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	assert.Len(t, f.GetSheetList(), 4)
}
