package table

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockmatch/stockmatch"
	"github.com/stockmatch/stockmatch/internal/sources/flowhub"
	"github.com/stockmatch/stockmatch/internal/utils/ptr"
	"github.com/stockmatch/stockmatch/pkg/inventory"
	"github.com/stockmatch/stockmatch/pkg/match"
	"github.com/stockmatch/stockmatch/pkg/orders"
	"github.com/stockmatch/stockmatch/pkg/sheets"
)

func TestQuantity(t *testing.T) {
	assert.Equal(t, "12", Quantity(12))
	assert.Equal(t, "3.5", Quantity(3.5))
	assert.Equal(t, "0", Quantity(0))
}

func TestProductionToTableData(t *testing.T) {
	report := &sheets.Report{
		Tabs: []sheets.TabSummary{{Name: "Badder", IsInventory: true}},
		Products: []inventory.ProductionProduct{
			{Name: "Afghani Badder", Quantity: 12, Category: inventory.Badder, Unit: sheets.UnitGrams, SourceTab: "Badder", RowIndex: 4},
		},
		Summary: map[string]sheets.Totals{"Badder": {Count: 1, Total: 12, Unit: sheets.UnitGrams}},
	}

	data := ProductionToTableData(report, false)
	assert.Len(t, data.Headers, 4)
	assert.Equal(t, []string{"Badder", "Afghani Badder", "12", sheets.UnitGrams}, data.Rows[0])

	wide := ProductionToTableData(report, true)
	assert.Equal(t, []string{"Badder", "4"}, wide.Rows[0][4:])

	totals := TabTotalsToTableData(report)
	assert.Equal(t, [][]string{{"Badder", "1", "12", sheets.UnitGrams}}, totals.Rows)
}

func TestReconciliationToTableData(t *testing.T) {
	rec := &stockmatch.Reconciliation{
		Result: match.Result{
			AutoMatched: []match.MatchResult{{
				POSName: "Afghani Badder", POSCategory: inventory.Badder,
				ProductionName: ptr.To("Afghani Badder"), ProductionQuantity: ptr.To(12.0), ProductionCategory: ptr.To(inventory.Badder),
				SimilarityScore: 100, Confidence: match.ConfidenceAuto,
			}},
			Unmatched: []match.MatchResult{{POSName: "Unique Blend X", POSQuantity: 4, SimilarityScore: 41}},
			ProductionOnly: []match.ProductionOnly{{
				ProductionName: "Lemon Shatter", ProductionQuantity: 40, ProductionCategory: inventory.Shatter,
			}},
		},
	}

	data := ReconciliationToTableData(rec, false)
	require.Len(t, data.Rows, 3)
	assert.Equal(t, []string{"auto", "Afghani Badder", "0", "Afghani Badder", "12", "100"}, data.Rows[0])
	assert.Equal(t, []string{"none", "Unique Blend X", "4", None, None, "41"}, data.Rows[1])
	assert.Equal(t, "production_only", data.Rows[2][0])

	wide := ReconciliationToTableData(rec, true)
	assert.Equal(t, []string{"Badder", "Badder"}, wide.Rows[0][6:])
	assert.Equal(t, None, wide.Rows[1][7])
}

func TestLocationsToTableData(t *testing.T) {
	data := LocationsToTableData([]flowhub.LocationInventory{
		{Location: "downtown"},
		{Location: "uptown", Err: errors.New("boom")},
	})
	assert.Equal(t, "ok", data.Rows[0][2])
	assert.Equal(t, "boom", data.Rows[1][2])
}

func TestOrderToTableData(t *testing.T) {
	o := &orders.Order{Items: []orders.Item{{
		ProductName: "Afghani Badder", Category: inventory.Badder,
		ProductionAvailable: 12, RequestedQuantity: 12,
		Reason: orders.ReasonOutOfStock, Priority: orders.PriorityCritical,
	}}}
	data := OrderToTableData(o)
	assert.Equal(t, []string{"critical", "Afghani Badder", "Badder", "0", "12", "12", "out_of_stock"}, data.Rows[0])
}
