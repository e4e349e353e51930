package pos

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockmatch/stockmatch/pkg/inventory"
)

func TestAggregateByParent(t *testing.T) {
	gram, eighth := 1.0, 3.5
	products := []Product{
		{Name: "Afghani - 1g", ParentName: "Afghani", Category: "Flower", Quantity: 10, Unit: "units", Weight: &gram},
		{Name: "Gelato", Category: "Flower", Quantity: 2, Unit: "units"},
		{Name: "Afghani - 3.5g", ParentName: "Afghani", Category: "Flower", Quantity: 4, Unit: "units", Weight: &eighth},
	}

	groups := AggregateByParent(products)

	require.Len(t, groups, 2)
	assert.Equal(t, "Afghani", groups[0].Name)
	assert.Equal(t, 14.0, groups[0].TotalQuantity)
	require.Len(t, groups[0].Variants, 2)
	assert.Equal(t, &eighth, groups[0].Variants[1].Weight)
	assert.Equal(t, "Gelato", groups[1].Name)
	assert.Equal(t, 2.0, groups[1].TotalQuantity)
}

func TestAggregateRecords(t *testing.T) {
	records := []inventory.POSProduct{
		{Name: "Blue Dream", Type: "Flower", Quantity: 5},
		{Name: "Blue Dream", Type: "Pre Roll", Quantity: 7},
		{Name: "Blue Dream", Type: "Flower", Quantity: 3},
	}
	assert.Equal(t, []inventory.POSProduct{
		{Name: "Blue Dream", Type: "Flower", Quantity: 8},
		{Name: "Blue Dream", Type: "Pre Roll", Quantity: 7},
	}, AggregateRecords(records))
}

func TestRecords(t *testing.T) {
	got := Records([]Product{{Name: "Afghani - 1g", ParentName: "Afghani", Category: "Concentrate", Quantity: 3}})
	assert.Equal(t, []inventory.POSProduct{{Name: "Afghani - 1g", Type: "Concentrate", Quantity: 3}}, got)
}
