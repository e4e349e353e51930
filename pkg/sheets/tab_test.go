package sheets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockmatch/stockmatch/pkg/inventory"
)

func TestIsInventoryTab(t *testing.T) {
	for _, name := range []string{"Shatter", "BADDER 2024", "Live Resin", "Full Spec Oil", "Pre-Rolls", "Flower", "Hash Rosin", "Diamonds", "Concentrate", "Sugar Wax"} {
		assert.True(t, IsInventoryTab(name), name)
	}
	for _, name := range []string{"Orders", "Sales Log", "Sheet1", ""} {
		assert.False(t, IsInventoryTab(name), name)
	}
}

func TestUnitForTab(t *testing.T) {
	assert.Equal(t, UnitGrams, UnitForTab("Flower"))
	assert.Equal(t, UnitUnits, UnitForTab("Prerolls"))
	assert.Equal(t, UnitUnits, UnitForTab("Pre Rolls"))
	assert.Equal(t, UnitGrams, UnitForTab("Shatter"))
}

func TestCategoryForTab(t *testing.T) {
	tests := map[string]inventory.Category{
		"Badder":            inventory.Badder,
		"SHATTER":           inventory.Shatter,
		"Live Resin":        inventory.LiveResin,
		"Full Spec Oil":     inventory.FullSpecOil,
		"Full Spec Carts":   inventory.FullSpecOil,
		"Pre Rolls":         inventory.Prerolls,
		"Prerolls":          inventory.Prerolls,
		"Flower 2024":       inventory.Flower,
		"Hash Rosin":        inventory.Rosin,
		"Diamonds":          inventory.Diamonds,
		"Diamond":           inventory.Diamonds,
		"Carts":             inventory.FullSpecOil,
		"Oil Syringes":      inventory.FullSpecOil,
		"Preroll Inventory": inventory.Prerolls,
		"Pre-Roll Packs":    inventory.Prerolls,
		"Resin":             inventory.LiveResin,
		"Live Resin Carts":  inventory.LiveResin,
		" Wax ":             inventory.Category("Wax"),
	}
	for tab, want := range tests {
		assert.Equal(t, want, CategoryForTab(tab), tab)
	}
}

func TestInventoryTabsMapToKnownCategories(t *testing.T) {
	// Every inventory keyword except the catch-alls names a category the
	// POS classifier can produce.
	for _, tab := range []string{
		"Shatter", "Badder", "Sugar", "Live Resin", "Resin", "Full Spec", "Oil",
		"Carts", "Preroll", "Pre Roll", "Pre-Roll", "Flower", "Rosin", "Diamond",
	} {
		require.True(t, IsInventoryTab(tab), tab)
		_, known := inventory.ParseCategory(string(CategoryForTab(tab)))
		assert.True(t, known, tab)
	}
}

func TestA1(t *testing.T) {
	assert.Equal(t, "'Live Resin'!A:C", A1("Live Resin", FullRange))
	assert.Equal(t, "'Bob''s Flower'!A1:C50", A1("Bob's Flower", SampleRange))
}
