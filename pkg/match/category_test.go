package match

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stockmatch/stockmatch/pkg/inventory"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		posType string
		posName string
		want    inventory.Category
	}{
		{"name beats type", "Flower", "Afghani Badder", inventory.Badder},
		{"baller", "", "Gelato Baller", inventory.Badder},
		{"shatter", "", "Blue Dream Shatter", inventory.Shatter},
		{"sugar", "", "Wedding Cake Sugar", inventory.Sugar},
		{"live resin", "", "Sour Diesel Live Resin", inventory.LiveResin},
		{"rosin", "", "GMO Rosin", inventory.Rosin},
		{"diamonds", "", "THCa Diamonds", inventory.Diamonds},
		{"preroll hyphen", "", "Gelato Pre-Roll 5pk", inventory.Prerolls},
		{"preroll space", "", "Gelato Pre Roll", inventory.Prerolls},
		{"cart", "", "Lemon Cart", inventory.FullSpecOil},
		{"full spec", "", "Full Spec Oil Syringe", inventory.FullSpecOil},
		{"badder before shatter", "", "Badder Shatter Mix", inventory.Badder},
		{"type fallback", "Badder House", "Afghani", inventory.Badder},
		{"type with parens", "Badder House (Baller)", "Afghani", inventory.Badder},
		{"type resin", "Resin", "Afghani", inventory.LiveResin},
		{"type hash rosin", " HASH ROSIN ", "Afghani", inventory.Rosin},
		{"type preroll pack", "Pre Roll Pack", "Afghani", inventory.Prerolls},
		{"type cart", "Cart", "Afghani", inventory.FullSpecOil},
		{"unknown type", "Edible", "Gummies", inventory.Flower},
		{"empty", "", "", inventory.Flower},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.posType, tt.posName))
		})
	}
}

func TestCategoryForType(t *testing.T) {
	got, ok := CategoryForType("Diamonds")
	assert.True(t, ok)
	assert.Equal(t, inventory.Diamonds, got)

	_, ok = CategoryForType("")
	assert.False(t, ok)

	_, ok = CategoryForType("Tincture")
	assert.False(t, ok)
}
