package match

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockmatch/stockmatch/pkg/errors"
	"github.com/stockmatch/stockmatch/pkg/inventory"
)

func newEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	e, err := New(opts...)
	require.NoError(t, err)
	return e
}

func prod(name string, qty float64, category inventory.Category) inventory.ProductionProduct {
	return inventory.ProductionProduct{Name: name, Quantity: qty, Category: category, Unit: "grams"}
}

func TestMatchProductAutoWithCategoryBonus(t *testing.T) {
	e := newEngine(t)
	r := e.MatchProduct(
		inventory.POSProduct{Name: "Afghani Badder - 1g", Type: "Badder House", Quantity: 0},
		[]inventory.ProductionProduct{prod("Afghani Badder", 30, inventory.Badder)},
	)

	assert.Equal(t, ConfidenceAuto, r.Confidence)
	assert.Equal(t, 100, r.SimilarityScore)
	require.True(t, r.HasProduction())
	assert.Equal(t, "Afghani Badder", *r.ProductionName)
	assert.Equal(t, 30.0, *r.ProductionQuantity)
	assert.Equal(t, inventory.Badder, *r.ProductionCategory)
	assert.False(t, r.Confirmed)
}

func TestMatchProductReview(t *testing.T) {
	e := newEngine(t)
	r := e.MatchProduct(
		inventory.POSProduct{Name: "Gelato Cake", Type: "Flower", Quantity: 3},
		[]inventory.ProductionProduct{prod("Gelato Cookies", 12, inventory.Flower)},
	)
	assert.Equal(t, ConfidenceReview, r.Confidence)
	assert.Equal(t, 85, r.SimilarityScore)
	require.True(t, r.HasProduction())
	assert.Equal(t, "Gelato Cookies", *r.ProductionName)
}

func TestMatchProductNoneHasNullProduction(t *testing.T) {
	e := newEngine(t)
	r := e.MatchProduct(
		inventory.POSProduct{Name: "Unique Blend X", Type: "Flower", Quantity: 40},
		[]inventory.ProductionProduct{prod("Totally Different Strain", 10, inventory.Flower)},
	)
	assert.Equal(t, ConfidenceNone, r.Confidence)
	assert.Equal(t, 31, r.SimilarityScore)
	assert.Nil(t, r.ProductionName)
	assert.Nil(t, r.ProductionQuantity)
	assert.Nil(t, r.ProductionCategory)
}

func TestMatchProductCategoryFilter(t *testing.T) {
	e := newEngine(t)
	// Same name but the production item sits in a different category.
	r := e.MatchProduct(
		inventory.POSProduct{Name: "Blue Dream Shatter", Type: "Shatter"},
		[]inventory.ProductionProduct{prod("Blue Dream", 50, inventory.Flower)},
	)
	assert.Equal(t, ConfidenceNone, r.Confidence)
	assert.Equal(t, 0, r.SimilarityScore)
}

func TestMatchProductTieKeepsFirst(t *testing.T) {
	e := newEngine(t)
	r := e.MatchProduct(
		inventory.POSProduct{Name: "Dream", Type: "Flower"},
		[]inventory.ProductionProduct{
			prod("Blue Dream", 1, inventory.Flower),
			prod("Dream Blue", 2, inventory.Flower),
		},
	)
	require.True(t, r.HasProduction())
	assert.Equal(t, "Blue Dream", *r.ProductionName)
}

func TestMatchProductConfirmedOverride(t *testing.T) {
	e := newEngine(t, WithConfirmed(map[string]string{
		"House Special 1g": "Grandpa's Secret Recipe",
	}))

	// The override scans every production item regardless of category.
	r := e.MatchProduct(
		inventory.POSProduct{Name: "House Special 1g", Type: "Badder House"},
		[]inventory.ProductionProduct{
			prod("Afghani Badder", 5, inventory.Badder),
			prod("Grandpas Secret Recipe", 9, inventory.Flower),
		},
	)
	assert.Equal(t, ConfidenceAuto, r.Confidence)
	assert.Equal(t, 100, r.SimilarityScore)
	assert.True(t, r.Confirmed)
	require.True(t, r.HasProduction())
	assert.Equal(t, "Grandpas Secret Recipe", *r.ProductionName)
	assert.Equal(t, inventory.Flower, *r.ProductionCategory)
}

func TestMatchProductConfirmedTargetMissingFallsThrough(t *testing.T) {
	e := newEngine(t, WithConfirmed(map[string]string{"afghani badder": "gone forever"}))
	r := e.MatchProduct(
		inventory.POSProduct{Name: "Afghani Badder", Type: "Badder"},
		[]inventory.ProductionProduct{prod("Afghani Badder", 5, inventory.Badder)},
	)
	assert.Equal(t, ConfidenceAuto, r.Confidence)
	assert.False(t, r.Confirmed)
}

func TestMatchProductRejectedPair(t *testing.T) {
	production := []inventory.ProductionProduct{
		prod("Afghani Badder", 5, inventory.Badder),
		prod("Afghani Kush", 8, inventory.Badder),
	}
	pos := inventory.POSProduct{Name: "Afghani Badder", Type: "Badder"}

	plain := newEngine(t).MatchProduct(pos, production)
	require.True(t, plain.HasProduction())
	assert.Equal(t, "Afghani Badder", *plain.ProductionName)

	e := newEngine(t, WithRejected(Pair{POS: "Afghani Badder", Production: "AFGHANI BADDER"}))
	r := e.MatchProduct(pos, production)
	require.True(t, r.HasProduction())
	assert.Equal(t, "Afghani Kush", *r.ProductionName)
	assert.Equal(t, ConfidenceReview, r.Confidence)
	assert.Equal(t, 79, r.SimilarityScore)
}

func TestMatchInventory(t *testing.T) {
	e := newEngine(t)
	pos := []inventory.POSProduct{
		{Name: "Afghani Badder - 1g", Type: "Badder House", Quantity: 0},
		{Name: "Gelato Cake", Type: "Flower", Quantity: 3},
		{Name: "Unique Blend X", Type: "Flower", Quantity: 40},
	}
	production := []inventory.ProductionProduct{
		prod("Afghani Badder", 30, inventory.Badder),
		prod("Gelato Cookies", 12, inventory.Flower),
		prod("Totally Different Strain", 10, inventory.Flower),
		prod("Empty Jar", 0, inventory.Flower),
		prod("Lemon Shatter", 4, inventory.Shatter),
	}

	result := e.MatchInventory(pos, production)

	assert.Equal(t, Counts{AutoMatched: 1, NeedsReview: 1, Unmatched: 1, ProductionOnly: 2}, result.Counts())
	assert.Equal(t, "Afghani Badder - 1g", result.AutoMatched[0].POSName)
	assert.Equal(t, "Gelato Cake", result.NeedsReview[0].POSName)
	assert.Equal(t, "Unique Blend X", result.Unmatched[0].POSName)

	names := []string{}
	for _, p := range result.ProductionOnly {
		assert.Greater(t, p.ProductionQuantity, 0.0)
		assert.Equal(t, ProductionOnlyReason, p.Reason)
		names = append(names, p.ProductionName)
	}
	// Gelato Cookies is a review target; the unmatched item's best candidate still counts.
	assert.Equal(t, []string{"Totally Different Strain", "Lemon Shatter"}, names)
}

func TestMatchInventoryClaimIsPerCategory(t *testing.T) {
	e := newEngine(t)
	result := e.MatchInventory(
		[]inventory.POSProduct{{Name: "Blue Dream", Type: "Flower", Quantity: 2}},
		[]inventory.ProductionProduct{
			prod("Blue Dream", 100, inventory.Flower),
			prod("Blue Dream", 20, inventory.Prerolls),
		},
	)
	require.Len(t, result.AutoMatched, 1)
	require.Len(t, result.ProductionOnly, 1)
	assert.Equal(t, inventory.Prerolls, result.ProductionOnly[0].ProductionCategory)
}

func TestMatchInventoryOneAutoPerProductionItem(t *testing.T) {
	e := newEngine(t)
	result := e.MatchInventory(
		[]inventory.POSProduct{
			{Name: "Afghani Badder - 1g", Type: "Badder House", Quantity: 3},
			{Name: "Afghani Badder (2g)", Type: "Badder House", Quantity: 1},
		},
		[]inventory.ProductionProduct{prod("Afghani Badder", 30, inventory.Badder)},
	)

	assert.Equal(t, Counts{AutoMatched: 1, NeedsReview: 1}, result.Counts())
	assert.Equal(t, "Afghani Badder - 1g", result.AutoMatched[0].POSName)

	second := result.NeedsReview[0]
	assert.Equal(t, "Afghani Badder (2g)", second.POSName)
	assert.Equal(t, 100, second.SimilarityScore)
	require.True(t, second.HasProduction())
	assert.Equal(t, "Afghani Badder", *second.ProductionName)
}

func TestMatchInventoryClaimDoesNotAffectMatchProduct(t *testing.T) {
	e := newEngine(t)
	production := []inventory.ProductionProduct{prod("Afghani Badder", 30, inventory.Badder)}
	p := inventory.POSProduct{Name: "Afghani Badder", Type: "Badder"}

	e.MatchInventory([]inventory.POSProduct{p, p}, production)
	assert.Equal(t, ConfidenceAuto, e.MatchProduct(p, production).Confidence)
}

func TestMatchInventoryEmpty(t *testing.T) {
	result := newEngine(t).MatchInventory(nil, nil)
	data, err := json.Marshal(result)
	require.NoError(t, err)
	assert.JSONEq(t, `{"auto_matched":[],"needs_review":[],"unmatched":[],"production_only":[]}`, string(data))
}

func TestMatchResultJSON(t *testing.T) {
	r := newEngine(t).MatchProduct(
		inventory.POSProduct{Name: "Unique Blend X", Type: "Flower", Quantity: 40},
		nil,
	)
	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"pos_name": "Unique Blend X",
		"pos_type": "Flower",
		"pos_quantity": 40,
		"pos_category": "Flower",
		"production_name": null,
		"production_quantity": null,
		"production_category": null,
		"similarity_score": 0,
		"confidence": "none"
	}`, string(data))
}

func TestOptionsValidation(t *testing.T) {
	_, err := New(WithThresholds(60, 80))
	assert.True(t, errors.IsValidationError(err))

	_, err = New(WithConfirmed(map[string]string{"(1g)": "x"}))
	assert.True(t, errors.IsValidationError(err))

	e, err := New(WithThresholds(95, 50))
	require.NoError(t, err)
	r := e.MatchProduct(
		inventory.POSProduct{Name: "Northern Lights", Type: "Flower"},
		[]inventory.ProductionProduct{prod("Northern Light", 1, inventory.Flower)},
	)
	assert.Equal(t, ConfidenceAuto, r.Confidence)
}

func TestConfidenceText(t *testing.T) {
	for _, c := range []Confidence{ConfidenceAuto, ConfidenceReview, ConfidenceNone} {
		text, err := c.MarshalText()
		require.NoError(t, err)

		var back Confidence
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, c, back)
	}

	var c Confidence
	assert.Error(t, c.UnmarshalText([]byte("maybe")))
}
