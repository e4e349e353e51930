package overrides

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockmatch/stockmatch/pkg/errors"
	"github.com/stockmatch/stockmatch/pkg/inventory"
	"github.com/stockmatch/stockmatch/pkg/match"
)

const doc = `confirmed:
  Unique Blend X: Totally Different Strain
rejected:
  - pos: Gelato Cake
    production: Gelato Cookies
thresholds:
  auto: 95
  review: 60
`

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overrides.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	f, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"Unique Blend X": "Totally Different Strain"}, f.Confirmed)
	assert.Equal(t, []match.Pair{{POS: "Gelato Cake", Production: "Gelato Cookies"}}, f.Rejected)
	require.NotNil(t, f.Thresholds)
	assert.Equal(t, Thresholds{Auto: 95, Review: 60}, *f.Thresholds)
	assert.Equal(t, 2, f.Len())
}

func TestLoadEmptyPath(t *testing.T) {
	f, err := Load("")
	require.NoError(t, err)
	assert.Zero(t, f.Len())

	e, err := match.New(f.Options()...)
	require.NoError(t, err)
	assert.NotNil(t, e)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	var ioErr *errors.IOError
	assert.ErrorAs(t, err, &ioErr)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("confirmed: [1, 2"), 0o600))
	_, err = Load(path)
	var parseErr *errors.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, path, parseErr.Source)
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("confirmd:\n  a: b\n"))
	assert.Error(t, err)
}

func TestParseRejectsIncompletePair(t *testing.T) {
	_, err := Parse([]byte("rejected:\n  - pos: Gelato Cake\n"))
	assert.True(t, errors.IsValidationError(err))
}

func TestOptionsDriveEngine(t *testing.T) {
	f, err := Parse([]byte(doc))
	require.NoError(t, err)

	e, err := match.New(f.Options()...)
	require.NoError(t, err)

	production := []inventory.ProductionProduct{
		{Name: "Gelato Cookies", Quantity: 10, Category: inventory.Flower},
		{Name: "Totally Different Strain", Quantity: 5, Category: inventory.Flower},
	}

	confirmed := e.MatchProduct(inventory.POSProduct{Name: "Unique Blend X", Type: "Flower"}, production)
	assert.Equal(t, match.ConfidenceAuto, confirmed.Confidence)
	assert.True(t, confirmed.Confirmed)
	require.NotNil(t, confirmed.ProductionName)
	assert.Equal(t, "Totally Different Strain", *confirmed.ProductionName)

	rejected := e.MatchProduct(inventory.POSProduct{Name: "Gelato Cake", Type: "Flower"}, production)
	if rejected.ProductionName != nil {
		assert.NotEqual(t, "Gelato Cookies", *rejected.ProductionName)
	}
}

func TestOptionsInvalidThresholds(t *testing.T) {
	f, err := Parse([]byte("thresholds:\n  auto: 50\n  review: 80\n"))
	require.NoError(t, err)

	_, err = match.New(f.Options()...)
	assert.True(t, errors.IsValidationError(err))
}
