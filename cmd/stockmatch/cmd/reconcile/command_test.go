package reconcile

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/stockmatch/stockmatch"
	"github.com/stockmatch/stockmatch/internal/cmd/cmdtest"
	"github.com/stockmatch/stockmatch/pkg/errors"
)

func TestReconcileLocation(t *testing.T) {
	app := cmdtest.NewApp(cmdtest.NewStockmatch(t), "json")

	out, err := cmdtest.Run(t, NewCommand(app), "--location", cmdtest.Location)
	require.NoError(t, err)

	var rec stockmatch.Reconciliation
	require.NoError(t, json.Unmarshal([]byte(out), &rec))
	assert.Equal(t, cmdtest.Location, rec.Summary.Location)
	assert.Equal(t, 1, rec.Summary.POSProductCount)
	assert.Equal(t, 1, rec.Summary.AutoMatched)
	assert.Equal(t, 1, rec.Summary.ProductionOnly)
	require.Len(t, rec.ProductionOnly, 1)
	assert.Equal(t, "Lemon Shatter", rec.ProductionOnly[0].ProductionName)
}

func TestReconcileCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.csv")
	csv := "Product Name,Product Type,Quantity\n" +
		"Afghani Badder,Badder,1\n" +
		"Afghani Badder,Badder,1\n" +
		"Rolling Papers,Misc.,10\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o600))

	app := cmdtest.NewApp(cmdtest.NewStockmatch(t), "json")
	out, err := cmdtest.Run(t, NewCommand(app), "--csv", path)
	require.NoError(t, err)

	var rec stockmatch.Reconciliation
	require.NoError(t, json.Unmarshal([]byte(out), &rec))
	assert.Equal(t, stockmatch.UnknownLocation, rec.Summary.Location)
	require.Len(t, rec.AutoMatched, 1)
	assert.InDelta(t, 2, rec.AutoMatched[0].POSQuantity, 0.001)
}

func TestReconcileTable(t *testing.T) {
	app := cmdtest.NewApp(cmdtest.NewStockmatch(t), "table")

	out, err := cmdtest.Run(t, NewCommand(app), "-l", cmdtest.Location)
	require.NoError(t, err)
	assert.Contains(t, out, "Afghani Badder")
	assert.Contains(t, out, "production_only")
	assert.Contains(t, out, "Production products")
}

func TestReconcileSummary(t *testing.T) {
	app := cmdtest.NewApp(cmdtest.NewStockmatch(t), "json")

	out, err := cmdtest.Run(t, NewCommand(app), "-l", cmdtest.Location, "--summary")
	require.NoError(t, err)

	var summary stockmatch.Summary
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.Equal(t, 2, summary.ProductionProductCount)
}

func TestReconcileExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	app := cmdtest.NewApp(cmdtest.NewStockmatch(t), "json")

	_, err := cmdtest.Run(t, NewCommand(app), "-l", cmdtest.Location, "--export", path)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	assert.NotEmpty(t, f.GetSheetList())
}

func TestReconcileRequiresInput(t *testing.T) {
	app := cmdtest.NewApp(cmdtest.NewStockmatch(t), "json")

	_, err := cmdtest.Run(t, NewCommand(app))
	assert.True(t, errors.IsValidationError(err))
}
