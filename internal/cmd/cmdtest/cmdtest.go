// Package cmdtest provides fixtures for CLI command tests: a stockmatch
// instance over in-memory sources and a helper that runs a command.
package cmdtest

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/stockmatch/stockmatch"
	"github.com/stockmatch/stockmatch/internal/appcontext"
	"github.com/stockmatch/stockmatch/internal/sources/flowhub"
	"github.com/stockmatch/stockmatch/pkg/errors"
	"github.com/stockmatch/stockmatch/pkg/logging"
	"github.com/stockmatch/stockmatch/pkg/pos"
	"github.com/stockmatch/stockmatch/pkg/sheets"
)

// Location is the only store known to the fixture POS.
const Location = "downtown"

// Sheet is an in-memory production spreadsheet.
type Sheet map[string][][]string

// Tabs lists the tabs in a fixed order.
func (s Sheet) Tabs(context.Context) ([]sheets.TabInfo, error) {
	var tabs []sheets.TabInfo
	for i, name := range []string{"Badder", "Shatter"} {
		if _, ok := s[name]; ok {
			tabs = append(tabs, sheets.TabInfo{Name: name, GID: int64(i + 1)})
		}
	}
	return tabs, nil
}

// Rows returns the tab's rows.
func (s Sheet) Rows(_ context.Context, tab string, _ sheets.Range) ([][]string, error) {
	return s[tab], nil
}

// POS is an in-memory POS keyed by location.
type POS map[string][]pos.Product

// Inventory returns the location's products.
func (p POS) Inventory(_ context.Context, location string) ([]pos.Product, error) {
	products, ok := p[location]
	if !ok {
		return nil, errors.NewNotFoundError("location", location)
	}
	return products, nil
}

// AllLocations fetches the fixture location.
func (p POS) AllLocations(ctx context.Context) []flowhub.LocationInventory {
	products, err := p.Inventory(ctx, Location)
	return []flowhub.LocationInventory{{Location: Location, Products: products, Err: err}}
}

// DefaultSheet holds one Badder and one Shatter product.
func DefaultSheet() Sheet {
	return Sheet{
		"Badder":  {{"Afghani Badder"}, {"Total Remaining", "12"}},
		"Shatter": {{"Lemon Shatter"}, {"Total Remaining", "40"}},
	}
}

// DefaultPOS stocks a sold-out house product and a third-party one.
func DefaultPOS() POS {
	return POS{
		Location: {
			{Name: "Afghani Badder", Category: "Concentrate", Quantity: 0},
			{Name: "Puffco Peak", Category: "Concentrate", Quantity: 2},
		},
	}
}

// NewStockmatch builds an instance over the default fixtures and closes it
// when the test ends.
func NewStockmatch(t testing.TB, opts ...stockmatch.Option) stockmatch.Stockmatch {
	t.Helper()
	base := []stockmatch.Option{
		stockmatch.WithTabSource(DefaultSheet()),
		stockmatch.WithPOSSource(DefaultPOS()),
		stockmatch.WithLogger(logging.NewNopLogger()),
	}
	sm, err := stockmatch.New(append(base, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sm.Close() })
	return sm
}

// NewApp returns a mock app serving sm in format.
func NewApp(sm stockmatch.Stockmatch, format string) *appcontext.Mock {
	return &appcontext.Mock{
		StockmatchFunc: func() (stockmatch.Stockmatch, error) { return sm, nil },
		Format:         format,
	}
}

// Run executes cmd with args and returns what it wrote to stdout. Alerts
// written to stderr are dropped.
func Run(t testing.TB, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	cmd.SetContext(context.Background())
	err := cmd.Execute()
	return out.String(), err
}
