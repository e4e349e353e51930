// Package posinput loads the POS product list a command reconciles, either
// from an exported CSV file or live from a POS location.
package posinput

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/stockmatch/stockmatch/pkg/errors"
	"github.com/stockmatch/stockmatch/pkg/inventory"
	"github.com/stockmatch/stockmatch/pkg/pos"
)

// Flags selects the POS products.
type Flags struct {
	CSV      string
	Location string
}

// HouseFilter keeps the house products of a POS export.
type HouseFilter interface {
	HouseRecords(records []inventory.POSProduct) []inventory.POSProduct
}

// Source fetches live POS inventory and filters exports.
// stockmatch.Stockmatch implements it.
type Source interface {
	HouseFilter
	POSInventory(ctx context.Context, location string, house bool) ([]pos.Product, error)
}

// AddFlags registers --csv and --location on cmd.
func AddFlags(cmd *cobra.Command) *Flags {
	flags := &Flags{}
	cmd.Flags().StringVar(&flags.CSV, "csv", "", "POS inventory export to read instead of fetching live")
	cmd.Flags().StringVarP(&flags.Location, "location", "l", "", "POS location name")
	return flags
}

// Load returns the house products selected by flags. CSV exports are
// filtered and aggregated the way uploads are; live inventory is filtered
// by the source.
func (f *Flags) Load(ctx context.Context, src Source) ([]inventory.POSProduct, error) {
	switch {
	case f.CSV != "":
		return ReadCSV(f.CSV, src)
	case f.Location != "":
		products, err := src.POSInventory(ctx, f.Location, true)
		if err != nil {
			return nil, err
		}
		return pos.Records(products), nil
	}
	return nil, errors.NewValidationError("csv", nil, "either --csv or --location is required")
}

// ReadCSV parses the POS export at path and keeps the products filter
// accepts, summing duplicates.
func ReadCSV(path string, filter HouseFilter) ([]inventory.POSProduct, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer func() { _ = file.Close() }()

	records, err := pos.ParseCSV(file)
	if err != nil {
		return nil, err
	}
	return pos.AggregateRecords(filter.HouseRecords(records)), nil
}
