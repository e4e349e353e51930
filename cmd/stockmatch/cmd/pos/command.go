// Package pos provides the command that fetches live point-of-sale
// inventory.
package pos

import (
	"github.com/spf13/cobra"

	"github.com/stockmatch/stockmatch/internal/appcontext"
	"github.com/stockmatch/stockmatch/internal/cmd/alerts"
	"github.com/stockmatch/stockmatch/internal/cmd/output"
	"github.com/stockmatch/stockmatch/internal/cmd/table"
)

// NewCommand creates the pos command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var unfiltered bool

	cmd := &cobra.Command{
		Use:     "pos [location]",
		GroupID: "core",
		Short:   "Show live POS inventory",
		Long: `POS fetches the current inventory of a store from the point-of-sale
API. Without a location, every configured store is fetched and summarised.

By default only house production is listed. Accessories and third-party
brands are dropped unless --unfiltered is given.`,
		Example: `  stockmatch pos                        # Summarise every store
  stockmatch pos downtown               # House products at one store
  stockmatch pos downtown --unfiltered  # Everything the store stocks`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := output.Resolve(app.OutputFormat())
			if err != nil {
				return err
			}
			sm, err := app.Stockmatch()
			if err != nil {
				return err
			}

			if len(args) == 0 {
				all := sm.AllPOSInventory(cmd.Context(), !unfiltered)
				alert := alerts.NewWriter(cmd.ErrOrStderr())
				for _, l := range all {
					if l.Err != nil {
						alert.Write(alerts.Warning("location "+l.Location+" failed", l.Err))
					}
				}
				return output.Print(cmd.OutOrStdout(), format, all, table.LocationsToTableData(all))
			}

			products, err := sm.POSInventory(cmd.Context(), args[0], !unfiltered)
			if err != nil {
				return err
			}
			return output.Print(cmd.OutOrStdout(), format, products, table.POSToTableData(products, format == output.FormatWide))
		},
	}

	cmd.Flags().BoolVar(&unfiltered, "unfiltered", false, "include accessories and third-party brands")

	return cmd
}
