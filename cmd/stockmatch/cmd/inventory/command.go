// Package inventory provides the command that reads the production
// spreadsheet.
package inventory

import (
	"github.com/spf13/cobra"

	"github.com/stockmatch/stockmatch/internal/appcontext"
	"github.com/stockmatch/stockmatch/internal/cmd/alerts"
	"github.com/stockmatch/stockmatch/internal/cmd/output"
	"github.com/stockmatch/stockmatch/internal/cmd/table"
)

// NewCommand creates the inventory command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var totals bool

	cmd := &cobra.Command{
		Use:     "inventory",
		Aliases: []string{"production"},
		GroupID: "core",
		Short:   "Show production inventory from the spreadsheet",
		Long: `Inventory scans every tab of the production spreadsheet and lists the
products with remaining stock.

Tabs that fail to parse are reported and skipped.`,
		Example: `  stockmatch inventory              # List production products
  stockmatch inventory --totals     # Per-tab totals
  stockmatch inventory -o json      # Full report as JSON`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := output.Resolve(app.OutputFormat())
			if err != nil {
				return err
			}
			sm, err := app.Stockmatch()
			if err != nil {
				return err
			}
			report, err := sm.ProductionInventory(cmd.Context())
			if err != nil {
				return err
			}

			alert := alerts.NewWriter(cmd.ErrOrStderr())
			for _, tabErr := range report.Errors {
				alert.Write(alerts.Warning("tab "+tabErr.Tab+" skipped", tabErr.Err))
			}

			if totals {
				return output.Print(cmd.OutOrStdout(), format, report.Summary, table.TabTotalsToTableData(report))
			}
			return output.Print(cmd.OutOrStdout(), format, report, table.ProductionToTableData(report, format == output.FormatWide))
		},
	}

	cmd.Flags().BoolVar(&totals, "totals", false, "show per-tab totals instead of products")

	return cmd
}
