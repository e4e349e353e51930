// Package reconcile provides the command that matches POS products against
// production inventory.
package reconcile

import (
	"github.com/spf13/cobra"

	"github.com/stockmatch/stockmatch/internal/appcontext"
	"github.com/stockmatch/stockmatch/internal/cmd/alerts"
	"github.com/stockmatch/stockmatch/internal/cmd/output"
	"github.com/stockmatch/stockmatch/internal/cmd/posinput"
	"github.com/stockmatch/stockmatch/internal/cmd/table"
	"github.com/stockmatch/stockmatch/internal/export"
)

// NewCommand creates the reconcile command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var (
		input       *posinput.Flags
		exportPath  string
		summaryOnly bool
	)

	cmd := &cobra.Command{
		Use:     "reconcile",
		GroupID: "core",
		Short:   "Match POS products against production inventory",
		Long: `Reconcile matches each POS product to the production inventory by name
similarity and reports:

  auto_matched     confident matches
  needs_review     plausible matches to confirm by hand
  unmatched        POS products with no production counterpart
  production_only  production stock the store does not carry

POS products come from a CSV export (--csv) or are fetched live from a
store (--location).`,
		Example: `  stockmatch reconcile --location downtown
  stockmatch reconcile --csv export.csv --location downtown
  stockmatch reconcile --location downtown --export report.xlsx
  stockmatch reconcile --location downtown --summary`,
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
			products, err := input.Load(cmd.Context(), sm)
			if err != nil {
				return err
			}

			rec, err := sm.Reconcile(cmd.Context(), input.Location, products)
			if err != nil {
				return err
			}

			if exportPath != "" {
				if err := export.Reconciliation(rec.Result, exportPath); err != nil {
					return err
				}
				app.Logger().Debug().Str("path", exportPath).Msg("reconciliation exported")
				alerts.NewWriter(cmd.ErrOrStderr()).Write(alerts.Success("wrote " + exportPath))
			}

			w := cmd.OutOrStdout()
			if summaryOnly {
				return output.Print(w, format, rec.Summary, table.SummaryToTableData(rec.Summary))
			}
			if !output.IsTable(format) {
				return output.Print(w, format, rec, table.Data{})
			}
			if err := output.Print(w, format, rec, table.ReconciliationToTableData(rec, format == output.FormatWide)); err != nil {
				return err
			}
			return output.Print(w, format, rec.Summary, table.SummaryToTableData(rec.Summary))
		},
	}

	input = posinput.AddFlags(cmd)
	cmd.Flags().StringVar(&exportPath, "export", "", "also write the result to an .xlsx workbook")
	cmd.Flags().BoolVar(&summaryOnly, "summary", false, "print only the counts")

	return cmd
}
