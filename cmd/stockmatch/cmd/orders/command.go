// Package orders provides the command that builds restock orders.
package orders

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/stockmatch/stockmatch/internal/appcontext"
	"github.com/stockmatch/stockmatch/internal/cmd/alerts"
	"github.com/stockmatch/stockmatch/internal/cmd/output"
	"github.com/stockmatch/stockmatch/internal/cmd/posinput"
	"github.com/stockmatch/stockmatch/internal/cmd/table"
	"github.com/stockmatch/stockmatch/pkg/errors"
)

// dateLayout is the --date format.
const dateLayout = "2006-01-02"

// NewCommand creates the orders command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var (
		input    *posinput.Flags
		date     string
		htmlPath string
	)

	cmd := &cobra.Command{
		Use:     "orders",
		Aliases: []string{"order"},
		GroupID: "core",
		Short:   "Generate a restock order from a reconciliation",
		Long: `Orders reconciles a store's POS products against production inventory
and requests stock for sold-out and low-stock items, plus production items
the store does not carry yet.

The order number is derived from the ISO week of the order date and the
store name. Use --html to save the printable order sheet.`,
		Example: `  stockmatch orders --location downtown
  stockmatch orders --location downtown --date 2026-01-07
  stockmatch orders --csv export.csv --location downtown --html order.html`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := output.Resolve(app.OutputFormat())
			if err != nil {
				return err
			}
			day, err := parseDate(date)
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

			sheet, err := sm.Orders(cmd.Context(), input.Location, products, day)
			if err != nil {
				return err
			}

			if htmlPath != "" {
				if err := os.WriteFile(htmlPath, []byte(sheet.HTML), 0o644); err != nil {
					return errors.WrapIO("write", htmlPath, err)
				}
				app.Logger().Debug().Str("path", htmlPath).Str("order", sheet.Order.Number).Msg("order sheet written")
				alerts.NewWriter(cmd.ErrOrStderr()).Write(alerts.Success("wrote " + htmlPath))
			}

			w := cmd.OutOrStdout()
			if !output.IsTable(format) {
				return output.Print(w, format, sheet, table.Data{})
			}
			_, _ = fmt.Fprintf(w, "Order %s for %s, due %s\n",
				sheet.Order.Number, sheet.Order.Location, sheet.Order.DueDate.Format(dateLayout))
			return output.Print(w, format, sheet.Order, table.OrderToTableData(sheet.Order))
		},
	}

	input = posinput.AddFlags(cmd)
	cmd.Flags().StringVar(&date, "date", "", "order date as YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&htmlPath, "html", "", "write the printable order sheet to this file")

	return cmd
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	day, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, errors.NewValidationError("date", s, "date must be YYYY-MM-DD")
	}
	return day, nil
}
