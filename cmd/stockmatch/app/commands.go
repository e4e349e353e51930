package app

import (
	"github.com/spf13/cobra"

	"github.com/stockmatch/stockmatch/cmd/stockmatch/cmd/inventory"
	"github.com/stockmatch/stockmatch/cmd/stockmatch/cmd/orders"
	"github.com/stockmatch/stockmatch/cmd/stockmatch/cmd/pos"
	"github.com/stockmatch/stockmatch/cmd/stockmatch/cmd/reconcile"
	"github.com/stockmatch/stockmatch/cmd/stockmatch/cmd/serve"
	"github.com/stockmatch/stockmatch/cmd/stockmatch/cmd/version"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(inventory.NewCommand(a))
	rootCmd.AddCommand(pos.NewCommand(a))
	rootCmd.AddCommand(reconcile.NewCommand(a))
	rootCmd.AddCommand(orders.NewCommand(a))

	// Management commands
	rootCmd.AddCommand(serve.NewCommand(a))
	rootCmd.AddCommand(version.NewCommand(a))
}
