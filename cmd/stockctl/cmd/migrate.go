package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/swiss1111/advanced-stock-price-checker/internal/infra/database/store"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the symbols and stock_prices tables",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := store.Migrate(cmd.Context(), cfg); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Schema up to date (%s)\n", cfg.Database.Driver)
		return nil
	},
}
