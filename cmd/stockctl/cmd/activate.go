package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/swiss1111/advanced-stock-price-checker/internal/domain/stock"
	stockservice "github.com/swiss1111/advanced-stock-price-checker/internal/service/stock"
)

var activateCmd = &cobra.Command{
	Use:   "activate SYMBOL...",
	Short: "Activate symbols for periodic polling",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, code := range args {
			if !stock.ValidateSymbol(code) {
				return fmt.Errorf("%w: %q", stock.ErrInvalidSymbol, code)
			}
		}

		db, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer db.Close()

		svc := stockservice.NewService(db.Symbols, db.Prices, newQuoteClient())
		for _, code := range args {
			if err := svc.ActivateSymbol(cmd.Context(), code); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Symbol '%s' activated successfully\n", code)
		}
		return nil
	},
}
