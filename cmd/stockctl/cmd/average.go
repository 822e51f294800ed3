package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/swiss1111/advanced-stock-price-checker/internal/domain/stock"
	stockservice "github.com/swiss1111/advanced-stock-price-checker/internal/service/stock"
)

var averageCmd = &cobra.Command{
	Use:   "average SYMBOL",
	Short: "Print the moving average of the stored prices",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer db.Close()

		svc := stockservice.NewService(db.Symbols, db.Prices, newQuoteClient())
		avg, err := svc.MovingAverage(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s moving average (last %d): %s\n", args[0], stock.MovingAverageWindow, avg.StringFixed(4))
		return nil
	},
}
