package cmd

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/swiss1111/advanced-stock-price-checker/internal/service/pricesync"
)

var pollCmd = &cobra.Command{
	Use:   "poll",
	Short: "Run one poll over every active symbol",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer db.Close()

		poller := pricesync.NewPoller(db.Symbols, db.Prices, newQuoteClient(), log.Logger)
		poller.RunTick(cmd.Context())

		fmt.Fprintln(cmd.OutOrStdout(), "Poll finished")
		return nil
	},
}
