package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var quoteCmd = &cobra.Command{
	Use:   "quote SYMBOL",
	Short: "Fetch a live quote from Finnhub",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		q, err := newQuoteClient().FetchQuote(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintf(w, "symbol\t%s\n", args[0])
		fmt.Fprintf(w, "current\t%s\n", q.CurrentPrice)
		fmt.Fprintf(w, "change\t%s (%s%%)\n", q.Change, q.PercentChange)
		fmt.Fprintf(w, "high/low\t%s / %s\n", q.HighPrice, q.LowPrice)
		fmt.Fprintf(w, "open\t%s\n", q.OpenPrice)
		fmt.Fprintf(w, "prev close\t%s\n", q.PreviousClosePrice)
		fmt.Fprintf(w, "time\t%s\n", q.Time().Format("2006-01-02T15:04:05Z07:00"))
		return w.Flush()
	},
}
