// Package cmd - stockctl CLI commands
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/swiss1111/advanced-stock-price-checker/internal/infra/database/store"
	"github.com/swiss1111/advanced-stock-price-checker/internal/infra/finnhub"
	"github.com/swiss1111/advanced-stock-price-checker/internal/pkg/config"
	"github.com/swiss1111/advanced-stock-price-checker/internal/pkg/logger"
)

var (
	verbose bool
	driver  string

	cfg *config.Config
)

// rootCmd is the stockctl entry command
var rootCmd = &cobra.Command{
	Use:   "stockctl",
	Short: "Advanced stock price checker - admin CLI",
	Long: `Advanced stock price checker - admin CLI

Usage:
    go run ./cmd/stockctl [command]

Commands:
    migrate             - create the schema
    activate SYMBOL...  - activate symbols for polling
    quote SYMBOL        - fetch a live quote from Finnhub
    average SYMBOL      - print the stored moving average
    poll                - run one poll over all active symbols
`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&driver, "driver", "", "database driver override (postgres|sqlite)")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(activateCmd)
	rootCmd.AddCommand(quoteCmd)
	rootCmd.AddCommand(averageCmd)
	rootCmd.AddCommand(pollCmd)
}

// initConfig loads .env and the environment, then sets up logging
func initConfig() error {
	loaded, err := config.Load()
	if err != nil {
		return err
	}
	if driver != "" {
		loaded.Database.Driver = driver
		if err := loaded.Validate(); err != nil {
			return err
		}
	}
	cfg = loaded

	level := "warn"
	if verbose {
		level = "debug"
	}
	return logger.Init(logger.Config{
		Level:       level,
		Format:      "pretty",
		ServiceName: "stockctl",
	})
}

func openStore(ctx context.Context) (*store.Store, error) {
	s, err := store.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Database.Driver, err)
	}
	return s, nil
}

func newQuoteClient() *finnhub.Client {
	return finnhub.NewClient(cfg.Finnhub.APIKey,
		finnhub.WithBaseURL(cfg.Finnhub.BaseURL),
		finnhub.WithTimeout(cfg.Finnhub.Timeout),
	)
}
