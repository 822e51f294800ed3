package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS symbols (
		id         UUID PRIMARY KEY,
		code       TEXT NOT NULL UNIQUE,
		is_active  BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS stock_prices (
		id         UUID PRIMARY KEY,
		symbol_id  UUID NOT NULL REFERENCES symbols(id),
		price      NUMERIC(20, 6) NOT NULL,
		ts         TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_stock_prices_symbol_ts ON stock_prices (symbol_id, ts DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_symbols_active ON symbols (is_active) WHERE is_active`,
}

// Migrate creates the schema if it does not exist
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	log.Info().Int("statements", len(schemaStatements)).Msg("PostgreSQL schema is up to date")
	return nil
}
