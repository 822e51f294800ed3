// Package store opens the configured database backend and hands out
// its repositories behind the domain interfaces.
package store

import (
	"context"
	"fmt"

	"github.com/swiss1111/advanced-stock-price-checker/internal/domain/stock"
	"github.com/swiss1111/advanced-stock-price-checker/internal/infra/database"
	"github.com/swiss1111/advanced-stock-price-checker/internal/infra/database/postgres"
	"github.com/swiss1111/advanced-stock-price-checker/internal/infra/database/sqlite"
	"github.com/swiss1111/advanced-stock-price-checker/internal/pkg/config"
)

// Store bundles the repositories of one backend
type Store struct {
	Driver  string
	Symbols stock.SymbolRepository
	Prices  stock.PriceRepository

	health func(ctx context.Context) *database.HealthStatus
	close  func()
}

// Open connects to the backend named by cfg.Database.Driver
func Open(ctx context.Context, cfg *config.Config) (*Store, error) {
	switch cfg.Database.Driver {
	case "postgres":
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return &Store{
			Driver:  "postgres",
			Symbols: postgres.NewSymbolRepository(pool.Pool),
			Prices:  postgres.NewPriceRepository(pool.Pool),
			health:  pool.Health,
			close:   pool.Close,
		}, nil

	case "sqlite":
		db, err := sqlite.Open(cfg.Database.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &Store{
			Driver:  "sqlite",
			Symbols: sqlite.NewSymbolRepository(db),
			Prices:  sqlite.NewPriceRepository(db),
			health:  db.Health,
			close:   func() { _ = db.Close() },
		}, nil

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}

// Migrate applies the schema regardless of DB_AUTO_MIGRATE
func Migrate(ctx context.Context, cfg *config.Config) error {
	if cfg.Database.Driver == "postgres" {
		migrateCfg := *cfg
		migrateCfg.Database.AutoMigrate = true
		cfg = &migrateCfg
	}
	s, err := Open(ctx, cfg)
	if err != nil {
		return err
	}
	s.Close()
	return nil
}

// Health reports the backend status
func (s *Store) Health(ctx context.Context) *database.HealthStatus {
	return s.health(ctx)
}

// Close releases the backend connections
func (s *Store) Close() {
	if s.close != nil {
		s.close()
	}
}
