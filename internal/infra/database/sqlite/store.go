package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"github.com/swiss1111/advanced-stock-price-checker/internal/infra/database"
)

// Store is an embedded SQLite database holding symbols and prices
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and migrates it.
// ":memory:" opens a private in-memory database.
func Open(path string) (*Store, error) {
	if path == "" {
		path = "data/stock.db"
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// one connection keeps :memory: databases shared and serializes writers
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA busy_timeout=3000;",
		"PRAGMA foreign_keys=ON;",
	} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}

	log.Info().Str("path", path).Msg("SQLite store opened")
	return store, nil
}

// DB exposes the underlying handle
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS symbols (
			id TEXT PRIMARY KEY,
			code TEXT NOT NULL UNIQUE,
			is_active INTEGER NOT NULL DEFAULT 0,
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS stock_prices (
			id TEXT PRIMARY KEY,
			symbol_id TEXT NOT NULL REFERENCES symbols(id),
			price TEXT NOT NULL,
			ts INTEGER NOT NULL,
			created_at INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_stock_prices_symbol_ts ON stock_prices(symbol_id, ts DESC);`,
		`CREATE INDEX IF NOT EXISTS idx_symbols_active ON symbols(is_active);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("migrate sqlite: %w", err)
		}
	}
	return nil
}

// Health pings the database
func (s *Store) Health(ctx context.Context) *database.HealthStatus {
	start := time.Now()
	status := &database.HealthStatus{
		Driver:    "sqlite",
		Status:    database.StatusHealthy,
		CheckedAt: start,
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := s.db.PingContext(pingCtx); err != nil {
		status.Status = database.StatusUnhealthy
		status.Error = fmt.Sprintf("ping failed: %v", err)
	}

	stats := s.db.Stats()
	status.ActiveConns = int32(stats.InUse)
	status.IdleConns = int32(stats.Idle)
	status.TotalConns = int32(stats.OpenConnections)
	status.MaxConns = int32(stats.MaxOpenConnections)
	status.ResponseTime = time.Since(start).String()
	return status
}
