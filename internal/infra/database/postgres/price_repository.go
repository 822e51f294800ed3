package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/swiss1111/advanced-stock-price-checker/internal/domain/stock"
)

// PriceRepository implements stock.PriceRepository using PostgreSQL
type PriceRepository struct {
	pool *pgxpool.Pool
}

// NewPriceRepository creates a new PriceRepository
func NewPriceRepository(pool *pgxpool.Pool) *PriceRepository {
	return &PriceRepository{pool: pool}
}

// Append inserts one immutable price observation
func (r *PriceRepository) Append(ctx context.Context, symbolID uuid.UUID, price decimal.Decimal, ts time.Time) error {
	query := `
		INSERT INTO stock_prices (id, symbol_id, price, ts)
		VALUES ($1, $2, $3, $4)
	`

	if _, err := r.pool.Exec(ctx, query, uuid.New(), symbolID, price, ts); err != nil {
		return fmt.Errorf("%w: %v", stock.ErrPersistence, err)
	}

	return nil
}

// Latest returns the newest observation for a symbol, nil when none
func (r *PriceRepository) Latest(ctx context.Context, symbolID uuid.UUID) (*stock.PriceObservation, error) {
	query := `
		SELECT id, symbol_id, price, ts, created_at
		FROM stock_prices
		WHERE symbol_id = $1
		ORDER BY ts DESC
		LIMIT 1
	`

	var o stock.PriceObservation
	err := r.pool.QueryRow(ctx, query, symbolID).Scan(
		&o.ID,
		&o.SymbolID,
		&o.Price,
		&o.Timestamp,
		&o.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", stock.ErrDatabaseQuery, err)
	}

	return &o, nil
}

// MovingAverage averages the window most recent prices in a single aggregate query
func (r *PriceRepository) MovingAverage(ctx context.Context, symbolID uuid.UUID, window int) (decimal.NullDecimal, error) {
	query := `
		SELECT AVG(recent.price)
		FROM (
			SELECT price
			FROM stock_prices
			WHERE symbol_id = $1
			ORDER BY ts DESC
			LIMIT $2
		) AS recent
	`

	var avg decimal.NullDecimal
	if err := r.pool.QueryRow(ctx, query, symbolID, window).Scan(&avg); err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("%w: %v", stock.ErrDatabaseQuery, err)
	}

	return avg, nil
}
