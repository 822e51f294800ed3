package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/swiss1111/advanced-stock-price-checker/internal/domain/stock"
)

// PriceRepository implements stock.PriceRepository on SQLite.
// Prices are stored as decimal strings, observation times as unix milliseconds.
type PriceRepository struct {
	db *sql.DB
}

func NewPriceRepository(store *Store) *PriceRepository {
	return &PriceRepository{db: store.db}
}

func (r *PriceRepository) Append(ctx context.Context, symbolID uuid.UUID, price decimal.Decimal, ts time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO stock_prices (id, symbol_id, price, ts, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		uuid.NewString(), symbolID.String(), price.String(), ts.UnixMilli(), time.Now().UTC().UnixNano())
	if err != nil {
		return fmt.Errorf("%w: %v", stock.ErrPersistence, err)
	}
	return nil
}

func (r *PriceRepository) Latest(ctx context.Context, symbolID uuid.UUID) (*stock.PriceObservation, error) {
	var (
		o              stock.PriceObservation
		id, sid, price string
		ts, createdAt  int64
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, symbol_id, price, ts, created_at
		FROM stock_prices
		WHERE symbol_id = ?
		ORDER BY ts DESC
		LIMIT 1`, symbolID.String()).Scan(&id, &sid, &price, &ts, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", stock.ErrDatabaseQuery, err)
	}

	if o.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: %v", stock.ErrDatabaseQuery, err)
	}
	if o.SymbolID, err = uuid.Parse(sid); err != nil {
		return nil, fmt.Errorf("%w: %v", stock.ErrDatabaseQuery, err)
	}
	if o.Price, err = decimal.NewFromString(price); err != nil {
		return nil, fmt.Errorf("%w: %v", stock.ErrDatabaseQuery, err)
	}
	o.Timestamp = time.UnixMilli(ts).UTC()
	o.CreatedAt = time.Unix(0, createdAt).UTC()
	return &o, nil
}

// MovingAverage averages the window most recent prices in one query.
// SQLite averages in floating point.
func (r *PriceRepository) MovingAverage(ctx context.Context, symbolID uuid.UUID, window int) (decimal.NullDecimal, error) {
	var avg sql.NullFloat64
	err := r.db.QueryRowContext(ctx, `
		SELECT AVG(CAST(recent.price AS REAL))
		FROM (
			SELECT price
			FROM stock_prices
			WHERE symbol_id = ?
			ORDER BY ts DESC
			LIMIT ?
		) AS recent`, symbolID.String(), window).Scan(&avg)
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("%w: %v", stock.ErrDatabaseQuery, err)
	}
	if !avg.Valid {
		return decimal.NullDecimal{}, nil
	}
	return decimal.NewNullDecimal(decimal.NewFromFloat(avg.Float64)), nil
}
