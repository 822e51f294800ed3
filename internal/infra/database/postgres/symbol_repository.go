package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/swiss1111/advanced-stock-price-checker/internal/domain/stock"
)

// SymbolRepository implements stock.SymbolRepository using PostgreSQL
type SymbolRepository struct {
	pool *pgxpool.Pool
}

// NewSymbolRepository creates a new SymbolRepository
func NewSymbolRepository(pool *pgxpool.Pool) *SymbolRepository {
	return &SymbolRepository{pool: pool}
}

// ListActive returns all active symbols
func (r *SymbolRepository) ListActive(ctx context.Context) ([]stock.Symbol, error) {
	query := `
		SELECT id, code, is_active, created_at, updated_at
		FROM symbols
		WHERE is_active = TRUE
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", stock.ErrDatabaseQuery, err)
	}

	symbols, err := pgx.CollectRows(rows, scanSymbol)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", stock.ErrDatabaseQuery, err)
	}

	return symbols, nil
}

// GetByCode returns a symbol by its code
func (r *SymbolRepository) GetByCode(ctx context.Context, code string) (*stock.Symbol, error) {
	query := `
		SELECT id, code, is_active, created_at, updated_at
		FROM symbols
		WHERE code = $1
	`

	rows, err := r.pool.Query(ctx, query, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", stock.ErrDatabaseQuery, err)
	}

	s, err := pgx.CollectExactlyOneRow(rows, scanSymbol)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, stock.ErrSymbolNotFound
		}
		return nil, fmt.Errorf("%w: %v", stock.ErrDatabaseQuery, err)
	}

	return &s, nil
}

// Activate upserts the symbol with is_active = TRUE
func (r *SymbolRepository) Activate(ctx context.Context, code string) error {
	query := `
		INSERT INTO symbols (id, code, is_active)
		VALUES ($1, $2, TRUE)
		ON CONFLICT (code) DO UPDATE SET
			is_active = TRUE,
			updated_at = NOW()
	`

	if _, err := r.pool.Exec(ctx, query, uuid.New(), code); err != nil {
		return fmt.Errorf("%w: %v", stock.ErrActivationFailed, err)
	}

	return nil
}

func scanSymbol(row pgx.CollectableRow) (stock.Symbol, error) {
	var s stock.Symbol
	err := row.Scan(&s.ID, &s.Code, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}
