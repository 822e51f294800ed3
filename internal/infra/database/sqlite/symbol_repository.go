package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/swiss1111/advanced-stock-price-checker/internal/domain/stock"
)

// SymbolRepository implements stock.SymbolRepository on SQLite
type SymbolRepository struct {
	db *sql.DB
}

func NewSymbolRepository(store *Store) *SymbolRepository {
	return &SymbolRepository{db: store.db}
}

func (r *SymbolRepository) ListActive(ctx context.Context) ([]stock.Symbol, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, code, is_active, created_at, updated_at
		FROM symbols
		WHERE is_active = 1`)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", stock.ErrDatabaseQuery, err)
	}
	defer rows.Close()

	var out []stock.Symbol
	for rows.Next() {
		s, err := scanSymbol(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", stock.ErrDatabaseQuery, err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", stock.ErrDatabaseQuery, err)
	}
	return out, nil
}

func (r *SymbolRepository) GetByCode(ctx context.Context, code string) (*stock.Symbol, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, code, is_active, created_at, updated_at
		FROM symbols
		WHERE code = ?`, code)

	s, err := scanSymbol(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, stock.ErrSymbolNotFound
		}
		return nil, fmt.Errorf("%w: %v", stock.ErrDatabaseQuery, err)
	}
	return &s, nil
}

func (r *SymbolRepository) Activate(ctx context.Context, code string) error {
	now := time.Now().UTC().UnixNano()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO symbols (id, code, is_active, created_at, updated_at)
		VALUES (?, ?, 1, ?, ?)
		ON CONFLICT(code) DO UPDATE SET
			is_active = 1,
			updated_at = excluded.updated_at`,
		uuid.NewString(), code, now, now)
	if err != nil {
		return fmt.Errorf("%w: %v", stock.ErrActivationFailed, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSymbol(row rowScanner) (stock.Symbol, error) {
	var (
		s                    stock.Symbol
		id                   string
		createdAt, updatedAt int64
	)
	if err := row.Scan(&id, &s.Code, &s.IsActive, &createdAt, &updatedAt); err != nil {
		return stock.Symbol{}, err
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return stock.Symbol{}, fmt.Errorf("parse symbol id: %w", err)
	}
	s.ID = parsed
	s.CreatedAt = time.Unix(0, createdAt).UTC()
	s.UpdatedAt = time.Unix(0, updatedAt).UTC()
	return s, nil
}
