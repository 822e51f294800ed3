package stock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SymbolRepository is the symbol registry
type SymbolRepository interface {
	// ListActive returns all active symbols in unspecified order
	ListActive(ctx context.Context) ([]Symbol, error)

	// GetByCode returns ErrSymbolNotFound when the code is unknown
	GetByCode(ctx context.Context, code string) (*Symbol, error)

	// Activate creates the symbol or sets is_active=true; errors wrap ErrActivationFailed
	Activate(ctx context.Context, code string) error
}

// PriceRepository is the append-only price store
type PriceRepository interface {
	// Append inserts one observation; errors wrap ErrPersistence
	Append(ctx context.Context, symbolID uuid.UUID, price decimal.Decimal, ts time.Time) error

	// Latest returns nil when the symbol has no observations
	Latest(ctx context.Context, symbolID uuid.UUID) (*PriceObservation, error)

	// MovingAverage averages the window most recent prices in one query.
	// Valid is false when there are no observations.
	MovingAverage(ctx context.Context, symbolID uuid.UUID, window int) (decimal.NullDecimal, error)
}

// QuoteFetcher retrieves a live quote for a symbol code
type QuoteFetcher interface {
	FetchQuote(ctx context.Context, code string) (*QuoteSnapshot, error)
}
