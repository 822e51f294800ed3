package stock

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MovingAverageWindow is the number of most recent observations averaged per symbol
const MovingAverageWindow = 10

// Symbol represents a tracked instrument
// Maps to symbols table
type Symbol struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Code      string    `json:"code" db:"code"` // unique external handle, e.g. AAPL
	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// PriceObservation is one immutable polled price
// Maps to stock_prices table
type PriceObservation struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	SymbolID  uuid.UUID       `json:"symbol_id" db:"symbol_id"`
	Price     decimal.Decimal `json:"price" db:"price"`
	Timestamp time.Time       `json:"timestamp" db:"ts"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}

// QuoteSnapshot is the normalized form of one upstream quote response.
// It is never persisted.
type QuoteSnapshot struct {
	CurrentPrice       decimal.Decimal
	Change             decimal.Decimal
	PercentChange      decimal.Decimal
	HighPrice          decimal.Decimal
	LowPrice           decimal.Decimal
	OpenPrice          decimal.Decimal
	PreviousClosePrice decimal.Decimal
	TimestampSeconds   int64
}

// Time converts the upstream epoch seconds to an instant
func (q QuoteSnapshot) Time() time.Time {
	return time.Unix(q.TimestampSeconds, 0).UTC()
}

// StockData is the composite read model for one symbol
type StockData struct {
	CurrentPrice  decimal.Decimal
	LastUpdate    time.Time
	MovingAverage decimal.Decimal
}
