package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/swiss1111/advanced-stock-price-checker/internal/domain/stock"
)

// PriceRepository is a mock type for the stock.PriceRepository type
type PriceRepository struct {
	mock.Mock
}

func (m *PriceRepository) Append(ctx context.Context, symbolID uuid.UUID, price decimal.Decimal, ts time.Time) error {
	return m.Called(ctx, symbolID, price, ts).Error(0)
}

func (m *PriceRepository) Latest(ctx context.Context, symbolID uuid.UUID) (*stock.PriceObservation, error) {
	args := m.Called(ctx, symbolID)
	obs, _ := args.Get(0).(*stock.PriceObservation)
	return obs, args.Error(1)
}

func (m *PriceRepository) MovingAverage(ctx context.Context, symbolID uuid.UUID, window int) (decimal.NullDecimal, error) {
	args := m.Called(ctx, symbolID, window)
	avg, _ := args.Get(0).(decimal.NullDecimal)
	return avg, args.Error(1)
}

// NewPriceRepository creates a mock and registers its expectation assertion
func NewPriceRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *PriceRepository {
	m := &PriceRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
