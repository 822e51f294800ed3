package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/swiss1111/advanced-stock-price-checker/internal/domain/stock"
)

// SymbolRepository is a mock type for the stock.SymbolRepository type
type SymbolRepository struct {
	mock.Mock
}

func (m *SymbolRepository) ListActive(ctx context.Context) ([]stock.Symbol, error) {
	args := m.Called(ctx)
	symbols, _ := args.Get(0).([]stock.Symbol)
	return symbols, args.Error(1)
}

func (m *SymbolRepository) GetByCode(ctx context.Context, code string) (*stock.Symbol, error) {
	args := m.Called(ctx, code)
	symbol, _ := args.Get(0).(*stock.Symbol)
	return symbol, args.Error(1)
}

func (m *SymbolRepository) Activate(ctx context.Context, code string) error {
	return m.Called(ctx, code).Error(0)
}

// NewSymbolRepository creates a mock and registers its expectation assertion
func NewSymbolRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *SymbolRepository {
	m := &SymbolRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
