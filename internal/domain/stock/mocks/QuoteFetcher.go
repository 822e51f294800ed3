package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/swiss1111/advanced-stock-price-checker/internal/domain/stock"
)

// QuoteFetcher is a mock type for the stock.QuoteFetcher type
type QuoteFetcher struct {
	mock.Mock
}

func (m *QuoteFetcher) FetchQuote(ctx context.Context, code string) (*stock.QuoteSnapshot, error) {
	args := m.Called(ctx, code)
	quote, _ := args.Get(0).(*stock.QuoteSnapshot)
	return quote, args.Error(1)
}

// NewQuoteFetcher creates a mock and registers its expectation assertion
func NewQuoteFetcher(t interface {
	mock.TestingT
	Cleanup(func())
}) *QuoteFetcher {
	m := &QuoteFetcher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
