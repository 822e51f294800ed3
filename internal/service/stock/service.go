package stock

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	"github.com/swiss1111/advanced-stock-price-checker/internal/domain/stock"
)

// Service implements the read and activation operations of the stock API
type Service struct {
	symbols stock.SymbolRepository
	prices  stock.PriceRepository
	quotes  stock.QuoteFetcher

	// collapses concurrent live fetches of the same code
	sf singleflight.Group
}

// NewService creates a new stock service
func NewService(symbols stock.SymbolRepository, prices stock.PriceRepository, quotes stock.QuoteFetcher) *Service {
	return &Service{
		symbols: symbols,
		prices:  prices,
		quotes:  quotes,
	}
}

// GetQuote returns the live upstream quote for code.
// The shared fetch is detached from any single caller, so one caller giving
// up does not fail the others that joined it.
func (s *Service) GetQuote(ctx context.Context, code string) (*stock.QuoteSnapshot, error) {
	fetchCtx := context.WithoutCancel(ctx)
	ch := s.sf.DoChan(code, func() (interface{}, error) {
		return s.quotes.FetchQuote(fetchCtx, code)
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-ch:
	}
	if res.Err != nil {
		return nil, res.Err
	}
	if res.Shared {
		log.Debug().Str("symbol", code).Msg("Live quote shared with concurrent request")
	}

	quote := *res.Val.(*stock.QuoteSnapshot)
	return &quote, nil
}

// MovingAverage averages the most recent stock.MovingAverageWindow prices of code
func (s *Service) MovingAverage(ctx context.Context, code string) (decimal.Decimal, error) {
	sym, err := s.symbols.GetByCode(ctx, code)
	if err != nil {
		return decimal.Zero, err
	}
	return s.average(ctx, sym)
}

func (s *Service) average(ctx context.Context, sym *stock.Symbol) (decimal.Decimal, error) {
	avg, err := s.prices.MovingAverage(ctx, sym.ID, stock.MovingAverageWindow)
	if err != nil {
		return decimal.Zero, err
	}
	if !avg.Valid {
		return decimal.Zero, fmt.Errorf("%w for symbol '%s'", stock.ErrNoPriceData, sym.Code)
	}
	return avg.Decimal, nil
}

// GetStockData combines the live price, the moving average and the
// timestamp of the latest stored observation. The first failing step
// aborts the rest.
func (s *Service) GetStockData(ctx context.Context, code string) (*stock.StockData, error) {
	quote, err := s.GetQuote(ctx, code)
	if err != nil {
		return nil, err
	}

	sym, err := s.symbols.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	avg, err := s.average(ctx, sym)
	if err != nil {
		return nil, err
	}

	latest, err := s.prices.Latest(ctx, sym.ID)
	if err != nil {
		return nil, err
	}
	if latest == nil {
		return nil, fmt.Errorf("%w for symbol '%s'", stock.ErrNoPriceData, code)
	}

	return &stock.StockData{
		CurrentPrice:  quote.CurrentPrice,
		LastUpdate:    latest.Timestamp,
		MovingAverage: avg,
	}, nil
}

// ActivateSymbol marks code for polling, creating it when unknown
func (s *Service) ActivateSymbol(ctx context.Context, code string) error {
	if err := s.symbols.Activate(ctx, code); err != nil {
		return err
	}
	log.Info().Str("symbol", code).Msg("Symbol activated")
	return nil
}
