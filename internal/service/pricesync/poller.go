package pricesync

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/swiss1111/advanced-stock-price-checker/internal/domain/stock"
)

// cronParser accepts 5- or 6-field expressions (seconds optional) and descriptors
var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// ParseSchedule validates a cron expression
func ParseSchedule(expr string) (cron.Schedule, error) {
	schedule, err := cronParser.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidSchedule, expr, err)
	}
	return schedule, nil
}

// Poller periodically fetches a quote for every active symbol and stores it
type Poller struct {
	symbols stock.SymbolRepository
	prices  stock.PriceRepository
	quotes  stock.QuoteFetcher
	logger  zerolog.Logger

	running atomic.Bool

	mu     sync.Mutex
	cron   *cron.Cron
	ctx    context.Context
	cancel context.CancelFunc
}

// NewPoller creates a new Poller
func NewPoller(symbols stock.SymbolRepository, prices stock.PriceRepository, quotes stock.QuoteFetcher, logger zerolog.Logger) *Poller {
	return &Poller{
		symbols: symbols,
		prices:  prices,
		quotes:  quotes,
		logger:  logger.With().Str("component", "poller").Logger(),
	}
}

// Start schedules ticks with the given cron expression.
// A malformed expression is returned and nothing is scheduled.
func (p *Poller) Start(ctx context.Context, expr string) error {
	schedule, err := ParseSchedule(expr)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cron != nil {
		return ErrAlreadyStarted
	}

	p.ctx, p.cancel = context.WithCancel(ctx)
	p.cron = cron.New(
		cron.WithParser(cronParser),
		cron.WithLogger(cronLogger{p.logger}),
		cron.WithChain(cron.Recover(cronLogger{p.logger})),
	)
	p.cron.Schedule(schedule, cron.FuncJob(func() {
		p.RunTick(p.ctx)
	}))
	p.cron.Start()

	p.logger.Info().Str("cron", expr).Msg("Price poller started")
	return nil
}

// Stop halts scheduling, cancels a running tick and waits for it to return
func (p *Poller) Stop() {
	p.mu.Lock()
	c, cancel := p.cron, p.cancel
	p.cron = nil
	p.mu.Unlock()

	if c == nil {
		return
	}
	done := c.Stop()
	cancel()
	<-done.Done()

	p.logger.Info().Msg("Price poller stopped")
}

// RunTick polls every active symbol once. It returns false when another
// tick is still in flight and this one was skipped.
func (p *Poller) RunTick(ctx context.Context) bool {
	if !p.running.CompareAndSwap(false, true) {
		p.logger.Warn().Msg("Previous tick still running, skipping")
		return false
	}
	defer p.running.Store(false)

	start := time.Now()

	symbols, err := p.symbols.ListActive(ctx)
	if err != nil {
		p.logger.Error().Err(err).Msg("Failed to list active symbols")
		return true
	}
	if len(symbols) == 0 {
		p.logger.Info().Msg("No active symbol to poll")
		return true
	}

	var stored int
	for _, sym := range symbols {
		if err := p.pollSymbol(ctx, sym); err != nil {
			p.logger.Error().Err(err).Str("symbol", sym.Code).Msg("Failed to poll symbol")
			continue
		}
		stored++
	}

	p.logger.Debug().
		Int("symbols", len(symbols)).
		Int("stored", stored).
		Dur("duration", time.Since(start)).
		Msg("Tick completed")
	return true
}

func (p *Poller) pollSymbol(ctx context.Context, sym stock.Symbol) error {
	quote, err := p.quotes.FetchQuote(ctx, sym.Code)
	if err != nil {
		return err
	}
	return p.prices.Append(ctx, sym.ID, quote.CurrentPrice, quote.Time())
}

// cronLogger adapts zerolog to cron.Logger
type cronLogger struct {
	logger zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
