package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swiss1111/advanced-stock-price-checker/internal/domain/stock"
	"github.com/swiss1111/advanced-stock-price-checker/internal/infra/database"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "stock.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestOpen_MigrateIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stock.db")

	first, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, second.Close())
}

func TestHealth(t *testing.T) {
	store := openTestStore(t)

	status := store.Health(context.Background())
	assert.Equal(t, database.StatusHealthy, status.Status)
	assert.Equal(t, "sqlite", status.Driver)
	assert.Empty(t, status.Error)
}

func TestSymbolRepository_ActivateTwice(t *testing.T) {
	ctx := context.Background()
	repo := NewSymbolRepository(openTestStore(t))

	require.NoError(t, repo.Activate(ctx, "AAPL"))
	first, err := repo.GetByCode(ctx, "AAPL")
	require.NoError(t, err)

	require.NoError(t, repo.Activate(ctx, "AAPL"))
	second, err := repo.GetByCode(ctx, "AAPL")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.True(t, second.IsActive)

	active, err := repo.ListActive(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 1)
}

func TestSymbolRepository_GetByCodeNotFound(t *testing.T) {
	repo := NewSymbolRepository(openTestStore(t))

	_, err := repo.GetByCode(context.Background(), "MSFT")
	assert.ErrorIs(t, err, stock.ErrSymbolNotFound)
}

func TestSymbolRepository_ListActiveEmpty(t *testing.T) {
	repo := NewSymbolRepository(openTestStore(t))

	active, err := repo.ListActive(context.Background())
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestPriceRepository(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	symbols := NewSymbolRepository(store)
	prices := NewPriceRepository(store)

	require.NoError(t, symbols.Activate(ctx, "AAPL"))
	sym, err := symbols.GetByCode(ctx, "AAPL")
	require.NoError(t, err)

	t.Run("no observations", func(t *testing.T) {
		latest, err := prices.Latest(ctx, sym.ID)
		require.NoError(t, err)
		assert.Nil(t, latest)

		avg, err := prices.MovingAverage(ctx, sym.ID, stock.MovingAverageWindow)
		require.NoError(t, err)
		assert.False(t, avg.Valid)
	})

	base := time.Date(2024, 11, 26, 17, 0, 0, 0, time.UTC)

	t.Run("fewer than window", func(t *testing.T) {
		for i, p := range []int64{10, 20, 30} {
			require.NoError(t, prices.Append(ctx, sym.ID, decimal.NewFromInt(p), base.Add(time.Duration(i)*time.Minute)))
		}

		avg, err := prices.MovingAverage(ctx, sym.ID, stock.MovingAverageWindow)
		require.NoError(t, err)
		require.True(t, avg.Valid)
		assert.True(t, decimal.NewFromInt(20).Equal(avg.Decimal), avg.Decimal.String())

		latest, err := prices.Latest(ctx, sym.ID)
		require.NoError(t, err)
		require.NotNil(t, latest)
		assert.True(t, decimal.NewFromInt(30).Equal(latest.Price))
		assert.Equal(t, base.Add(2*time.Minute), latest.Timestamp)
	})

	t.Run("window caps at most recent", func(t *testing.T) {
		// 12 more prices 1..12; the last ten are 3..12
		for i := 1; i <= 12; i++ {
			ts := base.Add(time.Hour + time.Duration(i)*time.Minute)
			require.NoError(t, prices.Append(ctx, sym.ID, decimal.NewFromInt(int64(i)), ts))
		}

		avg, err := prices.MovingAverage(ctx, sym.ID, stock.MovingAverageWindow)
		require.NoError(t, err)
		require.True(t, avg.Valid)
		assert.True(t, decimal.NewFromFloat(7.5).Equal(avg.Decimal), avg.Decimal.String())
	})

	t.Run("latest ignores insertion order", func(t *testing.T) {
		require.NoError(t, prices.Append(ctx, sym.ID, decimal.NewFromInt(999), base.Add(-time.Hour)))

		latest, err := prices.Latest(ctx, sym.ID)
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(12).Equal(latest.Price))
	})

	t.Run("timestamps outside the nanosecond range keep their order", func(t *testing.T) {
		far := time.Date(2300, 1, 1, 0, 0, 0, 0, time.UTC)
		require.NoError(t, prices.Append(ctx, sym.ID, decimal.NewFromInt(42), far))
		require.NoError(t, prices.Append(ctx, sym.ID, decimal.NewFromInt(7), time.Date(1600, 1, 1, 0, 0, 0, 0, time.UTC)))

		latest, err := prices.Latest(ctx, sym.ID)
		require.NoError(t, err)
		require.NotNil(t, latest)
		assert.True(t, decimal.NewFromInt(42).Equal(latest.Price))
		assert.Equal(t, far, latest.Timestamp)
	})
}
