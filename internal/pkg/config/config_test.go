package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swiss1111/advanced-stock-price-checker/internal/pkg/config"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_PORT", "SERVER_MODE", "SWAGGER_URL", "DB_DRIVER", "DATABASE_URL", "SQLITE_PATH",
		"DB_AUTO_MIGRATE", "LOG_LEVEL", "LOG_FORMAT", "LOG_FILE_ENABLED", "FINNHUB_KEY",
		"FINNHUB_URL", "FINNHUB_TIMEOUT", "CRON_EXPRESSION",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "", cfg.Server.SwaggerURL)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "https://finnhub.io/api/v1", cfg.Finnhub.BaseURL)
	assert.Equal(t, time.Duration(0), cfg.Finnhub.Timeout)
	assert.Equal(t, config.DefaultCronExpression, cfg.Poller.CronExpression)
	assert.False(t, cfg.Database.AutoMigrate)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_PORT", "8080")
	t.Setenv("SWAGGER_URL", "docs")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_AUTO_MIGRATE", "true")
	t.Setenv("FINNHUB_KEY", "secret")
	t.Setenv("FINNHUB_URL", "http://localhost:9999")
	t.Setenv("FINNHUB_TIMEOUT", "5s")
	t.Setenv("CRON_EXPRESSION", "*/30 * * * * *")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "/docs", cfg.Server.SwaggerURL)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.Equal(t, "secret", cfg.Finnhub.APIKey)
	assert.Equal(t, "http://localhost:9999", cfg.Finnhub.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Finnhub.Timeout)
	assert.Equal(t, "*/30 * * * * *", cfg.Poller.CronExpression)
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Run("unknown driver", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("DB_DRIVER", "mysql")

		_, err := config.Load()
		assert.Error(t, err)
	})

	t.Run("bad timeout", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("FINNHUB_TIMEOUT", "soon")

		_, err := config.Load()
		assert.Error(t, err)
	})
}
