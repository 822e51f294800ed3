package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/swiss1111/advanced-stock-price-checker/internal/api"
	"github.com/swiss1111/advanced-stock-price-checker/internal/infra/database/store"
	"github.com/swiss1111/advanced-stock-price-checker/internal/infra/finnhub"
	"github.com/swiss1111/advanced-stock-price-checker/internal/pkg/config"
	"github.com/swiss1111/advanced-stock-price-checker/internal/pkg/logger"
	"github.com/swiss1111/advanced-stock-price-checker/internal/service/pricesync"
	stockservice "github.com/swiss1111/advanced-stock-price-checker/internal/service/stock"
)

const (
	serviceName    = "stock-price-checker-api"
	serviceVersion = "1.0.0"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if err := logger.Init(logger.Config{
		Level:          cfg.Logging.Level,
		Format:         cfg.Logging.Format,
		FileEnabled:    cfg.Logging.FileEnabled,
		FilePath:       cfg.Logging.FilePath,
		RotationSize:   cfg.Logging.RotationSize,
		RetentionDays:  cfg.Logging.RetentionDays,
		ServiceName:    serviceName,
		ServiceVersion: serviceVersion,
	}); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize logger")
	}

	log.Info().
		Str("version", serviceVersion).
		Str("db_driver", cfg.Database.Driver).
		Msg("Starting stock price checker API...")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := store.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer db.Close()

	if cfg.Finnhub.APIKey == "" {
		log.Warn().Msg("FINNHUB_KEY is not set, upstream requests will be rejected")
	}
	quotes := finnhub.NewClient(cfg.Finnhub.APIKey,
		finnhub.WithBaseURL(cfg.Finnhub.BaseURL),
		finnhub.WithTimeout(cfg.Finnhub.Timeout),
	)

	stockSvc := stockservice.NewService(db.Symbols, db.Prices, quotes)

	// a bad schedule disables polling but the API still serves
	poller := pricesync.NewPoller(db.Symbols, db.Prices, quotes, log.Logger)
	if err := poller.Start(ctx, cfg.Poller.CronExpression); err != nil {
		log.Error().Err(err).Msg("Price poller disabled")
	}

	router, err := api.NewRouter(cfg, stockSvc, db, serviceVersion)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build router")
	}

	listener, err := net.Listen("tcp", ":"+cfg.Server.Port)
	if err != nil {
		log.Fatal().Err(err).Str("port", cfg.Server.Port).Msg("Failed to listen")
	}

	server := &http.Server{
		Handler:      router.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("API server failed")
		}
	}()

	url := formatURL("http://" + listener.Addr().String())
	log.Info().Str("url", url).Msg("Server is running")
	if cfg.Server.SwaggerURL != "" {
		log.Info().Str("url", url+cfg.Server.SwaggerURL).Msg("Swagger is running")
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Info().Msg("Shutdown signal received, stopping server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
	}
	poller.Stop()

	log.Info().Msg("Stock price checker API stopped")
}

// formatURL rewrites wildcard and IPv6 loopback hosts to something a browser can open
func formatURL(url string) string {
	url = strings.Replace(url, "[::1]", "localhost", 1)
	url = strings.Replace(url, "[::]", "127.0.0.1", 1)
	return strings.Replace(url, "0.0.0.0", "127.0.0.1", 1)
}
