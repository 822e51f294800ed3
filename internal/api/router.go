package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/swiss1111/advanced-stock-price-checker/internal/api/docs"
	"github.com/swiss1111/advanced-stock-price-checker/internal/api/handlers"
	"github.com/swiss1111/advanced-stock-price-checker/internal/api/middleware"
	"github.com/swiss1111/advanced-stock-price-checker/internal/api/response"
	"github.com/swiss1111/advanced-stock-price-checker/internal/api/routes"
	"github.com/swiss1111/advanced-stock-price-checker/internal/pkg/config"
	"github.com/swiss1111/advanced-stock-price-checker/internal/pkg/logger"
)

// Router holds all dependencies for API routing
type Router struct {
	mux           *mux.Router
	handler       http.Handler
	config        *config.Config
	version       string
	healthHandler *handlers.HealthHandler
	stockHandler  *handlers.StockHandler
}

// NewRouter creates a new API router with all dependencies
func NewRouter(cfg *config.Config, stockService handlers.StockService, db handlers.HealthChecker, version string) (*Router, error) {
	router := &Router{
		mux:           mux.NewRouter(),
		config:        cfg,
		version:       version,
		healthHandler: handlers.NewHealthHandler(db, version),
		stockHandler:  handlers.NewStockHandler(stockService),
	}

	if err := router.setupRoutes(); err != nil {
		return nil, err
	}
	router.setupMiddlewares()

	return router, nil
}

// setupMiddlewares wraps the mux; the outermost runs first
func (r *Router) setupMiddlewares() {
	accessLogger := logger.NewAccessLogger(
		r.config.Logging.FilePath,
		r.config.Logging.RotationSize,
		r.config.Logging.RetentionDays,
	)
	if !r.config.Logging.FileEnabled {
		accessLogger = log.Logger
	}

	cors := middleware.CORS(middleware.DefaultCORSConfig())
	if r.config.Server.Mode == "debug" {
		cors = middleware.CORS(middleware.DevelopmentCORSConfig())
	}

	var h http.Handler = r.mux
	h = middleware.Logging(middleware.LoggingConfig{
		AccessLogger: &accessLogger,
		SkipPaths:    []string{"/health", "/health/ready"},
	})(h)
	h = middleware.Recovery(h)
	h = middleware.RequestID(h)
	h = cors(h)
	r.handler = h
}

// setupRoutes configures all API routes
func (r *Router) setupRoutes() error {
	routes.RegisterHealthRoutes(r.mux, r.healthHandler)
	routes.RegisterStockRoutes(r.mux, r.stockHandler)

	if r.config.Server.SwaggerURL != "" {
		docsHandler, err := docs.NewHandler(r.config.Server.SwaggerURL, docs.NewDocument(r.version))
		if err != nil {
			return err
		}
		routes.RegisterDocsRoutes(r.mux, r.config.Server.SwaggerURL, docsHandler)
	}

	r.mux.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		response.NotFound(w, req, "Cannot "+req.Method+" "+req.URL.Path)
	})
	r.mux.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		response.Error(w, req, http.StatusMethodNotAllowed, response.ErrCodeInvalidParameter, "Method not allowed")
	})
	return nil
}

// Handler returns the fully wrapped HTTP handler
func (r *Router) Handler() http.Handler {
	return r.handler
}
