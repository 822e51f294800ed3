package routes

import (
	"github.com/gorilla/mux"

	"github.com/swiss1111/advanced-stock-price-checker/internal/api/handlers"
)

// RegisterHealthRoutes registers liveness, readiness and detailed health checks
func RegisterHealthRoutes(router *mux.Router, healthHandler *handlers.HealthHandler) {
	router.HandleFunc("/health", healthHandler.Health).Methods("GET")
	router.HandleFunc("/health/ready", healthHandler.Ready).Methods("GET")
	router.HandleFunc("/api/health/detailed", healthHandler.Detailed).Methods("GET")
}
