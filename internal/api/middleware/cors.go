package middleware

import (
	"net/http"

	gorillaHandlers "github.com/gorilla/handlers"
)

// CORSConfig holds CORS configuration
type CORSConfig struct {
	AllowOrigins     []string
	AllowMethods     []string
	AllowHeaders     []string
	ExposeHeaders    []string
	AllowCredentials bool
	MaxAge           int
}

// DefaultCORSConfig returns default CORS configuration
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "PUT", "OPTIONS"},
		AllowHeaders:  []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposeHeaders: []string{"X-Request-ID"},
		MaxAge:        600, // gorilla caps preflight caching at 10 minutes
	}
}

// DevelopmentCORSConfig returns CORS configuration for development
func DevelopmentCORSConfig() CORSConfig {
	cfg := DefaultCORSConfig()
	cfg.AllowOrigins = []string{"http://localhost:3000", "http://localhost:3099"}
	cfg.AllowCredentials = true
	return cfg
}

// CORS wraps gorilla/handlers CORS with config
func CORS(config CORSConfig) func(http.Handler) http.Handler {
	opts := []gorillaHandlers.CORSOption{
		gorillaHandlers.AllowedOrigins(config.AllowOrigins),
		gorillaHandlers.AllowedMethods(config.AllowMethods),
		gorillaHandlers.AllowedHeaders(config.AllowHeaders),
		gorillaHandlers.ExposedHeaders(config.ExposeHeaders),
		gorillaHandlers.MaxAge(config.MaxAge),
	}
	if config.AllowCredentials {
		opts = append(opts, gorillaHandlers.AllowCredentials())
	}
	return gorillaHandlers.CORS(opts...)
}
