package routes

import (
	"github.com/gorilla/mux"

	"github.com/swiss1111/advanced-stock-price-checker/internal/api/handlers"
)

// RegisterStockRoutes registers the /stock endpoints
func RegisterStockRoutes(router *mux.Router, stockHandler *handlers.StockHandler) {
	stock := router.PathPrefix("/stock").Subrouter()

	stock.HandleFunc("/{symbol}/quote", stockHandler.GetQuote).Methods("GET")
	stock.HandleFunc("/{symbol}", stockHandler.GetStockData).Methods("GET")
	stock.HandleFunc("/{symbol}", stockHandler.ActivateSymbol).Methods("PUT")
}
