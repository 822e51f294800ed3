package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/swiss1111/advanced-stock-price-checker/internal/api/response"
	"github.com/swiss1111/advanced-stock-price-checker/internal/domain/stock"
	"github.com/swiss1111/advanced-stock-price-checker/internal/pkg/logger"
)

// LastUpdateLayout is ISO-8601 with milliseconds in UTC
const LastUpdateLayout = "2006-01-02T15:04:05.000Z07:00"

// StockService is what the stock endpoints need from the service layer
type StockService interface {
	GetStockData(ctx context.Context, code string) (*stock.StockData, error)
	GetQuote(ctx context.Context, code string) (*stock.QuoteSnapshot, error)
	ActivateSymbol(ctx context.Context, code string) error
}

// StockHandler handles /stock/{symbol} requests
type StockHandler struct {
	service  StockService
	validate *validator.Validate
}

// NewStockHandler creates a new StockHandler
func NewStockHandler(service StockService) *StockHandler {
	return &StockHandler{
		service:  service,
		validate: newValidator(),
	}
}

// StockDataResponse is the body of GET /stock/{symbol}
type StockDataResponse struct {
	CurrentPrice  float64 `json:"currentPrice"`
	LastUpdate    string  `json:"lastUpdate"`
	MovingAverage float64 `json:"movingAverage"`
}

// QuoteResponse is the body of GET /stock/{symbol}/quote
type QuoteResponse struct {
	CurrentPrice       float64 `json:"currentPrice"`
	Change             float64 `json:"change"`
	PercentChange      float64 `json:"percentChange"`
	HighPrice          float64 `json:"highPrice"`
	LowPrice           float64 `json:"lowPrice"`
	OpenPrice          float64 `json:"openPrice"`
	PreviousClosePrice float64 `json:"previousClosePrice"`
	Timestamp          int64   `json:"timestamp"` // epoch seconds
}

// GetStockData handles GET /stock/{symbol}
func (h *StockHandler) GetStockData(w http.ResponseWriter, r *http.Request) {
	symbol, ok := h.symbolParam(w, r)
	if !ok {
		return
	}

	data, err := h.service.GetStockData(r.Context(), symbol)
	if err != nil {
		h.writeError(w, r, symbol, err)
		return
	}

	response.OK(w, StockDataResponse{
		CurrentPrice:  data.CurrentPrice.InexactFloat64(),
		LastUpdate:    data.LastUpdate.UTC().Format(LastUpdateLayout),
		MovingAverage: data.MovingAverage.InexactFloat64(),
	})
}

// GetQuote handles GET /stock/{symbol}/quote
func (h *StockHandler) GetQuote(w http.ResponseWriter, r *http.Request) {
	symbol, ok := h.symbolParam(w, r)
	if !ok {
		return
	}

	quote, err := h.service.GetQuote(r.Context(), symbol)
	if err != nil {
		h.writeError(w, r, symbol, err)
		return
	}

	response.OK(w, QuoteResponse{
		CurrentPrice:       quote.CurrentPrice.InexactFloat64(),
		Change:             quote.Change.InexactFloat64(),
		PercentChange:      quote.PercentChange.InexactFloat64(),
		HighPrice:          quote.HighPrice.InexactFloat64(),
		LowPrice:           quote.LowPrice.InexactFloat64(),
		OpenPrice:          quote.OpenPrice.InexactFloat64(),
		PreviousClosePrice: quote.PreviousClosePrice.InexactFloat64(),
		Timestamp:          quote.TimestampSeconds,
	})
}

// ActivateSymbol handles PUT /stock/{symbol}
func (h *StockHandler) ActivateSymbol(w http.ResponseWriter, r *http.Request) {
	symbol, ok := h.symbolParam(w, r)
	if !ok {
		return
	}

	if err := h.service.ActivateSymbol(r.Context(), symbol); err != nil {
		h.writeError(w, r, symbol, err)
		return
	}

	response.Message(w, fmt.Sprintf("Symbol '%s' activated successfully", symbol))
}

func (h *StockHandler) symbolParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	symbol := mux.Vars(r)["symbol"]

	if err := h.validate.Var(symbol, "required,symbol"); err != nil {
		var fields []response.FieldError
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			for _, fe := range ve {
				fields = append(fields, response.FieldError{Field: "symbol", Message: "failed on '" + fe.Tag() + "'"})
			}
		}
		response.ValidationError(w, r, fmt.Sprintf("Invalid stock symbol '%s'", symbol), fields)
		return "", false
	}
	return symbol, true
}

// writeError maps domain errors to HTTP statuses
func (h *StockHandler) writeError(w http.ResponseWriter, r *http.Request, symbol string, err error) {
	var upstream *stock.UpstreamError

	switch {
	case errors.Is(err, stock.ErrInvalidUpstreamData):
		response.Error(w, r, http.StatusBadRequest, response.ErrCodeInvalidAPIData, "Invalid data from Finnhub API")
	case errors.As(err, &upstream):
		logger.Ctx(r.Context()).Warn().Err(err).Str("symbol", symbol).Msg("Upstream quote request failed")
		response.Error(w, r, upstreamStatus(upstream.StatusCode), response.ErrCodeExternalAPIError, "Error retrieving stock price")
	case errors.Is(err, stock.ErrUpstreamUnavailable):
		response.Error(w, r, http.StatusInternalServerError, response.ErrCodeExternalAPIError, "Error retrieving stock price")
	case errors.Is(err, stock.ErrSymbolNotFound):
		response.NotFound(w, r, fmt.Sprintf("Symbol '%s' not found", symbol))
	case errors.Is(err, stock.ErrNoPriceData):
		response.NotFound(w, r, fmt.Sprintf("No price data available for symbol '%s'", symbol))
	case errors.Is(err, stock.ErrActivationFailed):
		logger.Ctx(r.Context()).Error().Err(err).Str("symbol", symbol).Msg("Symbol activation failed")
		response.Error(w, r, http.StatusBadRequest, response.ErrCodeActivationFailed, "Error activating symbol")
	default:
		response.InternalError(w, r, err)
	}
}

// upstreamStatus passes the quote API status through. An upstream 404 means
// the quote endpoint itself is missing, so it is reported as a server error
// rather than as an unknown symbol.
func upstreamStatus(status int) int {
	if status == http.StatusNotFound || status < 400 {
		return http.StatusInternalServerError
	}
	return status
}
