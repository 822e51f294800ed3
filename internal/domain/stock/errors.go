package stock

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
)

// Domain errors
var (
	// Upstream quote API errors
	ErrInvalidUpstreamData = errors.New("invalid data from Finnhub API")
	ErrUpstreamUnavailable = errors.New("error retrieving stock price")

	// Lookup errors
	ErrSymbolNotFound = errors.New("symbol not found")
	ErrNoPriceData    = errors.New("no price data available")
	ErrInvalidSymbol  = errors.New("invalid stock symbol format")

	// Storage errors
	ErrActivationFailed = errors.New("error activating symbol")
	ErrPersistence      = errors.New("price persistence failed")
	ErrDatabaseQuery    = errors.New("database query failed")
)

// UpstreamError is a transport failure or non-success response from the quote API
type UpstreamError struct {
	StatusCode int // upstream HTTP status, 500 when unknown
	Err        error
}

// NewUpstreamError builds an UpstreamError, defaulting the status to 500
func NewUpstreamError(statusCode int, err error) *UpstreamError {
	if statusCode == 0 {
		statusCode = http.StatusInternalServerError
	}
	return &UpstreamError{StatusCode: statusCode, Err: err}
}

func (e *UpstreamError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: status=%d", ErrUpstreamUnavailable, e.StatusCode)
	}
	return fmt.Sprintf("%s: status=%d: %v", ErrUpstreamUnavailable, e.StatusCode, e.Err)
}

// Unwrap lets errors.Is match both ErrUpstreamUnavailable and the cause
func (e *UpstreamError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrUpstreamUnavailable}
	}
	return []error{ErrUpstreamUnavailable, e.Err}
}

// symbols are passed to Finnhub as-is; only whitespace and URL delimiters are refused
var symbolPattern = regexp.MustCompile(`^[^\s/?#]{1,64}$`)

// ValidateSymbol checks the shape of a symbol code
func ValidateSymbol(code string) bool {
	return symbolPattern.MatchString(code)
}

// IsNotFoundError checks if the error maps to a missing resource
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrSymbolNotFound) || errors.Is(err, ErrNoPriceData)
}
