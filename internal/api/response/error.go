package response

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/swiss1111/advanced-stock-price-checker/internal/pkg/logger"
)

// ErrorResponse represents an error API response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error details
type ErrorDetail struct {
	Code      string       `json:"code"`
	Message   string       `json:"message"`
	RequestID string       `json:"request_id"`
	Timestamp time.Time    `json:"timestamp"`
	Fields    []FieldError `json:"fields,omitempty"`
}

// FieldError represents a field-level validation error
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error codes
const (
	ErrCodeInternalServer   = "INTERNAL_SERVER_ERROR"
	ErrCodeInvalidParameter = "INVALID_PARAMETER"
	ErrCodeNotFound         = "NOT_FOUND"

	ErrCodeActivationFailed = "ACTIVATION_FAILED"

	// External API errors
	ErrCodeExternalAPIError = "EXTERNAL_API_ERROR"
	ErrCodeInvalidAPIData   = "INVALID_EXTERNAL_DATA"
)

// Error sends an error response
func Error(w http.ResponseWriter, r *http.Request, statusCode int, code, message string) {
	writeError(w, r, statusCode, ErrorDetail{Code: code, Message: message})
}

// ValidationError sends a 400 with field errors
func ValidationError(w http.ResponseWriter, r *http.Request, message string, fields []FieldError) {
	writeError(w, r, http.StatusBadRequest, ErrorDetail{
		Code:    ErrCodeInvalidParameter,
		Message: message,
		Fields:  fields,
	})
}

// NotFound sends a 404 Not Found error
func NotFound(w http.ResponseWriter, r *http.Request, message string) {
	Error(w, r, http.StatusNotFound, ErrCodeNotFound, message)
}

// InternalError sends a 500 and logs the cause
func InternalError(w http.ResponseWriter, r *http.Request, err error) {
	if err != nil {
		logger.Ctx(r.Context()).Error().Err(err).Msg("Internal server error")
	}
	Error(w, r, http.StatusInternalServerError, ErrCodeInternalServer, "An unexpected error occurred")
}

func writeError(w http.ResponseWriter, r *http.Request, statusCode int, detail ErrorDetail) {
	detail.RequestID = logger.RequestID(r.Context())
	detail.Timestamp = time.Now()

	event := log.Warn()
	if statusCode >= 500 {
		event = log.Error()
	}
	event.
		Str("request_id", detail.RequestID).
		Str("error_code", detail.Code).
		Str("message", detail.Message).
		Int("status", statusCode).
		Msg("API error response")

	JSON(w, statusCode, ErrorResponse{Error: detail})
}
