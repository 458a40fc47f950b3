package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"checkout/internal/repository"
	"checkout/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound),
		errors.Is(err, service.ErrSessionNotFound):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.Is(err, service.ErrPromoCodeRequired),
		errors.Is(err, service.ErrInvalidUserID),
		errors.Is(err, service.ErrInvalidCartAmount),
		errors.Is(err, service.ErrInvalidDiscountType),
		errors.Is(err, service.ErrInvalidDiscountValue),
		errors.Is(err, service.ErrInvalidMaxUsage),
		errors.Is(err, service.ErrInvalidPackageID),
		errors.Is(err, service.ErrInvalidSessionID):
		return http.StatusBadRequest

	// Conflict errors
	case errors.Is(err, service.ErrPaymentInProgress),
		errors.Is(err, service.ErrSessionClosed),
		errors.Is(err, repository.ErrUsageExhausted),
		errors.Is(err, repository.ErrDuplicateCode):
		return http.StatusConflict

	// Upstream payment integration failures
	case errors.Is(err, service.ErrNoRedirectURL),
		errors.Is(err, service.ErrPaymentInitiation):
		return http.StatusBadGateway

	// Service unavailable
	case errors.Is(err, service.ErrPromoLookupUnavailable):
		return http.StatusServiceUnavailable

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
