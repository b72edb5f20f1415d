package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerr "github.com/crownplay/casino-engine/internal/domain/error"
	coreport "github.com/crownplay/casino-engine/internal/domain/port/core"
	"github.com/crownplay/casino-engine/internal/infrastructure/adapter/api/dto"
)

// httpStatus maps domain errors to HTTP status codes
func httpStatus(err error) int {
	switch {
	case errors.Is(err, domainerr.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, domainerr.ErrBanned), errors.Is(err, domainerr.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domainerr.ErrAccountNotFound),
		errors.Is(err, domainerr.ErrWalletNotFound),
		errors.Is(err, domainerr.ErrSettlementNotFound),
		errors.Is(err, domainerr.ErrNoGameAvailable):
		return http.StatusNotFound
	case errors.Is(err, domainerr.ErrDuplicateToken),
		errors.Is(err, domainerr.ErrAlreadyClaimedToday):
		return http.StatusConflict
	case errors.Is(err, domainerr.ErrBusy), errors.Is(err, domainerr.ErrConflictRetry):
		return http.StatusLocked
	case errors.Is(err, domainerr.ErrInsufficientFunds),
		errors.Is(err, domainerr.ErrBelowMinimum),
		errors.Is(err, domainerr.ErrInvalidBet),
		errors.Is(err, domainerr.ErrInvalidFormat),
		errors.Is(err, domainerr.ErrInvalidToken),
		errors.Is(err, domainerr.ErrInvalidGameType):
		return http.StatusBadRequest
	case errors.Is(err, domainerr.ErrPersistenceUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the standardized error body for a domain error. Server
// errors hide the underlying message.
func respondError(c *gin.Context, logger coreport.Logger, err error) {
	status := httpStatus(err)
	message := err.Error()
	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", map[string]any{
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
			"error":  err.Error(),
		})
		message = "Internal server error"
	}
	c.JSON(status, dto.ErrorResponse{
		Code:    domainerr.ErrorCode(err),
		Message: message,
	})
}

// respondBadRequest writes a 400 for malformed request bodies
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Code:    domainerr.CodeInvalidFormat,
		Message: message,
	})
}
