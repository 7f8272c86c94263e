package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"scanalyze/internal/currency"
	"scanalyze/internal/gateway"
	"scanalyze/internal/models"
	"scanalyze/internal/service"
	"scanalyze/internal/split"
	"scanalyze/internal/storage"
)

// writeError maps domain errors to HTTP status codes. Validation failures are
// the caller's fault (400), except a fully assigned item which is a state
// conflict (409). Unknown IDs map to 404 and flow service trouble to 502.
func writeError(c *gin.Context, err error) {
	var status int
	switch {
	case errors.Is(err, split.ErrFullyAssigned):
		status = http.StatusConflict
	case errors.Is(err, storage.ErrNotFound), errors.Is(err, service.ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, gateway.ErrDisabled), errors.Is(err, service.ErrExportDisabled):
		status = http.StatusServiceUnavailable
	case isValidation(err):
		status = http.StatusBadRequest
	default:
		status = http.StatusInternalServerError
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func isValidation(err error) bool {
	var ve *split.ValidationError
	if errors.As(err, &ve) {
		return true
	}
	for _, sentinel := range []error{
		split.ErrSessionLocked,
		split.ErrSessionClosed,
		models.ErrEmptyItemName,
		models.ErrNegativeAmount,
		models.ErrNegativeQty,
		models.ErrInvalidCategory,
		models.ErrInvalidUsageType,
		currency.ErrUnknownCurrency,
		currency.ErrInvalidAmount,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// writeGatewayError distinguishes an unconfigured gateway (503) from a flow
// service failure (502).
func writeGatewayError(c *gin.Context, err error) {
	if errors.Is(err, gateway.ErrDisabled) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
}
