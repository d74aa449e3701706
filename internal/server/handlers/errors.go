package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/dairy/internal/domain/metrics"
	"github.com/mamadbah2/dairy/internal/domain/records"
)

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, records.ErrNotFound), errors.Is(err, metrics.ErrAnimalNotFound):
		return http.StatusNotFound
	case errors.Is(err, records.ErrInvalidInput),
		errors.Is(err, records.ErrSalePriceRequired),
		errors.Is(err, records.ErrConfirmationRequired),
		errors.Is(err, records.ErrInvalidTransition),
		errors.Is(err, records.ErrInactiveAnimal),
		errors.Is(err, metrics.ErrUnknownPeriod),
		errors.Is(err, metrics.ErrInsufficientData):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, logger *zap.Logger, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// bindJSON answers 400 when the body is not JSON at all and 422 when it is
// JSON carrying values that do not fit the request, such as a non-numeric
// quantity.
func bindJSON(c *gin.Context, logger *zap.Logger, dst any) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}
	logger.Warn("invalid request body", zap.String("path", c.FullPath()), zap.Error(err))
	if malformedJSON(err) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return false
	}
	c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid field value: " + err.Error()})
	return false
}

func malformedJSON(err error) bool {
	var syntaxErr *json.SyntaxError
	return errors.As(err, &syntaxErr) ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF)
}
