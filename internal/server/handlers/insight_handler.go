package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/dairy/internal/domain/models"
	"github.com/mamadbah2/dairy/internal/service/insight"
)

const maxSlipBytes = 10 << 20

// InsightService runs the sync fan-out and reads milk slips.
type InsightService interface {
	Sync(ctx context.Context) (models.SyncResult, error)
	ScanSlip(ctx context.Context, image []byte, mimeType string) (models.SlipReading, error)
}

// InsightHandler exposes the sync and slip scan endpoints.
type InsightHandler struct {
	svc    InsightService
	logger *zap.Logger
}

// NewInsightHandler constructs the HTTP handler adapter.
func NewInsightHandler(svc InsightService, logger *zap.Logger) *InsightHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InsightHandler{svc: svc, logger: logger}
}

// Sync handles POST /api/sync. A failed backup or export answers 502 with
// the partial result.
func (h *InsightHandler) Sync(c *gin.Context) {
	result, err := h.svc.Sync(c.Request.Context())
	if err != nil {
		h.logger.Error("sync failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "result": result})
		return
	}
	c.JSON(http.StatusOK, result)
}

// ScanSlip handles POST /api/slips/scan with a multipart "image" field.
// Provider failures answer 200 with a notice so the user can type the
// values in by hand.
func (h *InsightHandler) ScanSlip(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	if file.Size > maxSlipBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "image too large"})
		return
	}

	f, err := file.Open()
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	defer f.Close()

	image, err := io.ReadAll(io.LimitReader(f, maxSlipBytes))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	reading, err := h.svc.ScanSlip(c.Request.Context(), image, file.Header.Get("Content-Type"))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"reading": reading})
	case errors.Is(err, insight.ErrEmptyImage):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, insight.ErrSlipUnreadable):
		c.JSON(http.StatusOK, gin.H{"notice": "Could not parse slip clearly. Please try again or enter manually."})
	case errors.Is(err, insight.ErrNoProvider), errors.Is(err, insight.ErrUnavailable):
		h.logger.Warn("slip scan unavailable", zap.Error(err))
		c.JSON(http.StatusOK, gin.H{"notice": "Slip scanning is unavailable. Please enter the values manually."})
	default:
		respondError(c, h.logger, err)
	}
}
