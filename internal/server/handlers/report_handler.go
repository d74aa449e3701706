package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/dairy/internal/domain/models"
	"github.com/mamadbah2/dairy/internal/service/reporting"
)

// ReportService builds and publishes the daily report.
type ReportService interface {
	Today() models.DailyReport
	Publish(ctx context.Context) (models.DailyReport, error)
}

// Notifier pushes a text message to a WhatsApp recipient.
type Notifier interface {
	SendOutbound(ctx context.Context, req models.OutboundMessageRequest) error
}

// ReportHandler exposes the daily report and manual notifications.
type ReportHandler struct {
	svc      ReportService
	notifier Notifier
	logger   *zap.Logger
}

// NewReportHandler constructs the HTTP handler adapter. notifier may be nil.
func NewReportHandler(svc ReportService, notifier Notifier, logger *zap.Logger) *ReportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportHandler{svc: svc, notifier: notifier, logger: logger}
}

// Today handles GET /api/reports/daily.
func (h *ReportHandler) Today(c *gin.Context) {
	report := h.svc.Today()
	c.JSON(http.StatusOK, gin.H{"report": report, "summary": reporting.Summary(report)})
}

// Publish handles POST /api/reports/daily and sends the report right away.
func (h *ReportHandler) Publish(c *gin.Context) {
	report, err := h.svc.Publish(c.Request.Context())
	if err != nil {
		h.logger.Error("failed publishing report", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "report": report})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"report": report})
}

// SendMessage handles POST /api/messages for manual owner notifications.
func (h *ReportHandler) SendMessage(c *gin.Context) {
	if h.notifier == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "whatsapp is not configured"})
		return
	}

	var req models.OutboundMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid outbound payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.notifier.SendOutbound(c.Request.Context(), req); err != nil {
		h.logger.Error("failed sending outbound", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "unable to send message"})
		return
	}

	c.Status(http.StatusAccepted)
}
