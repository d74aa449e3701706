package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mamadbah2/dairy/internal/domain/metrics"
	"github.com/mamadbah2/dairy/internal/domain/models"
	"github.com/mamadbah2/dairy/internal/domain/records"
)

// SnapshotSource exposes the live snapshot and the farm clock.
type SnapshotSource interface {
	Snapshot() models.FarmData
	Now() time.Time
}

// MetricsHandler serves the derived figures of the current snapshot.
type MetricsHandler struct {
	source SnapshotSource
	logger *zap.Logger
}

// NewMetricsHandler constructs the HTTP handler adapter.
func NewMetricsHandler(source SnapshotSource, logger *zap.Logger) *MetricsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MetricsHandler{source: source, logger: logger}
}

type dailyResponse struct {
	metrics.DailySummary
	SuggestedGrain decimal.Decimal `json:"suggestedGrain"`
}

// Daily handles GET /api/metrics/daily.
func (h *MetricsHandler) Daily(c *gin.Context) {
	data, today := h.source.Snapshot(), h.source.Now()
	c.JSON(http.StatusOK, dailyResponse{
		DailySummary:   metrics.DailyPnL(data, today),
		SuggestedGrain: metrics.SuggestedGrain(data, today),
	})
}

// Herd handles GET /api/metrics/herd.
func (h *MetricsHandler) Herd(c *gin.Context) {
	c.JSON(http.StatusOK, metrics.Herd(h.source.Snapshot()))
}

// PnL handles GET /api/metrics/pnl?period=.
func (h *MetricsHandler) PnL(c *gin.Context) {
	period, err := metrics.ParsePeriod(c.Query("period"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, metrics.PeriodPnL(h.source.Snapshot(), h.source.Now(), period))
}

// Report handles GET /api/metrics/report?period=.
func (h *MetricsHandler) Report(c *gin.Context) {
	period, err := metrics.ParsePeriod(c.Query("period"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, metrics.Report(h.source.Snapshot(), h.source.Now(), period))
}

// FeedRunOut handles GET /api/feeds/runout.
func (h *MetricsHandler) FeedRunOut(c *gin.Context) {
	c.JSON(http.StatusOK, metrics.FeedRunOuts(h.source.Snapshot()))
}

// MedicineAlerts handles GET /api/medicines/alerts.
func (h *MetricsHandler) MedicineAlerts(c *gin.Context) {
	c.JSON(http.StatusOK, metrics.MedicineAlerts(h.source.Snapshot()))
}

// Growth handles GET /api/calves/:id/growth.
func (h *MetricsHandler) Growth(c *gin.Context) {
	data := h.source.Snapshot()
	i := data.FindCalf(c.Param("id"))
	if i < 0 {
		respondError(c, h.logger, fmt.Errorf("%w: calf %s", records.ErrNotFound, c.Param("id")))
		return
	}
	series, err := metrics.Growth(data.Calves[i])
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, series)
}

// Investment handles GET /api/animals/:id/investment.
func (h *MetricsHandler) Investment(c *gin.Context) {
	out, err := metrics.InvestmentFor(h.source.Snapshot(), c.Param("id"), h.source.Now())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// Cows handles GET /api/cows?archived=.
func (h *MetricsHandler) Cows(c *gin.Context) {
	archived, err := archivedParam(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	data := h.source.Snapshot()
	if archived {
		c.JSON(http.StatusOK, metrics.ArchivedCows(data))
		return
	}
	c.JSON(http.StatusOK, metrics.ActiveCows(data))
}

// Calves handles GET /api/calves?archived=.
func (h *MetricsHandler) Calves(c *gin.Context) {
	archived, err := archivedParam(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	data := h.source.Snapshot()
	if archived {
		c.JSON(http.StatusOK, metrics.ArchivedCalves(data))
		return
	}
	c.JSON(http.StatusOK, metrics.ActiveCalves(data))
}

// Calculator handles GET /api/calculator?kg= or ?litres=.
func (h *MetricsHandler) Calculator(c *gin.Context) {
	if kg := c.Query("kg"); kg != "" {
		value, err := decimal.NewFromString(kg)
		if err != nil {
			respondError(c, h.logger, fmt.Errorf("%w: kg %q", records.ErrInvalidInput, kg))
			return
		}
		c.JSON(http.StatusOK, gin.H{"kg": value, "litres": metrics.KgToLitres(value)})
		return
	}
	if litres := c.Query("litres"); litres != "" {
		value, err := decimal.NewFromString(litres)
		if err != nil {
			respondError(c, h.logger, fmt.Errorf("%w: litres %q", records.ErrInvalidInput, litres))
			return
		}
		c.JSON(http.StatusOK, gin.H{"litres": value, "kg": metrics.LitresToKg(value)})
		return
	}
	respondError(c, h.logger, fmt.Errorf("%w: kg or litres is required", records.ErrInvalidInput))
}

func archivedParam(c *gin.Context) (bool, error) {
	raw := c.Query("archived")
	if raw == "" {
		return false, nil
	}
	archived, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%w: archived %q", records.ErrInvalidInput, raw)
	}
	return archived, nil
}
