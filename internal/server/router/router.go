package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/dairy/internal/server/handlers"
)

// Handlers groups the HTTP adapters mounted by New.
type Handlers struct {
	Farm    *handlers.FarmHandler
	Metrics *handlers.MetricsHandler
	Insight *handlers.InsightHandler
	Reports *handlers.ReportHandler
}

// New wires the Gin engine with required routes and middlewares. When
// jwtSecret is set every /api route requires an HS256 bearer token.
func New(h Handlers, jwtSecret string, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	if jwtSecret != "" {
		api.Use(bearerAuth([]byte(jwtSecret)))
	}

	api.GET("/snapshot", h.Farm.Snapshot)
	api.POST("/milk-sales", h.Farm.AddMilkSale())
	api.POST("/cows", h.Farm.RegisterCow())
	api.POST("/calves", h.Farm.RegisterCalf())
	api.POST("/animals/:id/status", h.Farm.UpdateLifeStatus())
	api.POST("/animals/:id/feeding-program", h.Farm.AddFeedingProgramStep())
	api.POST("/animals/:id/diet/:template", h.Farm.ApplyDiet)
	api.POST("/animals/:id/investments", h.Farm.LogInvestment())
	api.POST("/calves/:id/weights", h.Farm.RecordWeight())
	api.POST("/labours", h.Farm.AddLabour())
	api.POST("/labours/:id/attendance", h.Farm.MarkAttendance())
	api.POST("/labours/:id/advance", h.Farm.RecordAdvance())
	api.POST("/modules/:id/toggle", h.Farm.ToggleModule)
	api.POST("/feeds", h.Farm.AddFeed())
	api.POST("/medicines", h.Farm.AddMedicine())
	api.POST("/expenses", h.Farm.AddExpense())
	api.POST("/products", h.Farm.AddProduct())
	api.POST("/genetics", h.Farm.AddGenetic())

	api.GET("/metrics/daily", h.Metrics.Daily)
	api.GET("/metrics/herd", h.Metrics.Herd)
	api.GET("/metrics/pnl", h.Metrics.PnL)
	api.GET("/metrics/report", h.Metrics.Report)
	api.GET("/feeds/runout", h.Metrics.FeedRunOut)
	api.GET("/medicines/alerts", h.Metrics.MedicineAlerts)
	api.GET("/calves/:id/growth", h.Metrics.Growth)
	api.GET("/animals/:id/investment", h.Metrics.Investment)
	api.GET("/cows", h.Metrics.Cows)
	api.GET("/calves", h.Metrics.Calves)
	api.GET("/calculator", h.Metrics.Calculator)

	if h.Insight != nil {
		api.POST("/sync", h.Insight.Sync)
		api.POST("/slips/scan", h.Insight.ScanSlip)
	}
	if h.Reports != nil {
		api.GET("/reports/daily", h.Reports.Today)
		api.POST("/reports/daily", h.Reports.Publish)
		api.POST("/messages", h.Reports.SendMessage)
	}

	logger.Info("router initialized")
	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
