package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mamadbah2/dairy/internal/domain/models"
	"github.com/mamadbah2/dairy/internal/domain/records"
	"github.com/mamadbah2/dairy/internal/service/farm"
)

// FarmHandler exposes the snapshot and every record mutation.
type FarmHandler struct {
	svc    *farm.Service
	logger *zap.Logger
}

// NewFarmHandler constructs the HTTP handler adapter.
func NewFarmHandler(svc *farm.Service, logger *zap.Logger) *FarmHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FarmHandler{svc: svc, logger: logger}
}

type attendanceRequest struct {
	Date   string                  `json:"date"`
	Status models.AttendanceStatus `json:"status"`
}

type advanceRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// Snapshot returns the whole record set.
func (h *FarmHandler) Snapshot(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Snapshot())
}

// created binds the body into in, runs op and answers 201 with the record.
func created[In any, Out any](h *FarmHandler, op func(*gin.Context, In) (Out, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in In
		if !bindJSON(c, h.logger, &in) {
			return
		}
		out, err := op(c, in)
		if err != nil {
			respondError(c, h.logger, err)
			return
		}
		c.JSON(http.StatusCreated, out)
	}
}

// updated binds the body into in, runs op on the :id record and answers 200
// with the new snapshot.
func updated[In any](h *FarmHandler, op func(*gin.Context, string, In) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in In
		if !bindJSON(c, h.logger, &in) {
			return
		}
		if err := op(c, c.Param("id"), in); err != nil {
			respondError(c, h.logger, err)
			return
		}
		c.JSON(http.StatusOK, h.svc.Snapshot())
	}
}

// AddMilkSale handles POST /api/milk-sales.
func (h *FarmHandler) AddMilkSale() gin.HandlerFunc {
	return created(h, func(c *gin.Context, in records.MilkSaleInput) (models.MilkSale, error) {
		return h.svc.AddMilkSale(c.Request.Context(), in)
	})
}

// RegisterCow handles POST /api/cows.
func (h *FarmHandler) RegisterCow() gin.HandlerFunc {
	return created(h, func(c *gin.Context, in records.CowInput) (models.Cow, error) {
		return h.svc.RegisterCow(c.Request.Context(), in)
	})
}

// RegisterCalf handles POST /api/calves.
func (h *FarmHandler) RegisterCalf() gin.HandlerFunc {
	return created(h, func(c *gin.Context, in records.CalfInput) (models.Calf, error) {
		return h.svc.RegisterCalf(c.Request.Context(), in)
	})
}

// AddLabour handles POST /api/labours.
func (h *FarmHandler) AddLabour() gin.HandlerFunc {
	return created(h, func(c *gin.Context, in records.LabourInput) (models.Labour, error) {
		return h.svc.AddLabour(c.Request.Context(), in)
	})
}

// AddFeed handles POST /api/feeds.
func (h *FarmHandler) AddFeed() gin.HandlerFunc {
	return created(h, func(c *gin.Context, in records.FeedInput) (models.FeedEntry, error) {
		return h.svc.AddFeed(c.Request.Context(), in)
	})
}

// AddMedicine handles POST /api/medicines.
func (h *FarmHandler) AddMedicine() gin.HandlerFunc {
	return created(h, func(c *gin.Context, in records.MedicineInput) (models.Medicine, error) {
		return h.svc.AddMedicine(c.Request.Context(), in)
	})
}

// AddExpense handles POST /api/expenses.
func (h *FarmHandler) AddExpense() gin.HandlerFunc {
	return created(h, func(c *gin.Context, in records.ExpenseInput) (models.Expense, error) {
		return h.svc.AddExpense(c.Request.Context(), in)
	})
}

// AddProduct handles POST /api/products.
func (h *FarmHandler) AddProduct() gin.HandlerFunc {
	return created(h, func(c *gin.Context, in records.ProductInput) (models.Product, error) {
		return h.svc.AddProduct(c.Request.Context(), in)
	})
}

// AddGenetic handles POST /api/genetics.
func (h *FarmHandler) AddGenetic() gin.HandlerFunc {
	return created(h, func(c *gin.Context, in records.GeneticInput) (models.GeneticSemen, error) {
		return h.svc.AddGenetic(c.Request.Context(), in)
	})
}

// UpdateLifeStatus handles POST /api/animals/:id/status.
func (h *FarmHandler) UpdateLifeStatus() gin.HandlerFunc {
	return updated(h, func(c *gin.Context, id string, in records.LifeStatusInput) error {
		return h.svc.UpdateLifeStatus(c.Request.Context(), id, in)
	})
}

// AddFeedingProgramStep handles POST /api/animals/:id/feeding-program.
func (h *FarmHandler) AddFeedingProgramStep() gin.HandlerFunc {
	return updated(h, func(c *gin.Context, id string, in records.FeedingStepInput) error {
		return h.svc.AddFeedingProgramStep(c.Request.Context(), id, in)
	})
}

// LogInvestment handles POST /api/animals/:id/investments.
func (h *FarmHandler) LogInvestment() gin.HandlerFunc {
	return updated(h, func(c *gin.Context, id string, in records.InvestmentInput) error {
		return h.svc.LogInvestment(c.Request.Context(), id, in)
	})
}

// RecordWeight handles POST /api/calves/:id/weights.
func (h *FarmHandler) RecordWeight() gin.HandlerFunc {
	return updated(h, func(c *gin.Context, id string, in records.WeightInput) error {
		return h.svc.RecordWeight(c.Request.Context(), id, in)
	})
}

// MarkAttendance handles POST /api/labours/:id/attendance.
func (h *FarmHandler) MarkAttendance() gin.HandlerFunc {
	return updated(h, func(c *gin.Context, id string, in attendanceRequest) error {
		return h.svc.MarkAttendance(c.Request.Context(), id, in.Date, in.Status)
	})
}

// RecordAdvance handles POST /api/labours/:id/advance.
func (h *FarmHandler) RecordAdvance() gin.HandlerFunc {
	return updated(h, func(c *gin.Context, id string, in advanceRequest) error {
		return h.svc.RecordAdvance(c.Request.Context(), id, in.Amount)
	})
}

// ApplyDiet handles POST /api/animals/:id/diet/:template.
func (h *FarmHandler) ApplyDiet(c *gin.Context) {
	template := records.DietTemplate(c.Param("template"))
	if err := h.svc.ApplyDiet(c.Request.Context(), c.Param("id"), template); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, h.svc.Snapshot())
}

// ToggleModule handles POST /api/modules/:id/toggle.
func (h *FarmHandler) ToggleModule(c *gin.Context) {
	if err := h.svc.ToggleDashboardModule(c.Request.Context(), models.ModuleID(c.Param("id"))); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"dashboardModules": h.svc.Snapshot().DashboardModules})
}
