package farm

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/dairy/internal/domain/models"
	"github.com/mamadbah2/dairy/internal/domain/records"
)

// AddMilkSale records a milk delivery.
func (s *Service) AddMilkSale(ctx context.Context, in records.MilkSaleInput) (models.MilkSale, error) {
	var sale models.MilkSale
	_, err := s.Apply(ctx, "add_milk_sale", func(d models.FarmData) (models.FarmData, error) {
		next, created, err := s.mutator.AddMilkSale(d, in)
		sale = created
		return next, err
	})
	return sale, err
}

// RegisterCow adds a cow to the herd.
func (s *Service) RegisterCow(ctx context.Context, in records.CowInput) (models.Cow, error) {
	var cow models.Cow
	_, err := s.Apply(ctx, "register_cow", func(d models.FarmData) (models.FarmData, error) {
		next, created, err := s.mutator.RegisterCow(d, in)
		cow = created
		return next, err
	})
	return cow, err
}

// RegisterCalf adds a calf to the herd.
func (s *Service) RegisterCalf(ctx context.Context, in records.CalfInput) (models.Calf, error) {
	var calf models.Calf
	_, err := s.Apply(ctx, "register_calf", func(d models.FarmData) (models.FarmData, error) {
		next, created, err := s.mutator.RegisterCalf(d, in)
		calf = created
		return next, err
	})
	return calf, err
}

// UpdateLifeStatus sells or buries an animal.
func (s *Service) UpdateLifeStatus(ctx context.Context, animalID string, in records.LifeStatusInput) error {
	_, err := s.Apply(ctx, "update_life_status", func(d models.FarmData) (models.FarmData, error) {
		return s.mutator.UpdateLifeStatus(d, animalID, in)
	})
	return err
}

// AddFeedingProgramStep appends a feeding step to an animal.
func (s *Service) AddFeedingProgramStep(ctx context.Context, animalID string, in records.FeedingStepInput) error {
	_, err := s.Apply(ctx, "add_feeding_step", func(d models.FarmData) (models.FarmData, error) {
		return s.mutator.AddFeedingProgramStep(d, animalID, in)
	})
	return err
}

// ApplyDiet appends a ready-made feeding step to an animal.
func (s *Service) ApplyDiet(ctx context.Context, animalID string, template records.DietTemplate) error {
	in, ok := records.Diet(template)
	if !ok {
		return fmt.Errorf("%w: unknown diet template %q", records.ErrInvalidInput, template)
	}
	return s.AddFeedingProgramStep(ctx, animalID, in)
}

// LogInvestment records money spent on an animal.
func (s *Service) LogInvestment(ctx context.Context, animalID string, in records.InvestmentInput) error {
	_, err := s.Apply(ctx, "log_investment", func(d models.FarmData) (models.FarmData, error) {
		return s.mutator.LogInvestment(d, animalID, in)
	})
	return err
}

// RecordWeight appends a growth measurement to a calf.
func (s *Service) RecordWeight(ctx context.Context, calfID string, in records.WeightInput) error {
	_, err := s.Apply(ctx, "record_weight", func(d models.FarmData) (models.FarmData, error) {
		return s.mutator.RecordWeight(d, calfID, in)
	})
	return err
}

// AddLabour adds a worker.
func (s *Service) AddLabour(ctx context.Context, in records.LabourInput) (models.Labour, error) {
	var worker models.Labour
	_, err := s.Apply(ctx, "add_labour", func(d models.FarmData) (models.FarmData, error) {
		next, created, err := s.mutator.AddLabour(d, in)
		worker = created
		return next, err
	})
	return worker, err
}

// MarkAttendance sets a worker's attendance for a date.
func (s *Service) MarkAttendance(ctx context.Context, labourID, date string, status models.AttendanceStatus) error {
	_, err := s.Apply(ctx, "mark_attendance", func(d models.FarmData) (models.FarmData, error) {
		return s.mutator.MarkAttendance(d, labourID, date, status)
	})
	return err
}

// RecordAdvance adds an advance payment to a worker.
func (s *Service) RecordAdvance(ctx context.Context, labourID string, amount decimal.Decimal) error {
	_, err := s.Apply(ctx, "record_advance", func(d models.FarmData) (models.FarmData, error) {
		return s.mutator.RecordAdvance(d, labourID, amount)
	})
	return err
}

// ToggleDashboardModule flips a dashboard view.
func (s *Service) ToggleDashboardModule(ctx context.Context, id models.ModuleID) error {
	_, err := s.Apply(ctx, "toggle_module", func(d models.FarmData) (models.FarmData, error) {
		return s.mutator.ToggleDashboardModule(d, id)
	})
	return err
}

// AddFeed adds a feed stock line.
func (s *Service) AddFeed(ctx context.Context, in records.FeedInput) (models.FeedEntry, error) {
	var feed models.FeedEntry
	_, err := s.Apply(ctx, "add_feed", func(d models.FarmData) (models.FarmData, error) {
		next, created, err := s.mutator.AddFeed(d, in)
		feed = created
		return next, err
	})
	return feed, err
}

// AddMedicine adds a treatment.
func (s *Service) AddMedicine(ctx context.Context, in records.MedicineInput) (models.Medicine, error) {
	var med models.Medicine
	_, err := s.Apply(ctx, "add_medicine", func(d models.FarmData) (models.FarmData, error) {
		next, created, err := s.mutator.AddMedicine(d, in)
		med = created
		return next, err
	})
	return med, err
}

// AddExpense records a misc expense.
func (s *Service) AddExpense(ctx context.Context, in records.ExpenseInput) (models.Expense, error) {
	var expense models.Expense
	_, err := s.Apply(ctx, "add_expense", func(d models.FarmData) (models.FarmData, error) {
		next, created, err := s.mutator.AddExpense(d, in)
		expense = created
		return next, err
	})
	return expense, err
}

// AddProduct records a stored supply.
func (s *Service) AddProduct(ctx context.Context, in records.ProductInput) (models.Product, error) {
	var product models.Product
	_, err := s.Apply(ctx, "add_product", func(d models.FarmData) (models.FarmData, error) {
		next, created, err := s.mutator.AddProduct(d, in)
		product = created
		return next, err
	})
	return product, err
}

// AddGenetic adds a semen catalog entry.
func (s *Service) AddGenetic(ctx context.Context, in records.GeneticInput) (models.GeneticSemen, error) {
	var semen models.GeneticSemen
	_, err := s.Apply(ctx, "add_genetic", func(d models.FarmData) (models.FarmData, error) {
		next, created, err := s.mutator.AddGenetic(d, in)
		semen = created
		return next, err
	})
	return semen, err
}
