package records

import (
	"fmt"
	"maps"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/dairy/internal/domain/models"
)

const (
	feedThresholdDays        = 5
	defaultMedicineThreshold = 1
	defaultProductLocation   = "Main Store"
	defaultProductStock      = 1
	defaultExpenseCategory   = "Other"
	defaultSemenCompany      = "Premier Genetics"
	defaultSemenPrice        = 1500
	defaultMotherCapacity    = 35
)

// MilkSaleInput is one milk delivery as entered on the sales form.
type MilkSaleInput struct {
	Quantity *decimal.Decimal `json:"quantity"`
	Rate     *decimal.Decimal `json:"rate"`
	Fat      decimal.Decimal  `json:"fat"`
	SNF      decimal.Decimal  `json:"snf"`
	Shift    models.Shift     `json:"shift"`
}

// AddMilkSale prepends a sale dated today. The history is kept newest first.
func (m *Mutator) AddMilkSale(s models.FarmData, in MilkSaleInput) (models.FarmData, models.MilkSale, error) {
	if in.Quantity == nil || in.Rate == nil {
		return s, models.MilkSale{}, fmt.Errorf("%w: quantity and rate are required", ErrInvalidInput)
	}
	if in.Quantity.IsNegative() || in.Rate.IsNegative() || in.Fat.IsNegative() || in.SNF.IsNegative() {
		return s, models.MilkSale{}, fmt.Errorf("%w: sale values must not be negative", ErrInvalidInput)
	}

	shift := in.Shift
	switch shift {
	case "":
		shift = models.ShiftMorning
	case models.ShiftMorning, models.ShiftEvening:
	default:
		return s, models.MilkSale{}, fmt.Errorf("%w: unknown shift %q", ErrInvalidInput, in.Shift)
	}

	qty, rate := *in.Quantity, *in.Rate
	sale := models.MilkSale{
		ID:          m.newID(),
		Date:        m.Today(),
		Shift:       shift,
		Quantity:    qty,
		Fat:         in.Fat,
		SNF:         in.SNF,
		Rate:        rate,
		TotalAmount: qty.Mul(rate),
		LaborCost:   m.costs.MilkSaleLaborCost,
		FeedCost:    qty.Mul(m.costs.FeedCostPerLitre),
	}

	next := s
	next.MilkSales = prependCopy(s.MilkSales, sale)
	return next, sale, nil
}

// FeedInput adds a feed stock line. A nil threshold defaults to five days of
// consumption.
type FeedInput struct {
	Name             string           `json:"name"`
	Type             models.FeedType  `json:"type"`
	CurrentStock     decimal.Decimal  `json:"currentStock"`
	DailyConsumption decimal.Decimal  `json:"dailyConsumption"`
	UnitPrice        decimal.Decimal  `json:"unitPrice"`
	Threshold        *decimal.Decimal `json:"threshold"`
	BatchNumber      string           `json:"batchNumber"`
	ProteinPercent   *decimal.Decimal `json:"proteinPercent"`
	ExpiryDate       string           `json:"expiryDate"`
	Supplier         string           `json:"supplier"`
}

// AddFeed appends a feed stock line.
func (m *Mutator) AddFeed(s models.FarmData, in FeedInput) (models.FarmData, models.FeedEntry, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return s, models.FeedEntry{}, fmt.Errorf("%w: feed name is required", ErrInvalidInput)
	}
	if in.CurrentStock.IsNegative() || in.DailyConsumption.IsNegative() || in.UnitPrice.IsNegative() {
		return s, models.FeedEntry{}, fmt.Errorf("%w: feed values must not be negative", ErrInvalidInput)
	}

	threshold := in.DailyConsumption.Mul(decimal.NewFromInt(feedThresholdDays))
	if in.Threshold != nil {
		threshold = *in.Threshold
	}

	feed := models.FeedEntry{
		ID:               m.newID(),
		Type:             models.FeedType(orDefault(string(in.Type), string(models.FeedConcentrate))),
		Name:             name,
		CurrentStock:     in.CurrentStock,
		DailyConsumption: in.DailyConsumption,
		UnitPrice:        in.UnitPrice,
		Threshold:        threshold,
		BatchNumber:      in.BatchNumber,
		ProteinPercent:   in.ProteinPercent,
		ExpiryDate:       in.ExpiryDate,
		Supplier:         in.Supplier,
	}

	next := s
	next.Feeds = appendCopy(s.Feeds, feed)
	return next, feed, nil
}

// MedicineInput adds a treatment for one animal.
type MedicineInput struct {
	Name         string          `json:"name"`
	TargetID     string          `json:"targetId"`
	DosePerDay   string          `json:"dosePerDay"`
	Price        decimal.Decimal `json:"price"`
	CurrentStock decimal.Decimal `json:"currentStock"`
	Threshold    decimal.Decimal `json:"threshold"`
}

// AddMedicine appends a medicine starting today. The target must be an
// active cow or calf at the time of assignment.
func (m *Mutator) AddMedicine(s models.FarmData, in MedicineInput) (models.FarmData, models.Medicine, error) {
	name := strings.TrimSpace(in.Name)
	dose := strings.TrimSpace(in.DosePerDay)
	if name == "" || in.TargetID == "" || dose == "" {
		return s, models.Medicine{}, fmt.Errorf("%w: name, target and dose are required", ErrInvalidInput)
	}
	if in.Price.IsNegative() || in.CurrentStock.IsNegative() || in.Threshold.IsNegative() {
		return s, models.Medicine{}, fmt.Errorf("%w: medicine values must not be negative", ErrInvalidInput)
	}

	var status models.LifeStatus
	switch i, j := s.FindCow(in.TargetID), s.FindCalf(in.TargetID); {
	case i >= 0:
		status = s.Cows[i].LifeStatus
	case j >= 0:
		status = s.Calves[j].LifeStatus
	default:
		return s, models.Medicine{}, ErrNotFound
	}
	if status != models.LifeActive {
		return s, models.Medicine{}, ErrInactiveAnimal
	}

	threshold := in.Threshold
	if threshold.IsZero() {
		threshold = decimal.NewFromInt(defaultMedicineThreshold)
	}

	med := models.Medicine{
		ID:           m.newID(),
		Name:         name,
		Price:        in.Price,
		TargetID:     in.TargetID,
		DosePerDay:   dose,
		StartDate:    m.Today(),
		CurrentStock: in.CurrentStock,
		Threshold:    threshold,
	}

	next := s
	next.Medicines = appendCopy(s.Medicines, med)
	return next, med, nil
}

// LabourInput adds a worker.
type LabourInput struct {
	Name        string           `json:"name"`
	DailySalary *decimal.Decimal `json:"dailySalary"`
}

// AddLabour appends a worker with an empty attendance sheet.
func (m *Mutator) AddLabour(s models.FarmData, in LabourInput) (models.FarmData, models.Labour, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.DailySalary == nil {
		return s, models.Labour{}, fmt.Errorf("%w: worker name and wage are required", ErrInvalidInput)
	}
	if in.DailySalary.IsNegative() {
		return s, models.Labour{}, fmt.Errorf("%w: wage must not be negative", ErrInvalidInput)
	}

	worker := models.Labour{
		ID:          m.newID(),
		Name:        name,
		DailySalary: *in.DailySalary,
		Attendance:  map[string]models.AttendanceStatus{},
	}

	next := s
	next.Labours = appendCopy(s.Labours, worker)
	return next, worker, nil
}

// MarkAttendance sets the single attendance status of a worker for a date,
// overwriting any earlier mark. An empty date means today.
func (m *Mutator) MarkAttendance(s models.FarmData, labourID, date string, status models.AttendanceStatus) (models.FarmData, error) {
	if !status.Valid() {
		return s, fmt.Errorf("%w: unknown attendance status %q", ErrInvalidInput, status)
	}
	if date == "" {
		date = m.Today()
	}
	day, err := models.NormalizeDate(date)
	if err != nil {
		return s, fmt.Errorf("%w: date %q: %v", ErrInvalidInput, date, err)
	}

	i := s.FindLabour(labourID)
	if i < 0 {
		return s, ErrNotFound
	}

	worker := s.Labours[i]
	attendance := maps.Clone(worker.Attendance)
	if attendance == nil {
		attendance = map[string]models.AttendanceStatus{}
	}
	attendance[day] = status
	worker.Attendance = attendance

	next := s
	next.Labours = replaceAt(s.Labours, i, worker)
	return next, nil
}

// RecordAdvance adds a positive advance payment to a worker.
func (m *Mutator) RecordAdvance(s models.FarmData, labourID string, amount decimal.Decimal) (models.FarmData, error) {
	if !amount.IsPositive() {
		return s, fmt.Errorf("%w: advance must be positive", ErrInvalidInput)
	}

	i := s.FindLabour(labourID)
	if i < 0 {
		return s, ErrNotFound
	}

	worker := s.Labours[i]
	worker.AdvanceTaken = worker.AdvanceTaken.Add(amount)

	next := s
	next.Labours = replaceAt(s.Labours, i, worker)
	return next, nil
}

// ExpenseInput adds a misc expense. Empty category and date default to
// "Other" and today.
type ExpenseInput struct {
	Category    string           `json:"category"`
	Amount      *decimal.Decimal `json:"amount"`
	Date        string           `json:"date"`
	Description string           `json:"description"`
}

// AddExpense appends a misc expense.
func (m *Mutator) AddExpense(s models.FarmData, in ExpenseInput) (models.FarmData, models.Expense, error) {
	desc := strings.TrimSpace(in.Description)
	if desc == "" || in.Amount == nil {
		return s, models.Expense{}, fmt.Errorf("%w: description and amount are required", ErrInvalidInput)
	}
	if in.Amount.IsNegative() {
		return s, models.Expense{}, fmt.Errorf("%w: amount must not be negative", ErrInvalidInput)
	}
	date := in.Date
	if date == "" {
		date = m.Today()
	}
	day, err := models.NormalizeDate(date)
	if err != nil {
		return s, models.Expense{}, fmt.Errorf("%w: date %q: %v", ErrInvalidInput, date, err)
	}

	expense := models.Expense{
		ID:          m.newID(),
		Category:    orDefault(in.Category, defaultExpenseCategory),
		Amount:      *in.Amount,
		Date:        day,
		Description: desc,
	}

	next := s
	next.Expenses = appendCopy(s.Expenses, expense)
	return next, expense, nil
}

// ProductInput adds a stored supply.
type ProductInput struct {
	Name     string           `json:"name"`
	Price    *decimal.Decimal `json:"price"`
	Location string           `json:"location"`
	StockQty int              `json:"stockQty"`
}

// AddProduct appends a product bought today.
func (m *Mutator) AddProduct(s models.FarmData, in ProductInput) (models.FarmData, models.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.Price == nil {
		return s, models.Product{}, fmt.Errorf("%w: product name and price are required", ErrInvalidInput)
	}
	if in.Price.IsNegative() || in.StockQty < 0 {
		return s, models.Product{}, fmt.Errorf("%w: product values must not be negative", ErrInvalidInput)
	}

	qty := in.StockQty
	if qty == 0 {
		qty = defaultProductStock
	}

	product := models.Product{
		ID:            m.newID(),
		Name:          name,
		Price:         *in.Price,
		Location:      orDefault(in.Location, defaultProductLocation),
		LastPurchased: m.Today(),
		StockQty:      &qty,
	}

	next := s
	next.Products = appendCopy(s.Products, product)
	return next, product, nil
}

// GeneticInput adds a semen catalog entry.
type GeneticInput struct {
	BullName           string           `json:"bullName"`
	Company            string           `json:"company"`
	Price              *decimal.Decimal `json:"price"`
	MotherMilkCapacity *decimal.Decimal `json:"motherMilkCapacity"`
	ExpectedMilkYield  *decimal.Decimal `json:"expectedMilkYield"`
}

// AddGenetic appends a semen catalog entry.
func (m *Mutator) AddGenetic(s models.FarmData, in GeneticInput) (models.FarmData, models.GeneticSemen, error) {
	bull := strings.TrimSpace(in.BullName)
	if bull == "" || in.ExpectedMilkYield == nil {
		return s, models.GeneticSemen{}, fmt.Errorf("%w: bull name and expected yield are required", ErrInvalidInput)
	}

	price := decimal.NewFromInt(defaultSemenPrice)
	if in.Price != nil {
		price = *in.Price
	}
	capacity := decimal.NewFromInt(defaultMotherCapacity)
	if in.MotherMilkCapacity != nil {
		capacity = *in.MotherMilkCapacity
	}
	if price.IsNegative() || capacity.IsNegative() || in.ExpectedMilkYield.IsNegative() {
		return s, models.GeneticSemen{}, fmt.Errorf("%w: genetic values must not be negative", ErrInvalidInput)
	}

	semen := models.GeneticSemen{
		ID:                 m.newID(),
		BullName:           bull,
		Company:            orDefault(in.Company, defaultSemenCompany),
		Price:              price,
		MotherMilkCapacity: capacity,
		ExpectedMilkYield:  *in.ExpectedMilkYield,
	}

	next := s
	next.Genetics = appendCopy(s.Genetics, semen)
	return next, semen, nil
}

// ToggleDashboardModule flips the enabled flag of a dashboard module.
func (m *Mutator) ToggleDashboardModule(s models.FarmData, id models.ModuleID) (models.FarmData, error) {
	for i, mod := range s.DashboardModules {
		if mod.ID != id {
			continue
		}
		mod.Enabled = !mod.Enabled
		next := s
		next.DashboardModules = replaceAt(s.DashboardModules, i, mod)
		return next, nil
	}
	return s, ErrNotFound
}
