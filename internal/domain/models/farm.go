package models

import "github.com/shopspring/decimal"

// LifeStatus is the lifecycle of a tracked animal. Sold and Dead are terminal.
type LifeStatus string

const (
	LifeActive LifeStatus = "Active"
	LifeSold   LifeStatus = "Sold"
	LifeDead   LifeStatus = "Dead"
)

// CowStatus is the production state of a cow.
type CowStatus string

const (
	CowMilking  CowStatus = "Milking"
	CowDry      CowStatus = "Dry"
	CowPregnant CowStatus = "Pregnant"
	CowHeifer   CowStatus = "Heifer"
)

// BreedingStatus tracks the insemination cycle of a cow.
type BreedingStatus string

const (
	BreedingOpen      BreedingStatus = "Open"
	BreedingBred      BreedingStatus = "Bred"
	BreedingConfirmed BreedingStatus = "Confirmed"
	BreedingResting   BreedingStatus = "Resting"
)

// InvestmentCategory groups money spent on a single animal.
type InvestmentCategory string

const (
	CategoryFeed     InvestmentCategory = "Feed"
	CategoryMedicine InvestmentCategory = "Medicine"
	CategoryGenetic  InvestmentCategory = "Genetic"
	CategoryOther    InvestmentCategory = "Other"
)

// InvestmentCategories lists every category in display order.
var InvestmentCategories = []InvestmentCategory{CategoryFeed, CategoryMedicine, CategoryGenetic, CategoryOther}

// Valid reports whether c is one of the enumerated categories.
func (c InvestmentCategory) Valid() bool {
	switch c {
	case CategoryFeed, CategoryMedicine, CategoryGenetic, CategoryOther:
		return true
	}
	return false
}

// Shift is the milking session a sale belongs to.
type Shift string

const (
	ShiftMorning Shift = "Morning"
	ShiftEvening Shift = "Evening"
)

// AttendanceStatus is the daily presence mark of a worker.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceHalfDay AttendanceStatus = "half-day"
)

// Valid reports whether s is a known attendance mark.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceHalfDay:
		return true
	}
	return false
}

// FeedType classifies feed stock lines.
type FeedType string

const (
	FeedConcentrate FeedType = "Concentrate"
	FeedDryFodder   FeedType = "Dry Fodder"
	FeedGreenFodder FeedType = "Green Fodder"
	FeedSilage      FeedType = "Silage"
	FeedSupplement  FeedType = "Supplement"
)

// ProtocolStep is one planned action of a treatment protocol.
type ProtocolStep struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	DayOffset      int    `json:"dayOffset"`
	PlannedDate    string `json:"plannedDate"`
	IsDone         bool   `json:"isDone"`
	CompletionDate string `json:"completionDate,omitempty"`
}

// ActiveProtocol is a treatment schedule attached to an animal.
type ActiveProtocol struct {
	ID           string         `json:"id"`
	ProtocolName string         `json:"protocolName"`
	StartDate    string         `json:"startDate"`
	Steps        []ProtocolStep `json:"steps"`
}

// FeedingProgramStep accrues DailyCost for every day the owner's age falls in
// [StartAgeDays, EndAgeDays].
type FeedingProgramStep struct {
	ID           string          `json:"id"`
	StartAgeDays int             `json:"startAgeDays"`
	EndAgeDays   int             `json:"endAgeDays"`
	FeedName     string          `json:"feedName"`
	DailyQty     decimal.Decimal `json:"dailyQty"`
	DailyCost    decimal.Decimal `json:"dailyCost"`
}

// InvestmentRecord is money spent on one animal. Records are never edited.
type InvestmentRecord struct {
	ID          string             `json:"id"`
	Date        string             `json:"date"`
	Category    InvestmentCategory `json:"category"`
	Amount      decimal.Decimal    `json:"amount"`
	Description string             `json:"description"`
}

// Cow is an adult animal of the herd.
type Cow struct {
	ID                       string               `json:"id"`
	Name                     string               `json:"name"`
	CowNumber                string               `json:"cowNumber"`
	TagID                    string               `json:"tagId"`
	Breed                    string               `json:"breed"`
	Photo                    string               `json:"photo,omitempty"`
	Status                   CowStatus            `json:"status"`
	MilkingCapacity          decimal.Decimal      `json:"milkingCapacity"`
	Weight                   decimal.Decimal      `json:"weight"`
	LastCalvingDate          string               `json:"lastCalvingDate,omitempty"`
	NextCalvingDate          string               `json:"nextCalvingDate,omitempty"`
	LastHeatDate             string               `json:"lastHeatDate,omitempty"`
	ExpectedInseminationDate string               `json:"expectedInseminationDate,omitempty"`
	BreedingStatus           BreedingStatus       `json:"breedingStatus,omitempty"`
	FeedChart                string               `json:"feedChart"`
	PurchasePrice            decimal.Decimal      `json:"purchasePrice"`
	Protocols                []ActiveProtocol     `json:"protocols"`
	FeedingProgram           []FeedingProgramStep `json:"feedingProgram"`
	Investments              []InvestmentRecord   `json:"investments"`
	IsBought                 *bool                `json:"isBought,omitempty"`
	PurchaseDate             string               `json:"purchaseDate,omitempty"`
	LifeStatus               LifeStatus           `json:"lifeStatus"`
	SalePrice                *decimal.Decimal     `json:"salePrice,omitempty"`
	SaleDate                 string               `json:"saleDate,omitempty"`
}

// WeightRecord is one point of a calf growth history.
type WeightRecord struct {
	Date   string  `json:"date"`
	Weight float64 `json:"weight"`
}

// Calf is a young animal. MotherID is a weak reference that may dangle.
type Calf struct {
	ID               string               `json:"id"`
	Name             string               `json:"name"`
	TagID            string               `json:"tagId"`
	DOB              string               `json:"dob"`
	MotherID         string               `json:"motherId"`
	WeightHistory    []WeightRecord       `json:"weightHistory"`
	Generation       string               `json:"generation"`
	GeneticPotential decimal.Decimal      `json:"geneticPotential"`
	Vaccinations     []any                `json:"vaccinations"`
	TotalCost        decimal.Decimal      `json:"totalCost"`
	Protocols        []ActiveProtocol     `json:"protocols"`
	FeedingProgram   []FeedingProgramStep `json:"feedingProgram"`
	Investments      []InvestmentRecord   `json:"investments"`
	LifeStatus       LifeStatus           `json:"lifeStatus"`
	SalePrice        *decimal.Decimal     `json:"salePrice,omitempty"`
	SaleDate         string               `json:"saleDate,omitempty"`
}

// FeedEntry is a feed stock line. Stock is informational and never decremented here.
type FeedEntry struct {
	ID               string           `json:"id"`
	Type             FeedType         `json:"type"`
	Name             string           `json:"name"`
	CurrentStock     decimal.Decimal  `json:"currentStock"`
	DailyConsumption decimal.Decimal  `json:"dailyConsumption"`
	UnitPrice        decimal.Decimal  `json:"unitPrice"`
	Threshold        decimal.Decimal  `json:"threshold"`
	BatchNumber      string           `json:"batchNumber,omitempty"`
	ProteinPercent   *decimal.Decimal `json:"proteinPercent,omitempty"`
	ExpiryDate       string           `json:"expiryDate,omitempty"`
	Supplier         string           `json:"supplier,omitempty"`
}

// Medicine is a treatment targeting one cow or calf by id.
type Medicine struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	TargetID     string          `json:"targetId"`
	DosePerDay   string          `json:"dosePerDay"`
	StartDate    string          `json:"startDate"`
	EndDate      string          `json:"endDate,omitempty"`
	CurrentStock decimal.Decimal `json:"currentStock"`
	Threshold    decimal.Decimal `json:"threshold"`
}

// MilkSale is a single milk delivery. TotalAmount is fixed at creation.
type MilkSale struct {
	ID          string          `json:"id"`
	Date        string          `json:"date"`
	Shift       Shift           `json:"shift"`
	Quantity    decimal.Decimal `json:"quantity"`
	Fat         decimal.Decimal `json:"fat"`
	SNF         decimal.Decimal `json:"snf"`
	Rate        decimal.Decimal `json:"rate"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	LaborCost   decimal.Decimal `json:"laborCost"`
	FeedCost    decimal.Decimal `json:"feedCost"`
}

// Labour is a farm worker and their attendance sheet keyed by ISO date.
type Labour struct {
	ID           string                      `json:"id"`
	Name         string                      `json:"name"`
	DailySalary  decimal.Decimal             `json:"dailySalary"`
	AdvanceTaken decimal.Decimal             `json:"advanceTaken"`
	Attendance   map[string]AttendanceStatus `json:"attendance"`
	Payments     decimal.Decimal             `json:"payments"`
}

// Expense is a misc farm expense.
type Expense struct {
	ID          string          `json:"id"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
}

// Product is a stored farm supply.
type Product struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	Location      string          `json:"location"`
	LastPurchased string          `json:"lastPurchased"`
	StockQty      *int            `json:"stockQty,omitempty"`
}

// GeneticSemen is a semen straw catalog entry.
type GeneticSemen struct {
	ID                 string          `json:"id"`
	BullName           string          `json:"bullName"`
	Company            string          `json:"company"`
	Price              decimal.Decimal `json:"price"`
	MotherMilkCapacity decimal.Decimal `json:"motherMilkCapacity"`
	ExpectedMilkYield  decimal.Decimal `json:"expectedMilkYield"`
}
