package records

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/dairy/internal/domain/models"
)

const (
	defaultCowWeight        = 400
	defaultCalfBirthWeight  = 35.0
	defaultCalfGeneration   = "F1"
	defaultGeneticPotential = 15
)

// CowInput registers a cow.
type CowInput struct {
	Name            string           `json:"name"`
	CowNumber       string           `json:"cowNumber"`
	TagID           string           `json:"tagId"`
	Breed           string           `json:"breed"`
	Status          models.CowStatus `json:"status"`
	MilkingCapacity decimal.Decimal  `json:"milkingCapacity"`
	Weight          *decimal.Decimal `json:"weight"`
	PurchasePrice   decimal.Decimal  `json:"purchasePrice"`
	PurchaseDate    string           `json:"purchaseDate"`
	IsBought        *bool            `json:"isBought"`
}

// RegisterCow appends a new active cow. Name and number are required.
func (m *Mutator) RegisterCow(s models.FarmData, in CowInput) (models.FarmData, models.Cow, error) {
	name := strings.TrimSpace(in.Name)
	number := strings.TrimSpace(in.CowNumber)
	if name == "" || number == "" {
		return s, models.Cow{}, fmt.Errorf("%w: cow name and number are required", ErrInvalidInput)
	}
	if in.PurchasePrice.IsNegative() || in.MilkingCapacity.IsNegative() {
		return s, models.Cow{}, fmt.Errorf("%w: amounts must not be negative", ErrInvalidInput)
	}

	weight := decimal.NewFromInt(defaultCowWeight)
	if in.Weight != nil && in.Weight.IsPositive() {
		weight = *in.Weight
	}
	bought := true
	if in.IsBought != nil {
		bought = *in.IsBought
	}

	cow := models.Cow{
		ID:              m.newID(),
		Name:            name,
		CowNumber:       number,
		TagID:           orDefault(in.TagID, "No-Tag"),
		Breed:           orDefault(in.Breed, "Jersey"),
		Status:          models.CowStatus(orDefault(string(in.Status), string(models.CowMilking))),
		MilkingCapacity: in.MilkingCapacity,
		Weight:          weight,
		FeedChart:       "Standard",
		PurchasePrice:   in.PurchasePrice,
		PurchaseDate:    in.PurchaseDate,
		Protocols:       []models.ActiveProtocol{},
		FeedingProgram:  []models.FeedingProgramStep{},
		Investments:     []models.InvestmentRecord{},
		IsBought:        &bought,
		LifeStatus:      models.LifeActive,
	}

	next := s
	next.Cows = appendCopy(s.Cows, cow)
	return next, cow, nil
}

// CalfInput registers a calf.
type CalfInput struct {
	Name        string          `json:"name"`
	TagID       string          `json:"tagId"`
	DOB         string          `json:"dob"`
	MotherID    string          `json:"motherId"`
	BirthWeight float64         `json:"birthWeight"`
	InitialCost decimal.Decimal `json:"initialCost"`
}

// RegisterCalf appends a new active calf whose growth history starts with the
// birth weight at the date of birth.
func (m *Mutator) RegisterCalf(s models.FarmData, in CalfInput) (models.FarmData, models.Calf, error) {
	tag := strings.TrimSpace(in.TagID)
	if tag == "" || in.DOB == "" {
		return s, models.Calf{}, fmt.Errorf("%w: calf tag and date of birth are required", ErrInvalidInput)
	}
	dob, err := models.NormalizeDate(in.DOB)
	if err != nil {
		return s, models.Calf{}, fmt.Errorf("%w: date of birth %q: %v", ErrInvalidInput, in.DOB, err)
	}
	if in.InitialCost.IsNegative() {
		return s, models.Calf{}, fmt.Errorf("%w: initial cost must not be negative", ErrInvalidInput)
	}

	birthWeight := in.BirthWeight
	if birthWeight <= 0 {
		birthWeight = defaultCalfBirthWeight
	}

	calf := models.Calf{
		ID:               m.newID(),
		Name:             strings.TrimSpace(in.Name),
		TagID:            tag,
		DOB:              dob,
		MotherID:         in.MotherID,
		WeightHistory:    []models.WeightRecord{{Date: dob, Weight: birthWeight}},
		Generation:       defaultCalfGeneration,
		GeneticPotential: decimal.NewFromInt(defaultGeneticPotential),
		Vaccinations:     []any{},
		TotalCost:        in.InitialCost,
		Protocols:        []models.ActiveProtocol{},
		FeedingProgram:   []models.FeedingProgramStep{},
		Investments:      []models.InvestmentRecord{},
		LifeStatus:       models.LifeActive,
	}

	next := s
	next.Calves = appendCopy(s.Calves, calf)
	return next, calf, nil
}

// LifeStatusInput is a fully collected life status change. The caller gathers
// the sale price and the death confirmation before calling.
type LifeStatusInput struct {
	Status    models.LifeStatus `json:"status"`
	SalePrice *decimal.Decimal  `json:"salePrice"`
	Confirmed bool              `json:"confirmed"`
}

// UpdateLifeStatus moves an active cow or calf to Sold or Dead.
func (m *Mutator) UpdateLifeStatus(s models.FarmData, animalID string, in LifeStatusInput) (models.FarmData, error) {
	var salePrice *decimal.Decimal
	switch in.Status {
	case models.LifeSold:
		if in.SalePrice == nil {
			return s, ErrSalePriceRequired
		}
		if in.SalePrice.IsNegative() {
			return s, fmt.Errorf("%w: sale price must not be negative", ErrInvalidInput)
		}
		price := *in.SalePrice
		salePrice = &price
	case models.LifeDead:
		if !in.Confirmed {
			return s, ErrConfirmationRequired
		}
	case models.LifeActive:
		return s, fmt.Errorf("%w: animals cannot be reactivated", ErrInvalidTransition)
	default:
		return s, fmt.Errorf("%w: unknown life status %q", ErrInvalidInput, in.Status)
	}

	saleDate := ""
	if salePrice != nil {
		saleDate = m.Today()
	}

	return updateAnimal(s, animalID,
		func(c *models.Cow) error {
			if c.LifeStatus != models.LifeActive {
				return fmt.Errorf("%w: cow is already %s", ErrInvalidTransition, c.LifeStatus)
			}
			c.LifeStatus, c.SalePrice, c.SaleDate = in.Status, salePrice, saleDate
			return nil
		},
		func(c *models.Calf) error {
			if c.LifeStatus != models.LifeActive {
				return fmt.Errorf("%w: calf is already %s", ErrInvalidTransition, c.LifeStatus)
			}
			c.LifeStatus, c.SalePrice, c.SaleDate = in.Status, salePrice, saleDate
			return nil
		})
}

// FeedingStepInput describes a feeding program step. Overlapping ranges are allowed.
type FeedingStepInput struct {
	StartAgeDays int              `json:"startAgeDays"`
	EndAgeDays   int              `json:"endAgeDays"`
	FeedName     string           `json:"feedName"`
	DailyQty     decimal.Decimal  `json:"dailyQty"`
	DailyCost    *decimal.Decimal `json:"dailyCost"`
}

// AddFeedingProgramStep appends a step to an active animal's feeding program.
func (m *Mutator) AddFeedingProgramStep(s models.FarmData, animalID string, in FeedingStepInput) (models.FarmData, error) {
	name := strings.TrimSpace(in.FeedName)
	if name == "" || in.DailyCost == nil {
		return s, fmt.Errorf("%w: feed name and daily cost are required", ErrInvalidInput)
	}
	if in.DailyCost.IsNegative() {
		return s, fmt.Errorf("%w: daily cost must not be negative", ErrInvalidInput)
	}

	step := models.FeedingProgramStep{
		ID:           m.newID(),
		StartAgeDays: in.StartAgeDays,
		EndAgeDays:   in.EndAgeDays,
		FeedName:     name,
		DailyQty:     in.DailyQty,
		DailyCost:    *in.DailyCost,
	}

	return updateAnimal(s, animalID,
		func(c *models.Cow) error {
			if c.LifeStatus != models.LifeActive {
				return ErrInactiveAnimal
			}
			c.FeedingProgram = appendCopy(c.FeedingProgram, step)
			return nil
		},
		func(c *models.Calf) error {
			if c.LifeStatus != models.LifeActive {
				return ErrInactiveAnimal
			}
			c.FeedingProgram = appendCopy(c.FeedingProgram, step)
			return nil
		})
}

// InvestmentInput logs money spent on an animal. Category accepts a category
// name or its menu number ("1" Feed, "2" Medicine, "3" Genetic, "4" Other).
type InvestmentInput struct {
	Category    string           `json:"category"`
	Amount      *decimal.Decimal `json:"amount"`
	Description string           `json:"description"`
}

// ParseCategory resolves a category selector. Unknown selectors map to Other.
func ParseCategory(selector string) models.InvestmentCategory {
	selector = strings.TrimSpace(selector)
	switch selector {
	case "1":
		return models.CategoryFeed
	case "2":
		return models.CategoryMedicine
	case "3":
		return models.CategoryGenetic
	case "4":
		return models.CategoryOther
	}
	for _, c := range models.InvestmentCategories {
		if strings.EqualFold(selector, string(c)) {
			return c
		}
	}
	return models.CategoryOther
}

// LogInvestment appends an investment dated today to a cow or calf.
func (m *Mutator) LogInvestment(s models.FarmData, animalID string, in InvestmentInput) (models.FarmData, error) {
	desc := strings.TrimSpace(in.Description)
	if desc == "" || in.Amount == nil {
		return s, fmt.Errorf("%w: description and amount are required", ErrInvalidInput)
	}
	if in.Amount.IsNegative() {
		return s, fmt.Errorf("%w: amount must not be negative", ErrInvalidInput)
	}

	record := models.InvestmentRecord{
		ID:          m.newID(),
		Date:        m.Today(),
		Category:    ParseCategory(in.Category),
		Amount:      *in.Amount,
		Description: desc,
	}

	return updateAnimal(s, animalID,
		func(c *models.Cow) error {
			c.Investments = appendCopy(c.Investments, record)
			return nil
		},
		func(c *models.Calf) error {
			c.Investments = appendCopy(c.Investments, record)
			return nil
		})
}

// WeightInput is a new growth measurement. An empty date means today.
type WeightInput struct {
	Date   string  `json:"date"`
	Weight float64 `json:"weight"`
}

// RecordWeight appends a weight point to a calf. Points must not predate the
// last recorded one so the history stays ordered.
func (m *Mutator) RecordWeight(s models.FarmData, calfID string, in WeightInput) (models.FarmData, error) {
	if in.Weight <= 0 {
		return s, fmt.Errorf("%w: weight must be positive", ErrInvalidInput)
	}
	date := in.Date
	if date == "" {
		date = m.Today()
	}
	day, err := models.NormalizeDate(date)
	if err != nil {
		return s, fmt.Errorf("%w: date %q: %v", ErrInvalidInput, date, err)
	}

	i := s.FindCalf(calfID)
	if i < 0 {
		return s, ErrNotFound
	}
	calf := s.Calves[i]
	if n := len(calf.WeightHistory); n > 0 && day < calf.WeightHistory[n-1].Date {
		return s, fmt.Errorf("%w: weight date %s is before the last record", ErrInvalidInput, day)
	}
	calf.WeightHistory = appendCopy(calf.WeightHistory, models.WeightRecord{Date: day, Weight: in.Weight})

	next := s
	next.Calves = replaceAt(s.Calves, i, calf)
	return next, nil
}

func orDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}
