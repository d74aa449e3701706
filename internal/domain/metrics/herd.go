package metrics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/dairy/internal/domain/models"
)

// HerdSummary counts the herd and values it.
type HerdSummary struct {
	ActiveCows   int             `json:"activeCows"`
	ActiveCalves int             `json:"activeCalves"`
	TotalCows    int             `json:"totalCows"`
	TotalCalves  int             `json:"totalCalves"`
	Value        decimal.Decimal `json:"value"`
}

// HerdValue sums purchase price and investments of every cow and total cost
// and investments of every calf, whatever their life status.
func HerdValue(s models.FarmData) decimal.Decimal {
	total := decimal.Zero
	for _, cow := range s.Cows {
		total = total.Add(cow.PurchasePrice).Add(sumInvestments(cow.Investments))
	}
	for _, calf := range s.Calves {
		total = total.Add(calf.TotalCost).Add(sumInvestments(calf.Investments))
	}
	return total
}

// Herd returns the head counts and the herd value.
func Herd(s models.FarmData) HerdSummary {
	return HerdSummary{
		ActiveCows:   len(ActiveCows(s)),
		ActiveCalves: len(ActiveCalves(s)),
		TotalCows:    len(s.Cows),
		TotalCalves:  len(s.Calves),
		Value:        HerdValue(s),
	}
}

// AnimalInvestment is the money sunk into one animal.
type AnimalInvestment struct {
	AnimalID    string          `json:"animalId"`
	Kind        string          `json:"kind"`
	Base        decimal.Decimal `json:"base"`
	Medicine    decimal.Decimal `json:"medicine"`
	FeedProgram decimal.Decimal `json:"feedProgram"`
	Investments decimal.Decimal `json:"investments"`
	Total       decimal.Decimal `json:"total"`
}

// InvestmentFor totals one animal. A cow adds the price of every medicine
// targeting it to its purchase price; a calf adds the feed program cost
// accrued up to today to its total cost.
func InvestmentFor(s models.FarmData, animalID string, today time.Time) (AnimalInvestment, error) {
	if i := s.FindCow(animalID); i >= 0 {
		cow := s.Cows[i]
		medicine := decimal.Zero
		for _, med := range s.Medicines {
			if med.TargetID == cow.ID {
				medicine = medicine.Add(med.Price)
			}
		}
		out := AnimalInvestment{
			AnimalID:    cow.ID,
			Kind:        "cow",
			Base:        cow.PurchasePrice,
			Medicine:    medicine,
			FeedProgram: decimal.Zero,
			Investments: sumInvestments(cow.Investments),
		}
		out.Total = out.Base.Add(out.Medicine).Add(out.Investments)
		return out, nil
	}
	if i := s.FindCalf(animalID); i >= 0 {
		calf := s.Calves[i]
		out := AnimalInvestment{
			AnimalID:    calf.ID,
			Kind:        "calf",
			Base:        calf.TotalCost,
			Medicine:    decimal.Zero,
			FeedProgram: CalfFeedCost(calf, today),
			Investments: sumInvestments(calf.Investments),
		}
		out.Total = out.Base.Add(out.FeedProgram).Add(out.Investments)
		return out, nil
	}
	return AnimalInvestment{}, ErrAnimalNotFound
}

// ActiveCows returns the cows still on the farm.
func ActiveCows(s models.FarmData) []models.Cow {
	return filterCows(s.Cows, true)
}

// ArchivedCows returns sold and dead cows.
func ArchivedCows(s models.FarmData) []models.Cow {
	return filterCows(s.Cows, false)
}

// ActiveCalves returns the calves still on the farm.
func ActiveCalves(s models.FarmData) []models.Calf {
	return filterCalves(s.Calves, true)
}

// ArchivedCalves returns sold and dead calves.
func ArchivedCalves(s models.FarmData) []models.Calf {
	return filterCalves(s.Calves, false)
}

func filterCows(cows []models.Cow, active bool) []models.Cow {
	out := []models.Cow{}
	for _, cow := range cows {
		if (cow.LifeStatus == models.LifeActive) == active {
			out = append(out, cow)
		}
	}
	return out
}

func filterCalves(calves []models.Calf, active bool) []models.Calf {
	out := []models.Calf{}
	for _, calf := range calves {
		if (calf.LifeStatus == models.LifeActive) == active {
			out = append(out, calf)
		}
	}
	return out
}
