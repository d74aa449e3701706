package records

import (
	"github.com/shopspring/decimal"
)

// DietTemplate names a ready-made feeding program step.
type DietTemplate string

const (
	DietMilking    DietTemplate = "milking"
	DietDry        DietTemplate = "dry"
	DietCalfPhase1 DietTemplate = "calf-phase-1"
	DietCalfPhase2 DietTemplate = "calf-phase-2"
	DietCalfPhase3 DietTemplate = "calf-phase-3"
)

// cowLifetimeDays keeps status diets active for the whole life of a cow.
const cowLifetimeDays = 9999

var dietTemplates = map[DietTemplate]FeedingStepInput{
	DietMilking:    step(0, cowLifetimeDays, "Milking Ration", 5, 180),
	DietDry:        step(0, cowLifetimeDays, "Dry Maintenance", 5, 90),
	DietCalfPhase1: step(4, 90, "Starter (4d-3m)", 1, 45),
	DietCalfPhase2: step(91, 180, "Grower (4-6m)", 1, 65),
	DietCalfPhase3: step(181, 390, "Heifer (7-13m)", 1, 85),
}

func step(start, end int, name string, qty, cost int64) FeedingStepInput {
	dailyCost := decimal.NewFromInt(cost)
	return FeedingStepInput{
		StartAgeDays: start,
		EndAgeDays:   end,
		FeedName:     name,
		DailyQty:     decimal.NewFromInt(qty),
		DailyCost:    &dailyCost,
	}
}

// Diet returns the feeding step for a template.
func Diet(t DietTemplate) (FeedingStepInput, bool) {
	in, ok := dietTemplates[t]
	return in, ok
}
