package metrics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/dairy/internal/domain/models"
)

// AgeDays is the number of whole days between the calf's date of birth and
// today. A calf with an unreadable birth date is treated as newborn.
func AgeDays(calf models.Calf, today time.Time) int {
	dob, err := models.ParseDate(calf.DOB)
	if err != nil {
		return 0
	}
	return int(calendarDay(today).Sub(dob).Hours() / 24)
}

// CalfFeedCost accrues each feeding step's daily cost over the days the calf
// has spent in its age range. Overlapping steps are each charged.
func CalfFeedCost(calf models.Calf, today time.Time) decimal.Decimal {
	age := AgeDays(calf, today)
	total := decimal.Zero
	for _, step := range calf.FeedingProgram {
		days := min(age, step.EndAgeDays) - max(0, step.StartAgeDays)
		if days > 0 {
			total = total.Add(step.DailyCost.Mul(decimal.NewFromInt(int64(days))))
		}
	}
	return total
}

// ActiveSteps returns the feeding steps whose age range contains the calf's
// current age.
func ActiveSteps(calf models.Calf, today time.Time) []models.FeedingProgramStep {
	age := AgeDays(calf, today)
	out := []models.FeedingProgramStep{}
	for _, step := range calf.FeedingProgram {
		if age >= step.StartAgeDays && age <= step.EndAgeDays {
			out = append(out, step)
		}
	}
	return out
}

// FeedStatus projects how long a feed line lasts.
type FeedStatus struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Type     models.FeedType `json:"type"`
	Stock    decimal.Decimal `json:"stock"`
	DaysLeft int64           `json:"daysLeft"`
	IsLow    bool            `json:"isLow"`
}

// FeedRunOut divides stock by daily consumption, with consumption floored at
// one unit so an idle line never divides by zero.
func FeedRunOut(feed models.FeedEntry) FeedStatus {
	divisor := decimal.Max(feed.DailyConsumption, decimal.NewFromInt(1))
	return FeedStatus{
		ID:       feed.ID,
		Name:     feed.Name,
		Type:     feed.Type,
		Stock:    feed.CurrentStock,
		DaysLeft: feed.CurrentStock.Div(divisor).Floor().IntPart(),
		IsLow:    feed.CurrentStock.LessThanOrEqual(feed.Threshold),
	}
}

// FeedRunOuts projects every feed line of the snapshot.
func FeedRunOuts(s models.FarmData) []FeedStatus {
	out := make([]FeedStatus, 0, len(s.Feeds))
	for _, feed := range s.Feeds {
		out = append(out, FeedRunOut(feed))
	}
	return out
}
