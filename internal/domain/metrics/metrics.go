// Package metrics derives financial and inventory summaries from a farm
// snapshot. Every function is a pure fold over its inputs.
package metrics

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/dairy/internal/domain/models"
)

var (
	// ErrUnknownPeriod indicates a period selector outside 1M, 6M, 1Y, 5Y and ALL.
	ErrUnknownPeriod = errors.New("unknown period")
	// ErrInsufficientData indicates a growth series with fewer than two points.
	ErrInsufficientData = errors.New("insufficient growth data")
	// ErrAnimalNotFound indicates no cow or calf carries the requested id.
	ErrAnimalNotFound = errors.New("animal not found")
)

var (
	two     = decimal.NewFromInt(2)
	hundred = decimal.NewFromInt(100)
)

// attendanceCost is the wage owed for one attendance mark.
func attendanceCost(salary decimal.Decimal, status models.AttendanceStatus) decimal.Decimal {
	switch status {
	case models.AttendancePresent:
		return salary
	case models.AttendanceHalfDay:
		return salary.Div(two)
	default:
		return decimal.Zero
	}
}

func sumInvestments(records []models.InvestmentRecord) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(r.Amount)
	}
	return total
}

// calendarDay truncates t to midnight UTC of its own calendar date so day
// differences are whole numbers.
func calendarDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
