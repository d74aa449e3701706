package metrics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/dairy/internal/domain/models"
)

// grainPerLitre is the concentrate ration suggested per litre sold.
var grainPerLitre = decimal.RequireFromString("0.4")

// DailySummary is the profit and loss of a single calendar day.
type DailySummary struct {
	Date          string          `json:"date"`
	MilkLitres    decimal.Decimal `json:"milkLitres"`
	MilkRevenue   decimal.Decimal `json:"milkRevenue"`
	LabourExpense decimal.Decimal `json:"labourExpense"`
	FeedExpense   decimal.Decimal `json:"feedExpense"`
	NetProfit     decimal.Decimal `json:"netProfit"`
}

// DailyPnL computes today's milk revenue minus the wages of today's
// attendance and the rated daily burn of every feed line. Feed expense does
// not depend on stock levels.
func DailyPnL(s models.FarmData, today time.Time) DailySummary {
	date := models.FormatDate(today)
	out := DailySummary{
		Date:          date,
		MilkLitres:    decimal.Zero,
		MilkRevenue:   decimal.Zero,
		LabourExpense: decimal.Zero,
		FeedExpense:   decimal.Zero,
	}

	for _, sale := range s.MilkSales {
		if sale.Date != date {
			continue
		}
		out.MilkLitres = out.MilkLitres.Add(sale.Quantity)
		out.MilkRevenue = out.MilkRevenue.Add(sale.TotalAmount)
	}
	for _, worker := range s.Labours {
		out.LabourExpense = out.LabourExpense.Add(attendanceCost(worker.DailySalary, worker.Attendance[date]))
	}
	for _, feed := range s.Feeds {
		out.FeedExpense = out.FeedExpense.Add(feed.DailyConsumption.Mul(feed.UnitPrice))
	}

	out.NetProfit = out.MilkRevenue.Sub(out.LabourExpense).Sub(out.FeedExpense)
	return out
}

// SuggestedGrain is the concentrate to feed for today's milk volume.
func SuggestedGrain(s models.FarmData, today time.Time) decimal.Decimal {
	return DailyPnL(s, today).MilkLitres.Mul(grainPerLitre)
}
