package metrics

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/dairy/internal/domain/models"
)

// Period is a trailing reporting window ending today.
type Period string

const (
	PeriodMonth     Period = "1M"
	PeriodHalfYear  Period = "6M"
	PeriodYear      Period = "1Y"
	PeriodFiveYears Period = "5Y"
	PeriodAll       Period = "ALL"
)

// Periods lists the windows from narrowest to widest.
var Periods = []Period{PeriodMonth, PeriodHalfYear, PeriodYear, PeriodFiveYears, PeriodAll}

// epoch is the cutoff of the ALL window.
const epoch = "1970-01-01"

// ParsePeriod resolves a selector. An empty selector means one month.
func ParsePeriod(value string) (Period, error) {
	if value == "" {
		return PeriodMonth, nil
	}
	p := Period(strings.ToUpper(strings.TrimSpace(value)))
	for _, known := range Periods {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPeriod, value)
}

// Cutoff returns the first ISO date inside the window, computed by calendar
// arithmetic from today.
func (p Period) Cutoff(today time.Time) string {
	switch p {
	case PeriodMonth:
		return models.FormatDate(today.AddDate(0, -1, 0))
	case PeriodHalfYear:
		return models.FormatDate(today.AddDate(0, -6, 0))
	case PeriodYear:
		return models.FormatDate(today.AddDate(-1, 0, 0))
	case PeriodFiveYears:
		return models.FormatDate(today.AddDate(-5, 0, 0))
	default:
		return epoch
	}
}

// Window selects records dated on or after Cutoff.
type Window struct {
	Cutoff string
}

// Window returns the date filter of p as seen from today.
func (p Period) Window(today time.Time) Window {
	return Window{Cutoff: p.Cutoff(today)}
}

// Includes reports whether an ISO date falls inside the window.
func (w Window) Includes(date string) bool {
	return date >= w.Cutoff
}

// CategoryShare is one line of the investment breakdown.
type CategoryShare struct {
	Category models.InvestmentCategory `json:"category"`
	Amount   decimal.Decimal           `json:"amount"`
	Percent  float64                   `json:"percent"`
}

// CategoryBreakdown sums the herd's investments per category within the
// window. Percentages are shares of the categorized total, all zero when the
// total is zero.
func CategoryBreakdown(s models.FarmData, today time.Time, p Period) ([]CategoryShare, decimal.Decimal) {
	w := p.Window(today)
	sums := make(map[models.InvestmentCategory]decimal.Decimal, len(models.InvestmentCategories))
	add := func(records []models.InvestmentRecord) {
		for _, r := range records {
			if w.Includes(r.Date) {
				sums[r.Category] = sums[r.Category].Add(r.Amount)
			}
		}
	}
	for _, cow := range s.Cows {
		add(cow.Investments)
	}
	for _, calf := range s.Calves {
		add(calf.Investments)
	}

	total := decimal.Zero
	for _, c := range models.InvestmentCategories {
		total = total.Add(sums[c])
	}

	shares := make([]CategoryShare, 0, len(models.InvestmentCategories))
	for _, c := range models.InvestmentCategories {
		share := CategoryShare{Category: c, Amount: sums[c]}
		if total.IsPositive() {
			share.Percent = sums[c].Div(total).Mul(hundred).InexactFloat64()
		}
		shares = append(shares, share)
	}
	return shares, total
}

// PeriodSummary is the profit and loss of a reporting window.
type PeriodSummary struct {
	Period            Period          `json:"period"`
	Cutoff            string          `json:"cutoff"`
	MilkRevenue       decimal.Decimal `json:"milkRevenue"`
	AnimalSaleRevenue decimal.Decimal `json:"animalSaleRevenue"`
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
	Investments       []CategoryShare `json:"investments"`
	InvestmentTotal   decimal.Decimal `json:"investmentTotal"`
	MiscExpenses      decimal.Decimal `json:"miscExpenses"`
	LabourCost        decimal.Decimal `json:"labourCost"`
	NetProfit         decimal.Decimal `json:"netProfit"`
}

// PeriodPnL folds milk sales, animal sales, investments, misc expenses and
// attendance into a window. Animal sales are filtered by their sale date;
// sales recorded without one are always included.
func PeriodPnL(s models.FarmData, today time.Time, p Period) PeriodSummary {
	w := p.Window(today)
	out := PeriodSummary{
		Period:            p,
		Cutoff:            w.Cutoff,
		MilkRevenue:       milkRevenue(s, w),
		AnimalSaleRevenue: animalSaleRevenue(s, w),
		MiscExpenses:      decimal.Zero,
		LabourCost:        labourCost(s, w),
	}
	out.TotalRevenue = out.MilkRevenue.Add(out.AnimalSaleRevenue)
	out.Investments, out.InvestmentTotal = CategoryBreakdown(s, today, p)

	for _, e := range s.Expenses {
		if w.Includes(e.Date) {
			out.MiscExpenses = out.MiscExpenses.Add(e.Amount)
		}
	}

	out.NetProfit = out.TotalRevenue.Sub(out.InvestmentTotal).Sub(out.MiscExpenses).Sub(out.LabourCost)
	return out
}

// PeriodReport is the spending report of a window. Feed purchases are the
// expenses whose category mentions feed.
type PeriodReport struct {
	Period        Period          `json:"period"`
	Cutoff        string          `json:"cutoff"`
	MilkVolume    decimal.Decimal `json:"milkVolume"`
	MilkRevenue   decimal.Decimal `json:"milkRevenue"`
	FeedPurchases decimal.Decimal `json:"feedPurchases"`
	OtherExpenses decimal.Decimal `json:"otherExpenses"`
	LabourCost    decimal.Decimal `json:"labourCost"`
	TotalSpending decimal.Decimal `json:"totalSpending"`
	NetProfit     decimal.Decimal `json:"netProfit"`
	Surplus       bool            `json:"surplus"`
}

// Report builds the spending report of a window.
func Report(s models.FarmData, today time.Time, p Period) PeriodReport {
	w := p.Window(today)
	out := PeriodReport{
		Period:        p,
		Cutoff:        w.Cutoff,
		MilkVolume:    decimal.Zero,
		MilkRevenue:   decimal.Zero,
		FeedPurchases: decimal.Zero,
		OtherExpenses: decimal.Zero,
		LabourCost:    labourCost(s, w),
	}
	for _, sale := range s.MilkSales {
		if w.Includes(sale.Date) {
			out.MilkVolume = out.MilkVolume.Add(sale.Quantity)
			out.MilkRevenue = out.MilkRevenue.Add(sale.TotalAmount)
		}
	}
	for _, e := range s.Expenses {
		if !w.Includes(e.Date) {
			continue
		}
		if strings.Contains(strings.ToLower(e.Category), "feed") {
			out.FeedPurchases = out.FeedPurchases.Add(e.Amount)
		} else {
			out.OtherExpenses = out.OtherExpenses.Add(e.Amount)
		}
	}

	out.TotalSpending = out.FeedPurchases.Add(out.OtherExpenses).Add(out.LabourCost)
	out.NetProfit = out.MilkRevenue.Sub(out.TotalSpending)
	out.Surplus = !out.NetProfit.IsNegative()
	return out
}

func milkRevenue(s models.FarmData, w Window) decimal.Decimal {
	total := decimal.Zero
	for _, sale := range s.MilkSales {
		if w.Includes(sale.Date) {
			total = total.Add(sale.TotalAmount)
		}
	}
	return total
}

func animalSaleRevenue(s models.FarmData, w Window) decimal.Decimal {
	total := decimal.Zero
	include := func(price *decimal.Decimal, date string) {
		if price != nil && (date == "" || w.Includes(date)) {
			total = total.Add(*price)
		}
	}
	for _, cow := range s.Cows {
		include(cow.SalePrice, cow.SaleDate)
	}
	for _, calf := range s.Calves {
		include(calf.SalePrice, calf.SaleDate)
	}
	return total
}

func labourCost(s models.FarmData, w Window) decimal.Decimal {
	total := decimal.Zero
	for _, worker := range s.Labours {
		for date, status := range worker.Attendance {
			if w.Includes(date) {
				total = total.Add(attendanceCost(worker.DailySalary, status))
			}
		}
	}
	return total
}
