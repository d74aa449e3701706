package metrics

import (
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/dairy/internal/domain/models"
)

func TestParsePeriod(t *testing.T) {
	cases := map[string]Period{"": PeriodMonth, "1m": PeriodMonth, "6M": PeriodHalfYear, " 1y": PeriodYear, "5Y": PeriodFiveYears, "all": PeriodAll}
	for in, want := range cases {
		got, err := ParsePeriod(in)
		if err != nil || got != want {
			t.Fatalf("ParsePeriod(%q) = %s, %v; want %s", in, got, err, want)
		}
	}
	if _, err := ParsePeriod("2W"); !errors.Is(err, ErrUnknownPeriod) {
		t.Fatalf("expected ErrUnknownPeriod, got %v", err)
	}
}

func TestPeriodCutoff(t *testing.T) {
	want := map[Period]string{
		PeriodMonth:     "2026-02-15",
		PeriodHalfYear:  "2025-09-15",
		PeriodYear:      "2025-03-15",
		PeriodFiveYears: "2021-03-15",
		PeriodAll:       "1970-01-01",
	}
	for p, cutoff := range want {
		if got := p.Cutoff(today); got != cutoff {
			t.Fatalf("%s cutoff = %s, want %s", p, got, cutoff)
		}
	}
}

func TestPeriodFilterIsMonotone(t *testing.T) {
	dates := []string{"1999-12-31", "2021-03-14", "2021-03-15", "2024-06-01", "2025-03-15", "2025-10-01", "2026-02-14", "2026-02-15", "2026-03-15"}

	for i := 1; i < len(Periods); i++ {
		narrow, wide := Periods[i-1].Window(today), Periods[i].Window(today)
		for _, date := range dates {
			if narrow.Includes(date) && !wide.Includes(date) {
				t.Fatalf("%s includes %s but %s does not", Periods[i-1], date, Periods[i])
			}
		}
	}

	month := PeriodMonth.Window(today)
	if month.Includes("2026-02-14") || !month.Includes("2026-02-15") {
		t.Fatalf("month window boundary is wrong for cutoff %s", month.Cutoff)
	}
}

func periodFixture() models.FarmData {
	s := models.NewFarmData()
	s.MilkSales = []models.MilkSale{
		{ID: "s1", Date: "2026-03-10", Quantity: d("20"), TotalAmount: d("1000")},
		{ID: "s2", Date: "2025-12-01", Quantity: d("30"), TotalAmount: d("1500")},
		{ID: "s3", Date: "2020-01-01", Quantity: d("10"), TotalAmount: d("400")},
	}
	s.Cows = []models.Cow{
		{
			ID:          "c1",
			LifeStatus:  models.LifeSold,
			SalePrice:   ptr("60000"),
			SaleDate:    "2026-03-01",
			Investments: []models.InvestmentRecord{{Date: "2026-03-05", Category: models.CategoryFeed, Amount: d("300")}, {Date: "2025-06-01", Category: models.CategoryGenetic, Amount: d("1500")}},
		},
		{ID: "c2", LifeStatus: models.LifeSold, SalePrice: ptr("40000")},
	}
	s.Calves = []models.Calf{{
		ID:          "k1",
		LifeStatus:  models.LifeSold,
		SalePrice:   ptr("9000"),
		SaleDate:    "2024-01-01",
		Investments: []models.InvestmentRecord{{Date: "2026-03-02", Category: models.CategoryMedicine, Amount: d("100")}},
	}}
	s.Expenses = []models.Expense{
		{ID: "e1", Category: "Feed Purchase", Amount: d("700"), Date: "2026-03-03"},
		{ID: "e2", Category: "cattle FEED", Amount: d("200"), Date: "2026-02-20"},
		{ID: "e3", Category: "Repairs", Amount: d("250"), Date: "2026-03-04"},
		{ID: "e4", Category: "Repairs", Amount: d("5000"), Date: "2023-03-04"},
	}
	s.Labours = []models.Labour{{
		ID:          "w1",
		DailySalary: d("400"),
		Attendance: map[string]models.AttendanceStatus{
			"2026-03-14": models.AttendancePresent,
			"2026-03-13": models.AttendanceHalfDay,
			"2026-03-12": models.AttendanceAbsent,
			"2025-01-01": models.AttendancePresent,
		},
	}}
	return s
}

func TestPeriodPnL(t *testing.T) {
	s := periodFixture()

	month := PeriodPnL(s, today, PeriodMonth)
	assertDecimal(t, "milk", month.MilkRevenue, "1000")
	assertDecimal(t, "animal sales", month.AnimalSaleRevenue, "100000")
	assertDecimal(t, "investments", month.InvestmentTotal, "400")
	assertDecimal(t, "misc", month.MiscExpenses, "1150")
	assertDecimal(t, "labour", month.LabourCost, "600")
	assertDecimal(t, "net", month.NetProfit, "97850")

	all := PeriodPnL(s, today, PeriodAll)
	assertDecimal(t, "all milk", all.MilkRevenue, "2900")
	assertDecimal(t, "all animal sales", all.AnimalSaleRevenue, "109000")
	assertDecimal(t, "all investments", all.InvestmentTotal, "1900")
	assertDecimal(t, "all labour", all.LabourCost, "1000")
	if all.Cutoff != "1970-01-01" {
		t.Fatalf("unexpected cutoff %s", all.Cutoff)
	}
}

func TestCategoryBreakdown(t *testing.T) {
	s := periodFixture()

	for _, p := range Periods {
		shares, total := CategoryBreakdown(s, today, p)
		if len(shares) != len(models.InvestmentCategories) {
			t.Fatalf("%s: expected %d shares, got %d", p, len(models.InvestmentCategories), len(shares))
		}
		sum := 0.0
		amounts := decimal.Zero
		for _, share := range shares {
			sum += share.Percent
			amounts = amounts.Add(share.Amount)
		}
		if !amounts.Equal(total) {
			t.Fatalf("%s: shares sum to %s, total %s", p, amounts, total)
		}
		if math.Abs(sum-100) > 1e-6 {
			t.Fatalf("%s: percentages sum to %v", p, sum)
		}
	}

	shares, total := CategoryBreakdown(models.NewFarmData(), today, PeriodAll)
	if !total.IsZero() {
		t.Fatalf("expected zero total, got %s", total)
	}
	for _, share := range shares {
		if share.Percent != 0 {
			t.Fatalf("%s: expected 0 percent on empty herd, got %v", share.Category, share.Percent)
		}
	}

	monthly, _ := CategoryBreakdown(s, today, PeriodMonth)
	if monthly[0].Category != models.CategoryFeed || math.Abs(monthly[0].Percent-75) > 1e-9 {
		t.Fatalf("unexpected feed share %+v", monthly[0])
	}
}

func TestReport(t *testing.T) {
	s := periodFixture()

	got := Report(s, today, PeriodMonth)
	assertDecimal(t, "volume", got.MilkVolume, "20")
	assertDecimal(t, "revenue", got.MilkRevenue, "1000")
	assertDecimal(t, "feed purchases", got.FeedPurchases, "900")
	assertDecimal(t, "other", got.OtherExpenses, "250")
	assertDecimal(t, "labour", got.LabourCost, "600")
	assertDecimal(t, "spending", got.TotalSpending, "1750")
	assertDecimal(t, "net", got.NetProfit, "-750")
	if got.Surplus {
		t.Fatalf("expected a deficit")
	}

	s.MilkSales[0].TotalAmount = d("5000")
	if !Report(s, today, PeriodMonth).Surplus {
		t.Fatalf("expected a surplus")
	}
}
