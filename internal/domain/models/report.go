package models

import "time"

// DailyReport is the end-of-day farm summary archived in MongoDB and exported
// to Google Sheets. Amounts are stored as floats for the archive; the engine
// computes them with exact decimals.
type DailyReport struct {
	Date             string    `bson:"date" json:"date"`
	MilkLitres       float64   `bson:"milk_litres" json:"milk_litres"`
	MilkRevenue      float64   `bson:"milk_revenue" json:"milk_revenue"`
	LabourExpense    float64   `bson:"labour_expense" json:"labour_expense"`
	FeedExpense      float64   `bson:"feed_expense" json:"feed_expense"`
	NetProfit        float64   `bson:"net_profit" json:"net_profit"`
	HerdValue        float64   `bson:"herd_value" json:"herd_value"`
	ActiveAnimals    int       `bson:"active_animals" json:"active_animals"`
	LowFeedLines     int       `bson:"low_feed_lines" json:"low_feed_lines"`
	LowMedicineLines int       `bson:"low_medicine_lines" json:"low_medicine_lines"`
	CreatedAt        time.Time `bson:"created_at" json:"created_at"`
}

// Row renders the report as a spreadsheet row.
func (r DailyReport) Row() []interface{} {
	return []interface{}{
		r.Date,
		r.MilkLitres,
		r.MilkRevenue,
		r.LabourExpense,
		r.FeedExpense,
		r.NetProfit,
		r.HerdValue,
		r.ActiveAnimals,
		r.LowFeedLines,
		r.LowMedicineLines,
	}
}
