package models

import "github.com/shopspring/decimal"

// CostModel holds the per-sale estimates attached to every milk sale. They are
// heuristics, not ledger postings.
type CostModel struct {
	MilkSaleLaborCost decimal.Decimal
	FeedCostPerLitre  decimal.Decimal
}

// DefaultCostModel is a flat 150 labour cost and 15 per litre of feed.
func DefaultCostModel() CostModel {
	return CostModel{
		MilkSaleLaborCost: decimal.NewFromInt(150),
		FeedCostPerLitre:  decimal.NewFromInt(15),
	}
}
