package metrics

import "github.com/shopspring/decimal"

// MilkDensity is the approximate weight of one litre of milk in kilograms.
var MilkDensity = decimal.RequireFromString("1.03")

// KgToLitres converts a milk weight to volume, rounded to two places.
func KgToLitres(kg decimal.Decimal) decimal.Decimal {
	return kg.Div(MilkDensity).Round(2)
}

// LitresToKg converts a milk volume to weight, rounded to two places.
func LitresToKg(litres decimal.Decimal) decimal.Decimal {
	return litres.Mul(MilkDensity).Round(2)
}
