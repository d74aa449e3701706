package metrics

import (
	"github.com/mamadbah2/dairy/internal/domain/models"
)

const (
	growthFloorMargin   = 0.3
	growthCeilMargin    = 0.4
	growthFallbackRange = 10.0
)

// GrowthSeries is a calf's weight history with chart bounds.
type GrowthSeries struct {
	CalfID string                `json:"calfId"`
	Points []models.WeightRecord `json:"points"`
	Min    float64               `json:"min"`
	Max    float64               `json:"max"`
	YMin   float64               `json:"yMin"`
	YMax   float64               `json:"yMax"`
	Gain   float64               `json:"gain"`
}

// Growth returns the series of a calf. At least two weights are needed; a
// flat history uses a fixed range so the bounds stay apart.
func Growth(calf models.Calf) (GrowthSeries, error) {
	if len(calf.WeightHistory) < 2 {
		return GrowthSeries{}, ErrInsufficientData
	}

	lo, hi := calf.WeightHistory[0].Weight, calf.WeightHistory[0].Weight
	for _, p := range calf.WeightHistory[1:] {
		lo = min(lo, p.Weight)
		hi = max(hi, p.Weight)
	}
	span := hi - lo
	if span == 0 {
		span = growthFallbackRange
	}

	points := make([]models.WeightRecord, len(calf.WeightHistory))
	copy(points, calf.WeightHistory)

	return GrowthSeries{
		CalfID: calf.ID,
		Points: points,
		Min:    lo,
		Max:    hi,
		YMin:   lo - span*growthFloorMargin,
		YMax:   hi + span*growthCeilMargin,
		Gain:   points[len(points)-1].Weight - points[0].Weight,
	}, nil
}
