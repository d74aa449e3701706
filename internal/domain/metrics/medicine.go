package metrics

import (
	"github.com/shopspring/decimal"

	"github.com/mamadbah2/dairy/internal/domain/models"
)

// TargetKind tells what a medicine target id resolved to.
type TargetKind string

const (
	TargetCow     TargetKind = "COW"
	TargetCalf    TargetKind = "CALF"
	TargetUnknown TargetKind = "OTHER"
)

// Target is the display form of a medicine's animal.
type Target struct {
	Kind   TargetKind `json:"kind"`
	Name   string     `json:"name"`
	Detail string     `json:"detail"`
}

// MedicineStatus is the stock alert of one medicine.
type MedicineStatus struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Stock  decimal.Decimal `json:"stock"`
	IsOut  bool            `json:"isOut"`
	IsLow  bool            `json:"isLow"`
	Target Target          `json:"target"`
}

// ResolveTarget looks the id up among cows, then calves. A miss resolves to
// an Unknown placeholder carrying the raw id.
func ResolveTarget(s models.FarmData, id string) Target {
	if i := s.FindCow(id); i >= 0 {
		return Target{Kind: TargetCow, Name: s.Cows[i].Name, Detail: "#" + s.Cows[i].CowNumber}
	}
	if i := s.FindCalf(id); i >= 0 {
		name := s.Calves[i].Name
		if name == "" {
			name = "Unnamed Calf"
		}
		return Target{Kind: TargetCalf, Name: name, Detail: "Tag: " + s.Calves[i].TagID}
	}
	return Target{Kind: TargetUnknown, Name: "Unknown", Detail: "ID: " + id}
}

// MedicineAlert flags an empty or low medicine. An empty stock is always low
// for a non-negative threshold.
func MedicineAlert(s models.FarmData, med models.Medicine) MedicineStatus {
	return MedicineStatus{
		ID:     med.ID,
		Name:   med.Name,
		Stock:  med.CurrentStock,
		IsOut:  !med.CurrentStock.IsPositive(),
		IsLow:  med.CurrentStock.LessThanOrEqual(med.Threshold),
		Target: ResolveTarget(s, med.TargetID),
	}
}

// MedicineAlerts evaluates every medicine of the snapshot.
func MedicineAlerts(s models.FarmData) []MedicineStatus {
	out := make([]MedicineStatus, 0, len(s.Medicines))
	for _, med := range s.Medicines {
		out = append(out, MedicineAlert(s, med))
	}
	return out
}
