package records

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/dairy/internal/domain/models"
)

func TestRegisterCowDefaults(t *testing.T) {
	m := newTestMutator()
	s, cow, err := m.RegisterCow(models.NewFarmData(), CowInput{Name: " Gauri ", CowNumber: "7"})
	if err != nil {
		t.Fatalf("register cow: %v", err)
	}
	if cow.Name != "Gauri" || cow.TagID != "No-Tag" || cow.Breed != "Jersey" || cow.Status != models.CowMilking {
		t.Fatalf("unexpected defaults %+v", cow)
	}
	if !cow.Weight.Equal(decimal.NewFromInt(400)) {
		t.Fatalf("expected weight 400, got %s", cow.Weight)
	}
	if cow.IsBought == nil || !*cow.IsBought || cow.LifeStatus != models.LifeActive {
		t.Fatalf("expected bought active cow, got %+v", cow)
	}
	if len(s.Cows) != 1 || s.Cows[0].ID != "id-1" {
		t.Fatalf("cow not appended: %+v", s.Cows)
	}

	for _, in := range []CowInput{{Name: "x"}, {CowNumber: "1"}, {Name: "x", CowNumber: "1", PurchasePrice: decimal.NewFromInt(-1)}} {
		next, _, err := m.RegisterCow(s, in)
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("input %+v expected ErrInvalidInput, got %v", in, err)
		}
		if len(next.Cows) != 1 {
			t.Fatalf("snapshot changed on rejected input")
		}
	}
}

func TestRegisterCalf(t *testing.T) {
	m := newTestMutator()
	s, calf, err := m.RegisterCalf(models.NewFarmData(), CalfInput{TagID: "C-1", DOB: "2026-01-10", InitialCost: decimal.NewFromInt(2000)})
	if err != nil {
		t.Fatalf("register calf: %v", err)
	}
	if len(calf.WeightHistory) != 1 || calf.WeightHistory[0].Weight != 35 || calf.WeightHistory[0].Date != "2026-01-10" {
		t.Fatalf("unexpected weight history %+v", calf.WeightHistory)
	}
	if calf.Generation != "F1" || !calf.GeneticPotential.Equal(decimal.NewFromInt(15)) {
		t.Fatalf("unexpected defaults %+v", calf)
	}
	if len(s.Calves) != 1 {
		t.Fatalf("calf not appended")
	}

	if _, _, err := m.RegisterCalf(s, CalfInput{TagID: "C-2", DOB: "10/01/2026"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for bad dob, got %v", err)
	}
	if _, _, err := m.RegisterCalf(s, CalfInput{DOB: "2026-01-10"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing tag, got %v", err)
	}
}

func TestUpdateLifeStatus(t *testing.T) {
	m := newTestMutator()
	s, cow, _ := m.RegisterCow(models.NewFarmData(), CowInput{Name: "Gauri", CowNumber: "7"})
	s, calf, _ := m.RegisterCalf(s, CalfInput{TagID: "C-1", DOB: "2026-01-10"})

	t.Run("sold without price leaves snapshot unchanged", func(t *testing.T) {
		next, err := m.UpdateLifeStatus(s, cow.ID, LifeStatusInput{Status: models.LifeSold})
		if !errors.Is(err, ErrSalePriceRequired) {
			t.Fatalf("expected ErrSalePriceRequired, got %v", err)
		}
		if next.Cows[0].LifeStatus != models.LifeActive || next.Cows[0].SalePrice != nil {
			t.Fatalf("cow changed: %+v", next.Cows[0])
		}
	})

	t.Run("dead requires confirmation", func(t *testing.T) {
		next, err := m.UpdateLifeStatus(s, calf.ID, LifeStatusInput{Status: models.LifeDead})
		if !errors.Is(err, ErrConfirmationRequired) {
			t.Fatalf("expected ErrConfirmationRequired, got %v", err)
		}
		if next.Calves[0].LifeStatus != models.LifeActive {
			t.Fatalf("calf changed")
		}
	})

	t.Run("sold records price and date", func(t *testing.T) {
		next, err := m.UpdateLifeStatus(s, cow.ID, LifeStatusInput{Status: models.LifeSold, SalePrice: dec("65000")})
		if err != nil {
			t.Fatalf("sell cow: %v", err)
		}
		got := next.Cows[0]
		if got.LifeStatus != models.LifeSold || got.SalePrice == nil || !got.SalePrice.Equal(decimal.NewFromInt(65000)) || got.SaleDate != "2026-03-15" {
			t.Fatalf("unexpected sold cow %+v", got)
		}
		if s.Cows[0].LifeStatus != models.LifeActive {
			t.Fatalf("input snapshot modified")
		}

		if _, err := m.UpdateLifeStatus(next, cow.ID, LifeStatusInput{Status: models.LifeDead, Confirmed: true}); !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition from terminal state, got %v", err)
		}
	})

	t.Run("dead confirmed", func(t *testing.T) {
		next, err := m.UpdateLifeStatus(s, calf.ID, LifeStatusInput{Status: models.LifeDead, Confirmed: true})
		if err != nil {
			t.Fatalf("mark dead: %v", err)
		}
		if next.Calves[0].LifeStatus != models.LifeDead || next.Calves[0].SalePrice != nil {
			t.Fatalf("unexpected dead calf %+v", next.Calves[0])
		}
	})

	t.Run("reactivation rejected", func(t *testing.T) {
		if _, err := m.UpdateLifeStatus(s, cow.ID, LifeStatusInput{Status: models.LifeActive}); !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}
	})

	t.Run("unknown animal", func(t *testing.T) {
		if _, err := m.UpdateLifeStatus(s, "ghost", LifeStatusInput{Status: models.LifeDead, Confirmed: true}); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestParseCategory(t *testing.T) {
	cases := map[string]models.InvestmentCategory{
		"1":        models.CategoryFeed,
		"2":        models.CategoryMedicine,
		"3":        models.CategoryGenetic,
		"4":        models.CategoryOther,
		"feed":     models.CategoryFeed,
		"Genetic":  models.CategoryGenetic,
		"9":        models.CategoryOther,
		"":         models.CategoryOther,
		"vitamins": models.CategoryOther,
	}
	for in, want := range cases {
		if got := ParseCategory(in); got != want {
			t.Fatalf("ParseCategory(%q) = %s, want %s", in, got, want)
		}
		if !ParseCategory(in).Valid() {
			t.Fatalf("ParseCategory(%q) returned an invalid category", in)
		}
	}
}

func TestLogInvestmentAllowedOnInactive(t *testing.T) {
	m := newTestMutator()
	s, cow, _ := m.RegisterCow(models.NewFarmData(), CowInput{Name: "Gauri", CowNumber: "7"})
	s, _ = m.UpdateLifeStatus(s, cow.ID, LifeStatusInput{Status: models.LifeDead, Confirmed: true})

	next, err := m.LogInvestment(s, cow.ID, InvestmentInput{Category: "2", Amount: dec("350"), Description: "Vet"})
	if err != nil {
		t.Fatalf("log investment: %v", err)
	}
	inv := next.Cows[0].Investments
	if len(inv) != 1 || inv[0].Category != models.CategoryMedicine || inv[0].Date != "2026-03-15" {
		t.Fatalf("unexpected investments %+v", inv)
	}
	if len(s.Cows[0].Investments) != 0 {
		t.Fatalf("input snapshot modified")
	}

	if _, err := m.LogInvestment(s, cow.ID, InvestmentInput{Description: "Vet"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestFeedingProgramAndTemplates(t *testing.T) {
	m := newTestMutator()
	s, calf, _ := m.RegisterCalf(models.NewFarmData(), CalfInput{TagID: "C-1", DOB: "2026-01-10"})

	for _, tpl := range []DietTemplate{DietCalfPhase1, DietCalfPhase2, DietCalfPhase3} {
		in, ok := Diet(tpl)
		if !ok {
			t.Fatalf("missing template %s", tpl)
		}
		var err error
		s, err = m.AddFeedingProgramStep(s, calf.ID, in)
		if err != nil {
			t.Fatalf("apply %s: %v", tpl, err)
		}
	}

	steps := s.Calves[0].FeedingProgram
	if len(steps) != 3 {
		t.Fatalf("expected 3 steps, got %d", len(steps))
	}
	if steps[0].StartAgeDays != 4 || steps[0].EndAgeDays != 90 || !steps[0].DailyCost.Equal(decimal.NewFromInt(45)) {
		t.Fatalf("unexpected phase 1 step %+v", steps[0])
	}
	if steps[2].FeedName != "Heifer (7-13m)" || !steps[2].DailyCost.Equal(decimal.NewFromInt(85)) {
		t.Fatalf("unexpected phase 3 step %+v", steps[2])
	}

	if _, ok := Diet("keto"); ok {
		t.Fatalf("unknown template resolved")
	}

	s, _ = m.UpdateLifeStatus(s, calf.ID, LifeStatusInput{Status: models.LifeDead, Confirmed: true})
	in, _ := Diet(DietMilking)
	if _, err := m.AddFeedingProgramStep(s, calf.ID, in); !errors.Is(err, ErrInactiveAnimal) {
		t.Fatalf("expected ErrInactiveAnimal, got %v", err)
	}
	if _, err := m.AddFeedingProgramStep(s, calf.ID, FeedingStepInput{FeedName: "x"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRecordWeight(t *testing.T) {
	m := newTestMutator()
	s, calf, _ := m.RegisterCalf(models.NewFarmData(), CalfInput{TagID: "C-1", DOB: "2026-01-10"})

	s, err := m.RecordWeight(s, calf.ID, WeightInput{Weight: 62.5})
	if err != nil {
		t.Fatalf("record weight: %v", err)
	}
	hist := s.Calves[0].WeightHistory
	if len(hist) != 2 || hist[1].Date != "2026-03-15" || hist[1].Weight != 62.5 {
		t.Fatalf("unexpected history %+v", hist)
	}

	if _, err := m.RecordWeight(s, calf.ID, WeightInput{Date: "2026-02-01", Weight: 50}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for out-of-order date, got %v", err)
	}
	if _, err := m.RecordWeight(s, calf.ID, WeightInput{Weight: 0}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for zero weight, got %v", err)
	}
	if _, err := m.RecordWeight(s, "ghost", WeightInput{Weight: 10}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
