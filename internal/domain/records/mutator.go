// Package records implements the mutation operations over a farm snapshot.
//
// Every operation takes the current snapshot and a fully formed input and
// returns a new snapshot. The input snapshot is never modified: touched
// slices and maps are copied before they are written. When validation fails
// the input snapshot is returned as-is together with a sentinel error, and the
// caller must not persist anything.
package records

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/mamadbah2/dairy/internal/domain/models"
)

var (
	// ErrInvalidInput indicates a required field is missing or malformed.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound indicates the referenced record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrSalePriceRequired indicates a Sold transition without a sale price.
	ErrSalePriceRequired = errors.New("sale price required")
	// ErrConfirmationRequired indicates a Dead transition that was not confirmed.
	ErrConfirmationRequired = errors.New("confirmation required")
	// ErrInvalidTransition indicates a life status change that is not allowed.
	ErrInvalidTransition = errors.New("invalid life status transition")
	// ErrInactiveAnimal indicates a sold or dead animal was targeted by feed or medicine.
	ErrInactiveAnimal = errors.New("animal is not active")
)

// Mutator produces new snapshots. It carries the clock, the id generator and
// the milk-sale cost model so the operations stay deterministic under test.
type Mutator struct {
	costs models.CostModel
	now   func() time.Time
	newID func() string
}

// NewMutator builds a Mutator. A nil clock falls back to time.Now.
func NewMutator(costs models.CostModel, now func() time.Time) *Mutator {
	if now == nil {
		now = time.Now
	}
	return &Mutator{
		costs: costs,
		now:   now,
		newID: uuid.NewString,
	}
}

// Today returns the mutator's current calendar date.
func (m *Mutator) Today() string {
	return models.FormatDate(m.now())
}

func appendCopy[T any](s []T, v T) []T {
	out := make([]T, 0, len(s)+1)
	out = append(out, s...)
	return append(out, v)
}

func prependCopy[T any](s []T, v T) []T {
	out := make([]T, 0, len(s)+1)
	out = append(out, v)
	return append(out, s...)
}

func replaceAt[T any](s []T, i int, v T) []T {
	out := make([]T, len(s))
	copy(out, s)
	out[i] = v
	return out
}

// updateAnimal applies the matching callback to a copy of the cow or calf with
// id and returns a snapshot holding the copy. Cows are searched first.
func updateAnimal(s models.FarmData, id string, onCow func(*models.Cow) error, onCalf func(*models.Calf) error) (models.FarmData, error) {
	if i := s.FindCow(id); i >= 0 {
		cow := s.Cows[i]
		if err := onCow(&cow); err != nil {
			return s, err
		}
		next := s
		next.Cows = replaceAt(s.Cows, i, cow)
		return next, nil
	}
	if i := s.FindCalf(id); i >= 0 {
		calf := s.Calves[i]
		if err := onCalf(&calf); err != nil {
			return s, err
		}
		next := s
		next.Calves = replaceAt(s.Calves, i, calf)
		return next, nil
	}
	return s, ErrNotFound
}
