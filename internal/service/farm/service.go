// Package farm owns the live farm snapshot. It serializes mutations, persists
// every accepted change and only then makes it visible to readers.
package farm

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/dairy/internal/domain/models"
	"github.com/mamadbah2/dairy/internal/domain/records"
)

// SnapshotRepository loads and saves the whole record set.
type SnapshotRepository interface {
	Load(ctx context.Context) (models.FarmData, error)
	Save(ctx context.Context, data models.FarmData) error
}

// Mutation turns the current snapshot into the next one.
type Mutation func(models.FarmData) (models.FarmData, error)

// Service is the single writer of the farm snapshot.
type Service struct {
	mu      sync.RWMutex
	current models.FarmData
	repo    SnapshotRepository
	mutator *records.Mutator
	now     func() time.Time
	logger  *zap.Logger
}

// NewService wires a state container starting from the empty snapshot. Call
// Load to read the persisted one.
func NewService(repo SnapshotRepository, costs models.CostModel, now func() time.Time, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if now == nil {
		now = time.Now
	}
	return &Service{
		current: models.NewFarmData(),
		repo:    repo,
		mutator: records.NewMutator(costs, now),
		now:     now,
		logger:  logger,
	}
}

// Load replaces the in-memory snapshot with the persisted one.
func (s *Service) Load(ctx context.Context) error {
	data, err := s.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}

	s.mu.Lock()
	s.current = data
	s.mu.Unlock()

	s.logger.Info("snapshot loaded",
		zap.Int("cows", len(data.Cows)),
		zap.Int("calves", len(data.Calves)),
		zap.Int("milk_sales", len(data.MilkSales)),
	)
	return nil
}

// Snapshot returns the current snapshot. Callers must not modify it.
func (s *Service) Snapshot() models.FarmData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Now returns the service clock, in the farm's time zone.
func (s *Service) Now() time.Time {
	return s.now()
}

// Apply runs a mutation against the current snapshot, persists the result and
// swaps it in. On a rejected mutation or a failed save the current snapshot
// stays as it was.
func (s *Service) Apply(ctx context.Context, name string, mutate Mutation) (models.FarmData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := mutate(s.current)
	if err != nil {
		s.logger.Debug("mutation rejected", zap.String("op", name), zap.Error(err))
		return s.current, err
	}

	if err := s.repo.Save(ctx, next); err != nil {
		s.logger.Error("failed to persist snapshot", zap.String("op", name), zap.Error(err))
		return s.current, fmt.Errorf("persist %s: %w", name, err)
	}

	s.current = next
	s.logger.Info("mutation applied", zap.String("op", name))
	return next, nil
}
