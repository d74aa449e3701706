// Package snapshot encodes the farm record set and loads it back from a blob
// store, upgrading blobs written by older versions.
package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/mamadbah2/dairy/internal/domain/models"
	"github.com/mamadbah2/dairy/internal/repository"
)

// Encode serializes a snapshot.
func Encode(data models.FarmData) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return raw, nil
}

// Decode parses a stored snapshot and backfills fields that older blobs lack.
func Decode(raw []byte) (models.FarmData, error) {
	var data models.FarmData
	if err := json.Unmarshal(raw, &data); err != nil {
		return models.FarmData{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return Backfill(data), nil
}

// Backfill fills defaults for fields missing from older blobs: cows count as
// bought, products hold one unit, animals without a status are active, the
// dashboard gets the canonical module list and nil collections become empty.
func Backfill(data models.FarmData) models.FarmData {
	data.Cows = orEmpty(data.Cows)
	for i := range data.Cows {
		cow := &data.Cows[i]
		if cow.IsBought == nil {
			bought := true
			cow.IsBought = &bought
		}
		if cow.LifeStatus == "" {
			cow.LifeStatus = models.LifeActive
		}
		cow.Protocols = orEmpty(cow.Protocols)
		cow.FeedingProgram = orEmpty(cow.FeedingProgram)
		cow.Investments = orEmpty(cow.Investments)
	}

	data.Calves = orEmpty(data.Calves)
	for i := range data.Calves {
		calf := &data.Calves[i]
		if calf.LifeStatus == "" {
			calf.LifeStatus = models.LifeActive
		}
		calf.WeightHistory = orEmpty(calf.WeightHistory)
		calf.Vaccinations = orEmpty(calf.Vaccinations)
		calf.Protocols = orEmpty(calf.Protocols)
		calf.FeedingProgram = orEmpty(calf.FeedingProgram)
		calf.Investments = orEmpty(calf.Investments)
	}

	data.Labours = orEmpty(data.Labours)
	for i := range data.Labours {
		if data.Labours[i].Attendance == nil {
			data.Labours[i].Attendance = map[string]models.AttendanceStatus{}
		}
	}

	data.Products = orEmpty(data.Products)
	for i := range data.Products {
		if data.Products[i].StockQty == nil {
			qty := 1
			data.Products[i].StockQty = &qty
		}
	}

	data.Feeds = orEmpty(data.Feeds)
	data.Medicines = orEmpty(data.Medicines)
	data.Genetics = orEmpty(data.Genetics)
	data.MilkSales = orEmpty(data.MilkSales)
	data.Expenses = orEmpty(data.Expenses)

	if data.DashboardModules == nil {
		data.DashboardModules = models.DefaultModules()
	}
	return data
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// Repository loads and saves the snapshot under the fixed storage key.
type Repository struct {
	store  repository.BlobStore
	key    string
	logger *zap.Logger
}

// NewRepository wraps a blob store.
func NewRepository(store repository.BlobStore, logger *zap.Logger) *Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repository{store: store, key: models.StorageKey, logger: logger}
}

// Key returns the storage key the snapshot is written under.
func (r *Repository) Key() string {
	return r.key
}

// Load returns the stored snapshot. A missing blob yields the first-run
// snapshot; an unreadable one is logged and replaced by it as well.
func (r *Repository) Load(ctx context.Context) (models.FarmData, error) {
	raw, err := r.store.Get(ctx, r.key)
	if errors.Is(err, repository.ErrNotFound) {
		r.logger.Info("no stored snapshot, starting empty", zap.String("key", r.key))
		return models.NewFarmData(), nil
	}
	if err != nil {
		return models.FarmData{}, fmt.Errorf("read snapshot %s: %w", r.key, err)
	}

	data, err := Decode(raw)
	if err != nil {
		r.logger.Warn("stored snapshot unreadable, falling back to defaults", zap.String("key", r.key), zap.Error(err))
		return models.NewFarmData(), nil
	}
	return data, nil
}

// Save writes the full snapshot.
func (r *Repository) Save(ctx context.Context, data models.FarmData) error {
	raw, err := Encode(data)
	if err != nil {
		return err
	}
	if err := r.store.Put(ctx, r.key, raw); err != nil {
		return fmt.Errorf("write snapshot %s: %w", r.key, err)
	}
	return nil
}
