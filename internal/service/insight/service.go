// Package insight talks to the AI provider and runs the cloud sync. Provider
// failures never reach the farm snapshot; callers surface them as notices.
package insight

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mamadbah2/dairy/internal/domain/metrics"
	"github.com/mamadbah2/dairy/internal/domain/models"
	"github.com/mamadbah2/dairy/internal/repository/sheets"
	"github.com/mamadbah2/dairy/internal/repository/snapshot"
	"github.com/mamadbah2/dairy/internal/service/reporting"
)

// FallbackInsight is shown when the provider returns no text.
const FallbackInsight = "Cloud backup complete. Your records are safe!"

const defaultTimeout = 30 * time.Second

var (
	// ErrNoProvider is returned when no AI provider is configured.
	ErrNoProvider = errors.New("no insight provider configured")
	// ErrUnavailable wraps a failed provider call.
	ErrUnavailable = errors.New("insight provider unavailable")
)

// Provider is the AI backend. Both calls return the raw reply text.
type Provider interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	ReadImage(ctx context.Context, image []byte, mimeType, instructions string) (string, error)
}

// SnapshotSource exposes the live snapshot and the farm clock.
type SnapshotSource interface {
	Snapshot() models.FarmData
	Now() time.Time
}

// Backup copies an encoded snapshot to cloud storage.
type Backup interface {
	Backup(ctx context.Context, key string, raw []byte) (string, error)
}

// Service runs insight prompts, slip scans and the sync fan-out. Provider,
// backup and exporter may each be nil.
type Service struct {
	provider Provider
	source   SnapshotSource
	backup   Backup
	exporter sheets.ReportExporter
	timeout  time.Duration
	logger   *zap.Logger
}

// NewService wires the insight service.
func NewService(provider Provider, source SnapshotSource, backup Backup, exporter sheets.ReportExporter, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		provider: provider,
		source:   source,
		backup:   backup,
		exporter: exporter,
		timeout:  defaultTimeout,
		logger:   logger,
	}
}

func insightPrompt(data models.FarmData) string {
	return fmt.Sprintf("I have %d cows (%d active) and %d calves. Feed stock is updated. "+
		"Give me a 1-sentence supportive farm insight or feeding tip for a small dairy farmer.",
		len(data.Cows), len(metrics.ActiveCows(data)), len(data.Calves))
}

// Insight asks the provider for a one-sentence advisory about the herd.
func (s *Service) Insight(ctx context.Context, data models.FarmData) (string, error) {
	if s.provider == nil {
		return "", ErrNoProvider
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	text, err := s.provider.GenerateText(ctx, insightPrompt(data))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if text == "" {
		return FallbackInsight, nil
	}
	return text, nil
}

// Sync backs the snapshot up, exports today's report and fetches an insight,
// all concurrently. Backup and export failures are returned; a failed
// insight only adds a notice.
func (s *Service) Sync(ctx context.Context) (models.SyncResult, error) {
	data := s.source.Snapshot()
	now := s.source.Now()

	var (
		backedUp bool
		exported bool
		text     string
		notice   string
	)

	g, gctx := errgroup.WithContext(ctx)

	if s.backup != nil {
		g.Go(func() error {
			raw, err := snapshot.Encode(data)
			if err != nil {
				return err
			}
			if _, err := s.backup.Backup(gctx, models.StorageKey, raw); err != nil {
				return fmt.Errorf("backup snapshot: %w", err)
			}
			backedUp = true
			return nil
		})
	}

	if s.exporter != nil {
		g.Go(func() error {
			if err := s.exporter.AppendReport(gctx, reporting.Build(data, now)); err != nil {
				return fmt.Errorf("export report: %w", err)
			}
			exported = true
			return nil
		})
	}

	g.Go(func() error {
		insight, err := s.Insight(ctx, data)
		switch {
		case errors.Is(err, ErrNoProvider):
			text = FallbackInsight
		case err != nil:
			s.logger.Warn("insight request failed", zap.Error(err))
			notice = "Insight unavailable right now."
			text = FallbackInsight
		default:
			text = insight
		}
		return nil
	})

	err := g.Wait()

	result := models.SyncResult{
		BackedUp:   backedUp,
		Exported:   exported,
		Insight:    text,
		LastSynced: now.Format(time.RFC3339),
	}
	if notice != "" {
		result.Notices = append(result.Notices, notice)
	}
	if err != nil {
		s.logger.Error("sync failed", zap.Error(err))
		return result, err
	}

	s.logger.Info("sync complete", zap.Bool("backed_up", backedUp), zap.Bool("exported", exported))
	return result, nil
}
