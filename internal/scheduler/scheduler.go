package scheduler

import (
	"context"
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/dairy/internal/config"
	"github.com/mamadbah2/dairy/internal/domain/models"
)

const jobTimeout = 2 * time.Minute

// ReportPublisher builds and sends the end-of-day report.
type ReportPublisher interface {
	Publish(ctx context.Context) (models.DailyReport, error)
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron      *cron.Cron
	schedule  string
	publisher ReportPublisher
	logger    *zap.Logger
}

// NewScheduler creates a scheduler running in the farm's time zone.
func NewScheduler(cfg config.ReportingConfig, publisher ReportPublisher, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
	}

	// Standard 5-field cron expression.
	c := cron.New(cron.WithLocation(loc))

	return &Scheduler{
		cron:      c,
		schedule:  cfg.CronSchedule,
		publisher: publisher,
		logger:    logger,
	}, nil
}

// Start registers the daily report job and starts the scheduler.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler", zap.String("schedule", s.schedule))

	if _, err := s.cron.AddFunc(s.schedule, s.sendDailyReport); err != nil {
		return fmt.Errorf("schedule daily report: %w", err)
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) sendDailyReport() {
	s.logger.Info("generating daily report")
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	report, err := s.publisher.Publish(ctx)
	if err != nil {
		s.logger.Error("failed to publish daily report", zap.String("date", report.Date), zap.Error(err))
		return
	}
	s.logger.Info("daily report sent successfully", zap.String("date", report.Date))
}
