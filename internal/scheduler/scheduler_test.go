package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/mamadbah2/dairy/internal/config"
	"github.com/mamadbah2/dairy/internal/domain/models"
)

type countingPublisher struct {
	calls atomic.Int32
	err   error
}

func (p *countingPublisher) Publish(context.Context) (models.DailyReport, error) {
	p.calls.Add(1)
	return models.DailyReport{Date: "2026-03-15"}, p.err
}

func TestNewSchedulerRejectsUnknownTimezone(t *testing.T) {
	_, err := NewScheduler(config.ReportingConfig{CronSchedule: "0 20 * * *", Timezone: "Mars/Olympus"}, &countingPublisher{}, nil)
	if err == nil {
		t.Fatalf("expected timezone error")
	}
}

func TestStartRejectsBadSchedule(t *testing.T) {
	s, err := NewScheduler(config.ReportingConfig{CronSchedule: "every evening", Timezone: "UTC"}, &countingPublisher{}, nil)
	if err != nil {
		t.Fatalf("new scheduler: %v", err)
	}
	if err := s.Start(); err == nil {
		t.Fatalf("expected schedule parse error")
	}
}

func TestStartRegistersDailyJob(t *testing.T) {
	s, err := NewScheduler(config.ReportingConfig{CronSchedule: "0 20 * * *", Timezone: "Asia/Kolkata"}, &countingPublisher{}, nil)
	if err != nil {
		t.Fatalf("new scheduler: %v", err)
	}
	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer s.Stop()

	entries := s.cron.Entries()
	if len(entries) != 1 {
		t.Fatalf("expected one job, got %d", len(entries))
	}
	next := entries[0].Next
	if next.Hour() != 20 || next.Location().String() != "Asia/Kolkata" {
		t.Fatalf("unexpected next run %v", next)
	}
}

func TestSendDailyReportCallsPublisher(t *testing.T) {
	for _, pubErr := range []error{nil, errors.New("sheets down")} {
		publisher := &countingPublisher{err: pubErr}
		s, err := NewScheduler(config.ReportingConfig{CronSchedule: "0 20 * * *", Timezone: "UTC"}, publisher, nil)
		if err != nil {
			t.Fatalf("new scheduler: %v", err)
		}
		s.sendDailyReport()
		if publisher.calls.Load() != 1 {
			t.Fatalf("publisher called %d times", publisher.calls.Load())
		}
	}
}
