package reporting

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/dairy/internal/domain/metrics"
	"github.com/mamadbah2/dairy/internal/domain/models"
	"github.com/mamadbah2/dairy/internal/repository/mongodb"
	"github.com/mamadbah2/dairy/internal/repository/sheets"
)

// SnapshotSource exposes the live snapshot and the farm clock.
type SnapshotSource interface {
	Snapshot() models.FarmData
	Now() time.Time
}

// Notifier pushes a text message to the farm owner.
type Notifier interface {
	SendOutbound(ctx context.Context, req models.OutboundMessageRequest) error
}

// Service builds the end-of-day report and fans it out to the configured
// archive, spreadsheet and chat recipient. Every sink is optional.
type Service struct {
	source    SnapshotSource
	archive   mongodb.ReportArchive
	exporter  sheets.ReportExporter
	notifier  Notifier
	recipient string
	logger    *zap.Logger
}

// NewService wires a new reporting service instance. Pass nil for any sink
// that is not configured.
func NewService(source SnapshotSource, archive mongodb.ReportArchive, exporter sheets.ReportExporter, notifier Notifier, recipient string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		source:    source,
		archive:   archive,
		exporter:  exporter,
		notifier:  notifier,
		recipient: recipient,
		logger:    logger,
	}
}

// Build turns the snapshot into the report for today's calendar day.
func Build(data models.FarmData, today time.Time) models.DailyReport {
	daily := metrics.DailyPnL(data, today)
	herd := metrics.Herd(data)

	lowFeed := 0
	for _, feed := range metrics.FeedRunOuts(data) {
		if feed.IsLow {
			lowFeed++
		}
	}
	lowMedicine := 0
	for _, med := range metrics.MedicineAlerts(data) {
		if med.IsLow {
			lowMedicine++
		}
	}

	return models.DailyReport{
		Date:             daily.Date,
		MilkLitres:       daily.MilkLitres.InexactFloat64(),
		MilkRevenue:      daily.MilkRevenue.InexactFloat64(),
		LabourExpense:    daily.LabourExpense.InexactFloat64(),
		FeedExpense:      daily.FeedExpense.InexactFloat64(),
		NetProfit:        daily.NetProfit.InexactFloat64(),
		HerdValue:        herd.Value.InexactFloat64(),
		ActiveAnimals:    herd.ActiveCows + herd.ActiveCalves,
		LowFeedLines:     lowFeed,
		LowMedicineLines: lowMedicine,
		CreatedAt:        today,
	}
}

// Today builds the report of the live snapshot.
func (s *Service) Today() models.DailyReport {
	return Build(s.source.Snapshot(), s.source.Now())
}

// Summary renders a report as a short chat message.
func Summary(r models.DailyReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Daily report %s\n", r.Date)
	fmt.Fprintf(&b, "Milk: %.2f L sold for %.2f\n", r.MilkLitres, r.MilkRevenue)
	fmt.Fprintf(&b, "Labour: %.2f | Feed: %.2f\n", r.LabourExpense, r.FeedExpense)
	if r.NetProfit < 0 {
		fmt.Fprintf(&b, "Net loss: %.2f\n", -r.NetProfit)
	} else {
		fmt.Fprintf(&b, "Net profit: %.2f\n", r.NetProfit)
	}
	fmt.Fprintf(&b, "Herd value: %.2f across %d active animals", r.HerdValue, r.ActiveAnimals)

	if r.LowFeedLines > 0 || r.LowMedicineLines > 0 {
		fmt.Fprintf(&b, "\nAlerts: %d feed lines low, %d medicines low", r.LowFeedLines, r.LowMedicineLines)
	}
	return b.String()
}

// PeriodSummary renders the spending report of a period as a chat message.
func PeriodSummary(p metrics.PeriodReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Report %s (since %s)\n", p.Period, p.Cutoff)
	fmt.Fprintf(&b, "Milk: %s L sold for %s\n", p.MilkVolume.StringFixed(2), p.MilkRevenue.StringFixed(2))
	fmt.Fprintf(&b, "Feed purchases: %s | Other: %s | Labour: %s\n",
		p.FeedPurchases.StringFixed(2), p.OtherExpenses.StringFixed(2), p.LabourCost.StringFixed(2))
	label := "Surplus"
	if !p.Surplus {
		label = "Deficit"
	}
	fmt.Fprintf(&b, "%s: %s", label, p.NetProfit.Abs().StringFixed(2))
	return b.String()
}

// Publish builds today's report and sends it to every configured sink. A
// failing sink does not stop the others; all failures are returned joined.
func (s *Service) Publish(ctx context.Context) (models.DailyReport, error) {
	report := s.Today()
	logger := s.logger.With(zap.String("date", report.Date))

	var errs []error
	if s.archive != nil {
		if err := s.archive.SaveDailyReport(ctx, report); err != nil {
			logger.Error("failed to archive daily report", zap.Error(err))
			errs = append(errs, fmt.Errorf("archive report: %w", err))
		}
	}
	if s.exporter != nil {
		if err := s.exporter.AppendReport(ctx, report); err != nil {
			logger.Error("failed to export daily report", zap.Error(err))
			errs = append(errs, fmt.Errorf("export report: %w", err))
		}
	}
	if s.notifier != nil && s.recipient != "" {
		req := models.OutboundMessageRequest{To: s.recipient, Message: Summary(report)}
		if err := s.notifier.SendOutbound(ctx, req); err != nil {
			logger.Error("failed to send daily report", zap.Error(err))
			errs = append(errs, fmt.Errorf("notify report: %w", err))
		}
	}

	if len(errs) == 0 {
		logger.Info("daily report published", zap.Float64("net_profit", report.NetProfit))
	}
	return report, errors.Join(errs...)
}
