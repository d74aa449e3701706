package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/dairy/internal/config"
	"github.com/mamadbah2/dairy/internal/repository"
	"github.com/mamadbah2/dairy/internal/repository/memory"
	"github.com/mamadbah2/dairy/internal/repository/mongodb"
	"github.com/mamadbah2/dairy/internal/repository/postgres"
	"github.com/mamadbah2/dairy/internal/repository/s3backup"
	"github.com/mamadbah2/dairy/internal/repository/sheets"
	"github.com/mamadbah2/dairy/internal/repository/snapshot"
	"github.com/mamadbah2/dairy/internal/repository/sqlite"
	"github.com/mamadbah2/dairy/internal/scheduler"
	"github.com/mamadbah2/dairy/internal/server/handlers"
	"github.com/mamadbah2/dairy/internal/server/router"
	farmsvc "github.com/mamadbah2/dairy/internal/service/farm"
	insightsvc "github.com/mamadbah2/dairy/internal/service/insight"
	reportingsvc "github.com/mamadbah2/dairy/internal/service/reporting"
	"github.com/mamadbah2/dairy/pkg/clients/anthropic"
	"github.com/mamadbah2/dairy/pkg/clients/openai"
	whatsappclient "github.com/mamadbah2/dairy/pkg/clients/whatsapp"
	"github.com/mamadbah2/dairy/pkg/logger"
)

func main() {
	cfg, err := config.Load(os.Getenv("ENV_FILE"))
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Server.LogLevel))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	loc, err := time.LoadLocation(cfg.Reporting.Timezone)
	if err != nil {
		baseLogger.Fatal("failed to load farm timezone", zap.String("timezone", cfg.Reporting.Timezone), zap.Error(err))
	}
	farmClock := func() time.Time { return time.Now().In(loc) }

	initCtx, cancelInit := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelInit()

	var mongoRepo *mongodb.MongoDBRepository
	if cfg.MongoDB.Enabled() {
		mongoRepo, err = mongodb.NewMongoDBRepository(initCtx, cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		if cfg.Store.Driver != config.DriverMongoDB {
			defer func() {
				if err := mongoRepo.Close(context.Background()); err != nil {
					baseLogger.Error("failed to close mongodb connection", zap.Error(err))
				}
			}()
		}
	}

	store, err := openStore(initCtx, cfg.Store, mongoRepo, logger.Named(baseLogger, "repo.store"))
	if err != nil {
		baseLogger.Fatal("failed to open snapshot store", zap.String("driver", cfg.Store.Driver), zap.Error(err))
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close snapshot store", zap.Error(err))
		}
	}()

	snapshotRepo := snapshot.NewRepository(store, logger.Named(baseLogger, "repo.snapshot"))
	farmSvc := farmsvc.NewService(snapshotRepo, cfg.Costs.Model(), farmClock, logger.Named(baseLogger, "svc.farm"))
	if err := farmSvc.Load(initCtx); err != nil {
		baseLogger.Fatal("failed to load farm snapshot", zap.Error(err))
	}

	var archive mongodb.ReportArchive
	if mongoRepo != nil {
		archive = mongoRepo
	}

	var exporter sheets.ReportExporter
	if cfg.Sheets.Enabled() {
		sheetsRepo, err := sheets.NewGoogleSheetRepository(initCtx, cfg.Sheets, logger.Named(baseLogger, "repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		exporter = sheetsRepo
	} else {
		baseLogger.Warn("google sheets not configured, report export disabled")
	}

	var backup insightsvc.Backup
	if cfg.Backup.Enabled() {
		s3Store, err := s3backup.New(initCtx, s3backup.Config{
			Region:    cfg.Backup.Region,
			Bucket:    cfg.Backup.Bucket,
			Endpoint:  cfg.Backup.Endpoint,
			PathStyle: cfg.Backup.PathStyle,
		}, logger.Named(baseLogger, "repo.s3backup"))
		if err != nil {
			baseLogger.Fatal("failed to init s3 backup", zap.Error(err))
		}
		backup = s3Store
	} else {
		baseLogger.Warn("s3 bucket not configured, cloud backup disabled")
	}

	var notifier interface {
		reportingsvc.Notifier
		handlers.Notifier
	}
	if cfg.WhatsApp.Enabled() {
		notifier = whatsappclient.NewClient(cfg.WhatsApp)
	} else {
		baseLogger.Warn("whatsapp not configured, report notifications disabled")
	}

	provider := newProvider(cfg.AI, baseLogger)

	reportingSvc := reportingsvc.NewService(farmSvc, archive, exporter, notifier, cfg.WhatsApp.Recipient, logger.Named(baseLogger, "svc.reporting"))
	insightSvc := insightsvc.NewService(provider, farmSvc, backup, exporter, logger.Named(baseLogger, "svc.insight"))

	engine := router.New(router.Handlers{
		Farm:    handlers.NewFarmHandler(farmSvc, logger.Named(baseLogger, "handlers.farm")),
		Metrics: handlers.NewMetricsHandler(farmSvc, logger.Named(baseLogger, "handlers.metrics")),
		Insight: handlers.NewInsightHandler(insightSvc, logger.Named(baseLogger, "handlers.insight")),
		Reports: handlers.NewReportHandler(reportingSvc, notifier, logger.Named(baseLogger, "handlers.reports")),
	}, cfg.Server.JWTSecret, logger.Named(baseLogger, "router"))

	sched, err := scheduler.NewScheduler(cfg.Reporting, reportingSvc, logger.Named(baseLogger, "scheduler"))
	if err != nil {
		baseLogger.Fatal("failed to init scheduler", zap.Error(err))
	}
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port), zap.String("store", cfg.Store.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}

// openStore returns the blob store selected by STORE_DRIVER.
func openStore(ctx context.Context, cfg config.StoreConfig, mongoRepo *mongodb.MongoDBRepository, log *zap.Logger) (repository.BlobStore, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		return sqlite.New(ctx, cfg.SQLitePath, log)
	case config.DriverPostgres:
		return postgres.New(ctx, cfg.PostgresDSN, log)
	case config.DriverMongoDB:
		if mongoRepo == nil {
			return nil, errors.New("mongodb store selected without MONGODB_URI")
		}
		return mongoRepo, nil
	case config.DriverMemory:
		log.Warn("memory store selected, records are lost on restart")
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Driver)
	}
}

// newProvider returns the configured AI backend, or nil when disabled.
func newProvider(cfg config.AIConfig, log *zap.Logger) insightsvc.Provider {
	switch cfg.Provider {
	case config.ProviderAnthropic:
		log.Info("anthropic ai client enabled")
		return anthropic.NewClient(cfg.AnthropicKey)
	case config.ProviderOpenAI:
		log.Info("openai client enabled", zap.String("model", cfg.OpenAIModel))
		return openai.NewClient(cfg.OpenAIKey, cfg.OpenAIModel)
	default:
		log.Warn("ai provider disabled, insights and slip scanning unavailable")
		return nil
	}
}
