package cmd

import (
	"context"
	"fmt"
	"net/http"

	"tracking/api"
	httpadapter "tracking/internal/adapters/in/http"
	"tracking/internal/adapters/out/postgres"
	"tracking/internal/core/application/usecases/commands"
	"tracking/internal/core/application/usecases/queries"
	"tracking/internal/jobs"
	"tracking/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	logger     *log.Logger
	registry   *prometheus.Registry
	metrics    *metrics.LifecycleMetrics
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *log.Logger) *CompositionRoot {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
		registry:   registry,
		metrics:    metrics.NewLifecycleMetricsWithRegisterer(registry),
	}
}

// OpenDatabase connects to Postgres and applies the pool limits from config.
func OpenDatabase(ctx context.Context, config DBConfig) (*gorm.DB, error) {
	gormDB, err := gorm.Open(gormpostgres.Open(config.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(config.MaxOpenConns)
	sqlDB.SetMaxIdleConns(config.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(config.ConnMaxLifetime)

	if err = sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return gormDB, nil
}

func (c *CompositionRoot) handlerSettings() commands.HandlerSettings {
	settings := commands.HandlerSettings{
		Retry:      c.config.Retry.Policy(),
		Transition: c.config.Lifecycle.Policy(),
		Logger:     log.NewEntry(c.logger),
	}
	if c.config.Metrics.Enabled {
		settings.Observer = c.metrics
	}
	return settings
}

// querySettings bounds reads with the same per-operation timeout as command attempts.
func (c *CompositionRoot) querySettings() queries.Settings {
	return queries.Settings{Timeout: c.config.Retry.OperationTimeout}
}

func (c *CompositionRoot) CreateCreateParcelCommandHandler() commands.CreateParcelCommandHandler {
	var f commands.BookingUoWFactory = FuncBookingUoWFactory(func() commands.BookingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateParcelCommandHandler(f, c.handlerSettings())
}

func (c *CompositionRoot) CreateRecordStatusUpdateCommandHandler() commands.RecordStatusUpdateCommandHandler {
	var f commands.ParcelUoWFactory = FuncParcelUoWFactory(func() commands.ParcelUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRecordStatusUpdateCommandHandler(f, c.handlerSettings())
}

func (c *CompositionRoot) CreateConfirmDeliveryCommandHandler() commands.ConfirmDeliveryCommandHandler {
	var f commands.ParcelUoWFactory = FuncParcelUoWFactory(func() commands.ParcelUoW {
		return c.uowFactory.Create()
	})
	return commands.NewConfirmDeliveryCommandHandler(f, c.handlerSettings())
}

func (c *CompositionRoot) CreateFindByTrackingCodeQueryHandler() queries.FindByTrackingCodeQueryHandler {
	return queries.NewFindByTrackingCodeQueryHandler(c.gormDB, c.querySettings())
}

func (c *CompositionRoot) CreateListCustomerParcelsQueryHandler() queries.ListCustomerParcelsQueryHandler {
	return queries.NewListCustomerParcelsQueryHandler(c.gormDB, c.querySettings())
}

func (c *CompositionRoot) CreateListAllParcelsQueryHandler() queries.ListAllParcelsQueryHandler {
	return queries.NewListAllParcelsQueryHandler(c.gormDB, c.querySettings())
}

func (c *CompositionRoot) CreateCountParcelsByStageQueryHandler() queries.CountParcelsByStageQueryHandler {
	return queries.NewCountParcelsByStageQueryHandler(c.gormDB, c.querySettings())
}

// CreateJobManager returns the background jobs. Without metrics there is nothing to run.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	if !c.config.Metrics.Enabled {
		return jobs.NewJobManager()
	}
	stageGauges := jobs.NewStageGaugeJob(
		c.CreateCountParcelsByStageQueryHandler(),
		c.metrics,
		c.config.Metrics.StageRefreshSpec,
		log.NewEntry(c.logger),
	)
	return jobs.NewJobManager(stageGauges)
}

func (c *CompositionRoot) CreateHTTPServer(ctx context.Context) (*httpadapter.Server, error) {
	openapi, err := httpadapter.NewOpenAPIValidator(ctx, api.OpenAPI)
	if err != nil {
		return nil, err
	}

	var metricsHandler http.Handler
	if c.config.Metrics.Enabled {
		metricsHandler = promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
	}
	return httpadapter.NewServer(
		c.CreateCreateParcelCommandHandler(),
		c.CreateRecordStatusUpdateCommandHandler(),
		c.CreateConfirmDeliveryCommandHandler(),
		c.CreateFindByTrackingCodeQueryHandler(),
		c.CreateListCustomerParcelsQueryHandler(),
		c.CreateListAllParcelsQueryHandler(),
		openapi,
		metricsHandler,
		log.NewEntry(c.logger),
	), nil
}

type FuncBookingUoWFactory func() commands.BookingUoW

func (f FuncBookingUoWFactory) Create() commands.BookingUoW {
	return f()
}

type FuncParcelUoWFactory func() commands.ParcelUoW

func (f FuncParcelUoWFactory) Create() commands.ParcelUoW {
	return f()
}
