package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	directoryapp "github.com/borrowtrack/backend/internal/application/directory"
	"github.com/borrowtrack/backend/internal/infrastructure/cache"
	"github.com/borrowtrack/backend/internal/infrastructure/config"
	"github.com/borrowtrack/backend/internal/infrastructure/event"
	"github.com/borrowtrack/backend/internal/infrastructure/logger"
	"github.com/borrowtrack/backend/internal/infrastructure/migration"
	"github.com/borrowtrack/backend/internal/infrastructure/persistence"
	"github.com/borrowtrack/backend/internal/infrastructure/scheduler"
	"github.com/borrowtrack/backend/internal/infrastructure/telemetry"
	"github.com/borrowtrack/backend/internal/interfaces/http/handler"
	"github.com/borrowtrack/backend/internal/interfaces/http/middleware"
	"github.com/borrowtrack/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

//	@title			Borrowing Directory API
//	@version		1.0
//	@description	Customers, items and the borrowing transactions between them
//	@BasePath		/api

const shutdownTimeout = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(logger.FromAppConfig(cfg.Log))
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	if err := run(cfg, log); err != nil {
		log.Error("Server stopped with error", zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	log.Info("Starting borrowing directory",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("db_driver", cfg.Database.Driver),
	)
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.FromAppConfig(cfg.Telemetry), log)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			log.Warn("Failed to flush traces", zap.Error(err))
		}
	}()

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	dbTracing := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfigFrom(cfg.Telemetry, db.Driver()), log)
	if err := dbTracing.Register(db.DB); err != nil {
		return fmt.Errorf("register db tracing: %w", err)
	}

	if err := migrateSchema(cfg, db, log); err != nil {
		return err
	}

	metrics := telemetry.NewMetrics(telemetry.DefaultMetricsConfig())

	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(event.NewMetricsHandler(metrics))

	serviceOpts := []directoryapp.Option{
		directoryapp.WithLogger(log),
		directoryapp.WithEventPublisher(eventBus),
	}
	storeFactory := cache.NewStoreFactory(cfg.Redis, cfg.Cache, cache.WithLogger(log))
	recordCache, err := storeFactory.CreateRecordCache(cache.WithLookupObserver(metrics.RecordCacheLookup))
	if err != nil {
		return fmt.Errorf("init record cache: %w", err)
	}
	if recordCache != nil {
		defer func() { _ = recordCache.Close() }()
		serviceOpts = append(serviceOpts, directoryapp.WithRecordCache(recordCache))
	}

	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	itemRepo := persistence.NewGormItemRepository(db.DB)
	transactionRepo := persistence.NewGormTransactionRepository(db.DB)

	customerService := directoryapp.NewCustomerService(customerRepo, serviceOpts...)
	itemService := directoryapp.NewItemService(itemRepo, serviceOpts...)
	transactionService := directoryapp.NewTransactionService(transactionRepo, customerRepo, itemRepo, serviceOpts...)

	overdueScheduler := scheduler.NewOverdueScheduler(transactionService, log, scheduler.OverdueSchedulerConfigFrom(cfg.Scheduler))
	overdueScheduler.SetRecorder(metrics)
	if err := overdueScheduler.Start(ctx); err != nil {
		return fmt.Errorf("start overdue scheduler: %w", err)
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := overdueScheduler.Stop(stopCtx); err != nil {
			log.Warn("Overdue scheduler did not stop cleanly", zap.Error(err))
		}
	}()

	var limiter *middleware.RateLimiter
	if cfg.HTTP.RateLimitEnabled {
		limiter = middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		defer limiter.Close()
	}

	engine, err := router.NewEngine(router.Handlers{
		Customer:    handler.NewCustomerHandler(customerService),
		Item:        handler.NewItemHandler(itemService),
		Transaction: handler.NewTransactionHandler(transactionService),
		Health:      handler.NewHealthHandler(db, telemetry.ServiceVersion),
	}, router.EngineOptions{
		HTTP:           cfg.HTTP,
		Logger:         log,
		Metrics:        metrics,
		RateLimiter:    limiter,
		TracingEnabled: tracerProvider.IsEnabled(),
		ServiceName:    cfg.Telemetry.ServiceName,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
	}
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("Server exited gracefully")
	return nil
}

// migrateSchema brings the schema up to date: embedded SQL migrations for
// postgres, GORM auto-migration for sqlite.
func migrateSchema(cfg *config.Config, db *persistence.Database, log *zap.Logger) error {
	if !cfg.Database.AutoMigrate {
		return nil
	}

	if db.Driver() != config.DriverPostgres {
		log.Info("Auto-migrating sqlite schema")
		return db.AutoMigrate()
	}

	// the migrator closes its connection, so it gets its own
	sqlDB, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}
	m, err := migration.NewEmbedded(sqlDB, log)
	if err != nil {
		_ = sqlDB.Close()
		return fmt.Errorf("create migrator: %w", err)
	}
	defer func() {
		if err := m.Close(); err != nil {
			log.Warn("Failed to close migrator", zap.Error(err))
		}
	}()

	if err := m.Up(); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
