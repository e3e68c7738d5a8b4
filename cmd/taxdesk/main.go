package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"

	"github.com/taxdesk-erp/taxdesk/internal/app"
	"github.com/taxdesk-erp/taxdesk/internal/crm"
	"github.com/taxdesk-erp/taxdesk/internal/export"
	"github.com/taxdesk-erp/taxdesk/internal/extraction"
	"github.com/taxdesk-erp/taxdesk/internal/observability"
	"github.com/taxdesk-erp/taxdesk/internal/platform/cache"
	"github.com/taxdesk-erp/taxdesk/internal/platform/db"
	"github.com/taxdesk-erp/taxdesk/internal/rbac"
	"github.com/taxdesk-erp/taxdesk/internal/shared"
	"github.com/taxdesk-erp/taxdesk/internal/users"
	"github.com/taxdesk-erp/taxdesk/internal/workflow"
	"github.com/taxdesk-erp/taxdesk/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	rbacService := rbac.NewService(dbpool)
	rbacMiddleware := rbac.Middleware{Service: rbacService, Logger: logger}

	extractionCache := extraction.NewCache(redisClient, cfg.ExtractionCacheTTL)
	extractorClient := extraction.NewClient(cfg.ExtractorURL, extractionCache)

	jobsClient, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Error("init jobs client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := jobsClient.Close(); err != nil {
			logger.Warn("jobs client close", slog.Any("error", err))
		}
	}()

	workflowRepo := workflow.NewRepository(dbpool)
	auditLogger := shared.NewAuditLogger(dbpool)
	workflowService := workflow.NewService(workflowRepo, jobsClient, extractorClient, auditLogger, logger)
	workflowHandler := workflow.NewHandler(logger, workflowService, rbacMiddleware)

	crmRepo := crm.NewRepository(dbpool)
	crmService := crm.NewService(crmRepo)
	crmHandler := crm.NewHandler(logger, crmService, rbacMiddleware)

	userService := users.NewService(dbpool)
	userHandler := users.NewHandler(logger, userService, rbacMiddleware)

	pdfClient := export.NewGotenbergClient(cfg.GotenbergURL)
	exportHandler := export.NewHandler(logger, workflowService, pdfClient, rbacMiddleware)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, logger)

	metrics := observability.NewMetrics()

	router := app.NewRouter(app.RouterParams{
		Logger:          logger,
		Config:          cfg,
		WorkflowHandler: workflowHandler,
		CRMHandler:      crmHandler,
		ExportHandler:   exportHandler,
		UserHandler:     userHandler,
		JobHandler:      jobHandler,
		Metrics:         metrics,
		HealthChecks: []app.HealthCheck{
			{Name: "postgres", Probe: func() error { return dbpool.Ping(ctx) }},
			{Name: "redis", Probe: func() error { return redisClient.Ping(ctx).Err() }},
		},
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
