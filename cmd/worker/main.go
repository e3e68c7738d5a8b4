package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"

	"github.com/taxdesk-erp/taxdesk/internal/app"
	"github.com/taxdesk-erp/taxdesk/internal/extraction"
	jobmetrics "github.com/taxdesk-erp/taxdesk/internal/jobs"
	"github.com/taxdesk-erp/taxdesk/internal/platform/cache"
	"github.com/taxdesk-erp/taxdesk/internal/platform/db"
	"github.com/taxdesk-erp/taxdesk/internal/shared"
	"github.com/taxdesk-erp/taxdesk/internal/workflow"
	"github.com/taxdesk-erp/taxdesk/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
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

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect database", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

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

	extractionCache := extraction.NewCache(redisClient, cfg.ExtractionCacheTTL)
	extractorClient := extraction.NewClient(cfg.ExtractorURL, extractionCache)

	workflowRepo := workflow.NewRepository(pool)
	workflowService := workflow.NewService(workflowRepo, nil, extractorClient, shared.NewAuditLogger(pool), logger)

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskExtractionRefresh, Handler: jobs.NewExtractionRefreshHandler(workflowService, logger, jobmetrics.NewMetrics(nil))},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
