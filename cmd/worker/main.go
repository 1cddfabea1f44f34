package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"

	"github.com/Kunal9797/artissales-sub001/internal/activity"
	"github.com/Kunal9797/artissales-sub001/internal/app"
	"github.com/Kunal9797/artissales-sub001/internal/dsr"
	"github.com/Kunal9797/artissales-sub001/internal/platform/cache"
	mongodb "github.com/Kunal9797/artissales-sub001/internal/platform/mongo"
	"github.com/Kunal9797/artissales-sub001/internal/targets"
	"github.com/Kunal9797/artissales-sub001/internal/team"
	"github.com/Kunal9797/artissales-sub001/internal/users"
	"github.com/Kunal9797/artissales-sub001/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	_ = godotenv.Load()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	db, err := mongodb.New(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logger.Error("connect mongo", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := mongodb.Close(context.Background(), db); err != nil {
			logger.Warn("mongo close", slog.Any("error", err))
		}
	}()
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		logger.Error("ensure indexes", slog.Any("error", err))
		os.Exit(1)
	}

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

	activityStore := activity.NewStore(db)
	roster := team.NewRosterCache(users.NewRepository(db), redisClient, cfg.RosterCacheTTL)

	aggregator := dsr.NewAggregator(activityStore)
	writer := dsr.NewWriter(dsr.NewRepository(db))
	compileJob := jobs.NewDSRCompileJob(roster, aggregator, writer, logger, nil)

	renewer := targets.NewRenewer(targets.NewRepository(db))
	renewJob := jobs.NewTargetRenewJob(renewer, logger, nil)

	compileTask, err := jobs.NewDSRCompileTask(jobs.DSRCompilePayload{})
	if err != nil {
		logger.Error("build compile task", slog.Any("error", err))
		os.Exit(1)
	}
	renewTask, err := jobs.NewTargetRenewTask(jobs.TargetRenewPayload{})
	if err != nil {
		logger.Error("build renew task", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskDSRCompile, Handler: compileJob.Handle},
			{Type: jobs.TaskTargetRenew, Handler: renewJob.Handle},
		},
		Cron: []jobs.CronRegistration{
			{Spec: cfg.DSRCompileCron, Task: compileTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
			{Spec: cfg.TargetRenewCron, Task: renewTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
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
