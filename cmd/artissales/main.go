package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"

	"github.com/Kunal9797/artissales-sub001/internal/activity"
	"github.com/Kunal9797/artissales-sub001/internal/app"
	"github.com/Kunal9797/artissales-sub001/internal/dsr"
	"github.com/Kunal9797/artissales-sub001/internal/observability"
	"github.com/Kunal9797/artissales-sub001/internal/platform/httpx"
	mongodb "github.com/Kunal9797/artissales-sub001/internal/platform/mongo"
	"github.com/Kunal9797/artissales-sub001/internal/targets"
	"github.com/Kunal9797/artissales-sub001/jobs"
)

// The ops server is the operational surface of the batch pipeline: health,
// metrics, queue stats and the manual compile/renew triggers used to backfill
// after a missed scheduled run. It carries no end-user API.
func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
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

	// `artissales jobs <trigger-compile|trigger-renew|stats> [arg]` runs the
	// one-shot management helpers instead of the server.
	if len(os.Args) > 1 && os.Args[1] == "jobs" {
		if err := runJobsCommand(ctx, cfg, os.Args[2:]); err != nil {
			logger.Error("jobs command", slog.Any("error", err))
			os.Exit(1)
		}
		return
	}

	metrics := observability.NewMetrics()

	client, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Error("init asynq client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := client.Close(); err != nil {
			logger.Warn("asynq client close", slog.Any("error", err))
		}
	}()
	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("asynq inspector close", slog.Any("error", err))
		}
	}()

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

	jobsHandler := jobs.NewHandler(client, inspector, logger)
	dsrHandler := dsr.NewHandler(dsr.NewRepository(db))
	targetsHandler := targets.NewHandler(
		targets.NewRepository(db),
		targets.NewCalculator(activity.NewStore(db)),
	)

	router := chi.NewRouter()
	for _, mw := range app.MiddlewareStack(app.MiddlewareConfig{Logger: logger, Config: cfg, Metrics: metrics}) {
		router.Use(mw)
	}
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	router.Method(http.MethodGet, "/metrics", metrics.Handler())
	router.Route("/ops/jobs", jobsHandler.MountRoutes)
	router.Route("/ops/dsr", dsrHandler.MountRoutes)
	router.Route("/ops/targets", targetsHandler.MountRoutes)

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("ops server listening", slog.String("addr", cfg.AppAddr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown", slog.Any("error", err))
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server run", slog.Any("error", err))
			os.Exit(1)
		}
	}
}
