package jobs

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hibiken/asynq"

	"github.com/Kunal9797/artissales-sub001/internal/platform/httpx"
	"github.com/Kunal9797/artissales-sub001/internal/shared"
)

// Worker wraps the Asynq server and optional scheduler.
type Worker struct {
	server    *asynq.Server
	mux       *asynq.ServeMux
	scheduler *asynq.Scheduler
	logger    *slog.Logger
}

// TaskHandler allows injecting custom Asynq handlers during worker setup.
type TaskHandler struct {
	Type    string
	Handler asynq.HandlerFunc
}

// CronRegistration wires a cron expression to a prepared task.
type CronRegistration struct {
	Spec    string
	Task    *asynq.Task
	Options []asynq.Option
}

// WorkerConfig collects dependencies required to bootstrap the worker.
type WorkerConfig struct {
	RedisOpts asynq.RedisClientOpt
	Logger    *slog.Logger
	Handlers  []TaskHandler
	Cron      []CronRegistration
	// Location controls the scheduler's cron evaluation; defaults to IST
	// since every business boundary in this system is IST.
	Location *time.Location
}

// NewWorker constructs a Worker instance.
func NewWorker(cfg WorkerConfig) (*Worker, error) {
	srv := asynq.NewServer(cfg.RedisOpts, asynq.Config{
		Concurrency: 2,
		Queues: map[string]int{
			QueueDefault: 1,
		},
	})
	mux := asynq.NewServeMux()
	for _, h := range cfg.Handlers {
		if h.Type == "" || h.Handler == nil {
			continue
		}
		mux.HandleFunc(h.Type, h.Handler)
	}

	var scheduler *asynq.Scheduler
	if len(cfg.Cron) > 0 {
		location := cfg.Location
		if location == nil {
			location = shared.IST
		}
		scheduler = asynq.NewScheduler(cfg.RedisOpts, &asynq.SchedulerOpts{Location: location})
		for _, entry := range cfg.Cron {
			if entry.Spec == "" || entry.Task == nil {
				continue
			}
			if _, err := scheduler.Register(entry.Spec, entry.Task, entry.Options...); err != nil {
				return nil, err
			}
		}
	}

	return &Worker{server: srv, mux: mux, scheduler: scheduler, logger: cfg.Logger}, nil
}

// Run starts processing jobs until context cancellation.
func (w *Worker) Run(ctx context.Context) error {
	if w == nil {
		return errors.New("worker: not configured")
	}
	if w.scheduler != nil {
		if err := w.scheduler.Start(); err != nil {
			return err
		}
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- w.server.Run(w.mux)
	}()
	select {
	case <-ctx.Done():
		if w.scheduler != nil {
			w.scheduler.Shutdown()
		}
		w.server.Shutdown()
		return ctx.Err()
	case err := <-errCh:
		if w.scheduler != nil {
			w.scheduler.Shutdown()
		}
		return err
	}
}

// Client submits jobs to the queue.
type Client struct {
	client *asynq.Client
}

// NewClient constructs an Asynq client.
func NewClient(redisOpts asynq.RedisClientOpt) (*Client, error) {
	client := asynq.NewClient(redisOpts)
	return &Client{client: client}, nil
}

// EnqueueDSRCompile enqueues a compile run, optionally for an explicit date.
func (c *Client) EnqueueDSRCompile(ctx context.Context, payload DSRCompilePayload) (*asynq.TaskInfo, error) {
	task, err := NewDSRCompileTask(payload)
	if err != nil {
		return nil, err
	}
	return c.client.EnqueueContext(ctx, task, asynq.Queue(QueueDefault))
}

// EnqueueTargetRenew enqueues a renewal run.
func (c *Client) EnqueueTargetRenew(ctx context.Context, payload TargetRenewPayload) (*asynq.TaskInfo, error) {
	task, err := NewTargetRenewTask(payload)
	if err != nil {
		return nil, err
	}
	return c.client.EnqueueContext(ctx, task, asynq.Queue(QueueDefault))
}

// Close releases client resources.
func (c *Client) Close() error {
	return c.client.Close()
}

// Handler exposes HTTP endpoints for manual job triggers and observability.
// It is the operational escape hatch for backfilling a missed compile run.
type Handler struct {
	client    *Client
	inspector *asynq.Inspector
	logger    *slog.Logger
}

// NewHandler constructs an HTTP handler for the jobs endpoints.
func NewHandler(client *Client, inspector *asynq.Inspector, logger *slog.Logger) *Handler {
	return &Handler{client: client, inspector: inspector, logger: logger}
}

// MountRoutes attaches job routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/dsr-compile", h.triggerDSRCompile)
	r.Post("/target-renew", h.triggerTargetRenew)
	r.Get("/queue", h.queueStats)
}

type enqueuedResponse struct {
	Task string `json:"task"`
	Type string `json:"type"`
}

type queueStatsResponse struct {
	Queue   string `json:"queue"`
	Pending int    `json:"pending"`
}

func (h *Handler) triggerDSRCompile(w http.ResponseWriter, r *http.Request) {
	if h.client == nil {
		httpx.Problem(w, http.StatusServiceUnavailable, "Jobs Unavailable", "job queue is not configured")
		return
	}
	date := r.URL.Query().Get("date")
	if date != "" && !shared.ValidDate(date) {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "date must be YYYY-MM-DD")
		return
	}
	info, err := h.client.EnqueueDSRCompile(r.Context(), DSRCompilePayload{Date: date, Reason: "manual"})
	if err != nil {
		h.logger.Error("enqueue dsr compile", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusAccepted, enqueuedResponse{Task: info.ID, Type: TaskDSRCompile})
}

func (h *Handler) triggerTargetRenew(w http.ResponseWriter, r *http.Request) {
	if h.client == nil {
		httpx.Problem(w, http.StatusServiceUnavailable, "Jobs Unavailable", "job queue is not configured")
		return
	}
	month := r.URL.Query().Get("month")
	if month != "" && !shared.ValidMonth(month) {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "month must be YYYY-MM")
		return
	}
	info, err := h.client.EnqueueTargetRenew(r.Context(), TargetRenewPayload{Month: month})
	if err != nil {
		h.logger.Error("enqueue target renew", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusAccepted, enqueuedResponse{Task: info.ID, Type: TaskTargetRenew})
}

func (h *Handler) queueStats(w http.ResponseWriter, r *http.Request) {
	if h.inspector == nil {
		httpx.JSON(w, http.StatusOK, queueStatsResponse{Queue: QueueDefault})
		return
	}
	info, err := h.inspector.GetQueueInfo(QueueDefault)
	if err != nil {
		h.logger.Warn("jobs queue stats", slog.Any("error", err))
		httpx.Problem(w, http.StatusServiceUnavailable, "Queue Unavailable", "")
		return
	}
	stats := queueStatsResponse{Queue: QueueDefault}
	if info != nil {
		stats.Queue = info.Queue
		stats.Pending = int(info.Pending)
	}
	httpx.JSON(w, http.StatusOK, stats)
}
