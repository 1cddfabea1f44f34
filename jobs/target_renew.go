package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	jobmetrics "github.com/Kunal9797/artissales-sub001/internal/jobs"
	"github.com/Kunal9797/artissales-sub001/internal/shared"
	"github.com/Kunal9797/artissales-sub001/internal/targets"
)

// MonthRenewer is the renewal contract the job drives.
type MonthRenewer interface {
	RenewMonth(ctx context.Context, currentMonth, previousMonth string) (targets.RenewResult, error)
}

// TargetRenewJob clones last month's auto-renew targets into the current
// month on the first of the month.
type TargetRenewJob struct {
	Renewer MonthRenewer
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
	clock   func() time.Time
}

// NewTargetRenewJob wires dependencies for the renewal handler.
func NewTargetRenewJob(renewer MonthRenewer, logger *slog.Logger, metrics *jobmetrics.Metrics) *TargetRenewJob {
	return &TargetRenewJob{
		Renewer: renewer,
		Logger:  logger,
		Metrics: metrics,
		clock:   time.Now,
	}
}

// Handle processes targets:renew tasks. Renewal is coarser grained than the
// DSR compile: the batch commits as one write and any failure beyond the
// skip-existing rule fails the run, leaving retry to the scheduler. A retried
// run is safe because already-renewed targets are skipped.
func (j *TargetRenewJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil {
		return errors.New("target renew: handler not configured")
	}
	var payload TargetRenewPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	currentMonth := payload.Month
	if currentMonth == "" {
		currentMonth = shared.MonthKey(j.now())
	}
	previousMonth, err := shared.PrevMonthKey(currentMonth)
	if err != nil {
		return asynq.SkipRetry
	}

	tracker := j.metrics().Track(TaskTargetRenew)
	var resultErr error
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	logger := j.logger().With(
		slog.String("run_id", uuid.NewString()),
		slog.String("month", currentMonth),
		slog.String("source_month", previousMonth),
	)
	logger.Info("starting target renewal")

	result, err := j.Renewer.RenewMonth(ctx, currentMonth, previousMonth)
	if err != nil {
		resultErr = err
		logger.Error("renew targets", slog.Any("error", err))
		return resultErr
	}

	logger.Info("completed target renewal",
		slog.Int("candidates", result.Candidates),
		slog.Int("created", result.Created),
		slog.Int("skipped", result.Skipped),
	)
	return resultErr
}

func (j *TargetRenewJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskTargetRenew))
	}
	return slog.Default().With(slog.String("job", TaskTargetRenew))
}

func (j *TargetRenewJob) metrics() *jobmetrics.Metrics {
	if j.Metrics != nil {
		return j.Metrics
	}
	return defaultJobMetrics
}

func (j *TargetRenewJob) now() time.Time {
	if j.clock != nil {
		return j.clock()
	}
	return time.Now()
}
