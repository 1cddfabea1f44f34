package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/Kunal9797/artissales-sub001/internal/dsr"
	jobmetrics "github.com/Kunal9797/artissales-sub001/internal/jobs"
	"github.com/Kunal9797/artissales-sub001/internal/shared"
)

var defaultJobMetrics = jobmetrics.NewMetrics(nil)

// RosterSource resolves the active rep ids to compile for.
type RosterSource interface {
	ActiveRepIDs(ctx context.Context) ([]string, error)
}

// Summarizer compiles one rep's daily summary.
type Summarizer interface {
	CompileDailySummary(ctx context.Context, userID, date string) (*dsr.DailySummary, error)
}

// ReportSaver persists a summary, reporting whether a document was written.
type ReportSaver interface {
	SaveReport(ctx context.Context, summary *dsr.DailySummary) (bool, error)
}

// DSRCompileJob walks every active rep and compiles that day's report.
type DSRCompileJob struct {
	Roster     RosterSource
	Aggregator Summarizer
	Writer     ReportSaver
	Logger     *slog.Logger
	Metrics    *jobmetrics.Metrics
	clock      func() time.Time
}

// NewDSRCompileJob wires dependencies for the compile handler.
func NewDSRCompileJob(roster RosterSource, aggregator Summarizer, writer ReportSaver, logger *slog.Logger, metrics *jobmetrics.Metrics) *DSRCompileJob {
	return &DSRCompileJob{
		Roster:     roster,
		Aggregator: aggregator,
		Writer:     writer,
		Logger:     logger,
		Metrics:    metrics,
		clock:      time.Now,
	}
}

// Handle processes dsr:compile tasks. Reps are compiled sequentially to bound
// load on the store; one rep's failure is logged and counted, never allowed
// to abort the batch. Only a roster fetch failure fails the whole run, which
// hands retrying to the scheduler.
func (j *DSRCompileJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil {
		return errors.New("dsr compile: handler not configured")
	}
	var payload DSRCompilePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	date := payload.Date
	if date == "" {
		date = shared.DayKey(j.now())
	} else if !shared.ValidDate(date) {
		return asynq.SkipRetry
	}

	tracker := j.metrics().Track(TaskDSRCompile)
	var resultErr error
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	logger := j.logger().With(
		slog.String("run_id", uuid.NewString()),
		slog.String("date", date),
	)
	logger.Info("starting dsr compile")

	reps, err := j.Roster.ActiveRepIDs(ctx)
	if err != nil {
		resultErr = err
		logger.Error("load rep roster", slog.Any("error", err))
		return resultErr
	}

	written, skipped, failed := 0, 0, 0
	for _, userID := range reps {
		wrote, err := j.compileRep(ctx, userID, date)
		if err != nil {
			failed++
			logger.Error("compile rep", slog.String("user_id", userID), slog.Any("error", err))
			continue
		}
		if wrote {
			written++
		} else {
			skipped++
		}
	}
	j.metrics().AddRepFailures(TaskDSRCompile, failed)

	logger.Info("completed dsr compile",
		slog.Int("reps", len(reps)),
		slog.Int("written", written),
		slog.Int("skipped", skipped),
		slog.Int("failed", failed),
	)
	return resultErr
}

func (j *DSRCompileJob) compileRep(ctx context.Context, userID, date string) (bool, error) {
	summary, err := j.Aggregator.CompileDailySummary(ctx, userID, date)
	if err != nil {
		return false, err
	}
	return j.Writer.SaveReport(ctx, summary)
}

func (j *DSRCompileJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskDSRCompile))
	}
	return slog.Default().With(slog.String("job", TaskDSRCompile))
}

func (j *DSRCompileJob) metrics() *jobmetrics.Metrics {
	if j.Metrics != nil {
		return j.Metrics
	}
	return defaultJobMetrics
}

func (j *DSRCompileJob) now() time.Time {
	if j.clock != nil {
		return j.clock()
	}
	return time.Now()
}
