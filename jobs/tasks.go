package jobs

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskDSRCompile compiles daily sales reports for every active rep.
	TaskDSRCompile = "dsr:compile"
	// TaskTargetRenew clones auto-renew targets into the current month.
	TaskTargetRenew = "targets:renew"
)

var validate = validator.New()

// DSRCompilePayload parameterises a compile run. Date is optional: the
// scheduled run leaves it empty and compiles "today" in IST, the manual
// backfill trigger sets an explicit calendar date.
type DSRCompilePayload struct {
	Date   string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Reason string `json:"reason,omitempty"`
}

// TargetRenewPayload parameterises a renewal run. Month is optional and only
// set by manual re-runs; the scheduled run derives it from the clock.
type TargetRenewPayload struct {
	Month string `json:"month,omitempty" validate:"omitempty,datetime=2006-01"`
}

// NewDSRCompileTask constructs a validated compile task.
func NewDSRCompileTask(payload DSRCompilePayload) (*asynq.Task, error) {
	if err := validate.Struct(payload); err != nil {
		return nil, fmt.Errorf("jobs: dsr compile payload: %w", err)
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskDSRCompile, data), nil
}

// NewTargetRenewTask constructs a validated renewal task.
func NewTargetRenewTask(payload TargetRenewPayload) (*asynq.Task, error) {
	if err := validate.Struct(payload); err != nil {
		return nil, fmt.Errorf("jobs: target renew payload: %w", err)
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTargetRenew, data), nil
}
