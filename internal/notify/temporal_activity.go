package notify

import (
	"context"

	"github.com/routinely/routinely/internal/observability"
)

// RescheduleActivityInput contains input for the reschedule activity.
type RescheduleActivityInput struct {
	BeatCount int // Current heartbeat count (for logging)
}

// RescheduleActivityResult contains the result of one scheduling pass.
type RescheduleActivityResult struct {
	Outcome      string   `json:"outcome"`
	SlotsPlanned int      `json:"slots_planned"`
	Registered   int      `json:"registered"`
	Errors       []string `json:"errors,omitempty"`
}

// RescheduleActivity is a Temporal activity that runs one scheduling
// pass. Registered with the worker and invoked by ReminderWorkflow.
type RescheduleActivity struct {
	scheduler *Scheduler
}

// NewRescheduleActivity creates a new reschedule activity.
func NewRescheduleActivity(scheduler *Scheduler) *RescheduleActivity {
	return &RescheduleActivity{scheduler: scheduler}
}

// Reschedule runs one scheduling pass and reports what it registered.
// Pass-level problems are returned in the result, not as an activity
// error; the workflow should not retry a pass that completed.
func (a *RescheduleActivity) Reschedule(ctx context.Context, input RescheduleActivityInput) (*RescheduleActivityResult, error) {
	result := &RescheduleActivityResult{}
	if a.scheduler == nil {
		return result, nil
	}

	pass, err := a.scheduler.Schedule(ctx)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		observability.Error("notify.activity_pass_failed", observability.Fields{"beat": input.BeatCount}, err)
		return result, nil
	}

	result.Outcome = string(pass.Outcome)
	result.SlotsPlanned = pass.SlotsPlanned
	result.Registered = pass.Registered
	result.Errors = append(result.Errors, pass.Errors...)

	if pass.Registered > 0 {
		observability.Info("notify.activity_pass", observability.Fields{
			"beat":       input.BeatCount,
			"outcome":    result.Outcome,
			"registered": result.Registered,
		})
	}
	return result, nil
}

// GetActivityName returns the name used to register this activity.
func (a *RescheduleActivity) GetActivityName() string {
	return "RescheduleRemindersActivity"
}
