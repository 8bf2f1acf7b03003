package workflows

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/routinely/routinely/internal/notify"
)

// TriggerSignal wakes the workflow for an immediate reschedule, e.g.
// after a routine was confirmed or settings changed.
const TriggerSignal = "reminders.trigger"

type ReminderWorkflowInput struct {
	Interval time.Duration `json:"interval"`
}

// ReminderWorkflow runs the reschedule pass on a fixed interval
// (Temporal-controlled clock) and on demand via signal.
func ReminderWorkflow(ctx workflow.Context, input ReminderWorkflowInput) error {
	logger := workflow.GetLogger(ctx)
	logger.Info("Reminder workflow started", "interval", input.Interval)

	activityOptions := workflow.ActivityOptions{
		StartToCloseTimeout: 5 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 3,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, activityOptions)

	if input.Interval <= 0 {
		input.Interval = 15 * time.Minute
	}

	triggerCh := workflow.GetSignalChannel(ctx, TriggerSignal)
	iteration := 0

	for {
		_ = workflow.ExecuteActivity(ctx, "RescheduleRemindersActivity",
			notify.RescheduleActivityInput{BeatCount: iteration}).Get(ctx, nil)
		iteration++
		if iteration%100 == 0 && workflow.GetInfo(ctx).GetCurrentHistoryLength() > 10000 {
			logger.Warn("Reminder workflow history too large, continuing as new")
			return workflow.NewContinueAsNewError(ctx, ReminderWorkflow, input)
		}

		timer := workflow.NewTimer(ctx, input.Interval)
		selector := workflow.NewSelector(ctx)
		selector.AddFuture(timer, func(workflow.Future) {})
		selector.AddReceive(triggerCh, func(c workflow.ReceiveChannel, more bool) {
			var payload map[string]interface{}
			c.Receive(ctx, &payload)
		})
		selector.Select(ctx)
	}
}
