package notify

import "github.com/routinely/routinely/pkg/models"

// RiskThreshold is the streak length at which an unhandled routine is
// worth protecting with a dedicated reminder.
const RiskThreshold = 3

// CompletionStatus summarizes where the day stands across all active
// routines. It is recomputed from scratch on every scheduling pass and
// never persisted.
type CompletionStatus struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Skipped   int `json:"skipped"`
	Handled   int `json:"handled"`
	Remaining int `json:"remaining"`

	IsAllHandled      bool `json:"is_all_handled"`
	HasActiveRoutines bool `json:"has_active_routines"`

	RoutinesAtRisk  []models.Routine `json:"routines_at_risk,omitempty"`
	MaxStreakAtRisk int              `json:"max_streak_at_risk"`
	HasStreakRisk   bool             `json:"has_streak_risk"`
}

// ComputeStatus derives completion state for the given day from a
// routine snapshot. Pure: no clock reads, no I/O.
func ComputeStatus(routines []models.Routine, today string) CompletionStatus {
	status := CompletionStatus{}

	for _, r := range routines {
		if !r.IsActive {
			continue
		}
		status.Total++

		completed := r.CompletedOn(today)
		skipped := r.SkippedToday()
		if completed {
			status.Completed++
		}
		if skipped {
			status.Skipped++
		}
		if completed || skipped {
			continue
		}

		// Unhandled. Long streaks are the ones worth defending.
		if r.Streak >= RiskThreshold {
			status.RoutinesAtRisk = append(status.RoutinesAtRisk, r)
			if r.Streak > status.MaxStreakAtRisk {
				status.MaxStreakAtRisk = r.Streak
			}
		}
	}

	status.Handled = status.Completed + status.Skipped
	status.Remaining = status.Total - status.Handled
	status.IsAllHandled = status.Total > 0 && status.Handled == status.Total
	status.HasActiveRoutines = status.Total > 0
	status.HasStreakRisk = len(status.RoutinesAtRisk) > 0

	return status
}
