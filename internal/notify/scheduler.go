package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/routinely/routinely/internal/observability"
	"github.com/routinely/routinely/pkg/models"
)

// StateProvider supplies the snapshots a scheduling pass works from.
// The scheduler never caches between passes; every pass rereads.
type StateProvider interface {
	GetCurrentTime() time.Time
	GetRoutines() ([]models.Routine, error)
	GetSettings() (models.NotificationSettings, error)
}

// Delivery is the external reminder registration mechanism. CancelAll
// and RegisterDaily are best-effort from the scheduler's point of view;
// RequestPermission returning false stops a pass cleanly.
type Delivery interface {
	CancelAll(ctx context.Context) error
	RequestPermission(ctx context.Context) (bool, error)
	RegisterDaily(ctx context.Context, at string, content Content, metadata map[string]interface{}) (string, error)
}

// PassOutcome describes why a pass registered what it did.
type PassOutcome string

const (
	OutcomeScheduled        PassOutcome = "scheduled"
	OutcomePermissionDenied PassOutcome = "permission_denied"
	OutcomeDisabled         PassOutcome = "disabled"
	OutcomeNoRoutines       PassOutcome = "no_routines"
	OutcomeAllHandled       PassOutcome = "all_handled"
)

// PassResult records one scheduling pass for introspection.
type PassResult struct {
	Outcome      PassOutcome `json:"outcome"`
	SlotsPlanned int         `json:"slots_planned"`
	Registered   int         `json:"registered"`
	Skipped      int         `json:"skipped"`
	Times        []string    `json:"times,omitempty"`
	Errors       []string    `json:"errors,omitempty"`
	StartedAt    time.Time   `json:"started_at"`
}

const passHistoryLimit = 100

// Scheduler recomputes and re-registers the full reminder schedule on
// demand. A pass is best-effort: per-slot delivery failures are logged
// and the pass continues, and "nothing scheduled" is a valid outcome
// rather than an error.
type Scheduler struct {
	state    StateProvider
	delivery Delivery

	mu      sync.RWMutex
	history []*PassResult
}

// NewScheduler creates a scheduler over the given collaborators.
func NewScheduler(state StateProvider, delivery Delivery) *Scheduler {
	return &Scheduler{
		state:    state,
		delivery: delivery,
		history:  make([]*PassResult, 0),
	}
}

// Schedule runs one full scheduling pass. The returned error covers
// snapshot reads only; everything past that point is recorded in the
// PassResult and never aborts the pass.
func (s *Scheduler) Schedule(ctx context.Context) (*PassResult, error) {
	now := s.state.GetCurrentTime()
	result := &PassResult{Outcome: OutcomeScheduled, StartedAt: now}

	// Always start from a clean slate; safe when nothing is registered.
	if err := s.delivery.CancelAll(ctx); err != nil {
		result.Errors = append(result.Errors, err.Error())
		observability.Error("notify.cancel_all_failed", nil, err)
	}

	granted, err := s.delivery.RequestPermission(ctx)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		observability.Error("notify.permission_check_failed", nil, err)
	}
	if err != nil || !granted {
		result.Outcome = OutcomePermissionDenied
		s.record(result)
		return result, nil
	}

	routines, err := s.state.GetRoutines()
	if err != nil {
		return nil, fmt.Errorf("load routines: %w", err)
	}
	rawSettings, err := s.state.GetSettings()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	settings := normalizeSettings(rawSettings)

	if !settings.Enabled {
		result.Outcome = OutcomeDisabled
		s.record(result)
		return result, nil
	}

	today := now.Format(models.DateFormat)
	status := ComputeStatus(routines, today)

	if !status.HasActiveRoutines {
		result.Outcome = OutcomeNoRoutines
		s.record(result)
		return result, nil
	}
	if settings.OnlyIfIncomplete && status.IsAllHandled {
		result.Outcome = OutcomeAllHandled
		s.record(result)
		return result, nil
	}

	base := baseTimes(settings)
	times := base
	if settings.EscalatingReminders && !settings.CustomTimes && status.Remaining > 0 {
		times = PlanEscalation(base, settings.MaxEscalationLevel, now)
	}

	result.SlotsPlanned = len(times)
	result.Times = times

	for i, at := range times {
		hour, ok := parseHour(at)
		if !ok {
			result.Skipped++
			observability.Warn("notify.bad_slot_time", observability.Fields{"time": at})
			continue
		}

		level := i + 1
		escalated := level > len(base)

		content := GenerateContent(status, BucketHour(hour), escalated, level)
		if content == nil {
			// Nothing worth saying for this slot; never register empties.
			result.Skipped++
			continue
		}

		metadata := map[string]interface{}{
			"slot":             at,
			"escalation_level": level,
			"remaining":        status.Remaining,
		}
		id, err := s.delivery.RegisterDaily(ctx, at, *content, metadata)
		if err != nil {
			// A partial schedule beats none; keep going.
			result.Errors = append(result.Errors, err.Error())
			observability.Error("notify.register_failed", observability.Fields{"time": at}, err)
			continue
		}
		result.Registered++
		observability.Info("notify.reminder_registered", observability.Fields{
			"id":   id,
			"time": at,
		})
	}

	s.record(result)
	observability.Info("notify.pass_complete", observability.Fields{
		"outcome":    string(result.Outcome),
		"planned":    result.SlotsPlanned,
		"registered": result.Registered,
	})
	return result, nil
}

// baseTimes resolves the user's base reminder slots.
func baseTimes(settings models.NotificationSettings) []string {
	if settings.CustomTimes && len(settings.ReminderTimes) > 0 {
		return settings.ReminderTimes
	}
	if settings.MultipleReminders {
		times := make([]string, len(models.DefaultReminderTimes))
		copy(times, models.DefaultReminderTimes)
		return times
	}
	return []string{settings.GlobalTime}
}

// normalizeSettings patches malformed settings toward safe defaults so
// a bad settings row degrades the schedule instead of failing the pass.
func normalizeSettings(s models.NotificationSettings) models.NotificationSettings {
	if s.CustomTimes && len(s.ReminderTimes) == 0 {
		s.CustomTimes = false
	}
	if s.GlobalTime == "" {
		s.GlobalTime = models.DefaultGlobalTime
	}
	if _, ok := parseHour(s.GlobalTime); !ok {
		s.GlobalTime = models.DefaultGlobalTime
	}
	if s.MaxEscalationLevel <= 0 {
		s.MaxEscalationLevel = models.DefaultMaxEscalationLevel
	}
	return s
}

// record appends a pass result, keeping a bounded history.
func (s *Scheduler) record(result *PassResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, result)
	if len(s.history) > passHistoryLimit {
		s.history = s.history[len(s.history)-passHistoryLimit:]
	}
}

// History returns the most recent pass results, newest last.
func (s *Scheduler) History(limit int) []*PassResult {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 || limit > len(s.history) {
		limit = len(s.history)
	}
	start := len(s.history) - limit
	result := make([]*PassResult, limit)
	copy(result, s.history[start:])
	return result
}
