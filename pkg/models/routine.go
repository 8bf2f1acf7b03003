package models

import "time"

// DateFormat is the YYYY-MM-DD format used for confirmation dates.
const DateFormat = "2006-01-02"

// Routine represents a trackable daily habit.
type Routine struct {
	ID            string    `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	IsActive      bool      `json:"is_active" db:"is_active"`
	Streak        int       `json:"streak" db:"streak"`
	LastConfirmed string    `json:"last_confirmed" db:"last_confirmed"` // YYYY-MM-DD or ""
	LastSkipped   string    `json:"last_skipped,omitempty" db:"last_skipped"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// CompletedOn returns true if the routine was confirmed on the given day.
func (r *Routine) CompletedOn(day string) bool {
	return r.LastConfirmed != "" && r.LastConfirmed == day
}

// SkippedToday returns true if the routine looks deliberately skipped:
// no confirmation date and a zeroed streak. A routine that has never
// been started matches the same shape and counts as handled too, which
// keeps brand-new routines from nagging before their first run.
func (r *Routine) SkippedToday() bool {
	return r.LastConfirmed == "" && r.Streak == 0
}

// HandledOn returns true if the routine needs no reminder for the given day.
func (r *Routine) HandledOn(day string) bool {
	return r.CompletedOn(day) || r.SkippedToday()
}
