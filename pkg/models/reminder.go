package models

import "time"

// Reminder is a registered daily reminder as persisted by the delivery
// layer. The scheduler re-derives the full set on every pass, so rows
// here are always replaceable.
type Reminder struct {
	ID        string                 `json:"id"`
	Time      string                 `json:"time"` // HH:MM
	Title     string                 `json:"title"`
	Body      string                 `json:"body"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}
