package models

// DefaultMaxEscalationLevel caps the number of reminders in one day.
const DefaultMaxEscalationLevel = 6

// DefaultGlobalTime is the single-reminder fallback time.
const DefaultGlobalTime = "20:00"

// DefaultReminderTimes is the standard multi-reminder slot set.
var DefaultReminderTimes = []string{"07:00", "14:00", "18:00", "20:00"}

// NotificationSettings is the user-controlled reminder policy.
type NotificationSettings struct {
	Enabled             bool     `json:"enabled"`
	GlobalTime          string   `json:"global_time"`          // HH:MM
	ReminderTimes       []string `json:"reminder_times"`       // HH:MM each
	MultipleReminders   bool     `json:"multiple_reminders"`   // allow more than one base time
	CustomTimes         bool     `json:"custom_times"`         // ReminderTimes set explicitly; disables escalation
	EscalatingReminders bool     `json:"escalating_reminders"` // add slots while routines stay unhandled
	MaxEscalationLevel  int      `json:"max_escalation_level"` // hard cap on reminders per day
	OnlyIfIncomplete    bool     `json:"only_if_incomplete"`   // silence once everything is handled
}

// DefaultNotificationSettings returns the settings used before the user
// has configured anything.
func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{
		Enabled:             true,
		GlobalTime:          DefaultGlobalTime,
		MultipleReminders:   false,
		EscalatingReminders: false,
		MaxEscalationLevel:  DefaultMaxEscalationLevel,
		OnlyIfIncomplete:    true,
	}
}
