package store

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/routinely/routinely/pkg/models"
)

func (s *Store) GetSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return "", fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, nil
}

func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

// NotificationSettings assembles the typed settings from the key-value
// table. Missing or unparseable rows fall back to defaults rather than
// failing; a damaged settings table must never block scheduling.
func (s *Store) NotificationSettings() (models.NotificationSettings, error) {
	settings := models.DefaultNotificationSettings()

	rows, err := s.db.Query(`SELECT key, value FROM settings`)
	if err != nil {
		return settings, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return settings, err
		}
		switch key {
		case "notifications_enabled":
			settings.Enabled = value == "1"
		case "global_time":
			if value != "" {
				settings.GlobalTime = value
			}
		case "reminder_times":
			settings.ReminderTimes = splitTimes(value)
		case "multiple_reminders":
			settings.MultipleReminders = value == "1"
		case "custom_times":
			settings.CustomTimes = value == "1"
		case "escalating_reminders":
			settings.EscalatingReminders = value == "1"
		case "max_escalation_level":
			if n, err := strconv.Atoi(value); err == nil && n > 0 {
				settings.MaxEscalationLevel = n
			}
		case "only_if_incomplete":
			settings.OnlyIfIncomplete = value == "1"
		}
	}
	return settings, rows.Err()
}

// SaveNotificationSettings writes the typed settings back to the
// key-value table.
func (s *Store) SaveNotificationSettings(settings models.NotificationSettings) error {
	pairs := map[string]string{
		"notifications_enabled": boolValue(settings.Enabled),
		"global_time":           settings.GlobalTime,
		"reminder_times":        strings.Join(settings.ReminderTimes, ","),
		"multiple_reminders":    boolValue(settings.MultipleReminders),
		"custom_times":          boolValue(settings.CustomTimes),
		"escalating_reminders":  boolValue(settings.EscalatingReminders),
		"max_escalation_level":  strconv.Itoa(settings.MaxEscalationLevel),
		"only_if_incomplete":    boolValue(settings.OnlyIfIncomplete),
	}
	for key, value := range pairs {
		if err := s.SetSetting(key, value); err != nil {
			return fmt.Errorf("save setting %q: %w", key, err)
		}
	}
	return nil
}

func splitTimes(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	times := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			times = append(times, p)
		}
	}
	return times
}

func boolValue(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
