package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/routinely/routinely/pkg/models"
)

// SaveReminder journals a registered reminder.
func (s *Store) SaveReminder(r models.Reminder) error {
	metadata := "{}"
	if r.Metadata != nil {
		raw, err := json.Marshal(r.Metadata)
		if err != nil {
			return fmt.Errorf("marshal reminder metadata: %w", err)
		}
		metadata = string(raw)
	}

	_, err := s.db.Exec(
		`INSERT INTO reminders (id, time, title, body, metadata, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID, r.Time, r.Title, r.Body, metadata, r.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("save reminder: %w", err)
	}
	return nil
}

// ListReminders returns the journaled reminders ordered by slot time.
func (s *Store) ListReminders() ([]models.Reminder, error) {
	rows, err := s.db.Query(`SELECT id, time, title, body, metadata, created_at FROM reminders ORDER BY time, id`)
	if err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}
	defer rows.Close()

	var reminders []models.Reminder
	for rows.Next() {
		var r models.Reminder
		var metadata, createdAt string
		if err := rows.Scan(&r.ID, &r.Time, &r.Title, &r.Body, &metadata, &createdAt); err != nil {
			return nil, err
		}
		if metadata != "" && metadata != "{}" {
			if err := json.Unmarshal([]byte(metadata), &r.Metadata); err != nil {
				return nil, fmt.Errorf("decode reminder metadata: %w", err)
			}
		}
		r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		reminders = append(reminders, r)
	}
	return reminders, rows.Err()
}

// ClearReminders removes every journaled reminder. Safe when empty.
func (s *Store) ClearReminders() error {
	if _, err := s.db.Exec(`DELETE FROM reminders`); err != nil {
		return fmt.Errorf("clear reminders: %w", err)
	}
	return nil
}
