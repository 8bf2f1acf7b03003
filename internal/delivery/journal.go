package delivery

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/routinely/routinely/internal/notify"
	"github.com/routinely/routinely/internal/store"
	"github.com/routinely/routinely/pkg/models"
)

// JournalDelivery persists registered reminders in the local store so
// an OS notification bridge can pick them up. It stands in for the
// platform notification service behind the same narrow interface the
// scheduler uses, which keeps the core free of platform knowledge.
type JournalDelivery struct {
	store *store.Store
	now   func() time.Time
}

// NewJournal creates a store-backed delivery.
func NewJournal(s *store.Store) *JournalDelivery {
	return &JournalDelivery{store: s, now: time.Now}
}

// CancelAll drops every journaled reminder. Idempotent.
func (d *JournalDelivery) CancelAll(ctx context.Context) error {
	return d.store.ClearReminders()
}

// RequestPermission always grants for the local journal; an OS bridge
// replacing this implementation answers with the real permission state.
func (d *JournalDelivery) RequestPermission(ctx context.Context) (bool, error) {
	return true, nil
}

// RegisterDaily journals one daily reminder and returns its ID.
func (d *JournalDelivery) RegisterDaily(ctx context.Context, at string, content notify.Content, metadata map[string]interface{}) (string, error) {
	r := models.Reminder{
		ID:        uuid.New().String(),
		Time:      at,
		Title:     content.Title,
		Body:      content.Body,
		Metadata:  metadata,
		CreatedAt: d.now().UTC(),
	}
	if err := d.store.SaveReminder(r); err != nil {
		return "", err
	}
	return r.ID, nil
}
