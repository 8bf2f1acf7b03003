package store

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/routinely/routinely/pkg/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// ============================================================
// Store initialization
// ============================================================

func TestNewMemory(t *testing.T) {
	s, err := NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	// Should have run migration v1
	var version int
	s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if version != 1 {
		t.Fatalf("expected user_version 1, got %d", version)
	}
}

func TestNewWithPath(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/sub/routinely.db"
	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	s.Close()

	// Reopen — should succeed and not re-migrate
	s2, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	s2.Close()
}

func TestDefaultDBPath(t *testing.T) {
	path, err := DefaultDBPath()
	if err != nil {
		t.Fatal(err)
	}
	if path == "" {
		t.Fatal("empty path")
	}
}

// ============================================================
// Routines
// ============================================================

func TestCreateAndGetRoutine(t *testing.T) {
	s := newTestStore(t)

	r, err := s.CreateRoutine("Morning run")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if r.ID == "" {
		t.Fatal("expected generated ID")
	}
	if !r.IsActive || r.Streak != 0 || r.LastConfirmed != "" {
		t.Errorf("unexpected defaults: %+v", r)
	}

	got, err := s.GetRoutine(r.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Morning run" {
		t.Errorf("expected name round-trip, got %q", got.Name)
	}
}

func TestGetRoutineNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetRoutine("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListRoutines(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.CreateRoutine("A"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.CreateRoutine("B"); err != nil {
		t.Fatal(err)
	}

	routines, err := s.ListRoutines()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(routines) != 2 {
		t.Fatalf("expected 2 routines, got %d", len(routines))
	}
}

func TestUpdateRoutine(t *testing.T) {
	s := newTestStore(t)
	r, _ := s.CreateRoutine("Old name")

	if err := s.UpdateRoutine(r.ID, "New name", false); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, _ := s.GetRoutine(r.ID)
	if got.Name != "New name" || got.IsActive {
		t.Errorf("update not applied: %+v", got)
	}

	if err := s.UpdateRoutine("missing", "X", true); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteRoutine(t *testing.T) {
	s := newTestStore(t)
	r, _ := s.CreateRoutine("Gone")

	if err := s.DeleteRoutine(r.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.GetRoutine(r.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected routine gone, got %v", err)
	}
}

func TestConfirmRoutineStartsStreak(t *testing.T) {
	s := newTestStore(t)
	r, _ := s.CreateRoutine("Read")

	if err := s.ConfirmRoutine(r.ID, "2026-08-28"); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	got, _ := s.GetRoutine(r.ID)
	if got.Streak != 1 || got.LastConfirmed != "2026-08-28" {
		t.Errorf("expected streak 1 on %s, got %+v", "2026-08-28", got)
	}
}

func TestConfirmRoutineExtendsStreak(t *testing.T) {
	s := newTestStore(t)
	r, _ := s.CreateRoutine("Read")

	days := []string{"2026-08-26", "2026-08-27", "2026-08-28"}
	for _, day := range days {
		if err := s.ConfirmRoutine(r.ID, day); err != nil {
			t.Fatalf("confirm %s: %v", day, err)
		}
	}

	got, _ := s.GetRoutine(r.ID)
	if got.Streak != 3 {
		t.Errorf("expected streak 3 after consecutive days, got %d", got.Streak)
	}
}

func TestConfirmRoutineSameDayIdempotent(t *testing.T) {
	s := newTestStore(t)
	r, _ := s.CreateRoutine("Read")

	s.ConfirmRoutine(r.ID, "2026-08-28")
	s.ConfirmRoutine(r.ID, "2026-08-28")

	got, _ := s.GetRoutine(r.ID)
	if got.Streak != 1 {
		t.Errorf("expected streak 1 after same-day reconfirm, got %d", got.Streak)
	}
}

func TestConfirmRoutineGapResetsStreak(t *testing.T) {
	s := newTestStore(t)
	r, _ := s.CreateRoutine("Read")

	s.ConfirmRoutine(r.ID, "2026-08-20")
	s.ConfirmRoutine(r.ID, "2026-08-21")
	if err := s.ConfirmRoutine(r.ID, "2026-08-28"); err != nil {
		t.Fatal(err)
	}

	got, _ := s.GetRoutine(r.ID)
	if got.Streak != 1 {
		t.Errorf("expected streak reset to 1 after a gap, got %d", got.Streak)
	}
}

func TestSkipRoutineResetsAtomically(t *testing.T) {
	s := newTestStore(t)
	r, _ := s.CreateRoutine("Read")
	s.ConfirmRoutine(r.ID, "2026-08-27")

	if err := s.SkipRoutine(r.ID, "2026-08-28"); err != nil {
		t.Fatalf("skip: %v", err)
	}

	got, _ := s.GetRoutine(r.ID)
	if got.Streak != 0 || got.LastConfirmed != "" {
		t.Errorf("expected cleared streak and confirmation, got %+v", got)
	}
	if got.LastSkipped != "2026-08-28" {
		t.Errorf("expected last skipped stamped, got %q", got.LastSkipped)
	}
	if !got.SkippedToday() {
		t.Error("expected skipped shape after skip")
	}
}

// ============================================================
// Notification settings
// ============================================================

func TestNotificationSettingsDefaults(t *testing.T) {
	s := newTestStore(t)

	settings, err := s.NotificationSettings()
	if err != nil {
		t.Fatalf("load settings: %v", err)
	}

	if !settings.Enabled {
		t.Error("expected notifications enabled by default")
	}
	if settings.GlobalTime != "20:00" {
		t.Errorf("expected default global time 20:00, got %q", settings.GlobalTime)
	}
	if settings.MaxEscalationLevel != models.DefaultMaxEscalationLevel {
		t.Errorf("expected default cap %d, got %d", models.DefaultMaxEscalationLevel, settings.MaxEscalationLevel)
	}
	if !settings.OnlyIfIncomplete {
		t.Error("expected only-if-incomplete by default")
	}
}

func TestNotificationSettingsRoundTrip(t *testing.T) {
	s := newTestStore(t)

	want := models.NotificationSettings{
		Enabled:             true,
		GlobalTime:          "08:30",
		ReminderTimes:       []string{"08:30", "12:00", "19:00"},
		MultipleReminders:   true,
		CustomTimes:         true,
		EscalatingReminders: true,
		MaxEscalationLevel:  4,
		OnlyIfIncomplete:    false,
	}

	if err := s.SaveNotificationSettings(want); err != nil {
		t.Fatalf("save settings: %v", err)
	}

	got, err := s.NotificationSettings()
	if err != nil {
		t.Fatalf("load settings: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("settings round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

// ============================================================
// Reminder journal
// ============================================================

func TestReminderJournal(t *testing.T) {
	s := newTestStore(t)

	reminders := []models.Reminder{
		{ID: "r2", Time: "18:00", Title: "Evening", Body: "Still one left", CreatedAt: time.Now().UTC()},
		{ID: "r1", Time: "07:00", Title: "Morning", Body: "Fresh start", Metadata: map[string]interface{}{"slot": "07:00"}, CreatedAt: time.Now().UTC()},
	}
	for _, r := range reminders {
		if err := s.SaveReminder(r); err != nil {
			t.Fatalf("save reminder: %v", err)
		}
	}

	got, err := s.ListReminders()
	if err != nil {
		t.Fatalf("list reminders: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 reminders, got %d", len(got))
	}
	if got[0].Time != "07:00" || got[1].Time != "18:00" {
		t.Errorf("expected reminders ordered by time, got %v", got)
	}
	if got[0].Metadata["slot"] != "07:00" {
		t.Errorf("expected metadata round trip, got %v", got[0].Metadata)
	}

	if err := s.ClearReminders(); err != nil {
		t.Fatalf("clear reminders: %v", err)
	}
	got, _ = s.ListReminders()
	if len(got) != 0 {
		t.Errorf("expected empty journal after clear, got %d", len(got))
	}

	// Clearing an empty journal is fine.
	if err := s.ClearReminders(); err != nil {
		t.Errorf("clear on empty journal: %v", err)
	}
}
