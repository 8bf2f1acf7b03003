package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/routinely/routinely/pkg/models"
)

// ErrNotFound is returned when a routine does not exist.
var ErrNotFound = errors.New("routine not found")

// CreateRoutine inserts a new routine and returns it with its
// generated ID.
func (s *Store) CreateRoutine(name string) (*models.Routine, error) {
	now := time.Now().UTC()
	r := &models.Routine{
		ID:        uuid.New().String(),
		Name:      name,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := s.db.Exec(
		`INSERT INTO routines (id, name, is_active, streak, last_confirmed, last_skipped, created_at, updated_at)
		 VALUES (?, ?, 1, 0, '', '', ?, ?)`,
		r.ID, r.Name, now.Format(time.RFC3339), now.Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("create routine: %w", err)
	}
	return r, nil
}

// GetRoutine returns a single routine by ID.
func (s *Store) GetRoutine(id string) (*models.Routine, error) {
	row := s.db.QueryRow(
		`SELECT id, name, is_active, streak, last_confirmed, last_skipped, created_at, updated_at
		 FROM routines WHERE id = ?`, id)
	r, err := scanRoutine(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get routine %s: %w", id, err)
	}
	return r, nil
}

// ListRoutines returns all routines, active and inactive.
func (s *Store) ListRoutines() ([]models.Routine, error) {
	rows, err := s.db.Query(
		`SELECT id, name, is_active, streak, last_confirmed, last_skipped, created_at, updated_at
		 FROM routines ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list routines: %w", err)
	}
	defer rows.Close()

	var routines []models.Routine
	for rows.Next() {
		r, err := scanRoutine(rows)
		if err != nil {
			return nil, err
		}
		routines = append(routines, *r)
	}
	return routines, rows.Err()
}

// UpdateRoutine renames a routine and toggles its active flag.
func (s *Store) UpdateRoutine(id, name string, isActive bool) error {
	res, err := s.db.Exec(
		`UPDATE routines SET name = ?, is_active = ?, updated_at = ? WHERE id = ?`,
		name, boolToInt(isActive), time.Now().UTC().Format(time.RFC3339), id,
	)
	if err != nil {
		return fmt.Errorf("update routine %s: %w", id, err)
	}
	return requireRow(res)
}

// DeleteRoutine removes a routine.
func (s *Store) DeleteRoutine(id string) error {
	res, err := s.db.Exec(`DELETE FROM routines WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete routine %s: %w", id, err)
	}
	return requireRow(res)
}

// ConfirmRoutine marks the routine done for the given day (YYYY-MM-DD).
// The streak extends when the previous confirmation was yesterday,
// restarts at 1 after a gap, and confirming twice on the same day is a
// no-op.
func (s *Store) ConfirmRoutine(id, day string) error {
	r, err := s.GetRoutine(id)
	if err != nil {
		return err
	}
	if r.LastConfirmed == day {
		return nil
	}

	streak := 1
	if prev := previousDay(day); prev != "" && r.LastConfirmed == prev {
		streak = r.Streak + 1
	}

	_, err = s.db.Exec(
		`UPDATE routines SET streak = ?, last_confirmed = ?, updated_at = ? WHERE id = ?`,
		streak, day, time.Now().UTC().Format(time.RFC3339), id,
	)
	if err != nil {
		return fmt.Errorf("confirm routine %s: %w", id, err)
	}
	return nil
}

// SkipRoutine marks the routine deliberately skipped for the given day.
// The streak reset and the confirmation clear happen in one statement
// so a skip is atomic.
func (s *Store) SkipRoutine(id, day string) error {
	res, err := s.db.Exec(
		`UPDATE routines SET streak = 0, last_confirmed = '', last_skipped = ?, updated_at = ? WHERE id = ?`,
		day, time.Now().UTC().Format(time.RFC3339), id,
	)
	if err != nil {
		return fmt.Errorf("skip routine %s: %w", id, err)
	}
	return requireRow(res)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRoutine(row rowScanner) (*models.Routine, error) {
	var r models.Routine
	var isActive int
	var createdAt, updatedAt string
	err := row.Scan(&r.ID, &r.Name, &isActive, &r.Streak, &r.LastConfirmed, &r.LastSkipped, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	r.IsActive = isActive != 0
	r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	r.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &r, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// previousDay returns the day before a YYYY-MM-DD date, or "" when the
// date does not parse.
func previousDay(day string) string {
	t, err := time.Parse(models.DateFormat, day)
	if err != nil {
		return ""
	}
	return t.AddDate(0, 0, -1).Format(models.DateFormat)
}
