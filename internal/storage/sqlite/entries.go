package sqlite

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/tinyhabits/internal/models"
	"github.com/julianstephens/tinyhabits/internal/storage"
)

const entryColumns = "id, habit_id, day, date, status, progress_value, created_at, updated_at"

func scanEntry(row rowScanner) (models.HabitEntry, error) {
	var e models.HabitEntry
	var status, date, createdAt, updatedAt string

	if err := row.Scan(&e.ID, &e.HabitID, &e.Day, &date, &status, &e.ProgressValue, &createdAt, &updatedAt); err != nil {
		return models.HabitEntry{}, err
	}

	var err error
	if e.Status, err = models.ParseEntryStatus(status); err != nil {
		return models.HabitEntry{}, fmt.Errorf("entry %s: %w", e.ID, err)
	}
	if e.Date, err = parseTime("date", date); err != nil {
		return models.HabitEntry{}, err
	}
	if e.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return models.HabitEntry{}, err
	}
	if e.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return models.HabitEntry{}, err
	}
	return e, nil
}

// InsertEntry stores a new entry. A second entry for the same habit and day
// is rejected with storage.ErrConflict.
func (s *Store) InsertEntry(entry models.HabitEntry) error {
	if err := s.checkLoaded(); err != nil {
		return err
	}

	res, err := s.db.Exec(`
		INSERT INTO habit_entries (`+entryColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(habit_id, day) DO NOTHING`,
		entry.ID, entry.HabitID, entry.Day, formatTime(entry.Date), entry.Status.String(),
		entry.ProgressValue, formatTime(entry.CreatedAt), formatTime(entry.UpdatedAt))
	if err != nil {
		if strings.Contains(err.Error(), "FOREIGN KEY") {
			return fmt.Errorf("habit %s: %w", entry.HabitID, storage.ErrNotFound)
		}
		return fmt.Errorf("failed to insert entry: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return storage.ErrConflict
	}
	return nil
}

func (s *Store) FetchEntries(filter storage.EntryFilter) ([]models.HabitEntry, error) {
	if err := s.checkLoaded(); err != nil {
		return nil, err
	}

	var where []string
	var args []any
	if filter.HabitID != "" {
		where = append(where, "habit_id = ?")
		args = append(args, filter.HabitID)
	}
	if filter.StartDay != "" {
		where = append(where, "day >= ?")
		args = append(args, filter.StartDay)
	}
	if filter.EndDay != "" {
		where = append(where, "day <= ?")
		args = append(args, filter.EndDay)
	}

	query := "SELECT " + entryColumns + " FROM habit_entries"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.HabitEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Stored dates are UTC text with variable precision, so order on the
	// parsed values.
	storage.SortEntries(entries, filter.Sort)
	return entries, nil
}

func (s *Store) UpdateEntry(entry models.HabitEntry) error {
	if err := s.checkLoaded(); err != nil {
		return err
	}

	res, err := s.db.Exec(`
		UPDATE habit_entries SET status = ?, progress_value = ?, updated_at = ?
		WHERE id = ?`,
		entry.Status.String(), entry.ProgressValue, formatTime(entry.UpdatedAt), entry.ID)
	if err != nil {
		return fmt.Errorf("failed to update entry: %w", err)
	}
	return expectRow(res, "entry", entry.ID)
}

func (s *Store) DeleteEntry(id string) error {
	if err := s.checkLoaded(); err != nil {
		return err
	}

	res, err := s.db.Exec("DELETE FROM habit_entries WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	return expectRow(res, "entry", id)
}

// DeleteEntriesForHabit removes entries one at a time. A failed delete does
// not stop the rest; the count covers the entries that were removed and the
// error joins every failure.
func (s *Store) DeleteEntriesForHabit(habitID string) (int, error) {
	entries, err := s.FetchEntries(storage.EntryFilter{HabitID: habitID})
	if err != nil {
		return 0, err
	}

	deleted := 0
	var errs []error
	for _, e := range entries {
		if err := s.DeleteEntry(e.ID); err != nil {
			errs = append(errs, err)
			continue
		}
		deleted++
	}
	return deleted, errors.Join(errs...)
}
