package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/tinyhabits/internal/models"
	"github.com/julianstephens/tinyhabits/internal/storage"
)

const habitColumns = "id, name, icon, accent_color, sort_order, archived_at, reminders, daily_target, created_at"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHabit(row rowScanner) (models.Habit, error) {
	var h models.Habit
	var createdAt, reminders string
	var archivedAt sql.NullString

	err := row.Scan(&h.ID, &h.Name, &h.Icon, &h.AccentColor, &h.Order, &archivedAt, &reminders, &h.DailyTarget, &createdAt)
	if err != nil {
		return models.Habit{}, err
	}

	h.CreatedAt, err = parseTime("created_at", createdAt)
	if err != nil {
		return models.Habit{}, err
	}
	if archivedAt.Valid {
		t, err := parseTime("archived_at", archivedAt.String)
		if err != nil {
			return models.Habit{}, err
		}
		h.ArchivedAt = &t
	}
	if err := json.Unmarshal([]byte(reminders), &h.Reminders); err != nil {
		return models.Habit{}, fmt.Errorf("failed to parse reminders: %w", err)
	}

	return h, nil
}

func habitArgs(h models.Habit) ([]any, error) {
	reminders := h.Reminders
	if reminders == nil {
		reminders = []models.Reminder{}
	}
	data, err := json.Marshal(reminders)
	if err != nil {
		return nil, fmt.Errorf("failed to encode reminders: %w", err)
	}

	var archivedAt sql.NullString
	if h.ArchivedAt != nil {
		archivedAt = sql.NullString{String: formatTime(*h.ArchivedAt), Valid: true}
	}

	return []any{
		h.ID, h.Name, h.Icon, h.AccentColor, h.Order, archivedAt,
		string(data), models.ClampTarget(h.DailyTarget), formatTime(h.CreatedAt),
	}, nil
}

func (s *Store) AddHabit(habit models.Habit) error {
	if err := s.checkLoaded(); err != nil {
		return err
	}

	args, err := habitArgs(habit)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
		INSERT INTO habits (`+habitColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`, args...)
	if err != nil {
		return fmt.Errorf("failed to add habit: %w", err)
	}
	return nil
}

func (s *Store) GetHabit(id string) (models.Habit, error) {
	if err := s.checkLoaded(); err != nil {
		return models.Habit{}, err
	}

	row := s.db.QueryRow("SELECT "+habitColumns+" FROM habits WHERE id = ?", id)
	h, err := scanHabit(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Habit{}, fmt.Errorf("habit %s: %w", id, storage.ErrNotFound)
	}
	return h, err
}

// GetHabitByName matches case-insensitively, preferring active habits
func (s *Store) GetHabitByName(name string) (models.Habit, error) {
	if err := s.checkLoaded(); err != nil {
		return models.Habit{}, err
	}

	row := s.db.QueryRow(`
		SELECT `+habitColumns+` FROM habits
		WHERE lower(trim(name)) = ?
		ORDER BY archived_at IS NOT NULL, sort_order, created_at
		LIMIT 1`, strings.ToLower(strings.TrimSpace(name)))
	h, err := scanHabit(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Habit{}, fmt.Errorf("habit %q: %w", name, storage.ErrNotFound)
	}
	return h, err
}

func (s *Store) FetchHabits(filter storage.HabitFilter) ([]models.Habit, error) {
	if err := s.checkLoaded(); err != nil {
		return nil, err
	}

	query := "SELECT " + habitColumns + " FROM habits"
	if !filter.IncludeArchived {
		query += " WHERE archived_at IS NULL"
	}
	query += " ORDER BY sort_order, created_at, id"

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var habits []models.Habit
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

func (s *Store) UpdateHabit(habit models.Habit) error {
	if err := s.checkLoaded(); err != nil {
		return err
	}

	args, err := habitArgs(habit)
	if err != nil {
		return err
	}
	// id moves to the end for the WHERE clause
	args = append(args[1:], args[0])

	res, err := s.db.Exec(`
		UPDATE habits SET name = ?, icon = ?, accent_color = ?, sort_order = ?,
			archived_at = ?, reminders = ?, daily_target = ?, created_at = ?
		WHERE id = ?`, args...)
	if err != nil {
		return fmt.Errorf("failed to update habit: %w", err)
	}
	return expectRow(res, "habit", habit.ID)
}

// DeleteHabit removes the habit; its entries go with it through the cascade
func (s *Store) DeleteHabit(id string) error {
	if err := s.checkLoaded(); err != nil {
		return err
	}

	res, err := s.db.Exec("DELETE FROM habits WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete habit: %w", err)
	}
	return expectRow(res, "habit", id)
}

func expectRow(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, storage.ErrNotFound)
	}
	return nil
}
