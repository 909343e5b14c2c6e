package models

import (
	"time"

	"github.com/google/uuid"
)

// HabitEntry is the record of one habit's progress on one calendar day.
// At most one entry exists per (HabitID, Day).
type HabitEntry struct {
	ID            string      `json:"id"`
	HabitID       string      `json:"habit_id"`
	Day           string      `json:"day"`  // YYYY-MM-DD in the calendar's location
	Date          time.Time   `json:"date"` // full timestamp the entry was opened at
	Status        EntryStatus `json:"status"`
	ProgressValue int         `json:"progress_value"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`

	// Transient marks an entry that could not be written to the store
	Transient bool `json:"-"`
}

// NewHabitEntry opens a pending entry with no progress for habit on day.
// Entries can only be built against an existing habit.
func NewHabitEntry(habit Habit, date time.Time, day string) HabitEntry {
	if habit.ID == "" {
		panic("models: NewHabitEntry requires a habit with an id")
	}
	return HabitEntry{
		ID:            uuid.New().String(),
		HabitID:       habit.ID,
		Day:           day,
		Date:          date,
		Status:        StatusPending,
		ProgressValue: 0,
		CreatedAt:     date,
		UpdatedAt:     date,
	}
}

func (e HabitEntry) IsDone() bool {
	return e.Status == StatusDone
}
