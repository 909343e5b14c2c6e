package storage

import "github.com/julianstephens/tinyhabits/internal/models"

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Habits
	AddHabit(models.Habit) error
	GetHabit(id string) (models.Habit, error)
	GetHabitByName(name string) (models.Habit, error)
	FetchHabits(HabitFilter) ([]models.Habit, error)
	UpdateHabit(models.Habit) error
	DeleteHabit(id string) error

	// Entries
	InsertEntry(models.HabitEntry) error
	FetchEntries(EntryFilter) ([]models.HabitEntry, error)
	UpdateEntry(models.HabitEntry) error
	DeleteEntry(id string) error
	DeleteEntriesForHabit(habitID string) (int, error)

	// Utils
	DeleteAll() error
	GetConfigPath() string
}

// HabitFilter selects habits. Results are ordered by Order, then CreatedAt.
type HabitFilter struct {
	IncludeArchived bool
}

type SortOrder int

const (
	DateAsc SortOrder = iota
	DateDesc
)

// EntryFilter selects entries. Empty fields match everything; StartDay and
// EndDay are inclusive YYYY-MM-DD day keys.
type EntryFilter struct {
	HabitID  string
	StartDay string
	EndDay   string
	Sort     SortOrder
}

// Matches reports whether e falls inside the filter
func (f EntryFilter) Matches(e models.HabitEntry) bool {
	if f.HabitID != "" && e.HabitID != f.HabitID {
		return false
	}
	if f.StartDay != "" && e.Day < f.StartDay {
		return false
	}
	if f.EndDay != "" && e.Day > f.EndDay {
		return false
	}
	return true
}

// Day returns a filter for a single day key
func Day(habitID, day string) EntryFilter {
	return EntryFilter{HabitID: habitID, StartDay: day, EndDay: day, Sort: DateDesc}
}
