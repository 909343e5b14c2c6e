package models

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/tinyhabits/internal/constants"
)

// Reminder is a daily reminder time for a habit
type Reminder struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// ParseReminder parses an HH:MM string into a Reminder
func ParseReminder(s string) (Reminder, error) {
	t, err := time.Parse(constants.TimeFormat, strings.TrimSpace(s))
	if err != nil {
		return Reminder{}, fmt.Errorf("invalid reminder time %q (expected HH:MM)", s)
	}
	return Reminder{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func (r Reminder) Validate() error {
	if r.Hour < 0 || r.Hour > 23 {
		return fmt.Errorf("reminder hour %d out of range", r.Hour)
	}
	if r.Minute < 0 || r.Minute > 59 {
		return fmt.Errorf("reminder minute %d out of range", r.Minute)
	}
	return nil
}

func (r Reminder) String() string {
	return fmt.Sprintf("%02d:%02d", r.Hour, r.Minute)
}

// Habit represents a small daily practice with a numeric target
type Habit struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Icon        string     `json:"icon"`
	AccentColor string     `json:"accent_color"`
	Order       int        `json:"order"`
	ArchivedAt  *time.Time `json:"archived_at,omitempty"`
	Reminders   []Reminder `json:"reminders"`
	CreatedAt   time.Time  `json:"created_at"`
	DailyTarget int        `json:"daily_target"`
}

// HabitSpec holds the user supplied fields for a new habit
type HabitSpec struct {
	Name        string
	Icon        string
	AccentColor string
	Order       int
	Reminders   []Reminder
	DailyTarget int
	CreatedAt   time.Time
}

// NewHabit builds a Habit with a fresh id, a target of at least 1 and
// reminders sorted by time of day.
func NewHabit(spec HabitSpec) Habit {
	createdAt := spec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	return Habit{
		ID:          uuid.New().String(),
		Name:        spec.Name,
		Icon:        spec.Icon,
		AccentColor: spec.AccentColor,
		Order:       spec.Order,
		Reminders:   SortReminders(spec.Reminders),
		CreatedAt:   createdAt,
		DailyTarget: ClampTarget(spec.DailyTarget),
	}
}

// ClampTarget returns target, or 1 when target is below 1
func ClampTarget(target int) int {
	if target < 1 {
		return 1
	}
	return target
}

// SortReminders returns a copy of reminders ordered by (hour, minute)
func SortReminders(reminders []Reminder) []Reminder {
	sorted := make([]Reminder, len(reminders))
	copy(sorted, reminders)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Hour != sorted[j].Hour {
			return sorted[i].Hour < sorted[j].Hour
		}
		return sorted[i].Minute < sorted[j].Minute
	})
	return sorted
}

// Target is the daily target clamped to at least 1, so rows written by
// older versions never yield a zero divisor.
func (h Habit) Target() int {
	return ClampTarget(h.DailyTarget)
}

func (h Habit) IsArchived() bool {
	return h.ArchivedAt != nil
}

// ActiveHabits filters out archived habits and orders the rest by Order
func ActiveHabits(habits []Habit) []Habit {
	var active []Habit
	for _, h := range habits {
		if !h.IsArchived() {
			active = append(active, h)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].Order < active[j].Order
	})
	return active
}

// SameName compares habit names ignoring case and surrounding whitespace
func SameName(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
