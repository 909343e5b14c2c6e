package notifier

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/julianstephens/tinyhabits/internal/constants"
	"github.com/julianstephens/tinyhabits/internal/logger"
	"github.com/julianstephens/tinyhabits/internal/models"
)

// Scheduler registers a habit's daily reminders. Archiving or deleting a
// habit must call Cancel before its data goes away.
type Scheduler interface {
	Schedule(habit models.Habit)
	Cancel(habit models.Habit)
	CancelAll()
}

// PendingReminder is one scheduled reminder of one habit
type PendingReminder struct {
	ID        string
	HabitID   string
	HabitName string
	Reminder  models.Reminder
}

// ReminderID identifies the index-th reminder of a habit
func ReminderID(habitID string, index int) string {
	return fmt.Sprintf("%s%s-%d", constants.ReminderIDPrefix, habitID, index)
}

func habitPrefix(habitID string) string {
	return constants.ReminderIDPrefix + habitID + "-"
}

// ReminderScheduler keeps the registered reminders in memory
type ReminderScheduler struct {
	mu      sync.Mutex
	pending map[string]PendingReminder
}

var _ Scheduler = (*ReminderScheduler)(nil)

func NewReminderScheduler() *ReminderScheduler {
	return &ReminderScheduler{
		pending: make(map[string]PendingReminder),
	}
}

// Schedule replaces the habit's reminders. Archived habits get none.
func (s *ReminderScheduler) Schedule(habit models.Habit) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelLocked(habit.ID)
	if habit.IsArchived() {
		return
	}
	for i, r := range habit.Reminders {
		id := ReminderID(habit.ID, i)
		s.pending[id] = PendingReminder{
			ID:        id,
			HabitID:   habit.ID,
			HabitName: habit.Name,
			Reminder:  r,
		}
	}
	logger.Debug("Scheduled reminders", "habit", habit.Name, "count", len(habit.Reminders))
}

func (s *ReminderScheduler) Cancel(habit models.Habit) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked(habit.ID)
}

func (s *ReminderScheduler) cancelLocked(habitID string) {
	prefix := habitPrefix(habitID)
	for id := range s.pending {
		if strings.HasPrefix(id, prefix) {
			delete(s.pending, id)
		}
	}
}

func (s *ReminderScheduler) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = make(map[string]PendingReminder)
}

// RescheduleAll drops every reminder and registers those of habits
func (s *ReminderScheduler) RescheduleAll(habits []models.Habit) {
	s.CancelAll()
	for _, h := range habits {
		s.Schedule(h)
	}
}

// Pending lists the registered reminders ordered by time of day
func (s *ReminderScheduler) Pending() []PendingReminder {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := make([]PendingReminder, 0, len(s.pending))
	for _, p := range s.pending {
		list = append(list, p)
	}
	sort.Slice(list, func(i, j int) bool {
		a, b := list[i].Reminder, list[j].Reminder
		if a.Hour != b.Hour {
			return a.Hour < b.Hour
		}
		if a.Minute != b.Minute {
			return a.Minute < b.Minute
		}
		return list[i].ID < list[j].ID
	})
	return list
}

// Due returns reminders whose time today lies in [now-grace, now]
func (s *ReminderScheduler) Due(now time.Time, grace time.Duration) []PendingReminder {
	var due []PendingReminder
	for _, p := range s.Pending() {
		at := time.Date(now.Year(), now.Month(), now.Day(), p.Reminder.Hour, p.Reminder.Minute, 0, 0, now.Location())
		if at.After(now) || at.Before(now.Add(-grace)) {
			continue
		}
		due = append(due, p)
	}
	return due
}
