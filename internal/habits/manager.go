// Package habits holds the habit settings operations: adding, archiving,
// reordering and removing habits while keeping reminders in step.
package habits

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/tinyhabits/internal/clock"
	"github.com/julianstephens/tinyhabits/internal/logger"
	"github.com/julianstephens/tinyhabits/internal/models"
	"github.com/julianstephens/tinyhabits/internal/notifier"
	"github.com/julianstephens/tinyhabits/internal/storage"
)

var (
	ErrActiveLimit   = errors.New("active habit limit reached")
	ErrDuplicateName = errors.New("an active habit with this name already exists")
	ErrEmptyName     = errors.New("habit name cannot be empty")
	ErrNotArchived   = errors.New("habit is not archived")
)

type Manager struct {
	store     storage.Provider
	reminders notifier.Scheduler
	clock     clock.Clock
	settings  models.Settings
}

func New(store storage.Provider, reminders notifier.Scheduler, clk clock.Clock, settings models.Settings) *Manager {
	if clk == nil {
		clk = clock.System{}
	}
	if reminders == nil {
		reminders = notifier.NewReminderScheduler()
	}
	models.ApplyDefaultSettings(&settings)
	return &Manager{
		store:     store,
		reminders: reminders,
		clock:     clk,
		settings:  settings,
	}
}

func (m *Manager) active() ([]models.Habit, error) {
	habits, err := m.store.FetchHabits(storage.HabitFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to load habits: %w", err)
	}
	return habits, nil
}

func (m *Manager) checkLimit(active []models.Habit) error {
	if len(active) >= m.settings.MaxActiveHabits {
		return fmt.Errorf("%w: at most %d active habits", ErrActiveLimit, m.settings.MaxActiveHabits)
	}
	return nil
}

// AddCustom creates a habit from user input at the end of the active list
func (m *Manager) AddCustom(name, icon, accent string, target int, reminders ...models.Reminder) (models.Habit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Habit{}, ErrEmptyName
	}
	for _, r := range reminders {
		if err := r.Validate(); err != nil {
			return models.Habit{}, err
		}
	}

	active, err := m.active()
	if err != nil {
		return models.Habit{}, err
	}
	if err := m.checkLimit(active); err != nil {
		return models.Habit{}, err
	}

	habit := models.NewHabit(models.HabitSpec{
		Name:        name,
		Icon:        icon,
		AccentColor: accent,
		Order:       len(active),
		Reminders:   reminders,
		DailyTarget: target,
		CreatedAt:   m.clock.Now(),
	})
	if err := m.store.AddHabit(habit); err != nil {
		return models.Habit{}, fmt.Errorf("failed to add habit: %w", err)
	}

	m.reminders.Schedule(habit)
	logger.Info("Added habit", "id", habit.ID, "name", habit.Name, "target", habit.DailyTarget)
	return habit, nil
}

// AddCurated adds one of the built-in habits unless an active habit
// already uses its name.
func (m *Manager) AddCurated(curated models.CuratedHabit) (models.Habit, error) {
	active, err := m.active()
	if err != nil {
		return models.Habit{}, err
	}
	for _, h := range active {
		if models.SameName(h.Name, curated.Name) {
			return models.Habit{}, fmt.Errorf("%w: %s", ErrDuplicateName, curated.Name)
		}
	}
	return m.AddCustom(curated.Name, curated.Icon, curated.AccentColor, curated.DefaultTarget)
}

// Archive hides a habit and purges its history. Reminders are cancelled
// before anything is deleted. Entries are removed one at a time and one
// that fails to delete stays behind without blocking the others.
func (m *Manager) Archive(id string) (models.Habit, error) {
	habit, err := m.store.GetHabit(id)
	if err != nil {
		return models.Habit{}, err
	}
	if habit.IsArchived() {
		return habit, nil
	}

	m.reminders.Cancel(habit)

	deleted, err := m.store.DeleteEntriesForHabit(habit.ID)
	if err != nil {
		logger.Warn("Failed to purge all entries of archived habit", "habit", habit.Name, "deleted", deleted, "error", err)
	}

	now := m.clock.Now()
	habit.ArchivedAt = &now
	habit.Reminders = nil
	if err := m.store.UpdateHabit(habit); err != nil {
		return models.Habit{}, fmt.Errorf("failed to archive habit: %w", err)
	}

	if err := m.normalizeOrder(); err != nil {
		return habit, err
	}
	logger.Info("Archived habit", "id", habit.ID, "name", habit.Name, "entries_deleted", deleted)
	return habit, nil
}

// Activate brings an archived habit back at the end of the active list
func (m *Manager) Activate(id string) (models.Habit, error) {
	habit, err := m.store.GetHabit(id)
	if err != nil {
		return models.Habit{}, err
	}
	if !habit.IsArchived() {
		return models.Habit{}, fmt.Errorf("%w: %s", ErrNotArchived, habit.Name)
	}

	active, err := m.active()
	if err != nil {
		return models.Habit{}, err
	}
	if err := m.checkLimit(active); err != nil {
		return models.Habit{}, err
	}
	for _, h := range active {
		if models.SameName(h.Name, habit.Name) {
			return models.Habit{}, fmt.Errorf("%w: %s", ErrDuplicateName, habit.Name)
		}
	}

	habit.ArchivedAt = nil
	habit.Order = len(active)
	if err := m.store.UpdateHabit(habit); err != nil {
		return models.Habit{}, fmt.Errorf("failed to activate habit: %w", err)
	}

	m.reminders.Schedule(habit)
	logger.Info("Activated habit", "id", habit.ID, "name", habit.Name)
	return habit, nil
}

// Delete removes a habit and all of its entries for good
func (m *Manager) Delete(id string) error {
	habit, err := m.store.GetHabit(id)
	if err != nil {
		return err
	}

	m.reminders.Cancel(habit)

	if deleted, err := m.store.DeleteEntriesForHabit(habit.ID); err != nil {
		logger.Warn("Failed to purge all entries of deleted habit", "habit", habit.Name, "deleted", deleted, "error", err)
	}
	if err := m.store.DeleteHabit(habit.ID); err != nil {
		return fmt.Errorf("failed to delete habit: %w", err)
	}

	logger.Info("Deleted habit", "id", habit.ID, "name", habit.Name)
	return m.normalizeOrder()
}

// SetTarget changes the daily target, clamped to at least 1
func (m *Manager) SetTarget(id string, target int) (models.Habit, error) {
	habit, err := m.store.GetHabit(id)
	if err != nil {
		return models.Habit{}, err
	}

	habit.DailyTarget = models.ClampTarget(target)
	if err := m.store.UpdateHabit(habit); err != nil {
		return models.Habit{}, fmt.Errorf("failed to update target: %w", err)
	}
	return habit, nil
}

// SetReminders replaces the habit's reminder times and reschedules them
func (m *Manager) SetReminders(id string, reminders []models.Reminder) (models.Habit, error) {
	for _, r := range reminders {
		if err := r.Validate(); err != nil {
			return models.Habit{}, err
		}
	}

	habit, err := m.store.GetHabit(id)
	if err != nil {
		return models.Habit{}, err
	}

	m.reminders.Cancel(habit)
	habit.Reminders = models.SortReminders(reminders)
	if err := m.store.UpdateHabit(habit); err != nil {
		return models.Habit{}, fmt.Errorf("failed to update reminders: %w", err)
	}

	m.reminders.Schedule(habit)
	return habit, nil
}

// Move places an active habit at index in the active list
func (m *Manager) Move(id string, index int) ([]models.Habit, error) {
	active, err := m.active()
	if err != nil {
		return nil, err
	}

	from := -1
	for i, h := range active {
		if h.ID == id {
			from = i
			break
		}
	}
	if from < 0 {
		return nil, fmt.Errorf("habit %s: %w", id, storage.ErrNotFound)
	}

	index = max(0, min(index, len(active)-1))
	habit := active[from]
	reordered := append(active[:from:from], active[from+1:]...)
	reordered = append(reordered[:index], append([]models.Habit{habit}, reordered[index:]...)...)

	if err := m.saveOrder(reordered); err != nil {
		return nil, err
	}
	return reordered, nil
}

// ResetAll cancels every reminder and deletes all habits and entries
func (m *Manager) ResetAll() error {
	m.reminders.CancelAll()
	if err := m.store.DeleteAll(); err != nil {
		return fmt.Errorf("failed to reset data: %w", err)
	}
	logger.Info("Reset all habits")
	return nil
}

// normalizeOrder renumbers active habits 0..n-1 in their current order
func (m *Manager) normalizeOrder() error {
	active, err := m.active()
	if err != nil {
		return err
	}
	return m.saveOrder(active)
}

func (m *Manager) saveOrder(habits []models.Habit) error {
	for i := range habits {
		if habits[i].Order == i {
			continue
		}
		habits[i].Order = i
		if err := m.store.UpdateHabit(habits[i]); err != nil {
			return fmt.Errorf("failed to reorder habits: %w", err)
		}
	}
	return nil
}
