package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/julianstephens/tinyhabits/internal/backup"
	"github.com/julianstephens/tinyhabits/internal/clock"
	apperrors "github.com/julianstephens/tinyhabits/internal/errors"
	"github.com/julianstephens/tinyhabits/internal/habits"
	"github.com/julianstephens/tinyhabits/internal/logger"
	"github.com/julianstephens/tinyhabits/internal/models"
	"github.com/julianstephens/tinyhabits/internal/notifier"
	"github.com/julianstephens/tinyhabits/internal/storage"
	"github.com/julianstephens/tinyhabits/internal/storage/sqlite"
	"github.com/julianstephens/tinyhabits/internal/tracker"
)

type Context struct {
	Store     storage.Provider
	Clock     clock.Clock
	Reminders *notifier.ReminderScheduler

	// Timezone overrides the stored timezone setting when set
	Timezone string
}

// Settings returns the stored settings with defaults filled in. A store
// that cannot be read falls back to the defaults.
func (c *Context) Settings() models.Settings {
	settings, err := c.Store.GetSettings()
	if err != nil {
		logger.Warn("Using default settings", "error", err)
		settings = models.DefaultSettings()
	}
	models.ApplyDefaultSettings(&settings)
	return settings
}

func (c *Context) Calendar() (clock.Calendar, error) {
	tz := c.Timezone
	if tz == "" {
		tz = c.Settings().Timezone
	}
	return clock.CalendarFor(tz)
}

func (c *Context) Tracker() (*tracker.Tracker, error) {
	cal, err := c.Calendar()
	if err != nil {
		return nil, err
	}
	return tracker.New(c.Store, c.Clock, cal), nil
}

func (c *Context) Habits() *habits.Manager {
	if c.Reminders == nil {
		c.Reminders = notifier.NewReminderScheduler()
	}
	return habits.New(c.Store, c.Reminders, c.Clock, c.Settings())
}

// Backups returns the backup manager of the SQLite database
func (c *Context) Backups() (*backup.Manager, error) {
	if _, ok := c.Store.(*sqlite.Store); !ok {
		return nil, fmt.Errorf("backups are only supported for SQLite storage")
	}
	return backup.NewManager(c.Store.GetConfigPath(), c.Clock), nil
}

// PerformAutomaticBackup creates a backup and only logs failures
func (c *Context) PerformAutomaticBackup() {
	mgr, err := c.Backups()
	if err != nil {
		return
	}
	if _, err := mgr.Create(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// FindHabit looks a habit up by id first, then by name
func (c *Context) FindHabit(ref string) (models.Habit, error) {
	ref = strings.TrimSpace(ref)
	habit, err := c.Store.GetHabit(ref)
	if err == nil {
		return habit, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return models.Habit{}, err
	}
	habit, err = c.Store.GetHabitByName(ref)
	if errors.Is(err, storage.ErrNotFound) {
		return models.Habit{}, fmt.Errorf("habit %q not found", ref)
	}
	return habit, err
}

// ReportWarning prints a non-blocking warning and swallows it. Any other
// error is returned unchanged.
func ReportWarning(err error) error {
	if err == nil || !apperrors.IsWarning(err) {
		return err
	}
	logger.Warn("Operation completed with warning", "error", err)
	fmt.Fprintln(os.Stderr, apperrors.Format(err))
	return nil
}

// ProgressBar renders completion (0..1) as a fixed-width text bar
func ProgressBar(completion float64, width int) string {
	if completion < 0 {
		completion = 0
	}
	if completion > 1 {
		completion = 1
	}
	filled := int(completion * float64(width))
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}
