// Package tracker is the habit engine: it resolves today's entry for a
// habit, applies progress transitions and derives weekly statistics,
// streaks and the best day from stored entries.
package tracker

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/tinyhabits/internal/clock"
	apperrors "github.com/julianstephens/tinyhabits/internal/errors"
	"github.com/julianstephens/tinyhabits/internal/logger"
	"github.com/julianstephens/tinyhabits/internal/models"
	"github.com/julianstephens/tinyhabits/internal/storage"
)

var (
	// ErrNotPersisted is returned as a warning when an entry is usable but
	// could not be written to the store.
	ErrNotPersisted = errors.New("progress not saved")
	// ErrReadOnlyEntry rejects transitions on entries from any day but today.
	ErrReadOnlyEntry = errors.New("only today's entry can be changed")
	ErrHabitNotFound = errors.New("habit not found")
)

type Tracker struct {
	store storage.Provider
	clock clock.Clock
	cal   clock.Calendar
}

func New(store storage.Provider, clk clock.Clock, cal clock.Calendar) *Tracker {
	if clk == nil {
		clk = clock.System{}
	}
	return &Tracker{
		store: store,
		clock: clk,
		cal:   cal,
	}
}

func (t *Tracker) Calendar() clock.Calendar {
	return t.cal
}

func (t *Tracker) Now() time.Time {
	return t.clock.Now()
}

func notPersisted(err error) error {
	return apperrors.NewWarning(fmt.Errorf("%w: %v", ErrNotPersisted, err))
}

// ResolveTodayEntry returns the habit's entry for the calendar day of ref,
// creating and persisting a pending entry when none exists yet.
//
// Two callers racing to create the same day settle on whichever insert the
// store accepted: the loser sees storage.ErrConflict, re-reads and returns
// the winner. When the store cannot be reached the returned entry is
// transient and the error wraps ErrNotPersisted.
func (t *Tracker) ResolveTodayEntry(habit models.Habit, ref time.Time) (models.HabitEntry, error) {
	day := t.cal.DayKey(ref)

	existing, err := t.findEntry(habit.ID, ref)
	if err != nil {
		logger.Warn("Failed to look up entry, using transient entry", "habit", habit.Name, "day", day, "error", err)
		return t.transient(habit, ref, day), notPersisted(err)
	}
	if existing != nil {
		return *existing, nil
	}

	entry := models.NewHabitEntry(habit, ref, day)
	err = t.store.InsertEntry(entry)
	switch {
	case err == nil:
		logger.Debug("Created entry", "habit", habit.Name, "day", day)
		return entry, nil
	case errors.Is(err, storage.ErrConflict):
		winner, qerr := t.findEntry(habit.ID, ref)
		if qerr == nil && winner != nil {
			logger.Debug("Entry created concurrently, using stored entry", "habit", habit.Name, "day", day)
			return *winner, nil
		}
		if qerr == nil {
			qerr = err
		}
		logger.Warn("Conflicting entry could not be re-read", "habit", habit.Name, "day", day, "error", qerr)
		return t.transient(habit, ref, day), notPersisted(qerr)
	default:
		// The store may hold the row even though the write reported an error
		if stored, qerr := t.findEntry(habit.ID, ref); qerr == nil && stored != nil {
			logger.Warn("Entry write reported an error but the entry is stored", "habit", habit.Name, "day", day, "error", err)
			return *stored, notPersisted(err)
		}
		logger.Warn("Failed to create entry, using transient entry", "habit", habit.Name, "day", day, "error", err)
		return t.transient(habit, ref, day), notPersisted(err)
	}
}

func (t *Tracker) transient(habit models.Habit, ref time.Time, day string) models.HabitEntry {
	entry := models.NewHabitEntry(habit, ref, day)
	entry.Transient = true
	return entry
}

// findEntry returns the newest entry of habit inside the calendar day of ref
func (t *Tracker) findEntry(habitID string, ref time.Time) (*models.HabitEntry, error) {
	entries, err := t.store.FetchEntries(storage.Day(habitID, t.cal.DayKey(ref)))
	if err != nil {
		return nil, err
	}
	start, end := t.cal.DayWindow(ref)
	for _, e := range entries {
		if !e.Date.Before(start) && e.Date.Before(end) {
			return &e, nil
		}
	}
	// Entries written under another timezone still own the day key
	if len(entries) > 0 {
		return &entries[0], nil
	}
	return nil, nil
}

// Today resolves the habit's entry for the current day
func (t *Tracker) Today(habit models.Habit) (models.HabitEntry, error) {
	return t.ResolveTodayEntry(habit, t.clock.Now())
}

func (t *Tracker) habit(id string) (models.Habit, error) {
	habit, err := t.store.GetHabit(id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Habit{}, fmt.Errorf("%w: %s", ErrHabitNotFound, id)
		}
		return models.Habit{}, err
	}
	return habit, nil
}

// mutate resolves today's entry, applies fn and saves the result. A failed
// save still returns the changed entry alongside an ErrNotPersisted warning.
func (t *Tracker) mutate(habitID string, fn Transition) (models.HabitEntry, error) {
	habit, err := t.habit(habitID)
	if err != nil {
		return models.HabitEntry{}, err
	}

	now := t.clock.Now()
	entry, _ := t.ResolveTodayEntry(habit, now)

	next, err := t.Apply(habit, entry, now, fn)
	if err != nil {
		return entry, err
	}

	if next.Transient {
		return t.create(habit, next, now, fn)
	}
	return t.update(habit, next)
}

// create stores a transient entry with its new state. When another entry
// already owns the day the transition is applied to that entry instead.
func (t *Tracker) create(habit models.Habit, next models.HabitEntry, now time.Time, fn Transition) (models.HabitEntry, error) {
	err := t.store.InsertEntry(next)
	if err == nil {
		next.Transient = false
		return next, nil
	}

	if errors.Is(err, storage.ErrConflict) {
		winner, qerr := t.findEntry(habit.ID, now)
		if qerr == nil && winner != nil {
			logger.Debug("Entry already stored, applying progress to it", "habit", habit.Name, "day", winner.Day)
			stored, aerr := t.Apply(habit, *winner, now, fn)
			if aerr != nil {
				return *winner, aerr
			}
			return t.update(habit, stored)
		}
		if qerr != nil {
			err = qerr
		}
	}

	logger.Warn("Failed to save progress", "habit", habit.Name, "error", err)
	return next, notPersisted(err)
}

func (t *Tracker) update(habit models.Habit, next models.HabitEntry) (models.HabitEntry, error) {
	if err := t.store.UpdateEntry(next); err != nil {
		logger.Warn("Failed to save progress", "habit", habit.Name, "error", err)
		next.Transient = true
		return next, notPersisted(err)
	}
	logger.Debug("Saved progress", "habit", habit.Name, "status", next.Status, "progress", next.ProgressValue)
	return next, nil
}

func (t *Tracker) Increment(habitID string) (models.HabitEntry, error) {
	return t.mutate(habitID, Increment)
}

func (t *Tracker) ToggleDone(habitID string) (models.HabitEntry, error) {
	return t.mutate(habitID, ToggleDone)
}

func (t *Tracker) ResetProgress(habitID string) (models.HabitEntry, error) {
	return t.mutate(habitID, Reset)
}

// SetProgress sets today's progress directly, clamped into [0, target]
func (t *Tracker) SetProgress(habitID string, value int) (models.HabitEntry, error) {
	return t.mutate(habitID, func(h models.Habit, e models.HabitEntry) models.HabitEntry {
		return SetProgress(h, e, value)
	})
}

// Apply runs a transition on entry, which must belong to the day of now
func (t *Tracker) Apply(habit models.Habit, entry models.HabitEntry, now time.Time, fn Transition) (models.HabitEntry, error) {
	if entryDay(t.cal, entry) != t.cal.DayKey(now) {
		return entry, fmt.Errorf("%w: entry is for %s", ErrReadOnlyEntry, entryDay(t.cal, entry))
	}
	next := fn(habit, entry)
	next.UpdatedAt = now
	return next, nil
}

// Progress returns the habit's progress for today without creating an entry
func (t *Tracker) Progress(habit models.Habit) (models.HabitProgress, error) {
	entry, err := t.findEntry(habit.ID, t.clock.Now())
	if err != nil {
		return ProgressFor(habit, nil), err
	}
	return ProgressFor(habit, entry), nil
}

// Summary loads active habits and their entries and computes the week
// ending at now, using the stored weekly average policy.
func (t *Tracker) Summary(now time.Time) (models.WeeklySummary, error) {
	settings, err := t.store.GetSettings()
	if err != nil {
		logger.Debug("Using default settings for summary", "error", err)
		settings = models.DefaultSettings()
	}
	models.ApplyDefaultSettings(&settings)

	active, err := t.store.FetchHabits(storage.HabitFilter{})
	if err != nil {
		return models.WeeklySummary{}, fmt.Errorf("failed to load habits: %w", err)
	}

	window := t.cal.Window(now, WeekDays)
	entries, err := t.store.FetchEntries(storage.EntryFilter{
		StartDay: t.cal.DayKey(window[0]),
		EndDay:   t.cal.DayKey(now),
		Sort:     storage.DateAsc,
	})
	if err != nil {
		return models.WeeklySummary{}, fmt.Errorf("failed to load entries: %w", err)
	}

	stats := t.WeeklyStats(active, entries, now)
	avg := WeeklyCompletion(stats, settings.WeeklyAveragePolicy)

	doneToday := 0
	if len(stats) > 0 {
		doneToday = stats[len(stats)-1].Done
	}

	summary := models.WeeklySummary{
		Days:             stats,
		CurrentStreak:    t.CurrentStreak(stats, now),
		WeeklyCompletion: avg,
		WeeklyPercent:    FormatPercent(avg),
		BestDay:          SelectBestDay(stats),
		HeroMessage:      HeroMessage(doneToday, len(active)),
		DoneToday:        doneToday,
		ActiveHabits:     len(active),
	}
	if settings.ShowDailyQuotes {
		summary.Quote = DailyQuote(t.cal, now)
	}
	return summary, nil
}

// Detail computes the per-habit streak card
func (t *Tracker) Detail(habitID string) (models.HabitDetail, error) {
	habit, err := t.habit(habitID)
	if err != nil {
		return models.HabitDetail{}, err
	}

	entries, err := t.store.FetchEntries(storage.EntryFilter{HabitID: habit.ID, Sort: storage.DateAsc})
	if err != nil {
		return models.HabitDetail{}, fmt.Errorf("failed to load entries: %w", err)
	}

	return t.HabitDetail(habit, entries, t.clock.Now()), nil
}
