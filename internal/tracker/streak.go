package tracker

import (
	"time"

	"github.com/julianstephens/tinyhabits/internal/clock"
	"github.com/julianstephens/tinyhabits/internal/models"
)

// CurrentStreak counts consecutive days with at least one habit done,
// walking back from today. Days with nothing to do are skipped, and an
// unfinished today does not break a streak that ran through yesterday.
func (t *Tracker) CurrentStreak(stats []models.DayStat, today time.Time) int {
	return CurrentStreak(t.cal, stats, today)
}

func CurrentStreak(cal clock.Calendar, stats []models.DayStat, today time.Time) int {
	streak := 0
	for i := len(stats) - 1; i >= 0; i-- {
		s := stats[i]
		if s.Total == 0 {
			continue
		}
		if s.Done > 0 {
			streak++
			continue
		}
		if cal.SameDay(s.Date, today) {
			continue
		}
		break
	}
	return streak
}

// BestStreak is the longest run of done entries in a habit's history.
// A non-done entry for today does not reset the running count.
func (t *Tracker) BestStreak(entries []models.HabitEntry, today time.Time) int {
	return BestStreak(t.cal, entries, today)
}

func BestStreak(cal clock.Calendar, entries []models.HabitEntry, today time.Time) int {
	ordered := make([]models.HabitEntry, len(entries))
	copy(ordered, entries)
	sortByDate(ordered)

	todayKey := cal.DayKey(today)
	best, current := 0, 0
	for _, e := range ordered {
		if e.IsDone() {
			current++
			best = max(best, current)
			continue
		}
		if entryDay(cal, e) != todayKey {
			current = 0
		}
	}
	return max(best, current)
}

// HabitCurrentStreak counts done days for one habit over the last week,
// walking back from today. Today may still be open.
func (t *Tracker) HabitCurrentStreak(entries []models.HabitEntry, today time.Time) int {
	return HabitCurrentStreak(t.cal, entries, today)
}

func HabitCurrentStreak(cal clock.Calendar, entries []models.HabitEntry, today time.Time) int {
	recent := recentStatuses(cal, entries, today)
	todayKey := cal.DayKey(today)

	streak := 0
	for i := len(recent) - 1; i >= 0; i-- {
		if recent[i].Status == models.StatusDone {
			streak++
		} else if cal.DayKey(recent[i].Date) != todayKey {
			break
		}
	}
	return streak
}

// recentStatuses returns the habit's status on each day of the week ending
// at today, oldest first. Days without an entry read as pending.
func recentStatuses(cal clock.Calendar, entries []models.HabitEntry, today time.Time) []models.DayStatus {
	byDay := make(map[string]models.HabitEntry, len(entries))
	for _, e := range entries {
		key := entryDay(cal, e)
		if prev, ok := byDay[key]; ok && !e.Date.After(prev.Date) {
			continue
		}
		byDay[key] = e
	}

	days := cal.Window(today, WeekDays)
	statuses := make([]models.DayStatus, len(days))
	for i, day := range days {
		statuses[i] = models.DayStatus{Date: day, Status: models.StatusPending}
		if e, ok := byDay[cal.DayKey(day)]; ok {
			statuses[i].Status = e.Status
			statuses[i].Exists = true
		}
	}
	return statuses
}

// HabitDetail gathers the per-habit figures from its full entry history
func (t *Tracker) HabitDetail(habit models.Habit, entries []models.HabitEntry, today time.Time) models.HabitDetail {
	recent := recentStatuses(t.cal, entries, today)

	doneRecent := 0
	for _, s := range recent {
		if s.Status == models.StatusDone {
			doneRecent++
		}
	}

	detail := models.HabitDetail{
		Habit:         habit,
		CurrentStreak: HabitCurrentStreak(t.cal, entries, today),
		BestStreak:    BestStreak(t.cal, entries, today),
		Last7Percent:  roundPercent(doneRecent, len(recent)),
		Recent:        recent,
	}
	for _, e := range entries {
		switch e.Status {
		case models.StatusDone:
			detail.TotalDone++
		case models.StatusSkipped:
			detail.TotalSkipped++
		}
	}
	return detail
}

func roundPercent(n, d int) int {
	if d <= 0 {
		return 0
	}
	return (n*200 + d) / (2 * d)
}
