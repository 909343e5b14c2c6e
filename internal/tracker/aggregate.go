package tracker

import (
	"fmt"
	"time"

	"github.com/julianstephens/tinyhabits/internal/clock"
	"github.com/julianstephens/tinyhabits/internal/constants"
	"github.com/julianstephens/tinyhabits/internal/logger"
	"github.com/julianstephens/tinyhabits/internal/models"
)

const WeekDays = constants.WeekWindowDays

// entryDay is the calendar day an entry belongs to
func entryDay(cal clock.Calendar, e models.HabitEntry) string {
	if e.Day != "" {
		return e.Day
	}
	return cal.DayKey(e.Date)
}

// WeeklyStats computes one DayStat per day for the week ending at today,
// oldest first. Only entries of active habits count. A day with no entries
// uses the number of active habits as its total.
func (t *Tracker) WeeklyStats(active []models.Habit, entries []models.HabitEntry, today time.Time) []models.DayStat {
	return WeeklyStats(t.cal, active, entries, today)
}

func WeeklyStats(cal clock.Calendar, active []models.Habit, entries []models.HabitEntry, today time.Time) []models.DayStat {
	activeIDs := make(map[string]struct{}, len(active))
	for _, h := range models.ActiveHabits(active) {
		activeIDs[h.ID] = struct{}{}
	}

	type tally struct {
		done   int
		habits map[string]struct{}
	}
	byDay := make(map[string]*tally)
	for _, e := range entries {
		if _, ok := activeIDs[e.HabitID]; !ok {
			logger.Debug("Skipping entry of inactive habit", "entry", e.ID, "habit", e.HabitID)
			continue
		}
		key := entryDay(cal, e)
		d, ok := byDay[key]
		if !ok {
			d = &tally{habits: make(map[string]struct{})}
			byDay[key] = d
		}
		d.habits[e.HabitID] = struct{}{}
		if e.IsDone() {
			d.done++
		}
	}

	days := cal.Window(today, WeekDays)
	stats := make([]models.DayStat, 0, len(days))
	for _, day := range days {
		stat := models.DayStat{Date: day, Total: len(activeIDs)}
		if d, ok := byDay[cal.DayKey(day)]; ok {
			stat.Done = d.done
			stat.Total = len(d.habits)
		}
		if stat.Total > 0 {
			stat.Percent = float64(stat.Done) / float64(stat.Total)
		}
		stats = append(stats, stat)
	}
	return stats
}

// WeeklyCompletion is the mean daily percent. PolicyIncludeEmptyDays counts
// days with no habits as 0; PolicyExcludeEmptyDays leaves them out.
func WeeklyCompletion(stats []models.DayStat, policy string) float64 {
	sum, n := 0.0, 0
	for _, s := range stats {
		if s.Total == 0 && policy == constants.PolicyExcludeEmptyDays {
			continue
		}
		sum += s.Percent
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// FormatPercent renders a 0..1 ratio as a truncated whole percentage
func FormatPercent(p float64) string {
	return fmt.Sprintf("%d%%", int(p*100))
}
