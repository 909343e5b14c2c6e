package tracker

import (
	"testing"
	"time"

	"github.com/julianstephens/tinyhabits/internal/constants"
	"github.com/julianstephens/tinyhabits/internal/models"
)

func habitsNamed(names ...string) []models.Habit {
	var habits []models.Habit
	for i, name := range names {
		habits = append(habits, models.NewHabit(models.HabitSpec{Name: name, Order: i, DailyTarget: 1}))
	}
	return habits
}

func TestWeeklyStatsFullWeek(t *testing.T) {
	habits := habitsNamed("Read", "Walk", "Stretch")

	var entries []models.HabitEntry
	for offset := -6; offset <= 0; offset++ {
		for _, h := range habits {
			entries = append(entries, entryOn(h, offset, models.StatusDone))
		}
	}

	stats := WeeklyStats(utc, habits, entries, testNow)
	if len(stats) != 7 {
		t.Fatalf("expected 7 days, got %d", len(stats))
	}
	for i, s := range stats {
		if s.Percent != 1.0 || s.Done != 3 || s.Total != 3 {
			t.Errorf("day %d: expected 3/3, got %+v", i, s)
		}
	}
	if !stats[0].Date.Equal(utc.StartOfDay(testNow.AddDate(0, 0, -6))) {
		t.Errorf("expected oldest day first, got %v", stats[0].Date)
	}

	if got := FormatPercent(WeeklyCompletion(stats, constants.PolicyIncludeEmptyDays)); got != "100%" {
		t.Errorf("expected 100%%, got %s", got)
	}
}

func TestWeeklyStatsPartialDayIsNotDiluted(t *testing.T) {
	habits := habitsNamed("Read", "Walk", "Stretch")
	entries := []models.HabitEntry{
		entryOn(habits[0], -1, models.StatusDone),
		entryOn(habits[1], -1, models.StatusDone),
	}

	stats := WeeklyStats(utc, habits, entries, testNow)
	yesterday := stats[5]
	if yesterday.Total != 2 || yesterday.Done != 2 || yesterday.Percent != 1.0 {
		t.Errorf("expected 2/2 yesterday, got %+v", yesterday)
	}

	// Days without entries fall back to the active habit count
	today := stats[6]
	if today.Total != 3 || today.Done != 0 || today.Percent != 0 {
		t.Errorf("expected 0/3 today, got %+v", today)
	}
}

func TestWeeklyStatsIgnoresInactiveHabits(t *testing.T) {
	habits := habitsNamed("Read", "Walk")
	archived := habits[1]
	at := testNow
	archived.ArchivedAt = &at
	orphan := models.Habit{ID: "deleted-habit", DailyTarget: 1}

	entries := []models.HabitEntry{
		entryOn(habits[0], 0, models.StatusPending),
		entryOn(archived, 0, models.StatusDone),
		entryOn(orphan, 0, models.StatusDone),
	}

	stats := WeeklyStats(utc, []models.Habit{habits[0], archived}, entries, testNow)
	today := stats[6]
	if today.Done != 0 || today.Total != 1 {
		t.Errorf("expected only Read to count today, got %+v", today)
	}
	if stats[0].Total != 1 {
		t.Errorf("expected archived habit to be left out of the fallback total, got %d", stats[0].Total)
	}
}

func TestWeeklyStatsSkippedCountsAsNotDone(t *testing.T) {
	habits := habitsNamed("Read", "Walk")
	entries := []models.HabitEntry{
		entryOn(habits[0], 0, models.StatusSkipped),
		entryOn(habits[1], 0, models.StatusDone),
	}

	today := WeeklyStats(utc, habits, entries, testNow)[6]
	if today.Done != 1 || today.Total != 2 || today.Percent != 0.5 {
		t.Errorf("expected 1/2 with a skipped entry, got %+v", today)
	}
}

func TestWeeklyStatsNoHabits(t *testing.T) {
	stats := WeeklyStats(utc, nil, nil, testNow)
	for _, s := range stats {
		if s.Total != 0 || s.Percent != 0 {
			t.Errorf("expected empty day, got %+v", s)
		}
	}
	if got := WeeklyCompletion(stats, constants.PolicyIncludeEmptyDays); got != 0 {
		t.Errorf("expected 0 completion, got %v", got)
	}
	if got := WeeklyCompletion(stats, constants.PolicyExcludeEmptyDays); got != 0 {
		t.Errorf("expected 0 completion when every day is empty, got %v", got)
	}
}

func TestWeeklyCompletionPolicies(t *testing.T) {
	stats := make([]models.DayStat, 7)
	stats[5] = models.DayStat{Done: 1, Total: 2, Percent: 0.5}
	stats[6] = models.DayStat{Done: 1, Total: 1, Percent: 1}

	include := WeeklyCompletion(stats, constants.PolicyIncludeEmptyDays)
	if FormatPercent(include) != "21%" {
		t.Errorf("expected 21%% including empty days, got %s", FormatPercent(include))
	}

	exclude := WeeklyCompletion(stats, constants.PolicyExcludeEmptyDays)
	if FormatPercent(exclude) != "75%" {
		t.Errorf("expected 75%% excluding empty days, got %s", FormatPercent(exclude))
	}
}

func TestWeeklyStatsAcrossDST(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}
	cal := newCalendar(ny)
	habits := habitsNamed("Read")

	// 2026-11-01 is a 25 hour day in New York
	now := time.Date(2026, 11, 2, 9, 0, 0, 0, ny)
	late := time.Date(2026, 11, 1, 23, 30, 0, 0, ny)
	e := models.NewHabitEntry(habits[0], late, cal.DayKey(late))
	e.Status = models.StatusDone

	stats := WeeklyStats(cal, habits, []models.HabitEntry{e}, now)
	if stats[5].Done != 1 {
		t.Errorf("expected the late entry on 2026-11-01, got %+v", stats[5])
	}
	if stats[6].Done != 0 {
		t.Errorf("expected nothing on 2026-11-02, got %+v", stats[6])
	}
}
