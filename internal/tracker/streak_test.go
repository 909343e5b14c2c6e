package tracker

import (
	"testing"

	"github.com/julianstephens/tinyhabits/internal/models"
)

func TestCurrentStreak(t *testing.T) {
	habit := habitsNamed("Read")[0]

	tests := []struct {
		name    string
		entries []models.HabitEntry
		want    int
	}{
		{
			name: "open today keeps the streak",
			entries: []models.HabitEntry{
				entryOn(habit, -3, models.StatusDone),
				entryOn(habit, -2, models.StatusDone),
				entryOn(habit, -1, models.StatusDone),
			},
			want: 3,
		},
		{
			name: "pending yesterday breaks it",
			entries: []models.HabitEntry{
				entryOn(habit, -3, models.StatusDone),
				entryOn(habit, -2, models.StatusDone),
				entryOn(habit, -1, models.StatusPending),
			},
			want: 0,
		},
		{
			name: "done today extends it",
			entries: []models.HabitEntry{
				entryOn(habit, -1, models.StatusDone),
				entryOn(habit, 0, models.StatusDone),
			},
			want: 2,
		},
		{
			name:    "no entries",
			entries: nil,
			want:    0,
		},
		{
			name: "full week",
			entries: []models.HabitEntry{
				entryOn(habit, -6, models.StatusDone),
				entryOn(habit, -5, models.StatusDone),
				entryOn(habit, -4, models.StatusDone),
				entryOn(habit, -3, models.StatusDone),
				entryOn(habit, -2, models.StatusDone),
				entryOn(habit, -1, models.StatusDone),
				entryOn(habit, 0, models.StatusDone),
			},
			want: 7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := WeeklyStats(utc, []models.Habit{habit}, tt.entries, testNow)
			if got := CurrentStreak(utc, stats, testNow); got != tt.want {
				t.Errorf("CurrentStreak() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCurrentStreakSkipsEmptyDays(t *testing.T) {
	stats := make([]models.DayStat, 7)
	for i := range stats {
		stats[i].Date = utc.AddDays(utc.StartOfDay(testNow), i-6)
	}
	stats[4] = models.DayStat{Date: stats[4].Date, Done: 1, Total: 1, Percent: 1}
	stats[5] = models.DayStat{Date: stats[5].Date, Done: 1, Total: 1, Percent: 1}

	if got := CurrentStreak(utc, stats, testNow); got != 2 {
		t.Errorf("expected empty days to be skipped, got %d", got)
	}
}

func TestBestStreak(t *testing.T) {
	habit := habitsNamed("Read")[0]

	tests := []struct {
		name    string
		entries []models.HabitEntry
		want    int
	}{
		{
			name: "longest run wins",
			entries: []models.HabitEntry{
				entryOn(habit, -9, models.StatusDone),
				entryOn(habit, -8, models.StatusDone),
				entryOn(habit, -7, models.StatusDone),
				entryOn(habit, -6, models.StatusSkipped),
				entryOn(habit, -5, models.StatusDone),
			},
			want: 3,
		},
		{
			name: "pending today does not reset",
			entries: []models.HabitEntry{
				entryOn(habit, -2, models.StatusDone),
				entryOn(habit, -1, models.StatusDone),
				entryOn(habit, 0, models.StatusPending),
			},
			want: 2,
		},
		{
			name: "order of input does not matter",
			entries: []models.HabitEntry{
				entryOn(habit, -1, models.StatusDone),
				entryOn(habit, -3, models.StatusPending),
				entryOn(habit, -2, models.StatusDone),
			},
			want: 2,
		},
		{
			name:    "nothing done",
			entries: []models.HabitEntry{entryOn(habit, -1, models.StatusPending)},
			want:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BestStreak(utc, tt.entries, testNow); got != tt.want {
				t.Errorf("BestStreak() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestHabitCurrentStreak(t *testing.T) {
	habit := habitsNamed("Read")[0]
	entries := []models.HabitEntry{
		entryOn(habit, -4, models.StatusDone),
		entryOn(habit, -2, models.StatusDone),
		entryOn(habit, -1, models.StatusDone),
	}

	if got := HabitCurrentStreak(utc, entries, testNow); got != 2 {
		t.Errorf("expected streak 2 with a gap on day -3, got %d", got)
	}
}

func TestHabitDetail(t *testing.T) {
	tr, _, _ := newTestTracker(t)
	habit := habitsNamed("Read")[0]
	entries := []models.HabitEntry{
		entryOn(habit, -20, models.StatusDone),
		entryOn(habit, -3, models.StatusSkipped),
		entryOn(habit, -1, models.StatusDone),
		entryOn(habit, 0, models.StatusDone),
	}

	detail := tr.HabitDetail(habit, entries, testNow)
	if detail.TotalDone != 3 || detail.TotalSkipped != 1 {
		t.Errorf("expected 3 done and 1 skipped, got %d and %d", detail.TotalDone, detail.TotalSkipped)
	}
	if detail.CurrentStreak != 2 || detail.BestStreak != 2 {
		t.Errorf("expected streaks of 2, got current %d best %d", detail.CurrentStreak, detail.BestStreak)
	}
	if len(detail.Recent) != 7 || detail.Recent[3].Status != models.StatusSkipped || !detail.Recent[3].Exists {
		t.Errorf("unexpected recent history: %+v", detail.Recent)
	}
	if detail.Recent[0].Exists {
		t.Error("expected no entry six days ago")
	}
}
