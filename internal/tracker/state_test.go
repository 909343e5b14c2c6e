package tracker

import (
	"testing"

	"github.com/julianstephens/tinyhabits/internal/models"
)

func pendingEntry(habit models.Habit) models.HabitEntry {
	return models.NewHabitEntry(habit, testNow, utc.DayKey(testNow))
}

func TestIncrementSteps(t *testing.T) {
	tests := []struct {
		name   string
		target int
		want   []int
	}{
		{"quarter steps", 2000, []int{500, 1000, 1500, 2000}},
		{"target of one", 1, []int{1}},
		{"small target steps by one", 3, []int{1, 2, 3}},
		{"uneven quarters stop at target", 10, []int{2, 4, 6, 8, 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			habit := models.Habit{ID: "h", DailyTarget: tt.target}
			entry := pendingEntry(habit)
			for i, want := range tt.want {
				entry = Increment(habit, entry)
				if entry.ProgressValue != want {
					t.Fatalf("step %d: expected %d, got %d", i, want, entry.ProgressValue)
				}
				wantDone := i == len(tt.want)-1
				if entry.IsDone() != wantDone {
					t.Fatalf("step %d: expected done=%v, got status %s", i, wantDone, entry.Status)
				}
			}

			// Further increments stay at target
			entry = Increment(habit, entry)
			if entry.ProgressValue != tt.target || !entry.IsDone() {
				t.Errorf("expected to stay done at %d, got %d %s", tt.target, entry.ProgressValue, entry.Status)
			}
		})
	}
}

func TestToggleDone(t *testing.T) {
	habit := models.Habit{ID: "h", DailyTarget: 8}

	entry := pendingEntry(habit)
	entry.ProgressValue = 3

	entry = ToggleDone(habit, entry)
	if !entry.IsDone() || entry.ProgressValue != 8 {
		t.Fatalf("expected done at target, got %s %d", entry.Status, entry.ProgressValue)
	}

	entry = ToggleDone(habit, entry)
	if entry.Status != models.StatusPending || entry.ProgressValue != 0 {
		t.Errorf("expected pending with no progress, got %s %d", entry.Status, entry.ProgressValue)
	}
}

func TestToggleDoneFromSkipped(t *testing.T) {
	habit := models.Habit{ID: "h", DailyTarget: 2}
	entry := pendingEntry(habit)
	entry.Status = models.StatusSkipped

	entry = ToggleDone(habit, entry)
	if !entry.IsDone() || entry.ProgressValue != 2 {
		t.Errorf("expected skipped entry to toggle to done, got %s %d", entry.Status, entry.ProgressValue)
	}
}

func TestResetIsIdempotent(t *testing.T) {
	habit := models.Habit{ID: "h", DailyTarget: 4}
	entry := ToggleDone(habit, pendingEntry(habit))

	once := Reset(habit, entry)
	twice := Reset(habit, once)
	if once != twice {
		t.Errorf("expected reset to be idempotent: %+v vs %+v", once, twice)
	}
	if once.Status != models.StatusPending || once.ProgressValue != 0 {
		t.Errorf("expected pending with no progress, got %s %d", once.Status, once.ProgressValue)
	}
}

func TestSetProgressClamps(t *testing.T) {
	habit := models.Habit{ID: "h", DailyTarget: 10}

	tests := []struct {
		value      int
		want       int
		wantStatus models.EntryStatus
	}{
		{-5, 0, models.StatusPending},
		{4, 4, models.StatusPending},
		{10, 10, models.StatusDone},
		{50, 10, models.StatusDone},
	}

	for _, tt := range tests {
		got := SetProgress(habit, pendingEntry(habit), tt.value)
		if got.ProgressValue != tt.want || got.Status != tt.wantStatus {
			t.Errorf("SetProgress(%d) = %d %s, want %d %s", tt.value, got.ProgressValue, got.Status, tt.want, tt.wantStatus)
		}
	}
}

func TestTransitionsStayInRange(t *testing.T) {
	habit := models.Habit{ID: "h", DailyTarget: 7}
	ops := []Transition{Increment, Increment, ToggleDone, Increment, Reset, Increment, ToggleDone, ToggleDone, Increment, Increment, Increment, Increment, Increment}

	entry := pendingEntry(habit)
	for i, op := range ops {
		entry = op(habit, entry)
		if entry.ProgressValue < 0 || entry.ProgressValue > habit.Target() {
			t.Fatalf("op %d: progress %d out of range", i, entry.ProgressValue)
		}
		if entry.IsDone() != (entry.ProgressValue == habit.Target()) {
			t.Fatalf("op %d: status %s does not match progress %d", i, entry.Status, entry.ProgressValue)
		}
	}
}

func TestTargetBelowOneIsClamped(t *testing.T) {
	habit := models.Habit{ID: "h", DailyTarget: 0}
	entry := Increment(habit, pendingEntry(habit))
	if !entry.IsDone() || entry.ProgressValue != 1 {
		t.Errorf("expected a zero target to behave as 1, got %s %d", entry.Status, entry.ProgressValue)
	}
}

func TestProgressFor(t *testing.T) {
	habit := models.Habit{ID: "h", DailyTarget: 4}

	if p := ProgressFor(habit, nil); p.Status != models.StatusPending || p.Completion != 0 || p.Target != 4 {
		t.Errorf("unexpected progress for missing entry: %+v", p)
	}

	entry := pendingEntry(habit)
	entry.ProgressValue = 1
	if p := ProgressFor(habit, &entry); p.Completion != 0.25 || p.PercentString() != "25%" {
		t.Errorf("expected 25%% completion, got %+v", p)
	}

	entry.Status = models.StatusSkipped
	if p := ProgressFor(habit, &entry); p.Completion != 0 {
		t.Errorf("expected skipped to count as 0, got %v", p.Completion)
	}

	entry.Status = models.StatusDone
	entry.ProgressValue = 0
	if p := ProgressFor(habit, &entry); p.Completion != 1 {
		t.Errorf("expected done to count as 1, got %v", p.Completion)
	}
}
