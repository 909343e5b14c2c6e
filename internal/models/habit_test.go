package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestNewHabitClampsTarget(t *testing.T) {
	tests := []struct {
		name   string
		target int
		want   int
	}{
		{name: "zero", target: 0, want: 1},
		{name: "negative", target: -5, want: 1},
		{name: "one", target: 1, want: 1},
		{name: "large", target: 2000, want: 2000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHabit(HabitSpec{Name: "Drink Water", DailyTarget: tt.target})
			if h.DailyTarget != tt.want {
				t.Errorf("DailyTarget = %d, want %d", h.DailyTarget, tt.want)
			}
			if h.ID == "" {
				t.Error("expected an id to be assigned")
			}
		})
	}
}

func TestHabitTargetReclampsStoredValue(t *testing.T) {
	h := Habit{ID: "h1", DailyTarget: 0}
	if got := h.Target(); got != 1 {
		t.Errorf("Target() = %d, want 1", got)
	}
}

func TestNewHabitSortsReminders(t *testing.T) {
	h := NewHabit(HabitSpec{
		Name: "Stretch",
		Reminders: []Reminder{
			{Hour: 18, Minute: 30},
			{Hour: 7, Minute: 45},
			{Hour: 7, Minute: 15},
		},
	})

	want := []string{"07:15", "07:45", "18:30"}
	for i, r := range h.Reminders {
		if r.String() != want[i] {
			t.Errorf("reminder %d = %s, want %s", i, r, want[i])
		}
	}
}

func TestParseReminder(t *testing.T) {
	r, err := ParseReminder(" 08:05 ")
	if err != nil {
		t.Fatalf("ParseReminder failed: %v", err)
	}
	if r.Hour != 8 || r.Minute != 5 {
		t.Errorf("got %+v, want 08:05", r)
	}

	if _, err := ParseReminder("8pm"); err == nil {
		t.Error("expected error for invalid reminder")
	}
}

func TestReminderValidate(t *testing.T) {
	if err := (Reminder{Hour: 24}).Validate(); err == nil {
		t.Error("expected hour 24 to be invalid")
	}
	if err := (Reminder{Hour: 23, Minute: 60}).Validate(); err == nil {
		t.Error("expected minute 60 to be invalid")
	}
	if err := (Reminder{Hour: 23, Minute: 59}).Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestActiveHabitsFiltersAndSorts(t *testing.T) {
	archivedAt := time.Now()
	habits := []Habit{
		{ID: "c", Order: 2},
		{ID: "a", Order: 0},
		{ID: "x", Order: 1, ArchivedAt: &archivedAt},
		{ID: "b", Order: 1},
	}

	active := ActiveHabits(habits)
	if len(active) != 3 {
		t.Fatalf("expected 3 active habits, got %d", len(active))
	}
	for i, id := range []string{"a", "b", "c"} {
		if active[i].ID != id {
			t.Errorf("active[%d] = %s, want %s", i, active[i].ID, id)
		}
	}
}

func TestSameName(t *testing.T) {
	if !SameName("  Drink water", "drink WATER ") {
		t.Error("expected names to match")
	}
	if SameName("Walk", "Walking") {
		t.Error("expected names not to match")
	}
}

func TestNewHabitEntryRequiresHabit(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for habit without id")
		}
	}()
	NewHabitEntry(Habit{}, time.Now(), "2026-01-01")
}

func TestNewHabitEntryDefaults(t *testing.T) {
	h := NewHabit(HabitSpec{Name: "Walk", DailyTarget: 5000})
	now := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

	e := NewHabitEntry(h, now, "2026-03-01")
	if e.HabitID != h.ID {
		t.Errorf("HabitID = %q, want %q", e.HabitID, h.ID)
	}
	if e.Status != StatusPending || e.ProgressValue != 0 {
		t.Errorf("expected pending/0, got %s/%d", e.Status, e.ProgressValue)
	}
	if !e.Date.Equal(now) {
		t.Errorf("Date = %v, want %v", e.Date, now)
	}
}

func TestEntryStatusDecodingIsStrict(t *testing.T) {
	var e HabitEntry
	err := json.Unmarshal([]byte(`{"id":"e1","status":"archived"}`), &e)
	if err == nil {
		t.Fatal("expected unknown status to fail decoding")
	}

	if err := json.Unmarshal([]byte(`{"id":"e1","status":"skipped"}`), &e); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Status != StatusSkipped {
		t.Errorf("Status = %s, want skipped", e.Status)
	}
}

func TestParseEntryStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    EntryStatus
		wantErr bool
	}{
		{in: "pending", want: StatusPending},
		{in: "done", want: StatusDone},
		{in: "skipped", want: StatusSkipped},
		{in: "", wantErr: true},
		{in: "DONE", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseEntryStatus(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseEntryStatus(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseEntryStatus(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestHabitProgressPercentString(t *testing.T) {
	p := HabitProgress{Completion: 0.756}
	if got := p.PercentString(); got != "75%" {
		t.Errorf("PercentString() = %q, want 75%%", got)
	}
}
