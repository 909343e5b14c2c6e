package models

import (
	"fmt"
	"time"
)

// HabitProgress is the derived view of a habit's entry for one day
type HabitProgress struct {
	Status     EntryStatus `json:"status"`
	Current    int         `json:"current"`
	Target     int         `json:"target"`
	Completion float64     `json:"completion"` // 0..1
}

// PercentString renders the completion as a truncated whole percentage
func (p HabitProgress) PercentString() string {
	return fmt.Sprintf("%d%%", int(p.Completion*100))
}

// DayStat aggregates done/total across active habits for one calendar day
type DayStat struct {
	Date    time.Time `json:"date"`
	Done    int       `json:"done"`
	Total   int       `json:"total"`
	Percent float64   `json:"percent"`
}

// BestDay is the strongest day of the stats window
type BestDay struct {
	Label   string    `json:"label"`
	Detail  string    `json:"detail"`
	Date    time.Time `json:"date,omitempty"`
	Percent float64   `json:"percent"`
	Found   bool      `json:"found"`
}

// DayStatus is one habit's status on one day of the recent history
type DayStatus struct {
	Date   time.Time   `json:"date"`
	Status EntryStatus `json:"status"`
	Exists bool        `json:"exists"`
}

// HabitDetail collects the per-habit streak figures
type HabitDetail struct {
	Habit         Habit       `json:"habit"`
	CurrentStreak int         `json:"current_streak"`
	BestStreak    int         `json:"best_streak"`
	Last7Percent  int         `json:"last7_percent"`
	TotalDone     int         `json:"total_done"`
	TotalSkipped  int         `json:"total_skipped"`
	Recent        []DayStatus `json:"recent"`
}

// WeeklySummary is everything the stats screen shows
type WeeklySummary struct {
	Days             []DayStat `json:"days"`
	CurrentStreak    int       `json:"current_streak"`
	WeeklyCompletion float64   `json:"weekly_completion"`
	WeeklyPercent    string    `json:"weekly_percent"`
	BestDay          BestDay   `json:"best_day"`
	HeroMessage      string    `json:"hero_message"`
	Quote            string    `json:"quote,omitempty"`
	DoneToday        int       `json:"done_today"`
	ActiveHabits     int       `json:"active_habits"`
}
