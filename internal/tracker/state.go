package tracker

import (
	"github.com/julianstephens/tinyhabits/internal/constants"
	"github.com/julianstephens/tinyhabits/internal/models"
)

// Transition maps an entry to its next state. Transitions never modify the
// input and always leave ProgressValue inside [0, target].
type Transition func(habit models.Habit, entry models.HabitEntry) models.HabitEntry

// Step is how far one increment advances: a quarter of the target, at least 1
func Step(habit models.Habit) int {
	step := habit.Target() / constants.IncrementDivisor
	if step < 1 {
		return 1
	}
	return step
}

// Increment advances progress by one step, completing the habit at target
func Increment(habit models.Habit, entry models.HabitEntry) models.HabitEntry {
	target := habit.Target()
	next := min(clamp(entry.ProgressValue, target)+Step(habit), target)

	entry.ProgressValue = next
	if next >= target {
		entry.Status = models.StatusDone
	} else {
		entry.Status = models.StatusPending
	}
	return entry
}

// ToggleDone flips between done and pending. Undoing clears progress.
func ToggleDone(habit models.Habit, entry models.HabitEntry) models.HabitEntry {
	target := habit.Target()
	if entry.Status == models.StatusDone {
		entry.Status = models.StatusPending
		entry.ProgressValue = 0
		return entry
	}
	entry.Status = models.StatusDone
	entry.ProgressValue = max(clamp(entry.ProgressValue, target), target)
	return entry
}

func Reset(_ models.Habit, entry models.HabitEntry) models.HabitEntry {
	entry.Status = models.StatusPending
	entry.ProgressValue = 0
	return entry
}

// SetProgress sets progress to value clamped into [0, target]. Reaching
// the target marks the entry done; anything below it is pending.
func SetProgress(habit models.Habit, entry models.HabitEntry, value int) models.HabitEntry {
	target := habit.Target()
	entry.ProgressValue = clamp(value, target)
	if entry.ProgressValue >= target {
		entry.Status = models.StatusDone
	} else {
		entry.Status = models.StatusPending
	}
	return entry
}

func clamp(value, target int) int {
	return max(0, min(value, target))
}
