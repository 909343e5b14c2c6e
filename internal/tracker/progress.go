package tracker

import "github.com/julianstephens/tinyhabits/internal/models"

// ProgressFor derives the progress view of a habit. A nil entry reads as
// pending with no progress.
func ProgressFor(habit models.Habit, entry *models.HabitEntry) models.HabitProgress {
	target := habit.Target()
	if entry == nil {
		return models.HabitProgress{Status: models.StatusPending, Current: 0, Target: target}
	}

	p := models.HabitProgress{
		Status:  entry.Status,
		Current: entry.ProgressValue,
		Target:  target,
	}
	switch entry.Status {
	case models.StatusDone:
		p.Completion = 1
	case models.StatusSkipped:
		p.Completion = 0
	default:
		p.Completion = min(float64(entry.ProgressValue)/float64(target), 1)
		if p.Completion < 0 {
			p.Completion = 0
		}
	}
	return p
}
