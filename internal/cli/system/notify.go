package system

import (
	"fmt"
	"time"

	"github.com/julianstephens/tinyhabits/internal/cli"
	"github.com/julianstephens/tinyhabits/internal/logger"
	"github.com/julianstephens/tinyhabits/internal/models"
	"github.com/julianstephens/tinyhabits/internal/notifier"
	"github.com/julianstephens/tinyhabits/internal/storage"
)

var newSender = func() notifier.Sender { return notifier.New() }

type NotifyCmd struct {
	DryRun bool `help:"Print notifications to stdout instead of sending them."`
}

// Run sends the reminders that fell due within the grace window, skipping
// habits already done today. It is meant to be run once a minute.
func (c *NotifyCmd) Run(ctx *cli.Context) error {
	settings := ctx.Settings()
	if !settings.NotificationsEnabled {
		if c.DryRun {
			fmt.Println("Notifications are disabled in settings.")
		}
		return nil
	}

	t, err := ctx.Tracker()
	if err != nil {
		return err
	}

	habits, err := ctx.Store.FetchHabits(storage.HabitFilter{})
	if err != nil {
		return err
	}
	byID := make(map[string]models.Habit, len(habits))
	for _, h := range habits {
		byID[h.ID] = h
	}

	reminders := ctx.Reminders
	if reminders == nil {
		reminders = notifier.NewReminderScheduler()
	}
	reminders.RescheduleAll(habits)

	now := t.Now().In(t.Calendar().Location())
	grace := time.Duration(settings.ReminderGraceMin) * time.Minute
	due := reminders.Due(now, grace)
	if len(due) == 0 {
		if c.DryRun {
			fmt.Println("No reminders due.")
		}
		return nil
	}

	sender := newSender()
	for _, r := range due {
		habit, ok := byID[r.HabitID]
		if !ok {
			continue
		}
		progress, err := t.Progress(habit)
		if err != nil {
			logger.Warn("Failed to read today's progress", "habit", habit.Name, "error", err)
		}
		if progress.Status == models.StatusDone {
			continue
		}

		msg := fmt.Sprintf("Time for %s (%s)", habit.Name, r.Reminder)
		if c.DryRun {
			fmt.Println("[DryRun] " + msg)
			continue
		}
		if err := sender.Notify(msg); err != nil {
			logger.Warn("Failed to send notification", "reminder", r.ID, "error", err)
			fmt.Printf("Failed to send notification: %v\n", err)
		}
	}
	return nil
}
