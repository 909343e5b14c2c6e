package tracking

import (
	"fmt"

	"github.com/julianstephens/tinyhabits/internal/cli"
	"github.com/julianstephens/tinyhabits/internal/models"
	"github.com/julianstephens/tinyhabits/internal/storage"
	"github.com/julianstephens/tinyhabits/internal/tracker"
)

type TodayCmd struct{}

func (c *TodayCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}

	habits, err := ctx.Store.FetchHabits(storage.HabitFilter{})
	if err != nil {
		return err
	}

	if len(habits) == 0 {
		fmt.Println("No habits yet. Add one with `tinyhabits habit add` or `tinyhabits habit curated`.")
		return nil
	}

	now := t.Now()
	fmt.Printf("Habits for %s:\n\n", t.Calendar().DayKey(now))

	done := 0
	for _, h := range habits {
		// Opening today's entry is what creates it; a read failure still
		// shows the habit as pending.
		entry, err := t.Today(h)
		if err := cli.ReportWarning(err); err != nil {
			return err
		}
		p := tracker.ProgressFor(h, &entry)
		if p.Status == models.StatusDone {
			done++
		}
		fmt.Printf("%s %-20s %d/%d %s\n", cli.ProgressBar(p.Completion, 20), h.Name, p.Current, p.Target, p.PercentString())
	}

	fmt.Printf("\n%s\n", tracker.HeroMessage(done, len(habits)))
	return nil
}

type IncCmd struct {
	Habit string `arg:"" help:"Habit name or ID."`
}

func (c *IncCmd) Run(ctx *cli.Context) error {
	return mutate(ctx, c.Habit, (*tracker.Tracker).Increment)
}

type DoneCmd struct {
	Habit string `arg:"" help:"Habit name or ID."`
}

func (c *DoneCmd) Run(ctx *cli.Context) error {
	return mutate(ctx, c.Habit, (*tracker.Tracker).ToggleDone)
}

type ResetCmd struct {
	Habit string `arg:"" help:"Habit name or ID."`
}

func (c *ResetCmd) Run(ctx *cli.Context) error {
	return mutate(ctx, c.Habit, (*tracker.Tracker).ResetProgress)
}

type SetCmd struct {
	Habit string `arg:"" help:"Habit name or ID."`
	Value int    `arg:"" help:"Progress value, clamped to the daily target."`
}

func (c *SetCmd) Run(ctx *cli.Context) error {
	return mutate(ctx, c.Habit, func(t *tracker.Tracker, id string) (models.HabitEntry, error) {
		return t.SetProgress(id, c.Value)
	})
}

func mutate(ctx *cli.Context, ref string, op func(*tracker.Tracker, string) (models.HabitEntry, error)) error {
	habit, err := ctx.FindHabit(ref)
	if err != nil {
		return err
	}

	t, err := ctx.Tracker()
	if err != nil {
		return err
	}

	entry, err := op(t, habit.ID)
	if err := cli.ReportWarning(err); err != nil {
		return err
	}

	p := tracker.ProgressFor(habit, &entry)
	fmt.Printf("%s %s %d/%d (%s)\n", habit.Name, cli.ProgressBar(p.Completion, 20), p.Current, p.Target, p.PercentString())
	return nil
}

type StatsCmd struct{}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}

	summary, err := t.Summary(t.Now())
	if err != nil {
		return err
	}

	fmt.Println(summary.HeroMessage)
	fmt.Println()
	fmt.Printf("  Today:          %d/%d done\n", summary.DoneToday, summary.ActiveHabits)
	fmt.Printf("  Current streak: %d days\n", summary.CurrentStreak)
	fmt.Printf("  This week:      %s\n", summary.WeeklyPercent)
	fmt.Printf("  Best day:       %s (%s)\n", summary.BestDay.Label, summary.BestDay.Detail)

	fmt.Println()
	for _, day := range summary.Days {
		fmt.Printf("  %s %s %d/%d\n", day.Date.Format("Mon"), cli.ProgressBar(day.Percent, 14), day.Done, day.Total)
	}

	if summary.Quote != "" {
		fmt.Printf("\n\"%s\"\n", summary.Quote)
	}
	return nil
}
