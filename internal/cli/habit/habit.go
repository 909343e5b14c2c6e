package habit

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/julianstephens/tinyhabits/internal/cli"
	"github.com/julianstephens/tinyhabits/internal/models"
	"github.com/julianstephens/tinyhabits/internal/storage"
)

type HabitCmd struct {
	Add      HabitAddCmd      `cmd:"" help:"Add a custom habit."`
	Curated  HabitCuratedCmd  `cmd:"" help:"Add a suggested habit, or list them."`
	List     HabitListCmd     `cmd:"" help:"List habits."`
	Show     HabitShowCmd     `cmd:"" help:"Show streaks and recent history of a habit."`
	Archive  HabitArchiveCmd  `cmd:"" help:"Archive a habit and clear its history."`
	Activate HabitActivateCmd `cmd:"" help:"Bring an archived habit back."`
	Delete   HabitDeleteCmd   `cmd:"" help:"Delete a habit permanently."`
	Target   HabitTargetCmd   `cmd:"" help:"Change a habit's daily target."`
	Remind   HabitRemindCmd   `cmd:"" help:"Set a habit's reminder times."`
	Move     HabitMoveCmd     `cmd:"" help:"Move a habit to a position in the list."`
}

type HabitAddCmd struct {
	Name      string   `arg:"" help:"Habit name."`
	Target    int      `short:"t" help:"Daily target." default:"1"`
	Icon      string   `help:"Icon name."`
	Accent    string   `help:"Accent color key." default:"blue"`
	Reminders []string `short:"r" help:"Reminder times (HH:MM), comma-separated." sep:","`
}

func (c *HabitAddCmd) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("habit name cannot be empty")
	}
	return nil
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	reminders, err := parseReminders(c.Reminders)
	if err != nil {
		return err
	}

	habit, err := ctx.Habits().AddCustom(c.Name, c.Icon, c.Accent, c.Target, reminders...)
	if err != nil {
		return err
	}

	fmt.Printf("Added habit: %s (target %d, ID: %s)\n", habit.Name, habit.DailyTarget, habit.ID)
	return nil
}

type HabitCuratedCmd struct {
	Name string `arg:"" optional:"" help:"Name of the suggested habit. Omit to list suggestions."`
}

func (c *HabitCuratedCmd) Run(ctx *cli.Context) error {
	if c.Name == "" {
		fmt.Println("Suggested habits:")
		for _, h := range models.CuratedHabits {
			fmt.Printf("  %-18s target %s\n", h.Name, humanize.Comma(int64(h.DefaultTarget)))
		}
		return nil
	}

	curated, ok := models.FindCurated(c.Name)
	if !ok {
		return fmt.Errorf("no suggested habit named %q", c.Name)
	}

	habit, err := ctx.Habits().AddCurated(curated)
	if err != nil {
		return err
	}

	fmt.Printf("Added habit: %s (target %d, ID: %s)\n", habit.Name, habit.DailyTarget, habit.ID)
	return nil
}

type HabitListCmd struct {
	Archived bool `help:"Include archived habits."`
}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	habits, err := ctx.Store.FetchHabits(storage.HabitFilter{IncludeArchived: c.Archived})
	if err != nil {
		return err
	}

	if len(habits) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	now := ctx.Clock.Now()
	for _, h := range habits {
		status := ""
		if h.IsArchived() {
			status = fmt.Sprintf(" [ARCHIVED %s]", humanize.RelTime(*h.ArchivedAt, now, "ago", "from now"))
		}
		fmt.Printf("%d. %s%s\n", h.Order+1, h.Name, status)
		fmt.Printf("   target %s, added %s", humanize.Comma(int64(h.Target())), humanize.RelTime(h.CreatedAt, now, "ago", "from now"))
		if len(h.Reminders) > 0 {
			fmt.Printf(", reminders %s", formatReminders(h.Reminders))
		}
		fmt.Printf("\n   ID: %s\n", h.ID)
	}
	return nil
}

type HabitShowCmd struct {
	Habit string `arg:"" help:"Habit name or ID."`
}

func (c *HabitShowCmd) Run(ctx *cli.Context) error {
	habit, err := ctx.FindHabit(c.Habit)
	if err != nil {
		return err
	}

	t, err := ctx.Tracker()
	if err != nil {
		return err
	}

	detail, err := t.Detail(habit.ID)
	if err != nil {
		return err
	}
	progress, err := t.Progress(habit)
	if err != nil {
		return err
	}

	fmt.Printf("%s\n\n", habit.Name)
	fmt.Printf("  Today:          %s %d/%d (%s)\n", cli.ProgressBar(progress.Completion, 20), progress.Current, progress.Target, progress.PercentString())
	fmt.Printf("  Current streak: %d days\n", detail.CurrentStreak)
	fmt.Printf("  Best streak:    %d days\n", detail.BestStreak)
	fmt.Printf("  Last 7 days:    %d%%\n", detail.Last7Percent)
	fmt.Printf("  Total done:     %d\n", detail.TotalDone)
	if detail.TotalSkipped > 0 {
		fmt.Printf("  Total skipped:  %d\n", detail.TotalSkipped)
	}

	fmt.Println()
	for _, day := range detail.Recent {
		mark := "[ ]"
		switch {
		case day.Exists && day.Status == models.StatusDone:
			mark = "[x]"
		case day.Exists && day.Status == models.StatusSkipped:
			mark = "[-]"
		}
		fmt.Printf("  %s %s\n", day.Date.Format("Mon Jan 2"), mark)
	}
	return nil
}

type HabitArchiveCmd struct {
	Habit string `arg:"" help:"Habit name or ID."`
}

func (c *HabitArchiveCmd) Run(ctx *cli.Context) error {
	habit, err := ctx.FindHabit(c.Habit)
	if err != nil {
		return err
	}

	habit, err = ctx.Habits().Archive(habit.ID)
	if err != nil {
		return err
	}

	fmt.Printf("Archived habit: %s\n", habit.Name)
	return nil
}

type HabitActivateCmd struct {
	Habit string `arg:"" help:"Habit name or ID."`
}

func (c *HabitActivateCmd) Run(ctx *cli.Context) error {
	habit, err := ctx.FindHabit(c.Habit)
	if err != nil {
		return err
	}

	habit, err = ctx.Habits().Activate(habit.ID)
	if err != nil {
		return err
	}

	fmt.Printf("Activated habit: %s\n", habit.Name)
	return nil
}

type HabitDeleteCmd struct {
	Habit string `arg:"" help:"Habit name or ID."`
}

func (c *HabitDeleteCmd) Run(ctx *cli.Context) error {
	habit, err := ctx.FindHabit(c.Habit)
	if err != nil {
		return err
	}

	if err := ctx.Habits().Delete(habit.ID); err != nil {
		return err
	}

	fmt.Printf("Deleted habit: %s (ID: %s)\n", habit.Name, habit.ID)
	return nil
}

type HabitTargetCmd struct {
	Habit  string `arg:"" help:"Habit name or ID."`
	Target int    `arg:"" help:"New daily target (at least 1)."`
}

func (c *HabitTargetCmd) Run(ctx *cli.Context) error {
	habit, err := ctx.FindHabit(c.Habit)
	if err != nil {
		return err
	}

	habit, err = ctx.Habits().SetTarget(habit.ID, c.Target)
	if err != nil {
		return err
	}

	fmt.Printf("Target for %s is now %s\n", habit.Name, humanize.Comma(int64(habit.DailyTarget)))
	return nil
}

type HabitRemindCmd struct {
	Habit string   `arg:"" help:"Habit name or ID."`
	Times []string `arg:"" optional:"" help:"Reminder times (HH:MM). Omit to clear all reminders."`
}

func (c *HabitRemindCmd) Run(ctx *cli.Context) error {
	reminders, err := parseReminders(c.Times)
	if err != nil {
		return err
	}

	habit, err := ctx.FindHabit(c.Habit)
	if err != nil {
		return err
	}

	habit, err = ctx.Habits().SetReminders(habit.ID, reminders)
	if err != nil {
		return err
	}

	if len(habit.Reminders) == 0 {
		fmt.Printf("Cleared reminders for %s\n", habit.Name)
		return nil
	}
	fmt.Printf("Reminders for %s: %s\n", habit.Name, formatReminders(habit.Reminders))
	return nil
}

type HabitMoveCmd struct {
	Habit    string `arg:"" help:"Habit name or ID."`
	Position int    `arg:"" help:"New position, starting at 1."`
}

func (c *HabitMoveCmd) Run(ctx *cli.Context) error {
	habit, err := ctx.FindHabit(c.Habit)
	if err != nil {
		return err
	}

	ordered, err := ctx.Habits().Move(habit.ID, c.Position-1)
	if err != nil {
		return err
	}

	for i, h := range ordered {
		fmt.Printf("%d. %s\n", i+1, h.Name)
	}
	return nil
}

func parseReminders(values []string) ([]models.Reminder, error) {
	var reminders []models.Reminder
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			continue
		}
		r, err := models.ParseReminder(v)
		if err != nil {
			return nil, err
		}
		reminders = append(reminders, r)
	}
	return reminders, nil
}

func formatReminders(reminders []models.Reminder) string {
	parts := make([]string, len(reminders))
	for i, r := range reminders {
		parts[i] = r.String()
	}
	return strings.Join(parts, ", ")
}
