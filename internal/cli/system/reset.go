package system

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/tinyhabits/internal/cli"
)

type ResetAllCmd struct {
	Yes bool `short:"y" help:"Skip the confirmation prompt."`
}

func (c *ResetAllCmd) Run(ctx *cli.Context) error {
	if !c.Yes {
		confirmed := false
		err := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title("Delete all habits and their history?").
					Description("Settings are kept. This cannot be undone.").
					Affirmative("Delete everything").
					Negative("Cancel").
					Value(&confirmed),
			),
		).WithTheme(huh.ThemeDracula()).Run()
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Reset cancelled.")
			return nil
		}
	}

	ctx.PerformAutomaticBackup()
	if err := ctx.Habits().ResetAll(); err != nil {
		return err
	}

	fmt.Println("All habits and entries deleted.")
	return nil
}
