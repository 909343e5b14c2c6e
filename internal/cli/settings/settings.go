package settings

import (
	"fmt"

	"github.com/julianstephens/tinyhabits/internal/cli"
	"github.com/julianstephens/tinyhabits/internal/clock"
	"github.com/julianstephens/tinyhabits/internal/constants"
	"github.com/julianstephens/tinyhabits/internal/models"
)

// keys in display order
var keys = []string{
	constants.SettingTimezone,
	constants.SettingWeeklyAveragePolicy,
	constants.SettingMaxActiveHabits,
	constants.SettingShowDailyQuotes,
	constants.SettingNotificationsEnabled,
	constants.SettingReminderGraceMin,
}

type SettingsCmd struct {
	Show SettingsShowCmd `cmd:"" default:"1" help:"List current settings."`
	Set  SettingsSetCmd  `cmd:"" help:"Change a setting."`
}

type SettingsShowCmd struct{}

func (c *SettingsShowCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	models.ApplyDefaultSettings(&settings)

	values := models.SettingsToMap(settings)
	fmt.Println("Current Settings:")
	for _, key := range keys {
		fmt.Printf("  %-22s %s\n", key+":", values[key])
	}
	return nil
}

type SettingsSetCmd struct {
	Key   string `arg:"" help:"Setting name." enum:"timezone,weekly_average_policy,max_active_habits,show_daily_quotes,notifications_enabled,reminder_grace_min"`
	Value string `arg:"" help:"New value."`
}

func (c *SettingsSetCmd) Validate() error {
	if err := models.ValidateSetting(c.Key, c.Value); err != nil {
		return err
	}
	if c.Key == constants.SettingTimezone && !clock.ValidateTimezone(c.Value) {
		return fmt.Errorf("unknown timezone %q", c.Value)
	}
	return nil
}

func (c *SettingsSetCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	models.ApplyDefaultSettings(&settings)

	values := models.SettingsToMap(settings)
	values[c.Key] = c.Value
	updated, err := models.MapToSettings(values)
	if err != nil {
		return err
	}

	if err := ctx.Store.SaveSettings(updated); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	fmt.Printf("Set %s = %s\n", c.Key, c.Value)
	return nil
}
