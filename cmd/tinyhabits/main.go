package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/julianstephens/tinyhabits/internal/cli"
	"github.com/julianstephens/tinyhabits/internal/cli/backups"
	"github.com/julianstephens/tinyhabits/internal/cli/habit"
	"github.com/julianstephens/tinyhabits/internal/cli/settings"
	"github.com/julianstephens/tinyhabits/internal/cli/system"
	"github.com/julianstephens/tinyhabits/internal/cli/tracking"
	"github.com/julianstephens/tinyhabits/internal/clock"
	"github.com/julianstephens/tinyhabits/internal/constants"
	apperrors "github.com/julianstephens/tinyhabits/internal/errors"
	"github.com/julianstephens/tinyhabits/internal/logger"
	"github.com/julianstephens/tinyhabits/internal/notifier"
	"github.com/julianstephens/tinyhabits/internal/storage"
	"github.com/julianstephens/tinyhabits/internal/storage/sqlite"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `name:"db" help:"Database path. A .json path uses the plain JSON store." type:"path" default:"${default_config}" env:"TINYHABITS_DB"`
	Debug   bool   `help:"Log debug output to stderr." env:"TINYHABITS_DEBUG"`
	TZ      string `name:"tz" help:"Timezone for day boundaries, overriding the stored setting." env:"TINYHABITS_TZ"`

	Init     system.InitCmd       `cmd:"" help:"Initialize tinyhabits storage."`
	Migrate  system.MigrateCmd    `cmd:"" help:"Run database migrations."`
	Tui      system.TuiCmd        `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Today    tracking.TodayCmd    `cmd:"" help:"Show today's progress for every habit."`
	Inc      tracking.IncCmd      `cmd:"" help:"Log one step of progress on a habit."`
	Done     tracking.DoneCmd     `cmd:"" help:"Toggle a habit done for today."`
	Reset    tracking.ResetCmd    `cmd:"" help:"Reset today's progress on a habit."`
	Set      tracking.SetCmd      `cmd:"" help:"Set today's progress on a habit."`
	Stats    tracking.StatsCmd    `cmd:"" help:"Show weekly stats and streaks."`
	Habit    habit.HabitCmd       `cmd:"" help:"Manage habits."`
	Settings settings.SettingsCmd `cmd:"" help:"Manage application settings."`
	Export   system.ExportCmd     `cmd:"" help:"Export habits and entries to a JSON file."`
	ResetAll system.ResetAllCmd   `cmd:"" name:"reset-all" help:"Delete all habits and entries."`
	Backup   struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
	Notify system.NotifyCmd `cmd:"" hidden:"" help:"Send due reminders (used internally)."`
}

func main() {
	// A missing .env file is fine
	_ = godotenv.Load()

	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Tiny daily habits with streaks and weekly stats"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":        constants.Version,
			"default_config": constants.DefaultConfigPath,
		},
	)

	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: filepath.Dir(CLI.Config)}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	if CLI.TZ != "" && !clock.ValidateTimezone(CLI.TZ) {
		apperrors.Fatalf("unknown timezone %q", CLI.TZ)
	}

	var store storage.Provider
	if strings.EqualFold(filepath.Ext(CLI.Config), ".json") {
		store = storage.NewJSONStore(CLI.Config)
	} else {
		store = sqlite.NewStore(CLI.Config)
	}
	defer store.Close()

	appCtx := &cli.Context{
		Store:     store,
		Clock:     clock.System{},
		Reminders: notifier.NewReminderScheduler(),
		Timezone:  CLI.TZ,
	}

	// Init handles its own storage setup
	if !strings.HasPrefix(ctx.Command(), "init") {
		if err := store.Load(); err != nil {
			store.Close()
			apperrors.Fatal(err)
		}
	}

	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		apperrors.Fatal(err)
	}
}
