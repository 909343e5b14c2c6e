package system

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/tinyhabits/internal/cli"
	"github.com/julianstephens/tinyhabits/internal/constants"
	"github.com/julianstephens/tinyhabits/internal/storage"
	"github.com/julianstephens/tinyhabits/internal/storage/sqlite"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting existing database before initialization."`
	Source string `help:"Database (.db) or JSON export (.json) to import habits and entries from." type:"path"`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		dbPath := ctx.Store.GetConfigPath()
		if c.Source != "" && samePath(dbPath, c.Source) {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
		}
		if _, err := os.Stat(dbPath); err == nil {
			ctx.PerformAutomaticBackup()
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			fmt.Printf("Deleted existing database at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized %s storage at: %s\n", constants.AppName, ctx.Store.GetConfigPath())

	if c.Source != "" {
		fmt.Printf("Importing data from: %s\n", c.Source)
		source := openSource(c.Source)
		if err := source.Load(); err != nil {
			return fmt.Errorf("failed to load source: %w", err)
		}
		defer source.Close()

		counts, err := copyData(source, ctx.Store)
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}
		fmt.Printf("Imported %d habits and %d entries.\n", counts.habits, counts.entries)
	}

	return nil
}

// openSource picks the store implementation from the file extension
func openSource(path string) storage.Provider {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return storage.NewJSONStore(path)
	}
	return sqlite.NewStore(path)
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return a == b
	}
	return absA == absB
}

type copyCounts struct {
	habits  int
	entries int
}

// copyData copies settings, every habit (archived included) and every
// entry from src into dst. Habits go first so entries always find their
// owner.
func copyData(src, dst storage.Provider) (copyCounts, error) {
	var counts copyCounts

	settings, err := src.GetSettings()
	if err != nil {
		return counts, fmt.Errorf("failed to get settings from source: %w", err)
	}
	if err := dst.SaveSettings(settings); err != nil {
		return counts, fmt.Errorf("failed to save settings to destination: %w", err)
	}

	habits, err := src.FetchHabits(storage.HabitFilter{IncludeArchived: true})
	if err != nil {
		return counts, fmt.Errorf("failed to get habits from source: %w", err)
	}
	for _, habit := range habits {
		if err := dst.AddHabit(habit); err != nil {
			return counts, fmt.Errorf("failed to add habit %s: %w", habit.ID, err)
		}
		counts.habits++
	}

	entries, err := src.FetchEntries(storage.EntryFilter{Sort: storage.DateAsc})
	if err != nil {
		return counts, fmt.Errorf("failed to get entries from source: %w", err)
	}
	for _, entry := range entries {
		if err := dst.InsertEntry(entry); err != nil {
			return counts, fmt.Errorf("failed to add entry %s: %w", entry.ID, err)
		}
		counts.entries++
	}

	return counts, nil
}
