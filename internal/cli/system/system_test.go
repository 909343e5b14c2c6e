package system

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/tinyhabits/internal/cli"
	"github.com/julianstephens/tinyhabits/internal/clock"
	"github.com/julianstephens/tinyhabits/internal/models"
	"github.com/julianstephens/tinyhabits/internal/notifier"
	"github.com/julianstephens/tinyhabits/internal/storage"
	"github.com/julianstephens/tinyhabits/internal/storage/sqlite"
)

var testNow = time.Date(2026, 10, 18, 9, 2, 0, 0, time.UTC)

func setupTestContext(t *testing.T) (*cli.Context, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store := sqlite.NewStore(dbPath)
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})

	return &cli.Context{
		Store:     store,
		Clock:     clock.NewFixed(testNow),
		Reminders: notifier.NewReminderScheduler(),
		Timezone:  "UTC",
	}, dbPath
}

func initialized(t *testing.T) *cli.Context {
	t.Helper()
	ctx, _ := setupTestContext(t)
	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	return ctx
}

func TestInitCmd_CreatesDatabase(t *testing.T) {
	ctx, dbPath := setupTestContext(t)

	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("init command failed: %v", err)
	}
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Errorf("database file was not created at %s", dbPath)
	}

	// Running it again keeps the database usable
	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Errorf("second init failed (should be idempotent): %v", err)
	}
}

func TestInitCmd_ForceResetsData(t *testing.T) {
	ctx := initialized(t)
	if _, err := ctx.Habits().AddCustom("Stretch", "", "green", 5); err != nil {
		t.Fatalf("AddCustom failed: %v", err)
	}

	if err := (&InitCmd{Force: true}).Run(ctx); err != nil {
		t.Fatalf("init with force failed: %v", err)
	}

	habits, err := ctx.Store.FetchHabits(storage.HabitFilter{IncludeArchived: true})
	if err != nil {
		t.Fatalf("FetchHabits failed: %v", err)
	}
	if len(habits) != 0 {
		t.Errorf("expected empty database after force, got %d habits", len(habits))
	}
}

func TestInitCmd_ForceRefusesSameSource(t *testing.T) {
	ctx, dbPath := setupTestContext(t)
	if err := (&InitCmd{Force: true, Source: dbPath}).Run(ctx); err == nil {
		t.Error("expected error when source and destination are the same")
	}
}

func TestInitCmd_ImportsFromJSON(t *testing.T) {
	sourcePath := filepath.Join(t.TempDir(), "export.json")
	source := storage.NewJSONStore(sourcePath)
	if err := source.Init(); err != nil {
		t.Fatalf("source init failed: %v", err)
	}
	habit := models.NewHabit(models.HabitSpec{Name: "Walk", DailyTarget: 5000, CreatedAt: testNow})
	if err := source.AddHabit(habit); err != nil {
		t.Fatalf("AddHabit failed: %v", err)
	}
	if err := source.InsertEntry(models.NewHabitEntry(habit, testNow, "2026-10-18")); err != nil {
		t.Fatalf("InsertEntry failed: %v", err)
	}

	ctx, _ := setupTestContext(t)
	if err := (&InitCmd{Source: sourcePath}).Run(ctx); err != nil {
		t.Fatalf("init with source failed: %v", err)
	}

	got, err := ctx.Store.GetHabit(habit.ID)
	if err != nil {
		t.Fatalf("imported habit missing: %v", err)
	}
	if got.DailyTarget != 5000 {
		t.Errorf("imported target = %d, want 5000", got.DailyTarget)
	}
	entries, err := ctx.Store.FetchEntries(storage.EntryFilter{HabitID: habit.ID})
	if err != nil {
		t.Fatalf("FetchEntries failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected 1 imported entry, got %d", len(entries))
	}
}

func TestExportCmd(t *testing.T) {
	ctx := initialized(t)
	habit, err := ctx.Habits().AddCustom("Meditate", "", "blue", 20)
	if err != nil {
		t.Fatalf("AddCustom failed: %v", err)
	}
	tr, err := ctx.Tracker()
	if err != nil {
		t.Fatalf("Tracker failed: %v", err)
	}
	if _, err := tr.Increment(habit.ID); err != nil {
		t.Fatalf("Increment failed: %v", err)
	}

	out := filepath.Join(t.TempDir(), "out.json")
	if err := (&ExportCmd{Path: out}).Run(ctx); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	exported := storage.NewJSONStore(out)
	if err := exported.Load(); err != nil {
		t.Fatalf("failed to load export: %v", err)
	}
	entries, err := exported.FetchEntries(storage.EntryFilter{HabitID: habit.ID})
	if err != nil {
		t.Fatalf("FetchEntries failed: %v", err)
	}
	if len(entries) != 1 || entries[0].ProgressValue != 5 {
		t.Errorf("expected one entry with progress 5, got %+v", entries)
	}

	if err := (&ExportCmd{Path: out}).Run(ctx); err == nil {
		t.Error("expected error when export file exists without --overwrite")
	}
	if err := (&ExportCmd{Path: out, Overwrite: true}).Run(ctx); err != nil {
		t.Errorf("export with overwrite failed: %v", err)
	}
}

type recordingSender struct {
	messages []string
}

func (r *recordingSender) Notify(text string) error {
	r.messages = append(r.messages, text)
	return nil
}

func withSender(t *testing.T) *recordingSender {
	t.Helper()
	sender := &recordingSender{}
	orig := newSender
	newSender = func() notifier.Sender { return sender }
	t.Cleanup(func() { newSender = orig })
	return sender
}

func TestNotifyCmd_SendsDueReminders(t *testing.T) {
	ctx := initialized(t)
	sender := withSender(t)

	nine := models.Reminder{Hour: 9, Minute: 0}
	if _, err := ctx.Habits().AddCustom("Stretch", "", "green", 5, nine); err != nil {
		t.Fatalf("AddCustom failed: %v", err)
	}
	done, err := ctx.Habits().AddCustom("Read", "", "orange", 1, nine)
	if err != nil {
		t.Fatalf("AddCustom failed: %v", err)
	}
	if _, err := ctx.Habits().AddCustom("Walk", "", "green", 1, models.Reminder{Hour: 18, Minute: 0}); err != nil {
		t.Fatalf("AddCustom failed: %v", err)
	}

	tr, err := ctx.Tracker()
	if err != nil {
		t.Fatalf("Tracker failed: %v", err)
	}
	if _, err := tr.ToggleDone(done.ID); err != nil {
		t.Fatalf("ToggleDone failed: %v", err)
	}

	if err := (&NotifyCmd{}).Run(ctx); err != nil {
		t.Fatalf("notify failed: %v", err)
	}

	if len(sender.messages) != 1 || sender.messages[0] != "Time for Stretch (09:00)" {
		t.Errorf("unexpected notifications: %v", sender.messages)
	}
}

func TestNotifyCmd_DisabledSendsNothing(t *testing.T) {
	ctx := initialized(t)
	sender := withSender(t)

	settings := ctx.Settings()
	settings.NotificationsEnabled = false
	if err := ctx.Store.SaveSettings(settings); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}
	if _, err := ctx.Habits().AddCustom("Stretch", "", "green", 5, models.Reminder{Hour: 9, Minute: 0}); err != nil {
		t.Fatalf("AddCustom failed: %v", err)
	}

	if err := (&NotifyCmd{}).Run(ctx); err != nil {
		t.Fatalf("notify failed: %v", err)
	}
	if len(sender.messages) != 0 {
		t.Errorf("expected no notifications, got %v", sender.messages)
	}
}

func TestResetAllCmd(t *testing.T) {
	ctx := initialized(t)
	if _, err := ctx.Habits().AddCustom("Stretch", "", "green", 5, models.Reminder{Hour: 9, Minute: 0}); err != nil {
		t.Fatalf("AddCustom failed: %v", err)
	}

	if err := (&ResetAllCmd{Yes: true}).Run(ctx); err != nil {
		t.Fatalf("reset-all failed: %v", err)
	}

	habits, err := ctx.Store.FetchHabits(storage.HabitFilter{IncludeArchived: true})
	if err != nil {
		t.Fatalf("FetchHabits failed: %v", err)
	}
	if len(habits) != 0 {
		t.Errorf("expected no habits, got %d", len(habits))
	}
	if pending := ctx.Reminders.Pending(); len(pending) != 0 {
		t.Errorf("expected reminders cancelled, got %d", len(pending))
	}

	mgr, err := ctx.Backups()
	if err != nil {
		t.Fatalf("Backups failed: %v", err)
	}
	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) != 1 {
		t.Errorf("expected an automatic backup before reset, got %d", len(backups))
	}
}
