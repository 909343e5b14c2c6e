package tracker

import (
	"errors"
	"testing"
	"time"

	"github.com/julianstephens/tinyhabits/internal/clock"
	"github.com/julianstephens/tinyhabits/internal/models"
	"github.com/julianstephens/tinyhabits/internal/storage"
)

var (
	utc      = clock.NewCalendar(time.UTC)
	testNow  = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	errStore = errors.New("disk unavailable")
)

// failingStore wraps a memory store and fails selected writes or reads
type failingStore struct {
	*storage.JSONStore
	failFetch  bool
	failInsert bool
	failUpdate bool

	// fetchFailures fails that many FetchEntries calls, then recovers
	fetchFailures int
	// storeThenFail keeps inserted entries but reports an error
	storeThenFail bool
}

func (f *failingStore) FetchEntries(filter storage.EntryFilter) ([]models.HabitEntry, error) {
	if f.failFetch {
		return nil, errStore
	}
	if f.fetchFailures > 0 {
		f.fetchFailures--
		return nil, errStore
	}
	return f.JSONStore.FetchEntries(filter)
}

func (f *failingStore) InsertEntry(e models.HabitEntry) error {
	if f.failInsert {
		return errStore
	}
	if f.storeThenFail {
		if err := f.JSONStore.InsertEntry(e); err != nil {
			return err
		}
		return errStore
	}
	return f.JSONStore.InsertEntry(e)
}

func (f *failingStore) UpdateEntry(e models.HabitEntry) error {
	if f.failUpdate {
		return errStore
	}
	return f.JSONStore.UpdateEntry(e)
}

func newTestTracker(t *testing.T) (*Tracker, *storage.JSONStore, *clock.Fixed) {
	t.Helper()
	store := storage.NewMemoryStore()
	clk := clock.NewFixed(testNow)
	return New(store, clk, utc), store, clk
}

func addHabit(t *testing.T, store storage.Provider, name string, target int) models.Habit {
	t.Helper()
	habits, _ := store.FetchHabits(storage.HabitFilter{})
	habit := models.NewHabit(models.HabitSpec{
		Name:        name,
		DailyTarget: target,
		Order:       len(habits),
		CreatedAt:   testNow.AddDate(0, 0, -30),
	})
	if err := store.AddHabit(habit); err != nil {
		t.Fatalf("AddHabit failed: %v", err)
	}
	return habit
}

// entryOn builds an entry for habit offset days from testNow
func entryOn(habit models.Habit, offset int, status models.EntryStatus) models.HabitEntry {
	date := utc.AddDays(testNow, offset)
	e := models.NewHabitEntry(habit, date, utc.DayKey(date))
	e.Status = status
	if status == models.StatusDone {
		e.ProgressValue = habit.Target()
	}
	return e
}

func fixedAt(now time.Time) *clock.Fixed {
	return clock.NewFixed(now)
}

func newCalendar(loc *time.Location) clock.Calendar {
	return clock.NewCalendar(loc)
}
