// Package clock provides the source of "now" and the calendar that defines
// day boundaries for the tracker. All day windows are computed from the
// calendar's start of day, never from raw 24h arithmetic, so DST changes
// yield 23h and 25h days.
package clock

import (
	"fmt"
	"sync"
	"time"

	"github.com/julianstephens/tinyhabits/internal/constants"
)

type Clock interface {
	Now() time.Time
}

// System reads the wall clock
type System struct{}

func (System) Now() time.Time { return time.Now() }

// Fixed is a settable clock for tests and replays
type Fixed struct {
	mu  sync.Mutex
	now time.Time
}

func NewFixed(now time.Time) *Fixed {
	return &Fixed{now: now}
}

func (f *Fixed) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *Fixed) Set(now time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = now
}

// Advance moves the clock forward by d
func (f *Fixed) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

// Calendar defines start-of-day and day arithmetic in one location
type Calendar struct {
	loc *time.Location
}

func NewCalendar(loc *time.Location) Calendar {
	if loc == nil {
		loc = time.Local
	}
	return Calendar{loc: loc}
}

// CalendarFor builds a Calendar from an IANA timezone name.
// "Local" and "" select the system timezone.
func CalendarFor(timezone string) (Calendar, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return Calendar{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return NewCalendar(loc), nil
}

func (c Calendar) Location() *time.Location {
	if c.loc == nil {
		return time.Local
	}
	return c.loc
}

// StartOfDay returns midnight of t's day in the calendar location
func (c Calendar) StartOfDay(t time.Time) time.Time {
	t = t.In(c.Location())
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, c.Location())
}

// AddDays moves t by n calendar days, keeping the wall clock time
func (c Calendar) AddDays(t time.Time, n int) time.Time {
	t = t.In(c.Location())
	return time.Date(t.Year(), t.Month(), t.Day()+n, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), c.Location())
}

// DayWindow returns [start, end) of the calendar day containing t
func (c Calendar) DayWindow(t time.Time) (time.Time, time.Time) {
	start := c.StartOfDay(t)
	return start, c.AddDays(start, 1)
}

// DayKey formats the calendar day of t as YYYY-MM-DD
func (c Calendar) DayKey(t time.Time) string {
	return t.In(c.Location()).Format(constants.DateFormat)
}

// ParseDay parses a YYYY-MM-DD key into midnight of that day
func (c Calendar) ParseDay(day string) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, day)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, c.Location()), nil
}

func (c Calendar) SameDay(a, b time.Time) bool {
	return c.DayKey(a) == c.DayKey(b)
}

// Window returns the start of each of the n days ending at t, oldest first
func (c Calendar) Window(t time.Time, n int) []time.Time {
	today := c.StartOfDay(t)
	days := make([]time.Time, n)
	for i := 0; i < n; i++ {
		days[i] = c.AddDays(today, i-(n-1))
	}
	return days
}

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	_, err := LoadLocation(timezone)
	return err == nil
}
