package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	apperrors "github.com/julianstephens/tinyhabits/internal/errors"
	"github.com/julianstephens/tinyhabits/internal/habits"
	"github.com/julianstephens/tinyhabits/internal/logger"
	"github.com/julianstephens/tinyhabits/internal/models"
	"github.com/julianstephens/tinyhabits/internal/storage"
	"github.com/julianstephens/tinyhabits/internal/tracker"
)

type SessionState int

const (
	StateToday SessionState = iota
	StateStats
	StateAddHabit
)

type HabitFormModel struct {
	Name   string
	Target string
}

type row struct {
	habit    models.Habit
	progress models.HabitProgress
}

type Model struct {
	store     storage.Provider
	tracker   *tracker.Tracker
	habits    *habits.Manager
	state     SessionState
	keys      KeyMap
	help      help.Model
	bar       progress.Model
	form      *huh.Form
	habitForm *HabitFormModel
	rows      []row
	cursor    int
	summary   models.WeeklySummary
	warning   string // non-blocking problem, e.g. progress not saved
	errMsg    string
	quitting  bool
	width     int
	height    int
}

func NewModel(store storage.Provider, t *tracker.Tracker, mgr *habits.Manager) Model {
	m := Model{
		store:   store,
		tracker: t,
		habits:  mgr,
		state:   StateToday,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(30), progress.WithoutPercentage()),
	}
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) ShortHelp() []key.Binding {
	if m.state == StateStats {
		return []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	}
	return m.keys.ShortHelp()
}

func (m Model) FullHelp() [][]key.Binding {
	return m.keys.FullHelp()
}

// refresh reloads active habits and opens today's entry for each
func (m *Model) refresh() {
	active, err := m.store.FetchHabits(storage.HabitFilter{})
	if err != nil {
		logger.Error("Failed to load habits", "error", err)
		m.errMsg = apperrors.Format(err)
		return
	}

	rows := make([]row, 0, len(active))
	for _, h := range active {
		entry, err := m.tracker.Today(h)
		m.report(err)
		rows = append(rows, row{habit: h, progress: tracker.ProgressFor(h, &entry)})
	}
	m.rows = rows
	if m.cursor >= len(m.rows) {
		m.cursor = max(0, len(m.rows)-1)
	}

	if m.state == StateStats {
		m.loadSummary()
	}
}

func (m *Model) loadSummary() {
	summary, err := m.tracker.Summary(m.tracker.Now())
	if err != nil {
		m.report(err)
		return
	}
	m.summary = summary
}

// report routes err to the warning banner or the error line
func (m *Model) report(err error) {
	switch {
	case err == nil:
	case apperrors.IsWarning(err):
		logger.Warn("Habit progress not saved", "error", err)
		m.warning = apperrors.Format(err)
	default:
		logger.Error("Habit operation failed", "error", err)
		m.errMsg = apperrors.Format(err)
	}
}

// apply runs one tracker operation on the selected habit
func (m *Model) apply(op func(t *tracker.Tracker, habitID string) (models.HabitEntry, error)) {
	if len(m.rows) == 0 {
		return
	}
	m.warning, m.errMsg = "", ""

	r := &m.rows[m.cursor]
	entry, err := op(m.tracker, r.habit.ID)
	if err != nil && !apperrors.IsWarning(err) {
		m.report(err)
		return
	}
	m.report(err)
	r.progress = tracker.ProgressFor(r.habit, &entry)
}
