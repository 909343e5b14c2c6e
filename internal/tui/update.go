package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	apperrors "github.com/julianstephens/tinyhabits/internal/errors"
	"github.com/julianstephens/tinyhabits/internal/tracker"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == StateAddHabit {
		return m.updateAddHabit(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Tab), key.Matches(msg, m.keys.Stats):
			m.toggleStats()
		}

		if m.state != StateToday {
			return m, nil
		}

		switch {
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Increment):
			m.apply((*tracker.Tracker).Increment)
		case key.Matches(msg, m.keys.Done):
			m.apply((*tracker.Tracker).ToggleDone)
		case key.Matches(msg, m.keys.Reset):
			m.apply((*tracker.Tracker).ResetProgress)
		case key.Matches(msg, m.keys.Add):
			m.habitForm = &HabitFormModel{Target: "1"}
			m.form = NewHabitForm(m.habitForm)
			m.state = StateAddHabit
			return m, m.form.Init()
		}
	}

	return m, nil
}

func (m *Model) toggleStats() {
	if m.state == StateStats {
		m.state = StateToday
		m.refresh()
		return
	}
	m.state = StateStats
	m.loadSummary()
}

func (m Model) updateAddHabit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = StateToday
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.state = StateToday
		m.warning, m.errMsg = "", ""
		target, _ := strconv.Atoi(strings.TrimSpace(m.habitForm.Target))
		habit, err := m.habits.AddCustom(m.habitForm.Name, "", "blue", target)
		if err != nil {
			m.errMsg = apperrors.Format(err)
			return m, nil
		}
		m.refresh()
		for i, r := range m.rows {
			if r.habit.ID == habit.ID {
				m.cursor = i
			}
		}
		return m, nil
	case huh.StateAborted:
		m.state = StateToday
		return m, nil
	}
	return m, cmd
}

func NewHabitForm(f *HabitFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Habit name").
				Value(&f.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name cannot be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Daily target").
				Value(&f.Target).
				Validate(func(s string) error {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || n < 1 {
						return fmt.Errorf("target must be a whole number of at least 1")
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeDracula())
}
