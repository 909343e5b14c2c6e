package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/julianstephens/tinyhabits/internal/models"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateToday:
		content = m.viewToday()
	case StateStats:
		content = m.viewStats()
	case StateAddHabit:
		content = m.form.View()
	}

	parts := []string{m.viewTabs()}
	if m.warning != "" {
		parts = append(parts, warningStyle.Render(m.warning))
	}
	if m.errMsg != "" {
		parts = append(parts, dangerStyle.Render(m.errMsg))
	}
	parts = append(parts, docStyle.Render(content), m.help.View(m))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Today", "Stats"} {
		if m.state == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewToday() string {
	if len(m.rows) == 0 {
		return mutedStyle.Render("No habits yet. Press 'a' to add one.")
	}

	var b strings.Builder
	done := 0
	for i, r := range m.rows {
		if r.progress.Status == models.StatusDone {
			done++
		}

		name := accentStyle(r.habit.AccentColor).Render(r.habit.Name)
		cursor := "  "
		if i == m.cursor {
			cursor = selectedStyle.Render("> ")
		}

		count := fmt.Sprintf("%s/%s", humanize.Comma(int64(r.progress.Current)), humanize.Comma(int64(r.progress.Target)))
		fmt.Fprintf(&b, "%s%s\n  %s %s %s\n\n",
			cursor, name,
			m.bar.ViewAs(r.progress.Completion),
			count,
			mutedStyle.Render(r.progress.PercentString()),
		)
	}

	b.WriteString(heroStyle.Render(fmt.Sprintf("%d of %d done today", done, len(m.rows))))
	return b.String()
}

func (m Model) viewStats() string {
	s := m.summary

	var b strings.Builder
	b.WriteString(heroStyle.Render(s.HeroMessage))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Current streak  %d days\n", s.CurrentStreak)
	fmt.Fprintf(&b, "This week       %s\n", s.WeeklyPercent)
	fmt.Fprintf(&b, "Best day        %s %s\n\n", s.BestDay.Label, mutedStyle.Render(s.BestDay.Detail))

	for _, day := range s.Days {
		fmt.Fprintf(&b, "%s  %s %d/%d\n", day.Date.Format("Mon"), m.bar.ViewAs(day.Percent), day.Done, day.Total)
	}

	if s.Quote != "" {
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("“" + s.Quote + "”"))
	}
	return b.String()
}
