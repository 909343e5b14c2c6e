package tui

import "github.com/charmbracelet/lipgloss"

var (
	activeTabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(lipgloss.Color("236")).
			Padding(0, 1).
			Bold(true)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	heroStyle = lipgloss.NewStyle().Bold(true)

	dangerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Italic(true)

	docStyle = lipgloss.NewStyle().Padding(1, 2)
)

// accentColors maps habit accent keys to terminal colors
var accentColors = map[string]lipgloss.Color{
	"blue":   lipgloss.Color("33"),
	"green":  lipgloss.Color("35"),
	"orange": lipgloss.Color("208"),
	"pink":   lipgloss.Color("205"),
	"purple": lipgloss.Color("135"),
	"red":    lipgloss.Color("196"),
}

func accentStyle(accent string) lipgloss.Style {
	color, ok := accentColors[accent]
	if !ok {
		color = accentColors["blue"]
	}
	return lipgloss.NewStyle().Foreground(color)
}
