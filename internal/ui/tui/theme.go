package tui

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	Title    lipgloss.Style
	Bank     lipgloss.Style
	Help     lipgloss.Style
	Button   lipgloss.Style
	Danger   lipgloss.Style
	Card     lipgloss.Style
	Selected lipgloss.Style
	Owned    lipgloss.Style
	Dialog   lipgloss.Style
	Toast    lipgloss.Style
}

func DefaultTheme() Theme {
	green := lipgloss.Color("#00FF00")
	return Theme{
		Title:  lipgloss.NewStyle().Bold(true).Italic(true).Foreground(green),
		Bank:   lipgloss.NewStyle().Italic(true).Foreground(green),
		Help:   lipgloss.NewStyle().Faint(true),
		Button: lipgloss.NewStyle().Padding(0, 1).Background(lipgloss.Color("#0D6910")).Foreground(lipgloss.Color("#FFFFFF")),
		Danger: lipgloss.NewStyle().Padding(0, 1).Italic(true).Background(lipgloss.Color("#FF0000")).Foreground(lipgloss.Color("#FFFFFF")),
		Card: lipgloss.NewStyle().
			Padding(0, 1).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#669999")),
		Selected: lipgloss.NewStyle().
			Padding(0, 1).
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(green),
		Owned: lipgloss.NewStyle().Faint(true).Italic(true),
		Dialog: lipgloss.NewStyle().
			Padding(1, 3).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Align(lipgloss.Center),
		Toast: lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F")),
	}
}
