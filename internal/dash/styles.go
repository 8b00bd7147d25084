package dash

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles for the dashboard.
type Styles struct {
	Title     lipgloss.Style
	Product   lipgloss.Style
	Status    lipgloss.Style
	Error     lipgloss.Style
	Help      lipgloss.Style
	Best      lipgloss.Style
	Bar       lipgloss.Style
	BarBest   lipgloss.Style
	BarAbsent lipgloss.Style
	Prompt    lipgloss.Style
}

// DefaultStyles returns the default dashboard styles.
func DefaultStyles() Styles {
	return Styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		Product:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86")),
		Status:    lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Help:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Best:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		Bar:       lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		BarBest:   lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		BarAbsent: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Prompt:    lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
	}
}
