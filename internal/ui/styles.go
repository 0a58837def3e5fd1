package ui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().Bold(true)

	statsStyle = lipgloss.NewStyle().Faint(true)

	filterActiveStyle = lipgloss.NewStyle().Bold(true).Underline(true)

	doneStyle = lipgloss.NewStyle().Strikethrough(true).Faint(true)

	priorityHighStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	priorityLowStyle  = lipgloss.NewStyle().Faint(true)

	bannerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)

	bannerImportantStyle = bannerStyle.
				BorderForeground(lipgloss.Color("9"))

	helpStyle = lipgloss.NewStyle().Faint(true)
)
