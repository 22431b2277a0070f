package main

import "github.com/charmbracelet/lipgloss"

// Shared lipgloss styles for command output.
var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#A9B1D6"})
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#565F89"})
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#0F7B0F", Dark: "#9ECE6A"})
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#FBBF24"})
	errStyle     = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#B00020", Dark: "#F7768E"})
)

// statusStyle picks the style for a trace status value.
func statusStyle(status string) lipgloss.Style {
	switch status {
	case "success":
		return successStyle
	case "error":
		return errStyle
	case "blocked":
		return warnStyle
	default:
		return mutedStyle
	}
}
