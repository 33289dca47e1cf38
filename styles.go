package main

import "github.com/charmbracelet/lipgloss"

// Palette shared by all command output.
const (
	colorPrimary   = lipgloss.Color("#7C3AED")
	colorMuted     = lipgloss.Color("#6B7280")
	colorSuccess   = lipgloss.Color("#10B981")
	colorWarning   = lipgloss.Color("#F59E0B")
	colorHighlight = lipgloss.Color("#3B82F6")
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	successStyle = lipgloss.NewStyle().Foreground(colorSuccess)
	warningStyle = lipgloss.NewStyle().Foreground(colorWarning)
	pathStyle    = lipgloss.NewStyle().Foreground(colorHighlight)
	labelStyle   = lipgloss.NewStyle().Foreground(colorMuted).Width(16)
)

// field renders an aligned "label value" line.
func field(label, value string) string {
	return labelStyle.Render(label) + value
}
