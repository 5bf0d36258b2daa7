// Package ui renders command output: styled summaries, wrapped text and the
// operation table.
package ui

import "github.com/charmbracelet/lipgloss"

// Shared Lip Gloss styles. All colors are hex codes.
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff5fd2"))

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff005f")).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffaf00"))

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ff5f")).
			Bold(true)

	HelpStyle = lipgloss.NewStyle().
			Faint(true).
			Foreground(lipgloss.Color("#a8a8a8"))

	// Indents detail lines under a heading.
	ListStyle = lipgloss.NewStyle().
			PaddingLeft(2)
)
