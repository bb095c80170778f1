package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains the pre-configured lipgloss styles for the chat view.
type Styles struct {
	// Title styles the header line.
	Title lipgloss.Style

	// Article styles the article name in the header.
	Article lipgloss.Style

	// User styles the "You:" speaker label.
	User lipgloss.Style

	// Assistant styles the "WikiTalk:" speaker label.
	Assistant lipgloss.Style

	// Citations styles the provenance footer under an answer.
	Citations lipgloss.Style

	// Muted is for hints and secondary text.
	Muted lipgloss.Style

	// Error styles error messages.
	Error lipgloss.Style

	// InputBorder frames the question input.
	InputBorder lipgloss.Style
}

// DefaultStyles returns the default chat styling.
func DefaultStyles() *Styles {
	var (
		primary = lipgloss.Color("#7C3AED") // Purple
		cyan    = lipgloss.Color("#06B6D4")
		muted   = lipgloss.Color("#6C7086")
		errored = lipgloss.Color("#F38BA8")
		border  = lipgloss.Color("#45475A")
	)

	return &Styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(primary),
		Article:   lipgloss.NewStyle().Foreground(cyan),
		User:      lipgloss.NewStyle().Bold(true).Foreground(cyan),
		Assistant: lipgloss.NewStyle().Bold(true).Foreground(primary),
		Citations: lipgloss.NewStyle().Foreground(muted).Italic(true),
		Muted:     lipgloss.NewStyle().Foreground(muted),
		Error:     lipgloss.NewStyle().Foreground(errored),
		InputBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1),
	}
}
