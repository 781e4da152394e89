package chat

import (
	"os"

	"charm.land/lipgloss/v2"
	"golang.org/x/term"
)

const (
	colorPrimary   = "#7C3AED" // Violet - user label, headings
	colorSecondary = "#10B981" // Green - assistant label
	colorError     = "#EF4444" // Red - errors
	colorMuted     = "#6B7280" // Gray - hints
)

// Style decorates console text. The zero value renders plain text.
type Style struct {
	enabled bool

	heading   lipgloss.Style
	user      lipgloss.Style
	assistant lipgloss.Style
	errorText lipgloss.Style
	hint      lipgloss.Style
}

// NewStyle returns a Style; colors are applied only when enabled is true.
func NewStyle(enabled bool) Style {
	return Style{
		enabled:   enabled,
		heading:   lipgloss.NewStyle().Foreground(lipgloss.Color(colorPrimary)).Bold(true),
		user:      lipgloss.NewStyle().Foreground(lipgloss.Color(colorPrimary)).Bold(true),
		assistant: lipgloss.NewStyle().Foreground(lipgloss.Color(colorSecondary)).Bold(true),
		errorText: lipgloss.NewStyle().Foreground(lipgloss.Color(colorError)).Bold(true),
		hint:      lipgloss.NewStyle().Foreground(lipgloss.Color(colorMuted)).Italic(true),
	}
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func (s Style) render(st lipgloss.Style, text string) string {
	if !s.enabled || text == "" {
		return text
	}
	return st.Render(text)
}

// Heading styles a menu heading.
func (s Style) Heading(text string) string { return s.render(s.heading, text) }

// User styles the user speaker label.
func (s Style) User(text string) string { return s.render(s.user, text) }

// Assistant styles the assistant speaker label.
func (s Style) Assistant(text string) string { return s.render(s.assistant, text) }

// Error styles an inline error.
func (s Style) Error(text string) string { return s.render(s.errorText, text) }

// Hint styles secondary help text.
func (s Style) Hint(text string) string { return s.render(s.hint, text) }
