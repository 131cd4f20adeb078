package ux

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/felixgeelhaar/rehearse/internal/feedback"
)

// Styles contains lipgloss styles shared by text output and the TUI
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Label    lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Muted    lipgloss.Style
	Border   lipgloss.Style
	Bullet   lipgloss.Style
	Key      lipgloss.Style
	KeyDesc  lipgloss.Style
	Help     lipgloss.Style
}

// NewStyles returns DefaultStyles, or PlainStyles when noColor is set.
func NewStyles(noColor bool) Styles {
	if noColor {
		return PlainStyles()
	}
	return DefaultStyles()
}

// DefaultStyles returns the default lipgloss styles
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")), // Purple
		Subtitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")),
		Label: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")), // Gray
		Error: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")), // Red
		Success: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("46")), // Green
		Warning: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("226")), // Yellow
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		Border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1),
		Bullet: lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")), // Cyan
		Key: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")),
		KeyDesc: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1),
	}
}

// PlainStyles renders every element unstyled.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Title:    plain,
		Subtitle: plain,
		Label:    plain,
		Error:    plain,
		Success:  plain,
		Warning:  plain,
		Muted:    plain,
		Border:   plain,
		Bullet:   plain,
		Key:      plain,
		KeyDesc:  plain,
		Help:     plain,
	}
}

// Band renders a feedback band in the color of its grade.
func (s Styles) Band(b feedback.Band) string {
	switch b {
	case feedback.BandExcellent, feedback.BandGood:
		return s.Success.Render(string(b))
	case feedback.BandAdequate:
		return s.Warning.Render(string(b))
	default:
		return s.Error.Render(string(b))
	}
}
