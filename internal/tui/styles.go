package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/msto63/boundary/internal/guard"
)

// Colors
var (
	colorPrimary   = lipgloss.Color("#7C3AED")
	colorSecondary = lipgloss.Color("#10B981")
	colorAccent    = lipgloss.Color("#F59E0B")
	colorError     = lipgloss.Color("#EF4444")
	colorMuted     = lipgloss.Color("#6B7280")
)

// Styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			MarginBottom(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)

	FallbackBoxStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorError).
				Padding(1, 2)

	FallbackMessageStyle = lipgloss.NewStyle().
				Foreground(colorError).
				Bold(true)

	RetryButtonStyle = lipgloss.NewStyle().
				Foreground(colorAccent).
				Bold(true)

	StatusOKStyle = lipgloss.NewStyle().
			Foreground(colorSecondary)

	StatusErrorStyle = lipgloss.NewStyle().
				Foreground(colorError)

	HelpStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			MarginTop(1)
)

// FallbackView is the styled fallback of a Boundary
type FallbackView struct {
	guard.Fallback
}

// NewFallbackView styles fb
func NewFallbackView(fb guard.Fallback) FallbackView {
	return FallbackView{Fallback: fb}
}

// View renders the message and the retry button in a red box
func (f FallbackView) View() string {
	return FallbackBoxStyle.Render(
		FallbackMessageStyle.Render(f.Message) + "\n\n" +
			RetryButtonStyle.Render(guard.RetryControl(f.RetryLabel)),
	)
}

// RenderTitle renders a page title
func RenderTitle(title string) string {
	return TitleStyle.Render(title)
}

// RenderHelp renders a help line
func RenderHelp(help string) string {
	return HelpStyle.Render(help)
}
