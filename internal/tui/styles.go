package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette taken from the web front-end: blue header, tinted user bubbles,
// white assistant cards on a light grey transcript.
var (
	Blue600 = lipgloss.AdaptiveColor{Light: "#2563EB", Dark: "#3B82F6"}
	Blue100 = lipgloss.AdaptiveColor{Light: "#DBEAFE", Dark: "#1E3A8A"}
	Gray200 = lipgloss.AdaptiveColor{Light: "#E5E7EB", Dark: "#374151"}
	Gray500 = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	White   = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#F9FAFB"}
	Ink     = lipgloss.AdaptiveColor{Light: "#111827", Dark: "#F3F4F6"}
)

// Styles holds every style the view uses.
type Styles struct {
	Header         lipgloss.Style
	HeaderSubtitle lipgloss.Style
	Welcome        lipgloss.Style

	UserLabel      lipgloss.Style
	UserBubble     lipgloss.Style
	AssistantLabel lipgloss.Style
	AssistantCard  lipgloss.Style

	Typing lipgloss.Style

	Input         lipgloss.Style
	InputDisabled lipgloss.Style
	Button        lipgloss.Style
	ButtonDisable lipgloss.Style

	Help lipgloss.Style
}

// DefaultStyles returns the standard chat styles.
func DefaultStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(White).
			Background(Blue600).
			Padding(0, 1),
		HeaderSubtitle: lipgloss.NewStyle().
			Foreground(White).
			Background(Blue600).
			Padding(0, 1),
		Welcome: lipgloss.NewStyle().
			Foreground(Gray500).
			Align(lipgloss.Center).
			PaddingTop(2),

		UserLabel: lipgloss.NewStyle().
			Bold(true).
			Foreground(Blue600),
		UserBubble: lipgloss.NewStyle().
			Foreground(Ink).
			Background(Blue100).
			Padding(0, 1),
		AssistantLabel: lipgloss.NewStyle().
			Bold(true).
			Foreground(Ink),
		AssistantCard: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Gray200).
			Padding(0, 1),

		Typing: lipgloss.NewStyle().
			Foreground(Blue600),

		Input: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Blue600).
			Padding(0, 1),
		InputDisabled: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Gray200).
			Foreground(Gray500).
			Padding(0, 1),
		Button: lipgloss.NewStyle().
			Bold(true).
			Foreground(White).
			Background(Blue600).
			Padding(0, 2).
			MarginTop(1),
		ButtonDisable: lipgloss.NewStyle().
			Foreground(Gray500).
			Background(Gray200).
			Padding(0, 2).
			MarginTop(1),

		Help: lipgloss.NewStyle().
			Foreground(Gray500),
	}
}
