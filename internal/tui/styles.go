package tui

import "github.com/charmbracelet/lipgloss"

// Tokyo Night palette
var (
	colorFg        = lipgloss.Color("#c0caf5")
	colorDim       = lipgloss.Color("#565f89")
	colorPrimary   = lipgloss.Color("#7aa2f7")
	colorSecondary = lipgloss.Color("#bb9af7")
	colorSuccess   = lipgloss.Color("#9ece6a")
	colorWarning   = lipgloss.Color("#e0af68")
	colorError     = lipgloss.Color("#f7768e")
	colorBorder    = lipgloss.Color("#3b4261")
	colorSelection = lipgloss.Color("#33467c")
)

type styles struct {
	Title      lipgloss.Style
	TitleMuted lipgloss.Style

	Pane        lipgloss.Style
	PaneFocused lipgloss.Style

	Item     lipgloss.Style
	Selected lipgloss.Style
	Current  lipgloss.Style

	Resolved lipgloss.Style
	Tag      lipgloss.Style

	Input  lipgloss.Style
	Help   lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
	Warn   lipgloss.Style
}

func newStyles() styles {
	pane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1)

	return styles{
		Title:      lipgloss.NewStyle().Bold(true).Foreground(colorPrimary),
		TitleMuted: lipgloss.NewStyle().Foreground(colorDim),

		Pane:        pane,
		PaneFocused: pane.BorderForeground(colorPrimary),

		Item:     lipgloss.NewStyle().Foreground(colorFg),
		Selected: lipgloss.NewStyle().Foreground(colorFg).Background(colorSelection),
		Current:  lipgloss.NewStyle().Bold(true).Foreground(colorSecondary),

		Resolved: lipgloss.NewStyle().Foreground(colorDim).Strikethrough(true),
		Tag:      lipgloss.NewStyle().Foreground(colorSuccess),

		Input:  lipgloss.NewStyle().Foreground(colorPrimary),
		Help:   lipgloss.NewStyle().Foreground(colorDim),
		Status: lipgloss.NewStyle().Foreground(colorSuccess),
		Error:  lipgloss.NewStyle().Foreground(colorError),
		Warn:   lipgloss.NewStyle().Foreground(colorWarning),
	}
}

// maxWidth caps the content width at a classic terminal width
const maxWidth = 80

func contentWidth(terminalWidth int) int {
	if terminalWidth <= 0 || terminalWidth > maxWidth {
		return maxWidth
	}
	return terminalWidth
}

// centerView centers content horizontally when the terminal is wider than maxWidth
func centerView(content string, terminalWidth, terminalHeight int) string {
	if terminalWidth <= maxWidth {
		return content
	}
	return lipgloss.Place(terminalWidth, terminalHeight, lipgloss.Center, lipgloss.Top, content)
}
