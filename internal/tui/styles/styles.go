// Package styles holds the lipgloss colors and styles shared by the TUI.
package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Colors - all colors meet WCAG AA contrast (4.5:1) on both black and dark surfaces
	PrimaryColor = lipgloss.Color("#A78BFA") // Purple (violet-400)
	WarningColor = lipgloss.Color("#F59E0B") // Amber
	ErrorColor   = lipgloss.Color("#F87171") // Red (red-400)
	MutedColor   = lipgloss.Color("#9CA3AF") // Gray
	SurfaceColor = lipgloss.Color("#1F2937") // Dark surface
	TextColor    = lipgloss.Color("#F9FAFB") // Light text
	BorderColor  = lipgloss.Color("#6B7280") // Gray (gray-500)

	// Traffic light
	RedColor    = lipgloss.Color("#F87171")
	YellowColor = lipgloss.Color("#FBBF24")
	GreenColor  = lipgloss.Color("#10B981")
	BlueColor   = lipgloss.Color("#60A5FA")

	// Chart series
	NeurotypicalColor = lipgloss.Color("#94A3B8")
	ADHDColor         = lipgloss.Color("#EF4444")

	// Convenience styles for colors
	Primary = lipgloss.NewStyle().Foreground(PrimaryColor)
	Warning = lipgloss.NewStyle().Foreground(WarningColor)
	Error   = lipgloss.NewStyle().Foreground(ErrorColor)
	Muted   = lipgloss.NewStyle().Foreground(MutedColor)
	Text    = lipgloss.NewStyle().Foreground(TextColor)
	Bold    = lipgloss.NewStyle().Bold(true).Foreground(TextColor)
	Light   = lipgloss.NewStyle().Faint(true)

	// Base styles
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(PrimaryColor).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Italic(true)

	// Tab styles
	TabActive = lipgloss.NewStyle().
			Bold(true).
			Foreground(TextColor).
			Background(PrimaryColor).
			Padding(0, 2)

	TabInactive = lipgloss.NewStyle().
			Foreground(MutedColor).
			Padding(0, 2)

	// Sidebar
	Sidebar = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderColor).
		Padding(0, 1)

	SidebarItem = lipgloss.NewStyle().
			Foreground(TextColor)

	SidebarItemActive = lipgloss.NewStyle().
				Bold(true).
				Foreground(PrimaryColor)

	// Board cards
	Card = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(BorderColor).
		Padding(0, 1)

	CardSelected = Card.
			BorderForeground(PrimaryColor)

	CardHeld = Card.
			Border(lipgloss.DoubleBorder()).
			BorderForeground(WarningColor)

	// Panels
	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderColor).
		Padding(0, 1)

	// Toasts
	ToastInfo = lipgloss.NewStyle().
			Foreground(TextColor).
			Background(SurfaceColor).
			Padding(0, 1)

	ToastWarning = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#111827")).
			Background(WarningColor).
			Padding(0, 1)

	ToastError = lipgloss.NewStyle().
			Bold(true).
			Foreground(TextColor).
			Background(lipgloss.Color("#B91C1C")).
			Padding(0, 1)

	// Chat bubbles
	ChatUser = lipgloss.NewStyle().
			Foreground(TextColor).
			Background(lipgloss.Color("#4C1D95")).
			Padding(0, 1)

	ChatCoach = lipgloss.NewStyle().
			Foreground(TextColor).
			Background(SurfaceColor).
			Padding(0, 1)

	// Help bar
	HelpKey = lipgloss.NewStyle().
		Foreground(BlueColor).
		Bold(true)

	HelpDesc = lipgloss.NewStyle().
			Foreground(MutedColor)

	// Focus timer
	Timer = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextColor).
		Padding(1, 4).
		Border(lipgloss.ThickBorder()).
		BorderForeground(PrimaryColor)

	TimerActive = Timer.
			BorderForeground(GreenColor)
)

// ColumnColor returns the traffic-light color for a column position.
func ColumnColor(index int) lipgloss.Color {
	switch index {
	case 0:
		return RedColor
	case 1:
		return YellowColor
	case 2:
		return GreenColor
	default:
		return BorderColor
	}
}

// ColumnHeader returns the header style for a column position.
func ColumnHeader(index int) lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(ColumnColor(index)).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(ColumnColor(index))
}

// ProgressBar renders a bar of width cells filled to percent.
func ProgressBar(percent, width int) string {
	if width <= 0 {
		return ""
	}
	percent = max(0, min(100, percent))
	filled := percent * width / 100
	bar := lipgloss.NewStyle().Foreground(PrimaryColor).Render(strings.Repeat("█", filled))
	rest := lipgloss.NewStyle().Foreground(BorderColor).Render(strings.Repeat("░", width-filled))
	return bar + rest
}
