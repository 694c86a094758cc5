package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/abelbrown/peoplesnews/internal/model"
)

// Colors used in the application.
var (
	colorPrimary   = lipgloss.Color("62")  // Purple
	colorSecondary = lipgloss.Color("241") // Gray
	colorMuted     = lipgloss.Color("240") // Darker gray
	colorHighlight = lipgloss.Color("212") // Pink
	colorSuccess   = lipgloss.Color("78")  // Green
	colorLive      = lipgloss.Color("196") // Red
)

// categoryColors match the badge colours of the mobile client.
var categoryColors = map[model.Category]lipgloss.Color{
	model.CategoryTraffic:  lipgloss.Color("#f97316"),
	model.CategoryAccident: lipgloss.Color("#ef4444"),
	model.CategoryWeather:  lipgloss.Color("#3b82f6"),
	model.CategoryEvent:    lipgloss.Color("#22c55e"),
	model.CategoryUpdate:   lipgloss.Color("#6366f1"),
}

// CategoryBadge renders the coloured category chip of a post.
func CategoryBadge(c model.Category) string {
	color, ok := categoryColors[c]
	if !ok {
		color = colorSecondary
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("255")).
		Background(color).
		Padding(0, 1).
		Render(string(c.OrDefault()))
}

// theme holds the styles that change with dark mode.
type theme struct {
	Base     lipgloss.Style
	Card     lipgloss.Style
	Selected lipgloss.Style
	Dim      lipgloss.Style
}

var (
	darkTheme = theme{
		Base:     lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		Card:     lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Padding(0, 1),
		Selected: lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(colorPrimary).Padding(0, 1),
		Dim:      lipgloss.NewStyle().Foreground(colorSecondary),
	}
	lightTheme = theme{
		Base:     lipgloss.NewStyle().Foreground(lipgloss.Color("235")),
		Card:     lipgloss.NewStyle().Foreground(lipgloss.Color("235")).Padding(0, 1),
		Selected: lipgloss.NewStyle().Foreground(lipgloss.Color("235")).Background(lipgloss.Color("189")).Padding(0, 1),
		Dim:      lipgloss.NewStyle().Foreground(colorMuted),
	}
)

func themeFor(dark bool) theme {
	if dark {
		return darkTheme
	}
	return lightTheme
}

// TabBar styles.
var (
	TabActive = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255")).
			Background(colorPrimary).
			Padding(0, 1)

	TabInactive = lipgloss.NewStyle().
			Foreground(colorSecondary).
			Padding(0, 1)
)

// TickerBar style for the scrolling info strip.
var TickerBar = lipgloss.NewStyle().
	Foreground(lipgloss.Color("230")).
	Background(lipgloss.Color("236")).
	Padding(0, 1)

// SectionHeader style for headings inside a tab.
var SectionHeader = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorHighlight).
	MarginBottom(1)

// LiveBadge marks a live broadcast.
var LiveBadge = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Background(colorLive).
	Padding(0, 1)

// AdBadge marks a sponsored entry.
var AdBadge = lipgloss.NewStyle().
	Foreground(lipgloss.Color("232")).
	Background(lipgloss.Color("220")).
	Padding(0, 1)

// VerifiedBadge marks a verified account.
var VerifiedBadge = lipgloss.NewStyle().
	Foreground(colorSuccess).
	Bold(true)

// Modal style for the opened post.
var Modal = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorPrimary).
	Padding(1, 2)

// StatusBar style for the bottom status bar.
var StatusBar = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(lipgloss.Color("236")).
	Padding(0, 1)

// StatusBarKey style for key hints in status bar.
var StatusBarKey = lipgloss.NewStyle().
	Foreground(colorHighlight).
	Bold(true)

// StatusBarText style for descriptive text in status bar.
var StatusBarText = lipgloss.NewStyle().
	Foreground(colorSecondary)

// ErrorStyle for displaying errors.
var ErrorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("196")).
	Bold(true).
	Padding(0, 1)

// InputBar style for the text entry line.
var InputBar = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(lipgloss.Color("240")).
	Padding(0, 1)

// DebugPanel style for the debug overlay border.
var DebugPanel = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorPrimary).
	Padding(1, 2)

// DebugHeaderStyle for section headers in the debug overlay.
var DebugHeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorHighlight)
