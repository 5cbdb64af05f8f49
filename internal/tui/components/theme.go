package components

import "github.com/charmbracelet/lipgloss"

// Theme holds the semantic colors every component draws from. One theme is
// built at startup from the configuration and threaded through the views,
// so tests can render with any palette they like.
type Theme struct {
	Accent  lipgloss.Color
	Surface lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Danger  lipgloss.Color
	Info    lipgloss.Color
}

// DefaultTheme returns the stock kiosk palette.
func DefaultTheme() Theme {
	return Theme{
		Accent:  lipgloss.Color("#7D56F4"),
		Surface: lipgloss.Color("#1A1A2E"),
		Text:    lipgloss.Color("#EAEAEA"),
		Muted:   lipgloss.Color("#6B7280"),
		Success: lipgloss.Color("#22C55E"),
		Warning: lipgloss.Color("#EAB308"),
		Danger:  lipgloss.Color("#EF4444"),
		Info:    lipgloss.Color("#38BDF8"),
	}
}

// NewTheme builds a theme from the configured accent and surface colors,
// falling back to the defaults for anything left empty.
func NewTheme(accent, surface string) Theme {
	theme := DefaultTheme()
	if accent != "" {
		theme.Accent = lipgloss.Color(accent)
	}
	if surface != "" {
		theme.Surface = lipgloss.Color(surface)
	}
	return theme
}

// TitleStyle is the style for page and card titles.
func (t Theme) TitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
}

// MutedStyle is the style for secondary text.
func (t Theme) MutedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Muted)
}
