package components

import "github.com/charmbracelet/lipgloss"

// Badge renders a small inverted chip, used for section type markers and
// the gallery position indicator.
type Badge struct {
	label string
	color lipgloss.Color
}

// NewBadge creates a badge with the given label.
func NewBadge(label string) *Badge {
	return &Badge{label: label}
}

// WithColor overrides the badge background.
func (b *Badge) WithColor(color lipgloss.Color) *Badge {
	b.color = color
	return b
}

// View renders the badge with the given theme.
func (b *Badge) View(theme Theme) string {
	background := b.color
	if background == "" {
		background = theme.Accent
	}
	return lipgloss.NewStyle().
		Foreground(theme.Surface).
		Background(background).
		Padding(0, 1).
		Render(b.label)
}
