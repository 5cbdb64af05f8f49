package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Divider renders a horizontal rule with an optional centered label.
type Divider struct {
	label string
	width int
}

// NewDivider creates an unlabeled divider.
func NewDivider(width int) *Divider {
	return &Divider{width: width}
}

// WithLabel centers a label inside the rule.
func (d *Divider) WithLabel(label string) *Divider {
	d.label = label
	return d
}

// View renders the divider with the given theme.
func (d *Divider) View(theme Theme) string {
	if d.width < 1 {
		return ""
	}

	style := theme.MutedStyle()
	if d.label == "" {
		return style.Render(strings.Repeat("─", d.width))
	}

	label := " " + d.label + " "
	remaining := d.width - lipgloss.Width(label)
	if remaining < 2 {
		return style.Render(label)
	}
	left := remaining / 2
	right := remaining - left
	return style.Render(strings.Repeat("─", left) + label + strings.Repeat("─", right))
}
