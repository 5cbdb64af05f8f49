package components

import "github.com/charmbracelet/lipgloss"

// Card frames a block of already-rendered content with a rounded border
// and an optional title line, the way the site frames its content cards.
type Card struct {
	body    string
	title   string
	width   int
	accent  bool
	padding int
}

// NewCard creates a card around the given body text.
func NewCard(body string) *Card {
	return &Card{body: body, padding: 1}
}

// WithTitle sets the title rendered above the body.
func (c *Card) WithTitle(title string) *Card {
	c.title = title
	return c
}

// WithWidth fixes the card's outer width.
func (c *Card) WithWidth(width int) *Card {
	c.width = width
	return c
}

// WithAccent draws the border in the accent color instead of the muted one.
func (c *Card) WithAccent() *Card {
	c.accent = true
	return c
}

// View renders the card with the given theme.
func (c *Card) View(theme Theme) string {
	borderColor := theme.Muted
	if c.accent {
		borderColor = theme.Accent
	}

	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, c.padding)
	if c.width > 2 {
		// Border cells are outside the content box.
		style = style.Width(c.width - 2)
	}

	content := c.body
	if c.title != "" {
		title := theme.TitleStyle().Render(c.title)
		content = lipgloss.JoinVertical(lipgloss.Left, title, c.body)
	}
	return style.Render(content)
}
