package kiosk

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/pagelight/pagelight/internal/content"
	"github.com/pagelight/pagelight/internal/tui/components"
)

// styles holds every lipgloss style the kiosk renders with. They are built
// once from the configured theme instead of package globals so two kiosks
// with different palettes can coexist in tests.
type styles struct {
	theme components.Theme

	header lipgloss.Style
	footer lipgloss.Style

	hero        lipgloss.Style
	heroDim     lipgloss.Style
	tagline     lipgloss.Style
	heading     lipgloss.Style
	caption     lipgloss.Style
	muted       lipgloss.Style
	scrollMark  lipgloss.Style
	errorBanner lipgloss.Style
	errorText   lipgloss.Style
	emptyState  lipgloss.Style
	zoomBadge   lipgloss.Style
	spinner     lipgloss.Style

	markdown content.MarkdownStyles
}

func newStyles(theme components.Theme) styles {
	return styles{
		theme: theme,

		header: lipgloss.NewStyle().
			Bold(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(theme.Muted).
			PaddingBottom(0),

		footer: lipgloss.NewStyle().
			Foreground(theme.Muted).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(theme.Muted),

		hero: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Accent),

		heroDim: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Muted),

		tagline: lipgloss.NewStyle().
			Italic(true).
			Foreground(theme.Text),

		heading: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Accent),

		caption: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Italic(true),

		muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		scrollMark: lipgloss.NewStyle().
			Foreground(theme.Muted),

		errorBanner: lipgloss.NewStyle().
			Foreground(theme.Danger).
			Bold(true).
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(theme.Danger).
			Padding(0, 1),

		errorText: lipgloss.NewStyle().
			Foreground(theme.Danger).
			Bold(true),

		emptyState: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Italic(true).
			PaddingTop(2).
			PaddingBottom(2),

		zoomBadge: lipgloss.NewStyle().
			Foreground(theme.Surface).
			Background(theme.Accent).
			Bold(true).
			Padding(0, 1),

		spinner: lipgloss.NewStyle().
			Foreground(theme.Accent),

		markdown: content.MarkdownStyles{
			Heading:   lipgloss.NewStyle().Bold(true).Foreground(theme.Accent),
			Emphasis:  lipgloss.NewStyle().Italic(true),
			Strong:    lipgloss.NewStyle().Bold(true),
			Code:      lipgloss.NewStyle().Faint(true),
			Link:      lipgloss.NewStyle().Underline(true).Foreground(theme.Info),
			Quote:     lipgloss.NewStyle().Faint(true),
			ListMark:  "•",
			QuoteMark: "│",
		},
	}
}
