package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Header renders the banner line at the top of a page: the title on the
// left and an optional annotation, like the revision stamp, on the right.
type Header struct {
	title      string
	annotation string
	width      int
}

// NewHeader creates a header with the given title.
func NewHeader(title string) *Header {
	return &Header{title: title}
}

// WithAnnotation sets the right-aligned annotation text.
func (h *Header) WithAnnotation(annotation string) *Header {
	h.annotation = annotation
	return h
}

// WithWidth fixes the header's width.
func (h *Header) WithWidth(width int) *Header {
	h.width = width
	return h
}

// View renders the header with the given theme.
func (h *Header) View(theme Theme) string {
	title := theme.TitleStyle().Render(h.title)
	if h.annotation == "" {
		return title
	}

	annotation := theme.MutedStyle().Render(h.annotation)
	gap := h.width - lipgloss.Width(title) - lipgloss.Width(annotation)
	if gap < 1 {
		gap = 1
	}
	return title + strings.Repeat(" ", gap) + annotation
}
