package kiosk

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagelight/pagelight/internal/content"
	"github.com/pagelight/pagelight/internal/forms"
	"github.com/pagelight/pagelight/internal/imagery"
)

func TestPageViewContainsSections(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	m.seedReveals()
	view := m.View()

	assert.Contains(t, view, "About Aurora")
	assert.Contains(t, view, "Aurora Labs")
	assert.Contains(t, view, "Who we are")
	assert.Contains(t, view, "Clarity")
	assert.Contains(t, view, "GALLERY")
	assert.Contains(t, view, "press f to subscribe")
	assert.Contains(t, view, "g: gallery")
	assert.Contains(t, view, "f: subscribe")
}

func TestPageViewErrorBannerAndDismissHint(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	m.showError = true
	m.errorMsg = "something broke"

	view := m.View()
	assert.Contains(t, view, "something broke")
	assert.Contains(t, view, "x: dismiss")
}

func TestPageViewFlash(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	m.flash = &forms.Flash{Level: forms.LevelSuccess, Message: "Thank you for subscribing. You're on the list."}

	view := m.View()
	assert.Contains(t, view, "Thank you for subscribing.")
	assert.Contains(t, view, "✓")
}

func TestPageViewScrollMarks(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	m.height = 16
	m.seedReveals()

	view := m.View()
	assert.Contains(t, view, "▼ more below")
	assert.NotContains(t, view, "▲ more above")

	m.scrollOffset = 2
	view = m.View()
	assert.Contains(t, view, "▲ more above")
}

func TestPageViewLoadingPlaceholder(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	m.page = nil

	assert.Contains(t, m.View(), "Loading page...")
}

func TestGalleryViewShowsCells(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	m.mode = modeGallery

	view := m.View()
	assert.Contains(t, view, "Press kit")
	assert.Contains(t, view, "1/2")
	assert.Contains(t, view, "Launch day", "first image uses its caption")
	assert.Contains(t, view, "two.png", "second image falls back to its filename")
	assert.Contains(t, view, "enter: open")
}

func TestGalleryViewEmptyState(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	m.page = &content.Page{Title: "Plain", Slug: "plain"}
	m.mode = modeGallery

	assert.Contains(t, m.View(), "This page has no gallery.")
}

func TestGalleryViewGridAlignment(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	m.mode = modeGallery

	lines := strings.Split(m.View(), "\n")
	require.Greater(t, len(lines), galleryTopRows)

	// The first cell's border must start exactly where hit testing expects.
	top := lines[galleryTopRows]
	require.GreaterOrEqual(t, len([]rune(top)), galleryMarginX+1)
	assert.Equal(t, strings.Repeat(" ", galleryMarginX), string([]rune(top)[:galleryMarginX]))
	assert.Equal(t, "╭", string([]rune(top)[galleryMarginX]))
}

func TestGalleryViewMarksMissingImages(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	m.mode = modeGallery
	m.available = map[string]struct{}{m.absImage("press/one.png"): {}}

	view := m.View()
	assert.Contains(t, view, "missing", "an image the scan never saw is flagged")
}

func TestGalleryViewMarksUnreadableImages(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	m.mode = modeGallery
	m.thumbs[m.absImage("press/one.png")] = ""

	assert.Contains(t, m.View(), "unreadable")
}

func TestLightboxViewPlaceholderAndBadge(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	m.mode = modeGallery
	m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	view := m.View()
	assert.Contains(t, view, "one.png")
	assert.Contains(t, view, "100%")
	assert.Contains(t, view, "rendering...")
	assert.Contains(t, view, "Launch day")

	m.lightboxFrame = "FRAMEDATA"
	view = m.View()
	assert.Contains(t, view, "FRAMEDATA")
	assert.NotContains(t, view, "rendering...")
}

func TestLightboxViewFrameAlignment(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	m.mode = modeGallery
	m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m.lightboxFrame = "ZZZZ"

	lines := strings.Split(m.View(), "\n")
	require.Greater(t, len(lines), lightboxTopRows)
	assert.Equal(t, strings.Repeat(" ", lightboxMarginX)+"ZZZZ", lines[lightboxTopRows])
}

func TestLightboxViewZoomBadgeTracksScale(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	m.mode = modeGallery
	m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = apply(t, m, runeKey("+"))

	assert.Contains(t, m.View(), "110%")
}

func TestLightboxViewInfoLine(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	m.mode = modeGallery
	m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m.lightboxInfo = &imagery.Info{Width: 1600, Height: 900, Format: "jpeg", Size: 2048, Camera: "NIKON D750"}

	view := m.View()
	assert.Contains(t, view, "1600x900")
	assert.Contains(t, view, "jpeg")
	assert.Contains(t, view, "2.0 KB")
	assert.Contains(t, view, "NIKON D750")
}

func TestHelpViewListsBindings(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	m.mode = modeHelp

	view := m.View()
	assert.Contains(t, view, "hjkl")
	assert.Contains(t, view, "double-click")
	assert.Contains(t, view, "reload content")
}

func TestPageLinesMarksCoverSections(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	lines, marks := m.pageLines()

	require.Len(t, marks, 4)
	assert.Equal(t, "intro", marks[0].id)
	assert.Equal(t, "values", marks[1].id)
	assert.Equal(t, "press", marks[2].id)
	assert.Equal(t, "subscribe", marks[3].id)

	previousEnd := 0
	for _, mark := range marks {
		assert.Less(t, mark.start, mark.end)
		assert.GreaterOrEqual(t, mark.start, previousEnd)
		assert.LessOrEqual(t, mark.end, len(lines))
		previousEnd = mark.end
	}
}

func TestPageLinesStableAcrossReveal(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	m.cfg.Animations.Reveal = true

	before, marksBefore := m.pageLines()
	m.seedReveals()
	m.reveal["intro"] = revealFrames / 2
	after, marksAfter := m.pageLines()

	assert.Equal(t, len(before), len(after), "the slide-in never rewraps or moves lines")
	assert.Equal(t, marksBefore, marksAfter)
}

func TestRevealOffsetEasing(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)

	m.reveal = map[string]int{}
	assert.Equal(t, revealIndent, m.revealOffset("intro"), "unseen sections wait fully offset")

	previous := revealIndent
	for frame := 0; frame <= revealFrames; frame++ {
		m.reveal["intro"] = frame
		offset := m.revealOffset("intro")
		assert.LessOrEqual(t, offset, previous, "the slide only moves left")
		previous = offset
	}
	assert.Equal(t, 0, m.revealOffset("intro"), "settled sections sit at the margin")
}

func TestRenderBodyPadsShortContent(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	m.page = nil

	body := m.renderBody()
	assert.Equal(t, m.bodyHeight()-1, strings.Count(body, "\n"))
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "long…", truncate("longer text", 5))
	assert.Equal(t, "…", truncate("xy", 1))
	assert.Equal(t, "", truncate("anything", 0))
}

func TestHumanSize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "512 B", humanSize(512))
	assert.Equal(t, "2.0 KB", humanSize(2048))
	assert.Equal(t, "1.5 MB", humanSize(3*1<<20/2))
}

func TestPadRight(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ab  ", padRight("ab", 4))
	assert.Equal(t, "abcd", padRight("abcd", 2))
}
