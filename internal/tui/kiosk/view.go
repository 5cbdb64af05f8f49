package kiosk

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pagelight/pagelight/internal/content"
	"github.com/pagelight/pagelight/internal/forms"
	"github.com/pagelight/pagelight/internal/tui/components"
)

const (
	// pageMarginX is the left margin of the page body.
	pageMarginX = 2
	// revealIndent is how far a section starts to the right before it
	// slides into place.
	revealIndent = 6
	// cardOuterW is the outer width of one card tile.
	cardOuterW = 26
)

// sectionMark records where a section landed in the rendered page, so
// scrolling knows which sections entered the viewport.
type sectionMark struct {
	id         string
	start, end int
}

// View renders the model based on current view mode
func (m Model) View() string {
	switch m.mode {
	case modeGallery:
		return m.renderGalleryView()
	case modeLightbox:
		return m.renderLightboxView()
	case modeHelp:
		return m.renderHelpView()
	default:
		return m.renderPageView()
	}
}

// Page view

func (m Model) renderPageView() string {
	sections := []string{m.renderHeader()}

	if m.showError {
		sections = append(sections, m.styles.errorBanner.Render(truncate(m.errorMsg, m.width-6)))
	}
	if m.flash != nil {
		sections = append(sections, " "+m.flashAlert())
	}

	sections = append(sections, m.renderBody())
	sections = append(sections, m.renderFooter(m.pageFooterHints()))
	return strings.Join(sections, "\n")
}

// renderBody windows the rendered page lines at the scroll offset and
// overlays continuation marks at the edges.
func (m Model) renderBody() string {
	lines, _ := m.pageLines()
	height := m.bodyHeight()

	start := m.scrollOffset
	if start > len(lines) {
		start = len(lines)
	}
	end := start + height
	if end > len(lines) {
		end = len(lines)
	}

	window := make([]string, height)
	copy(window, lines[start:end])

	margin := strings.Repeat(" ", pageMarginX)
	if start > 0 {
		window[0] = margin + m.styles.scrollMark.Render("▲ more above")
	}
	if end < len(lines) {
		window[height-1] = margin + m.styles.scrollMark.Render("▼ more below")
	}
	return strings.Join(window, "\n")
}

// pageLines lays out the whole page at the current width and reveal state.
// Sections render at a fixed content width so the slide-in indent never
// rewraps text, which keeps line positions stable during the animation.
func (m Model) pageLines() ([]string, []sectionMark) {
	margin := strings.Repeat(" ", pageMarginX)
	if m.page == nil {
		status := m.spinner.View() + " " + m.styles.muted.Render("Loading page...")
		if m.showError {
			status = m.styles.emptyState.Render("No page loaded.")
		}
		return []string{"", margin + status}, nil
	}

	width := m.contentWidth()
	lines := m.heroLines(width)
	var marks []sectionMark

	for i := range m.page.Sections {
		section := &m.page.Sections[i]
		lines = append(lines, "")

		start := len(lines)
		indent := strings.Repeat(" ", pageMarginX+m.revealOffset(section.ID))
		for _, line := range m.sectionLines(section, width) {
			lines = append(lines, indent+line)
		}
		marks = append(marks, sectionMark{id: section.ID, start: start, end: len(lines)})
	}
	return lines, marks
}

// contentWidth is the column sections render into. The reveal indent is
// reserved up front so sliding sections stay inside the terminal.
func (m Model) contentWidth() int {
	width := m.width - 2*pageMarginX - revealIndent
	if width < 20 {
		width = 20
	}
	return width
}

// revealOffset is the extra indent of a mid-reveal section, eased out so
// the slide decelerates into place. Unseen sections wait fully offset.
func (m Model) revealOffset(id string) int {
	frame, seen := m.reveal[id]
	if !seen {
		frame = 0
	}
	t := float64(frame) / revealFrames
	eased := t * (2 - t)
	return int(float64(revealIndent)*(1-eased) + 0.5)
}

func (m Model) heroLines(width int) []string {
	margin := strings.Repeat(" ", pageMarginX)
	if m.page.Hero == nil {
		return []string{"", margin + m.styles.heading.Render(m.page.Title)}
	}

	hero := m.page.Hero
	out := []string{"", margin + m.heroHeading(hero.Heading)}
	if hero.Tagline != "" {
		out = append(out, margin+m.styles.tagline.Render(truncate(hero.Tagline, width)))
	}
	if hero.Image != "" {
		if frame, ok := m.thumbs[m.absImage(hero.Image)]; ok && frame != "" {
			out = append(out, "")
			for _, line := range strings.Split(frame, "\n") {
				out = append(out, margin+line)
			}
		}
	}
	return out
}

// heroHeading sweeps an accent band across the heading while the hero loop
// runs; otherwise the whole heading renders in the accent color.
func (m Model) heroHeading(text string) string {
	if !m.cfg.Animations.HeroLoop {
		return m.styles.hero.Render(text)
	}

	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}
	center := m.heroFrame % len(runes)

	var b strings.Builder
	for i, r := range runes {
		distance := i - center
		if distance < 0 {
			distance = -distance
		}
		if distance <= 1 {
			b.WriteString(m.styles.hero.Render(string(r)))
		} else {
			b.WriteString(m.styles.heroDim.Render(string(r)))
		}
	}
	return b.String()
}

func (m Model) sectionLines(section *content.Section, width int) []string {
	switch section.Type {
	case "text":
		return m.textLines(section.Text, width)
	case "cards":
		return m.cardLines(section, width)
	case "gallery":
		return m.galleryTeaser(section.Gallery)
	case "form":
		return m.formLines(section.Form)
	default:
		return []string{m.styles.muted.Render("(unsupported section)")}
	}
}

func (m Model) textLines(text *content.TextSection, width int) []string {
	if text == nil {
		return nil
	}
	var out []string
	if text.Heading != "" {
		out = append(out, m.styles.heading.Render(text.Heading), "")
	}
	rendered := content.NewMarkdownRenderer(width, m.styles.markdown).Render(text.Body)
	return append(out, strings.Split(rendered, "\n")...)
}

func (m Model) cardLines(section *content.Section, width int) []string {
	cards := section.Cards
	if cards == nil {
		return nil
	}

	var out []string
	if cards.Heading != "" {
		out = append(out, m.styles.heading.Render(cards.Heading), "")
	}

	perRow := (width + 1) / (cardOuterW + 1)
	if perRow < 1 {
		perRow = 1
	}

	for rowStart := 0; rowStart < len(cards.Cards); rowStart += perRow {
		rowEnd := rowStart + perRow
		if rowEnd > len(cards.Cards) {
			rowEnd = len(cards.Cards)
		}

		var views []string
		for i := rowStart; i < rowEnd; i++ {
			card := cards.Cards[i]
			title := card.Title
			if card.Icon != "" {
				title = card.Icon + " " + title
			}

			view := components.NewCard(card.Body).
				WithTitle(title).
				WithWidth(cardOuterW)
			if m.pulsedCard == fmt.Sprintf("%s:%d", section.ID, i) {
				view = view.WithAccent()
			}

			if len(views) > 0 {
				views = append(views, " ")
			}
			views = append(views, view.View(m.styles.theme))
		}

		row := lipgloss.JoinHorizontal(lipgloss.Top, views...)
		out = append(out, strings.Split(row, "\n")...)
		if rowEnd < len(cards.Cards) {
			out = append(out, "")
		}
	}
	return out
}

func (m Model) galleryTeaser(gallery *content.GallerySection) []string {
	if gallery == nil {
		return nil
	}
	var out []string
	if gallery.Heading != "" {
		out = append(out, m.styles.heading.Render(gallery.Heading), "")
	}

	noun := "images"
	if len(gallery.Images) == 1 {
		noun = "image"
	}
	badge := components.NewBadge("GALLERY").View(m.styles.theme)
	out = append(out, badge+" "+m.styles.muted.Render(
		fmt.Sprintf("%d %s, press g to browse", len(gallery.Images), noun)))
	return out
}

func (m Model) formLines(form *content.FormSection) []string {
	if form == nil {
		return nil
	}

	var out []string
	if form.Heading != "" {
		out = append(out, m.styles.heading.Render(form.Heading), "")
	}

	out = append(out, m.email.View())

	check := "[ ]"
	if m.consent {
		check = "[x]"
	}
	out = append(out, check+" "+form.ConsentLabel)

	if m.formFocused {
		out = append(out, m.styles.muted.Render("enter: subscribe • tab: consent • esc: done"))
	} else {
		out = append(out, m.styles.muted.Render("press f to subscribe"))
	}
	return out
}

// Gallery view

func (m Model) renderGalleryView() string {
	gallery := m.activeGallery()
	if gallery == nil {
		return strings.Join([]string{
			m.renderHeader(),
			"",
			"  " + m.styles.emptyState.Render("This page has no gallery."),
			m.renderFooter([]string{"esc: back", "q: quit"}),
		}, "\n")
	}

	// The chrome above the grid is exactly galleryTopRows tall so clicks
	// land on the cells they appear to hit.
	sections := []string{m.renderHeader(), m.galleryHeadingLine(gallery), ""}

	cols := galleryColumns(m.width)
	visible := galleryVisibleRows(m.height)
	scroll := m.galleryScrollRows()
	margin := strings.Repeat(" ", galleryMarginX)

	for row := scroll; row < scroll+visible; row++ {
		var cells []string
		for col := 0; col < cols; col++ {
			index := row*cols + col
			if index >= len(gallery.Images) {
				break
			}
			if len(cells) > 0 {
				cells = append(cells, strings.Repeat(" ", galleryGapX))
			}
			cells = append(cells, m.galleryCell(gallery, index))
		}
		if len(cells) == 0 {
			break
		}

		block := lipgloss.JoinHorizontal(lipgloss.Top, cells...)
		for _, line := range strings.Split(block, "\n") {
			sections = append(sections, margin+line)
		}
	}

	sections = append(sections, m.renderFooter(m.galleryFooterHints()))
	return strings.Join(sections, "\n")
}

// galleryHeadingLine is the single chrome line between the header and the
// grid: heading, position badge, and decode progress while thumbnails are
// still coming in.
func (m Model) galleryHeadingLine(gallery *content.GallerySection) string {
	heading := gallery.Heading
	if heading == "" {
		heading = "Gallery"
	}

	position := components.NewBadge(
		fmt.Sprintf("%d/%d", m.galleryCursor+1, len(gallery.Images)),
	).View(m.styles.theme)

	line := " " + m.styles.heading.Render(heading) + " " + position

	done := 0
	for _, rel := range gallery.Images {
		if _, ok := m.thumbs[m.absImage(rel)]; ok {
			done++
		}
	}
	if done < len(gallery.Images) {
		bar := components.NewProgress(len(gallery.Images)).WithWidth(16).View(done)
		line += "  " + m.spinner.View() + " " + bar
	}
	return line
}

func (m Model) galleryCell(gallery *content.GallerySection, index int) string {
	abs := m.absImage(gallery.Images[index])
	frame, decoded := m.thumbs[abs]

	var body string
	switch {
	case decoded && frame != "":
		body = frame
	case decoded:
		body = m.thumbPlaceholder(m.styles.errorText.Render("unreadable"))
	case len(m.available) > 0 && !m.imageAvailable(abs):
		body = m.thumbPlaceholder(m.styles.errorText.Render("missing"))
	default:
		body = m.thumbPlaceholder(m.spinner.View())
	}

	borderColor := m.styles.theme.Muted
	if index == m.galleryCursor {
		borderColor = m.styles.theme.Accent
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Render(body)

	label := caption(gallery, index)
	if label == "" {
		label = filepath.Base(gallery.Images[index])
	}
	captionLine := lipgloss.NewStyle().
		Width(galleryCellW).
		Align(lipgloss.Center).
		Render(m.styles.caption.Render(truncate(label, galleryCellW)))

	return lipgloss.JoinVertical(lipgloss.Left, box, captionLine)
}

func (m Model) thumbPlaceholder(label string) string {
	return lipgloss.Place(thumbCols, thumbRows, lipgloss.Center, lipgloss.Center, label)
}

func (m Model) imageAvailable(abs string) bool {
	_, ok := m.available[abs]
	return ok
}

// Lightbox view

func (m Model) renderLightboxView() string {
	cols, rows := lightboxFrameSize(m.width, m.height)
	margin := strings.Repeat(" ", lightboxMarginX)

	sections := []string{m.lightboxHeaderLine(), ""}

	frame := m.lightboxFrame
	if frame == "" {
		frame = lipgloss.Place(cols, rows, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" "+m.styles.muted.Render("rendering..."))
	}
	for _, line := range strings.Split(frame, "\n") {
		sections = append(sections, margin+line)
	}

	sections = append(sections, margin+m.lightboxCaptionLine())
	sections = append(sections, margin+m.lightboxInfoLine())
	sections = append(sections, "")
	sections = append(sections, m.renderFooter([]string{
		"+/-: zoom", "0: reset", "←/→: image", "esc: close", "q: quit",
	}))
	return strings.Join(sections, "\n")
}

// lightboxHeaderLine puts the image name left and the zoom badge right.
func (m Model) lightboxHeaderLine() string {
	name := " " + m.styles.theme.TitleStyle().Render(filepath.Base(m.viewer.Source()))
	badge := m.styles.zoomBadge.Render(fmt.Sprintf("%d%%", int(m.viewer.Scale()*100+0.5))) + " "

	gap := m.width - lipgloss.Width(name) - lipgloss.Width(badge)
	if gap < 1 {
		gap = 1
	}
	return name + strings.Repeat(" ", gap) + badge
}

func (m Model) lightboxCaptionLine() string {
	if m.showError {
		return m.styles.errorText.Render(truncate(m.errorMsg, m.width-2*lightboxMarginX))
	}

	gallery := m.activeGallery()
	if gallery != nil {
		for i, rel := range gallery.Images {
			if rel == m.viewer.Source() {
				if label := caption(gallery, i); label != "" {
					return m.styles.caption.Render(truncate(label, m.width-2*lightboxMarginX))
				}
				break
			}
		}
	}
	return m.styles.caption.Render(m.viewer.Source())
}

func (m Model) lightboxInfoLine() string {
	info := m.lightboxInfo
	if info == nil {
		return ""
	}

	parts := []string{
		fmt.Sprintf("%dx%d", info.Width, info.Height),
		info.Format,
		humanSize(info.Size),
	}
	if info.Camera != "" {
		parts = append(parts, info.Camera)
	}
	if info.TakenAt != nil {
		parts = append(parts, "taken "+info.TakenAt.Format("2006-01-02"))
	}
	return m.styles.muted.Render(strings.Join(parts, " · "))
}

// Help view

func (m Model) renderHelpView() string {
	key := m.styles.heading
	desc := m.styles.muted

	entry := func(keys, what string) string {
		return "    " + key.Render(padRight(keys, 18)) + desc.Render(what)
	}
	group := func(name string) string {
		return "  " + m.styles.theme.TitleStyle().Render(name)
	}

	sections := []string{
		m.renderHeader(),
		"",
		group("Page"),
		entry("↑/k  ↓/j", "scroll"),
		entry("pgup  pgdn  space", "scroll a screen"),
		entry("←  →", "previous / next page"),
		entry("1-9", "highlight a card"),
		entry("g", "open the gallery"),
		entry("f", "focus the subscribe form"),
		entry("r", "reload content from disk"),
		"",
		group("Gallery"),
		entry("arrows / hjkl", "move between thumbnails"),
		entry("enter  space", "open image in the lightbox"),
		entry("g", "next gallery on the page"),
		entry("esc", "back to the page"),
		"",
		group("Lightbox"),
		entry("+ / =  -", "zoom in / out"),
		entry("0", "reset to actual size"),
		entry("wheel", "zoom"),
		entry("←  →", "neighboring image"),
		entry("esc / double-click", "close"),
		"",
		m.renderFooter([]string{"?: close help", "q: quit"}),
	}
	return strings.Join(sections, "\n")
}

// Shared chrome

func (m Model) renderHeader() string {
	title := "pagelight"
	if m.page != nil {
		title = m.page.Title
	}

	annotation := content.Canonical(m.slug)
	if m.revision != "" {
		annotation += "  " + m.revision
	}

	header := components.NewHeader(title).
		WithAnnotation(annotation).
		WithWidth(m.width - 2).
		View(m.styles.theme)
	return m.styles.header.Width(m.width).Render(" " + header)
}

func (m Model) renderFooter(hints []string) string {
	return m.styles.footer.Width(m.width).Render(" " + strings.Join(hints, " • "))
}

func (m Model) pageFooterHints() []string {
	hints := []string{"↑/↓: scroll", "←/→: pages"}
	if len(m.galleries()) > 0 {
		hints = append(hints, "g: gallery")
	}
	if m.hasForm() {
		hints = append(hints, "f: subscribe")
	}
	hints = append(hints, "?: help", "q: quit")
	if m.showError {
		hints = append(hints, "x: dismiss")
	}
	return hints
}

func (m Model) galleryFooterHints() []string {
	hints := []string{"arrows: browse", "enter: open"}
	if len(m.galleries()) > 1 {
		hints = append(hints, "g: next gallery")
	}
	return append(hints, "esc: back", "q: quit")
}

func (m Model) flashAlert() string {
	switch m.flash.Level {
	case forms.LevelSuccess:
		return components.SuccessAlert(m.flash.Message).View(m.styles.theme)
	case forms.LevelError:
		return components.ErrorAlert(m.flash.Message).View(m.styles.theme)
	default:
		return components.InfoAlert(m.flash.Message).View(m.styles.theme)
	}
}

// Text helpers

func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(runes[:max-1]) + "…"
}

func padRight(s string, width int) string {
	if gap := width - len([]rune(s)); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

func humanSize(size int64) string {
	switch {
	case size >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(size)/(1<<20))
	case size >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(size)/(1<<10))
	default:
		return fmt.Sprintf("%d B", size)
	}
}
