// Package kiosk is the terminal preview kiosk: a Bubble Tea program that
// walks a page document the way a site visitor would, with scroll reveals,
// card pulses, a thumbnail gallery, and the zoomable lightbox.
package kiosk

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pagelight/pagelight/internal/audit"
	"github.com/pagelight/pagelight/internal/config"
	"github.com/pagelight/pagelight/internal/content"
	"github.com/pagelight/pagelight/internal/forms"
	"github.com/pagelight/pagelight/internal/imagery"
	"github.com/pagelight/pagelight/internal/logger"
	"github.com/pagelight/pagelight/internal/tui/components"
	"github.com/pagelight/pagelight/internal/viewer"
)

const (
	// revealFrames is how many ticks a section takes to ease in.
	revealFrames = 12
	// revealInterval paces the reveal animation.
	revealInterval = 40 * time.Millisecond
	// heroInterval paces the hero accent loop.
	heroInterval = 400 * time.Millisecond
	// pulseDuration is how long an activated card stays highlighted.
	pulseDuration = 450 * time.Millisecond
	// flashDuration is how long a form flash stays on screen.
	flashDuration = 4 * time.Second

	// heroCols and heroRows size the hero banner raster.
	heroCols = 48
	heroRows = 6

	minWidth  = 60
	minHeight = 16
)

// Model is the kiosk's Bubble Tea model.
type Model struct {
	// Collaborators
	cfg      *config.Config
	resolver *content.Resolver
	form     *forms.Form
	loader   *imagery.Loader
	auditor  *audit.Buffer
	log      *logger.Logger

	// Lightbox. The surface lives behind a pointer so viewer callbacks
	// survive the value copies Bubble Tea makes of the model.
	surface       *lightboxSurface
	viewer        *viewer.Viewer
	lightboxSeq   int
	lightboxFrame string
	lightboxInfo  *imagery.Info
	openedFrom    viewMode

	// Content state
	slug      string
	page      *content.Page
	summaries []content.Summary
	revision  string

	// Gallery state
	galleryIdx    int
	galleryCursor int
	thumbs        map[string]string
	available     map[string]struct{}

	// Page presentation state
	scrollOffset int
	reveal       map[string]int
	revealing    bool
	pulsedCard   string
	pulseSeq     int
	heroFrame    int

	// Form state
	formFocused bool
	consent     bool
	email       textinput.Model
	flash       *forms.Flash
	flashSeq    int

	// Chrome
	mode      viewMode
	width     int
	height    int
	showError bool
	errorMsg  string
	spinner   spinner.Model
	styles    styles
}

// NewModel creates a kiosk model for the given starting slug.
func NewModel(cfg *config.Config, resolver *content.Resolver, form *forms.Form, loader *imagery.Loader, auditor *audit.Buffer, log *logger.Logger, slug string) Model {
	theme := components.NewTheme(cfg.Theme.Accent, cfg.Theme.Surface)
	sty := newStyles(theme)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = sty.spinner

	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 64
	email.Width = 32

	surface := &lightboxSurface{}

	m := Model{
		cfg:      cfg,
		resolver: resolver,
		form:     form,
		loader:   loader,
		auditor:  auditor,
		log:      log.WithComponent("kiosk"),

		surface: surface,
		viewer:  viewer.New(surface, surface, viewer.WithLogger(log)),

		slug:      slug,
		thumbs:    make(map[string]string),
		available: make(map[string]struct{}),
		reveal:    make(map[string]int),

		email:   email,
		mode:    modePage,
		width:   80,
		height:  24,
		spinner: s,
		styles:  sty,
	}

	return m
}

// Init kicks off the initial loads and the hero loop.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.spinner.Tick,
		loadPageCmd(m.resolver, m.slug),
		listPagesCmd(m.resolver),
		resolveRevisionCmd(m.resolver.Dir()),
		scanImagesCmd(m.cfg.ImagesDir),
		awaitFrameCmd(m.loader),
	}
	if m.cfg.Animations.HeroLoop {
		cmds = append(cmds, heroTickCmd())
	}
	return tea.Batch(cmds...)
}

// Helper Methods

// Viewer returns the lightbox controller, exposed for the composition root.
func (m *Model) Viewer() *viewer.Viewer {
	return m.viewer
}

// absImage resolves a page-relative image path against the images directory.
func (m *Model) absImage(rel string) string {
	return filepath.Join(m.cfg.ImagesDir, rel)
}

// activeGallery returns the gallery section the gallery view shows, or nil.
func (m *Model) activeGallery() *content.GallerySection {
	galleries := m.galleries()
	if len(galleries) == 0 {
		return nil
	}
	if m.galleryIdx >= len(galleries) {
		return galleries[0]
	}
	return galleries[m.galleryIdx]
}

// galleries lists the page's gallery sections in document order.
func (m *Model) galleries() []*content.GallerySection {
	if m.page == nil {
		return nil
	}
	var out []*content.GallerySection
	for _, section := range m.page.Sections {
		if section.Type == "gallery" && section.Gallery != nil {
			out = append(out, section.Gallery)
		}
	}
	return out
}

// cards flattens the page's cards in document order so digit keys can
// address them. Keys are "<sectionID>:<index>".
type cardRef struct {
	key     string
	section string
	index   int
}

func (m *Model) cards() []cardRef {
	if m.page == nil {
		return nil
	}
	var out []cardRef
	for _, section := range m.page.Sections {
		if section.Type != "cards" || section.Cards == nil {
			continue
		}
		for i := range section.Cards.Cards {
			out = append(out, cardRef{
				key:     fmt.Sprintf("%s:%d", section.ID, i),
				section: section.ID,
				index:   i,
			})
		}
	}
	return out
}

// hasForm reports whether the page carries a subscribe form.
func (m *Model) hasForm() bool {
	return m.formSection() != nil
}

// formSection returns the first form section, or nil.
func (m *Model) formSection() *content.FormSection {
	if m.page == nil {
		return nil
	}
	for _, section := range m.page.Sections {
		if section.Type == "form" && section.Form != nil {
			return section.Form
		}
	}
	return nil
}

// caption returns the caption paired with an image index, or "".
func caption(gallery *content.GallerySection, index int) string {
	if gallery == nil || index < 0 || index >= len(gallery.Captions) {
		return ""
	}
	return gallery.Captions[index]
}

// bodyHeight is the rows available to the scrolling page body.
func (m *Model) bodyHeight() int {
	// Header, optional banners, and footer chrome.
	h := m.height - chromeRows(m.showError, m.flash != nil)
	if h < 4 {
		h = 4
	}
	return h
}

// chromeRows counts the fixed rows around the page body.
func chromeRows(errorShown, flashShown bool) int {
	rows := 2 + 2 // header block + footer block
	if errorShown {
		// The banner borders add a row above and below the message.
		rows += 3
	}
	if flashShown {
		rows++
	}
	return rows
}

// clampScroll keeps the scroll offset within the rendered page.
func (m *Model) clampScroll() {
	lines, _ := m.pageLines()
	max := len(lines) - m.bodyHeight()
	if max < 0 {
		max = 0
	}
	if m.scrollOffset > max {
		m.scrollOffset = max
	}
	if m.scrollOffset < 0 {
		m.scrollOffset = 0
	}
}

// seedReveals starts the reveal animation for sections that just scrolled
// into the viewport. With reveals disabled every section renders settled.
func (m *Model) seedReveals() {
	if m.page == nil {
		return
	}

	_, marks := m.pageLines()
	top := m.scrollOffset
	bottom := m.scrollOffset + m.bodyHeight()

	for _, mark := range marks {
		if mark.end <= top || mark.start >= bottom {
			continue
		}
		if _, seen := m.reveal[mark.id]; seen {
			continue
		}
		if m.cfg.Animations.Reveal {
			m.reveal[mark.id] = 0
		} else {
			m.reveal[mark.id] = revealFrames
		}
	}
}

// animatingReveals reports whether any section is mid-reveal.
func (m *Model) animatingReveals() bool {
	for _, frame := range m.reveal {
		if frame < revealFrames {
			return true
		}
	}
	return false
}

// requestLightboxFrame asks the loader for the lightbox raster at the
// current size and zoom. Stale results are discarded by sequence number.
func (m *Model) requestLightboxFrame() {
	if !m.viewer.IsOpen() || m.loader == nil {
		return
	}

	cols, rows := lightboxFrameSize(m.width, m.height)
	m.lightboxSeq++
	m.loader.Submit(imagery.Request{
		Seq:   m.lightboxSeq,
		Path:  m.absImage(m.viewer.Source()),
		Cols:  cols,
		Rows:  rows,
		Scale: m.viewer.Scale(),
	})
}

// requestThumbs queues thumbnail rasters for every image the active page's
// galleries reference. Requests with sequence 0 are thumbnails.
func (m *Model) requestThumbs() {
	if m.loader == nil {
		return
	}
	for _, gallery := range m.galleries() {
		for _, rel := range gallery.Images {
			abs := m.absImage(rel)
			if _, done := m.thumbs[abs]; done {
				continue
			}
			m.loader.Submit(imagery.Request{
				Seq:  0,
				Path: abs,
				Cols: thumbCols,
				Rows: thumbRows,
			})
		}
	}
}

// openLightbox opens the viewer on a gallery image and requests its frame.
// Swapping images while the lightbox is already up keeps the original
// return mode.
func (m *Model) openLightbox(rel string) {
	if m.mode != modeLightbox {
		m.openedFrom = m.mode
	}
	m.viewer.Open(rel)
	m.mode = modeLightbox
	m.lightboxFrame = ""
	m.lightboxInfo = nil
	m.auditor.Record(audit.EventViewerOpen, map[string]any{"image": rel, "slug": m.slug})
	m.requestLightboxFrame()
}

// forwardToViewer hands one event to the lightbox and reconciles the model
// with whatever it did: mode flips on close, frame refreshes on zoom.
func (m *Model) forwardToViewer(ev viewer.Event) bool {
	wasOpen := m.viewer.IsOpen()
	scaleBefore := m.viewer.Scale()
	consumed := m.viewer.Handle(ev)

	if wasOpen && !m.viewer.IsOpen() {
		m.mode = m.openedFrom
		m.lightboxFrame = ""
		m.lightboxInfo = nil
		m.auditor.Record(audit.EventViewerClose, map[string]any{"slug": m.slug})
	} else if m.viewer.IsOpen() && m.viewer.Scale() != scaleBefore {
		m.auditor.Record(audit.EventZoomChange, map[string]any{
			"scale": m.viewer.Scale(),
			"image": m.viewer.Source(),
		})
		m.requestLightboxFrame()
	}
	return consumed
}
