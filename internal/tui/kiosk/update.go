package kiosk

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pagelight/pagelight/internal/audit"
	"github.com/pagelight/pagelight/internal/content"
	"github.com/pagelight/pagelight/internal/imagery"
	"github.com/pagelight/pagelight/internal/viewer"
	pagelighterrors "github.com/pagelight/pagelight/pkg/errors"
)

// Update handles incoming messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	// System messages
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		if m.width < minWidth || m.height < minHeight {
			m.showError = true
			m.errorMsg = fmt.Sprintf("Terminal too small (%dx%d). Minimum size: %dx%d",
				m.width, m.height, minWidth, minHeight)
		} else if m.showError && strings.HasPrefix(m.errorMsg, "Terminal too small") {
			m.showError = false
			m.errorMsg = ""
		}

		m.clampScroll()
		m.seedReveals()
		// The lightbox raster is size-dependent; re-request at the new grid.
		m.requestLightboxFrame()
		return m, m.revealCmd()

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.MouseMsg:
		return m.handleMouse(tea.MouseEvent(msg))

	// Spinner tick for loading animations
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	// Content messages
	case pageLoadedMsg:
		m.page = msg.page
		m.slug = msg.slug
		m.scrollOffset = 0
		m.reveal = make(map[string]int)
		m.galleryIdx = 0
		m.galleryCursor = 0
		m.formFocused = false
		m.email.Blur()
		m.showError = false
		m.errorMsg = ""

		m.auditor.Record(audit.EventPageView, map[string]any{"slug": msg.slug})
		m.log.Debug("page loaded")

		m.requestThumbs()
		m.requestHeroImage()
		m.seedReveals()
		return m, m.revealCmd()

	case pageErrorMsg:
		m.showError = true
		m.errorMsg = pageErrorText(msg)
		m.log.Error(msg.err, "page load failed")
		return m, nil

	case pagesListedMsg:
		m.summaries = msg.summaries
		return m, nil

	// Imagery messages
	case imagesScannedMsg:
		m.available = make(map[string]struct{}, len(msg.paths))
		for _, rel := range msg.paths {
			m.available[m.absImage(rel)] = struct{}{}
		}
		return m, nil

	case imagesErrorMsg:
		m.log.Error(msg.err, "image scan failed")
		return m, nil

	case frameReadyMsg:
		return m.handleFrame(msg.result)

	case revisionResolvedMsg:
		m.revision = msg.stamp
		return m, nil

	// Animation messages
	case revealTickMsg:
		for id, frame := range m.reveal {
			if frame < revealFrames {
				m.reveal[id] = frame + 1
			}
		}
		if m.animatingReveals() {
			return m, revealTickCmd()
		}
		m.revealing = false
		return m, nil

	case heroTickMsg:
		if !m.cfg.Animations.HeroLoop {
			return m, nil
		}
		// The hero loop pauses while the lightbox is up.
		if m.mode != modeLightbox {
			m.heroFrame++
		}
		return m, heroTickCmd()

	case pulseExpiredMsg:
		if msg.seq == m.pulseSeq {
			m.pulsedCard = ""
		}
		return m, nil

	case flashClearMsg:
		if msg.seq == m.flashSeq {
			m.flash = nil
		}
		return m, nil

	// Error messages
	case errorMsg:
		m.showError = true
		m.errorMsg = msg.message
		return m, nil

	case clearErrorMsg:
		m.showError = false
		m.errorMsg = ""
		return m, nil
	}

	return m, nil
}

// handleFrame files one loader delivery and re-arms the result pump.
func (m Model) handleFrame(result imagery.Result) (tea.Model, tea.Cmd) {
	pump := awaitFrameCmd(m.loader)

	if result.Seq == 0 {
		// Thumbnail. An empty frame marks a file that would not decode.
		if result.Err != nil {
			m.thumbs[result.Path] = ""
			return m, pump
		}
		m.thumbs[result.Path] = result.Frame
		return m, pump
	}

	// Lightbox frame: anything but the newest request is stale.
	if result.Seq != m.lightboxSeq || !m.viewer.IsOpen() {
		return m, pump
	}
	if result.Err != nil {
		m.showError = true
		m.errorMsg = result.Err.Error()
		return m, pump
	}
	m.lightboxFrame = result.Frame
	m.lightboxInfo = result.Info
	return m, pump
}

// handleKeyPress handles keyboard input based on current view mode
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modePage:
		if m.formFocused {
			return m.handleFormKeys(msg)
		}
		return m.handlePageKeys(msg)
	case modeGallery:
		return m.handleGalleryKeys(msg)
	case modeLightbox:
		return m.handleLightboxKeys(msg)
	case modeHelp:
		return m.handleHelpKeys(msg)
	default:
		return m, nil
	}
}

// handlePageKeys handles keys while scrolling a page
func (m Model) handlePageKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	// Quit
	case "q", "ctrl+c":
		return m, tea.Quit

	// Help
	case "?":
		m.openedFrom = modePage
		m.mode = modeHelp
		return m, nil

	// Clear error banner
	case "x", "esc":
		if m.showError {
			m.showError = false
			m.errorMsg = ""
		}
		return m, nil

	// Scrolling
	case "up", "k":
		m.scrollOffset--
		return m, m.afterScroll()

	case "down", "j":
		m.scrollOffset++
		return m, m.afterScroll()

	case "pgup":
		m.scrollOffset -= m.bodyHeight()
		return m, m.afterScroll()

	case "pgdown", " ":
		m.scrollOffset += m.bodyHeight()
		return m, m.afterScroll()

	case "home":
		m.scrollOffset = 0
		return m, m.afterScroll()

	case "end":
		lines, _ := m.pageLines()
		m.scrollOffset = len(lines)
		return m, m.afterScroll()

	// Page cycling
	case "left":
		return m.cyclePage(-1)

	case "right":
		return m.cyclePage(1)

	// Gallery
	case "g":
		if len(m.galleries()) == 0 {
			return m, nil
		}
		m.mode = modeGallery
		m.requestThumbs()
		return m, nil

	// Subscribe form
	case "f":
		if !m.hasForm() {
			return m, nil
		}
		m.formFocused = true
		return m, m.email.Focus()

	// Reload content from disk
	case "r":
		return m, tea.Batch(
			loadPageCmd(m.resolver, m.slug),
			listPagesCmd(m.resolver),
			resolveRevisionCmd(m.resolver.Dir()),
			scanImagesCmd(m.cfg.ImagesDir),
		)

	// Card pulses by number
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		cards := m.cards()
		index := int(msg.String()[0] - '1')
		if index >= len(cards) {
			return m, nil
		}
		m.pulsedCard = cards[index].key
		m.pulseSeq++
		return m, expirePulseCmd(m.pulseSeq)
	}

	return m, nil
}

// handleFormKeys handles keys while the subscribe form owns input
func (m Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	// Leave the form
	case "esc":
		m.formFocused = false
		m.email.Blur()
		return m, nil

	// Toggle the consent checkbox
	case "tab":
		m.consent = !m.consent
		return m, nil

	// Submit
	case "enter":
		flash := m.form.Submit(m.email.Value(), m.consent)
		m.flash = &flash
		m.flashSeq++
		return m, clearFlashCmd(m.flashSeq)
	}

	var cmd tea.Cmd
	m.email, cmd = m.email.Update(msg)
	return m, cmd
}

// handleGalleryKeys handles keys in the thumbnail grid
func (m Model) handleGalleryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	gallery := m.activeGallery()
	if gallery == nil {
		m.mode = modePage
		return m, nil
	}
	cols := galleryColumns(m.width)

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "?":
		m.openedFrom = modeGallery
		m.mode = modeHelp
		return m, nil

	case "esc", "backspace":
		m.mode = modePage
		return m, nil

	case "left", "h":
		m.moveGalleryCursor(-1, len(gallery.Images))
		return m, nil

	case "right", "l":
		m.moveGalleryCursor(1, len(gallery.Images))
		return m, nil

	case "up", "k":
		m.moveGalleryCursor(-cols, len(gallery.Images))
		return m, nil

	case "down", "j":
		m.moveGalleryCursor(cols, len(gallery.Images))
		return m, nil

	case "g":
		if galleries := m.galleries(); len(galleries) > 1 {
			m.galleryIdx = (m.galleryIdx + 1) % len(galleries)
			m.galleryCursor = 0
		}
		return m, nil

	case "enter", " ":
		if m.galleryCursor < len(gallery.Images) {
			m.openLightbox(gallery.Images[m.galleryCursor])
		}
		return m, nil
	}

	return m, nil
}

// handleLightboxKeys forwards lightbox keys to the viewer core
func (m Model) handleLightboxKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "esc":
		m.forwardToViewer(viewer.KeyEvent{Key: viewer.KeyEscape})
		return m, nil

	case "+", "=":
		m.forwardToViewer(viewer.KeyEvent{Key: viewer.KeyPlus})
		return m, nil

	case "-":
		m.forwardToViewer(viewer.KeyEvent{Key: viewer.KeyMinus})
		return m, nil

	case "0":
		m.forwardToViewer(viewer.KeyEvent{Key: viewer.KeyZero})
		return m, nil

	// Swap to the neighboring gallery image without leaving the lightbox.
	case "left":
		return m.swapLightbox(-1)

	case "right":
		return m.swapLightbox(1)
	}

	return m, nil
}

// handleHelpKeys handles keys in the help overlay
func (m Model) handleHelpKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "?", "esc", "q":
		m.mode = m.openedFrom
		return m, nil
	}
	return m, nil
}

// handleMouse routes mouse input based on current view mode
func (m Model) handleMouse(event tea.MouseEvent) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeLightbox:
		return m.handleLightboxMouse(event)

	case modeGallery:
		return m.handleGalleryMouse(event)

	case modePage:
		if m.formFocused {
			return m, nil
		}
		switch event.Button {
		case tea.MouseButtonWheelUp:
			m.scrollOffset -= 3
			return m, m.afterScroll()
		case tea.MouseButtonWheelDown:
			m.scrollOffset += 3
			return m, m.afterScroll()
		}
	}
	return m, nil
}

// handleLightboxMouse translates clicks and wheel ticks into viewer events.
// A click on the image doubles as a tap so double-click-to-close emerges
// from the viewer's own tap window.
func (m Model) handleLightboxMouse(event tea.MouseEvent) (tea.Model, tea.Cmd) {
	onImage := lightboxImageRegion(m.width, m.height).contains(event.X, event.Y)

	switch event.Button {
	case tea.MouseButtonWheelUp:
		m.forwardToViewer(viewer.WheelEvent{DeltaY: -1, OnImage: onImage})

	case tea.MouseButtonWheelDown:
		m.forwardToViewer(viewer.WheelEvent{DeltaY: 1, OnImage: onImage})

	case tea.MouseButtonLeft:
		if event.Action != tea.MouseActionPress {
			break
		}
		m.forwardToViewer(viewer.PointerEvent{OnImage: onImage})
		if onImage && m.viewer.IsOpen() {
			m.forwardToViewer(viewer.TouchEndEvent{At: time.Now()})
		}

	case tea.MouseButtonRight:
		if event.Action == tea.MouseActionPress && onImage {
			m.forwardToViewer(viewer.ContextMenuEvent{})
		}
	}
	return m, nil
}

// handleGalleryMouse selects and opens thumbnails under the pointer.
func (m Model) handleGalleryMouse(event tea.MouseEvent) (tea.Model, tea.Cmd) {
	gallery := m.activeGallery()
	if gallery == nil {
		return m, nil
	}
	cols := galleryColumns(m.width)

	switch event.Button {
	case tea.MouseButtonWheelUp:
		m.moveGalleryCursor(-cols, len(gallery.Images))

	case tea.MouseButtonWheelDown:
		m.moveGalleryCursor(cols, len(gallery.Images))

	case tea.MouseButtonLeft:
		if event.Action != tea.MouseActionPress {
			break
		}
		index, ok := galleryCellAt(event.X, event.Y, m.width, len(gallery.Images), m.galleryScrollRows())
		if !ok {
			break
		}
		m.galleryCursor = index
		m.openLightbox(gallery.Images[index])
	}
	return m, nil
}

// Helper methods for the handlers

// afterScroll clamps the offset, seeds reveals for newly visible sections,
// and arms the reveal ticker when something started animating.
func (m *Model) afterScroll() tea.Cmd {
	m.clampScroll()
	m.seedReveals()
	return m.revealCmd()
}

// revealCmd arms the reveal ticker if sections are animating and it is not
// already running.
func (m *Model) revealCmd() tea.Cmd {
	if !m.cfg.Animations.Reveal || m.revealing || !m.animatingReveals() {
		return nil
	}
	m.revealing = true
	return revealTickCmd()
}

// cyclePage loads the previous or next page document, wrapping at the ends.
func (m Model) cyclePage(step int) (tea.Model, tea.Cmd) {
	if len(m.summaries) == 0 {
		return m, nil
	}

	current := content.Canonical(m.slug)
	index := -1
	for i, summary := range m.summaries {
		if summary.Slug == current {
			index = i
			break
		}
	}
	if index == -1 {
		index = 0
	} else {
		index = (index + step + len(m.summaries)) % len(m.summaries)
	}

	next := m.summaries[index].Slug
	if next == current {
		return m, nil
	}
	return m, loadPageCmd(m.resolver, next)
}

// moveGalleryCursor shifts the cursor, clamped to the grid.
func (m *Model) moveGalleryCursor(step, count int) {
	if count == 0 {
		return
	}
	m.galleryCursor += step
	if m.galleryCursor < 0 {
		m.galleryCursor = 0
	}
	if m.galleryCursor >= count {
		m.galleryCursor = count - 1
	}
}

// galleryScrollRows derives how many grid rows are scrolled off the top so
// the cursor stays visible.
func (m *Model) galleryScrollRows() int {
	cols := galleryColumns(m.width)
	visible := galleryVisibleRows(m.height)
	cursorRow := m.galleryCursor / cols
	if cursorRow < visible {
		return 0
	}
	return cursorRow - visible + 1
}

// swapLightbox opens the neighboring image of the gallery the lightbox was
// opened from, resetting zoom the way any open does.
func (m Model) swapLightbox(step int) (tea.Model, tea.Cmd) {
	gallery := m.activeGallery()
	if gallery == nil || len(gallery.Images) < 2 {
		return m, nil
	}

	current := m.viewer.Source()
	index := -1
	for i, rel := range gallery.Images {
		if rel == current {
			index = i
			break
		}
	}
	if index == -1 {
		return m, nil
	}

	index = (index + step + len(gallery.Images)) % len(gallery.Images)
	m.galleryCursor = index
	m.openLightbox(gallery.Images[index])
	return m, nil
}

// requestHeroImage queues the hero banner raster when the page has one.
func (m *Model) requestHeroImage() {
	if m.loader == nil || m.page == nil || m.page.Hero == nil || m.page.Hero.Image == "" {
		return
	}
	abs := m.absImage(m.page.Hero.Image)
	if _, done := m.thumbs[abs]; done {
		return
	}
	m.loader.Submit(imagery.Request{
		Seq:  0,
		Path: abs,
		Cols: heroCols,
		Rows: heroRows,
	})
}

// pageErrorText renders a load failure for the banner, with a gentler
// wording for plain not-found slugs.
func pageErrorText(msg pageErrorMsg) string {
	var notFound *pagelighterrors.NotFoundError
	if errors.As(msg.err, &notFound) {
		return fmt.Sprintf("No page for slug %q. Run 'pagelight pages' to list available pages.", notFound.Slug)
	}
	return filepath.Base(msg.slug) + ": " + msg.err.Error()
}
