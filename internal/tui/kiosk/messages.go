package kiosk

import (
	"github.com/pagelight/pagelight/internal/content"
	"github.com/pagelight/pagelight/internal/imagery"
)

// viewMode determines which screen to render
type viewMode int

const (
	modePage viewMode = iota
	modeGallery
	modeLightbox
	modeHelp
)

// Page Messages

// pageLoadedMsg indicates a page document was resolved and parsed
type pageLoadedMsg struct {
	slug string
	page *content.Page
}

// pageErrorMsg indicates a page document could not be loaded
type pageErrorMsg struct {
	slug string
	err  error
}

// pagesListedMsg carries the summaries used for page cycling
type pagesListedMsg struct {
	summaries []content.Summary
}

// Imagery Messages

// imagesScannedMsg carries the image tree for the gallery
type imagesScannedMsg struct {
	paths []string
}

// imagesErrorMsg indicates the image tree could not be scanned
type imagesErrorMsg struct {
	err error
}

// frameReadyMsg delivers one rasterized frame from the loader
type frameReadyMsg struct {
	result imagery.Result
}

// Revision Messages

// revisionResolvedMsg carries the content revision stamp for the header
type revisionResolvedMsg struct {
	stamp string
}

// Animation Messages

// revealTickMsg advances the staged section reveal
type revealTickMsg struct{}

// heroTickMsg advances the hero banner pulse
type heroTickMsg struct{}

// pulseExpiredMsg reverts a card pulse after its fixed delay. The sequence
// number keeps an old timer from clearing a newer pulse.
type pulseExpiredMsg struct {
	seq int
}

// Flash Messages

// flashClearMsg dismisses the current form flash. The sequence number keeps
// an old timer from clearing a newer flash.
type flashClearMsg struct {
	seq int
}

// Error Messages

// errorMsg indicates a general error occurred
type errorMsg struct {
	message string
}

// clearErrorMsg requests error banner dismissal
type clearErrorMsg struct{}
