package kiosk

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pagelight/pagelight/internal/content"
	"github.com/pagelight/pagelight/internal/imagery"
)

// loadPageCmd resolves and parses one page document off the UI goroutine.
func loadPageCmd(resolver *content.Resolver, slug string) tea.Cmd {
	return func() tea.Msg {
		page, err := resolver.Resolve(slug)
		if err != nil {
			return pageErrorMsg{slug: slug, err: err}
		}
		return pageLoadedMsg{slug: slug, page: page}
	}
}

// listPagesCmd loads the page summaries used for left/right page cycling.
func listPagesCmd(resolver *content.Resolver) tea.Cmd {
	return func() tea.Msg {
		summaries, err := resolver.List()
		if err != nil {
			return errorMsg{message: err.Error()}
		}
		return pagesListedMsg{summaries: summaries}
	}
}

// scanImagesCmd walks the image tree so the gallery can tell a slow decode
// from a missing file.
func scanImagesCmd(dir string) tea.Cmd {
	return func() tea.Msg {
		paths, err := imagery.Scan(dir)
		if err != nil {
			return imagesErrorMsg{err: err}
		}
		return imagesScannedMsg{paths: paths}
	}
}

// resolveRevisionCmd reads the content git stamp for the header.
func resolveRevisionCmd(dir string) tea.Cmd {
	return func() tea.Msg {
		return revisionResolvedMsg{stamp: content.ResolveRevision(dir).String()}
	}
}

// awaitFrameCmd blocks on the loader's delivery channel and surfaces the
// next rasterized frame as a message. The update loop re-arms it after
// every delivery; a closed loader ends the pump.
func awaitFrameCmd(loader *imagery.Loader) tea.Cmd {
	if loader == nil {
		return nil
	}
	return func() tea.Msg {
		result, ok := <-loader.Results()
		if !ok {
			return nil
		}
		return frameReadyMsg{result: result}
	}
}

// revealTickCmd paces the section reveal animation.
func revealTickCmd() tea.Cmd {
	return tea.Tick(revealInterval, func(time.Time) tea.Msg {
		return revealTickMsg{}
	})
}

// heroTickCmd paces the hero accent loop.
func heroTickCmd() tea.Cmd {
	return tea.Tick(heroInterval, func(time.Time) tea.Msg {
		return heroTickMsg{}
	})
}

// expirePulseCmd reverts a card pulse after its fixed delay.
func expirePulseCmd(seq int) tea.Cmd {
	return tea.Tick(pulseDuration, func(time.Time) tea.Msg {
		return pulseExpiredMsg{seq: seq}
	})
}

// clearFlashCmd expires a form flash after a few seconds.
func clearFlashCmd(seq int) tea.Cmd {
	return tea.Tick(flashDuration, func(time.Time) tea.Msg {
		return flashClearMsg{seq: seq}
	})
}
