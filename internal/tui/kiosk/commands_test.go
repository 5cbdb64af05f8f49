package kiosk

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagelight/pagelight/internal/content"
	"github.com/pagelight/pagelight/internal/imagery"
	pagelighterrors "github.com/pagelight/pagelight/pkg/errors"
)

const aboutDoc = `title: About
slug: about
sections:
  - type: text
    id: intro
    body: Hello there.
`

func TestLoadPageCmd(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "about.yaml"), []byte(aboutDoc), 0o644))
	resolver := content.NewResolver(dir, nil)

	msg := loadPageCmd(resolver, "about")()
	loaded, ok := msg.(pageLoadedMsg)
	require.True(t, ok, "got %T", msg)
	assert.Equal(t, "about", loaded.slug)
	assert.Equal(t, "About", loaded.page.Title)
}

func TestLoadPageCmdNotFound(t *testing.T) {
	t.Parallel()

	resolver := content.NewResolver(t.TempDir(), nil)

	msg := loadPageCmd(resolver, "missing")()
	failed, ok := msg.(pageErrorMsg)
	require.True(t, ok, "got %T", msg)
	assert.Equal(t, "missing", failed.slug)

	var notFound *pagelighterrors.NotFoundError
	assert.True(t, errors.As(failed.err, &notFound))
}

func TestListPagesCmd(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "about.yaml"), []byte(aboutDoc), 0o644))
	resolver := content.NewResolver(dir, nil)

	msg := listPagesCmd(resolver)()
	listed, ok := msg.(pagesListedMsg)
	require.True(t, ok, "got %T", msg)
	require.Len(t, listed.summaries, 1)
	assert.Equal(t, "about", listed.summaries[0].Slug)
}

func TestScanImagesCmd(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTestPNG(t, filepath.Join(dir, "press", "one.png"), 4, 4)

	msg := scanImagesCmd(dir)()
	scanned, ok := msg.(imagesScannedMsg)
	require.True(t, ok, "got %T", msg)
	assert.Equal(t, []string{filepath.Join("press", "one.png")}, scanned.paths)
}

func TestScanImagesCmdMissingDir(t *testing.T) {
	t.Parallel()

	msg := scanImagesCmd(filepath.Join(t.TempDir(), "nope"))()
	_, ok := msg.(imagesErrorMsg)
	assert.True(t, ok, "got %T", msg)
}

func TestResolveRevisionCmdOutsideRepo(t *testing.T) {
	t.Parallel()

	msg := resolveRevisionCmd(t.TempDir())()
	resolved, ok := msg.(revisionResolvedMsg)
	require.True(t, ok, "got %T", msg)
	assert.Equal(t, "untracked", resolved.stamp)
}

func TestAwaitFrameCmdNilLoader(t *testing.T) {
	t.Parallel()

	assert.Nil(t, awaitFrameCmd(nil))
}

func TestAwaitFrameCmdDeliversAndDrains(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "hero.png")
	writeTestPNG(t, path, 8, 8)

	loader := imagery.NewLoader(1, nil)
	loader.Start(context.Background())
	require.True(t, loader.Submit(imagery.Request{Seq: 1, Path: path, Cols: 4, Rows: 2, Scale: 1}))

	msg := awaitFrameCmd(loader)()
	ready, ok := msg.(frameReadyMsg)
	require.True(t, ok, "got %T", msg)
	assert.NoError(t, ready.result.Err)
	assert.Equal(t, 1, ready.result.Seq)
	assert.NotEmpty(t, ready.result.Frame)

	loader.Close()
	assert.Nil(t, awaitFrameCmd(loader)(), "a closed loader ends the pump")
}

func TestRevealTickCmd(t *testing.T) {
	t.Parallel()

	msg := revealTickCmd()()
	assert.IsType(t, revealTickMsg{}, msg)
}

func TestExpirePulseCmdCarriesSequence(t *testing.T) {
	t.Parallel()

	msg := expirePulseCmd(3)()
	expired, ok := msg.(pulseExpiredMsg)
	require.True(t, ok, "got %T", msg)
	assert.Equal(t, 3, expired.seq)
}

func TestTimerCmdsAreArmed(t *testing.T) {
	t.Parallel()

	assert.NotNil(t, heroTickCmd())
	assert.NotNil(t, clearFlashCmd(1))
}
