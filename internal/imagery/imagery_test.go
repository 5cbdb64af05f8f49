package imagery

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, path string, width, height int, fill color.RGBA) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, fill)
		}
	}

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	file, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(file, img))
	require.NoError(t, file.Close())
}

var red = color.RGBA{R: 200, G: 30, B: 30, A: 255}

func TestScanFiltersAndSorts(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writePNG(t, filepath.Join(root, "press", "two.png"), 2, 2, red)
	writePNG(t, filepath.Join(root, "press", "one.png"), 2, 2, red)
	writePNG(t, filepath.Join(root, "hero.png"), 2, 2, red)
	writePNG(t, filepath.Join(root, ".hidden", "secret.png"), 2, 2, red)
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0o644))

	paths, err := Scan(root)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"hero.png",
		filepath.Join("press", "one.png"),
		filepath.Join("press", "two.png"),
	}, paths)
}

func TestInspectReturnsDimensions(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "hero.png")
	writePNG(t, path, 12, 7, red)

	info, err := Inspect(path)
	require.NoError(t, err)
	assert.Equal(t, 12, info.Width)
	assert.Equal(t, 7, info.Height)
	assert.Equal(t, "png", info.Format)
	assert.Greater(t, info.Size, int64(0))
	assert.Nil(t, info.TakenAt, "generated PNGs carry no EXIF")
	assert.Empty(t, info.Camera)
}

func TestInspectRejectsNonImages(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("not pixels"), 0o644))

	_, err := Inspect(path)
	require.Error(t, err)
}

func TestEmbeddedThumbnailAbsent(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "hero.png")
	writePNG(t, path, 4, 4, red)

	_, err := EmbeddedThumbnail(path)
	require.Error(t, err, "plain PNGs have no EXIF thumbnail")
}

func TestRasterizeGridShape(t *testing.T) {
	t.Parallel()

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.SetRGBA(x, y, red)
		}
	}

	frame := Rasterize(img, 4, 2, 1.0)
	lines := strings.Split(frame, "\n")
	require.Len(t, lines, 2)
	for _, line := range lines {
		assert.Equal(t, 4, len([]rune(line)))
	}
	assert.Contains(t, frame, "▀")
}

func TestRasterizeLetterboxesTallImages(t *testing.T) {
	t.Parallel()

	img := image.NewRGBA(image.Rect(0, 0, 2, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 2; x++ {
			img.SetRGBA(x, y, red)
		}
	}

	frame := Rasterize(img, 8, 2, 1.0)
	lines := strings.Split(frame, "\n")
	require.Len(t, lines, 2)

	first := []rune(lines[0])
	require.Len(t, first, 8)
	assert.Equal(t, ' ', first[0], "letterbox margin on the left")
	assert.Equal(t, ' ', first[7], "letterbox margin on the right")
	assert.Contains(t, lines[0], "▀")
}

func TestRasterizeHandlesDegenerateInput(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", Rasterize(nil, 4, 2, 1.0))
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	assert.Equal(t, "", Rasterize(img, 0, 2, 1.0))
	assert.Equal(t, "", Rasterize(img, 4, 0, 1.0))

	// Sub-unit scales render like actual size.
	assert.NotEmpty(t, Rasterize(img, 2, 1, 0.25))
}

func TestZoomWindowCentersTheCrop(t *testing.T) {
	t.Parallel()

	window := zoomWindow(image.Rect(0, 0, 100, 60), 2.0)
	assert.Equal(t, image.Rect(25, 15, 75, 45), window)

	// Scale 1 covers the whole image.
	assert.Equal(t, image.Rect(0, 0, 100, 60), zoomWindow(image.Rect(0, 0, 100, 60), 1.0))

	// Extreme zoom never collapses below a pixel.
	tiny := zoomWindow(image.Rect(0, 0, 2, 2), 3.0)
	assert.GreaterOrEqual(t, tiny.Dx(), 1)
	assert.GreaterOrEqual(t, tiny.Dy(), 1)
}

func TestLoaderDeliversFrames(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "press.png")
	writePNG(t, path, 16, 16, red)

	loader := NewLoader(1, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	loader.Start(ctx)

	require.True(t, loader.Submit(Request{Seq: 1, Path: path, Cols: 8, Rows: 4, Scale: 1.0}))

	select {
	case result := <-loader.Results():
		require.NoError(t, result.Err)
		assert.Equal(t, 1, result.Seq)
		assert.NotEmpty(t, result.Frame)
		require.NotNil(t, result.Info)
		assert.Equal(t, 16, result.Info.Width)
	case <-time.After(5 * time.Second):
		t.Fatal("no result delivered")
	}

	loader.Close()
}

func TestLoaderReportsDecodeFailures(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "broken.png")
	require.NoError(t, os.WriteFile(path, []byte("not a png"), 0o644))

	loader := NewLoader(1, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	loader.Start(ctx)

	require.True(t, loader.Submit(Request{Seq: 7, Path: path, Cols: 4, Rows: 2, Scale: 1.0}))

	select {
	case result := <-loader.Results():
		require.Error(t, result.Err)
		assert.Equal(t, 7, result.Seq)
		assert.Empty(t, result.Frame)
	case <-time.After(5 * time.Second):
		t.Fatal("no result delivered")
	}

	loader.Close()
}
