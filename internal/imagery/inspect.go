package imagery

import (
	"bytes"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"os"
	"time"

	"github.com/rwcarlsen/goexif/exif"

	pagelighterrors "github.com/pagelight/pagelight/pkg/errors"
)

// Info holds image metadata gathered without decoding the full pixels.
type Info struct {
	Path    string
	Format  string
	Width   int
	Height  int
	Size    int64
	ModTime time.Time

	// EXIF fields, present only when the file carries them.
	TakenAt *time.Time
	Camera  string
}

// Inspect reads dimensions and metadata for one image file. EXIF data is
// optional; its absence is not an error.
func Inspect(path string) (*Info, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, pagelighterrors.NewRenderError("inspect", err)
	}
	defer file.Close()

	config, format, err := image.DecodeConfig(file)
	if err != nil {
		return nil, pagelighterrors.NewRenderError("inspect", err)
	}

	stat, err := file.Stat()
	if err != nil {
		return nil, pagelighterrors.NewRenderError("inspect", err)
	}

	info := &Info{
		Path:    path,
		Format:  format,
		Width:   config.Width,
		Height:  config.Height,
		Size:    stat.Size(),
		ModTime: stat.ModTime(),
	}

	if _, err := file.Seek(0, 0); err != nil {
		return info, nil
	}
	exifData, err := exif.Decode(file)
	if err != nil {
		return info, nil
	}

	if taken, err := exifData.DateTime(); err == nil {
		info.TakenAt = &taken
	}
	if tag, err := exifData.Get(exif.Model); err == nil {
		if model, err := tag.StringVal(); err == nil {
			info.Camera = model
		}
	}

	return info, nil
}

// Load decodes the full image.
func Load(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, pagelighterrors.NewRenderError("load", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, pagelighterrors.NewRenderError("load", err)
	}
	return img, nil
}

// EmbeddedThumbnail extracts the EXIF thumbnail when one is present, which
// is far cheaper than rescaling the full image for a grid cell.
func EmbeddedThumbnail(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, pagelighterrors.NewRenderError("thumbnail", err)
	}
	defer file.Close()

	exifData, err := exif.Decode(file)
	if err != nil {
		return nil, pagelighterrors.NewRenderError("thumbnail", err)
	}

	thumbBytes, err := exifData.JpegThumbnail()
	if err != nil {
		return nil, pagelighterrors.NewRenderError("thumbnail", err)
	}

	img, _, err := image.Decode(bytes.NewReader(thumbBytes))
	if err != nil {
		return nil, pagelighterrors.NewRenderError("thumbnail", err)
	}
	return img, nil
}
