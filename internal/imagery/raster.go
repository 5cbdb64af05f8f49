package imagery

import (
	"fmt"
	"image"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/image/draw"
)

// Rasterize renders an image into a cols by rows cell grid using half
// blocks, packing two pixels into every cell. scale >= 1 zooms into the
// centered 1/scale window of the image, the terminal counterpart of a
// centered zoom transform; no panning is supported. The result is
// letterboxed to preserve the image's aspect ratio.
func Rasterize(img image.Image, cols, rows int, scale float64) string {
	if img == nil || cols <= 0 || rows <= 0 {
		return ""
	}
	if scale < 1 {
		scale = 1
	}

	srcRect := zoomWindow(img.Bounds(), scale)
	pixelW, pixelH := cols, rows*2

	fit := math.Min(
		float64(pixelW)/float64(srcRect.Dx()),
		float64(pixelH)/float64(srcRect.Dy()),
	)
	dstW := int(float64(srcRect.Dx()) * fit)
	dstH := int(float64(srcRect.Dy()) * fit)
	if dstW < 1 {
		dstW = 1
	}
	if dstH < 1 {
		dstH = 1
	}
	offsetX := (pixelW - dstW) / 2
	offsetY := (pixelH - dstH) / 2

	dst := image.NewRGBA(image.Rect(0, 0, pixelW, pixelH))
	target := image.Rect(offsetX, offsetY, offsetX+dstW, offsetY+dstH)
	draw.ApproxBiLinear.Scale(dst, target, img, srcRect, draw.Over, nil)

	var b strings.Builder
	for row := 0; row < rows; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		for col := 0; col < cols; col++ {
			top := dst.RGBAAt(col, row*2)
			bottom := dst.RGBAAt(col, row*2+1)
			b.WriteString(renderCell(top.A > 0, bottom.A > 0,
				hexColor(top.R, top.G, top.B), hexColor(bottom.R, bottom.G, bottom.B)))
		}
	}
	return b.String()
}

// zoomWindow computes the centered source window for a zoom factor.
func zoomWindow(bounds image.Rectangle, scale float64) image.Rectangle {
	width := float64(bounds.Dx()) / scale
	height := float64(bounds.Dy()) / scale
	centerX := float64(bounds.Min.X) + float64(bounds.Dx())/2
	centerY := float64(bounds.Min.Y) + float64(bounds.Dy())/2

	window := image.Rect(
		int(centerX-width/2), int(centerY-height/2),
		int(centerX+width/2), int(centerY+height/2),
	)
	if window.Dx() < 1 || window.Dy() < 1 {
		return bounds
	}
	return window
}

func renderCell(hasTop, hasBottom bool, topColor, bottomColor string) string {
	switch {
	case hasTop && hasBottom:
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color(topColor)).
			Background(lipgloss.Color(bottomColor)).
			Render("▀")
	case hasTop:
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color(topColor)).
			Render("▀")
	case hasBottom:
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color(bottomColor)).
			Render("▄")
	default:
		return " "
	}
}

func hexColor(r, g, b uint8) string {
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}
