package kiosk

// lightboxSurface is the kiosk's rendering surface for the image viewer.
// The viewer drives it through the Surface and ScrollLocker interfaces; the
// model reads it back when painting. It lives behind a pointer so viewer
// mutations survive the value copies Bubble Tea makes of the model.
type lightboxSurface struct {
	src     string
	scale   float64
	visible bool
	locked  bool
}

func (s *lightboxSurface) SetImage(src string)     { s.src = src }
func (s *lightboxSurface) ClearImage()             { s.src = "" }
func (s *lightboxSurface) SetScale(scale float64)  { s.scale = scale }
func (s *lightboxSurface) Show()                   { s.visible = true }
func (s *lightboxSurface) Hide()                   { s.visible = false }
func (s *lightboxSurface) Lock()                   { s.locked = true }
func (s *lightboxSurface) Unlock()                 { s.locked = false }

// region is a rectangle in screen cells, inclusive on all edges.
type region struct {
	x0, y0, x1, y1 int
}

func (r region) contains(x, y int) bool {
	return x >= r.x0 && x <= r.x1 && y >= r.y0 && y <= r.y1
}

// lightboxFrameSize returns the cell grid the lightbox image is rasterized
// into for a given terminal size.
func lightboxFrameSize(width, height int) (cols, rows int) {
	cols = width - 2*lightboxMarginX
	rows = height - lightboxChromeRows
	if cols < 10 {
		cols = 10
	}
	if rows < 4 {
		rows = 4
	}
	return cols, rows
}

// lightboxImageRegion returns the screen rectangle the frame occupies. The
// view places the frame with the same constants, so mouse hit testing and
// painting always agree.
func lightboxImageRegion(width, height int) region {
	cols, rows := lightboxFrameSize(width, height)
	return region{
		x0: lightboxMarginX,
		y0: lightboxTopRows,
		x1: lightboxMarginX + cols - 1,
		y1: lightboxTopRows + rows - 1,
	}
}

const (
	// lightboxMarginX is the backdrop margin either side of the frame.
	lightboxMarginX = 4
	// lightboxTopRows is the header chrome above the frame.
	lightboxTopRows = 2
	// lightboxChromeRows is the total chrome around the frame: header,
	// caption line and footer.
	lightboxChromeRows = 7
)
