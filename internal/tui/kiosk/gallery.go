package kiosk

const (
	// thumbCols and thumbRows are the raster size of one thumbnail.
	thumbCols = 18
	thumbRows = 5

	// galleryCellW and galleryCellH are the outer cell size: the thumbnail
	// plus its border and caption line.
	galleryCellW = thumbCols + 2
	galleryCellH = thumbRows + 3

	// galleryMarginX is the left margin before the first column.
	galleryMarginX = 2
	// galleryGapX separates columns.
	galleryGapX = 1
	// galleryTopRows is the chrome above the grid: header block and the
	// gallery heading line. The view renders with the same constant so
	// mouse hit testing stays honest.
	galleryTopRows = 4
)

// galleryColumns returns how many thumbnail columns fit in the width.
func galleryColumns(width int) int {
	cols := (width - 2*galleryMarginX + galleryGapX) / (galleryCellW + galleryGapX)
	if cols < 1 {
		cols = 1
	}
	return cols
}

// galleryVisibleRows returns how many full cell rows fit in the height.
func galleryVisibleRows(height int) int {
	rows := (height - galleryTopRows - 2) / galleryCellH
	if rows < 1 {
		rows = 1
	}
	return rows
}

// galleryCellRegion returns the screen rectangle of the i-th visible cell,
// where i counts from the first cell of the first visible row.
func galleryCellRegion(i, width int) region {
	cols := galleryColumns(width)
	row := i / cols
	col := i % cols

	x0 := galleryMarginX + col*(galleryCellW+galleryGapX)
	y0 := galleryTopRows + row*galleryCellH
	return region{
		x0: x0,
		y0: y0,
		x1: x0 + galleryCellW - 1,
		y1: y0 + galleryCellH - 1,
	}
}

// galleryCellAt maps a screen coordinate to an image index, accounting for
// the rows scrolled off the top. The second return is false for clicks on
// margins, gaps, or past the last image.
func galleryCellAt(x, y, width, count, scrollRows int) (int, bool) {
	if y < galleryTopRows {
		return 0, false
	}
	cols := galleryColumns(width)

	row := (y - galleryTopRows) / galleryCellH
	relX := x - galleryMarginX
	if relX < 0 {
		return 0, false
	}
	col := relX / (galleryCellW + galleryGapX)
	if col >= cols {
		return 0, false
	}
	// Clicks in the gap between columns belong to no cell.
	if relX%(galleryCellW+galleryGapX) >= galleryCellW {
		return 0, false
	}

	index := (scrollRows+row)*cols + col
	if index < 0 || index >= count {
		return 0, false
	}
	return index, true
}
