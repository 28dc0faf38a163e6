package input

import (
	"image"
)

// Mapper converts window pixel coordinates into grid cell coordinates for
// one viewport. Division is floor division on pixel deltas; there is no
// rounding to the nearest cell.
type Mapper struct {
	// Bounds is the viewport rectangle in window pixels.
	Bounds image.Rectangle
	// CellW and CellH are the glyph cell dimensions in pixels.
	CellW, CellH int
	// PadX and PadY inset the drawable cell area from Bounds.
	PadX, PadY int
	// Cols and Rows bound the valid cell range.
	Cols, Rows int
}

func (m Mapper) valid() bool {
	return m.CellW > 0 && m.CellH > 0 && m.Cols > 0 && m.Rows > 0
}

// CellAt resolves a pixel position to a cell, failing if the point lies
// outside the padded drawable area or the cell range. Degenerate geometry
// (zero cell size) never resolves.
func (m Mapper) CellAt(x, y int) (col, row int, ok bool) {
	if !m.valid() {
		return 0, 0, false
	}
	dx := x - (m.Bounds.Min.X + m.PadX)
	dy := y - (m.Bounds.Min.Y + m.PadY)
	if dx < 0 || dy < 0 {
		return 0, 0, false
	}
	col = dx / m.CellW
	row = dy / m.CellH
	if col >= m.Cols || row >= m.Rows {
		return 0, 0, false
	}
	return col, row, true
}

// CellClamped resolves a pixel position to the nearest valid cell. Used
// while dragging, where positions outside the viewport still extend the
// selection toward the closest edge.
func (m Mapper) CellClamped(x, y int) (col, row int) {
	if !m.valid() {
		return 0, 0
	}
	dx := x - (m.Bounds.Min.X + m.PadX)
	dy := y - (m.Bounds.Min.Y + m.PadY)
	col = min(max(dx/m.CellW, 0), m.Cols-1)
	row = min(max(dy/m.CellH, 0), m.Rows-1)
	return col, row
}
