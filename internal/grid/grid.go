// Package grid defines the terminal surface capability consumed by the
// interaction engine. The engine never owns cell storage; it addresses the
// surface through Points (coordinate-space positions) and Pins (stable cell
// handles) and asks the Grid to scroll, select, and report metrics.
package grid

import (
	uv "github.com/charmbracelet/ultraviolet"
)

// Space identifies the coordinate system a Point is expressed in.
type Space int

const (
	// SpaceActive addresses the live, bottom-anchored screen. Row 0 is the
	// top row of the active screen regardless of scroll position.
	SpaceActive Space = iota

	// SpaceViewport addresses whatever the viewport currently shows,
	// including scrollback. Row 0 is the top visible row.
	SpaceViewport
)

// Point is a logical cell position in either the active or viewport space.
type Point struct {
	X, Y  int
	Space Space
}

// Pin is a stable, comparable handle addressing one cell within a Grid.
// A Pin remains valid across viewport scrolling, but its point-space
// mapping may change after that scrolling, and it becomes unresolvable
// once the underlying row is trimmed from scrollback.
//
// Only Grid implementations construct Pins or look inside them. Engine
// code passes Pins back to Grid operations and compares them by value.
type Pin struct {
	line int64
	col  int
}

// NewPin builds a Pin from an absolute line id and a column. Intended for
// Grid implementations only.
func NewPin(line int64, col int) Pin {
	return Pin{line: line, col: col}
}

// Line returns the absolute line id of the pinned cell.
func (p Pin) Line() int64 { return p.line }

// Col returns the column of the pinned cell.
func (p Pin) Col() int { return p.col }

// Before reports whether p addresses a cell strictly before q in reading
// order.
func (p Pin) Before(q Pin) bool {
	if p.line != q.line {
		return p.line < q.line
	}
	return p.col < q.col
}

// Metrics describes the scrollable extent of a Grid in row units.
type Metrics struct {
	// Total is the number of content rows: scrollback plus active screen.
	Total int
	// Offset is the index of the first visible row, measured from the top
	// of the retained content. Always within [0, MaxOffset].
	Offset int
	// Viewport is the number of visible rows.
	Viewport int
}

// MaxOffset returns the largest valid Offset.
func (m Metrics) MaxOffset() int {
	return max(0, m.Total-m.Viewport)
}

// AtBottom reports whether the viewport is pinned to the live screen.
func (m Metrics) AtBottom() bool {
	return m.Offset >= m.MaxOffset()
}

// Grid is the addressable terminal surface the interaction engine drives.
//
// Every resolving call may fail: the surface is typically mutated by a
// PTY-reader goroutine, so a Pin obtained one event ago may already be
// stale. Callers must treat a false/error result as "no target" and move
// on rather than retry.
type Grid interface {
	// Pin resolves a logical point to a stable handle. It fails if the
	// point lies outside the surface.
	Pin(pt Point) (Pin, bool)

	// Locate returns the viewport-space position of a pin, failing if the
	// pinned row is not currently visible or no longer retained.
	Locate(p Pin) (Point, bool)

	// Cell reads the cell under a pin. The returned cell is a copy.
	Cell(p Pin) (uv.Cell, bool)

	// Row returns the full row of cells containing p, columns 0..Cols()-1.
	Row(p Pin) (uv.Line, bool)

	// RowWrapped reports whether the row containing p soft-wraps into the
	// following row (no hard line break between them).
	RowWrapped(p Pin) bool

	// PinAt resolves the cell rowDelta rows away from p at the given
	// column. It fails if the target row is not retained.
	PinAt(p Pin, rowDelta, col int) (Pin, bool)

	// Scroll moves the viewport by rows. Positive moves toward the live
	// screen, negative into history. The result is clamped.
	Scroll(rows int)

	// ScrollTo moves the viewport so its first visible row is offset,
	// clamped to [0, MaxOffset].
	ScrollTo(offset int)

	// ScrollToBottom pins the viewport back to the live screen.
	ScrollToBottom()

	// AtBottom reports whether the viewport shows the live screen.
	AtBottom() bool

	// AltScreen reports whether the application switched to the alternate
	// (full-screen) buffer.
	AltScreen() bool

	// Metrics returns the scrollbar metrics in row units.
	Metrics() Metrics

	// Select replaces the surface's selection with [anchor, head]. Both
	// endpoints are inclusive. It returns an error if either pin is no
	// longer resolvable.
	Select(anchor, head Pin, block bool) error

	// ClearSelection removes any selection.
	ClearSelection()

	// SelectionText reconstructs the selected text. Soft-wrapped row
	// boundaries join without a separator; hard breaks contribute "\n".
	SelectionText() string

	// MouseTracking reports whether the hosted application requested any
	// mouse tracking mode (DECSET 1000-1003).
	MouseTracking() bool

	// MouseSGR reports whether SGR extended mouse encoding (DECSET 1006)
	// was negotiated.
	MouseSGR() bool

	// Cols returns the surface width in columns.
	Cols() int

	// Rows returns the active screen height in rows.
	Rows() int
}
