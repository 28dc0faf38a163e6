// Package vt implements the terminal cell surface behind the grid.Grid
// capability: an active screen plus a scrollback ring, addressed through
// stable pins. It stores already-decoded text; escape-sequence parsing
// happens upstream.
package vt

import (
	"errors"
	"strings"
	"sync"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/mattn/go-runewidth"

	"github.com/forketyfork/architect/internal/grid"
)

// ErrStalePin is returned when a pin's row is no longer retained (trimmed
// from scrollback) or never existed.
var ErrStalePin = errors.New("vt: stale pin")

const tabWidth = 8

// Buffer is a Grid implementation backed by an active screen and a
// scrollback ring. All methods are safe for concurrent use: the PTY
// reader goroutine feeds while the UI goroutine reads.
type Buffer struct {
	mu sync.Mutex

	cols, rows int

	hist *history
	// screenBase is the absolute line id of screen row 0. Row ids are
	// assigned once and survive scrolling; history retains ids
	// [screenBase-hist.len(), screenBase).
	screenBase    int64
	screen        []uv.Line
	screenWrapped []bool

	// Feed cursor.
	cx, cy int
	link   uv.Link

	// scrollOffset is the number of rows the viewport sits above the live
	// screen. 0 means pinned to the bottom.
	scrollOffset int

	altScreen     bool
	mouseTracking bool
	mouseSGR      bool

	selAnchor grid.Pin
	selHead   grid.Pin
	selBlock  bool
	hasSel    bool
}

var _ grid.Grid = (*Buffer)(nil)

// NewBuffer creates a surface of cols x rows with the given scrollback
// capacity.
func NewBuffer(cols, rows, scrollback int) *Buffer {
	cols = max(cols, 1)
	rows = max(rows, 1)
	b := &Buffer{
		cols: cols,
		rows: rows,
		hist: newHistory(scrollback),
	}
	b.screen = make([]uv.Line, rows)
	b.screenWrapped = make([]bool, rows)
	for y := range b.screen {
		b.screen[y] = blankLine(cols)
	}
	return b
}

func blankLine(cols int) uv.Line {
	line := make(uv.Line, cols)
	for x := range line {
		line[x] = uv.Cell{Content: " ", Width: 1}
	}
	return line
}

// ---------------------------------------------------------------------------
// Feeding

// Feed writes decoded text at the cursor, soft-wrapping at the column
// width. Newlines mark hard breaks; carriage returns rewind the column.
func (b *Buffer) Feed(text string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, r := range text {
		switch r {
		case '\n':
			b.screenWrapped[b.cy] = false
			b.lineFeed()
			b.cx = 0
		case '\r':
			b.cx = 0
		case '\t':
			next := (b.cx/tabWidth + 1) * tabWidth
			for b.cx < next && b.cx < b.cols {
				b.screen[b.cy][b.cx] = uv.Cell{Content: " ", Width: 1}
				b.cx++
			}
		default:
			if r < 0x20 || r == 0x7f {
				continue
			}
			b.writeRune(r)
		}
	}
}

// SetLink attaches a hyperlink target to subsequently fed text, as an
// OSC 8 open does. An empty url ends the span.
func (b *Buffer) SetLink(url string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.link = uv.Link{URL: url}
}

// FeedLink feeds text with an OSC-8 style hyperlink target attached to
// every written cell.
func (b *Buffer) FeedLink(url, text string) {
	b.mu.Lock()
	b.link = uv.Link{URL: url}
	b.mu.Unlock()
	b.Feed(text)
	b.mu.Lock()
	b.link = uv.Link{}
	b.mu.Unlock()
}

func (b *Buffer) writeRune(r rune) {
	w := runewidth.RuneWidth(r)
	if w <= 0 {
		// Zero-width codepoints do not occupy a cell of their own.
		return
	}
	if b.cx+w > b.cols {
		b.screenWrapped[b.cy] = true
		b.lineFeed()
		b.cx = 0
	}
	b.screen[b.cy][b.cx] = uv.Cell{Content: string(r), Width: w, Link: b.link}
	if w == 2 && b.cx+1 < b.cols {
		// Trailing half of a wide character: zero-width placeholder.
		b.screen[b.cy][b.cx+1] = uv.Cell{Link: b.link}
	}
	b.cx += w
}

func (b *Buffer) lineFeed() {
	if b.cy < b.rows-1 {
		b.cy++
		return
	}
	// Top row leaves the screen. The alt screen has no scrollback.
	if !b.altScreen {
		trimmed := b.hist.push(b.screen[0], b.screenWrapped[0])
		if b.scrollOffset > 0 {
			// Keep the viewed content anchored while output arrives.
			b.scrollOffset = min(b.scrollOffset+1, b.hist.len())
		}
		if trimmed {
			b.scrollOffset = min(b.scrollOffset, b.hist.len())
		}
	}
	b.screenBase++
	copy(b.screen, b.screen[1:])
	copy(b.screenWrapped, b.screenWrapped[1:])
	b.screen[b.rows-1] = blankLine(b.cols)
	b.screenWrapped[b.rows-1] = false
}

// ClearHistory drops the scrollback (ED 3), keeping the active screen.
// The viewport snaps back to the live screen, pins into the dropped rows
// go stale, and a selection touching them is cleared.
func (b *Buffer) ClearHistory() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.hist.clear()
	b.scrollOffset = 0
	if b.hasSel {
		_, aok := b.rowByIDLocked(b.selAnchor.Line())
		_, hok := b.rowByIDLocked(b.selHead.Line())
		if !aok || !hok {
			b.clearSelectionLocked()
		}
	}
}

// Resize changes the screen dimensions. Rows are clipped or padded; no
// reflow of existing content is attempted (applications redraw on
// SIGWINCH).
func (b *Buffer) Resize(cols, rows int) {
	cols = max(cols, 1)
	rows = max(rows, 1)

	b.mu.Lock()
	defer b.mu.Unlock()

	if cols == b.cols && rows == b.rows {
		return
	}

	screen := make([]uv.Line, rows)
	wrapped := make([]bool, rows)
	for y := range screen {
		screen[y] = blankLine(cols)
		if y < b.rows {
			copy(screen[y], b.screen[y][:min(cols, b.cols)])
			wrapped[y] = b.screenWrapped[y]
		}
	}
	b.screen = screen
	b.screenWrapped = wrapped
	b.cols = cols
	b.rows = rows
	b.cx = min(b.cx, cols-1)
	b.cy = min(b.cy, rows-1)
	b.clearSelectionLocked()
}

// ---------------------------------------------------------------------------
// Modes

// SetAltScreen switches the full-screen flag. Entering the alt screen
// snaps the viewport to the live screen.
func (b *Buffer) SetAltScreen(on bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.altScreen = on
	if on {
		b.scrollOffset = 0
	}
}

// SetMouseTracking records the mouse tracking modes negotiated by the
// hosted application.
func (b *Buffer) SetMouseTracking(tracking, sgr bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.mouseTracking = tracking
	b.mouseSGR = sgr
}

// AltScreen implements grid.Grid.
func (b *Buffer) AltScreen() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.altScreen
}

// MouseTracking implements grid.Grid.
func (b *Buffer) MouseTracking() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.mouseTracking
}

// MouseSGR implements grid.Grid.
func (b *Buffer) MouseSGR() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.mouseSGR
}

// Cols implements grid.Grid.
func (b *Buffer) Cols() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cols
}

// Rows implements grid.Grid.
func (b *Buffer) Rows() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.rows
}

// ---------------------------------------------------------------------------
// Addressing

// firstIDLocked is the absolute id of the oldest retained row.
func (b *Buffer) firstIDLocked() int64 {
	return b.screenBase - int64(b.hist.len())
}

// viewTopLocked is the content index of the first visible row.
func (b *Buffer) viewTopLocked() int {
	return b.hist.len() - b.scrollOffset
}

// rowByIDLocked fetches the row with the given absolute id.
func (b *Buffer) rowByIDLocked(id int64) (uv.Line, bool) {
	if id >= b.screenBase {
		y := id - b.screenBase
		if y >= int64(b.rows) {
			return nil, false
		}
		return b.screen[y], true
	}
	return b.hist.line(int(id - b.firstIDLocked()))
}

func (b *Buffer) rowWrapsLocked(id int64) bool {
	if id >= b.screenBase {
		y := id - b.screenBase
		if y >= int64(b.rows) {
			return false
		}
		return b.screenWrapped[y]
	}
	return b.hist.lineWraps(int(id - b.firstIDLocked()))
}

// Pin implements grid.Grid.
func (b *Buffer) Pin(pt grid.Point) (grid.Pin, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if pt.X < 0 || pt.X >= b.cols || pt.Y < 0 || pt.Y >= b.rows {
		return grid.Pin{}, false
	}

	var id int64
	switch pt.Space {
	case grid.SpaceActive:
		id = b.screenBase + int64(pt.Y)
	case grid.SpaceViewport:
		ci := b.viewTopLocked() + pt.Y
		id = b.firstIDLocked() + int64(ci)
	default:
		return grid.Pin{}, false
	}
	return grid.NewPin(id, pt.X), true
}

// Locate implements grid.Grid.
func (b *Buffer) Locate(p grid.Pin) (grid.Point, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if p.Col() < 0 || p.Col() >= b.cols {
		return grid.Point{}, false
	}
	ci := p.Line() - b.firstIDLocked()
	if ci < 0 || ci >= int64(b.hist.len()+b.rows) {
		return grid.Point{}, false
	}
	y := int(ci) - b.viewTopLocked()
	if y < 0 || y >= b.rows {
		return grid.Point{}, false
	}
	return grid.Point{X: p.Col(), Y: y, Space: grid.SpaceViewport}, true
}

// Cell implements grid.Grid.
func (b *Buffer) Cell(p grid.Pin) (uv.Cell, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	row, ok := b.rowByIDLocked(p.Line())
	if !ok || p.Col() < 0 || p.Col() >= len(row) {
		return uv.Cell{}, false
	}
	return row[p.Col()], true
}

// Row implements grid.Grid.
func (b *Buffer) Row(p grid.Pin) (uv.Line, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	row, ok := b.rowByIDLocked(p.Line())
	if !ok {
		return nil, false
	}
	out := make(uv.Line, len(row))
	copy(out, row)
	return out, true
}

// RowWrapped implements grid.Grid.
func (b *Buffer) RowWrapped(p grid.Pin) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.rowWrapsLocked(p.Line())
}

// PinAt implements grid.Grid.
func (b *Buffer) PinAt(p grid.Pin, rowDelta, col int) (grid.Pin, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if col < 0 || col >= b.cols {
		return grid.Pin{}, false
	}
	id := p.Line() + int64(rowDelta)
	if id < b.firstIDLocked() || id >= b.screenBase+int64(b.rows) {
		return grid.Pin{}, false
	}
	return grid.NewPin(id, col), true
}

// ---------------------------------------------------------------------------
// Scrolling

// Metrics implements grid.Grid.
func (b *Buffer) Metrics() grid.Metrics {
	b.mu.Lock()
	defer b.mu.Unlock()
	return grid.Metrics{
		Total:    b.hist.len() + b.rows,
		Offset:   b.viewTopLocked(),
		Viewport: b.rows,
	}
}

// Scroll implements grid.Grid.
func (b *Buffer) Scroll(rows int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.scrollOffset = min(max(b.scrollOffset-rows, 0), b.hist.len())
}

// ScrollTo implements grid.Grid.
func (b *Buffer) ScrollTo(offset int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	offset = min(max(offset, 0), b.hist.len())
	b.scrollOffset = b.hist.len() - offset
}

// ScrollToBottom implements grid.Grid.
func (b *Buffer) ScrollToBottom() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.scrollOffset = 0
}

// AtBottom implements grid.Grid.
func (b *Buffer) AtBottom() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.scrollOffset == 0
}

// ---------------------------------------------------------------------------
// Selection

// Select implements grid.Grid.
func (b *Buffer) Select(anchor, head grid.Pin, block bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, p := range []grid.Pin{anchor, head} {
		if _, ok := b.rowByIDLocked(p.Line()); !ok {
			return ErrStalePin
		}
		if p.Col() < 0 || p.Col() >= b.cols {
			return ErrStalePin
		}
	}
	b.selAnchor = anchor
	b.selHead = head
	b.selBlock = block
	b.hasSel = true
	return nil
}

// ClearSelection implements grid.Grid.
func (b *Buffer) ClearSelection() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.clearSelectionLocked()
}

func (b *Buffer) clearSelectionLocked() {
	b.selAnchor = grid.Pin{}
	b.selHead = grid.Pin{}
	b.hasSel = false
	b.selBlock = false
}

// SelectionRange returns the normalized selection endpoints (start before
// end in reading order).
func (b *Buffer) SelectionRange() (start, end grid.Pin, block, ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.hasSel {
		return grid.Pin{}, grid.Pin{}, false, false
	}
	start, end = b.selAnchor, b.selHead
	if end.Before(start) {
		start, end = end, start
	}
	return start, end, b.selBlock, true
}

// SelectionContains reports whether the cell under p is selected. Used by
// the renderer to paint the highlight.
func (b *Buffer) SelectionContains(p grid.Pin) bool {
	start, end, block, ok := b.SelectionRange()
	if !ok {
		return false
	}
	if p.Line() < start.Line() || p.Line() > end.Line() {
		return false
	}
	if block {
		lo, hi := start.Col(), end.Col()
		if lo > hi {
			lo, hi = hi, lo
		}
		return p.Col() >= lo && p.Col() <= hi
	}
	if p.Line() == start.Line() && p.Col() < start.Col() {
		return false
	}
	if p.Line() == end.Line() && p.Col() > end.Col() {
		return false
	}
	return true
}

// SelectionText implements grid.Grid.
func (b *Buffer) SelectionText() string {
	start, end, block, ok := b.SelectionRange()
	if !ok {
		return ""
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	var sb strings.Builder
	for id := start.Line(); id <= end.Line(); id++ {
		row, ok := b.rowByIDLocked(id)
		if !ok {
			continue
		}

		lo, hi := 0, b.cols-1
		if block {
			lo, hi = start.Col(), end.Col()
			if lo > hi {
				lo, hi = hi, lo
			}
		} else {
			if id == start.Line() {
				lo = start.Col()
			}
			if id == end.Line() {
				hi = end.Col()
			}
		}

		var seg strings.Builder
		for x := lo; x <= hi && x < len(row); x++ {
			if row[x].Width == 0 {
				continue // trailing half of a wide character
			}
			if row[x].Content == "" {
				seg.WriteByte(' ')
				continue
			}
			seg.WriteString(row[x].Content)
		}
		sb.WriteString(strings.TrimRight(seg.String(), " "))

		if id < end.Line() {
			if block || !b.rowWrapsLocked(id) {
				sb.WriteByte('\n')
			}
		}
	}
	return sb.String()
}

// ---------------------------------------------------------------------------
// Rendering access

// ViewportLine returns a copy of the y-th visible row.
func (b *Buffer) ViewportLine(y int) uv.Line {
	b.mu.Lock()
	defer b.mu.Unlock()

	if y < 0 || y >= b.rows {
		return nil
	}
	id := b.firstIDLocked() + int64(b.viewTopLocked()+y)
	row, ok := b.rowByIDLocked(id)
	if !ok {
		return nil
	}
	out := make(uv.Line, len(row))
	copy(out, row)
	return out
}
