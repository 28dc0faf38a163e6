package vt

import (
	uv "github.com/charmbracelet/ultraviolet"
)

// history stores rows that scrolled off the top of the active screen.
// Uses a ring buffer for O(1) insertions instead of O(n) slice
// reallocations. Each row carries a wrap flag: true means the row
// soft-wraps into the following row (no hard line break between them).
type history struct {
	// lines stores the scrollback rows in a ring buffer.
	lines []uv.Line
	// wrapped mirrors lines: wrapped[i] means lines[i] continues into the
	// next row.
	wrapped []bool
	// maxLines is the ring capacity.
	maxLines int
	// head is the physical index of the oldest retained row.
	head int
	// count is the number of retained rows.
	count int
}

func newHistory(maxLines int) *history {
	if maxLines <= 0 {
		maxLines = 1
	}
	return &history{
		lines:    make([]uv.Line, maxLines),
		wrapped:  make([]bool, maxLines),
		maxLines: maxLines,
	}
}

// push appends a row, overwriting the oldest once the ring is full. It
// returns true when an old row was trimmed.
func (h *history) push(line uv.Line, wraps bool) bool {
	// Copy to avoid aliasing the caller's screen row.
	lineCopy := make(uv.Line, len(line))
	copy(lineCopy, line)

	tail := (h.head + h.count) % h.maxLines
	h.lines[tail] = lineCopy
	h.wrapped[tail] = wraps

	if h.count < h.maxLines {
		h.count++
		return false
	}
	h.head = (h.head + 1) % h.maxLines
	return true
}

// line returns the row at logical index i (0 = oldest retained).
func (h *history) line(i int) (uv.Line, bool) {
	if i < 0 || i >= h.count {
		return nil, false
	}
	return h.lines[(h.head+i)%h.maxLines], true
}

// lineWraps reports the wrap flag of the row at logical index i.
func (h *history) lineWraps(i int) bool {
	if i < 0 || i >= h.count {
		return false
	}
	return h.wrapped[(h.head+i)%h.maxLines]
}

// len returns the number of retained rows.
func (h *history) len() int {
	return h.count
}

// clear drops all retained rows.
func (h *history) clear() {
	for i := range h.lines {
		h.lines[i] = nil
		h.wrapped[i] = false
	}
	h.head = 0
	h.count = 0
}
