package input

import (
	"sort"
	"strings"

	uv "github.com/charmbracelet/ultraviolet"
	"mvdan.cc/xurls/v2"

	"github.com/forketyfork/architect/internal/grid"
)

// urlPattern recognizes URLs with or without an explicit scheme.
var urlPattern = xurls.Relaxed()

// maxWrapWalk bounds how many soft-wrapped rows a logical line may span
// before link matching gives up on it.
const maxWrapWalk = 64

// LinkSpan is a detected hyperlink: its target and the inclusive pin
// range to highlight.
type LinkSpan struct {
	URL   string
	Start grid.Pin
	End   grid.Pin
}

// FindLinkAt resolves the link under p, if any. Cells carrying an
// explicit OSC 8 hyperlink win; otherwise the logical line containing p
// is reconstructed across its soft-wrap range and scanned for a URL
// covering the hovered cell. The matcher is re-invoked on click rather
// than cached, so a buffer mutation between hover and click cannot open
// a stale target.
func FindLinkAt(g grid.Grid, p grid.Pin) (LinkSpan, bool) {
	cell, ok := g.Cell(p)
	if !ok {
		return LinkSpan{}, false
	}
	if cell.Link.URL != "" {
		return LinkSpan{URL: cell.Link.URL, Start: p, End: p}, true
	}
	if cell.Width != 0 && strings.TrimSpace(cell.Content) == "" {
		return LinkSpan{}, false
	}

	up, down := wrapRange(g, p)
	cols := g.Cols()
	if cols <= 0 {
		return LinkSpan{}, false
	}

	// Reconstruct the logical line and record, per cell, the byte offset
	// where its codepoint begins. The trailing half of a wide character
	// shares its lead's offset; blank placeholder cells contribute no
	// bytes.
	var sb strings.Builder
	offsets := make([]int, 0, (up+down+1)*cols)
	for rd := -up; rd <= down; rd++ {
		rowPin, ok := g.PinAt(p, rd, 0)
		if !ok {
			return LinkSpan{}, false
		}
		row, ok := g.Row(rowPin)
		if !ok {
			return LinkSpan{}, false
		}
		for x := range cols {
			var c uv.Cell
			if x < len(row) {
				c = row[x]
			}
			switch {
			case c.Width == 0 && x > 0:
				offsets = append(offsets, offsets[len(offsets)-1])
			case c.Content == "":
				offsets = append(offsets, sb.Len())
			default:
				offsets = append(offsets, sb.Len())
				sb.WriteString(c.Content)
			}
		}
	}

	text := sb.String()
	hoverOff := offsets[up*cols+p.Col()]

	var span []int
	for _, m := range urlPattern.FindAllStringIndex(text, -1) {
		if m[0] <= hoverOff && hoverOff < m[1] {
			span = m
			break
		}
	}
	if span == nil {
		return LinkSpan{}, false
	}

	// Map the byte span back to cell indices: first cell starting at or
	// after the match start, last cell starting before the match end.
	startIdx := sort.Search(len(offsets), func(i int) bool { return offsets[i] >= span[0] })
	endIdx := sort.Search(len(offsets), func(i int) bool { return offsets[i] >= span[1] }) - 1
	if startIdx >= len(offsets) || endIdx < startIdx {
		return LinkSpan{}, false
	}

	start, ok := g.PinAt(p, startIdx/cols-up, startIdx%cols)
	if !ok {
		return LinkSpan{}, false
	}
	end, ok := g.PinAt(p, endIdx/cols-up, endIdx%cols)
	if !ok {
		return LinkSpan{}, false
	}
	return LinkSpan{URL: text[span[0]:span[1]], Start: start, End: end}, true
}

// wrapRange finds how far the logical line containing p extends: up rows
// of wrap-continuation above it, down rows it wraps into below.
func wrapRange(g grid.Grid, p grid.Pin) (up, down int) {
	for up < maxWrapWalk {
		prev, ok := g.PinAt(p, -(up + 1), 0)
		if !ok || !g.RowWrapped(prev) {
			break
		}
		up++
	}
	for down < maxWrapWalk {
		cur, ok := g.PinAt(p, down, 0)
		if !ok || !g.RowWrapped(cur) {
			break
		}
		if _, ok := g.PinAt(p, down+1, 0); !ok {
			break
		}
		down++
	}
	return up, down
}
