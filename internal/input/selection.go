package input

import (
	"unicode/utf8"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/forketyfork/architect/internal/config"
	"github.com/forketyfork/architect/internal/grid"
)

// isWordRune reports whether r belongs to a double-click word. Only ASCII
// alphanumerics and underscore count; non-ASCII codepoints never do.
func isWordRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= 'A' && r <= 'Z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == '_':
		return true
	}
	return false
}

// rowRunes flattens a row into one rune per cell. The trailing half of a
// wide character inherits the lead rune so word scans treat the pair as
// one unit; blank cells read as spaces.
func rowRunes(row uv.Line) []rune {
	runes := make([]rune, len(row))
	for i, c := range row {
		if c.Width == 0 && i > 0 {
			runes[i] = runes[i-1]
			continue
		}
		r := ' '
		if c.Content != "" {
			r, _ = utf8.DecodeRuneInString(c.Content)
		}
		runes[i] = r
	}
	return runes
}

// beginSelection arms a single-click selection: the prior Grid selection
// is dropped and the anchor waits for motion.
func (e *Engine) beginSelection(p grid.Pin) {
	e.grid.ClearSelection()
	st := e.state
	st.Anchor = p
	st.HasAnchor = true
	st.Pending = true
	st.Dragging = false
}

// selectWord selects the run of word runes around p within its row. A
// click on a non-word cell selects nothing.
func (e *Engine) selectWord(p grid.Pin) {
	e.state.clearSelection()
	e.grid.ClearSelection()

	row, ok := e.grid.Row(p)
	if !ok {
		return
	}
	runes := rowRunes(row)
	col := p.Col()
	if col < 0 || col >= len(runes) || !isWordRune(runes[col]) {
		return
	}

	start, end := col, col
	for start > 0 && isWordRune(runes[start-1]) {
		start--
	}
	for end+1 < len(runes) && isWordRune(runes[end+1]) {
		end++
	}

	a, ok := e.grid.PinAt(p, 0, start)
	if !ok {
		return
	}
	h, ok := e.grid.PinAt(p, 0, end)
	if !ok {
		return
	}
	if err := e.grid.Select(a, h, false); err != nil {
		e.logger.Debug("word select failed", "err", err)
	}
}

// selectLine selects the full row under p regardless of click column.
func (e *Engine) selectLine(p grid.Pin) {
	e.state.clearSelection()
	e.grid.ClearSelection()

	a, ok := e.grid.PinAt(p, 0, 0)
	if !ok {
		return
	}
	h, ok := e.grid.PinAt(p, 0, e.grid.Cols()-1)
	if !ok {
		return
	}
	if err := e.grid.Select(a, h, false); err != nil {
		e.logger.Debug("line select failed", "err", err)
	}
}

// dragTo extends the selection toward p. A pending selection becomes a
// drag once the pointer leaves the anchor cell. Failed Grid selects leave
// the previous selection in place.
func (e *Engine) dragTo(p grid.Pin) {
	st := e.state
	if st.Pending {
		if p == st.Anchor {
			return
		}
		st.Pending = false
		st.Dragging = true
	}
	if !st.Dragging || !st.HasAnchor {
		return
	}
	if err := e.grid.Select(st.Anchor, p, false); err != nil {
		e.logger.Debug("selection update failed", "err", err)
	}
}

// endSelection terminates a pending or dragging selection. The Grid's own
// selection is kept so the highlight survives the release.
func (e *Engine) endSelection() {
	e.state.clearSelection()
}

// edgeAutoscroll scrolls one row per motion event while a drag hovers
// near the viewport's top or bottom edge. Motion-driven rather than
// time-driven, and independent of the inertia controller.
func (e *Engine) edgeAutoscroll(y int) {
	// Shrink the threshold on short viewports so the two bands cannot
	// overlap.
	thr := min(config.EdgeAutoscrollThresholdPx, e.bounds.Dy()/4)
	if thr <= 0 {
		return
	}
	switch {
	case y < e.bounds.Min.Y+thr:
		e.grid.Scroll(-1)
	case y > e.bounds.Max.Y-thr:
		e.grid.Scroll(1)
	default:
		return
	}
	e.state.ViewingScrollback = !e.grid.AtBottom()
}
