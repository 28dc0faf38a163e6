package input

import (
	"image"
	"time"

	log "charm.land/log/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/ansi"

	"github.com/forketyfork/architect/internal/config"
	"github.com/forketyfork/architect/internal/grid"
	"github.com/forketyfork/architect/pkg/scrollbar"
)

// Cursor is the pointer shape hint the host should show.
type Cursor int

const (
	// CursorArrow is the default pointer, shown outside the cell area and
	// over the scrollbar.
	CursorArrow Cursor = iota
	// CursorText is the I-beam shown over selectable cells.
	CursorText
	// CursorPointer is the hand shown over a detected link.
	CursorPointer
)

// Options wires the engine to its session. Nil callbacks are ignored.
type Options struct {
	// SendInput writes bytes to the session's input stream, used for
	// mouse-tracking passthrough.
	SendInput func([]byte)
	// OpenURL opens a link target in the system browser.
	OpenURL func(string)
	// MarkDirty schedules a repaint of the owning viewport.
	MarkDirty func()
}

// Engine drives one session's viewport interaction. All methods must be
// called from the UI goroutine; every Grid call may observe concurrent
// PTY-side mutation and is treated as fallible.
type Engine struct {
	grid   grid.Grid
	state  *ViewState
	logger *log.Logger

	sendInput func([]byte)
	openURL   func(string)
	markDirty func()

	bounds       image.Rectangle
	cellW, cellH int
	padX, padY   int
	sbWidth      int

	// passButton is the button currently forwarded to a mouse-tracking
	// application, MouseNone when no passthrough press is outstanding.
	passButton uv.MouseButton

	lastTick time.Time
}

// New creates an engine bound to a grid surface.
func New(g grid.Grid, logger *log.Logger, opts Options) *Engine {
	if logger == nil {
		logger = log.Default()
	}
	noopBytes := func([]byte) {}
	noopString := func(string) {}
	noop := func() {}
	if opts.SendInput == nil {
		opts.SendInput = noopBytes
	}
	if opts.OpenURL == nil {
		opts.OpenURL = noopString
	}
	if opts.MarkDirty == nil {
		opts.MarkDirty = noop
	}
	return &Engine{
		grid:       g,
		state:      &ViewState{},
		logger:     logger,
		sendInput:  opts.SendInput,
		openURL:    opts.OpenURL,
		markDirty:  opts.MarkDirty,
		sbWidth:    config.DefaultScrollbarWidthPx,
		passButton: uv.MouseNone,
	}
}

// State exposes the interaction state for the renderer. Read-only from
// the caller's side.
func (e *Engine) State() *ViewState {
	return e.state
}

// SetBounds places the viewport rectangle in window pixels.
func (e *Engine) SetBounds(r image.Rectangle) {
	e.bounds = r
}

// SetCellGeometry sets the glyph cell size and the drawable-area padding.
func (e *Engine) SetCellGeometry(cellW, cellH, padX, padY int) {
	e.cellW, e.cellH = cellW, cellH
	e.padX, e.padY = padX, padY
}

// SetScrollbarWidth overrides the width of the scrollbar hit strip at the
// viewport's right edge.
func (e *Engine) SetScrollbarWidth(px int) {
	e.sbWidth = px
}

func (e *Engine) mapper() Mapper {
	return Mapper{
		Bounds: e.bounds,
		CellW:  e.cellW,
		CellH:  e.cellH,
		PadX:   e.padX,
		PadY:   e.padY,
		Cols:   e.grid.Cols(),
		Rows:   e.grid.Rows(),
	}
}

// Scrollbar returns the current scrollbar layout and metrics. The layout
// is nil when there is nothing to scroll.
func (e *Engine) Scrollbar() (*scrollbar.Layout, scrollbar.Metrics) {
	gm := e.grid.Metrics()
	m := scrollbar.Metrics{Total: gm.Total, Offset: gm.Offset, Viewport: gm.Viewport}
	w := min(e.sbWidth, e.bounds.Dx())
	strip := image.Rect(e.bounds.Max.X-w, e.bounds.Min.Y, e.bounds.Max.X, e.bounds.Max.Y)
	return scrollbar.ComputeLayout(strip, m), m
}

// pinAtCell resolves a cell to a pin in the space matching the current
// scroll position: viewport space while viewing scrollback, active space
// otherwise.
func (e *Engine) pinAtCell(col, row int) (grid.Pin, bool) {
	space := grid.SpaceActive
	if e.state.ViewingScrollback {
		space = grid.SpaceViewport
	}
	return e.grid.Pin(grid.Point{X: col, Y: row, Space: space})
}

// passthroughActive reports whether raw mouse events belong to the hosted
// application rather than this engine.
func (e *Engine) passthroughActive() bool {
	return e.grid.MouseTracking() && e.grid.AltScreen() && e.grid.AtBottom()
}

// sendMouse encodes one mouse report in the Grid's negotiated encoding
// and writes it to the session.
func (e *Engine) sendMouse(btn uv.MouseButton, col, row int, mod uv.KeyMod, motion, release bool) {
	b := ansi.EncodeMouseButton(btn, motion,
		mod.Contains(uv.ModShift),
		mod.Contains(uv.ModAlt),
		mod.Contains(uv.ModCtrl))
	var seq string
	if e.grid.MouseSGR() {
		seq = ansi.MouseSgr(b, col, row, release)
	} else {
		seq = ansi.MouseX10(b, col, row)
	}
	e.sendInput([]byte(seq))
}

// openModifierHeld reports whether the configured link-open modifier is
// part of mod.
func openModifierHeld(mod uv.KeyMod) bool {
	switch config.OpenModifier {
	case "alt":
		return mod.Contains(uv.ModAlt)
	case "super":
		return mod.Contains(uv.ModSuper)
	default:
		return mod.Contains(uv.ModCtrl)
	}
}

// HandleClick processes a button press. Returns true when the event was
// consumed by the engine.
func (e *Engine) HandleClick(now time.Time, ev ClickEvent) bool {
	st := e.state

	if ev.Button == uv.MouseLeft && st.Scrollbar.Visible() {
		layout, m := e.Scrollbar()
		switch layout.HitTest(ev.X, ev.Y) {
		case scrollbar.RegionThumb:
			e.stopInertia()
			st.Scrollbar.StartDrag(now, ev.Y-layout.Thumb.Min.Y)
			e.markDirty()
			return true
		case scrollbar.RegionTrack:
			e.stopInertia()
			e.grid.ScrollTo(scrollbar.OffsetForTrackClick(layout, m, ev.Y))
			st.ViewingScrollback = !e.grid.AtBottom()
			st.Scrollbar.NoteActivity(now)
			e.markDirty()
			return true
		}
	}

	col, row, ok := e.mapper().CellAt(ev.X, ev.Y)
	if !ok {
		return false
	}

	if e.passthroughActive() && !openModifierHeld(ev.Mod) {
		e.passButton = ev.Button
		e.sendMouse(ev.Button, col, row, ev.Mod, false, false)
		return true
	}

	if ev.Button != uv.MouseLeft {
		return false
	}

	p, ok := e.pinAtCell(col, row)
	if !ok {
		return false
	}

	if openModifierHeld(ev.Mod) && !st.Dragging {
		if span, ok := FindLinkAt(e.grid, p); ok {
			e.openURL(span.URL)
			return true
		}
	}

	switch {
	case ev.Count >= 3:
		e.selectLine(p)
	case ev.Count == 2:
		e.selectWord(p)
	default:
		e.beginSelection(p)
	}
	e.markDirty()
	return true
}

// HandleMotion processes pointer movement: scrollbar drag, selection
// drag with edge autoscroll, passthrough motion, or link hover.
func (e *Engine) HandleMotion(now time.Time, ev MotionEvent) bool {
	st := e.state

	if st.Scrollbar.Dragging {
		layout, m := e.Scrollbar()
		if layout != nil {
			e.grid.ScrollTo(scrollbar.OffsetForDrag(layout, m, ev.Y, st.Scrollbar.DragGrabPx))
			st.ViewingScrollback = !e.grid.AtBottom()
			st.Scrollbar.NoteActivity(now)
			e.markDirty()
		}
		return true
	}

	layout, _ := e.Scrollbar()
	st.Scrollbar.SetHovered(now, layout.HitTest(ev.X, ev.Y) != scrollbar.RegionNone)

	if e.passButton != uv.MouseNone && e.passthroughActive() {
		col, row := e.mapper().CellClamped(ev.X, ev.Y)
		e.sendMouse(e.passButton, col, row, ev.Mod, true, false)
		return true
	}

	if st.Pending || st.Dragging {
		col, row := e.mapper().CellClamped(ev.X, ev.Y)
		if p, ok := e.pinAtCell(col, row); ok {
			e.dragTo(p)
		}
		if st.Dragging {
			e.edgeAutoscroll(ev.Y)
		}
		e.markDirty()
		return true
	}

	if e.updateLinkHover(ev.X, ev.Y) {
		e.markDirty()
	}
	return false
}

// HandleRelease processes a button release. A release always terminates
// pending and dragging selections, wherever it lands.
func (e *Engine) HandleRelease(now time.Time, ev ReleaseEvent) bool {
	st := e.state

	if st.Scrollbar.Dragging {
		st.Scrollbar.EndDrag(now)
		e.markDirty()
		return true
	}

	if e.passButton != uv.MouseNone {
		col, row := e.mapper().CellClamped(ev.X, ev.Y)
		e.sendMouse(e.passButton, col, row, ev.Mod, false, true)
		e.passButton = uv.MouseNone
		return true
	}

	if st.Pending || st.Dragging {
		e.endSelection()
		e.markDirty()
		return true
	}
	return false
}

// updateLinkHover recomputes the hovered link span, reporting whether it
// changed.
func (e *Engine) updateLinkHover(x, y int) bool {
	st := e.state
	col, row, ok := e.mapper().CellAt(x, y)
	if !ok {
		return st.clearLink()
	}
	p, ok := e.pinAtCell(col, row)
	if !ok {
		return st.clearLink()
	}
	span, ok := FindLinkAt(e.grid, p)
	if !ok {
		return st.clearLink()
	}
	if st.HasLink && st.LinkURL == span.URL && st.LinkStart == span.Start && st.LinkEnd == span.End {
		return false
	}
	st.LinkURL = span.URL
	st.LinkStart = span.Start
	st.LinkEnd = span.End
	st.HasLink = true
	return true
}

// Update advances the time-based behaviors (inertia decay, scrollbar
// fade) to now. Returns true while an animation is live, so the host can
// keep ticking at full rate and drop to the idle rate otherwise.
func (e *Engine) Update(now time.Time) bool {
	var dt float64
	if !e.lastTick.IsZero() {
		d := now.Sub(e.lastTick)
		if d > config.MaxFrameDelta {
			d = config.MaxFrameDelta
		}
		if d > 0 {
			dt = d.Seconds()
		}
	}
	e.lastTick = now

	st := e.state
	dirty := false

	if dt > 0 && e.stepInertia(now, dt) {
		dirty = true
	}

	if !config.ScrollbarAutoHide {
		if _, m := e.Scrollbar(); m.MaxOffset() > 0 {
			st.Scrollbar.NoteActivity(now)
		}
	}
	if st.Scrollbar.Update(now) {
		dirty = true
	}
	if dirty {
		e.markDirty()
	}

	animating := st.Scrollbar.Phase == scrollbar.PhaseFadingIn ||
		st.Scrollbar.Phase == scrollbar.PhaseFadingOut ||
		(st.InertiaAllowed && st.Velocity != 0)
	return animating
}

// CursorHint reports the pointer shape for the given position.
func (e *Engine) CursorHint(x, y int) Cursor {
	st := e.state
	layout, _ := e.Scrollbar()
	if st.Scrollbar.Dragging || (st.Scrollbar.Visible() && layout.HitTest(x, y) != scrollbar.RegionNone) {
		return CursorArrow
	}
	col, row, ok := e.mapper().CellAt(x, y)
	if !ok {
		return CursorArrow
	}
	if st.HasLink {
		if p, ok := e.pinAtCell(col, row); ok && !p.Before(st.LinkStart) && !st.LinkEnd.Before(p) {
			return CursorPointer
		}
	}
	return CursorText
}
