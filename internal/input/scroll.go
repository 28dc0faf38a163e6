package input

import (
	"math"
	"time"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/forketyfork/architect/internal/config"
)

// HandleWheel routes a scroll input. When the hosted application tracks
// the mouse, runs full-screen, and the view sits at the live screen, the
// wheel is encoded as synthetic mouse reports and written to the session
// instead of moving the viewport. Otherwise the viewport scrolls locally
// and the tick feeds the momentum model.
func (e *Engine) HandleWheel(now time.Time, ev WheelEvent) bool {
	lines := float64(ev.Ticks) * config.WheelLinesPerTick
	if ev.Ticks == 0 {
		lines = ev.Lines
	}
	if lines == 0 {
		return false
	}

	if e.passthroughActive() {
		e.passWheel(ev, lines)
		return true
	}

	rows := int(math.Round(lines))
	if rows != 0 {
		// Positive wheel input moves toward history.
		e.grid.Scroll(-rows)
	}
	st := e.state
	st.ViewingScrollback = !e.grid.AtBottom()
	st.Velocity = clampVelocity(st.Velocity + lines*config.ScrollAccelPerLine)
	st.LastScroll = now
	st.InertiaAllowed = config.InertiaEnabled && !ev.Touch
	st.Scrollbar.NoteActivity(now)
	e.markDirty()
	return true
}

func clampVelocity(v float64) float64 {
	return min(max(v, -config.MaxScrollVelocity), config.MaxScrollVelocity)
}

// passWheel writes one synthetic wheel report per unit of scroll
// magnitude at the hovered cell.
func (e *Engine) passWheel(ev WheelEvent, lines float64) {
	btn := uv.MouseWheelUp
	if lines < 0 {
		btn = uv.MouseWheelDown
	}
	col, row := e.mapper().CellClamped(ev.X, ev.Y)
	n := max(int(math.Abs(lines)+0.5), 1)
	for range n {
		e.sendMouse(btn, col, row, ev.Mod, false, false)
	}
}

// ScrollBy moves the viewport by rows from keyboard scrolling, positive
// toward history. Keyboard scrolls are deliberate jumps: momentum stops.
func (e *Engine) ScrollBy(now time.Time, rows int) {
	e.stopInertia()
	e.grid.Scroll(-rows)
	e.noteViewportMove(now)
}

// ScrollPage scrolls one viewport height minus one overlap row. dir is
// positive toward history.
func (e *Engine) ScrollPage(now time.Time, dir int) {
	page := max(e.grid.Metrics().Viewport-1, 1)
	e.ScrollBy(now, dir*page)
}

// ScrollToEdge jumps to the oldest retained row or back to the live
// screen.
func (e *Engine) ScrollToEdge(now time.Time, top bool) {
	e.stopInertia()
	if top {
		e.grid.ScrollTo(0)
	} else {
		e.grid.ScrollToBottom()
	}
	e.noteViewportMove(now)
}

func (e *Engine) noteViewportMove(now time.Time) {
	st := e.state
	st.ViewingScrollback = !e.grid.AtBottom()
	st.Scrollbar.NoteActivity(now)
	e.markDirty()
}

// stopInertia kills any momentum immediately. Scrollbar-driven absolute
// scrolls call this so the thumb position is never fought by decay.
func (e *Engine) stopInertia() {
	st := e.state
	st.Velocity = 0
	st.Remainder = 0
	st.InertiaAllowed = false
}

// stepInertia advances momentum scrolling by dt seconds. The scrolled
// amount is the closed-form integral of the exponentially decaying
// velocity over the step, so the total distance for a given wall-clock
// span is the same at any frame rate. Returns true if the viewport moved.
func (e *Engine) stepInertia(now time.Time, dt float64) bool {
	st := e.state
	if !st.InertiaAllowed || st.Velocity == 0 || st.LastScroll.IsZero() {
		return false
	}
	if math.Abs(st.Velocity) < config.InertiaRestThreshold {
		st.Velocity = 0
		st.Remainder = 0
		return false
	}

	decay := math.Exp(-config.InertiaDecayRate * dt)
	amount := st.Velocity*config.InertiaReferenceFPS*(1-decay)/config.InertiaDecayRate + st.Remainder
	rows := math.Trunc(amount)
	st.Remainder = amount - rows
	st.Velocity *= decay

	if rows == 0 {
		return false
	}
	e.grid.Scroll(int(-rows))
	st.ViewingScrollback = !e.grid.AtBottom()
	st.Scrollbar.NoteActivity(now)
	return true
}
