package input

import (
	"image"
	"testing"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/ansi"

	"github.com/forketyfork/architect/internal/config"
	"github.com/forketyfork/architect/internal/vt"
	"github.com/forketyfork/architect/pkg/scrollbar"
)

func newScrollEngine(history int) (*Engine, *vt.Buffer) {
	buf := vt.NewBuffer(20, 5, 10000)
	for range history {
		buf.Feed("scroll fodder\n")
	}
	e := New(buf, nil, Options{})
	e.SetBounds(image.Rect(0, 0, 20, 5))
	e.SetCellGeometry(1, 1, 0, 0)
	return e, buf
}

func TestWheelLocalScroll(t *testing.T) {
	now := time.Now()
	e, buf := newScrollEngine(30)
	st := e.State()
	top := buf.Metrics().Offset

	if !e.HandleWheel(now, WheelEvent{X: 3, Y: 2, Ticks: 3}) {
		t.Fatal("wheel not consumed")
	}
	if got := buf.Metrics().Offset; got != top-3 {
		t.Errorf("Offset = %d, want %d", got, top-3)
	}
	if !st.ViewingScrollback {
		t.Error("scrolling up must set ViewingScrollback")
	}
	if st.Velocity != 3*config.ScrollAccelPerLine {
		t.Errorf("Velocity = %v, want %v", st.Velocity, 3*config.ScrollAccelPerLine)
	}

	e.HandleWheel(now, WheelEvent{X: 3, Y: 2, Ticks: -3})
	if got := buf.Metrics().Offset; got != top {
		t.Errorf("Offset after scroll down = %d, want %d", got, top)
	}
	if st.ViewingScrollback {
		t.Error("back at bottom, ViewingScrollback should clear")
	}
}

func TestWheelVelocityClamped(t *testing.T) {
	now := time.Now()
	e, _ := newScrollEngine(30)
	for range 100 {
		e.HandleWheel(now, WheelEvent{Ticks: 20})
	}
	if v := e.State().Velocity; v != config.MaxScrollVelocity {
		t.Errorf("Velocity = %v, want clamped to %v", v, config.MaxScrollVelocity)
	}
}

func TestWheelTouchDisablesInertia(t *testing.T) {
	now := time.Now()
	e, _ := newScrollEngine(30)
	e.HandleWheel(now, WheelEvent{Lines: 2.5, Touch: true})
	st := e.State()
	if st.InertiaAllowed {
		t.Error("touch wheel must disable inertia")
	}
	if e.stepInertia(now, 1.0/60) {
		t.Error("inertia stepped while disallowed")
	}
}

func TestWheelPassthroughSGR(t *testing.T) {
	now := time.Now()
	var sent []byte
	buf := vt.NewBuffer(20, 5, 100)
	buf.SetMouseTracking(true, true)
	buf.SetAltScreen(true)
	e := New(buf, nil, Options{SendInput: func(b []byte) { sent = append(sent, b...) }})
	e.SetBounds(image.Rect(0, 0, 20, 5))
	e.SetCellGeometry(1, 1, 0, 0)

	if !e.HandleWheel(now, WheelEvent{X: 3, Y: 2, Ticks: 2}) {
		t.Fatal("wheel not consumed")
	}

	b := ansi.EncodeMouseButton(uv.MouseWheelUp, false, false, false, false)
	want := ansi.MouseSgr(b, 3, 2, false)
	if string(sent) != want+want {
		t.Errorf("sent %q, want two %q reports", sent, want)
	}
	if !buf.AtBottom() {
		t.Error("passthrough must not move the viewport")
	}
}

func TestWheelPassthroughX10(t *testing.T) {
	now := time.Now()
	var sent []byte
	buf := vt.NewBuffer(20, 5, 100)
	buf.SetMouseTracking(true, false)
	buf.SetAltScreen(true)
	e := New(buf, nil, Options{SendInput: func(b []byte) { sent = append(sent, b...) }})
	e.SetBounds(image.Rect(0, 0, 20, 5))
	e.SetCellGeometry(1, 1, 0, 0)

	e.HandleWheel(now, WheelEvent{X: 1, Y: 1, Ticks: -1})

	b := ansi.EncodeMouseButton(uv.MouseWheelDown, false, false, false, false)
	if want := ansi.MouseX10(b, 1, 1); string(sent) != want {
		t.Errorf("sent %q, want %q", sent, want)
	}
}

func TestWheelNoPassthroughWithoutAltScreen(t *testing.T) {
	now := time.Now()
	var sent []byte
	e, buf := newScrollEngine(30)
	buf.SetMouseTracking(true, true)
	e.sendInput = func(b []byte) { sent = append(sent, b...) }

	top := buf.Metrics().Offset
	e.HandleWheel(now, WheelEvent{Ticks: 1})
	if len(sent) != 0 {
		t.Errorf("reported %q to a windowed session", sent)
	}
	if got := buf.Metrics().Offset; got != top-1 {
		t.Error("windowed session should scroll locally")
	}
}

func TestInertiaFrameRateIndependence(t *testing.T) {
	now := time.Now()
	scrolled := func(steps int, dt float64) int {
		e, buf := newScrollEngine(400)
		st := e.State()
		st.Velocity = 5.0
		st.InertiaAllowed = true
		st.LastScroll = now
		top := buf.Metrics().Offset
		for range steps {
			e.stepInertia(now, dt)
		}
		return top - buf.Metrics().Offset
	}

	at60fps := scrolled(60, 1.0/60)
	oneStep := scrolled(1, 1.0)

	if diff := at60fps - oneStep; diff < -2 || diff > 2 {
		t.Errorf("60x(1/60s) scrolled %d rows, 1x(1s) scrolled %d; model is frame-rate dependent", at60fps, oneStep)
	}
	if at60fps < 30 {
		t.Errorf("scrolled only %d rows from velocity 5.0", at60fps)
	}
}

func TestInertiaSnapsToRest(t *testing.T) {
	now := time.Now()
	e, _ := newScrollEngine(100)
	st := e.State()
	st.Velocity = config.InertiaRestThreshold / 2
	st.Remainder = 0.7
	st.InertiaAllowed = true
	st.LastScroll = now

	if e.stepInertia(now, 1.0/60) {
		t.Error("sub-threshold velocity must not scroll")
	}
	if st.Velocity != 0 || st.Remainder != 0 {
		t.Errorf("velocity/remainder = %v/%v, want snapped to rest", st.Velocity, st.Remainder)
	}
}

func TestScrollbarClickStopsInertia(t *testing.T) {
	now := time.Now()
	buf := vt.NewBuffer(20, 30, 1000)
	for range 100 {
		buf.Feed("x\n")
	}
	e := New(buf, nil, Options{})
	e.SetBounds(image.Rect(0, 0, 200, 300))
	e.SetCellGeometry(10, 10, 0, 0)
	st := e.State()

	st.Scrollbar.NoteActivity(now)
	st.Scrollbar.Update(now.Add(scrollbar.FadeInDuration))
	if !st.Scrollbar.Visible() {
		t.Fatal("setup: scrollbar not visible")
	}

	st.Velocity = 3.0
	st.InertiaAllowed = true
	st.LastScroll = now

	// A click on the strip lands on either track or thumb; both stop
	// momentum and consume the event.
	if !e.HandleClick(now, leftClick(195, 40, 1)) {
		t.Fatal("scrollbar click not consumed")
	}
	if st.Velocity != 0 || st.Remainder != 0 || st.InertiaAllowed {
		t.Error("scrollbar interaction must kill momentum")
	}
}

func TestScrollbarDragLifecycle(t *testing.T) {
	now := time.Now()
	buf := vt.NewBuffer(20, 30, 1000)
	for range 200 {
		buf.Feed("x\n")
	}
	e := New(buf, nil, Options{})
	e.SetBounds(image.Rect(0, 0, 200, 300))
	e.SetCellGeometry(10, 10, 0, 0)
	st := e.State()

	st.Scrollbar.NoteActivity(now)
	st.Scrollbar.Update(now.Add(scrollbar.FadeInDuration))

	layout, _ := e.Scrollbar()
	if layout == nil {
		t.Fatal("setup: no scrollbar layout")
	}
	grabY := layout.Thumb.Min.Y + layout.Thumb.Dy()/2

	if !e.HandleClick(now, leftClick(layout.Thumb.Min.X+1, grabY, 1)) {
		t.Fatal("thumb click not consumed")
	}
	if !st.Scrollbar.Dragging {
		t.Fatal("thumb click did not start a drag")
	}

	before := buf.Metrics().Offset
	e.HandleMotion(now, MotionEvent{X: 195, Y: grabY - 60})
	if got := buf.Metrics().Offset; got >= before {
		t.Errorf("drag upward did not scroll up (offset %d -> %d)", before, got)
	}

	e.HandleRelease(now, ReleaseEvent{X: 195, Y: grabY - 60, Button: uv.MouseLeft})
	if st.Scrollbar.Dragging {
		t.Error("release did not end the scrollbar drag")
	}
}
