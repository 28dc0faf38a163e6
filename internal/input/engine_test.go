package input

import (
	"image"
	"testing"
	"time"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/forketyfork/architect/internal/vt"
	"github.com/forketyfork/architect/pkg/scrollbar"
)

func TestOpenModifierClickOpensLink(t *testing.T) {
	now := time.Now()
	var opened string
	buf := vt.NewBuffer(40, 4, 100)
	buf.Feed("visit https://example.com today\n")
	e := New(buf, nil, Options{OpenURL: func(u string) { opened = u }})
	e.SetBounds(image.Rect(0, 0, 40, 4))
	e.SetCellGeometry(1, 1, 0, 0)

	ev := ClickEvent{X: 10, Y: 0, Button: uv.MouseLeft, Mod: uv.ModCtrl, Count: 1}
	if !e.HandleClick(now, ev) {
		t.Fatal("modifier click not consumed")
	}
	if opened != "https://example.com" {
		t.Errorf("opened %q, want %q", opened, "https://example.com")
	}
	if e.State().Pending {
		t.Error("link open must not arm a selection")
	}
}

func TestOpenModifierClickOffLinkSelects(t *testing.T) {
	now := time.Now()
	var opened string
	buf := vt.NewBuffer(40, 4, 100)
	buf.Feed("plain words only\n")
	e := New(buf, nil, Options{OpenURL: func(u string) { opened = u }})
	e.SetBounds(image.Rect(0, 0, 40, 4))
	e.SetCellGeometry(1, 1, 0, 0)

	e.HandleClick(now, ClickEvent{X: 3, Y: 0, Button: uv.MouseLeft, Mod: uv.ModCtrl, Count: 1})
	if opened != "" {
		t.Errorf("opened %q with no link under the pointer", opened)
	}
	if !e.State().Pending {
		t.Error("click off a link should fall through to selection")
	}
}

func TestLinkHoverState(t *testing.T) {
	now := time.Now()
	e, _ := newTestEngine(40, 4, "visit https://example.com today")
	st := e.State()

	e.HandleMotion(now, MotionEvent{X: 10, Y: 0})
	if !st.HasLink || st.LinkURL != "https://example.com" {
		t.Fatalf("hover over URL: HasLink=%v URL=%q", st.HasLink, st.LinkURL)
	}

	if got := e.CursorHint(10, 0); got != CursorPointer {
		t.Errorf("CursorHint over link = %v, want pointer", got)
	}
	if got := e.CursorHint(2, 0); got != CursorText {
		t.Errorf("CursorHint over text = %v, want text I-beam", got)
	}
	if got := e.CursorHint(500, 500); got != CursorArrow {
		t.Errorf("CursorHint outside viewport = %v, want arrow", got)
	}

	e.HandleMotion(now, MotionEvent{X: 2, Y: 2})
	if st.HasLink {
		t.Error("hover off the link did not clear the span")
	}
}

func TestUpdateReportsAnimationDemand(t *testing.T) {
	now := time.Now()
	e, _ := newScrollEngine(30)
	st := e.State()

	if e.Update(now) {
		t.Error("idle engine should not request frames")
	}

	st.Scrollbar.NoteActivity(now)
	if !e.Update(now.Add(10 * time.Millisecond)) {
		t.Error("fading scrollbar should request frames")
	}

	// Settle the fade, let the idle deadline pass, then run the fade-out
	// to completion.
	e.Update(now.Add(scrollbar.FadeInDuration))
	idle := now.Add(scrollbar.IdleHideDelay + time.Second)
	e.Update(idle)
	settled := idle.Add(scrollbar.FadeOutDuration)
	e.Update(settled)
	if st.Scrollbar.Phase != scrollbar.PhaseHidden {
		t.Errorf("scrollbar phase = %v, want hidden after idle", st.Scrollbar.Phase)
	}
	if e.Update(settled.Add(time.Millisecond)) {
		t.Error("settled engine should not request frames")
	}
}
