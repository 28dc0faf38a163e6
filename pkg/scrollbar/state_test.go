package scrollbar

import (
	"math"
	"testing"
	"time"
)

func TestFadeLifecycle(t *testing.T) {
	var s State
	t0 := time.Unix(100, 0)

	if s.Visible() {
		t.Fatal("zero-value state should not be visible")
	}

	// Activity starts the fade-in; a full fade-in duration later the bar
	// is fully opaque.
	s.NoteActivity(t0)
	if s.Phase != PhaseFadingIn {
		t.Fatalf("Phase = %v after activity, want PhaseFadingIn", s.Phase)
	}
	s.Update(t0.Add(FadeInDuration))
	if math.Abs(s.Alpha-1) > 1e-9 {
		t.Fatalf("Alpha = %v after fade-in, want 1", s.Alpha)
	}
	if s.Phase != PhaseVisible {
		t.Fatalf("Phase = %v after fade-in, want PhaseVisible", s.Phase)
	}

	// Past the idle deadline the bar starts fading out, and a fade-out
	// duration later it is hidden.
	expired := t0.Add(FadeInDuration + IdleHideDelay + time.Millisecond)
	s.Update(expired)
	if s.Phase != PhaseFadingOut {
		t.Fatalf("Phase = %v past idle deadline, want PhaseFadingOut", s.Phase)
	}
	s.Update(expired.Add(FadeOutDuration))
	if s.Alpha != 0 || s.Phase != PhaseHidden {
		t.Fatalf("Alpha = %v, Phase = %v after fade-out, want 0/PhaseHidden", s.Alpha, s.Phase)
	}
}

func TestHoverPinsVisible(t *testing.T) {
	var s State
	t0 := time.Unix(100, 0)

	s.NoteActivity(t0)
	s.Update(t0.Add(FadeInDuration))
	s.SetHovered(t0.Add(FadeInDuration), true)

	// Arbitrarily far past the idle deadline, a hovered bar stays visible.
	far := t0.Add(time.Hour)
	s.Update(far)
	if s.Phase != PhaseVisible || s.Alpha != 1 {
		t.Fatalf("hovered bar: Phase = %v, Alpha = %v, want PhaseVisible/1", s.Phase, s.Alpha)
	}

	// Releasing hover restarts the idle countdown from the last activity
	// registered on hover start, which has long expired.
	s.SetHovered(far, false)
	s.Update(far.Add(time.Millisecond))
	if s.Phase != PhaseFadingOut {
		t.Fatalf("Phase = %v after hover release past deadline, want PhaseFadingOut", s.Phase)
	}
}

func TestActivityDuringFadeOutReverses(t *testing.T) {
	var s State
	t0 := time.Unix(100, 0)

	s.NoteActivity(t0)
	s.Update(t0.Add(FadeInDuration))
	s.Update(t0.Add(FadeInDuration + IdleHideDelay + time.Millisecond))

	mid := t0.Add(FadeInDuration + IdleHideDelay + time.Millisecond + FadeOutDuration/2)
	s.Update(mid)
	if s.Phase != PhaseFadingOut || s.Alpha <= 0 || s.Alpha >= 1 {
		t.Fatalf("mid fade-out: Phase = %v, Alpha = %v", s.Phase, s.Alpha)
	}

	// New activity mid-fade reverses into fade-in from the current alpha,
	// never snapping.
	before := s.Alpha
	s.NoteActivity(mid)
	if s.Phase != PhaseFadingIn {
		t.Fatalf("Phase = %v after activity mid fade-out, want PhaseFadingIn", s.Phase)
	}
	s.Update(mid.Add(time.Millisecond))
	if s.Alpha < before-1e-9 {
		t.Fatalf("Alpha dropped from %v to %v on reversal", before, s.Alpha)
	}
	s.Update(mid.Add(FadeInDuration))
	if s.Alpha != 1 {
		t.Fatalf("Alpha = %v after reversal fade-in, want 1", s.Alpha)
	}
}

func TestDragPinsVisible(t *testing.T) {
	var s State
	t0 := time.Unix(100, 0)

	s.StartDrag(t0, 7)
	if !s.Dragging || s.DragGrabPx != 7 {
		t.Fatalf("StartDrag: Dragging = %v, DragGrabPx = %d", s.Dragging, s.DragGrabPx)
	}
	s.Update(t0.Add(FadeInDuration))
	s.Update(t0.Add(time.Hour))
	if s.Phase != PhaseVisible {
		t.Fatalf("dragging bar: Phase = %v, want PhaseVisible", s.Phase)
	}

	s.EndDrag(t0.Add(time.Hour))
	if s.Dragging {
		t.Fatal("EndDrag left Dragging set")
	}
}
