package scrollbar

import (
	"time"

	"github.com/forketyfork/architect/internal/ui"
)

// Fade timings for the idle-hide animation.
const (
	// FadeInDuration is how long the bar takes to appear after activity.
	FadeInDuration = 130 * time.Millisecond

	// FadeOutDuration is how long the bar takes to disappear once idle.
	FadeOutDuration = 220 * time.Millisecond

	// IdleHideDelay is how long the bar stays visible after the last
	// activity before fading out.
	IdleHideDelay = 1500 * time.Millisecond

	// AlphaEpsilon is the opacity below which rendering is suppressed
	// entirely.
	AlphaEpsilon = 0.001
)

// Phase is the visibility phase of the fade state machine.
type Phase int

const (
	PhaseHidden Phase = iota
	PhaseFadingIn
	PhaseVisible
	PhaseFadingOut
)

// State carries one scrollbar's animation and interaction state. Zero
// value is a hidden, idle scrollbar. Created with the owning session and
// destroyed with it.
type State struct {
	// Alpha is the current opacity in [0, 1].
	Alpha float64
	// Phase is the current visibility phase.
	Phase Phase

	// Hovered and Dragging pin the bar visible while set.
	Hovered  bool
	Dragging bool
	// DragGrabPx is the cursor-to-thumb-top distance captured at drag
	// start.
	DragGrabPx int

	phaseStart      time.Time
	phaseStartAlpha float64
	idleDeadline    time.Time
}

// NoteActivity registers scroll, hover, or drag activity: the idle
// deadline is pushed out and a hidden or fading-out bar starts fading in.
func (s *State) NoteActivity(now time.Time) {
	s.idleDeadline = now.Add(IdleHideDelay)
	switch s.Phase {
	case PhaseHidden, PhaseFadingOut:
		s.enterPhase(PhaseFadingIn, now)
	}
}

// StartDrag marks the thumb grabbed at the given cursor-to-thumb-top
// distance.
func (s *State) StartDrag(now time.Time, grabPx int) {
	s.Dragging = true
	s.DragGrabPx = grabPx
	s.NoteActivity(now)
}

// EndDrag releases the thumb.
func (s *State) EndDrag(now time.Time) {
	s.Dragging = false
	s.DragGrabPx = 0
	s.NoteActivity(now)
}

// SetHovered updates the hover flag, counting a newly hovered bar as
// activity.
func (s *State) SetHovered(now time.Time, hovered bool) {
	if hovered && !s.Hovered {
		s.NoteActivity(now)
	}
	s.Hovered = hovered
}

// Visible reports whether the bar should be drawn at all.
func (s *State) Visible() bool {
	return s.Alpha > AlphaEpsilon
}

// Update advances the fade animation to the given time. It returns true
// when Alpha changed, so callers can skip repaints for settled bars.
func (s *State) Update(now time.Time) bool {
	prev := s.Alpha

	switch s.Phase {
	case PhaseHidden:
		s.Alpha = 0

	case PhaseFadingIn:
		t := s.phaseProgress(now, FadeInDuration)
		s.Alpha = ui.Lerp(s.phaseStartAlpha, 1, ui.EaseOutCubic(t))
		if t >= 1 {
			s.enterPhase(PhaseVisible, now)
			s.Alpha = 1
		}

	case PhaseVisible:
		s.Alpha = 1
		if !s.Hovered && !s.Dragging && !now.Before(s.idleDeadline) {
			s.enterPhase(PhaseFadingOut, now)
		}

	case PhaseFadingOut:
		if s.Hovered || s.Dragging {
			s.enterPhase(PhaseFadingIn, now)
			break
		}
		t := s.phaseProgress(now, FadeOutDuration)
		s.Alpha = ui.Lerp(s.phaseStartAlpha, 0, ui.EaseInOutCubic(t))
		if t >= 1 {
			s.enterPhase(PhaseHidden, now)
			s.Alpha = 0
		}
	}

	return s.Alpha != prev
}

func (s *State) enterPhase(p Phase, now time.Time) {
	s.Phase = p
	s.phaseStart = now
	s.phaseStartAlpha = s.Alpha
}

func (s *State) phaseProgress(now time.Time, d time.Duration) float64 {
	if d <= 0 {
		return 1
	}
	elapsed := now.Sub(s.phaseStart)
	if elapsed <= 0 {
		return 0
	}
	return min(float64(elapsed)/float64(d), 1)
}
