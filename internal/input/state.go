package input

import (
	"time"

	"github.com/forketyfork/architect/internal/grid"
	"github.com/forketyfork/architect/pkg/scrollbar"
)

// ViewState is the per-session interaction state. The renderer reads it to
// draw the selection highlight, link underline, and scrollbar; only the
// Engine writes it.
//
// Invariants: Dragging implies !Pending; Pending implies HasAnchor;
// inertia decay only runs while InertiaAllowed.
type ViewState struct {
	// Selection lifecycle.
	Anchor    grid.Pin
	HasAnchor bool
	Pending   bool
	Dragging  bool

	// Hovered link span, valid while HasLink.
	LinkURL   string
	LinkStart grid.Pin
	LinkEnd   grid.Pin
	HasLink   bool

	// ViewingScrollback is true while the viewport is scrolled away from
	// the live screen.
	ViewingScrollback bool

	// Momentum scrolling. Velocity is in rows per reference frame,
	// positive toward history. Remainder carries the sub-row residue
	// between frames.
	Velocity       float64
	Remainder      float64
	LastScroll     time.Time
	InertiaAllowed bool

	Scrollbar scrollbar.State
}

// clearSelection resets the selection lifecycle without touching the
// Grid's own selection.
func (s *ViewState) clearSelection() {
	s.Anchor = grid.Pin{}
	s.HasAnchor = false
	s.Pending = false
	s.Dragging = false
}

// clearLink drops the hovered link span, reporting whether anything
// changed.
func (s *ViewState) clearLink() bool {
	if !s.HasLink {
		return false
	}
	s.LinkURL = ""
	s.LinkStart = grid.Pin{}
	s.LinkEnd = grid.Pin{}
	s.HasLink = false
	return true
}
