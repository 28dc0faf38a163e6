// Package scrollbar implements a generic vertical scrollbar: pure pixel
// geometry (track/thumb layout, hit-testing, click and drag to offset
// mapping) plus an idle-hide fade state machine. It is shared by the
// per-session terminal viewports and by overlay components.
package scrollbar

import (
	"image"
)

const (
	// MinThumbPx is the minimum thumb height. Without it the thumb becomes
	// ungrabbable on long scrollback buffers.
	MinThumbPx = 24

	// trackInsetPx insets the track from the bounds edges so the thumb
	// does not touch adjacent content.
	trackInsetPx = 2
)

// Metrics describes scrollable content in content units (rows for the
// terminal viewport). Offset is measured from the top of the content.
type Metrics struct {
	Total    int
	Offset   int
	Viewport int
}

// MaxOffset returns the largest valid Offset.
func (m Metrics) MaxOffset() int {
	return max(0, m.Total-m.Viewport)
}

// Clamped returns a copy with Offset restricted to [0, MaxOffset].
func (m Metrics) Clamped() Metrics {
	m.Offset = min(max(m.Offset, 0), m.MaxOffset())
	return m
}

// Layout is the per-frame pixel geometry derived from Metrics and a bounds
// rectangle.
type Layout struct {
	// Track is the full-height lane the thumb moves in.
	Track image.Rectangle
	// Thumb is the draggable handle.
	Thumb image.Rectangle
	// Travel is the number of pixels the thumb top may move within the
	// track.
	Travel int
}

// Region identifies what part of the scrollbar a point hits.
type Region int

const (
	RegionNone Region = iota
	RegionTrack
	RegionThumb
)

// ComputeLayout derives the track and thumb rectangles for metrics inside
// bounds. It returns nil when there is nothing to scroll (content fits in
// the viewport) or the bounds are degenerate.
func ComputeLayout(bounds image.Rectangle, m Metrics) *Layout {
	m = m.Clamped()
	if m.Total <= m.Viewport || m.Viewport <= 0 {
		return nil
	}
	if bounds.Dx() <= 0 || bounds.Dy() <= 2*trackInsetPx {
		return nil
	}

	track := image.Rect(
		bounds.Min.X,
		bounds.Min.Y+trackInsetPx,
		bounds.Max.X,
		bounds.Max.Y-trackInsetPx,
	)

	thumbH := track.Dy() * m.Viewport / m.Total
	thumbH = min(max(thumbH, MinThumbPx), track.Dy())

	travel := track.Dy() - thumbH
	thumbTop := track.Min.Y
	if maxOff := m.MaxOffset(); maxOff > 0 && travel > 0 {
		thumbTop += travel * m.Offset / maxOff
	}

	return &Layout{
		Track:  track,
		Thumb:  image.Rect(track.Min.X, thumbTop, track.Max.X, thumbTop+thumbH),
		Travel: travel,
	}
}

// HitTest reports which region of the layout contains (x, y). The thumb
// wins over the track.
func (l *Layout) HitTest(x, y int) Region {
	if l == nil {
		return RegionNone
	}
	pt := image.Pt(x, y)
	switch {
	case pt.In(l.Thumb):
		return RegionThumb
	case pt.In(l.Track):
		return RegionTrack
	default:
		return RegionNone
	}
}

// OffsetForTrackClick maps a click at pixel y on the track to a content
// offset, centering the thumb on the click position.
func OffsetForTrackClick(l *Layout, m Metrics, y int) int {
	thumbTop := y - l.Thumb.Dy()/2
	return offsetForThumbTop(l, m, thumbTop)
}

// OffsetForDrag maps a drag position to a content offset. grabOffset is
// the distance from the thumb's top to the cursor, captured at drag start,
// so the thumb does not jump under the cursor.
func OffsetForDrag(l *Layout, m Metrics, y, grabOffset int) int {
	return offsetForThumbTop(l, m, y-grabOffset)
}

func offsetForThumbTop(l *Layout, m Metrics, thumbTop int) int {
	m = m.Clamped()
	if l == nil || l.Travel <= 0 {
		return m.Offset
	}
	ratio := float64(thumbTop-l.Track.Min.Y) / float64(l.Travel)
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	return int(ratio*float64(m.MaxOffset()) + 0.5)
}
