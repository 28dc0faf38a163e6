package scrollbar

import (
	"image"
	"strings"

	"charm.land/lipgloss/v2"
)

const (
	trackChar = "│"
	thumbChar = "█"
)

// View renders the scrollbar as a one-column string for cell-based hosts,
// where one content row maps to one track pixel. It returns "" when the
// content fits in the viewport or the bar has faded out.
//
// Cell terminals cannot alpha-blend, so a bar that is mid-fade renders
// with the faint style instead of a true opacity ramp.
func View(m Metrics, height int, st *State, thumb, track, faint lipgloss.Style) string {
	if st != nil && !st.Visible() {
		return ""
	}

	// Cell-unit layout: no inset, single column.
	layout := cellLayout(m, height)
	if layout == nil {
		return ""
	}

	thumbStyle := thumb
	trackStyle := track
	if st != nil && st.Alpha < 0.5 {
		thumbStyle = faint
		trackStyle = faint
	}

	rows := make([]string, height)
	for y := range rows {
		if y >= layout.Thumb.Min.Y && y < layout.Thumb.Max.Y {
			rows[y] = thumbStyle.Render(thumbChar)
		} else {
			rows[y] = trackStyle.Render(trackChar)
		}
	}
	return strings.Join(rows, "\n")
}

// cellLayout is ComputeLayout with cell-sized geometry: a one-cell-wide
// track with no inset and a one-row minimum thumb.
func cellLayout(m Metrics, height int) *Layout {
	m = m.Clamped()
	if m.Total <= m.Viewport || m.Viewport <= 0 || height <= 0 {
		return nil
	}

	thumbH := height * m.Viewport / m.Total
	thumbH = min(max(thumbH, 1), height)

	travel := height - thumbH
	thumbTop := 0
	if maxOff := m.MaxOffset(); maxOff > 0 && travel > 0 {
		thumbTop = travel * m.Offset / maxOff
	}

	return &Layout{
		Track:  image.Rect(0, 0, 1, height),
		Thumb:  image.Rect(0, thumbTop, 1, thumbTop+thumbH),
		Travel: travel,
	}
}
