// Package input implements the viewport interaction engine: it translates
// pointer, wheel, and frame-tick events into scroll, selection, and link
// operations against a grid.Grid surface. One Engine is owned by each
// terminal session and lives exactly as long as it.
package input

import (
	uv "github.com/charmbracelet/ultraviolet"
)

// Events are expressed in pixels relative to the window origin. The host
// translates its toolkit's mouse messages into these before calling the
// engine; it is also responsible for counting multi-clicks.

// ClickEvent is a button press inside or near the viewport.
type ClickEvent struct {
	X, Y   int
	Button uv.MouseButton
	Mod    uv.KeyMod
	// Count is the click multiplicity: 1 single, 2 double, 3+ triple.
	Count int
}

// MotionEvent is a pointer move, with or without a button held.
type MotionEvent struct {
	X, Y int
	Mod  uv.KeyMod
}

// ReleaseEvent is a button release. It may arrive with coordinates outside
// the viewport; a release always terminates an in-progress drag.
type ReleaseEvent struct {
	X, Y   int
	Button uv.MouseButton
	Mod    uv.KeyMod
}

// WheelEvent is a scroll input. Ticks is the integer wheel step count,
// positive for wheel-up (toward history). When Ticks is zero, Lines
// carries a fractional row delta from a precise (trackpad) source.
// Touch marks precise input whose flick momentum is already applied by
// the source, so the engine must not add its own inertia on top.
type WheelEvent struct {
	X, Y  int
	Ticks int
	Lines float64
	Touch bool
	Mod   uv.KeyMod
}
