// Package config provides configuration constants and user settings for
// Architect.
package config

import (
	"time"
)

// =============================================================================
// Pointer Interaction
// =============================================================================

const (
	// MultiClickInterval is the maximum gap between clicks counted as part
	// of the same double/triple-click sequence.
	MultiClickInterval = 500 * time.Millisecond

	// EdgeAutoscrollThresholdPx is the distance from the viewport's top or
	// bottom edge within which a selection drag autoscrolls one row per
	// motion event.
	EdgeAutoscrollThresholdPx = 50

	// WheelLinesPerTick is the number of rows scrolled per wheel tick.
	WheelLinesPerTick = 1

	// DefaultScrollbarWidthPx is the width of the scrollbar hit strip at
	// the right edge of a viewport.
	DefaultScrollbarWidthPx = 12
)

// =============================================================================
// Momentum Scrolling
// =============================================================================

const (
	// ScrollAccelPerLine is the velocity gained per wheel-scrolled row.
	ScrollAccelPerLine = 0.08

	// MaxScrollVelocity clamps accumulated wheel velocity (rows per
	// reference frame), in either direction.
	MaxScrollVelocity = 30.0

	// InertiaDecayRate is the exponential decay rate of scroll velocity,
	// per second.
	InertiaDecayRate = 7.5

	// InertiaRestThreshold is the speed below which momentum snaps to
	// rest.
	InertiaRestThreshold = 0.12

	// InertiaReferenceFPS anchors velocity units: a velocity of 1 scrolls
	// one row per frame at this rate.
	InertiaReferenceFPS = 60.0

	// MaxFrameDelta caps the dt fed into per-frame animation so a stalled
	// host does not teleport the viewport.
	MaxFrameDelta = 250 * time.Millisecond
)

// =============================================================================
// FPS and Refresh Rates
// =============================================================================

const (
	// NormalFPS is the frame tick rate while any animation is live.
	NormalFPS = 60

	// IdleFPS is the frame tick rate when nothing is animating.
	IdleFPS = 10
)

// =============================================================================
// Scrollback
// =============================================================================

const (
	// DefaultScrollbackLines is the default scrollback buffer capacity.
	DefaultScrollbackLines = 10000

	// MinScrollbackLines is the smallest accepted scrollback capacity.
	MinScrollbackLines = 100

	// MaxScrollbackLines is the largest accepted scrollback capacity.
	MaxScrollbackLines = 1000000
)

// =============================================================================
// Notifications
// =============================================================================

const (
	// NotificationDuration is how long transient notifications stay
	// visible.
	NotificationDuration = 1500 * time.Millisecond
)

// =============================================================================
// Runtime Options (set from flags/config at startup)
// =============================================================================

// These are package-level so deep call sites match the flag state without
// threading a settings struct through every constructor.
var (
	// ScrollbackLines is the active scrollback capacity.
	ScrollbackLines = DefaultScrollbackLines

	// InertiaEnabled globally enables momentum scrolling.
	InertiaEnabled = true

	// ScrollbarAutoHide fades the scrollbar out when idle. When false the
	// bar stays visible whenever there is scrollback.
	ScrollbarAutoHide = true

	// OpenModifier is the key modifier that turns a link click into an
	// open action ("ctrl", "alt", or "super").
	OpenModifier = "ctrl"
)
