// Package ui provides small presentation helpers shared by the host and
// the scrollbar widget.
package ui

// Clamp01 restricts t to the unit interval.
func Clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// EaseOutCubic starts fast and decelerates. Used for reveal animations.
func EaseOutCubic(t float64) float64 {
	t = Clamp01(t) - 1
	return t*t*t + 1
}

// EaseInOutCubic accelerates through the midpoint and settles smoothly.
// Used for dismiss animations.
func EaseInOutCubic(t float64) float64 {
	t = Clamp01(t)
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := 2*t - 2
	return 1 + u*u*u/2
}

// Lerp interpolates linearly between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
