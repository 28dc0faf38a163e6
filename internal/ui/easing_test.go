package ui

import (
	"math"
	"testing"
)

func TestEasingEndpoints(t *testing.T) {
	curves := []struct {
		name string
		fn   func(float64) float64
	}{
		{"EaseOutCubic", EaseOutCubic},
		{"EaseInOutCubic", EaseInOutCubic},
	}

	for _, c := range curves {
		if got := c.fn(0); math.Abs(got) > 1e-9 {
			t.Errorf("%s(0) = %v, want 0", c.name, got)
		}
		if got := c.fn(1); math.Abs(got-1) > 1e-9 {
			t.Errorf("%s(1) = %v, want 1", c.name, got)
		}
		// Out-of-range inputs clamp instead of extrapolating.
		if got := c.fn(-2); math.Abs(got) > 1e-9 {
			t.Errorf("%s(-2) = %v, want 0", c.name, got)
		}
		if got := c.fn(3); math.Abs(got-1) > 1e-9 {
			t.Errorf("%s(3) = %v, want 1", c.name, got)
		}
	}
}

func TestEasingMonotonic(t *testing.T) {
	curves := []struct {
		name string
		fn   func(float64) float64
	}{
		{"EaseOutCubic", EaseOutCubic},
		{"EaseInOutCubic", EaseInOutCubic},
	}

	for _, c := range curves {
		prev := c.fn(0)
		for i := 1; i <= 100; i++ {
			v := c.fn(float64(i) / 100)
			if v < prev-1e-9 {
				t.Fatalf("%s not monotonic at t=%v: %v < %v", c.name, float64(i)/100, v, prev)
			}
			prev = v
		}
	}
}
