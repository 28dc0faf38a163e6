// Package theme provides color themes and styling for Architect viewports.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
	log "charm.land/log/v2"
	tint "github.com/lrstanley/bubbletint/v2"
)

var enabled bool

// Initialize sets up the theme registry with the specified theme name.
// Call this once at application startup. An empty name disables theming
// and falls back to standard terminal colors.
func Initialize(themeName string) error {
	if themeName == "" {
		enabled = false
		return nil
	}

	enabled = true
	tint.NewDefaultRegistry()

	if themesDir, err := ThemesDir(); err == nil {
		if _, err := LoadCustomThemes(themesDir); err != nil {
			log.Warn("error loading custom themes", "err", err)
		}
	}

	if !tint.SetTintID(themeName) {
		log.Warn("unknown theme, using default", "theme", themeName)
		tint.SetTintID("default")
	}
	return nil
}

// IsEnabled returns true if theming is enabled.
func IsEnabled() bool {
	return enabled
}

// Current returns the currently active theme, nil when theming is
// disabled.
func Current() *tint.Tint {
	if !enabled {
		return nil
	}
	return tint.Current()
}

// TerminalFg returns the foreground color for terminal text.
func TerminalFg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#e5e5e5")
	}
	return t.Fg
}

// TerminalBg returns the background color for terminal viewports.
func TerminalBg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#000000")
	}
	return t.Bg
}

// SelectionColors returns background and foreground colors for selected
// text.
func SelectionColors() (bg color.Color, fg color.Color) {
	t := Current()
	if t == nil {
		return lipgloss.Color("62"), lipgloss.Color("15")
	}
	return t.Purple, t.BrightWhite
}

// LinkColor returns the color for hovered hyperlinks.
func LinkColor() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#5c5cff")
	}
	return t.BrightBlue
}

// ScrollbarThumb returns the color of the scrollbar thumb.
func ScrollbarThumb() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#808090")
	}
	return t.BrightBlack
}

// ScrollbarTrack returns the color of the scrollbar track.
func ScrollbarTrack() color.Color {
	return lipgloss.Color("#303040")
}

// BorderFocused returns the color for the focused session border.
func BorderFocused() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#AAFFAA")
	}
	return t.BrightGreen
}

// BorderUnfocused returns the color for unfocused session borders.
func BorderUnfocused() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#808090")
	}
	return t.BrightBlack
}

// BorderScrollback returns the border color while a session views
// scrollback.
func BorderScrollback() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#cdcd00")
	}
	return t.Yellow
}

// StatusFg returns the foreground color for the status bar.
func StatusFg() color.Color {
	return lipgloss.Color("#a0a0b0")
}

// StatusBg returns the background color for the status bar.
func StatusBg() color.Color {
	return lipgloss.Color("#1a1a2e")
}

// NotificationFg returns the foreground color for notifications.
func NotificationFg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#e5e5e5")
	}
	return t.Fg
}

// NotificationBg returns the background color for notifications.
func NotificationBg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#000000")
	}
	return t.Bg
}
