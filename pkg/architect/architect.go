// Package architect provides an embeddable terminal session manager for
// Bubble Tea applications.
//
// # Basic Usage
//
// Create a model with defaults and run it:
//
//	model := architect.New()
//	p := tea.NewProgram(model)
//	if _, err := p.Run(); err != nil {
//		log.Fatal(err)
//	}
//
// # Custom Configuration
//
// Use options to customize behavior:
//
//	model := architect.New(
//		architect.WithTheme("dracula"),
//		architect.WithShell("/bin/zsh"),
//		architect.WithScrollbackLines(50000),
//		architect.WithInertia(false),
//	)
package architect

import (
	"io"

	log "charm.land/log/v2"

	"github.com/forketyfork/architect/internal/app"
	"github.com/forketyfork/architect/internal/config"
	"github.com/forketyfork/architect/internal/theme"
)

// Model is the top-level Bubble Tea model.
type Model = app.Model

// Options configures an Architect instance.
type Options struct {
	// Theme is the color theme name (e.g. "dracula", "nord"). Leave empty
	// to use standard terminal colors.
	Theme string

	// Shell is the shell binary to spawn in new sessions. Empty
	// auto-detects from config and $SHELL.
	Shell string

	// ScrollbackLines is the scrollback buffer capacity per session.
	// Default 10000, clamped to [100, 1000000].
	ScrollbackLines int

	// Inertia enables momentum scrolling after a wheel flick.
	Inertia bool

	// ScrollbarAutoHide fades scrollbars out when idle.
	ScrollbarAutoHide bool

	// OpenModifier is the key held to open links on click: "ctrl",
	// "alt", or "super".
	OpenModifier string

	// Logger receives diagnostics. Nil discards them.
	Logger *log.Logger
}

// Option is a functional option for configuring Architect.
type Option func(*Options)

// WithTheme sets the color theme.
func WithTheme(name string) Option {
	return func(o *Options) {
		o.Theme = name
	}
}

// WithShell sets the shell spawned in new sessions.
func WithShell(shell string) Option {
	return func(o *Options) {
		o.Shell = shell
	}
}

// WithScrollbackLines sets the scrollback buffer capacity.
func WithScrollbackLines(lines int) Option {
	return func(o *Options) {
		o.ScrollbackLines = min(max(lines, config.MinScrollbackLines), config.MaxScrollbackLines)
	}
}

// WithInertia enables or disables momentum scrolling.
func WithInertia(enabled bool) Option {
	return func(o *Options) {
		o.Inertia = enabled
	}
}

// WithScrollbarAutoHide enables or disables the idle scrollbar fade.
func WithScrollbarAutoHide(enabled bool) Option {
	return func(o *Options) {
		o.ScrollbarAutoHide = enabled
	}
}

// WithOpenModifier sets the link-open click modifier.
func WithOpenModifier(mod string) Option {
	return func(o *Options) {
		o.OpenModifier = mod
	}
}

// WithLogger routes diagnostics to the given logger.
func WithLogger(logger *log.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// New creates an Architect model with the given options applied. The
// first session spawns when the initial window size arrives.
func New(opts ...Option) *Model {
	o := Options{
		ScrollbackLines:   config.DefaultScrollbackLines,
		Inertia:           true,
		ScrollbarAutoHide: true,
		OpenModifier:      "ctrl",
	}
	for _, opt := range opts {
		opt(&o)
	}

	config.ScrollbackLines = o.ScrollbackLines
	config.InertiaEnabled = o.Inertia
	config.ScrollbarAutoHide = o.ScrollbarAutoHide
	config.OpenModifier = o.OpenModifier
	_ = theme.Initialize(o.Theme)

	logger := o.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return app.New(logger, o.Shell)
}
