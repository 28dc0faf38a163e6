package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
)

// UserConfig represents the user's custom configuration.
type UserConfig struct {
	Appearance AppearanceConfig `toml:"appearance"`
	Input      InputConfig      `toml:"input"`
}

// AppearanceConfig holds appearance-related settings.
type AppearanceConfig struct {
	Theme             string `toml:"theme"`               // Color theme name (e.g. dracula, nord). Empty disables theming.
	ScrollbackLines   int    `toml:"scrollback_lines"`    // Scrollback buffer capacity (default: 10000, min: 100, max: 1000000)
	ScrollbarAutoHide *bool  `toml:"scrollbar_auto_hide"` // Fade the scrollbar out when idle (default: true)
}

// InputConfig holds pointer/keyboard interaction settings.
type InputConfig struct {
	InertiaEnabled *bool  `toml:"inertia_enabled"` // Momentum scrolling after a wheel flick (default: true)
	OpenModifier   string `toml:"open_modifier"`   // Modifier that opens links on click: ctrl, alt, super (default: ctrl)
	PreferredShell string `toml:"preferred_shell"` // Shell to spawn; empty auto-detects from $SHELL.
}

// DefaultUserConfig returns a config with all defaults applied.
func DefaultUserConfig() *UserConfig {
	yes := true
	return &UserConfig{
		Appearance: AppearanceConfig{
			Theme:             "",
			ScrollbackLines:   DefaultScrollbackLines,
			ScrollbarAutoHide: &yes,
		},
		Input: InputConfig{
			InertiaEnabled: &yes,
			OpenModifier:   "ctrl",
		},
	}
}

// ConfigPath returns the path of the user config file, creating parent
// directories as needed.
func ConfigPath() (string, error) {
	path, err := xdg.ConfigFile(filepath.Join("architect", "config.toml"))
	if err != nil {
		return "", fmt.Errorf("resolving config path: %w", err)
	}
	return path, nil
}

// LoadUserConfig reads the user config from path. A missing file is not an
// error: defaults are returned. Invalid values are clamped or replaced
// with defaults rather than rejected.
func LoadUserConfig(path string) (*UserConfig, error) {
	cfg := DefaultUserConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return DefaultUserConfig(), fmt.Errorf("parsing %s: %w", path, err)
	}

	cfg.normalize()
	return cfg, nil
}

// SaveUserConfig writes cfg to path in TOML form.
func SaveUserConfig(path string, cfg *UserConfig) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Apply copies the config into the package-level runtime options.
func (c *UserConfig) Apply() {
	ScrollbackLines = c.Appearance.ScrollbackLines
	if c.Appearance.ScrollbarAutoHide != nil {
		ScrollbarAutoHide = *c.Appearance.ScrollbarAutoHide
	}
	if c.Input.InertiaEnabled != nil {
		InertiaEnabled = *c.Input.InertiaEnabled
	}
	if c.Input.OpenModifier != "" {
		OpenModifier = c.Input.OpenModifier
	}
}

func (c *UserConfig) normalize() {
	if c.Appearance.ScrollbackLines == 0 {
		c.Appearance.ScrollbackLines = DefaultScrollbackLines
	}
	c.Appearance.ScrollbackLines = min(
		max(c.Appearance.ScrollbackLines, MinScrollbackLines),
		MaxScrollbackLines,
	)
	switch c.Input.OpenModifier {
	case "", "ctrl", "alt", "super":
	default:
		c.Input.OpenModifier = "ctrl"
	}
}
