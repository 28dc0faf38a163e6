package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadUserConfigMissingFile(t *testing.T) {
	cfg, err := LoadUserConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadUserConfig on missing file: %v", err)
	}
	if cfg.Appearance.ScrollbackLines != DefaultScrollbackLines {
		t.Errorf("ScrollbackLines = %d, want default %d", cfg.Appearance.ScrollbackLines, DefaultScrollbackLines)
	}
	if cfg.Input.InertiaEnabled == nil || !*cfg.Input.InertiaEnabled {
		t.Error("InertiaEnabled default should be true")
	}
}

func TestLoadUserConfigClampsAndDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[appearance]
scrollback_lines = 7

[input]
open_modifier = "hyper"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadUserConfig(path)
	if err != nil {
		t.Fatalf("LoadUserConfig: %v", err)
	}
	if cfg.Appearance.ScrollbackLines != MinScrollbackLines {
		t.Errorf("ScrollbackLines = %d, want clamped %d", cfg.Appearance.ScrollbackLines, MinScrollbackLines)
	}
	if cfg.Input.OpenModifier != "ctrl" {
		t.Errorf("OpenModifier = %q, want fallback %q", cfg.Input.OpenModifier, "ctrl")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")

	cfg := DefaultUserConfig()
	cfg.Appearance.Theme = "dracula"
	cfg.Appearance.ScrollbackLines = 5000
	cfg.Input.OpenModifier = "alt"

	if err := SaveUserConfig(path, cfg); err != nil {
		t.Fatalf("SaveUserConfig: %v", err)
	}
	got, err := LoadUserConfig(path)
	if err != nil {
		t.Fatalf("LoadUserConfig: %v", err)
	}
	if got.Appearance.Theme != "dracula" || got.Appearance.ScrollbackLines != 5000 || got.Input.OpenModifier != "alt" {
		t.Errorf("round trip mismatch: %+v", got)
	}
}
