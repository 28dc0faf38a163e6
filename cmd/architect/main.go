// Package main implements Architect, a terminal session manager built
// around direct pointer interaction: precise selection, link detection,
// momentum scrolling, and scrollbars in every pane.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	tint "github.com/lrstanley/bubbletint/v2"
	"github.com/spf13/cobra"

	"github.com/forketyfork/architect/internal/theme"
)

// Version information (set by goreleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Global flags
var (
	debugMode       bool
	logFile         string
	themeName       string
	listThemes      bool
	shellOverride   string
	scrollbackLines int
	noInertia       bool
	noAutoHide      bool
	openModifier    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "architect",
		Short: "Terminal session manager",
		Long: `Architect - terminal session manager

Runs your shells side by side with mouse-first interaction: drag to
select across scrollback, double-click words, triple-click lines,
ctrl+click links, and flick-scroll with momentum.`,
		Example: `  # Run Architect
  architect

  # Run with a specific theme
  architect --theme dracula

  # List all available themes
  architect --list-themes

  # Keep more scrollback
  architect --scrollback-lines 50000`,
		Version: version,
		RunE: func(_ *cobra.Command, _ []string) error {
			if listThemes {
				if err := theme.Initialize("default"); err != nil {
					return fmt.Errorf("failed to initialize themes: %w", err)
				}
				for _, t := range tint.TintIDs() {
					fmt.Println(t)
				}
				return nil
			}
			return runLocal()
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to file (implied by --debug)")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", "", "Color theme to use (e.g. dracula, nord). Leave empty for standard terminal colors")
	rootCmd.PersistentFlags().BoolVar(&listThemes, "list-themes", false, "List all available themes and exit")
	rootCmd.PersistentFlags().StringVar(&shellOverride, "shell", "", "Shell to spawn (default: from config or $SHELL)")
	rootCmd.PersistentFlags().IntVar(&scrollbackLines, "scrollback-lines", 0, "Scrollback buffer capacity (default: from config or 10000)")
	rootCmd.PersistentFlags().BoolVar(&noInertia, "no-inertia", false, "Disable momentum scrolling")
	rootCmd.PersistentFlags().BoolVar(&noAutoHide, "no-scrollbar-autohide", false, "Keep scrollbars visible instead of fading when idle")
	rootCmd.PersistentFlags().StringVar(&openModifier, "open-modifier", "", "Modifier that opens links on click: ctrl, alt, super")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage Architect configuration",
	}

	configPathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print configuration file path",
		RunE: func(_ *cobra.Command, _ []string) error {
			return printConfigPath()
		},
	}

	configEditCmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit configuration in $EDITOR",
		RunE: func(_ *cobra.Command, _ []string) error {
			return editConfigFile()
		},
	}

	configResetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset configuration to defaults",
		RunE: func(_ *cobra.Command, _ []string) error {
			return resetConfigToDefaults()
		},
	}

	configCmd.AddCommand(configPathCmd, configEditCmd, configResetCmd)

	themesDirCmd := &cobra.Command{
		Use:   "themes-dir",
		Short: "Print the custom themes directory path",
		RunE: func(_ *cobra.Command, _ []string) error {
			dir, err := theme.ThemesDir()
			if err != nil {
				return err
			}
			fmt.Println(dir)
			return nil
		},
	}

	rootCmd.AddCommand(configCmd, themesDirCmd)

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(fmt.Sprintf("%s\nCommit: %s\nBuilt: %s", version, commit, date)),
	); err != nil {
		os.Exit(1)
	}
}
