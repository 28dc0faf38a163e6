package main

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	tea "charm.land/bubbletea/v2"
	log "charm.land/log/v2"

	"github.com/forketyfork/architect/internal/app"
	"github.com/forketyfork/architect/internal/config"
	"github.com/forketyfork/architect/internal/theme"
)

func runLocal() error {
	logger, closeLog, err := setupLogging()
	if err != nil {
		return err
	}
	defer closeLog()

	cfgPath, err := config.ConfigPath()
	if err != nil {
		return err
	}
	userConfig, err := config.LoadUserConfig(cfgPath)
	if err != nil {
		logger.Warn("failed to load config, using defaults", "err", err)
	}
	applyFlagOverrides(userConfig)
	userConfig.Apply()

	name := userConfig.Appearance.Theme
	if themeName != "" {
		name = themeName
	}
	if err := theme.Initialize(name); err != nil {
		return fmt.Errorf("initializing theme: %w", err)
	}

	shell := shellOverride
	if shell == "" {
		shell = userConfig.Input.PreferredShell
	}

	p := tea.NewProgram(
		app.New(logger, shell),
		tea.WithFPS(config.NormalFPS),
		tea.WithoutSignalHandler(),
	)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		p.Send(tea.QuitMsg{})
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}

// applyFlagOverrides layers command-line flags over the loaded config.
func applyFlagOverrides(cfg *config.UserConfig) {
	if scrollbackLines > 0 {
		cfg.Appearance.ScrollbackLines = min(
			max(scrollbackLines, config.MinScrollbackLines),
			config.MaxScrollbackLines,
		)
	}
	if noInertia {
		off := false
		cfg.Input.InertiaEnabled = &off
	}
	if noAutoHide {
		off := false
		cfg.Appearance.ScrollbarAutoHide = &off
	}
	if openModifier != "" {
		cfg.Input.OpenModifier = openModifier
	}
}

// setupLogging routes logs to the requested file. Without a destination
// logs are discarded: stderr is unusable underneath the alt screen.
func setupLogging() (*log.Logger, func(), error) {
	path := logFile
	if path == "" && debugMode {
		path = os.TempDir() + "/architect-debug.log"
	}
	if path == "" {
		return log.New(io.Discard), func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{ReportTimestamp: true})
	if debugMode {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, func() { _ = f.Close() }, nil
}

func printConfigPath() error {
	path, err := config.ConfigPath()
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

func editConfigFile() error {
	path, err := config.ConfigPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := config.SaveUserConfig(path, config.DefaultUserConfig()); err != nil {
			return err
		}
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = os.Getenv("VISUAL")
	}
	if editor == "" {
		for _, candidate := range []string{"vim", "vi", "nano", "emacs"} {
			if _, err := exec.LookPath(candidate); err == nil {
				editor = candidate
				break
			}
		}
	}
	if editor == "" {
		return fmt.Errorf("no editor found; set $EDITOR")
	}

	cmd := exec.Command(editor, path) // #nosec G204 - user's own editor choice
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func resetConfigToDefaults() error {
	path, err := config.ConfigPath()
	if err != nil {
		return err
	}
	if err := config.SaveUserConfig(path, config.DefaultUserConfig()); err != nil {
		return err
	}
	fmt.Printf("Configuration reset: %s\n", path)
	return nil
}
