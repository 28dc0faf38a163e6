// Package session manages one shell process per viewport: PTY lifecycle,
// output feeding into the cell buffer, and input passthrough.
package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"sync"

	log "charm.land/log/v2"
	xpty "github.com/charmbracelet/x/xpty"
	"github.com/google/uuid"

	"github.com/forketyfork/architect/internal/config"
	"github.com/forketyfork/architect/internal/vt"
)

const readBufSize = 32 * 1024

// Session owns one shell process and the cell buffer its output feeds.
type Session struct {
	// ID is a stable identifier for routing events and logs.
	ID string
	// Buffer is the terminal surface the interaction engine addresses.
	Buffer *vt.Buffer

	pty    xpty.Pty
	cmd    *exec.Cmd
	cancel context.CancelFunc
	logger *log.Logger

	// title is written by the PTY reader goroutine and read by the UI.
	titleMu sync.Mutex
	title   string

	writeMu   sync.Mutex
	closeOnce sync.Once

	onOutput func()
	onExit   func(id string)
}

// Options configures a new session. Nil callbacks are ignored.
type Options struct {
	// Shell overrides shell detection. Empty auto-detects.
	Shell string
	// OnOutput runs after PTY output lands in the buffer. Called from the
	// reader goroutine.
	OnOutput func()
	// OnExit runs once when the shell process ends.
	OnExit func(id string)
}

// New spawns a shell on a fresh PTY of cols x rows and starts pumping its
// output into a new buffer.
func New(cols, rows int, logger *log.Logger, opts Options) (*Session, error) {
	if logger == nil {
		logger = log.Default()
	}
	noop := func() {}
	if opts.OnOutput == nil {
		opts.OnOutput = noop
	}
	if opts.OnExit == nil {
		opts.OnExit = func(string) {}
	}

	shell := opts.Shell
	if shell == "" {
		shell = detectShell()
	}

	id := uuid.NewString()
	s := &Session{
		ID:       id,
		title:    shellTitle(shell),
		Buffer:   vt.NewBuffer(cols, rows, config.ScrollbackLines),
		logger:   logger.With("session", id[:8]),
		onOutput: opts.OnOutput,
		onExit:   opts.OnExit,
	}

	p, err := xpty.NewPty(cols, rows)
	if err != nil {
		return nil, fmt.Errorf("creating pty: %w", err)
	}

	cmd := exec.Command(shell) // #nosec G204 - spawning the user's shell is the point
	cmd.Env = append(os.Environ(),
		"TERM=xterm-256color",
		"COLORTERM=truecolor",
		"ARCHITECT_SESSION_ID="+id,
	)
	if err := p.Start(cmd); err != nil {
		_ = p.Close()
		return nil, fmt.Errorf("starting %s: %w", shell, err)
	}
	// Some PTY implementations only accept a resize once the child runs.
	if err := p.Resize(cols, rows); err != nil {
		s.logger.Debug("initial pty resize failed", "err", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.pty = p
	s.cmd = cmd
	s.cancel = cancel

	go s.readLoop(ctx)
	go s.waitLoop()

	return s, nil
}

// readLoop pumps PTY output through the stream scanner until the PTY
// closes. The scanner's parser state carries over between reads, so
// sequences split across chunk boundaries stay intact.
func (s *Session) readLoop(ctx context.Context) {
	scan := newScanner(s.Buffer)
	buf := make([]byte, readBufSize)
	for {
		n, err := s.pty.Read(buf)
		if n > 0 {
			if title, ok := scan.feed(buf[:n]); ok {
				s.setTitle(title)
			}
			s.onOutput()
		}
		if err != nil {
			if ctx.Err() == nil && !errors.Is(err, os.ErrClosed) {
				s.logger.Debug("pty read ended", "err", err)
			}
			return
		}
	}
}

// waitLoop reaps the shell process and fires the exit callback.
func (s *Session) waitLoop() {
	_ = s.cmd.Wait()
	s.cancel()
	s.onExit(s.ID)
}

// Title returns the display name, updated from OSC title sequences.
func (s *Session) Title() string {
	s.titleMu.Lock()
	defer s.titleMu.Unlock()
	return s.title
}

func (s *Session) setTitle(title string) {
	s.titleMu.Lock()
	s.title = title
	s.titleMu.Unlock()
}

// SendInput writes bytes to the shell's stdin.
func (s *Session) SendInput(data []byte) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if _, err := s.pty.Write(data); err != nil {
		s.logger.Debug("pty write failed", "err", err)
	}
}

// Resize changes both the PTY and the buffer dimensions.
func (s *Session) Resize(cols, rows int) {
	s.Buffer.Resize(cols, rows)
	if err := s.pty.Resize(cols, rows); err != nil {
		s.logger.Debug("pty resize failed", "err", err)
	}
}

// Close tears the session down: PTY first so the reader unblocks, then
// the process.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.cancel()
		_ = s.pty.Close()
		if s.cmd.Process != nil {
			_ = s.cmd.Process.Kill()
		}
	})
}

func shellTitle(shell string) string {
	if i := strings.LastIndexByte(shell, '/'); i >= 0 {
		return shell[i+1:]
	}
	return shell
}

// detectShell picks the user's shell: configured preference, then $SHELL,
// then platform defaults.
func detectShell() string {
	if path, err := config.ConfigPath(); err == nil {
		if cfg, err := config.LoadUserConfig(path); err == nil && cfg.Input.PreferredShell != "" {
			preferred := cfg.Input.PreferredShell
			if _, err := exec.LookPath(preferred); err == nil {
				return preferred
			}
			fmt.Fprintf(os.Stderr, "Warning: configured shell %q not found, falling back\n", preferred)
		}
	}
	if shell := os.Getenv("SHELL"); shell != "" {
		return shell
	}
	if runtime.GOOS == "windows" {
		for _, shell := range []string{"pwsh.exe", "powershell.exe", "cmd.exe"} {
			if _, err := exec.LookPath(shell); err == nil {
				return shell
			}
		}
		return "cmd.exe"
	}
	return "/bin/sh"
}
