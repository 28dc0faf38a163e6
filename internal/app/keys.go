package app

import (
	"time"

	tea "charm.land/bubbletea/v2"
)

// handleKey routes a key press: application chords first, scrollback
// navigation next, everything else raw to the focused shell.
func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	now := time.Now()
	fp := m.focusedPane()

	switch msg.String() {
	case "ctrl+shift+q":
		for _, p := range m.panes {
			p.sess.Close()
		}
		return tea.Quit

	case "ctrl+shift+n":
		m.addPane()
		return nil

	case "ctrl+shift+w":
		m.closePane(m.focused)
		if len(m.panes) == 0 {
			return tea.Quit
		}
		return nil

	case "ctrl+shift+o":
		m.focusNext()
		return nil

	case "ctrl+shift+z":
		m.toggleZoom()
		return nil

	case "ctrl+shift+c":
		if fp != nil {
			return m.copySelection(fp)
		}
		return nil

	case "shift+pgup":
		if fp != nil {
			fp.engine.ScrollPage(now, 1)
		}
		return nil

	case "shift+pgdown":
		if fp != nil {
			fp.engine.ScrollPage(now, -1)
		}
		return nil

	case "shift+up":
		if fp != nil {
			fp.engine.ScrollBy(now, 1)
		}
		return nil

	case "shift+down":
		if fp != nil {
			fp.engine.ScrollBy(now, -1)
		}
		return nil

	case "shift+home":
		if fp != nil {
			fp.engine.ScrollToEdge(now, true)
		}
		return nil

	case "shift+end":
		if fp != nil {
			fp.engine.ScrollToEdge(now, false)
		}
		return nil
	}

	if fp == nil {
		return nil
	}
	if raw := keyBytes(msg); len(raw) > 0 {
		// Typing snaps the viewport back to the live screen.
		if !fp.sess.Buffer.AtBottom() {
			fp.engine.ScrollToEdge(now, false)
		}
		fp.sess.SendInput(raw)
	}
	return nil
}

// keyBytes encodes a key press as the byte sequence a terminal would send
// to the application.
func keyBytes(msg tea.KeyPressMsg) []byte {
	switch msg.String() {
	case "enter":
		return []byte{'\r'}
	case "backspace":
		return []byte{0x7f}
	case "tab":
		return []byte{'\t'}
	case "shift+tab":
		return []byte("\x1b[Z")
	case "esc":
		return []byte{0x1b}
	case "space":
		return []byte{' '}
	case "up":
		return []byte("\x1b[A")
	case "down":
		return []byte("\x1b[B")
	case "right":
		return []byte("\x1b[C")
	case "left":
		return []byte("\x1b[D")
	case "home":
		return []byte("\x1b[H")
	case "end":
		return []byte("\x1b[F")
	case "insert":
		return []byte("\x1b[2~")
	case "delete":
		return []byte("\x1b[3~")
	case "pgup":
		return []byte("\x1b[5~")
	case "pgdown":
		return []byte("\x1b[6~")
	case "f1":
		return []byte("\x1bOP")
	case "f2":
		return []byte("\x1bOQ")
	case "f3":
		return []byte("\x1bOR")
	case "f4":
		return []byte("\x1bOS")
	case "f5":
		return []byte("\x1b[15~")
	case "f6":
		return []byte("\x1b[17~")
	case "f7":
		return []byte("\x1b[18~")
	case "f8":
		return []byte("\x1b[19~")
	case "f9":
		return []byte("\x1b[20~")
	case "f10":
		return []byte("\x1b[21~")
	case "f11":
		return []byte("\x1b[23~")
	case "f12":
		return []byte("\x1b[24~")
	}

	if msg.Mod&tea.ModCtrl != 0 && msg.Code >= 'a' && msg.Code <= 'z' {
		return []byte{byte(msg.Code-'a') + 1}
	}
	if msg.Mod&tea.ModAlt != 0 && msg.Text != "" {
		return append([]byte{0x1b}, msg.Text...)
	}
	if msg.Text != "" {
		return []byte(msg.Text)
	}
	return nil
}
