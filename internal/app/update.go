package app

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/atotto/clipboard"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/forketyfork/architect/internal/config"
	"github.com/forketyfork/architect/internal/input"
)

// TickerMsg is the periodic frame tick driving animations.
type TickerMsg time.Time

// SessionExitMsg signals that a session's shell process has ended.
type SessionExitMsg struct {
	ID string
}

// TickCmd ticks at the full animation rate.
func TickCmd() tea.Cmd {
	return tea.Tick(time.Second/config.NormalFPS, func(t time.Time) tea.Msg {
		return TickerMsg(t)
	})
}

// IdleTickCmd ticks at the reduced rate used when nothing animates.
func IdleTickCmd() tea.Cmd {
	return tea.Tick(time.Second/config.IdleFPS, func(t time.Time) tea.Msg {
		return TickerMsg(t)
	})
}

// listenForExits converts session exit callbacks into messages.
func (m *Model) listenForExits() tea.Cmd {
	return func() tea.Msg {
		id, ok := <-m.exitCh
		if !ok {
			return nil
		}
		return SessionExitMsg{ID: id}
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(TickCmd(), m.listenForExits())
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Any non-tick message invalidates the cached frame.
	if _, isTick := msg.(TickerMsg); !isTick {
		m.renderSkipped = false
	}

	switch msg := msg.(type) {
	case TickerMsg:
		return m, m.handleTick(time.Time(msg))

	case SessionExitMsg:
		if i := m.paneIndexByID(msg.ID); i >= 0 {
			m.closePane(i)
		}
		if len(m.panes) == 0 {
			return m, tea.Quit
		}
		return m, m.listenForExits()

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.retile()
		if len(m.panes) == 0 {
			m.addPane()
		}
		return m, nil

	case tea.KeyPressMsg:
		return m, m.handleKey(msg)

	case tea.MouseClickMsg:
		m.handleMouseClick(msg)
		return m, nil

	case tea.MouseMotionMsg:
		m.handleMouseMotion(msg)
		return m, nil

	case tea.MouseReleaseMsg:
		return m, m.handleMouseRelease(msg)

	case tea.MouseWheelMsg:
		m.handleMouseWheel(msg)
		return m, nil

	case tea.FocusMsg, tea.BlurMsg:
		return m, nil
	}

	return m, nil
}

// handleTick advances animations and decides the next tick rate.
func (m *Model) handleTick(now time.Time) tea.Cmd {
	animating := false
	for _, p := range m.panes {
		if p.engine.Update(now) {
			animating = true
		}
	}

	newOutput := false
	for _, p := range m.panes {
		if p.newOutput.Swap(false) {
			newOutput = true
		}
	}

	if m.notification != "" && now.After(m.notifyUntil) {
		m.notification = ""
		m.dirty = true
	}

	m.renderSkipped = !m.dirty && !newOutput
	m.dirty = false

	if animating || newOutput {
		return TickCmd()
	}
	return IdleTickCmd()
}

func (m *Model) handleMouseClick(msg tea.MouseClickMsg) {
	now := time.Now()
	mouse := msg.Mouse()

	idx := m.paneAt(mouse.X, mouse.Y)
	if idx >= 0 && idx != m.focused {
		m.focused = idx
		m.dirty = true
	}
	if idx < 0 {
		return
	}

	count := 1
	if mouse.Button == tea.MouseLeft {
		count = m.registerClick(now, idx, mouse.X, mouse.Y)
	}

	m.panes[idx].engine.HandleClick(now, input.ClickEvent{
		X:      mouse.X,
		Y:      mouse.Y,
		Button: uv.MouseButton(mouse.Button),
		Mod:    uv.KeyMod(mouse.Mod),
		Count:  count,
	})
}

func (m *Model) handleMouseMotion(msg tea.MouseMotionMsg) {
	now := time.Now()
	mouse := msg.Mouse()
	ev := input.MotionEvent{X: mouse.X, Y: mouse.Y, Mod: uv.KeyMod(mouse.Mod)}

	// Mid-interaction motion stays with the pane that owns the gesture,
	// even when the pointer leaves its tile.
	if fp := m.focusedPane(); fp != nil {
		st := fp.engine.State()
		if st.Pending || st.Dragging || st.Scrollbar.Dragging {
			fp.engine.HandleMotion(now, ev)
			return
		}
	}

	if idx := m.paneAt(mouse.X, mouse.Y); idx >= 0 {
		m.panes[idx].engine.HandleMotion(now, ev)
	} else if fp := m.focusedPane(); fp != nil {
		fp.engine.HandleMotion(now, ev)
	}
}

func (m *Model) handleMouseRelease(msg tea.MouseReleaseMsg) tea.Cmd {
	now := time.Now()
	mouse := msg.Mouse()

	fp := m.focusedPane()
	if fp == nil {
		return nil
	}
	fp.engine.HandleRelease(now, input.ReleaseEvent{
		X:      mouse.X,
		Y:      mouse.Y,
		Button: uv.MouseButton(mouse.Button),
		Mod:    uv.KeyMod(mouse.Mod),
	})

	if mouse.Button == tea.MouseLeft {
		return m.copySelection(fp)
	}
	return nil
}

func (m *Model) handleMouseWheel(msg tea.MouseWheelMsg) {
	now := time.Now()
	mouse := msg.Mouse()

	idx := m.paneAt(mouse.X, mouse.Y)
	if idx < 0 {
		return
	}

	var ticks int
	switch mouse.Button {
	case tea.MouseWheelUp:
		ticks = 1
	case tea.MouseWheelDown:
		ticks = -1
	default:
		return
	}

	m.panes[idx].engine.HandleWheel(now, input.WheelEvent{
		X:     mouse.X,
		Y:     mouse.Y,
		Ticks: ticks,
		Mod:   uv.KeyMod(mouse.Mod),
	})
}

// copySelection puts the pane's selected text on the system clipboard,
// falling back to an OSC 52 write when no native clipboard is reachable.
func (m *Model) copySelection(p *pane) tea.Cmd {
	text := p.sess.Buffer.SelectionText()
	if text == "" {
		return nil
	}
	if err := clipboard.WriteAll(text); err != nil {
		m.logger.Debug("system clipboard unavailable, using OSC 52", "err", err)
		return tea.SetClipboard(text)
	}
	return nil
}
