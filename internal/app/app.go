// Package app hosts Architect's terminal sessions in a bubbletea program:
// it tiles one pane per session, translates toolkit messages into engine
// events, and paints the panes with their selections, link highlights,
// and scrollbars.
package app

import (
	"image"
	"os/exec"
	"runtime"
	"strings"
	"sync/atomic"
	"time"

	log "charm.land/log/v2"
	"github.com/atotto/clipboard"

	"github.com/forketyfork/architect/internal/config"
	"github.com/forketyfork/architect/internal/input"
	"github.com/forketyfork/architect/internal/session"
)

// pane couples one session with the interaction engine driving it and the
// tile it occupies on screen.
type pane struct {
	sess   *session.Session
	engine *input.Engine

	// bounds is the tile rectangle including the border, in screen cells.
	bounds image.Rectangle

	// newOutput is set by the PTY reader goroutine and drained on ticks.
	newOutput atomic.Bool
}

// content returns the drawable rectangle inside the pane border. Its
// rightmost column is reserved for the scrollbar.
func (p *pane) content() image.Rectangle {
	return p.bounds.Inset(1)
}

// Model is the bubbletea application state.
type Model struct {
	Width, Height int

	// Shell overrides shell detection for new sessions. Empty auto-detects.
	Shell string

	logger *log.Logger

	panes   []*pane
	focused int
	// zoomed gives the focused pane the whole window.
	zoomed bool

	exitCh chan string

	// Click counting for double/triple click detection.
	lastClickTime time.Time
	lastClickPane int
	lastClickX    int
	lastClickY    int
	clickCount    int

	notification string
	notifyUntil  time.Time

	dirty         bool
	renderSkipped bool
	cachedView    string
}

// New creates an empty model. The first session spawns once the initial
// window size arrives.
func New(logger *log.Logger, shell string) *Model {
	if logger == nil {
		logger = log.Default()
	}
	return &Model{
		Shell:         shell,
		logger:        logger,
		focused:       -1,
		lastClickPane: -1,
		exitCh:        make(chan string, 8),
	}
}

// statusHeight is the row count of the bottom status bar.
const statusHeight = 1

// tileColumns splits a width x height area into n side-by-side tiles.
// The last tile absorbs the division remainder.
func tileColumns(width, height, n int) []image.Rectangle {
	if n <= 0 || width <= 0 || height <= 0 {
		return nil
	}
	tiles := make([]image.Rectangle, n)
	w := width / n
	for i := range tiles {
		x0 := i * w
		x1 := x0 + w
		if i == n-1 {
			x1 = width
		}
		tiles[i] = image.Rect(x0, 0, x1, height)
	}
	return tiles
}

// retile recomputes every pane's tile from the current window size and
// pushes the new geometry into the engines and sessions. While zoomed the
// focused pane covers the whole usable area and the rest collapse.
func (m *Model) retile() {
	usable := m.Height - statusHeight
	tiles := tileColumns(m.Width, usable, len(m.panes))
	for i, p := range m.panes {
		if m.zoomed {
			if i == m.focused {
				p.bounds = image.Rect(0, 0, m.Width, usable)
			} else {
				// Hidden while zoomed: keep the PTY size, drop the tile.
				p.bounds = image.Rectangle{}
				p.engine.SetBounds(image.Rectangle{})
				continue
			}
		} else {
			p.bounds = tiles[i]
		}
		content := p.content()
		p.engine.SetBounds(content)
		cols := max(content.Dx()-1, 1) // rightmost column is the scrollbar
		rows := max(content.Dy(), 1)
		p.sess.Resize(cols, rows)
	}
	m.dirty = true
}

// toggleZoom switches the focused pane between tiled and fullscreen.
func (m *Model) toggleZoom() {
	m.zoomed = !m.zoomed
	m.retile()
}

// addPane spawns a new session and focuses it. Pane geometry is settled
// by the retile that follows.
func (m *Model) addPane() {
	if m.Width <= 0 || m.Height <= statusHeight {
		return
	}

	p := &pane{}
	sess, err := session.New(80, 24, m.logger, session.Options{
		Shell: m.Shell,
		OnOutput: func() {
			p.newOutput.Store(true)
		},
		OnExit: func(id string) {
			select {
			case m.exitCh <- id:
			default:
			}
		},
	})
	if err != nil {
		m.logger.Error("spawning session", "err", err)
		m.notify("Failed to start shell: " + err.Error())
		return
	}
	p.sess = sess
	p.engine = input.New(sess.Buffer, m.logger, input.Options{
		SendInput: sess.SendInput,
		OpenURL:   m.openURL,
		MarkDirty: func() { m.dirty = true },
	})
	p.engine.SetCellGeometry(1, 1, 0, 0)
	p.engine.SetScrollbarWidth(1)

	m.panes = append(m.panes, p)
	m.focused = len(m.panes) - 1
	m.retile()
}

// closePane tears down the i-th pane and retiles the rest.
func (m *Model) closePane(i int) {
	if i < 0 || i >= len(m.panes) {
		return
	}
	m.panes[i].sess.Close()
	m.panes = append(m.panes[:i], m.panes[i+1:]...)
	if m.focused >= len(m.panes) {
		m.focused = len(m.panes) - 1
	}
	m.retile()
}

// paneIndexByID finds the pane owning the session with the given ID.
func (m *Model) paneIndexByID(id string) int {
	for i, p := range m.panes {
		if p.sess.ID == id {
			return i
		}
	}
	return -1
}

// paneAt returns the index of the pane whose tile contains the point.
func (m *Model) paneAt(x, y int) int {
	for i, p := range m.panes {
		if image.Pt(x, y).In(p.bounds) {
			return i
		}
	}
	return -1
}

func (m *Model) focusedPane() *pane {
	if m.focused < 0 || m.focused >= len(m.panes) {
		return nil
	}
	return m.panes[m.focused]
}

// focusNext cycles focus to the following pane.
func (m *Model) focusNext() {
	if len(m.panes) == 0 {
		return
	}
	m.focused = (m.focused + 1) % len(m.panes)
	if m.zoomed {
		m.retile()
	}
	m.dirty = true
}

// registerClick advances the multi-click counter: a left click lands in
// the same cell of the same pane within the interval to count as part of
// the running sequence.
func (m *Model) registerClick(now time.Time, paneIdx, x, y int) int {
	same := paneIdx == m.lastClickPane && x == m.lastClickX && y == m.lastClickY
	if same && now.Sub(m.lastClickTime) <= config.MultiClickInterval {
		m.clickCount++
	} else {
		m.clickCount = 1
	}
	m.lastClickTime = now
	m.lastClickPane = paneIdx
	m.lastClickX = x
	m.lastClickY = y
	return m.clickCount
}

// notify shows a transient message in the status bar.
func (m *Model) notify(text string) {
	m.notification = text
	m.notifyUntil = time.Now().Add(config.NotificationDuration)
	m.dirty = true
}

// openURL launches the system browser for a link target. Schemeless
// targets from relaxed URL matching get https prepended.
func (m *Model) openURL(url string) {
	if !strings.Contains(url, "://") && !strings.HasPrefix(url, "mailto:") {
		url = "https://" + url
	}

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		m.logger.Warn("opening link", "url", url, "err", err)
		if clipboard.WriteAll(url) == nil {
			m.notify("No browser available, link copied")
		} else {
			m.notify("Could not open link")
		}
		return
	}
	go func() { _ = cmd.Wait() }()
	m.notify("Opened " + url)
}
