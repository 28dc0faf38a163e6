package app

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/forketyfork/architect/internal/grid"
	"github.com/forketyfork/architect/internal/theme"
	"github.com/forketyfork/architect/pkg/scrollbar"
)

// View implements tea.Model.
func (m *Model) View() tea.View {
	var view tea.View

	if m.renderSkipped && m.cachedView != "" {
		view.SetContent(m.cachedView)
	} else {
		content := lipgloss.Sprint(m.renderCanvas().Render())
		m.cachedView = content
		view.SetContent(content)
	}

	view.AltScreen = true
	// Motion events drive link hover and scrollbar hover, so the full
	// stream is always on.
	view.MouseMode = tea.MouseModeAllMotion
	view.ReportFocus = true
	return view
}

func (m *Model) renderCanvas() *lipgloss.Canvas {
	canvas := lipgloss.NewCanvas(m.Width, m.Height)

	for i, p := range m.panes {
		if p.bounds.Empty() {
			continue // hidden while another pane is zoomed
		}
		focused := i == m.focused
		st := p.engine.State()

		borderColor := theme.BorderUnfocused()
		if focused {
			borderColor = theme.BorderFocused()
			if st.ViewingScrollback {
				borderColor = theme.BorderScrollback()
			}
		}

		content := p.content()
		box := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Width(content.Dx()).
			Height(content.Dy()).
			Render(m.renderPaneText(p))
		canvas.Compose(lipgloss.NewLayer(box).
			X(p.bounds.Min.X).Y(p.bounds.Min.Y).Z(1).ID(p.sess.ID))

		if bar := m.renderScrollbar(p); bar != "" {
			canvas.Compose(lipgloss.NewLayer(bar).
				X(content.Max.X - 1).Y(content.Min.Y).Z(2).ID(p.sess.ID + "-bar"))
		}
	}

	canvas.Compose(lipgloss.NewLayer(m.renderStatusBar()).
		X(0).Y(m.Height - statusHeight).Z(3).ID("status"))

	return canvas
}

// paint classes for run batching: consecutive cells sharing a class render
// under one style call.
const (
	paintBase = iota
	paintSelection
	paintLink
)

// renderPaneText paints the visible rows of one pane, applying the
// selection highlight and the hovered-link underline.
func (m *Model) renderPaneText(p *pane) string {
	buf := p.sess.Buffer
	st := p.engine.State()

	base := lipgloss.NewStyle().
		Foreground(theme.TerminalFg()).
		Background(theme.TerminalBg())
	selBg, selFg := theme.SelectionColors()
	sel := lipgloss.NewStyle().Foreground(selFg).Background(selBg)
	link := base.Foreground(theme.LinkColor()).Underline(true)
	styles := [...]lipgloss.Style{paintBase: base, paintSelection: sel, paintLink: link}

	cols := buf.Cols()
	rows := buf.Rows()

	var out strings.Builder
	for y := range rows {
		if y > 0 {
			out.WriteByte('\n')
		}

		line := buf.ViewportLine(y)
		rowPin, havePin := buf.Pin(grid.Point{X: 0, Y: y, Space: grid.SpaceViewport})

		var run strings.Builder
		runClass := paintBase
		flush := func() {
			if run.Len() > 0 {
				out.WriteString(styles[runClass].Render(run.String()))
				run.Reset()
			}
		}

		for x := 0; x < cols && x < len(line); x++ {
			cell := line[x]
			if cell.Width == 0 {
				continue // trailing half of a wide character
			}

			class := paintBase
			if havePin {
				pin := grid.NewPin(rowPin.Line(), x)
				switch {
				case buf.SelectionContains(pin):
					class = paintSelection
				case st.HasLink && !pin.Before(st.LinkStart) && !st.LinkEnd.Before(pin):
					class = paintLink
				}
			}
			if class != runClass {
				flush()
				runClass = class
			}

			if cell.Content == "" {
				run.WriteByte(' ')
			} else {
				run.WriteString(cell.Content)
			}
		}
		flush()
	}
	return out.String()
}

// renderScrollbar draws the pane's one-column scrollbar, or "" while it
// is hidden.
func (m *Model) renderScrollbar(p *pane) string {
	_, metrics := p.engine.Scrollbar()
	st := &p.engine.State().Scrollbar

	thumb := lipgloss.NewStyle().Foreground(theme.ScrollbarThumb())
	track := lipgloss.NewStyle().Foreground(theme.ScrollbarTrack())
	faint := track.Faint(true)
	return scrollbar.View(metrics, p.content().Dy(), st, thumb, track, faint)
}

// renderStatusBar paints the bottom bar: session titles on the left,
// scroll position and notifications on the right.
func (m *Model) renderStatusBar() string {
	style := lipgloss.NewStyle().
		Foreground(theme.StatusFg()).
		Background(theme.StatusBg()).
		Width(m.Width)

	var left strings.Builder
	for i, p := range m.panes {
		if i > 0 {
			left.WriteString("  ")
		}
		marker := " "
		if i == m.focused {
			marker = "*"
		}
		fmt.Fprintf(&left, "%d:%s%s", i+1, p.sess.Title(), marker)
	}

	right := ""
	if fp := m.focusedPane(); fp != nil && fp.engine.State().ViewingScrollback {
		gm := fp.sess.Buffer.Metrics()
		right = fmt.Sprintf("[%d/%d]", gm.Offset, gm.MaxOffset())
	}
	if m.notification != "" {
		note := lipgloss.NewStyle().
			Foreground(theme.NotificationFg()).
			Background(theme.NotificationBg()).
			Render(" " + m.notification + " ")
		if right != "" {
			right += " "
		}
		right += note
	}

	gap := m.Width - lipgloss.Width(left.String()) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return style.Render(left.String() + strings.Repeat(" ", gap) + right)
}
