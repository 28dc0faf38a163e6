package session

import (
	"bytes"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/forketyfork/architect/internal/vt"
)

// scanner feeds raw PTY output through a stateful ansi.Parser and mirrors
// the stream onto the buffer: printable text and line controls become
// cells, DECSET/DECRST flip the modes the interaction engine cares about
// (alt screen 47/1047/1049, mouse tracking 9/1000/1002/1003, SGR encoding
// 1006), OSC 0/2 updates the title, OSC 8 delimits hyperlink spans, and
// ED 3 drops the scrollback. Parser state persists between feeds, so a
// sequence split across PTY read chunks is handled once complete instead
// of leaking into the visible grid.
type scanner struct {
	buf    *vt.Buffer
	parser *ansi.Parser
	text   strings.Builder

	title    string
	titleSet bool
}

func newScanner(b *vt.Buffer) *scanner {
	s := &scanner{buf: b, parser: ansi.NewParser()}
	s.parser.SetHandler(ansi.Handler{
		Print:     s.print,
		Execute:   s.execute,
		HandleCsi: s.handleCsi,
		HandleOsc: s.handleOsc,
	})
	return s
}

// feed runs one PTY chunk through the parser. It reports the last title
// change seen in this chunk, if any.
func (s *scanner) feed(data []byte) (title string, ok bool) {
	s.titleSet = false
	for _, c := range data {
		s.parser.Advance(c)
	}
	s.flush()
	return s.title, s.titleSet
}

// flush writes the text accumulated since the last control sequence, so
// mode changes apply in stream order.
func (s *scanner) flush() {
	if s.text.Len() > 0 {
		s.buf.Feed(s.text.String())
		s.text.Reset()
	}
}

func (s *scanner) print(r rune) {
	s.text.WriteRune(r)
}

func (s *scanner) execute(b byte) {
	switch b {
	case '\n', '\r', '\t':
		s.text.WriteByte(b)
	}
}

func (s *scanner) handleCsi(cmd ansi.Cmd, params ansi.Params) {
	s.flush()

	switch {
	case cmd.Prefix() == '?' && (cmd.Final() == 'h' || cmd.Final() == 'l'):
		set := cmd.Final() == 'h'
		params.ForEach(-1, func(_, mode int, _ bool) {
			switch mode {
			case 47, 1047, 1049:
				s.buf.SetAltScreen(set)
			case 9, 1000, 1002, 1003:
				s.buf.SetMouseTracking(set, s.buf.MouseSGR())
			case 1006:
				s.buf.SetMouseTracking(s.buf.MouseTracking(), set)
			}
		})
	case cmd.Final() == 'J':
		if n, _, _ := params.Param(0, 0); n == 3 {
			s.buf.ClearHistory()
		}
	}
}

func (s *scanner) handleOsc(cmd int, data []byte) {
	s.flush()

	switch cmd {
	case 0, 2:
		// data carries the full "cmd;payload" body.
		if i := bytes.IndexByte(data, ';'); i >= 0 {
			s.title = string(data[i+1:])
			s.titleSet = true
		}
	case 8:
		// OSC 8 ; params ; uri — empty uri ends the span.
		parts := bytes.SplitN(data, []byte{';'}, 3)
		if len(parts) == 3 {
			s.buf.SetLink(string(parts[2]))
		}
	}
}
