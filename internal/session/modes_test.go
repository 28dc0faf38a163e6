package session

import (
	"strings"
	"testing"

	"github.com/forketyfork/architect/internal/vt"
)

func rowText(b *vt.Buffer, y int) string {
	var sb strings.Builder
	for _, c := range b.ViewportLine(y) {
		if c.Width == 0 {
			continue
		}
		sb.WriteString(c.Content)
	}
	return strings.TrimRight(sb.String(), " ")
}

func TestScannerModes(t *testing.T) {
	b := vt.NewBuffer(20, 5, 100)
	s := newScanner(b)

	s.feed([]byte("prompt \x1b[?1049h\x1b[?1000h\x1b[?1006h"))
	if !b.AltScreen() {
		t.Error("1049h did not enter the alt screen")
	}
	if !b.MouseTracking() || !b.MouseSGR() {
		t.Error("1000h/1006h did not enable SGR mouse tracking")
	}

	s.feed([]byte("\x1b[?1006l\x1b[?1000l\x1b[?1049l"))
	if b.AltScreen() || b.MouseTracking() || b.MouseSGR() {
		t.Error("reset sequences did not clear the modes")
	}
}

func TestScannerSequenceSplitAcrossFeeds(t *testing.T) {
	b := vt.NewBuffer(20, 5, 100)
	s := newScanner(b)

	// One DECSET delivered in two PTY read chunks.
	s.feed([]byte("\x1b[?10"))
	s.feed([]byte("49h"))

	if !b.AltScreen() {
		t.Error("alt-screen DECSET split across feeds was lost")
	}
	if got := rowText(b, 0); got != "" {
		t.Errorf("partial sequence bytes leaked into the grid: %q", got)
	}
}

func TestScannerMultiParam(t *testing.T) {
	b := vt.NewBuffer(20, 5, 100)
	s := newScanner(b)
	s.feed([]byte("\x1b[?1002;1006h"))
	if !b.MouseTracking() || !b.MouseSGR() {
		t.Error("combined parameter list not handled")
	}
}

func TestScannerIgnoresUnrelated(t *testing.T) {
	b := vt.NewBuffer(20, 5, 100)
	s := newScanner(b)
	s.feed([]byte("\x1b[?25l\x1b[2J\x1b[1;1H"))
	if b.AltScreen() || b.MouseTracking() {
		t.Error("unrelated sequences flipped a tracked mode")
	}
}

func TestScannerText(t *testing.T) {
	b := vt.NewBuffer(20, 5, 100)
	s := newScanner(b)

	s.feed([]byte("one\r\ntw"))
	s.feed([]byte("o\x1b[31m!"))

	if got := rowText(b, 0); got != "one" {
		t.Errorf("row 0 = %q, want one", got)
	}
	if got := rowText(b, 1); got != "two!" {
		t.Errorf("row 1 = %q, want two!", got)
	}
}

func TestScannerTitle(t *testing.T) {
	tests := []struct {
		name  string
		feeds []string
		title string
		ok    bool
	}{
		{"bel terminated", []string{"\x1b]0;vim README\x07"}, "vim README", true},
		{"st terminated", []string{"\x1b]2;htop\x1b\\"}, "htop", true},
		{"last one wins", []string{"\x1b]0;first\x07\x1b]0;second\x07"}, "second", true},
		{"no title", []string{"plain output"}, "", false},
		{"unterminated", []string{"\x1b]0;dangling"}, "", false},
		{"split across feeds", []string{"\x1b]0;dang", "ling\x07"}, "dangling", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := vt.NewBuffer(20, 5, 100)
			s := newScanner(b)
			var title string
			var ok bool
			for _, chunk := range tt.feeds {
				title, ok = s.feed([]byte(chunk))
			}
			if ok != tt.ok || (ok && title != tt.title) {
				t.Errorf("feed = (%q, %v), want (%q, %v)", title, ok, tt.title, tt.ok)
			}
		})
	}
}

func TestScannerClearScrollback(t *testing.T) {
	b := vt.NewBuffer(20, 2, 100)
	s := newScanner(b)

	s.feed([]byte("1\n2\n3\n4\n"))
	if b.Metrics().Total <= b.Rows() {
		t.Fatal("no scrollback accumulated")
	}
	b.Scroll(-2)
	if b.AtBottom() {
		t.Fatal("scroll into history did not move the viewport")
	}

	s.feed([]byte("\x1b[3J"))
	if got := b.Metrics().Total; got != b.Rows() {
		t.Errorf("total after ED 3 = %d, want %d", got, b.Rows())
	}
	if !b.AtBottom() {
		t.Error("viewport not snapped back after the scrollback cleared")
	}
}

func TestScannerHyperlink(t *testing.T) {
	b := vt.NewBuffer(40, 5, 100)
	s := newScanner(b)

	s.feed([]byte("\x1b]8;;https://example.com\x1b\\docs\x1b]8;;\x1b\\ more"))

	line := b.ViewportLine(0)
	if got := line[0].Link.URL; got != "https://example.com" {
		t.Errorf("linked cell URL = %q", got)
	}
	if got := line[5].Link.URL; got != "" {
		t.Errorf("cell after the OSC 8 close still linked: %q", got)
	}
}

func TestTitleConcurrentAccess(t *testing.T) {
	s := &Session{}
	done := make(chan struct{})
	go func() {
		for range 1000 {
			s.setTitle("build")
		}
		close(done)
	}()
	for range 1000 {
		_ = s.Title()
	}
	<-done
	if got := s.Title(); got != "build" {
		t.Errorf("Title = %q, want build", got)
	}
}

func TestShellTitle(t *testing.T) {
	if got := shellTitle("/usr/bin/zsh"); got != "zsh" {
		t.Errorf("shellTitle = %q, want zsh", got)
	}
	if got := shellTitle("bash"); got != "bash" {
		t.Errorf("shellTitle = %q, want bash", got)
	}
}
