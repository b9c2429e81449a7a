package preview

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/mssjo/katelistings-go/highlighting"
)

// lineEmitter renders styled spans as lipgloss-wrapped text, accumulating
// one fully-rendered string per source line. It implements
// highlighting.Emitter, mirroring the open-span tracking of
// highlighting.LaTeXEmitter and ansi.Emitter.
type lineEmitter struct {
	lines []string
	cur   strings.Builder

	open  *highlighting.Style
	style lipgloss.Style
}

func newLineEmitter() *lineEmitter {
	return &lineEmitter{}
}

// OpenSpan begins a span styled s, closing any differently-styled span
// already open first.
func (e *lineEmitter) OpenSpan(s *highlighting.Style) {
	if e.open == s {
		return
	}

	e.CloseSpan()
	e.open = s

	if s == nil {
		return
	}

	a := s.Attrs()

	e.style = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#" + a.FGColour)).
		Background(lipgloss.Color("#" + a.BGColour)).
		Bold(a.Bold).
		Italic(a.Italic).
		Underline(a.Underline).
		Strikethrough(a.Strikethrough)
}

// CloseSpan flushes the buffered run through the current lipgloss style.
func (e *lineEmitter) CloseSpan() {
	if e.open == nil {
		return
	}

	e.flush()
	e.open = nil
}

func (e *lineEmitter) flush() {
	if e.cur.Len() == 0 {
		return
	}

	e.lines[len(e.lines)-1] += e.style.Render(e.cur.String())
	e.cur.Reset()
}

// WriteRune buffers r for the next flush, so a run of same-styled
// characters is rendered through lipgloss in one call rather than one per
// rune.
func (e *lineEmitter) WriteRune(r rune) {
	if len(e.lines) == 0 {
		e.lines = append(e.lines, "")
	}

	e.cur.WriteRune(r)
}

// Newline closes out the current line and starts a new, empty one.
func (e *lineEmitter) Newline() {
	e.lines = append(e.lines, "")
}
