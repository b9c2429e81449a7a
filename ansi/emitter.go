package ansi

import (
	"fmt"
	"io"

	"github.com/mssjo/katelistings-go/highlighting"
)

// reset is the SGR sequence that clears every attribute opened by OpenSpan.
const reset = "\033[0m"

// Emitter renders styled spans as truecolor SGR escape sequences, suitable
// for piping straight to a terminal or to "less -R". It implements
// highlighting.Emitter.
type Emitter struct {
	w    io.Writer
	open *highlighting.Style
}

// NewEmitter returns an Emitter writing ANSI escapes to w.
func NewEmitter(w io.Writer) *Emitter {
	return &Emitter{w: w}
}

// OpenSpan begins a span styled s, closing any differently-styled span
// already open first. Calling it again with the style already open is a
// no-op, the same as highlighting.LaTeXEmitter.
func (e *Emitter) OpenSpan(s *highlighting.Style) {
	if e.open == s {
		return
	}

	e.CloseSpan()
	e.open = s

	if s == nil {
		return
	}

	a := s.Attrs()

	fg, _ := hexToRGB(a.FGColour)
	bg, _ := hexToRGB(a.BGColour)

	fmt.Fprintf(e.w, "\033[38;2;%d;%d;%dm\033[48;2;%d;%d;%dm", fg[0], fg[1], fg[2], bg[0], bg[1], bg[2])

	if a.Bold {
		io.WriteString(e.w, "\033[1m")
	}
	if a.Italic {
		io.WriteString(e.w, "\033[3m")
	}
	if a.Underline {
		io.WriteString(e.w, "\033[4m")
	}
	if a.Strikethrough {
		io.WriteString(e.w, "\033[9m")
	}
}

// CloseSpan ends whatever span is currently open. Safe to call when nothing
// is open.
func (e *Emitter) CloseSpan() {
	if e.open == nil {
		return
	}

	io.WriteString(e.w, reset)
	e.open = nil
}

// WriteRune writes r unescaped; ANSI output has no markup characters to
// protect against the way LaTeX does.
func (e *Emitter) WriteRune(r rune) {
	fmt.Fprintf(e.w, "%c", r)
}

// Newline writes a literal line break. Language.Highlight always closes
// the open span before calling Newline, the same as for LaTeXEmitter.
func (e *Emitter) Newline() {
	io.WriteString(e.w, "\n")
}

// hexToRGB decodes a normalized, 6-hex-digit colour string (as produced by
// highlighting.NormalizeColour) into its three byte components. A malformed
// string (which should not occur post-load) decodes to black.
func hexToRGB(s string) ([3]byte, bool) {
	var rgb [3]byte

	if len(s) != 6 {
		return rgb, false
	}

	for i := range 3 {
		v, ok := hexByte(s[i*2], s[i*2+1])
		if !ok {
			return [3]byte{}, false
		}

		rgb[i] = v
	}

	return rgb, true
}

func hexByte(hi, lo byte) (byte, bool) {
	h, ok := hexNibble(hi)
	if !ok {
		return 0, false
	}

	l, ok := hexNibble(lo)
	if !ok {
		return 0, false
	}

	return h<<4 | l, true
}

func hexNibble(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}
