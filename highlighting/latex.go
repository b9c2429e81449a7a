package highlighting

import (
	"fmt"
	"io"
	"strings"
	"unicode"
)

// Mode selects how LaTeXEmitter renders a styled span.
type Mode int

const (
	// ModeInline wraps each span in a stack of nested formatting braces
	// (\colorbox, \textcolor, \textbf, ...).
	ModeInline Mode = iota
	// ModeCommand wraps each span in a single \<language><style>{...}
	// macro invocation, for documents that define those macros themselves.
	ModeCommand
)

// LaTeXEmitter renders styled spans as LaTeX source, in either inline or
// command mode. It tracks the currently open style so CloseSpan knows how
// many closing braces to emit.
type LaTeXEmitter struct {
	w        io.Writer
	mode     Mode
	langName string

	open        *Style
	braceCount  int // how many closing braces CloseSpan must emit (1 in command mode)
}

// NewLaTeXEmitter returns an Emitter writing LaTeX to w. langName is only
// used in ModeCommand, to build the `\<language><style>{...}` macro name.
func NewLaTeXEmitter(w io.Writer, mode Mode, langName string) *LaTeXEmitter {
	return &LaTeXEmitter{w: w, mode: mode, langName: langName}
}

// OpenSpan begins a span styled s, closing any differently-styled span
// already open first. Calling OpenSpan again with the style already open
// is a no-op. Language.Highlight closes every span before opening the
// next, so each no-match fallback character still gets its own scope.
func (e *LaTeXEmitter) OpenSpan(s *Style) {
	if e.open == s {
		return
	}
	e.CloseSpan()
	e.open = s
	if s == nil {
		return
	}
	switch e.mode {
	case ModeCommand:
		e.openCommand(s)
	default:
		e.openInline(s)
	}
}

func (e *LaTeXEmitter) openInline(s *Style) {
	a := s.Attrs()
	n := 0
	if a.BGColour != "" && a.BGColour != "FFFFFF" {
		fmt.Fprintf(e.w, `\colorbox[HTML]{%s}{`, a.BGColour)
		n++
	}
	fg := a.FGColour
	if fg == "" {
		fg = "000000"
	}
	fmt.Fprintf(e.w, `\textcolor[HTML]{%s}{`, fg)
	n++
	if a.Bold {
		io.WriteString(e.w, `\textbf{`)
		n++
	}
	if a.Italic {
		io.WriteString(e.w, `\textit{`)
		n++
	}
	if a.Underline {
		io.WriteString(e.w, `\underline{`)
		n++
	}
	if a.Strikethrough {
		io.WriteString(e.w, `\sout{`)
		n++
	}
	e.braceCount = n
}

func (e *LaTeXEmitter) openCommand(s *Style) {
	fmt.Fprintf(e.w, `\%s%s{`, EscapeLaTeXName(e.langName), EscapeLaTeXName(s.Name))
	e.braceCount = 1
}

// CloseSpan ends whatever span is currently open. It is safe to call when
// nothing is open.
func (e *LaTeXEmitter) CloseSpan() {
	if e.open == nil {
		return
	}
	for i := 0; i < e.braceCount; i++ {
		io.WriteString(e.w, "}")
	}
	e.open = nil
	e.braceCount = 0
}

// WriteRune escapes and writes a single source character: backslash and
// braces are escaped, NUL/\f/\v/\r are dropped, everything else passes
// through unchanged.
func (e *LaTeXEmitter) WriteRune(r rune) {
	switch r {
	case 0, '\f', '\v', '\r':
		return
	case '\\':
		io.WriteString(e.w, `\textbackslash{}`)
	case '{':
		io.WriteString(e.w, `\{`)
	case '}':
		io.WriteString(e.w, `\}`)
	default:
		fmt.Fprintf(e.w, "%c", r)
	}
}

// Newline writes a literal line break, meaningful inside the alltt
// environment this emitter's output is meant to be wrapped in.
func (e *LaTeXEmitter) Newline() {
	io.WriteString(e.w, "\n")
}

var digitWords = [10]string{
	"Zero", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
}

// EscapeLaTeXName turns an arbitrary name into a string safe to use as
// (part of) a LaTeX command name: digits become English words, '+' becomes
// 'X', '#' becomes "Sharp", and every other non-letter is dropped.
func EscapeLaTeXName(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteString(digitWords[r-'0'])
		case r == '+':
			b.WriteByte('X')
		case r == '#':
			b.WriteString("Sharp")
		case unicode.IsLetter(r):
			b.WriteRune(r)
		}
	}
	return b.String()
}

// WriteAlltt highlights r with lang and writes the result to w wrapped in
// a standalone \begin{alltt}...\end{alltt} block.
func WriteAlltt(w io.Writer, lang *Language, r io.Reader, mode Mode) error {
	io.WriteString(w, "\\begin{alltt}\n")
	if err := lang.Highlight(r, NewLaTeXEmitter(w, mode, lang.Name)); err != nil {
		return err
	}
	io.WriteString(w, "\\end{alltt}\n")
	return nil
}
