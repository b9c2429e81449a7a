package highlighting

import (
	"bufio"
	"io"
)

// maxZeroLengthDispatches bounds consecutive zero-length (lookahead) rule
// matches at a single position, guarding against a hand-written definition
// whose lookahead rules re-push forever without ever consuming input.
const maxZeroLengthDispatches = 4096

// Emitter is the backend-agnostic sink Language.Highlight writes styled
// spans to. The LaTeX, ANSI, and interactive-preview backends each
// implement it. Every emitted span, whether a multi-character rule match
// or a single no-match fallback character, is its own OpenSpan/CloseSpan
// pair; CloseSpan is always safe to call when nothing is open.
type Emitter interface {
	OpenSpan(s *Style)
	WriteRune(r rune)
	CloseSpan()
	Newline()
}

// Language is a named collection of contexts, item styles, and keyword
// lists, built once by package katedef and safe to share read-only across
// concurrent highlighting jobs (each of which owns its own ContextStack).
type Language struct {
	Name          string
	CaseSensitive bool

	KeywordLists map[string]*KeywordSet
	Styles       map[string]*Style
	Contexts     map[string]*Context

	DefaultContext *Context

	// EmptyLineRules holds the language's emptyLines regexes: anchored
	// patterns consulted only to decide whether an apparently-empty line
	// should be treated as empty.
	EmptyLineRules []*AnchoredRegex
}

// IsEmptyLine reports whether buf should be handled via empty_context:
// either it is literally empty, or one of l's emptyLines regexes matches
// it from the start.
func (l *Language) IsEmptyLine(buf []rune) bool {
	if len(buf) == 0 {
		return true
	}
	for _, re := range l.EmptyLineRules {
		if _, _, ok := re.MatchAt(buf, 0); ok {
			return true
		}
	}
	return false
}

// spaceLike reports whether r is one of the three whitespace characters
// that never clear leading_space (tab, newline, space); every other
// character, including the control characters a LaTeX emitter drops
// outright, clears it.
func spaceLike(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n'
}

// Highlight reads r line by line, driving a fresh ContextStack through
// l's contexts, and writes every produced span to e.
func (l *Language) Highlight(r io.Reader, e Emitter) error {
	stack := NewContextStack(l.DefaultContext)
	leadingSpace := true

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	for scanner.Scan() {
		buf := []rune(scanner.Text())
		pos := 0
		zeroRun := 0

		for {
			if pos == 0 && l.IsEmptyLine(buf) {
				stack.Top().EmptySwitch.Apply(stack, stack.TopMatch().Groups)
				break
			}
			if pos == len(buf) {
				e.CloseSpan()
				stack.Top().EndSwitch.Apply(stack, stack.TopMatch().Groups)
				break
			}

			length, style, ok := stack.Top().ApplyRules(buf, pos, leadingSpace, stack)

			switch {
			case !ok:
				attr := stack.Top().Attribute
				e.CloseSpan()
				e.OpenSpan(attr)
				c := buf[pos]
				e.WriteRune(c)
				if !spaceLike(c) {
					leadingSpace = false
				}
				e.CloseSpan()
				pos++
				zeroRun = 0

			case length > 0:
				e.CloseSpan()
				e.OpenSpan(style)
				for _, c := range buf[pos : pos+length] {
					e.WriteRune(c)
					if !spaceLike(c) {
						leadingSpace = false
					}
				}
				e.CloseSpan()
				pos += length
				zeroRun = 0

			default:
				// length == 0: a lookahead rule matched. The stack was
				// already mutated by ApplyRules; just re-dispatch at the
				// same position in the new top context.
				zeroRun++
				if zeroRun > maxZeroLengthDispatches {
					e.CloseSpan()
					e.OpenSpan(stack.Top().Attribute)
					e.WriteRune(buf[pos])
					if !spaceLike(buf[pos]) {
						leadingSpace = false
					}
					e.CloseSpan()
					pos++
					zeroRun = 0
				}
			}
		}

		e.Newline()
	}

	return scanner.Err()
}
