package highlighting

import (
	"fmt"
	"strings"
)

// Match is the result of a successful Rule match: the number of runes
// consumed (0 for a lookahead rule) and whatever capture groups the match
// produced, indexed the way %N substitution expects (Groups[0] is the
// whole match).
type Match struct {
	Length int
	Groups []string
}

// Rule is a single atomic matcher tried against a buffer at a position.
// Concrete variants (DetectChar, RegExpr, Keyword, ...) each embed base for
// the fields and gating common to every rule, and supply their own Match
// method built on top of dispatch and a variant-specific body.
type Rule interface {
	// Match attempts to match buf at pos. parent is the match recorded when
	// the current top context was pushed, consulted by dynamic rules for
	// %N substitution. leadingSpace reports whether only whitespace has
	// been seen so far on the current line.
	Match(buf []rune, pos int, parent Match, leadingSpace bool) (Match, bool)

	// Style is the style this rule's match should be rendered in, or nil
	// to fall back to the owning context's attribute.
	Style() *Style

	// Switch is the context-switch to apply when this rule matches.
	Switch() ContextSwitch
}

// StyleCloner is implemented by every concrete Rule variant. It returns a
// shallow copy of the rule with its style replaced, leaving the receiver
// untouched. katedef uses this when resolving an IncludeRules directive with
// includeAttrib=true, which re-points each included rule's style at the
// including language's own style table instead of the source language's.
type StyleCloner interface {
	WithStyle(s *Style) Rule
}

// base holds the fields and gating logic common to every rule variant:
// style, context-switch, and the first_non_space/column/dynamic/lookahead
// flags. It is embedded by value in every concrete rule type.
type base struct {
	style     *Style
	sw        ContextSwitch
	dynamic   bool
	lookahead bool

	firstNonSpace bool
	hasColumn     bool
	column        int
}

func (b *base) Style() *Style      { return b.style }
func (b *base) Switch() ContextSwitch { return b.sw }

// gate applies the two positional universal gates (first_non_space and
// column); it does not evaluate lookahead, which is handled after the
// variant body runs.
func (b *base) gate(buf []rune, pos int, leadingSpace bool) bool {
	if b.firstNonSpace {
		if !leadingSpace {
			return false
		}
		if pos < len(buf) && isASCIISpace(buf[pos]) {
			return false
		}
	}
	if b.hasColumn && pos != b.column {
		return false
	}
	return true
}

func isASCIISpace(r rune) bool {
	return r == ' ' || r == '\t'
}

// ruleBody is the variant-specific matching logic: given the buffer,
// position, and parent match, it reports the matched length and any
// capture groups, or ok=false for no match.
type ruleBody func(buf []rune, pos int, parent Match) (length int, groups []string, ok bool)

// dispatch implements the full three-gate, lookahead-truncating Match
// contract described in the rule-matcher design, shared by every concrete
// rule type's Match method.
func dispatch(b *base, buf []rune, pos int, parent Match, leadingSpace bool, body ruleBody) (Match, bool) {
	if !b.gate(buf, pos, leadingSpace) {
		return Match{}, false
	}
	length, groups, ok := body(buf, pos, parent)
	if !ok {
		return Match{}, false
	}
	if b.lookahead {
		length = 0
	}
	return Match{Length: length, Groups: groups}, true
}

// substituteDynamic replaces each literal %N (N a single digit) in s with
// the N-th capture group of parent, and %% with a literal %. A reference to
// a group beyond parent.Groups substitutes to empty. Operates byte-wise,
// which is safe for UTF-8 text since '%' and ASCII digits never appear as
// continuation bytes of a multi-byte rune.
func substituteDynamic(s string, parent Match) string {
	if !strings.ContainsRune(s, '%') {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '%' || i+1 >= len(s) {
			b.WriteByte(c)
			continue
		}
		n := s[i+1]
		switch {
		case n == '%':
			b.WriteByte('%')
			i++
		case n >= '0' && n <= '9':
			idx := int(n - '0')
			if idx < len(parent.Groups) {
				b.WriteString(parent.Groups[idx])
			}
			i++
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// RuleConfig bundles the fields every rule constructor accepts regardless
// of variant, keeping the katedef constructors from each taking a long
// parameter list.
type RuleConfig struct {
	Style         *Style
	Switch        ContextSwitch
	Dynamic       bool
	Lookahead     bool
	FirstNonSpace bool
	HasColumn     bool
	Column        int
}

func newBase(cfg RuleConfig) base {
	return base{
		style:         cfg.Style,
		sw:            cfg.Switch,
		dynamic:       cfg.Dynamic,
		lookahead:     cfg.Lookahead,
		firstNonSpace: cfg.FirstNonSpace,
		hasColumn:     cfg.HasColumn,
		column:        cfg.Column,
	}
}

// ContextSwitch is a directive to pop Pops frames from a ContextStack and,
// if Push is set, push Target afterwards. Pops saturate at the stack's
// bottom frame; see ContextStack.
type ContextSwitch struct {
	Pops   int
	Push   bool
	Target *Context
}

// Apply pops cs.Pops frames from stack and, if cs.Push, pushes cs.Target
// carrying groups as its new top match.
func (cs ContextSwitch) Apply(stack *ContextStack, groups []string) {
	for i := 0; i < cs.Pops; i++ {
		stack.pop()
	}
	if cs.Push {
		stack.push(cs.Target, groups)
	}
}

// ContextLookup resolves a context name to a *Context, used by
// ParseContextSwitch to validate !<name> and bare <name> targets.
type ContextLookup func(name string) (*Context, bool)

// ParseContextSwitch parses a Kate context-switch string: a run of zero or
// more "#pop" tokens, then optionally "#stay" (alone), "!<name>", or a bare
// "<name>" (only legal at position 0, i.e. with no preceding #pop). An
// empty string means "switch to the default context".
func ParseContextSwitch(s string, lookup ContextLookup, defaultCtx *Context) (ContextSwitch, error) {
	if s == "" {
		return ContextSwitch{Push: true, Target: defaultCtx}, nil
	}

	pops := 0
	rest := s
	for strings.HasPrefix(rest, "#pop") {
		pops++
		rest = rest[len("#pop"):]
	}

	switch {
	case rest == "":
		return ContextSwitch{Pops: pops}, nil

	case rest == "#stay":
		if pops != 0 {
			return ContextSwitch{}, fmt.Errorf("%w: #stay cannot follow #pop in %q", ErrMalformedContextSwitch, s)
		}
		return ContextSwitch{}, nil

	case strings.HasPrefix(rest, "!"):
		name := rest[1:]
		target, ok := lookup(name)
		if !ok {
			return ContextSwitch{}, fmt.Errorf("%w: context %q in %q", ErrUndefinedReference, name, s)
		}
		return ContextSwitch{Pops: pops, Push: true, Target: target}, nil

	default:
		if pops != 0 {
			return ContextSwitch{}, fmt.Errorf("%w: bare context name %q must appear at the start of %q", ErrMalformedContextSwitch, rest, s)
		}
		target, ok := lookup(rest)
		if !ok {
			return ContextSwitch{}, fmt.Errorf("%w: context %q", ErrUndefinedReference, rest)
		}
		return ContextSwitch{Push: true, Target: target}, nil
	}
}
