package highlighting

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/dlclark/regexp2"
)

// AnchoredRegex wraps a compiled regexp2.Regexp and only reports a match
// when it starts exactly at the requested position, since Kate's reg_expr
// is documented as anchored-at-pos rather than "find anywhere after pos".
type AnchoredRegex struct {
	re *regexp2.Regexp
}

// CompileAnchoredRegex compiles pattern with the ECMAScript dialect, the
// same dialect Kate's Qt-regex-based reg_expr uses, since it supports the
// lookaround and backreferences Go's RE2-based regexp package cannot.
func CompileAnchoredRegex(pattern string, caseInsensitive bool) (*AnchoredRegex, error) {
	opts := regexp2.ECMAScript
	if caseInsensitive {
		opts |= regexp2.IgnoreCase
	}
	re, err := regexp2.Compile(pattern, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrRegexCompile, pattern, err)
	}
	return &AnchoredRegex{re: re}, nil
}

// MatchAt reports whether ar's pattern matches buf starting exactly at pos,
// returning the match length and its capture groups (index 0 is the whole
// match) on success.
func (ar *AnchoredRegex) MatchAt(buf []rune, pos int) (int, []string, bool) {
	m, err := ar.re.FindRunesMatchStartingAt(buf, pos)
	if err != nil || m == nil || m.Index != pos {
		return 0, nil, false
	}
	groups := make([]string, 0, len(m.Groups()))
	for _, g := range m.Groups() {
		groups = append(groups, g.String())
	}
	return m.Length, groups, true
}

// RegExpr matches an ECMAScript-dialect regular expression anchored at the
// current position, optionally after %N substitution when dynamic.
type RegExpr struct {
	base
	Pattern         string
	CaseInsensitive bool

	mu       sync.Mutex
	compiled *AnchoredRegex // cache for the non-dynamic case
	dynCache map[string]*AnchoredRegex
	broken   bool // set once compilation has failed; rule then always no-matches
}

// NewRegExpr constructs a reg_expr rule. The pattern is compiled lazily on
// first match, not at construction, so a broken pattern in a rule that is
// never reached does not fail the load.
func NewRegExpr(cfg RuleConfig, pattern string, caseInsensitive bool) *RegExpr {
	return &RegExpr{base: newBase(cfg), Pattern: pattern, CaseInsensitive: caseInsensitive}
}

func (r *RegExpr) Match(buf []rune, pos int, parent Match, leadingSpace bool) (Match, bool) {
	return dispatch(&r.base, buf, pos, parent, leadingSpace, r.body)
}

func (r *RegExpr) body(buf []rune, pos int, parent Match) (int, []string, bool) {
	ar, ok := r.resolve(parent)
	if !ok {
		return 0, nil, false
	}
	return ar.MatchAt(buf, pos)
}

// resolve returns the compiled pattern to use for this invocation: the
// single cached pattern for a non-dynamic rule, or a per-substitution
// cache entry for a dynamic one, since the same capture groups recur often
// within one file.
func (r *RegExpr) resolve(parent Match) (*AnchoredRegex, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.broken {
		return nil, false
	}

	pattern := resolveSpec(r.dynamic, r.Pattern, parent)

	if !r.dynamic {
		if r.compiled == nil {
			ar, err := CompileAnchoredRegex(pattern, r.CaseInsensitive)
			if err != nil {
				slog.Warn("regex failed to compile, rule disabled for remainder of job",
					slog.String("pattern", pattern), slog.Any("error", err))
				r.broken = true
				return nil, false
			}
			r.compiled = ar
		}
		return r.compiled, true
	}

	if r.dynCache == nil {
		r.dynCache = make(map[string]*AnchoredRegex)
	}
	if ar, ok := r.dynCache[pattern]; ok {
		return ar, true
	}
	ar, err := CompileAnchoredRegex(pattern, r.CaseInsensitive)
	if err != nil {
		slog.Warn("dynamic regex failed to compile, rule disabled for remainder of job",
			slog.String("pattern", pattern), slog.Any("error", err))
		r.broken = true
		return nil, false
	}
	r.dynCache[pattern] = ar
	return ar, true
}

// WithStyle returns a copy of r with its style replaced. The compiled
// pattern cache is not copied (a sync.Mutex must never be copied while
// potentially in use); the clone recompiles lazily on first match instead,
// which is cheap since cloning only happens once per include, at load time.
func (r *RegExpr) WithStyle(s *Style) Rule {
	cp := &RegExpr{
		base:            r.base,
		Pattern:         r.Pattern,
		CaseInsensitive: r.CaseInsensitive,
	}
	cp.style = s

	return cp
}
