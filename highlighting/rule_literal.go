package highlighting

import "strings"

// resolveSpec applies dynamic %N substitution to a rule's raw char/String
// attribute text if the rule is dynamic, otherwise returns it unchanged.
func resolveSpec(dynamic bool, spec string, parent Match) string {
	if !dynamic {
		return spec
	}
	return substituteDynamic(spec, parent)
}

// DetectChar matches a single literal character, read from CharSpec (which
// may be a %N placeholder when the rule is dynamic).
type DetectChar struct {
	base
	CharSpec string
}

// NewDetectChar constructs a detect_char rule.
func NewDetectChar(cfg RuleConfig, charSpec string) *DetectChar {
	return &DetectChar{base: newBase(cfg), CharSpec: charSpec}
}

func (r *DetectChar) Match(buf []rune, pos int, parent Match, leadingSpace bool) (Match, bool) {
	return dispatch(&r.base, buf, pos, parent, leadingSpace, r.body)
}

func (r *DetectChar) body(buf []rune, pos int, parent Match) (int, []string, bool) {
	spec := []rune(resolveSpec(r.dynamic, r.CharSpec, parent))
	if len(spec) == 0 || pos >= len(buf) || buf[pos] != spec[0] {
		return 0, nil, false
	}
	return 1, nil, true
}

// Detect2Chars matches two consecutive literal characters.
type Detect2Chars struct {
	base
	Char0, Char1 rune
}

// NewDetect2Chars constructs a detect_2_chars rule.
func NewDetect2Chars(cfg RuleConfig, c0, c1 rune) *Detect2Chars {
	return &Detect2Chars{base: newBase(cfg), Char0: c0, Char1: c1}
}

func (r *Detect2Chars) Match(buf []rune, pos int, parent Match, leadingSpace bool) (Match, bool) {
	return dispatch(&r.base, buf, pos, parent, leadingSpace, r.body)
}

func (r *Detect2Chars) body(buf []rune, pos int, _ Match) (int, []string, bool) {
	if pos+1 >= len(buf) || buf[pos] != r.Char0 || buf[pos+1] != r.Char1 {
		return 0, nil, false
	}
	return 2, nil, true
}

// AnyChar matches a single character drawn from a set of candidates.
type AnyChar struct {
	base
	Chars string
}

// NewAnyChar constructs an any_char rule.
func NewAnyChar(cfg RuleConfig, chars string) *AnyChar {
	return &AnyChar{base: newBase(cfg), Chars: chars}
}

func (r *AnyChar) Match(buf []rune, pos int, parent Match, leadingSpace bool) (Match, bool) {
	return dispatch(&r.base, buf, pos, parent, leadingSpace, r.body)
}

func (r *AnyChar) body(buf []rune, pos int, _ Match) (int, []string, bool) {
	if pos >= len(buf) || !strings.ContainsRune(r.Chars, buf[pos]) {
		return 0, nil, false
	}
	return 1, nil, true
}

// StringDetect matches a fixed literal substring, optionally
// case-insensitively, and (when dynamic) after %N substitution.
type StringDetect struct {
	base
	Spec             string
	CaseInsensitive bool
}

// NewStringDetect constructs a string_detect rule.
func NewStringDetect(cfg RuleConfig, spec string, caseInsensitive bool) *StringDetect {
	return &StringDetect{base: newBase(cfg), Spec: spec, CaseInsensitive: caseInsensitive}
}

func (r *StringDetect) Match(buf []rune, pos int, parent Match, leadingSpace bool) (Match, bool) {
	return dispatch(&r.base, buf, pos, parent, leadingSpace, r.body)
}

func (r *StringDetect) body(buf []rune, pos int, parent Match) (int, []string, bool) {
	spec := []rune(resolveSpec(r.dynamic, r.Spec, parent))
	n := len(spec)
	if n == 0 || pos+n > len(buf) {
		return 0, nil, false
	}
	candidate := buf[pos : pos+n]
	if r.CaseInsensitive {
		if !strings.EqualFold(string(candidate), string(spec)) {
			return 0, nil, false
		}
	} else {
		for i := range spec {
			if candidate[i] != spec[i] {
				return 0, nil, false
			}
		}
	}
	return n, nil, true
}

// WordDetect matches a fixed literal substring that also respects word
// boundaries on both ends, the way Kate's word_detect rule does.
type WordDetect struct {
	base
	Word            string
	CaseInsensitive bool
}

// NewWordDetect constructs a word_detect rule.
func NewWordDetect(cfg RuleConfig, word string, caseInsensitive bool) *WordDetect {
	return &WordDetect{base: newBase(cfg), Word: word, CaseInsensitive: caseInsensitive}
}

func (r *WordDetect) Match(buf []rune, pos int, parent Match, leadingSpace bool) (Match, bool) {
	return dispatch(&r.base, buf, pos, parent, leadingSpace, r.body)
}

func (r *WordDetect) body(buf []rune, pos int, _ Match) (int, []string, bool) {
	spec := []rune(r.Word)
	n := len(spec)
	if n == 0 || pos+n > len(buf) {
		return 0, nil, false
	}
	if wordCharAt(buf, pos-1) || wordCharAt(buf, pos+n) {
		return 0, nil, false
	}
	candidate := buf[pos : pos+n]
	if r.CaseInsensitive {
		if !strings.EqualFold(string(candidate), string(spec)) {
			return 0, nil, false
		}
	} else {
		for i := range spec {
			if candidate[i] != spec[i] {
				return 0, nil, false
			}
		}
	}
	return n, nil, true
}

// RangeDetect matches Char0 followed by the first subsequent Char1 on the
// same line.
type RangeDetect struct {
	base
	Char0, Char1 rune
}

// NewRangeDetect constructs a range_detect rule.
func NewRangeDetect(cfg RuleConfig, c0, c1 rune) *RangeDetect {
	return &RangeDetect{base: newBase(cfg), Char0: c0, Char1: c1}
}

func (r *RangeDetect) Match(buf []rune, pos int, parent Match, leadingSpace bool) (Match, bool) {
	return dispatch(&r.base, buf, pos, parent, leadingSpace, r.body)
}

func (r *RangeDetect) body(buf []rune, pos int, _ Match) (int, []string, bool) {
	if pos >= len(buf) || buf[pos] != r.Char0 {
		return 0, nil, false
	}
	for i := pos + 1; i < len(buf); i++ {
		if buf[i] == r.Char1 {
			return i - pos + 1, nil, true
		}
	}
	return 0, nil, false
}

// LineContinue matches Char only when it is the final character of the
// buffer (the classic trailing-backslash line-continuation marker).
type LineContinue struct {
	base
	Char rune
}

// NewLineContinue constructs a line_continue rule.
func NewLineContinue(cfg RuleConfig, char rune) *LineContinue {
	return &LineContinue{base: newBase(cfg), Char: char}
}

func (r *LineContinue) Match(buf []rune, pos int, parent Match, leadingSpace bool) (Match, bool) {
	return dispatch(&r.base, buf, pos, parent, leadingSpace, r.body)
}

func (r *LineContinue) body(buf []rune, pos int, _ Match) (int, []string, bool) {
	if pos != len(buf)-1 || buf[pos] != r.Char {
		return 0, nil, false
	}
	return 1, nil, true
}

func (r *DetectChar) WithStyle(s *Style) Rule   { cp := *r; cp.style = s; return &cp }
func (r *Detect2Chars) WithStyle(s *Style) Rule { cp := *r; cp.style = s; return &cp }
func (r *AnyChar) WithStyle(s *Style) Rule      { cp := *r; cp.style = s; return &cp }
func (r *StringDetect) WithStyle(s *Style) Rule { cp := *r; cp.style = s; return &cp }
func (r *WordDetect) WithStyle(s *Style) Rule   { cp := *r; cp.style = s; return &cp }
func (r *RangeDetect) WithStyle(s *Style) Rule  { cp := *r; cp.style = s; return &cp }
func (r *LineContinue) WithStyle(s *Style) Rule { cp := *r; cp.style = s; return &cp }
