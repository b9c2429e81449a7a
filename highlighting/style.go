package highlighting

import (
	"fmt"
	"strings"
)

// Attrs is a fully-resolved set of rendering attributes: every field has a
// concrete value, with no remaining "inherit from fallback" gaps.
type Attrs struct {
	FGColour      string // uppercase RRGGBB, never empty once resolved
	BGColour      string // uppercase RRGGBB, never empty once resolved
	Italic        bool
	Bold          bool
	Underline     bool
	Strikethrough bool
}

// Style is a named style record. Fields left unset (empty colour strings,
// nil bool pointers) inherit from Fallback at resolve time; a non-nil bool
// pointer distinguishes "explicitly set to false" from "unset".
type Style struct {
	Name     string
	Fallback *Style

	FGColour string
	BGColour string

	Italic        *bool
	Bold          *bool
	Underline     *bool
	Strikethrough *bool

	resolved Attrs
	isResolved bool
}

// defaultAttrs is used when a style has no fallback chain reaching a
// fully-specified root: black text on a white background, no decoration.
var defaultAttrs = Attrs{FGColour: "000000", BGColour: "FFFFFF"}

// resolve computes s.resolved by filling every attribute s leaves unset
// from s.Fallback, resolving the fallback first if needed. This is the same
// dst-wins/src-fills-gaps shape as merging schema fields: fields set here
// win outright; an unset field inherits from the fallback chain.
func (s *Style) resolve() {
	a := Attrs{FGColour: s.FGColour, BGColour: s.BGColour}
	if s.Italic != nil {
		a.Italic = *s.Italic
	}
	if s.Bold != nil {
		a.Bold = *s.Bold
	}
	if s.Underline != nil {
		a.Underline = *s.Underline
	}
	if s.Strikethrough != nil {
		a.Strikethrough = *s.Strikethrough
	}

	base := defaultAttrs
	if s.Fallback != nil {
		if !s.Fallback.isResolved {
			s.Fallback.resolve()
		}
		base = s.Fallback.resolved
	}

	if a.FGColour == "" {
		a.FGColour = base.FGColour
	}
	if a.BGColour == "" {
		a.BGColour = base.BGColour
	}
	if s.Italic == nil {
		a.Italic = base.Italic
	}
	if s.Bold == nil {
		a.Bold = base.Bold
	}
	if s.Underline == nil {
		a.Underline = base.Underline
	}
	if s.Strikethrough == nil {
		a.Strikethrough = base.Strikethrough
	}

	s.resolved = a
	s.isResolved = true
}

// Attrs returns the fully-resolved attributes for s, resolving on first use.
// A Style is immutable after the language that owns it finishes loading, so
// the result may be cached freely by callers.
func (s *Style) Attrs() Attrs {
	if !s.isResolved {
		s.resolve()
	}
	return s.resolved
}

// NormalizeColour validates and upper-cases a colour string, accepting an
// optional leading '#' (the JSON palette format) and returning a bare
// 6-digit uppercase RRGGBB string.
func NormalizeColour(s string) (string, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return "", fmt.Errorf("%w: colour %q is not 6 hex digits", ErrInvalidColourValue, s)
	}
	s = strings.ToUpper(s)
	for _, r := range s {
		if !((r >= '0' && r <= '9') || (r >= 'A' && r <= 'F')) {
			return "", fmt.Errorf("%w: colour %q contains a non-hex digit", ErrInvalidColourValue, s)
		}
	}
	return s, nil
}
