package highlighting

import "log/slog"

// maxFallthroughDepth bounds the fall_context recursion in applyRules. Real
// Kate definitions never chain more than a handful of fallthrough contexts;
// this only guards against a pathological or hand-written definition whose
// fall_context graph never terminates.
const maxFallthroughDepth = 256

// Context is a named state of the highlighter: an attribute style plus an
// ordered list of rules and three context-switch hooks.
type Context struct {
	Name      string
	Attribute *Style
	Rules     []Rule

	EndSwitch   ContextSwitch
	EmptySwitch ContextSwitch
	FallSwitch  ContextSwitch
	Fallthrough bool
}

// ApplyRules tries c's rules in declaration order at pos. On a match, the
// rule's context-switch is applied to stack and its style (or c.Attribute,
// if the rule declares none) is returned. If nothing matches and c is not
// a fallthrough context, it reports ok=false so the caller can fall back to
// "emit one character under c.Attribute". If c is a fallthrough context,
// fall_context is applied (keeping the currently active match, since no new
// match occurred) and dispatch recurses into the new top context.
func (c *Context) ApplyRules(buf []rune, pos int, leadingSpace bool, stack *ContextStack) (length int, style *Style, ok bool) {
	return c.applyRules(buf, pos, leadingSpace, stack, 0)
}

func (c *Context) applyRules(buf []rune, pos int, leadingSpace bool, stack *ContextStack, depth int) (int, *Style, bool) {
	parent := stack.TopMatch()

	for _, r := range c.Rules {
		m, matched := r.Match(buf, pos, parent, leadingSpace)
		if !matched {
			continue
		}
		r.Switch().Apply(stack, m.Groups)
		style := r.Style()
		if style == nil {
			style = c.Attribute
		}
		return m.Length, style, true
	}

	if !c.Fallthrough {
		return 0, nil, false
	}
	if depth >= maxFallthroughDepth {
		slog.Warn("fallthrough chain exceeded maximum depth, treating as no-match",
			slog.String("context", c.Name), slog.Int("depth", depth))
		return 0, nil, false
	}

	c.FallSwitch.Apply(stack, parent.Groups)
	return stack.Top().applyRules(buf, pos, leadingSpace, stack, depth+1)
}
