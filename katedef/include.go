package katedef

import (
	"strings"

	"github.com/beevik/etree"

	"github.com/mssjo/katelistings-go/highlighting"
)

// buildContext fills in a previously-registered context's Rules, building
// whatever intra-language contexts it depends on via IncludeRules first. A
// context already built is returned from cache; a context in the middle of
// being built when it is requested again indicates a circular IncludeRules
// dependency, which is a fatal load error (Go has no built-in topological
// sort, so this is a small hand-rolled depth-first walk with a "visiting"
// marker standing in for one).
func (lb *langBuilder) buildContext(name string) (*highlighting.Context, error) {
	if lb.built[name] {
		return lb.contexts[name], nil
	}

	if lb.visiting[name] {
		return nil, loadErrf(lb.file, lb.elemCount, ErrCircularInclude, "context %q", name)
	}

	elem, ok := lb.contextElems[name]
	if !ok {
		return nil, loadErrf(lb.file, lb.elemCount, ErrUndefinedReference, "context %q", name)
	}

	lb.visiting[name] = true
	defer delete(lb.visiting, name)

	ctx := lb.contexts[name]

	var rules []highlighting.Rule

	for _, child := range elem.ChildElements() {
		lb.elemCount++

		if child.Tag == "IncludeRules" {
			included, err := lb.resolveIncludeRules(child)
			if err != nil {
				return nil, err
			}

			rules = append(rules, included...)

			continue
		}

		rule, err := lb.buildRule(child)
		if err != nil {
			return nil, err
		}

		rules = append(rules, rule)
	}

	ctx.Rules = rules
	lb.built[name] = true

	return ctx, nil
}

// resolveIncludeRules expands a single <IncludeRules> element into the
// fully-built rule list it references: either another context in this
// language, or a context in a language named via "<context>##<lang>".
func (lb *langBuilder) resolveIncludeRules(elem *etree.Element) ([]highlighting.Rule, error) {
	target := elem.SelectAttrValue("context", "")
	if target == "" {
		return nil, loadErrf(lb.file, lb.elemCount, ErrMalformedDefinition, "<IncludeRules> is missing a context attribute")
	}

	includeAttrib := parseBoolAttr(elem, "includeAttrib", false)

	if idx := strings.Index(target, "##"); idx >= 0 {
		ctxName, langName := target[:idx], target[idx+2:]

		srcLang, err := lb.cache.Load(langName)
		if err != nil {
			return nil, loadErrf(lb.file, lb.elemCount, ErrUndefinedReference, "including %q: %v", target, err)
		}

		srcCtx, ok := srcLang.Contexts[ctxName]
		if !ok {
			return nil, loadErrf(lb.file, lb.elemCount, ErrUndefinedReference, "context %q in language %q", ctxName, langName)
		}

		return lb.cloneRules(srcCtx.Rules, includeAttrib), nil
	}

	srcCtx, err := lb.buildContext(target)
	if err != nil {
		return nil, err
	}

	return lb.cloneRules(srcCtx.Rules, includeAttrib), nil
}

// cloneRules deep-copies each rule in rules. When includeAttrib is set and a
// rule's style name matches one defined in the including language, the
// clone is re-pointed at that style instead of the source language's.
func (lb *langBuilder) cloneRules(rules []highlighting.Rule, includeAttrib bool) []highlighting.Rule {
	out := make([]highlighting.Rule, len(rules))

	for i, r := range rules {
		style := r.Style()

		if includeAttrib && style != nil {
			if dest, ok := lb.styles[style.Name]; ok {
				style = dest
			}
		}

		cloner, ok := r.(highlighting.StyleCloner)
		if !ok {
			out[i] = r

			continue
		}

		out[i] = cloner.WithStyle(style)
	}

	return out
}
