package katedef

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/mssjo/katelistings-go/highlighting"
)

// langBuilder carries the state accumulated while a single language
// definition is parsed and built. It is discarded once Load returns.
type langBuilder struct {
	file string

	styles       map[string]*highlighting.Style
	keywordLists map[string]*highlighting.KeywordSet
	contextElems map[string]*etree.Element
	contexts     map[string]*highlighting.Context

	defaultContextName string
	orderSlice         []string

	built     map[string]bool
	visiting  map[string]bool
	elemCount int

	cache *Cache
}

func (lb *langBuilder) lookupContext(name string) (*highlighting.Context, bool) {
	c, ok := lb.contexts[name]
	return c, ok
}

// parseDocument parses a Kate language-definition XML document read from r
// and builds the resulting highlighting.Language. palette supplies the
// default styles ("ds<Name>") a language may fall back to.
func parseDocument(file string, r io.Reader, palette map[string]*highlighting.Style, cache *Cache) (*highlighting.Language, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, &LoadError{File: file, Err: fmt.Errorf("%w: %w", ErrMalformedDefinition, err)}
	}

	root := doc.SelectElement("language")
	if root == nil {
		return nil, loadErrf(file, 0, ErrMalformedDefinition, "missing <language> root element")
	}

	name := root.SelectAttrValue("name", "")
	if name == "" {
		return nil, loadErrf(file, 0, ErrMalformedDefinition, "<language> is missing a name attribute")
	}

	hl := root.SelectElement("highlighting")
	if hl == nil {
		return nil, loadErrf(file, 0, ErrMalformedDefinition, "<language> is missing a <highlighting> child")
	}

	general := root.SelectElement("general")

	caseSensitive := parseBoolAttr(root, "casesensitive", true)
	if general != nil {
		if kw := general.SelectElement("keywords"); kw != nil {
			if attr := kw.SelectAttr("casesensitive"); attr != nil {
				caseSensitive = attr.Value == "true" || attr.Value == "1"
			}
		}
	}

	lb := &langBuilder{
		file:     file,
		built:    make(map[string]bool),
		visiting: make(map[string]bool),
		cache:    cache,
	}

	lb.keywordLists = buildKeywordLists(hl, caseSensitive)

	styles, err := lb.buildStyles(hl, palette)
	if err != nil {
		return nil, err
	}
	lb.styles = styles

	if err := lb.collectContexts(hl); err != nil {
		return nil, err
	}

	for _, ctxName := range lb.contextOrder() {
		if _, err := lb.buildContext(ctxName); err != nil {
			return nil, err
		}
	}

	emptyLineRules, err := buildEmptyLineRules(general)
	if err != nil {
		return nil, &LoadError{File: file, Err: err}
	}

	// Resolve every style now, so Style.Attrs never writes to a style
	// once the Language is shared between jobs.
	for _, s := range lb.styles {
		s.Attrs()
	}

	return &highlighting.Language{
		Name:           name,
		CaseSensitive:  caseSensitive,
		KeywordLists:   lb.keywordLists,
		Styles:         lb.styles,
		Contexts:       copyContextMap(lb.contexts),
		DefaultContext: lb.contexts[lb.defaultContextName],
		EmptyLineRules: emptyLineRules,
	}, nil
}

// collectContexts registers every <context> element (without yet building
// its rule list) and resolves its end/empty/fallthrough context-switches.
// The first declared context is the language's default context, per Kate
// convention.
func (lb *langBuilder) collectContexts(hl *etree.Element) error {
	contextsElem := hl.SelectElement("contexts")
	if contextsElem == nil {
		return loadErrf(lb.file, 0, ErrMalformedDefinition, "<highlighting> is missing a <contexts> child")
	}

	lb.contextElems = make(map[string]*etree.Element)
	lb.contexts = make(map[string]*highlighting.Context)

	var order []string

	for _, c := range contextsElem.ChildElements() {
		if c.Tag != "context" {
			continue
		}

		name := c.SelectAttrValue("name", "")
		if name == "" {
			return loadErrf(lb.file, lb.elemCount, ErrMalformedDefinition, "<context> is missing a name attribute")
		}

		if _, dup := lb.contextElems[name]; dup {
			return loadErrf(lb.file, lb.elemCount, ErrDuplicateDefinition, "context %q", name)
		}

		lb.contextElems[name] = c
		order = append(order, name)
		lb.elemCount++
	}

	if len(order) == 0 {
		return loadErrf(lb.file, 0, ErrMalformedDefinition, "<contexts> declares no contexts")
	}

	lb.defaultContextName = order[0]
	lb.orderSlice = order

	for _, name := range order {
		c := lb.contextElems[name]

		attrName := c.SelectAttrValue("attribute", "")

		var style *highlighting.Style
		if attrName != "" {
			var ok bool
			style, ok = lb.styles[attrName]
			if !ok {
				return loadErrf(lb.file, lb.elemCount, ErrUndefinedReference, "style %q referenced by context %q", attrName, name)
			}
		}

		lb.contexts[name] = &highlighting.Context{
			Name:        name,
			Attribute:   style,
			Fallthrough: parseBoolAttr(c, "fallthrough", false),
		}
	}

	defaultCtx := lb.contexts[lb.defaultContextName]

	for name, c := range lb.contextElems {
		ctx := lb.contexts[name]

		endSw, err := highlighting.ParseContextSwitch(
			c.SelectAttrValue("lineEndContext", "#stay"), lb.lookupContext, defaultCtx)
		if err != nil {
			return loadErrf(lb.file, lb.elemCount, ErrMalformedDefinition, "context %q lineEndContext: %v", name, err)
		}
		ctx.EndSwitch = endSw

		emptySw, err := highlighting.ParseContextSwitch(
			c.SelectAttrValue("lineEmptyContext", "#stay"), lb.lookupContext, defaultCtx)
		if err != nil {
			return loadErrf(lb.file, lb.elemCount, ErrMalformedDefinition, "context %q lineEmptyContext: %v", name, err)
		}
		ctx.EmptySwitch = emptySw

		if ctx.Fallthrough {
			fallSw, err := highlighting.ParseContextSwitch(
				c.SelectAttrValue("fallthroughContext", "#stay"), lb.lookupContext, defaultCtx)
			if err != nil {
				return loadErrf(lb.file, lb.elemCount, ErrMalformedDefinition, "context %q fallthroughContext: %v", name, err)
			}
			ctx.FallSwitch = fallSw
		}
	}

	return nil
}

func (lb *langBuilder) contextOrder() []string {
	return lb.orderSlice
}

func copyContextMap(m map[string]*highlighting.Context) map[string]*highlighting.Context {
	out := make(map[string]*highlighting.Context, len(m))
	for k, v := range m {
		out[k] = v
	}

	return out
}

func buildKeywordLists(hl *etree.Element, caseSensitive bool) map[string]*highlighting.KeywordSet {
	lists := make(map[string]*highlighting.KeywordSet)

	for _, list := range hl.SelectElements("list") {
		name := list.SelectAttrValue("name", "")
		if name == "" {
			continue
		}

		set := highlighting.NewKeywordSet(caseSensitive)
		for _, item := range list.SelectElements("item") {
			word := strings.TrimSpace(item.Text())
			if word != "" {
				set.Add(word)
			}
		}

		lists[name] = set
	}

	return lists
}

func buildEmptyLineRules(general *etree.Element) ([]*highlighting.AnchoredRegex, error) {
	if general == nil {
		return nil, nil
	}

	el := general.SelectElement("emptyLines")
	if el == nil {
		return nil, nil
	}

	var rules []*highlighting.AnchoredRegex

	for _, line := range el.SelectElements("emptyLine") {
		pattern := line.SelectAttrValue("String", "")
		if pattern == "" {
			continue
		}

		re, err := highlighting.CompileAnchoredRegex(pattern, false)
		if err != nil {
			return nil, fmt.Errorf("%w: emptyLine pattern %q: %w", ErrMalformedDefinition, pattern, err)
		}

		rules = append(rules, re)
	}

	return rules, nil
}

// parseBoolAttr reads a boolean XML attribute, defaulting to def if absent.
// Kate definitions spell truth as "true" or "1".
func parseBoolAttr(elem *etree.Element, name string, def bool) bool {
	attr := elem.SelectAttr(name)
	if attr == nil {
		return def
	}

	return attr.Value == "true" || attr.Value == "1"
}

// parseIntAttr reads an integer XML attribute. ok is false if the attribute
// is absent; an attribute present but unparsable is reported via err.
func parseIntAttr(elem *etree.Element, name string) (value int, ok bool, err error) {
	attr := elem.SelectAttr(name)
	if attr == nil {
		return 0, false, nil
	}

	v, convErr := strconv.Atoi(attr.Value)
	if convErr != nil {
		return 0, true, fmt.Errorf("%w: %s=%q", ErrMalformedDefinition, name, attr.Value)
	}

	return v, true, nil
}

// firstRune returns the first rune of s, or fallback if s is empty.
func firstRune(s string, fallback rune) rune {
	for _, r := range s {
		return r
	}

	return fallback
}
