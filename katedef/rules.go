package katedef

import (
	"errors"

	"github.com/beevik/etree"

	"github.com/mssjo/katelistings-go/highlighting"
)

// ruleBuilder constructs a highlighting.Rule from a single rule element.
// Registered in ruleRegistry, keyed by the element's XML tag.
type ruleBuilder func(elem *etree.Element, lb *langBuilder) (highlighting.Rule, error)

var ruleRegistry = map[string]ruleBuilder{
	"DetectChar":       buildDetectChar,
	"Detect2Chars":     buildDetect2Chars,
	"AnyChar":          buildAnyChar,
	"StringDetect":     buildStringDetect,
	"WordDetect":       buildWordDetect,
	"RegExpr":          buildRegExpr,
	"keyword":          buildKeyword,
	"DetectSpaces":     buildDetectSpaces,
	"DetectIdentifier": buildDetectIdentifier,
	"Int":              buildInt,
	"Float":            buildFloat,
	"HlCOct":           buildHlCOct,
	"HlCHex":           buildHlCHex,
	"HlCStringChar":    buildHlCStringChar,
	"HlCChar":          buildHlCChar,
	"RangeDetect":      buildRangeDetect,
	"LineContinue":     buildLineContinue,
}

// buildRule dispatches elem to its registered constructor by tag name.
// IncludeRules is handled by the caller (see include.go) since it expands
// to zero or more rules rather than constructing exactly one.
func (lb *langBuilder) buildRule(elem *etree.Element) (highlighting.Rule, error) {
	builder, ok := ruleRegistry[elem.Tag]
	if !ok {
		return nil, loadErrf(lb.file, lb.elemCount, ErrMalformedDefinition, "unknown rule element <%s>", elem.Tag)
	}

	return builder(elem, lb)
}

// commonConfig reads the attributes common to every rule variant: style,
// context-switch, and the dynamic/lookAhead/firstNonSpace/column flags.
func (lb *langBuilder) commonConfig(elem *etree.Element) (highlighting.RuleConfig, error) {
	var cfg highlighting.RuleConfig

	if attrName := elem.SelectAttrValue("attribute", ""); attrName != "" {
		style, ok := lb.styles[attrName]
		if !ok {
			return cfg, loadErrf(lb.file, lb.elemCount, ErrUndefinedReference, "style %q", attrName)
		}
		cfg.Style = style
	}

	// Absence of a context attribute means #stay (the zero-value
	// ContextSwitch); an explicit empty value is the documented "switch to
	// the default context" case handled by ParseContextSwitch itself.
	if attr := elem.SelectAttr("context"); attr != nil {
		defaultCtx := lb.contexts[lb.defaultContextName]

		sw, err := highlighting.ParseContextSwitch(attr.Value, lb.lookupContext, defaultCtx)
		if err != nil {
			sentinel := ErrMalformedDefinition
			if errors.Is(err, highlighting.ErrUndefinedReference) {
				sentinel = ErrUndefinedReference
			}
			return cfg, loadErrf(lb.file, lb.elemCount, sentinel, "%v", err)
		}
		cfg.Switch = sw
	}

	cfg.Dynamic = parseBoolAttr(elem, "dynamic", false)
	cfg.Lookahead = parseBoolAttr(elem, "lookAhead", false)
	cfg.FirstNonSpace = parseBoolAttr(elem, "firstNonSpace", false)

	if col, ok, err := parseIntAttr(elem, "column"); err != nil {
		return cfg, loadErrf(lb.file, lb.elemCount, ErrMalformedDefinition, "%v", err)
	} else if ok {
		cfg.HasColumn = true
		cfg.Column = col
	}

	return cfg, nil
}

func buildDetectChar(elem *etree.Element, lb *langBuilder) (highlighting.Rule, error) {
	cfg, err := lb.commonConfig(elem)
	if err != nil {
		return nil, err
	}

	return highlighting.NewDetectChar(cfg, elem.SelectAttrValue("char", "")), nil
}

func buildDetect2Chars(elem *etree.Element, lb *langBuilder) (highlighting.Rule, error) {
	cfg, err := lb.commonConfig(elem)
	if err != nil {
		return nil, err
	}

	c0 := firstRune(elem.SelectAttrValue("char", ""), 0)
	c1 := firstRune(elem.SelectAttrValue("char1", ""), 0)

	return highlighting.NewDetect2Chars(cfg, c0, c1), nil
}

func buildAnyChar(elem *etree.Element, lb *langBuilder) (highlighting.Rule, error) {
	cfg, err := lb.commonConfig(elem)
	if err != nil {
		return nil, err
	}

	return highlighting.NewAnyChar(cfg, elem.SelectAttrValue("String", "")), nil
}

func buildStringDetect(elem *etree.Element, lb *langBuilder) (highlighting.Rule, error) {
	cfg, err := lb.commonConfig(elem)
	if err != nil {
		return nil, err
	}

	insensitive := parseBoolAttr(elem, "insensitive", false)

	return highlighting.NewStringDetect(cfg, elem.SelectAttrValue("String", ""), insensitive), nil
}

func buildWordDetect(elem *etree.Element, lb *langBuilder) (highlighting.Rule, error) {
	cfg, err := lb.commonConfig(elem)
	if err != nil {
		return nil, err
	}

	insensitive := parseBoolAttr(elem, "insensitive", false)

	return highlighting.NewWordDetect(cfg, elem.SelectAttrValue("String", ""), insensitive), nil
}

func buildRegExpr(elem *etree.Element, lb *langBuilder) (highlighting.Rule, error) {
	cfg, err := lb.commonConfig(elem)
	if err != nil {
		return nil, err
	}

	insensitive := parseBoolAttr(elem, "insensitive", false)

	return highlighting.NewRegExpr(cfg, elem.SelectAttrValue("String", ""), insensitive), nil
}

func buildKeyword(elem *etree.Element, lb *langBuilder) (highlighting.Rule, error) {
	cfg, err := lb.commonConfig(elem)
	if err != nil {
		return nil, err
	}

	listName := elem.SelectAttrValue("String", "")

	set, ok := lb.keywordLists[listName]
	if !ok {
		return nil, loadErrf(lb.file, lb.elemCount, ErrUndefinedReference, "keyword list %q", listName)
	}

	return highlighting.NewKeyword(cfg, set), nil
}

func buildDetectSpaces(elem *etree.Element, lb *langBuilder) (highlighting.Rule, error) {
	cfg, err := lb.commonConfig(elem)
	if err != nil {
		return nil, err
	}

	return highlighting.NewDetectSpaces(cfg), nil
}

func buildDetectIdentifier(elem *etree.Element, lb *langBuilder) (highlighting.Rule, error) {
	cfg, err := lb.commonConfig(elem)
	if err != nil {
		return nil, err
	}

	return highlighting.NewDetectIdentifier(cfg), nil
}

func buildInt(elem *etree.Element, lb *langBuilder) (highlighting.Rule, error) {
	cfg, err := lb.commonConfig(elem)
	if err != nil {
		return nil, err
	}

	return highlighting.NewInt(cfg), nil
}

func buildFloat(elem *etree.Element, lb *langBuilder) (highlighting.Rule, error) {
	cfg, err := lb.commonConfig(elem)
	if err != nil {
		return nil, err
	}

	return highlighting.NewFloat(cfg), nil
}

func buildHlCOct(elem *etree.Element, lb *langBuilder) (highlighting.Rule, error) {
	cfg, err := lb.commonConfig(elem)
	if err != nil {
		return nil, err
	}

	return highlighting.NewHlCOct(cfg), nil
}

func buildHlCHex(elem *etree.Element, lb *langBuilder) (highlighting.Rule, error) {
	cfg, err := lb.commonConfig(elem)
	if err != nil {
		return nil, err
	}

	return highlighting.NewHlCHex(cfg), nil
}

func buildHlCStringChar(elem *etree.Element, lb *langBuilder) (highlighting.Rule, error) {
	cfg, err := lb.commonConfig(elem)
	if err != nil {
		return nil, err
	}

	return highlighting.NewHlCStringChar(cfg), nil
}

func buildHlCChar(elem *etree.Element, lb *langBuilder) (highlighting.Rule, error) {
	cfg, err := lb.commonConfig(elem)
	if err != nil {
		return nil, err
	}

	return highlighting.NewHlCChar(cfg), nil
}

func buildRangeDetect(elem *etree.Element, lb *langBuilder) (highlighting.Rule, error) {
	cfg, err := lb.commonConfig(elem)
	if err != nil {
		return nil, err
	}

	c0 := firstRune(elem.SelectAttrValue("char", ""), 0)
	c1 := firstRune(elem.SelectAttrValue("char1", ""), 0)

	return highlighting.NewRangeDetect(cfg, c0, c1), nil
}

func buildLineContinue(elem *etree.Element, lb *langBuilder) (highlighting.Rule, error) {
	cfg, err := lb.commonConfig(elem)
	if err != nil {
		return nil, err
	}

	c := firstRune(elem.SelectAttrValue("char", `\`), '\\')

	return highlighting.NewLineContinue(cfg, c), nil
}
