// Package katedef loads Kate syntax-highlighting language definitions (XML)
// and default-style palettes (JSON) into a [highlighting.Language] ready to
// drive a highlighting job.
//
// Loading is a three-phase pipeline:
//
//  1. Parse: [github.com/beevik/etree] reads the XML document into a tree of
//     *etree.Element nodes. The loader walks these directly rather than
//     unmarshalling into Go structs, because a rule element's shape is a
//     tag-dispatched union (detect_char vs. RegExpr vs. keyword, ...), not a
//     single fixed record.
//  2. Build: styles, keyword lists and contexts are constructed from the
//     parsed tree. Each rule element is dispatched through a small
//     name->constructor registry (one entry per Kate rule tag).
//  3. Resolve: IncludeRules directives are resolved in topological order of
//     their intra-language dependencies, and cross-language ##lang includes
//     load (or reuse, from the [Cache] driving the load) the referenced
//     language.
//
// Every failure wraps one of the sentinel errors in errors.go, so callers
// distinguish error classes with errors.Is rather than string matching.
// Failures while reading or building a document are *LoadError values;
// [Cache.Load] returns a plain wrapped error when the language file is not
// found or a ##lang include cycle is detected.
package katedef
