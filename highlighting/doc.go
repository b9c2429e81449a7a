// Package highlighting implements a stack-based, context-driven lexical
// highlighter in the style of the KDE Kate editor's syntax-definition
// engine. A Language owns a set of Contexts, each a declaration-ordered
// list of Rules plus three context-switch hooks; highlighting a stream of
// text drives a ContextStack through those switches while handing every
// matched span, styled, to an Emitter.
//
// Styles, rules, keyword sets and contexts are built once when a Language
// is loaded (see package katedef) and are read-only afterwards; the only
// mutable state during a highlighting job is the ContextStack and whatever
// the chosen Emitter buffers.
package highlighting
