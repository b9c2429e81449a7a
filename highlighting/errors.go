package highlighting

import "errors"

// ErrMalformedContextSwitch is returned by ParseContextSwitch when a
// context-switch string does not follow the "#pop* (#stay | !name | name)?"
// grammar, e.g. a bare name following one or more #pop tokens.
var ErrMalformedContextSwitch = errors.New("highlighting: malformed context-switch string")

// ErrUndefinedReference is returned by ParseContextSwitch when a
// context-switch names a context that does not exist in the owning language.
var ErrUndefinedReference = errors.New("highlighting: undefined reference")

// ErrInvalidColourValue is returned by NormalizeColour when a colour string
// is not 6 hex digits (with an optional leading '#').
var ErrInvalidColourValue = errors.New("highlighting: invalid colour value")

// ErrRegexCompile marks a reg_expr or emptyLine pattern that failed to
// compile. A reg_expr rule whose pattern fails to compile at match time
// behaves as permanent no-match for the remainder of the job rather than
// panicking mid-line; emptyLine patterns are compiled at load time, where
// a failure fails the load.
var ErrRegexCompile = errors.New("highlighting: regular expression failed to compile")
