package katedef

import (
	"errors"
	"fmt"
)

// Sentinel errors classifying a load failure. Wrap these with %w so callers
// can errors.Is against the failure class without string matching.
var (
	ErrMalformedDefinition = errors.New("malformed definition")
	ErrUndefinedReference  = errors.New("undefined reference")
	ErrDuplicateDefinition = errors.New("duplicate definition")
	ErrCircularInclude     = errors.New("circular include")
	ErrInvalidColour       = errors.New("invalid colour")
)

// LoadError reports a load-time failure together with the source file and
// a best-effort position within it.
//
// etree does not retain line/column information through parsing, so
// Position identifies the N-th context/rule element visited in document
// order rather than a true line/column. This is strictly less precise but
// avoids re-scanning the source file for every error (see DESIGN.md).
type LoadError struct {
	File     string
	Position int
	Err      error
}

func (e *LoadError) Error() string {
	if e.Position > 0 {
		return fmt.Sprintf("%s: element #%d: %v", e.File, e.Position, e.Err)
	}

	return fmt.Sprintf("%s: %v", e.File, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// loadErrf builds a *LoadError wrapping sentinel with a formatted message.
func loadErrf(file string, pos int, sentinel error, format string, args ...any) error {
	return &LoadError{
		File:     file,
		Position: pos,
		Err:      fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...)),
	}
}
