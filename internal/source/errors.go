package source

import (
	"errors"
	"fmt"
)

// ErrTagNotFound is returned by InsertAfterTag when the anchor comment is
// missing from the file.
var ErrTagNotFound = errors.New("anchor tag not found")

// ParseError indicates that a source file could not be read or parsed.
// Inspection never returns partial results: a ParseError aborts the whole
// operation and nothing is modified.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// MarkerNotFoundError indicates that a required marker directive had zero
// matches. It means "nothing to modify" and is not fatal to the process.
type MarkerNotFoundError struct {
	Marker string
	Scope  string // file path, optionally with a type name
}

func (e *MarkerNotFoundError) Error() string {
	return fmt.Sprintf("no declaration marked %s found in %s", Directive(e.Marker), e.Scope)
}
