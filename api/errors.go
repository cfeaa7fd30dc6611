package api

import "fmt"

// ParseError reports a document that is not well-formed JSON after comment
// stripping, or whose root is not an object. Line and Column refer to the
// original (unstripped) text and are zero when unknown.
type ParseError struct {
	Line   int
	Column int
	Msg    string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse settings json: %d:%d: %s", e.Line, e.Column, e.Msg)
	}
	return fmt.Sprintf("parse settings json: %s", e.Msg)
}

func (e *ParseError) Unwrap() error { return e.Err }

// IOError reports a failure to read the input or write an artifact.
type IOError struct {
	Op   string // "read" or "write"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
