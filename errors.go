package hfcharts

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the pipeline wraps one of them so the
// command can tell what went wrong with errors.Is.
var (
	ErrAuthentication = errors.New("authentication failed")
	ErrNetwork        = errors.New("network error")
	ErrNotFound       = errors.New("not found")
	ErrParse          = errors.New("parse error")
	ErrIO             = errors.New("i/o error")
)

// ParseError reports a cell that cannot be interpreted.
type ParseError struct {
	Sheet  string // worksheet title
	Row    int    // 1-based row number, as displayed by spreadsheets
	Column string // header of the offending column, empty for the sheet title
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	loc := fmt.Sprintf("sheet %q row %d", e.Sheet, e.Row)
	if e.Column != "" {
		loc += fmt.Sprintf(" column %q", e.Column)
	}
	return fmt.Sprintf("%v: %s: cannot read %q: %v", ErrParse, loc, e.Value, e.Err)
}

// Unwrap makes a ParseError match both ErrParse and its cause.
func (e *ParseError) Unwrap() []error { return []error{ErrParse, e.Err} }
