package lexer

import (
	"fmt"
	"sort"
)

// LexError describes a malformed token: an unexpected character or an
// unterminated string. Line and Col are 1-based.
type LexError struct {
	Line int
	Col  int
	Msg  string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("[line %d] lex error: %s", e.Line, e.Msg)
}

// ErrorList is the set of errors reported during a single scan, in source order.
// The zero value is an empty list.
type ErrorList []*LexError

func (el ErrorList) Error() string {
	switch len(el) {
	case 0:
		return "no errors"
	case 1:
		return el[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", el[0], len(el)-1)
}

// Unwrap exposes the individual errors to errors.Is and errors.As.
func (el ErrorList) Unwrap() []error {
	out := make([]error, len(el))
	for i, e := range el {
		out[i] = e
	}
	return out
}

// Sort orders the list by line, then column.
func (el ErrorList) Sort() {
	sort.SliceStable(el, func(i, j int) bool {
		if el[i].Line != el[j].Line {
			return el[i].Line < el[j].Line
		}
		return el[i].Col < el[j].Col
	})
}

// Err returns an error equivalent to this list, or nil if it is empty.
func (el ErrorList) Err() error {
	if len(el) == 0 {
		return nil
	}
	el.Sort()
	return el
}
