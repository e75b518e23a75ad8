package main

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/metaphox/lox-lang/interpreter"
	"github.com/metaphox/lox-lang/lexer"
	"github.com/metaphox/lox-lang/parser"
)

// sourceError is a located error rendered under a snippet of the source.
type sourceError struct {
	err     error
	snippet string
}

func (e *sourceError) Error() string { return e.err.Error() + "\n" + e.snippet }
func (e *sourceError) Unwrap() error { return e.err }

// wrapWithSource attaches a numbered source excerpt with a caret under the
// offending column to lex, parse and runtime errors. Other errors, or an
// empty src, pass through unchanged.
func wrapWithSource(err error, src string) error {
	if src == "" {
		return err
	}
	var (
		lexErr     *lexer.LexError
		parseErr   *parser.ParseError
		runtimeErr *interpreter.RuntimeError
		line, col  int
	)
	switch {
	case errors.As(err, &lexErr):
		line, col = lexErr.Line, lexErr.Col
	case errors.As(err, &parseErr):
		line, col = parseErr.Token.Line, parseErr.Token.Col
	case errors.As(err, &runtimeErr):
		line, col = runtimeErr.Token.Line, runtimeErr.Token.Col
	default:
		return err
	}
	return &sourceError{err: err, snippet: snippet(src, line, col)}
}

// snippet shows line with its neighbours and a caret under col. Line and
// col are 1-based byte positions, clamped to the source bounds.
func snippet(src string, line, col int) string {
	lines := strings.Split(src, "\n")
	if line < 1 {
		line = 1
	}
	if line > len(lines) {
		line = len(lines)
	}
	text := lines[line-1]
	if col < 1 {
		col = 1
	}
	if col > len(text)+1 {
		col = len(text) + 1
	}

	var b strings.Builder
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, text)
	pad := utf8.RuneCountInString(text[:col-1])
	fmt.Fprintf(&b, "     | %s^", strings.Repeat(" ", pad))
	if line < len(lines) && lines[line] != "" {
		fmt.Fprintf(&b, "\n%4d | %s", line+1, lines[line])
	}
	return b.String()
}
