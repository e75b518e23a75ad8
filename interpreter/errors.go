package interpreter

import (
	"fmt"

	"github.com/metaphox/lox-lang/ast"
)

// RuntimeError reports a well-formed program doing something invalid while it
// runs: a type mismatch, an undefined variable, an arity mismatch, or calling
// a value that is not a function. Token locates the offending operator, name,
// or call.
type RuntimeError struct {
	Token ast.Token
	Msg   string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("[line %d] runtime error: %s", e.Token.Line, e.Msg)
}

func newRuntimeError(tok ast.Token, format string, args ...any) *RuntimeError {
	return &RuntimeError{Token: tok, Msg: fmt.Sprintf(format, args...)}
}
