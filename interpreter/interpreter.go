// Package interpreter evaluates a parsed Lox program by walking its AST.
//
// An [Interpreter] owns a global scope (seeded with the natives) and a current
// scope that persists across [Interpreter.Interpret] calls, so a REPL session
// keeps its definitions. Errors raised by a running program are
// [*RuntimeError]; any other error returned from this package is a defect.
//
// An Interpreter is not safe for concurrent use. Separate interpreters share
// nothing.
package interpreter

import (
	"io"
	"time"

	"github.com/metaphox/lox-lang/ast"
)

// DefaultMaxDepth bounds nested calls when no [WithMaxDepth] option is given.
const DefaultMaxDepth = 2048

// Interpreter executes statements against a chain of environments.
type Interpreter struct {
	globals *Environment
	env     *Environment

	out     io.Writer // print sink; nil discards
	outputs []string  // lines printed during the current Interpret call

	depth    int
	maxDepth int

	clock func() time.Duration
}

// Option configures an [Interpreter].
type Option func(*Interpreter)

// WithOutput writes every printed line, newline-terminated, to w.
func WithOutput(w io.Writer) Option {
	return func(in *Interpreter) { in.out = w }
}

// WithMaxDepth limits how deeply calls may nest before a "stack overflow"
// runtime error. Values below 1 keep the default.
func WithMaxDepth(n int) Option {
	return func(in *Interpreter) {
		if n > 0 {
			in.maxDepth = n
		}
	}
}

// WithClock replaces the source of elapsed time behind the clock() native.
func WithClock(elapsed func() time.Duration) Option {
	return func(in *Interpreter) { in.clock = elapsed }
}

// New creates an interpreter with the natives defined in its global scope.
func New(opts ...Option) *Interpreter {
	start := time.Now()
	in := &Interpreter{
		globals:  NewEnvironment(nil),
		maxDepth: DefaultMaxDepth,
		clock:    func() time.Duration { return time.Since(start) },
	}
	for _, opt := range opts {
		opt(in)
	}
	defineNatives(in.globals)
	in.env = NewEnvironment(in.globals)
	return in
}

// Globals returns the outermost scope.
func (in *Interpreter) Globals() *Environment {
	return in.globals
}

// Interpret executes stmts in order and returns the lines printed while doing
// so. Execution stops at the first error; the lines printed before it are
// still returned. A top-level `return` ends the call early. Definitions made
// by stmts remain visible to later calls.
func (in *Interpreter) Interpret(stmts []ast.Stmt) ([]string, error) {
	in.outputs = nil
	for _, stmt := range stmts {
		out, err := in.execute(stmt)
		if err != nil {
			return in.outputs, err
		}
		if out.returning {
			break
		}
	}
	return in.outputs, nil
}

// Evaluate computes the value of a single expression in the current scope.
func (in *Interpreter) Evaluate(expr ast.Expr) (Value, error) {
	in.outputs = nil
	return in.evaluate(expr)
}

// print records a line and forwards it to the output sink.
func (in *Interpreter) print(line string) error {
	in.outputs = append(in.outputs, line)
	if in.out == nil {
		return nil
	}
	_, err := io.WriteString(in.out, line+"\n")
	return err
}
