package interpreter

import (
	"sort"

	"github.com/metaphox/lox-lang/ast"
)

// Environment maps names to values for one lexical scope and links to the
// scope that encloses it. Lookups and assignments walk outward only.
//
// An Environment captured by a closure lives as long as the closure does;
// the garbage collector handles the shared ownership.
type Environment struct {
	values    map[string]Value
	enclosing *Environment
}

// NewEnvironment creates a new scope nested under enclosing (nil for globals).
func NewEnvironment(enclosing *Environment) *Environment {
	return &Environment{
		values:    make(map[string]Value),
		enclosing: enclosing,
	}
}

// Define inserts or shadows a binding in this scope. Redefinition is allowed.
func (e *Environment) Define(name string, value Value) {
	e.values[name] = value
}

// Get retrieves the value bound to name, searching outward through the chain.
func (e *Environment) Get(name ast.Token) (Value, error) {
	for env := e; env != nil; env = env.enclosing {
		if v, ok := env.values[name.Lexeme]; ok {
			return v, nil
		}
	}
	return nil, undefinedVariable(name)
}

// Assign updates the binding in the nearest scope that declares name.
// It never creates a binding.
func (e *Environment) Assign(name ast.Token, value Value) error {
	for env := e; env != nil; env = env.enclosing {
		if _, ok := env.values[name.Lexeme]; ok {
			env.values[name.Lexeme] = value
			return nil
		}
	}
	return undefinedVariable(name)
}

// Names returns the names bound directly in this scope, sorted.
func (e *Environment) Names() []string {
	names := make([]string, 0, len(e.values))
	for k := range e.values {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func undefinedVariable(name ast.Token) *RuntimeError {
	return newRuntimeError(name, "undefined variable %s", name.Lexeme)
}
