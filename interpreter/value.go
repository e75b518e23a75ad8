package interpreter

import (
	"fmt"
	"math"
	"strconv"

	"github.com/metaphox/lox-lang/ast"
)

// Value is any Lox runtime value. The dynamic type is the tag:
//
//	float64          number
//	string           string
//	bool             boolean
//	nil              nil
//	*Function        user-defined closure
//	*NativeFunction  built-in
type Value = any

// Kind names the category of a runtime value for diagnostics.
type Kind int

const (
	KindNil Kind = iota
	KindNumber
	KindString
	KindBool
	KindFunction
	KindInvalid // not a Lox value; only a faulty native can produce one
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBool:
		return "boolean"
	case KindFunction:
		return "function"
	case KindInvalid:
		return "invalid"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// KindOf reports the category of v.
func KindOf(v Value) Kind {
	switch v.(type) {
	case nil:
		return KindNil
	case float64:
		return KindNumber
	case string:
		return KindString
	case bool:
		return KindBool
	case Callable:
		return KindFunction
	}
	return KindInvalid
}

// Callable is implemented by every value that can appear before '(' in a call.
type Callable interface {
	// Arity is the exact number of arguments the callable accepts.
	Arity() int
	// Call runs the callable with already-evaluated arguments.
	Call(in *Interpreter, args []Value) (Value, error)
	String() string
}

// Function is a closure: a function declaration paired with the environment
// that was current when the declaration executed. The environment is shared,
// not copied, so later changes to captured variables are visible.
type Function struct {
	decl    *ast.Function
	closure *Environment
}

// Arity returns the number of declared parameters.
func (f *Function) Arity() int { return len(f.decl.Params) }

// Call binds args to the parameters in a fresh scope whose parent is the
// captured environment (not the caller's) and runs the body. A body that ends
// without `return` yields nil.
func (f *Function) Call(in *Interpreter, args []Value) (Value, error) {
	env := NewEnvironment(f.closure)
	for i, param := range f.decl.Params {
		env.Define(param.Lexeme, args[i])
	}

	out, err := in.executeBlock(f.decl.Body, env)
	if err != nil {
		return nil, err
	}
	if out.returning {
		return out.value, nil
	}
	return nil, nil
}

func (f *Function) String() string { return "<fn " + f.decl.Name.Lexeme + ">" }

// NativeFunction is a built-in implemented in Go.
type NativeFunction struct {
	Name   string
	Params int
	Fn     func(in *Interpreter, args []Value) (Value, error)
}

// Arity returns the fixed number of arguments.
func (n *NativeFunction) Arity() int { return n.Params }

// Call invokes the Go implementation.
func (n *NativeFunction) Call(in *Interpreter, args []Value) (Value, error) {
	return n.Fn(in, args)
}

func (n *NativeFunction) String() string { return "<native fn " + n.Name + ">" }

// isTruthy applies Lox truthiness: only nil and false are falsy.
// 0 and "" are truthy.
func isTruthy(v Value) bool {
	switch b := v.(type) {
	case nil:
		return false
	case bool:
		return b
	}
	return true
}

// isEqual compares without coercion: values of different kinds are never
// equal, numbers follow IEEE 754, and callables compare by identity.
func isEqual(a, b Value) bool {
	return a == b
}

// Stringify renders v the way `print` and the REPL show it.
func Stringify(v Value) string {
	switch x := v.(type) {
	case nil:
		return "nil"
	case float64:
		return formatNumber(x)
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case Callable:
		return x.String()
	}
	return fmt.Sprint(v)
}

// formatNumber prints integers without a fraction and spells the IEEE
// specials Infinity, -Infinity and NaN. Negative zero prints as 0.
func formatNumber(n float64) string {
	switch {
	case math.IsNaN(n):
		return "NaN"
	case math.IsInf(n, 1):
		return "Infinity"
	case math.IsInf(n, -1):
		return "-Infinity"
	case n == 0:
		return "0"
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}
