package interpreter

import (
	"fmt"

	"github.com/metaphox/lox-lang/ast"
)

// ── Expressions ───────────────────────────────────────────────────────────────

func (in *Interpreter) evaluate(expr ast.Expr) (Value, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return e.Value, nil

	case *ast.Grouping:
		return in.evaluate(e.Expression)

	case *ast.Unary:
		return in.evalUnary(e)

	case *ast.Binary:
		return in.evalBinary(e)

	case *ast.Logical:
		left, err := in.evaluate(e.Left)
		if err != nil {
			return nil, err
		}
		// The deciding operand is the result, not a bool.
		if e.Operator.Type == ast.OR {
			if isTruthy(left) {
				return left, nil
			}
		} else if !isTruthy(left) {
			return left, nil
		}
		return in.evaluate(e.Right)

	case *ast.Variable:
		return in.env.Get(e.Name)

	case *ast.Assign:
		v, err := in.evaluate(e.Value)
		if err != nil {
			return nil, err
		}
		if err := in.env.Assign(e.Name, v); err != nil {
			return nil, err
		}
		return v, nil

	case *ast.Call:
		return in.evalCall(e)

	case *ast.Let:
		return in.evalLet(e)
	}
	return nil, fmt.Errorf("interpreter: unknown expression %T", expr)
}

func (in *Interpreter) evalUnary(e *ast.Unary) (Value, error) {
	right, err := in.evaluate(e.Right)
	if err != nil {
		return nil, err
	}
	switch e.Operator.Type {
	case ast.BANG:
		return !isTruthy(right), nil
	case ast.MINUS:
		n, ok := right.(float64)
		if !ok {
			return nil, newRuntimeError(e.Operator, "operand of - must be a number, got %s", KindOf(right))
		}
		return -n, nil
	}
	return nil, fmt.Errorf("interpreter: unknown unary operator %s", e.Operator.Type)
}

func (in *Interpreter) evalBinary(e *ast.Binary) (Value, error) {
	left, err := in.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := in.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Operator.Type {
	case ast.EQUAL_EQUAL:
		return isEqual(left, right), nil
	case ast.BANG_EQUAL:
		return !isEqual(left, right), nil
	case ast.PLUS:
		switch l := left.(type) {
		case float64:
			if r, ok := right.(float64); ok {
				return l + r, nil
			}
		case string:
			if r, ok := right.(string); ok {
				return l + r, nil
			}
		}
		return nil, newRuntimeError(e.Operator, "operands of + must be two numbers or two strings, got %s and %s",
			KindOf(left), KindOf(right))
	}

	l, lok := left.(float64)
	r, rok := right.(float64)
	if !lok || !rok {
		return nil, newRuntimeError(e.Operator, "operands of %s must be numbers, got %s and %s",
			e.Operator.Lexeme, KindOf(left), KindOf(right))
	}
	switch e.Operator.Type {
	case ast.MINUS:
		return l - r, nil
	case ast.STAR:
		return l * r, nil
	case ast.SLASH:
		return l / r, nil
	case ast.GREATER:
		return l > r, nil
	case ast.GREATER_EQUAL:
		return l >= r, nil
	case ast.LESS:
		return l < r, nil
	case ast.LESS_EQUAL:
		return l <= r, nil
	}
	return nil, fmt.Errorf("interpreter: unknown binary operator %s", e.Operator.Type)
}

func (in *Interpreter) evalCall(e *ast.Call) (Value, error) {
	callee, err := in.evaluate(e.Callee)
	if err != nil {
		return nil, err
	}
	args := make([]Value, 0, len(e.Args))
	for _, a := range e.Args {
		v, err := in.evaluate(a)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}

	fn, ok := callee.(Callable)
	if !ok {
		return nil, newRuntimeError(e.Paren, "can only call functions")
	}
	if len(args) != fn.Arity() {
		return nil, newRuntimeError(e.Paren, "expected %d arguments but got %d", fn.Arity(), len(args))
	}

	if in.depth >= in.maxDepth {
		return nil, newRuntimeError(e.Paren, "stack overflow")
	}
	in.depth++
	defer func() { in.depth-- }()

	return fn.Call(in, args)
}

// evalLet binds Name to the initializer's value in a fresh scope and
// evaluates Body there. The binding is gone once the expression completes.
func (in *Interpreter) evalLet(e *ast.Let) (Value, error) {
	init, err := in.evaluate(e.Initializer)
	if err != nil {
		return nil, err
	}

	prev := in.env
	in.env = NewEnvironment(prev)
	defer func() { in.env = prev }()

	in.env.Define(e.Name.Lexeme, init)
	return in.evaluate(e.Body)
}
