package interpreter

import (
	"fmt"

	"github.com/metaphox/lox-lang/ast"
)

// outcome is how a statement finished: normally, or by executing `return`.
// A returning outcome travels up through blocks and loops until the enclosing
// function call turns it into the call's value.
type outcome struct {
	returning bool
	value     Value
}

var normal = outcome{}

// ── Statements ────────────────────────────────────────────────────────────────

func (in *Interpreter) execute(stmt ast.Stmt) (outcome, error) {
	switch s := stmt.(type) {
	case *ast.Expression:
		_, err := in.evaluate(s.Expression)
		return normal, err

	case *ast.Print:
		v, err := in.evaluate(s.Expression)
		if err != nil {
			return normal, err
		}
		return normal, in.print(Stringify(v))

	case *ast.Var:
		var v Value
		if s.Initializer != nil {
			var err error
			if v, err = in.evaluate(s.Initializer); err != nil {
				return normal, err
			}
		}
		in.env.Define(s.Name.Lexeme, v)
		return normal, nil

	case *ast.Block:
		return in.executeBlock(s.Statements, NewEnvironment(in.env))

	case *ast.If:
		cond, err := in.evaluate(s.Condition)
		if err != nil {
			return normal, err
		}
		if isTruthy(cond) {
			return in.execute(s.Then)
		}
		if s.Else != nil {
			return in.execute(s.Else)
		}
		return normal, nil

	case *ast.While:
		return in.executeWhile(s)

	case *ast.Function:
		in.env.Define(s.Name.Lexeme, &Function{decl: s, closure: in.env})
		return normal, nil

	case *ast.Return:
		var v Value
		if s.Value != nil {
			var err error
			if v, err = in.evaluate(s.Value); err != nil {
				return normal, err
			}
		}
		return outcome{returning: true, value: v}, nil
	}
	return normal, fmt.Errorf("interpreter: unknown statement %T", stmt)
}

func (in *Interpreter) executeWhile(s *ast.While) (outcome, error) {
	for {
		cond, err := in.evaluate(s.Condition)
		if err != nil {
			return normal, err
		}
		if !isTruthy(cond) {
			return normal, nil
		}
		out, err := in.execute(s.Body)
		if err != nil || out.returning {
			return out, err
		}
	}
}

// executeBlock runs stmts with env as the current scope. The previous scope
// is restored on every exit path, including errors and returns.
func (in *Interpreter) executeBlock(stmts []ast.Stmt, env *Environment) (outcome, error) {
	prev := in.env
	in.env = env
	defer func() { in.env = prev }()

	for _, stmt := range stmts {
		out, err := in.execute(stmt)
		if err != nil || out.returning {
			return out, err
		}
	}
	return normal, nil
}
