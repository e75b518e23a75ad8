package parser

import (
	"fmt"

	"github.com/metaphox/lox-lang/ast"
)

// ── Expression parsing ────────────────────────────────────────────────────────

func (p *Parser) expression() (ast.Expr, error) {
	return p.assignment()
}

// assignment → IDENTIFIER "=" assignment | or
//
// The target is parsed as an ordinary expression first and checked afterwards,
// so `a = b = c` nests to the right and `1 = 2` is rejected at the '='.
func (p *Parser) assignment() (ast.Expr, error) {
	expr, err := p.or()
	if err != nil {
		return nil, err
	}

	if p.match(ast.EQUAL) {
		equals := p.previous()
		value, err := p.assignment()
		if err != nil {
			return nil, err
		}
		if v, ok := expr.(*ast.Variable); ok {
			return &ast.Assign{Name: v.Name, Value: value}, nil
		}
		return nil, p.errorAt(equals, "invalid assignment target")
	}
	return expr, nil
}

func (p *Parser) or() (ast.Expr, error) {
	return p.logical(p.and, ast.OR)
}

func (p *Parser) and() (ast.Expr, error) {
	return p.logical(p.equality, ast.AND)
}

func (p *Parser) equality() (ast.Expr, error) {
	return p.binary(p.comparison, ast.BANG_EQUAL, ast.EQUAL_EQUAL)
}

func (p *Parser) comparison() (ast.Expr, error) {
	return p.binary(p.addition, ast.GREATER, ast.GREATER_EQUAL, ast.LESS, ast.LESS_EQUAL)
}

func (p *Parser) addition() (ast.Expr, error) {
	return p.binary(p.multiplication, ast.MINUS, ast.PLUS)
}

func (p *Parser) multiplication() (ast.Expr, error) {
	return p.binary(p.unary, ast.SLASH, ast.STAR)
}

// binary parses a left-associative chain of operands produced by next,
// joined by any of ops.
func (p *Parser) binary(next func() (ast.Expr, error), ops ...ast.TokenType) (ast.Expr, error) {
	expr, err := next()
	if err != nil {
		return nil, err
	}
	for p.match(ops...) {
		op := p.previous()
		right, err := next()
		if err != nil {
			return nil, err
		}
		expr = &ast.Binary{Left: expr, Operator: op, Right: right}
	}
	return expr, nil
}

// logical is binary for the short-circuit operators, which get their own node.
func (p *Parser) logical(next func() (ast.Expr, error), op ast.TokenType) (ast.Expr, error) {
	expr, err := next()
	if err != nil {
		return nil, err
	}
	for p.match(op) {
		operator := p.previous()
		right, err := next()
		if err != nil {
			return nil, err
		}
		expr = &ast.Logical{Left: expr, Operator: operator, Right: right}
	}
	return expr, nil
}

// unary → ( "!" | "-" ) unary | call
func (p *Parser) unary() (ast.Expr, error) {
	if p.match(ast.BANG, ast.MINUS) {
		op := p.previous()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Operator: op, Right: right}, nil
	}
	return p.call()
}

// call → primary ( "(" arguments? ")" )*
func (p *Parser) call() (ast.Expr, error) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}
	for p.match(ast.LEFT_PAREN) {
		if expr, err = p.finishCall(expr); err != nil {
			return nil, err
		}
	}
	return expr, nil
}

// finishCall parses the argument list after '(' has been consumed.
func (p *Parser) finishCall(callee ast.Expr) (ast.Expr, error) {
	var args []ast.Expr
	if !p.check(ast.RIGHT_PAREN) {
		for {
			if len(args) >= maxArgs {
				return nil, p.errorAt(p.peek(), fmt.Sprintf("can't have more than %d arguments", maxArgs))
			}
			arg, err := p.expression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.match(ast.COMMA) {
				break
			}
		}
	}

	paren, err := p.consume(ast.RIGHT_PAREN, "expected ')' after arguments")
	if err != nil {
		return nil, err
	}
	return &ast.Call{Callee: callee, Paren: paren, Args: args}, nil
}

// primary → "true" | "false" | "nil" | NUMBER | STRING | IDENTIFIER
//
//	| "(" expression ")" | "let" IDENTIFIER "=" expression "in" expression
func (p *Parser) primary() (ast.Expr, error) {
	switch {
	case p.match(ast.FALSE):
		return &ast.Literal{Value: false}, nil
	case p.match(ast.TRUE):
		return &ast.Literal{Value: true}, nil
	case p.match(ast.NIL):
		return &ast.Literal{Value: nil}, nil
	case p.match(ast.NUMBER, ast.STRING):
		return &ast.Literal{Value: p.previous().Literal}, nil
	case p.match(ast.IDENTIFIER):
		return &ast.Variable{Name: p.previous()}, nil
	case p.match(ast.LEFT_PAREN):
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(ast.RIGHT_PAREN, "expected ')' after expression"); err != nil {
			return nil, err
		}
		return &ast.Grouping{Expression: expr}, nil
	case p.match(ast.LET):
		return p.letExpression()
	}
	return nil, p.errorAt(p.peek(), "expected expression")
}

// letExpression parses `name = init in body` after the 'let' keyword.
// The body extends as far right as possible, like assignment.
func (p *Parser) letExpression() (ast.Expr, error) {
	keyword := p.previous()
	name, err := p.consume(ast.IDENTIFIER, "expected name after 'let'")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(ast.EQUAL, "expected '=' after let name"); err != nil {
		return nil, err
	}
	init, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(ast.IN, "expected 'in' after let initializer"); err != nil {
		return nil, err
	}
	body, err := p.expression()
	if err != nil {
		return nil, err
	}
	return &ast.Let{Keyword: keyword, Name: name, Initializer: init, Body: body}, nil
}
