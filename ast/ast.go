// Package ast also defines the Abstract Syntax Tree (AST) node types for Lox.
//
// The node set is closed. The hierarchy is:
//
//	Node (interface)
//	  Expr (interface)
//	    Literal, Grouping, Unary, Binary, Logical
//	    Variable, Assign, Call, Let
//	  Stmt (interface)
//	    Expression, Print, Var, Block, If, While, Function, Return
//
// There is no for-loop node: the parser lowers `for` into Block and While.
// Consumers dispatch with an exhaustive type switch over the concrete pointer types.
//
// String() on every node renders the parenthesised debug form, e.g. (+ 1 (* 2 3)).
package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// ── Interfaces ────────────────────────────────────────────────────────────────

// Node is the root interface for every element in the Lox AST.
type Node interface {
	// String returns a compact, parenthesised representation of the node.
	// It is intended for debugging and test output.
	String() string
}

// Expr is a Node that evaluates to a value.
type Expr interface {
	Node
	exprNode()
}

// Stmt is a Node that is executed for its effect.
type Stmt interface {
	Node
	stmtNode()
}

// Dump renders a statement list the way the debug dump shows it.
func Dump(stmts []Stmt) string {
	parts := make([]string, len(stmts))
	for i, s := range stmts {
		parts[i] = s.String()
	}
	return "[\n" + strings.Join(parts, "\n") + "\n]"
}

// ── Expressions ───────────────────────────────────────────────────────────────

// Literal is a constant: number (float64), string, bool, or nil.
type Literal struct {
	Value any
}

func (e *Literal) exprNode() {}
func (e *Literal) String() string {
	switch v := e.Value.(type) {
	case nil:
		return "nil"
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		return strconv.Quote(v)
	default:
		return fmt.Sprint(v)
	}
}

// Grouping is a parenthesised expression: ( expr )
type Grouping struct {
	Expression Expr
}

func (e *Grouping) exprNode() {}
func (e *Grouping) String() string { return fmt.Sprintf("(group %s)", e.Expression) }

// Unary is a prefix operator application: -x, !ok
type Unary struct {
	Operator Token
	Right    Expr
}

func (e *Unary) exprNode() {}
func (e *Unary) String() string {
	return fmt.Sprintf("(%s %s)", e.Operator.Lexeme, e.Right)
}

// Binary is an arithmetic, comparison, or equality operator application.
type Binary struct {
	Left     Expr
	Operator Token
	Right    Expr
}

func (e *Binary) exprNode() {}
func (e *Binary) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Operator.Lexeme, e.Left, e.Right)
}

// Logical is a short-circuiting `and` / `or`. It is kept apart from Binary
// because the right operand is evaluated conditionally.
type Logical struct {
	Left     Expr
	Operator Token
	Right    Expr
}

func (e *Logical) exprNode() {}
func (e *Logical) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Operator.Lexeme, e.Left, e.Right)
}

// Variable is a reference to a named binding.
type Variable struct {
	Name Token
}

func (e *Variable) exprNode() {}
func (e *Variable) String() string { return fmt.Sprintf("(lookup %s)", e.Name.Lexeme) }

// Assign stores a value into an existing binding: name = value
type Assign struct {
	Name  Token
	Value Expr
}

func (e *Assign) exprNode() {}
func (e *Assign) String() string {
	return fmt.Sprintf("(%s = %s)", e.Name.Lexeme, e.Value)
}

// Call applies a callee to arguments. Paren is the closing ')' token and
// locates runtime errors raised by the call.
type Call struct {
	Callee Expr
	Paren  Token
	Args   []Expr
}

func (e *Call) exprNode() {}
func (e *Call) String() string {
	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("(call %s on %s)", e.Callee, strings.Join(args, ", "))
}

// Let binds Name to Initializer in a fresh scope and evaluates Body there.
//
//	let x = 2 in x * x
type Let struct {
	Keyword     Token // the 'let' token
	Name        Token
	Initializer Expr
	Body        Expr
}

func (e *Let) exprNode() {}
func (e *Let) String() string {
	return fmt.Sprintf("(let %s = %s in %s)", e.Name.Lexeme, e.Initializer, e.Body)
}

// ── Statements ────────────────────────────────────────────────────────────────

// Expression evaluates an expression and discards the result.
type Expression struct {
	Expression Expr
}

func (s *Expression) stmtNode() {}
func (s *Expression) String() string { return s.Expression.String() }

// Print evaluates an expression and writes its stringified value.
type Print struct {
	Expression Expr
}

func (s *Print) stmtNode() {}
func (s *Print) String() string { return fmt.Sprintf("(print %s)", s.Expression) }

// Var declares a binding in the current scope. Initializer is nil when
// omitted, in which case the binding starts as nil.
type Var struct {
	Name        Token
	Initializer Expr
}

func (s *Var) stmtNode() {}
func (s *Var) String() string {
	if s.Initializer == nil {
		return fmt.Sprintf("(define %s)", s.Name.Lexeme)
	}
	return fmt.Sprintf("(define %s = %s)", s.Name.Lexeme, s.Initializer)
}

// Block executes its statements in a new nested scope.
type Block struct {
	Statements []Stmt
}

func (s *Block) stmtNode() {}
func (s *Block) String() string {
	parts := make([]string, len(s.Statements))
	for i, st := range s.Statements {
		parts[i] = st.String()
	}
	return "{" + strings.Join(parts, "; ") + "}"
}

// If executes Then when Condition is truthy, otherwise Else (which may be nil).
type If struct {
	Condition Expr
	Then      Stmt
	Else      Stmt
}

func (s *If) stmtNode() {}
func (s *If) String() string {
	if s.Else == nil {
		return fmt.Sprintf("(if %s then %s)", s.Condition, s.Then)
	}
	return fmt.Sprintf("(if %s then %s else %s)", s.Condition, s.Then, s.Else)
}

// While re-executes Body for as long as Condition is truthy.
type While struct {
	Condition Expr
	Body      Stmt
}

func (s *While) stmtNode() {}
func (s *While) String() string {
	return fmt.Sprintf("(while %s do %s)", s.Condition, s.Body)
}

// Function declares a named function. The body is the list of statements
// inside the braces; it runs in the call's own scope, not in a nested Block.
type Function struct {
	Name   Token
	Params []Token
	Body   []Stmt
}

func (s *Function) stmtNode() {}
func (s *Function) String() string {
	params := make([]string, len(s.Params))
	for i, p := range s.Params {
		params[i] = p.Lexeme
	}
	body := &Block{Statements: s.Body}
	return fmt.Sprintf("(function %s (%s) %s)", s.Name.Lexeme, strings.Join(params, ", "), body)
}

// Return leaves the nearest enclosing function. Value is nil for a bare `return;`.
type Return struct {
	Keyword Token
	Value   Expr
}

func (s *Return) stmtNode() {}
func (s *Return) String() string {
	if s.Value == nil {
		return "return"
	}
	return fmt.Sprintf("(return %s)", s.Value)
}
