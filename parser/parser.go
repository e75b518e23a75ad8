// Package parser implements the Lox recursive-descent parser.
//
// The parser reads the token slice produced by [lexer.Tokenize] and builds a
// list of [ast.Stmt]. Expressions are parsed with one method per precedence
// level, lowest to highest:
//
//	assignment → or → and → equality → comparison → addition →
//	multiplication → unary → call → primary
//
// Each binary level is left-associative: it parses one operand, then loops over
// operators of the same level. Assignment is right-associative.
//
// Usage:
//
//	toks, err := lexer.Tokenize(source)
//	stmts, err := parser.Parse(toks)
//
// Error handling: the first grammar violation aborts the parse and is returned
// as a [*ParseError]. No partial tree is returned and there is no resynchronisation.
package parser

import (
	"fmt"

	"github.com/metaphox/lox-lang/ast"
)

// maxArgs bounds both call arguments and function parameters.
const maxArgs = 255

// ParseError reports a grammar violation at Token.
type ParseError struct {
	Token ast.Token
	Msg   string
}

func (e *ParseError) Error() string {
	if e.Token.Type == ast.EOF {
		return fmt.Sprintf("[line %d] parse error at end: %s", e.Token.Line, e.Msg)
	}
	return fmt.Sprintf("[line %d] parse error at '%s': %s", e.Token.Line, e.Token.Lexeme, e.Msg)
}

// Parser holds the token slice and a cursor into it.
// Create one with [New] and call [Parser.Parse] or [Parser.ParseExpr] once.
type Parser struct {
	tokens  []ast.Token
	current int
}

// New creates a Parser over tokens. A missing trailing EOF token is added.
func New(tokens []ast.Token) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != ast.EOF {
		line := 1
		if len(tokens) > 0 {
			line = tokens[len(tokens)-1].Line
		}
		tokens = append(tokens[:len(tokens):len(tokens)], ast.Token{Type: ast.EOF, Line: line})
	}
	return &Parser{tokens: tokens}
}

// Parse parses tokens as a program: a sequence of declarations.
func Parse(tokens []ast.Token) ([]ast.Stmt, error) {
	return New(tokens).Parse()
}

// ParseExpr parses tokens as exactly one expression.
func ParseExpr(tokens []ast.Token) (ast.Expr, error) {
	return New(tokens).ParseExpr()
}

// GuessTokensAreExpr decides how an interactive fragment should be parsed.
// A fragment whose last token before EOF is ';' or '}' is a statement list;
// anything else is treated as a bare expression whose value is echoed.
func GuessTokensAreExpr(tokens []ast.Token) bool {
	if len(tokens) < 2 {
		return false
	}
	switch tokens[len(tokens)-2].Type {
	case ast.SEMICOLON, ast.RIGHT_BRACE:
		return false
	}
	return true
}

// Parse builds and returns the statement list for the whole input.
func (p *Parser) Parse() ([]ast.Stmt, error) {
	var stmts []ast.Stmt
	for !p.isAtEnd() {
		s, err := p.declaration()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	return stmts, nil
}

// ParseExpr parses a single expression and requires it to span all tokens.
func (p *Parser) ParseExpr() (ast.Expr, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if !p.isAtEnd() {
		return nil, p.errorAt(p.peek(), "unexpected tokens after expression")
	}
	return expr, nil
}

// ── Internal token management ─────────────────────────────────────────────────

// peek returns the current (not yet consumed) token.
func (p *Parser) peek() ast.Token { return p.tokens[p.current] }

// previous returns the most recently consumed token.
func (p *Parser) previous() ast.Token { return p.tokens[p.current-1] }

func (p *Parser) isAtEnd() bool { return p.peek().Type == ast.EOF }

// check reports whether the current token has type tt. It never matches at EOF.
func (p *Parser) check(tt ast.TokenType) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Type == tt
}

// advance consumes the current token and returns it.
func (p *Parser) advance() ast.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

// match consumes the current token if it has any of the given types.
func (p *Parser) match(types ...ast.TokenType) bool {
	for _, tt := range types {
		if p.check(tt) {
			p.advance()
			return true
		}
	}
	return false
}

// consume requires the current token to be tt, returning it after advancing.
func (p *Parser) consume(tt ast.TokenType, msg string) (ast.Token, error) {
	if p.check(tt) {
		return p.advance(), nil
	}
	return ast.Token{}, p.errorAt(p.peek(), msg)
}

func (p *Parser) errorAt(tok ast.Token, msg string) *ParseError {
	return &ParseError{Token: tok, Msg: msg}
}

// ── Declarations ──────────────────────────────────────────────────────────────

// declaration → funDecl | varDecl | statement
func (p *Parser) declaration() (ast.Stmt, error) {
	switch {
	case p.match(ast.FUN):
		return p.function("function")
	case p.match(ast.VAR):
		return p.varDeclaration()
	}
	return p.statement()
}

// function parses `name ( params? ) { body }` after the 'fun' keyword.
func (p *Parser) function(kind string) (ast.Stmt, error) {
	name, err := p.consume(ast.IDENTIFIER, fmt.Sprintf("expected %s name", kind))
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(ast.LEFT_PAREN, fmt.Sprintf("expected '(' after %s name", kind)); err != nil {
		return nil, err
	}

	var params []ast.Token
	if !p.check(ast.RIGHT_PAREN) {
		for {
			if len(params) >= maxArgs {
				return nil, p.errorAt(p.peek(), fmt.Sprintf("can't have more than %d parameters", maxArgs))
			}
			param, err := p.consume(ast.IDENTIFIER, "expected parameter name")
			if err != nil {
				return nil, err
			}
			params = append(params, param)
			if !p.match(ast.COMMA) {
				break
			}
		}
	}
	if _, err := p.consume(ast.RIGHT_PAREN, "expected ')' after parameters"); err != nil {
		return nil, err
	}

	if _, err := p.consume(ast.LEFT_BRACE, fmt.Sprintf("expected '{' before %s body", kind)); err != nil {
		return nil, err
	}
	body, err := p.blockBody()
	if err != nil {
		return nil, err
	}
	return &ast.Function{Name: name, Params: params, Body: body}, nil
}

// varDeclaration parses `name ( = initializer )? ;` after the 'var' keyword.
func (p *Parser) varDeclaration() (ast.Stmt, error) {
	name, err := p.consume(ast.IDENTIFIER, "expected variable name")
	if err != nil {
		return nil, err
	}

	var init ast.Expr
	if p.match(ast.EQUAL) {
		if init, err = p.expression(); err != nil {
			return nil, err
		}
	}

	if _, err := p.consume(ast.SEMICOLON, "expected ';' after variable declaration"); err != nil {
		return nil, err
	}
	return &ast.Var{Name: name, Initializer: init}, nil
}

// ── Statements ────────────────────────────────────────────────────────────────

// statement dispatches on the leading keyword; anything else is an
// expression statement.
func (p *Parser) statement() (ast.Stmt, error) {
	switch {
	case p.match(ast.IF):
		return p.ifStatement()
	case p.match(ast.WHILE):
		return p.whileStatement()
	case p.match(ast.FOR):
		return p.forStatement()
	case p.match(ast.PRINT):
		return p.printStatement()
	case p.match(ast.RETURN):
		return p.returnStatement()
	case p.match(ast.LEFT_BRACE):
		stmts, err := p.blockBody()
		if err != nil {
			return nil, err
		}
		return &ast.Block{Statements: stmts}, nil
	}
	return p.expressionStatement()
}

// blockBody parses declarations up to and including the closing '}'.
// The opening '{' has already been consumed.
func (p *Parser) blockBody() ([]ast.Stmt, error) {
	stmts := []ast.Stmt{}
	for !p.check(ast.RIGHT_BRACE) && !p.isAtEnd() {
		s, err := p.declaration()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	if _, err := p.consume(ast.RIGHT_BRACE, "expected '}' after block"); err != nil {
		return nil, err
	}
	return stmts, nil
}

func (p *Parser) printStatement() (ast.Stmt, error) {
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(ast.SEMICOLON, "expected ';' after value"); err != nil {
		return nil, err
	}
	return &ast.Print{Expression: value}, nil
}

// returnStatement parses `return expr? ;`. The value is optional.
func (p *Parser) returnStatement() (ast.Stmt, error) {
	keyword := p.previous()

	var value ast.Expr
	if !p.check(ast.SEMICOLON) {
		var err error
		if value, err = p.expression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(ast.SEMICOLON, "expected ';' after return value"); err != nil {
		return nil, err
	}
	return &ast.Return{Keyword: keyword, Value: value}, nil
}

// ifStatement parses `( condition ) then ( else otherwise )?`.
// A dangling else binds to the nearest if.
func (p *Parser) ifStatement() (ast.Stmt, error) {
	cond, err := p.parenCondition("if")
	if err != nil {
		return nil, err
	}

	then, err := p.statement()
	if err != nil {
		return nil, err
	}
	var otherwise ast.Stmt
	if p.match(ast.ELSE) {
		if otherwise, err = p.statement(); err != nil {
			return nil, err
		}
	}
	return &ast.If{Condition: cond, Then: then, Else: otherwise}, nil
}

func (p *Parser) whileStatement() (ast.Stmt, error) {
	cond, err := p.parenCondition("while")
	if err != nil {
		return nil, err
	}
	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	return &ast.While{Condition: cond, Body: body}, nil
}

// parenCondition parses `( expression )` after the keyword kw.
func (p *Parser) parenCondition(kw string) (ast.Expr, error) {
	if _, err := p.consume(ast.LEFT_PAREN, fmt.Sprintf("expected '(' after '%s'", kw)); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(ast.RIGHT_PAREN, fmt.Sprintf("expected ')' after %s condition", kw)); err != nil {
		return nil, err
	}
	return cond, nil
}

// forStatement parses `( init? ; cond? ; incr? ) body` and lowers it to
//
//	{ init; while (cond) { body; incr; } }
//
// A missing condition is `true`. The interpreter never sees a for-loop.
func (p *Parser) forStatement() (ast.Stmt, error) {
	if _, err := p.consume(ast.LEFT_PAREN, "expected '(' after 'for'"); err != nil {
		return nil, err
	}

	var (
		init ast.Stmt
		err  error
	)
	switch {
	case p.match(ast.SEMICOLON):
	case p.match(ast.VAR):
		init, err = p.varDeclaration()
	default:
		init, err = p.expressionStatement()
	}
	if err != nil {
		return nil, err
	}

	var cond ast.Expr = &ast.Literal{Value: true}
	if !p.check(ast.SEMICOLON) {
		if cond, err = p.expression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(ast.SEMICOLON, "expected ';' after loop condition"); err != nil {
		return nil, err
	}

	var incr ast.Expr
	if !p.check(ast.RIGHT_PAREN) {
		if incr, err = p.expression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(ast.RIGHT_PAREN, "expected ')' after for clauses"); err != nil {
		return nil, err
	}

	body, err := p.statement()
	if err != nil {
		return nil, err
	}

	loopBody := []ast.Stmt{body}
	if incr != nil {
		loopBody = append(loopBody, &ast.Expression{Expression: incr})
	}
	var loop ast.Stmt = &ast.While{Condition: cond, Body: &ast.Block{Statements: loopBody}}

	outer := []ast.Stmt{loop}
	if init != nil {
		outer = []ast.Stmt{init, loop}
	}
	return &ast.Block{Statements: outer}, nil
}

func (p *Parser) expressionStatement() (ast.Stmt, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(ast.SEMICOLON, "expected ';' after expression"); err != nil {
		return nil, err
	}
	return &ast.Expression{Expression: expr}, nil
}
