// Package ast defines the token types, the Token struct, and the syntax tree
// nodes shared by the Lox lexer, parser, and interpreter.
//
// Tokens are the smallest meaningful units of a Lox source file. Every token carries
// its type, the exact lexeme it was scanned from, an optional literal value, and its
// source position. Position is 1-based: the first character of a file is Line 1, Col 1.
package ast

import "fmt"

// TokenType identifies the category of a scanned token.
type TokenType int

const (
	// ── Single-character tokens ────────────────────────────────────────────────

	LEFT_PAREN TokenType = iota
	RIGHT_PAREN
	LEFT_BRACE
	RIGHT_BRACE
	COMMA
	DOT
	MINUS
	PLUS
	SEMICOLON
	SLASH
	STAR

	// ── One or two character tokens ────────────────────────────────────────────

	BANG
	BANG_EQUAL
	EQUAL
	EQUAL_EQUAL
	GREATER
	GREATER_EQUAL
	LESS
	LESS_EQUAL

	// ── Literals ───────────────────────────────────────────────────────────────

	// IDENTIFIER is a name: [a-zA-Z_][a-zA-Z0-9_]*
	// Names that match a keyword are re-classified by [LookupIdent].
	IDENTIFIER
	// STRING is a double-quoted literal. It may span lines; there are no escapes.
	STRING
	// NUMBER is a decimal literal with an optional fractional part, e.g. 12 or 3.25.
	NUMBER

	// ── Keywords ───────────────────────────────────────────────────────────────

	AND
	CLASS
	ELSE
	FALSE
	FUN
	FOR
	IF
	NIL
	OR
	PRINT
	RETURN
	SUPER
	THIS
	TRUE
	VAR
	WHILE
	// LET and IN form the experimental binding expression: let x = 1 in x + 1
	LET
	IN

	// EOF marks the end of the token stream. Every scan ends with exactly one.
	EOF
)

var tokenNames = [...]string{
	LEFT_PAREN:    "LEFT_PAREN",
	RIGHT_PAREN:   "RIGHT_PAREN",
	LEFT_BRACE:    "LEFT_BRACE",
	RIGHT_BRACE:   "RIGHT_BRACE",
	COMMA:         "COMMA",
	DOT:           "DOT",
	MINUS:         "MINUS",
	PLUS:          "PLUS",
	SEMICOLON:     "SEMICOLON",
	SLASH:         "SLASH",
	STAR:          "STAR",
	BANG:          "BANG",
	BANG_EQUAL:    "BANG_EQUAL",
	EQUAL:         "EQUAL",
	EQUAL_EQUAL:   "EQUAL_EQUAL",
	GREATER:       "GREATER",
	GREATER_EQUAL: "GREATER_EQUAL",
	LESS:          "LESS",
	LESS_EQUAL:    "LESS_EQUAL",
	IDENTIFIER:    "IDENTIFIER",
	STRING:        "STRING",
	NUMBER:        "NUMBER",
	AND:           "AND",
	CLASS:         "CLASS",
	ELSE:          "ELSE",
	FALSE:         "FALSE",
	FUN:           "FUN",
	FOR:           "FOR",
	IF:            "IF",
	NIL:           "NIL",
	OR:            "OR",
	PRINT:         "PRINT",
	RETURN:        "RETURN",
	SUPER:         "SUPER",
	THIS:          "THIS",
	TRUE:          "TRUE",
	VAR:           "VAR",
	WHILE:         "WHILE",
	LET:           "LET",
	IN:            "IN",
	EOF:           "EOF",
}

// String returns the upper-case name of the token type, e.g. "LEFT_PAREN".
func (tt TokenType) String() string {
	if tt >= 0 && int(tt) < len(tokenNames) {
		return tokenNames[tt]
	}
	return fmt.Sprintf("TokenType(%d)", int(tt))
}

// keywords maps the literal text of every Lox keyword to its TokenType.
// The lexer consults this map when it finishes scanning an identifier.
var keywords = map[string]TokenType{
	"and":    AND,
	"class":  CLASS,
	"else":   ELSE,
	"false":  FALSE,
	"for":    FOR,
	"fun":    FUN,
	"if":     IF,
	"nil":    NIL,
	"or":     OR,
	"print":  PRINT,
	"return": RETURN,
	"super":  SUPER,
	"this":   THIS,
	"true":   TRUE,
	"var":    VAR,
	"while":  WHILE,
	"let":    LET,
	"in":     IN,
}

// LookupIdent checks whether ident is a reserved keyword and returns the
// corresponding TokenType. If ident is not a keyword, IDENTIFIER is returned.
func LookupIdent(ident string) TokenType {
	if tt, ok := keywords[ident]; ok {
		return tt
	}
	return IDENTIFIER
}

// Token is a single lexical unit produced by the Lox lexer.
//
// Fields:
//   - Type    — the category of this token (see TokenType constants)
//   - Lexeme  — the exact source text that was scanned
//   - Literal — float64 for NUMBER, string for STRING (quotes stripped), nil otherwise
//   - Line    — 1-based source line of the first character
//   - Col     — 1-based column of the first character
type Token struct {
	Type    TokenType
	Lexeme  string
	Literal any
	Line    int
	Col     int
}

// String returns a debugging representation: type, lexeme and literal.
func (t Token) String() string {
	if t.Literal == nil {
		return fmt.Sprintf("%s %s", t.Type, t.Lexeme)
	}
	return fmt.Sprintf("%s %s %v", t.Type, t.Lexeme, t.Literal)
}
