// Package lexer implements the Lox lexer (tokeniser).
//
// The lexer converts a Lox source string into a flat slice of [ast.Token] values
// ending in exactly one [ast.EOF]. Call [Tokenize] for the whole input, or create
// a [Lexer] with [New] and call [Lexer.NextToken] until it returns EOF.
//
// Design notes:
//   - Single-pass, character-by-character scanning using a read position cursor.
//   - No global state; every [Lexer] is independent.
//   - Line and column numbers are tracked for every token (1-based). Newlines
//     inside string literals advance the line counter too.
//   - Comments (// …) are consumed silently — no token is emitted.
//   - Identifiers are scanned first and then classified as keywords via
//     [ast.LookupIdent]; this keeps the main switch statement small.
//   - Two-character operators (!=, ==, <=, >=) and fractional numbers need one
//     extra character of look-ahead, provided by peekChar.
//   - An unexpected character (a whole UTF-8 sequence) is reported once and
//     skipped; scanning continues.
//     An unterminated string is reported and ends the scan.
package lexer

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/metaphox/lox-lang/ast"
)

// Lexer holds all state required to tokenise a single Lox source string.
// Create one with [New]; never copy a Lexer after first use.
type Lexer struct {
	input   string // the full source text
	pos     int    // current read position (index of ch)
	readPos int    // next read position (pos + 1)
	ch      byte   // current character under examination

	line int // current 1-based line number
	col  int // 1-based column of ch

	errs   ErrorList
	halted bool // set by an unterminated string; every later call yields EOF
}

// New creates a [Lexer] that tokenises the given input string.
func New(input string) *Lexer {
	l := &Lexer{
		input: input,
		line:  1,
		col:   0,
	}
	l.readChar() // prime: set l.ch = input[0]
	return l
}

// Tokenize scans src completely. The returned slice always ends with an EOF
// token, even when err is non-nil; err is an [ErrorList] of [*LexError].
func Tokenize(src string) ([]ast.Token, error) {
	return New(src).Tokenize()
}

// Tokenize drains the lexer and returns every token up to and including EOF.
func (l *Lexer) Tokenize() ([]ast.Token, error) {
	var toks []ast.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == ast.EOF {
			break
		}
	}
	return toks, l.Err()
}

// Err returns the errors collected so far, or nil.
func (l *Lexer) Err() error {
	return l.errs.Err()
}

// NextToken returns the next token from the input.
//
// Whitespace and comments are skipped before each token. Characters that cannot
// start a token are recorded as errors and skipped. When the input is exhausted,
// NextToken returns an [ast.EOF] token on every subsequent call.
func (l *Lexer) NextToken() ast.Token {
	for {
		l.skipWhitespaceAndComments()

		if l.halted || l.pos >= len(l.input) {
			return ast.Token{Type: ast.EOF, Line: l.line, Col: l.col}
		}

		if tok, ok := l.scanToken(); ok {
			return tok
		}
	}
}

// scanToken scans one token starting at l.ch. It reports ok=false when the
// character was illegal or the string was unterminated; the error has already
// been recorded and the caller should try again.
func (l *Lexer) scanToken() (ast.Token, bool) {
	start, line, col := l.pos, l.line, l.col

	switch l.ch {
	// ── String literal ──────────────────────────────────────────────────────
	case '"':
		return l.readString()

	// ── Single-character tokens ─────────────────────────────────────────────
	case '(':
		return l.single(ast.LEFT_PAREN), true
	case ')':
		return l.single(ast.RIGHT_PAREN), true
	case '{':
		return l.single(ast.LEFT_BRACE), true
	case '}':
		return l.single(ast.RIGHT_BRACE), true
	case ',':
		return l.single(ast.COMMA), true
	case '.':
		return l.single(ast.DOT), true
	case '-':
		return l.single(ast.MINUS), true
	case '+':
		return l.single(ast.PLUS), true
	case ';':
		return l.single(ast.SEMICOLON), true
	case '*':
		return l.single(ast.STAR), true
	case '/':
		// "//" never reaches here: skipWhitespaceAndComments consumed it.
		return l.single(ast.SLASH), true

	// ── Operators that may be one or two characters ─────────────────────────
	case '!':
		return l.oneOrTwo(ast.BANG, ast.BANG_EQUAL), true
	case '=':
		return l.oneOrTwo(ast.EQUAL, ast.EQUAL_EQUAL), true
	case '<':
		return l.oneOrTwo(ast.LESS, ast.LESS_EQUAL), true
	case '>':
		return l.oneOrTwo(ast.GREATER, ast.GREATER_EQUAL), true

	// ── Identifiers, keywords and numbers ────────────────────────────────────
	default:
		if isLetter(l.ch) {
			return l.readIdentifier(), true
		}
		if isDigit(l.ch) {
			return l.readNumber(), true
		}
	}

	r, size := utf8.DecodeRuneInString(l.input[start:])
	l.errorAt(line, col, fmt.Sprintf("unexpected character %q", string(r)))
	for i := 0; i < size; i++ {
		l.readChar()
	}
	return ast.Token{}, false
}

// ── Internal helpers ──────────────────────────────────────────────────────────

// readChar advances the lexer by one character.
// When the input is exhausted l.ch is set to 0 (the null byte sentinel for EOF).
// Line and column counters are updated here; col is 1-based.
func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.col = 0
	}
	if l.readPos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
	l.col++
}

// peekChar returns the next character without consuming it.
// Returns 0 when the end of input has been reached.
func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

// single emits a one-character token and advances past it.
func (l *Lexer) single(tt ast.TokenType) ast.Token {
	tok := ast.Token{Type: tt, Lexeme: string(l.ch), Line: l.line, Col: l.col}
	l.readChar()
	return tok
}

// oneOrTwo emits two if the character after l.ch is '=', otherwise one.
func (l *Lexer) oneOrTwo(one, two ast.TokenType) ast.Token {
	if l.peekChar() != '=' {
		return l.single(one)
	}
	tok := ast.Token{Type: two, Lexeme: l.input[l.pos : l.pos+2], Line: l.line, Col: l.col}
	l.readChar()
	l.readChar()
	return tok
}

// skipWhitespaceAndComments advances past all whitespace characters and any
// line comments (// … \n) before the next meaningful token.
func (l *Lexer) skipWhitespaceAndComments() {
	for {
		switch l.ch {
		case ' ', '\t', '\r', '\n':
			l.readChar()
		case '/':
			if l.peekChar() != '/' {
				return // lone '/' is the division operator
			}
			for l.ch != '\n' && l.pos < len(l.input) {
				l.readChar()
			}
		default:
			return
		}
	}
}

// readIdentifier scans an identifier or keyword starting at the current position.
// The cursor is left on the first character after the identifier.
func (l *Lexer) readIdentifier() ast.Token {
	startCol := l.col
	startLine := l.line
	start := l.pos

	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}

	lexeme := l.input[start:l.pos]
	return ast.Token{Type: ast.LookupIdent(lexeme), Lexeme: lexeme, Line: startLine, Col: startCol}
}

// readNumber scans a number literal starting at the current position. A
// decimal point is consumed only when a digit follows it; otherwise it is left
// for the next call, which will emit a DOT.
func (l *Lexer) readNumber() ast.Token {
	startCol := l.col
	startLine := l.line
	start := l.pos

	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar() // consume '.'
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	lexeme := l.input[start:l.pos]
	// Digits with an optional ".digits" suffix always parse.
	value, _ := strconv.ParseFloat(lexeme, 64)
	return ast.Token{Type: ast.NUMBER, Lexeme: lexeme, Literal: value, Line: startLine, Col: startCol}
}

// readString scans a double-quoted string literal. The opening '"' is l.ch
// when this method is called. The literal may span lines and has no escape
// sequences; its value is the raw text between the quotes.
//
// Reaching the end of input before the closing quote records an error and
// halts the lexer.
func (l *Lexer) readString() (ast.Token, bool) {
	startCol := l.col
	startLine := l.line
	start := l.pos

	l.readChar() // skip opening '"'
	for l.ch != '"' {
		if l.pos >= len(l.input) {
			l.errorAt(startLine, startCol, "unterminated string")
			l.halted = true
			return ast.Token{}, false
		}
		l.readChar()
	}
	l.readChar() // consume closing '"'

	lexeme := l.input[start:l.pos]
	return ast.Token{
		Type:    ast.STRING,
		Lexeme:  lexeme,
		Literal: lexeme[1 : len(lexeme)-1],
		Line:    startLine,
		Col:     startCol,
	}, true
}

func (l *Lexer) errorAt(line, col int, msg string) {
	l.errs = append(l.errs, &LexError{Line: line, Col: col, Msg: msg})
}

// isLetter reports whether b is a valid identifier-start or identifier-continue
// character. Lox identifiers follow the pattern [a-zA-Z_][a-zA-Z0-9_]*.
func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		b == '_'
}

// isDigit reports whether b is an ASCII decimal digit (0–9).
func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
