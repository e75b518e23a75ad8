// Package lexer_test contains integration-style tests for the Lox lexer.
//
// Tests are organised by category:
//   - TestLexer_Keywords        — every keyword, including let/in
//   - TestLexer_Operators       — every operator including two-character ones
//   - TestLexer_Numbers         — integer and fractional literals, trailing dots
//   - TestLexer_Strings         — single and multi-line strings, unterminated strings
//   - TestLexer_Comments        — line comments are skipped, adjacent tokens returned
//   - TestLexer_Position        — line and column tracking across newlines
//   - TestLexer_Errors          — illegal characters are reported and skipped
//   - TestLexer_RoundTrip       — lexemes reproduce the source modulo whitespace
package lexer_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/metaphox/lox-lang/ast"
	"github.com/metaphox/lox-lang/lexer"
)

// tokenCase is a single (type, lexeme) expectation used in table-driven tests.
type tokenCase struct {
	expectedType   ast.TokenType
	expectedLexeme string
}

// runCases tokenises input and fails the test on any mismatch with want.
// The input is expected to scan without errors.
func runCases(t *testing.T, input string, want []tokenCase) []ast.Token {
	t.Helper()
	toks, err := lexer.Tokenize(input)
	if err != nil {
		t.Fatalf("unexpected lex error: %v", err)
	}
	if len(toks) != len(want) {
		t.Fatalf("token count: got %d, want %d (%v)", len(toks), len(want), toks)
	}
	for i, tc := range want {
		tok := toks[i]
		if tok.Type != tc.expectedType {
			t.Errorf("case %d: type mismatch — got %s, want %s (lexeme %q)", i, tok.Type, tc.expectedType, tok.Lexeme)
		}
		if tok.Lexeme != tc.expectedLexeme {
			t.Errorf("case %d: lexeme mismatch — got %q, want %q", i, tok.Lexeme, tc.expectedLexeme)
		}
	}
	return toks
}

// ── Keywords ──────────────────────────────────────────────────────────────────

func TestLexer_Keywords(t *testing.T) {
	input := `and class else false fun for if nil or print
return super this true var while let in`

	want := []tokenCase{
		{ast.AND, "and"},
		{ast.CLASS, "class"},
		{ast.ELSE, "else"},
		{ast.FALSE, "false"},
		{ast.FUN, "fun"},
		{ast.FOR, "for"},
		{ast.IF, "if"},
		{ast.NIL, "nil"},
		{ast.OR, "or"},
		{ast.PRINT, "print"},
		{ast.RETURN, "return"},
		{ast.SUPER, "super"},
		{ast.THIS, "this"},
		{ast.TRUE, "true"},
		{ast.VAR, "var"},
		{ast.WHILE, "while"},
		{ast.LET, "let"},
		{ast.IN, "in"},
		{ast.EOF, ""},
	}
	runCases(t, input, want)
}

// TestLexer_KeywordBoundary checks that keyword prefixes used as identifiers are
// not mis-classified. E.g. "variable" must not be split into VAR + "iable".
func TestLexer_KeywordBoundary(t *testing.T) {
	input := `variable orchid _fun print2 inner`
	want := []tokenCase{
		{ast.IDENTIFIER, "variable"},
		{ast.IDENTIFIER, "orchid"},
		{ast.IDENTIFIER, "_fun"},
		{ast.IDENTIFIER, "print2"},
		{ast.IDENTIFIER, "inner"},
		{ast.EOF, ""},
	}
	runCases(t, input, want)
}

// ── Operators ────────────────────────────────────────────────────────────────

func TestLexer_Operators(t *testing.T) {
	input := `( ) { } , . - + ; / * ! != = == > >= < <=`
	want := []tokenCase{
		{ast.LEFT_PAREN, "("},
		{ast.RIGHT_PAREN, ")"},
		{ast.LEFT_BRACE, "{"},
		{ast.RIGHT_BRACE, "}"},
		{ast.COMMA, ","},
		{ast.DOT, "."},
		{ast.MINUS, "-"},
		{ast.PLUS, "+"},
		{ast.SEMICOLON, ";"},
		{ast.SLASH, "/"},
		{ast.STAR, "*"},
		{ast.BANG, "!"},
		{ast.BANG_EQUAL, "!="},
		{ast.EQUAL, "="},
		{ast.EQUAL_EQUAL, "=="},
		{ast.GREATER, ">"},
		{ast.GREATER_EQUAL, ">="},
		{ast.LESS, "<"},
		{ast.LESS_EQUAL, "<="},
		{ast.EOF, ""},
	}
	runCases(t, input, want)
}

// TestLexer_OperatorsAdjacent makes sure two-character operators are matched
// greedily without surrounding whitespace.
func TestLexer_OperatorsAdjacent(t *testing.T) {
	want := []tokenCase{
		{ast.BANG, "!"},
		{ast.BANG_EQUAL, "!="},
		{ast.EQUAL_EQUAL, "=="},
		{ast.EQUAL, "="},
		{ast.EOF, ""},
	}
	runCases(t, `!!====`, want)
}

// ── Numbers ──────────────────────────────────────────────────────────────────

func TestLexer_Numbers(t *testing.T) {
	tests := []struct {
		input string
		value float64
	}{
		{"0", 0},
		{"42", 42},
		{"3.25", 3.25},
		{"007", 7},
		{"10.0", 10},
	}
	for _, tt := range tests {
		toks := runCases(t, tt.input, []tokenCase{{ast.NUMBER, tt.input}, {ast.EOF, ""}})
		if got, ok := toks[0].Literal.(float64); !ok || got != tt.value {
			t.Errorf("%q: literal got %#v, want %v", tt.input, toks[0].Literal, tt.value)
		}
	}
}

// TestLexer_NumberTrailingDot checks that a '.' without a following digit is
// not part of the number.
func TestLexer_NumberTrailingDot(t *testing.T) {
	want := []tokenCase{
		{ast.NUMBER, "12"},
		{ast.DOT, "."},
		{ast.IDENTIFIER, "x"},
		{ast.NUMBER, "1"},
		{ast.DOT, "."},
		{ast.EOF, ""},
	}
	runCases(t, `12.x 1.`, want)
}

// TestLexer_NumberLeadingDot checks that .5 is DOT followed by NUMBER.
func TestLexer_NumberLeadingDot(t *testing.T) {
	runCases(t, `.5`, []tokenCase{{ast.DOT, "."}, {ast.NUMBER, "5"}, {ast.EOF, ""}})
}

// ── Strings ──────────────────────────────────────────────────────────────────

func TestLexer_Strings(t *testing.T) {
	toks := runCases(t, `"hello" ""`, []tokenCase{
		{ast.STRING, `"hello"`},
		{ast.STRING, `""`},
		{ast.EOF, ""},
	})
	if toks[0].Literal != "hello" {
		t.Errorf("literal: got %#v, want %q", toks[0].Literal, "hello")
	}
	if toks[1].Literal != "" {
		t.Errorf("empty literal: got %#v", toks[1].Literal)
	}
}

// TestLexer_StringNoEscapes checks that backslashes are kept verbatim.
func TestLexer_StringNoEscapes(t *testing.T) {
	toks := runCases(t, `"a\nb"`, []tokenCase{{ast.STRING, `"a\nb"`}, {ast.EOF, ""}})
	if toks[0].Literal != `a\nb` {
		t.Errorf("literal: got %q", toks[0].Literal)
	}
}

func TestLexer_MultiLineString(t *testing.T) {
	toks := runCases(t, "\"one\ntwo\" x", []tokenCase{
		{ast.STRING, "\"one\ntwo\""},
		{ast.IDENTIFIER, "x"},
		{ast.EOF, ""},
	})
	if toks[0].Literal != "one\ntwo" {
		t.Errorf("literal: got %q", toks[0].Literal)
	}
	if toks[0].Line != 1 {
		t.Errorf("string line: got %d, want 1", toks[0].Line)
	}
	if toks[1].Line != 2 {
		t.Errorf("identifier after multi-line string: line %d, want 2", toks[1].Line)
	}
}

// TestLexer_UnterminatedString verifies that the scan stops at the open quote:
// nothing after it is tokenised, and the error names the starting line.
func TestLexer_UnterminatedString(t *testing.T) {
	toks, err := lexer.Tokenize("var a;\nprint \"oops;\nvar b;")
	if err == nil {
		t.Fatal("expected an error for an unterminated string")
	}
	var lexErr *lexer.LexError
	if !errors.As(err, &lexErr) {
		t.Fatalf("expected *lexer.LexError, got %T", err)
	}
	if lexErr.Line != 2 || !strings.Contains(lexErr.Msg, "unterminated string") {
		t.Errorf("got %+v", lexErr)
	}

	want := []ast.TokenType{ast.VAR, ast.IDENTIFIER, ast.SEMICOLON, ast.PRINT, ast.EOF}
	if len(toks) != len(want) {
		t.Fatalf("token count: got %d, want %d (%v)", len(toks), len(want), toks)
	}
	for i, tt := range want {
		if toks[i].Type != tt {
			t.Errorf("token %d: got %s, want %s", i, toks[i].Type, tt)
		}
	}
}

// ── Comments ─────────────────────────────────────────────────────────────────

func TestLexer_Comments(t *testing.T) {
	input := `// leading comment
var x = 1; // trailing comment
// last line without newline`
	want := []tokenCase{
		{ast.VAR, "var"},
		{ast.IDENTIFIER, "x"},
		{ast.EQUAL, "="},
		{ast.NUMBER, "1"},
		{ast.SEMICOLON, ";"},
		{ast.EOF, ""},
	}
	runCases(t, input, want)
}

// TestLexer_SlashIsNotComment ensures a single '/' is the division operator.
func TestLexer_SlashIsNotComment(t *testing.T) {
	runCases(t, `a / b`, []tokenCase{
		{ast.IDENTIFIER, "a"},
		{ast.SLASH, "/"},
		{ast.IDENTIFIER, "b"},
		{ast.EOF, ""},
	})
}

// ── Position tracking ─────────────────────────────────────────────────────────

func TestLexer_Position(t *testing.T) {
	input := "var x = 1;\n  print x;"
	toks, err := lexer.Tokenize(input)
	if err != nil {
		t.Fatal(err)
	}

	type pos struct{ line, col int }
	want := []pos{
		{1, 1}, {1, 5}, {1, 7}, {1, 9}, {1, 10},
		{2, 3}, {2, 9}, {2, 10},
	}
	for i, w := range want {
		if toks[i].Line != w.line || toks[i].Col != w.col {
			t.Errorf("token %d (%q): got %d:%d, want %d:%d",
				i, toks[i].Lexeme, toks[i].Line, toks[i].Col, w.line, w.col)
		}
	}
	if eof := toks[len(toks)-1]; eof.Type != ast.EOF || eof.Line != 2 {
		t.Errorf("EOF: got %s on line %d", eof.Type, eof.Line)
	}
}

// ── Errors ───────────────────────────────────────────────────────────────────

// TestLexer_NonASCII checks that a multi-byte character outside the grammar is
// reported once, as the whole rune, and that scanning resumes after it.
func TestLexer_NonASCII(t *testing.T) {
	toks, err := lexer.Tokenize("a é b")
	var list lexer.ErrorList
	if !errors.As(err, &list) {
		t.Fatalf("expected lexer.ErrorList, got %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("error count: got %d, want 1 (%v)", len(list), list)
	}
	if list[0].Msg != `unexpected character "é"` || list[0].Col != 3 {
		t.Errorf("error: %+v", list[0])
	}
	if len(toks) != 3 || toks[1].Lexeme != "b" {
		t.Errorf("tokens: %v", toks)
	}
}

// TestLexer_Errors checks that an illegal character is reported with its line
// and that the rest of the input is still tokenised.
func TestLexer_Errors(t *testing.T) {
	toks, err := lexer.Tokenize("a @ b\n# c")
	if err == nil {
		t.Fatal("expected errors")
	}

	var list lexer.ErrorList
	if !errors.As(err, &list) {
		t.Fatalf("expected lexer.ErrorList, got %T", err)
	}
	if len(list) != 2 {
		t.Fatalf("error count: got %d, want 2 (%v)", len(list), list)
	}
	if list[0].Line != 1 || list[0].Col != 3 || !strings.Contains(list[0].Msg, "@") {
		t.Errorf("first error: %+v", list[0])
	}
	if list[1].Line != 2 || !strings.Contains(list[1].Msg, "#") {
		t.Errorf("second error: %+v", list[1])
	}
	if !strings.Contains(err.Error(), "and 1 more errors") {
		t.Errorf("summary: %q", err.Error())
	}

	var names []string
	for _, tok := range toks {
		names = append(names, tok.Lexeme)
	}
	if got := strings.Join(names, " "); got != "a b c " {
		t.Errorf("tokens after illegal characters: got %q", got)
	}
}

// TestLexer_NextTokenAfterEOF checks that EOF is sticky.
func TestLexer_NextTokenAfterEOF(t *testing.T) {
	l := lexer.New("x")
	l.NextToken()
	for i := 0; i < 3; i++ {
		if tok := l.NextToken(); tok.Type != ast.EOF {
			t.Fatalf("call %d: got %s, want EOF", i, tok.Type)
		}
	}
	if l.Err() != nil {
		t.Errorf("unexpected error: %v", l.Err())
	}
}

// ── Round trip ───────────────────────────────────────────────────────────────

func TestLexer_RoundTrip(t *testing.T) {
	input := `fun add(a, b) {
  // sum two values
  return a + b;
}
print add(1.5, 2) >= 3 and "ok" != nil;`

	toks, err := lexer.Tokenize(input)
	if err != nil {
		t.Fatal(err)
	}
	var b strings.Builder
	for _, tok := range toks {
		b.WriteString(tok.Lexeme)
	}

	strip := func(s string) string {
		var out strings.Builder
		for _, line := range strings.Split(s, "\n") {
			if i := strings.Index(line, "//"); i >= 0 {
				line = line[:i]
			}
			out.WriteString(strings.Join(strings.Fields(line), ""))
		}
		return out.String()
	}
	if got, want := b.String(), strip(input); got != want {
		t.Errorf("round trip:\n got %q\nwant %q", got, want)
	}
}

// TestTokenType_String spot-checks the names used in diagnostics.
func TestTokenType_String(t *testing.T) {
	if got := ast.LEFT_PAREN.String(); got != "LEFT_PAREN" {
		t.Errorf("got %q", got)
	}
	if got := ast.EOF.String(); got != "EOF" {
		t.Errorf("got %q", got)
	}
	if got := ast.TokenType(999).String(); got != "TokenType(999)" {
		t.Errorf("got %q", got)
	}
}
