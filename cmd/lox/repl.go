package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/metaphox/lox-lang/ast"
	"github.com/metaphox/lox-lang/interpreter"
	"github.com/metaphox/lox-lang/lexer"
	"github.com/metaphox/lox-lang/parser"
)

const banner = `Lox ` + version + `. Type :quit or press Ctrl-D to exit.`

// ── repl ──────────────────────────────────────────────────────────────────────

func (a *app) cmdRepl() int {
	fmt.Fprintln(a.stdout, banner)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if a.cfg.HistoryFile != "" {
		if f, err := os.Open(a.cfg.HistoryFile); err == nil {
			n, _ := ln.ReadHistory(f)
			_ = f.Close()
			a.log.Printf("loaded %d history entries from %s", n, a.cfg.HistoryFile)
		}
		defer func() {
			if f, err := os.Create(a.cfg.HistoryFile); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	in := a.newInterpreter()
	for {
		src, toks, ok := a.readInput(ln)
		if !ok {
			fmt.Fprintln(a.stdout)
			return exitOK
		}
		if cmd := strings.TrimSpace(src); strings.HasPrefix(cmd, ":") {
			if cmd == ":quit" {
				return exitOK
			}
			fmt.Fprintln(a.stdout, "unknown command. Type :quit to exit.")
			continue
		}
		if toks == nil {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))

		if err := evalInput(in, toks, a.stdout); err != nil {
			a.report(err, src)
		}
	}
}

// readInput prompts until the accumulated lines close every '(' and '{'.
// ok is false at end of input. toks is nil when there is nothing to run:
// a blank line, an aborted prompt, a ':' command, or a scanning error
// (already reported).
func (a *app) readInput(ln *liner.State) (src string, toks []ast.Token, ok bool) {
	var b strings.Builder
	for {
		prompt := a.cfg.Prompt
		if b.Len() > 0 {
			prompt = a.cfg.Continuation
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", nil, false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", nil, true
		}
		if err != nil {
			a.errorf(err)
			return "", nil, false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		src = b.String()

		if strings.TrimSpace(src) == "" {
			return src, nil, true
		}
		if strings.HasPrefix(strings.TrimSpace(src), ":") {
			return src, nil, true
		}

		scanned, err := lexer.Tokenize(src)
		if err != nil {
			a.reportLex(err, src)
			return src, nil, true
		}
		if !unbalanced(scanned) {
			return src, scanned, true
		}
	}
}

// unbalanced reports whether toks open more '(' or '{' than they close, so
// the REPL should keep reading.
func unbalanced(toks []ast.Token) bool {
	parens, braces := 0, 0
	for _, tok := range toks {
		switch tok.Type {
		case ast.LEFT_PAREN:
			parens++
		case ast.RIGHT_PAREN:
			parens--
		case ast.LEFT_BRACE:
			braces++
		case ast.RIGHT_BRACE:
			braces--
		}
	}
	return parens > 0 || braces > 0
}

// evalInput runs one REPL entry. Input that looks like a bare expression is
// evaluated and its value echoed to w; anything else runs as statements,
// whose prints reach w through the interpreter's output sink.
func evalInput(in *interpreter.Interpreter, toks []ast.Token, w io.Writer) error {
	if parser.GuessTokensAreExpr(toks) {
		expr, err := parser.ParseExpr(toks)
		if err != nil {
			return err
		}
		v, err := in.Evaluate(expr)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, interpreter.Stringify(v))
		return err
	}

	stmts, err := parser.Parse(toks)
	if err != nil {
		return err
	}
	_, err = in.Interpret(stmts)
	return err
}
