// Command lox runs Lox programs and hosts an interactive session.
//
// Usage:
//
//	lox [flags] run <file>      run a script
//	lox [flags] repl            start the REPL (the default)
//	lox [flags] tokens <file>   print the token stream
//	lox [flags] ast <file>      print the parsed program
//	lox version                 print the version
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/metaphox/lox-lang/ast"
	"github.com/metaphox/lox-lang/interpreter"
	"github.com/metaphox/lox-lang/lexer"
	"github.com/metaphox/lox-lang/parser"
)

const version = "0.1.0"

// Exit codes follow sysexits(3).
const (
	exitOK       = 0
	exitUsage    = 64
	exitData     = 65 // lex or parse error
	exitSoftware = 70 // runtime error
	exitIO       = 74
)

func red(s string) string { return "\x1b[31m" + s + "\x1b[0m" }

// app carries what every subcommand needs.
type app struct {
	cfg    *Config
	stdout io.Writer
	stderr io.Writer
	log    *log.Logger
}

func main() {
	os.Exit(realMain(os.Args[1:], os.Stdout, os.Stderr))
}

func realMain(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("lox", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", defaultConfigPath(), "path to the YAML config file")
	verbose := fs.Bool("v", false, "log config and phase timings to stderr")
	maxDepth := fs.Int("max-depth", 0, "maximum call depth (overrides config)")
	noColor := fs.Bool("no-color", false, "print errors without ANSI colour")
	fs.Usage = func() { usage(stderr, fs) }
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	logger := log.New(io.Discard, "lox: ", log.Ltime|log.Lmicroseconds)
	if *verbose {
		logger.SetOutput(stderr)
	}

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}
	var flagErr error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "max-depth":
			if *maxDepth < 1 {
				flagErr = fmt.Errorf("lox: -max-depth must be positive, got %d", *maxDepth)
				return
			}
			cfg.MaxDepth = *maxDepth
		case "no-color":
			if *noColor {
				cfg.Color = false
			}
		}
	})
	if flagErr != nil {
		fmt.Fprintln(stderr, flagErr)
		return exitUsage
	}
	logger.Printf("config %s: %+v", *configPath, *cfg)

	a := &app{cfg: cfg, stdout: stdout, stderr: stderr, log: logger}

	rest := fs.Args()
	if len(rest) == 0 {
		return a.cmdRepl()
	}
	switch cmd := rest[0]; cmd {
	case "run":
		return a.withFile(rest[1:], "run", a.cmdRun)
	case "repl":
		return a.cmdRepl()
	case "tokens":
		return a.withFile(rest[1:], "tokens", a.cmdTokens)
	case "ast":
		return a.withFile(rest[1:], "ast", a.cmdAST)
	case "version":
		fmt.Fprintln(stdout, "lox", version)
		return exitOK
	case "help":
		usage(stdout, fs)
		return exitOK
	default:
		fmt.Fprintf(stderr, "lox: unknown command %q\n", cmd)
		usage(stderr, fs)
		return exitUsage
	}
}

func usage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprint(w, `Usage:
  lox [flags] run <file>      Run a script.
  lox [flags] repl            Start the REPL (default when no command is given).
  lox [flags] tokens <file>   Print the token stream.
  lox [flags] ast <file>      Print the parsed program.
  lox version                 Print the version.

Flags:
`)
	fs.SetOutput(w)
	fs.PrintDefaults()
}

// withFile reads the single file argument and hands its contents to fn.
func (a *app) withFile(args []string, name string, fn func(src string) int) int {
	if len(args) != 1 {
		fmt.Fprintf(a.stderr, "usage: lox %s <file>\n", name)
		return exitUsage
	}
	src, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(a.stderr, "lox: cannot read %s: %v\n", args[0], err)
		return exitIO
	}
	return fn(string(src))
}

// errorf prints a diagnostic to stderr, in red when colour is enabled.
func (a *app) errorf(err error) {
	msg := err.Error()
	if a.cfg.Color {
		msg = red(msg)
	}
	fmt.Fprintln(a.stderr, msg)
}

// report prints err with the part of src it points at.
func (a *app) report(err error, src string) {
	a.errorf(wrapWithSource(err, src))
}

// reportLex prints every scanning error, each with its own snippet.
func (a *app) reportLex(err error, src string) {
	var list lexer.ErrorList
	if errors.As(err, &list) {
		for _, e := range list {
			a.report(e, src)
		}
		return
	}
	a.report(err, src)
}

// front scans and parses src, reporting failures. ok is false on any error.
func (a *app) front(src string) (stmts []ast.Stmt, ok bool) {
	start := time.Now()
	toks, err := lexer.Tokenize(src)
	if err != nil {
		a.reportLex(err, src)
		return nil, false
	}
	a.log.Printf("scanned %d tokens in %s", len(toks), time.Since(start))

	start = time.Now()
	stmts, err = parser.Parse(toks)
	if err != nil {
		a.report(err, src)
		return nil, false
	}
	a.log.Printf("parsed %d statements in %s", len(stmts), time.Since(start))
	return stmts, true
}

func (a *app) newInterpreter() *interpreter.Interpreter {
	return interpreter.New(
		interpreter.WithOutput(a.stdout),
		interpreter.WithMaxDepth(a.cfg.MaxDepth),
	)
}

// ── run ───────────────────────────────────────────────────────────────────────

func (a *app) cmdRun(src string) int {
	stmts, ok := a.front(src)
	if !ok {
		return exitData
	}

	start := time.Now()
	_, err := a.newInterpreter().Interpret(stmts)
	a.log.Printf("interpreted in %s", time.Since(start))
	if err != nil {
		a.report(err, src)
		return exitSoftware
	}
	return exitOK
}

// ── tokens / ast ──────────────────────────────────────────────────────────────

func (a *app) cmdTokens(src string) int {
	toks, err := lexer.Tokenize(src)
	for _, tok := range toks {
		fmt.Fprintln(a.stdout, formatToken(tok))
	}
	if err != nil {
		a.reportLex(err, src)
		return exitData
	}
	return exitOK
}

// formatToken renders LINE TYPE LEXEME [LITERAL].
func formatToken(tok ast.Token) string {
	fields := []string{fmt.Sprint(tok.Line), tok.Type.String()}
	if tok.Lexeme != "" {
		fields = append(fields, tok.Lexeme)
	}
	if tok.Literal != nil {
		fields = append(fields, interpreter.Stringify(tok.Literal))
	}
	return strings.Join(fields, " ")
}

func (a *app) cmdAST(src string) int {
	stmts, ok := a.front(src)
	if !ok {
		return exitData
	}
	fmt.Fprintln(a.stdout, ast.Dump(stmts))
	return exitOK
}
