package main

import (
	"fmt"
	"io"
	"os"

	"golox/ast"
	"golox/interpreter"
	"golox/parser"
	"golox/report"
	"golox/resolver"
	"golox/scanner"
	"golox/token"
)

// exit codes, per the documented CLI contract
const (
	exitSuccess  = 0
	exitUsage    = 64
	exitDataErr  = 65
	exitSoftware = 70
	exitIOErr    = 74
)

// parseSource scans and parses source, returning the parsed statements
// and the scanned tokens; static errors are recorded into sink. This is
// the shared front half of both the tree-walking run path and the `ast`
// diagnostic subcommand.
func parseSource(source string, sink *report.Sink) ([]ast.Stmt, []token.Token) {
	s := scanner.New(source, sink)
	tokens := s.ScanTokens()
	p := parser.New(tokens, sink)
	statements := p.Parse()
	return statements, tokens
}

// run executes source through the tree-walking pipeline (scan, parse,
// resolve, evaluate), sharing one Interpreter across calls so a REPL
// session's global variables persist between lines while its
// had-error/had-runtime-error driver state resets on each call.
func run(in *interpreter.Interpreter, source string, out, errOut io.Writer) int {
	sink := report.New()
	statements, _ := parseSource(source, sink)

	res := resolver.New(sink)
	if !sink.HadError() {
		res.Resolve(statements)
	}

	if sink.HadError() {
		sink.Print(errOut)
		return exitDataErr
	}

	in.Resolve(res.Locals)
	if rerr := in.Interpret(statements); rerr != nil {
		fmt.Fprintln(errOut, rerr.Error())
		return exitSoftware
	}
	return exitSuccess
}

// runFile reads path as UTF-8 source and runs it to completion, returning
// the process exit code the CLI contract specifies.
func runFile(path string, out, errOut io.Writer) int {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return exitIOErr
	}
	in := interpreter.New(out)
	return run(in, string(data), out, errOut)
}
