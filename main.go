// Command golox is the Lox language driver: a REPL and file runner built
// on the tree-walking interpreter, plus a handful of diagnostic
// subcommands (tokens, ast, vm, disasm) that expose the scanner, parser,
// and bytecode pipeline directly.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/google/subcommands"

	"golox/interpreter"
)

var diagnosticVerbs = map[string]bool{
	"tokens": true,
	"ast":    true,
	"vm":     true,
	"disasm": true,
}

func main() {
	if len(os.Args) >= 2 && diagnosticVerbs[os.Args[1]] {
		os.Exit(runSubcommands())
	}

	switch len(os.Args) {
	case 1:
		os.Exit(repl(os.Stdout, os.Stderr))
	case 2:
		os.Exit(runFile(os.Args[1], os.Stdout, os.Stderr))
	default:
		fmt.Fprintln(os.Stderr, "Usage: golox [script]")
		os.Exit(exitUsage)
	}
}

func runSubcommands() int {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")
	subcommands.Register(&tokensCmd{}, "")
	subcommands.Register(&astCmd{}, "")
	subcommands.Register(&vmCmd{}, "")
	subcommands.Register(&disasmCmd{}, "")

	flag.Parse()
	return int(subcommands.Execute(context.Background()))
}

// repl implements the literal CLI contract: one line of standard input
// at a time, each executed independently, exiting 0 on EOF. A parse or
// runtime diagnostic on one line never prevents the next line from
// running.
func repl(out, errOut io.Writer) int {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:      "> ",
		HistoryFile: "",
	})
	if err != nil {
		fmt.Fprintln(errOut, err)
		return exitIOErr
	}
	defer rl.Close()

	in := interpreter.New(out)
	for {
		line, err := rl.Readline()
		if err != nil {
			if err == io.EOF {
				return exitSuccess
			}
			return exitSuccess
		}
		run(in, line, out, errOut)
	}
}
