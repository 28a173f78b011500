package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/google/subcommands"

	"golox/compiler"
	"golox/report"
	"golox/scanner"
	"golox/vm"
)

// vmCmd is a diagnostic verb that runs source through the bytecode
// compiler and stack VM instead of the tree-walking pipeline — with a
// path it compiles and runs that file; with no path it behaves like the
// default REPL but against the VM, so both execution strategies are
// reachable from the CLI.
type vmCmd struct {
	trace bool
}

func (*vmCmd) Name() string     { return "vm" }
func (*vmCmd) Synopsis() string { return "run a source file (or a REPL) on the bytecode VM" }
func (*vmCmd) Usage() string    { return "golox vm [-trace] [path]\n" }

func (cmd *vmCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&cmd.trace, "trace", false, "print the stack before every instruction")
}

func (cmd *vmCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	switch f.NArg() {
	case 0:
		return subcommands.ExitStatus(cmd.repl(os.Stdout, os.Stderr))
	case 1:
		return subcommands.ExitStatus(cmd.runFile(f.Arg(0), os.Stdout, os.Stderr))
	default:
		fmt.Fprintln(os.Stderr, cmd.Usage())
		return subcommands.ExitUsageError
	}
}

func (cmd *vmCmd) runFile(path string, out, errOut io.Writer) int {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return exitIOErr
	}
	machine := vm.New(out)
	machine.DebugTrace = cmd.trace
	return cmd.runSource(machine, string(data), errOut)
}

// repl mirrors the tree-walker REPL's contract: one line of standard
// input at a time, a fresh compile per line, globals persisted across
// lines through the one long-lived VM instance.
func (cmd *vmCmd) repl(out, errOut io.Writer) int {
	rl, err := readline.NewEx(&readline.Config{Prompt: "vm> "})
	if err != nil {
		fmt.Fprintln(errOut, err)
		return exitIOErr
	}
	defer rl.Close()

	machine := vm.New(out)
	machine.DebugTrace = cmd.trace
	for {
		line, err := rl.Readline()
		if err != nil {
			return exitSuccess
		}
		cmd.runSource(machine, line, errOut)
	}
}

func (cmd *vmCmd) runSource(machine *vm.VM, source string, errOut io.Writer) int {
	sink := report.New()
	s := scanner.New(source, sink)
	fn := compiler.Compile(s.ScanTokens(), sink)
	if sink.HadError() {
		sink.Print(errOut)
		return exitDataErr
	}
	if rerr := machine.Interpret(fn); rerr != nil {
		fmt.Fprintln(errOut, rerr.Error())
		return exitSoftware
	}
	return exitSuccess
}
