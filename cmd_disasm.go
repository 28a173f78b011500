package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"golox/chunk"
	"golox/compiler"
	"golox/report"
	"golox/scanner"
)

// disasmCmd is a diagnostic verb that compiles a file to bytecode and
// writes its disassembly, the equivalent of the teacher's bytecode-dump
// tooling but over the whole compiled call graph rather than one chunk.
type disasmCmd struct{}

func (*disasmCmd) Name() string             { return "disasm" }
func (*disasmCmd) Synopsis() string         { return "compile a source file and print its bytecode disassembly" }
func (*disasmCmd) Usage() string            { return "golox disasm <path>\n" }
func (*disasmCmd) SetFlags(f *flag.FlagSet) {}

func (cmd *disasmCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, cmd.Usage())
		return subcommands.ExitUsageError
	}
	data, err := os.ReadFile(f.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	sink := report.New()
	s := scanner.New(string(data), sink)
	fn := compiler.Compile(s.ScanTokens(), sink)
	if sink.HadError() {
		sink.Print(os.Stderr)
		return subcommands.ExitFailure
	}

	disassembleRecursive(fn, os.Stdout)
	return subcommands.ExitSuccess
}

// disassembleRecursive prints fn's own chunk and then, in declaration
// order, the chunk of every nested function found in its constant pool
// — function declarations don't nest lexically in the listing the way
// they do in source, so each gets its own "== name ==" banner.
func disassembleRecursive(fn *chunk.Function, out *os.File) {
	name := fn.Name
	if name == "" {
		name = "<script>"
	}
	chunk.Disassemble(fn.Chunk, name, out)
	for _, c := range fn.Chunk.Constants {
		if nested, ok := c.(*chunk.Function); ok {
			fmt.Fprintln(out)
			disassembleRecursive(nested, out)
		}
	}
}
