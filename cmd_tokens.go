package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"golox/report"
	"golox/scanner"
)

// tokensCmd is a diagnostic verb that prints the token stream the
// scanner produces for a file, one token per line — useful for
// inspecting the lexical front end in isolation from parsing.
type tokensCmd struct{}

func (*tokensCmd) Name() string             { return "tokens" }
func (*tokensCmd) Synopsis() string         { return "print the token stream for a source file" }
func (*tokensCmd) Usage() string            { return "golox tokens <path>\n" }
func (*tokensCmd) SetFlags(f *flag.FlagSet) {}

func (cmd *tokensCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
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
	for _, tok := range s.ScanTokens() {
		fmt.Println(tok.String())
	}
	if sink.HadError() {
		sink.Print(os.Stderr)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
