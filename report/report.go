// Package report is the diagnostic sink shared by the scanner, parser,
// resolver, and both interpreter pipelines. It gives every phase a single
// place to record a static error and a single formatting rule for it, so
// the driver can print diagnostics consistently and decide an exit code
// without reaching back into each phase's internals.
package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Entry is one static diagnostic: a source line, an optional "where"
// context (such as " at 'foo'" or " at end"), and a message.
type Entry struct {
	Line    int
	Where   string
	Message string
}

func (e Entry) String() string {
	return fmt.Sprintf("[line %d] Error%s: %s", e.Line, e.Where, e.Message)
}

// Sink accumulates static diagnostics produced while scanning, parsing,
// or resolving a single source unit. It is not safe for concurrent use;
// a fresh Sink is created per REPL entry or per file run.
type Sink struct {
	entries []Entry
}

// New returns an empty Sink.
func New() *Sink {
	return &Sink{}
}

// Error records a diagnostic at the given line with no extra context.
func (s *Sink) Error(line int, message string) {
	s.entries = append(s.entries, Entry{Line: line, Message: message})
}

// ErrorAt records a diagnostic at the given line with a "where" suffix,
// as produced by the parser when it has a token to blame.
func (s *Sink) ErrorAt(line int, where, message string) {
	s.entries = append(s.entries, Entry{Line: line, Where: where, Message: message})
}

// HadError reports whether any diagnostic has been recorded.
func (s *Sink) HadError() bool {
	return len(s.entries) > 0
}

// Entries returns the diagnostics recorded so far, in the order they
// were added.
func (s *Sink) Entries() []Entry {
	return s.entries
}

// Print writes every diagnostic to w, colored red unless fatih/color's
// global color.NoColor setting disables color output.
func (s *Sink) Print(w io.Writer) {
	red := color.New(color.FgRed)
	for _, e := range s.entries {
		red.Fprintln(w, e.String())
	}
}
