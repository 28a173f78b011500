package interpreter

import (
	"fmt"

	"golox/token"
)

// RuntimeError is the payload panicked by the tree-walking evaluator
// whenever an operation is applied to values it doesn't support. Interpret
// recovers it at the top level and turns it into the `<message>\n[line N]`
// diagnostic the driver prints to stderr.
type RuntimeError struct {
	Token   token.Token
	Message string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s\n[line %d]", e.Message, e.Token.Line)
}

func newRuntimeError(tok token.Token, message string) *RuntimeError {
	return &RuntimeError{Token: tok, Message: message}
}
