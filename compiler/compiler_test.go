package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"golox/chunk"
	"golox/object"
	"golox/report"
	"golox/scanner"
)

func compileSource(t *testing.T, source string) (*chunk.Function, *report.Sink) {
	t.Helper()
	sink := report.New()
	s := scanner.New(source, sink)
	fn := Compile(s.ScanTokens(), sink)
	return fn, sink
}

func TestCompileSimpleExpressionStatement(t *testing.T) {
	fn, sink := compileSource(t, "1 + 2;")
	assert.False(t, sink.HadError())
	assert.NotNil(t, fn)

	code := fn.Chunk.Code
	assert.Equal(t, byte(chunk.OpConstant), code[0])
	assert.Equal(t, byte(chunk.OpConstant), code[3])
	assert.Equal(t, byte(chunk.OpAdd), code[6])
	assert.Equal(t, byte(chunk.OpPop), code[7])
}

func TestCompileGlobalVariableDefineAndGet(t *testing.T) {
	fn, sink := compileSource(t, "var a = 1; print a;")
	assert.False(t, sink.HadError())

	code := fn.Chunk.Code
	assert.Contains(t, code, byte(chunk.OpDefineGlobal))
	assert.Contains(t, code, byte(chunk.OpGetGlobal))
	assert.Contains(t, code, byte(chunk.OpPrint))
}

func TestCompileLocalUsesSingleByteSlot(t *testing.T) {
	fn, sink := compileSource(t, "{ var a = 1; print a; }")
	assert.False(t, sink.HadError())

	code := fn.Chunk.Code
	found := false
	for i, b := range code {
		if chunk.OpCode(b) == chunk.OpGetLocal {
			// operand is a single byte: slot 1 (slot 0 is reserved).
			assert.Equal(t, byte(1), code[i+1])
			found = true
		}
	}
	assert.True(t, found, "expected an OP_GET_LOCAL instruction")
}

func TestCompileLocalDeclarationStoresIntoItsSlot(t *testing.T) {
	fn, sink := compileSource(t, "{ var a = 1; }")
	assert.False(t, sink.HadError())

	code := fn.Chunk.Code
	assert.Equal(t, byte(chunk.OpConstant), code[0])
	assert.Equal(t, byte(chunk.OpDefineLocal), code[3])
	assert.Equal(t, byte(1), code[4])
}

func TestCompileFunctionEmitsClosureAndReturn(t *testing.T) {
	fn, sink := compileSource(t, "fun f(a) { return a; }")
	assert.False(t, sink.HadError())

	code := fn.Chunk.Code
	assert.Equal(t, byte(chunk.OpClosure), code[0])
	// the function prototype plus the global name it's defined under
	assert.Len(t, fn.Chunk.Constants, 2)

	nested, ok := fn.Chunk.Constants[0].(*chunk.Function)
	assert.True(t, ok)
	assert.Equal(t, "f", nested.Name)
	assert.Equal(t, 1, nested.Arity)
	// `return a;` compiles to OP_GET_LOCAL 1 followed by OP_RETURN.
	assert.Equal(t, byte(chunk.OpReturn), nested.Chunk.Code[2])
}

func TestCompileConstantPoolOverflowIsCompileError(t *testing.T) {
	src := "print "
	for i := 0; i < 257; i++ {
		if i > 0 {
			src += "+"
		}
		src += "1"
	}
	src += ";"

	fn, sink := compileSource(t, src)
	assert.True(t, sink.HadError())
	assert.Nil(t, fn)
	found := false
	for _, e := range sink.Entries() {
		if e.Message == "Too many constants in one chunk." {
			found = true
		}
	}
	assert.True(t, found)
}

func TestCompileErrorReportsExpectExpression(t *testing.T) {
	_, sink := compileSource(t, "1 + ;")
	assert.True(t, sink.HadError())
	assert.Contains(t, sink.Entries()[0].Message, "Expect expression.")
}

func TestPanicModeSuppressesCascadingErrorsUntilStatementBoundary(t *testing.T) {
	_, sink := compileSource(t, "1 + ; 2 + ;")
	// both statements have an error, but each is reported once: panic
	// mode is cleared by the statement-level synchronize.
	assert.Len(t, sink.Entries(), 2)
}

func TestStringLiteralEmitsConstant(t *testing.T) {
	fn, sink := compileSource(t, `print "hi";`)
	assert.False(t, sink.HadError())
	assert.Equal(t, object.String("hi"), fn.Chunk.Constants[0])
}
