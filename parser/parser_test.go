package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"golox/ast"
	"golox/report"
	"golox/scanner"
	"golox/token"
)

func parse(t *testing.T, source string) ([]ast.Stmt, *report.Sink) {
	t.Helper()
	sink := report.New()
	s := scanner.New(source, sink)
	p := New(s.ScanTokens(), sink)
	return p.Parse(), sink
}

func exprStmt(t *testing.T, stmts []ast.Stmt) ast.Expr {
	t.Helper()
	es, ok := stmts[0].(*ast.Expression)
	assert.True(t, ok, "expected an expression statement")
	return es.Expression
}

func TestOperatorPrecedence(t *testing.T) {
	stmts, sink := parse(t, "1 + 2 * 3;")
	assert.False(t, sink.HadError())
	bin := exprStmt(t, stmts).(*ast.Binary)
	assert.Equal(t, token.PLUS, bin.Operator.Type)
	assert.Equal(t, 1.0, bin.Left.(*ast.Literal).Value)
	rhs := bin.Right.(*ast.Binary)
	assert.Equal(t, token.STAR, rhs.Operator.Type)
}

func TestUnaryBindsTighterThanBinary(t *testing.T) {
	stmts, sink := parse(t, "-1 + 2;")
	assert.False(t, sink.HadError())
	bin := exprStmt(t, stmts).(*ast.Binary)
	_, ok := bin.Left.(*ast.Unary)
	assert.True(t, ok)
}

func TestLogicalIsDistinctFromBinary(t *testing.T) {
	stmts, sink := parse(t, "true and false or true;")
	assert.False(t, sink.HadError())
	logical := exprStmt(t, stmts).(*ast.Logical)
	assert.Equal(t, token.OR, logical.Operator.Type)
	_, ok := logical.Left.(*ast.Logical)
	assert.True(t, ok)
}

func TestAssignmentTargetMustBeVariable(t *testing.T) {
	_, sink := parse(t, "1 + 2 = 3;")
	assert.True(t, sink.HadError())
	assert.Contains(t, sink.Entries()[0].Message, "Invalid assignment target.")
}

func TestCallArguments(t *testing.T) {
	stmts, sink := parse(t, "foo(1, 2, 3);")
	assert.False(t, sink.HadError())
	call := exprStmt(t, stmts).(*ast.Call)
	assert.Len(t, call.Args, 3)
}

func TestVarDeclarationWithoutInitializer(t *testing.T) {
	stmts, sink := parse(t, "var a;")
	assert.False(t, sink.HadError())
	v := stmts[0].(*ast.Var)
	assert.Nil(t, v.Initializer)
}

func TestIfWithoutElse(t *testing.T) {
	stmts, sink := parse(t, "if (true) print 1;")
	assert.False(t, sink.HadError())
	ifStmt := stmts[0].(*ast.If)
	assert.Nil(t, ifStmt.ElseBranch)
}

func TestForDesugarsToWhileWithScopedInitializer(t *testing.T) {
	stmts, sink := parse(t, "for (var i = 0; i < 3; i = i + 1) print i;")
	assert.False(t, sink.HadError())

	outer := stmts[0].(*ast.Block)
	assert.Len(t, outer.Statements, 2)
	_, isVar := outer.Statements[0].(*ast.Var)
	assert.True(t, isVar)

	while := outer.Statements[1].(*ast.While)
	body := while.Body.(*ast.Block)
	assert.Len(t, body.Statements, 2, "body followed by appended increment")
}

func TestForOmittedConditionDefaultsToTrue(t *testing.T) {
	stmts, sink := parse(t, "for (;;) print 1;")
	assert.False(t, sink.HadError())
	while := stmts[0].(*ast.While)
	lit := while.Condition.(*ast.Literal)
	assert.Equal(t, true, lit.Value)
}

func TestFunctionDeclarationParamsAndBody(t *testing.T) {
	stmts, sink := parse(t, "fun add(a, b) { return a + b; }")
	assert.False(t, sink.HadError())
	fn := stmts[0].(*ast.Function)
	assert.Equal(t, "add", fn.Name.Lexeme)
	assert.Len(t, fn.Params, 2)
	assert.Len(t, fn.Body, 1)
	_, isReturn := fn.Body[0].(*ast.Return)
	assert.True(t, isReturn)
}

func TestParameterLimitReportsButDoesNotAbort(t *testing.T) {
	src := "fun f("
	for i := 0; i < 256; i++ {
		if i > 0 {
			src += ", "
		}
		src += "a" + itoa(i)
	}
	src += ") {}"

	stmts, sink := parse(t, src)
	assert.True(t, sink.HadError())
	assert.Contains(t, sink.Entries()[0].Message, "Can't have more than 255 parameters.")
	assert.Len(t, stmts, 1, "parsing still produced the function declaration")
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	digits := ""
	for n > 0 {
		digits = string(rune('0'+n%10)) + digits
		n /= 10
	}
	return digits
}

func TestSynchronizeRecoversAfterErrorAndKeepsLaterStatement(t *testing.T) {
	stmts, sink := parse(t, "var = 1; print 2;")
	assert.True(t, sink.HadError())
	// the bad declaration is dropped, but parsing resumes at `print 2;`
	assert.Len(t, stmts, 1)
	_, ok := stmts[0].(*ast.Print)
	assert.True(t, ok)
}

func TestEachVariableReferenceGetsADistinctNodeID(t *testing.T) {
	stmts, sink := parse(t, "a; a;")
	assert.False(t, sink.HadError())
	first := exprStmt(t, stmts[:1]).(*ast.Variable)
	second := exprStmt(t, stmts[1:]).(*ast.Variable)
	assert.NotEqual(t, first.ID, second.ID)
}
