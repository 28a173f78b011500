package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"golox/ast"
	"golox/report"
)

// astCmd is a diagnostic verb that prints the parsed syntax tree as
// indented JSON, grounded on the same "dump the tree as JSON" idea the
// teacher's parser printer used for its own AST.
type astCmd struct{}

func (*astCmd) Name() string             { return "ast" }
func (*astCmd) Synopsis() string         { return "print the parsed syntax tree for a source file as JSON" }
func (*astCmd) Usage() string            { return "golox ast <path>\n" }
func (*astCmd) SetFlags(f *flag.FlagSet) {}

func (cmd *astCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
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
	statements, _ := parseSource(string(data), sink)
	if sink.HadError() {
		sink.Print(os.Stderr)
		return subcommands.ExitFailure
	}

	p := &astJSONPrinter{}
	tree := make([]any, len(statements))
	for i, s := range statements {
		tree[i] = s.Accept(p)
	}

	out, err := json.MarshalIndent(tree, "", "  ")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Println(string(out))
	return subcommands.ExitSuccess
}

// astJSONPrinter renders every node as a small map keyed by node kind,
// suitable for json.Marshal. It exists purely for the `ast` diagnostic
// verb; nothing in the interpreter or compiler depends on it.
type astJSONPrinter struct{}

func (p *astJSONPrinter) expr(e ast.Expr) any {
	if e == nil {
		return nil
	}
	return e.Accept(p)
}

func (p *astJSONPrinter) stmt(s ast.Stmt) any {
	if s == nil {
		return nil
	}
	return s.Accept(p)
}

func (p *astJSONPrinter) stmts(ss []ast.Stmt) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = p.stmt(s)
	}
	return out
}

func (p *astJSONPrinter) exprs(es []ast.Expr) []any {
	out := make([]any, len(es))
	for i, e := range es {
		out[i] = p.expr(e)
	}
	return out
}

func (p *astJSONPrinter) VisitAssignExpr(e *ast.Assign) any {
	return map[string]any{"node": "Assign", "name": e.Name.Lexeme, "value": p.expr(e.Value)}
}

func (p *astJSONPrinter) VisitBinaryExpr(e *ast.Binary) any {
	return map[string]any{"node": "Binary", "op": e.Operator.Lexeme, "left": p.expr(e.Left), "right": p.expr(e.Right)}
}

func (p *astJSONPrinter) VisitCallExpr(e *ast.Call) any {
	return map[string]any{"node": "Call", "callee": p.expr(e.Callee), "args": p.exprs(e.Args)}
}

func (p *astJSONPrinter) VisitGroupingExpr(e *ast.Grouping) any {
	return map[string]any{"node": "Grouping", "expression": p.expr(e.Expression)}
}

func (p *astJSONPrinter) VisitLiteralExpr(e *ast.Literal) any {
	return map[string]any{"node": "Literal", "value": e.Value}
}

func (p *astJSONPrinter) VisitLogicalExpr(e *ast.Logical) any {
	return map[string]any{"node": "Logical", "op": e.Operator.Lexeme, "left": p.expr(e.Left), "right": p.expr(e.Right)}
}

func (p *astJSONPrinter) VisitUnaryExpr(e *ast.Unary) any {
	return map[string]any{"node": "Unary", "op": e.Operator.Lexeme, "right": p.expr(e.Right)}
}

func (p *astJSONPrinter) VisitVariableExpr(e *ast.Variable) any {
	return map[string]any{"node": "Variable", "name": e.Name.Lexeme}
}

func (p *astJSONPrinter) VisitBlockStmt(s *ast.Block) any {
	return map[string]any{"node": "Block", "statements": p.stmts(s.Statements)}
}

func (p *astJSONPrinter) VisitExpressionStmt(s *ast.Expression) any {
	return map[string]any{"node": "Expression", "expression": p.expr(s.Expression)}
}

func (p *astJSONPrinter) VisitFunctionStmt(s *ast.Function) any {
	params := make([]string, len(s.Params))
	for i, param := range s.Params {
		params[i] = param.Lexeme
	}
	return map[string]any{"node": "Function", "name": s.Name.Lexeme, "params": params, "body": p.stmts(s.Body)}
}

func (p *astJSONPrinter) VisitIfStmt(s *ast.If) any {
	return map[string]any{
		"node":      "If",
		"condition": p.expr(s.Condition),
		"then":      p.stmt(s.ThenBranch),
		"else":      p.stmt(s.ElseBranch),
	}
}

func (p *astJSONPrinter) VisitPrintStmt(s *ast.Print) any {
	return map[string]any{"node": "Print", "expression": p.expr(s.Expression)}
}

func (p *astJSONPrinter) VisitReturnStmt(s *ast.Return) any {
	return map[string]any{"node": "Return", "value": p.expr(s.Value)}
}

func (p *astJSONPrinter) VisitVarStmt(s *ast.Var) any {
	return map[string]any{"node": "Var", "name": s.Name.Lexeme, "initializer": p.expr(s.Initializer)}
}

func (p *astJSONPrinter) VisitWhileStmt(s *ast.While) any {
	return map[string]any{"node": "While", "condition": p.expr(s.Condition), "body": p.stmt(s.Body)}
}
