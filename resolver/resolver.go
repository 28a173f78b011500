// Package resolver runs a single static pass over the parsed program
// between parsing and evaluation. It computes, for every variable
// reference, how many enclosing scopes separate it from the scope that
// declares it, and hands that table to the tree-walking interpreter so
// variable lookup never has to search the environment chain at runtime.
package resolver

import (
	"golox/ast"
	"golox/report"
	"golox/token"
)

type functionType int

const (
	functionTypeNone functionType = iota
	functionTypeFunction
)

// Resolver walks the AST once, mirroring the block structure the
// interpreter will later execute, and records scope depths into Locals
// keyed by each expression's NodeID.
type Resolver struct {
	sink   *report.Sink
	scopes []map[string]bool

	// Locals maps an ast.Expr's NodeID to the number of environments
	// between the scope the reference occurs in and the scope that
	// declares the variable. An entry's absence means the variable is
	// global.
	Locals map[int]int

	currentFunction functionType
}

// New returns a Resolver that reports errors into sink.
func New(sink *report.Sink) *Resolver {
	return &Resolver{sink: sink, Locals: make(map[int]int)}
}

// Resolve runs the pass over a whole program.
func (r *Resolver) Resolve(statements []ast.Stmt) {
	r.resolveStmts(statements)
}

func (r *Resolver) resolveStmts(statements []ast.Stmt) {
	for _, s := range statements {
		r.resolveStmt(s)
	}
}

func (r *Resolver) resolveStmt(s ast.Stmt) {
	s.Accept(r)
}

func (r *Resolver) resolveExpr(e ast.Expr) {
	e.Accept(r)
}

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, map[string]bool{})
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *Resolver) declare(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, ok := scope[name.Lexeme]; ok {
		r.sink.ErrorAt(name.Line, " at '"+name.Lexeme+"'", "Already a variable with this name in this scope.")
	}
	scope[name.Lexeme] = false
}

func (r *Resolver) define(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = true
}

func (r *Resolver) resolveLocal(nodeID int, name token.Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			r.Locals[nodeID] = len(r.scopes) - 1 - i
			return
		}
	}
	// not found in any scope: treat as global
}

func (r *Resolver) resolveFunction(fn *ast.Function, kind functionType) {
	enclosingFunction := r.currentFunction
	r.currentFunction = kind

	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStmts(fn.Body)
	r.endScope()

	r.currentFunction = enclosingFunction
}

// --- ast.StmtVisitor ---

func (r *Resolver) VisitBlockStmt(s *ast.Block) any {
	r.beginScope()
	r.resolveStmts(s.Statements)
	r.endScope()
	return nil
}

func (r *Resolver) VisitExpressionStmt(s *ast.Expression) any {
	r.resolveExpr(s.Expression)
	return nil
}

func (r *Resolver) VisitFunctionStmt(s *ast.Function) any {
	r.declare(s.Name)
	r.define(s.Name)
	r.resolveFunction(s, functionTypeFunction)
	return nil
}

func (r *Resolver) VisitIfStmt(s *ast.If) any {
	r.resolveExpr(s.Condition)
	r.resolveStmt(s.ThenBranch)
	if s.ElseBranch != nil {
		r.resolveStmt(s.ElseBranch)
	}
	return nil
}

func (r *Resolver) VisitPrintStmt(s *ast.Print) any {
	r.resolveExpr(s.Expression)
	return nil
}

func (r *Resolver) VisitReturnStmt(s *ast.Return) any {
	if r.currentFunction == functionTypeNone {
		r.sink.ErrorAt(s.Keyword.Line, "", "Can't return from top-level code.")
	}
	if s.Value != nil {
		r.resolveExpr(s.Value)
	}
	return nil
}

func (r *Resolver) VisitVarStmt(s *ast.Var) any {
	r.declare(s.Name)
	if s.Initializer != nil {
		r.resolveExpr(s.Initializer)
	}
	r.define(s.Name)
	return nil
}

func (r *Resolver) VisitWhileStmt(s *ast.While) any {
	r.resolveExpr(s.Condition)
	r.resolveStmt(s.Body)
	return nil
}

// --- ast.ExprVisitor ---

func (r *Resolver) VisitVariableExpr(e *ast.Variable) any {
	if len(r.scopes) > 0 {
		if initialized, ok := r.scopes[len(r.scopes)-1][e.Name.Lexeme]; ok && !initialized {
			r.sink.ErrorAt(e.Name.Line, " at '"+e.Name.Lexeme+"'", "Can't read local variable in its own initializer.")
		}
	}
	r.resolveLocal(e.ID, e.Name)
	return nil
}

func (r *Resolver) VisitAssignExpr(e *ast.Assign) any {
	r.resolveExpr(e.Value)
	r.resolveLocal(e.ID, e.Name)
	return nil
}

func (r *Resolver) VisitBinaryExpr(e *ast.Binary) any {
	r.resolveExpr(e.Left)
	r.resolveExpr(e.Right)
	return nil
}

func (r *Resolver) VisitCallExpr(e *ast.Call) any {
	r.resolveExpr(e.Callee)
	for _, a := range e.Args {
		r.resolveExpr(a)
	}
	return nil
}

func (r *Resolver) VisitGroupingExpr(e *ast.Grouping) any {
	r.resolveExpr(e.Expression)
	return nil
}

func (r *Resolver) VisitLiteralExpr(e *ast.Literal) any {
	return nil
}

func (r *Resolver) VisitLogicalExpr(e *ast.Logical) any {
	r.resolveExpr(e.Left)
	r.resolveExpr(e.Right)
	return nil
}

func (r *Resolver) VisitUnaryExpr(e *ast.Unary) any {
	r.resolveExpr(e.Right)
	return nil
}
