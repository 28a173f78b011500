// Package ast defines the syntax tree produced by the parser and consumed
// by the resolver and the tree-walking interpreter. Every node follows the
// visitor pattern: a node's only behavior is dispatching to the matching
// method of whichever ExprVisitor/StmtVisitor is passed to Accept.
package ast

import "golox/token"

// Expr is any expression node. ID is a small, parser-assigned identity
// distinct from the node's memory address: the resolver uses it to key
// the scope-depth table it builds, since two structurally identical
// expressions (e.g. two references to the same variable written on two
// different lines) must resolve independently.
type Expr interface {
	Accept(v ExprVisitor) any
	NodeID() int
}

// ExprVisitor is implemented once per consumer of the expression tree
// (the resolver, the tree-walking interpreter, the `ast` subcommand's
// JSON printer).
type ExprVisitor interface {
	VisitAssignExpr(e *Assign) any
	VisitBinaryExpr(e *Binary) any
	VisitCallExpr(e *Call) any
	VisitGroupingExpr(e *Grouping) any
	VisitLiteralExpr(e *Literal) any
	VisitLogicalExpr(e *Logical) any
	VisitUnaryExpr(e *Unary) any
	VisitVariableExpr(e *Variable) any
}

type Assign struct {
	ID    int
	Name  token.Token
	Value Expr
}

func (e *Assign) Accept(v ExprVisitor) any { return v.VisitAssignExpr(e) }
func (e *Assign) NodeID() int              { return e.ID }

type Binary struct {
	ID       int
	Left     Expr
	Operator token.Token
	Right    Expr
}

func (e *Binary) Accept(v ExprVisitor) any { return v.VisitBinaryExpr(e) }
func (e *Binary) NodeID() int              { return e.ID }

type Call struct {
	ID     int
	Callee Expr
	Paren  token.Token
	Args   []Expr
}

func (e *Call) Accept(v ExprVisitor) any { return v.VisitCallExpr(e) }
func (e *Call) NodeID() int              { return e.ID }

type Grouping struct {
	ID         int
	Expression Expr
}

func (e *Grouping) Accept(v ExprVisitor) any { return v.VisitGroupingExpr(e) }
func (e *Grouping) NodeID() int              { return e.ID }

// Literal holds the already-interpreted value of a number, string,
// boolean, or nil literal. Value is nil for the `nil` literal itself,
// exactly as a variable bound to nil would be.
type Literal struct {
	ID    int
	Value any
}

func (e *Literal) Accept(v ExprVisitor) any { return v.VisitLiteralExpr(e) }
func (e *Literal) NodeID() int              { return e.ID }

// Logical is `and`/`or`, kept distinct from Binary because it short
// circuits rather than always evaluating both operands.
type Logical struct {
	ID       int
	Left     Expr
	Operator token.Token
	Right    Expr
}

func (e *Logical) Accept(v ExprVisitor) any { return v.VisitLogicalExpr(e) }
func (e *Logical) NodeID() int              { return e.ID }

type Unary struct {
	ID       int
	Operator token.Token
	Right    Expr
}

func (e *Unary) Accept(v ExprVisitor) any { return v.VisitUnaryExpr(e) }
func (e *Unary) NodeID() int              { return e.ID }

type Variable struct {
	ID   int
	Name token.Token
}

func (e *Variable) Accept(v ExprVisitor) any { return v.VisitVariableExpr(e) }
func (e *Variable) NodeID() int              { return e.ID }
