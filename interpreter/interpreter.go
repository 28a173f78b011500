// Package interpreter implements the tree-walking evaluator: the
// reference-semantics pipeline that runs a resolved AST directly, one
// visitor dispatch per node, without ever producing bytecode.
package interpreter

import (
	"fmt"
	"io"
	"time"

	"golox/ast"
	"golox/object"
	"golox/token"
)

// Interpreter evaluates a resolved program. Locals is the scope-depth
// table the resolver produced; Interpret falls back to treating a
// variable as global whenever its NodeID has no entry there.
type Interpreter struct {
	globals     *Environment
	environment *Environment
	locals      map[int]int
	out         io.Writer
}

// New returns an Interpreter that prints `print` statement output to
// out, with the clock builtin registered in the global scope.
func New(out io.Writer) *Interpreter {
	globals := NewEnvironment(nil)
	globals.Define("clock", &Builtin{
		name:  "clock",
		arity: 0,
		fn: func(args []object.Object) object.Object {
			return object.Number(float64(time.Now().UnixNano()) / 1e9)
		},
	})
	return &Interpreter{globals: globals, environment: globals, out: out}
}

// Resolve installs the scope-depth table the resolver produced. It must
// be called once before Interpret; Interpret itself performs no static
// analysis.
func (in *Interpreter) Resolve(locals map[int]int) {
	in.locals = locals
}

// Interpret executes a whole program, recovering a *RuntimeError
// panicked by any visitor method and returning it instead of letting it
// escape, so the driver can print it and choose an exit code.
func (in *Interpreter) Interpret(statements []ast.Stmt) (err *RuntimeError) {
	defer func() {
		if r := recover(); r != nil {
			if re, ok := r.(*RuntimeError); ok {
				err = re
				return
			}
			panic(r)
		}
	}()

	for _, stmt := range statements {
		in.execute(stmt)
	}
	return nil
}

func (in *Interpreter) execute(stmt ast.Stmt) {
	stmt.Accept(in)
}

func (in *Interpreter) evaluate(expr ast.Expr) object.Object {
	return expr.Accept(in).(object.Object)
}

func (in *Interpreter) executeBlock(statements []ast.Stmt, env *Environment) {
	previous := in.environment
	defer func() { in.environment = previous }()

	in.environment = env
	for _, stmt := range statements {
		in.execute(stmt)
	}
}

// --- ast.StmtVisitor ---

func (in *Interpreter) VisitBlockStmt(s *ast.Block) any {
	in.executeBlock(s.Statements, NewEnvironment(in.environment))
	return nil
}

func (in *Interpreter) VisitExpressionStmt(s *ast.Expression) any {
	in.evaluate(s.Expression)
	return nil
}

func (in *Interpreter) VisitFunctionStmt(s *ast.Function) any {
	fn := newFunction(s, in.environment)
	in.environment.Define(s.Name.Lexeme, fn)
	return nil
}

func (in *Interpreter) VisitIfStmt(s *ast.If) any {
	if object.IsTruthy(in.evaluate(s.Condition)) {
		in.execute(s.ThenBranch)
	} else if s.ElseBranch != nil {
		in.execute(s.ElseBranch)
	}
	return nil
}

func (in *Interpreter) VisitPrintStmt(s *ast.Print) any {
	value := in.evaluate(s.Expression)
	fmt.Fprintln(in.out, object.Stringify(value))
	return nil
}

func (in *Interpreter) VisitReturnStmt(s *ast.Return) any {
	var value object.Object = object.NilValue
	if s.Value != nil {
		value = in.evaluate(s.Value)
	}
	panic(returnSignal{value: value})
}

func (in *Interpreter) VisitVarStmt(s *ast.Var) any {
	var value object.Object = object.NilValue
	if s.Initializer != nil {
		value = in.evaluate(s.Initializer)
	}
	in.environment.Define(s.Name.Lexeme, value)
	return nil
}

func (in *Interpreter) VisitWhileStmt(s *ast.While) any {
	for object.IsTruthy(in.evaluate(s.Condition)) {
		in.execute(s.Body)
	}
	return nil
}

// --- ast.ExprVisitor ---

func (in *Interpreter) VisitLiteralExpr(e *ast.Literal) any {
	if e.Value == nil {
		return object.Object(object.NilValue)
	}
	switch v := e.Value.(type) {
	case float64:
		return object.Object(object.Number(v))
	case string:
		return object.Object(object.String(v))
	case bool:
		return object.Object(object.Bool(v))
	default:
		return object.Object(object.NilValue)
	}
}

func (in *Interpreter) VisitGroupingExpr(e *ast.Grouping) any {
	return in.evaluate(e.Expression)
}

func (in *Interpreter) VisitUnaryExpr(e *ast.Unary) any {
	right := in.evaluate(e.Right)

	switch e.Operator.Type {
	case token.MINUS:
		n, ok := right.(object.Number)
		if !ok {
			panic(newRuntimeError(e.Operator, "Operand must be a number."))
		}
		return object.Object(-n)
	case token.BANG:
		return object.Object(object.Bool(!object.IsTruthy(right)))
	}
	panic(newRuntimeError(e.Operator, "Unreachable unary operator."))
}

func (in *Interpreter) VisitVariableExpr(e *ast.Variable) any {
	return in.lookUpVariable(e.Name, e.ID)
}

func (in *Interpreter) lookUpVariable(name token.Token, nodeID int) object.Object {
	if distance, ok := in.locals[nodeID]; ok {
		return in.environment.GetAt(distance, name.Lexeme)
	}
	value, ok := in.globals.Get(name.Lexeme)
	if !ok {
		panic(newRuntimeError(name, "Undefined variable '"+name.Lexeme+"'."))
	}
	return value
}

func (in *Interpreter) VisitAssignExpr(e *ast.Assign) any {
	value := in.evaluate(e.Value)

	if distance, ok := in.locals[e.ID]; ok {
		in.environment.AssignAt(distance, e.Name.Lexeme, value)
	} else if !in.globals.Assign(e.Name.Lexeme, value) {
		panic(newRuntimeError(e.Name, "Undefined variable '"+e.Name.Lexeme+"'."))
	}
	return value
}

func (in *Interpreter) VisitLogicalExpr(e *ast.Logical) any {
	left := in.evaluate(e.Left)

	if e.Operator.Type == token.OR {
		if object.IsTruthy(left) {
			return left
		}
	} else {
		if !object.IsTruthy(left) {
			return left
		}
	}
	return in.evaluate(e.Right)
}

func (in *Interpreter) VisitCallExpr(e *ast.Call) any {
	callee := in.evaluate(e.Callee)

	args := make([]object.Object, len(e.Args))
	for i, a := range e.Args {
		args[i] = in.evaluate(a)
	}

	switch fn := callee.(type) {
	case *Function:
		if len(args) != fn.Arity() {
			panic(newRuntimeError(e.Paren, fmt.Sprintf("Expected %d arguments but got %d.", fn.Arity(), len(args))))
		}
		return fn.Call(in, args)
	case *Builtin:
		if len(args) != fn.Arity() {
			panic(newRuntimeError(e.Paren, fmt.Sprintf("Expected %d arguments but got %d.", fn.Arity(), len(args))))
		}
		return fn.Call(args)
	default:
		panic(newRuntimeError(e.Paren, "Can only call functions and classes."))
	}
}

func (in *Interpreter) VisitBinaryExpr(e *ast.Binary) any {
	left := in.evaluate(e.Left)
	right := in.evaluate(e.Right)

	switch e.Operator.Type {
	case token.GREATER:
		ln, rn := in.requireNumbers(e.Operator, left, right)
		return object.Object(object.Bool(ln > rn))
	case token.GREATER_EQUAL:
		ln, rn := in.requireNumbers(e.Operator, left, right)
		return object.Object(object.Bool(ln >= rn))
	case token.LESS:
		ln, rn := in.requireNumbers(e.Operator, left, right)
		return object.Object(object.Bool(ln < rn))
	case token.LESS_EQUAL:
		ln, rn := in.requireNumbers(e.Operator, left, right)
		return object.Object(object.Bool(ln <= rn))
	case token.BANG_EQUAL:
		return object.Object(object.Bool(!object.Equal(left, right)))
	case token.EQUAL_EQUAL:
		return object.Object(object.Bool(object.Equal(left, right)))
	case token.MINUS:
		ln, rn := in.requireNumbers(e.Operator, left, right)
		return object.Object(ln - rn)
	case token.SLASH:
		ln, rn := in.requireNumbers(e.Operator, left, right)
		if rn == 0 {
			panic(newRuntimeError(e.Operator, "Division by zero."))
		}
		return object.Object(ln / rn)
	case token.STAR:
		ln, rn := in.requireNumbers(e.Operator, left, right)
		return object.Object(ln * rn)
	case token.PLUS:
		if ln, ok := left.(object.Number); ok {
			if rn, ok := right.(object.Number); ok {
				return object.Object(ln + rn)
			}
		}
		if ls, ok := left.(object.String); ok {
			if rs, ok := right.(object.String); ok {
				return object.Object(ls + rs)
			}
		}
		panic(newRuntimeError(e.Operator, "Operands must be two numbers or two strings."))
	}
	panic(newRuntimeError(e.Operator, "Unreachable binary operator."))
}

func (in *Interpreter) requireNumbers(operator token.Token, left, right object.Object) (object.Number, object.Number) {
	ln, lok := left.(object.Number)
	rn, rok := right.(object.Number)
	if !lok || !rok {
		panic(newRuntimeError(operator, "Operands must be numbers."))
	}
	return ln, rn
}
