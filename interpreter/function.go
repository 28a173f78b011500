package interpreter

import (
	"fmt"

	"golox/ast"
	"golox/object"
)

// returnSignal is panicked by a `return` statement and recovered only by
// the call site that invoked the enclosing function, letting `return`
// unwind an arbitrary number of nested blocks and loops without every
// visitor method threading a second return value through Accept's
// fixed `any` signature.
type returnSignal struct {
	value object.Object
}

// Function is a Lox function value: its declaration plus the
// environment active at the point it was declared, which is what makes
// closures work.
type Function struct {
	declaration *ast.Function
	closure     *Environment
}

func newFunction(declaration *ast.Function, closure *Environment) *Function {
	return &Function{declaration: declaration, closure: closure}
}

func (f *Function) Type() object.Type  { return object.FUNCTION }
func (f *Function) String() string     { return fmt.Sprintf("<fn %s>", f.declaration.Name.Lexeme) }
func (f *Function) Arity() int         { return len(f.declaration.Params) }

// Call runs the function body in a fresh environment chained off the
// closure, not off the caller's environment, then runs the body
// statements, catching a returnSignal panicked out of a Return statement
// and turning it into the call's result. A function that falls off the
// end without returning implicitly yields nil.
func (f *Function) Call(in *Interpreter, args []object.Object) (result object.Object) {
	env := NewEnvironment(f.closure)
	for i, param := range f.declaration.Params {
		env.Define(param.Lexeme, args[i])
	}

	defer func() {
		if r := recover(); r != nil {
			if ret, ok := r.(returnSignal); ok {
				result = ret.value
				return
			}
			panic(r)
		}
	}()

	in.executeBlock(f.declaration.Body, env)
	return object.NilValue
}

// Builtin wraps a host function (currently just clock) as a callable Lox
// value.
type Builtin struct {
	name  string
	arity int
	fn    func(args []object.Object) object.Object
}

func (b *Builtin) Type() object.Type { return object.BUILTIN }
func (b *Builtin) String() string    { return fmt.Sprintf("<native fn %s>", b.name) }
func (b *Builtin) Arity() int        { return b.arity }
func (b *Builtin) Call(args []object.Object) object.Object {
	return b.fn(args)
}
