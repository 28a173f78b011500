package vm

import (
	"golox/chunk"
	"golox/object"
)

// Closure pairs a compiled function prototype with the upvalues it
// closed over. Unlike clox, upvalues here are plain *object.Object
// pointers to the declaring frame's local cells, copied at
// closure-creation time and shared directly by every closure (and the
// declaring frame) that captured them — Go's
// garbage collector makes the open/closed-upvalue machinery clox needs
// for stack-allocated locals unnecessary.
type Closure struct {
	Function *chunk.Function
	Upvalues []*object.Object
}

func (c *Closure) Type() object.Type { return object.FUNCTION }
func (c *Closure) String() string    { return c.Function.String() }
func (c *Closure) Arity() int        { return c.Function.Arity }

// Builtin is a host function exposed to compiled code, such as clock.
type Builtin struct {
	Name  string
	Arity int
	Fn    func(args []object.Object) object.Object
}

func (b *Builtin) Type() object.Type { return object.BUILTIN }
func (b *Builtin) String() string    { return "<native fn " + b.Name + ">" }
