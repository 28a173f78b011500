package chunk

import (
	"fmt"

	"golox/object"
)

// Function is a compiled function prototype: its arity, its own
// instruction chunk, and the upvalue layout the compiler worked out for
// it. It is stored in a constant pool like any other value and turned
// into a callable closure by the VM at OP_CLOSURE time.
type Function struct {
	Name         string
	Arity        int
	Chunk        *Chunk
	UpvalueCount int
	NumLocals    int
}

func NewFunction(name string, arity int) *Function {
	return &Function{Name: name, Arity: arity, Chunk: New()}
}

func (f *Function) Type() object.Type { return object.FUNCTION }
func (f *Function) String() string {
	if f.Name == "" {
		return "<script>"
	}
	return fmt.Sprintf("<fn %s>", f.Name)
}
