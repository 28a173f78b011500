// Package chunk defines the bytecode container the compiler emits into
// and the VM executes: a flat byte array of opcodes and operands, a
// parallel line table for diagnostics, and a constant pool.
package chunk

import (
	"encoding/binary"
	"fmt"

	"golox/object"
)

type OpCode byte

const (
	OpConstant OpCode = iota
	OpNil
	OpTrue
	OpFalse
	OpPop
	OpGetLocal
	OpSetLocal
	OpDefineLocal
	OpGetGlobal
	OpDefineGlobal
	OpSetGlobal
	OpEqual
	OpGreater
	OpLess
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
	OpNot
	OpNegate
	OpPrint
	OpJump
	OpJumpIfFalse
	OpLoop
	OpCall
	OpClosure
	OpGetUpvalue
	OpSetUpvalue
	OpReturn
)

type opDefinition struct {
	Name          string
	OperandWidths []int
}

// 256 constants per chunk mirrors the single-byte OP_CONSTANT operand a
// reference clox build would use; this implementation widens the
// operand to two bytes (matching the teacher's own OP_CONSTANT encoding)
// so a chunk can address up to 65536 constants, but the compiler still
// enforces the 256 ceiling as a compile-time error per the language's
// documented limit.
var definitions = map[OpCode]opDefinition{
	OpConstant:     {"OP_CONSTANT", []int{2}},
	OpNil:          {"OP_NIL", nil},
	OpTrue:         {"OP_TRUE", nil},
	OpFalse:        {"OP_FALSE", nil},
	OpPop:          {"OP_POP", nil},
	OpGetLocal:     {"OP_GET_LOCAL", []int{1}},
	OpSetLocal:     {"OP_SET_LOCAL", []int{1}},
	OpDefineLocal:  {"OP_DEFINE_LOCAL", []int{1}},
	OpGetGlobal:    {"OP_GET_GLOBAL", []int{2}},
	OpDefineGlobal: {"OP_DEFINE_GLOBAL", []int{2}},
	OpSetGlobal:    {"OP_SET_GLOBAL", []int{2}},
	OpEqual:        {"OP_EQUAL", nil},
	OpGreater:      {"OP_GREATER", nil},
	OpLess:         {"OP_LESS", nil},
	OpAdd:          {"OP_ADD", nil},
	OpSubtract:     {"OP_SUBTRACT", nil},
	OpMultiply:     {"OP_MULTIPLY", nil},
	OpDivide:       {"OP_DIVIDE", nil},
	OpNot:          {"OP_NOT", nil},
	OpNegate:       {"OP_NEGATE", nil},
	OpPrint:        {"OP_PRINT", nil},
	OpJump:         {"OP_JUMP", []int{2}},
	OpJumpIfFalse:  {"OP_JUMP_IF_FALSE", []int{2}},
	OpLoop:         {"OP_LOOP", []int{2}},
	OpCall:         {"OP_CALL", []int{1}},
	// OP_CLOSURE has a variable-length tail (one isLocal+index pair per
	// upvalue) the fixed-width table below can't describe; the compiler
	// and disassembler special-case it instead of going through WriteOp.
	OpClosure:      {"OP_CLOSURE", []int{2}},
	OpGetUpvalue:   {"OP_GET_UPVALUE", []int{1}},
	OpSetUpvalue:   {"OP_SET_UPVALUE", []int{1}},
	OpReturn:       {"OP_RETURN", nil},
}

// Lookup returns the definition for op, used by both WriteOp and the
// disassembler.
func Lookup(op OpCode) (opDefinition, bool) {
	def, ok := definitions[op]
	return def, ok
}

// MaxConstants is the compile-time ceiling on constants in a single
// chunk; exceeding it is a compile error, not a runtime one.
const MaxConstants = 256

// Chunk is one compiled unit of bytecode: the top-level script, or a
// single function body.
type Chunk struct {
	Code      []byte
	Lines     []int
	Constants []object.Object
}

func New() *Chunk {
	return &Chunk{}
}

// Write appends a single byte (an opcode or a raw operand byte) tagged
// with the source line it came from.
func (c *Chunk) Write(b byte, line int) {
	c.Code = append(c.Code, b)
	c.Lines = append(c.Lines, line)
}

// WriteOp appends an opcode followed by its big-endian operands.
func (c *Chunk) WriteOp(op OpCode, line int, operands ...int) {
	c.Write(byte(op), line)
	def, ok := Lookup(op)
	if !ok {
		return
	}
	for i, width := range def.OperandWidths {
		operand := operands[i]
		switch width {
		case 1:
			c.Write(byte(operand), line)
		case 2:
			buf := make([]byte, 2)
			binary.BigEndian.PutUint16(buf, uint16(operand))
			c.Write(buf[0], line)
			c.Write(buf[1], line)
		}
	}
}

// AddConstant appends value to the constant pool and returns its index.
// The compiler is responsible for rejecting an overflow before calling
// this, since only it knows the source line to blame.
func (c *Chunk) AddConstant(value object.Object) int {
	c.Constants = append(c.Constants, value)
	return len(c.Constants) - 1
}

// Upvalue describes one captured variable a nested function closes over,
// as worked out by the compiler's upvalue resolution.
type Upvalue struct {
	Index   byte
	IsLocal bool
}

// WriteClosure emits OP_CLOSURE followed by the function's constant
// index and one (isLocal, index) pair per upvalue; this instruction's
// length depends on the function being closed over, so it bypasses the
// fixed-width WriteOp helper.
func (c *Chunk) WriteClosure(constantIndex int, upvalues []Upvalue, line int) {
	c.Write(byte(OpClosure), line)
	buf := make([]byte, 2)
	binary.BigEndian.PutUint16(buf, uint16(constantIndex))
	c.Write(buf[0], line)
	c.Write(buf[1], line)
	for _, uv := range upvalues {
		if uv.IsLocal {
			c.Write(1, line)
		} else {
			c.Write(0, line)
		}
		c.Write(uv.Index, line)
	}
}

// ReadUint16 decodes the big-endian two-byte operand starting at offset.
func (c *Chunk) ReadUint16(offset int) uint16 {
	return binary.BigEndian.Uint16(c.Code[offset : offset+2])
}

func (c *Chunk) String() string {
	return fmt.Sprintf("<chunk %d bytes, %d constants>", len(c.Code), len(c.Constants))
}
