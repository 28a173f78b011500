package chunk

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"golox/object"
)

func TestWriteKeepsCodeAndLinesParallel(t *testing.T) {
	c := New()
	c.Write(byte(OpNil), 1)
	c.Write(byte(OpReturn), 2)
	assert.Equal(t, len(c.Code), len(c.Lines))
	assert.Equal(t, []int{1, 2}, c.Lines)
}

func TestWriteOpEncodesBigEndianTwoByteOperand(t *testing.T) {
	c := New()
	idx := c.AddConstant(object.Number(42))
	c.WriteOp(OpConstant, 1, idx)
	assert.Equal(t, len(c.Code), len(c.Lines))
	assert.Equal(t, uint16(idx), c.ReadUint16(1))
}

func TestWriteOpEncodesSingleByteLocalSlot(t *testing.T) {
	c := New()
	c.WriteOp(OpGetLocal, 1, 3)
	assert.Len(t, c.Code, 2)
	assert.Equal(t, byte(3), c.Code[1])
}

func TestAddConstantIsAppendOnly(t *testing.T) {
	c := New()
	first := c.AddConstant(object.Number(1))
	second := c.AddConstant(object.Number(2))
	assert.Equal(t, 0, first)
	assert.Equal(t, 1, second)
	assert.Len(t, c.Constants, 2)
}

func TestMaxConstantsIsTwoFiftySix(t *testing.T) {
	assert.Equal(t, 256, MaxConstants)
}

func TestWriteClosureEncodesUpvaluePairs(t *testing.T) {
	c := New()
	fn := NewFunction("inc", 0)
	idx := c.AddConstant(fn)
	c.WriteClosure(idx, []Upvalue{{Index: 0, IsLocal: true}, {Index: 2, IsLocal: false}}, 1)

	// opcode + 2-byte constant index + 2 * (isLocal byte + index byte)
	assert.Len(t, c.Code, 1+2+4)
	assert.Equal(t, byte(OpClosure), c.Code[0])
	assert.Equal(t, uint16(idx), c.ReadUint16(1))
	assert.Equal(t, byte(1), c.Code[3])
	assert.Equal(t, byte(0), c.Code[4])
	assert.Equal(t, byte(0), c.Code[5])
	assert.Equal(t, byte(2), c.Code[6])
}

func TestDisassembleSameLineInstructionsShareMarker(t *testing.T) {
	c := New()
	idx := c.AddConstant(object.Number(1))
	c.WriteOp(OpConstant, 1, idx)
	c.WriteOp(OpNegate, 1)
	c.WriteOp(OpReturn, 2)

	var out bytes.Buffer
	Disassemble(c, "test", &out)
	listing := out.String()

	assert.Contains(t, listing, "== test ==")
	assert.Contains(t, listing, "OP_CONSTANT")
	assert.Contains(t, listing, "   | ", "OP_NEGATE repeats line 1's line number")
}
