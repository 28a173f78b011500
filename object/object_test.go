package object

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruthiness(t *testing.T) {
	assert.False(t, IsTruthy(NilValue))
	assert.False(t, IsTruthy(Bool(false)))
	assert.True(t, IsTruthy(Bool(true)))
	assert.True(t, IsTruthy(Number(0)))
	assert.True(t, IsTruthy(String("")))
}

func TestEqualStructural(t *testing.T) {
	assert.True(t, Equal(NilValue, NilValue))
	assert.True(t, Equal(Number(1), Number(1)))
	assert.False(t, Equal(Number(1), Number(2)))
	assert.True(t, Equal(String("a"), String("a")))
	assert.False(t, Equal(String("a"), String("b")))
	assert.True(t, Equal(Bool(true), Bool(true)))
	assert.False(t, Equal(Number(1), String("1")), "cross-kind comparison is always false")
	assert.False(t, Equal(NilValue, Bool(false)))
}

func TestStringifyNumberDropsTrailingFraction(t *testing.T) {
	assert.Equal(t, "7", Stringify(Number(7)))
	assert.Equal(t, "7.5", Stringify(Number(7.5)))
	assert.Equal(t, "-3", Stringify(Number(-3)))
}

func TestStringifyNil(t *testing.T) {
	assert.Equal(t, "nil", Stringify(nil))
	assert.Equal(t, "nil", Stringify(NilValue))
}

func TestTypeName(t *testing.T) {
	assert.Equal(t, "nil", TypeName(NilValue))
	assert.Equal(t, "boolean", TypeName(Bool(true)))
	assert.Equal(t, "number", TypeName(Number(1)))
	assert.Equal(t, "string", TypeName(String("x")))
}
