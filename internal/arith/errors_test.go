package arith

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Format(t *testing.T) {
	err := NewInvalidOperandError(OpAdd, "a", "string")
	assert.Equal(t,
		"INVALID_OPERAND_TYPE: 'a' must be int, real or complex, got string (op=add, operand=a, type=string)",
		err.Error())

	err = NewDivisionByZeroError(OpDivide)
	assert.Equal(t, "DIVISION_BY_ZERO: division by zero (op=divide)", err.Error())
}

func TestError_Is(t *testing.T) {
	invalid := NewInvalidOperandError(OpMultiply, "b", "bool")
	zero := NewDivisionByZeroError(OpDivide)

	assert.ErrorIs(t, invalid, ErrInvalidOperandType)
	assert.NotErrorIs(t, invalid, ErrDivisionByZero)
	assert.ErrorIs(t, zero, ErrDivisionByZero)
	assert.NotErrorIs(t, zero, ErrInvalidOperandType)

	wrapped := fmt.Errorf("evaluate step 3: %w", zero)
	assert.ErrorIs(t, wrapped, ErrDivisionByZero)
}

func TestErrorHelpers(t *testing.T) {
	invalid := fmt.Errorf("wrapped: %w", NewInvalidOperandError(OpAdd, "a", "nil"))
	zero := NewDivisionByZeroError(OpDivide)
	plain := errors.New("something else")

	assert.True(t, IsInvalidOperandType(invalid))
	assert.False(t, IsDivisionByZero(invalid))
	assert.True(t, IsDivisionByZero(zero))
	assert.False(t, IsInvalidOperandType(zero))
	assert.False(t, IsInvalidOperandType(plain))
	assert.False(t, IsDivisionByZero(nil))

	assert.Equal(t, CodeInvalidOperandType, CodeOf(invalid))
	assert.Equal(t, CodeDivisionByZero, CodeOf(zero))
	assert.Equal(t, ErrorCode(""), CodeOf(plain))
}
