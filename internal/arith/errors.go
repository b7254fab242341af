package arith

import (
	"errors"
	"fmt"
)

// Error represents a failed arithmetic operation.
//
// Two error kinds exist:
//   - Invalid operand type: an operand is not int, real or complex
//   - Division by zero: Divide was called with a zero divisor
//
// Errors are raised at the point of detection and never recovered
// internally; there are no partial results.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Op is the operation that failed.
	Op Op

	// Operand names the offending operand ("a" or "b") for
	// CodeInvalidOperandType.
	Operand string

	// Type is the actual Go type of the offending operand.
	Type string

	// Message is a human-readable description.
	Message string
}

// ErrorCode categorizes arithmetic errors.
type ErrorCode string

const (
	// CodeInvalidOperandType indicates an operand outside the numeric set.
	CodeInvalidOperandType ErrorCode = "INVALID_OPERAND_TYPE"

	// CodeDivisionByZero indicates Divide received a zero divisor.
	CodeDivisionByZero ErrorCode = "DIVISION_BY_ZERO"
)

// Sentinels matched by errors.Is against any *Error of the same code.
var (
	ErrInvalidOperandType = errors.New("arith: invalid operand type")
	ErrDivisionByZero     = errors.New("arith: division by zero")
)

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Operand != "" {
		return fmt.Sprintf("%s: %s (op=%s, operand=%s, type=%s)", e.Code, e.Message, e.Op, e.Operand, e.Type)
	}
	return fmt.Sprintf("%s: %s (op=%s)", e.Code, e.Message, e.Op)
}

// Is lets errors.Is match the package sentinels.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrInvalidOperandType:
		return e.Code == CodeInvalidOperandType
	case ErrDivisionByZero:
		return e.Code == CodeDivisionByZero
	}
	return false
}

// IsInvalidOperandType returns true if err is an invalid operand error.
// Uses errors.As to handle wrapped errors.
func IsInvalidOperandType(err error) bool {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code == CodeInvalidOperandType
	}
	return false
}

// IsDivisionByZero returns true if err is a division by zero error.
// Uses errors.As to handle wrapped errors.
func IsDivisionByZero(err error) bool {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code == CodeDivisionByZero
	}
	return false
}

// CodeOf returns the ErrorCode carried by err, or "" if err is not an *Error.
func CodeOf(err error) ErrorCode {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code
	}
	return ""
}

// NewInvalidOperandError creates an Error for an operand outside the
// numeric set.
func NewInvalidOperandError(op Op, operand, typeName string) *Error {
	return &Error{
		Code:    CodeInvalidOperandType,
		Op:      op,
		Operand: operand,
		Type:    typeName,
		Message: fmt.Sprintf("'%s' must be int, real or complex, got %s", operand, typeName),
	}
}

// NewDivisionByZeroError creates an Error for a zero divisor.
func NewDivisionByZeroError(op Op) *Error {
	return &Error{
		Code:    CodeDivisionByZero,
		Op:      op,
		Message: "division by zero",
	}
}
