package arith

import (
	"fmt"
	"strings"

	"github.com/roach88/arith/internal/numeric"
)

// Op names one of the four arithmetic operations.
type Op string

const (
	OpAdd      Op = "add"
	OpSubtract Op = "subtract"
	OpMultiply Op = "multiply"
	OpDivide   Op = "divide"
)

// Ops lists every operation in a fixed order.
func Ops() []Op {
	return []Op{OpAdd, OpSubtract, OpMultiply, OpDivide}
}

// Symbol returns the infix symbol for op.
func (op Op) Symbol() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSubtract:
		return "-"
	case OpMultiply:
		return "*"
	case OpDivide:
		return "/"
	default:
		return "?"
	}
}

var opAliases = map[string]Op{
	"add": OpAdd, "addition": OpAdd, "+": OpAdd, "plus": OpAdd,
	"subtract": OpSubtract, "sub": OpSubtract, "-": OpSubtract, "minus": OpSubtract,
	"multiply": OpMultiply, "mul": OpMultiply, "*": OpMultiply, "x": OpMultiply, "times": OpMultiply,
	"divide": OpDivide, "div": OpDivide, "/": OpDivide,
}

// ParseOp resolves an operation name, symbol or alias (case-insensitive).
func ParseOp(s string) (Op, error) {
	if op, ok := opAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return op, nil
	}
	return "", fmt.Errorf("unknown operation %q", s)
}

// kernel holds the per-kind implementation of one operation.
// floor is the minimum result kind; division floors at real.
type kernel struct {
	floor numeric.Kind
	ints  func(x, y int64) int64
	reals func(x, y float64) float64
	cplx  func(x, y complex128) complex128
}

var kernels = map[Op]kernel{
	OpAdd: {
		floor: numeric.KindInt,
		ints:  func(x, y int64) int64 { return x + y },
		reals: func(x, y float64) float64 { return x + y },
		cplx:  func(x, y complex128) complex128 { return x + y },
	},
	OpSubtract: {
		floor: numeric.KindInt,
		ints:  func(x, y int64) int64 { return x - y },
		reals: func(x, y float64) float64 { return x - y },
		cplx:  func(x, y complex128) complex128 { return x - y },
	},
	OpMultiply: {
		floor: numeric.KindInt,
		ints:  func(x, y int64) int64 { return x * y },
		reals: func(x, y float64) float64 { return x * y },
		cplx:  func(x, y complex128) complex128 { return x * y },
	},
	OpDivide: {
		floor: numeric.KindReal,
		reals: func(x, y float64) float64 { return x / y },
		cplx:  func(x, y complex128) complex128 { return x / y },
	},
}

// Add returns a + b.
func Add(a, b any) (numeric.Value, error) { return Apply(OpAdd, a, b) }

// Subtract returns a - b.
func Subtract(a, b any) (numeric.Value, error) { return Apply(OpSubtract, a, b) }

// Multiply returns a * b.
func Multiply(a, b any) (numeric.Value, error) { return Apply(OpMultiply, a, b) }

// Divide returns a / b. The result is real unless either operand is
// complex. A zero divisor fails with CodeDivisionByZero.
func Divide(a, b any) (numeric.Value, error) { return Apply(OpDivide, a, b) }

// Apply validates both operands, then evaluates op on them.
//
// Operand a is validated before b. The result kind follows numeric
// promotion (complex > real > int), floored at real for division.
func Apply(op Op, a, b any) (numeric.Value, error) {
	k, ok := kernels[op]
	if !ok {
		return nil, fmt.Errorf("unknown operation %q", op)
	}

	x, ok := numeric.FromAny(a)
	if !ok {
		return nil, NewInvalidOperandError(op, "a", numeric.TypeName(a))
	}
	y, ok := numeric.FromAny(b)
	if !ok {
		return nil, NewInvalidOperandError(op, "b", numeric.TypeName(b))
	}
	return k.eval(op, x, y)
}

// Eval evaluates op on operands that are already numeric, skipping the
// coercion of dynamic Go values. Only Int, Real and Complex are accepted;
// any other Value implementation, nil or a pointer, is an invalid operand.
func Eval(op Op, a, b numeric.Value) (numeric.Value, error) {
	k, ok := kernels[op]
	if !ok {
		return nil, fmt.Errorf("unknown operation %q", op)
	}
	if !isNumeric(a) {
		return nil, NewInvalidOperandError(op, "a", numeric.TypeName(a))
	}
	if !isNumeric(b) {
		return nil, NewInvalidOperandError(op, "b", numeric.TypeName(b))
	}
	return k.eval(op, a, b)
}

func isNumeric(v numeric.Value) bool {
	switch v.(type) {
	case numeric.Int, numeric.Real, numeric.Complex:
		return true
	}
	return false
}

func (k kernel) eval(op Op, x, y numeric.Value) (numeric.Value, error) {
	if op == OpDivide && numeric.IsZero(y) {
		return nil, NewDivisionByZeroError(op)
	}

	switch numeric.Promote(x.Kind(), y.Kind(), k.floor) {
	case numeric.KindComplex:
		return numeric.Complex(k.cplx(numeric.AsComplex(x), numeric.AsComplex(y))), nil
	case numeric.KindReal:
		return numeric.Real(k.reals(numeric.AsReal(x), numeric.AsReal(y))), nil
	default:
		return numeric.Int(k.ints(int64(x.(numeric.Int)), int64(y.(numeric.Int)))), nil
	}
}
