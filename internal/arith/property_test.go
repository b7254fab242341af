package arith

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/roach88/arith/internal/numeric"
	"github.com/roach88/arith/internal/proptest"
)

// promoted lists the result kind of every operand pair for add, subtract
// and multiply. Division lifts an int result to real.
var promoted = map[[2]numeric.Kind]numeric.Kind{
	{numeric.KindInt, numeric.KindInt}:         numeric.KindInt,
	{numeric.KindInt, numeric.KindReal}:        numeric.KindReal,
	{numeric.KindReal, numeric.KindInt}:        numeric.KindReal,
	{numeric.KindReal, numeric.KindReal}:       numeric.KindReal,
	{numeric.KindInt, numeric.KindComplex}:     numeric.KindComplex,
	{numeric.KindComplex, numeric.KindInt}:     numeric.KindComplex,
	{numeric.KindReal, numeric.KindComplex}:    numeric.KindComplex,
	{numeric.KindComplex, numeric.KindReal}:    numeric.KindComplex,
	{numeric.KindComplex, numeric.KindComplex}: numeric.KindComplex,
}

func resultKind(op Op, x, y numeric.Value) numeric.Kind {
	k := promoted[[2]numeric.Kind{x.Kind(), y.Kind()}]
	if op == OpDivide && k == numeric.KindInt {
		return numeric.KindReal
	}
	return k
}

// native evaluates op directly in Go at kind k.
func native(op Op, k numeric.Kind, x, y numeric.Value) numeric.Value {
	switch k {
	case numeric.KindComplex:
		a, b := numeric.AsComplex(x), numeric.AsComplex(y)
		switch op {
		case OpAdd:
			return numeric.Complex(a + b)
		case OpSubtract:
			return numeric.Complex(a - b)
		case OpMultiply:
			return numeric.Complex(a * b)
		default:
			return numeric.Complex(a / b)
		}
	case numeric.KindReal:
		a, b := numeric.AsReal(x), numeric.AsReal(y)
		switch op {
		case OpAdd:
			return numeric.Real(a + b)
		case OpSubtract:
			return numeric.Real(a - b)
		case OpMultiply:
			return numeric.Real(a * b)
		default:
			return numeric.Real(a / b)
		}
	default:
		a, b := int64(x.(numeric.Int)), int64(y.(numeric.Int))
		switch op {
		case OpAdd:
			return numeric.Int(a + b)
		case OpSubtract:
			return numeric.Int(a - b)
		default:
			return numeric.Int(a * b)
		}
	}
}

func TestProperty_MatchesNativeArithmetic(t *testing.T) {
	profile := proptest.MustLoad(t)

	proptest.Check(t, profile, func(rt *rapid.T) {
		op := rapid.SampledFrom(Ops()).Draw(rt, "op")
		a := proptest.Numbers().Draw(rt, "a")
		b := proptest.Numbers().Draw(rt, "b")

		x, _ := numeric.FromAny(a)
		y, _ := numeric.FromAny(b)

		got, err := Apply(op, a, b)
		if op == OpDivide && numeric.IsZero(y) {
			assert.True(rt, IsDivisionByZero(err), "want division by zero, got %v", err)
			return
		}
		require.NoError(rt, err)

		k := resultKind(op, x, y)
		require.Equal(rt, k, got.Kind())
		want := native(op, k, x, y)
		assert.True(rt, numeric.Identical(got, want), "got %s, want %s", numeric.Format(got), numeric.Format(want))

		same, err := Eval(op, x, y)
		require.NoError(rt, err)
		assert.True(rt, numeric.Identical(got, same), "Eval %s, Apply %s", numeric.Format(same), numeric.Format(got))
	})
}

func TestProperty_NonNumericAlwaysRejected(t *testing.T) {
	profile := proptest.MustLoad(t)

	proptest.Check(t, profile, func(rt *rapid.T) {
		bad := proptest.NonNumeric().Draw(rt, "bad")
		good := proptest.Numbers().Draw(rt, "good")
		first := rapid.Bool().Draw(rt, "bad_first")

		for _, op := range Ops() {
			a, b, operand := bad, good, "a"
			if !first {
				a, b, operand = good, bad, "b"
			}

			var got numeric.Value
			var err error
			require.NotPanics(rt, func() { got, err = Apply(op, a, b) })
			assert.Nil(rt, got, "%s returned a value for an invalid operand", op)

			var aerr *Error
			require.ErrorAs(rt, err, &aerr)
			assert.Equal(rt, CodeInvalidOperandType, aerr.Code)
			assert.Equal(rt, operand, aerr.Operand)
			assert.Equal(rt, numeric.TypeName(bad), aerr.Type)
		}
	})
}

func TestProperty_ZeroDivisorAlwaysFails(t *testing.T) {
	profile := proptest.MustLoad(t)

	proptest.Check(t, profile, func(rt *rapid.T) {
		a := proptest.Numbers().Draw(rt, "a")
		zero := proptest.Zeros().Draw(rt, "zero")

		_, err := Divide(a, zero)
		assert.True(rt, IsDivisionByZero(err), "want division by zero, got %v", err)
	})
}

func TestProperty_CommutativeOps(t *testing.T) {
	profile := proptest.MustLoad(t)

	proptest.Check(t, profile, func(rt *rapid.T) {
		a := proptest.Integers().Draw(rt, "a")
		b := proptest.Integers().Draw(rt, "b")

		for _, op := range []Op{OpAdd, OpMultiply} {
			ab, err := Apply(op, a, b)
			require.NoError(rt, err)
			ba, err := Apply(op, b, a)
			require.NoError(rt, err)
			assert.True(rt, numeric.Identical(ab, ba), "%s: %s vs %s", op, numeric.Format(ab), numeric.Format(ba))
		}
	})
}
