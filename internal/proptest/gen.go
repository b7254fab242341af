package proptest

import (
	"math"

	"pgregory.net/rapid"

	"github.com/roach88/arith/internal/numeric"
)

// anyOf widens a typed generator to the untyped operands the
// arithmetic API accepts.
func anyOf[V any](g *rapid.Generator[V]) *rapid.Generator[any] {
	return rapid.Map(g, func(v V) any { return v })
}

var edgeInts = []int64{0, 1, -1, 2, math.MaxInt64, math.MinInt64, math.MaxInt32, math.MinInt32}

// Integers yields integers of every Go width that coerces to Int,
// biased towards edge cases.
func Integers() *rapid.Generator[any] {
	ints := rapid.OneOf(rapid.SampledFrom(edgeInts), rapid.Int64Range(-100, 100), rapid.Int64())
	return rapid.Custom(func(t *rapid.T) any {
		n := ints.Draw(t, "n")
		switch rapid.IntRange(0, 5).Draw(t, "width") {
		case 0:
			return int(n)
		case 1:
			return int32(n)
		case 2:
			return int8(n)
		case 3:
			return uint16(n)
		default:
			return n
		}
	})
}

var edgeFloats = []float64{
	0, math.Copysign(0, -1), 1, -1, 0.5,
	math.Inf(1), math.Inf(-1), math.NaN(),
	math.MaxFloat64, -math.MaxFloat64, math.SmallestNonzeroFloat64,
}

func float64s() *rapid.Generator[float64] {
	return rapid.OneOf(
		rapid.SampledFrom(edgeFloats),
		rapid.Float64(),
		rapid.Map(rapid.Uint64(), math.Float64frombits),
	)
}

// Floats yields float64 and float32 values including signed zeros,
// infinities and NaN.
func Floats() *rapid.Generator[any] {
	floats := float64s()
	return rapid.Custom(func(t *rapid.T) any {
		f := floats.Draw(t, "f")
		if rapid.IntRange(0, 4).Draw(t, "narrow") == 0 {
			return float32(f)
		}
		return f
	})
}

// Complexes yields complex128 and complex64 values whose components are
// drawn like Floats.
func Complexes() *rapid.Generator[any] {
	floats := float64s()
	return rapid.Custom(func(t *rapid.T) any {
		c := complex(floats.Draw(t, "re"), floats.Draw(t, "im"))
		if rapid.IntRange(0, 4).Draw(t, "narrow") == 0 {
			return complex64(c)
		}
		return c
	})
}

// Numbers yields integers, reals and complex values.
func Numbers() *rapid.Generator[any] {
	return rapid.OneOf(Integers(), Floats(), Complexes())
}

// Zeros yields a zero of every numeric kind, including -0.0.
func Zeros() *rapid.Generator[any] {
	return rapid.SampledFrom([]any{
		0, int64(0), uint8(0),
		0.0, math.Copysign(0, -1), float32(0),
		complex(0, 0), complex(math.Copysign(0, -1), math.Copysign(0, -1)), complex64(0),
		numeric.Int(0), numeric.Real(0), numeric.Complex(0),
	})
}

type opaque struct{ n int }

// NonNumeric yields values outside the numeric set: strings (including
// numeric-looking ones), bools, nil, containers, structs, pointers to
// numbers and to numeric values, and uint64 values too large for Int.
func NonNumeric() *rapid.Generator[any] {
	small := rapid.IntRange(0, 9)
	return rapid.OneOf(
		anyOf(rapid.SampledFrom([]string{"", "x", "5", "2.5", "3j", "nan"})),
		anyOf(rapid.Bool()),
		rapid.Just[any](nil),
		anyOf(rapid.SliceOfN(small, 1, 3)),
		anyOf(rapid.Map(small, func(n int) map[string]any { return map[string]any{"n": n} })),
		anyOf(rapid.Map(small, func(n int) opaque { return opaque{n: n} })),
		anyOf(rapid.Map(small, func(n int) *int { return &n })),
		anyOf(rapid.Uint64Range(math.MaxInt64+1, math.MaxUint64)),
		anyOf(rapid.Just([]byte("1"))),
		numericPointers(),
	)
}

// numericPointers yields *Int, *Real and *Complex, nil or not. Only the
// values themselves are operands.
func numericPointers() *rapid.Generator[any] {
	return rapid.Custom(func(t *rapid.T) any {
		n := rapid.Int64Range(-5, 5).Draw(t, "n")
		switch rapid.IntRange(0, 5).Draw(t, "pointer") {
		case 0:
			v := numeric.Int(n)
			return &v
		case 1:
			v := numeric.Real(n)
			return &v
		case 2:
			v := numeric.Complex(complex(float64(n), 1))
			return &v
		case 3:
			return (*numeric.Int)(nil)
		case 4:
			return (*numeric.Real)(nil)
		default:
			return (*numeric.Complex)(nil)
		}
	})
}
