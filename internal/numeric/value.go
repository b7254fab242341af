package numeric

import (
	"fmt"
	"math"
	"math/cmplx"
)

// Value is a sealed interface representing a Numeric Value.
// Only Int, Real, and Complex implement this.
type Value interface {
	// Kind reports which member of the numeric set the value belongs to.
	Kind() Kind

	numeric() // Sealed - only these types implement it
}

// Int represents an integer value.
// Arithmetic on Int wraps on overflow (native int64 semantics).
type Int int64

func (Int) numeric() {}

// Kind implements Value.
func (Int) Kind() Kind { return KindInt }

// Real represents a floating-point value (IEEE-754 binary64).
type Real float64

func (Real) numeric() {}

// Kind implements Value.
func (Real) Kind() Kind { return KindReal }

// Complex represents a complex value with binary64 components.
type Complex complex128

func (Complex) numeric() {}

// Kind implements Value.
func (Complex) Kind() Kind { return KindComplex }

// Kind identifies a member of the numeric type set.
// The zero Kind is invalid.
type Kind uint8

const (
	// KindInt is the integer kind.
	KindInt Kind = iota + 1
	// KindReal is the floating-point kind.
	KindReal
	// KindComplex is the complex kind.
	KindComplex
)

var kindNames = map[Kind]string{
	KindInt:     "int",
	KindReal:    "real",
	KindComplex: "complex",
}

// String returns the lower-case kind name ("int", "real", "complex").
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// ParseKind maps a kind name back to its Kind.
// "integer", "float" and "floating" are accepted as aliases.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "int", "integer":
		return KindInt, nil
	case "real", "float", "floating":
		return KindReal, nil
	case "complex":
		return KindComplex, nil
	default:
		return 0, fmt.Errorf("unknown numeric kind %q", s)
	}
}

// Promote returns the result kind for operands of kinds a and b:
// complex if either is complex, else real if either is real, else int.
func Promote(kinds ...Kind) Kind {
	var out Kind
	for _, k := range kinds {
		if k > out {
			out = k
		}
	}
	return out
}

// AsReal widens an Int or Real to float64.
// Panics on Complex; callers promote before widening.
func AsReal(v Value) float64 {
	switch x := v.(type) {
	case Int:
		return float64(x)
	case Real:
		return float64(x)
	default:
		panic(fmt.Sprintf("numeric: cannot widen %T to real", v))
	}
}

// AsComplex widens any Value to complex128.
func AsComplex(v Value) complex128 {
	switch x := v.(type) {
	case Int:
		return complex(float64(x), 0)
	case Real:
		return complex(float64(x), 0)
	case Complex:
		return complex128(x)
	default:
		panic(fmt.Sprintf("numeric: cannot widen %T to complex", v))
	}
}

// Convert widens v to kind k. Narrowing is an error.
func Convert(v Value, k Kind) (Value, error) {
	if v.Kind() > k {
		return nil, fmt.Errorf("cannot narrow %s to %s", v.Kind(), k)
	}
	switch k {
	case KindInt:
		return v, nil
	case KindReal:
		return Real(AsReal(v)), nil
	case KindComplex:
		return Complex(AsComplex(v)), nil
	default:
		return nil, fmt.Errorf("invalid kind %s", k)
	}
}

// IsZero reports whether v equals zero. Both signed zeros count.
func IsZero(v Value) bool {
	switch x := v.(type) {
	case Int:
		return x == 0
	case Real:
		return x == 0
	case Complex:
		return x == 0
	default:
		return false
	}
}

// Identical reports whether a and b have the same kind and the same value,
// treating NaN as identical to NaN. Signed zeros compare equal.
func Identical(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch x := a.(type) {
	case Int:
		return x == b.(Int)
	case Real:
		return sameFloat(float64(x), float64(b.(Real)))
	case Complex:
		y := complex128(b.(Complex))
		if cmplx.IsNaN(complex128(x)) || cmplx.IsNaN(y) {
			return sameFloat(real(x), real(y)) && sameFloat(imag(x), imag(y))
		}
		return complex128(x) == y
	}
	return false
}

func sameFloat(x, y float64) bool {
	if math.IsNaN(x) || math.IsNaN(y) {
		return math.IsNaN(x) && math.IsNaN(y)
	}
	return x == y
}
