package numeric

import (
	"fmt"
	"math"
)

// FromAny converts a dynamically typed Go value into a Value.
//
// Signed integers and uint8..uint32 become Int; uint, uint64 and uintptr
// become Int only when they fit in int64. float32/float64 become Real,
// complex64/complex128 become Complex, and an Int, Real or Complex is
// returned unchanged. Everything else (bool, string, nil, containers,
// structs, pointers including *Int, *Real and *Complex) reports ok=false.
func FromAny(v any) (Value, bool) {
	switch x := v.(type) {
	case Int:
		return x, true
	case Real:
		return x, true
	case Complex:
		return x, true
	case int:
		return Int(x), true
	case int8:
		return Int(x), true
	case int16:
		return Int(x), true
	case int32:
		return Int(x), true
	case int64:
		return Int(x), true
	case uint8:
		return Int(x), true
	case uint16:
		return Int(x), true
	case uint32:
		return Int(x), true
	case uint:
		return fromUint64(uint64(x))
	case uint64:
		return fromUint64(x)
	case uintptr:
		return fromUint64(uint64(x))
	case float32:
		return Real(x), true
	case float64:
		return Real(x), true
	case complex64:
		return Complex(x), true
	case complex128:
		return Complex(x), true
	default:
		return nil, false
	}
}

func fromUint64(u uint64) (Value, bool) {
	if u > math.MaxInt64 {
		return nil, false
	}
	return Int(int64(u)), true
}

// TypeName names the dynamic type of v for diagnostics.
// A nil interface is reported as "nil".
func TypeName(v any) string {
	if v == nil {
		return "nil"
	}
	switch x := v.(type) {
	case Int, Real, Complex:
		return x.(Value).Kind().String()
	}
	return fmt.Sprintf("%T", v)
}
