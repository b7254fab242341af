package numeric

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSealedInterface verifies only the three numeric types implement Value.
func TestSealedInterface(t *testing.T) {
	var _ Value = Int(0)
	var _ Value = Real(0)
	var _ Value = Complex(0)

	assert.Equal(t, KindInt, Int(1).Kind())
	assert.Equal(t, KindReal, Real(1).Kind())
	assert.Equal(t, KindComplex, Complex(1).Kind())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "int", KindInt.String())
	assert.Equal(t, "real", KindReal.String())
	assert.Equal(t, "complex", KindComplex.String())
	assert.Equal(t, "Kind(0)", Kind(0).String())
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
	}{
		{"int", KindInt},
		{"integer", KindInt},
		{"real", KindReal},
		{"float", KindReal},
		{"complex", KindComplex},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			k, err := ParseKind(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, k)
		})
	}

	_, err := ParseKind("quaternion")
	assert.Error(t, err)
}

func TestPromote(t *testing.T) {
	tests := []struct {
		name string
		a, b Kind
		want Kind
	}{
		{"int_int", KindInt, KindInt, KindInt},
		{"int_real", KindInt, KindReal, KindReal},
		{"real_int", KindReal, KindInt, KindReal},
		{"real_real", KindReal, KindReal, KindReal},
		{"int_complex", KindInt, KindComplex, KindComplex},
		{"complex_real", KindComplex, KindReal, KindComplex},
		{"complex_complex", KindComplex, KindComplex, KindComplex},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Promote(tt.a, tt.b))
		})
	}

	// Division floors at real.
	assert.Equal(t, KindReal, Promote(KindInt, KindInt, KindReal))
}

func TestConvert(t *testing.T) {
	v, err := Convert(Int(3), KindReal)
	require.NoError(t, err)
	assert.Equal(t, Real(3), v)

	v, err = Convert(Real(1.5), KindComplex)
	require.NoError(t, err)
	assert.Equal(t, Complex(complex(1.5, 0)), v)

	v, err = Convert(Int(4), KindInt)
	require.NoError(t, err)
	assert.Equal(t, Int(4), v)

	_, err = Convert(Complex(1i), KindReal)
	assert.Error(t, err)
}

func TestIsZero(t *testing.T) {
	assert.True(t, IsZero(Int(0)))
	assert.True(t, IsZero(Real(0)))
	assert.True(t, IsZero(Real(math.Copysign(0, -1))))
	assert.True(t, IsZero(Complex(0)))
	assert.True(t, IsZero(Complex(complex(math.Copysign(0, -1), 0))))

	assert.False(t, IsZero(Int(1)))
	assert.False(t, IsZero(Real(math.NaN())))
	assert.False(t, IsZero(Real(math.SmallestNonzeroFloat64)))
	assert.False(t, IsZero(Complex(1i)))
}

func TestIdentical(t *testing.T) {
	assert.True(t, Identical(Int(5), Int(5)))
	assert.False(t, Identical(Int(5), Real(5)), "kinds must match")
	assert.True(t, Identical(Real(math.NaN()), Real(math.NaN())))
	assert.False(t, Identical(Real(math.NaN()), Real(1)))
	assert.True(t, Identical(Complex(complex(math.NaN(), 1)), Complex(complex(math.NaN(), 1))))
	assert.False(t, Identical(Complex(complex(math.NaN(), 1)), Complex(complex(math.NaN(), 2))))
	assert.True(t, Identical(Complex(2+3i), Complex(2+3i)))
	assert.True(t, Identical(nil, nil))
	assert.False(t, Identical(Int(0), nil))
}

func TestFromAny_Numeric(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want Value
	}{
		{"int", 2, Int(2)},
		{"int8", int8(-3), Int(-3)},
		{"int16", int16(300), Int(300)},
		{"int32", int32(-70000), Int(-70000)},
		{"int64", int64(math.MaxInt64), Int(math.MaxInt64)},
		{"uint8", uint8(255), Int(255)},
		{"uint16", uint16(65535), Int(65535)},
		{"uint32", uint32(math.MaxUint32), Int(math.MaxUint32)},
		{"uint", uint(7), Int(7)},
		{"uint64_fits", uint64(math.MaxInt64), Int(math.MaxInt64)},
		{"float32", float32(0.5), Real(0.5)},
		{"float64", 2.0, Real(2)},
		{"complex64", complex64(1 + 2i), Complex(1 + 2i)},
		{"complex128", 3i, Complex(3i)},
		{"value", Real(1.25), Real(1.25)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := FromAny(tt.in)
			require.True(t, ok)
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestFromAny_Rejected(t *testing.T) {
	tests := []struct {
		name     string
		in       any
		typeName string
	}{
		{"nil", nil, "nil"},
		{"string", "x", "string"},
		{"numeric_string", "5", "string"},
		{"bool", true, "bool"},
		{"uint64_overflow", uint64(math.MaxUint64), "uint64"},
		{"slice", []int{1}, "[]int"},
		{"map", map[string]any{}, "map[string]interface {}"},
		{"struct", struct{}{}, "struct {}"},
		{"pointer", new(int), "*int"},
		{"int_pointer", func() *Int { n := Int(2); return &n }(), "*numeric.Int"},
		{"nil_real_pointer", (*Real)(nil), "*numeric.Real"},
		{"complex_pointer", new(Complex), "*numeric.Complex"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := FromAny(tt.in)
			assert.False(t, ok)
			assert.Equal(t, tt.typeName, TypeName(tt.in))
		})
	}
}
