package numeric

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		in   Value
		want string
	}{
		{"int", Int(5), "5"},
		{"negative_int", Int(-42), "-42"},
		{"real_whole", Real(5), "5.0"},
		{"real_fraction", Real(2.5), "2.5"},
		{"real_exponent", Real(1e300), "1e+300"},
		{"real_neg_zero", Real(math.Copysign(0, -1)), "-0.0"},
		{"real_inf", Real(math.Inf(1)), "inf"},
		{"real_neg_inf", Real(math.Inf(-1)), "-inf"},
		{"real_nan", Real(math.NaN()), "nan"},
		{"complex", Complex(2 + 3i), "(2+3j)"},
		{"complex_neg_imag", Complex(2 - 1.5i), "(2-1.5j)"},
		{"complex_pure_imag", Complex(3i), "3j"},
		{"complex_neg_real_zero", Complex(complex(math.Copysign(0, -1), 1)), "(-0+1j)"},
		{"complex_nan_imag", Complex(complex(1, math.NaN())), "(1+nanj)"},
		{"nil", nil, "<nil>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.in))
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Value
	}{
		{"5", Int(5)},
		{" -12 ", Int(-12)},
		{"+7", Int(7)},
		{"5.0", Real(5)},
		{"1e3", Real(1000)},
		{".5", Real(0.5)},
		{"inf", Real(math.Inf(1))},
		{"-Infinity", Real(math.Inf(-1))},
		{"3j", Complex(3i)},
		{"2+3j", Complex(2 + 3i)},
		{"(2-1.5j)", Complex(2 - 1.5i)},
		{"2+3i", Complex(2 + 3i)},
		{"1.5J", Complex(1.5i)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			v, err := Parse(tt.in)
			require.NoError(t, err)
			assert.True(t, Identical(tt.want, v), "want %s, got %s", Format(tt.want), Format(v))
		})
	}
}

func TestParse_NaN(t *testing.T) {
	v, err := Parse("nan")
	require.NoError(t, err)
	require.Equal(t, KindReal, v.Kind())
	assert.True(t, math.IsNaN(float64(v.(Real))))
}

func TestParse_Errors(t *testing.T) {
	syntax := []string{"", "   ", "x", "hi", "j", "2+", "five", "0x", "(5)", "1,000"}
	for _, in := range syntax {
		t.Run("syntax_"+in, func(t *testing.T) {
			_, err := Parse(in)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrSyntax)
		})
	}

	_, err := Parse("99999999999999999999")
	assert.ErrorIs(t, err, ErrRange)

	_, err = Parse("1e999")
	assert.ErrorIs(t, err, ErrRange)
}

// TestFormatParseRoundTrip checks Format output reads back as the same value.
func TestFormatParseRoundTrip(t *testing.T) {
	values := []Value{
		Int(0), Int(-1), Int(math.MaxInt64), Int(math.MinInt64),
		Real(0.1), Real(-2.5), Real(1e-7), Real(math.MaxFloat64), Real(math.Inf(-1)),
		Complex(2 + 3i), Complex(-1 - 1i), Complex(4i), Complex(complex(1e300, -1e-300)),
	}
	for _, v := range values {
		t.Run(Format(v), func(t *testing.T) {
			got, err := Parse(Format(v))
			require.NoError(t, err)
			assert.True(t, Identical(v, got), "round trip of %s gave %s", Format(v), Format(got))
		})
	}
}
