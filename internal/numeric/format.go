package numeric

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrSyntax is returned by Parse when a literal is not a number.
	ErrSyntax = errors.New("numeric: invalid literal")

	// ErrRange is returned by Parse when a literal does not fit its kind.
	ErrRange = errors.New("numeric: literal out of range")
)

// Format renders v as text.
//
//	Int(5)               -> "5"
//	Real(5)              -> "5.0"
//	Real(math.Inf(-1))   -> "-inf"
//	Complex(2+3i)        -> "(2+3j)"
//	Complex(3i)          -> "3j"
func Format(v Value) string {
	switch x := v.(type) {
	case Int:
		return strconv.FormatInt(int64(x), 10)
	case Real:
		return formatReal(float64(x))
	case Complex:
		return formatComplex(complex128(x))
	case nil:
		return "<nil>"
	default:
		return fmt.Sprintf("%v", v)
	}
}

// formatReal always keeps a decimal point or exponent so a Real never
// reads back as an Int.
func formatReal(f float64) string {
	s := formatComponent(f)
	if strings.ContainsAny(s, ".en") {
		return s
	}
	return s + ".0"
}

func formatComplex(c complex128) string {
	re, im := real(c), imag(c)
	imStr := formatComponent(im)
	if re == 0 && !math.Signbit(re) {
		return imStr + "j"
	}
	sign := "+"
	if strings.HasPrefix(imStr, "-") {
		sign = ""
	}
	return "(" + formatComponent(re) + sign + imStr + "j)"
}

func formatComponent(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Parse reads a numeric literal.
//
// Integer literals ("5", "-12") become Int. Float literals ("5.0", "1e3",
// "inf", "nan") become Real. Literals ending in j or i ("3j", "2+3j",
// "(2-1.5j)") become Complex. Anything else fails with ErrSyntax.
func Parse(s string) (Value, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return nil, fmt.Errorf("%w: empty string", ErrSyntax)
	}

	if n, err := strconv.ParseInt(t, 10, 64); err == nil {
		return Int(n), nil
	} else if errors.Is(err, strconv.ErrRange) {
		return nil, fmt.Errorf("%w: %q", ErrRange, s)
	}

	if f, err := strconv.ParseFloat(t, 64); err == nil {
		return Real(f), nil
	} else if errors.Is(err, strconv.ErrRange) {
		return nil, fmt.Errorf("%w: %q", ErrRange, s)
	}

	if isImaginaryLiteral(t) {
		c, err := strconv.ParseComplex(imaginaryToGo(t), 128)
		if err == nil {
			return Complex(c), nil
		}
		if errors.Is(err, strconv.ErrRange) {
			return nil, fmt.Errorf("%w: %q", ErrRange, s)
		}
	}

	return nil, fmt.Errorf("%w: %q", ErrSyntax, s)
}

// isImaginaryLiteral reports whether t, parentheses aside, ends in an
// imaginary unit.
func isImaginaryLiteral(t string) bool {
	if len(t) >= 2 && t[0] == '(' && t[len(t)-1] == ')' {
		t = t[1 : len(t)-1]
	}
	if t == "" {
		return false
	}
	switch t[len(t)-1] {
	case 'j', 'J', 'i':
		return true
	}
	return false
}

// imaginaryToGo rewrites the j unit into the i unit strconv understands.
func imaginaryToGo(t string) string {
	return strings.NewReplacer("j", "i", "J", "i").Replace(t)
}
