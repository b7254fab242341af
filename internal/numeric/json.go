package numeric

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Tag values for the "type" field of encoded operands.
const (
	TagInt     = "int"
	TagReal    = "real"
	TagComplex = "complex"
	TagInvalid = "invalid"
)

// Encode returns the tagged-object form of v:
//
//	{"type":"int","value":5}
//	{"type":"real","value":"5.5"}
//	{"type":"complex","re":"2","im":"3"}
//
// Floating components are shortest round-trip strings, so the object is
// accepted by MarshalCanonical.
func Encode(v Value) map[string]any {
	switch x := v.(type) {
	case Int:
		return map[string]any{"type": TagInt, "value": int64(x)}
	case Real:
		return map[string]any{"type": TagReal, "value": encodeFloat(float64(x))}
	case Complex:
		return map[string]any{
			"type": TagComplex,
			"re":   encodeFloat(real(x)),
			"im":   encodeFloat(imag(x)),
		}
	default:
		return EncodeOperand(v)
	}
}

// EncodeOperand encodes an arbitrary operand. Numeric operands use Encode;
// anything else becomes {"type":"invalid","go_type":...,"repr":...} so
// rejected inputs still show up in traces.
func EncodeOperand(v any) map[string]any {
	if val, ok := FromAny(v); ok {
		return Encode(val)
	}
	return map[string]any{
		"type":    TagInvalid,
		"go_type": TypeName(v),
		"repr":    fmt.Sprint(v),
	}
}

// Decode is the inverse of Encode. Invalid operands cannot be decoded.
func Decode(obj map[string]any) (Value, error) {
	tag, _ := obj["type"].(string)
	switch tag {
	case TagInt:
		n, err := decodeInt(obj["value"])
		if err != nil {
			return nil, fmt.Errorf("int value: %w", err)
		}
		return Int(n), nil
	case TagReal:
		f, err := decodeFloat(obj["value"])
		if err != nil {
			return nil, fmt.Errorf("real value: %w", err)
		}
		return Real(f), nil
	case TagComplex:
		re, err := decodeFloat(obj["re"])
		if err != nil {
			return nil, fmt.Errorf("complex re: %w", err)
		}
		im, err := decodeFloat(obj["im"])
		if err != nil {
			return nil, fmt.Errorf("complex im: %w", err)
		}
		return Complex(complex(re, im)), nil
	default:
		return nil, fmt.Errorf("cannot decode numeric value of type %q", tag)
	}
}

// MarshalJSON implements json.Marshaler for Int.
func (v Int) MarshalJSON() ([]byte, error) { return MarshalCanonical(Encode(v)) }

// MarshalJSON implements json.Marshaler for Real.
func (v Real) MarshalJSON() ([]byte, error) { return MarshalCanonical(Encode(v)) }

// MarshalJSON implements json.Marshaler for Complex.
func (v Complex) MarshalJSON() ([]byte, error) { return MarshalCanonical(Encode(v)) }

// UnmarshalValue decodes the tagged JSON form produced by MarshalJSON.
func UnmarshalValue(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return nil, err
	}
	return Decode(obj)
}

func encodeFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func decodeFloat(v any) (float64, error) {
	s, ok := v.(string)
	if !ok {
		return 0, fmt.Errorf("expected string, got %T", v)
	}
	return strconv.ParseFloat(s, 64)
}

func decodeInt(v any) (int64, error) {
	switch n := v.(type) {
	case json.Number:
		return n.Int64()
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	default:
		return 0, fmt.Errorf("expected integer, got %T", v)
	}
}
