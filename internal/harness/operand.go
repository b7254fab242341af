package harness

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/roach88/arith/internal/numeric"
)

// TagNumeric marks a scalar that is parsed with numeric.Parse, e.g.
//
//	a: !num 2+3j
const TagNumeric = "!num"

// Operand converts a YAML node to the Go value passed to the arithmetic
// module:
//
//   - integers and floats (including .inf, .nan, -0.0) as themselves
//   - {re, im} mappings as complex128; a missing component is 0
//   - !num scalars via numeric.Parse
//   - strings, bools, null and sequences as themselves, which the
//     arithmetic module rejects as non-numeric
func Operand(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		if n.Tag == TagNumeric {
			v, err := numeric.Parse(n.Value)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", n.Line, err)
			}
			return v, nil
		}
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return v, nil
	case yaml.MappingNode:
		return complexOperand(n)
	case yaml.SequenceNode:
		var v []any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return v, nil
	case yaml.AliasNode:
		return Operand(n.Alias)
	default:
		return nil, fmt.Errorf("line %d: unsupported operand", n.Line)
	}
}

// complexOperand decodes {re: x, im: y}.
func complexOperand(n *yaml.Node) (complex128, error) {
	var re, im float64
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		var f float64
		if err := val.Decode(&f); err != nil {
			return 0, fmt.Errorf("line %d: complex component %q: %w", val.Line, key.Value, err)
		}
		switch key.Value {
		case "re":
			re = f
		case "im":
			im = f
		default:
			return 0, fmt.Errorf("line %d: complex operand accepts only re and im, got %q", key.Line, key.Value)
		}
	}
	return complex(re, im), nil
}

// expectedValue converts a node to the numeric value an expect clause names.
func expectedValue(n *yaml.Node) (numeric.Value, error) {
	raw, err := Operand(n)
	if err != nil {
		return nil, err
	}
	v, ok := numeric.FromAny(raw)
	if !ok {
		return nil, fmt.Errorf("line %d: expected value must be numeric, got %s", n.Line, numeric.TypeName(raw))
	}
	return v, nil
}

func parseKind(s string) (numeric.Kind, error) {
	return numeric.ParseKind(s)
}
