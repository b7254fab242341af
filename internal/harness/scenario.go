package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/arith/internal/arith"
)

// Scenario defines an arithmetic test scenario.
// Scenarios evaluate a list of steps, check each step's expected outcome,
// and assert on the resulting trace.
type Scenario struct {
	// Name uniquely identifies this scenario. It also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// RunID is an optional fixed run ID for deterministic evaluation IDs.
	// If empty, defaults to "test-run-default".
	RunID string `yaml:"run_id,omitempty"`

	// Steps are evaluated in order.
	Steps []Step `yaml:"steps"`

	// Assertions validate the final trace.
	// Supported types: trace_contains, trace_order, trace_count, error_count
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Step is one arithmetic call.
//
// Operands keep their YAML node so that a missing operand can be told apart
// from an explicit null. See Operand for the accepted notation.
type Step struct {
	// Op is an operation name or alias accepted by arith.ParseOp.
	Op string `yaml:"op"`

	A yaml.Node `yaml:"a"`
	B yaml.Node `yaml:"b"`

	// Expect specifies the expected outcome.
	// If nil, the step is evaluated and traced but not checked.
	Expect *ExpectClause `yaml:"expect,omitempty"`
}

// ExpectClause specifies the expected outcome of a step.
// Either Error is set, or Kind and/or Value are.
type ExpectClause struct {
	// Kind is the expected result kind ("int", "real", "complex").
	Kind string `yaml:"kind,omitempty"`

	// Value is the expected result, in operand notation.
	// Compared exactly after widening to the result kind; NaN matches NaN.
	Value yaml.Node `yaml:"value,omitempty"`

	// Error is the expected error code, e.g. DIVISION_BY_ZERO.
	Error string `yaml:"error,omitempty"`

	// Operand is the expected offending operand ("a" or "b") for
	// INVALID_OPERAND_TYPE.
	Operand string `yaml:"operand,omitempty"`
}

// Assertion validates the trace of a finished run.
type Assertion struct {
	// Type specifies the assertion type:
	// - "trace_contains": an evaluation of Op with matching fields exists
	// - "trace_order": Ops appear in order
	// - "trace_count": Op appears exactly Count times
	// - "error_count": exactly Count evaluations failed (with Error, if set)
	Type string `yaml:"type"`

	// Op is the operation (trace_contains, trace_count).
	Op string `yaml:"op,omitempty"`

	// A and B optionally narrow trace_contains to matching operands.
	A yaml.Node `yaml:"a,omitempty"`
	B yaml.Node `yaml:"b,omitempty"`

	// Outcome optionally narrows trace_contains and trace_count ("ok" or "error").
	Outcome string `yaml:"outcome,omitempty"`

	// Error is the error code (trace_contains, error_count).
	Error string `yaml:"error,omitempty"`

	// Count is the expected number of occurrences (trace_count, error_count).
	Count int `yaml:"count,omitempty"`

	// Ops is the expected operation order (trace_order).
	Ops []string `yaml:"ops,omitempty"`
}

// Assertion type constants.
const (
	AssertTraceContains = "trace_contains"
	AssertTraceOrder    = "trace_order"
	AssertTraceCount    = "trace_count"
	AssertErrorCount    = "error_count"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict field validation catches typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i := range s.Steps {
		if err := validateStep(i, &s.Steps[i]); err != nil {
			return err
		}
	}

	for i := range s.Assertions {
		if err := validateAssertion(i, &s.Assertions[i]); err != nil {
			return err
		}
	}

	return nil
}

func validateStep(index int, step *Step) error {
	if step.Op == "" {
		return fmt.Errorf("steps[%d]: op is required", index)
	}
	if _, err := arith.ParseOp(step.Op); err != nil {
		return fmt.Errorf("steps[%d]: %w", index, err)
	}
	if step.A.Kind == 0 {
		return fmt.Errorf("steps[%d]: a is required (use null for a missing value)", index)
	}
	if step.B.Kind == 0 {
		return fmt.Errorf("steps[%d]: b is required (use null for a missing value)", index)
	}
	if _, err := Operand(&step.A); err != nil {
		return fmt.Errorf("steps[%d].a: %w", index, err)
	}
	if _, err := Operand(&step.B); err != nil {
		return fmt.Errorf("steps[%d].b: %w", index, err)
	}

	if step.Expect != nil {
		if err := validateExpect(step.Expect); err != nil {
			return fmt.Errorf("steps[%d].expect: %w", index, err)
		}
	}
	return nil
}

func validateExpect(e *ExpectClause) error {
	hasValue := e.Value.Kind != 0
	if e.Error != "" {
		if e.Kind != "" || hasValue {
			return fmt.Errorf("error cannot be combined with kind or value")
		}
		if !knownErrorCode(e.Error) {
			return fmt.Errorf("unknown error code %q", e.Error)
		}
		if e.Operand != "" && e.Operand != "a" && e.Operand != "b" {
			return fmt.Errorf("operand must be \"a\" or \"b\", got %q", e.Operand)
		}
		return nil
	}

	if e.Operand != "" {
		return fmt.Errorf("operand requires error")
	}
	if e.Kind == "" && !hasValue {
		return fmt.Errorf("one of kind, value or error is required")
	}
	if e.Kind != "" {
		if _, err := parseKind(e.Kind); err != nil {
			return err
		}
	}
	if hasValue {
		if _, err := expectedValue(&e.Value); err != nil {
			return fmt.Errorf("value: %w", err)
		}
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	if a.Outcome != "" && a.Outcome != "ok" && a.Outcome != "error" {
		return fmt.Errorf("assertions[%d]: outcome must be \"ok\" or \"error\", got %q", index, a.Outcome)
	}
	if a.Error != "" && !knownErrorCode(a.Error) {
		return fmt.Errorf("assertions[%d]: unknown error code %q", index, a.Error)
	}

	switch a.Type {
	case AssertTraceContains:
		if a.Op == "" {
			return fmt.Errorf("assertions[%d]: op is required for trace_contains", index)
		}
		if err := validateOptionalOperand(&a.A); err != nil {
			return fmt.Errorf("assertions[%d].a: %w", index, err)
		}
		if err := validateOptionalOperand(&a.B); err != nil {
			return fmt.Errorf("assertions[%d].b: %w", index, err)
		}
	case AssertTraceOrder:
		if len(a.Ops) == 0 {
			return fmt.Errorf("assertions[%d]: ops list is required for trace_order", index)
		}
		for _, op := range a.Ops {
			if _, err := arith.ParseOp(op); err != nil {
				return fmt.Errorf("assertions[%d]: %w", index, err)
			}
		}
		return nil
	case AssertTraceCount:
		if a.Op == "" {
			return fmt.Errorf("assertions[%d]: op is required for trace_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for trace_count", index)
		}
	case AssertErrorCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for error_count", index)
		}
		return nil
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	if _, err := arith.ParseOp(a.Op); err != nil {
		return fmt.Errorf("assertions[%d]: %w", index, err)
	}
	return nil
}

func validateOptionalOperand(n *yaml.Node) error {
	if n.Kind == 0 {
		return nil
	}
	_, err := Operand(n)
	return err
}

func knownErrorCode(code string) bool {
	switch arith.ErrorCode(code) {
	case arith.CodeInvalidOperandType, arith.CodeDivisionByZero:
		return true
	}
	return false
}
