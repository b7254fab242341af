package harness

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/roach88/arith/internal/arith"
	"github.com/roach88/arith/internal/numeric"
	"github.com/roach88/arith/internal/store"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Trace) > 0 {
		fmt.Fprintf(&buf, "\nFull trace:\n")
		for _, event := range e.Trace {
			fmt.Fprintf(&buf, "  [%d] %s\n", event.Seq, describeEvent(event))
		}
	}

	return buf.String()
}

// describeEvent renders an event as "a op b = result" or "a op b -> CODE".
func describeEvent(ev TraceEvent) string {
	op, err := arith.ParseOp(ev.Op)
	symbol := ev.Op
	if err == nil {
		symbol = op.Symbol()
	}
	lhs := fmt.Sprintf("%s %s %s", describeOperand(ev.A), symbol, describeOperand(ev.B))
	if ev.Outcome == string(store.OutcomeError) {
		return lhs + " -> " + ev.Error
	}
	return lhs + " = " + describeOperand(ev.Result)
}

func describeOperand(obj map[string]any) string {
	if v, err := numeric.Decode(obj); err == nil {
		return numeric.Format(v)
	}
	return fmt.Sprintf("<%v %v>", obj["go_type"], obj["repr"])
}

// canonicalOp resolves aliases so "+" and "add" match the same events.
func canonicalOp(s string) string {
	if op, err := arith.ParseOp(s); err == nil {
		return string(op)
	}
	return s
}

// assertTraceContains checks if the trace contains an evaluation matching
// the op and every optional field the assertion sets.
func assertTraceContains(trace []TraceEvent, assertion Assertion) error {
	want := canonicalOp(assertion.Op)

	var wantA, wantB map[string]any
	if assertion.A.Kind != 0 {
		v, err := Operand(&assertion.A)
		if err != nil {
			return err
		}
		wantA = numeric.EncodeOperand(v)
	}
	if assertion.B.Kind != 0 {
		v, err := Operand(&assertion.B)
		if err != nil {
			return err
		}
		wantB = numeric.EncodeOperand(v)
	}

	for _, event := range trace {
		if event.Op != want {
			continue
		}
		if assertion.Outcome != "" && event.Outcome != assertion.Outcome {
			continue
		}
		if assertion.Error != "" && event.Error != assertion.Error {
			continue
		}
		if wantA != nil && !reflect.DeepEqual(event.A, wantA) {
			continue
		}
		if wantB != nil && !reflect.DeepEqual(event.B, wantB) {
			continue
		}
		return nil
	}

	return &AssertionError{
		Type:     AssertTraceContains,
		Expected: describeContains(assertion),
		Actual:   "not found in trace",
		Trace:    trace,
	}
}

func describeContains(a Assertion) string {
	parts := []string{"op " + canonicalOp(a.Op)}
	if a.A.Kind != 0 {
		parts = append(parts, "a "+a.A.Value)
	}
	if a.B.Kind != 0 {
		parts = append(parts, "b "+a.B.Value)
	}
	if a.Outcome != "" {
		parts = append(parts, "outcome "+a.Outcome)
	}
	if a.Error != "" {
		parts = append(parts, "error "+a.Error)
	}
	return strings.Join(parts, ", ")
}

// assertTraceOrder checks if ops appear in the specified order.
// Ops don't need to be consecutive (intervening evaluations are allowed).
func assertTraceOrder(trace []TraceEvent, assertion Assertion) error {
	// Step 1: Find first position of each expected op
	positions := make(map[string]int)
	ops := make([]string, len(assertion.Ops))
	for i, op := range assertion.Ops {
		ops[i] = canonicalOp(op)
	}

	for i, event := range trace {
		for _, op := range ops {
			if event.Op == op && positions[op] == 0 {
				positions[op] = i + 1 // 1-indexed for readability
			}
		}
	}

	// Step 2: Verify all ops found
	for _, op := range ops {
		if positions[op] == 0 {
			return &AssertionError{
				Type:     AssertTraceOrder,
				Expected: fmt.Sprintf("all ops present: %v", ops),
				Actual:   fmt.Sprintf("missing op: %s", op),
				Trace:    trace,
			}
		}
	}

	// Step 3: Verify order
	for i := 1; i < len(ops); i++ {
		prev, curr := ops[i-1], ops[i]
		if positions[prev] >= positions[curr] {
			return &AssertionError{
				Type:     AssertTraceOrder,
				Expected: fmt.Sprintf("ops in order: %v", ops),
				Actual: fmt.Sprintf("%s (pos %d) should be before %s (pos %d)",
					prev, positions[prev], curr, positions[curr]),
				Trace: trace,
			}
		}
	}

	return nil
}

// assertTraceCount checks if the op appears exactly the specified number of times.
func assertTraceCount(trace []TraceEvent, assertion Assertion) error {
	want := canonicalOp(assertion.Op)
	count := 0
	for _, event := range trace {
		if event.Op == want && (assertion.Outcome == "" || event.Outcome == assertion.Outcome) {
			count++
		}
	}

	if count != assertion.Count {
		what := want
		if assertion.Outcome != "" {
			what = fmt.Sprintf("%s (outcome %s)", want, assertion.Outcome)
		}
		return &AssertionError{
			Type:     AssertTraceCount,
			Expected: fmt.Sprintf("%d occurrences of %s", assertion.Count, what),
			Actual:   fmt.Sprintf("%d occurrences", count),
			Trace:    trace,
		}
	}

	return nil
}

// assertErrorCount checks the number of failed evaluations recorded in the
// evaluation log, optionally restricted to one error code.
func assertErrorCount(actx *AssertionContext, trace []TraceEvent, assertion Assertion) error {
	counts, err := actx.Store.CountByError(actx.Ctx, actx.RunID)
	if err != nil {
		return fmt.Errorf("error_count: %w", err)
	}

	count := 0
	what := "errors"
	if assertion.Error != "" {
		count = counts[assertion.Error]
		what = assertion.Error + " errors"
	} else {
		for _, n := range counts {
			count += n
		}
	}

	if count != assertion.Count {
		return &AssertionError{
			Type:     AssertErrorCount,
			Expected: fmt.Sprintf("%d %s", assertion.Count, what),
			Actual:   fmt.Sprintf("%d %s", count, what),
			Trace:    trace,
		}
	}
	return nil
}

// AssertionContext provides context for evaluating assertions.
type AssertionContext struct {
	Store *store.Store
	Ctx   context.Context
	RunID string
}

// EvaluateAssertions evaluates all assertions against the result.
// Returns a slice of error messages for failed assertions.
// The actx parameter provides database access for error_count assertions.
func EvaluateAssertions(result *Result, assertions []Assertion, actx *AssertionContext) []string {
	var errors []string

	for i, assertion := range assertions {
		var err error

		switch assertion.Type {
		case AssertTraceContains:
			err = assertTraceContains(result.Trace, assertion)
		case AssertTraceOrder:
			err = assertTraceOrder(result.Trace, assertion)
		case AssertTraceCount:
			err = assertTraceCount(result.Trace, assertion)
		case AssertErrorCount:
			if actx == nil || actx.Store == nil {
				err = fmt.Errorf("assertion[%d]: error_count requires database context", i)
			} else {
				err = assertErrorCount(actx, result.Trace, assertion)
			}
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}

	return errors
}
