package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intOperand(n int64) map[string]any {
	return map[string]any{"type": "int", "value": n}
}

func sampleTrace() []TraceEvent {
	return []TraceEvent{
		{Seq: 1, Op: "add", A: intOperand(2), B: intOperand(3), Outcome: "ok", Result: intOperand(5)},
		{Seq: 2, Op: "divide", A: intOperand(5), B: intOperand(0), Outcome: "error", Error: "DIVISION_BY_ZERO"},
		{Seq: 3, Op: "multiply", A: intOperand(2), B: map[string]any{"type": "invalid", "go_type": "string", "repr": "x"}, Outcome: "error", Error: "INVALID_OPERAND_TYPE"},
		{Seq: 4, Op: "add", A: intOperand(1), B: intOperand(1), Outcome: "ok", Result: intOperand(2)},
	}
}

func assertion(t *testing.T, src string) Assertion {
	t.Helper()
	var a Assertion
	require.NoError(t, parseNode(t, src).Decode(&a))
	return a
}

func TestAssertTraceContains(t *testing.T) {
	trace := sampleTrace()

	passing := []string{
		"{type: trace_contains, op: add}",
		"{type: trace_contains, op: '+', a: 2, b: 3}",
		"{type: trace_contains, op: divide, outcome: error, error: DIVISION_BY_ZERO}",
		"{type: trace_contains, op: mul, b: x}",
	}
	for _, src := range passing {
		assert.NoError(t, assertTraceContains(trace, assertion(t, src)), src)
	}

	failing := []string{
		"{type: trace_contains, op: subtract}",
		"{type: trace_contains, op: add, a: 2, b: 4}",
		"{type: trace_contains, op: add, outcome: error}",
		"{type: trace_contains, op: divide, error: INVALID_OPERAND_TYPE}",
		"{type: trace_contains, op: add, a: 2.0}",
	}
	for _, src := range failing {
		err := assertTraceContains(trace, assertion(t, src))
		require.Error(t, err, src)

		var ae *AssertionError
		require.ErrorAs(t, err, &ae)
		assert.Equal(t, AssertTraceContains, ae.Type)
		assert.Equal(t, "not found in trace", ae.Actual)
	}
}

func TestAssertTraceOrder(t *testing.T) {
	trace := sampleTrace()

	assert.NoError(t, assertTraceOrder(trace, Assertion{Ops: []string{"add", "divide", "multiply"}}))
	assert.NoError(t, assertTraceOrder(trace, Assertion{Ops: []string{"+", "*"}}))

	err := assertTraceOrder(trace, Assertion{Ops: []string{"multiply", "divide"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "multiply (pos 3) should be before divide (pos 2)")

	err = assertTraceOrder(trace, Assertion{Ops: []string{"add", "subtract"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing op: subtract")
}

func TestAssertTraceCount(t *testing.T) {
	trace := sampleTrace()

	assert.NoError(t, assertTraceCount(trace, Assertion{Op: "add", Count: 2}))
	assert.NoError(t, assertTraceCount(trace, Assertion{Op: "subtract", Count: 0}))
	assert.NoError(t, assertTraceCount(trace, Assertion{Op: "divide", Outcome: "error", Count: 1}))
	assert.NoError(t, assertTraceCount(trace, Assertion{Op: "divide", Outcome: "ok", Count: 0}))

	err := assertTraceCount(trace, Assertion{Op: "add", Count: 3})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Expected: 3 occurrences of add")
	assert.Contains(t, err.Error(), "Actual: 2 occurrences")
}

func TestAssertionError_Format(t *testing.T) {
	err := &AssertionError{
		Type:     AssertTraceCount,
		Expected: "3 occurrences of add",
		Actual:   "2 occurrences",
		Trace:    sampleTrace(),
	}

	want := "Assertion failed: trace_count\n" +
		"  Expected: 3 occurrences of add\n" +
		"  Actual: 2 occurrences\n" +
		"\nFull trace:\n" +
		"  [1] 2 + 3 = 5\n" +
		"  [2] 5 / 0 -> DIVISION_BY_ZERO\n" +
		"  [3] 2 * <string x> -> INVALID_OPERAND_TYPE\n" +
		"  [4] 1 + 1 = 2\n"
	assert.Equal(t, want, err.Error())
}

func TestEvaluateAssertions_ErrorCount(t *testing.T) {
	s := mustParse(t, `
name: errors
description: error_count reads the evaluation log
steps:
  - {op: divide, a: 1, b: 0}
  - {op: add, a: x, b: 1}
  - {op: add, a: 1, b: 1}
assertions:
  - {type: error_count, count: 2}
  - {type: error_count, error: DIVISION_BY_ZERO, count: 1}
  - {type: error_count, error: INVALID_OPERAND_TYPE, count: 5}
`)

	result, err := Run(s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Expected: 5 INVALID_OPERAND_TYPE errors")
	assert.Contains(t, result.Errors[0], "Actual: 1 INVALID_OPERAND_TYPE errors")
}

func TestEvaluateAssertions_NoDatabaseContext(t *testing.T) {
	result := NewResult()
	errs := EvaluateAssertions(result, []Assertion{{Type: AssertErrorCount, Count: 0}}, nil)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "error_count requires database context")
}

func TestEvaluateAssertions_UnknownType(t *testing.T) {
	errs := EvaluateAssertions(NewResult(), []Assertion{{Type: "final_state"}}, nil)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], `unknown assertion type "final_state"`)
}
