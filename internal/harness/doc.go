// Package harness runs YAML test scenarios against the arithmetic module.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	run_id: run-0001            # optional, defaults to test-run-default
//	steps:
//	  - op: add
//	    a: 2
//	    b: 3
//	    expect:
//	      kind: int
//	      value: 5
//	  - op: divide
//	    a: 5
//	    b: 0
//	    expect:
//	      error: DIVISION_BY_ZERO
//	assertions:
//	  - type: trace_contains
//	    op: add
//	    outcome: ok
//	  - type: error_count
//	    error: DIVISION_BY_ZERO
//	    count: 1
//
// Operands are YAML scalars: integers and floats (including .inf, .nan and
// -0.0) are numeric, complex values are written {re: 2, im: 3} or with the
// !num tag (!num 2+3j). Strings, booleans, null and sequences are passed
// through unchanged, so the arithmetic module rejects them.
//
// # Assertion Types
//
//   - trace_contains: an evaluation of op exists, optionally with matching
//     operands, outcome or error code
//   - trace_order: ops appear in the specified order
//   - trace_count: op appears exactly count times
//   - error_count: exactly count evaluations failed, optionally with one code
//
// # Deterministic Testing
//
// Every run uses a fresh in-memory evaluation log (internal/store), a
// step sequence numbered from 1 and a fixed run ID, so the trace and the
// content-addressed evaluation IDs are identical between runs. Traces are
// compared against golden files in testdata/golden.
package harness
