// Package store provides SQLite-backed storage for arithmetic evaluation logs.
//
// Each scenario run appends one row per evaluated step:
//   - Operands: tagged canonical JSON, including operands outside the numeric set
//   - Outcome: "ok" with a result, or "error" with an error code
//
// # Ordering
//
// All ordering uses the logical seq column, never timestamps. Queries that
// return rows include ORDER BY seq ASC, id COLLATE BINARY ASC so results
// are identical across runs.
//
// # Identity
//
// Row IDs are content-addressed via numeric.EvaluationID. Writing the same
// evaluation twice is a no-op.
//
// # Lifetime
//
// A Store lives in memory for exactly one run. The harness opens a fresh
// one per scenario and closes it when the run's trace has been read.
package store
