// Package numeric provides the Numeric Value type shared by every other
// package in arith.
//
// This package contains value types and their encodings only. All other
// internal packages import numeric; numeric imports nothing internal.
//
// Key design constraints:
//   - Value is sealed: only Int, Real and Complex implement it
//   - Kinds are ordered Int < Real < Complex and promotion picks the larger
//   - Floating components never appear as JSON floats; they are encoded as
//     shortest round-trip strings so canonical JSON stays exact
//   - Go values outside the numeric set (bool, string, nil, containers)
//     are never coerced into a Value
package numeric
