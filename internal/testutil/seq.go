package testutil

import "sync/atomic"

// StepSequence numbers the evaluations of one scenario run. The zero
// value is ready to use and the first number is 1. Numbers are dense,
// so Issued is also the last number handed out.
type StepSequence struct {
	n atomic.Int64
}

// Next returns the next number.
func (s *StepSequence) Next() int64 {
	return s.n.Add(1)
}

// Issued reports how many numbers have been handed out.
func (s *StepSequence) Issued() int64 {
	return s.n.Load()
}
