package store

import (
	"testing"

	"github.com/roach88/arith/internal/numeric"
)

// createTestStore creates an empty in-memory log closed at test cleanup.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// okEvaluation builds a successful evaluation record.
func okEvaluation(t *testing.T, runID string, seq int64, op string, a, b any, result numeric.Value) Evaluation {
	t.Helper()
	ev, err := NewEvaluation(runID, seq, op, a, b, result, "")
	if err != nil {
		t.Fatalf("NewEvaluation() failed: %v", err)
	}
	return ev
}

// errEvaluation builds a failed evaluation record.
func errEvaluation(t *testing.T, runID string, seq int64, op string, a, b any, code string) Evaluation {
	t.Helper()
	ev, err := NewEvaluation(runID, seq, op, a, b, nil, code)
	if err != nil {
		t.Fatalf("NewEvaluation() failed: %v", err)
	}
	return ev
}
