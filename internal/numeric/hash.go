package numeric

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// DomainEvaluation prefixes evaluation hashes. The version suffix leaves
// room for an algorithm migration.
const DomainEvaluation = "arith/evaluation/v1"

// hashWithDomain computes SHA256(domain + 0x00 + data).
// The null separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// EvaluationID computes the content-addressed ID of one evaluation.
// The ID depends on the run, the operation, both operands (valid or not)
// and the logical sequence number, so it is stable across replays.
func EvaluationID(runID, op string, a, b any, seq int64) (string, error) {
	obj := map[string]any{
		"run_id": runID,
		"op":     op,
		"a":      EncodeOperand(a),
		"b":      EncodeOperand(b),
		"seq":    seq,
	}

	canonical, err := MarshalCanonical(obj)
	if err != nil {
		return "", fmt.Errorf("EvaluationID: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainEvaluation, canonical), nil
}

// MustEvaluationID is like EvaluationID but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustEvaluationID(runID, op string, a, b any, seq int64) string {
	id, err := EvaluationID(runID, op, a, b, seq)
	if err != nil {
		panic(err)
	}
	return id
}
