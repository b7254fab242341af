package store

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/roach88/arith/internal/numeric"
)

// Outcome is the result category of an evaluation.
type Outcome string

const (
	OutcomeOK    Outcome = "ok"
	OutcomeError Outcome = "error"
)

// Evaluation is one logged arithmetic call.
type Evaluation struct {
	// ID is the content-addressed identity from numeric.EvaluationID.
	ID string

	// RunID groups the evaluations of one scenario run.
	RunID string

	// Seq is the logical position of the evaluation within its run.
	Seq int64

	// Op is the operation name ("add", "subtract", "multiply", "divide").
	Op string

	// A and B are the tagged operand encodings (numeric.EncodeOperand),
	// including operands that failed validation.
	A map[string]any
	B map[string]any

	Outcome Outcome

	// Result is the tagged result encoding. Nil when Outcome is error.
	Result map[string]any

	// ErrorCode is set when Outcome is error.
	ErrorCode string
}

// NewEvaluation builds the log record for one call of op on a and b.
// A non-empty errorCode marks the evaluation as failed; result must then
// be nil.
func NewEvaluation(runID string, seq int64, op string, a, b any, result numeric.Value, errorCode string) (Evaluation, error) {
	if errorCode != "" && result != nil {
		return Evaluation{}, fmt.Errorf("evaluation %d: result and error code are mutually exclusive", seq)
	}
	if errorCode == "" && result == nil {
		return Evaluation{}, fmt.Errorf("evaluation %d: missing result", seq)
	}

	id, err := numeric.EvaluationID(runID, op, a, b, seq)
	if err != nil {
		return Evaluation{}, err
	}

	ev := Evaluation{
		ID:    id,
		RunID: runID,
		Seq:   seq,
		Op:    op,
		A:     numeric.EncodeOperand(a),
		B:     numeric.EncodeOperand(b),
	}
	if errorCode != "" {
		ev.Outcome = OutcomeError
		ev.ErrorCode = errorCode
	} else {
		ev.Outcome = OutcomeOK
		ev.Result = numeric.Encode(result)
	}
	return ev, nil
}

// Value decodes Result. It returns nil for failed evaluations.
func (e Evaluation) Value() (numeric.Value, error) {
	if e.Result == nil {
		return nil, nil
	}
	return numeric.Decode(e.Result)
}

// marshalObject converts a tagged encoding to canonical JSON TEXT.
func marshalObject(obj map[string]any) (string, error) {
	data, err := numeric.MarshalCanonical(obj)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// unmarshalObject parses canonical JSON TEXT back into a tagged encoding.
// Integers come back as int64 so the object re-marshals byte for byte.
func unmarshalObject(data string) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(data)))
	dec.UseNumber()

	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return nil, err
	}
	for k, v := range obj {
		if n, ok := v.(json.Number); ok {
			i, err := n.Int64()
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", k, err)
			}
			obj[k] = i
		}
	}
	return obj, nil
}
