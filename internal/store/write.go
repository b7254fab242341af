package store

import (
	"context"
	"database/sql"
	"fmt"
)

// WriteEvaluation inserts an evaluation record into the store.
// Uses ON CONFLICT(id) DO NOTHING for idempotency - duplicate IDs are silently ignored.
// Other constraint violations (e.g., the outcome CHECK) still return errors.
//
// Operands and results are serialized to canonical JSON per RFC 8785.
func (s *Store) WriteEvaluation(ctx context.Context, ev Evaluation) error {
	aJSON, err := marshalObject(ev.A)
	if err != nil {
		return fmt.Errorf("write evaluation: operand a: %w", err)
	}
	bJSON, err := marshalObject(ev.B)
	if err != nil {
		return fmt.Errorf("write evaluation: operand b: %w", err)
	}

	var result, errorCode sql.NullString
	if ev.Result != nil {
		data, err := marshalObject(ev.Result)
		if err != nil {
			return fmt.Errorf("write evaluation: result: %w", err)
		}
		result = sql.NullString{String: data, Valid: true}
	}
	if ev.ErrorCode != "" {
		errorCode = sql.NullString{String: ev.ErrorCode, Valid: true}
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO evaluations
		(id, run_id, seq, op, a, b, outcome, result, error_code)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		ev.ID,
		ev.RunID,
		ev.Seq,
		ev.Op,
		aJSON,
		bJSON,
		string(ev.Outcome),
		result,
		errorCode,
	)
	if err != nil {
		return fmt.Errorf("write evaluation: %w", err)
	}

	return nil
}
