package store

import (
	"context"
	"database/sql"
	"fmt"
)

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const evaluationColumns = `id, run_id, seq, op, a, b, outcome, result, error_code`

// ReadRun returns all evaluations of a run.
// Results are ordered deterministically: ORDER BY seq ASC, id COLLATE BINARY ASC.
//
// Returns an empty slice (not nil) if the run has no evaluations.
func (s *Store) ReadRun(ctx context.Context, runID string) ([]Evaluation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+evaluationColumns+`
		FROM evaluations
		WHERE run_id = ?
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query evaluations: %w", err)
	}
	defer rows.Close()

	evals := []Evaluation{}
	for rows.Next() {
		ev, err := scanEvaluation(rows)
		if err != nil {
			return nil, err
		}
		evals = append(evals, ev)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate evaluations: %w", err)
	}

	return evals, nil
}

// ReadEvaluation retrieves a single evaluation by ID.
// Returns sql.ErrNoRows if not found.
func (s *Store) ReadEvaluation(ctx context.Context, id string) (Evaluation, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+evaluationColumns+`
		FROM evaluations
		WHERE id = ?
	`, id)

	return scanEvaluation(row)
}

// CountByOp returns the number of evaluations per operation in a run.
func (s *Store) CountByOp(ctx context.Context, runID string) (map[string]int, error) {
	return s.countBy(ctx, "op", runID)
}

// CountByOutcome returns the number of evaluations per outcome in a run.
func (s *Store) CountByOutcome(ctx context.Context, runID string) (map[Outcome]int, error) {
	counts, err := s.countBy(ctx, "outcome", runID)
	if err != nil {
		return nil, err
	}
	out := make(map[Outcome]int, len(counts))
	for k, n := range counts {
		out[Outcome(k)] = n
	}
	return out, nil
}

// CountByError returns the number of failed evaluations per error code in a run.
func (s *Store) CountByError(ctx context.Context, runID string) (map[string]int, error) {
	return s.countBy(ctx, "error_code", runID)
}

// countBy groups a run's evaluations by column. NULL keys are skipped.
// column is never user input.
func (s *Store) countBy(ctx context.Context, column, runID string) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT %[1]s, COUNT(*)
		FROM evaluations
		WHERE run_id = ? AND %[1]s IS NOT NULL
		GROUP BY %[1]s
		ORDER BY %[1]s COLLATE BINARY ASC
	`, column), runID)
	if err != nil {
		return nil, fmt.Errorf("count by %s: %w", column, err)
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var key string
		var n int
		if err := rows.Scan(&key, &n); err != nil {
			return nil, fmt.Errorf("scan %s count: %w", column, err)
		}
		counts[key] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s counts: %w", column, err)
	}
	return counts, nil
}

// scanEvaluation decodes one evaluations row.
// sql.ErrNoRows is returned unwrapped so callers can compare it directly.
func scanEvaluation(row scanner) (Evaluation, error) {
	var (
		ev                Evaluation
		aJSON, bJSON      string
		outcome           string
		result, errorCode sql.NullString
	)
	err := row.Scan(&ev.ID, &ev.RunID, &ev.Seq, &ev.Op, &aJSON, &bJSON, &outcome, &result, &errorCode)
	if err == sql.ErrNoRows {
		return Evaluation{}, err
	}
	if err != nil {
		return Evaluation{}, fmt.Errorf("scan evaluation: %w", err)
	}

	if ev.A, err = unmarshalObject(aJSON); err != nil {
		return Evaluation{}, fmt.Errorf("unmarshal operand a: %w", err)
	}
	if ev.B, err = unmarshalObject(bJSON); err != nil {
		return Evaluation{}, fmt.Errorf("unmarshal operand b: %w", err)
	}
	ev.Outcome = Outcome(outcome)
	if result.Valid {
		if ev.Result, err = unmarshalObject(result.String); err != nil {
			return Evaluation{}, fmt.Errorf("unmarshal result: %w", err)
		}
	}
	ev.ErrorCode = errorCode.String
	return ev, nil
}
