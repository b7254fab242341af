package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/arith/internal/numeric"
)

func TestNewEvaluation(t *testing.T) {
	ev, err := NewEvaluation("run-1", 1, "add", 2, 3.5, numeric.Real(5.5), "")
	require.NoError(t, err)

	assert.Equal(t, numeric.MustEvaluationID("run-1", "add", 2, 3.5, 1), ev.ID)
	assert.Equal(t, OutcomeOK, ev.Outcome)
	assert.Equal(t, map[string]any{"type": "int", "value": int64(2)}, ev.A)
	assert.Equal(t, map[string]any{"type": "real", "value": "3.5"}, ev.B)
	assert.Equal(t, map[string]any{"type": "real", "value": "5.5"}, ev.Result)
	assert.Empty(t, ev.ErrorCode)

	v, err := ev.Value()
	require.NoError(t, err)
	assert.Equal(t, numeric.Real(5.5), v)
}

func TestNewEvaluation_Failed(t *testing.T) {
	ev, err := NewEvaluation("run-1", 2, "add", "x", 1, nil, "INVALID_OPERAND_TYPE")
	require.NoError(t, err)

	assert.Equal(t, OutcomeError, ev.Outcome)
	assert.Nil(t, ev.Result)
	assert.Equal(t, "INVALID_OPERAND_TYPE", ev.ErrorCode)
	assert.Equal(t, map[string]any{"type": "invalid", "go_type": "string", "repr": "x"}, ev.A)

	v, err := ev.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestNewEvaluation_Inconsistent(t *testing.T) {
	_, err := NewEvaluation("run-1", 1, "add", 1, 2, numeric.Int(3), "DIVISION_BY_ZERO")
	assert.Error(t, err)

	_, err = NewEvaluation("run-1", 1, "add", 1, 2, nil, "")
	assert.Error(t, err)
}

func TestWriteReadRoundTrip(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	evals := []Evaluation{
		okEvaluation(t, "run-1", 1, "add", 2, 3, numeric.Int(5)),
		okEvaluation(t, "run-1", 2, "multiply", 2.0, 1+1i, numeric.Complex(2+2i)),
		errEvaluation(t, "run-1", 3, "divide", 5, 0, "DIVISION_BY_ZERO"),
		errEvaluation(t, "run-1", 4, "add", true, 1, "INVALID_OPERAND_TYPE"),
	}
	for _, ev := range evals {
		require.NoError(t, s.WriteEvaluation(ctx, ev))
	}

	got, err := s.ReadRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, evals, got)

	// canonical text survives the round trip byte for byte
	for i := range evals {
		want, err := numeric.MarshalCanonical(evals[i].A)
		require.NoError(t, err)
		have, err := numeric.MarshalCanonical(got[i].A)
		require.NoError(t, err)
		assert.Equal(t, string(want), string(have))
	}
}

func TestWriteEvaluation_Idempotent(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	ev := okEvaluation(t, "run-1", 1, "add", 1, 2, numeric.Int(3))
	require.NoError(t, s.WriteEvaluation(ctx, ev))
	require.NoError(t, s.WriteEvaluation(ctx, ev))

	got, err := s.ReadRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestReadRun_OrderedBySeq(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	for _, seq := range []int64{3, 1, 2} {
		require.NoError(t, s.WriteEvaluation(ctx, okEvaluation(t, "run-1", seq, "add", seq, 1, numeric.Int(seq+1))))
	}
	require.NoError(t, s.WriteEvaluation(ctx, okEvaluation(t, "run-2", 1, "add", 9, 9, numeric.Int(18))))

	got, err := s.ReadRun(ctx, "run-1")
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i, ev := range got {
		assert.Equal(t, int64(i+1), ev.Seq)
	}
}

func TestReadRun_Empty(t *testing.T) {
	s := createTestStore(t)

	got, err := s.ReadRun(context.Background(), "missing")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestReadEvaluation(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	ev := errEvaluation(t, "run-1", 1, "divide", 1.5, 0.0, "DIVISION_BY_ZERO")
	require.NoError(t, s.WriteEvaluation(ctx, ev))

	got, err := s.ReadEvaluation(ctx, ev.ID)
	require.NoError(t, err)
	assert.Equal(t, ev, got)

	_, err = s.ReadEvaluation(ctx, "nope")
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}

func TestCounts(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	evals := []Evaluation{
		okEvaluation(t, "run-1", 1, "add", 1, 2, numeric.Int(3)),
		okEvaluation(t, "run-1", 2, "add", 1.5, 2, numeric.Real(3.5)),
		errEvaluation(t, "run-1", 3, "divide", 1, 0, "DIVISION_BY_ZERO"),
		errEvaluation(t, "run-1", 4, "subtract", "x", 0, "INVALID_OPERAND_TYPE"),
		errEvaluation(t, "run-1", 5, "divide", nil, 0, "INVALID_OPERAND_TYPE"),
		okEvaluation(t, "run-2", 1, "multiply", 2, 2, numeric.Int(4)),
	}
	for _, ev := range evals {
		require.NoError(t, s.WriteEvaluation(ctx, ev))
	}

	byOp, err := s.CountByOp(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"add": 2, "divide": 2, "subtract": 1}, byOp)

	byOutcome, err := s.CountByOutcome(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, map[Outcome]int{OutcomeOK: 2, OutcomeError: 3}, byOutcome)

	byError, err := s.CountByError(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"DIVISION_BY_ZERO": 1, "INVALID_OPERAND_TYPE": 2}, byError)

	empty, err := s.CountByError(ctx, "run-2")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
