package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/arith/internal/arith"
	"github.com/roach88/arith/internal/numeric"
	"github.com/roach88/arith/internal/store"
	"github.com/roach88/arith/internal/testutil"
)

// RunIDGenerator supplies the run ID evaluations are logged under.
type RunIDGenerator interface {
	Generate() string
}

// Harness is the test execution engine.
// It numbers evaluations with a fresh step sequence and a fixed run ID.
type Harness struct {
	store  *store.Store
	seq    testutil.StepSequence
	runIDs RunIDGenerator
	logger *slog.Logger
}

// Option configures Run.
type Option func(*Harness)

// WithLogger routes harness logs to logger. By default logs are discarded.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Harness) { h.logger = logger }
}

// WithRunIDGenerator overrides the scenario's fixed run ID.
func WithRunIDGenerator(g RunIDGenerator) Option {
	return func(h *Harness) { h.runIDs = g }
}

// Run executes a test scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database for isolation.
// Deterministic helpers ensure reproducible results.
//
// Execution flow:
// 1. Create fresh in-memory database
// 2. Evaluate each step through arith.Apply and log it
// 3. Check each step's expect clause
// 4. Read the trace back from the log and evaluate assertions
//
// Failed expectations and assertions are reported in Result.Errors; the
// returned error is reserved for problems running the scenario at all.
func Run(scenario *Scenario, opts ...Option) (*Result, error) {
	st, err := store.OpenMemory()
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	h := &Harness{
		store:  st,
		runIDs: testutil.NewFixedRunIDGenerator(scenario.RunID),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(h)
	}

	ctx := context.Background()
	runID := h.runIDs.Generate()

	result := NewResult()
	result.RunID = runID

	h.logger.Info("scenario started",
		"scenario", scenario.Name,
		"run_id", runID,
		"steps", len(scenario.Steps),
	)

	if err := h.executeSteps(ctx, runID, scenario.Steps, result); err != nil {
		return nil, fmt.Errorf("failed to execute steps: %w", err)
	}

	if result.Trace, err = h.readTrace(ctx, runID); err != nil {
		return nil, err
	}
	if n := h.seq.Issued(); int64(len(result.Trace)) != n {
		return nil, fmt.Errorf("evaluation log holds %d rows for run %s, %d evaluations were numbered", len(result.Trace), runID, n)
	}
	if result.Summary, err = h.summarize(ctx, runID); err != nil {
		return nil, err
	}

	actx := &AssertionContext{
		Store: st,
		Ctx:   ctx,
		RunID: runID,
	}
	for _, errMsg := range EvaluateAssertions(result, scenario.Assertions, actx) {
		result.AddError(errMsg)
	}

	h.logger.Info("scenario finished",
		"scenario", scenario.Name,
		"run_id", runID,
		"evaluations", h.seq.Issued(),
		"pass", result.Pass,
		"errors", len(result.Errors),
	)

	return result, nil
}

// executeSteps evaluates every step, logs it and checks its expect clause.
func (h *Harness) executeSteps(ctx context.Context, runID string, steps []Step, result *Result) error {
	for i := range steps {
		step := &steps[i]

		op, err := arith.ParseOp(step.Op)
		if err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
		a, err := Operand(&step.A)
		if err != nil {
			return fmt.Errorf("step %d: operand a: %w", i, err)
		}
		b, err := Operand(&step.B)
		if err != nil {
			return fmt.Errorf("step %d: operand b: %w", i, err)
		}

		seq := h.seq.Next()

		value, evalErr := arith.Apply(op, a, b)
		code := arith.CodeOf(evalErr)
		if evalErr != nil && code == "" {
			return fmt.Errorf("step %d: %w", i, evalErr)
		}

		ev, err := store.NewEvaluation(runID, seq, string(op), a, b, value, string(code))
		if err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
		if err := h.store.WriteEvaluation(ctx, ev); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}

		h.logger.Debug("step operands",
			"step", i,
			"a", numeric.TypeName(a),
			"b", numeric.TypeName(b),
		)
		if evalErr != nil {
			h.logger.Info("step failed",
				"step", i,
				"op", op,
				"seq", seq,
				"evaluation_id", ev.ID,
				"error_code", code,
			)
		} else {
			h.logger.Info("step evaluated",
				"step", i,
				"op", op,
				"seq", seq,
				"evaluation_id", ev.ID,
				"result", numeric.Format(value),
			)
		}

		if step.Expect != nil {
			if msg := checkExpect(i, op, step.Expect, value, evalErr); msg != "" {
				result.AddError(msg)
			}
		}
	}
	return nil
}

// checkExpect compares one step's outcome with its expect clause.
// It returns an empty string when they agree.
func checkExpect(index int, op arith.Op, e *ExpectClause, got numeric.Value, err error) string {
	prefix := fmt.Sprintf("steps[%d] (%s)", index, op)

	if e.Error != "" {
		if err == nil {
			return fmt.Sprintf("%s: expected error %s, got %s %s", prefix, e.Error, got.Kind(), numeric.Format(got))
		}
		var ae *arith.Error
		if !errors.As(err, &ae) || string(ae.Code) != e.Error {
			return fmt.Sprintf("%s: expected error %s, got %v", prefix, e.Error, err)
		}
		if e.Operand != "" && ae.Operand != e.Operand {
			return fmt.Sprintf("%s: expected invalid operand %q, got %q", prefix, e.Operand, ae.Operand)
		}
		return ""
	}

	if err != nil {
		return fmt.Sprintf("%s: expected success, got %v", prefix, err)
	}

	if e.Kind != "" {
		kind, kerr := parseKind(e.Kind)
		if kerr != nil {
			return fmt.Sprintf("%s: %v", prefix, kerr)
		}
		if got.Kind() != kind {
			return fmt.Sprintf("%s: expected kind %s, got %s (%s)", prefix, kind, got.Kind(), numeric.Format(got))
		}
	}

	if e.Value.Kind != 0 {
		want, verr := expectedValue(&e.Value)
		if verr != nil {
			return fmt.Sprintf("%s: %v", prefix, verr)
		}
		widened, cerr := numeric.Convert(want, got.Kind())
		if cerr != nil || !numeric.Identical(widened, got) {
			return fmt.Sprintf("%s: expected value %s, got %s", prefix, numeric.Format(want), numeric.Format(got))
		}
	}

	return ""
}

// readTrace builds the trace from the evaluation log.
func (h *Harness) readTrace(ctx context.Context, runID string) ([]TraceEvent, error) {
	evals, err := h.store.ReadRun(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to read trace: %w", err)
	}

	trace := make([]TraceEvent, len(evals))
	for i, ev := range evals {
		trace[i] = TraceEvent{
			Seq:     ev.Seq,
			Op:      ev.Op,
			A:       ev.A,
			B:       ev.B,
			Outcome: string(ev.Outcome),
			Result:  ev.Result,
			Error:   ev.ErrorCode,
		}
	}
	return trace, nil
}

func (h *Harness) summarize(ctx context.Context, runID string) (Summary, error) {
	byOp, err := h.store.CountByOp(ctx, runID)
	if err != nil {
		return Summary{}, err
	}
	byOutcome, err := h.store.CountByOutcome(ctx, runID)
	if err != nil {
		return Summary{}, err
	}
	byError, err := h.store.CountByError(ctx, runID)
	if err != nil {
		return Summary{}, err
	}

	s := Summary{
		ByOp:      byOp,
		ByOutcome: make(map[string]int, len(byOutcome)),
		ByError:   byError,
	}
	for k, n := range byOutcome {
		s.ByOutcome[string(k)] = n
	}
	return s, nil
}
