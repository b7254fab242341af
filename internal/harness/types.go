package harness

// TraceEvent is one evaluation as recorded in the evaluation log.
// Operands and results use the tagged encoding of numeric.EncodeOperand.
type TraceEvent struct {
	Seq     int64          `json:"seq"`
	Op      string         `json:"op"`
	A       map[string]any `json:"a"`
	B       map[string]any `json:"b"`
	Outcome string         `json:"outcome"`
	Result  map[string]any `json:"result,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// Summary aggregates a run's evaluations.
type Summary struct {
	ByOp      map[string]int `json:"by_op"`
	ByOutcome map[string]int `json:"by_outcome"`
	ByError   map[string]int `json:"by_error,omitempty"`
}

// Result is the outcome of a test scenario execution.
type Result struct {
	// Pass indicates overall test success.
	// True if all expect clauses and assertions hold.
	Pass bool `json:"pass"`

	// RunID is the run the evaluations were logged under.
	RunID string `json:"run_id"`

	// Trace contains all evaluations in seq order.
	// Used for trace assertions and golden comparison.
	Trace []TraceEvent `json:"trace"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	Summary Summary `json:"summary"`
}

// NewResult creates a new passing result.
// Used as the starting point for test execution.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
