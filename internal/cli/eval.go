package cli

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/roach88/arith/internal/arith"
	"github.com/roach88/arith/internal/numeric"
)

// EvalResult is the JSON payload of a successful evaluation.
type EvalResult struct {
	Op     string         `json:"op"`
	A      map[string]any `json:"a"`
	B      map[string]any `json:"b"`
	Result map[string]any `json:"result"`
	Text   string         `json:"text"`
}

// newTraceID returns the correlation id attached to JSON responses.
var newTraceID = func() string {
	return uuid.Must(uuid.NewV7()).String()
}

// NewEvalCommand creates the eval command.
func NewEvalCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "eval <a> <op> <b>",
		Short: "Evaluate a single arithmetic expression",
		Long: `Evaluate a single arithmetic expression.

Operands are numeric literals: 5 (int), 2.5, 1e3, inf, nan (real),
3j, 2+3j, (2-1.5j) (complex). Anything else is passed through as a
string and rejected with INVALID_OPERAND_TYPE.

The operator is one of + - * / or a name such as add, sub, mul, div.
Use -- before negative operands so they are not read as flags.

Exit codes:
  0 - Evaluation succeeded
  1 - Arithmetic error (invalid operand type, division by zero)
  2 - Usage error

Examples:
  arith eval 2 + 3
  arith eval 2.0 '*' 3j
  arith eval --format json 5 / 0
  arith eval -- -7 div 2`,
		Args: exactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(rootOpts, cmd)
			f.TraceID = newTraceID()

			op, err := arith.ParseOp(args[1])
			if err != nil {
				return fail(f, CodeUsage, ExitCommandError, err)
			}
			return evaluate(f, op, args[0], args[2])
		},
	}
}

// binaryCommand describes one of the per-operation shortcuts.
type binaryCommand struct {
	use     string
	op      arith.Op
	aliases []string
}

var binaryCommands = []binaryCommand{
	{"add", arith.OpAdd, []string{"plus"}},
	{"sub", arith.OpSubtract, []string{"subtract", "minus"}},
	{"mul", arith.OpMultiply, []string{"multiply", "times"}},
	{"div", arith.OpDivide, []string{"divide"}},
}

// NewBinaryCommands creates add, sub, mul and div.
func NewBinaryCommands(rootOpts *RootOptions) []*cobra.Command {
	cmds := make([]*cobra.Command, 0, len(binaryCommands))
	for _, bc := range binaryCommands {
		cmds = append(cmds, &cobra.Command{
			Use:     bc.use + " <a> <b>",
			Aliases: bc.aliases,
			Short:   fmt.Sprintf("Evaluate a %s b", bc.op.Symbol()),
			Args:    exactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				f := newFormatter(rootOpts, cmd)
				f.TraceID = newTraceID()
				return evaluate(f, bc.op, args[0], args[1])
			},
		})
	}
	return cmds
}

// parseOperand reads a numeric literal. Text that is not a number is
// returned unchanged so that evaluation reports it as a string operand.
func parseOperand(s string) any {
	v, err := numeric.Parse(s)
	if err != nil {
		return s
	}
	return v
}

func evaluate(f *OutputFormatter, op arith.Op, rawA, rawB string) error {
	a, b := parseOperand(rawA), parseOperand(rawB)

	var v numeric.Value
	var err error
	x, xok := a.(numeric.Value)
	y, yok := b.(numeric.Value)
	if xok && yok {
		v, err = arith.Eval(op, x, y)
	} else {
		v, err = arith.Apply(op, a, b)
	}
	if err != nil {
		var aerr *arith.Error
		if errors.As(err, &aerr) {
			return fail(f, string(aerr.Code), ExitFailure, aerr)
		}
		return fail(f, CodeInternal, ExitFailure, err)
	}

	text := numeric.Format(v)
	f.VerboseLog("%s %s %s = %s", rawA, op.Symbol(), rawB, text)

	if f.Format == "json" {
		return f.Success(EvalResult{
			Op:     string(op),
			A:      numeric.EncodeOperand(a),
			B:      numeric.EncodeOperand(b),
			Result: numeric.Encode(v),
			Text:   text,
		})
	}
	return f.Success(text)
}

// fail reports err in the JSON envelope (text mode leaves printing to the
// caller of Execute) and returns it with exit code.
func fail(f *OutputFormatter, code string, exitCode int, err error) error {
	if f.Format == "json" {
		message := err.Error()
		var details any
		var aerr *arith.Error
		if errors.As(err, &aerr) {
			message = aerr.Message
			details = errorDetails(aerr)
		}
		if werr := f.Error(code, message, details); werr != nil {
			return werr
		}
	}
	return WrapExitError(exitCode, "evaluation failed", err)
}

func errorDetails(e *arith.Error) map[string]string {
	d := map[string]string{"op": string(e.Op)}
	if e.Operand != "" {
		d["operand"] = e.Operand
	}
	if e.Type != "" {
		d["type"] = e.Type
	}
	return d
}
