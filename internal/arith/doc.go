// Package arith implements the four elementary arithmetic operations over
// Numeric Values.
//
// Each operation takes two dynamically typed operands, validates that both
// belong to the numeric set (int, real, complex), and returns the result
// under standard promotion:
//
//	Add(2, 3)      // numeric.Int(5)
//	Add(2.0, 3)    // numeric.Real(5)
//	Add(2, 3i)     // numeric.Complex(2+3i)
//	Divide(5, 2)   // numeric.Real(2.5)
//	Divide(5, 0)   // *Error{Code: CodeDivisionByZero}
//	Add("x", 1)    // *Error{Code: CodeInvalidOperandType, Operand: "a"}
//
// All operations are pure and safe for concurrent use.
package arith
