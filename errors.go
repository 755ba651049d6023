package minimaple

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// ============================================================
// Error taxonomy
// ============================================================

var (
	// ErrInvalidVariable is returned when the differentiation variable is
	// not a non-empty run of ASCII letters.
	ErrInvalidVariable = errors.New("invalid differentiation variable")

	// ErrExhausted is returned by Lexer.Next after the end token has been
	// produced. Reset the lexer to scan again.
	ErrExhausted = errors.New("lexer exhausted")
)

// LexError reports a character the lexer does not recognise.
type LexError struct {
	Offset int
	Char   rune
}

func (e *LexError) Error() string {
	return fmt.Sprintf("unexpected character %q at offset %d", e.Char, e.Offset)
}

// ParseError reports a grammar mismatch or leftover input.
type ParseError struct {
	Expected []TokenKind
	Found    TokenKind
	Offset   int
}

func (e *ParseError) Error() string {
	names := make([]string, len(e.Expected))
	for i, k := range e.Expected {
		names[i] = k.String()
	}
	return fmt.Sprintf("expected %s, found %s at offset %d",
		strings.Join(names, " or "), e.Found, e.Offset)
}

// DerivationIncompleteError is returned when evaluation meets a pending
// derivative whose target is not an atom.
type DerivationIncompleteError struct {
	Target string
}

func (e *DerivationIncompleteError) Error() string {
	return fmt.Sprintf("derivative of %s was not propagated to its atoms", e.Target)
}

// UnsupportedError is returned when a pass meets an operator or operand
// shape it does not model.
type UnsupportedError struct {
	Pass string
	Op   Operator
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("%s: unsupported use of operator %s", e.Pass, e.Op)
}

// NumericError is returned when constant folding cannot produce a finite
// result, such as division by a literal zero.
type NumericError struct {
	Op          Operator
	Left, Right float64
}

func (e *NumericError) Error() string {
	if e.Op == OpDivide && e.Right == 0 {
		return "numeric error: division by zero"
	}
	return fmt.Sprintf("numeric error: %s%s%s is not finite",
		formatNumber(e.Left), e.Op, formatNumber(e.Right))
}

// NoRuleError is returned when a pass has no handler for a node variant.
type NoRuleError struct {
	Pass string
	Node string
}

func (e *NoRuleError) Error() string {
	return fmt.Sprintf("%s: no rule for %s", e.Pass, e.Node)
}

// IterationLimitError is returned when the derivation loop does not reach a
// fixed point within its bound.
type IterationLimitError struct {
	Limit int
}

func (e *IterationLimitError) Error() string {
	return fmt.Sprintf("derivation did not reach a fixed point within %d iterations", e.Limit)
}

// DifferentiationError wraps any failure of the pipeline. The original
// failure is available through errors.Unwrap, errors.As and Cause.
type DifferentiationError struct {
	Input    string
	Variable string
	cause    error
}

func (e *DifferentiationError) Error() string {
	return fmt.Sprintf("failed to differentiate %q with respect to %q: %v", e.Input, e.Variable, e.cause)
}

func (e *DifferentiationError) Unwrap() error { return e.cause }
func (e *DifferentiationError) Cause() error  { return e.cause }
