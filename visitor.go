package minimaple

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Visitor is a tree pass producing R, with one handler per node variant.
type Visitor[R any] interface {
	VisitBinary(n *BinaryOp) (R, error)
	VisitVariable(n *Variable) (R, error)
	VisitNumber(n *Number) (R, error)
	VisitPending(n *PendingDerivative) (R, error)
}

// Visit dispatches n to the handler of v that matches its variant.
func Visit[R any](v Visitor[R], n Node) (R, error) {
	switch n := n.(type) {
	case *BinaryOp:
		return v.VisitBinary(n)
	case *Variable:
		return v.VisitVariable(n)
	case *Number:
		return v.VisitNumber(n)
	case *PendingDerivative:
		return v.VisitPending(n)
	case nil:
		var zero R
		return zero, errors.AssertionFailedf("%T: visit of nil node", v)
	default:
		var zero R
		return zero, &NoRuleError{Pass: fmt.Sprintf("%T", v), Node: fmt.Sprintf("%T", n)}
	}
}

// BaseVisitor rejects every variant. Passes embed it and override the
// handlers for the variants they model.
type BaseVisitor[R any] struct {
	Pass string
}

func (b BaseVisitor[R]) VisitBinary(n *BinaryOp) (R, error)          { return b.reject(n) }
func (b BaseVisitor[R]) VisitVariable(n *Variable) (R, error)        { return b.reject(n) }
func (b BaseVisitor[R]) VisitNumber(n *Number) (R, error)            { return b.reject(n) }
func (b BaseVisitor[R]) VisitPending(n *PendingDerivative) (R, error) { return b.reject(n) }

func (b BaseVisitor[R]) reject(n Node) (R, error) {
	var zero R
	return zero, &NoRuleError{Pass: b.Pass, Node: variantName(n)}
}

func variantName(n Node) string {
	switch n.(type) {
	case *BinaryOp:
		return "binary operation"
	case *Variable:
		return "variable"
	case *Number:
		return "number"
	case *PendingDerivative:
		return "pending derivative"
	}
	return fmt.Sprintf("%T", n)
}
