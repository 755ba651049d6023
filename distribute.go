package minimaple

import (
	"math"
)

// MaxDistributedPower is the largest integer exponent Distribute rewrites
// into repeated multiplication. Larger powers are left in place and handled
// by the power rule and by term decomposition.
const MaxDistributedPower = 10

// distributor expands a tree bottom-up. Within a divisor it keeps powers
// factored, so g^2 in a quotient-rule denominator stays g^2.
type distributor struct {
	inDivisor bool
}

// Distribute expands products over sums and differences, and positive
// integer powers into products, bottom-up. Zero, negative and non-integer
// powers are left unchanged, as is every power inside the divisor of a
// quotient.
func Distribute(n Node) (Node, error) {
	return Visit[Node](distributor{}, n)
}

func (d distributor) VisitBinary(n *BinaryOp) (Node, error) {
	left, err := Visit[Node](d, n.Left)
	if err != nil {
		return nil, err
	}
	rd := d
	if n.Op == OpDivide {
		rd = distributor{inDivisor: true}
	}
	right, err := Visit[Node](rd, n.Right)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case OpMultiply:
		return distributeProduct(left, right), nil
	case OpPower:
		if exp, ok := right.(*Number); ok && !d.inDivisor && distributable(exp.Value) {
			return distributePower(left, int(exp.Value)), nil
		}
	}
	return Bin(left, n.Op, right), nil
}

func (d distributor) VisitVariable(n *Variable) (Node, error) { return Var(n.Name), nil }
func (d distributor) VisitNumber(n *Number) (Node, error)     { return Num(n.Value), nil }

func (d distributor) VisitPending(n *PendingDerivative) (Node, error) {
	target, err := Visit[Node](d, n.Target)
	if err != nil {
		return nil, err
	}
	return Pending(target), nil
}

func distributable(exp float64) bool {
	return exp >= 1 && exp <= MaxDistributedPower && exp == math.Trunc(exp)
}

// distributeProduct multiplies two already-flat operands, splitting over
// whichever side is a sum or difference.
func distributeProduct(left, right Node) Node {
	if l, ok := left.(*BinaryOp); ok && l.Op.additive() {
		return Bin(distributeProduct(l.Left, right), l.Op, distributeProduct(l.Right, Clone(right)))
	}
	if r, ok := right.(*BinaryOp); ok && r.Op.additive() {
		return Bin(distributeProduct(left, r.Left), r.Op, distributeProduct(Clone(left), r.Right))
	}
	return MulOf(left, right)
}

func distributePower(base Node, exp int) Node {
	product := Clone(base)
	for i := 1; i < exp; i++ {
		product = distributeProduct(product, Clone(base))
	}
	return product
}
