package minimaple

// deriver pushes derivative markers depth layers into a tree.
type deriver struct {
	BaseVisitor[Node]
	depth int
}

// Derive applies the sum, difference, product, quotient and power rules to
// the top depth layers of n. Sub-trees reached with no depth left are wrapped
// in a PendingDerivative as a whole; atoms are always wrapped.
func Derive(n Node, depth int) (Node, error) {
	return newDeriver(depth).derive(n)
}

func newDeriver(depth int) deriver {
	return deriver{BaseVisitor: BaseVisitor[Node]{Pass: "derive"}, depth: depth}
}

func (d deriver) derive(n Node) (Node, error) {
	if d.depth <= 0 {
		return Pending(Clone(n)), nil
	}
	return Visit[Node](d, n)
}

func (d deriver) VisitVariable(n *Variable) (Node, error) { return Pending(Var(n.Name)), nil }
func (d deriver) VisitNumber(n *Number) (Node, error)     { return Pending(Num(n.Value)), nil }

func (d deriver) VisitBinary(n *BinaryOp) (Node, error) {
	next := newDeriver(d.depth - 1)
	dl, err := next.derive(n.Left)
	if err != nil {
		return nil, err
	}

	if n.Op == OpPower {
		exp, ok := n.Right.(*Number)
		if !ok {
			return nil, &UnsupportedError{Pass: "derive", Op: OpPower}
		}
		// n * base^(n-1) * base'
		return MulOf(MulOf(Num(exp.Value), PowOf(Clone(n.Left), exp.Value-1)), dl), nil
	}

	dr, err := next.derive(n.Right)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case OpAdd, OpSubtract:
		return Bin(dl, n.Op, dr), nil
	case OpMultiply:
		return AddOf(
			MulOf(dl, Clone(n.Right)),
			MulOf(Clone(n.Left), dr),
		), nil
	case OpDivide:
		return DivOf(
			SubOf(MulOf(dl, Clone(n.Right)), MulOf(Clone(n.Left), dr)),
			PowOf(Clone(n.Right), 2),
		), nil
	}
	return nil, &UnsupportedError{Pass: "derive", Op: n.Op}
}
