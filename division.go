package minimaple

type divisionRemover struct {
	BaseVisitor[Node]
}

// RemoveDivision rewrites every a/b as a*b^-1 so the tree only contains
// operators the decomposer understands.
func RemoveDivision(n Node) (Node, error) {
	return Visit[Node](divisionRemover{BaseVisitor[Node]{Pass: "remove-division"}}, n)
}

func (r divisionRemover) VisitBinary(n *BinaryOp) (Node, error) {
	left, err := Visit[Node](r, n.Left)
	if err != nil {
		return nil, err
	}
	right, err := Visit[Node](r, n.Right)
	if err != nil {
		return nil, err
	}
	if n.Op == OpDivide {
		return MulOf(left, PowOf(right, -1)), nil
	}
	return Bin(left, n.Op, right), nil
}

func (r divisionRemover) VisitVariable(n *Variable) (Node, error) { return Var(n.Name), nil }
func (r divisionRemover) VisitNumber(n *Number) (Node, error)     { return Num(n.Value), nil }

// RestoreDivision is the inverse of RemoveDivision for trees built by ToAST.
// Within each additive term, factors raised to a negative numeric exponent
// move to a denominator in their original order; an exponent of -1 leaves
// the bare base. A term with no remaining numerator factors gets 1.
func RestoreDivision(n Node) Node {
	if b, ok := n.(*BinaryOp); ok && b.Op.additive() {
		return Bin(RestoreDivision(b.Left), b.Op, RestoreDivision(b.Right))
	}

	var num, den []Node
	for _, f := range productFactors(n) {
		p, ok := f.(*BinaryOp)
		if !ok || p.Op != OpPower {
			num = append(num, f)
			continue
		}
		exp, ok := p.Right.(*Number)
		if !ok {
			num = append(num, f)
			continue
		}
		base := RestoreDivision(p.Left)
		switch {
		case exp.Value == -1:
			den = append(den, base)
		case exp.Value < 0:
			den = append(den, PowOf(base, -exp.Value))
		default:
			num = append(num, PowOf(base, exp.Value))
		}
	}

	if len(den) == 0 {
		return product(num)
	}
	return DivOf(product(num), product(den))
}

// productFactors flattens a left- or right-nested chain of products.
func productFactors(n Node) []Node {
	b, ok := n.(*BinaryOp)
	if !ok || b.Op != OpMultiply {
		return []Node{n}
	}
	return append(productFactors(b.Left), productFactors(b.Right)...)
}

func product(factors []Node) Node {
	if len(factors) == 0 {
		return Num(1)
	}
	result := factors[0]
	for _, f := range factors[1:] {
		result = MulOf(result, f)
	}
	return result
}
