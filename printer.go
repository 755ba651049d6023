package minimaple

import (
	"fmt"
)

// printer renders a node, parenthesizing it when its precedence is below min.
type printer struct {
	min int
}

// Print serializes n with the minimum number of parentheses needed for
// Parse to rebuild the same tree. A pending derivative prints as its
// parenthesized target followed by a prime, and a product whose left
// factor is -1 prints as a negation.
func Print(n Node) string {
	s, err := Visit[string](printer{}, n)
	if err != nil {
		return fmt.Sprintf("%%!(%v)", err)
	}
	return s
}

func (p printer) VisitBinary(n *BinaryOp) (string, error) {
	prec := n.Op.Precedence()
	if negation(n) {
		right, err := Visit[string](printer{min: prec}, n.Right)
		if err != nil {
			return "", err
		}
		return p.wrap("-"+right, prec), nil
	}
	// Left operands of the left-associative operators may share the
	// parent's precedence; right operands and power bases may not.
	leftMin, rightMin := prec, prec+1
	if n.Op == OpPower {
		leftMin = precAtom
	}
	left, err := Visit[string](printer{min: leftMin}, n.Left)
	if err != nil {
		return "", err
	}
	right, err := Visit[string](printer{min: rightMin}, n.Right)
	if err != nil {
		return "", err
	}
	return p.wrap(left+n.Op.Symbol()+right, prec), nil
}

func (p printer) wrap(s string, prec int) string {
	if prec < p.min {
		return "(" + s + ")"
	}
	return s
}

// negation reports whether n is -1*e, which prints as -e.
func negation(n *BinaryOp) bool {
	return n.Op == OpMultiply && isNumber(n.Left, -1)
}

func (p printer) VisitVariable(n *Variable) (string, error) { return n.Name, nil }
func (p printer) VisitNumber(n *Number) (string, error)     { return formatNumber(n.Value), nil }

func (p printer) VisitPending(n *PendingDerivative) (string, error) {
	inner, err := Visit[string](printer{}, n.Target)
	if err != nil {
		return "", err
	}
	return "(" + inner + ")'", nil
}
