package minimaple

import (
	"math"
)

type evaluator struct {
	variable string
}

// Evaluate resolves pending derivatives on atoms with respect to variable,
// folds constant sub-expressions and applies the identities
//
//	x^1 = x   x^0 = 1   x*1 = 1*x = x   x*0 = 0*x = 0
//	x+0 = 0+x = x   x-0 = x   x/1 = x   0/x = 0
//
// once per node, bottom-up.
func Evaluate(n Node, variable string) (Node, error) {
	return Visit[Node](evaluator{variable: variable}, n)
}

func (e evaluator) VisitVariable(n *Variable) (Node, error) { return Var(n.Name), nil }
func (e evaluator) VisitNumber(n *Number) (Node, error)     { return Num(n.Value), nil }

func (e evaluator) VisitPending(n *PendingDerivative) (Node, error) {
	v, err := ResolveMarker(n.Target, e.variable)
	if err != nil {
		return nil, err
	}
	return Num(v), nil
}

// ResolveMarker returns the derivative of an atom: 1 for the variable
// itself, 0 for any other variable or number.
func ResolveMarker(target Node, variable string) (float64, error) {
	switch t := target.(type) {
	case *Variable:
		if t.Name == variable {
			return 1, nil
		}
		return 0, nil
	case *Number:
		return 0, nil
	}
	return 0, &DerivationIncompleteError{Target: Print(target)}
}

func (e evaluator) VisitBinary(n *BinaryOp) (Node, error) {
	left, err := Visit[Node](e, n.Left)
	if err != nil {
		return nil, err
	}
	right, err := Visit[Node](e, n.Right)
	if err != nil {
		return nil, err
	}
	l, lok := left.(*Number)
	r, rok := right.(*Number)
	if lok && rok {
		v, err := fold(n.Op, l.Value, r.Value)
		if err != nil {
			return nil, err
		}
		return Num(v), nil
	}
	return simplify(n.Op, left, right), nil
}

func fold(op Operator, a, b float64) (float64, error) {
	var v float64
	switch op {
	case OpAdd:
		v = a + b
	case OpSubtract:
		v = a - b
	case OpMultiply:
		v = a * b
	case OpDivide:
		if b == 0 {
			return 0, &NumericError{Op: op, Left: a, Right: b}
		}
		v = a / b
	case OpPower:
		v = math.Pow(a, b)
	default:
		return 0, &UnsupportedError{Pass: "evaluate", Op: op}
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, &NumericError{Op: op, Left: a, Right: b}
	}
	return v, nil
}

func simplify(op Operator, left, right Node) Node {
	switch op {
	case OpPower:
		if isNumber(right, 1) {
			return left
		}
		if isNumber(right, 0) {
			return Num(1)
		}
	case OpMultiply:
		if isNumber(left, 0) || isNumber(right, 0) {
			return Num(0)
		}
		if isNumber(left, 1) {
			return right
		}
		if isNumber(right, 1) {
			return left
		}
	case OpAdd:
		if isNumber(left, 0) {
			return right
		}
		if isNumber(right, 0) {
			return left
		}
	case OpSubtract:
		if isNumber(right, 0) {
			return left
		}
	case OpDivide:
		if isNumber(right, 1) {
			return left
		}
		if isNumber(left, 0) {
			return Num(0)
		}
	}
	return Bin(left, op, right)
}
