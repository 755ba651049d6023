package minimaple

import (
	"strconv"
)

// ============================================================
// Operators
// ============================================================

// Operator is a binary arithmetic operator.
type Operator int

const (
	OpAdd Operator = iota
	OpSubtract
	OpMultiply
	OpDivide
	OpPower
)

// Precedence levels. Leaves and pending derivatives bind tightest.
const (
	precAdditive       = 2
	precMultiplicative = 3
	precPower          = 4
	precAtom           = 5
)

var operatorSymbols = [...]string{
	OpAdd:      "+",
	OpSubtract: "-",
	OpMultiply: "*",
	OpDivide:   "/",
	OpPower:    "^",
}

func (op Operator) Symbol() string {
	if op >= 0 && int(op) < len(operatorSymbols) {
		return operatorSymbols[op]
	}
	return "?"
}

func (op Operator) String() string { return op.Symbol() }

func (op Operator) Precedence() int {
	switch op {
	case OpAdd, OpSubtract:
		return precAdditive
	case OpMultiply, OpDivide:
		return precMultiplicative
	case OpPower:
		return precPower
	}
	return precAtom
}

func (op Operator) additive() bool { return op == OpAdd || op == OpSubtract }

// OperatorFromSymbol maps "+", "-", "*", "/" and "^" to their operator.
func OperatorFromSymbol(sym string) (Operator, bool) {
	for op, s := range operatorSymbols {
		if s == sym {
			return Operator(op), true
		}
	}
	return 0, false
}

// ============================================================
// Nodes
// ============================================================

// Node is an expression tree node. The set of variants is closed:
// *BinaryOp, *Variable, *Number and *PendingDerivative.
type Node interface {
	node()
	String() string
}

// BinaryOp applies Op to Left and Right. It owns both children.
type BinaryOp struct {
	Left  Node
	Op    Operator
	Right Node
}

// Variable is a named symbol.
type Variable struct {
	Name string
}

// Number is a numeric literal.
type Number struct {
	Value float64
}

// PendingDerivative marks the derivative of Target as not yet resolved.
type PendingDerivative struct {
	Target Node
}

func (*BinaryOp) node()          {}
func (*Variable) node()          {}
func (*Number) node()            {}
func (*PendingDerivative) node() {}

func (n *BinaryOp) String() string          { return Print(n) }
func (n *Variable) String() string          { return n.Name }
func (n *Number) String() string            { return formatNumber(n.Value) }
func (n *PendingDerivative) String() string { return Print(n) }

func Var(name string) *Variable              { return &Variable{Name: name} }
func Num(v float64) *Number                  { return &Number{Value: v} }
func Pending(target Node) *PendingDerivative { return &PendingDerivative{Target: target} }

func Bin(left Node, op Operator, right Node) *BinaryOp {
	return &BinaryOp{Left: left, Op: op, Right: right}
}

func AddOf(l, r Node) *BinaryOp { return Bin(l, OpAdd, r) }
func SubOf(l, r Node) *BinaryOp { return Bin(l, OpSubtract, r) }
func MulOf(l, r Node) *BinaryOp { return Bin(l, OpMultiply, r) }
func DivOf(l, r Node) *BinaryOp { return Bin(l, OpDivide, r) }

// PowOf raises base to a literal exponent.
func PowOf(base Node, exp float64) *BinaryOp { return Bin(base, OpPower, Num(exp)) }

// ============================================================
// Structural helpers
// ============================================================

// Equal reports whether a and b are structurally identical trees.
func Equal(a, b Node) bool {
	switch x := a.(type) {
	case *BinaryOp:
		y, ok := b.(*BinaryOp)
		return ok && x.Op == y.Op && Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	case *Variable:
		y, ok := b.(*Variable)
		return ok && x.Name == y.Name
	case *Number:
		y, ok := b.(*Number)
		return ok && x.Value == y.Value
	case *PendingDerivative:
		y, ok := b.(*PendingDerivative)
		return ok && Equal(x.Target, y.Target)
	case nil:
		return b == nil
	}
	return false
}

// Clone returns a deep copy of n.
func Clone(n Node) Node {
	switch x := n.(type) {
	case *BinaryOp:
		return Bin(Clone(x.Left), x.Op, Clone(x.Right))
	case *Variable:
		return Var(x.Name)
	case *Number:
		return Num(x.Value)
	case *PendingDerivative:
		return Pending(Clone(x.Target))
	}
	return n
}

// Depth returns the number of nodes on the longest root-to-leaf path.
func Depth(n Node) int {
	switch x := n.(type) {
	case *BinaryOp:
		return 1 + max(Depth(x.Left), Depth(x.Right))
	case *PendingDerivative:
		return 1 + Depth(x.Target)
	case nil:
		return 0
	}
	return 1
}

func precedence(n Node) int {
	if b, ok := n.(*BinaryOp); ok {
		return b.Op.Precedence()
	}
	return precAtom
}

func isNumber(n Node, v float64) bool {
	num, ok := n.(*Number)
	return ok && num.Value == v
}

func formatNumber(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
