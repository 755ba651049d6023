package minimaple

import (
	"fmt"
)

type latexPrinter struct {
	min int
}

// LaTeX renders n for display. Quotients become \frac, powers use braced
// exponents and a pending derivative is a parenthesized target with a prime.
func LaTeX(n Node) string {
	s, err := Visit[string](latexPrinter{}, n)
	if err != nil {
		return fmt.Sprintf(`\text{%v}`, err)
	}
	return s
}

func (p latexPrinter) VisitBinary(n *BinaryOp) (string, error) {
	switch n.Op {
	case OpDivide:
		num, err := Visit[string](latexPrinter{}, n.Left)
		if err != nil {
			return "", err
		}
		den, err := Visit[string](latexPrinter{}, n.Right)
		if err != nil {
			return "", err
		}
		return p.wrap(`\frac{`+num+`}{`+den+`}`, precPower), nil
	case OpPower:
		base, err := Visit[string](latexPrinter{min: precAtom}, n.Left)
		if err != nil {
			return "", err
		}
		exp, err := Visit[string](latexPrinter{}, n.Right)
		if err != nil {
			return "", err
		}
		return p.wrap(base+`^{`+exp+`}`, precPower), nil
	}

	prec := n.Op.Precedence()
	if negation(n) {
		right, err := Visit[string](latexPrinter{min: prec}, n.Right)
		if err != nil {
			return "", err
		}
		return p.wrap("-"+right, prec), nil
	}
	left, err := Visit[string](latexPrinter{min: prec}, n.Left)
	if err != nil {
		return "", err
	}
	right, err := Visit[string](latexPrinter{min: prec + 1}, n.Right)
	if err != nil {
		return "", err
	}
	sym := " " + n.Op.Symbol() + " "
	if n.Op == OpMultiply {
		sym = ` \cdot `
	}
	return p.wrap(left+sym+right, prec), nil
}

// wrap parenthesizes s when an expression binding at prec sits where p.min
// is required. A fraction only needs this as the base of a power.
func (p latexPrinter) wrap(s string, prec int) string {
	if prec < p.min {
		return `\left(` + s + `\right)`
	}
	return s
}

func (p latexPrinter) VisitVariable(n *Variable) (string, error) { return n.Name, nil }
func (p latexPrinter) VisitNumber(n *Number) (string, error)     { return formatNumber(n.Value), nil }

func (p latexPrinter) VisitPending(n *PendingDerivative) (string, error) {
	inner, err := Visit[string](latexPrinter{}, n.Target)
	if err != nil {
		return "", err
	}
	return `\left(` + inner + `\right)'`, nil
}
