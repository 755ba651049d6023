package minimaple

import (
	"math"
	"sort"
	"strings"
)

// ============================================================
// Term model
// ============================================================

// VariableKey identifies one factor of a term: either an Atom (a variable
// name) or a Composite (a whole term list used as an opaque base, such as
// the x+5 in (x+5)^-1).
type VariableKey interface {
	isKey()
	canonical() string
}

type Atom string

type Composite []Term

func (Atom) isKey()      {}
func (Composite) isKey() {}

func (a Atom) canonical() string { return string(a) }

// canonical renders the regrouped terms in signature order, so composites
// that differ only in term order or in unmerged like terms compare equal.
func (c Composite) canonical() string {
	grouped := Group(c)
	parts := make([]string, len(grouped))
	for i, t := range grouped {
		parts[i] = formatNumber(t.Coefficient) + "*" + Signature(t)
	}
	sort.Strings(parts)
	return "(" + strings.Join(parts, "+") + ")"
}

// SameKey reports whether a and b denote the same factor base.
func SameKey(a, b VariableKey) bool {
	return a.canonical() == b.canonical()
}

// Factor is a key raised to an exponent.
type Factor struct {
	Key      VariableKey
	Exponent float64
}

// Term is a monomial: Coefficient times the product of its factors. Each
// key appears at most once and no exponent is zero.
type Term struct {
	Coefficient float64
	Factors     []Factor
}

// NewTerm builds a term, merging factors that share a key.
func NewTerm(coefficient float64, factors ...Factor) Term {
	t := Term{Coefficient: coefficient, Factors: make([]Factor, 0, len(factors))}
	for _, f := range factors {
		t = t.withFactor(f)
	}
	return t
}

func (t Term) withFactor(f Factor) Term {
	out := Term{Coefficient: t.Coefficient, Factors: make([]Factor, 0, len(t.Factors)+1)}
	merged := false
	for _, g := range t.Factors {
		if !merged && SameKey(g.Key, f.Key) {
			merged = true
			g.Exponent += f.Exponent
		}
		if g.Exponent != 0 {
			out.Factors = append(out.Factors, g)
		}
	}
	if !merged && f.Exponent != 0 {
		out.Factors = append(out.Factors, f)
	}
	return out
}

// Mul multiplies two terms, summing exponents of shared keys.
func (t Term) Mul(o Term) Term {
	out := Term{Coefficient: t.Coefficient * o.Coefficient, Factors: append([]Factor(nil), t.Factors...)}
	for _, f := range o.Factors {
		out = out.withFactor(f)
	}
	if out.Factors == nil {
		out.Factors = []Factor{}
	}
	return out
}

// Neg returns t with its coefficient negated.
func (t Term) Neg() Term {
	return Term{Coefficient: -t.Coefficient, Factors: append([]Factor{}, t.Factors...)}
}

// Pow raises a monomial to exp.
func (t Term) Pow(exp float64) (Term, error) {
	c := math.Pow(t.Coefficient, exp)
	if math.IsInf(c, 0) || math.IsNaN(c) {
		return Term{}, &NumericError{Op: OpPower, Left: t.Coefficient, Right: exp}
	}
	out := Term{Coefficient: c, Factors: make([]Factor, 0, len(t.Factors))}
	for _, f := range t.Factors {
		out.Factors = append(out.Factors, Factor{Key: f.Key, Exponent: f.Exponent * exp})
	}
	return out, nil
}

// Signature is the like-term key of t: its sorted key^exponent pairs joined
// with "*", or "constant" when t has no factors.
func Signature(t Term) string {
	if len(t.Factors) == 0 {
		return "constant"
	}
	pairs := make([]string, len(t.Factors))
	for i, f := range t.Factors {
		pairs[i] = f.Key.canonical() + "^" + formatNumber(f.Exponent)
	}
	sort.Strings(pairs)
	return strings.Join(pairs, "*")
}

func (t Term) String() string {
	if len(t.Factors) == 0 {
		return formatNumber(t.Coefficient)
	}
	parts := make([]string, len(t.Factors))
	for i, f := range t.Factors {
		parts[i] = factorString(f)
	}
	body := strings.Join(parts, "*")
	switch t.Coefficient {
	case 1:
		return body
	case -1:
		return "-" + body
	}
	return formatNumber(t.Coefficient) + "*" + body
}

func factorString(f Factor) string {
	var base string
	switch k := f.Key.(type) {
	case Atom:
		base = string(k)
	case Composite:
		base = "(" + FormatTerms(k) + ")"
	}
	if f.Exponent == 1 {
		return base
	}
	return base + "^" + formatNumber(f.Exponent)
}

// FormatTerms renders a term list as a signed sum.
func FormatTerms(terms []Term) string {
	if len(terms) == 0 {
		return "0"
	}
	var b strings.Builder
	b.WriteString(terms[0].String())
	for _, t := range terms[1:] {
		if t.Coefficient < 0 {
			b.WriteString("-")
			t = t.Neg()
		} else {
			b.WriteString("+")
		}
		b.WriteString(t.String())
	}
	return b.String()
}

// ============================================================
// Decomposer
// ============================================================

type decomposer struct {
	BaseVisitor[[]Term]
}

// Decompose flattens a distributed, division-free tree into monomials.
// Division must have been rewritten with RemoveDivision first.
func Decompose(n Node) ([]Term, error) {
	return Visit[[]Term](decomposer{BaseVisitor[[]Term]{Pass: "decompose"}}, n)
}

func (d decomposer) VisitNumber(n *Number) ([]Term, error) {
	return []Term{NewTerm(n.Value)}, nil
}

func (d decomposer) VisitVariable(n *Variable) ([]Term, error) {
	return []Term{NewTerm(1, Factor{Key: Atom(n.Name), Exponent: 1})}, nil
}

func (d decomposer) VisitBinary(n *BinaryOp) ([]Term, error) {
	left, err := Visit[[]Term](d, n.Left)
	if err != nil {
		return nil, err
	}
	if n.Op == OpPower {
		exp, ok := n.Right.(*Number)
		if !ok {
			return nil, &UnsupportedError{Pass: "decompose", Op: n.Op}
		}
		return powerTerms(left, exp.Value)
	}

	right, err := Visit[[]Term](d, n.Right)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case OpAdd:
		return append(left, right...), nil
	case OpSubtract:
		out := left
		for _, t := range right {
			out = append(out, t.Neg())
		}
		return out, nil
	case OpMultiply:
		out := make([]Term, 0, len(left)*len(right))
		for _, l := range left {
			for _, r := range right {
				out = append(out, l.Mul(r))
			}
		}
		return out, nil
	}
	return nil, &UnsupportedError{Pass: "decompose", Op: n.Op}
}

// powerTerms raises a decomposed base to exp. A base that groups to one
// monomial is raised directly; anything else becomes a composite key.
func powerTerms(base []Term, exp float64) ([]Term, error) {
	grouped := Group(base)
	switch len(grouped) {
	case 0:
		if exp > 0 {
			return []Term{}, nil
		}
		return nil, &NumericError{Op: OpPower, Left: 0, Right: exp}
	case 1:
		t, err := grouped[0].Pow(exp)
		if err != nil {
			return nil, err
		}
		return []Term{t}, nil
	}
	return []Term{NewTerm(1, Factor{Key: Composite(grouped), Exponent: exp})}, nil
}

// ============================================================
// Grouper
// ============================================================

// Group merges like terms by summing coefficients. Composite keys are
// regrouped first so they compare at the same level as atoms. Terms whose
// coefficients cancel to zero are dropped. Distinct terms keep the order
// of their first occurrence.
func Group(terms []Term) []Term {
	index := make(map[string]int, len(terms))
	merged := make([]Term, 0, len(terms))
	for _, t := range terms {
		t = canonicalTerm(t)
		sig := Signature(t)
		if i, ok := index[sig]; ok {
			merged[i].Coefficient += t.Coefficient
			continue
		}
		index[sig] = len(merged)
		merged = append(merged, t)
	}

	out := make([]Term, 0, len(merged))
	for _, t := range merged {
		if t.Coefficient != 0 {
			out = append(out, t)
		}
	}
	return out
}

func canonicalTerm(t Term) Term {
	out := Term{Coefficient: t.Coefficient, Factors: make([]Factor, 0, len(t.Factors))}
	for _, f := range t.Factors {
		if c, ok := f.Key.(Composite); ok {
			f = Factor{Key: Composite(Group(c)), Exponent: f.Exponent}
		}
		out = out.withFactor(f)
	}
	return out
}

// ============================================================
// Converter
// ============================================================

// ToAST rebuilds an expression from a term list. Terms after the first are
// joined with + or, for negative coefficients, with - and the absolute
// coefficient.
func ToAST(terms []Term) Node {
	if len(terms) == 0 {
		return Num(0)
	}
	result := termNode(terms[0])
	for _, t := range terms[1:] {
		if t.Coefficient > 0 {
			result = AddOf(result, termNode(t))
		} else {
			result = SubOf(result, termNode(t.Neg()))
		}
	}
	return result
}

func termNode(t Term) Node {
	var result Node = Num(t.Coefficient)
	for _, f := range t.Factors {
		var base Node
		switch k := f.Key.(type) {
		case Atom:
			base = Var(string(k))
		case Composite:
			base = ToAST(k)
		}
		if f.Exponent != 1 {
			base = PowOf(base, f.Exponent)
		}
		result = MulOf(result, base)
	}
	return result
}
