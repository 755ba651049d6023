package minimaple_test

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	m "github.com/njchilds90/minimaple"
)

func mustParse(t *testing.T, in string) m.Node {
	t.Helper()
	n, err := m.Parse(in)
	require.NoError(t, err, in)
	return n
}

// ============================================================
// AST helpers
// ============================================================

func TestEqualCloneDepth(t *testing.T) {
	a := mustParse(t, "x*(y+2)^3")
	b := m.Clone(a)
	require.True(t, m.Equal(a, b))
	require.Equal(t, 4, m.Depth(a))

	b.(*m.BinaryOp).Left = m.Var("z")
	require.False(t, m.Equal(a, b))
	require.Equal(t, "x*(y+2)^3", m.Print(a))

	require.False(t, m.Equal(m.Var("x"), m.Num(1)))
	require.False(t, m.Equal(m.Pending(m.Var("x")), m.Var("x")))
	require.True(t, m.Equal(m.Pending(m.Var("x")), m.Pending(m.Var("x"))))
	require.Equal(t, 2, m.Depth(m.Pending(m.Var("x"))))
}

func TestOperatorFromSymbol(t *testing.T) {
	for _, sym := range []string{"+", "-", "*", "/", "^"} {
		op, ok := m.OperatorFromSymbol(sym)
		require.True(t, ok)
		require.Equal(t, sym, op.Symbol())
	}
	_, ok := m.OperatorFromSymbol("%")
	require.False(t, ok)
	require.Greater(t, m.OpPower.Precedence(), m.OpDivide.Precedence())
	require.Equal(t, m.OpMultiply.Precedence(), m.OpDivide.Precedence())
	require.Greater(t, m.OpMultiply.Precedence(), m.OpSubtract.Precedence())
}

func TestVisit_NilNode(t *testing.T) {
	_, err := m.Distribute(nil)
	require.Error(t, err)
	require.True(t, errors.IsAssertionFailure(err))
}

// ============================================================
// Distribute
// ============================================================

func TestDistribute(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want string
	}{
		{"a*(b+c)", "a*b+a*c"},
		{"(a+b)*c", "a*c+b*c"},
		{"(a-b)*(c-d)", "a*c-a*d-(b*c-b*d)"},
		{"x^3", "x*x*x"},
		{"x^1", "x"},
		{"x^0", "x^0"},
		{"x^-2", "x^-2"},
		{"x^0.5", "x^0.5"},
		{"x^11", "x^11"},
		{"2*(x+1)/(y-1)", "(2*x+2*1)/(y-1)"},
		{"x/(x+1)^2", "x/(x+1)^2"},
		{"(x+1)^2/(y*(y+1)^3)", "(x*x+x*1+(1*x+1*1))/(y*(y+1)^3)"},
	} {
		got, err := m.Distribute(mustParse(t, tc.in))
		require.NoError(t, err)
		require.Equal(t, tc.want, m.Print(got), tc.in)
	}
}

func TestDistribute_DoesNotShareNodes(t *testing.T) {
	got, err := m.Distribute(mustParse(t, "(a+b)*c"))
	require.NoError(t, err)
	sum := got.(*m.BinaryOp)
	left := sum.Left.(*m.BinaryOp)
	right := sum.Right.(*m.BinaryOp)
	require.NotSame(t, left.Right, right.Right)
}

func TestDistribute_Pending(t *testing.T) {
	got, err := m.Distribute(m.Pending(mustParse(t, "x*(y+1)")))
	require.NoError(t, err)
	require.Equal(t, "(x*y+x*1)'", m.Print(got))
}

// ============================================================
// Derive
// ============================================================

func TestDerive_Rules(t *testing.T) {
	for _, tc := range []struct {
		in    string
		depth int
		want  string
	}{
		{"x+y", 1, "(x)'+(y)'"},
		{"x-y", 1, "(x)'-(y)'"},
		{"x*y", 1, "(x)'*y+x*(y)'"},
		{"x/y", 1, "((x)'*y-x*(y)')/y^2"},
		{"x^-1", 1, "-x^-2*(x)'"},
		{"x*y+z", 1, "(x*y)'+(z)'"},
		{"x*y+z", 2, "(x)'*y+x*(y)'+(z)'"},
		{"x", 5, "(x)'"},
		{"7", 0, "(7)'"},
	} {
		got, err := m.Derive(mustParse(t, tc.in), tc.depth)
		require.NoError(t, err)
		require.Equal(t, tc.want, m.Print(got), "%s at depth %d", tc.in, tc.depth)
	}
}

func TestDerive_FixedPoint(t *testing.T) {
	n := mustParse(t, "x*x+2*x")
	prev, err := m.Derive(n, m.Depth(n)-1)
	require.NoError(t, err)
	next, err := m.Derive(n, m.Depth(n))
	require.NoError(t, err)
	if diff := cmp.Diff(prev, next); diff != "" {
		t.Errorf("derivation did not settle (-prev +next):\n%s", diff)
	}
}

func TestDerive_Unsupported(t *testing.T) {
	n := m.Bin(m.Var("x"), m.OpPower, m.Var("y"))
	_, err := m.Derive(n, 1)
	var unsupported *m.UnsupportedError
	require.ErrorAs(t, err, &unsupported)
	require.Equal(t, m.OpPower, unsupported.Op)

	_, err = m.Derive(m.Pending(m.Var("x")), 1)
	var noRule *m.NoRuleError
	require.ErrorAs(t, err, &noRule)
	require.Equal(t, "derive", noRule.Pass)
}

// ============================================================
// Evaluate
// ============================================================

func TestEvaluate(t *testing.T) {
	for _, tc := range []struct {
		node m.Node
		want string
	}{
		{m.Pending(m.Var("x")), "1"},
		{m.Pending(m.Var("y")), "0"},
		{m.Pending(m.Num(3)), "0"},
		{mustParse(t, "2^3-1"), "7"},
		{mustParse(t, "x^1"), "x"},
		{mustParse(t, "x^0"), "1"},
		{mustParse(t, "1*x*1"), "x"},
		{mustParse(t, "0*x+y*0"), "0"},
		{mustParse(t, "0+x+0"), "x"},
		{mustParse(t, "x-0"), "x"},
		{mustParse(t, "0-x"), "0-x"},
		{mustParse(t, "0/x+x/1"), "x"},
		{m.MulOf(m.Pending(m.Var("x")), m.Var("y")), "y"},
	} {
		got, err := m.Evaluate(tc.node, "x")
		require.NoError(t, err)
		require.Equal(t, tc.want, m.Print(got))
	}
}

func TestEvaluate_Errors(t *testing.T) {
	_, err := m.Evaluate(m.Pending(mustParse(t, "x+1")), "x")
	var incomplete *m.DerivationIncompleteError
	require.ErrorAs(t, err, &incomplete)
	require.Equal(t, "x+1", incomplete.Target)

	_, err = m.Evaluate(mustParse(t, "x+1/0"), "x")
	var numErr *m.NumericError
	require.ErrorAs(t, err, &numErr)
	require.Equal(t, m.OpDivide, numErr.Op)
	require.EqualError(t, err, "numeric error: division by zero")

	_, err = m.Evaluate(mustParse(t, "0^-1"), "x")
	require.ErrorAs(t, err, &numErr)
	require.Equal(t, m.OpPower, numErr.Op)
	require.EqualError(t, err, "numeric error: 0^-1 is not finite")
}

func TestResolveMarker(t *testing.T) {
	v, err := m.ResolveMarker(m.Var("t"), "t")
	require.NoError(t, err)
	require.Equal(t, 1.0, v)

	v, err = m.ResolveMarker(m.Num(9), "t")
	require.NoError(t, err)
	require.Equal(t, 0.0, v)

	_, err = m.ResolveMarker(m.MulOf(m.Var("t"), m.Var("t")), "t")
	require.Error(t, err)
}
