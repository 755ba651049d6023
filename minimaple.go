// Package minimaple differentiates single-variable algebraic expressions
// and reduces the derivative to a simplified polynomial form.
//
// The pipeline behaves like a small compiler:
//   - text is lexed and parsed into an expression tree
//   - products and integer powers are distributed
//   - derivative markers are pushed one layer deeper per iteration until
//     the tree stops changing
//   - markers on atoms are resolved and constants are folded
//   - the result is flattened into monomials, like terms are merged, and
//     a fresh tree is rebuilt and printed
//
// Each stage can be observed through a Sink. A Differentiator holds no
// per-call state and may be shared between goroutines.
package minimaple

import (
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// Result is the outcome of a successful differentiation.
type Result struct {
	Input    string
	Variable string
	Node     Node
	Text     string
	LaTeX    string
	Steps    []Step
	// Iterations is the number of derivation depths tried before the
	// tree reached a fixed point.
	Iterations int
}

// Differentiator runs the differentiation pipeline.
type Differentiator struct {
	opts Options
}

func New(opts ...Option) *Differentiator {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Differentiator{opts: o}
}

// Differentiate returns the simplified derivative of text with respect to
// variable using default options.
func Differentiate(text, variable string) (string, error) {
	return New().Differentiate(text, variable)
}

func (d *Differentiator) Differentiate(text, variable string) (string, error) {
	res, err := d.DifferentiateSteps(text, variable)
	if err != nil {
		return "", err
	}
	return res.Text, nil
}

// DifferentiateSteps is Differentiate with the final tree and every
// intermediate step. Any failure is returned as a *DifferentiationError
// wrapping the stage error.
func (d *Differentiator) DifferentiateSteps(text, variable string) (*Result, error) {
	r := &run{
		opts:     d.opts,
		log:      d.opts.Logger.With(zap.String("variable", variable)),
		variable: variable,
		result:   &Result{Input: text, Variable: variable},
	}
	node, err := r.pipeline(text)
	if err != nil {
		r.log.Debug("differentiation failed", zap.String("input", text), zap.Error(err))
		return nil, &DifferentiationError{Input: text, Variable: variable, cause: err}
	}
	r.result.Node = node
	r.result.Text = Print(node)
	r.result.LaTeX = LaTeX(node)
	return r.result, nil
}

// run is the state of a single differentiation.
type run struct {
	opts     Options
	log      *zap.Logger
	variable string
	result   *Result
}

func (r *run) pipeline(text string) (Node, error) {
	if !validVariable(r.variable) {
		return nil, errors.Wrapf(ErrInvalidVariable, "%q", r.variable)
	}

	ast, err := NewParser().Parse(text)
	if err != nil {
		return nil, err
	}
	r.emit(StageParse, 0, ast)

	if ast, err = Distribute(ast); err != nil {
		return nil, err
	}
	r.emit(StageDistribute, 0, ast)

	if ast, err = r.deriveToFixedPoint(ast); err != nil {
		return nil, err
	}

	if ast, err = Evaluate(ast, r.variable); err != nil {
		return nil, err
	}
	r.emit(StageEvaluate, 0, ast)

	if ast, err = Distribute(ast); err != nil {
		return nil, err
	}
	r.emit(StageExpand, 0, ast)

	if ast, err = RemoveDivision(ast); err != nil {
		return nil, err
	}
	r.emit(StageRemoveDivision, 0, ast)

	terms, err := Decompose(ast)
	if err != nil {
		return nil, err
	}
	terms = Group(terms)
	composed := ToAST(terms)
	r.record(Step{Stage: StageGroup, Text: FormatTerms(terms), LaTeX: LaTeX(composed)})

	ast = composed
	r.emit(StageCompose, 0, ast)

	if r.opts.RestoreDivision {
		ast = RestoreDivision(ast)
		r.emit(StageRestoreDivision, 0, ast)
	}

	if ast, err = Evaluate(ast, r.variable); err != nil {
		return nil, err
	}
	r.emit(StageSimplify, 0, ast)
	return ast, nil
}

// deriveToFixedPoint derives ast at depths 1, 2, ... until two successive
// trees are structurally equal.
func (r *run) deriveToFixedPoint(ast Node) (Node, error) {
	bound := Depth(ast) + 1
	if limit := r.opts.MaxIterations; limit > 0 && limit < bound {
		bound = limit
	}

	var prev Node
	for depth := 1; depth <= bound; depth++ {
		cur, err := Derive(ast, depth)
		if err != nil {
			return nil, err
		}
		r.emit(StageDerive, depth, cur)
		r.result.Iterations = depth
		if prev != nil && Equal(prev, cur) {
			return cur, nil
		}
		prev = cur
	}
	return nil, &IterationLimitError{Limit: bound}
}

func (r *run) emit(stage Stage, depth int, n Node) {
	r.record(Step{Stage: stage, Depth: depth, Text: Print(n), LaTeX: LaTeX(n)})
}

func (r *run) record(s Step) {
	if ce := r.log.Check(zap.DebugLevel, "stage"); ce != nil {
		ce.Write(zap.String("stage", string(s.Stage)), zap.Int("depth", s.Depth), zap.String("expr", s.Text))
	}
	r.result.Steps = append(r.result.Steps, s)
	r.opts.Sink.Record(s)
}
