package minimaple

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Stage names one step of the differentiation pipeline.
type Stage string

const (
	StageParse           Stage = "parse"
	StageDistribute      Stage = "distribute"
	StageDerive          Stage = "derive"
	StageEvaluate        Stage = "evaluate"
	StageExpand          Stage = "expand"
	StageRemoveDivision  Stage = "remove-division"
	StageGroup           Stage = "group"
	StageCompose         Stage = "compose"
	StageRestoreDivision Stage = "restore-division"
	StageSimplify        Stage = "simplify"
)

// Step is the state of the expression after one stage. Depth is the
// derivation depth for StageDerive and zero otherwise.
type Step struct {
	Stage Stage  `json:"stage"`
	Depth int    `json:"depth,omitempty"`
	Text  string `json:"text"`
	LaTeX string `json:"latex"`
}

func (s Step) String() string {
	if s.Stage == StageDerive {
		return fmt.Sprintf("%s(%d): %s", s.Stage, s.Depth, s.Text)
	}
	return fmt.Sprintf("%s: %s", s.Stage, s.Text)
}

// Sink receives pipeline steps in stage order. A Sink shared between
// concurrent differentiations must be safe for concurrent use.
type Sink interface {
	Record(Step)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Step)

func (f SinkFunc) Record(s Step) { f(s) }

// NopSink discards every step.
type NopSink struct{}

func (NopSink) Record(Step) {}

// Recorder keeps every step in memory.
type Recorder struct {
	mu    sync.Mutex
	steps []Step
}

func (r *Recorder) Record(s Step) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.steps = append(r.steps, s)
}

// Steps returns a copy of the recorded steps.
func (r *Recorder) Steps() []Step {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Step(nil), r.steps...)
}

// Strings returns the recorded steps rendered with Step.String.
func (r *Recorder) Strings() []string {
	steps := r.Steps()
	out := make([]string, len(steps))
	for i, s := range steps {
		out[i] = s.String()
	}
	return out
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.steps = nil
}

// ZapSink logs every step at Info level.
type ZapSink struct {
	Logger *zap.Logger
}

func (z ZapSink) Record(s Step) {
	z.Logger.Info("step",
		zap.String("stage", string(s.Stage)),
		zap.Int("depth", s.Depth),
		zap.String("expr", s.Text),
	)
}
