package minimaple

import (
	"go.uber.org/zap"
)

// DefaultMaxIterations adds no cap: the derivation loop is bounded by the
// depth of the tree alone.
const DefaultMaxIterations = 0

// Options configures a Differentiator.
type Options struct {
	// MaxIterations caps the derivation loop below its structural bound
	// of Depth(tree)+1 iterations. Zero or less adds no cap.
	MaxIterations int
	Logger        *zap.Logger
	Sink          Sink
	// RestoreDivision rewrites negative powers back into quotients
	// before the final simplification.
	RestoreDivision bool
}

// Option mutates Options.
type Option func(*Options)

func DefaultOptions() Options {
	return Options{
		MaxIterations:   DefaultMaxIterations,
		Logger:          zap.NewNop(),
		Sink:            NopSink{},
		RestoreDivision: true,
	}
}

func WithMaxIterations(n int) Option {
	return func(o *Options) { o.MaxIterations = n }
}

func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

func WithSink(s Sink) Option {
	return func(o *Options) {
		if s != nil {
			o.Sink = s
		}
	}
}

func WithoutDivisionRestore() Option {
	return func(o *Options) { o.RestoreDivision = false }
}
