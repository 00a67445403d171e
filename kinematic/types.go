package kinematic

import (
	"errors"
	"math"
	"runtime"

	"github.com/go-logr/logr"
)

const (
	// DefaultTolerance bounds |Q + a*Q^beta - C| at convergence.
	DefaultTolerance = 1e-12

	// DefaultMaxIterations caps Newton iterations per pixel.
	DefaultMaxIterations = 3000

	// MinDischarge is the floor applied after every Newton update. A result
	// at the floor is reported as exactly zero.
	MinDischarge = 1e-30

	// DefaultMinChunk is the smallest slice of a wave handed to a worker.
	DefaultMinChunk = 1024
)

var (
	// ErrShape indicates a slice whose length differs from the pixel count.
	ErrShape = errors.New("kinematic: slice length does not match pixel count")

	// ErrInvalidParameter indicates a channel coefficient that is NaN,
	// infinite or not strictly positive.
	ErrInvalidParameter = errors.New("kinematic: invalid channel parameter")

	// ErrNilOrder indicates a nil graph, order or parameter set.
	ErrNilOrder = errors.New("kinematic: nil graph, order or parameters")
)

// Graph is the upstream view of a drainage network. flowdir.Network
// satisfies it.
type Graph interface {
	Len() int
	Upstream(p int) []int
}

// Result is the outcome of one SolvePixel call.
type Result struct {
	Q          float64 // discharge at the end of the sub-step
	Iterations int     // Newton updates performed
	Residual   float64 // |Q + a*Q^beta - C| at Q
	Converged  bool    // false only when the iteration cap was reached
}

// Stats summarises one or more solves.
type Stats struct {
	Pixels       int     // pixels solved
	Iterations   int     // Newton updates over all pixels
	NonConverged int     // pixels that hit the iteration cap
	MaxResidual  float64 // largest final residual
	Worst        int     // pixel with MaxResidual, -1 if none solved
}

// Merge folds o into s. Ties on MaxResidual keep the smaller pixel id so the
// result does not depend on how a wave was split.
func (s *Stats) Merge(o Stats) {
	if o.Pixels == 0 {
		return
	}
	if s.Pixels == 0 || o.MaxResidual > s.MaxResidual ||
		(o.MaxResidual == s.MaxResidual && o.Worst < s.Worst) {
		s.MaxResidual = o.MaxResidual
		s.Worst = o.Worst
	}
	s.Pixels += o.Pixels
	s.Iterations += o.Iterations
	s.NonConverged += o.NonConverged
}

// Option configures a Solver.
type Option func(*options)

type options struct {
	tol      float64
	maxIter  int
	workers  int
	minChunk int
	log      logr.Logger
}

func defaultOptions() options {
	return options{
		tol:      DefaultTolerance,
		maxIter:  DefaultMaxIterations,
		workers:  runtime.GOMAXPROCS(0),
		minChunk: DefaultMinChunk,
		log:      logr.Discard(),
	}
}

// WithTolerance sets the residual tolerance. Panics if tol is not a positive
// finite number.
func WithTolerance(tol float64) Option {
	if !(tol > 0) || math.IsInf(tol, 0) {
		panic("kinematic: WithTolerance requires a positive finite tolerance")
	}
	return func(o *options) {
		o.tol = tol
	}
}

// WithMaxIterations sets the Newton iteration cap. Panics if n < 1.
func WithMaxIterations(n int) Option {
	if n < 1 {
		panic("kinematic: WithMaxIterations requires n >= 1")
	}
	return func(o *options) {
		o.maxIter = n
	}
}

// WithWorkers bounds the number of goroutines solving one wave.
// Panics if n < 1.
func WithWorkers(n int) Option {
	if n < 1 {
		panic("kinematic: WithWorkers requires n >= 1")
	}
	return func(o *options) {
		o.workers = n
	}
}

// WithMinChunk sets the smallest number of pixels given to one worker.
// Waves shorter than this run on the calling goroutine. Panics if n < 1.
func WithMinChunk(n int) Option {
	if n < 1 {
		panic("kinematic: WithMinChunk requires n >= 1")
	}
	return func(o *options) {
		o.minChunk = n
	}
}

// WithLogger sets the logger used to report non-converged solves.
func WithLogger(log logr.Logger) Option {
	return func(o *options) {
		o.log = log
	}
}
