package kinematic

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/kinroute/schedule"
)

// Solver routes one sub-step of discharge through a scheduled network.
// A Solver holds no per-solve state and may be reused for any number of
// sub-steps, but Solve must not be called concurrently on the same slices.
type Solver struct {
	g      Graph
	order  *schedule.Order
	params *Parameters
	opts   options
}

// NewSolver binds a network, its routing order and its parameters.
// Returns ErrNilOrder for nil inputs and ErrShape if the three disagree on the
// number of pixels.
func NewSolver(g Graph, o *schedule.Order, p *Parameters, opts ...Option) (*Solver, error) {
	if g == nil || o == nil || p == nil {
		return nil, ErrNilOrder
	}
	if o.Len() != g.Len() || p.Len() != g.Len() {
		return nil, fmt.Errorf("%w: graph %d, order %d, parameters %d", ErrShape, g.Len(), o.Len(), p.Len())
	}
	s := &Solver{g: g, order: o, params: p, opts: defaultOptions()}
	for _, opt := range opts {
		opt(&s.opts)
	}
	s.opts.log = s.opts.log.WithName("solver")
	return s, nil
}

// Parameters returns the parameters in use.
func (s *Solver) Parameters() *Parameters {
	return s.params
}

// SetParameters swaps the parameters, for instance after a change of dt.
func (s *Solver) SetParameters(p *Parameters) error {
	if p == nil {
		return ErrNilOrder
	}
	if p.Len() != s.g.Len() {
		return fmt.Errorf("%w: parameters %d, graph %d", ErrShape, p.Len(), s.g.Len())
	}
	s.params = p
	return nil
}

// Order returns the routing order the solver walks.
func (s *Solver) Order() *schedule.Order {
	return s.order
}

// Solve advances q by one sub-step. On entry q holds the discharge at the end
// of the previous sub-step; on return it holds the new discharge. lateral is
// the lateral inflow rate per unit channel length for this sub-step and is
// not modified.
//
// Waves run in order with a barrier between them. Within a wave, pixels are
// split into contiguous chunks solved concurrently; each pixel writes only its
// own slot of q and reads only slots of earlier waves, so results do not
// depend on the worker count.
//
// ctx is checked before each wave. On cancellation q is partially updated and
// the returned Stats cover the waves that completed.
func (s *Solver) Solve(ctx context.Context, q, lateral []float64) (Stats, error) {
	n := s.g.Len()
	if len(q) != n || len(lateral) != n {
		return Stats{Worst: -1}, fmt.Errorf("%w: q %d, lateral %d, want %d", ErrShape, len(q), len(lateral), n)
	}

	total := Stats{Worst: -1}
	for i, wave := range s.order.Waves() {
		if err := ctx.Err(); err != nil {
			return total, fmt.Errorf("kinematic: stopped before wave %d: %w", i, err)
		}
		total.Merge(s.solveWave(q, lateral, wave))
	}

	if total.NonConverged > 0 {
		s.opts.log.V(1).Info("newton iteration cap reached",
			"pixels", total.NonConverged,
			"maxIterations", s.opts.maxIter,
			"worst", total.Worst,
			"residual", total.MaxResidual)
	}
	return total, nil
}

// solveWave solves one wave, fanning out over at most opts.workers goroutines.
func (s *Solver) solveWave(q, lateral []float64, wave []int) Stats {
	chunks := len(wave) / s.opts.minChunk
	if chunks > s.opts.workers {
		chunks = s.opts.workers
	}
	if chunks <= 1 {
		return s.solveChunk(q, lateral, wave)
	}

	// Rounding size up can leave trailing chunks empty; recount so every
	// chunk starts inside the wave.
	size := (len(wave) + chunks - 1) / chunks
	chunks = (len(wave) + size - 1) / size
	parts := make([]Stats, chunks)
	var grp errgroup.Group
	grp.SetLimit(s.opts.workers)
	for c := 0; c < chunks; c++ {
		c := c
		lo := c * size
		hi := min(lo+size, len(wave))
		grp.Go(func() error {
			parts[c] = s.solveChunk(q, lateral, wave[lo:hi])
			return nil
		})
	}
	_ = grp.Wait() // barrier; chunks never fail

	out := Stats{Worst: -1}
	for _, part := range parts {
		out.Merge(part)
	}
	return out
}

// solveChunk solves the given pixels sequentially.
func (s *Solver) solveChunk(q, lateral []float64, pixels []int) Stats {
	prm := s.params
	st := Stats{Worst: -1}
	for _, p := range pixels {
		a := prm.AlphaDxDt[p]
		beta := prm.Beta[p]

		c := prm.DxLateral[p]*lateral[p] + a*powZero(q[p], beta)
		for _, u := range s.g.Upstream(p) {
			c += q[u]
		}

		r := SolvePixel(c, a, beta, s.opts.tol, s.opts.maxIter)
		q[p] = r.Q

		st.Merge(Stats{Pixels: 1, Iterations: r.Iterations, NonConverged: nonConverged(r), MaxResidual: r.Residual, Worst: p})
	}
	return st
}

func nonConverged(r Result) int {
	if r.Converged {
		return 0
	}
	return 1
}

// Residual returns the largest |Q + a*Q^beta - C| over q, recomputing C from
// prev and lateral. It is a diagnostic for tests and debugging and does not
// modify its arguments.
func (s *Solver) Residual(prev, q, lateral []float64) (float64, error) {
	n := s.g.Len()
	if len(prev) != n || len(q) != n || len(lateral) != n {
		return 0, fmt.Errorf("%w: prev %d, q %d, lateral %d, want %d", ErrShape, len(prev), len(q), len(lateral), n)
	}
	prm := s.params
	worst := 0.0
	for p := 0; p < n; p++ {
		a := prm.AlphaDxDt[p]
		beta := prm.Beta[p]
		c := prm.DxLateral[p]*lateral[p] + a*powZero(prev[p], beta)
		for _, u := range s.g.Upstream(p) {
			c += q[u]
		}
		worst = math.Max(worst, math.Abs(q[p]+a*powZero(q[p], beta)-c))
	}
	return worst, nil
}
