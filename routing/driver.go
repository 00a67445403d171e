package routing

import (
	"context"
	"fmt"
	"time"

	"github.com/go-logr/logr"
	"github.com/google/uuid"

	"github.com/katalvlaran/kinroute/config"
	"github.com/katalvlaran/kinroute/flowdir"
	"github.com/katalvlaran/kinroute/kinematic"
	"github.com/katalvlaran/kinroute/schedule"
)

// defaultMaxReported applies when config.Routing.MaxReported is unset.
const defaultMaxReported = 16

// Driver advances the discharge of one network through time. It is not safe
// for concurrent use; the solver parallelises inside each sub-step.
type Driver struct {
	net     *flowdir.Network
	cfg     config.Routing
	geom    kinematic.Geometry
	order   *schedule.Order
	solver  *kinematic.Solver
	params  map[int]*kinematic.Parameters // keyed by sub-step count
	outlets []int

	q       []float64
	lateral []float64
	pending []float64

	started bool
	steps   int
	stats   kinematic.Stats

	runID uuid.UUID
	log   logr.Logger
	opts  options
}

// New builds a driver for net. Channel parameters come from params and the
// sub-step length from cfg. Parameters are validated here so that no solve
// ever sees a bad coefficient. Discharge starts at zero.
func New(net *flowdir.Network, params ParameterSource, cfg config.Routing, opts ...Option) (*Driver, error) {
	if net == nil || params == nil {
		return nil, ErrNilArgument
	}
	if !(cfg.TimeStep > 0) || cfg.SubSteps < 1 {
		return nil, fmt.Errorf("%w: time step %v, sub-steps %d", ErrInvalidParameter, cfg.TimeStep, cfg.SubSteps)
	}
	if cfg.MaxReported < 1 {
		cfg.MaxReported = defaultMaxReported
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	geom, err := params.ChannelGeometry(net)
	if err != nil {
		return nil, fmt.Errorf("routing: channel geometry: %w", err)
	}
	p, err := kinematic.NewParameters(geom, cfg.TimeStep/float64(cfg.SubSteps))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParameter, err)
	}

	n := net.Len()
	d := &Driver{
		net:     net,
		cfg:     cfg,
		geom:    geom,
		params:  map[int]*kinematic.Parameters{cfg.SubSteps: p},
		q:       make([]float64, n),
		lateral: make([]float64, n),
		pending: make([]float64, n),
		stats:   kinematic.Stats{Worst: -1},
		runID:   uuid.New(),
		opts:    o,
	}
	d.log = o.log.WithName("routing").WithValues("run", d.runID.String())
	if err := d.rebuild(p); err != nil {
		return nil, err
	}
	return d, nil
}

// rebuild derives the routing order and solver from d.net.
func (d *Driver) rebuild(p *kinematic.Parameters) error {
	var sopts []schedule.Option
	if d.cfg.Solver.SortedWaves {
		sopts = append(sopts, schedule.WithSortedWaves())
	}
	order, err := schedule.Build(d.net, sopts...)
	if err != nil {
		return fmt.Errorf("routing: %w", err)
	}
	solver, err := kinematic.NewSolver(d.net, order, p, d.solverOptions()...)
	if err != nil {
		return fmt.Errorf("routing: %w", err)
	}
	d.order, d.solver = order, solver
	d.outlets = d.net.Outlets()
	d.opts.metrics.observeOrder(order.NumWaves(), order.Widest())
	d.log.V(1).Info("routing order ready",
		"pixels", d.net.Len(),
		"outlets", len(d.outlets),
		"waves", order.NumWaves(),
		"widest", order.Widest())
	return nil
}

func (d *Driver) solverOptions() []kinematic.Option {
	s := d.cfg.Solver
	opts := []kinematic.Option{kinematic.WithLogger(d.log)}
	if s.Tolerance > 0 {
		opts = append(opts, kinematic.WithTolerance(s.Tolerance))
	}
	if s.MaxIterations > 0 {
		opts = append(opts, kinematic.WithMaxIterations(s.MaxIterations))
	}
	if s.Workers > 0 {
		opts = append(opts, kinematic.WithWorkers(s.Workers))
	}
	if s.MinChunk > 0 {
		opts = append(opts, kinematic.WithMinChunk(s.MinChunk))
	}
	return opts
}

// InsertStructures makes the listed pixels outlets, cutting the network
// upstream of reservoirs and lakes, then rebuilds the routing order. Only
// allowed before the first step; afterwards it returns ErrStarted.
func (d *Driver) InsertStructures(pits []int) error {
	if d.started {
		return ErrStarted
	}
	if len(pits) == 0 {
		return nil
	}
	net, err := d.net.WithPits(pits...)
	if err != nil {
		return fmt.Errorf("routing: insert structures: %w", err)
	}
	prev := d.net
	d.net = net
	if err := d.rebuild(d.solver.Parameters()); err != nil {
		d.net = prev
		return err
	}
	d.log.Info("structures inserted", "pixels", pits)
	return nil
}

// Step advances one outer step using the configured number of sub-steps.
func (d *Driver) Step(ctx context.Context, step int, src InflowSource) error {
	return d.StepN(ctx, step, d.cfg.SubSteps, src)
}

// StepN advances one outer step of cfg.TimeStep seconds split into n
// sub-steps.
//
// Behavior per sub-step:
//  1. Zero the inflow buffer and fill it from src.
//  2. Add inflow injected by couplers during the previous sub-step.
//  3. Reject NaN, infinite or negative inflow with ErrInvalidInflow; the
//     discharge and the pending coupler inflow are left untouched, so the
//     step can be retried.
//  4. Solve and record stats and metrics.
//  5. Run couplers in registration order.
//
// ctx is checked before each sub-step and by the solver between waves. A
// cancellation inside a solve leaves the discharge partially updated.
func (d *Driver) StepN(ctx context.Context, step, n int, src InflowSource) error {
	if src == nil {
		return ErrNilArgument
	}
	if n < 1 {
		return fmt.Errorf("%w: %d sub-steps", ErrInvalidParameter, n)
	}
	p, err := d.parametersFor(n)
	if err != nil {
		return err
	}
	if err := d.solver.SetParameters(p); err != nil {
		return fmt.Errorf("routing: %w", err)
	}

	for sub := 0; sub < n; sub++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("routing: step %d sub-step %d: %w", step, sub, err)
		}
		clear(d.lateral)
		if err := src.LateralInflow(step, sub, d.lateral); err != nil {
			return fmt.Errorf("routing: step %d sub-step %d: inflow source: %w", step, sub, err)
		}
		for i, r := range d.pending {
			d.lateral[i] += r
		}
		if errs := checkValues(d.lateral, "inflow", d.cfg.MaxReported); errs != nil {
			d.opts.metrics.invalidInflow()
			return fmt.Errorf("%w: step %d sub-step %d: %w", ErrInvalidInflow, step, sub, errs)
		}
		clear(d.pending) // consumed only once the inflow is accepted

		start := time.Now()
		st, err := d.solver.Solve(ctx, d.q, d.lateral)
		d.started = true
		d.stats.Merge(st)
		d.opts.metrics.observeSolve(st, time.Since(start).Seconds())
		if err != nil {
			return fmt.Errorf("routing: step %d sub-step %d: %w", step, sub, err)
		}
		if st.NonConverged > 0 {
			d.log.Info("newton did not converge",
				"step", step, "subStep", sub,
				"pixels", st.NonConverged,
				"worst", st.Worst,
				"residual", st.MaxResidual)
		}

		view := &View{d: d, step: step, sub: sub}
		for _, c := range d.opts.couplers {
			if err := c.AfterSubStep(ctx, view); err != nil {
				return fmt.Errorf("routing: step %d sub-step %d: coupler: %w", step, sub, err)
			}
		}
	}
	d.steps++
	d.opts.metrics.observeOutlet(d.OutletFlow())
	return nil
}

// parametersFor returns the cached parameters for n sub-steps per step.
func (d *Driver) parametersFor(n int) (*kinematic.Parameters, error) {
	if p, ok := d.params[n]; ok {
		return p, nil
	}
	p, err := kinematic.NewParameters(d.geom, d.cfg.TimeStep/float64(n))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParameter, err)
	}
	d.params[n] = p
	return p, nil
}

// AddCoupler registers c after those given with WithCoupler.
func (d *Driver) AddCoupler(c Coupler) error {
	if c == nil {
		return ErrNilArgument
	}
	d.opts.couplers = append(d.opts.couplers, c)
	return nil
}

// Discharge returns the live discharge vector, one value per pixel. It is
// updated in place by every sub-step; copy it to keep a snapshot.
func (d *Driver) Discharge() []float64 {
	return d.q
}

// SetDischarge replaces the discharge with a copy of q, for warm starts from
// a saved state. Every malformed entry is reported in one ErrInvalidState.
func (d *Driver) SetDischarge(q []float64) error {
	if len(q) != len(d.q) {
		return fmt.Errorf("%w: %d values for %d pixels", ErrInvalidState, len(q), len(d.q))
	}
	if errs := checkValues(q, "discharge", d.cfg.MaxReported); errs != nil {
		return fmt.Errorf("%w: %w", ErrInvalidState, errs)
	}
	copy(d.q, q)
	return nil
}

// ColdStart sets the discharge to the steady state of a constant lateral
// inflow: every pixel carries the inflow of its whole upstream area.
func (d *Driver) ColdStart(lateral []float64) error {
	if len(lateral) != len(d.q) {
		return fmt.Errorf("%w: %d values for %d pixels", ErrInvalidInflow, len(lateral), len(d.q))
	}
	if errs := checkValues(lateral, "inflow", d.cfg.MaxReported); errs != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInflow, errs)
	}
	p := d.solver.Parameters()
	local := make([]float64, len(lateral))
	for i, l := range lateral {
		local[i] = p.DxLateral[i] * l
	}
	q, err := schedule.Accumulate(d.net, d.order, local)
	if err != nil {
		return fmt.Errorf("routing: cold start: %w", err)
	}
	copy(d.q, q)
	return nil
}

// OutletFlow returns the summed discharge over all outlets.
func (d *Driver) OutletFlow() float64 {
	total := 0.0
	for _, p := range d.outlets {
		total += d.q[p]
	}
	return total
}

// Storage returns the channel water volume of every pixel.
func (d *Driver) Storage() []float64 {
	p := d.solver.Parameters()
	out := make([]float64, len(d.q))
	for i, q := range d.q {
		out[i] = p.Storage(i, q)
	}
	return out
}

// Stats returns solver statistics accumulated since New.
func (d *Driver) Stats() kinematic.Stats {
	return d.stats
}

// Steps returns the number of completed outer steps.
func (d *Driver) Steps() int {
	return d.steps
}

// Network returns the network being routed, including inserted structures.
func (d *Driver) Network() *flowdir.Network {
	return d.net
}

// Order returns the routing order.
func (d *Driver) Order() *schedule.Order {
	return d.order
}

// RunID identifies this driver in logs.
func (d *Driver) RunID() uuid.UUID {
	return d.runID
}
