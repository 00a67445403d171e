package routing

import (
	"context"
	"errors"

	"github.com/go-logr/logr"

	"github.com/katalvlaran/kinroute/config"
	"github.com/katalvlaran/kinroute/flowdir"
	"github.com/katalvlaran/kinroute/kinematic"
)

var (
	// ErrInvalidInflow indicates lateral inflow that is NaN, infinite or
	// negative after coupler injection.
	ErrInvalidInflow = errors.New("routing: invalid lateral inflow")

	// ErrInvalidParameter indicates unusable channel parameters or sub-step
	// settings.
	ErrInvalidParameter = errors.New("routing: invalid parameter")

	// ErrInvalidState indicates a discharge vector of the wrong length or
	// with NaN, infinite or negative entries.
	ErrInvalidState = errors.New("routing: invalid discharge state")

	// ErrStarted indicates a structural change requested after routing began.
	ErrStarted = errors.New("routing: routing already started")

	// ErrNilArgument indicates a nil network, source or coupler.
	ErrNilArgument = errors.New("routing: nil argument")
)

// InflowSource supplies lateral inflow for one sub-step. dst has one zeroed
// slot per pixel; the source writes the inflow rate per unit channel length.
type InflowSource interface {
	LateralInflow(step, sub int, dst []float64) error
}

// InflowFunc adapts a function to InflowSource.
type InflowFunc func(step, sub int, dst []float64) error

// LateralInflow implements InflowSource.
func (f InflowFunc) LateralInflow(step, sub int, dst []float64) error {
	return f(step, sub, dst)
}

// ParameterSource describes the channel of every pixel of a network.
type ParameterSource interface {
	ChannelGeometry(net *flowdir.Network) (kinematic.Geometry, error)
}

// UniformChannel gives every pixel the same channel.
type UniformChannel config.Channel

// ChannelGeometry implements ParameterSource.
func (u UniformChannel) ChannelGeometry(net *flowdir.Network) (kinematic.Geometry, error) {
	g := kinematic.Uniform(net.Len(), u.Alpha, u.Beta, u.Dx)
	g.LateralCoefficient = make([]float64, net.Len())
	for i := range g.LateralCoefficient {
		g.LateralCoefficient[i] = u.LateralCoefficient
	}
	return g, nil
}

// Coupler runs after every sub-step, typically to move water through
// structures such as reservoirs. Returning an error aborts the step.
type Coupler interface {
	AfterSubStep(ctx context.Context, v *View) error
}

// CouplerFunc adapts a function to Coupler.
type CouplerFunc func(ctx context.Context, v *View) error

// AfterSubStep implements Coupler.
func (f CouplerFunc) AfterSubStep(ctx context.Context, v *View) error {
	return f(ctx, v)
}

// Option configures a Driver.
type Option func(*options)

type options struct {
	log      logr.Logger
	metrics  *Metrics
	couplers []Coupler
}

func defaultOptions() options {
	return options{log: logr.Discard()}
}

// WithLogger sets the driver logger. The driver adds its name and run id.
func WithLogger(log logr.Logger) Option {
	return func(o *options) {
		o.log = log
	}
}

// WithMetrics records driver activity in m. Panics on nil.
func WithMetrics(m *Metrics) Option {
	if m == nil {
		panic("routing: WithMetrics(nil)")
	}
	return func(o *options) {
		o.metrics = m
	}
}

// WithCoupler registers couplers, run in registration order. Panics on nil.
func WithCoupler(cs ...Coupler) Option {
	for _, c := range cs {
		if c == nil {
			panic("routing: WithCoupler(nil)")
		}
	}
	return func(o *options) {
		o.couplers = append(o.couplers, cs...)
	}
}
