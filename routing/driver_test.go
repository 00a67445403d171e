package routing_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/go-logr/logr/testr"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/kinroute/catchment"
	"github.com/katalvlaran/kinroute/config"
	"github.com/katalvlaran/kinroute/flowdir"
	"github.com/katalvlaran/kinroute/kinematic"
	"github.com/katalvlaran/kinroute/routing"
	"github.com/katalvlaran/kinroute/schedule"
)

// unitChannel gives alpha*dx/dt = 0.5 and dx*lateral coefficient = 1 with a
// one-second step.
var unitChannel = routing.UniformChannel{Alpha: 0.5, Beta: 0.6, Dx: 1, LateralCoefficient: 1}

func routingConfig(subSteps int) config.Routing {
	cfg := config.Default().Routing
	cfg.TimeStep = float64(subSteps)
	cfg.SubSteps = subSteps
	cfg.Solver.SortedWaves = true
	return cfg
}

func newDriver(t *testing.T, down []int, opts ...routing.Option) *routing.Driver {
	t.Helper()
	net, err := flowdir.FromDownstream(down)
	require.NoError(t, err)
	opts = append([]routing.Option{routing.WithLogger(testr.New(t))}, opts...)
	d, err := routing.New(net, unitChannel, routingConfig(1), opts...)
	require.NoError(t, err)
	return d
}

// constant returns a source with the same inflow every sub-step.
func constant(lateral []float64) routing.InflowSource {
	return routing.InflowFunc(func(_, _ int, dst []float64) error {
		copy(dst, lateral)
		return nil
	})
}

// TestStep_LinearChain routes the reference rain pulse through A -> B -> C.
func TestStep_LinearChain(t *testing.T) {
	d := newDriver(t, []int{1, 2, -1})
	require.NoError(t, d.Step(context.Background(), 0, constant([]float64{2, 0, 0})))

	q := d.Discharge()
	assert.InDelta(t, 1.3906123443389329, q[0], 1e-10)
	assert.InDelta(t, 0.9161931692345187, q[1], 1e-10)
	assert.InDelta(t, 0.5622534620293391, q[2], 1e-10)
	assert.InDelta(t, q[2], d.OutletFlow(), 0)
	assert.Equal(t, 1, d.Steps())
	assert.Equal(t, 3, d.Stats().Pixels)
	assert.NotEqual(t, uuid.Nil, d.RunID())

	storage := d.Storage()
	assert.InDelta(t, 0.5*math.Pow(q[0], 0.6), storage[0], 1e-12)
}

// TestNew_Rejects covers constructor validation.
func TestNew_Rejects(t *testing.T) {
	net, err := flowdir.FromDownstream([]int{1, -1})
	require.NoError(t, err)

	_, err = routing.New(nil, unitChannel, routingConfig(1))
	assert.ErrorIs(t, err, routing.ErrNilArgument)

	cfg := routingConfig(1)
	cfg.SubSteps = 0
	_, err = routing.New(net, unitChannel, cfg)
	assert.ErrorIs(t, err, routing.ErrInvalidParameter)

	bad := unitChannel
	bad.Alpha = math.NaN()
	_, err = routing.New(net, bad, routingConfig(1))
	assert.ErrorIs(t, err, routing.ErrInvalidParameter)
	assert.ErrorIs(t, err, kinematic.ErrInvalidParameter)
	assert.Contains(t, err.Error(), "pixel 0: alpha")
	assert.Contains(t, err.Error(), "pixel 1: alpha")

	cyclic, err := flowdir.FromDownstream([]int{1, 0})
	require.NoError(t, err)
	_, err = routing.New(cyclic, unitChannel, routingConfig(1))
	assert.ErrorIs(t, err, schedule.ErrCycleDetected)
}

// TestStep_InvalidInflow checks every bad pixel is reported and discharge is
// left untouched.
func TestStep_InvalidInflow(t *testing.T) {
	d := newDriver(t, []int{1, 2, 3, -1})
	require.NoError(t, d.SetDischarge([]float64{1, 1, 1, 1}))

	err := d.Step(context.Background(), 0, constant([]float64{0, math.NaN(), -1, math.Inf(1)}))
	require.ErrorIs(t, err, routing.ErrInvalidInflow)
	for _, want := range []string{"pixel 1", "pixel 2", "pixel 3"} {
		assert.Contains(t, err.Error(), want)
	}
	assert.NotContains(t, err.Error(), "pixel 0")
	assert.Equal(t, []float64{1, 1, 1, 1}, d.Discharge())
	assert.Equal(t, 0, d.Steps())
}

// TestStep_SourceError checks source failures are wrapped.
func TestStep_SourceError(t *testing.T) {
	d := newDriver(t, []int{-1})
	boom := errors.New("boom")
	err := d.Step(context.Background(), 3, routing.InflowFunc(func(int, int, []float64) error { return boom }))
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "step 3")

	assert.ErrorIs(t, d.Step(context.Background(), 0, nil), routing.ErrNilArgument)
	assert.ErrorIs(t, d.StepN(context.Background(), 0, 0, constant([]float64{0})), routing.ErrInvalidParameter)
}

// TestStep_Cancelled checks a cancelled context aborts before solving.
func TestStep_Cancelled(t *testing.T) {
	d := newDriver(t, []int{1, -1})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := d.Step(ctx, 0, constant([]float64{1, 1}))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []float64{0, 0}, d.Discharge())
}

// TestStepN_SubSteps checks the source is asked once per sub-step and the
// sub-step length follows the count.
func TestStepN_SubSteps(t *testing.T) {
	net, err := flowdir.FromDownstream([]int{1, -1})
	require.NoError(t, err)
	var dts []float64
	probe := routing.CouplerFunc(func(_ context.Context, v *routing.View) error {
		dts = append(dts, v.Dt())
		return nil
	})
	d, err := routing.New(net, unitChannel, routingConfig(4), routing.WithCoupler(probe))
	require.NoError(t, err)

	var calls [][2]int
	src := routing.InflowFunc(func(step, sub int, dst []float64) error {
		calls = append(calls, [2]int{step, sub})
		dst[0] = 1
		return nil
	})
	require.NoError(t, d.Step(context.Background(), 7, src))
	assert.Equal(t, [][2]int{{7, 0}, {7, 1}, {7, 2}, {7, 3}}, calls)
	assert.Equal(t, []float64{1, 1, 1, 1}, dts)

	require.NoError(t, d.StepN(context.Background(), 8, 2, src))
	assert.Equal(t, []float64{1, 1, 1, 1, 2, 2}, dts)
	assert.Equal(t, 2, d.Steps())
}

// TestStep_FinerSubStepsConverge checks that halving the sub-step changes
// the result less and less.
func TestStep_FinerSubStepsConverge(t *testing.T) {
	run := func(n int) float64 {
		d := newDriver(t, []int{1, 2, 3, 4, -1})
		rain := constant([]float64{1, 1, 1, 1, 1})
		for step := 0; step < 5; step++ {
			require.NoError(t, d.StepN(context.Background(), step, n, rain))
		}
		return d.OutletFlow()
	}
	q1, q2, q4 := run(1), run(2), run(4)
	assert.Less(t, math.Abs(q4-q2), math.Abs(q2-q1))
}

// TestColdStart_SteadyState checks the cold start is a fixed point of the
// solver under the same inflow.
func TestColdStart_SteadyState(t *testing.T) {
	r, err := catchment.Generate(catchment.Valley(9, 7))
	require.NoError(t, err)
	net, err := r.Network()
	require.NoError(t, err)
	d, err := routing.New(net, unitChannel, routingConfig(1))
	require.NoError(t, err)

	rain := make([]float64, net.Len())
	for i := range rain {
		rain[i] = 0.25
	}
	require.NoError(t, d.ColdStart(rain))
	assert.InDelta(t, 0.25*float64(net.Len()), d.OutletFlow(), 1e-9)

	before := append([]float64(nil), d.Discharge()...)
	require.NoError(t, d.Step(context.Background(), 0, constant(rain)))
	assert.InDeltaSlice(t, before, d.Discharge(), 1e-9)

	assert.ErrorIs(t, d.ColdStart(rain[:3]), routing.ErrInvalidInflow)
	rain[2] = -1
	assert.ErrorIs(t, d.ColdStart(rain), routing.ErrInvalidInflow)
}

// TestSetDischarge covers warm starts.
func TestSetDischarge(t *testing.T) {
	d := newDriver(t, []int{1, -1})
	require.NoError(t, d.SetDischarge([]float64{2, 3}))
	assert.Equal(t, []float64{2, 3}, d.Discharge())

	assert.ErrorIs(t, d.SetDischarge([]float64{1}), routing.ErrInvalidState)
	err := d.SetDischarge([]float64{math.NaN(), -2})
	assert.ErrorIs(t, err, routing.ErrInvalidState)
	assert.Contains(t, err.Error(), "pixel 0")
	assert.Contains(t, err.Error(), "pixel 1")
	assert.Equal(t, []float64{2, 3}, d.Discharge())
}

// TestInsertStructures checks pits cut the network and are refused once
// routing has started.
func TestInsertStructures(t *testing.T) {
	d := newDriver(t, []int{1, 2, -1})
	require.NoError(t, d.InsertStructures([]int{1}))
	assert.Equal(t, []int{1, 2}, d.Network().Outlets())
	assert.Equal(t, 2, d.Order().NumWaves())

	require.NoError(t, d.Step(context.Background(), 0, constant([]float64{2, 0, 0})))
	q := d.Discharge()
	assert.Greater(t, q[1], 0.0)
	assert.Equal(t, 0.0, q[2])

	assert.ErrorIs(t, d.InsertStructures([]int{0}), routing.ErrStarted)

	fresh := newDriver(t, []int{1, -1})
	assert.ErrorIs(t, fresh.InsertStructures([]int{5}), flowdir.ErrPixelRange)
	assert.Equal(t, []int{1}, fresh.Network().Outlets())
}
