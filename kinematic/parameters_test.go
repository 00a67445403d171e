package kinematic_test

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/kinroute/kinematic"
)

// TestNewParameters_Products checks the precomputed sub-step products.
func TestNewParameters_Products(t *testing.T) {
	g := kinematic.Geometry{
		Alpha:              []float64{2, 3},
		Beta:               []float64{0.6, 0.5},
		Dx:                 []float64{100, 50},
		LateralCoefficient: []float64{1, 0.5},
	}
	p, err := kinematic.NewParameters(g, 10)
	require.NoError(t, err)

	assert.Equal(t, 2, p.Len())
	assert.InDeltaSlice(t, []float64{20, 15}, p.AlphaDxDt, 1e-12)
	assert.InDeltaSlice(t, []float64{12, 7.5}, p.BetaAlphaDxDt, 1e-12)
	assert.InDeltaSlice(t, []float64{100, 25}, p.DxLateral, 1e-12)

	q, err := p.WithDt(20)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{10, 7.5}, q.AlphaDxDt, 1e-12)
	assert.InDeltaSlice(t, []float64{20, 15}, p.AlphaDxDt, 1e-12)
}

// TestNewParameters_DefaultLateral checks a nil coefficient means dx.
func TestNewParameters_DefaultLateral(t *testing.T) {
	p, err := kinematic.NewParameters(kinematic.Uniform(3, 1, 0.6, 25), 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{25, 25, 25}, p.DxLateral)
}

// TestNewParameters_Rejects covers shape and value errors.
func TestNewParameters_Rejects(t *testing.T) {
	_, err := kinematic.NewParameters(kinematic.Geometry{
		Alpha: []float64{1}, Beta: []float64{0.6, 0.6}, Dx: []float64{1},
	}, 1)
	assert.ErrorIs(t, err, kinematic.ErrShape)

	_, err = kinematic.NewParameters(kinematic.Uniform(2, 1, 0.6, 1), 0)
	assert.ErrorIs(t, err, kinematic.ErrInvalidParameter)

	g := kinematic.Uniform(4, 1, 0.6, 1)
	g.Alpha[1] = math.NaN()
	g.Beta[2] = -0.6
	g.Dx[3] = math.Inf(1)
	_, err = kinematic.NewParameters(g, 1)
	require.ErrorIs(t, err, kinematic.ErrInvalidParameter)
	msg := err.Error()
	assert.True(t, strings.Contains(msg, "pixel 1: alpha"), msg)
	assert.True(t, strings.Contains(msg, "pixel 2: beta"), msg)
	assert.True(t, strings.Contains(msg, "pixel 3: dx"), msg)
}

// TestNewParameters_ReportCap checks long error lists are truncated.
func TestNewParameters_ReportCap(t *testing.T) {
	g := kinematic.Uniform(40, 0, 0.6, 1)
	_, err := kinematic.NewParameters(g, 1)
	require.ErrorIs(t, err, kinematic.ErrInvalidParameter)
	assert.Contains(t, err.Error(), "and 24 more")
}

// TestParameters_Storage checks alpha*Q^beta*dx and the zero case.
func TestParameters_Storage(t *testing.T) {
	p, err := kinematic.NewParameters(kinematic.Uniform(1, 2, 0.5, 10), 1)
	require.NoError(t, err)
	assert.InDelta(t, 2*math.Sqrt(4)*10, p.Storage(0, 4), 1e-12)
	assert.Equal(t, 0.0, p.Storage(0, 0))
}
