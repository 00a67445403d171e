package catchment_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/kinroute/catchment"
	"github.com/katalvlaran/kinroute/config"
	"github.com/katalvlaran/kinroute/flowdir"
	"github.com/katalvlaran/kinroute/schedule"
)

// layer generates, decodes and schedules a catchment.
func layer(t *testing.T, c catchment.Constructor, opts ...catchment.Option) (*flowdir.Network, *schedule.Order) {
	t.Helper()
	r, err := catchment.Generate(c, opts...)
	require.NoError(t, err)
	net, err := r.Network()
	require.NoError(t, err)
	o, err := schedule.Build(net)
	require.NoError(t, err)
	require.NoError(t, o.Validate(net))
	return net, o
}

// TestChain checks a reach has one outlet and one pixel per wave.
func TestChain(t *testing.T) {
	net, o := layer(t, catchment.Chain(6))
	assert.Equal(t, 6, net.Len())
	assert.Equal(t, []int{5}, net.Outlets())
	assert.Equal(t, []int{0}, net.Headwaters())
	assert.Equal(t, 6, o.NumWaves())
}

// TestValley checks the valley drains to one outlet at the bottom of the
// centre column.
func TestValley(t *testing.T) {
	for _, tc := range []struct{ rows, cols int }{{1, 1}, {3, 3}, {5, 4}, {8, 17}} {
		net, o := layer(t, catchment.Valley(tc.rows, tc.cols))
		require.Equal(t, tc.rows*tc.cols, net.Len())
		outlets := net.Outlets()
		require.Len(t, outlets, 1, "%dx%d", tc.rows, tc.cols)
		row, col := net.Index().Cell(outlets[0])
		assert.Equal(t, tc.rows-1, row)
		assert.Equal(t, tc.cols/2, col)
		// longest path: centre column, or a bottom-row run from either corner
		c := tc.cols / 2
		assert.Equal(t, max(tc.rows-1, c, tc.cols-1-c)+1, o.NumWaves(), "%dx%d", tc.rows, tc.cols)
	}
}

// TestComb checks masked cells and wave depth.
func TestComb(t *testing.T) {
	r, err := catchment.Generate(catchment.Comb(3, 4))
	require.NoError(t, err)
	assert.Equal(t, 5, r.Rows())
	assert.Equal(t, 6, r.Cols())
	assert.False(t, r.Active[0][1])
	assert.True(t, r.Active[4][1])

	net, o := layer(t, catchment.Comb(3, 4))
	assert.Equal(t, 3*4+6, net.Len())
	assert.Len(t, net.Outlets(), 1)
	assert.Equal(t, 4+2*3, o.NumWaves())
	assert.Equal(t, 3, len(o.Waves()[0]))
}

// TestRandom checks random catchments are forests and reproducible.
func TestRandom(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		layer(t, catchment.Random(30, 20), catchment.WithSeed(seed))
	}

	a, err := catchment.Generate(catchment.Random(12, 9), catchment.WithSeed(7))
	require.NoError(t, err)
	b, err := catchment.Generate(catchment.Random(12, 9), catchment.WithRand(rand.New(rand.NewSource(7))))
	require.NoError(t, err)
	assert.Equal(t, a, b)

	flat, _ := layer(t, catchment.Random(20, 20), catchment.WithSeed(3), catchment.WithTilt(0))
	steep, _ := layer(t, catchment.Random(20, 20), catchment.WithSeed(3), catchment.WithTilt(5))
	assert.Greater(t, len(flat.Outlets()), len(steep.Outlets()))
}

// TestWithMask checks masked cells are inactive in every generator.
func TestWithMask(t *testing.T) {
	keep := func(row, col int) bool { return !(row == 0 && col == 0) }
	net, _ := layer(t, catchment.Valley(3, 3), catchment.WithMask(keep))
	assert.Equal(t, 8, net.Len())
	assert.Equal(t, -1, net.Index().ID(0, 0))

	rnd, _ := layer(t, catchment.Random(4, 4), catchment.WithSeed(1), catchment.WithMask(keep))
	assert.Equal(t, 15, rnd.Len())
}

// TestErrors covers size and source validation.
func TestErrors(t *testing.T) {
	for _, c := range []catchment.Constructor{
		catchment.Chain(0),
		catchment.Valley(0, 3),
		catchment.Comb(2, 0),
		catchment.Random(3, 0),
	} {
		_, err := catchment.Generate(c, catchment.WithSeed(1))
		assert.ErrorIs(t, err, catchment.ErrTooSmall)
	}
	_, err := catchment.Generate(catchment.Random(3, 3))
	assert.ErrorIs(t, err, catchment.ErrNeedRand)
}

// TestOptions_Panic checks option constructors reject nonsense.
func TestOptions_Panic(t *testing.T) {
	assert.Panics(t, func() { catchment.WithRand(nil) })
	assert.Panics(t, func() { catchment.WithMask(nil) })
	assert.Panics(t, func() { catchment.WithTilt(-1) })
}

// TestFromConfig maps configuration kinds to generators.
func TestFromConfig(t *testing.T) {
	cases := []struct {
		c    config.Catchment
		want int
	}{
		{config.Catchment{Kind: "chain", Rows: 1, Cols: 9}, 9},
		{config.Catchment{Kind: "valley", Rows: 4, Cols: 5}, 20},
		{config.Catchment{Kind: "comb", Rows: 3, Cols: 2}, 10},
		{config.Catchment{Kind: "random", Rows: 6, Cols: 6, Seed: 2}, 36},
	}
	for _, tc := range cases {
		t.Run(tc.c.Kind, func(t *testing.T) {
			r, err := catchment.FromConfig(tc.c)
			require.NoError(t, err)
			net, err := r.Network()
			require.NoError(t, err)
			assert.Equal(t, tc.want, net.Len())
		})
	}
	_, err := catchment.FromConfig(config.Catchment{Kind: "delta"})
	assert.ErrorIs(t, err, catchment.ErrUnknownKind)
}
