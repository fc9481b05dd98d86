// Package distance_test validates the distance field: input validation,
// exact distances on small maps, path recovery and the MaxDistance cap.
package distance_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gridpath/cost"
	"github.com/katalvlaran/gridpath/distance"
	"github.com/katalvlaran/gridpath/grid"
)

func mustGrid(t *testing.T, values [][]int, opts ...grid.Option) *grid.Grid {
	t.Helper()
	g, err := grid.From2D(values, opts...)
	require.NoError(t, err)
	return g
}

func mustModel(t *testing.T, opts ...cost.Option) cost.Model {
	t.Helper()
	m, err := cost.New(opts...)
	require.NoError(t, err)
	return m
}

// ------------------------------------------------------------------------
// 1. Validation
// ------------------------------------------------------------------------

func TestCompute_Validation(t *testing.T) {
	g := mustGrid(t, [][]int{{0, 1}})

	_, err := distance.Compute(nil, mustModel(t), grid.Cell{})
	assert.ErrorIs(t, err, distance.ErrNilGrid)

	_, err = distance.Compute(g, mustModel(t, cost.WithConnectivity(grid.Conn4)), grid.Cell{})
	assert.ErrorIs(t, err, distance.ErrPolicyMismatch)

	_, err = distance.Compute(g, mustModel(t), grid.Cell{X: 1, Y: 0})
	assert.ErrorIs(t, err, distance.ErrInvalidSource)

	_, err = distance.Compute(g, mustModel(t), grid.Cell{X: 5, Y: 0})
	assert.ErrorIs(t, err, distance.ErrInvalidSource)
}

func TestWithMaxDistance_Panics(t *testing.T) {
	g := mustGrid(t, [][]int{{0}})
	assert.Panics(t, func() {
		_, _ = distance.Compute(g, mustModel(t), grid.Cell{}, distance.WithMaxDistance(-1))
	})
	assert.Panics(t, func() {
		_, _ = distance.Compute(g, mustModel(t), grid.Cell{}, distance.WithMaxDistance(math.NaN()))
	})
}

// ------------------------------------------------------------------------
// 2. Distances
// ------------------------------------------------------------------------

func TestCompute_OpenGridIsOctile(t *testing.T) {
	values := make([][]int, 6)
	for i := range values {
		values[i] = make([]int, 9)
	}
	g := mustGrid(t, values)
	f, err := distance.Compute(g, mustModel(t), grid.Cell{X: 2, Y: 3})
	require.NoError(t, err)

	for y := 0; y < 6; y++ {
		for x := 0; x < 9; x++ {
			c := grid.Cell{X: x, Y: y}
			d, ok := f.To(c)
			require.True(t, ok)
			assert.InDelta(t, cost.Distance(grid.Conn8, f.Source(), c), d, 1e-9, "cell %v", c)
		}
	}
	assert.Equal(t, 54, f.Reached())
}

func TestCompute_Conn4Manhattan(t *testing.T) {
	g := mustGrid(t, [][]int{
		{0, 0, 0},
		{0, 0, 0},
	}, grid.WithConnectivity(grid.Conn4))
	f, err := distance.Compute(g, mustModel(t, cost.WithConnectivity(grid.Conn4)), grid.Cell{})
	require.NoError(t, err)
	d, ok := f.To(grid.Cell{X: 2, Y: 1})
	require.True(t, ok)
	assert.InDelta(t, 3.0, d, 1e-12)
}

func TestCompute_GMultiplierScales(t *testing.T) {
	g := mustGrid(t, [][]int{{0, 0, 0}})
	f, err := distance.Compute(g, mustModel(t, cost.WithGMultiplier(2.5)), grid.Cell{})
	require.NoError(t, err)
	d, _ := f.To(grid.Cell{X: 2, Y: 0})
	assert.InDelta(t, 5.0, d, 1e-12)
}

func TestCompute_DetourAroundWall(t *testing.T) {
	//  . # .
	//  . # .
	//  . . .
	g := mustGrid(t, [][]int{
		{0, 1, 0},
		{0, 1, 0},
		{0, 0, 0},
	})
	f, err := distance.Compute(g, mustModel(t), grid.Cell{X: 0, Y: 0})
	require.NoError(t, err)

	d, ok := f.To(grid.Cell{X: 2, Y: 0})
	require.True(t, ok)
	// (0,0)→(0,1)→(1,2)→(2,1)→(2,0)
	assert.InDelta(t, 2+2*math.Sqrt2, d, 1e-9)

	path, err := f.PathTo(grid.Cell{X: 2, Y: 0})
	require.NoError(t, err)
	assert.Equal(t, grid.Cell{X: 0, Y: 0}, path[0])
	assert.Equal(t, grid.Cell{X: 2, Y: 0}, path[len(path)-1])
	assert.Len(t, path, 5)
	assert.Contains(t, path, grid.Cell{X: 1, Y: 2})
}

func TestCompute_Unreachable(t *testing.T) {
	g := mustGrid(t, [][]int{{0, 1, 0}})
	f, err := distance.Compute(g, mustModel(t), grid.Cell{})
	require.NoError(t, err)

	d, ok := f.To(grid.Cell{X: 2, Y: 0})
	assert.False(t, ok)
	assert.True(t, math.IsInf(d, 1))
	_, err = f.PathTo(grid.Cell{X: 2, Y: 0})
	assert.ErrorIs(t, err, distance.ErrUnreachable)

	_, ok = f.To(grid.Cell{X: -1, Y: 0})
	assert.False(t, ok)
	assert.Equal(t, 1, f.Reached())
}

func TestCompute_SourcePath(t *testing.T) {
	g := mustGrid(t, [][]int{{0, 0}})
	f, err := distance.Compute(g, mustModel(t), grid.Cell{X: 1, Y: 0})
	require.NoError(t, err)
	path, err := f.PathTo(grid.Cell{X: 1, Y: 0})
	require.NoError(t, err)
	assert.Equal(t, []grid.Cell{{X: 1, Y: 0}}, path)
}

func TestCompute_MaxDistance(t *testing.T) {
	g := mustGrid(t, [][]int{{0, 0, 0, 0, 0, 0}})
	f, err := distance.Compute(g, mustModel(t), grid.Cell{}, distance.WithMaxDistance(3))
	require.NoError(t, err)

	assert.Equal(t, 4, f.Reached())
	assert.InDelta(t, 3.0, f.Farthest(), 1e-12)
	_, ok := f.To(grid.Cell{X: 4, Y: 0})
	assert.False(t, ok)
}
