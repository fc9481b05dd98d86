package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gridpath/cost"
	"github.com/katalvlaran/gridpath/grid"
)

// settledAt builds a running engine on an open 3×1 strip and plants a
// settled record for (1,0) with an inflated cost.
func settledAt(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	g, err := grid.New(3, 1, func(x, y int) bool { return false })
	require.NoError(t, err)
	m, err := cost.New()
	require.NoError(t, err)
	e, err := NewEngine(g, m, opts...)
	require.NoError(t, err)
	_, err = e.Initialize(grid.Cell{X: 0, Y: 0}, grid.Cell{X: 2, Y: 0})
	require.NoError(t, err)

	e.state.discover(grid.Cell{X: 1, Y: 0}, 10, grid.Cell{X: 2, Y: 0}, true)
	e.state.settle(grid.Cell{X: 1, Y: 0})
	return e
}

func TestRelaxations_SettledIsFinal(t *testing.T) {
	e := settledAt(t)
	plan := e.relaxations(grid.Cell{X: 0, Y: 0}, 0)
	assert.Empty(t, plan)
}

func TestRelaxations_Reopen(t *testing.T) {
	e := settledAt(t, WithReopen())
	c := grid.Cell{X: 1, Y: 0}

	plan := e.relaxations(grid.Cell{X: 0, Y: 0}, 0)
	require.Len(t, plan, 1)
	assert.Equal(t, relaxReopen, plan[0].kind)
	assert.Equal(t, c, plan[0].cell)
	assert.InDelta(t, 1.0, plan[0].cost, 1e-12)

	// planning alone must not mutate
	assert.Equal(t, Settled, e.state.Status(c))
	assert.Equal(t, 1, e.state.Settled())

	require.NoError(t, e.apply(grid.Cell{X: 0, Y: 0}, plan[0]))
	rec, ok := e.state.Record(c)
	require.True(t, ok)
	assert.Equal(t, Frontier, rec.Status)
	assert.Equal(t, grid.Cell{X: 0, Y: 0}, rec.Parent)
	assert.InDelta(t, 1.0, rec.BestCost, 1e-12)
	assert.Zero(t, e.state.Settled())
	assert.True(t, e.open.Contains(c))
}

func TestWalkParents_StopsOnBrokenChain(t *testing.T) {
	e := settledAt(t)
	// (2,0) points at (1,0), which points back at (2,0): a cycle that must
	// not loop forever.
	e.state.discover(grid.Cell{X: 2, Y: 0}, 11, grid.Cell{X: 1, Y: 0}, true)
	path := e.walkParents()
	assert.LessOrEqual(t, len(path), e.state.Discovered()+1)
	assert.Equal(t, grid.Cell{X: 2, Y: 0}, path[len(path)-1])
}
