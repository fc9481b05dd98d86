package cost_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gridpath/cost"
	"github.com/katalvlaran/gridpath/grid"
)

const eps = 1e-9

func TestNew_Defaults(t *testing.T) {
	m, err := cost.New()
	require.NoError(t, err)
	assert.Equal(t, 1.0, m.GMultiplier)
	assert.Equal(t, 1.0, m.HMultiplier)
	assert.Equal(t, grid.Conn8, m.Conn)
	assert.True(t, m.Admissible())
}

func TestNew_BadMultipliers(t *testing.T) {
	cases := []struct {
		name string
		opt  cost.Option
	}{
		{"NegativeG", cost.WithGMultiplier(-1)},
		{"NegativeH", cost.WithHMultiplier(-0.5)},
		{"NaNG", cost.WithGMultiplier(math.NaN())},
		{"InfH", cost.WithHMultiplier(math.Inf(1))},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := cost.New(tc.opt)
			assert.ErrorIs(t, err, cost.ErrBadMultiplier)
		})
	}
}

func TestStepCost(t *testing.T) {
	m, err := cost.New(cost.WithGMultiplier(2))
	require.NoError(t, err)

	a := grid.Cell{X: 3, Y: 3}
	assert.InDelta(t, 2.0, m.StepCost(a, grid.Cell{X: 3, Y: 2}), eps)
	assert.InDelta(t, 2*math.Sqrt2, m.StepCost(a, grid.Cell{X: 4, Y: 4}), eps)
}

func TestHeuristic_Octile(t *testing.T) {
	m, err := cost.New()
	require.NoError(t, err)

	goal := grid.Cell{X: 4, Y: 4}
	assert.InDelta(t, 4*math.Sqrt2, m.Heuristic(grid.Cell{X: 0, Y: 0}, goal), eps)
	assert.InDelta(t, 2*math.Sqrt2+2, m.Heuristic(grid.Cell{X: 0, Y: 2}, goal), eps)
	assert.Zero(t, m.Heuristic(goal, goal))
}

func TestHeuristic_ManhattanAndScaling(t *testing.T) {
	m, err := cost.New(cost.WithConnectivity(grid.Conn4), cost.WithHMultiplier(3))
	require.NoError(t, err)
	assert.False(t, m.Admissible())

	h := m.Heuristic(grid.Cell{X: 0, Y: 0}, grid.Cell{X: 2, Y: 3})
	assert.InDelta(t, 15.0, h, eps)
	assert.InDelta(t, 15.5, m.Total(0.5, grid.Cell{X: 0, Y: 0}, grid.Cell{X: 2, Y: 3}), eps)
}

func TestHeuristic_ZeroMultiplier(t *testing.T) {
	m, err := cost.New(cost.WithHMultiplier(0))
	require.NoError(t, err)
	assert.Zero(t, m.Heuristic(grid.Cell{X: 0, Y: 0}, grid.Cell{X: 9, Y: 9}))
	assert.True(t, m.Admissible())
}

// TestDistance_Consistent checks h(a) ≤ cost(a,b) + h(b) for every
// neighbour pair on a small board, the consistency condition the engine
// relies on to never reopen settled cells.
func TestDistance_Consistent(t *testing.T) {
	for _, conn := range []grid.Connectivity{grid.Conn8, grid.Conn4} {
		m, err := cost.New(cost.WithConnectivity(conn))
		require.NoError(t, err)
		g, err := grid.New(6, 6, func(x, y int) bool { return false }, grid.WithConnectivity(conn))
		require.NoError(t, err)
		goal := grid.Cell{X: 5, Y: 1}
		for y := 0; y < 6; y++ {
			for x := 0; x < 6; x++ {
				a := grid.Cell{X: x, Y: y}
				for _, b := range g.Neighbors(a) {
					assert.LessOrEqual(t, m.Heuristic(a, goal), m.StepCost(a, b)+m.Heuristic(b, goal)+eps,
						"%s: %v→%v", conn, a, b)
				}
			}
		}
	}
}
