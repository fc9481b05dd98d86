package cost

import (
	"fmt"

	"github.com/katalvlaran/gridpath/grid"
)

// Model prices moves between adjacent cells and estimates the remaining cost
// to a goal. A Model is a value; it is fixed for the lifetime of a search.
type Model struct {
	GMultiplier float64
	HMultiplier float64
	Conn        grid.Connectivity
}

// New builds a Model from DefaultOptions overridden by opts.
// Returns ErrBadMultiplier if either multiplier is negative, NaN or infinite.
func New(opts ...Option) (Model, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if !validMultiplier(cfg.GMultiplier) {
		return Model{}, fmt.Errorf("%w: g=%v", ErrBadMultiplier, cfg.GMultiplier)
	}
	if !validMultiplier(cfg.HMultiplier) {
		return Model{}, fmt.Errorf("%w: h=%v", ErrBadMultiplier, cfg.HMultiplier)
	}
	return Model{
		GMultiplier: cfg.GMultiplier,
		HMultiplier: cfg.HMultiplier,
		Conn:        cfg.Conn,
	}, nil
}

// StepCost returns the cost of moving from a to the adjacent cell b:
// Orthogonal or Diagonal, scaled by GMultiplier.
// Complexity: O(1).
func (m Model) StepCost(a, b grid.Cell) float64 {
	if grid.IsDiagonal(a, b) {
		return Diagonal * m.GMultiplier
	}
	return Orthogonal * m.GMultiplier
}

// Heuristic estimates the cost from c to goal, scaled by HMultiplier.
// Conn8 uses octile distance, Conn4 Manhattan distance; both are admissible
// and consistent for HMultiplier ≤ 1.
// Complexity: O(1).
func (m Model) Heuristic(c, goal grid.Cell) float64 {
	return Distance(m.Conn, c, goal) * m.HMultiplier
}

// Total returns g + Heuristic(c, goal), the frontier priority of c.
func (m Model) Total(g float64, c, goal grid.Cell) float64 {
	return g + m.Heuristic(c, goal)
}

// Admissible reports whether the scaled heuristic never overestimates the
// scaled step costs, i.e. HMultiplier ≤ GMultiplier.
func (m Model) Admissible() bool {
	return m.HMultiplier <= m.GMultiplier
}

// Distance returns the unscaled shortest move distance between a and b on an
// obstacle-free grid: octile for Conn8, Manhattan for Conn4.
func Distance(conn grid.Connectivity, a, b grid.Cell) float64 {
	dx := abs(a.X - b.X)
	dy := abs(a.Y - b.Y)
	if conn == grid.Conn4 {
		return float64(dx+dy) * Orthogonal
	}
	lo, hi := dx, dy
	if lo > hi {
		lo, hi = hi, lo
	}
	return float64(lo)*Diagonal + float64(hi-lo)*Orthogonal
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
