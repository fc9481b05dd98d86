package search

import (
	"github.com/katalvlaran/gridpath/cost"
	"github.com/katalvlaran/gridpath/grid"
)

// Solve builds an Engine, initializes it and runs it to completion.
// It is the immediate ("fast") presentation mode in one call.
//
// Example:
//
//	g, _ := grid.From2D(values)
//	m, _ := cost.New(cost.WithHMultiplier(1.5))
//	out, err := search.Solve(g, m, grid.Cell{X: 0, Y: 0}, grid.Cell{X: 9, Y: 9})
//	if errors.Is(err, search.ErrEmptyFrontier) {
//	    // no route
//	}
func Solve(g *grid.Grid, model cost.Model, start, goal grid.Cell, opts ...Option) (Outcome, error) {
	e, err := NewEngine(g, model, opts...)
	if err != nil {
		return Outcome{}, err
	}
	if _, err = e.Initialize(start, goal); err != nil {
		return e.Outcome(), err
	}
	return e.RunToCompletion()
}
