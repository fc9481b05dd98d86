package search_test

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/gridpath/cost"
	"github.com/katalvlaran/gridpath/grid"
	"github.com/katalvlaran/gridpath/search"
)

// ExampleSolve finds the diagonal route across an open 5×5 board.
func ExampleSolve() {
	g, _ := grid.New(5, 5, func(x, y int) bool { return false })
	m, _ := cost.New()

	out, err := search.Solve(g, m, grid.Cell{X: 0, Y: 0}, grid.Cell{X: 4, Y: 4})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(out.Path)
	fmt.Printf("cost=%.3f phase=%s\n", out.Cost, out.Phase)
	// Output:
	// [{0 0} {1 1} {2 2} {3 3} {4 4}]
	// cost=5.657 phase=succeeded
}

// ExampleEngine_Step drives the search one expansion at a time, the way an
// animated front-end does between frames.
func ExampleEngine_Step() {
	g, _ := grid.From2D([][]int{
		{0, 0, 0},
	})
	m, _ := cost.New()
	e, _ := search.NewEngine(g, m)

	_, _ = e.Initialize(grid.Cell{X: 0, Y: 0}, grid.Cell{X: 2, Y: 0})
	for e.Phase() == search.Running {
		res, _ := e.Step()
		fmt.Printf("step %d:", res.Index)
		for _, ch := range res.Changes {
			fmt.Printf(" (%d,%d)=%s", ch.Cell.X, ch.Cell.Y, ch.Status)
		}
		fmt.Println()
	}
	// Output:
	// step 1: (0,0)=settled (1,0)=frontier
	// step 2: (1,0)=settled (2,0)=frontier
	// step 3: (2,0)=settled (0,0)=path (1,0)=path (2,0)=path
}

// ExampleEngine_RunToCompletion shows the failure reported for a walled-off goal.
func ExampleEngine_RunToCompletion() {
	g, _ := grid.From2D([][]int{
		{0, 1, 0},
	})
	m, _ := cost.New()
	e, _ := search.NewEngine(g, m)
	_, _ = e.Initialize(grid.Cell{X: 0, Y: 0}, grid.Cell{X: 2, Y: 0})

	out, err := e.RunToCompletion()
	fmt.Println(out.Phase, errors.Is(err, search.ErrEmptyFrontier))

	_, err = e.ReconstructPath()
	fmt.Println(errors.Is(err, search.ErrNotSucceeded))
	// Output:
	// failed true
	// true
}
