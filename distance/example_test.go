package distance_test

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/gridpath/cost"
	"github.com/katalvlaran/gridpath/distance"
	"github.com/katalvlaran/gridpath/grid"
)

// ExampleCompute prints the distances of a small strip with one wall.
func ExampleCompute() {
	g, _ := grid.From2D([][]int{
		{0, 0, 1, 0},
		{0, 0, 0, 0},
	})
	m, _ := cost.New()
	f, _ := distance.Compute(g, m, grid.Cell{X: 0, Y: 0})

	for y := 0; y < g.Height(); y++ {
		row := make([]string, 0, g.Width())
		for x := 0; x < g.Width(); x++ {
			if d, ok := f.To(grid.Cell{X: x, Y: y}); ok {
				row = append(row, fmt.Sprintf("%.2f", d))
			} else {
				row = append(row, "--")
			}
		}
		fmt.Println(strings.Join(row, " "))
	}
	// Output:
	// 0.00 1.00 -- 3.83
	// 1.00 1.41 2.41 3.41
}
