package distance

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/katalvlaran/gridpath/cost"
	"github.com/katalvlaran/gridpath/grid"
)

// Field holds the distance of every cell from one source.
// Unreached cells report +Inf.
type Field struct {
	g      *grid.Grid
	source grid.Cell
	dist   []float64
	prev   []int
}

// Compute builds the distance field of g from source.
//
// Preconditions and validation (in order):
//  1. g must be non-nil (ErrNilGrid).
//  2. model.Conn must equal g.Connectivity() (ErrPolicyMismatch).
//  3. source must be in bounds and walkable (ErrInvalidSource).
//
// Complexity: O(V log V) time, O(V) memory.
func Compute(g *grid.Grid, model cost.Model, source grid.Cell, opts ...Option) (*Field, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	if g == nil {
		return nil, ErrNilGrid
	}
	if model.Conn != g.Connectivity() {
		return nil, fmt.Errorf("%w: model %s, grid %s", ErrPolicyMismatch, model.Conn, g.Connectivity())
	}
	if !g.Walkable(source) {
		return nil, fmt.Errorf("%w: (%d,%d)", ErrInvalidSource, source.X, source.Y)
	}

	n := g.Width() * g.Height()
	r := &runner{
		g:       g,
		model:   model,
		options: cfg,
		dist:    make([]float64, n),
		prev:    make([]int, n),
		visited: make([]bool, n),
		pq:      make(cellPQ, 0, n),
	}
	r.init(source)
	r.process()

	return &Field{g: g, source: source, dist: r.dist, prev: r.prev}, nil
}

// Source returns the cell the field was computed from.
func (f *Field) Source() grid.Cell { return f.source }

// To returns the distance of c and whether c was reached.
func (f *Field) To(c grid.Cell) (float64, bool) {
	if !f.g.InBounds(c) {
		return math.Inf(1), false
	}
	d := f.dist[f.index(c)]
	return d, !math.IsInf(d, 1)
}

// PathTo returns a shortest route from the source to c, both included.
// Returns ErrUnreachable if c was never reached.
func (f *Field) PathTo(c grid.Cell) ([]grid.Cell, error) {
	if _, ok := f.To(c); !ok {
		return nil, fmt.Errorf("%w: (%d,%d)", ErrUnreachable, c.X, c.Y)
	}
	var path []grid.Cell
	for i := f.index(c); i >= 0; i = f.prev[i] {
		path = append(path, f.cell(i))
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, nil
}

// Reached returns the number of cells with a finite distance.
func (f *Field) Reached() int {
	count := 0
	for _, d := range f.dist {
		if !math.IsInf(d, 1) {
			count++
		}
	}
	return count
}

// Farthest returns the largest finite distance in the field.
func (f *Field) Farthest() float64 {
	max := 0.0
	for _, d := range f.dist {
		if !math.IsInf(d, 1) && d > max {
			max = d
		}
	}
	return max
}

func (f *Field) index(c grid.Cell) int { return c.Y*f.g.Width() + c.X }

func (f *Field) cell(i int) grid.Cell {
	return grid.Cell{X: i % f.g.Width(), Y: i / f.g.Width()}
}

// runner holds the mutable state of one Compute call.
type runner struct {
	g       *grid.Grid
	model   cost.Model
	options Options
	dist    []float64 // best distance per cell index
	prev    []int     // parent index, -1 for the source and unreached cells
	visited []bool    // distance is final
	pq      cellPQ
}

// init sets every distance to +Inf and pushes the source at 0.
func (r *runner) init(source grid.Cell) {
	for i := range r.dist {
		r.dist[i] = math.Inf(1)
		r.prev[i] = -1
	}
	s := r.index(source)
	r.dist[s] = 0
	heap.Init(&r.pq)
	heap.Push(&r.pq, &cellItem{cell: source, dist: 0})
}

// process pops cells in distance order until the heap is empty or the next
// distance exceeds MaxDistance.
func (r *runner) process() {
	for r.pq.Len() > 0 {
		item := heap.Pop(&r.pq).(*cellItem)
		u := r.index(item.cell)

		// stale entry left behind by a lazy decrease-key
		if r.visited[u] {
			continue
		}
		if item.dist > r.options.MaxDistance {
			break
		}
		r.visited[u] = true
		r.relax(item.cell)
	}
}

// relax improves the neighbours of c, pushing a fresh heap entry for each
// improvement instead of updating the old one.
func (r *runner) relax(c grid.Cell) {
	base := r.dist[r.index(c)]
	for _, n := range r.g.Neighbors(c) {
		v := r.index(n)
		if r.visited[v] {
			continue
		}
		nd := base + r.model.StepCost(c, n)
		if nd > r.options.MaxDistance || nd >= r.dist[v] {
			continue
		}
		r.dist[v] = nd
		r.prev[v] = r.index(c)
		heap.Push(&r.pq, &cellItem{cell: n, dist: nd})
	}
}

func (r *runner) index(c grid.Cell) int { return c.Y*r.g.Width() + c.X }

// cellItem is a heap entry: a cell and its distance when pushed.
type cellItem struct {
	cell grid.Cell
	dist float64
}

// cellPQ is a min-heap of *cellItem ordered by distance.
type cellPQ []*cellItem

func (pq cellPQ) Len() int            { return len(pq) }
func (pq cellPQ) Less(i, j int) bool  { return pq[i].dist < pq[j].dist }
func (pq cellPQ) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *cellPQ) Push(x interface{}) { *pq = append(*pq, x.(*cellItem)) }
func (pq *cellPQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}
