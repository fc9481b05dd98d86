package grid

import (
	"fmt"
	"math"
)

// New classifies every cell of a width×height raster exactly once using
// blocked and returns the resulting immutable snapshot. The predicate is not
// retained, so later changes to the raster do not affect the Grid.
// Returns ErrEmptyGrid if width or height is not positive, ErrTooLarge if
// width×height overflows and ErrNilPredicate if blocked is nil.
// Complexity: O(W×H) time and memory.
func New(width, height int, blocked func(x, y int) bool, opts ...Option) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrEmptyGrid
	}
	if width > math.MaxInt/height {
		return nil, fmt.Errorf("%w: %dx%d", ErrTooLarge, width, height)
	}
	if blocked == nil {
		return nil, ErrNilPredicate
	}
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	cells := make([]bool, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			cells[y*width+x] = blocked(x, y)
		}
	}

	g := &Grid{
		width:   width,
		height:  height,
		conn:    cfg.Conn,
		blocked: cells,
		offsets: offsets8,
	}
	if cfg.Conn == Conn4 {
		g.offsets = offsets4
	}
	return g, nil
}

// From2D builds a Grid from a non-empty, rectangular 2D slice indexed
// values[y][x]. Cells with value ≥ BlockThreshold are blocked.
// Returns ErrEmptyGrid if values has no rows or no columns,
// ErrNonRectangular if any row length differs.
// Complexity: O(W×H) time and memory.
func From2D(values [][]int, opts ...Option) (*Grid, error) {
	if len(values) == 0 || len(values[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	w := len(values[0])
	for _, row := range values {
		if len(row) != w {
			return nil, ErrNonRectangular
		}
	}
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	return New(w, len(values), func(x, y int) bool {
		return values[y][x] >= cfg.BlockThreshold
	}, opts...)
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Connectivity returns the neighbour policy fixed at construction.
func (g *Grid) Connectivity() Connectivity { return g.conn }

// InBounds reports whether c lies within [0,W)×[0,H).
// Complexity: O(1).
func (g *Grid) InBounds(c Cell) bool {
	return c.X >= 0 && c.X < g.width && c.Y >= 0 && c.Y < g.height
}

// IsBlocked reports whether c is a wall. Out-of-bounds cells count as blocked.
// Complexity: O(1).
func (g *Grid) IsBlocked(c Cell) bool {
	if !g.InBounds(c) {
		return true
	}
	return g.blocked[g.index(c)]
}

// Walkable reports whether c is in bounds and not blocked.
func (g *Grid) Walkable(c Cell) bool {
	return !g.IsBlocked(c)
}

// BlockedCount returns the number of blocked cells.
func (g *Grid) BlockedCount() int {
	n := 0
	for _, b := range g.blocked {
		if b {
			n++
		}
	}
	return n
}

// Neighbors returns the walkable cells adjacent to c in fixed clockwise
// order starting at north (N, NE, E, SE, S, SW, W, NW for Conn8;
// N, E, S, W for Conn4). Diagonal moves are allowed even when both
// orthogonal cells beside them are blocked.
// Complexity: O(d), d = 4 or 8.
func (g *Grid) Neighbors(c Cell) []Cell {
	out := make([]Cell, 0, len(g.offsets))
	for _, d := range g.offsets {
		n := Cell{X: c.X + d[0], Y: c.Y + d[1]}
		if g.Walkable(n) {
			out = append(out, n)
		}
	}
	return out
}

// IsDiagonal reports whether a and b differ in both coordinates.
func IsDiagonal(a, b Cell) bool {
	return a.X != b.X && a.Y != b.Y
}

// index maps c to a row‑major index: y*Width + x.
func (g *Grid) index(c Cell) int {
	return c.Y*g.width + c.X
}

// cellAt converts a row‑major index back to a Cell.
func (g *Grid) cellAt(idx int) Cell {
	return Cell{X: idx % g.width, Y: idx / g.width}
}
