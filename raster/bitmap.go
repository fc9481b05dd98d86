package raster

import (
	"fmt"
	"math"

	"github.com/katalvlaran/gridpath/grid"
)

// Bitmap is a mutable blocked/open raster.
type Bitmap struct {
	width, height int
	blocked       []bool
}

// NewBitmap returns an all-open width×height bitmap.
// Returns ErrBadSize if either dimension is not positive or the cell count
// overflows.
func NewBitmap(width, height int) (*Bitmap, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrBadSize, width, height)
	}
	if width > math.MaxInt/height {
		return nil, fmt.Errorf("%w: %dx%d overflows", ErrBadSize, width, height)
	}
	return &Bitmap{width: width, height: height, blocked: make([]bool, width*height)}, nil
}

// Width returns the number of columns.
func (b *Bitmap) Width() int { return b.width }

// Height returns the number of rows.
func (b *Bitmap) Height() int { return b.height }

// Blocked reports whether (x, y) is a wall. Out-of-range points are walls.
func (b *Bitmap) Blocked(x, y int) bool {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return true
	}
	return b.blocked[y*b.width+x]
}

// Set paints (x, y) as wall or floor. Out-of-range points are ignored.
func (b *Bitmap) Set(x, y int, blocked bool) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return
	}
	b.blocked[y*b.width+x] = blocked
}

// Count returns the number of walls.
func (b *Bitmap) Count() int {
	n := 0
	for _, v := range b.blocked {
		if v {
			n++
		}
	}
	return n
}

// Clone returns an independent copy.
func (b *Bitmap) Clone() *Bitmap {
	out := &Bitmap{width: b.width, height: b.height, blocked: make([]bool, len(b.blocked))}
	copy(out.blocked, b.blocked)
	return out
}

// Resample returns a width×height bitmap where every point takes the value of
// the nearest source point: src = dst × srcSize / dstSize, truncated.
// Returns ErrBadSize if either dimension is not positive.
// Complexity: O(width×height).
func (b *Bitmap) Resample(width, height int) (*Bitmap, error) {
	out, err := NewBitmap(width, height)
	if err != nil {
		return nil, err
	}
	for y := 0; y < height; y++ {
		sy := y * b.height / height
		for x := 0; x < width; x++ {
			sx := x * b.width / width
			out.blocked[y*width+x] = b.blocked[sy*b.width+sx]
		}
	}
	return out, nil
}

// ScaleCell maps c from a fromW×fromH raster onto a toW×toH one:
// dst = src × toSize / fromSize, truncated. It carries endpoint markers
// through Resample.
func ScaleCell(c grid.Cell, fromW, fromH, toW, toH int) grid.Cell {
	return grid.Cell{X: c.X * toW / fromW, Y: c.Y * toH / fromH}
}

// Grid snapshots the bitmap into an immutable grid.Grid.
func (b *Bitmap) Grid(opts ...grid.Option) (*grid.Grid, error) {
	return grid.New(b.width, b.height, b.Blocked, opts...)
}
