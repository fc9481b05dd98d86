// Package grid defines the cell, connectivity and option types together with
// the sentinel errors of the grid subpackage of github.com/katalvlaran/gridpath.
package grid

import (
	"errors"
)

// Sentinel errors for grid construction.
var (
	// ErrEmptyGrid indicates a non-positive width or height, or an input
	// 2D slice with no rows or no columns.
	ErrEmptyGrid = errors.New("grid: width and height must be positive")
	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = errors.New("grid: all rows must have the same length")
	// ErrNilPredicate indicates a nil blocked-cell classifier.
	ErrNilPredicate = errors.New("grid: blocked predicate is nil")
	// ErrTooLarge indicates width×height does not fit in an int.
	ErrTooLarge = errors.New("grid: width×height overflows")
)

// Connectivity selects the move set: orthogonal (Conn4) or including diagonals (Conn8).
type Connectivity int

const (
	// Conn8 uses 8-directional connectivity: N, NE, E, SE, S, SW, W, NW.
	Conn8 Connectivity = iota
	// Conn4 uses 4-directional connectivity: N, E, S, W.
	Conn4
)

// String returns "conn8" or "conn4".
func (c Connectivity) String() string {
	if c == Conn4 {
		return "conn4"
	}
	return "conn8"
}

// Cell is a grid position. Two cells are equal iff their coordinates match.
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Options contains tunable parameters for grid construction.
type Options struct {
	// Conn chooses 4- or 8-directional connectivity.
	Conn Connectivity
	// BlockThreshold is the minimum value From2D treats as blocked.
	BlockThreshold int
}

// Option configures grid construction.
type Option func(*Options)

// WithConnectivity selects the neighbour policy of the grid.
func WithConnectivity(conn Connectivity) Option {
	return func(o *Options) {
		o.Conn = conn
	}
}

// WithBlockThreshold sets the minimum cell value From2D classifies as blocked.
func WithBlockThreshold(threshold int) Option {
	return func(o *Options) {
		o.BlockThreshold = threshold
	}
}

// DefaultOptions returns Options with defaults:
// Conn=Conn8, BlockThreshold=1 (values ≥1 are walls).
func DefaultOptions() Options {
	return Options{
		Conn:           Conn8,
		BlockThreshold: 1,
	}
}

// Grid is an immutable walkable/blocked snapshot of a rectangular raster.
// blocked is stored row-major; offsets are precomputed from Conn in
// clockwise order starting at north.
type Grid struct {
	width, height int
	conn          Connectivity
	blocked       []bool
	offsets       [][2]int
}

// clockwise from north; y grows downward.
var (
	offsets8 = [][2]int{{0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}}
	offsets4 = [][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}
)
