// Package distance defines the sentinel errors and options of the
// single-source distance field computed over a grid.
package distance

import (
	"errors"
	"math"
)

// Sentinel errors returned by Compute and Field.
var (
	// ErrNilGrid indicates that a nil *grid.Grid was passed to Compute.
	ErrNilGrid = errors.New("distance: grid is nil")

	// ErrPolicyMismatch indicates that the cost model prices a different move
	// set than the grid generates.
	ErrPolicyMismatch = errors.New("distance: cost model connectivity does not match grid")

	// ErrInvalidSource indicates the source cell is out of bounds or blocked.
	ErrInvalidSource = errors.New("distance: source is out of bounds or blocked")

	// ErrUnreachable indicates a path was requested to a cell the field never reached.
	ErrUnreachable = errors.New("distance: cell is unreachable")

	// ErrBadMaxDistance indicates that MaxDistance was negative or NaN.
	ErrBadMaxDistance = errors.New("distance: MaxDistance must be non-negative")
)

// Options configures Compute.
//
// MaxDistance – cells whose distance would exceed this value are not
// explored. Must be ≥ 0. Default is +Inf (no cap).
type Options struct {
	MaxDistance float64
}

// Option represents a functional option for configuring Compute.
type Option func(*Options)

// WithMaxDistance caps exploration at max.
// Panics with ErrBadMaxDistance if max is negative or NaN.
func WithMaxDistance(max float64) Option {
	return func(o *Options) {
		if max < 0 || math.IsNaN(max) {
			panic(ErrBadMaxDistance.Error())
		}
		o.MaxDistance = max
	}
}

// DefaultOptions returns Options with no distance cap.
func DefaultOptions() Options {
	return Options{MaxDistance: math.Inf(1)}
}
