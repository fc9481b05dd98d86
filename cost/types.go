// Package cost defines the cost model options and sentinel errors used to
// weight a grid search.
package cost

import (
	"errors"
	"math"

	"github.com/katalvlaran/gridpath/grid"
)

// ErrBadMultiplier indicates a negative, NaN or infinite multiplier.
var ErrBadMultiplier = errors.New("cost: multiplier must be a finite non-negative number")

const (
	// Orthogonal is the base cost of a N/E/S/W move.
	Orthogonal = 1.0
	// Diagonal is the base cost of a diagonal move (√2 × Orthogonal).
	Diagonal = math.Sqrt2 * Orthogonal
)

// Options configures a Model.
//
//   - GMultiplier: scales every step cost. 0 degrades to greedy best-first.
//   - HMultiplier: scales the heuristic. 0 degrades to uniform-cost search,
//     values above 1 trade optimality for fewer expansions.
//   - Conn: move set; must match the grid the model is used with.
type Options struct {
	GMultiplier float64
	HMultiplier float64
	Conn        grid.Connectivity
}

// Option represents a functional option for configuring a Model.
type Option func(*Options)

// WithGMultiplier sets the step-cost multiplier.
func WithGMultiplier(m float64) Option {
	return func(o *Options) {
		o.GMultiplier = m
	}
}

// WithHMultiplier sets the heuristic multiplier.
func WithHMultiplier(m float64) Option {
	return func(o *Options) {
		o.HMultiplier = m
	}
}

// WithConnectivity selects the move set the model prices.
func WithConnectivity(conn grid.Connectivity) Option {
	return func(o *Options) {
		o.Conn = conn
	}
}

// DefaultOptions returns GMultiplier=1, HMultiplier=1, Conn=Conn8.
func DefaultOptions() Options {
	return Options{
		GMultiplier: 1,
		HMultiplier: 1,
		Conn:        grid.Conn8,
	}
}

func validMultiplier(m float64) bool {
	return m >= 0 && !math.IsInf(m, 0) && !math.IsNaN(m)
}
