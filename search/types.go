// Package search defines the statuses, phases, step reports, options and
// sentinel errors of the incremental grid search engine.
package search

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/gridpath/frontier"
	"github.com/katalvlaran/gridpath/grid"
)

// Sentinel errors returned by the Engine.
var (
	// ErrNilGrid indicates NewEngine was given a nil *grid.Grid.
	ErrNilGrid = errors.New("search: grid is nil")

	// ErrPolicyMismatch indicates the cost model prices a different move set
	// than the grid produces.
	ErrPolicyMismatch = errors.New("search: cost model connectivity does not match grid")

	// ErrInvalidEndpoint indicates start or goal is out of bounds or blocked.
	// The engine moves straight to Failed without searching.
	ErrInvalidEndpoint = errors.New("search: invalid endpoint")

	// ErrEmptyFrontier indicates the search space was exhausted before the
	// goal was settled. It wraps frontier.ErrEmptyFrontier.
	ErrEmptyFrontier = fmt.Errorf("search: no path: %w", frontier.ErrEmptyFrontier)

	// ErrNotSucceeded indicates a path was requested outside the Succeeded phase.
	ErrNotSucceeded = errors.New("search: search has not succeeded")

	// ErrNotRunning indicates Step was called outside the Running phase.
	ErrNotRunning = errors.New("search: engine is not running")

	// ErrAlreadyInitialized indicates Initialize was called twice.
	ErrAlreadyInitialized = errors.New("search: engine already initialized")

	// ErrStepLimit indicates RunToCompletion hit the MaxSteps budget. The
	// engine stays Running and may be resumed.
	ErrStepLimit = errors.New("search: step limit reached")
)

// Status classifies a cell for the renderer.
type Status int

const (
	// Undiscovered is the implicit status of every cell never touched.
	Undiscovered Status = iota
	// Frontier marks a discovered cell awaiting expansion.
	Frontier
	// Settled marks a cell whose cost is final.
	Settled
	// Path marks a cell on the reconstructed route. It only appears in
	// reports; records never carry it.
	Path
)

var statusNames = [...]string{"undiscovered", "frontier", "settled", "path"}

// String returns the lower-case status name.
func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return fmt.Sprintf("status(%d)", int(s))
	}
	return statusNames[s]
}

// MarshalText encodes the status by name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Phase is the engine state: Uninitialized → Running → {Succeeded, Failed}.
type Phase int

const (
	// Uninitialized is the phase before Initialize.
	Uninitialized Phase = iota
	// Running accepts Step calls.
	Running
	// Succeeded means the goal was settled and a path is available.
	Succeeded
	// Failed means the endpoints were invalid or the frontier ran dry.
	Failed
)

var phaseNames = [...]string{"uninitialized", "running", "succeeded", "failed"}

// String returns the lower-case phase name.
func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return fmt.Sprintf("phase(%d)", int(p))
	}
	return phaseNames[p]
}

// MarshalText encodes the phase by name.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Terminal reports whether p is Succeeded or Failed.
func (p Phase) Terminal() bool {
	return p == Succeeded || p == Failed
}

// Record is the per-cell bookkeeping, created on first discovery.
type Record struct {
	BestCost  float64   // lowest accumulated cost found so far
	Parent    grid.Cell // predecessor on the best known route
	HasParent bool      // false only for the start cell
	Status    Status    // Frontier or Settled
}

// Change reports a cell whose status or cost changed.
type Change struct {
	Cell     grid.Cell `json:"cell"`
	Status   Status    `json:"status"`
	BestCost float64   `json:"best_cost"`
}

// StepResult is the observable outcome of Initialize or one Step.
// Changes are ordered: the settled cell first, then changed neighbours in
// grid neighbour order, then (on success) path cells from start to goal.
type StepResult struct {
	Index   int       `json:"index"`
	Current grid.Cell `json:"current"`
	Changes []Change  `json:"changes"`
	Phase   Phase     `json:"phase"`
}

// Outcome summarizes a search.
type Outcome struct {
	Phase      Phase       `json:"phase"`
	Path       []grid.Cell `json:"path,omitempty"`
	Cost       float64     `json:"cost"`
	Steps      int         `json:"steps"`
	Settled    int         `json:"settled"`
	Discovered int         `json:"discovered"`
}

// Options configures an Engine.
//
//   - Observer: invoked with every StepResult, including those produced inside
//     RunToCompletion. Must not call back into the engine.
//   - MaxSteps: if positive, RunToCompletion stops with ErrStepLimit once the
//     engine has taken this many steps. Step itself is never limited.
//   - Reopen: move Settled cells back to the frontier when a cheaper route
//     appears. With HMultiplier > GMultiplier this narrows the gap to the
//     optimum but cannot close it; re-expansion can become exponential in
//     the worst case.
type Options struct {
	Observer func(StepResult)
	MaxSteps int
	Reopen   bool
}

// Option represents a functional option for configuring an Engine.
type Option func(*Options)

// WithObserver installs fn as the per-step observer.
func WithObserver(fn func(StepResult)) Option {
	return func(o *Options) {
		o.Observer = fn
	}
}

// WithMaxSteps caps RunToCompletion at n steps. n must be non-negative;
// zero means no limit.
func WithMaxSteps(n int) Option {
	return func(o *Options) {
		if n < 0 {
			panic("search: WithMaxSteps requires n >= 0")
		}
		o.MaxSteps = n
	}
}

// WithReopen enables reopening of Settled cells.
func WithReopen() Option {
	return func(o *Options) {
		o.Reopen = true
	}
}

// DefaultOptions returns Options with no observer, no step limit and
// settled cells never reopened.
func DefaultOptions() Options {
	return Options{}
}
