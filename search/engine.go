package search

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/gridpath/cost"
	"github.com/katalvlaran/gridpath/frontier"
	"github.com/katalvlaran/gridpath/grid"
)

// Engine runs one A* search over a grid snapshot, one expansion per Step.
// An Engine is single-use: a new start, goal, cost model or raster requires
// a new Engine. It is not safe for concurrent use, but independent engines
// share nothing and may run in parallel.
type Engine struct {
	grid    *grid.Grid
	model   cost.Model
	options Options

	state *State
	open  *frontier.Frontier[grid.Cell]

	start, goal grid.Cell
	phase       Phase
	steps       int
	cause       error       // why the engine Failed
	path        []grid.Cell // cached on success
}

// NewEngine prepares an engine in the Uninitialized phase.
//
// Preconditions and validation (in order):
//  1. g must be non-nil (ErrNilGrid).
//  2. model.Conn must equal g.Connectivity() (ErrPolicyMismatch).
func NewEngine(g *grid.Grid, model cost.Model, opts ...Option) (*Engine, error) {
	if g == nil {
		return nil, ErrNilGrid
	}
	if model.Conn != g.Connectivity() {
		return nil, fmt.Errorf("%w: model %s, grid %s", ErrPolicyMismatch, model.Conn, g.Connectivity())
	}
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Engine{
		grid:    g,
		model:   model,
		options: cfg,
		state:   newState(),
		open:    frontier.New[grid.Cell](),
		phase:   Uninitialized,
	}, nil
}

// Initialize validates the endpoints and seeds the frontier with start.
//
// If start or goal is out of bounds or blocked, the engine moves directly to
// Failed and returns an error wrapping ErrInvalidEndpoint; no record is
// created. Otherwise start gets cost 0, no parent and priority
// Heuristic(start, goal), and the engine is Running.
// Returns ErrAlreadyInitialized outside the Uninitialized phase.
func (e *Engine) Initialize(start, goal grid.Cell) (StepResult, error) {
	if e.phase != Uninitialized {
		return StepResult{Index: e.steps, Phase: e.phase}, ErrAlreadyInitialized
	}
	e.start, e.goal = start, goal

	if err := e.checkEndpoint("start", start); err != nil {
		return e.fail(err), err
	}
	if err := e.checkEndpoint("goal", goal); err != nil {
		return e.fail(err), err
	}

	e.state.discover(start, 0, grid.Cell{}, false)
	if err := e.open.Push(start, e.model.Heuristic(start, goal)); err != nil {
		return StepResult{}, fmt.Errorf("search: seeding frontier: %w", err)
	}
	e.phase = Running

	res := StepResult{
		Index:   0,
		Current: start,
		Changes: []Change{{Cell: start, Status: Frontier, BestCost: 0}},
		Phase:   Running,
	}
	e.notify(res)
	return res, nil
}

// Step expands the cheapest frontier cell.
//
// Behavior:
//  1. Pop the minimum-priority cell c; if the frontier is empty the engine
//     moves to Failed and ErrEmptyFrontier is returned.
//  2. Mark c Settled. If c is the goal the engine moves to Succeeded and the
//     result also lists the path cells (status Path) from start to goal.
//  3. Otherwise relax every neighbour n in grid order: an undiscovered n is
//     pushed; a Frontier n reached more cheaply gets a lower key; a Settled n
//     is left alone unless WithReopen is set.
//
// Returns ErrNotRunning outside the Running phase without mutating state.
func (e *Engine) Step() (StepResult, error) {
	if e.phase != Running {
		return StepResult{Index: e.steps, Phase: e.phase}, fmt.Errorf("%w: phase %s", ErrNotRunning, e.phase)
	}
	e.steps++

	c, _, err := e.open.PopMin()
	if err != nil {
		return e.fail(ErrEmptyFrontier), ErrEmptyFrontier
	}

	rec := e.state.settle(c)
	res := StepResult{
		Index:   e.steps,
		Current: c,
		Changes: []Change{{Cell: c, Status: Settled, BestCost: rec.BestCost}},
		Phase:   Running,
	}

	if c == e.goal {
		e.phase = Succeeded
		e.path = e.walkParents()
		for _, p := range e.path {
			res.Changes = append(res.Changes, Change{Cell: p, Status: Path, BestCost: e.state.records[p].BestCost})
		}
		res.Phase = Succeeded
		e.notify(res)
		return res, nil
	}

	// Plan every relaxation before applying any, so a step is all-or-nothing.
	plan := e.relaxations(c, rec.BestCost)
	for _, r := range plan {
		if err := e.apply(c, r); err != nil {
			return res, err
		}
		res.Changes = append(res.Changes, Change{Cell: r.cell, Status: Frontier, BestCost: r.cost})
	}

	e.notify(res)
	return res, nil
}

// RunToCompletion calls Step until the engine is terminal and returns the
// Outcome. Each step is reported to the observer exactly as a manual Step
// would be, so both modes end in the same state.
//
// Returns the Failed cause (ErrEmptyFrontier or ErrInvalidEndpoint) on
// failure, ErrNotRunning if the engine was never initialized, and
// ErrStepLimit if MaxSteps was reached first.
func (e *Engine) RunToCompletion() (Outcome, error) {
	if e.phase == Uninitialized {
		return e.Outcome(), fmt.Errorf("%w: phase %s", ErrNotRunning, e.phase)
	}
	for e.phase == Running {
		if e.options.MaxSteps > 0 && e.steps >= e.options.MaxSteps {
			return e.Outcome(), fmt.Errorf("%w: %d steps", ErrStepLimit, e.options.MaxSteps)
		}
		if _, err := e.Step(); err != nil && !errors.Is(err, ErrEmptyFrontier) {
			return e.Outcome(), err
		}
	}
	if e.phase == Failed {
		return e.Outcome(), e.cause
	}
	return e.Outcome(), nil
}

// ReconstructPath returns the route from start to goal. Each call returns a
// fresh copy of the same sequence.
// Returns ErrNotSucceeded outside the Succeeded phase.
func (e *Engine) ReconstructPath() ([]grid.Cell, error) {
	if e.phase != Succeeded {
		return nil, fmt.Errorf("%w: phase %s", ErrNotSucceeded, e.phase)
	}
	out := make([]grid.Cell, len(e.path))
	copy(out, e.path)
	return out, nil
}

// PathCost returns the accumulated cost of the goal.
// Returns ErrNotSucceeded outside the Succeeded phase.
func (e *Engine) PathCost() (float64, error) {
	if e.phase != Succeeded {
		return 0, fmt.Errorf("%w: phase %s", ErrNotSucceeded, e.phase)
	}
	return e.state.records[e.goal].BestCost, nil
}

// Phase returns the current engine phase.
func (e *Engine) Phase() Phase { return e.phase }

// Err returns why the engine Failed, or nil.
func (e *Engine) Err() error { return e.cause }

// Start returns the start cell given to Initialize.
func (e *Engine) Start() grid.Cell { return e.start }

// Goal returns the goal cell given to Initialize.
func (e *Engine) Goal() grid.Cell { return e.goal }

// Steps returns the number of Step calls that advanced the engine.
func (e *Engine) Steps() int { return e.steps }

// Grid returns the snapshot the engine searches.
func (e *Engine) Grid() *grid.Grid { return e.grid }

// Model returns the cost model fixed at construction.
func (e *Engine) Model() cost.Model { return e.model }

// State exposes the record table for read-only inspection.
func (e *Engine) State() *State { return e.state }

// FrontierLen returns the number of cells awaiting expansion.
func (e *Engine) FrontierLen() int { return e.open.Len() }

// Outcome summarizes the search so far.
func (e *Engine) Outcome() Outcome {
	out := Outcome{
		Phase:      e.phase,
		Steps:      e.steps,
		Settled:    e.state.Settled(),
		Discovered: e.state.Discovered(),
	}
	if e.phase == Succeeded {
		out.Path, _ = e.ReconstructPath()
		out.Cost, _ = e.PathCost()
	}
	return out
}

// Classify returns every discovered cell with its current status in
// row-major order. After success, cells on the path report Path.
// Complexity: O(W×H).
func (e *Engine) Classify() []Change {
	onPath := make(map[grid.Cell]bool, len(e.path))
	for _, p := range e.path {
		onPath[p] = true
	}
	out := make([]Change, 0, e.state.Discovered())
	for y := 0; y < e.grid.Height(); y++ {
		for x := 0; x < e.grid.Width(); x++ {
			c := grid.Cell{X: x, Y: y}
			r, ok := e.state.records[c]
			if !ok {
				continue
			}
			st := r.Status
			if onPath[c] {
				st = Path
			}
			out = append(out, Change{Cell: c, Status: st, BestCost: r.BestCost})
		}
	}
	return out
}

// relaxation is a planned update of one neighbour.
type relaxation struct {
	cell     grid.Cell
	cost     float64
	priority float64
	kind     relaxKind
}

type relaxKind int

const (
	relaxDiscover relaxKind = iota
	relaxDecrease
	relaxReopen
)

// relaxations computes the neighbour updates of expanding c without
// mutating anything.
func (e *Engine) relaxations(c grid.Cell, base float64) []relaxation {
	var plan []relaxation
	for _, n := range e.grid.Neighbors(c) {
		candidate := base + e.model.StepCost(c, n)
		r, known := e.state.records[n]
		var kind relaxKind
		switch {
		case !known:
			kind = relaxDiscover
		case candidate >= r.BestCost:
			continue
		case r.Status == Frontier:
			kind = relaxDecrease
		case e.options.Reopen:
			kind = relaxReopen
		default:
			continue // settled cells are final
		}
		plan = append(plan, relaxation{
			cell:     n,
			cost:     candidate,
			priority: e.model.Total(candidate, n, e.goal),
			kind:     kind,
		})
	}
	return plan
}

// apply performs one planned relaxation reached from parent.
func (e *Engine) apply(parent grid.Cell, r relaxation) error {
	var err error
	switch r.kind {
	case relaxDiscover:
		e.state.discover(r.cell, r.cost, parent, true)
		err = e.open.Push(r.cell, r.priority)
	case relaxDecrease:
		e.state.improve(r.cell, r.cost, parent)
		err = e.open.DecreaseKey(r.cell, r.priority)
	case relaxReopen:
		e.state.improve(r.cell, r.cost, parent)
		err = e.open.Push(r.cell, r.priority)
	}
	if err != nil {
		return fmt.Errorf("search: relaxing %v: %w", r.cell, err)
	}
	return nil
}

// walkParents follows parent links from the goal back to the start.
func (e *Engine) walkParents() []grid.Cell {
	path := []grid.Cell{e.goal}
	for cur := e.goal; cur != e.start; {
		prev, ok := e.state.Parent(cur)
		if !ok || len(path) > e.state.Discovered() {
			break
		}
		path = append(path, prev)
		cur = prev
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// checkEndpoint reports ErrInvalidEndpoint for an out-of-bounds or blocked cell.
func (e *Engine) checkEndpoint(name string, c grid.Cell) error {
	if !e.grid.InBounds(c) {
		return fmt.Errorf("%w: %s (%d,%d) is out of bounds %dx%d",
			ErrInvalidEndpoint, name, c.X, c.Y, e.grid.Width(), e.grid.Height())
	}
	if e.grid.IsBlocked(c) {
		return fmt.Errorf("%w: %s (%d,%d) is blocked", ErrInvalidEndpoint, name, c.X, c.Y)
	}
	return nil
}

// fail moves the engine to Failed with cause and reports it.
func (e *Engine) fail(cause error) StepResult {
	e.phase = Failed
	e.cause = cause
	res := StepResult{Index: e.steps, Current: e.start, Phase: Failed}
	e.notify(res)
	return res
}

func (e *Engine) notify(res StepResult) {
	if e.options.Observer != nil {
		e.options.Observer(res)
	}
}
