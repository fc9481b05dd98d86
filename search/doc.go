// Package search implements an incremental A* engine over a grid.Grid.
//
// The engine exposes its progress one expansion at a time so a driver can
// animate the search (one Step per display refresh) or finish it at once
// (RunToCompletion). Both modes go through the same Step code and end in the
// same state.
//
// State machine:
//
//	Uninitialized ──Initialize──▶ Running ──Step…──▶ Succeeded
//	       │                         │
//	       └──invalid endpoint──▶ Failed ◀──frontier exhausted
//
// Step protocol:
//
//   - Pop the frontier cell with the lowest g + h, oldest first among ties.
//   - Settle it; if it is the goal the search succeeds.
//   - Relax each neighbour in the grid's clockwise order. New cells join the
//     frontier, cheaper routes lower an existing key. Settled cells are final
//     unless WithReopen is set.
//   - Report the changed cells, tagged Settled, Frontier or (once the goal is
//     reached) Path, for an external renderer.
//
// Optimality:
//
//   - With HMultiplier ≤ GMultiplier the heuristic is admissible and
//     consistent and the returned route is a shortest one.
//   - Larger heuristic multipliers make the search greedier. Because settled
//     cells are not reopened, a cheaper route through an already settled cell
//     can be missed. WithReopen re-expands such cells, which brings the cost
//     closer to the optimum but does not guarantee it while h overestimates.
//
// Errors (sentinel):
//
//   - ErrInvalidEndpoint: start or goal out of bounds or blocked; Failed at Initialize.
//   - ErrEmptyFrontier:   search space exhausted; Failed. Wraps frontier.ErrEmptyFrontier.
//   - ErrNotSucceeded:    path requested outside Succeeded; no state change.
//   - ErrNotRunning, ErrAlreadyInitialized: phase contract violations.
//   - ErrStepLimit:       RunToCompletion hit WithMaxSteps; still Running.
//   - ErrNilGrid, ErrPolicyMismatch: rejected by NewEngine.
//
// Concurrency:
//
//   - An Engine owns its state and is not safe for concurrent use.
//   - Engines share nothing; independent searches may run in parallel.
//   - Cancellation is cooperative: stop calling Step.
package search
