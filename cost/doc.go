// Package cost prices moves on a grid and estimates remaining distance for
// heuristic search.
//
// StepCost charges 1 for orthogonal and √2 for diagonal moves, times
// GMultiplier. Heuristic is octile (Conn8) or Manhattan (Conn4) distance,
// times HMultiplier. The two multipliers are independent:
//
//   - HMultiplier = 0 reduces A* to uniform-cost search (Dijkstra).
//   - GMultiplier = 0 reduces A* to greedy best-first search.
//   - HMultiplier > GMultiplier makes the heuristic inadmissible. Searches
//     expand fewer cells and may return a longer route. This is a deliberate
//     user-facing trade-off.
//
// The Model's Conn must match the grid.Grid it is used with; the search
// engine rejects a mismatch rather than mixing move policies.
package cost
