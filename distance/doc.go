// Package distance computes single-source shortest distances over a grid
// snapshot with Dijkstra's algorithm.
//
// What:
//
//   - Compute expands every walkable cell reachable from a source in order of
//     increasing accumulated cost, pricing moves with a cost.Model (the
//     heuristic multiplier is ignored).
//   - The resulting Field answers distance and path queries for any cell.
//
// Why:
//
//   - It is the exact reference against which A* routes are verified
//     (gridpath solve --verify and the search test-suite).
//   - A full field is also what a heat-map overlay needs.
//
// Complexity:
//
//   - Time:  O(V log V) with V = W×H; the neighbourhood is bounded by 8.
//   - Space: O(V) for distances and parents, plus O(E) heap entries in the
//     worst case under lazy decrease-key.
//
// Options:
//
//   - WithMaxDistance(x): cells farther than x are left unreached.
//
// Errors (sentinel):
//
//   - ErrNilGrid, ErrPolicyMismatch, ErrInvalidSource: rejected by Compute.
//   - ErrUnreachable: PathTo on a cell the field never reached.
//   - ErrBadMaxDistance: panic message of WithMaxDistance.
package distance
