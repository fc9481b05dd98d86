// Package grid captures a rectangular obstacle raster as an immutable
// walkable/blocked snapshot that a search can query without touching the
// raster again.
//
// What:
//
//   - Grid classifies every cell once, through a caller-supplied predicate
//     (New) or a 2D integer slice with a block threshold (From2D).
//   - Neighbors yields adjacent walkable cells in fixed clockwise order
//     starting at north, so searches over identical input are reproducible.
//   - Regions and SameRegion expose connected walkable areas, which drivers
//     use to explain why a search failed.
//
// Options:
//
//   - WithConnectivity: Conn8 (default, diagonal moves) or Conn4.
//   - WithBlockThreshold: minimum From2D value treated as a wall (default 1).
//
// Complexity:
//
//   - New / From2D:      O(W×H) time and memory.
//   - Neighbors:         O(d), d = 4 or 8.
//   - Regions:           O(W×H×d), Memory: O(W×H).
//
// Errors:
//
//   - ErrEmptyGrid: non-positive dimensions or an empty 2D slice.
//   - ErrNonRectangular: rows have differing lengths.
//   - ErrNilPredicate: New was given a nil classifier.
package grid
