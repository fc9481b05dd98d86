// Package render paints search progress for a human.
//
// Two surfaces share one input, the []search.Change lists carried by every
// search.StepResult:
//
//   - Canvas: one cell per scale×scale block of an *image.RGBA, exportable
//     as PNG. Walls black, floor white, frontier green, settled red,
//     path and endpoints blue.
//   - Terminal: one character per cell, redrawn in place with ANSI escapes.
//
// GeoJSON exports a whole engine instead: endpoints, explored cells and the
// route as features in grid units, for map and plotting tools.
//
// Both are incremental: Apply touches only the listed cells, so replaying a
// search step by step and applying Engine.Classify once give the same picture.
package render
