// Package driver schedules an initialized search.Engine for presentation.
//
// Modes:
//
//   - Animated (default): every tick the engine takes StepsPerTick steps and
//     the sink receives their StepResults as one Frame.
//   - Fast: the engine runs to completion at once and the sink receives a
//     single Frame carrying the full classification.
//
// Both modes leave the engine in the same terminal state. Animated runs check
// the context between ticks, fast runs only before starting. A cancelled run
// leaves the engine Running, and calling Run again resumes it.
package driver
