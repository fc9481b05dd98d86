// Package frontier provides the open set of a best-first search: a binary
// min-heap with an item index that supports decrease-key.
//
// Ordering:
//
//   - Smaller priority first.
//   - Equal priorities are served in insertion order (oldest first), which
//     keeps search results reproducible for identical input.
//   - DecreaseKey keeps the item's original insertion sequence.
//
// Complexity:
//
//   - Push, PopMin, DecreaseKey, Remove: O(log n).
//   - Contains, Priority, Peek, Len:     O(1).
//   - Items:                             O(n log n), non-destructive.
//
// Errors (sentinel):
//
//   - ErrEmptyFrontier:    PopMin or Peek on an empty frontier.
//   - ErrDuplicate:        Push of an item already queued.
//   - ErrNotFound:         DecreaseKey or Remove of an absent item.
//   - ErrPriorityIncrease: DecreaseKey with a larger priority.
package frontier
