package frontier

import (
	"container/heap"
	"fmt"
)

// Frontier is a min-priority queue of distinct items. Equal priorities are
// served oldest-first by insertion sequence; DecreaseKey keeps an item's
// original sequence number. All mutating operations are O(log n).
//
// The zero value is not usable; call New.
type Frontier[T comparable] struct {
	queue itemPQ[T]
	index map[T]*item[T]
	seq   uint64
}

// New returns an empty Frontier.
func New[T comparable]() *Frontier[T] {
	return &Frontier[T]{
		queue: make(itemPQ[T], 0),
		index: make(map[T]*item[T]),
	}
}

// Len returns the number of queued items.
func (f *Frontier[T]) Len() int { return f.queue.Len() }

// Contains reports whether v is queued.
// Complexity: O(1).
func (f *Frontier[T]) Contains(v T) bool {
	_, ok := f.index[v]
	return ok
}

// Priority returns the current priority of v and whether it is queued.
func (f *Frontier[T]) Priority(v T) (float64, bool) {
	it, ok := f.index[v]
	if !ok {
		return 0, false
	}
	return it.priority, true
}

// Push inserts v with the given priority.
// Returns ErrDuplicate if v is already queued.
func (f *Frontier[T]) Push(v T, priority float64) error {
	if _, ok := f.index[v]; ok {
		return fmt.Errorf("%w: %v", ErrDuplicate, v)
	}
	it := &item[T]{value: v, priority: priority, seq: f.seq}
	f.seq++
	heap.Push(&f.queue, it)
	f.index[v] = it
	return nil
}

// PopMin removes and returns the item with the smallest priority, oldest
// first among equals. Returns ErrEmptyFrontier when nothing is queued.
func (f *Frontier[T]) PopMin() (T, float64, error) {
	if f.queue.Len() == 0 {
		var zero T
		return zero, 0, ErrEmptyFrontier
	}
	it := heap.Pop(&f.queue).(*item[T])
	delete(f.index, it.value)
	return it.value, it.priority, nil
}

// Peek returns the next item PopMin would return without removing it.
func (f *Frontier[T]) Peek() (T, float64, error) {
	if f.queue.Len() == 0 {
		var zero T
		return zero, 0, ErrEmptyFrontier
	}
	it := f.queue[0]
	return it.value, it.priority, nil
}

// DecreaseKey lowers the priority of a queued item in place.
// Returns ErrNotFound if v is not queued and ErrPriorityIncrease if
// priority is larger than the current one. An equal priority is a no-op.
func (f *Frontier[T]) DecreaseKey(v T, priority float64) error {
	it, ok := f.index[v]
	if !ok {
		return fmt.Errorf("%w: %v", ErrNotFound, v)
	}
	if priority > it.priority {
		return fmt.Errorf("%w: %v (%v > %v)", ErrPriorityIncrease, v, priority, it.priority)
	}
	it.priority = priority
	heap.Fix(&f.queue, it.indexInQueue)
	return nil
}

// Remove deletes v from the frontier.
// Returns ErrNotFound if v is not queued.
func (f *Frontier[T]) Remove(v T) error {
	it, ok := f.index[v]
	if !ok {
		return fmt.Errorf("%w: %v", ErrNotFound, v)
	}
	heap.Remove(&f.queue, it.indexInQueue)
	delete(f.index, v)
	return nil
}

// Items returns the queued items in pop order without mutating the frontier.
// Complexity: O(n log n).
func (f *Frontier[T]) Items() []T {
	clone := make(itemPQ[T], len(f.queue))
	for i, it := range f.queue {
		c := *it
		clone[i] = &c
	}
	out := make([]T, 0, len(clone))
	for clone.Len() > 0 {
		out = append(out, heap.Pop(&clone).(*item[T]).value)
	}
	return out
}

// item is a queued value with its priority, insertion sequence and heap slot.
type item[T comparable] struct {
	value        T
	priority     float64
	seq          uint64
	indexInQueue int
}

// itemPQ is a min-heap of *item ordered by (priority, seq).
type itemPQ[T comparable] []*item[T]

func (pq itemPQ[T]) Len() int { return len(pq) }

func (pq itemPQ[T]) Less(i, j int) bool {
	if pq[i].priority != pq[j].priority {
		return pq[i].priority < pq[j].priority
	}
	return pq[i].seq < pq[j].seq
}

func (pq itemPQ[T]) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].indexInQueue = i
	pq[j].indexInQueue = j
}

func (pq *itemPQ[T]) Push(x any) {
	it := x.(*item[T])
	it.indexInQueue = len(*pq)
	*pq = append(*pq, it)
}

func (pq *itemPQ[T]) Pop() any {
	old := *pq
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]
	it.indexInQueue = -1
	return it
}
