package search

import (
	"github.com/katalvlaran/gridpath/grid"
)

// State is the mutable per-search table of records. Records are created on
// first discovery and never removed during a search.
type State struct {
	records map[grid.Cell]*Record
	settled int
}

func newState() *State {
	return &State{records: make(map[grid.Cell]*Record)}
}

// Record returns a copy of the record of c and whether c was discovered.
func (s *State) Record(c grid.Cell) (Record, bool) {
	r, ok := s.records[c]
	if !ok {
		return Record{}, false
	}
	return *r, true
}

// Status returns the status of c, Undiscovered if never touched.
func (s *State) Status(c grid.Cell) Status {
	if r, ok := s.records[c]; ok {
		return r.Status
	}
	return Undiscovered
}

// BestCost returns the best known accumulated cost of c.
func (s *State) BestCost(c grid.Cell) (float64, bool) {
	r, ok := s.records[c]
	if !ok {
		return 0, false
	}
	return r.BestCost, true
}

// Parent returns the predecessor of c on its best known route.
// ok is false for the start cell and for undiscovered cells.
func (s *State) Parent(c grid.Cell) (grid.Cell, bool) {
	r, ok := s.records[c]
	if !ok || !r.HasParent {
		return grid.Cell{}, false
	}
	return r.Parent, true
}

// Discovered returns the number of records.
func (s *State) Discovered() int { return len(s.records) }

// Settled returns the number of records currently Settled.
func (s *State) Settled() int { return s.settled }

// discover creates a Frontier record for c.
func (s *State) discover(c grid.Cell, cost float64, parent grid.Cell, hasParent bool) {
	s.records[c] = &Record{
		BestCost:  cost,
		Parent:    parent,
		HasParent: hasParent,
		Status:    Frontier,
	}
}

// improve lowers the cost of an existing record and moves it to the
// frontier, reopening it if it was settled.
func (s *State) improve(c grid.Cell, cost float64, parent grid.Cell) {
	r := s.records[c]
	if r.Status == Settled {
		s.settled--
	}
	r.BestCost = cost
	r.Parent = parent
	r.HasParent = true
	r.Status = Frontier
}

// settle marks c as Settled.
func (s *State) settle(c grid.Cell) *Record {
	r := s.records[c]
	if r.Status != Settled {
		r.Status = Settled
		s.settled++
	}
	return r
}
