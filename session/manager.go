package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb/geojson"

	"github.com/katalvlaran/gridpath/driver"
	"github.com/katalvlaran/gridpath/render"
	"github.com/katalvlaran/gridpath/search"
)

// Session is one live search.
type Session struct {
	id        string
	createdAt time.Time

	mu        sync.Mutex
	engine    *search.Engine
	firstStep time.Time
	recorded  bool
	cancel    context.CancelFunc // non-nil while animating
	done      chan struct{}
}

// Manager handles the lifecycle of in-memory sessions.
type Manager struct {
	options  Options
	mu       sync.RWMutex
	sessions map[string]*Session
	wg       sync.WaitGroup
}

// NewManager creates an empty manager.
func NewManager(opts ...Option) *Manager {
	cfg := Options{NewID: uuid.NewString, Now: time.Now, MaxCells: DefaultMaxCells}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Manager{
		options:  cfg,
		sessions: make(map[string]*Session),
	}
}

// Create builds and initializes a search from spec.
// A spec with invalid endpoints still creates a session, already Failed.
func (m *Manager) Create(spec Spec) (Info, error) {
	s := &Session{
		id:        m.options.NewID(),
		createdAt: m.options.Now(),
	}
	e, err := spec.build(m.options.MaxCells, func(r search.StepResult) {
		if r.Index == 0 {
			return
		}
		if s.firstStep.IsZero() {
			s.firstStep = m.options.Now()
		}
		m.options.Metrics.AddSteps(1)
	})
	if err != nil {
		return Info{}, err
	}
	s.engine = e

	m.mu.Lock()
	m.sessions[s.id] = s
	m.mu.Unlock()
	m.options.Metrics.SessionOpened()

	s.mu.Lock()
	defer s.mu.Unlock()
	m.recordIfDone(s)
	return s.info(), nil
}

// Get returns the summary of a session.
func (m *Manager) Get(id string) (Info, error) {
	s, err := m.lookup(id)
	if err != nil {
		return Info{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.info(), nil
}

// List returns every session, oldest first.
func (m *Manager) List() []Info {
	m.mu.RLock()
	all := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		all = append(all, s)
	}
	m.mu.RUnlock()

	out := make([]Info, 0, len(all))
	for _, s := range all {
		s.mu.Lock()
		out = append(out, s.info())
		s.mu.Unlock()
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// Delete stops any animation and forgets the session.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	m.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	s.stop()
	m.options.Metrics.SessionClosed()
	m.broadcast(id, EventDeleted, nil)
	return nil
}

// Step advances a session by up to n steps (at least one), stopping early
// at a terminal phase. Each result is broadcast as EventStep.
// Returns search.ErrNotRunning (wrapped) when no step could be taken and
// ErrBusy while an animation runs.
func (m *Manager) Step(id string, n int) ([]search.StepResult, error) {
	s, err := m.lookup(id)
	if err != nil {
		return nil, err
	}
	if n < 1 {
		n = 1
	}

	s.mu.Lock()
	if s.cancel != nil {
		s.mu.Unlock()
		return nil, ErrBusy
	}
	var results []search.StepResult
	for i := 0; i < n && s.engine.Phase() == search.Running; i++ {
		res, err := s.engine.Step()
		if err != nil && !errors.Is(err, search.ErrEmptyFrontier) {
			s.mu.Unlock()
			return results, err
		}
		results = append(results, res)
	}
	if len(results) == 0 {
		phase := s.engine.Phase()
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: phase %s", search.ErrNotRunning, phase)
	}
	m.recordIfDone(s)
	s.mu.Unlock()

	for _, r := range results {
		m.broadcast(id, EventStep, r)
	}
	return results, nil
}

// Run finishes the search at once and broadcasts the full classification as
// EventSnapshot. The error is the engine's failure cause, if any.
func (m *Manager) Run(id string) (search.Outcome, error) {
	s, err := m.lookup(id)
	if err != nil {
		return search.Outcome{}, err
	}

	s.mu.Lock()
	if s.cancel != nil {
		s.mu.Unlock()
		return search.Outcome{}, ErrBusy
	}
	out, runErr := s.engine.RunToCompletion()
	snapshot := s.engine.Classify()
	m.recordIfDone(s)
	s.mu.Unlock()

	m.broadcast(id, EventSnapshot, driver.Frame{Tick: 1, Snapshot: snapshot, Phase: out.Phase})
	return out, runErr
}

// Animate starts driving the session in the background with the driver
// package, broadcasting every step. Returns ErrBusy if already animating.
func (m *Manager) Animate(id string, opts ...driver.Option) error {
	s, err := m.lookup(id)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.cancel != nil {
		s.mu.Unlock()
		return ErrBusy
	}
	if phase := s.engine.Phase(); phase != search.Running {
		s.mu.Unlock()
		return fmt.Errorf("%w: phase %s", search.ErrNotRunning, phase)
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})
	done := s.done
	s.mu.Unlock()

	sink := func(f driver.Frame) error {
		for _, r := range f.Steps {
			m.broadcast(id, EventStep, r)
		}
		if len(f.Snapshot) > 0 {
			m.broadcast(id, EventSnapshot, f)
		}
		return nil
	}

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		defer close(done)
		defer cancel()

		_, err := driver.Run(ctx, s.engine, sink, append(opts, driver.WithLocker(&s.mu))...)
		if err != nil && !errors.Is(err, context.Canceled) && !engineFailure(err) {
			log.Printf("session %s: animation stopped: %v", id, err)
		}

		s.mu.Lock()
		s.cancel = nil
		m.recordIfDone(s)
		s.mu.Unlock()
	}()
	return nil
}

// Stop cancels a running animation and waits for it to end. Stopping an
// idle session is a no-op.
func (m *Manager) Stop(id string) error {
	s, err := m.lookup(id)
	if err != nil {
		return err
	}
	s.stop()
	return nil
}

// Outcome returns the search summary; the path is set once Succeeded.
func (m *Manager) Outcome(id string) (search.Outcome, error) {
	s, err := m.lookup(id)
	if err != nil {
		return search.Outcome{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Outcome(), nil
}

// Path returns the reconstructed route and its cost.
// Returns search.ErrNotSucceeded (wrapped) before success.
func (m *Manager) Path(id string) (search.Outcome, error) {
	s, err := m.lookup(id)
	if err != nil {
		return search.Outcome{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.engine.ReconstructPath(); err != nil {
		return s.engine.Outcome(), err
	}
	return s.engine.Outcome(), nil
}

// Classify returns the current status of every discovered cell.
func (m *Manager) Classify(id string) ([]search.Change, error) {
	s, err := m.lookup(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Classify(), nil
}

// Render returns the session as a terminal frame.
func (m *Manager) Render(id string) (string, error) {
	s, err := m.lookup(id)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t := render.NewTerminal(s.engine.Grid(), s.engine.Start(), s.engine.Goal())
	t.Apply(s.engine.Classify())
	return t.Frame(), nil
}

// WritePNG encodes the session as a PNG picture, scale pixels per cell.
func (m *Manager) WritePNG(id string, w io.Writer, scale int) error {
	s, err := m.lookup(id)
	if err != nil {
		return err
	}
	if scale < 1 {
		scale = 1
	}
	s.mu.Lock()
	c := render.NewCanvas(s.engine.Grid(), render.WithScale(scale))
	c.MarkEndpoints(s.engine.Start(), s.engine.Goal())
	c.Apply(s.engine.Classify())
	s.mu.Unlock()
	return c.EncodePNG(w)
}

// GeoJSON exports the session's endpoints, explored cells and route.
func (m *Manager) GeoJSON(id string) (*geojson.FeatureCollection, error) {
	s, err := m.lookup(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return render.GeoJSON(s.engine), nil
}

// MaxCells returns the largest raster, in cells, that Create accepts.
func (m *Manager) MaxCells() int { return m.options.MaxCells }

// Len returns the number of sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Close stops every animation and waits for them to end.
func (m *Manager) Close() {
	m.mu.RLock()
	all := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		all = append(all, s)
	}
	m.mu.RUnlock()
	for _, s := range all {
		s.stop()
	}
	m.wg.Wait()
}

func (m *Manager) lookup(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s, nil
}

// recordIfDone reports a newly terminal session once. Callers hold s.mu.
func (m *Manager) recordIfDone(s *Session) {
	if s.recorded || !s.engine.Phase().Terminal() {
		return
	}
	s.recorded = true
	out := s.engine.Outcome()
	var elapsed time.Duration
	if !s.firstStep.IsZero() {
		elapsed = m.options.Now().Sub(s.firstStep)
	}
	m.options.Metrics.ObserveOutcome(out, elapsed)

	payload := finished{Outcome: out}
	if err := s.engine.Err(); err != nil {
		payload.Error = err.Error()
	}
	m.broadcast(s.id, EventFinished, payload)
}

func (m *Manager) broadcast(id, event string, data interface{}) {
	if m.options.Broadcaster != nil {
		m.options.Broadcaster.Broadcast(id, event, data)
	}
}

// finished is the EventFinished payload.
type finished struct {
	search.Outcome
	Error string `json:"error,omitempty"`
}

// stop cancels the animation, if any, and waits for it.
func (s *Session) stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// engineFailure reports whether err is a search failure cause rather than a
// problem with the animation itself.
func engineFailure(err error) bool {
	return errors.Is(err, search.ErrEmptyFrontier) || errors.Is(err, search.ErrInvalidEndpoint)
}

// info summarizes the session. Callers hold s.mu.
func (s *Session) info() Info {
	g := s.engine.Grid()
	out := s.engine.Outcome()
	in := Info{
		ID:           s.id,
		CreatedAt:    s.createdAt,
		Width:        g.Width(),
		Height:       g.Height(),
		Connectivity: g.Connectivity().String(),
		Start:        s.engine.Start(),
		Goal:         s.engine.Goal(),
		Phase:        out.Phase,
		Steps:        out.Steps,
		Frontier:     s.engine.FrontierLen(),
		Settled:      out.Settled,
		Discovered:   out.Discovered,
		Animating:    s.cancel != nil,
	}
	if err := s.engine.Err(); err != nil {
		in.Error = err.Error()
	}
	return in
}
