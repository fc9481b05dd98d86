package session_test

import (
	"bytes"
	"fmt"
	"image/png"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gridpath/driver"
	"github.com/katalvlaran/gridpath/grid"
	"github.com/katalvlaran/gridpath/metrics"
	"github.com/katalvlaran/gridpath/search"
	"github.com/katalvlaran/gridpath/session"
)

const corridor = `
S.....
.####.
.....G
`

type event struct {
	id, name string
	data     interface{}
}

// recorder is a Broadcaster that keeps every event.
type recorder struct {
	mu     sync.Mutex
	events []event
}

func (r *recorder) Broadcast(id, name string, data interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event{id, name, data})
}

func (r *recorder) count(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e.name == name {
			n++
		}
	}
	return n
}

func sequentialIDs() func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("s%d", n)
	}
}

func newManager(t *testing.T) (*session.Manager, *recorder, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	rec := &recorder{}
	m := session.NewManager(
		session.WithBroadcaster(rec),
		session.WithMetrics(metrics.New(reg)),
		session.WithIDGenerator(sequentialIDs()),
	)
	t.Cleanup(m.Close)
	return m, rec, reg
}

func gauge(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		total := 0.0
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetGauge() != nil:
				total += m.GetGauge().GetValue()
			case m.GetCounter() != nil:
				total += m.GetCounter().GetValue()
			}
		}
		return total
	}
	return 0
}

// ------------------------------------------------------------------------
// 1. Creation
// ------------------------------------------------------------------------

func TestCreate_FromMap(t *testing.T) {
	m, _, reg := newManager(t)
	info, err := m.Create(session.Spec{Map: corridor})
	require.NoError(t, err)

	assert.Equal(t, "s1", info.ID)
	assert.Equal(t, 6, info.Width)
	assert.Equal(t, 3, info.Height)
	assert.Equal(t, "conn8", info.Connectivity)
	assert.Equal(t, grid.Cell{X: 0, Y: 0}, info.Start)
	assert.Equal(t, grid.Cell{X: 5, Y: 2}, info.Goal)
	assert.Equal(t, search.Running, info.Phase)
	assert.Equal(t, 1, info.Frontier)
	assert.Equal(t, 1.0, gauge(t, reg, "gridpath_active_sessions"))
}

func TestCreate_FromWalls(t *testing.T) {
	m, _, _ := newManager(t)
	h := 0.0
	info, err := m.Create(session.Spec{
		Width:        4,
		Height:       3,
		Walls:        []grid.Cell{{X: 1, Y: 0}, {X: 1, Y: 1}},
		Start:        &grid.Cell{X: 0, Y: 0},
		Goal:         &grid.Cell{X: 3, Y: 0},
		Connectivity: "conn4",
		HMultiplier:  &h,
	})
	require.NoError(t, err)
	assert.Equal(t, "conn4", info.Connectivity)

	out, err := m.Run(info.ID)
	require.NoError(t, err)
	assert.InDelta(t, 7.0, out.Cost, 1e-9)
}

func TestCreate_EndpointOverrideAndUUID(t *testing.T) {
	m := session.NewManager()
	t.Cleanup(m.Close)
	info, err := m.Create(session.Spec{Map: corridor, Goal: &grid.Cell{X: 0, Y: 2}})
	require.NoError(t, err)
	assert.Equal(t, grid.Cell{X: 0, Y: 2}, info.Goal)
	_, err = uuid.Parse(info.ID)
	assert.NoError(t, err)
}

func TestCreate_BadSpec(t *testing.T) {
	neg := -1.0
	cases := []struct {
		name string
		spec session.Spec
	}{
		{"NoEndpoints", session.Spec{Map: "...\n"}},
		{"NoGoal", session.Spec{Map: "S..\n"}},
		{"Ragged", session.Spec{Map: "S..\n.G\n"}},
		{"ZeroSize", session.Spec{Start: &grid.Cell{}, Goal: &grid.Cell{}}},
		{"Connectivity", session.Spec{Map: "SG\n", Connectivity: "hex"}},
		{"Multiplier", session.Spec{Map: "SG\n", GMultiplier: &neg}},
		{"MaxSteps", session.Spec{Map: "SG\n", MaxSteps: -3}},
		{"Overflow", session.Spec{Width: 1 << 32, Height: 1 << 32, Start: &grid.Cell{}, Goal: &grid.Cell{}}},
		{"TooManyCells", session.Spec{Width: session.DefaultMaxCells, Height: 2, Start: &grid.Cell{}, Goal: &grid.Cell{}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m, _, _ := newManager(t)
			_, err := m.Create(tc.spec)
			assert.ErrorIs(t, err, session.ErrBadSpec)
			assert.Zero(t, m.Len())
		})
	}
}

func TestCreate_MaxCells(t *testing.T) {
	m := session.NewManager(session.WithMaxCells(6))
	t.Cleanup(m.Close)

	_, err := m.Create(session.Spec{Map: "S....G\n"})
	require.NoError(t, err)

	_, err = m.Create(session.Spec{Map: "S.....G\n"})
	assert.ErrorIs(t, err, session.ErrBadSpec)
	_, err = m.Create(session.Spec{Width: 7, Height: 1, Start: &grid.Cell{}, Goal: &grid.Cell{X: 6}})
	assert.ErrorIs(t, err, session.ErrBadSpec)
	assert.Equal(t, 1, m.Len())

	assert.Panics(t, func() { session.WithMaxCells(0) })
}

func TestCreate_InvalidEndpointIsFailedSession(t *testing.T) {
	m, rec, reg := newManager(t)
	info, err := m.Create(session.Spec{Map: "S#\n..\n", Goal: &grid.Cell{X: 1, Y: 0}})
	require.NoError(t, err)
	assert.Equal(t, search.Failed, info.Phase)
	assert.Contains(t, info.Error, "invalid endpoint")
	assert.Equal(t, 1, rec.count(session.EventFinished))
	assert.Equal(t, 1.0, gauge(t, reg, "gridpath_searches_total"))

	_, err = m.Step(info.ID, 1)
	assert.ErrorIs(t, err, search.ErrNotRunning)
}

// ------------------------------------------------------------------------
// 2. Manual stepping
// ------------------------------------------------------------------------

func TestStep_BroadcastsAndFinishes(t *testing.T) {
	m, rec, reg := newManager(t)
	info, err := m.Create(session.Spec{Map: corridor})
	require.NoError(t, err)

	results, err := m.Step(info.ID, 3)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, 3, rec.count(session.EventStep))
	assert.Equal(t, 3.0, gauge(t, reg, "gridpath_steps_total"))

	_, err = m.Path(info.ID)
	assert.ErrorIs(t, err, search.ErrNotSucceeded)

	results, err = m.Step(info.ID, 1000)
	require.NoError(t, err)
	assert.Equal(t, search.Succeeded, results[len(results)-1].Phase)
	assert.Equal(t, 1, rec.count(session.EventFinished))

	_, err = m.Step(info.ID, 1)
	assert.ErrorIs(t, err, search.ErrNotRunning)

	out, err := m.Path(info.ID)
	require.NoError(t, err)
	assert.Equal(t, grid.Cell{X: 0, Y: 0}, out.Path[0])
	assert.Equal(t, grid.Cell{X: 5, Y: 2}, out.Path[len(out.Path)-1])
}

func TestStep_ZeroMeansOne(t *testing.T) {
	m, _, _ := newManager(t)
	info, err := m.Create(session.Spec{Map: corridor})
	require.NoError(t, err)
	results, err := m.Step(info.ID, 0)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestRun_MatchesStepping(t *testing.T) {
	m, rec, reg := newManager(t)
	a, err := m.Create(session.Spec{Map: corridor})
	require.NoError(t, err)
	b, err := m.Create(session.Spec{Map: corridor})
	require.NoError(t, err)

	fast, err := m.Run(a.ID)
	require.NoError(t, err)
	for {
		if _, err := m.Step(b.ID, 1); err != nil {
			break
		}
	}
	stepped, err := m.Outcome(b.ID)
	require.NoError(t, err)
	assert.Equal(t, fast, stepped)

	ca, err := m.Classify(a.ID)
	require.NoError(t, err)
	cb, err := m.Classify(b.ID)
	require.NoError(t, err)
	assert.Equal(t, ca, cb)

	assert.Equal(t, 1, rec.count(session.EventSnapshot))
	assert.Equal(t, 2, rec.count(session.EventFinished))
	assert.Equal(t, 2.0, gauge(t, reg, "gridpath_searches_total"))

	// finishing twice records once
	_, err = m.Run(a.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, rec.count(session.EventFinished))
}

func TestRun_Unreachable(t *testing.T) {
	m, _, _ := newManager(t)
	info, err := m.Create(session.Spec{Map: "S#G\n##.\n"})
	require.NoError(t, err)
	out, err := m.Run(info.ID)
	assert.ErrorIs(t, err, search.ErrEmptyFrontier)
	assert.Equal(t, search.Failed, out.Phase)
}

// ------------------------------------------------------------------------
// 3. Animation
// ------------------------------------------------------------------------

func TestAnimate_ToCompletion(t *testing.T) {
	m, rec, _ := newManager(t)
	info, err := m.Create(session.Spec{Map: corridor})
	require.NoError(t, err)

	require.NoError(t, m.Animate(info.ID, driver.WithTick(time.Millisecond)))
	require.Eventually(t, func() bool {
		got, err := m.Get(info.ID)
		return err == nil && got.Phase == search.Succeeded && !got.Animating
	}, 5*time.Second, 5*time.Millisecond)

	got, err := m.Get(info.ID)
	require.NoError(t, err)
	assert.Equal(t, got.Steps, rec.count(session.EventStep))
	assert.Equal(t, 1, rec.count(session.EventFinished))

	err = m.Animate(info.ID)
	assert.ErrorIs(t, err, search.ErrNotRunning)
}

func TestAnimate_BusyAndStop(t *testing.T) {
	m, _, _ := newManager(t)
	info, err := m.Create(session.Spec{Map: corridor})
	require.NoError(t, err)

	// first frame is immediate, the next one an hour away
	require.NoError(t, m.Animate(info.ID, driver.WithTick(time.Hour)))
	require.Eventually(t, func() bool {
		got, _ := m.Get(info.ID)
		return got.Steps == 1
	}, 5*time.Second, time.Millisecond)

	assert.ErrorIs(t, m.Animate(info.ID), session.ErrBusy)
	_, err = m.Step(info.ID, 1)
	assert.ErrorIs(t, err, session.ErrBusy)
	_, err = m.Run(info.ID)
	assert.ErrorIs(t, err, session.ErrBusy)

	require.NoError(t, m.Stop(info.ID))
	got, err := m.Get(info.ID)
	require.NoError(t, err)
	assert.False(t, got.Animating)
	assert.Equal(t, search.Running, got.Phase)

	// resumable by hand
	_, err = m.Run(info.ID)
	require.NoError(t, err)
}

func TestAnimate_FastMode(t *testing.T) {
	m, rec, _ := newManager(t)
	info, err := m.Create(session.Spec{Map: corridor})
	require.NoError(t, err)
	require.NoError(t, m.Animate(info.ID, driver.WithFast(true)))
	require.Eventually(t, func() bool {
		got, _ := m.Get(info.ID)
		return got.Phase == search.Succeeded && !got.Animating
	}, 5*time.Second, time.Millisecond)
	assert.Equal(t, 1, rec.count(session.EventSnapshot))
	assert.Zero(t, rec.count(session.EventStep))
}

func TestAnimate_FastModeStepLimit(t *testing.T) {
	m, rec, _ := newManager(t)
	info, err := m.Create(session.Spec{Map: corridor, MaxSteps: 2})
	require.NoError(t, err)
	require.NoError(t, m.Animate(info.ID, driver.WithFast(true)))
	require.Eventually(t, func() bool {
		got, _ := m.Get(info.ID)
		return !got.Animating
	}, 5*time.Second, time.Millisecond)

	got, err := m.Get(info.ID)
	require.NoError(t, err)
	assert.Equal(t, search.Running, got.Phase)
	assert.Equal(t, 2, got.Steps)
	assert.Equal(t, 1, rec.count(session.EventSnapshot))
}

// ------------------------------------------------------------------------
// 4. Listing, rendering, deletion
// ------------------------------------------------------------------------

func TestList_OldestFirst(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var mu sync.Mutex
	tick := 0
	m := session.NewManager(
		session.WithIDGenerator(sequentialIDs()),
		session.WithClock(func() time.Time {
			mu.Lock()
			defer mu.Unlock()
			tick++
			return base.Add(time.Duration(-tick) * time.Minute)
		}),
	)
	t.Cleanup(m.Close)
	for i := 0; i < 3; i++ {
		_, err := m.Create(session.Spec{Map: "SG\n"})
		require.NoError(t, err)
	}
	list := m.List()
	require.Len(t, list, 3)
	// the clock runs backwards, so the last created is the oldest
	assert.Equal(t, []string{"s3", "s2", "s1"}, []string{list[0].ID, list[1].ID, list[2].ID})
}

func TestRender(t *testing.T) {
	m, _, _ := newManager(t)
	info, err := m.Create(session.Spec{Map: "S...G\n"})
	require.NoError(t, err)

	frame, err := m.Render(info.ID)
	require.NoError(t, err)
	assert.Equal(t, "S...G\n", frame)

	_, err = m.Run(info.ID)
	require.NoError(t, err)
	frame, err = m.Render(info.ID)
	require.NoError(t, err)
	assert.Equal(t, "S***G\n", frame)

	var buf bytes.Buffer
	require.NoError(t, m.WritePNG(info.ID, &buf, 2))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 10, img.Bounds().Dx())
	assert.Equal(t, 2, img.Bounds().Dy())

	fc, err := m.GeoJSON(info.ID)
	require.NoError(t, err)
	require.NotEmpty(t, fc.Features)
	last := fc.Features[len(fc.Features)-1]
	assert.Equal(t, "path", last.Properties["kind"])

	_, err = m.GeoJSON("missing")
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestDelete(t *testing.T) {
	m, rec, reg := newManager(t)
	info, err := m.Create(session.Spec{Map: corridor})
	require.NoError(t, err)
	require.NoError(t, m.Animate(info.ID, driver.WithTick(time.Hour)))

	require.NoError(t, m.Delete(info.ID))
	assert.Equal(t, 1, rec.count(session.EventDeleted))
	assert.Equal(t, 0.0, gauge(t, reg, "gridpath_active_sessions"))

	_, err = m.Get(info.ID)
	assert.ErrorIs(t, err, session.ErrNotFound)
	assert.ErrorIs(t, m.Delete(info.ID), session.ErrNotFound)
	_, err = m.Step(info.ID, 1)
	assert.ErrorIs(t, err, session.ErrNotFound)
	assert.ErrorIs(t, m.Stop(info.ID), session.ErrNotFound)
}

func TestClose_StopsAnimations(t *testing.T) {
	m := session.NewManager()
	for i := 0; i < 3; i++ {
		info, err := m.Create(session.Spec{Map: corridor})
		require.NoError(t, err)
		require.NoError(t, m.Animate(info.ID, driver.WithTick(time.Hour)))
	}
	done := make(chan struct{})
	go func() {
		m.Close()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Close did not return")
	}
	for _, in := range m.List() {
		assert.False(t, in.Animating)
	}
}
