package session

import (
	"errors"
	"time"

	"github.com/katalvlaran/gridpath/grid"
	"github.com/katalvlaran/gridpath/metrics"
	"github.com/katalvlaran/gridpath/search"
)

var (
	// ErrNotFound indicates no session has the requested id.
	ErrNotFound = errors.New("session: not found")

	// ErrBadSpec indicates a Spec that cannot describe a search.
	ErrBadSpec = errors.New("session: invalid search spec")

	// ErrBusy indicates the session is being animated and cannot be stepped
	// by hand.
	ErrBusy = errors.New("session: animation in progress")
)

// Spec describes a search to create. The raster is either an ASCII Map
// (whose S and G markers provide default endpoints) or Width×Height with
// explicit Walls.
type Spec struct {
	Map    string      `json:"map,omitempty"`
	Width  int         `json:"width,omitempty"`
	Height int         `json:"height,omitempty"`
	Walls  []grid.Cell `json:"walls,omitempty"`

	Start *grid.Cell `json:"start,omitempty"`
	Goal  *grid.Cell `json:"goal,omitempty"`

	// Connectivity is "conn8" (default) or "conn4".
	Connectivity string   `json:"connectivity,omitempty"`
	GMultiplier  *float64 `json:"g_multiplier,omitempty"`
	HMultiplier  *float64 `json:"h_multiplier,omitempty"`
	Reopen       bool     `json:"reopen,omitempty"`
	MaxSteps     int      `json:"max_steps,omitempty"`
}

// Info is the public summary of a session.
type Info struct {
	ID           string       `json:"id"`
	CreatedAt    time.Time    `json:"created_at"`
	Width        int          `json:"width"`
	Height       int          `json:"height"`
	Connectivity string       `json:"connectivity"`
	Start        grid.Cell    `json:"start"`
	Goal         grid.Cell    `json:"goal"`
	Phase        search.Phase `json:"phase"`
	Steps        int          `json:"steps"`
	Frontier     int          `json:"frontier"`
	Settled      int          `json:"settled"`
	Discovered   int          `json:"discovered"`
	Animating    bool         `json:"animating"`
	Error        string       `json:"error,omitempty"`
}

// Broadcaster pushes session events to subscribers. Broadcast is called
// while the session is locked and must not block.
type Broadcaster interface {
	Broadcast(sessionID, event string, data interface{})
}

// Event names sent through the Broadcaster.
const (
	EventStep     = "step"
	EventSnapshot = "snapshot"
	EventFinished = "finished"
	EventDeleted  = "deleted"
)

// DefaultMaxCells bounds the raster of a new session: 4096×4096 cells.
const DefaultMaxCells = 1 << 24

// Options configures a Manager.
//
// MaxCells caps width×height of every created search; larger specs are
// rejected with ErrBadSpec. Default DefaultMaxCells.
type Options struct {
	Metrics     *metrics.Collector
	Broadcaster Broadcaster
	NewID       func() string
	Now         func() time.Time
	MaxCells    int
}

// Option represents a functional option for configuring a Manager.
type Option func(*Options)

// WithMetrics records sessions, steps and outcomes on c.
func WithMetrics(c *metrics.Collector) Option {
	return func(o *Options) { o.Metrics = c }
}

// WithBroadcaster publishes step and lifecycle events through b.
func WithBroadcaster(b Broadcaster) Option {
	return func(o *Options) { o.Broadcaster = b }
}

// WithIDGenerator replaces the uuid session id generator.
func WithIDGenerator(fn func() string) Option {
	return func(o *Options) { o.NewID = fn }
}

// WithMaxCells caps the raster size of created searches at n cells.
// Panics if n < 1.
func WithMaxCells(n int) Option {
	return func(o *Options) {
		if n < 1 {
			panic("session: WithMaxCells requires n >= 1")
		}
		o.MaxCells = n
	}
}

// WithClock replaces time.Now.
func WithClock(fn func() time.Time) Option {
	return func(o *Options) { o.Now = fn }
}
