package driver

import (
	"errors"
	"sync"
	"time"

	"github.com/katalvlaran/gridpath/search"
)

// ErrNilEngine indicates Run was given a nil engine.
var ErrNilEngine = errors.New("driver: engine is nil")

// DefaultTick is the animation period between frames.
const DefaultTick = 50 * time.Millisecond

// Frame is what a Sink receives once per tick.
//
// In animated mode Steps holds the results of this tick, in order. In fast
// mode Steps is empty and Snapshot holds Engine.Classify() once the search
// finished or hit its step limit, a full repaint.
type Frame struct {
	Tick     int                 `json:"tick"`
	Steps    []search.StepResult `json:"steps,omitempty"`
	Snapshot []search.Change     `json:"snapshot,omitempty"`
	Phase    search.Phase        `json:"phase"`
}

// Sink consumes frames. A non-nil error stops Run.
type Sink func(Frame) error

// Options configures Run.
//
//   - Tick: period between animated frames; ≤ 0 means no waiting.
//   - StepsPerTick: engine steps per animated frame, ≥ 1. Default 1.
//   - Fast: run to completion and emit a single snapshot frame.
//   - Locker: held around every engine call, released while the sink runs
//     and between ticks, so other goroutines may inspect the engine.
//     Default: no locking.
type Options struct {
	Tick         time.Duration
	StepsPerTick int
	Fast         bool
	Locker       sync.Locker
}

// Option represents a functional option for configuring Run.
type Option func(*Options)

// WithTick sets the animation period.
func WithTick(d time.Duration) Option {
	return func(o *Options) {
		o.Tick = d
	}
}

// WithStepsPerTick sets the per-frame step budget. Panics if n < 1.
func WithStepsPerTick(n int) Option {
	return func(o *Options) {
		if n < 1 {
			panic("driver: WithStepsPerTick requires n >= 1")
		}
		o.StepsPerTick = n
	}
}

// WithFast selects the immediate presentation mode.
func WithFast(fast bool) Option {
	return func(o *Options) {
		o.Fast = fast
	}
}

// WithLocker guards engine access with l.
func WithLocker(l sync.Locker) Option {
	return func(o *Options) {
		o.Locker = l
	}
}

// DefaultOptions returns a 50ms tick, one step per tick, animated, unlocked.
func DefaultOptions() Options {
	return Options{Tick: DefaultTick, StepsPerTick: 1, Locker: noLock{}}
}

type noLock struct{}

func (noLock) Lock()   {}
func (noLock) Unlock() {}
