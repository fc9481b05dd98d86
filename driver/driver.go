package driver

import (
	"context"
	"errors"
	"fmt"

	"github.com/niceyeti/channerics"

	"github.com/katalvlaran/gridpath/search"
)

// Run drives e until it is terminal, ctx is done or sink fails.
//
// Returns the Outcome with:
//   - nil on success;
//   - the engine's failure cause (search.ErrEmptyFrontier,
//     search.ErrInvalidEndpoint) when the search failed;
//   - ctx.Err() when cancelled;
//   - the sink's error, wrapped;
//   - search.ErrStepLimit when the engine has WithMaxSteps and fast mode hit
//     it, after the capped snapshot frame was delivered.
//
// An engine that is already terminal yields one final frame and returns.
func Run(ctx context.Context, e *search.Engine, sink Sink, opts ...Option) (search.Outcome, error) {
	if e == nil {
		return search.Outcome{}, ErrNilEngine
	}
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Locker == nil {
		cfg.Locker = noLock{}
	}
	if sink == nil {
		sink = func(Frame) error { return nil }
	}

	cfg.Locker.Lock()
	phase, out := e.Phase(), e.Outcome()
	cfg.Locker.Unlock()
	if phase == search.Uninitialized {
		return out, fmt.Errorf("driver: %w", search.ErrNotRunning)
	}

	if cfg.Fast {
		return runFast(ctx, e, sink, cfg)
	}
	return runAnimated(ctx, e, sink, cfg)
}

func runFast(ctx context.Context, e *search.Engine, sink Sink, cfg Options) (search.Outcome, error) {
	cfg.Locker.Lock()
	if err := ctx.Err(); err != nil {
		out := e.Outcome()
		cfg.Locker.Unlock()
		return out, err
	}
	out, runErr := e.RunToCompletion()
	frame := Frame{Tick: 1, Snapshot: e.Classify(), Phase: e.Phase()}
	cfg.Locker.Unlock()

	if err := sink(frame); err != nil {
		return out, fmt.Errorf("driver: sink: %w", err)
	}
	return out, runErr
}

func runAnimated(ctx context.Context, e *search.Engine, sink Sink, cfg Options) (search.Outcome, error) {
	wait := ctx.Err
	if cfg.Tick > 0 {
		tctx, cancel := context.WithCancel(ctx)
		defer cancel()
		ticks := channerics.NewTicker(tctx.Done(), cfg.Tick)
		wait = func() error {
			select {
			case <-tctx.Done():
				return ctx.Err()
			case <-ticks:
				return ctx.Err()
			}
		}
	}

	for n := 1; ; n++ {
		t, err := advance(e, cfg)
		if err != nil {
			return t.out, err
		}
		t.frame.Tick = n
		if err := sink(t.frame); err != nil {
			return t.out, fmt.Errorf("driver: sink: %w", err)
		}
		if t.frame.Phase.Terminal() {
			return t.out, t.cause
		}

		if err := ctx.Err(); err != nil {
			return t.out, err
		}
		if err := wait(); err != nil {
			return t.out, err
		}
	}
}

// tickResult is what one tick read from the engine while holding the lock.
type tickResult struct {
	frame Frame
	out   search.Outcome
	cause error
}

// advance takes up to StepsPerTick steps under the lock.
func advance(e *search.Engine, cfg Options) (tickResult, error) {
	cfg.Locker.Lock()
	defer cfg.Locker.Unlock()

	var t tickResult
	for i := 0; i < cfg.StepsPerTick && e.Phase() == search.Running; i++ {
		res, err := e.Step()
		if err != nil && !errors.Is(err, search.ErrEmptyFrontier) {
			t.out = e.Outcome()
			return t, err
		}
		t.frame.Steps = append(t.frame.Steps, res)
	}
	t.frame.Phase = e.Phase()
	t.out = e.Outcome()
	t.cause = e.Err()
	return t, nil
}
