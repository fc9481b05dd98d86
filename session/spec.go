package session

import (
	"fmt"

	"github.com/katalvlaran/gridpath/cost"
	"github.com/katalvlaran/gridpath/grid"
	"github.com/katalvlaran/gridpath/raster"
	"github.com/katalvlaran/gridpath/search"
)

// build turns a Spec into an initialized engine over at most maxCells cells.
// The engine may already be Failed when an endpoint is invalid; that is
// reported through the engine, not as an error.
func (s Spec) build(maxCells int, observer func(search.StepResult)) (*search.Engine, error) {
	bm, start, goal, err := s.raster(maxCells)
	if err != nil {
		return nil, err
	}

	conn, err := parseConnectivity(s.Connectivity)
	if err != nil {
		return nil, err
	}
	g, err := bm.Grid(grid.WithConnectivity(conn))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadSpec, err)
	}

	costOpts := []cost.Option{cost.WithConnectivity(conn)}
	if s.GMultiplier != nil {
		costOpts = append(costOpts, cost.WithGMultiplier(*s.GMultiplier))
	}
	if s.HMultiplier != nil {
		costOpts = append(costOpts, cost.WithHMultiplier(*s.HMultiplier))
	}
	model, err := cost.New(costOpts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadSpec, err)
	}

	if s.MaxSteps < 0 {
		return nil, fmt.Errorf("%w: max_steps must be non-negative", ErrBadSpec)
	}
	opts := []search.Option{search.WithMaxSteps(s.MaxSteps)}
	if s.Reopen {
		opts = append(opts, search.WithReopen())
	}
	if observer != nil {
		opts = append(opts, search.WithObserver(observer))
	}
	e, err := search.NewEngine(g, model, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadSpec, err)
	}
	_, _ = e.Initialize(start, goal)
	return e, nil
}

// raster resolves the bitmap and endpoints of the spec.
func (s Spec) raster(maxCells int) (*raster.Bitmap, grid.Cell, grid.Cell, error) {
	var bm *raster.Bitmap
	var start, goal grid.Cell
	var hasStart, hasGoal bool
	var err error
	switch {
	case s.Map != "":
		m, perr := raster.ParseString(s.Map)
		if perr != nil {
			return nil, start, goal, fmt.Errorf("%w: %v", ErrBadSpec, perr)
		}
		bm = m.Bitmap
		start, hasStart = m.Start, m.HasStart
		goal, hasGoal = m.Goal, m.HasGoal
	default:
		if err := checkSize(s.Width, s.Height, maxCells); err != nil {
			return nil, start, goal, err
		}
		bm, err = raster.NewBitmap(s.Width, s.Height)
		if err != nil {
			return nil, start, goal, fmt.Errorf("%w: %v", ErrBadSpec, err)
		}
		for _, w := range s.Walls {
			bm.Set(w.X, w.Y, true)
		}
	}

	if err := checkSize(bm.Width(), bm.Height(), maxCells); err != nil {
		return nil, start, goal, err
	}

	if s.Start != nil {
		start, hasStart = *s.Start, true
	}
	if s.Goal != nil {
		goal, hasGoal = *s.Goal, true
	}
	if !hasStart || !hasGoal {
		return nil, start, goal, fmt.Errorf("%w: start and goal are required", ErrBadSpec)
	}
	return bm, start, goal, nil
}

// checkSize rejects rasters of more than maxCells cells. Non-positive sizes
// are left to raster.NewBitmap.
func checkSize(width, height, maxCells int) error {
	if width <= 0 || height <= 0 {
		return nil
	}
	if width > maxCells/height {
		return fmt.Errorf("%w: %dx%d exceeds %d cells", ErrBadSpec, width, height, maxCells)
	}
	return nil
}

func parseConnectivity(s string) (grid.Connectivity, error) {
	switch s {
	case "", grid.Conn8.String():
		return grid.Conn8, nil
	case grid.Conn4.String():
		return grid.Conn4, nil
	default:
		return 0, fmt.Errorf("%w: unknown connectivity %q", ErrBadSpec, s)
	}
}
