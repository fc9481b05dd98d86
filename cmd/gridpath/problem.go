package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/katalvlaran/gridpath/cost"
	"github.com/katalvlaran/gridpath/grid"
	"github.com/katalvlaran/gridpath/raster"
	"github.com/katalvlaran/gridpath/search"
)

var errUsage = errors.New("gridpath: usage")

// searchFlags are shared by solve and animate.
func searchFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "conn",
			Value:   grid.Conn8.String(),
			Usage:   "move set: conn8 or conn4",
			Sources: cli.EnvVars("GRIDPATH_CONN"),
		},
		&cli.FloatFlag{
			Name:    "g",
			Value:   1,
			Usage:   "step cost multiplier",
			Sources: cli.EnvVars("GRIDPATH_G"),
		},
		&cli.FloatFlag{
			Name:    "h",
			Value:   1,
			Usage:   "heuristic multiplier",
			Sources: cli.EnvVars("GRIDPATH_H"),
		},
		&cli.BoolFlag{
			Name:    "reopen",
			Usage:   "re-expand settled cells when a cheaper route appears",
			Sources: cli.EnvVars("GRIDPATH_REOPEN"),
		},
		&cli.IntFlag{
			Name:    "max-steps",
			Usage:   "stop after this many expansions (0: no limit)",
			Sources: cli.EnvVars("GRIDPATH_MAX_STEPS"),
		},
		&cli.StringFlag{
			Name:  "start",
			Usage: "start cell as x,y (required for PNG maps)",
		},
		&cli.StringFlag{
			Name:  "goal",
			Usage: "goal cell as x,y (required for PNG maps)",
		},
		&cli.StringFlag{
			Name:  "resize",
			Usage: "resample the map to WxH cells before searching",
		},
	}
}

// problem is a loaded map with its endpoints and cost model.
type problem struct {
	grid        *grid.Grid
	model       cost.Model
	start, goal grid.Cell
	opts        []search.Option
}

// loadProblem reads the map named by the first argument and applies the
// search flags.
func loadProblem(cmd *cli.Command) (*problem, error) {
	path := cmd.Args().First()
	if path == "" {
		return nil, fmt.Errorf("%w: %s MAP", errUsage, cmd.Name)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	bm, start, goal, err := readMap(f, strings.EqualFold(filepath.Ext(path), ".png"))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if v := cmd.String("resize"); v != "" {
		w, h, err := parsePair(v, "x")
		if err != nil {
			return nil, fmt.Errorf("--resize: %w", err)
		}
		resized, err := bm.Resample(w, h)
		if err != nil {
			return nil, err
		}
		// map markers follow the picture
		if start != nil {
			*start = raster.ScaleCell(*start, bm.Width(), bm.Height(), w, h)
		}
		if goal != nil {
			*goal = raster.ScaleCell(*goal, bm.Width(), bm.Height(), w, h)
		}
		bm = resized
	}
	if v := cmd.String("start"); v != "" {
		x, y, err := parsePair(v, ",")
		if err != nil {
			return nil, fmt.Errorf("--start: %w", err)
		}
		start = &grid.Cell{X: x, Y: y}
	}
	if v := cmd.String("goal"); v != "" {
		x, y, err := parsePair(v, ",")
		if err != nil {
			return nil, fmt.Errorf("--goal: %w", err)
		}
		goal = &grid.Cell{X: x, Y: y}
	}
	if start == nil || goal == nil {
		return nil, fmt.Errorf("%w: the map has no S/G markers, pass --start and --goal", errUsage)
	}

	conn, err := parseConn(cmd.String("conn"))
	if err != nil {
		return nil, err
	}
	g, err := bm.Grid(grid.WithConnectivity(conn))
	if err != nil {
		return nil, err
	}
	model, err := cost.New(
		cost.WithConnectivity(conn),
		cost.WithGMultiplier(cmd.Float("g")),
		cost.WithHMultiplier(cmd.Float("h")),
	)
	if err != nil {
		return nil, err
	}

	maxSteps := cmd.Int("max-steps")
	if maxSteps < 0 {
		return nil, fmt.Errorf("%w: --max-steps must be non-negative", errUsage)
	}
	opts := []search.Option{search.WithMaxSteps(maxSteps)}
	if cmd.Bool("reopen") {
		opts = append(opts, search.WithReopen())
	}
	return &problem{grid: g, model: model, start: *start, goal: *goal, opts: opts}, nil
}

// engine builds an initialized engine for p. An invalid endpoint leaves
// the engine Failed and is returned as the error.
func (p *problem) engine(extra ...search.Option) (*search.Engine, error) {
	opts := append(append([]search.Option{}, p.opts...), extra...)
	e, err := search.NewEngine(p.grid, p.model, opts...)
	if err != nil {
		return nil, err
	}
	_, err = e.Initialize(p.start, p.goal)
	return e, err
}

// readMap decodes an ASCII or PNG map. Endpoints are nil when the map does
// not mark them.
func readMap(r io.Reader, isPNG bool) (*raster.Bitmap, *grid.Cell, *grid.Cell, error) {
	if isPNG {
		bm, err := raster.Decode(r, raster.IsBlack)
		return bm, nil, nil, err
	}
	m, err := raster.ParseASCII(r)
	if err != nil {
		return nil, nil, nil, err
	}
	var start, goal *grid.Cell
	if m.HasStart {
		start = &m.Start
	}
	if m.HasGoal {
		goal = &m.Goal
	}
	return m.Bitmap, start, goal, nil
}

func parseConn(s string) (grid.Connectivity, error) {
	switch s {
	case grid.Conn8.String():
		return grid.Conn8, nil
	case grid.Conn4.String():
		return grid.Conn4, nil
	default:
		return 0, fmt.Errorf("%w: unknown connectivity %q", errUsage, s)
	}
}

// parsePair reads two integers separated by sep, e.g. "3,4" or "64x48".
func parsePair(s, sep string) (int, int, error) {
	a, b, ok := strings.Cut(s, sep)
	if !ok {
		return 0, 0, fmt.Errorf("%q is not of the form A%sB", s, sep)
	}
	x, err := strconv.Atoi(strings.TrimSpace(a))
	if err != nil {
		return 0, 0, err
	}
	y, err := strconv.Atoi(strings.TrimSpace(b))
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

func formatPath(path []grid.Cell) string {
	parts := make([]string, len(path))
	for i, c := range path {
		parts[i] = fmt.Sprintf("(%d,%d)", c.X, c.Y)
	}
	return strings.Join(parts, " ")
}
