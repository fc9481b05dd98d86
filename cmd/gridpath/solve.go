package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/katalvlaran/gridpath/distance"
	"github.com/katalvlaran/gridpath/render"
	"github.com/katalvlaran/gridpath/search"
)

func solveCommand() *cli.Command {
	flags := append(searchFlags(),
		&cli.BoolFlag{
			Name:  "verify",
			Usage: "check the route against an exhaustive shortest-path computation",
		},
		&cli.StringFlag{
			Name:  "png",
			Usage: "also write the explored map as a PNG picture to this file",
		},
		&cli.StringFlag{
			Name:  "geojson",
			Usage: "also write the route and explored cells as GeoJSON to this file",
		},
		&cli.IntFlag{
			Name:    "scale",
			Value:   8,
			Usage:   "PNG pixels per cell",
			Sources: cli.EnvVars("GRIDPATH_SCALE"),
		},
		&cli.BoolFlag{
			Name:  "quiet",
			Usage: "print the summary without drawing the map",
		},
	)
	return &cli.Command{
		Name:      "solve",
		Usage:     "search a map at once and print the route",
		ArgsUsage: "MAP",
		Flags:     flags,
		Action:    runSolve,
	}
}

func runSolve(ctx context.Context, cmd *cli.Command) error {
	p, err := loadProblem(cmd)
	if err != nil {
		return err
	}
	w := cmd.Root().Writer

	e, err := p.engine()
	if e == nil {
		return err
	}
	out := e.Outcome()
	if err == nil {
		out, err = e.RunToCompletion()
	}

	if !cmd.Bool("quiet") {
		t := render.NewTerminal(p.grid, p.start, p.goal)
		t.Apply(e.Classify())
		if err := t.Draw(w, false); err != nil {
			return err
		}
	}
	printOutcome(w, out, err)

	if path := cmd.String("png"); path != "" {
		if err := writePNG(path, e, p, cmd.Int("scale")); err != nil {
			return err
		}
	}
	if path := cmd.String("geojson"); path != "" {
		raw, err := render.GeoJSON(e).MarshalJSON()
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, raw, 0o644); err != nil {
			return err
		}
	}
	if cmd.Bool("verify") {
		if err := verify(w, p, out); err != nil {
			return err
		}
	}
	if err != nil {
		return fmt.Errorf("gridpath: %w", err)
	}
	return nil
}

func printOutcome(w io.Writer, out search.Outcome, cause error) {
	fmt.Fprintf(w, "phase: %s\n", out.Phase)
	if cause != nil {
		fmt.Fprintf(w, "reason: %v\n", cause)
	}
	if out.Phase == search.Succeeded {
		fmt.Fprintf(w, "cost: %.3f\n", out.Cost)
		fmt.Fprintf(w, "path: %s\n", formatPath(out.Path))
	}
	fmt.Fprintf(w, "steps: %d (settled %d, discovered %d)\n", out.Steps, out.Settled, out.Discovered)
}

// verify compares the outcome with a full Dijkstra field from the start.
// With an admissible model any difference is an error; otherwise the gap
// to the optimum is reported.
func verify(w io.Writer, p *problem, out search.Outcome) error {
	f, err := distance.Compute(p.grid, p.model, p.start)
	if errors.Is(err, distance.ErrInvalidSource) {
		fmt.Fprintln(w, "verify: ok (invalid start)")
		return nil
	}
	if err != nil {
		return err
	}
	best, reachable := f.To(p.goal)

	switch {
	case !reachable && out.Phase != search.Succeeded:
		fmt.Fprintln(w, "verify: ok (unreachable)")
		return nil
	case !reachable:
		return fmt.Errorf("gridpath: verify: search found a route to an unreachable goal")
	case out.Phase != search.Succeeded && p.grid.Walkable(p.goal):
		if out.Phase == search.Running {
			fmt.Fprintf(w, "verify: stopped early, optimum %.3f\n", best)
			return nil
		}
		return fmt.Errorf("gridpath: verify: goal reachable at cost %.3f but search %s", best, out.Phase)
	case out.Phase != search.Succeeded:
		fmt.Fprintln(w, "verify: ok (blocked goal)")
		return nil
	}

	if math.Abs(out.Cost-best) <= 1e-9*math.Max(1, best) {
		fmt.Fprintf(w, "verify: ok (optimal %.3f)\n", best)
		return nil
	}
	if p.model.Admissible() {
		return fmt.Errorf("gridpath: verify: cost %.6f, optimum %.6f", out.Cost, best)
	}
	fmt.Fprintf(w, "verify: cost %.3f is %.1f%% above the optimum %.3f\n",
		out.Cost, 100*(out.Cost-best)/best, best)
	return nil
}

func writePNG(path string, e *search.Engine, p *problem, scale int) error {
	if scale < 1 {
		return fmt.Errorf("%w: --scale must be at least 1", errUsage)
	}
	c := render.NewCanvas(p.grid, render.WithScale(scale))
	c.MarkEndpoints(p.start, p.goal)
	c.Apply(e.Classify())

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := c.EncodePNG(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
