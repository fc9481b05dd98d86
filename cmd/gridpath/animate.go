package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/katalvlaran/gridpath/driver"
	"github.com/katalvlaran/gridpath/render"
)

func animateCommand() *cli.Command {
	flags := append(searchFlags(),
		&cli.DurationFlag{
			Name:    "tick",
			Value:   driver.DefaultTick,
			Usage:   "time between frames",
			Sources: cli.EnvVars("GRIDPATH_TICK"),
		},
		&cli.IntFlag{
			Name:    "steps-per-tick",
			Value:   1,
			Usage:   "expansions drawn per frame",
			Sources: cli.EnvVars("GRIDPATH_STEPS_PER_TICK"),
		},
		&cli.BoolFlag{
			Name:  "fast",
			Usage: "finish the search before drawing a single frame",
		},
		&cli.BoolFlag{
			Name:  "no-clear",
			Usage: "print frames one after another instead of redrawing in place",
		},
	)
	return &cli.Command{
		Name:      "animate",
		Usage:     "draw the search in the terminal as it expands",
		ArgsUsage: "MAP",
		Flags:     flags,
		Action:    runAnimate,
	}
}

func runAnimate(ctx context.Context, cmd *cli.Command) error {
	p, err := loadProblem(cmd)
	if err != nil {
		return err
	}
	if cmd.Int("steps-per-tick") < 1 {
		return fmt.Errorf("%w: --steps-per-tick must be at least 1", errUsage)
	}
	e, err := p.engine()
	if e == nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	w := cmd.Root().Writer
	redraw := !cmd.Bool("no-clear")
	t := render.NewTerminal(p.grid, p.start, p.goal)
	t.Apply(e.Classify())
	if err := t.Draw(w, redraw); err != nil {
		return err
	}

	sink := func(f driver.Frame) error {
		for _, r := range f.Steps {
			t.Apply(r.Changes)
		}
		t.Apply(f.Snapshot)
		return t.Draw(w, redraw)
	}
	out, err := driver.Run(ctx, e, sink,
		driver.WithTick(cmd.Duration("tick")),
		driver.WithStepsPerTick(cmd.Int("steps-per-tick")),
		driver.WithFast(cmd.Bool("fast")),
	)
	printOutcome(w, out, err)
	if err != nil {
		return fmt.Errorf("gridpath: %w", err)
	}
	return nil
}
