package render_test

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gridpath/cost"
	"github.com/katalvlaran/gridpath/grid"
	"github.com/katalvlaran/gridpath/raster"
	"github.com/katalvlaran/gridpath/render"
	"github.com/katalvlaran/gridpath/search"
)

// engineFor parses an ASCII map and returns an initialized engine plus every
// StepResult it produces until terminal.
func engineFor(t *testing.T, src string) (*search.Engine, []search.StepResult) {
	t.Helper()
	m, err := raster.ParseString(src)
	require.NoError(t, err)
	g, err := m.Bitmap.Grid()
	require.NoError(t, err)
	model, err := cost.New()
	require.NoError(t, err)

	var seen []search.StepResult
	e, err := search.NewEngine(g, model, search.WithObserver(func(r search.StepResult) {
		seen = append(seen, r)
	}))
	require.NoError(t, err)
	_, err = e.Initialize(m.Start, m.Goal)
	require.NoError(t, err)
	_, _ = e.RunToCompletion()
	return e, seen
}

func TestPalette_Status(t *testing.T) {
	p := render.DefaultPalette()
	assert.Equal(t, p.Frontier, p.Status(search.Frontier))
	assert.Equal(t, p.Settled, p.Status(search.Settled))
	assert.Equal(t, p.Path, p.Status(search.Path))
	assert.Equal(t, p.Empty, p.Status(search.Undiscovered))
	assert.Equal(t, uint8(214), p.Frontier.G)
	assert.Equal(t, uint8(194), p.Settled.R)
}

func TestCanvas_InitialPicture(t *testing.T) {
	e, _ := engineFor(t, "S#G\n...\n")
	p := render.DefaultPalette()
	c := render.NewCanvas(e.Grid(), render.WithScale(3))

	assert.Equal(t, 9, c.Image().Bounds().Dx())
	assert.Equal(t, 6, c.Image().Bounds().Dy())
	assert.Equal(t, p.Wall, c.At(grid.Cell{X: 1, Y: 0}))
	assert.Equal(t, p.Empty, c.At(grid.Cell{X: 0, Y: 0}))
	// every pixel of a scaled block shares the colour
	assert.Equal(t, p.Wall, c.Image().RGBAAt(5, 2))

	c.MarkEndpoints(e.Start(), e.Goal())
	assert.Equal(t, p.Endpoint, c.At(grid.Cell{X: 2, Y: 0}))
}

// TestCanvas_ReplayEqualsClassify checks that incremental painting of every
// step ends in the same picture as one full classification.
func TestCanvas_ReplayEqualsClassify(t *testing.T) {
	maps := []string{
		"S....\n.###.\n....G\n",
		"S.#..\n..#..\n..#.G\n",
		"S#...\n##...\n....G\n",
	}
	for _, src := range maps {
		e, seen := engineFor(t, src)

		replay := render.NewCanvas(e.Grid())
		replay.MarkEndpoints(e.Start(), e.Goal())
		for _, r := range seen {
			replay.Apply(r.Changes)
		}

		full := render.NewCanvas(e.Grid())
		full.MarkEndpoints(e.Start(), e.Goal())
		full.Apply(e.Classify())

		assert.Equal(t, full.Image().Pix, replay.Image().Pix, "map:\n%s", src)
	}
}

func TestCanvas_EncodePNG(t *testing.T) {
	e, _ := engineFor(t, "S.\n.G\n")
	c := render.NewCanvas(e.Grid(), render.WithScale(4))
	c.Apply(e.Classify())

	var buf bytes.Buffer
	require.NoError(t, c.EncodePNG(&buf))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 8, img.Bounds().Dx())

	r, g, b, _ := img.At(0, 0).RGBA()
	want := render.DefaultPalette().Path
	assert.Equal(t, uint32(want.R)*0x101, r)
	assert.Equal(t, uint32(want.G)*0x101, g)
	assert.Equal(t, uint32(want.B)*0x101, b)
}

func TestWithScale_Panics(t *testing.T) {
	e, _ := engineFor(t, "SG\n")
	assert.Panics(t, func() { render.NewCanvas(e.Grid(), render.WithScale(0)) })
}

func TestTerminal_Frames(t *testing.T) {
	e, seen := engineFor(t, "S...G\n")
	term := render.NewTerminal(e.Grid(), e.Start(), e.Goal())
	assert.Equal(t, "S...G\n", term.Frame())

	term.Apply(seen[1].Changes)
	assert.Equal(t, "So..G\n", term.Frame())

	for _, r := range seen[2:] {
		term.Apply(r.Changes)
	}
	assert.Equal(t, "S***G\n", term.Frame())
}

func TestTerminal_Unreachable(t *testing.T) {
	e, seen := engineFor(t, "S.#G\n..#.\n")
	require.Equal(t, search.Failed, e.Phase())
	term := render.NewTerminal(e.Grid(), e.Start(), e.Goal())
	for _, r := range seen {
		term.Apply(r.Changes)
	}
	assert.Equal(t, "Sx#G\nxx#.\n", term.Frame())
}

func TestTerminal_Draw(t *testing.T) {
	e, _ := engineFor(t, "SG\n")
	term := render.NewTerminal(e.Grid(), e.Start(), e.Goal())

	var sb strings.Builder
	require.NoError(t, term.Draw(&sb, false))
	assert.Equal(t, "SG\n", sb.String())

	sb.Reset()
	require.NoError(t, term.Draw(&sb, true))
	assert.True(t, strings.HasPrefix(sb.String(), "\x1b["))
	assert.True(t, strings.HasSuffix(sb.String(), "SG\n"))
}
