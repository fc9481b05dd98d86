package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/katalvlaran/gridpath/grid"
	"github.com/katalvlaran/gridpath/search"
)

// CanvasOptions configures a Canvas.
//
// Scale   – pixels per cell side, ≥ 1. Default 1.
// Palette – colours. Default DefaultPalette().
type CanvasOptions struct {
	Scale   int
	Palette Palette
}

// CanvasOption represents a functional option for configuring a Canvas.
type CanvasOption func(*CanvasOptions)

// WithScale draws each cell as an n×n block. Panics if n < 1.
func WithScale(n int) CanvasOption {
	return func(o *CanvasOptions) {
		if n < 1 {
			panic("render: WithScale requires n >= 1")
		}
		o.Scale = n
	}
}

// WithPalette replaces the default colours.
func WithPalette(p Palette) CanvasOption {
	return func(o *CanvasOptions) {
		o.Palette = p
	}
}

// DefaultCanvasOptions returns scale 1 with the default palette.
func DefaultCanvasOptions() CanvasOptions {
	return CanvasOptions{Scale: 1, Palette: DefaultPalette()}
}

// Canvas is an RGBA picture of one grid under search.
type Canvas struct {
	img     *image.RGBA
	g       *grid.Grid
	options CanvasOptions
}

// NewCanvas paints g with walls and floor only.
func NewCanvas(g *grid.Grid, opts ...CanvasOption) *Canvas {
	cfg := DefaultCanvasOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	c := &Canvas{
		img:     image.NewRGBA(image.Rect(0, 0, g.Width()*cfg.Scale, g.Height()*cfg.Scale)),
		g:       g,
		options: cfg,
	}
	c.Reset()
	return c
}

// Reset repaints every cell as wall or floor.
func (c *Canvas) Reset() {
	for y := 0; y < c.g.Height(); y++ {
		for x := 0; x < c.g.Width(); x++ {
			cell := grid.Cell{X: x, Y: y}
			col := c.options.Palette.Empty
			if c.g.IsBlocked(cell) {
				col = c.options.Palette.Wall
			}
			c.fill(cell, col)
		}
	}
}

// MarkEndpoints paints start and goal with the endpoint colour. Later
// changes to those cells paint over them.
func (c *Canvas) MarkEndpoints(start, goal grid.Cell) {
	c.fill(start, c.options.Palette.Endpoint)
	c.fill(goal, c.options.Palette.Endpoint)
}

// Apply paints each change in order; later entries win.
func (c *Canvas) Apply(changes []search.Change) {
	for _, ch := range changes {
		c.fill(ch.Cell, c.options.Palette.Status(ch.Status))
	}
}

// At returns the colour of a cell.
func (c *Canvas) At(cell grid.Cell) color.RGBA {
	s := c.options.Scale
	return c.img.RGBAAt(cell.X*s, cell.Y*s)
}

// Image returns the backing picture. It is shared, not copied.
func (c *Canvas) Image() *image.RGBA { return c.img }

// EncodePNG writes the picture as PNG.
func (c *Canvas) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, c.img); err != nil {
		return fmt.Errorf("render: encoding png: %w", err)
	}
	return nil
}

func (c *Canvas) fill(cell grid.Cell, col color.RGBA) {
	if !c.g.InBounds(cell) {
		return
	}
	s := c.options.Scale
	for dy := 0; dy < s; dy++ {
		for dx := 0; dx < s; dx++ {
			c.img.SetRGBA(cell.X*s+dx, cell.Y*s+dy, col)
		}
	}
}
