package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/katalvlaran/gridpath/grid"
	"github.com/katalvlaran/gridpath/search"
)

// Glyphs of a terminal frame.
const (
	GlyphWall     = '#'
	GlyphEmpty    = '.'
	GlyphFrontier = 'o'
	GlyphSettled  = 'x'
	GlyphPath     = '*'
	GlyphStart    = 'S'
	GlyphGoal     = 'G'
)

// ANSI sequence that homes the cursor and clears the screen.
const clearScreen = "\x1b[H\x1b[2J"

// Terminal is a character picture of one grid under search.
type Terminal struct {
	g           *grid.Grid
	cells       []byte
	start, goal grid.Cell
}

// NewTerminal paints g with walls, floor and the two endpoints.
// Endpoints keep their letters whatever their search status.
func NewTerminal(g *grid.Grid, start, goal grid.Cell) *Terminal {
	t := &Terminal{
		g:     g,
		cells: make([]byte, g.Width()*g.Height()),
		start: start,
		goal:  goal,
	}
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			c := grid.Cell{X: x, Y: y}
			t.cells[y*g.Width()+x] = GlyphEmpty
			if g.IsBlocked(c) {
				t.cells[y*g.Width()+x] = GlyphWall
			}
		}
	}
	return t
}

// Apply records each change in order.
func (t *Terminal) Apply(changes []search.Change) {
	for _, ch := range changes {
		if !t.g.InBounds(ch.Cell) {
			continue
		}
		t.cells[ch.Cell.Y*t.g.Width()+ch.Cell.X] = glyph(ch.Status)
	}
}

// Frame returns the current picture, one line per row.
func (t *Terminal) Frame() string {
	var sb strings.Builder
	sb.Grow(len(t.cells) + t.g.Height())
	w := t.g.Width()
	for y := 0; y < t.g.Height(); y++ {
		for x := 0; x < w; x++ {
			c := grid.Cell{X: x, Y: y}
			switch {
			case c == t.start:
				sb.WriteByte(GlyphStart)
			case c == t.goal:
				sb.WriteByte(GlyphGoal)
			default:
				sb.WriteByte(t.cells[y*w+x])
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Draw writes the frame, prefixed with a clear-screen sequence when redraw
// is set, so consecutive frames animate in place.
func (t *Terminal) Draw(w io.Writer, redraw bool) error {
	frame := t.Frame()
	if redraw {
		frame = clearScreen + frame
	}
	if _, err := io.WriteString(w, frame); err != nil {
		return fmt.Errorf("render: drawing frame: %w", err)
	}
	return nil
}

func glyph(s search.Status) byte {
	switch s {
	case search.Frontier:
		return GlyphFrontier
	case search.Settled:
		return GlyphSettled
	case search.Path:
		return GlyphPath
	default:
		return GlyphEmpty
	}
}
