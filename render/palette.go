package render

import (
	"image/color"

	"github.com/katalvlaran/gridpath/search"
)

// Palette maps cell classes to colours.
type Palette struct {
	Wall     color.RGBA
	Empty    color.RGBA
	Frontier color.RGBA
	Settled  color.RGBA
	Path     color.RGBA
	Endpoint color.RGBA
}

// DefaultPalette returns the classic visualizer colours.
func DefaultPalette() Palette {
	return Palette{
		Wall:     color.RGBA{R: 0, G: 0, B: 0, A: 255},
		Empty:    color.RGBA{R: 255, G: 255, B: 255, A: 255},
		Frontier: color.RGBA{R: 47, G: 214, B: 72, A: 255},
		Settled:  color.RGBA{R: 194, G: 31, B: 31, A: 255},
		Path:     color.RGBA{R: 47, G: 97, B: 214, A: 255},
		Endpoint: color.RGBA{R: 47, G: 97, B: 214, A: 255},
	}
}

// Status returns the colour of a search status; Undiscovered is Empty.
func (p Palette) Status(s search.Status) color.RGBA {
	switch s {
	case search.Frontier:
		return p.Frontier
	case search.Settled:
		return p.Settled
	case search.Path:
		return p.Path
	default:
		return p.Empty
	}
}
