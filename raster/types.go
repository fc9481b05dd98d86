package raster

import "errors"

// Sentinel errors returned by the raster constructors and parsers.
var (
	// ErrBadSize indicates a non-positive bitmap width or height, or a
	// width×height that overflows.
	ErrBadSize = errors.New("raster: bad bitmap size")

	// ErrNilImage indicates FromImage was given a nil image.
	ErrNilImage = errors.New("raster: image is nil")

	// ErrEmptyMap indicates an ASCII map without any rows.
	ErrEmptyMap = errors.New("raster: map has no rows")

	// ErrRaggedMap indicates ASCII rows of different lengths.
	ErrRaggedMap = errors.New("raster: map rows differ in length")

	// ErrUnknownSymbol indicates a character outside the map alphabet.
	ErrUnknownSymbol = errors.New("raster: unknown map symbol")

	// ErrDuplicateEndpoint indicates more than one S or G in a map.
	ErrDuplicateEndpoint = errors.New("raster: endpoint marked more than once")
)

// Map alphabet.
const (
	SymbolWall  = '#'
	SymbolOpen  = '.'
	SymbolStart = 'S'
	SymbolGoal  = 'G'
)
