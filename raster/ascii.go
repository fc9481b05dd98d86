package raster

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/katalvlaran/gridpath/grid"
)

// Map is a parsed ASCII map: the obstacle bitmap plus optional endpoints.
type Map struct {
	Bitmap   *Bitmap
	Start    grid.Cell
	Goal     grid.Cell
	HasStart bool
	HasGoal  bool
}

// ParseASCII reads one row per line. Trailing whitespace and blank lines are
// ignored; every other character must be one of '#', '.', 'S' or 'G'.
// S and G are open cells that also set the endpoints.
//
// Errors: ErrEmptyMap, ErrRaggedMap, ErrUnknownSymbol, ErrDuplicateEndpoint,
// each wrapped with the offending position.
func ParseASCII(r io.Reader) (*Map, error) {
	var rows []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), " \t\r")
		if line == "" {
			continue
		}
		rows = append(rows, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("raster: reading map: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyMap
	}

	width := len(rows[0])
	b, err := NewBitmap(width, len(rows))
	if err != nil {
		return nil, err
	}
	m := &Map{Bitmap: b}
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrRaggedMap, y, len(row), width)
		}
		for x := 0; x < width; x++ {
			switch row[x] {
			case SymbolWall:
				b.Set(x, y, true)
			case SymbolOpen:
			case SymbolStart:
				if m.HasStart {
					return nil, fmt.Errorf("%w: second %q at (%d,%d)", ErrDuplicateEndpoint, SymbolStart, x, y)
				}
				m.Start, m.HasStart = grid.Cell{X: x, Y: y}, true
			case SymbolGoal:
				if m.HasGoal {
					return nil, fmt.Errorf("%w: second %q at (%d,%d)", ErrDuplicateEndpoint, SymbolGoal, x, y)
				}
				m.Goal, m.HasGoal = grid.Cell{X: x, Y: y}, true
			default:
				return nil, fmt.Errorf("%w: %q at (%d,%d)", ErrUnknownSymbol, row[x], x, y)
			}
		}
	}
	return m, nil
}

// ParseString is ParseASCII over a string.
func ParseString(s string) (*Map, error) {
	return ParseASCII(strings.NewReader(s))
}

// String formats the map back into the ASCII alphabet.
func (m *Map) String() string {
	var sb strings.Builder
	for y := 0; y < m.Bitmap.height; y++ {
		for x := 0; x < m.Bitmap.width; x++ {
			c := grid.Cell{X: x, Y: y}
			switch {
			case m.HasStart && c == m.Start:
				sb.WriteByte(SymbolStart)
			case m.HasGoal && c == m.Goal:
				sb.WriteByte(SymbolGoal)
			case m.Bitmap.Blocked(x, y):
				sb.WriteByte(SymbolWall)
			default:
				sb.WriteByte(SymbolOpen)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
