package render

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/katalvlaran/gridpath/grid"
	"github.com/katalvlaran/gridpath/search"
)

// Feature kinds, stored under the "kind" property.
const (
	KindPath     = "path"
	KindStart    = "start"
	KindGoal     = "goal"
	KindSettled  = "settled"
	KindFrontier = "frontier"
)

// GeoJSON exports the state of e as a FeatureCollection in grid units.
//
// Cells map to their centres, (x+0.5, y+0.5), with y growing downward as in
// the raster. The collection holds, in order:
//   - a "start" and a "goal" Point;
//   - a "settled" and a "frontier" MultiPoint, omitted when empty;
//   - on success, a "path" LineString with "cost" and "steps" properties.
//
// Cells on the path are listed only in the LineString.
func GeoJSON(e *search.Engine) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	fc.Append(feature(centre(e.Start()), KindStart))
	fc.Append(feature(centre(e.Goal()), KindGoal))

	var settled, open orb.MultiPoint
	for _, ch := range e.Classify() {
		switch ch.Status {
		case search.Settled:
			settled = append(settled, centre(ch.Cell))
		case search.Frontier:
			open = append(open, centre(ch.Cell))
		}
	}
	if len(settled) > 0 {
		fc.Append(feature(settled, KindSettled))
	}
	if len(open) > 0 {
		fc.Append(feature(open, KindFrontier))
	}

	path, err := e.ReconstructPath()
	if err != nil {
		return fc
	}
	line := make(orb.LineString, len(path))
	for i, c := range path {
		line[i] = centre(c)
	}
	f := feature(line, KindPath)
	f.Properties["cost"], _ = e.PathCost()
	f.Properties["steps"] = e.Steps()
	fc.Append(f)
	return fc
}

func feature(g orb.Geometry, kind string) *geojson.Feature {
	f := geojson.NewFeature(g)
	f.Properties["kind"] = kind
	return f
}

func centre(c grid.Cell) orb.Point {
	return orb.Point{float64(c.X) + 0.5, float64(c.Y) + 0.5}
}
