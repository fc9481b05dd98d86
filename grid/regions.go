package grid

// Regions finds all connected regions of walkable cells under the grid's
// connectivity. Regions are returned in row-major order of their first cell
// and each region lists its cells in BFS discovery order.
//
// Time:   O(W·H·d), where d = 4 or 8.
// Memory: O(W·H) for labels and output.
func (g *Grid) Regions() [][]Cell {
	_, regions := g.label()
	return regions
}

// SameRegion reports whether a and b are both walkable and connected.
// A search between two cells that are not in the same region always
// exhausts its frontier.
func (g *Grid) SameRegion(a, b Cell) bool {
	if !g.Walkable(a) || !g.Walkable(b) {
		return false
	}
	labels, _ := g.label()
	return labels[g.index(a)] == labels[g.index(b)]
}

// label assigns a region number to every walkable cell (-1 for walls) and
// collects the cells of each region.
func (g *Grid) label() ([]int, [][]Cell) {
	total := g.width * g.height
	labels := make([]int, total)
	for i := range labels {
		labels[i] = -1
	}
	var regions [][]Cell
	for i0 := 0; i0 < total; i0++ {
		if g.blocked[i0] || labels[i0] >= 0 {
			continue // wall or already labelled
		}
		id := len(regions)
		labels[i0] = id
		region := []Cell{g.cellAt(i0)}
		for qi := 0; qi < len(region); qi++ {
			for _, v := range g.Neighbors(region[qi]) {
				vi := g.index(v)
				if labels[vi] < 0 {
					labels[vi] = id
					region = append(region, v)
				}
			}
		}
		regions = append(regions, region)
	}
	return labels, regions
}
