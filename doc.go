// Package gridpath is an incremental A* pathfinding engine for 2-D grids,
// with the surfaces needed to watch it work.
//
// What is inside?
//
//	grid/       immutable walkable/blocked snapshot, Conn4/Conn8 neighbours, regions
//	cost/       step cost and octile/Manhattan heuristic with g/h multipliers
//	frontier/   indexed min-heap with decrease-key and oldest-first ties
//	search/     the Engine: Initialize, Step, RunToCompletion, ReconstructPath
//	distance/   full Dijkstra distance field, used to verify routes
//	raster/     ASCII maps, PNG obstacle images, nearest-neighbour resampling
//	render/     PNG canvas, terminal frames and GeoJSON export of a search
//	driver/     per-tick scheduler, animated or fast
//	session/    in-memory registry of live searches
//	metrics/    Prometheus collectors
//	transport/  websocket hub and MCP tools
//	api/        REST server
//	cmd/        the gridpath binary: solve, animate, serve, mcp
//
// Quick ASCII example:
//
//	S.#.G        S.#.G
//	..#..        .*#*.
//	..#..   →    .*#*.
//	..#..        .*#*.
//	.....        ..*..
//
// The left map is searched one expansion per Step until the goal is
// settled; the right shows the shortest route found, cost 4 + 4√2 under
// Conn8 with unit multipliers.
//
//	go install github.com/katalvlaran/gridpath/cmd/gridpath@latest
package gridpath
