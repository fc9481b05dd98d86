// Package mcp exposes gridpath searches to AI agents over the Model Context
// Protocol.
//
// Tools:
//   - find_path: solve an ASCII map in one call; returns phase, cost, path
//     and the drawn map. The session is discarded afterwards.
//   - describe_grid: size, wall count and connected regions of a map, and
//     whether S and G share a region.
//   - create_search, step_search, list_searches: step-by-step searches kept
//     in the shared session.Manager.
//
// Maps use '#' for walls, '.' for open cells and 'S'/'G' for the endpoints.
// Tool failures (bad maps, unknown sessions) are reported as tool errors,
// never as protocol errors.
//
// Usage:
//
//	s := mcp.NewServer(session.NewManager(), "1.0.0")
//	server.ServeStdio(s.MCPServer())
package mcp
