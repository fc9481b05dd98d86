package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/katalvlaran/gridpath/grid"
	"github.com/katalvlaran/gridpath/raster"
	"github.com/katalvlaran/gridpath/search"
	"github.com/katalvlaran/gridpath/session"
)

// Server exposes gridpath searches as MCP tools backed by a session.Manager.
type Server struct {
	sessions  *session.Manager
	mcpServer *server.MCPServer
}

// NewServer registers the tools on a new MCP server. Sessions created
// through the tools live in m, so they are also visible to the HTTP API when
// both share a manager.
func NewServer(m *session.Manager, version string) *Server {
	s := &Server{sessions: m}
	s.mcpServer = server.NewMCPServer(
		"gridpath",
		version,
		server.WithToolCapabilities(true),
		server.WithInstructions(`gridpath - grid A* pathfinding

Maps are ASCII, one row per line: '#' wall, '.' open, 'S' start, 'G' goal.
Moves go to the 8 neighbours (conn8, diagonals cost sqrt 2) or the 4
orthogonal ones (conn4).

AVAILABLE TOOLS:
- find_path: solve a map at once and draw the result
- describe_grid: size, walls and connected regions of a map
- create_search: start a search to advance step by step
- step_search: expand the next cells of a search
- list_searches: list live searches

In drawings 'o' is a frontier cell, 'x' a settled cell and '*' the path.`),
	)
	s.registerTools()
	return s
}

// MCPServer returns the underlying MCP server for serving.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

func searchProperties() map[string]interface{} {
	return map[string]interface{}{
		"map": map[string]interface{}{
			"type":        "string",
			"description": "ASCII map with exactly one S and one G",
		},
		"connectivity": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"conn8", "conn4"},
			"description": "Move set (default conn8)",
		},
		"g_multiplier": map[string]interface{}{
			"type":        "number",
			"description": "Step cost weight (default 1)",
		},
		"h_multiplier": map[string]interface{}{
			"type":        "number",
			"description": "Heuristic weight (default 1; above g_multiplier trades optimality for speed)",
		},
		"reopen": map[string]interface{}{
			"type":        "boolean",
			"description": "Re-expand settled cells when a cheaper route appears",
		},
	}
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "find_path",
		Description: "Find the cheapest route from S to G and draw the explored map",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: searchProperties(),
			Required:   []string{"map"},
		},
	}, s.handleFindPath)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "describe_grid",
		Description: "Describe a map: size, wall count, connected regions and whether S can reach G",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"map": map[string]interface{}{
					"type":        "string",
					"description": "ASCII map",
				},
				"connectivity": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"conn8", "conn4"},
					"description": "Move set (default conn8)",
				},
			},
			Required: []string{"map"},
		},
	}, s.handleDescribeGrid)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "create_search",
		Description: "Create a search session that can be advanced with step_search",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: searchProperties(),
			Required:   []string{"map"},
		},
	}, s.handleCreateSearch)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "step_search",
		Description: "Expand the next cells of a search and draw its state",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Search session ID",
				},
				"steps": map[string]interface{}{
					"type":        "number",
					"description": "Number of expansions (default 1)",
				},
			},
			Required: []string{"session_id"},
		},
	}, s.handleStepSearch)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "list_searches",
		Description: "List all live search sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleListSearches)
}

func (s *Server) handleFindPath(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})
	spec, err := specFromArgs(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	info, err := s.sessions.Create(spec)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	defer s.sessions.Delete(info.ID)

	out, runErr := s.sessions.Run(info.ID)
	if runErr != nil && !errors.Is(runErr, search.ErrEmptyFrontier) && !errors.Is(runErr, search.ErrInvalidEndpoint) {
		return mcp.NewToolResultError(runErr.Error()), nil
	}
	frame, err := s.sessions.Render(info.ID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatOutcome(out, runErr, frame)), nil
}

func (s *Server) handleDescribeGrid(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})
	text, _ := args["map"].(string)
	m, err := raster.ParseString(text)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	var conn grid.Connectivity
	switch c, _ := args["connectivity"].(string); c {
	case "", grid.Conn8.String():
		conn = grid.Conn8
	case grid.Conn4.String():
		conn = grid.Conn4
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown connectivity %q", c)), nil
	}
	if w, h := m.Bitmap.Width(), m.Bitmap.Height(); w > s.sessions.MaxCells()/h {
		return mcp.NewToolResultError(fmt.Sprintf("map %dx%d exceeds %d cells", w, h, s.sessions.MaxCells())), nil
	}
	g, err := m.Bitmap.Grid(grid.WithConnectivity(conn))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "size: %dx%d (%s)\n", g.Width(), g.Height(), g.Connectivity())
	fmt.Fprintf(&b, "walls: %d of %d cells\n", g.BlockedCount(), g.Width()*g.Height())
	regions := g.Regions()
	fmt.Fprintf(&b, "regions: %d\n", len(regions))
	for i, r := range regions {
		fmt.Fprintf(&b, "  #%d: %d cells from %s\n", i+1, len(r), formatCell(r[0]))
	}
	if m.HasStart {
		fmt.Fprintf(&b, "start: %s\n", formatCell(m.Start))
	}
	if m.HasGoal {
		fmt.Fprintf(&b, "goal: %s\n", formatCell(m.Goal))
	}
	if m.HasStart && m.HasGoal {
		fmt.Fprintf(&b, "reachable: %t\n", g.SameRegion(m.Start, m.Goal))
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleCreateSearch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})
	spec, err := specFromArgs(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	info, err := s.sessions.Create(spec)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	frame, err := s.sessions.Render(info.ID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("session: %s\n%s\n%s", info.ID, formatInfo(info), frame)
	return mcp.NewToolResultText(result), nil
}

func (s *Server) handleStepSearch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})
	id, _ := args["session_id"].(string)
	n := 1
	if v, ok := args["steps"].(float64); ok {
		n = int(v)
	}

	if _, err := s.sessions.Step(id, n); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	info, err := s.sessions.Get(id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	frame, err := s.sessions.Render(id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatInfo(info) + "\n"
	if info.Phase == search.Succeeded {
		out, err := s.sessions.Path(id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		result += fmt.Sprintf("cost: %.3f\npath: %s\n", out.Cost, formatPath(out.Path))
	}
	return mcp.NewToolResultText(result + frame), nil
}

func (s *Server) handleListSearches(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	list := s.sessions.List()
	if len(list) == 0 {
		return mcp.NewToolResultText("No searches"), nil
	}
	var b strings.Builder
	for _, in := range list {
		fmt.Fprintf(&b, "%s: %dx%d %s→%s %s, %d steps\n",
			in.ID, in.Width, in.Height, formatCell(in.Start), formatCell(in.Goal), in.Phase, in.Steps)
	}
	return mcp.NewToolResultText(b.String()), nil
}

// specFromArgs reads the shared search arguments.
func specFromArgs(args map[string]interface{}) (session.Spec, error) {
	text, _ := args["map"].(string)
	if strings.TrimSpace(text) == "" {
		return session.Spec{}, fmt.Errorf("%w: map is required", session.ErrBadSpec)
	}
	spec := session.Spec{Map: text}
	spec.Connectivity, _ = args["connectivity"].(string)
	if v, ok := args["g_multiplier"].(float64); ok {
		spec.GMultiplier = &v
	}
	if v, ok := args["h_multiplier"].(float64); ok {
		spec.HMultiplier = &v
	}
	spec.Reopen, _ = args["reopen"].(bool)
	return spec, nil
}

func formatOutcome(out search.Outcome, cause error, frame string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "phase: %s\n", out.Phase)
	if cause != nil {
		fmt.Fprintf(&b, "reason: %v\n", cause)
	}
	if out.Phase == search.Succeeded {
		fmt.Fprintf(&b, "cost: %.3f\n", out.Cost)
		fmt.Fprintf(&b, "path: %s\n", formatPath(out.Path))
	}
	fmt.Fprintf(&b, "steps: %d (settled %d, discovered %d)\n", out.Steps, out.Settled, out.Discovered)
	b.WriteString(frame)
	return b.String()
}

func formatInfo(in session.Info) string {
	s := fmt.Sprintf("phase: %s\nsteps: %d (frontier %d, settled %d)", in.Phase, in.Steps, in.Frontier, in.Settled)
	if in.Error != "" {
		s += "\nreason: " + in.Error
	}
	return s
}

func formatPath(path []grid.Cell) string {
	parts := make([]string, len(path))
	for i, c := range path {
		parts[i] = formatCell(c)
	}
	return strings.Join(parts, " ")
}

func formatCell(c grid.Cell) string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}
