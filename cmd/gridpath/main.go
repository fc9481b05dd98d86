// Command gridpath runs incremental A* searches on obstacle grids.
//
// Subcommands:
//  1. solve   – search a map file at once and print the route
//  2. animate – draw the search in the terminal, one expansion per tick
//  3. serve   – HTTP API, websocket stream, MCP at /mcp and Prometheus metrics,
//     optionally through an ngrok tunnel
//  4. mcp     – MCP tool server on stdio
//
// Maps are ASCII files ('#' wall, '.' open, 'S' start, 'G' goal) or PNG
// pictures whose black pixels are walls. Search and server flags can also be
// set through GRIDPATH_* environment variables, and a .env file in the working
// directory is loaded first.
package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "gridpath"
)

func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: Error loading .env file: %v", err)
		}
	}

	if err := newApp().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

// newApp assembles the command tree.
func newApp() *cli.Command {
	return &cli.Command{
		Name:    AppName,
		Usage:   "incremental A* pathfinding on obstacle grids",
		Version: Version,
		Commands: []*cli.Command{
			solveCommand(),
			animateCommand(),
			serveCommand(),
			mcpCommand(),
		},
	}
}
