package main

import (
	"context"
	"log"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/urfave/cli/v3"

	"github.com/katalvlaran/gridpath/session"
	gpmcp "github.com/katalvlaran/gridpath/transport/mcp"
)

func mcpCommand() *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "serve the MCP tools on stdin/stdout",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			// stdout carries the protocol
			log.SetOutput(os.Stderr)

			manager := session.NewManager()
			defer manager.Close()

			s := gpmcp.NewServer(manager, Version)
			log.Printf("Starting %s v%s MCP server on stdio", AppName, Version)
			return server.ServeStdio(s.MCPServer())
		},
	}
}
