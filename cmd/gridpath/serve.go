package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/urfave/cli/v3"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/gridpath/api"
	"github.com/katalvlaran/gridpath/metrics"
	"github.com/katalvlaran/gridpath/session"
	gpmcp "github.com/katalvlaran/gridpath/transport/mcp"
	"github.com/katalvlaran/gridpath/transport/websocket"
)

// shutdownTimeout bounds graceful HTTP shutdown.
const shutdownTimeout = 5 * time.Second

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the HTTP API with websocket streaming, MCP and metrics",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "addr",
				Value:   ":8080",
				Usage:   "listen address",
				Sources: cli.EnvVars("GRIDPATH_ADDR"),
			},
			&cli.BoolFlag{
				Name:    "ngrok",
				Usage:   "also serve through an ngrok tunnel (token from NGROK_AUTHTOKEN)",
				Sources: cli.EnvVars("GRIDPATH_NGROK", "NGROK_ENABLED"),
			},
			&cli.StringFlag{
				Name:    "ngrok-domain",
				Usage:   "reserved ngrok domain for the tunnel",
				Sources: cli.EnvVars("NGROK_DOMAIN"),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			ln, err := net.Listen("tcp", cmd.String("addr"))
			if err != nil {
				return err
			}
			listeners := []net.Listener{ln}
			if cmd.Bool("ngrok") {
				tun, err := openTunnel(ctx, cmd.String("ngrok-domain"))
				if err != nil {
					ln.Close()
					return err
				}
				listeners = append(listeners, tun)
			}
			return serve(ctx, listeners...)
		},
	}
}

// openTunnel starts an ngrok HTTP endpoint, on domain when it is set.
func openTunnel(ctx context.Context, domain string) (net.Listener, error) {
	var opts []ngrokConfig.HTTPEndpointOption
	if domain != "" {
		opts = append(opts, ngrokConfig.WithDomain(domain))
	}
	tun, err := ngrok.Listen(ctx, ngrokConfig.HTTPEndpoint(opts...), ngrok.WithAuthtokenFromEnv())
	if err != nil {
		return nil, fmt.Errorf("gridpath: ngrok: %w", err)
	}
	log.Printf("Ngrok tunnel established: %s", tun.URL())
	return tun, nil
}

// handler mounts the MCP endpoint at /mcp and the REST API everywhere else.
func handler(manager *session.Manager, hub *websocket.Hub, reg *prometheus.Registry) http.Handler {
	mcpServer := gpmcp.NewServer(manager, Version).MCPServer()

	root := http.NewServeMux()
	root.Handle("/", api.NewServer(manager, hub, metrics.Handler(reg)))
	root.Handle("/mcp", server.NewStreamableHTTPServer(mcpServer, server.WithStateLess(true)))
	return root
}

// serve runs the hub and one HTTP server on every listener until ctx is
// done or any of them fails, then shuts everything down.
func serve(ctx context.Context, listeners ...net.Listener) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	hub := websocket.NewHub()
	manager := session.NewManager(
		session.WithBroadcaster(hub),
		session.WithMetrics(metrics.New(reg)),
	)
	srv := &http.Server{
		Handler:           handler(manager, hub, reg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return hub.Run(gctx)
	})
	for _, ln := range listeners {
		g.Go(func() error {
			log.Printf("Starting %s v%s on %s", AppName, Version, ln.Addr())
			if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		log.Println("Shutting down server...")
		manager.Close()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	err := g.Wait()
	log.Println("Server stopped")
	return err
}
