package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/mj1618/keymacro/internal/library"
	"github.com/mj1618/keymacro/internal/metrics"
	"github.com/mj1618/keymacro/internal/platform"
	"github.com/mj1618/keymacro/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an MCP server exposing macro tools",
	Long: `Start a Model Context Protocol (MCP) server that exposes macro management,
recording and playback as tools. Changes are saved to the store after every
tool call that modifies a macro and whenever a recording session ends.

Supported transports:
  stdio             Standard I/O (default, for MCP clients)
  streamable-http   Streamable HTTP transport (for remote agents)

With --metrics-addr an HTTP listener also serves /metrics (Prometheus),
/healthz and a read-only /macros listing.

Examples:
  keymacro serve
  keymacro serve --transport streamable-http --port 8080
  keymacro serve --metrics-addr :9090`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("transport", "stdio", "Transport: stdio, streamable-http")
	serveCmd.Flags().Int("port", 8080, "HTTP port for streamable-http transport")
	serveCmd.Flags().String("metrics-addr", "", "Address for the metrics and health listener (disabled if empty)")
}

func runServe(cmd *cobra.Command, args []string) error {
	transport, _ := cmd.Flags().GetString("transport")
	port, _ := cmd.Flags().GetInt("port")
	metricsAddr, _ := cmd.Flags().GetString("metrics-addr")

	var srv *server.Server
	opts := library.Options{
		Metrics: metrics.New(),
		OnRecorded: func(id string, n int) {
			if srv != nil {
				srv.Recorded(id, n)
			}
		},
	}
	s, err := openSession(cmd.Context(), true, opts)
	if errors.Is(err, platform.ErrUnsupported) {
		logger.Warn("no input backend, recording and playback tools will fail", "err", err)
		s, err = openSession(cmd.Context(), false, opts)
	}
	if err != nil {
		return err
	}
	defer s.close()

	srv = server.New(s.lib, logger)

	if metricsAddr != "" {
		httpServer := &http.Server{
			Addr:              metricsAddr,
			Handler:           srv.StatusRouter(opts.Metrics),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			logger.Info("status listener started", "addr", metricsAddr)
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("status listener", "err", err)
			}
		}()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = httpServer.Shutdown(ctx)
		}()
	}

	if err := srv.Serve(server.Config{Transport: transport, Port: port}); err != nil {
		return fmt.Errorf("mcp server: %w", err)
	}
	return s.save(cmd.Context())
}
