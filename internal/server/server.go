// Package server exposes a macro library as Model Context Protocol tools.
package server

import (
	"context"
	"fmt"
	"log/slog"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/mj1618/keymacro/internal/library"
	"github.com/mj1618/keymacro/internal/version"
)

// Config holds MCP transport settings.
type Config struct {
	Transport string // stdio or streamable-http
	Port      int
}

// Server serves one library over MCP.
type Server struct {
	lib    *library.Library
	logger *slog.Logger
	mcp    *mcpserver.MCPServer
}

// New creates a server with every macro tool registered.
func New(lib *library.Library, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		lib:    lib,
		logger: logger,
		mcp:    mcpserver.NewMCPServer("keymacro", version.Version),
	}
	s.registerTools()
	return s
}

// MCP returns the underlying MCP server.
func (s *Server) MCP() *mcpserver.MCPServer { return s.mcp }

// Serve runs the configured transport until it fails or, for stdio, the
// client disconnects.
func (s *Server) Serve(cfg Config) error {
	switch cfg.Transport {
	case "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		s.logger.Info("mcp server listening", "port", cfg.Port)
		return httpServer.Start(fmt.Sprintf(":%d", cfg.Port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", cfg.Transport)
	}
}

// save persists the library; failures are logged and reported in results.
func (s *Server) save(ctx context.Context) error {
	if err := s.lib.Save(ctx); err != nil {
		s.logger.Error("save library", "err", err)
		return err
	}
	return nil
}

// Recorded saves the library when a recording session ends. Wire it to
// library.Options.OnRecorded so sessions stopped by their until key are
// persisted without a further tool call.
func (s *Server) Recorded(id string, events int) {
	if err := s.save(context.Background()); err != nil {
		return
	}
	s.logger.Info("recording saved", "id", id, "events", events)
}
