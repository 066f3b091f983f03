// Package server wraps the MCP stdio server that exposes the context store
// to connected agents.
package server

import (
	"context"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverName = "ctxmcp"

// instructions is shown to clients on initialize so agents know when to
// reach for the store instead of re-deriving context.
const instructions = `ctxmcp is a per-project context store. Use capture/capture_* to persist
decisions and findings as they happen, and recall or focus to pull them back
under a token budget at the start of a task. condense compacts old entries
into summaries.`

// Server owns the underlying MCP server and its logger. Tool registration
// happens separately via the tools package so main controls the wiring.
type Server struct {
	mcp    *mcp.Server
	logger *slog.Logger
}

// New builds the MCP server with request logging middleware already
// attached. version is reported to clients during initialize.
func New(version string, logger *slog.Logger) *Server {
	m := mcp.NewServer(&mcp.Implementation{
		Name:    serverName,
		Version: version,
	}, &mcp.ServerOptions{
		Instructions: instructions,
	})
	m.AddReceivingMiddleware(LoggingMiddleware(logger))

	return &Server{mcp: m, logger: logger}
}

// MCPServer exposes the underlying server for tool registration and for
// tests that connect over in-memory transports.
func (s *Server) MCPServer() *mcp.Server {
	return s.mcp
}

// Run serves on stdio until the client disconnects or ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("starting MCP server", "transport", "stdio")
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}
