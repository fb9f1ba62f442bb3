// Package server wraps the MCP server that exposes the cipher tools.
package server

import (
	"context"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Name is reported to clients in the initialize response.
const Name = "shiftcrack"

// Instructions tell clients how the recovery tools fit together.
const Instructions = `Shift cipher over the 32-letter Cyrillic alphabet (ё is not shifted).
Use encrypt/decrypt with a shift from -31 to 31. To recover an unknown key,
call crack with a reference text; without one, crack lists all 63 candidate
decryptions and select_shift completes the recovery with the chosen shift.`

// Server owns the MCP server and its logger.
type Server struct {
	mcp    *mcp.Server
	logger *slog.Logger
}

// New creates the MCP server reporting the given version.
func New(version string, logger *slog.Logger) *Server {
	impl := &mcp.Implementation{
		Name:    Name,
		Version: version,
	}

	return &Server{
		mcp:    mcp.NewServer(impl, &mcp.ServerOptions{Instructions: Instructions}),
		logger: logger,
	}
}

// Run serves on stdio until the client disconnects or ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.Serve(ctx, &mcp.StdioTransport{})
}

// Serve serves on an arbitrary transport.
func (s *Server) Serve(ctx context.Context, transport mcp.Transport) error {
	s.logger.Info("starting MCP server", "transport", transportName(transport))
	return s.mcp.Run(ctx, transport)
}

// MCPServer returns the underlying MCP server for tool registration.
func (s *Server) MCPServer() *mcp.Server {
	return s.mcp
}

// Setup installs request logging.
func (s *Server) Setup() {
	s.mcp.AddReceivingMiddleware(LoggingMiddleware(s.logger))
}

func transportName(t mcp.Transport) string {
	switch t.(type) {
	case *mcp.StdioTransport:
		return "stdio"
	case *mcp.InMemoryTransport:
		return "in-memory"
	default:
		return "custom"
	}
}
