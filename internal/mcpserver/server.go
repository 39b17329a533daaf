package mcpserver

import (
	"context"
	"io"
	"net/http"
	"sync"

	"grafanagraphs/internal/grafana"
	"grafanagraphs/internal/graph"
	"grafanagraphs/pkg/logging"

	"github.com/mark3labs/mcp-go/server"
)

// ServerName is announced to MCP clients.
const ServerName = "grafanagraphs"

// Options configures a Server.
type Options struct {
	// Form runs the submit workflow. Required.
	Form *graph.Form
	// Renderer builds panel URLs. graph_url reports an error when nil.
	Renderer *grafana.Renderer
	// Version is announced to clients.
	Version string
	// Lock serialises registry access. A private mutex is used when nil.
	Lock sync.Locker
}

// Server holds the MCP server and its graph tools.
type Server struct {
	mu       sync.Locker
	form     *graph.Form
	renderer *grafana.Renderer
	mcp      *server.MCPServer
}

// New creates the MCP server and registers the graph tools.
func New(opts Options) *Server {
	s := &Server{
		mu:       opts.Lock,
		form:     opts.Form,
		renderer: opts.Renderer,
		mcp: server.NewMCPServer(
			ServerName,
			opts.Version,
			server.WithToolCapabilities(false),
			server.WithRecovery(),
		),
	}
	if s.mu == nil {
		s.mu = &sync.Mutex{}
	}

	s.registerTools()
	return s
}

// MCPServer returns the underlying mcp-go server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

// ServeStdio serves MCP over in and out until ctx is cancelled or in is
// closed.
func (s *Server) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	logging.Info("MCP", "Starting MCP server with stdio transport")
	return server.NewStdioServer(s.mcp).Listen(ctx, in, out)
}

// HTTPHandler returns a streamable HTTP handler for mounting under /mcp.
func (s *Server) HTTPHandler() http.Handler {
	return server.NewStreamableHTTPServer(s.mcp)
}
