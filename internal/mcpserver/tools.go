package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"grafanagraphs/internal/grafana"
	"grafanagraphs/internal/graph"
	"grafanagraphs/pkg/logging"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Tool names.
const (
	ToolList   = "graph_list"
	ToolGet    = "graph_get"
	ToolAdd    = "graph_add"
	ToolUpdate = "graph_update"
	ToolRemove = "graph_remove"
	ToolURL    = "graph_url"
)

func (s *Server) registerTools() {
	nameArg := mcp.WithString("name", mcp.Required(), mcp.Description("Graph name (the service it belongs to)"))

	s.mcp.AddTools(
		server.ServerTool{
			Tool: mcp.NewTool(ToolList,
				mcp.WithDescription("List all configured Grafana graphs"),
			),
			Handler: s.handleList,
		},
		server.ServerTool{
			Tool: mcp.NewTool(ToolGet,
				mcp.WithDescription("Show the dashboard and panel of a graph"),
				nameArg,
			),
			Handler: s.handleGet,
		},
		server.ServerTool{
			Tool: mcp.NewTool(ToolAdd,
				mcp.WithDescription("Add a graph"),
				nameArg,
				mcp.WithString("dashboard", mcp.Required(), mcp.Description("Grafana dashboard UID")),
				mcp.WithString("panelId", mcp.Required(), mcp.Description("Panel ID within the dashboard, as a string or an integer")),
			),
			Handler: s.handleAdd,
		},
		server.ServerTool{
			Tool: mcp.NewTool(ToolUpdate,
				mcp.WithDescription("Update a graph. Omitted fields keep their value; newName renames the graph"),
				nameArg,
				mcp.WithString("newName", mcp.Description("New graph name")),
				mcp.WithString("dashboard", mcp.Description("Grafana dashboard UID")),
				mcp.WithString("panelId", mcp.Description("Panel ID within the dashboard, as a string or an integer")),
			),
			Handler: s.handleUpdate,
		},
		server.ServerTool{
			Tool: mcp.NewTool(ToolRemove,
				mcp.WithDescription("Remove a graph"),
				nameArg,
			),
			Handler: s.handleRemove,
		},
		server.ServerTool{
			Tool: mcp.NewTool(ToolURL,
				mcp.WithDescription("Render the Grafana panel URL of a graph"),
				nameArg,
				mcp.WithString("host", mcp.Description("Host name passed as var-hostname")),
				mcp.WithString("service", mcp.Description("Service passed as var-service, defaults to the graph name")),
				mcp.WithString("from", mcp.Description("Start of the time range, e.g. now-6h")),
				mcp.WithString("to", mcp.Description("End of the time range, e.g. now")),
			),
			Handler: s.handleURL,
		},
	)
}

func (s *Server) handleList(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	graphs, err := s.form.Registry().List()
	s.mu.Unlock()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if graphs == nil {
		graphs = []graph.Graph{}
	}
	return jsonResult(graphs)
}

func (s *Server) handleGet(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.mu.Lock()
	g, err := s.form.Registry().Get(name)
	s.mu.Unlock()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(g)
}

func (s *Server) handleAdd(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	panelID, err := panelIDArgument(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	sub := graph.Submission{
		Name:      name,
		Dashboard: request.GetString("dashboard", ""),
		PanelID:   panelID,
	}
	s.mu.Lock()
	res := s.form.Submit(ctx, sub)
	s.mu.Unlock()
	return submitResult(res), nil
}

func (s *Server) handleUpdate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	panelID, err := panelIDArgument(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	patch := graph.Patch{
		Name:      request.GetString("newName", ""),
		Dashboard: request.GetString("dashboard", ""),
		PanelID:   panelID,
	}
	s.mu.Lock()
	res := s.form.Edit(ctx, name, patch)
	s.mu.Unlock()
	return submitResult(res), nil
}

func (s *Server) handleRemove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.mu.Lock()
	res := s.form.Delete(ctx, name)
	s.mu.Unlock()
	return submitResult(res), nil
}

func (s *Server) handleURL(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if s.renderer == nil {
		return mcp.NewToolResultError("panel URL rendering is not configured"), nil
	}

	s.mu.Lock()
	g, err := s.form.Registry().Get(name)
	s.mu.Unlock()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	u, err := s.renderer.URL(g, grafana.Context{
		Host:    request.GetString("host", ""),
		Service: request.GetString("service", ""),
		From:    request.GetString("from", ""),
		To:      request.GetString("to", ""),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(u), nil
}

// panelIDArgument reads panelId, which clients may send as a string or a number.
func panelIDArgument(request mcp.CallToolRequest) (string, error) {
	return graph.PanelIDString(request.GetArguments()[graph.KeyPanelID])
}

func submitResult(res graph.Result) *mcp.CallToolResult {
	if !res.OK {
		return mcp.NewToolResultError(res.Message)
	}
	return mcp.NewToolResultText(res.Message)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		logging.Error("MCP", err, "Failed to encode tool result")
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
