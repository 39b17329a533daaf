package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// mcpCmd serves the MCP tools over stdio.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the graph tools to an MCP client over stdio",
	Long: `Runs an MCP server on stdin/stdout exposing the graph_list, graph_get,
graph_add, graph_update, graph_remove and graph_url tools. Logs go to
stderr.

Example client configuration:
  {"command": "grafanagraphs", "args": ["mcp"]}`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func runMCP(cmd *cobra.Command, args []string) error {
	application, err := newApplication(cmd, "mcp")
	if err != nil {
		return err
	}
	defer application.Close()

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return application.ServeMCP(ctx, GetVersion(), cmd.InOrStdin(), cmd.OutOrStdout())
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
