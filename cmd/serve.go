package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"grafanagraphs/internal/app"

	"github.com/spf13/cobra"
)

// serveListen overrides server.listen from the configuration.
var serveListen string

// serveCmd runs the HTTP API.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the graph registry over HTTP",
	Long: `Starts the HTTP API for the graph registry. The MCP streamable HTTP
endpoint is mounted at /mcp and Prometheus metrics at /metrics.

For the ini, yaml and sqlite backends the store file is watched and
reloaded when another process changes it.

Runs until interrupted (Ctrl+C or SIGTERM).`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	application, err := newApplication(cmd, "http")
	if err != nil {
		return err
	}
	defer application.Close()

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return application.Serve(ctx, app.ServeOptions{
		Listen:  serveListen,
		Version: GetVersion(),
	})
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveListen, "listen", "", "Listen address, e.g. 127.0.0.1:8091 (default from config)")
}
