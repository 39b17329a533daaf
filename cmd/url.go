package cmd

import (
	"fmt"

	"grafanagraphs/internal/grafana"

	"github.com/spf13/cobra"
)

var (
	urlHost    string
	urlService string
	urlFrom    string
	urlTo      string
)

// urlCmd prints the Grafana panel URL of a graph.
var urlCmd = &cobra.Command{
	Use:   "url NAME",
	Short: "Print the Grafana panel URL of a graph",
	Long: `Render the panel URL of a graph from grafana.baseURL and
grafana.urlTemplate. The service defaults to the graph name.

Example:
  grafanagraphs url svc1 --host web01`,
	Args: cobra.ExactArgs(1),
	RunE: runURL,
}

func runURL(cmd *cobra.Command, args []string) error {
	application, err := newApplication(cmd, "cli")
	if err != nil {
		return err
	}
	defer application.Close()

	g, err := application.Form().Registry().Get(args[0])
	if err != nil {
		return err
	}

	u, err := application.Renderer().URL(g, grafana.Context{
		Host:    urlHost,
		Service: urlService,
		From:    urlFrom,
		To:      urlTo,
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), u)
	return nil
}

func init() {
	rootCmd.AddCommand(urlCmd)

	urlCmd.Flags().StringVar(&urlHost, "host", "", "Host name passed as var-hostname")
	urlCmd.Flags().StringVar(&urlService, "service", "", "Service passed as var-service (default: graph name)")
	urlCmd.Flags().StringVar(&urlFrom, "from", "", "Start of the time range (default from config)")
	urlCmd.Flags().StringVar(&urlTo, "to", "", "End of the time range (default from config)")
}
