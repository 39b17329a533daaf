package cmd

import (
	"grafanagraphs/internal/graph"

	"github.com/spf13/cobra"
)

var (
	addDashboard string
	addPanelID   string
)

// addCmd adds a new graph.
var addCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Add a graph",
	Long: `Add a graph for a service. The name must not be taken yet.

Example:
  grafanagraphs add svc1 --dashboard Hosts --panel-id 1`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

func runAdd(cmd *cobra.Command, args []string) error {
	application, err := newApplication(cmd, "cli")
	if err != nil {
		return err
	}
	defer application.Close()

	res := application.Form().Submit(commandContext(cmd), graph.Submission{
		Name:      args[0],
		Dashboard: addDashboard,
		PanelID:   addPanelID,
	})
	return submitted(cmd, res)
}

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVar(&addDashboard, "dashboard", "", "Grafana dashboard UID")
	addCmd.Flags().StringVar(&addPanelID, "panel-id", "", "Panel ID within the dashboard")
}
