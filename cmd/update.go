package cmd

import (
	"grafanagraphs/internal/graph"

	"github.com/spf13/cobra"
)

var (
	updateRename    string
	updateDashboard string
	updatePanelID   string
)

// updateCmd changes or renames a graph.
var updateCmd = &cobra.Command{
	Use:   "update NAME",
	Short: "Update or rename a graph",
	Long: `Update a graph. Fields that are not given keep their current value.
A rename removes the old graph and adds the new one; if the new name is
taken the old graph is kept unchanged.

Examples:
  grafanagraphs update svc1 --panel-id 4
  grafanagraphs update svc1 --rename svc2`,
	Args: cobra.ExactArgs(1),
	RunE: runUpdate,
}

func runUpdate(cmd *cobra.Command, args []string) error {
	application, err := newApplication(cmd, "cli")
	if err != nil {
		return err
	}
	defer application.Close()

	res := application.Form().Edit(commandContext(cmd), args[0], graph.Patch{
		Name:      updateRename,
		Dashboard: updateDashboard,
		PanelID:   updatePanelID,
	})
	return submitted(cmd, res)
}

func init() {
	rootCmd.AddCommand(updateCmd)

	updateCmd.Flags().StringVar(&updateRename, "rename", "", "New graph name")
	updateCmd.Flags().StringVar(&updateDashboard, "dashboard", "", "Grafana dashboard UID")
	updateCmd.Flags().StringVar(&updatePanelID, "panel-id", "", "Panel ID within the dashboard")
}
