package cmd

import (
	"github.com/spf13/cobra"
)

// removeCmd deletes a graph.
var removeCmd = &cobra.Command{
	Use:     "remove NAME",
	Aliases: []string{"rm"},
	Short:   "Remove a graph",
	Args:    cobra.ExactArgs(1),
	RunE:    runRemove,
}

func runRemove(cmd *cobra.Command, args []string) error {
	application, err := newApplication(cmd, "cli")
	if err != nil {
		return err
	}
	defer application.Close()

	return submitted(cmd, application.Form().Delete(commandContext(cmd), args[0]))
}

func init() {
	rootCmd.AddCommand(removeCmd)
}
