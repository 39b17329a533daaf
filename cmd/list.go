package cmd

import (
	"grafanagraphs/internal/cli"

	"github.com/spf13/cobra"
)

var listOutput cli.OutputFlags

// listCmd prints every configured graph.
var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all graphs",
	Args:    cobra.NoArgs,
	RunE:    runList,
}

func runList(cmd *cobra.Command, args []string) error {
	printer, err := listOutput.Printer()
	if err != nil {
		return err
	}

	application, err := newApplication(cmd, "cli")
	if err != nil {
		return err
	}
	defer application.Close()

	graphs, err := application.Form().Registry().List()
	if err != nil {
		return err
	}
	return printer.PrintGraphs(cmd.OutOrStdout(), graphs)
}

func init() {
	rootCmd.AddCommand(listCmd)
	cli.RegisterOutputFlags(listCmd, &listOutput)
}
