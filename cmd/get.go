package cmd

import (
	"grafanagraphs/internal/cli"

	"github.com/spf13/cobra"
)

var getOutput cli.OutputFlags

// getCmd loads a graph and prints it.
var getCmd = &cobra.Command{
	Use:   "get NAME",
	Short: "Show a graph",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	printer, err := getOutput.Printer()
	if err != nil {
		return err
	}

	application, err := newApplication(cmd, "cli")
	if err != nil {
		return err
	}
	defer application.Close()

	form := application.Form()
	if _, err := form.Load(args[0]); err != nil {
		return err
	}
	binding, _ := form.Registry().Binding()
	return printer.PrintGraph(cmd.OutOrStdout(), binding.Graph())
}

func init() {
	rootCmd.AddCommand(getCmd)
	cli.RegisterOutputFlags(getCmd, &getOutput)
}
