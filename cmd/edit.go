package cmd

import (
	"grafanagraphs/internal/cli"

	"github.com/spf13/cobra"
)

// newPrompter creates the prompter used by edit. Tests replace it.
var newPrompter = func() (cli.Prompter, error) {
	p, err := cli.NewReadlinePrompter()
	if err != nil {
		return nil, err
	}
	return p, nil
}

// editCmd edits a graph interactively.
var editCmd = &cobra.Command{
	Use:   "edit NAME",
	Short: "Edit a graph interactively",
	Long: `Load a graph and prompt for each field. The current value is
pre-filled; press enter to keep it. Changing the name renames the graph.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func runEdit(cmd *cobra.Command, args []string) error {
	application, err := newApplication(cmd, "cli")
	if err != nil {
		return err
	}
	defer application.Close()

	form := application.Form()
	sub, err := form.Load(args[0])
	if err != nil {
		return err
	}

	prompter, err := newPrompter()
	if err != nil {
		return err
	}
	defer prompter.Close()

	edited, err := cli.EditSubmission(prompter, sub)
	if err != nil {
		return err
	}
	return submitted(cmd, form.Submit(commandContext(cmd), edited))
}

func init() {
	rootCmd.AddCommand(editCmd)
}
