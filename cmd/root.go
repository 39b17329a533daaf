package cmd

import (
	"context"
	"fmt"
	"os"

	"grafanagraphs/internal/app"
	"grafanagraphs/internal/cli"
	"grafanagraphs/internal/graph"

	"github.com/spf13/cobra"
)

// Exit codes for CLI commands.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (command failed, invalid arguments).
	ExitCodeError = 1
	// ExitCodeNotFound indicates the named graph does not exist.
	ExitCodeNotFound = 3
	// ExitCodeAlreadyExists indicates the graph name is already taken.
	ExitCodeAlreadyExists = 4
)

var (
	// rootConfigPath is the configuration directory shared by all commands.
	rootConfigPath string
	// rootDebug enables debug logging.
	rootDebug bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "grafanagraphs",
	Short: "Manage the Grafana graphs shown for monitored services",
	Long: `grafanagraphs keeps a registry of named Grafana graphs. Each graph names
a dashboard and a panel, and is stored as one section of the graph
configuration (graphs.ini by default).

Graphs can be managed from this CLI, over an HTTP API (grafanagraphs serve)
or by MCP clients (grafanagraphs mcp).`,
	// SilenceUsage prevents Cobra from printing the usage message on errors that are handled by the application.
	SilenceUsage: true,
}

// SetVersion sets the version for the root command.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return rootCmd.Version
}

// Execute is the main entry point for the CLI application. It is called by main.main().
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "grafanagraphs version %s\n" .Version}}`)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(getExitCode(err))
	}
}

// getExitCode determines the appropriate exit code based on the error type.
// This provides semantic exit codes for scripting and automation.
func getExitCode(err error) int {
	switch {
	case err == nil:
		return ExitCodeSuccess
	case graph.IsNotFound(err):
		return ExitCodeNotFound
	case graph.IsAlreadyExists(err):
		return ExitCodeAlreadyExists
	default:
		return ExitCodeError
	}
}

// newApplication bootstraps the application for a command.
func newApplication(cmd *cobra.Command, source string) (*app.Application, error) {
	cfg := app.NewConfig(rootDebug, rootConfigPath, source)
	cfg.LogOutput = cmd.ErrOrStderr()
	return app.NewApplication(commandContext(cmd), cfg)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// submitted reports a form result: the success message on stdout or the
// error, which cobra prints and Execute maps to an exit code.
func submitted(cmd *cobra.Command, res graph.Result) error {
	if !res.OK {
		return res.Err
	}
	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(res.Message))
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootConfigPath, "config-path", "", "Configuration directory (default ~/.config/grafanagraphs)")
	rootCmd.PersistentFlags().BoolVar(&rootDebug, "debug", false, "Enable debug logging")
}
