// Package cli provides the output and prompt helpers shared by the
// grafanagraphs commands.
//
// # Output Formats
//
// Graphs are printed in one of three formats:
//   - table: kubectl-style plain table (NAME, DASHBOARD, PANEL ID)
//   - json: indented JSON using the graph's json tags
//   - yaml: YAML converted from the JSON representation
//
// # Prompts
//
// The interactive edit command asks for every field through a Prompter.
// ReadlinePrompter is the terminal implementation; it pre-fills the bound
// value so pressing enter keeps it.
package cli
