package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"grafanagraphs/internal/graph"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"sigs.k8s.io/yaml"
)

// OutputFormat represents the supported output formats for CLI commands.
type OutputFormat string

const (
	// OutputFormatTable formats output as a kubectl-style plain table
	OutputFormatTable OutputFormat = "table"
	// OutputFormatJSON formats output as indented JSON
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatYAML formats output as YAML
	OutputFormatYAML OutputFormat = "yaml"
)

// ValidOutputFormats contains all valid output format values.
var ValidOutputFormats = []OutputFormat{
	OutputFormatTable,
	OutputFormatJSON,
	OutputFormatYAML,
}

// ValidateOutputFormat validates that the given format string is a supported output format.
func ValidateOutputFormat(format string) error {
	switch OutputFormat(format) {
	case OutputFormatTable, OutputFormatJSON, OutputFormatYAML:
		return nil
	default:
		return fmt.Errorf("unsupported output format: %q (valid: table, json, yaml)", format)
	}
}

// Printer writes graphs in the selected format.
type Printer struct {
	Format    OutputFormat
	NoHeaders bool
}

// PrintGraphs writes a list of graphs.
func (p *Printer) PrintGraphs(w io.Writer, graphs []graph.Graph) error {
	if graphs == nil {
		graphs = []graph.Graph{}
	}

	switch p.Format {
	case OutputFormatJSON:
		return writeJSON(w, graphs)
	case OutputFormatYAML:
		return writeYAML(w, graphs)
	default:
		if len(graphs) == 0 {
			fmt.Fprintln(w, "No graphs configured")
			return nil
		}
		p.writeTable(w, graphs)
		return nil
	}
}

// PrintGraph writes a single graph.
func (p *Printer) PrintGraph(w io.Writer, g graph.Graph) error {
	switch p.Format {
	case OutputFormatJSON:
		return writeJSON(w, g)
	case OutputFormatYAML:
		return writeYAML(w, g)
	default:
		p.writeTable(w, []graph.Graph{g})
		return nil
	}
}

func (p *Printer) writeTable(w io.Writer, graphs []graph.Graph) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(plainStyle())

	if !p.NoHeaders {
		t.AppendHeader(table.Row{"Name", "Dashboard", "Panel ID"})
	}
	for _, g := range graphs {
		t.AppendRow(table.Row{g.Name, g.Dashboard, g.PanelID})
	}
	t.Render()
}

// plainStyle renders without box-drawing characters so output can be piped
// to grep, awk and cut.
func plainStyle() table.Style {
	style := table.StyleDefault
	style.Name = "Plain"
	style.Options = table.OptionsNoBordersAndSeparators
	style.Box.PaddingLeft = ""
	style.Box.PaddingRight = "   "
	style.Format.Header = text.FormatUpper
	return style
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func writeYAML(w io.Writer, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// FormatError formats an error message for CLI output
func FormatError(err error) string {
	return fmt.Sprintf("Error: %v", err)
}

// FormatSuccess formats a success message for CLI output
func FormatSuccess(msg string) string {
	return fmt.Sprintf("✓ %s", msg)
}
