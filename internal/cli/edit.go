package cli

import (
	"grafanagraphs/internal/graph"
)

// Field labels used by EditSubmission.
const (
	LabelName      = "Name"
	LabelDashboard = "Dashboard"
	LabelPanelID   = "Panel ID"
)

// EditSubmission prompts for every field of sub, offering the current values
// as defaults. BoundName is preserved so a changed name is submitted as a
// rename.
func EditSubmission(p Prompter, sub graph.Submission) (graph.Submission, error) {
	fields := []struct {
		label string
		value *string
	}{
		{LabelName, &sub.Name},
		{LabelDashboard, &sub.Dashboard},
		{LabelPanelID, &sub.PanelID},
	}

	for _, f := range fields {
		v, err := p.Prompt(f.label, *f.value)
		if err != nil {
			return graph.Submission{}, err
		}
		*f.value = v
	}
	return sub, nil
}
