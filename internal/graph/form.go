package graph

import (
	"context"

	"grafanagraphs/internal/metrics"
	"grafanagraphs/internal/store"
	"grafanagraphs/pkg/logging"
)

// Success messages reported by Form.
const (
	MessageSaved   = "Graph saved"
	MessageUpdated = "Graph updated"
	MessageRemoved = "Graph removed"
)

// StagedStore is a ConfigStore whose unsaved changes can be dropped.
type StagedStore interface {
	ConfigStore
	Discard()
}

// Submission carries the submitted field values. BoundName is empty when
// creating a graph and holds the original name when editing one.
type Submission struct {
	Name      string
	Dashboard string
	PanelID   string
	BoundName string
}

// Values returns the section values of the submission.
func (s Submission) Values() store.Section {
	return Graph{Name: s.Name, Dashboard: s.Dashboard, PanelID: s.PanelID}.Section()
}

// IsUpdate reports whether the submission edits an existing graph.
func (s Submission) IsUpdate() bool {
	return s.BoundName != ""
}

// Result is the outcome of a submit. Err is nil when OK is true.
type Result struct {
	OK      bool
	Message string
	Err     error
}

// Form runs the submit workflow against a staged store.
type Form struct {
	registry *Registry
	store    StagedStore
	source   string
}

// NewForm creates a form over s. source labels audit entries and metrics
// ("cli", "http", "mcp").
func NewForm(s StagedStore, source string) *Form {
	return &Form{
		registry: NewRegistry(s),
		store:    s,
		source:   source,
	}
}

// Registry returns the form's registry for read operations.
func (f *Form) Registry() *Registry {
	return f.registry
}

// Load binds name and returns a submission prefilled with its values.
func (f *Form) Load(name string) (Submission, error) {
	if _, err := f.registry.Bind(name); err != nil {
		return Submission{}, err
	}
	binding, _ := f.registry.Binding()
	g := binding.Graph()
	return Submission{
		Name:      g.Name,
		Dashboard: g.Dashboard,
		PanelID:   g.PanelID,
		BoundName: binding.BoundName,
	}, nil
}

// Submit validates the submission, adds or updates the graph and saves the
// store. Every failure is reported in the Result. When the registry
// operation or the save fails, staged changes are discarded so the store
// matches what was last persisted.
func (f *Form) Submit(ctx context.Context, sub Submission) Result {
	values := sub.Values()

	action, message := "graph_add", MessageSaved
	if sub.IsUpdate() {
		action, message = "graph_update", MessageUpdated
	}

	if err := Validate(sub.Name, values); err != nil {
		return f.fail(action, sub.Name, sub.BoundName, err)
	}

	var err error
	if sub.IsUpdate() {
		_, err = f.registry.Update(sub.Name, values, sub.BoundName)
	} else {
		_, err = f.registry.Add(sub.Name, values)
	}
	if err != nil {
		f.store.Discard()
		return f.fail(action, sub.Name, sub.BoundName, err)
	}

	return f.save(ctx, action, sub.Name, sub.BoundName, message)
}

// Patch holds field changes for an existing graph. Empty fields keep the
// stored value; a Name different from the edited graph renames it.
type Patch struct {
	Name      string
	Dashboard string
	PanelID   string
}

// Apply returns sub with the non-empty fields of p applied.
func (p Patch) Apply(sub Submission) Submission {
	if p.Name != "" {
		sub.Name = p.Name
	}
	if p.Dashboard != "" {
		sub.Dashboard = p.Dashboard
	}
	if p.PanelID != "" {
		sub.PanelID = p.PanelID
	}
	return sub
}

// Edit loads name, applies patch and submits the result as an update.
func (f *Form) Edit(ctx context.Context, name string, patch Patch) Result {
	sub, err := f.Load(name)
	if err != nil {
		return f.fail("graph_update", name, "", err)
	}
	return f.Submit(ctx, patch.Apply(sub))
}

// Delete removes name and saves the store.
func (f *Form) Delete(ctx context.Context, name string) Result {
	if _, err := f.registry.Remove(name); err != nil {
		f.store.Discard()
		return f.fail("graph_remove", name, "", err)
	}
	return f.save(ctx, "graph_remove", name, "", MessageRemoved)
}

func (f *Form) save(ctx context.Context, action, name, previous, message string) Result {
	if err := f.store.Save(ctx); err != nil {
		f.store.Discard()
		return f.fail(action, name, previous, &PersistenceError{Err: err})
	}

	if lister, ok := f.store.(SectionLister); ok {
		metrics.SetGraphsConfigured(len(lister.Sections()))
	}
	metrics.ObserveSubmit(f.source, metrics.OutcomeSuccess)
	logging.Audit(logging.AuditEvent{
		Action:   action,
		Outcome:  "success",
		Target:   name,
		Previous: renamedFrom(name, previous),
		Source:   f.source,
	})
	return Result{OK: true, Message: message}
}

func (f *Form) fail(action, name, previous string, err error) Result {
	metrics.ObserveSubmit(f.source, Outcome(err))
	logging.Audit(logging.AuditEvent{
		Action:   action,
		Outcome:  "failure",
		Target:   name,
		Previous: renamedFrom(name, previous),
		Source:   f.source,
		Error:    err.Error(),
	})
	return Result{OK: false, Message: err.Error(), Err: err}
}

// Outcome maps an error to a metrics outcome label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case IsNotFound(err):
		return metrics.OutcomeNotFound
	case IsAlreadyExists(err):
		return metrics.OutcomeAlreadyExists
	case IsValidation(err):
		return metrics.OutcomeInvalid
	default:
		return metrics.OutcomeError
	}
}

func renamedFrom(name, previous string) string {
	if previous == "" || previous == name {
		return ""
	}
	return previous
}
