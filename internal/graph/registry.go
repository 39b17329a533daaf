package graph

import (
	"context"
	"sort"

	"grafanagraphs/internal/metrics"
	"grafanagraphs/internal/store"
	"grafanagraphs/pkg/logging"
)

// ConfigStore is the section store a Registry operates on.
type ConfigStore interface {
	HasSection(name string) bool
	GetSection(name string) (store.Section, bool)
	SetSection(name string, values store.Section)
	RemoveSection(name string)
	Save(ctx context.Context) error
}

// SectionLister is implemented by stores that can enumerate their sections.
type SectionLister interface {
	Sections() store.Sections
}

// Registry performs graph CRUD against a ConfigStore. Operations return the
// registry so calls can be chained.
type Registry struct {
	store     ConfigStore
	boundName string
	binding   *Binding
}

// NewRegistry creates a registry over s.
func NewRegistry(s ConfigStore) *Registry {
	return &Registry{store: s}
}

// Store returns the underlying store.
func (r *Registry) Store() ConfigStore {
	return r.store
}

// BoundName returns the name loaded by the last Bind, or "" when unbound.
func (r *Registry) BoundName() string {
	return r.boundName
}

// Binding returns the working copy loaded by the last Bind.
func (r *Registry) Binding() (Binding, bool) {
	if r.binding == nil {
		return Binding{}, false
	}
	return *r.binding, true
}

// Reset returns the registry to the unbound state.
func (r *Registry) Reset() {
	r.boundName = ""
	r.binding = nil
}

// Add creates the graph name with values.
func (r *Registry) Add(name string, values store.Section) (*Registry, error) {
	if name == "" {
		metrics.ObserveOperation("add", metrics.OutcomeInvalid)
		return r, &ValidationError{Fields: []string{KeyName}}
	}
	if r.store.HasSection(name) {
		metrics.ObserveOperation("add", metrics.OutcomeAlreadyExists)
		return r, &AlreadyExistsError{Name: name}
	}

	r.store.SetSection(name, withoutName(values))
	metrics.ObserveOperation("add", metrics.OutcomeSuccess)
	logging.Debug("Registry", "Added graph %s", name)
	return r, nil
}

// Bind loads the graph name into the working copy and remembers name as the
// bound name. The loaded values include a "name" entry so callers can detect
// a rename by comparing it with an edited value.
func (r *Registry) Bind(name string) (*Registry, error) {
	values, ok := r.store.GetSection(name)
	if !ok {
		metrics.ObserveOperation("bind", metrics.OutcomeNotFound)
		return r, &NotFoundError{Name: name, Action: "load"}
	}

	values = values.Clone()
	values[KeyName] = name
	r.boundName = name
	r.binding = &Binding{BoundName: name, Values: values}
	metrics.ObserveOperation("bind", metrics.OutcomeSuccess)
	return r, nil
}

// Get returns the graph name without changing the bound state.
func (r *Registry) Get(name string) (Graph, error) {
	values, ok := r.store.GetSection(name)
	if !ok {
		return Graph{}, &NotFoundError{Name: name, Action: "load"}
	}
	return FromSection(name, values), nil
}

// Update stores values for the graph previously called oldName. When name
// differs from oldName the graph is renamed by removing oldName and adding
// name; if the add fails the removed section is restored before the error is
// returned.
func (r *Registry) Update(name string, values store.Section, oldName string) (*Registry, error) {
	if name != oldName {
		previous, ok := r.store.GetSection(oldName)
		if !ok {
			metrics.ObserveOperation("update", metrics.OutcomeNotFound)
			return r, &NotFoundError{Name: oldName, Action: "remove"}
		}
		r.store.RemoveSection(oldName)
		if _, err := r.Add(name, values); err != nil {
			r.store.SetSection(oldName, previous)
			metrics.ObserveOperation("update", Outcome(err))
			logging.Warn("Registry", "Rename of graph %s to %s failed, restored original: %v", oldName, name, err)
			return r, err
		}
		r.unbind(oldName)
		metrics.ObserveOperation("update", metrics.OutcomeSuccess)
		logging.Debug("Registry", "Renamed graph %s to %s", oldName, name)
		return r, nil
	}

	if !r.store.HasSection(name) {
		metrics.ObserveOperation("update", metrics.OutcomeNotFound)
		return r, &NotFoundError{Name: name, Action: "update"}
	}

	r.store.SetSection(name, withoutName(values))
	r.unbind(name)
	metrics.ObserveOperation("update", metrics.OutcomeSuccess)
	logging.Debug("Registry", "Updated graph %s", name)
	return r, nil
}

// Remove deletes the graph name.
func (r *Registry) Remove(name string) (*Registry, error) {
	if !r.store.HasSection(name) {
		metrics.ObserveOperation("remove", metrics.OutcomeNotFound)
		return r, &NotFoundError{Name: name, Action: "remove"}
	}

	r.store.RemoveSection(name)
	r.unbind(name)
	metrics.ObserveOperation("remove", metrics.OutcomeSuccess)
	logging.Debug("Registry", "Removed graph %s", name)
	return r, nil
}

// List returns every graph sorted by name.
func (r *Registry) List() ([]Graph, error) {
	lister, ok := r.store.(SectionLister)
	if !ok {
		return nil, ErrListUnsupported
	}

	sections := lister.Sections()
	graphs := make([]Graph, 0, len(sections))
	for name, values := range sections {
		graphs = append(graphs, FromSection(name, values))
	}
	sort.Slice(graphs, func(i, j int) bool {
		return graphs[i].Name < graphs[j].Name
	})
	return graphs, nil
}

func (r *Registry) unbind(name string) {
	if r.boundName == name {
		r.Reset()
	}
}

// withoutName drops the "name" entry a bound working copy carries, since the
// name is the section key.
func withoutName(values store.Section) store.Section {
	if _, ok := values[KeyName]; !ok {
		return values
	}
	out := values.Clone()
	delete(out, KeyName)
	return out
}
