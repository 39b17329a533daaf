package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"grafanagraphs/pkg/logging"
)

// ErrPendingChanges is returned by Reload when staged changes would be lost.
var ErrPendingChanges = errors.New("store has unsaved changes")

// Backend loads and persists the complete section set.
type Backend interface {
	// Name identifies the backend in logs, e.g. "ini".
	Name() string
	// Load reads every section. A backend with no data returns an empty set.
	Load(ctx context.Context) (Sections, error)
	// Persist replaces the stored data with sections.
	Persist(ctx context.Context, sections Sections) error
	// Close releases backend resources.
	Close() error
}

// FileBackend is implemented by backends that keep their data in a single file.
type FileBackend interface {
	Backend
	Path() string
}

// Config is a staged section store over a Backend.
type Config struct {
	mu        sync.RWMutex
	backend   Backend
	committed Sections
	working   Sections
	dirty     bool
}

// New loads the backend's sections and returns a store ready for use.
func New(ctx context.Context, backend Backend) (*Config, error) {
	sections, err := backend.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load sections from %s backend: %w", backend.Name(), err)
	}

	logging.Info("Store", "Loaded %d sections from %s backend", len(sections), backend.Name())
	return &Config{
		backend:   backend,
		committed: sections,
		working:   sections.Clone(),
	}, nil
}

// Backend returns the backend the store persists to.
func (c *Config) Backend() Backend {
	return c.backend
}

// HasSection reports whether a section named name exists.
func (c *Config) HasSection(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, ok := c.working[name]
	return ok
}

// GetSection returns a copy of the named section.
func (c *Config) GetSection(name string) (Section, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	sec, ok := c.working[name]
	if !ok {
		return nil, false
	}
	return sec.Clone(), true
}

// SetSection creates or replaces the named section.
func (c *Config) SetSection(name string, values Section) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.working[name] = values.Clone()
	c.dirty = true
}

// RemoveSection deletes the named section. Removing a missing section is a no-op.
func (c *Config) RemoveSection(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.working[name]; !ok {
		return
	}
	delete(c.working, name)
	c.dirty = true
}

// Sections returns a copy of every section.
func (c *Config) Sections() Sections {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.working.Clone()
}

// Dirty reports whether there are staged changes not yet saved.
func (c *Config) Dirty() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.dirty
}

// Save persists the working set. On failure the working set is left as is so
// the caller can decide between retrying and Discard.
func (c *Config) Save(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	snapshot := c.working.Clone()
	if err := c.backend.Persist(ctx, snapshot); err != nil {
		logging.Error("Store", err, "Failed to persist %d sections to %s backend", len(snapshot), c.backend.Name())
		return fmt.Errorf("failed to persist sections to %s backend: %w", c.backend.Name(), err)
	}

	c.committed = snapshot
	c.dirty = false
	logging.Debug("Store", "Persisted %d sections to %s backend", len(snapshot), c.backend.Name())
	return nil
}

// Discard drops staged changes and restores the last committed snapshot.
func (c *Config) Discard() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.dirty {
		logging.Debug("Store", "Discarding staged changes")
	}
	c.working = c.committed.Clone()
	c.dirty = false
}

// Reload re-reads the backend, replacing the committed snapshot. It refuses to
// run while staged changes exist.
func (c *Config) Reload(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.dirty {
		return ErrPendingChanges
	}

	sections, err := c.backend.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to reload sections from %s backend: %w", c.backend.Name(), err)
	}

	c.committed = sections
	c.working = sections.Clone()
	logging.Info("Store", "Reloaded %d sections from %s backend", len(sections), c.backend.Name())
	return nil
}

// Close closes the backend.
func (c *Config) Close() error {
	return c.backend.Close()
}
