package store

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryBackend is an in-memory Backend with injectable failures.
type memoryBackend struct {
	data       Sections
	persistErr error
	loadErr    error
	persists   int
}

func (m *memoryBackend) Name() string { return "memory" }

func (m *memoryBackend) Load(ctx context.Context) (Sections, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.data.Clone(), nil
}

func (m *memoryBackend) Persist(ctx context.Context, sections Sections) error {
	if m.persistErr != nil {
		return m.persistErr
	}
	m.persists++
	m.data = sections.Clone()
	return nil
}

func (m *memoryBackend) Close() error { return nil }

func newTestConfig(t *testing.T, data Sections) (*Config, *memoryBackend) {
	t.Helper()
	backend := &memoryBackend{data: data}
	c, err := New(context.Background(), backend)
	require.NoError(t, err)
	return c, backend
}

func TestNew_LoadError(t *testing.T) {
	_, err := New(context.Background(), &memoryBackend{loadErr: errors.New("boom")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "memory backend")
}

func TestConfig_SectionAccessors(t *testing.T) {
	c, _ := newTestConfig(t, Sections{"svc1": {"dashboard": "Hosts", "panelId": "1"}})

	assert.True(t, c.HasSection("svc1"))
	assert.False(t, c.HasSection("svc2"))

	sec, ok := c.GetSection("svc1")
	require.True(t, ok)
	assert.Equal(t, Section{"dashboard": "Hosts", "panelId": "1"}, sec)

	_, ok = c.GetSection("svc2")
	assert.False(t, ok)

	c.SetSection("svc2", Section{"dashboard": "Net", "panelId": "2"})
	assert.True(t, c.HasSection("svc2"))
	assert.True(t, c.Dirty())

	c.RemoveSection("svc1")
	assert.False(t, c.HasSection("svc1"))
	assert.Equal(t, []string{"svc2"}, c.Sections().Names())
}

func TestConfig_NoAliasing(t *testing.T) {
	c, _ := newTestConfig(t, Sections{})

	values := Section{"dashboard": "Hosts"}
	c.SetSection("svc1", values)
	values["dashboard"] = "mutated"

	got, _ := c.GetSection("svc1")
	assert.Equal(t, "Hosts", got["dashboard"])

	got["dashboard"] = "mutated again"
	again, _ := c.GetSection("svc1")
	assert.Equal(t, "Hosts", again["dashboard"])
}

func TestConfig_RemoveMissingIsNoop(t *testing.T) {
	c, _ := newTestConfig(t, Sections{})
	c.RemoveSection("ghost")
	assert.False(t, c.Dirty())
}

func TestConfig_SaveCommits(t *testing.T) {
	c, backend := newTestConfig(t, Sections{})

	c.SetSection("svc1", Section{"dashboard": "Hosts", "panelId": "1"})
	require.NoError(t, c.Save(context.Background()))

	assert.False(t, c.Dirty())
	assert.Equal(t, 1, backend.persists)
	if diff := cmp.Diff(Sections{"svc1": {"dashboard": "Hosts", "panelId": "1"}}, backend.data); diff != "" {
		t.Errorf("persisted sections mismatch (-want +got):\n%s", diff)
	}

	// Later discards fall back to the saved state, not the initial one.
	c.RemoveSection("svc1")
	c.Discard()
	assert.True(t, c.HasSection("svc1"))
}

func TestConfig_SaveFailureKeepsStagedChanges(t *testing.T) {
	c, backend := newTestConfig(t, Sections{"svc1": {"dashboard": "Hosts"}})
	backend.persistErr = errors.New("disk full")

	c.SetSection("svc2", Section{"dashboard": "Net"})
	err := c.Save(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, backend.persistErr)
	assert.True(t, c.Dirty())
	assert.True(t, c.HasSection("svc2"))

	c.Discard()
	assert.False(t, c.Dirty())
	assert.False(t, c.HasSection("svc2"))
	assert.True(t, c.HasSection("svc1"))
}

func TestConfig_Reload(t *testing.T) {
	c, backend := newTestConfig(t, Sections{"svc1": {"dashboard": "Hosts"}})

	backend.data = Sections{"svc9": {"dashboard": "External"}}
	require.NoError(t, c.Reload(context.Background()))
	assert.True(t, c.HasSection("svc9"))
	assert.False(t, c.HasSection("svc1"))

	c.SetSection("svc10", Section{})
	assert.ErrorIs(t, c.Reload(context.Background()), ErrPendingChanges)
	assert.True(t, c.HasSection("svc10"))
}
