package store

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grafanagraphs/internal/config"
)

// setupMiniRedis creates a RedisBackend against an in-process Redis server.
func setupMiniRedis(t *testing.T) (*miniredis.Miniredis, *RedisBackend) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	backend := NewRedisBackend(client, "test")
	t.Cleanup(func() { _ = backend.Close() })

	return mr, backend
}

func TestRedisBackend_RoundTrip(t *testing.T) {
	mr, backend := setupMiniRedis(t)
	ctx := context.Background()

	empty, err := backend.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	require.NoError(t, backend.Persist(ctx, fixtureSections))

	got, err := backend.Load(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff(fixtureSections, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	assert.True(t, mr.Exists("test:section:svc1"))
	assert.Equal(t, "Hosts", mr.HGet("test:section:svc1", "dashboard"))
}

func TestRedisBackend_PersistRemovesStaleSections(t *testing.T) {
	mr, backend := setupMiniRedis(t)
	ctx := context.Background()

	require.NoError(t, backend.Persist(ctx, Sections{"svc1": {"dashboard": "Hosts", "panelId": "1"}}))
	require.NoError(t, backend.Persist(ctx, Sections{"svc2": {"dashboard": "Net", "panelId": "2"}}))

	assert.False(t, mr.Exists("test:section:svc1"))

	members, err := mr.Members("test:sections")
	require.NoError(t, err)
	assert.Equal(t, []string{"svc2"}, members)
}

func TestRedisBackend_ViaOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	c, err := Open(ctx, config.StoreConfig{
		Backend:   config.StoreBackendRedis,
		RedisAddr: mr.Addr(),
	})
	require.NoError(t, err)
	defer c.Close()

	c.SetSection("svc1", Section{"dashboard": "Hosts", "panelId": "1"})
	require.NoError(t, c.Save(ctx))

	assert.True(t, mr.Exists(config.DefaultRedisPrefix+":section:svc1"))
}

func TestRedisBackend_ServerDown(t *testing.T) {
	mr := miniredis.NewMiniRedis()
	require.NoError(t, mr.Start())
	backend := NewRedisBackend(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "test")
	defer backend.Close()
	mr.Close()

	err := backend.Persist(context.Background(), fixtureSections)
	assert.Error(t, err)
}
