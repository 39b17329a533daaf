package store

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisBackend stores each section as a hash at <prefix>:section:<name> and
// tracks section names in the set <prefix>:sections.
type RedisBackend struct {
	client *redis.Client
	prefix string
}

// NewRedisBackend wraps an existing client. prefix namespaces all keys.
func NewRedisBackend(client *redis.Client, prefix string) *RedisBackend {
	return &RedisBackend{client: client, prefix: prefix}
}

// DialRedisBackend connects to addr and verifies the connection.
func DialRedisBackend(ctx context.Context, addr string, db int, prefix string) (*RedisBackend, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping %s failed: %w", addr, err)
	}
	return NewRedisBackend(client, prefix), nil
}

func (b *RedisBackend) Name() string { return "redis" }

func (b *RedisBackend) indexKey() string {
	return b.prefix + ":sections"
}

func (b *RedisBackend) sectionKey(name string) string {
	return b.prefix + ":section:" + name
}

// Load reads the index and every section hash.
func (b *RedisBackend) Load(ctx context.Context) (Sections, error) {
	names, err := b.client.SMembers(ctx, b.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("redis: read index: %w", err)
	}

	sections := make(Sections, len(names))
	for _, name := range names {
		values, err := b.client.HGetAll(ctx, b.sectionKey(name)).Result()
		if err != nil {
			return nil, fmt.Errorf("redis: read section %q: %w", name, err)
		}
		sections[name] = Section(values)
	}
	return sections, nil
}

// Persist replaces all stored sections inside a MULTI/EXEC transaction.
func (b *RedisBackend) Persist(ctx context.Context, sections Sections) error {
	existing, err := b.client.SMembers(ctx, b.indexKey()).Result()
	if err != nil {
		return fmt.Errorf("redis: read index: %w", err)
	}

	_, err = b.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, name := range existing {
			pipe.Del(ctx, b.sectionKey(name))
		}
		pipe.Del(ctx, b.indexKey())

		for _, name := range sections.Names() {
			pipe.SAdd(ctx, b.indexKey(), name)
			values := sections[name]
			if len(values) == 0 {
				continue
			}
			fields := make(map[string]interface{}, len(values))
			for k, v := range values {
				fields[k] = v
			}
			pipe.HSet(ctx, b.sectionKey(name), fields)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis: persist sections: %w", err)
	}
	return nil
}

// Close closes the client.
func (b *RedisBackend) Close() error {
	return b.client.Close()
}
