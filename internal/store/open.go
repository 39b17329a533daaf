package store

import (
	"context"
	"fmt"

	"grafanagraphs/internal/config"
)

// OpenBackend constructs the backend selected by cfg.
func OpenBackend(ctx context.Context, cfg config.StoreConfig) (Backend, error) {
	switch cfg.Backend {
	case config.StoreBackendINI, "":
		return NewINIBackend(cfg.Path), nil
	case config.StoreBackendYAML:
		return NewYAMLBackend(cfg.Path), nil
	case config.StoreBackendSQLite:
		backend, err := OpenSQLiteBackend(ctx, cfg.Path)
		if err != nil {
			return nil, err
		}
		return backend, nil
	case config.StoreBackendRedis:
		prefix := cfg.RedisPrefix
		if prefix == "" {
			prefix = config.DefaultRedisPrefix
		}
		backend, err := DialRedisBackend(ctx, cfg.RedisAddr, cfg.RedisDB, prefix)
		if err != nil {
			return nil, err
		}
		return backend, nil
	default:
		return nil, fmt.Errorf("unsupported store backend %q", cfg.Backend)
	}
}

// Open constructs the configured backend and loads it into a Config.
func Open(ctx context.Context, cfg config.StoreConfig) (*Config, error) {
	backend, err := OpenBackend(ctx, cfg)
	if err != nil {
		return nil, err
	}

	c, err := New(ctx, backend)
	if err != nil {
		_ = backend.Close()
		return nil, err
	}
	return c, nil
}
