package app

import (
	"context"
	"fmt"
	"os"
	"sync"

	"grafanagraphs/internal/config"
	"grafanagraphs/internal/grafana"
	"grafanagraphs/internal/graph"
	"grafanagraphs/internal/store"
	"grafanagraphs/pkg/logging"
)

// Application holds everything a command needs once bootstrap succeeded.
type Application struct {
	config    *Config
	appConfig config.AppConfig
	store     *store.Config
	form      *graph.Form
	renderer  *grafana.Renderer

	// mu serialises registry access between the HTTP API, the MCP endpoint
	// and the watcher.
	mu sync.Mutex
}

// NewApplication configures logging, loads configuration and opens the store.
func NewApplication(ctx context.Context, cfg *Config) (*Application, error) {
	level := logging.LevelInfo
	if cfg.Debug {
		level = logging.LevelDebug
	}
	out := cfg.LogOutput
	if out == nil {
		out = os.Stderr
	}
	logging.InitForCLI(level, out)

	configPath := cfg.ConfigPath
	if configPath == "" {
		p, err := config.GetDefaultConfigPath()
		if err != nil {
			return nil, fmt.Errorf("failed to determine configuration directory: %w", err)
		}
		configPath = p
	}

	appConfig, err := config.LoadConfig(configPath)
	if err != nil {
		logging.Error("Bootstrap", err, "Failed to load configuration from %s", configPath)
		return nil, err
	}

	renderer, err := grafana.NewRenderer(appConfig.Grafana)
	if err != nil {
		return nil, err
	}

	st, err := store.Open(ctx, appConfig.Store)
	if err != nil {
		logging.Error("Bootstrap", err, "Failed to open %s store", appConfig.Store.Backend)
		return nil, fmt.Errorf("failed to open graph store: %w", err)
	}

	logging.Debug("Bootstrap", "Using %s store (%s)", appConfig.Store.Backend, storeLocation(appConfig.Store))
	return &Application{
		config:    cfg,
		appConfig: appConfig,
		store:     st,
		form:      graph.NewForm(st, cfg.Source),
		renderer:  renderer,
	}, nil
}

// AppConfig returns the loaded configuration.
func (a *Application) AppConfig() config.AppConfig {
	return a.appConfig
}

// Store returns the opened graph store.
func (a *Application) Store() *store.Config {
	return a.store
}

// Form returns the submit workflow bound to the store.
func (a *Application) Form() *graph.Form {
	return a.form
}

// Renderer returns the panel URL renderer.
func (a *Application) Renderer() *grafana.Renderer {
	return a.renderer
}

// Close releases the store.
func (a *Application) Close() error {
	return a.store.Close()
}

func storeLocation(cfg config.StoreConfig) string {
	if cfg.Backend == config.StoreBackendRedis {
		return cfg.RedisAddr
	}
	return cfg.Path
}
