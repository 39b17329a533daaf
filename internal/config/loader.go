package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"grafanagraphs/pkg/logging"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	userConfigDir  = ".config/grafanagraphs"
	configFileName = "config.yaml"
	envFileName    = ".env"

	// EnvPrefix prefixes every environment variable read by LoadConfig.
	EnvPrefix = "GRAFANAGRAPHS_"
)

// Environment variables overriding file configuration.
const (
	EnvStoreBackend = EnvPrefix + "STORE_BACKEND"
	EnvStorePath    = EnvPrefix + "STORE_PATH"
	EnvRedisAddr    = EnvPrefix + "REDIS_ADDR"
	EnvGrafanaURL   = EnvPrefix + "GRAFANA_URL"
	EnvListen       = EnvPrefix + "LISTEN"
)

// osUserHomeDir is replaced in tests.
var osUserHomeDir = os.UserHomeDir

// GetDefaultConfigPath returns ~/.config/grafanagraphs.
func GetDefaultConfigPath() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine user config directory: %w", err)
	}
	return filepath.Join(homeDir, userConfigDir), nil
}

// LoadConfig loads configuration from a single directory. An empty configPath
// selects the default directory. A missing config.yaml is not an error.
func LoadConfig(configPath string) (AppConfig, error) {
	if configPath == "" {
		defaultPath, err := GetDefaultConfigPath()
		if err != nil {
			return AppConfig{}, NewConfigurationError("", ErrorTypeIO, err.Error(), err)
		}
		configPath = defaultPath
	}

	cfg := GetDefaultConfig()

	configFilePath := filepath.Join(configPath, configFileName)
	data, err := os.ReadFile(configFilePath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		logging.Debug("ConfigLoader", "No config.yaml found at %s, using defaults", configFilePath)
	case err != nil:
		return AppConfig{}, NewConfigurationError(configFilePath, ErrorTypeIO, "failed to read configuration file", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			cerr := NewConfigurationError(configFilePath, ErrorTypeParse, "malformed YAML", err)
			cerr.Details = err.Error()
			cerr.Suggestions = []string{"Check indentation and quoting in config.yaml"}
			return AppConfig{}, cerr
		}
		logging.Info("ConfigLoader", "Loaded configuration from %s", configFilePath)
	}

	dotenv, err := readEnvFile(filepath.Join(configPath, envFileName))
	if err != nil {
		return AppConfig{}, err
	}
	applyEnv(&cfg, func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	})

	if cfg.Store.Backend.IsFileBased() && cfg.Store.Path != "" && !filepath.IsAbs(cfg.Store.Path) {
		cfg.Store.Path = filepath.Join(configPath, cfg.Store.Path)
	}

	if err := Validate(cfg); err != nil {
		cerr := NewConfigurationError(configFilePath, ErrorTypeValidation, "invalid configuration", err)
		cerr.Details = err.Error()
		cerr.Suggestions = []string{
			"Supported store backends are ini, yaml, sqlite and redis",
			"Environment variables prefixed with " + EnvPrefix + " override config.yaml",
		}
		return AppConfig{}, cerr
	}

	return cfg, nil
}

func readEnvFile(path string) (map[string]string, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, NewConfigurationError(path, ErrorTypeParse, "failed to read env file", err)
	}
	logging.Debug("ConfigLoader", "Loaded %d values from %s", len(values), path)
	return values, nil
}

func applyEnv(cfg *AppConfig, lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvStoreBackend); ok && v != "" {
		cfg.Store.Backend = StoreBackend(v)
	}
	if v, ok := lookup(EnvStorePath); ok && v != "" {
		cfg.Store.Path = v
	}
	if v, ok := lookup(EnvRedisAddr); ok && v != "" {
		cfg.Store.RedisAddr = v
	}
	if v, ok := lookup(EnvGrafanaURL); ok && v != "" {
		cfg.Grafana.BaseURL = v
	}
	if v, ok := lookup(EnvListen); ok && v != "" {
		cfg.Server.Listen = v
	}
}
