package config

const (
	// DefaultStorePath is the graph store file name, relative to the config directory.
	DefaultStorePath = "graphs.ini"

	// DefaultRedisPrefix namespaces all keys written by the redis backend.
	DefaultRedisPrefix = "grafanagraphs"

	// DefaultListen is the default HTTP listen address for "serve".
	DefaultListen = "127.0.0.1:8091"

	// DefaultURLTemplate renders a single Grafana panel for a host/service.
	DefaultURLTemplate = `{{ .BaseURL | trimSuffix "/" }}/d-solo/{{ .Dashboard | urlquery }}?panelId={{ .PanelID | urlquery }}&var-hostname={{ .Host | urlquery }}&var-service={{ .Service | urlquery }}&from={{ .From | urlquery }}&to={{ .To | urlquery }}`
)

// GetDefaultConfig returns the built-in configuration.
func GetDefaultConfig() AppConfig {
	return AppConfig{
		Store: StoreConfig{
			Backend:     StoreBackendINI,
			Path:        DefaultStorePath,
			RedisPrefix: DefaultRedisPrefix,
		},
		Grafana: GrafanaConfig{
			URLTemplate: DefaultURLTemplate,
			DefaultFrom: "now-6h",
			DefaultTo:   "now",
		},
		Server: ServerConfig{
			Listen:    DefaultListen,
			RateLimit: 600,
		},
	}
}
