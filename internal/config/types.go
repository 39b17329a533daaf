package config

// AppConfig is the top-level configuration structure for grafanagraphs.
type AppConfig struct {
	Store   StoreConfig   `yaml:"store"`
	Grafana GrafanaConfig `yaml:"grafana"`
	Server  ServerConfig  `yaml:"server"`
}

// StoreBackend names a section store implementation.
type StoreBackend string

const (
	StoreBackendINI    StoreBackend = "ini"
	StoreBackendYAML   StoreBackend = "yaml"
	StoreBackendSQLite StoreBackend = "sqlite"
	StoreBackendRedis  StoreBackend = "redis"
)

// ValidStoreBackends lists every supported backend.
var ValidStoreBackends = []StoreBackend{
	StoreBackendINI,
	StoreBackendYAML,
	StoreBackendSQLite,
	StoreBackendRedis,
}

// IsFileBased reports whether the backend keeps its data in a local file.
func (b StoreBackend) IsFileBased() bool {
	return b == StoreBackendINI || b == StoreBackendYAML || b == StoreBackendSQLite
}

// StoreConfig selects and configures the graph section store.
type StoreConfig struct {
	Backend     StoreBackend `yaml:"backend,omitempty"`     // ini, yaml, sqlite or redis (default: ini)
	Path        string       `yaml:"path,omitempty"`        // File path for file-based backends
	RedisAddr   string       `yaml:"redisAddr,omitempty"`   // host:port for the redis backend
	RedisDB     int          `yaml:"redisDB,omitempty"`     // Redis logical database
	RedisPrefix string       `yaml:"redisPrefix,omitempty"` // Key prefix for the redis backend
}

// GrafanaConfig controls how panel URLs are rendered.
type GrafanaConfig struct {
	BaseURL     string `yaml:"baseURL,omitempty"`
	URLTemplate string `yaml:"urlTemplate,omitempty"` // text/template with sprig functions
	DefaultFrom string `yaml:"defaultFrom,omitempty"`
	DefaultTo   string `yaml:"defaultTo,omitempty"`
}

// ServerConfig configures the HTTP API started by "serve".
type ServerConfig struct {
	Listen    string `yaml:"listen,omitempty"`
	RateLimit int    `yaml:"rateLimit,omitempty"` // Requests per minute per client IP, 0 disables
}
