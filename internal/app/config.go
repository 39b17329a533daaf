package app

import (
	"io"
)

// Config holds the runtime options of one invocation.
type Config struct {
	// Debug enables debug logging.
	Debug bool

	// ConfigPath is the configuration directory. Empty selects the default.
	ConfigPath string

	// Source labels audit entries and metrics ("cli", "http", "mcp").
	Source string

	// LogOutput receives log lines. Defaults to stderr so stdout stays free
	// for command output and the MCP stdio transport.
	LogOutput io.Writer
}

// NewConfig creates a new application configuration.
func NewConfig(debug bool, configPath, source string) *Config {
	return &Config{
		Debug:      debug,
		ConfigPath: configPath,
		Source:     source,
	}
}
