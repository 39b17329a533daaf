// Package config provides configuration management for grafanagraphs.
//
// Configuration is loaded from a single directory. The default directory is
// ~/.config/grafanagraphs; commands accept --config-path to use another one.
//
// # Configuration Directory
//
// The directory may contain:
//   - config.yaml (main configuration file)
//   - .env (optional KEY=VALUE overrides, loaded before the environment is read)
//   - graphs.ini (default location of the graph store)
//
// # Precedence
//
// Values are resolved in this order, later sources winning:
//
//  1. Built-in defaults (see GetDefaultConfig)
//  2. config.yaml
//  3. .env in the configuration directory
//  4. GRAFANAGRAPHS_* environment variables
//
// Relative store paths are resolved against the configuration directory.
//
// # Example config.yaml
//
//	store:
//	  backend: ini
//	  path: graphs.ini
//	grafana:
//	  baseURL: https://grafana.example.com
//	  defaultFrom: now-24h
//	server:
//	  listen: 127.0.0.1:8091
//
// # Errors
//
// Load failures are reported as ConfigurationError values carrying the file,
// an error type (io, parse, validation) and suggestions for fixing the file.
package config
