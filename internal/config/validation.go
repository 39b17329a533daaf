package config

import (
	"fmt"
	"net"
	"net/url"
	"slices"
	"strings"
)

// ValidationError represents a validation error with context
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (ve ValidationError) Error() string {
	if ve.Field == "" {
		return ve.Message
	}
	return fmt.Sprintf("field '%s': %s", ve.Field, ve.Message)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for multiple validation errors
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}
	if len(ve) == 1 {
		return ve[0].Error()
	}

	var messages []string
	for _, err := range ve {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(messages, "; "))
}

// HasErrors returns true if there are any validation errors
func (ve ValidationErrors) HasErrors() bool {
	return len(ve) > 0
}

// Add adds a new validation error
func (ve *ValidationErrors) Add(field, message string, value ...interface{}) {
	var val interface{}
	if len(value) > 0 {
		val = value[0]
	}
	*ve = append(*ve, ValidationError{
		Field:   field,
		Value:   val,
		Message: message,
	})
}

// Validate checks an AppConfig for unusable values.
func Validate(cfg AppConfig) error {
	var errs ValidationErrors

	if !slices.Contains(ValidStoreBackends, cfg.Store.Backend) {
		errs.Add("store.backend", fmt.Sprintf("unsupported backend %q (valid: ini, yaml, sqlite, redis)", cfg.Store.Backend), cfg.Store.Backend)
	}
	if cfg.Store.Backend.IsFileBased() && strings.TrimSpace(cfg.Store.Path) == "" {
		errs.Add("store.path", fmt.Sprintf("is required for the %s backend", cfg.Store.Backend))
	}
	if cfg.Store.Backend == StoreBackendRedis {
		if strings.TrimSpace(cfg.Store.RedisAddr) == "" {
			errs.Add("store.redisAddr", "is required for the redis backend")
		} else if _, _, err := net.SplitHostPort(cfg.Store.RedisAddr); err != nil {
			errs.Add("store.redisAddr", fmt.Sprintf("must be host:port: %v", err), cfg.Store.RedisAddr)
		}
		if cfg.Store.RedisDB < 0 {
			errs.Add("store.redisDB", "must not be negative", cfg.Store.RedisDB)
		}
	}

	if cfg.Grafana.BaseURL != "" {
		u, err := url.Parse(cfg.Grafana.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			errs.Add("grafana.baseURL", "must be an absolute URL", cfg.Grafana.BaseURL)
		}
	}

	if cfg.Server.Listen != "" {
		if _, _, err := net.SplitHostPort(cfg.Server.Listen); err != nil {
			errs.Add("server.listen", fmt.Sprintf("must be host:port: %v", err), cfg.Server.Listen)
		}
	}
	if cfg.Server.RateLimit < 0 {
		errs.Add("server.rateLimit", "must not be negative", cfg.Server.RateLimit)
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}
