package domain

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// GetBoundaryTimeout returns the HTTP timeout for boundary calls.
// Falls back to the default when unset or unparsable.
func (c *Config) GetBoundaryTimeout() time.Duration {
	if c.Boundary.Timeout == "" {
		return DefaultBoundaryTimeout
	}
	d, err := time.ParseDuration(c.Boundary.Timeout)
	if err != nil || d <= 0 {
		return DefaultBoundaryTimeout
	}
	return d
}

// GetBaseURL returns the boundary base URL without a trailing slash.
func (c *Config) GetBaseURL() string {
	if c.Boundary.BaseURL == "" {
		return DefaultBaseURL
	}
	return strings.TrimRight(c.Boundary.BaseURL, "/")
}

// GetSearchPath returns the search endpoint path.
func (c *Config) GetSearchPath() string {
	if c.Boundary.SearchPath == "" {
		return DefaultSearchPath
	}
	return c.Boundary.SearchPath
}

// GetActionPath returns the action-run endpoint path.
func (c *Config) GetActionPath() string {
	if c.Boundary.ActionPath == "" {
		return DefaultActionPath
	}
	return c.Boundary.ActionPath
}

// GetStorageBackend returns the configured key/value backend.
func (c *Config) GetStorageBackend() string {
	if c.Storage.Backend == "" {
		return StorageSQLite
	}
	return strings.ToLower(c.Storage.Backend)
}

// GetBinary returns the name of the external CLI used in built commands.
func (c *Config) GetBinary() string {
	if strings.TrimSpace(c.CLI.Binary) == "" {
		return DefaultBinary
	}
	return c.CLI.Binary
}

// GetDefaultLanguage returns the language used when none has been persisted.
func (c *Config) GetDefaultLanguage() string {
	return NormalizeLanguage(c.UI.Language)
}

// GetQuickQueries returns the configured quick queries, or the defaults.
func (c *Config) GetQuickQueries() []string {
	if len(c.UI.QuickQueries) == 0 {
		return append([]string(nil), DefaultQuickQueries...)
	}
	return c.UI.QuickQueries
}

// GetLogLevel returns the configured log level.
func (c *Config) GetLogLevel() string {
	if c.LogLevel == "" {
		return DefaultLogLevel
	}
	return strings.ToLower(c.LogLevel)
}

// ValidateConsistency checks the internal consistency of the configuration.
func (c *Config) ValidateConsistency() error {
	u, err := url.Parse(c.GetBaseURL())
	if err != nil {
		return fmt.Errorf("boundary.base_url invalid: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("boundary.base_url must be http or https, got %q", c.GetBaseURL())
	}
	if u.Host == "" {
		return fmt.Errorf("boundary.base_url has no host: %q", c.GetBaseURL())
	}
	if !strings.HasPrefix(c.GetSearchPath(), "/") || !strings.HasPrefix(c.GetActionPath(), "/") {
		return fmt.Errorf("boundary paths must start with /")
	}
	return nil
}
