package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/doeshing/synora-ui/internal/domain"
)

var logLevels = map[string]bool{"debug": true, "info": true, "warn": true, "warning": true, "error": true}

// Validate ensures config structure is consistent.
func Validate(cfg domain.Config) error {
	if err := validateBoundary(cfg); err != nil {
		return err
	}
	if err := validateStorage(cfg.Storage); err != nil {
		return err
	}
	if !logLevels[cfg.GetLogLevel()] {
		return fmt.Errorf("log_level must be debug|info|warn|error, got %s", cfg.LogLevel)
	}
	if lang := strings.TrimSpace(cfg.UI.Language); lang != "" && lang != domain.LangZH && lang != domain.LangEN {
		return fmt.Errorf("ui.language must be zh|en, got %s", cfg.UI.Language)
	}
	for i, q := range cfg.UI.QuickQueries {
		if strings.TrimSpace(q) == "" {
			return fmt.Errorf("ui.quick_queries[%d] is blank", i)
		}
	}
	return nil
}

func validateBoundary(cfg domain.Config) error {
	if err := cfg.ValidateConsistency(); err != nil {
		return err
	}
	if cfg.Boundary.Timeout == "" {
		return nil
	}
	d, err := time.ParseDuration(cfg.Boundary.Timeout)
	if err != nil {
		return fmt.Errorf("boundary.timeout invalid: %w", err)
	}
	if d <= 0 {
		return fmt.Errorf("boundary.timeout must be > 0")
	}
	return nil
}

func validateStorage(storage domain.StorageSettings) error {
	switch strings.ToLower(storage.Backend) {
	case "", domain.StorageSQLite, domain.StorageFile:
		return nil
	default:
		return fmt.Errorf("storage.backend must be sqlite|file, got %s", storage.Backend)
	}
}
