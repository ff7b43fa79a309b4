package config

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/synora-ui/assets"
	"github.com/doeshing/synora-ui/internal/domain"
	"github.com/doeshing/synora-ui/internal/pkg/filesystem"
	"github.com/doeshing/synora-ui/internal/ports"
)

// EnvConfigPath overrides the config file location.
const EnvConfigPath = "SYNORA_UI_CONFIG"

// FileLoader loads YAML configuration from ~/.synora-ui/config.yaml (overridable via SYNORA_UI_CONFIG).
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.Path()
	if err := ensureConfigDir(path); err != nil {
		return domain.Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if err := os.WriteFile(path, assets.DefaultConfigYAML, domain.SecureFilePermissions); err != nil {
				return domain.Config{}, err
			}
			return DefaultConfig()
		}
		return domain.Config{}, err
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, err
	}

	return hydrateDefaults(cfg), nil
}

// Path returns the file Load reads.
func (l *FileLoader) Path() string {
	if l.overridePath != "" {
		return filesystem.ExpandPath(l.overridePath)
	}
	if custom := os.Getenv(EnvConfigPath); custom != "" {
		return filesystem.ExpandPath(custom)
	}
	return filepath.Join(filesystem.AppDir(), "config.yaml")
}

// Save writes cfg to Path.
func (l *FileLoader) Save(cfg domain.Config) error {
	path := l.Path()
	if err := ensureConfigDir(path); err != nil {
		return err
	}
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, domain.SecureFilePermissions)
}

// Reset overwrites the file with the embedded defaults.
func (l *FileLoader) Reset() (domain.Config, error) {
	path := l.Path()
	if err := ensureConfigDir(path); err != nil {
		return domain.Config{}, err
	}
	if err := os.WriteFile(path, assets.DefaultConfigYAML, domain.SecureFilePermissions); err != nil {
		return domain.Config{}, err
	}
	return DefaultConfig()
}

// DefaultConfig decodes the embedded default file.
func DefaultConfig() (domain.Config, error) {
	var cfg domain.Config
	if err := yaml.Unmarshal(assets.DefaultConfigYAML, &cfg); err != nil {
		return domain.Config{}, err
	}
	return hydrateDefaults(cfg), nil
}

func ensureConfigDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, domain.DirectoryPermissions)
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	if cfg.ConfigFormatVersion == "" {
		cfg.ConfigFormatVersion = "1"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = domain.DefaultLogLevel
	}
	if cfg.Boundary.BaseURL == "" {
		cfg.Boundary.BaseURL = domain.DefaultBaseURL
	}
	if cfg.Boundary.SearchPath == "" {
		cfg.Boundary.SearchPath = domain.DefaultSearchPath
	}
	if cfg.Boundary.ActionPath == "" {
		cfg.Boundary.ActionPath = domain.DefaultActionPath
	}
	if cfg.Boundary.Timeout == "" {
		cfg.Boundary.Timeout = domain.DefaultBoundaryTimeout.String()
	}
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = domain.StorageSQLite
	}
	if cfg.Storage.Path == "" {
		cfg.Storage.Path = filepath.Join(filesystem.AppDir(), "state")
	}
	if cfg.CLI.Binary == "" {
		cfg.CLI.Binary = domain.DefaultBinary
	}
	if cfg.UI.Language == "" {
		cfg.UI.Language = domain.DefaultLanguage
	}
	if len(cfg.UI.QuickQueries) == 0 {
		cfg.UI.QuickQueries = append([]string(nil), domain.DefaultQuickQueries...)
	}
	return cfg
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
