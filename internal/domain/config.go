package domain

// Config mirrors ~/.synora-ui/config.yaml.
type Config struct {
	ConfigFormatVersion string           `yaml:"config_format_version"`
	LogLevel            string           `yaml:"log_level"`
	Boundary            BoundarySettings `yaml:"boundary"`
	Storage             StorageSettings  `yaml:"storage"`
	CLI                 CLISettings      `yaml:"cli"`
	UI                  UISettings       `yaml:"ui"`
}

// BoundarySettings locates the HTTP service that fronts the synora CLI.
type BoundarySettings struct {
	BaseURL    string `yaml:"base_url"`
	SearchPath string `yaml:"search_path"`
	ActionPath string `yaml:"action_path"`
	Timeout    string `yaml:"timeout"`
}

// StorageSettings selects the key/value backend for persisted state.
type StorageSettings struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
}

// CLISettings describes the external tool whose invocations are displayed.
type CLISettings struct {
	Binary string `yaml:"binary"`
}

// UISettings captures presentation defaults.
type UISettings struct {
	Language     string   `yaml:"language"`
	QuickQueries []string `yaml:"quick_queries"`
}

// Storage backends.
const (
	StorageSQLite = "sqlite"
	StorageFile   = "file"
)
