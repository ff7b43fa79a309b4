package assets

import (
	"embed"
)

// DefaultConfigYAML contains the embedded default configuration.
//
//go:embed defaults/config.yaml
var DefaultConfigYAML []byte

// Locales holds one YAML string table per language.
//
//go:embed locales/*.yaml
var Locales embed.FS
