package filesystem

import (
	"path/filepath"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
)

// UserHomeDir returns the current user's home directory.
// If the home directory cannot be determined, it returns "." as a fallback.
func UserHomeDir() string {
	if home, err := homedir.Dir(); err == nil {
		return home
	}
	return "."
}

// AppDir is the root of all synora-ui state (~/.synora-ui).
func AppDir() string {
	return filepath.Join(UserHomeDir(), ".synora-ui")
}

// ExpandPath resolves "~/" prefixes; relative paths are cleaned.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "~") {
		if expanded, err := homedir.Expand(path); err == nil {
			return expanded
		}
	}
	return filepath.Clean(path)
}
