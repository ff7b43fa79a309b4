package kvstore

import (
	"fmt"
	"path/filepath"

	"github.com/doeshing/synora-ui/internal/domain"
	"github.com/doeshing/synora-ui/internal/pkg/filesystem"
	"github.com/doeshing/synora-ui/internal/ports"
)

// Open builds the store selected by cfg. A SQLite database that cannot be
// opened falls back to JSON files in the same directory.
func Open(cfg domain.Config, log ports.Logger) (ports.KeyValueStore, error) {
	base := filesystem.ExpandPath(cfg.Storage.Path)
	if base == "" {
		base = filepath.Join(filesystem.AppDir(), "state")
	}

	switch cfg.GetStorageBackend() {
	case domain.StorageFile:
		return NewFileStore(base), nil
	case domain.StorageSQLite:
		store, err := OpenSQLite(filepath.Join(base, "state.db"))
		if err == nil {
			return store, nil
		}
		if log != nil {
			log.Warn("sqlite unavailable, using file storage", map[string]interface{}{"error": err.Error()})
		}
		return NewFileStore(base), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
