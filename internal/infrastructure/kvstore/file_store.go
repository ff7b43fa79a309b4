package kvstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/doeshing/synora-ui/internal/domain"
	"github.com/doeshing/synora-ui/internal/ports"
)

// FileStore keeps one JSON object per namespace under dir.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore roots a FileStore at dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (f *FileStore) Get(namespace, key string) ([]byte, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	values, err := f.read(namespace)
	if err != nil {
		return nil, false, err
	}
	v, ok := values[key]
	if !ok {
		return nil, false, nil
	}
	return []byte(v), true, nil
}

func (f *FileStore) Set(namespace, key string, value []byte) error {
	if err := validateNamespace(namespace); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	values, err := f.read(namespace)
	if err != nil {
		// an unreadable namespace file is replaced rather than blocking writes
		values = map[string]string{}
	}
	values[key] = string(value)
	return f.write(namespace, values)
}

func (f *FileStore) Delete(namespace, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	values, err := f.read(namespace)
	if err != nil {
		return err
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	return f.write(namespace, values)
}

func (f *FileStore) Keys(namespace string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	values, err := f.read(namespace)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// Dir exposes the storage directory path.
func (f *FileStore) Dir() string {
	return f.dir
}

func (f *FileStore) pathFor(namespace string) string {
	return filepath.Join(f.dir, namespace+".json")
}

func (f *FileStore) read(namespace string) (map[string]string, error) {
	if err := validateNamespace(namespace); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.pathFor(namespace))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, err
	}
	values := map[string]string{}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("decode %s: %w", f.pathFor(namespace), err)
	}
	return values, nil
}

// write replaces the namespace file atomically.
func (f *FileStore) write(namespace string, values map[string]string) error {
	if err := os.MkdirAll(f.dir, domain.DirectoryPermissions); err != nil {
		return err
	}
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(f.dir, namespace+".*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), f.pathFor(namespace))
}

var _ ports.KeyValueStore = (*FileStore)(nil)
