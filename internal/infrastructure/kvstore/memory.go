// Package kvstore implements ports.KeyValueStore on SQLite, JSON files and
// process memory.
package kvstore

import (
	"sort"
	"sync"

	"github.com/doeshing/synora-ui/internal/ports"
)

// MemoryStore keeps values in a map. It backs tests and --ephemeral runs.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string]map[string][]byte
}

// NewMemory returns an empty MemoryStore.
func NewMemory() *MemoryStore {
	return &MemoryStore{data: map[string]map[string][]byte{}}
}

func (m *MemoryStore) Get(namespace, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[namespace][key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (m *MemoryStore) Set(namespace, key string, value []byte) error {
	if err := validateNamespace(namespace); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	ns, ok := m.data[namespace]
	if !ok {
		ns = map[string][]byte{}
		m.data[namespace] = ns
	}
	ns[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryStore) Delete(namespace, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data[namespace], key)
	return nil
}

func (m *MemoryStore) Keys(namespace string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.data[namespace]))
	for k := range m.data[namespace] {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

var _ ports.KeyValueStore = (*MemoryStore)(nil)
