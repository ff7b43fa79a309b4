// Package history keeps the bounded, deduplicated log of built commands.
package history

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/doeshing/synora-ui/internal/domain"
	"github.com/doeshing/synora-ui/internal/ports"
)

// Key holds the JSON array of records inside the history namespace.
const Key = "commands"

// Store persists at most Capacity records, most recent first, unique by
// command text.
type Store struct {
	kv       ports.KeyValueStore
	log      ports.Logger
	capacity int
	now      func() time.Time
	mu       sync.Mutex
}

// Option customizes a Store.
type Option func(*Store)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithCapacity overrides the record limit.
func WithCapacity(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.capacity = n
		}
	}
}

// NewStore builds a Store over kv.
func NewStore(kv ports.KeyValueStore, log ports.Logger, opts ...Option) *Store {
	s := &Store{
		kv:       kv,
		log:      log,
		capacity: domain.HistoryCapacity,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Record moves cmd to the front, or prepends it. Blank commands are ignored.
func (s *Store) Record(cmd string) error {
	if strings.TrimSpace(cmd) == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.load()
	next := make([]domain.CommandRecord, 0, len(current)+1)
	next = append(next, domain.CommandRecord{Cmd: cmd, IssuedAt: s.now()})
	for _, rec := range current {
		if rec.Cmd == cmd {
			continue
		}
		next = append(next, rec)
	}
	if len(next) > s.capacity {
		next = next[:s.capacity]
	}

	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	if err := s.kv.Set(domain.NamespaceHistory, Key, data); err != nil {
		return fmt.Errorf("persist history: %w", err)
	}
	return nil
}

// List returns the records, most recent first.
func (s *Store) List() []domain.CommandRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Clear drops every record.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kv.Delete(domain.NamespaceHistory, Key)
}

// load never fails: a missing or corrupt blob reads as an empty history.
func (s *Store) load() []domain.CommandRecord {
	data, ok, err := s.kv.Get(domain.NamespaceHistory, Key)
	if err != nil {
		s.warn("history read failed", err)
		return []domain.CommandRecord{}
	}
	if !ok || len(data) == 0 {
		return []domain.CommandRecord{}
	}
	var records []domain.CommandRecord
	if err := json.Unmarshal(data, &records); err != nil {
		s.warn("history blob unreadable, starting empty", err)
		return []domain.CommandRecord{}
	}

	// tolerate blobs written by older builds: drop blanks and duplicates, cap
	seen := make(map[string]bool, len(records))
	clean := make([]domain.CommandRecord, 0, len(records))
	for _, rec := range records {
		if strings.TrimSpace(rec.Cmd) == "" || seen[rec.Cmd] {
			continue
		}
		seen[rec.Cmd] = true
		clean = append(clean, rec)
		if len(clean) == s.capacity {
			break
		}
	}
	return clean
}

func (s *Store) warn(msg string, err error) {
	if s.log != nil {
		s.log.Warn(msg, map[string]interface{}{"error": err.Error()})
	}
}

var _ ports.HistoryRepository = (*Store)(nil)
