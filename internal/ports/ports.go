// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// This package establishes the contract between the console core and external
// adapters (infrastructure). The application packages depend only on these
// abstractions, so storage, the HTTP boundary, the terminal prompt and the
// locale tables can be swapped for in-memory fakes in tests.
//
// Key architectural concepts:
//   - Ports: Interfaces defined here (e.g., KeyValueStore, SearchBoundary)
//   - Adapters: Concrete implementations in the infrastructure layer
//   - Dependency inversion: Application depends on abstractions, not implementations
package ports

import (
	"context"

	"github.com/doeshing/synora-ui/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.synora-ui/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// KeyValueStore is the single durable storage capability. Values are opaque
// blobs; namespaces keep history, settings and language apart.
type KeyValueStore interface {
	// Get returns the value and whether it exists.
	Get(namespace, key string) ([]byte, bool, error)
	Set(namespace, key string, value []byte) error
	Delete(namespace, key string) error
	// Keys lists the keys stored under a namespace.
	Keys(namespace string) ([]string, error)
}

// LocaleProvider supplies every user-facing string.
type LocaleProvider interface {
	Language() string
	// Resolve looks up a dotted key such as "prompts.resultEmpty".
	Resolve(key string) string
	// Format resolves key and substitutes {name} placeholders.
	Format(key string, vars map[string]any) string
}

// RawResponse is an HTTP response body read as text before any parsing.
type RawResponse struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// OK reports a 2xx status.
func (r RawResponse) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// SearchBoundary sends a free-text query to the search endpoint.
type SearchBoundary interface {
	Search(ctx context.Context, query string) (RawResponse, error)
}

// ActionBoundary sends an action-run request.
type ActionBoundary interface {
	RunAction(ctx context.Context, body domain.ActionRunBody) (RawResponse, error)
}

// HistoryRepository is the bounded command log.
type HistoryRepository interface {
	Record(cmd string) error
	List() []domain.CommandRecord
	Clear() error
}

// ConfirmationPrompter handles the synchronous yes/no gate for high-risk actions.
type ConfirmationPrompter interface {
	Confirm(risk string, command string, message string) (bool, error)
	Enabled() bool
}

// Clipboard provides cross-platform clipboard integration for copying commands.
type Clipboard interface {
	Copy(text string) error
	Enabled() bool
}

// Logger provides structured logging abstraction for the application layer.
// Implementations can route to different backends (stdout, files, external services).
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
