package domain

import "time"

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// SecureFilePermissions is the permission for sensitive files (rw-------)
	SecureFilePermissions = 0o600
)

// Boundary defaults, matching scripts/ui_dev_server.py.
const (
	DefaultBaseURL         = "http://127.0.0.1:8787"
	DefaultSearchPath      = "/api/search"
	DefaultActionPath      = "/api/action-run"
	DefaultBoundaryTimeout = 60 * time.Second
)

// Misc defaults
const (
	DefaultBinary   = "synora"
	DefaultLogLevel = "info"
	// DefaultLanguage is used when neither storage nor config names one.
	DefaultLanguage = LangZH
)

// DefaultQuickQueries seeds the quick query buttons.
var DefaultQuickQueries = []string{"PowerToys", "Git", "VSCode", "7zip"}

// Storage namespaces. Each persisted concern lives in its own namespace.
const (
	NamespaceHistory  = "history"
	NamespaceSettings = "settings"
	NamespaceLanguage = "lang"
	NamespaceSession  = "session"
)

// Time formats
const (
	// TimestampFormat is the standard timestamp format
	TimestampFormat = time.RFC3339
)
