// Package settings persists the display flags and the language preference.
package settings

import (
	"encoding/json"
	"fmt"

	"github.com/doeshing/synora-ui/internal/domain"
	"github.com/doeshing/synora-ui/internal/ports"
)

// Storage keys inside their namespaces.
const (
	FlagsKey    = "flags"
	LanguageKey = "current"
)

// Service reads and writes settings through a KeyValueStore.
type Service struct {
	KV              ports.KeyValueStore
	Logger          ports.Logger
	DefaultLanguage string
}

// Load returns the stored flags merged over the defaults. Unknown names and
// unreadable blobs are ignored.
func (s *Service) Load() domain.Settings {
	out := domain.DefaultSettings()
	data, ok, err := s.KV.Get(domain.NamespaceSettings, FlagsKey)
	if err != nil {
		s.warn("settings read failed", err)
		return out
	}
	if !ok {
		return out
	}
	var stored map[string]bool
	if err := json.Unmarshal(data, &stored); err != nil {
		s.warn("settings blob unreadable, using defaults", err)
		return out
	}
	for name, v := range stored {
		if domain.IsKnownFlag(name) {
			out.Flags[name] = v
		}
	}
	return out
}

// SetFlag stores a single flag.
func (s *Service) SetFlag(name string, value bool) (domain.Settings, error) {
	if !domain.IsKnownFlag(name) {
		return domain.Settings{}, domain.NewError(domain.ErrKindValidation, fmt.Sprintf("unknown setting %q", name), nil)
	}
	current := s.Load()
	current.Flags[name] = value
	data, err := json.Marshal(current.Flags)
	if err != nil {
		return domain.Settings{}, err
	}
	if err := s.KV.Set(domain.NamespaceSettings, FlagsKey, data); err != nil {
		return domain.Settings{}, fmt.Errorf("persist settings: %w", err)
	}
	return current, nil
}

// Language returns the persisted language, then the configured default.
func (s *Service) Language() string {
	data, ok, err := s.KV.Get(domain.NamespaceLanguage, LanguageKey)
	if err != nil {
		s.warn("language read failed", err)
	}
	if err == nil && ok {
		return domain.NormalizeLanguage(string(data))
	}
	return domain.NormalizeLanguage(s.DefaultLanguage)
}

// SetLanguage stores "en" for "en" and "zh" for anything else.
func (s *Service) SetLanguage(lang string) (string, error) {
	lang = domain.NormalizeLanguage(lang)
	if err := s.KV.Set(domain.NamespaceLanguage, LanguageKey, []byte(lang)); err != nil {
		return "", fmt.Errorf("persist language: %w", err)
	}
	return lang, nil
}

func (s *Service) warn(msg string, err error) {
	if s.Logger != nil {
		s.Logger.Warn(msg, map[string]interface{}{"error": err.Error()})
	}
}
