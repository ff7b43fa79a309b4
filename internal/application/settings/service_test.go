package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/synora-ui/internal/domain"
	"github.com/doeshing/synora-ui/internal/infrastructure/kvstore"
	"github.com/doeshing/synora-ui/internal/pkg/logger"
)

func newService(defaultLang string) (*Service, *kvstore.MemoryStore) {
	kv := kvstore.NewMemory()
	return &Service{KV: kv, Logger: logger.NewNop(), DefaultLanguage: defaultLang}, kv
}

func TestLoadDefaults(t *testing.T) {
	s, _ := newService("")
	got := s.Load()
	assert.Len(t, got.Flags, len(domain.KnownFlags))
	for _, f := range domain.KnownFlags {
		assert.False(t, got.Flags[f])
	}
}

func TestSetFlagPersists(t *testing.T) {
	s, _ := newService("")
	_, err := s.SetFlag(domain.FlagAIAssist, true)
	require.NoError(t, err)

	got := s.Load()
	assert.True(t, got.Flags[domain.FlagAIAssist])
	assert.False(t, got.Flags[domain.FlagAutoUpdateCheck])
}

func TestSetFlagUnknown(t *testing.T) {
	s, _ := newService("")
	_, err := s.SetFlag("self_destruct", true)
	assert.True(t, domain.IsKind(err, domain.ErrKindValidation))
}

func TestLoadIgnoresCorruptAndUnknown(t *testing.T) {
	s, kv := newService("")
	require.NoError(t, kv.Set(domain.NamespaceSettings, FlagsKey, []byte("nope")))
	assert.Equal(t, domain.DefaultSettings(), s.Load())

	require.NoError(t, kv.Set(domain.NamespaceSettings, FlagsKey, []byte(`{"ai_assist":true,"bogus":true}`)))
	got := s.Load()
	assert.True(t, got.Flags[domain.FlagAIAssist])
	_, present := got.Flags["bogus"]
	assert.False(t, present)
}

func TestLanguage(t *testing.T) {
	s, _ := newService("")
	assert.Equal(t, domain.LangZH, s.Language())

	s.DefaultLanguage = "en"
	assert.Equal(t, domain.LangEN, s.Language())

	for input, want := range map[string]string{"en": "en", "zh": "zh", "fr": "zh", "": "zh", "EN": "zh"} {
		got, err := s.SetLanguage(input)
		require.NoError(t, err)
		assert.Equal(t, want, got, input)
		assert.Equal(t, want, s.Language())
	}
}
