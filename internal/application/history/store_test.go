package history

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/synora-ui/internal/domain"
	"github.com/doeshing/synora-ui/internal/infrastructure/kvstore"
	"github.com/doeshing/synora-ui/internal/pkg/logger"
)

type tickingClock struct {
	t time.Time
}

func (c *tickingClock) Now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

func newTestStore(t *testing.T) (*Store, *kvstore.MemoryStore, *tickingClock) {
	t.Helper()
	kv := kvstore.NewMemory()
	clock := &tickingClock{t: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
	return NewStore(kv, logger.NewNop(), WithClock(clock.Now)), kv, clock
}

func TestRecordPrependsMostRecentFirst(t *testing.T) {
	s, _, _ := newTestStore(t)
	require.NoError(t, s.Record("a"))
	require.NoError(t, s.Record("b"))

	got := s.List()
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].Cmd)
	assert.Equal(t, "a", got[1].Cmd)
	assert.True(t, got[0].IssuedAt.After(got[1].IssuedAt))
}

func TestRecordCapsAtTwelve(t *testing.T) {
	s, _, _ := newTestStore(t)
	for i := 0; i < 20; i++ {
		require.NoError(t, s.Record(fmt.Sprintf("cmd-%d", i)))
	}

	got := s.List()
	require.Len(t, got, domain.HistoryCapacity)
	assert.Equal(t, "cmd-19", got[0].Cmd)
	assert.Equal(t, "cmd-8", got[len(got)-1].Cmd)
}

func TestRecordDeduplicatesAndRefreshes(t *testing.T) {
	s, _, _ := newTestStore(t)
	require.NoError(t, s.Record("x"))
	require.NoError(t, s.Record("y"))
	first := s.List()[1].IssuedAt

	require.NoError(t, s.Record("x"))
	got := s.List()
	require.Len(t, got, 2)
	assert.Equal(t, "x", got[0].Cmd)
	assert.Equal(t, "y", got[1].Cmd)
	assert.True(t, got[0].IssuedAt.After(first))
}

func TestRecordBlankIsNoop(t *testing.T) {
	s, kv, _ := newTestStore(t)
	require.NoError(t, s.Record(""))
	require.NoError(t, s.Record("   "))

	assert.Empty(t, s.List())
	_, ok, err := kv.Get(domain.NamespaceHistory, Key)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestListCorruptBlobReadsEmpty(t *testing.T) {
	s, kv, _ := newTestStore(t)
	require.NoError(t, kv.Set(domain.NamespaceHistory, Key, []byte("{not json")))

	assert.Empty(t, s.List())

	// the next record overwrites the broken blob
	require.NoError(t, s.Record("fresh"))
	got := s.List()
	require.Len(t, got, 1)
	assert.Equal(t, "fresh", got[0].Cmd)
}

func TestListDropsDuplicatesFromStoredBlob(t *testing.T) {
	s, kv, _ := newTestStore(t)
	blob := `[{"cmd":"a","ts":"2026-01-01T00:00:00Z"},{"cmd":"a","ts":"2025-01-01T00:00:00Z"},{"cmd":"","ts":"2025-01-01T00:00:00Z"},{"cmd":"b","ts":"2025-01-01T00:00:00Z"}]`
	require.NoError(t, kv.Set(domain.NamespaceHistory, Key, []byte(blob)))

	got := s.List()
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Cmd)
	assert.Equal(t, "b", got[1].Cmd)
}

func TestStoredShapeUsesCmdAndTs(t *testing.T) {
	s, kv, _ := newTestStore(t)
	require.NoError(t, s.Record("synora ui action-run --id \"x\" --json"))

	data, ok, err := kv.Get(domain.NamespaceHistory, Key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, string(data), `"cmd":`)
	assert.Contains(t, string(data), `"ts":`)
}

func TestClear(t *testing.T) {
	s, kv, _ := newTestStore(t)
	require.NoError(t, s.Record("a"))
	require.NoError(t, kv.Set(domain.NamespaceSettings, "flags", []byte(`{}`)))

	require.NoError(t, s.Clear())
	assert.Empty(t, s.List())

	_, ok, err := kv.Get(domain.NamespaceSettings, "flags")
	require.NoError(t, err)
	assert.True(t, ok, "other namespaces survive a history clear")
}
