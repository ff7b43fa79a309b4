package search

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/synora-ui/internal/domain"
	"github.com/doeshing/synora-ui/internal/pkg/logger"
	"github.com/doeshing/synora-ui/internal/ports"
)

type stubBoundary struct {
	resp    ports.RawResponse
	err     error
	queries []string
	// hold, when set, blocks Search until closed.
	hold    chan struct{}
	entered chan struct{}
}

func (s *stubBoundary) Search(ctx context.Context, query string) (ports.RawResponse, error) {
	s.queries = append(s.queries, query)
	if s.hold != nil {
		close(s.entered)
		<-s.hold
	}
	return s.resp, s.err
}

type fixedLocale map[string]string

func (l fixedLocale) Language() string          { return "en" }
func (l fixedLocale) Resolve(key string) string { return l[key] }
func (l fixedLocale) Format(key string, vars map[string]any) string {
	return l[key]
}

func newClient(b *stubBoundary) *Client {
	return &Client{
		Boundary: b,
		Locale:   fixedLocale{"prompts.liveFailed": "Live search failed."},
		Logger:   logger.NewNop(),
	}
}

const powertoys = `{"query":"PowerToys","groups":[{"type":"software","items":[{"title":"PowerToys","risk_level":"low","action_id":"software.show:111"}]}]}`

func TestSearchSuccess(t *testing.T) {
	b := &stubBoundary{resp: ports.RawResponse{StatusCode: 200, Body: []byte(powertoys)}}
	c := newClient(b)

	got, err := c.Search(context.Background(), "  PowerToys ")
	require.NoError(t, err)
	assert.Equal(t, []string{"PowerToys"}, b.queries)
	assert.Equal(t, "PowerToys", got.Payload.Query)
	require.Len(t, got.Payload.Groups, 1)
	assert.Equal(t, "software.show:111", got.Payload.Groups[0].Items[0].ActionID)
	assert.JSONEq(t, powertoys, got.Raw)
	assert.Contains(t, got.Raw, "\n  ")
	assert.True(t, c.IsCurrent(got.Token))
	assert.False(t, c.Busy())
}

func TestSearchBlankQueryMakesNoCall(t *testing.T) {
	b := &stubBoundary{}
	_, err := newClient(b).Search(context.Background(), "   ")
	assert.ErrorIs(t, err, domain.ErrEmptyQuery)
	assert.True(t, domain.IsKind(err, domain.ErrKindValidation))
	assert.Empty(t, b.queries)
}

func TestSearchRejectsOverlap(t *testing.T) {
	b := &stubBoundary{
		resp:    ports.RawResponse{StatusCode: 200, Body: []byte(powertoys)},
		hold:    make(chan struct{}),
		entered: make(chan struct{}),
	}
	c := newClient(b)

	done := make(chan error, 1)
	go func() {
		_, err := c.Search(context.Background(), "first")
		done <- err
	}()
	<-b.entered
	assert.True(t, c.Busy())

	_, err := c.Search(context.Background(), "second")
	assert.ErrorIs(t, err, domain.ErrSearchInFlight)

	close(b.hold)
	require.NoError(t, <-done)
	assert.Equal(t, []string{"first"}, b.queries)
}

func TestSearchTokensAdvance(t *testing.T) {
	b := &stubBoundary{resp: ports.RawResponse{StatusCode: 200, Body: []byte(powertoys)}}
	c := newClient(b)

	first, err := c.Search(context.Background(), "a")
	require.NoError(t, err)
	second, err := c.Search(context.Background(), "b")
	require.NoError(t, err)

	assert.Greater(t, second.Token, first.Token)
	assert.False(t, c.IsCurrent(first.Token))
	assert.True(t, c.IsCurrent(second.Token))
	assert.False(t, c.IsCurrent(0))
}

func TestSearchFailures(t *testing.T) {
	tests := []struct {
		name string
		b    *stubBoundary
		kind domain.ErrorKind
		msg  string
	}{
		{"html", &stubBoundary{resp: ports.RawResponse{StatusCode: 200, Body: []byte("<!DOCTYPE html><html></html>")}}, domain.ErrKindWrongContentType, ""},
		{"text", &stubBoundary{resp: ports.RawResponse{StatusCode: 200, Body: []byte("oops")}}, domain.ErrKindMalformedResponse, ""},
		{"error field", &stubBoundary{resp: ports.RawResponse{StatusCode: 500, Body: []byte(`{"error":"synora not found"}`)}}, domain.ErrKindStructuredFailure, "synora not found"},
		{"no error field", &stubBoundary{resp: ports.RawResponse{StatusCode: 500, Body: []byte(`{}`)}}, domain.ErrKindStructuredFailure, "Live search failed."},
		{"transport", &stubBoundary{err: errors.New("dial tcp: refused")}, domain.ErrKindTransport, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newClient(tt.b)
			_, err := c.Search(context.Background(), "q")
			require.Error(t, err)
			assert.True(t, domain.IsKind(err, tt.kind))
			if tt.msg != "" {
				var ce *domain.ConsoleError
				require.ErrorAs(t, err, &ce)
				assert.Equal(t, tt.msg, ce.Message)
			}
			assert.False(t, c.Busy(), "busy flag cleared after failure")
		})
	}
}

func TestSearchNonObjectBodyNormalizesEmpty(t *testing.T) {
	b := &stubBoundary{resp: ports.RawResponse{StatusCode: 200, Body: []byte(`[1,2]`)}}
	got, err := newClient(b).Search(context.Background(), "q")
	require.NoError(t, err)
	assert.Empty(t, got.Payload.Groups)
}
