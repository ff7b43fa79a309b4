package action

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/synora-ui/internal/application/command"
	"github.com/doeshing/synora-ui/internal/domain"
	"github.com/doeshing/synora-ui/internal/pkg/logger"
	"github.com/doeshing/synora-ui/internal/ports"
)

type stubBoundary struct {
	resp  ports.RawResponse
	err   error
	calls []domain.ActionRunBody
	ids   []string
}

func (s *stubBoundary) RunAction(ctx context.Context, body domain.ActionRunBody) (ports.RawResponse, error) {
	s.calls = append(s.calls, body)
	s.ids = append(s.ids, domain.RequestIDFrom(ctx))
	return s.resp, s.err
}

type stubPrompter struct {
	answer  bool
	err     error
	enabled bool
	asked   []string
}

func (p *stubPrompter) Confirm(risk, cmd, msg string) (bool, error) {
	p.asked = append(p.asked, cmd)
	return p.answer, p.err
}

func (p *stubPrompter) Enabled() bool { return p.enabled }

func jsonResp(body string) ports.RawResponse {
	return ports.RawResponse{StatusCode: 200, ContentType: "application/json", Body: []byte(body)}
}

func newExecutor(b *stubBoundary, p *stubPrompter) *Executor {
	e := &Executor{
		Boundary: b,
		Builder:  command.NewBuilder("synora"),
		Logger:   logger.NewNop(),
	}
	if p != nil {
		e.Prompter = p
	}
	return e
}

func TestExecuteLowRiskSkipsPrompt(t *testing.T) {
	b := &stubBoundary{resp: jsonResp(`{"ok":true,"result":{"installed":true}}`)}
	p := &stubPrompter{enabled: true}
	out, err := newExecutor(b, p).Execute(context.Background(), domain.ActionRequest{ActionID: "software.show:1"})

	require.NoError(t, err)
	assert.Equal(t, domain.ActionSucceeded, out.State)
	assert.Empty(t, p.asked)
	require.Len(t, b.calls, 1)
	assert.Equal(t, domain.ActionRunBody{ID: "software.show:1", Confirm: false}, b.calls[0])
	assert.JSONEq(t, `{"installed":true}`, string(out.Result))
	assert.Equal(t, `synora ui action-run --id "software.show:1" --json`, out.Command)
	assert.NotEmpty(t, b.ids[0])
}

func TestExecuteHighRiskConfirmed(t *testing.T) {
	b := &stubBoundary{resp: jsonResp(`{"ok":true}`)}
	p := &stubPrompter{enabled: true, answer: true}
	out, err := newExecutor(b, p).Execute(context.Background(), domain.ActionRequest{ActionID: "software.uninstall:9", RiskLevel: "high"})

	require.NoError(t, err)
	assert.Equal(t, domain.ActionSucceeded, out.State)
	assert.True(t, out.Confirmed)
	require.Len(t, p.asked, 1)
	assert.Contains(t, p.asked[0], "--confirm")
	require.Len(t, b.calls, 1)
	assert.True(t, b.calls[0].Confirm)
}

func TestExecuteHighRiskCancelledMakesNoCall(t *testing.T) {
	cases := map[string]*stubPrompter{
		"declined":        {enabled: true, answer: false},
		"prompt error":    {enabled: true, answer: true, err: errors.New("eof")},
		"non-interactive": {enabled: false, answer: true},
	}
	for name, p := range cases {
		t.Run(name, func(t *testing.T) {
			b := &stubBoundary{resp: jsonResp(`{"ok":true}`)}
			out, err := newExecutor(b, p).Execute(context.Background(), domain.ActionRequest{ActionID: "x", RiskLevel: "high"})

			require.NoError(t, err)
			assert.Equal(t, domain.ActionCancelled, out.State)
			assert.False(t, out.Confirmed)
			assert.Empty(t, b.calls)
		})
	}
}

func TestExecuteWithoutPrompterCancelsHighRisk(t *testing.T) {
	b := &stubBoundary{resp: jsonResp(`{"ok":true}`)}
	out, err := newExecutor(b, nil).Execute(context.Background(), domain.ActionRequest{ActionID: "x", RiskLevel: "high"})
	require.NoError(t, err)
	assert.Equal(t, domain.ActionCancelled, out.State)
	assert.Empty(t, b.calls)
}

func TestExecuteEmptyIDRejected(t *testing.T) {
	b := &stubBoundary{}
	out, err := newExecutor(b, nil).Execute(context.Background(), domain.ActionRequest{ActionID: "  "})
	assert.ErrorIs(t, err, domain.ErrEmptyAction)
	assert.Equal(t, domain.ActionRejected, out.State)
	assert.Empty(t, b.calls)
}

func TestExecuteFailures(t *testing.T) {
	three := 3.0
	tests := []struct {
		name     string
		boundary *stubBoundary
		state    domain.ActionState
		kind     domain.ErrorKind
		exit     *float64
	}{
		{
			name:     "html page",
			boundary: &stubBoundary{resp: ports.RawResponse{StatusCode: 200, Body: []byte("<!DOCTYPE html><html><title>UI</title></html>")}},
			state:    domain.ActionFailedWrongContentType,
			kind:     domain.ErrKindWrongContentType,
		},
		{
			name:     "plain text",
			boundary: &stubBoundary{resp: ports.RawResponse{StatusCode: 502, Body: []byte("Bad Gateway")}},
			state:    domain.ActionFailedMalformed,
			kind:     domain.ErrKindMalformedResponse,
		},
		{
			name:     "structured with exit code",
			boundary: &stubBoundary{resp: jsonResp(`{"ok":false,"exit_code":3}`)},
			state:    domain.ActionFailedStructured,
			kind:     domain.ErrKindStructuredFailure,
			exit:     &three,
		},
		{
			name:     "structured without ok",
			boundary: &stubBoundary{resp: jsonResp(`{"result":{}}`)},
			state:    domain.ActionFailedStructured,
			kind:     domain.ErrKindStructuredFailure,
		},
		{
			name:     "transport",
			boundary: &stubBoundary{err: errors.New("connection refused")},
			state:    domain.ActionFailedTransport,
			kind:     domain.ErrKindTransport,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := newExecutor(tt.boundary, nil).Execute(context.Background(), domain.ActionRequest{ActionID: "a"})
			require.Error(t, err)
			assert.Equal(t, tt.state, out.State)
			assert.True(t, domain.IsKind(err, tt.kind))
			assert.Equal(t, tt.exit, out.ExitCode)
			assert.Len(t, tt.boundary.calls, 1, "exactly one call, never retried")
		})
	}
}

func TestExitCodeTextUnknown(t *testing.T) {
	b := &stubBoundary{resp: jsonResp(`{"ok":false}`)}
	out, err := newExecutor(b, nil).Execute(context.Background(), domain.ActionRequest{ActionID: "a"})
	require.Error(t, err)
	assert.Equal(t, "?", out.ExitCodeText())
	assert.Contains(t, err.Error(), "exit ?")
}

func TestExecuteLooseOkField(t *testing.T) {
	b := &stubBoundary{resp: jsonResp(`{"ok":"yes","result":{"n":1}}`)}
	out, err := newExecutor(b, nil).Execute(context.Background(), domain.ActionRequest{ActionID: "a"})
	require.NoError(t, err)
	assert.Equal(t, domain.ActionSucceeded, out.State)
	assert.JSONEq(t, `{"n":1}`, string(out.Result))
}

func TestExitCodeTextFractional(t *testing.T) {
	b := &stubBoundary{resp: jsonResp(`{"ok":false,"exit_code":3.7}`)}
	out, err := newExecutor(b, nil).Execute(context.Background(), domain.ActionRequest{ActionID: "a"})
	require.Error(t, err)
	assert.Equal(t, "3.7", out.ExitCodeText())
	assert.Contains(t, err.Error(), "exit 3.7")
}
