package cli

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/synora-ui/internal/app"
)

func newTestREPL(t *testing.T, stdin string) (*REPL, *bytes.Buffer) {
	t.Helper()
	svc := newFakeService(t)
	setupConfig(t, svc.server.URL)

	container, err := app.BuildContainer(context.Background(), app.Options{Ephemeral: true})
	require.NoError(t, err)
	in := bufio.NewReader(strings.NewReader(stdin))
	var out bytes.Buffer
	con := container.Attach(NewPrompter(in, &out), NewClipboard())
	return NewREPL(container, con, in, &out), &out
}

func TestREPL_ExitCommands(t *testing.T) {
	repl, _ := newTestREPL(t, "")
	for _, cmd := range []string{":exit", ":quit", ":q"} {
		err := repl.ProcessInput(context.Background(), cmd)
		assert.ErrorIs(t, err, ErrUserExit, cmd)
	}
}

func TestREPL_UnknownCommand(t *testing.T) {
	repl, _ := newTestREPL(t, "")
	err := repl.ProcessInput(context.Background(), ":nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), ":nope")
}

func TestREPL_SearchThenCommand(t *testing.T) {
	repl, out := newTestREPL(t, "")
	ctx := context.Background()

	require.NoError(t, repl.ProcessInput(ctx, "PowerToys"))
	assert.Contains(t, out.String(), "PowerToys x64")

	require.NoError(t, repl.ProcessInput(ctx, ":cmd 1"))
	assert.Contains(t, out.String(), `synora ui action-run --id "software.show:111" --json`)

	records := repl.container.HistoryStore.List()
	require.Len(t, records, 1)
	assert.Equal(t, `synora ui action-run --id "software.show:111" --json`, records[0].Cmd)
}

func TestREPL_PasteReadsUntilTerminator(t *testing.T) {
	repl, out := newTestREPL(t, searchPayload+"\n.\n")

	require.NoError(t, repl.ProcessInput(context.Background(), ":paste"))
	assert.Contains(t, out.String(), "Driver")
	require.NotNil(t, repl.console.Snapshot().Payload)
}

func TestREPL_FilterWithoutPayload(t *testing.T) {
	repl, out := newTestREPL(t, "")

	require.NoError(t, repl.ProcessInput(context.Background(), ":filter high"))
	assert.Contains(t, out.String(), "No results yet")
}

func TestREPL_CardOutOfRange(t *testing.T) {
	repl, _ := newTestREPL(t, "")
	err := repl.ProcessInput(context.Background(), ":run 9")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no card 9")
}

func TestREPL_RunLoopStopsOnExit(t *testing.T) {
	repl, out := newTestREPL(t, ":lang en\n:exit\n:help\n")

	require.NoError(t, repl.Run(context.Background()))
	assert.Contains(t, out.String(), "Language: en")
	assert.NotContains(t, out.String(), "Commands:")
}
