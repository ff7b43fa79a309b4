package response

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestTruthy(t *testing.T) {
	tests := []struct {
		body string
		want bool
	}{
		{`{"ok":true}`, true},
		{`{"ok":"yes"}`, true},
		{`{"ok":"false"}`, true},
		{`{"ok":1}`, true},
		{`{"ok":{}}`, true},
		{`{"ok":[]}`, true},
		{`{"ok":false}`, false},
		{`{"ok":0}`, false},
		{`{"ok":""}`, false},
		{`{"ok":null}`, false},
		{`{}`, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Truthy(gjson.Get(tt.body, "ok")), tt.body)
	}
}

func TestExitCode(t *testing.T) {
	code := ExitCode(gjson.Get(`{"exit_code":3.7}`, "exit_code"))
	require.NotNil(t, code)
	assert.Equal(t, 3.7, *code)

	code = ExitCode(gjson.Get(`{"exit_code":3}`, "exit_code"))
	require.NotNil(t, code)
	assert.Equal(t, 3.0, *code)

	assert.Nil(t, ExitCode(gjson.Get(`{"exit_code":"3"}`, "exit_code")))
	assert.Nil(t, ExitCode(gjson.Get(`{}`, "exit_code")))
}
