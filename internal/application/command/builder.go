// Package command derives the synora invocation equivalent to an action.
//
// The string is for display, copy and history only; it is never executed
// locally.
package command

import (
	"strings"

	"github.com/doeshing/synora-ui/internal/domain"
)

// Flags of `synora ui action-run`.
const (
	FlagID      = "--id"
	FlagConfirm = "--confirm"
	FlagJSON    = "--json"
)

// Builder formats action-run invocations for one binary name.
type Builder struct {
	Binary string
}

// NewBuilder returns a Builder, defaulting the binary to "synora".
func NewBuilder(binary string) Builder {
	if strings.TrimSpace(binary) == "" {
		binary = domain.DefaultBinary
	}
	return Builder{Binary: binary}
}

// Build returns the command for actionID, or "" when actionID is blank.
// The confirmation flag is present iff risk is high.
func (b Builder) Build(actionID, risk string) string {
	if strings.TrimSpace(actionID) == "" {
		return ""
	}
	args := b.Args(actionID, domain.RequiresConfirmation(risk))
	args[4] = Quote(actionID)
	return strings.Join(args, " ")
}

// Args is the argv form: binary ui action-run --id <id> [--confirm] --json.
func (b Builder) Args(actionID string, confirm bool) []string {
	binary := b.Binary
	if binary == "" {
		binary = domain.DefaultBinary
	}
	args := []string{binary, "ui", "action-run", FlagID, actionID}
	if confirm {
		args = append(args, FlagConfirm)
	}
	return append(args, FlagJSON)
}

// Quote wraps s in double quotes, escaping the characters that stay special
// inside them so the result is a single shell word.
func Quote(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\', '"', '$', '`':
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	sb.WriteByte('"')
	return sb.String()
}
