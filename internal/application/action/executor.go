// Package action runs one action-run request per invocation, gated by a
// synchronous confirmation for high-risk actions.
package action

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"

	"github.com/doeshing/synora-ui/internal/application/command"
	"github.com/doeshing/synora-ui/internal/application/response"
	"github.com/doeshing/synora-ui/internal/domain"
	"github.com/doeshing/synora-ui/internal/ports"
)

// Executor dispatches actions across the action boundary.
type Executor struct {
	Boundary ports.ActionBoundary
	Prompter ports.ConfirmationPrompter
	Builder  command.Builder
	Locale   ports.LocaleProvider
	Logger   ports.Logger
}

// Execute walks the action state machine for req. Cancellation is not an
// error; every failed state returns its ConsoleError as well as the outcome.
func (e *Executor) Execute(ctx context.Context, req domain.ActionRequest) (domain.ActionOutcome, error) {
	outcome := domain.ActionOutcome{State: domain.ActionIdle}
	if strings.TrimSpace(req.ActionID) == "" {
		outcome.State = domain.ActionRejected
		outcome.Err = domain.ErrEmptyAction
		return outcome, outcome.Err
	}

	risk := req.Risk()
	outcome.Command = e.Builder.Build(req.ActionID, risk)
	requestID := uuid.NewString()

	if domain.RequiresConfirmation(risk) {
		outcome.State = domain.ActionConfirmationPending
		if !e.confirm(risk, outcome.Command) {
			outcome.State = domain.ActionCancelled
			e.debug("action cancelled", requestID, req, outcome)
			return outcome, nil
		}
		outcome.State = domain.ActionConfirmed
		outcome.Confirmed = true
	}

	outcome.State = domain.ActionRunning
	ctx = domain.WithRequestID(ctx, requestID)
	resp, err := e.Boundary.RunAction(ctx, domain.ActionRunBody{ID: req.ActionID, Confirm: outcome.Confirmed})
	if err != nil {
		outcome.State = domain.ActionFailedTransport
		outcome.Err = domain.NewError(domain.ErrKindTransport, "action request failed", err)
		e.debug("action transport error", requestID, req, outcome)
		return outcome, outcome.Err
	}

	body, err := response.Classify(resp)
	if err != nil {
		outcome.Err = err
		if domain.IsKind(err, domain.ErrKindWrongContentType) {
			outcome.State = domain.ActionFailedWrongContentType
		} else {
			outcome.State = domain.ActionFailedMalformed
		}
		e.debug("action response rejected", requestID, req, outcome)
		return outcome, err
	}

	if !response.Truthy(body.Get("ok")) {
		outcome.State = domain.ActionFailedStructured
		outcome.ExitCode = response.ExitCode(body.Get("exit_code"))
		outcome.Err = &domain.ConsoleError{
			Kind:     domain.ErrKindStructuredFailure,
			Message:  "action failed",
			ExitCode: outcome.ExitCode,
			Detail:   body.Get("error").String(),
		}
		e.debug("action failed", requestID, req, outcome)
		return outcome, outcome.Err
	}

	outcome.State = domain.ActionSucceeded
	if result := body.Get("result"); result.Exists() {
		outcome.Result = json.RawMessage(result.Raw)
	}
	e.debug("action succeeded", requestID, req, outcome)
	return outcome, nil
}

// confirm asks the prompter. A missing, non-interactive or failing prompter
// counts as a refusal.
func (e *Executor) confirm(risk, cmd string) bool {
	if e.Prompter == nil || !e.Prompter.Enabled() {
		return false
	}
	msg := "Confirm high-risk action?"
	if e.Locale != nil {
		msg = e.Locale.Resolve("prompts.actionNeedConfirm")
	}
	ok, err := e.Prompter.Confirm(risk, cmd, msg)
	if err != nil {
		if e.Logger != nil {
			e.Logger.Warn("confirmation prompt failed", map[string]interface{}{"error": err.Error()})
		}
		return false
	}
	return ok
}

func (e *Executor) debug(msg, requestID string, req domain.ActionRequest, outcome domain.ActionOutcome) {
	if e.Logger == nil {
		return
	}
	fields := map[string]interface{}{
		"request_id": requestID,
		"action_id":  req.ActionID,
		"risk":       req.Risk(),
		"state":      string(outcome.State),
		"confirmed":  outcome.Confirmed,
	}
	if kind, ok := domain.KindOf(outcome.Err); ok {
		fields["kind"] = string(kind)
	}
	e.Logger.Debug(msg, fields)
}
