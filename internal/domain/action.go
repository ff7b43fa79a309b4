package domain

import "encoding/json"

// ActionState enumerates where an action invocation ended up.
type ActionState string

const (
	ActionIdle                   ActionState = "idle"
	ActionConfirmationPending    ActionState = "confirmation_pending"
	ActionCancelled              ActionState = "cancelled"
	ActionConfirmed              ActionState = "confirmed"
	ActionRunning                ActionState = "running"
	ActionSucceeded              ActionState = "succeeded"
	ActionFailedStructured       ActionState = "failed_structured"
	ActionFailedMalformed        ActionState = "failed_malformed"
	ActionFailedWrongContentType ActionState = "failed_wrong_content_type"
	ActionFailedTransport        ActionState = "failed_transport"
	ActionRejected               ActionState = "rejected"
)

// Terminal reports whether no further transition is possible.
func (s ActionState) Terminal() bool {
	switch s {
	case ActionIdle, ActionConfirmationPending, ActionConfirmed, ActionRunning:
		return false
	default:
		return true
	}
}

// ActionRequest is what a card's execute control is bound to.
type ActionRequest struct {
	ActionID  string `json:"action_id"`
	RiskLevel string `json:"risk_level"`
}

// Risk returns the declared risk, defaulting to low.
func (r ActionRequest) Risk() string {
	if r.RiskLevel == "" {
		return RiskLow
	}
	return r.RiskLevel
}

// ActionRunBody is the wire request sent across the action boundary.
type ActionRunBody struct {
	ID      string `json:"id"`
	Confirm bool   `json:"confirm"`
}

// ActionOutcome describes a finished action invocation.
type ActionOutcome struct {
	State     ActionState
	Command   string
	Confirmed bool
	ExitCode  *float64
	Result    json.RawMessage
	Err       error
}

// ExitCodeText renders the exit code or "?" when the backend omitted it.
func (o ActionOutcome) ExitCodeText() string {
	return exitCodeText(o.ExitCode)
}

// SearchResult is a successful live search.
type SearchResult struct {
	Token   uint64
	Payload ResultPayload
	// Raw is the response JSON, indented for the manual-paste area.
	Raw string
}
