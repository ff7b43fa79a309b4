package domain

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrorKind classifies console failures. Every kind is terminal for the
// operation that produced it.
type ErrorKind string

const (
	ErrKindValidation        ErrorKind = "validation"
	ErrKindTransport         ErrorKind = "transport"
	ErrKindWrongContentType  ErrorKind = "wrong_content_type"
	ErrKindMalformedResponse ErrorKind = "malformed_response"
	ErrKindStructuredFailure ErrorKind = "structured_failure"
	ErrKindPayloadParse      ErrorKind = "payload_parse"
	ErrKindBusy              ErrorKind = "busy"
	ErrKindStale             ErrorKind = "stale"
)

// ConsoleError carries a classified failure.
type ConsoleError struct {
	Kind    ErrorKind
	Message string
	// ExitCode is set for structured failures that reported one.
	ExitCode *float64
	// Detail holds extra context such as the title of an HTML page.
	Detail string
	Err    error
}

func (e *ConsoleError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Kind == ErrKindStructuredFailure {
		msg = fmt.Sprintf("%s (exit %s)", msg, exitCodeText(e.ExitCode))
	}
	if e.Detail != "" {
		msg = fmt.Sprintf("%s [%s]", msg, e.Detail)
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *ConsoleError) Unwrap() error {
	return e.Err
}

// NewError builds a ConsoleError of the given kind.
func NewError(kind ErrorKind, msg string, err error) *ConsoleError {
	return &ConsoleError{Kind: kind, Message: msg, Err: err}
}

// KindOf extracts the kind of a ConsoleError anywhere in the chain.
func KindOf(err error) (ErrorKind, bool) {
	var ce *ConsoleError
	if errors.As(err, &ce) {
		return ce.Kind, true
	}
	return "", false
}

// IsKind reports whether err is a ConsoleError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

var (
	ErrEmptyQuery     = NewError(ErrKindValidation, "query is required", nil)
	ErrEmptyAction    = NewError(ErrKindValidation, "action id is required", nil)
	ErrSearchInFlight = NewError(ErrKindBusy, "a search is already running", nil)
	ErrStaleResponse  = NewError(ErrKindStale, "response superseded by a newer payload", nil)
)

func exitCodeText(code *float64) string {
	if code == nil {
		return "?"
	}
	return strconv.FormatFloat(*code, 'f', -1, 64)
}
