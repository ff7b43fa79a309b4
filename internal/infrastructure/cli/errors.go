package cli

import (
	"errors"
	"fmt"
	"io"
)

// reportedError marks a failure whose message was already printed.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

func reported(err error) error {
	if err == nil {
		return nil
	}
	return &reportedError{err: err}
}

// HandleError prints err unless a command already reported it and returns
// the process exit code.
func HandleError(w io.Writer, err error) int {
	if err == nil {
		return 0
	}
	var r *reportedError
	if !errors.As(err, &r) {
		fmt.Fprintln(w, "error:", err)
	}
	return 1
}
