package wrapper

import (
	"errors"
	"fmt"
)

// ErrDelegateNotFound is returned when the delegate cannot be started.
var ErrDelegateNotFound = errors.New("couldn't find delegate")

// ExitError carries the exit code the process should terminate with,
// together with the error to report, if any.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}
