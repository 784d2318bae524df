package shell

import (
	"errors"
	"fmt"
)

// ErrExit asks the front end to end the session.
var ErrExit = errors.New("exit")

// Failure is an expected command failure: bad usage, a missing path, a
// type mismatch. Its message is shown to the user as the command's output.
type Failure struct {
	Msg string
}

func (f *Failure) Error() string { return f.Msg }

// Failf formats a Failure.
func Failf(format string, args ...any) error {
	return &Failure{Msg: fmt.Sprintf(format, args...)}
}

// Usage reports a missing or malformed argument.
func Usage(synopsis string) error {
	return &Failure{Msg: "Usage: " + synopsis}
}

// RedirectError reports that command output could not be written to the
// redirect target.
type RedirectError struct {
	Target string
	Err    error
}

func (e *RedirectError) Error() string { return "Failed to write to " + e.Target }

func (e *RedirectError) Unwrap() error { return e.Err }
