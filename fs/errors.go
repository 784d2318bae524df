package fs

import "errors"

var (
	ErrNotExist = errors.New("No such file or directory")
	ErrNotDir   = errors.New("Not a directory")
	ErrIsDir    = errors.New("Is a directory")
	ErrNotEmpty = errors.New("Directory not empty")
	ErrRoot     = errors.New("refusing to operate on root")
	ErrInvalid  = errors.New("Invalid argument")
)

// PathError records a failed filesystem operation and the path it acted on.
type PathError struct {
	Op   string
	Path string
	Err  error
}

func (e *PathError) Error() string { return e.Op + " " + e.Path + ": " + e.Err.Error() }

func (e *PathError) Unwrap() error { return e.Err }

func pathErr(op, path string, err error) error {
	return &PathError{Op: op, Path: path, Err: err}
}
