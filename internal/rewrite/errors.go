package rewrite

import (
	"errors"
	"fmt"
)

var (
	ErrInputAccess  = errors.New("cannot read target file")
	ErrOutputAccess = errors.New("cannot write target file")
)

type Op string

const (
	OpRead  Op = "read"
	OpWrite Op = "write"
)

// AccessError is an I/O failure on a target path.
type AccessError struct {
	Op   Op
	Path string
	Err  error
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *AccessError) Unwrap() error {
	return e.Err
}

func (e *AccessError) Is(target error) bool {
	switch target {
	case ErrInputAccess:
		return e.Op == OpRead
	case ErrOutputAccess:
		return e.Op == OpWrite
	}
	return false
}
