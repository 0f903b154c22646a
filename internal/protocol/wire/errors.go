package wire

import (
	"errors"
	"fmt"
)

var (
	ErrKindMismatch = errors.New("wire: value kind mismatch")
	ErrOverflow     = errors.New("wire: value out of range")
	ErrInvalidType  = errors.New("wire: invalid type")
)

// TypeWidthError reports a byte or bit count that contradicts a declared width.
type TypeWidthError struct {
	Type Type
	Want int
	Got  int
	Bits bool
}

func (e *TypeWidthError) Error() string {
	unit := "bytes"
	if e.Bits {
		unit = "bits"
	}
	return fmt.Sprintf("wire: %s width mismatch: want %d %s, got %d", e.Type, e.Want, unit, e.Got)
}

// TypeMismatchError reports a value that cannot be represented in a wire type.
type TypeMismatchError struct {
	Type  Type
	Value Value
	Err   error
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("wire: cannot encode %s as %s: %v", e.Value, e.Type, e.Err)
}

func (e *TypeMismatchError) Unwrap() error { return e.Err }
