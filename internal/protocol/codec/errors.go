package codec

import (
	"errors"
	"fmt"

	"github.com/danmuck/ubxwire/internal/protocol/wire"
)

var (
	ErrPayloadLength    = errors.New("codec: payload length does not match layout")
	ErrMissingCount     = errors.New("codec: count field missing or not an integer")
	ErrMissingAttribute = errors.New("codec: missing attribute")
	ErrTypeMismatch     = errors.New("codec: attribute type mismatch")
	ErrCountMismatch    = errors.New("codec: group length does not match count field")
)

// PayloadLengthError reports an overrun, or in strict mode a payload whose
// size disagrees with the layout.
type PayloadLengthError struct {
	Path   string
	Want   int
	Got    int
	Reason string
}

func (e *PayloadLengthError) Error() string {
	return fmt.Sprintf("codec: %s at %s: want %d bytes, have %d", e.Reason, pathOrRoot(e.Path), e.Want, e.Got)
}

func (e *PayloadLengthError) Unwrap() error { return ErrPayloadLength }

// MissingCountFieldError reports a group whose count reference has no
// integer value at decode or encode time.
type MissingCountFieldError struct {
	Path string
	Ref  string
	Err  error
}

func (e *MissingCountFieldError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("codec: %s: count field %s: %v", pathOrRoot(e.Path), e.Ref, e.Err)
	}
	return fmt.Sprintf("codec: %s: count field %s not present", pathOrRoot(e.Path), e.Ref)
}

func (e *MissingCountFieldError) Unwrap() error { return ErrMissingCount }

type MissingAttributeError struct {
	Path string
}

func (e *MissingAttributeError) Error() string {
	return fmt.Sprintf("codec: missing attribute %s", e.Path)
}

func (e *MissingAttributeError) Unwrap() error { return ErrMissingAttribute }

// TypeMismatchError wraps the wire-level reason a caller value could not be
// encoded.
type TypeMismatchError struct {
	Path string
	Type wire.Type
	Err  error
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("codec: %s as %s: %v", e.Path, e.Type, e.Err)
}

func (e *TypeMismatchError) Unwrap() []error { return []error{ErrTypeMismatch, e.Err} }

type CountMismatchError struct {
	Path  string
	Count uint64
	Items int
}

func (e *CountMismatchError) Error() string {
	return fmt.Sprintf("codec: %s has %d items, count says %d", e.Path, e.Items, e.Count)
}

func (e *CountMismatchError) Unwrap() error { return ErrCountMismatch }

func pathOrRoot(p string) string {
	if p == "" {
		return "<payload>"
	}
	return p
}
