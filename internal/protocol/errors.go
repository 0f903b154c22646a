package protocol

import (
	"errors"
	"fmt"

	"github.com/danmuck/ubxwire/internal/protocol/schema"
)

var (
	ErrTrailingData = errors.New("protocol: data after frame")
	ErrNoLayout     = errors.New("protocol: no layout for message")
)

// ParseError attaches the message identity to a payload decode failure.
type ParseError struct {
	Identity schema.Identity
	Mode     schema.Mode
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("protocol: %s (%s): %v", e.Identity, e.Mode, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
