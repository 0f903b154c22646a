package stream

import (
	"errors"
	"fmt"
)

var (
	// ErrNeedMore means the decoder holds no complete event; Write more
	// input or Close the source.
	ErrNeedMore = errors.New("stream: need more input")
	ErrClosed   = errors.New("stream: decoder closed")
)

// TruncatedFrameError reports input that ended inside a frame.
type TruncatedFrameError struct {
	State   string
	Pending int
}

func (e *TruncatedFrameError) Error() string {
	return fmt.Sprintf("stream: input ended while %s (%d bytes pending)", e.State, e.Pending)
}
