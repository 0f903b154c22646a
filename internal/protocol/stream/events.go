package stream

import (
	"github.com/danmuck/ubxwire/internal/protocol"
	"github.com/danmuck/ubxwire/internal/protocol/frame"
)

// Event is one outcome of reading the stream: Message, ChecksumFailure,
// DecodeFailure or Foreign.
type Event interface {
	event()
}

// Message carries a frame that passed its checksum and decoded.
type Message struct {
	*protocol.Message
	Raw []byte
}

// ChecksumFailure carries a delimited frame whose checksum did not match.
type ChecksumFailure struct {
	Frame frame.Frame
	Err   *frame.ChecksumError
	Raw   []byte
}

// DecodeFailure carries a well-formed frame the codec rejected.
type DecodeFailure struct {
	Frame frame.Frame
	Err   error
	Raw   []byte
}

// Foreign carries a delimited NMEA sentence or RTCM3 frame.
type Foreign struct {
	Protocol frame.Protocol
	Data     []byte
}

func (Message) event()         {}
func (ChecksumFailure) event() {}
func (DecodeFailure) event()   {}
func (Foreign) event()         {}
