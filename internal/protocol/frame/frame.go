package frame

import (
	"errors"
	"fmt"
	"io"

	"github.com/danmuck/ubxwire/internal/protocol/schema"
)

const (
	Sync1 byte = 0xB5
	Sync2 byte = 0x62

	// HeaderLen covers sync, class, id and the length field.
	HeaderLen = 6
	// Overhead is everything in a frame except the payload.
	Overhead = HeaderLen + 2
	// MaxPayload is the largest length the 16-bit field can carry.
	MaxPayload = 0xFFFF
)

var (
	ErrIncomplete      = errors.New("frame: incomplete")
	ErrNotThisProtocol = errors.New("frame: not a frame of this protocol")
	ErrPayloadTooLarge = errors.New("frame: payload too large")
	ErrBadSync         = errors.New("frame: bad sync bytes")
)

// ChecksumError reports a well-delimited frame whose trailing checksum does
// not match its contents.
type ChecksumError struct {
	Identity schema.Identity
	Want     [2]byte
	Got      [2]byte
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("frame: %s checksum mismatch: want %02x%02x, got %02x%02x",
		e.Identity, e.Want[0], e.Want[1], e.Got[0], e.Got[1])
}

// Frame is one delimited message.
type Frame struct {
	Class   uint8
	ID      uint8
	Payload []byte
	CkA     uint8
	CkB     uint8
}

func (f Frame) Identity() schema.Identity {
	return schema.Identity{Class: f.Class, ID: f.ID}
}

// Len is the encoded size of f.
func (f Frame) Len() int { return Overhead + len(f.Payload) }

// Limits constrains frame decode/encode memory use.
type Limits struct {
	MaxPayloadBytes int
}

func DefaultLimits() Limits {
	return Limits{MaxPayloadBytes: MaxPayload}
}

func (l Limits) maxPayload() int {
	if l.MaxPayloadBytes <= 0 || l.MaxPayloadBytes > MaxPayload {
		return MaxPayload
	}
	return l.MaxPayloadBytes
}

// New builds a frame with its checksum filled in.
func New(class, id uint8, payload []byte) Frame {
	ckA, ckB := Compute(class, id, uint16(len(payload)), payload)
	return Frame{Class: class, ID: id, Payload: payload, CkA: ckA, CkB: ckB}
}

// Encode serialises f. The checksum is always recomputed.
func Encode(f Frame) ([]byte, error) {
	if len(f.Payload) > MaxPayload {
		return nil, ErrPayloadTooLarge
	}
	n := uint16(len(f.Payload))
	out := make([]byte, 0, f.Len())
	out = append(out, Sync1, Sync2, f.Class, f.ID, byte(n), byte(n>>8))
	out = append(out, f.Payload...)
	ckA, ckB := Checksum(out[2:])
	return append(out, ckA, ckB), nil
}

// TryExtract delimits one frame at the start of buf using DefaultLimits.
func TryExtract(buf []byte) (Frame, int, error) {
	return DefaultLimits().TryExtract(buf)
}

// TryExtract delimits one frame at the start of buf. It returns the number
// of bytes the frame occupies. ErrIncomplete means more input is needed and
// nothing was consumed. A checksum mismatch still returns the frame and its
// length, alongside a *ChecksumError.
func (l Limits) TryExtract(buf []byte) (Frame, int, error) {
	if len(buf) == 0 {
		return Frame{}, 0, ErrIncomplete
	}
	if buf[0] != Sync1 {
		return Frame{}, 0, ErrNotThisProtocol
	}
	if len(buf) < 2 {
		return Frame{}, 0, ErrIncomplete
	}
	if buf[1] != Sync2 {
		return Frame{}, 0, ErrNotThisProtocol
	}
	if len(buf) < HeaderLen {
		return Frame{}, 0, ErrIncomplete
	}
	n := int(buf[4]) | int(buf[5])<<8
	if n > l.maxPayload() {
		return Frame{}, 0, ErrPayloadTooLarge
	}
	total := Overhead + n
	if len(buf) < total {
		return Frame{}, 0, ErrIncomplete
	}

	payload := make([]byte, n)
	copy(payload, buf[HeaderLen:HeaderLen+n])
	f := Frame{Class: buf[2], ID: buf[3], Payload: payload, CkA: buf[total-2], CkB: buf[total-1]}
	ckA, ckB := Checksum(buf[2 : total-2])
	if ckA != f.CkA || ckB != f.CkB {
		return f, total, &ChecksumError{Identity: f.Identity(), Want: [2]byte{ckA, ckB}, Got: [2]byte{f.CkA, f.CkB}}
	}
	return f, total, nil
}

// ReadFrame reads one frame that must start at the current position of r.
func ReadFrame(r io.Reader, limits Limits) (Frame, error) {
	var head [HeaderLen]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		return Frame{}, err
	}
	if head[0] != Sync1 || head[1] != Sync2 {
		return Frame{}, ErrBadSync
	}
	n := int(head[4]) | int(head[5])<<8
	if n > limits.maxPayload() {
		return Frame{}, ErrPayloadTooLarge
	}
	buf := make([]byte, Overhead+n)
	copy(buf, head[:])
	if _, err := io.ReadFull(r, buf[HeaderLen:]); err != nil {
		if errors.Is(err, io.EOF) {
			return Frame{}, io.ErrUnexpectedEOF
		}
		return Frame{}, err
	}
	f, _, err := limits.TryExtract(buf)
	return f, err
}

func WriteFrame(w io.Writer, f Frame, limits Limits) error {
	if len(f.Payload) > limits.maxPayload() {
		return ErrPayloadTooLarge
	}
	b, err := Encode(f)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}
