package stream

import (
	"bytes"
	"errors"
	"io"

	"github.com/danmuck/ubxwire/internal/protocol"
	"github.com/danmuck/ubxwire/internal/protocol/frame"
)

type state uint8

const (
	seekingSync state = iota
	readingHeader
	readingPayload
	readingChecksum
)

func (s state) String() string {
	switch s {
	case seekingSync:
		return "seeking sync"
	case readingHeader:
		return "reading header"
	case readingPayload:
		return "reading payload"
	case readingChecksum:
		return "reading checksum"
	default:
		return "invalid"
	}
}

// Decoder is the push side of the stream reader: feed it bytes with Write
// and pull events with Next. It keeps its position across calls, so input
// may be split anywhere. A Decoder is not safe for concurrent use.
type Decoder struct {
	cfg    config
	buf    []byte
	off    int
	state  state
	need   int
	closed bool
}

func NewDecoder(opts ...Option) *Decoder {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Decoder{cfg: cfg}
}

// Write appends p to the pending input. It never fails before Close.
func (d *Decoder) Write(p []byte) (int, error) {
	if d.closed {
		return 0, ErrClosed
	}
	if d.off > 0 && d.off >= len(d.buf)/2 {
		n := copy(d.buf, d.buf[d.off:])
		d.buf = d.buf[:n]
		d.off = 0
	}
	d.buf = append(d.buf, p...)
	return len(p), nil
}

// Close marks the input exhausted. Events already buffered are still
// returned by Next; after them Next reports io.EOF, or a
// *TruncatedFrameError when the input stopped inside a frame.
func (d *Decoder) Close() error {
	d.closed = true
	return nil
}

// Buffered is the number of bytes held but not yet consumed.
func (d *Decoder) Buffered() int { return len(d.buf) - d.off }

// Next returns the next event. ErrNeedMore is the only suspension point;
// per-frame failures are events, not errors.
func (d *Decoder) Next() (Event, error) {
	for {
		ev, err := d.step()
		if err == nil {
			if ev != nil {
				return ev, nil
			}
			continue
		}
		if errors.Is(err, ErrNeedMore) && d.closed {
			return nil, d.finish()
		}
		return nil, err
	}
}

func (d *Decoder) pending() []byte { return d.buf[d.off:] }

func (d *Decoder) consume(n int) { d.off += n }

// step advances the state machine by one transition. A nil event with a
// nil error means progress was made without producing anything.
func (d *Decoder) step() (Event, error) {
	buf := d.pending()
	switch d.state {
	case seekingSync:
		return d.seek(buf)
	case readingHeader:
		if len(buf) < frame.HeaderLen {
			return nil, ErrNeedMore
		}
		n := int(buf[4]) | int(buf[5])<<8
		if n > d.cfg.limits.MaxPayloadBytes && d.cfg.limits.MaxPayloadBytes > 0 {
			d.cfg.logger.Debug().Int("declared", n).Msg("frame length over limit, resyncing")
			d.discard(1)
			d.state = seekingSync
			return nil, nil
		}
		d.need = n
		d.state = readingPayload
		return nil, nil
	case readingPayload:
		if len(buf) < frame.HeaderLen+d.need {
			return nil, ErrNeedMore
		}
		d.state = readingChecksum
		return nil, nil
	case readingChecksum:
		total := frame.Overhead + d.need
		if len(buf) < total {
			return nil, ErrNeedMore
		}
		d.state = seekingSync
		return d.emit(buf[:total])
	default:
		d.state = seekingSync
		return nil, nil
	}
}

func (d *Decoder) seek(buf []byte) (Event, error) {
	if len(buf) == 0 {
		return nil, ErrNeedMore
	}
	switch frame.Classify(buf) {
	case frame.UBX:
		if len(buf) < 2 {
			return nil, ErrNeedMore
		}
		d.state = readingHeader
		return nil, nil
	case frame.NMEA:
		return d.foreign(frame.NMEA, buf, frame.ExtractNMEA)
	case frame.RTCM3:
		return d.foreign(frame.RTCM3, buf, frame.ExtractRTCM3)
	}
	d.discard(skipGarbage(buf))
	return nil, nil
}

func (d *Decoder) foreign(p frame.Protocol, buf []byte, extract func([]byte) ([]byte, int, error)) (Event, error) {
	chunk, n, err := extract(buf)
	switch {
	case errors.Is(err, frame.ErrIncomplete) && !d.closed:
		return nil, ErrNeedMore
	case err != nil:
		// After Close an incomplete candidate can never complete, so its
		// first byte is garbage like any other failed candidate.
		d.discard(1)
		return nil, nil
	}
	d.consume(n)
	d.cfg.observer.ForeignChunk(p, n)
	if sink, ok := d.cfg.sinks[p]; ok {
		sink(chunk)
	}
	if d.cfg.surface[p] {
		return Foreign{Protocol: p, Data: chunk}, nil
	}
	return nil, nil
}

func (d *Decoder) emit(raw []byte) (Event, error) {
	raw = bytes.Clone(raw)
	d.consume(len(raw))
	f, _, err := frame.TryExtract(raw)
	var ce *frame.ChecksumError
	if errors.As(err, &ce) {
		d.cfg.observer.ChecksumFailed(f.Identity())
		d.cfg.logger.Debug().Str("ubx", f.Identity().String()).Err(err).Msg("checksum failure")
		return ChecksumFailure{Frame: f, Err: ce, Raw: raw}, nil
	}
	if err != nil {
		d.cfg.observer.Discarded(len(raw))
		return nil, nil
	}
	msg, err := protocol.Parse(f, d.cfg.registry, d.cfg.mode, d.cfg.strict)
	if err != nil {
		d.cfg.observer.DecodeFailed(f.Identity(), err)
		d.cfg.logger.Debug().Str("ubx", f.Identity().String()).Err(err).Msg("decode failure")
		return DecodeFailure{Frame: f, Err: err, Raw: raw}, nil
	}
	d.cfg.observer.FrameDecoded(f.Identity(), len(f.Payload))
	return Message{Message: msg, Raw: raw}, nil
}

func (d *Decoder) discard(n int) {
	if n <= 0 {
		return
	}
	d.consume(n)
	d.cfg.observer.Discarded(n)
}

// finish resolves the end of input once nothing more can be decoded.
func (d *Decoder) finish() error {
	rest := d.pending()
	if d.state != seekingSync || frame.Classify(rest) == frame.UBX {
		return &TruncatedFrameError{State: d.state.String(), Pending: len(rest)}
	}
	if len(rest) > 0 {
		d.discard(len(rest))
	}
	return io.EOF
}

// skipGarbage counts the leading bytes that cannot start any recognised
// protocol, always at least one.
func skipGarbage(buf []byte) int {
	for i := 1; i < len(buf); i++ {
		switch buf[i] {
		case frame.Sync1, '$', '!', 0xD3:
			return i
		}
	}
	return len(buf)
}
