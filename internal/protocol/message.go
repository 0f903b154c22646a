package protocol

import (
	"bytes"
	"fmt"

	"github.com/danmuck/ubxwire/internal/protocol/codec"
	"github.com/danmuck/ubxwire/internal/protocol/frame"
	"github.com/danmuck/ubxwire/internal/protocol/schema"
	"github.com/danmuck/ubxwire/internal/protocol/wire"
)

// Message is a parsed frame.
type Message struct {
	Identity schema.Identity
	Mode     schema.Mode
	Record   wire.Record
	// Trailing holds payload bytes beyond the layout, lenient parsing only.
	Trailing []byte
	// Known is false when no layout matched and Record holds the raw
	// payload under codec.OpaqueAttr.
	Known bool
}

func (m *Message) Name() string { return m.Identity.String() }

func (m *Message) Get(name string) (wire.Value, bool) { return m.Record.Get(name) }

func (m *Message) String() string {
	if len(m.Record) == 0 {
		return fmt.Sprintf("<UBX(%s)>", m.Name())
	}
	return fmt.Sprintf("<UBX(%s, %s)>", m.Name(), m.Record)
}

// Parse decodes f's payload against the layout registered for its identity
// in mode. A nil registry means the bundled catalogue. Identities without a
// layout parse as opaque messages.
func Parse(f frame.Frame, reg *schema.Registry, mode schema.Mode, strict bool) (*Message, error) {
	if reg == nil {
		reg = schema.Catalogue()
	}
	id := f.Identity()
	s, known := reg.Resolve(id, mode)
	rec, trailing, err := codec.Decode(s, f.Payload, codec.Options{Strict: strict})
	if err != nil {
		return nil, &ParseError{Identity: id, Mode: mode, Err: err}
	}
	return &Message{Identity: id, Mode: mode, Record: rec, Trailing: trailing, Known: known}, nil
}

// ParseBytes delimits and parses exactly one frame held in b.
func ParseBytes(b []byte, reg *schema.Registry, mode schema.Mode, strict bool) (*Message, error) {
	f, n, err := frame.TryExtract(b)
	if err != nil {
		return nil, err
	}
	if n != len(b) {
		return nil, ErrTrailingData
	}
	return Parse(f, reg, mode, strict)
}

// Build encodes attrs against the layout for id in mode and frames the
// result. A nil registry means the bundled catalogue. Identities without a
// layout take their payload from codec.OpaqueAttr.
func Build(id schema.Identity, mode schema.Mode, attrs wire.Record, reg *schema.Registry, opts codec.Options) ([]byte, error) {
	f, err := BuildFrame(id, mode, attrs, reg, opts)
	if err != nil {
		return nil, err
	}
	return frame.Encode(f)
}

// BuildFrame is Build stopping short of serialisation.
func BuildFrame(id schema.Identity, mode schema.Mode, attrs wire.Record, reg *schema.Registry, opts codec.Options) (frame.Frame, error) {
	if reg == nil {
		reg = schema.Catalogue()
	}
	s, known := reg.Resolve(id, mode)
	if !known {
		if _, ok := attrs.Get(codec.OpaqueAttr); !ok {
			return frame.Frame{}, fmt.Errorf("%w: %s (%s)", ErrNoLayout, id, mode)
		}
	}
	payload, err := codec.Encode(s, attrs, opts)
	if err != nil {
		return frame.Frame{}, err
	}
	if len(payload) > frame.MaxPayload {
		return frame.Frame{}, frame.ErrPayloadTooLarge
	}
	return frame.New(id.Class, id.ID, payload), nil
}

// BuildNamed is Build keyed by message token, e.g. CFG-MSG.
func BuildNamed(name string, mode schema.Mode, attrs wire.Record, reg *schema.Registry, opts codec.Options) ([]byte, error) {
	id, ok := schema.LookupName(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoLayout, name)
	}
	return Build(id, mode, attrs, reg, opts)
}

// NewPoll returns an empty-payload poll request for id.
func NewPoll(id schema.Identity) []byte {
	b, _ := frame.Encode(frame.Frame{Class: id.Class, ID: id.ID})
	return b
}

// Encode re-serialises m, trailing bytes included.
func (m *Message) Encode(reg *schema.Registry) ([]byte, error) {
	if reg == nil {
		reg = schema.Catalogue()
	}
	var s *schema.Schema
	if m.Known {
		s, _ = reg.Resolve(m.Identity, m.Mode)
	}
	payload, err := codec.Encode(s, m.Record, codec.Options{})
	if err != nil {
		return nil, err
	}
	if len(m.Trailing) > 0 {
		payload = append(bytes.Clone(payload), m.Trailing...)
	}
	return frame.Encode(frame.New(m.Identity.Class, m.Identity.ID, payload))
}
