package schema

import (
	"fmt"

	"github.com/danmuck/ubxwire/internal/protocol/wire"
)

// FieldKind tags the variant held by a Field.
type FieldKind uint8

const (
	FieldScalar FieldKind = iota + 1
	FieldScaled
	FieldBitfield
	FieldGroup
)

func (k FieldKind) String() string {
	switch k {
	case FieldScalar:
		return "scalar"
	case FieldScaled:
		return "scaled"
	case FieldBitfield:
		return "bitfield"
	case FieldGroup:
		return "group"
	default:
		return "invalid"
	}
}

// Bit is one named sub-range of a bitfield. Bits are allocated from the
// least significant bit upward in declaration order.
type Bit struct {
	Name  string
	Width uint
}

// Field is a declarative description of one attribute's wire layout.
type Field struct {
	Kind  FieldKind
	Type  wire.Type
	Scale wire.Scale
	Bits  []Bit
	Count Count
	Items []Entry
}

// Entry binds an attribute name to its layout.
type Entry struct {
	Name  string
	Field Field
}

func Scalar(t wire.Type) Field {
	return Field{Kind: FieldScalar, Type: t}
}

func Scaled(t wire.Type, s wire.Scale) Field {
	return Field{Kind: FieldScaled, Type: t, Scale: s}
}

func Bitfield(t wire.Type, bits ...Bit) Field {
	return Field{Kind: FieldBitfield, Type: t, Bits: bits}
}

func Group(c Count, items ...Entry) Field {
	return Field{Kind: FieldGroup, Count: c, Items: items}
}

// B declares a bitfield member.
func B(name string, width uint) Bit {
	return Bit{Name: name, Width: width}
}

// E declares a named entry.
func E(name string, f Field) Entry {
	return Entry{Name: name, Field: f}
}

// S is shorthand for a named scalar entry.
func S(name string, t wire.Type) Entry {
	return Entry{Name: name, Field: Scalar(t)}
}

// CountKind tags how a repeating group finds its cardinality.
type CountKind uint8

const (
	CountLiteral CountKind = iota + 1
	CountRef
	CountRemaining
)

// Count is the cardinality source of a repeating group.
type Count struct {
	Kind CountKind
	N    int
	Ref  string
}

func Literal(n int) Count { return Count{Kind: CountLiteral, N: n} }

// Ref counts a group by an attribute decoded earlier in the same message.
func Ref(name string) Count { return Count{Kind: CountRef, Ref: name} }

// Remaining repeats a group until the enclosing payload is exhausted.
var Remaining = Count{Kind: CountRemaining}

func (c Count) String() string {
	switch c.Kind {
	case CountLiteral:
		return fmt.Sprintf("%d", c.N)
	case CountRef:
		return c.Ref
	case CountRemaining:
		return "remaining"
	default:
		return "invalid"
	}
}
