package wire

import "fmt"

// Kind is the primitive family of a wire type.
type Kind uint8

const (
	KindUnsigned Kind = iota + 1
	KindSigned
	KindFloat
	KindBytes
	KindBool
	KindEnum
	KindChar
)

func (k Kind) String() string {
	switch k {
	case KindUnsigned:
		return "U"
	case KindSigned:
		return "I"
	case KindFloat:
		return "R"
	case KindBytes:
		return "X"
	case KindBool:
		return "L"
	case KindEnum:
		return "E"
	case KindChar:
		return "C"
	default:
		return "?"
	}
}

// Type is a fixed-width primitive as it appears on the wire.
// All integer encodings are little-endian.
type Type struct {
	Kind  Kind
	Width int
}

// Type tokens used by the message catalogue.
var (
	U1  = Type{KindUnsigned, 1}
	U2  = Type{KindUnsigned, 2}
	U3  = Type{KindUnsigned, 3}
	U4  = Type{KindUnsigned, 4}
	U5  = Type{KindUnsigned, 5}
	U6  = Type{KindUnsigned, 6}
	U7  = Type{KindUnsigned, 7}
	U8  = Type{KindUnsigned, 8}
	U11 = Type{KindUnsigned, 11}
	U12 = Type{KindUnsigned, 12}
	U40 = Type{KindUnsigned, 40}
	U64 = Type{KindUnsigned, 64}

	I1 = Type{KindSigned, 1}
	I2 = Type{KindSigned, 2}
	I4 = Type{KindSigned, 4}
	I8 = Type{KindSigned, 8}

	R4 = Type{KindFloat, 4}
	R8 = Type{KindFloat, 8}

	X1  = Type{KindBytes, 1}
	X2  = Type{KindBytes, 2}
	X4  = Type{KindBytes, 4}
	X8  = Type{KindBytes, 8}
	X24 = Type{KindBytes, 24}

	E1 = Type{KindEnum, 1}
	E2 = Type{KindEnum, 2}
	E4 = Type{KindEnum, 4}

	L = Type{KindBool, 1}
)

// C returns a fixed-length character field of n bytes.
func C(n int) Type { return Type{KindChar, n} }

// Bytes returns an opaque byte array of n bytes.
func Bytes(n int) Type { return Type{KindBytes, n} }

// String renders the type the way the catalogue names it (U2, X4, C30).
func (t Type) String() string {
	return fmt.Sprintf("%s%d", t.Kind, t.Width)
}

// Integral reports whether values of t are carried as integers.
// Byte arrays of up to 8 bytes count, since they serve as bitfield parents.
func (t Type) Integral() bool {
	switch t.Kind {
	case KindUnsigned, KindSigned, KindEnum, KindBool:
		return t.Width <= 8
	case KindBytes:
		return t.Width <= 8
	default:
		return false
	}
}

// Bits is the width of t in bits.
func (t Type) Bits() int { return t.Width * 8 }

// Valid reports whether t names a width its kind can carry.
func (t Type) Valid() bool {
	if t.Width <= 0 {
		return false
	}
	switch t.Kind {
	case KindSigned, KindEnum:
		return t.Width <= 8
	case KindFloat:
		return t.Width == 4 || t.Width == 8
	case KindBool:
		return t.Width == 1
	case KindUnsigned, KindBytes, KindChar:
		return true
	default:
		return false
	}
}
