package wire

import (
	"bytes"
	"encoding/binary"
	"math"
)

// Decode maps exactly t.Width bytes to a Value.
func (t Type) Decode(b []byte) (Value, error) {
	if !t.Valid() {
		return Value{}, ErrInvalidType
	}
	if len(b) != t.Width {
		return Value{}, &TypeWidthError{Type: t, Want: t.Width, Got: len(b)}
	}
	switch t.Kind {
	case KindUnsigned, KindEnum:
		if t.Width > 8 {
			return Raw(b), nil
		}
		return Uint(LittleEndian(b)), nil
	case KindSigned:
		return Int(signExtend(LittleEndian(b), t.Width)), nil
	case KindFloat:
		if t.Width == 4 {
			return Float(float64(math.Float32frombits(binary.LittleEndian.Uint32(b)))), nil
		}
		return Float(math.Float64frombits(binary.LittleEndian.Uint64(b))), nil
	case KindBool:
		return Bool(b[0] != 0), nil
	case KindChar:
		return Text(string(b)), nil
	default:
		return Raw(b), nil
	}
}

// Encode serialises v at exactly t.Width bytes.
func (t Type) Encode(v Value) ([]byte, error) {
	if !t.Valid() {
		return nil, ErrInvalidType
	}
	out := make([]byte, t.Width)
	switch t.Kind {
	case KindUnsigned, KindEnum:
		if t.Width > 8 {
			return t.encodeWide(v, out)
		}
		u, err := v.Uint()
		if err != nil {
			return nil, t.mismatch(v, err)
		}
		if t.Width < 8 && u>>(uint(t.Width)*8) != 0 {
			return nil, t.mismatch(v, ErrOverflow)
		}
		PutLittleEndian(out, u)
	case KindSigned:
		i, err := v.Int()
		if err != nil {
			return nil, t.mismatch(v, err)
		}
		if t.Width < 8 {
			limit := int64(1) << (uint(t.Width)*8 - 1)
			if i < -limit || i >= limit {
				return nil, t.mismatch(v, ErrOverflow)
			}
		}
		PutLittleEndian(out, uint64(i))
	case KindFloat:
		f, err := v.Float()
		if err != nil {
			return nil, t.mismatch(v, err)
		}
		if t.Width == 4 {
			if !math.IsInf(f, 0) && math.Abs(f) > math.MaxFloat32 {
				return nil, t.mismatch(v, ErrOverflow)
			}
			binary.LittleEndian.PutUint32(out, math.Float32bits(float32(f)))
		} else {
			binary.LittleEndian.PutUint64(out, math.Float64bits(f))
		}
	case KindBool:
		b, err := v.Bool()
		if err != nil {
			return nil, t.mismatch(v, err)
		}
		out[0] = byte(boolBit(b))
	case KindChar:
		b, err := v.Bytes()
		if err != nil {
			return nil, t.mismatch(v, err)
		}
		if len(b) > t.Width {
			return nil, t.mismatch(v, ErrOverflow)
		}
		copy(out, b)
	default:
		return t.encodeWide(v, out)
	}
	return out, nil
}

// encodeWide handles byte arrays: an exact-width byte value, or an integer
// packed little-endian when it fits.
func (t Type) encodeWide(v Value, out []byte) ([]byte, error) {
	if v.Kind() == ValueBytes {
		if len(v.b) != t.Width {
			return nil, t.mismatch(v, &TypeWidthError{Type: t, Want: t.Width, Got: len(v.b)})
		}
		copy(out, v.b)
		return out, nil
	}
	u, err := v.Uint()
	if err != nil {
		return nil, t.mismatch(v, err)
	}
	if t.Width < 8 && u>>(uint(t.Width)*8) != 0 {
		return nil, t.mismatch(v, ErrOverflow)
	}
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], u)
	copy(out, tmp[:min(8, t.Width)])
	return out, nil
}

func (t Type) mismatch(v Value, err error) error {
	return &TypeMismatchError{Type: t, Value: v, Err: err}
}

// LittleEndian reads up to 8 bytes as an unsigned little-endian integer.
func LittleEndian(b []byte) uint64 {
	var u uint64
	for i := len(b) - 1; i >= 0; i-- {
		u = u<<8 | uint64(b[i])
	}
	return u
}

// PutLittleEndian writes the low len(b) bytes of u into b.
func PutLittleEndian(b []byte, u uint64) {
	for i := range b {
		b[i] = byte(u)
		u >>= 8
	}
}

func signExtend(u uint64, width int) int64 {
	if width >= 8 {
		return int64(u)
	}
	shift := uint(64 - width*8)
	return int64(u<<shift) >> shift
}

// EqualBytes reports whether a byte value holds exactly b.
func (v Value) EqualBytes(b []byte) bool {
	return v.kind == ValueBytes && bytes.Equal(v.b, b)
}
