package wire

import (
	mbits "math/bits"

	"golang.org/x/exp/constraints"
)

// Mask returns an unsigned value with the low width bits set.
func Mask[U constraints.Unsigned](width uint) U {
	return U(1)<<width - 1
}

// Extract reads width bits of v starting at bit offset (LSB = 0).
func Extract[U constraints.Unsigned](v U, offset, width uint) U {
	if width == 0 {
		return 0
	}
	return (v >> offset) & Mask[U](width)
}

// Insert stores the low width bits of val into store at bit offset,
// replacing whatever was there.
func Insert[U constraints.Unsigned](store, val U, offset, width uint) U {
	if width == 0 {
		return store
	}
	m := Mask[U](width)
	return store&^(m<<offset) | (val&m)<<offset
}

// Fits reports whether val can be stored in width bits.
func Fits[U constraints.Unsigned](val U, width uint) bool {
	return val&^Mask[U](width) == 0
}

// GetBits interprets b as a big-endian integer, applies mask and shifts the
// result down to the mask's lowest set bit.
func GetBits(b []byte, mask uint64) uint64 {
	var v uint64
	for _, c := range b {
		v = v<<8 | uint64(c)
	}
	if mask == 0 {
		return 0
	}
	return (v & mask) >> uint(mbits.TrailingZeros64(mask))
}
