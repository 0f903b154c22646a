package wire

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ValueKind tags the variant held by a Value.
type ValueKind uint8

const (
	ValueInvalid ValueKind = iota
	ValueUint
	ValueInt
	ValueFloat
	ValueBool
	ValueBytes
	ValueString
	ValueList
	ValueBits
)

// Value is one decoded attribute: a scalar, a list of group records, or a
// bitfield carrying its raw parent integer plus named children.
// Values are immutable once constructed.
type Value struct {
	kind   ValueKind
	u      uint64
	i      int64
	f      float64
	b      []byte
	s      string
	list   []Record
	fields Record
}

func Uint(u uint64) Value   { return Value{kind: ValueUint, u: u} }
func Int(i int64) Value     { return Value{kind: ValueInt, i: i} }
func Float(f float64) Value { return Value{kind: ValueFloat, f: f} }
func Bool(b bool) Value     { return Value{kind: ValueBool, u: boolBit(b)} }
func Text(s string) Value   { return Value{kind: ValueString, s: s} }

// Raw wraps a copy of b.
func Raw(b []byte) Value {
	return Value{kind: ValueBytes, b: bytes.Clone(nonNil(b))}
}

// List builds a repeating-group value.
func List(items ...Record) Value {
	out := make([]Record, len(items))
	copy(out, items)
	return Value{kind: ValueList, list: out}
}

// Bits builds a bitfield value from its raw parent integer and children.
func Bits(raw uint64, fields Record) Value {
	return Value{kind: ValueBits, u: raw, fields: fields.clone()}
}

// Fields builds a bitfield value from children only; the raw parent is
// recomposed at encode time.
func Fields(fields Record) Value {
	return Value{kind: ValueBits, fields: fields.clone()}
}

func (v Value) Kind() ValueKind { return v.kind }

func (v Value) IsValid() bool { return v.kind != ValueInvalid }

// Exact float bounds; math.MaxUint64 and math.MaxInt64 round up to these
// when compared as float64.
var (
	twoTo64 = math.Ldexp(1, 64)
	twoTo63 = math.Ldexp(1, 63)
)

// Uint returns v as an unsigned integer.
func (v Value) Uint() (uint64, error) {
	switch v.kind {
	case ValueUint, ValueBits, ValueBool:
		return v.u, nil
	case ValueInt:
		if v.i < 0 {
			return 0, ErrOverflow
		}
		return uint64(v.i), nil
	case ValueFloat:
		if v.f < 0 || v.f >= twoTo64 || v.f != math.Trunc(v.f) {
			return 0, ErrOverflow
		}
		return uint64(v.f), nil
	default:
		return 0, ErrKindMismatch
	}
}

// Int returns v as a signed integer.
func (v Value) Int() (int64, error) {
	switch v.kind {
	case ValueInt:
		return v.i, nil
	case ValueUint, ValueBits, ValueBool:
		if v.u > math.MaxInt64 {
			return 0, ErrOverflow
		}
		return int64(v.u), nil
	case ValueFloat:
		if v.f < math.MinInt64 || v.f >= twoTo63 || v.f != math.Trunc(v.f) {
			return 0, ErrOverflow
		}
		return int64(v.f), nil
	default:
		return 0, ErrKindMismatch
	}
}

// Float returns v as a float64; integers convert.
func (v Value) Float() (float64, error) {
	switch v.kind {
	case ValueFloat:
		return v.f, nil
	case ValueUint, ValueBits, ValueBool:
		return float64(v.u), nil
	case ValueInt:
		return float64(v.i), nil
	default:
		return 0, ErrKindMismatch
	}
}

func (v Value) Bool() (bool, error) {
	switch v.kind {
	case ValueBool:
		return v.u != 0, nil
	case ValueUint:
		if v.u > 1 {
			return false, ErrOverflow
		}
		return v.u == 1, nil
	case ValueInt:
		if v.i != 0 && v.i != 1 {
			return false, ErrOverflow
		}
		return v.i == 1, nil
	default:
		return false, ErrKindMismatch
	}
}

// Bytes returns a copy of a byte or string value.
func (v Value) Bytes() ([]byte, error) {
	switch v.kind {
	case ValueBytes:
		return bytes.Clone(v.b), nil
	case ValueString:
		return []byte(v.s), nil
	default:
		return nil, ErrKindMismatch
	}
}

func (v Value) String() string {
	switch v.kind {
	case ValueUint:
		return strconv.FormatUint(v.u, 10)
	case ValueInt:
		return strconv.FormatInt(v.i, 10)
	case ValueFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case ValueBool:
		return strconv.FormatBool(v.u != 0)
	case ValueBytes:
		return "0x" + hex.EncodeToString(v.b)
	case ValueString:
		return strconv.Quote(v.s)
	case ValueList:
		parts := make([]string, len(v.list))
		for i, rec := range v.list {
			parts[i] = "{" + rec.String() + "}"
		}
		return "[" + strings.Join(parts, " ") + "]"
	case ValueBits:
		return fmt.Sprintf("0x%x{%s}", v.u, v.fields.String())
	default:
		return "<invalid>"
	}
}

// Items returns the records of a repeating-group value.
func (v Value) Items() ([]Record, error) {
	if v.kind != ValueList {
		return nil, ErrKindMismatch
	}
	out := make([]Record, len(v.list))
	copy(out, v.list)
	return out, nil
}

// Len is the number of group items, or 0 for non-list values.
func (v Value) Len() int { return len(v.list) }

// Children returns the named subfields of a bitfield value.
func (v Value) Children() (Record, error) {
	if v.kind != ValueBits {
		return nil, ErrKindMismatch
	}
	return v.fields.clone(), nil
}

// Equal compares values structurally. Floats compare by bit pattern so
// NaN payloads round-trip.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case ValueUint, ValueBool:
		return v.u == o.u
	case ValueInt:
		return v.i == o.i
	case ValueFloat:
		return math.Float64bits(v.f) == math.Float64bits(o.f)
	case ValueBytes:
		return bytes.Equal(v.b, o.b)
	case ValueString:
		return v.s == o.s
	case ValueList:
		if len(v.list) != len(o.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(o.list[i]) {
				return false
			}
		}
		return true
	case ValueBits:
		return v.u == o.u && v.fields.Equal(o.fields)
	default:
		return true
	}
}

func boolBit(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

func nonNil(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	return b
}
