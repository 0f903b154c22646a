package cfgkey

import (
	"encoding/binary"
	"fmt"

	"github.com/danmuck/ubxwire/internal/protocol/wire"
)

// KeyValue is one entry of a cfgData list.
type KeyValue struct {
	Key   Key
	Value wire.Value
}

func (kv KeyValue) String() string { return kv.Key.Name + "=" + kv.Value.String() }

// Pair pairs the named key with v.
func Pair(name string, v wire.Value) (KeyValue, error) {
	k, err := Lookup(name)
	if err != nil {
		return KeyValue{}, err
	}
	return KeyValue{Key: k, Value: v}, nil
}

// DecodeValues splits cfgData into key/value pairs: a little-endian key ID
// followed by a value whose size comes from the key's size bits.
func DecodeValues(b []byte) ([]KeyValue, error) {
	var out []KeyValue
	for off := 0; off < len(b); {
		if len(b)-off < 4 {
			return out, fmt.Errorf("%w: %d bytes left at offset %d", ErrTruncated, len(b)-off, off)
		}
		id := binary.LittleEndian.Uint32(b[off:])
		k, err := Describe(id)
		if err != nil {
			return out, err
		}
		off += 4
		if len(b)-off < k.Type.Width {
			return out, fmt.Errorf("%w: %s needs %d bytes, %d left", ErrTruncated, k.Name, k.Type.Width, len(b)-off)
		}
		v, err := k.Type.Decode(b[off : off+k.Type.Width])
		if err != nil {
			return out, fmt.Errorf("cfgkey: %s: %w", k.Name, err)
		}
		off += k.Type.Width
		out = append(out, KeyValue{Key: k, Value: v})
	}
	return out, nil
}

// EncodeValues is the inverse of DecodeValues.
func EncodeValues(kvs []KeyValue) ([]byte, error) {
	var out []byte
	for _, kv := range kvs {
		if SizeOf(kv.Key.ID) != kv.Key.Type.Width {
			return nil, fmt.Errorf("%w: %s", ErrInvalidSize, kv.Key)
		}
		v, err := kv.Key.Type.Encode(kv.Value)
		if err != nil {
			return nil, fmt.Errorf("cfgkey: %s: %w", kv.Key.Name, err)
		}
		out = binary.LittleEndian.AppendUint32(out, kv.Key.ID)
		out = append(out, v...)
	}
	return out, nil
}

// ToGroup encodes kvs as the cfgData group of a CFG-VALSET or CFG-VALGET
// record: one item per byte.
func ToGroup(kvs []KeyValue) (wire.Value, error) {
	b, err := EncodeValues(kvs)
	if err != nil {
		return wire.Value{}, err
	}
	items := make([]wire.Record, len(b))
	for i, c := range b {
		items[i] = wire.Record{{Name: "cfgData", Value: wire.Uint(uint64(c))}}
	}
	return wire.List(items...), nil
}

// FromRecord decodes the cfgData group of a decoded CFG-VALGET or
// CFG-VALSET record.
func FromRecord(rec wire.Record) ([]KeyValue, error) {
	g, ok := rec.Get("group")
	if !ok {
		return nil, nil
	}
	items, err := g.Items()
	if err != nil {
		return nil, err
	}
	b := make([]byte, 0, len(items))
	for _, item := range items {
		v, ok := item.Get("cfgData")
		if !ok {
			return nil, fmt.Errorf("%w: group item without cfgData", ErrTruncated)
		}
		u, err := v.Uint()
		if err != nil {
			return nil, err
		}
		b = append(b, byte(u))
	}
	return DecodeValues(b)
}

// KeysGroup builds the keys group of a CFG-VALGET poll or CFG-VALDEL.
func KeysGroup(keys ...Key) wire.Value {
	items := make([]wire.Record, len(keys))
	for i, k := range keys {
		items[i] = wire.Record{{Name: "keys", Value: wire.Uint(uint64(k.ID))}}
	}
	return wire.List(items...)
}
