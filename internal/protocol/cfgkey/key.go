// Package cfgkey maps receiver configuration keys between their 32-bit IDs,
// their CFG_ names and their value types, and packs the key/value lists
// carried by CFG-VALGET and CFG-VALSET.
package cfgkey

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/danmuck/ubxwire/internal/protocol/wire"
)

var (
	ErrUnknownKey  = errors.New("cfgkey: unknown key")
	ErrInvalidSize = errors.New("cfgkey: invalid size bits")
	ErrTruncated   = errors.New("cfgkey: truncated key/value data")
)

// Key is one configuration item.
type Key struct {
	ID   uint32
	Name string
	Type wire.Type
}

func (k Key) String() string { return fmt.Sprintf("%s(0x%08x %s)", k.Name, k.ID, k.Type) }

// SizeOf is the stored value size in bytes encoded in bits 28..30 of id.
// One-bit values occupy a whole byte. Zero means the size bits are invalid.
func SizeOf(id uint32) int {
	switch (id >> 28) & 0x07 {
	case 0x01, 0x02:
		return 1
	case 0x03:
		return 2
	case 0x04:
		return 4
	case 0x05:
		return 8
	default:
		return 0
	}
}

var (
	byName = make(map[string]Key, len(keys))
	byID   = make(map[uint32]Key, len(keys))
)

func init() {
	for _, k := range keys {
		if SizeOf(k.ID) != k.Type.Width {
			panic(fmt.Sprintf("cfgkey: %s declares %s but size bits give %d bytes", k.Name, k.Type, SizeOf(k.ID)))
		}
		byName[k.Name] = k
		byID[k.ID] = k
	}
}

func ByName(name string) (Key, bool) {
	k, ok := byName[name]
	return k, ok
}

func ByID(id uint32) (Key, bool) {
	k, ok := byID[id]
	return k, ok
}

// Lookup resolves a name from the table or the CFG_0x<hex> form used for
// keys the table does not carry.
func Lookup(name string) (Key, error) {
	if k, ok := byName[name]; ok {
		return k, nil
	}
	if hexID, ok := strings.CutPrefix(name, "CFG_0x"); ok {
		id, err := strconv.ParseUint(hexID, 16, 32)
		if err == nil {
			return Describe(uint32(id))
		}
	}
	return Key{}, fmt.Errorf("%w: %s", ErrUnknownKey, name)
}

// Describe returns the table entry for id, or a synthetic key typed from
// the size bits when the table has none.
func Describe(id uint32) (Key, error) {
	if k, ok := byID[id]; ok {
		return k, nil
	}
	size := SizeOf(id)
	if size == 0 {
		return Key{}, fmt.Errorf("%w: 0x%08x", ErrInvalidSize, id)
	}
	t := wire.Bytes(size)
	if (id>>28)&0x07 == 0x01 {
		t = wire.L
	}
	return Key{ID: id, Name: fmt.Sprintf("CFG_0x%08x", id), Type: t}, nil
}

// Names lists the table's key names in table order.
func Names() []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = k.Name
	}
	return out
}
