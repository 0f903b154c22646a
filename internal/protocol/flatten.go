package protocol

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/danmuck/ubxwire/internal/protocol/wire"
)

// Flatten returns the record with groups and bitfields spread into one
// level. Group members are suffixed with their 1-based item number, padded
// to two digits (svId_01, svId_02); nested groups add one suffix per level.
// Bitfields are replaced by their members.
func (m *Message) Flatten() wire.Record {
	var out wire.Record
	flatten(&out, m.Record, "")
	return out
}

func flatten(out *wire.Record, rec wire.Record, suffix string) {
	for _, a := range rec {
		switch a.Value.Kind() {
		case wire.ValueList:
			items, _ := a.Value.Items()
			for i, item := range items {
				flatten(out, item, fmt.Sprintf("%s_%02d", suffix, i+1))
			}
		case wire.ValueBits:
			children, _ := a.Value.Children()
			for _, c := range children {
				*out = append(*out, wire.Attr{Name: c.Name + suffix, Value: c.Value})
			}
		default:
			*out = append(*out, wire.Attr{Name: a.Name + suffix, Value: a.Value})
		}
	}
}

// SplitAttr separates a flattened attribute name into its base name and
// item number: svid_04 gives (svid, 4), gmsLon gives (gmsLon, 0). Only the
// last suffix is split off.
func SplitAttr(name string) (string, int) {
	i := strings.LastIndexByte(name, '_')
	if i < 0 || i == len(name)-1 {
		return name, 0
	}
	digits := name[i+1:]
	if strings.TrimLeft(digits, "0123456789") != "" {
		return name, 0
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return name, 0
	}
	return name[:i], n
}
