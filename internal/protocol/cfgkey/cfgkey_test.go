package cfgkey

import (
	"bytes"
	"errors"
	"testing"

	"github.com/danmuck/ubxwire/internal/protocol"
	"github.com/danmuck/ubxwire/internal/protocol/codec"
	"github.com/danmuck/ubxwire/internal/protocol/schema"
	"github.com/danmuck/ubxwire/internal/protocol/wire"
	"github.com/danmuck/ubxwire/internal/testutil/testlog"
)

func TestByName(t *testing.T) {
	testlog.Start(t)
	cases := []struct {
		name string
		id   uint32
		typ  wire.Type
	}{
		{"CFG_NMEA_PROTVER", 0x20930001, wire.E1},
		{"CFG_UART1_BAUDRATE", 0x40520001, wire.U4},
		{"CFG_UART1_ENABLED", 0x10520005, wire.L},
		{"CFG_TP_DUTY_TP1", 0x5005002a, wire.R8},
	}
	for _, tc := range cases {
		k, ok := ByName(tc.name)
		if !ok {
			t.Fatalf("%s not found", tc.name)
		}
		if k.ID != tc.id || k.Type != tc.typ {
			t.Fatalf("%s: got %s", tc.name, k)
		}
	}
	if _, ok := ByName("CFG_NOPE"); ok {
		t.Fatalf("unexpected hit for CFG_NOPE")
	}
}

func TestByID(t *testing.T) {
	testlog.Start(t)
	k, ok := ByID(0x20510001)
	if !ok || k.Name != "CFG_I2C_ADDRESS" || k.Type != wire.U1 {
		t.Fatalf("got %s ok=%v", k, ok)
	}
	if _, ok := ByID(0x20510099); ok {
		t.Fatalf("unexpected hit")
	}
}

func TestSizeOf(t *testing.T) {
	testlog.Start(t)
	cases := map[uint32]int{
		0x10520005: 1,
		0x20930001: 1,
		0x30210001: 2,
		0x40520001: 4,
		0x50360006: 8,
		0x00000001: 0,
		0x70000001: 0,
		0xC0520001: 4,
	}
	for id, want := range cases {
		if got := SizeOf(id); got != want {
			t.Fatalf("SizeOf(0x%08x) = %d want %d", id, got, want)
		}
	}
}

func TestTableAgreesWithSizeBits(t *testing.T) {
	testlog.Start(t)
	seen := map[uint32]string{}
	for _, name := range Names() {
		k, _ := ByName(name)
		if SizeOf(k.ID) != k.Type.Width {
			t.Fatalf("%s: size bits %d, type %s", name, SizeOf(k.ID), k.Type)
		}
		if prev, dup := seen[k.ID]; dup {
			t.Fatalf("%s and %s share 0x%08x", prev, name, k.ID)
		}
		seen[k.ID] = name
	}
}

func TestLookupHexName(t *testing.T) {
	testlog.Start(t)
	k, err := Lookup("CFG_0x30990001")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if k.ID != 0x30990001 || k.Type != wire.Bytes(2) {
		t.Fatalf("got %s", k)
	}
	k, err = Lookup("CFG_0x10990001")
	if err != nil || k.Type != wire.L {
		t.Fatalf("bool key: %s %v", k, err)
	}
	if _, err := Lookup("CFG_0x00990001"); !errors.Is(err, ErrInvalidSize) {
		t.Fatalf("expected ErrInvalidSize, got %v", err)
	}
	if _, err := Lookup("CFG_WHATEVER"); !errors.Is(err, ErrUnknownKey) {
		t.Fatalf("expected ErrUnknownKey, got %v", err)
	}
}

var cfgData = []byte{
	0x01, 0x00, 0x52, 0x40, 0x00, 0xC2, 0x01, 0x00, // CFG_UART1_BAUDRATE 115200
	0x01, 0x00, 0x93, 0x20, 0x29, // CFG_NMEA_PROTVER 41
	0x05, 0x00, 0x52, 0x10, 0x01, // CFG_UART1_ENABLED true
}

func TestDecodeValues(t *testing.T) {
	testlog.Start(t)
	kvs, err := DecodeValues(cfgData)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := []string{"CFG_UART1_BAUDRATE=115200", "CFG_NMEA_PROTVER=41", "CFG_UART1_ENABLED=true"}
	if len(kvs) != len(want) {
		t.Fatalf("got %v", kvs)
	}
	for i := range want {
		if kvs[i].String() != want[i] {
			t.Fatalf("entry %d: %s want %s", i, kvs[i], want[i])
		}
	}
}

func TestDecodeValuesTruncated(t *testing.T) {
	testlog.Start(t)
	for _, n := range []int{2, 6, 12} {
		if _, err := DecodeValues(cfgData[:n]); !errors.Is(err, ErrTruncated) {
			t.Fatalf("len %d: expected ErrTruncated, got %v", n, err)
		}
	}
	if _, err := DecodeValues([]byte{0x01, 0x00, 0x00, 0x00, 0x00}); !errors.Is(err, ErrInvalidSize) {
		t.Fatalf("expected ErrInvalidSize, got %v", err)
	}
}

func TestEncodeValues(t *testing.T) {
	testlog.Start(t)
	var kvs []KeyValue
	for _, p := range []struct {
		name string
		v    wire.Value
	}{
		{"CFG_UART1_BAUDRATE", wire.Uint(115200)},
		{"CFG_NMEA_PROTVER", wire.Uint(41)},
		{"CFG_UART1_ENABLED", wire.Bool(true)},
	} {
		kv, err := Pair(p.name, p.v)
		if err != nil {
			t.Fatalf("pair: %v", err)
		}
		kvs = append(kvs, kv)
	}
	got, err := EncodeValues(kvs)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !bytes.Equal(got, cfgData) {
		t.Fatalf("got %x want %x", got, cfgData)
	}

	over, _ := Pair("CFG_NMEA_PROTVER", wire.Uint(300))
	if _, err := EncodeValues([]KeyValue{over}); !errors.Is(err, wire.ErrOverflow) {
		t.Fatalf("expected overflow, got %v", err)
	}
}

func TestValsetThroughCodec(t *testing.T) {
	testlog.Start(t)
	kvs, _ := DecodeValues(cfgData)
	group, err := ToGroup(kvs)
	if err != nil {
		t.Fatalf("group: %v", err)
	}
	attrs := wire.Record{
		{Name: "layers", Value: wire.Fields(wire.Record{{Name: "ram", Value: wire.Uint(1)}})},
		{Name: "group", Value: group},
	}
	raw, err := protocol.BuildNamed("CFG-VALSET", schema.Set, attrs, nil, codec.Options{ZeroFill: true})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !bytes.Equal(raw[6:10], []byte{0x00, 0x01, 0x00, 0x00}) || !bytes.Equal(raw[10:len(raw)-2], cfgData) {
		t.Fatalf("frame: %x", raw)
	}

	msg, err := protocol.ParseBytes(raw, nil, schema.Set, true)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	back, err := FromRecord(msg.Record)
	if err != nil {
		t.Fatalf("from record: %v", err)
	}
	if len(back) != 3 || back[0].Key.Name != "CFG_UART1_BAUDRATE" || back[2].Value.String() != "true" {
		t.Fatalf("round trip: %v", back)
	}
}

func TestValgetPoll(t *testing.T) {
	testlog.Start(t)
	k1, _ := ByName("CFG_RATE_MEAS")
	k2, _ := ByName("CFG_RATE_NAV")
	attrs := wire.Record{
		{Name: "version", Value: wire.Uint(0)},
		{Name: "layer", Value: wire.Uint(0)},
		{Name: "position", Value: wire.Uint(0)},
		{Name: "group", Value: KeysGroup(k1, k2)},
	}
	raw, err := protocol.BuildNamed("CFG-VALGET", schema.Poll, attrs, nil, codec.Options{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	want := []byte{0x00, 0x00, 0x00, 0x00, 0x01, 0x00, 0x21, 0x30, 0x02, 0x00, 0x21, 0x30}
	if !bytes.Equal(raw[6:len(raw)-2], want) {
		t.Fatalf("payload %x want %x", raw[6:len(raw)-2], want)
	}
}
