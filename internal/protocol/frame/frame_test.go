package frame

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/danmuck/ubxwire/internal/testutil/testlog"
)

var cfgMsgPoll = []byte{0xB5, 0x62, 0x06, 0x01, 0x02, 0x00, 0xF0, 0x05, 0xFE, 0x16}

func TestChecksumKnownVector(t *testing.T) {
	testlog.Start(t)
	ckA, ckB := Checksum([]byte{0x06, 0x01, 0x02, 0x00, 0xF0, 0x05})
	if ckA != 0xFE || ckB != 0x16 {
		t.Fatalf("checksum: %02x%02x", ckA, ckB)
	}
	ckA, ckB = Compute(0x06, 0x01, 2, []byte{0xF0, 0x05})
	if ckA != 0xFE || ckB != 0x16 {
		t.Fatalf("compute: %02x%02x", ckA, ckB)
	}
}

func TestValidate(t *testing.T) {
	testlog.Start(t)
	if !Validate(cfgMsgPoll) {
		t.Fatalf("expected valid frame")
	}
	bad := bytes.Clone(cfgMsgPoll)
	bad[len(bad)-1] = 0x15
	if Validate(bad) {
		t.Fatalf("expected checksum failure")
	}
	if Validate(cfgMsgPoll[:len(cfgMsgPoll)-1]) {
		t.Fatalf("expected short frame to fail")
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	testlog.Start(t)
	out, err := Encode(Frame{Class: 0x06, ID: 0x01, Payload: []byte{0xF0, 0x05}})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !bytes.Equal(out, cfgMsgPoll) {
		t.Fatalf("encode: got %x want %x", out, cfgMsgPoll)
	}
	f, n, err := TryExtract(out)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if n != len(out) || f.Identity().String() != "CFG-MSG" || !bytes.Equal(f.Payload, []byte{0xF0, 0x05}) {
		t.Fatalf("unexpected frame: %+v n=%d", f, n)
	}
}

func TestEncodeRejectsOversizePayload(t *testing.T) {
	testlog.Start(t)
	_, err := Encode(Frame{Class: 1, ID: 1, Payload: make([]byte, MaxPayload+1)})
	if !errors.Is(err, ErrPayloadTooLarge) {
		t.Fatalf("expected ErrPayloadTooLarge, got %v", err)
	}
}

func TestTryExtractIncomplete(t *testing.T) {
	testlog.Start(t)
	for i := 0; i < len(cfgMsgPoll); i++ {
		_, n, err := TryExtract(cfgMsgPoll[:i])
		if !errors.Is(err, ErrIncomplete) || n != 0 {
			t.Fatalf("prefix %d: n=%d err=%v", i, n, err)
		}
	}
}

func TestTryExtractChecksumMismatchKeepsFrame(t *testing.T) {
	testlog.Start(t)
	bad := bytes.Clone(cfgMsgPoll)
	bad[len(bad)-1] = 0x15
	f, n, err := TryExtract(bad)
	var ce *ChecksumError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ChecksumError, got %v", err)
	}
	if n != len(bad) || f.Class != 0x06 || ce.Want != [2]byte{0xFE, 0x16} || ce.Got != [2]byte{0xFE, 0x15} {
		t.Fatalf("unexpected result: %+v n=%d err=%+v", f, n, ce)
	}
}

func TestTryExtractNotThisProtocol(t *testing.T) {
	testlog.Start(t)
	for _, in := range [][]byte{[]byte("$GN"), {0xB5, 0x00}, {0xD3, 0x00, 0x04}} {
		if _, _, err := TryExtract(in); !errors.Is(err, ErrNotThisProtocol) {
			t.Fatalf("%x: expected ErrNotThisProtocol, got %v", in, err)
		}
	}
}

func TestLimitsRejectLargeDeclaredLength(t *testing.T) {
	testlog.Start(t)
	head := []byte{0xB5, 0x62, 0x02, 0x15, 0x00, 0x10}
	_, _, err := Limits{MaxPayloadBytes: 1024}.TryExtract(head)
	if !errors.Is(err, ErrPayloadTooLarge) {
		t.Fatalf("expected ErrPayloadTooLarge, got %v", err)
	}
}

func TestReadWriteFrame(t *testing.T) {
	testlog.Start(t)
	var buf bytes.Buffer
	in := New(0x06, 0x08, []byte{0xE8, 0x03, 0x01, 0x00, 0x01, 0x00})
	if err := WriteFrame(&buf, in, DefaultLimits()); err != nil {
		t.Fatalf("write: %v", err)
	}
	out, err := ReadFrame(&buf, DefaultLimits())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if out.Identity() != in.Identity() || !bytes.Equal(out.Payload, in.Payload) || out.CkA != in.CkA || out.CkB != in.CkB {
		t.Fatalf("mismatch: got %+v want %+v", out, in)
	}
	if _, err := ReadFrame(bytes.NewReader(cfgMsgPoll[:7]), DefaultLimits()); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("expected ErrUnexpectedEOF, got %v", err)
	}
	if _, err := ReadFrame(bytes.NewReader([]byte("$GNGLL,")), DefaultLimits()); !errors.Is(err, ErrBadSync) {
		t.Fatalf("expected ErrBadSync, got %v", err)
	}
}

func TestClassify(t *testing.T) {
	testlog.Start(t)
	cases := []struct {
		in   []byte
		want Protocol
	}{
		{cfgMsgPoll, UBX},
		{[]byte("$GNGLL,5327.04319,S,00214.41396,E,223232.00,A,A*68\r\n"), NMEA},
		{[]byte("$PGRMM,WGS84*26\r\n"), NMEA},
		{[]byte("\xd3\x00\x04L\xe0\x00\x80\xed\xed\xd6"), RTCM3},
		{[]byte("aPiLeOfGarBage"), Unknown},
		{[]byte{0xB5}, UBX},
		{[]byte{0xD3, 0xFF}, Unknown},
		{nil, Unknown},
	}
	for _, tc := range cases {
		if got := Classify(tc.in); got != tc.want {
			t.Fatalf("Classify(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestExtractNMEA(t *testing.T) {
	testlog.Start(t)
	in := []byte("$GNGLL,5327.04319,S,00214.41396,E,223232.00,A,A*68\r\n\xb5b")
	chunk, n, err := ExtractNMEA(in)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if n != len(in)-2 || !bytes.HasSuffix(chunk, []byte("*68\r\n")) {
		t.Fatalf("chunk %q n=%d", chunk, n)
	}
	if _, _, err := ExtractNMEA([]byte("$GNGLL,53")); !errors.Is(err, ErrIncomplete) {
		t.Fatalf("expected ErrIncomplete, got %v", err)
	}
	long := append([]byte("$"), bytes.Repeat([]byte("x"), MaxNMEALen)...)
	if _, _, err := ExtractNMEA(long); !errors.Is(err, ErrNotThisProtocol) {
		t.Fatalf("expected ErrNotThisProtocol for runaway sentence, got %v", err)
	}
	binary := []byte("$\x02\xb5\x62\x06\x01\n")
	if _, _, err := ExtractNMEA(binary); !errors.Is(err, ErrNotThisProtocol) {
		t.Fatalf("expected binary bytes to reject, got %v", err)
	}
}

func TestExtractRTCM3(t *testing.T) {
	testlog.Start(t)
	in := []byte("\xd3\x00\x04L\xe0\x00\x80\xed\xed\xd6\x00")
	chunk, n, err := ExtractRTCM3(in)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if n != 10 || len(chunk) != 10 {
		t.Fatalf("chunk %x n=%d", chunk, n)
	}
	if _, _, err := ExtractRTCM3(in[:6]); !errors.Is(err, ErrIncomplete) {
		t.Fatalf("expected ErrIncomplete, got %v", err)
	}
	bad := bytes.Clone(in[:10])
	bad[9] ^= 0xFF
	if _, _, err := ExtractRTCM3(bad); !errors.Is(err, ErrNotThisProtocol) {
		t.Fatalf("expected CRC failure to reject, got %v", err)
	}
}

func TestHexTable(t *testing.T) {
	testlog.Start(t)
	got := HexTable([]byte("$GNGLL,5327.04319,S,00214.41396,E,223232.00,A,A*68\r\n"), 8)
	want := "000: 2447 4e47 4c4c 2c35 3332 372e 3034 3331  | $GNGLL,5327.0431 |\n" +
		"016: 392c 532c 3030 3231 342e 3431 3339 362c  | 9,S,00214.41396, |\n" +
		"032: 452c 3232 3332 3332 2e30 302c 412c 412a  | E,223232.00,A,A* |\n" +
		"048: 3638 0d0a                                | 68.. |\n"
	if got != want {
		t.Fatalf("hex table:\n%s\nwant:\n%s", got, want)
	}

	odd := HexTable(cfgMsgPoll[:5], 2)
	if odd != "000: b562 0601  | .b.. |\n004: 02         | . |\n" {
		t.Fatalf("odd length table: %q", odd)
	}
	if HexTable(nil, 0) != "" {
		t.Fatalf("empty input should render nothing")
	}
}
